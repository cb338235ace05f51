package economy

import "time"

const (
	// FirstLoginBonus is granted once per session lifetime.
	FirstLoginBonus = 100

	// BaseConversationReward is earned on every successful chat round.
	BaseConversationReward = 5

	// AffectionBonusRate converts a positive affection delta into coins.
	AffectionBonusRate = 20

	// BoosterTickInterval is the countdown resolution for active boosters.
	BoosterTickInterval = time.Second
)
