package relationship

import "github.com/hanabira/hanachat/internal/domain"

// BigChangeThreshold is the absolute affection delta that switches from
// the small sign-keyed reaction to the band-keyed one.
const BigChangeThreshold = 50

// bigChange maps (character, new stage) to the reaction shown when the
// level jumps by BigChangeThreshold or more. One fixed line per pair.
var bigChange = map[domain.CharacterID]map[domain.Stage]string{
	domain.CharacterKaoruko: {
		domain.StageEstranged:     "...I think I need some space for a while.",
		domain.StageStranger:      "Um... shall we start over, from the beginning?",
		domain.StageAcquaintance:  "Somehow... talking with you got a lot easier all of a sudden.",
		domain.StageFriend:        "Wait, when did we get this close? ...I don't mind it.",
		domain.StageCloseFriend:   "I... I really feel like I can tell you anything now.",
		domain.StageSpecialPerson: "My heart is pounding... you've become someone so special to me.",
	},
	domain.CharacterSubaru: {
		domain.StageEstranged:     "Tch. Maybe we should keep our distance.",
		domain.StageStranger:      "Huh. Guess we're back to square one.",
		domain.StageAcquaintance:  "You're... easier to talk to than I thought.",
		domain.StageFriend:        "Don't get a big head about it, but... I like hanging out with you.",
		domain.StageCloseFriend:   "Honestly? You're one of the few people I actually trust.",
		domain.StageSpecialPerson: "I never say this stuff, so listen well... you matter to me. A lot.",
	},
}

// smallReaction maps (character, delta sign) to the everyday reaction.
var smallReaction = map[domain.CharacterID]map[int]string{
	domain.CharacterKaoruko: {
		+1: "Ehehe... that makes me happy.",
		-1: "Oh... did I say something wrong...?",
		0:  "Mm, I see...",
	},
	domain.CharacterSubaru: {
		+1: "Heh, not bad.",
		-1: "...That kind of stung, you know.",
		0:  "Sure, whatever you say.",
	},
}

// ReactionMessage picks the persona's reaction to an affection change.
// Pure function over fixed tables: a jump of BigChangeThreshold or more
// keys off the new level's stage, anything smaller keys off the sign of
// the delta.
func ReactionMessage(oldLevel, newLevel int, character domain.CharacterID) string {
	delta := newLevel - oldLevel
	if delta >= BigChangeThreshold || delta <= -BigChangeThreshold {
		return bigChange[character][ClassifyStage(newLevel)]
	}

	sign := 0
	if delta > 0 {
		sign = +1
	} else if delta < 0 {
		sign = -1
	}
	return smallReaction[character][sign]
}
