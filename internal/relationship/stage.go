package relationship

import "github.com/hanabira/hanachat/internal/domain"

// ClassifyStage maps an affection level to its relationship stage.
// Band lower bounds are inclusive: 20 is still a stranger, 21 an
// acquaintance. UI strings and tests key off these exact boundaries.
func ClassifyStage(level int) domain.Stage {
	switch {
	case level < 0:
		return domain.StageEstranged
	case level <= 20:
		return domain.StageStranger
	case level <= 40:
		return domain.StageAcquaintance
	case level <= 60:
		return domain.StageFriend
	case level <= 80:
		return domain.StageCloseFriend
	default:
		return domain.StageSpecialPerson
	}
}

// ProgressPercent reports progress toward the nearest extreme as 0-100.
// Non-negative levels map directly (level 42 shows 42%); negative levels
// show the magnitude toward -100. The per-band renormalized variant from
// earlier releases was dropped; this is the single pinned formula.
func ProgressPercent(level int) int {
	if level < 0 {
		if level < -100 {
			return 100
		}
		return -level
	}
	if level > 100 {
		return 100
	}
	return level
}

// StageTitle returns the honorific appended to the user's name at a
// given stage. Empty at the extremes, where formality drops away.
func StageTitle(stage domain.Stage) string {
	switch stage {
	case domain.StageStranger, domain.StageAcquaintance:
		return "-nim"
	case domain.StageFriend:
		return "-ssi"
	default:
		return ""
	}
}
