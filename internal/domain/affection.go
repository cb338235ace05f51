package domain

// Stage is the discrete relationship label derived from the affection level.
type Stage string

const (
	StageEstranged     Stage = "estranged"
	StageStranger      Stage = "stranger"
	StageAcquaintance  Stage = "acquaintance"
	StageFriend        Stage = "friend"
	StageCloseFriend   Stage = "close friend"
	StageSpecialPerson Stage = "special person"
)

// AffectionMin and AffectionMax bound the affection level. The bounds are
// enforced on developer commands and local derivations; server-supplied
// levels are stored as received.
const (
	AffectionMin = -100
	AffectionMax = 100
)

// AffectionState tracks the relationship score with the selected persona.
type AffectionState struct {
	Level     int
	LastDelta int
}

// EmotionState is the display model for the persona's current emotion.
// It is derived per round and never persisted.
type EmotionState struct {
	Label      string
	Intensity  int // 1-10
	Glyph      string
	ColorToken string
	Reason     string
	Confidence float64 // 0-1
}
