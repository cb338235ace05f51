package relationship

import "github.com/hanabira/hanachat/internal/domain"

// Emotion labels used by the display model. The remote service emits the
// same tag set; local derivation only ever picks from these.
const (
	EmotionShy       = "shy"
	EmotionHappy     = "happy"
	EmotionSad       = "sad"
	EmotionAngry     = "angry"
	EmotionSurprised = "surprised"
	EmotionFluttered = "fluttered"
)

// Per-field defaults substituted when a reply omits an emotion field.
const (
	DefaultEmotionLabel      = EmotionShy
	DefaultEmotionIntensity  = 5
	DefaultEmotionGlyph      = "😊"
	DefaultEmotionConfidence = 0.5
)

type emotionBand struct {
	label      string
	intensity  int
	glyph      string
	reason     string
	confidence float64
}

var emotionByStage = map[domain.Stage]emotionBand{
	domain.StageEstranged:     {EmotionSad, 3, "😢", "feeling distant", 0.9},
	domain.StageStranger:      {EmotionShy, 4, "😊", "still a little guarded", 0.85},
	domain.StageAcquaintance:  {EmotionHappy, 5, "😄", "opening up bit by bit", 0.85},
	domain.StageFriend:        {EmotionHappy, 6, "😄", "comfortable and at ease", 0.9},
	domain.StageCloseFriend:   {EmotionFluttered, 7, "💕", "deeply trusting", 0.9},
	domain.StageSpecialPerson: {EmotionFluttered, 9, "💕", "heart racing", 0.95},
}

// EmotionForLevel derives a full emotion tuple from the affection level.
// Used only while the developer override is active; during normal rounds
// the server supplies emotion fields directly. Color tokens come from
// the character's palette for the level's stage.
func EmotionForLevel(level int, character domain.Character) domain.EmotionState {
	stage := ClassifyStage(level)
	band := emotionByStage[stage]

	color := character.Palette[stage]
	if color == "" {
		color = character.DefaultColor
	}

	return domain.EmotionState{
		Label:      band.label,
		Intensity:  band.intensity,
		Glyph:      band.glyph,
		ColorToken: color,
		Reason:     band.reason,
		Confidence: band.confidence,
	}
}

// DefaultEmotion is the display state used at startup and after resets.
func DefaultEmotion(character domain.Character) domain.EmotionState {
	return domain.EmotionState{
		Label:      DefaultEmotionLabel,
		Intensity:  DefaultEmotionIntensity,
		Glyph:      DefaultEmotionGlyph,
		ColorToken: character.DefaultColor,
		Confidence: DefaultEmotionConfidence,
	}
}

// EmotionFromReply builds the display state from a reply's emotion
// fields, substituting the literal default for each absent field
// independently.
func EmotionFromReply(reply domain.ChatReply, character domain.Character) domain.EmotionState {
	state := domain.EmotionState{
		Label:      reply.Emotion,
		Intensity:  reply.EmotionIntensity,
		Glyph:      reply.EmotionEmoji,
		ColorToken: reply.EmotionColor,
		Reason:     reply.EmotionReason,
		Confidence: reply.EmotionConfidence,
	}
	if state.Label == "" {
		state.Label = DefaultEmotionLabel
	}
	if state.Intensity == 0 {
		state.Intensity = DefaultEmotionIntensity
	}
	if state.Glyph == "" {
		state.Glyph = DefaultEmotionGlyph
	}
	if state.ColorToken == "" {
		state.ColorToken = character.DefaultColor
	}
	if state.Confidence == 0 {
		state.Confidence = DefaultEmotionConfidence
	}
	return state
}
