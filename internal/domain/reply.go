package domain

// Reply event types as emitted by the remote chat service.
const (
	EventTypeMilestone           = "milestone_achievement"
	EventTypeSpecialConversation = "special_conversation"
)

// ReplyEvent is a server-signaled in-chat event attached to a reply.
type ReplyEvent struct {
	Type            string   `json:"type"`
	Title           string   `json:"title,omitempty"`
	Message         string   `json:"message"`
	SpecialDialogue []string `json:"special_dialogue,omitempty"`
}

// ChatReply is the payload returned by the remote chat endpoint. Every
// field except Reply is optional; absent fields keep Go zero values and
// the orchestrator substitutes per-field defaults.
type ChatReply struct {
	Reply             string       `json:"reply"`
	AffectionLevel    *int         `json:"affection_level,omitempty"`
	AffectionChange   int          `json:"affection_change,omitempty"`
	Emotion           string       `json:"emotion,omitempty"`
	EmotionIntensity  int          `json:"emotion_intensity,omitempty"`
	EmotionEmoji      string       `json:"emotion_emoji,omitempty"`
	EmotionColor      string       `json:"emotion_color,omitempty"`
	EmotionReason     string       `json:"emotion_reason,omitempty"`
	EmotionConfidence float64      `json:"emotion_confidence,omitempty"`
	Events            []ReplyEvent `json:"events,omitempty"`
}
