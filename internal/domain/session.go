package domain

import "time"

// Session holds the identity of the running conversation.
// Active is true only when both UserName and Character are set.
type Session struct {
	UserName  string
	Character CharacterID
	Active    bool
	// FirstMet records when this user first started a session. Zero on
	// legacy sessions persisted before the field existed.
	FirstMet time.Time
}

// Reset clears the session to its zero state.
func (s *Session) Reset() {
	*s = Session{}
}

// Sender identifies who produced a transcript message.
type Sender string

const (
	SenderUser   Sender = "user"
	SenderBot    Sender = "bot"
	SenderSystem Sender = "system"
)

// Message is one line of the conversation transcript.
type Message struct {
	Sender Sender
	Text   string
}
