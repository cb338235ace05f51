package relationship

import (
	"time"

	"github.com/hanabira/hanachat/internal/domain"
	"github.com/hanabira/hanachat/internal/scheduler"
)

// DialogueStepDelay spaces the lines of a milestone's special dialogue.
const DialogueStepDelay = 2 * time.Second

// DispatchEvents fans a reply's events into the transcript. A milestone
// achievement appends its system line immediately, then schedules each
// special-dialogue line as a bot message, one DialogueStepDelay after the
// previous. A special conversation appends a single bot message. The
// scheduled chain is bound to the session token, so a reset cancels any
// lines still pending.
func DispatchEvents(sched *scheduler.Scheduler, sessionToken string, events []domain.ReplyEvent, emit func(domain.Message)) {
	for _, event := range events {
		switch event.Type {
		case domain.EventTypeMilestone:
			text := event.Message
			if event.Title != "" {
				text = "🏆 " + event.Title + " — " + event.Message
			}
			emit(domain.Message{Sender: domain.SenderSystem, Text: text})

			for i, line := range event.SpecialDialogue {
				line := line
				delay := time.Duration(i+1) * DialogueStepDelay
				sched.After(sessionToken, delay, func() {
					emit(domain.Message{Sender: domain.SenderBot, Text: line})
				})
			}

		case domain.EventTypeSpecialConversation:
			emit(domain.Message{Sender: domain.SenderBot, Text: event.Message})
		}
	}
}
