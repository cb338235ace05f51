package relationship

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanabira/hanachat/internal/domain"
	"github.com/hanabira/hanachat/internal/scheduler"
)

type transcript struct {
	mu       sync.Mutex
	messages []domain.Message
}

func (tr *transcript) emit(m domain.Message) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.messages = append(tr.messages, m)
}

func (tr *transcript) snapshot() []domain.Message {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	out := make([]domain.Message, len(tr.messages))
	copy(out, tr.messages)
	return out
}

func TestDispatchSpecialConversation(t *testing.T) {
	sched := scheduler.New()
	defer sched.Stop()
	tr := &transcript{}

	DispatchEvents(sched, "s1", []domain.ReplyEvent{
		{Type: domain.EventTypeSpecialConversation, Message: "Actually... can I tell you something?"},
	}, tr.emit)

	got := tr.snapshot()
	require.Len(t, got, 1)
	assert.Equal(t, domain.SenderBot, got[0].Sender)
	assert.Equal(t, "Actually... can I tell you something?", got[0].Text)
}

func TestDispatchMilestoneSchedulesDialogue(t *testing.T) {
	sched := scheduler.New()
	defer sched.Stop()
	tr := &transcript{}

	DispatchEvents(sched, "s1", []domain.ReplyEvent{
		{
			Type:            domain.EventTypeMilestone,
			Title:           "First Friend",
			Message:         "You became friends!",
			SpecialDialogue: []string{"line one", "line two"},
		},
	}, tr.emit)

	// System line appears immediately; dialogue lines are scheduled.
	got := tr.snapshot()
	require.Len(t, got, 1)
	assert.Equal(t, domain.SenderSystem, got[0].Sender)
	assert.Contains(t, got[0].Text, "First Friend")
	assert.Contains(t, got[0].Text, "You became friends!")

	deadline := time.After(2*DialogueStepDelay + time.Second)
	for len(tr.snapshot()) < 3 {
		select {
		case <-deadline:
			t.Fatal("Timeout waiting for scheduled dialogue lines")
		case <-time.After(20 * time.Millisecond):
		}
	}

	got = tr.snapshot()
	require.Len(t, got, 3)
	assert.Equal(t, "line one", got[1].Text)
	assert.Equal(t, "line two", got[2].Text)
	assert.Equal(t, domain.SenderBot, got[1].Sender)
}

func TestDispatchMilestoneCancelledBySessionReset(t *testing.T) {
	sched := scheduler.New()
	defer sched.Stop()
	tr := &transcript{}

	DispatchEvents(sched, "s1", []domain.ReplyEvent{
		{
			Type:            domain.EventTypeMilestone,
			Message:         "milestone",
			SpecialDialogue: []string{"never shown"},
		},
	}, tr.emit)

	sched.CancelSession("s1")
	time.Sleep(DialogueStepDelay + 300*time.Millisecond)

	got := tr.snapshot()
	require.Len(t, got, 1, "dialogue line survived session cancel")
}

func TestDispatchIgnoresUnknownEventTypes(t *testing.T) {
	sched := scheduler.New()
	defer sched.Stop()
	tr := &transcript{}

	DispatchEvents(sched, "s1", []domain.ReplyEvent{
		{Type: "confetti_storm", Message: "???"},
	}, tr.emit)

	assert.Empty(t, tr.snapshot())
}
