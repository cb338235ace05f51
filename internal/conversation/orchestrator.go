// Package conversation sequences one chat round-trip: developer-command
// interception, the remote call, and fanning the reply's side effects
// into the relationship and economy engines.
package conversation

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/hanabira/hanachat/internal/catalog"
	"github.com/hanabira/hanachat/internal/devcmd"
	"github.com/hanabira/hanachat/internal/domain"
	"github.com/hanabira/hanachat/internal/economy"
	"github.com/hanabira/hanachat/internal/logger"
	"github.com/hanabira/hanachat/internal/metrics"
	"github.com/hanabira/hanachat/internal/relationship"
	"github.com/hanabira/hanachat/internal/scheduler"
	"github.com/hanabira/hanachat/internal/session"
)

// ChatAPI is the remote chat collaborator.
type ChatAPI interface {
	Chat(ctx context.Context, message, userName string) (domain.ChatReply, error)
}

// Orchestrator drives one round at a time. A second send is rejected
// while one is in flight; there is no queue and no cancellation.
type Orchestrator struct {
	api      ChatAPI
	sessions *session.Manager
	rel      *relationship.Engine
	eco      *economy.Engine
	dev      *devcmd.Handler
	sched    *scheduler.Scheduler

	mu           sync.Mutex
	inFlight     bool
	transcript   []domain.Message
	notification *Notification
	emitter      func(domain.Message)

	// stopCountdown cancels the running booster ticker when a
	// replacement booster restarts it.
	stopCountdown func()
}

// New creates an orchestrator over already-seeded engines.
func New(api ChatAPI, sessions *session.Manager, rel *relationship.Engine, eco *economy.Engine, dev *devcmd.Handler, sched *scheduler.Scheduler) *Orchestrator {
	return &Orchestrator{
		api:      api,
		sessions: sessions,
		rel:      rel,
		eco:      eco,
		dev:      dev,
		sched:    sched,
	}
}

// SetEmitter registers a callback invoked for every transcript append,
// including scheduled milestone dialogue lines.
func (o *Orchestrator) SetEmitter(fn func(domain.Message)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.emitter = fn
}

// IsLoading reports whether a round-trip is in flight.
func (o *Orchestrator) IsLoading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.inFlight
}

// Transcript returns a copy of the conversation so far.
func (o *Orchestrator) Transcript() []domain.Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]domain.Message, len(o.transcript))
	copy(out, o.transcript)
	return out
}

// Notification returns the currently visible change notice, if any.
func (o *Orchestrator) Notification() (Notification, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.notification == nil {
		return Notification{}, false
	}
	return *o.notification, true
}

// ResetTranscript drops the transcript and any visible notification.
// Wired as part of the session reset hook.
func (o *Orchestrator) ResetTranscript() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.transcript = nil
	o.notification = nil
}

// Append adds a message to the transcript and notifies the emitter.
func (o *Orchestrator) Append(m domain.Message) {
	o.mu.Lock()
	o.transcript = append(o.transcript, m)
	emitter := o.emitter
	o.mu.Unlock()
	if emitter != nil {
		emitter(m)
	}
}

// GrantFirstLoginBonus runs the one-time signup grant and shows its
// transient notice.
func (o *Orchestrator) GrantFirstLoginBonus(ctx context.Context) {
	granted := o.eco.GrantFirstLoginBonus(ctx)
	if granted == 0 {
		return
	}
	o.showNotification(Notification{Kind: NotificationCoins, Coins: granted}, FirstLoginNotificationClearDelay)
}

// Send runs one round. Empty input and overlapping sends are rejected
// before anything else happens. Developer commands are intercepted and
// never reach the network. A transport failure degrades to one fixed
// apologetic line with no state mutation.
func (o *Orchestrator) Send(ctx context.Context, input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return domain.ErrEmptyMessage
	}

	if devcmd.IsCommand(input) {
		o.Append(domain.Message{Sender: domain.SenderUser, Text: input})
		for _, m := range o.dev.Execute(ctx, input) {
			o.Append(m)
		}
		return nil
	}

	o.mu.Lock()
	if o.inFlight {
		o.mu.Unlock()
		return domain.ErrSendInFlight
	}
	o.inFlight = true
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.inFlight = false
		o.mu.Unlock()
	}()

	o.Append(domain.Message{Sender: domain.SenderUser, Text: input})

	sess := o.sessions.Session()
	reply, err := o.api.Chat(ctx, input, sess.UserName)
	if err != nil {
		logger.FromContext(ctx).Warn("chat round failed", "error", err)
		metrics.TransportFailures.Inc()
		metrics.ConversationRounds.WithLabelValues(metrics.OutcomeFailure).Inc()
		o.Append(domain.Message{
			Sender: domain.SenderBot,
			Text:   relationship.TransportFailureMessage(sess.Character),
		})
		return nil
	}

	o.applyReply(ctx, reply)
	metrics.ConversationRounds.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return nil
}

// applyReply fans a successful reply into the engines.
func (o *Orchestrator) applyReply(ctx context.Context, reply domain.ChatReply) {
	o.Append(domain.Message{Sender: domain.SenderBot, Text: reply.Reply})

	if reply.AffectionLevel != nil {
		o.rel.ApplyServerLevel(ctx, *reply.AffectionLevel, reply.AffectionChange)
	}

	reward := o.eco.AwardConversationReward(ctx, reply.AffectionChange)
	if reply.AffectionChange != 0 {
		o.showNotification(Notification{
			Kind:           NotificationAffection,
			AffectionDelta: reply.AffectionChange,
			Coins:          reward.Coins,
		}, NotificationClearDelay)
	} else {
		o.showNotification(Notification{
			Kind:  NotificationCoins,
			Coins: reward.Coins,
		}, NotificationClearDelay)
	}

	if o.rel.Override().Enabled {
		// Override active: emotion is recomputed from the local level,
		// not taken from the server.
		o.rel.SetEmotion(relationship.EmotionForLevel(o.rel.Affection().Level, o.rel.Character()))
	} else {
		o.rel.SetEmotion(relationship.EmotionFromReply(reply, o.rel.Character()))
	}

	relationship.DispatchEvents(o.sched, o.sessions.Token(), reply.Events, o.Append)
}

// Purchase settles a shop action: catalog lookup, funds check, and the
// item's effects. Direct-item affection bonuses flow into the
// relationship engine; a booster purchase restarts the countdown ticker.
func (o *Orchestrator) Purchase(ctx context.Context, itemID string, inv *domain.Inventory) error {
	item, err := catalog.ByID(itemID)
	if err != nil {
		return err
	}

	result, err := o.eco.Purchase(ctx, item, inv)
	if err != nil {
		return err
	}

	if result.BoosterActivated {
		o.mu.Lock()
		if o.stopCountdown != nil {
			o.stopCountdown()
		}
		o.mu.Unlock()

		stop := o.eco.StartBoosterCountdown(o.sched, o.sessions.Token())
		o.mu.Lock()
		o.stopCountdown = stop
		o.mu.Unlock()
	}

	if result.AffectionBonus != 0 {
		old := o.rel.Affection().Level
		newLevel := o.rel.ApplyPurchaseBonus(ctx, result.AffectionBonus)
		o.Append(domain.Message{
			Sender: domain.SenderBot,
			Text:   relationship.ReactionMessage(old, newLevel, o.rel.Character().ID),
		})
	}

	o.Append(domain.Message{Sender: domain.SenderSystem, Text: "Purchased " + item.Name + "."})
	return nil
}

// showNotification replaces the visible notice and schedules its clear
// under the session token. A clear that fires after another notice has
// replaced this one leaves the newer notice alone.
func (o *Orchestrator) showNotification(n Notification, clearAfter time.Duration) {
	o.mu.Lock()
	o.notification = &n
	o.mu.Unlock()

	o.sched.After(o.sessions.Token(), clearAfter, func() {
		o.mu.Lock()
		if o.notification != nil && *o.notification == n {
			o.notification = nil
		}
		o.mu.Unlock()
	})
}
