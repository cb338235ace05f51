// Package session owns the lifecycle of the user/character session:
// resume-or-reset at startup, and the two teardown paths (new user,
// end conversation).
package session

import (
	"context"
	"sync"
	"time"

	"github.com/hanabira/hanachat/internal/domain"
	"github.com/hanabira/hanachat/internal/logger"
	"github.com/hanabira/hanachat/internal/metrics"
	"github.com/hanabira/hanachat/internal/relationship"
	"github.com/hanabira/hanachat/internal/scheduler"
	"github.com/hanabira/hanachat/internal/store"
)

// TeardownDelay keeps the farewell on screen before end-conversation
// erases the session.
const TeardownDelay = 3 * time.Second

// RemoteResetter is the external collaborator notified when a user asks
// to start over. Its failures are logged and swallowed.
type RemoteResetter interface {
	NotifyNewUser(ctx context.Context, userName string) error
}

// Confirmer is the yes/no gate shown before irreversible actions.
type Confirmer func(prompt string) bool

// Manager owns the session identity, its scheduler token, and the
// erase/reset choreography.
type Manager struct {
	kv      store.KV
	sched   *scheduler.Scheduler
	remote  RemoteResetter
	confirm Confirmer

	mu      sync.Mutex
	session domain.Session
	token   string

	// onReset returns every engine to its zero state. Registered by the
	// orchestrator after construction.
	onReset func()
}

// NewManager creates a session manager.
func NewManager(kv store.KV, sched *scheduler.Scheduler, remote RemoteResetter, confirm Confirmer) *Manager {
	return &Manager{
		kv:      kv,
		sched:   sched,
		remote:  remote,
		confirm: confirm,
		token:   logger.GenerateSessionID(),
	}
}

// SetResetHook registers the engine-reset callback.
func (m *Manager) SetResetHook(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onReset = fn
}

// Session returns a copy of the current session.
func (m *Manager) Session() domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// Token returns the scheduler token for the current session.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Startup decides whether to resume the persisted session. Resumption
// requires a user name, a valid character and the session-active flag;
// anything less positively erases every session key so no partial state
// lingers. On resume the returned welcome message references the user
// by name and relationship stage.
func (m *Manager) Startup(ctx context.Context) (snap store.Snapshot, resumed bool, welcome domain.Message, err error) {
	snap, err = store.LoadSnapshot(ctx, m.kv)
	if err != nil {
		return snap, false, domain.Message{}, err
	}

	if snap.Session.UserName == "" || !snap.Session.Character.Valid() || !snap.Session.Active {
		if err := m.kv.Clear(ctx); err != nil {
			logger.FromContext(ctx).Warn("erase stale session failed", "error", err)
		}
		return store.Snapshot{Inventory: domain.NewInventory()}, false, domain.Message{}, nil
	}

	m.mu.Lock()
	m.session = snap.Session
	m.mu.Unlock()

	welcome = domain.Message{
		Sender: domain.SenderBot,
		Text: relationship.WelcomeBackMessage(snap.Session.Character, snap.Session.UserName,
			snap.Affection.Level, relationship.DaysSinceFirstMet(snap.Session.FirstMet, time.Now())),
	}
	logger.FromContext(ctx).Info("session resumed",
		"user", snap.Session.UserName, "character", snap.Session.Character)
	return snap, true, welcome, nil
}

// Begin starts a fresh session after name submission and character
// selection.
func (m *Manager) Begin(ctx context.Context, userName string, character domain.CharacterID) (domain.Message, error) {
	if userName == "" {
		return domain.Message{}, domain.ErrInvalidInput
	}
	if !character.Valid() {
		return domain.Message{}, domain.ErrUnknownCharacter
	}

	session := domain.Session{UserName: userName, Character: character, Active: true, FirstMet: time.Now()}
	if err := store.SaveSession(ctx, m.kv, session); err != nil {
		logger.FromContext(ctx).Warn("persist session failed", "error", err)
	}

	m.mu.Lock()
	m.session = session
	m.mu.Unlock()

	return domain.Message{
		Sender: domain.SenderBot,
		Text:   relationship.WelcomeMessage(character, userName, 0),
	}, nil
}

// NewUser handles the "start over" action: confirmation gate, a
// best-effort reset signal to the remote service, then a full local
// erase back to character selection. Returns false if the user declined.
func (m *Manager) NewUser(ctx context.Context) bool {
	if !m.confirm("Start over as a new user? All progress will be erased.") {
		return false
	}

	userName := m.Session().UserName
	if userName != "" {
		if err := m.remote.NotifyNewUser(ctx, userName); err != nil {
			// Best effort: never blocks the local reset.
			logger.FromContext(ctx).Warn("remote new-user reset failed", "error", err)
		}
	}

	m.reset(ctx)
	metrics.SessionResets.WithLabelValues(metrics.ResetReasonNewUser).Inc()
	return true
}

// EndConversation handles the farewell path: confirmation gate, the
// session-active flag cleared in storage immediately (a reload during
// the farewell must not resume), then the full erase after TeardownDelay
// so the farewell stays visible. Returns the farewell and true when the
// user confirmed.
func (m *Manager) EndConversation(ctx context.Context) (domain.Message, bool) {
	if !m.confirm("Really end the conversation?") {
		return domain.Message{}, false
	}

	session := m.Session()
	if err := store.SaveSessionActive(ctx, m.kv, false); err != nil {
		logger.FromContext(ctx).Warn("clear session-active flag failed", "error", err)
	}

	farewell := domain.Message{
		Sender: domain.SenderBot,
		Text:   relationship.FarewellMessage(session.Character, session.UserName),
	}

	token := m.Token()
	m.sched.After(token, TeardownDelay, func() {
		m.reset(ctx)
		metrics.SessionResets.WithLabelValues(metrics.ResetReasonEndConversation).Inc()
	})
	return farewell, true
}

// reset erases persisted state, zeroes the engines, invalidates the old
// session's timers and rotates the scheduler token.
func (m *Manager) reset(ctx context.Context) {
	if err := m.kv.Clear(ctx); err != nil {
		logger.FromContext(ctx).Warn("erase session keys failed", "error", err)
	}

	m.mu.Lock()
	m.session.Reset()
	oldToken := m.token
	m.token = logger.GenerateSessionID()
	onReset := m.onReset
	m.mu.Unlock()

	m.sched.CancelSession(oldToken)
	if onReset != nil {
		onReset()
	}
	logger.FromContext(ctx).Info("session reset complete")
}
