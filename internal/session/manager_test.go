package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanabira/hanachat/internal/domain"
	"github.com/hanabira/hanachat/internal/scheduler"
	"github.com/hanabira/hanachat/internal/store"
)

type fakeRemote struct {
	calls []string
	err   error
}

func (f *fakeRemote) NotifyNewUser(_ context.Context, userName string) error {
	f.calls = append(f.calls, userName)
	return f.err
}

func alwaysConfirm(string) bool { return true }
func neverConfirm(string) bool  { return false }

func seedActiveSession(t *testing.T, kv store.KV) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.SaveSession(ctx, kv, domain.Session{
		UserName: "Min", Character: domain.CharacterKaoruko, Active: true,
		FirstMet: time.Now().AddDate(0, 0, -3),
	}))
	require.NoError(t, store.SaveAffection(ctx, kv, 45))
	require.NoError(t, store.SaveEconomy(ctx, kv, domain.Economy{Coins: 160, LifetimeCoins: 160, FirstLoginGranted: true}))
}

func TestStartupResumes(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	seedActiveSession(t, kv)

	sched := scheduler.New()
	defer sched.Stop()
	m := NewManager(kv, sched, &fakeRemote{}, alwaysConfirm)

	snap, resumed, welcome, err := m.Startup(ctx)
	require.NoError(t, err)
	assert.True(t, resumed)
	assert.Equal(t, "Min", snap.Session.UserName)
	assert.Equal(t, 45, snap.Affection.Level)
	assert.Equal(t, domain.SenderBot, welcome.Sender)
	assert.Contains(t, welcome.Text, "Min")
	assert.Contains(t, welcome.Text, "3 days", "resumed welcome recalls the first meeting")
	assert.Equal(t, "Min", m.Session().UserName)
}

func TestStartupErasesPartialState(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()

	// User name present but no session-active flag: must not resume, and
	// the leftovers must be positively erased.
	require.NoError(t, kv.Set(ctx, store.KeyUserName, "Min"))
	require.NoError(t, kv.Set(ctx, store.KeyCharacter, "kaoruko"))
	require.NoError(t, kv.Set(ctx, store.KeyCoins, "999"))

	sched := scheduler.New()
	defer sched.Stop()
	m := NewManager(kv, sched, &fakeRemote{}, alwaysConfirm)

	_, resumed, _, err := m.Startup(ctx)
	require.NoError(t, err)
	assert.False(t, resumed)
	assert.Equal(t, 0, kv.Len(), "stale keys must be erased")
}

func TestStartupRejectsNonLiteralActiveFlag(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	seedActiveSession(t, kv)
	// Overwrite with a value that is truthy-looking but not the literal.
	require.NoError(t, kv.Set(ctx, store.KeySessionActive, "1"))

	sched := scheduler.New()
	defer sched.Stop()
	m := NewManager(kv, sched, &fakeRemote{}, alwaysConfirm)

	_, resumed, _, err := m.Startup(ctx)
	require.NoError(t, err)
	assert.False(t, resumed)
}

func TestBegin(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	sched := scheduler.New()
	defer sched.Stop()
	m := NewManager(kv, sched, &fakeRemote{}, alwaysConfirm)

	welcome, err := m.Begin(ctx, "Min", domain.CharacterSubaru)
	require.NoError(t, err)
	assert.Contains(t, welcome.Text, "Min")

	session := m.Session()
	assert.True(t, session.Active)
	assert.Equal(t, domain.CharacterSubaru, session.Character)
	assert.False(t, session.FirstMet.IsZero(), "first meeting is recorded at begin")

	// Persisted with the string-typed flag.
	value, found, err := kv.Get(ctx, store.KeySessionActive)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "true", value)

	_, err = m.Begin(ctx, "", domain.CharacterKaoruko)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = m.Begin(ctx, "Min", domain.CharacterID("stranger-chan"))
	assert.ErrorIs(t, err, domain.ErrUnknownCharacter)
}

func TestNewUserDeclined(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	seedActiveSession(t, kv)
	sched := scheduler.New()
	defer sched.Stop()
	remote := &fakeRemote{}
	m := NewManager(kv, sched, remote, neverConfirm)

	_, _, _, err := m.Startup(ctx)
	require.NoError(t, err)

	assert.False(t, m.NewUser(ctx))
	assert.Empty(t, remote.calls)
	assert.Equal(t, "Min", m.Session().UserName, "declined reset must not clear state")
}

func TestNewUserResets(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	seedActiveSession(t, kv)
	sched := scheduler.New()
	defer sched.Stop()
	remote := &fakeRemote{}
	m := NewManager(kv, sched, remote, alwaysConfirm)

	_, _, _, err := m.Startup(ctx)
	require.NoError(t, err)

	resetCalled := false
	m.SetResetHook(func() { resetCalled = true })
	oldToken := m.Token()

	assert.True(t, m.NewUser(ctx))
	assert.Equal(t, []string{"Min"}, remote.calls)
	assert.Equal(t, 0, kv.Len())
	assert.True(t, resetCalled)
	assert.Equal(t, domain.Session{}, m.Session())
	assert.NotEqual(t, oldToken, m.Token(), "token must rotate on reset")
}

func TestNewUserRemoteFailureSwallowed(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	seedActiveSession(t, kv)
	sched := scheduler.New()
	defer sched.Stop()
	remote := &fakeRemote{err: errors.New("service down")}
	m := NewManager(kv, sched, remote, alwaysConfirm)

	_, _, _, err := m.Startup(ctx)
	require.NoError(t, err)

	// The remote failure never blocks the local reset.
	assert.True(t, m.NewUser(ctx))
	assert.Equal(t, 0, kv.Len())
}

func TestEndConversation(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	seedActiveSession(t, kv)
	sched := scheduler.New()
	defer sched.Stop()
	m := NewManager(kv, sched, &fakeRemote{}, alwaysConfirm)

	_, _, _, err := m.Startup(ctx)
	require.NoError(t, err)

	farewell, ok := m.EndConversation(ctx)
	require.True(t, ok)
	assert.Contains(t, farewell.Text, "Min")

	// Flag cleared immediately: a reload mid-farewell must not resume.
	_, found, err := kv.Get(ctx, store.KeySessionActive)
	require.NoError(t, err)
	assert.False(t, found)

	// Other state survives until the delayed teardown fires.
	_, found, err = kv.Get(ctx, store.KeyUserName)
	require.NoError(t, err)
	assert.True(t, found)

	require.Eventually(t, func() bool { return kv.Len() == 0 },
		TeardownDelay+2*time.Second, 50*time.Millisecond,
		"full erase must happen after the teardown delay")
	assert.Equal(t, domain.Session{}, m.Session())
}

func TestEndConversationDeclined(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	seedActiveSession(t, kv)
	sched := scheduler.New()
	defer sched.Stop()
	m := NewManager(kv, sched, &fakeRemote{}, neverConfirm)

	_, _, _, err := m.Startup(ctx)
	require.NoError(t, err)

	_, ok := m.EndConversation(ctx)
	assert.False(t, ok)

	value, found, err := kv.Get(ctx, store.KeySessionActive)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "true", value)
}
