package conversation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hanabira/hanachat/internal/catalog"
	"github.com/hanabira/hanachat/internal/devcmd"
	"github.com/hanabira/hanachat/internal/domain"
	"github.com/hanabira/hanachat/internal/economy"
	"github.com/hanabira/hanachat/internal/relationship"
	"github.com/hanabira/hanachat/internal/scheduler"
	"github.com/hanabira/hanachat/internal/session"
	"github.com/hanabira/hanachat/internal/store"
)

// MockChatAPI implements ChatAPI for testing
type MockChatAPI struct {
	mock.Mock
}

func (m *MockChatAPI) Chat(ctx context.Context, message, userName string) (domain.ChatReply, error) {
	args := m.Called(ctx, message, userName)
	return args.Get(0).(domain.ChatReply), args.Error(1)
}

type noopRemote struct{}

func (noopRemote) NotifyNewUser(context.Context, string) error { return nil }

type harness struct {
	api   *MockChatAPI
	orch  *Orchestrator
	rel   *relationship.Engine
	eco   *economy.Engine
	inv   *domain.Inventory
	kv    *store.Memory
	sched *scheduler.Scheduler
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	kv := store.NewMemory()
	sched := scheduler.New()
	t.Cleanup(sched.Stop)

	sessions := session.NewManager(kv, sched, noopRemote{}, func(string) bool { return true })
	_, err := sessions.Begin(context.Background(), "Min", domain.CharacterKaoruko)
	require.NoError(t, err)

	character, _ := domain.CharacterByID(domain.CharacterKaoruko)
	rel := relationship.NewEngine(kv, character, domain.AffectionState{}, domain.DeveloperOverride{})
	eco := economy.NewEngine(kv, domain.Economy{})
	inv := domain.NewInventory()
	dev := &devcmd.Handler{Relationship: rel, Economy: eco, Inventory: &inv, KV: kv}

	api := &MockChatAPI{}
	orch := New(api, sessions, rel, eco, dev, sched)

	return &harness{api: api, orch: orch, rel: rel, eco: eco, inv: &inv, kv: kv, sched: sched}
}

func intPtr(v int) *int { return &v }

func TestSendRejectsEmptyInput(t *testing.T) {
	h := newHarness(t)

	err := h.orch.Send(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyMessage)
	assert.Empty(t, h.orch.Transcript())
	h.api.AssertNotCalled(t, "Chat")
}

func TestSendDeveloperCommandNeverReachesNetwork(t *testing.T) {
	h := newHarness(t)

	err := h.orch.Send(context.Background(), "/dev affection 90")
	require.NoError(t, err)

	h.api.AssertNotCalled(t, "Chat")
	assert.Equal(t, 90, h.rel.Affection().Level)

	transcript := h.orch.Transcript()
	require.GreaterOrEqual(t, len(transcript), 3)
	assert.Equal(t, domain.SenderUser, transcript[0].Sender)
	assert.Equal(t, domain.SenderSystem, transcript[1].Sender)
	assert.Equal(t, domain.SenderBot, transcript[2].Sender)
}

func TestFirstLoginScenario(t *testing.T) {
	// New user "Min": first login grants 100/100; one message with
	// affection_change=+3 raises the level by 3 and earns 3*20=60 coins.
	ctx := context.Background()
	h := newHarness(t)

	h.orch.GrantFirstLoginBonus(ctx)
	state := h.eco.State()
	assert.Equal(t, 100, state.Coins)
	assert.Equal(t, 100, state.LifetimeCoins)

	notif, visible := h.orch.Notification()
	require.True(t, visible)
	assert.Equal(t, NotificationCoins, notif.Kind)
	assert.Equal(t, 100, notif.Coins)

	h.api.On("Chat", mock.Anything, "hello", "Min").Return(domain.ChatReply{
		Reply:           "hello Min!",
		AffectionLevel:  intPtr(3),
		AffectionChange: 3,
	}, nil)

	require.NoError(t, h.orch.Send(ctx, "hello"))

	assert.Equal(t, 3, h.rel.Affection().Level)
	state = h.eco.State()
	assert.Equal(t, 160, state.Coins)
	assert.Equal(t, 160, state.LifetimeCoins)

	notif, visible = h.orch.Notification()
	require.True(t, visible)
	assert.Equal(t, NotificationAffection, notif.Kind)
	assert.Equal(t, 3, notif.AffectionDelta)
	assert.Equal(t, 60, notif.Coins)
}

func TestSendBaseRewardWhenNoAffectionChange(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	h.api.On("Chat", mock.Anything, mock.Anything, mock.Anything).Return(domain.ChatReply{
		Reply: "mm.",
	}, nil)

	require.NoError(t, h.orch.Send(ctx, "hi"))

	assert.Equal(t, economy.BaseConversationReward, h.eco.State().Coins)
	notif, visible := h.orch.Notification()
	require.True(t, visible)
	assert.Equal(t, NotificationCoins, notif.Kind)
	assert.Equal(t, economy.BaseConversationReward, notif.Coins)
}

func TestSendUpdatesEmotionFromReply(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	h.api.On("Chat", mock.Anything, mock.Anything, mock.Anything).Return(domain.ChatReply{
		Reply:            "wow!",
		Emotion:          relationship.EmotionSurprised,
		EmotionIntensity: 8,
		EmotionEmoji:     "😲",
	}, nil)

	require.NoError(t, h.orch.Send(ctx, "guess what"))

	emotion := h.rel.Emotion()
	assert.Equal(t, relationship.EmotionSurprised, emotion.Label)
	assert.Equal(t, 8, emotion.Intensity)
	// Absent fields fell back to their literal defaults.
	assert.Equal(t, relationship.DefaultEmotionConfidence, emotion.Confidence)
	assert.Equal(t, h.rel.Character().DefaultColor, emotion.ColorToken)
}

func TestSendTransportFailure(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	h.eco.GrantFirstLoginBonus(ctx)
	h.rel.ApplyServerLevel(ctx, 40, 0)

	h.api.On("Chat", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.ChatReply{}, errors.New("connection refused"))

	require.NoError(t, h.orch.Send(ctx, "are you there?"))

	// One apologetic bot line; affection, coins and emotion untouched.
	transcript := h.orch.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, domain.SenderBot, transcript[1].Sender)
	assert.Equal(t, relationship.TransportFailureMessage(domain.CharacterKaoruko), transcript[1].Text)

	assert.Equal(t, 40, h.rel.Affection().Level)
	assert.Equal(t, 100, h.eco.State().Coins)
	assert.Equal(t, relationship.DefaultEmotionLabel, h.rel.Emotion().Label)
	assert.False(t, h.orch.IsLoading(), "loading flag must clear on failure")
}

func TestSendRejectsOverlappingSends(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	release := make(chan struct{})
	h.api.On("Chat", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { <-release }).
		Return(domain.ChatReply{Reply: "done"}, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = h.orch.Send(ctx, "first")
	}()

	// Wait for the first send to be in flight.
	require.Eventually(t, h.orch.IsLoading, time.Second, 5*time.Millisecond)

	err := h.orch.Send(ctx, "second")
	assert.ErrorIs(t, err, domain.ErrSendInFlight)

	close(release)
	wg.Wait()
	assert.False(t, h.orch.IsLoading())
}

func TestAffectionLockBlocksServerUpdates(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	require.NoError(t, h.orch.Send(ctx, "/dev affection 90"))

	h.api.On("Chat", mock.Anything, mock.Anything, mock.Anything).Return(domain.ChatReply{
		Reply:           "hmph",
		AffectionLevel:  intPtr(10),
		AffectionChange: -80,
	}, nil).Once()

	require.NoError(t, h.orch.Send(ctx, "hello"))
	assert.Equal(t, 90, h.rel.Affection().Level, "locked level must survive server replies")

	// While the override is active, emotion tracks the local level.
	assert.Equal(t, relationship.EmotionFluttered, h.rel.Emotion().Label)

	// Clearing the lock restores server-driven updates on the next reply.
	require.NoError(t, h.orch.Send(ctx, "/dev clear"))
	h.api.On("Chat", mock.Anything, mock.Anything, mock.Anything).Return(domain.ChatReply{
		Reply:          "oh",
		AffectionLevel: intPtr(10),
	}, nil).Once()

	require.NoError(t, h.orch.Send(ctx, "hello again"))
	assert.Equal(t, 10, h.rel.Affection().Level)
}

func TestSendDispatchesEvents(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	h.api.On("Chat", mock.Anything, mock.Anything, mock.Anything).Return(domain.ChatReply{
		Reply: "congrats!",
		Events: []domain.ReplyEvent{
			{Type: domain.EventTypeMilestone, Title: "Friends", Message: "You became friends!"},
			{Type: domain.EventTypeSpecialConversation, Message: "...can I tell you a secret?"},
		},
	}, nil)

	require.NoError(t, h.orch.Send(ctx, "hi"))

	transcript := h.orch.Transcript()
	// user + reply + milestone system line + special conversation line.
	require.Len(t, transcript, 4)
	assert.Equal(t, domain.SenderSystem, transcript[2].Sender)
	assert.Contains(t, transcript[2].Text, "Friends")
	assert.Equal(t, domain.SenderBot, transcript[3].Sender)
}

func TestNotificationAutoClears(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	h.api.On("Chat", mock.Anything, mock.Anything, mock.Anything).Return(domain.ChatReply{
		Reply: "ok",
	}, nil)
	require.NoError(t, h.orch.Send(ctx, "hi"))

	_, visible := h.orch.Notification()
	require.True(t, visible)

	require.Eventually(t, func() bool {
		_, visible := h.orch.Notification()
		return !visible
	}, NotificationClearDelay+2*time.Second, 50*time.Millisecond)
}

func TestPurchaseFlow(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	// Not enough coins: error surfaces, nothing changes.
	err := h.orch.Purchase(ctx, catalog.DirectGiftFlower, h.inv)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Empty(t, h.orch.Transcript())

	h.eco.GrantCoins(ctx, 1000)

	// Direct item applies its affection bonus and appends a reaction.
	require.NoError(t, h.orch.Purchase(ctx, catalog.DirectGiftFlower, h.inv))
	item, _ := catalog.ByID(catalog.DirectGiftFlower)
	assert.Equal(t, item.AffectionBonus, h.rel.Affection().Level)
	transcript := h.orch.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, domain.SenderBot, transcript[0].Sender)
	assert.Equal(t, domain.SenderSystem, transcript[1].Sender)

	// Unknown item.
	err = h.orch.Purchase(ctx, "mystery_box", h.inv)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	// Booster purchase activates exactly one booster.
	require.NoError(t, h.orch.Purchase(ctx, catalog.BoosterCoinsX2, h.inv))
	booster, active := h.eco.ActiveBooster()
	require.True(t, active)
	assert.Equal(t, catalog.BoosterCoinsX2, booster.ItemID)
}
