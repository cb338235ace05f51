package economy

import (
	"context"
	"fmt"
	"sync"

	"github.com/hanabira/hanachat/internal/domain"
	"github.com/hanabira/hanachat/internal/logger"
	"github.com/hanabira/hanachat/internal/metrics"
	"github.com/hanabira/hanachat/internal/store"
)

// RewardKind tells the caller which rule produced a reward, so only one
// change notification is shown per round.
type RewardKind string

const (
	RewardBase           RewardKind = "base"
	RewardAffectionBonus RewardKind = "affection_bonus"
)

// RewardResult describes the coins granted for one conversation round.
type RewardResult struct {
	Coins int
	Kind  RewardKind
}

// PurchaseResult describes the settled effects of a purchase. Direct-item
// bonuses are returned for the caller to apply; everything else is
// already settled when Purchase returns.
type PurchaseResult struct {
	Item             domain.Item
	CoinsSpent       int
	ThemeApplied     string
	BoosterActivated bool
	AffectionBonus   int
	CoinBonus        int
}

// Engine owns the session's coin balances and the active booster.
// All mutations persist synchronously, best effort, via the store.
type Engine struct {
	mu      sync.Mutex
	kv      store.KV
	economy domain.Economy
	booster domain.Booster

	// onBoosterExpired fires once when a countdown reaches zero.
	onBoosterExpired func()
}

// NewEngine creates an engine seeded from a persisted snapshot.
func NewEngine(kv store.KV, seed domain.Economy) *Engine {
	return &Engine{kv: kv, economy: seed}
}

// SetBoosterExpiredHandler registers the callback invoked when the
// active booster's countdown self-clears.
func (e *Engine) SetBoosterExpiredHandler(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onBoosterExpired = fn
}

// State returns a copy of the current balances.
func (e *Engine) State() domain.Economy {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.economy
}

// ActiveBooster returns a copy of the active booster, if any.
func (e *Engine) ActiveBooster() (domain.Booster, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.booster, e.booster.Active()
}

// Reset returns the engine to its zero state. Persisted keys are cleared
// separately by the session manager.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.economy = domain.Economy{}
	e.booster = domain.Booster{}
}

// GrantFirstLoginBonus grants the one-time signup coins. Returns the
// amount granted, zero when the bonus was already claimed.
func (e *Engine) GrantFirstLoginBonus(ctx context.Context) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.economy.FirstLoginGranted {
		return 0
	}
	e.economy.Coins = FirstLoginBonus
	e.economy.LifetimeCoins = FirstLoginBonus
	e.economy.FirstLoginGranted = true
	e.persist(ctx)

	metrics.CoinsAwarded.WithLabelValues(metrics.RewardSourceFirstLogin).Add(FirstLoginBonus)
	logger.FromContext(ctx).Info("first login bonus granted", "coins", FirstLoginBonus)
	return FirstLoginBonus
}

// AwardConversationReward settles the coins for one successful round.
// A positive affection delta earns delta x 20 x coin-multiplier and owns
// the round's notification; otherwise the base 5 x multiplier applies.
// Lifetime coins rise by the same amount as the balance.
func (e *Engine) AwardConversationReward(ctx context.Context, affectionDelta int) RewardResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	multiplier := e.booster.CoinMultiplier()

	result := RewardResult{Kind: RewardBase, Coins: BaseConversationReward * multiplier}
	if affectionDelta > 0 {
		result = RewardResult{
			Kind:  RewardAffectionBonus,
			Coins: affectionDelta * AffectionBonusRate * multiplier,
		}
	}

	e.economy.Coins += result.Coins
	e.economy.LifetimeCoins += result.Coins
	e.persist(ctx)

	metrics.CoinsAwarded.WithLabelValues(string(result.Kind)).Add(float64(result.Coins))
	return result
}

// GrantCoins adds amount to the balance and the lifetime total. Used by
// the developer override channel; validation happens at the call site.
func (e *Engine) GrantCoins(ctx context.Context, amount int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.economy.Coins += amount
	e.economy.LifetimeCoins += amount
	e.persist(ctx)
	metrics.CoinsAwarded.WithLabelValues(metrics.RewardSourceDeveloper).Add(float64(amount))
}

// Purchase validates and settles a purchase. On insufficient funds the
// engine, the inventory and the stored state are left untouched.
// An already-owned theme re-applies as active without charging.
func (e *Engine) Purchase(ctx context.Context, item domain.Item, inv *domain.Inventory) (PurchaseResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	result := PurchaseResult{Item: item}

	// Owned themes re-apply for free; no funds check, no settlement.
	if item.Kind == domain.ItemKindTheme && inv.Owns(item.ID) {
		inv.ActiveThemeID = item.ID
		result.ThemeApplied = item.ID
		if err := store.SaveInventory(ctx, e.kv, *inv); err != nil {
			logger.FromContext(ctx).Warn("persist inventory failed", "error", err)
		}
		return result, nil
	}

	if e.economy.Coins < item.Price {
		return PurchaseResult{}, fmt.Errorf("%w: need %d coins, have %d",
			domain.ErrInsufficientFunds, item.Price, e.economy.Coins)
	}

	e.economy.Coins -= item.Price
	result.CoinsSpent = item.Price

	switch item.Kind {
	case domain.ItemKindTheme:
		inv.OwnedThemeIDs[item.ID] = true
		inv.ActiveThemeID = item.ID
		result.ThemeApplied = item.ID
		if err := store.SaveInventory(ctx, e.kv, *inv); err != nil {
			logger.FromContext(ctx).Warn("persist inventory failed", "error", err)
		}

	case domain.ItemKindBooster:
		// Replaces any active booster; remaining time is discarded.
		e.booster = domain.Booster{
			ItemID:      item.ID,
			Multiplier:  item.Multiplier,
			AppliesTo:   item.AppliesTo,
			RemainingMs: item.DurationMs,
		}
		result.BoosterActivated = true
		metrics.BoosterActivations.WithLabelValues(item.ID).Inc()

	case domain.ItemKindDirect:
		// Fixed effects applied by the caller; coin bonuses settle here.
		// An active affection booster multiplies the item's affection gain.
		result.AffectionBonus = item.AffectionBonus * e.booster.AffectionMultiplier()
		result.CoinBonus = item.CoinBonus
		if item.CoinBonus > 0 {
			e.economy.Coins += item.CoinBonus
			e.economy.LifetimeCoins += item.CoinBonus
		}
	}

	e.persist(ctx)
	metrics.ItemsPurchased.WithLabelValues(item.ID).Inc()
	metrics.CoinsSpent.Add(float64(item.Price))
	logger.FromContext(ctx).Info("purchase settled", "item", item.ID, "price", item.Price)
	return result, nil
}

// TickBooster advances the active booster's countdown by elapsedMs.
// At zero the booster self-clears and the expiry handler fires.
func (e *Engine) TickBooster(elapsedMs int64) {
	e.mu.Lock()
	if !e.booster.Active() {
		e.mu.Unlock()
		return
	}

	e.booster.RemainingMs -= elapsedMs
	expired := e.booster.RemainingMs <= 0
	var handler func()
	if expired {
		e.booster = domain.Booster{}
		handler = e.onBoosterExpired
	}
	e.mu.Unlock()

	if expired && handler != nil {
		handler()
	}
}

// persist writes balances best-effort. Callers hold e.mu.
func (e *Engine) persist(ctx context.Context) {
	if err := store.SaveEconomy(ctx, e.kv, e.economy); err != nil {
		logger.FromContext(ctx).Warn("persist economy failed", "error", err)
	}
}
