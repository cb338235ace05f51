package domain

// Economy tracks the session's coin balance.
// LifetimeCoins only ever increases; spending reduces Coins alone.
type Economy struct {
	Coins             int
	LifetimeCoins     int
	FirstLoginGranted bool
}

// BoosterTarget names the quantity a booster multiplies.
type BoosterTarget string

const (
	BoosterTargetCoins     BoosterTarget = "coins"
	BoosterTargetAffection BoosterTarget = "affection"
)

// Booster is a time-limited multiplier. At most one booster is active at
// a time; activating another replaces it.
type Booster struct {
	ItemID      string
	Multiplier  int
	AppliesTo   BoosterTarget
	RemainingMs int64
}

// Active reports whether the booster still has time left.
func (b Booster) Active() bool {
	return b.ItemID != "" && b.RemainingMs > 0
}

// CoinMultiplier returns the multiplier to apply to a coin gain:
// the booster's multiplier when it is active and targets coins, else 1.
func (b Booster) CoinMultiplier() int {
	if b.Active() && b.AppliesTo == BoosterTargetCoins {
		return b.Multiplier
	}
	return 1
}

// AffectionMultiplier returns the multiplier to apply to an affection
// gain: the booster's multiplier when it is active and targets
// affection, else 1.
func (b Booster) AffectionMultiplier() int {
	if b.Active() && b.AppliesTo == BoosterTargetAffection {
		return b.Multiplier
	}
	return 1
}

// DeveloperOverride holds the local bypass flags. While AffectionLocked
// is set, server-driven affection updates are ignored.
type DeveloperOverride struct {
	Enabled         bool
	AffectionLocked bool
}
