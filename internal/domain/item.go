package domain

// ItemKind separates the three purchasable categories.
type ItemKind string

const (
	ItemKindTheme   ItemKind = "theme"
	ItemKindBooster ItemKind = "booster"
	ItemKindDirect  ItemKind = "direct"
)

// DefaultThemeID is the sentinel theme every inventory owns.
const DefaultThemeID = "default"

// Item is a static catalog entry.
type Item struct {
	ID          string   `validate:"required"`
	Name        string   `validate:"required"`
	Kind        ItemKind `validate:"required,oneof=theme booster direct"`
	Price       int      `validate:"gte=0"`
	Description string

	// Booster fields, set when Kind is ItemKindBooster.
	Multiplier int           `validate:"omitempty,oneof=0 2 3"`
	AppliesTo  BoosterTarget `validate:"omitempty,oneof=coins affection"`
	DurationMs int64         `validate:"gte=0"`

	// Direct-purchase effects, set when Kind is ItemKindDirect.
	AffectionBonus int
	CoinBonus      int
}

// Inventory is the set of owned cosmetic themes plus the active one.
// Ownership grows monotonically except on a full session reset.
type Inventory struct {
	OwnedThemeIDs map[string]bool
	ActiveThemeID string
}

// NewInventory returns an inventory owning only the default theme.
func NewInventory() Inventory {
	return Inventory{
		OwnedThemeIDs: map[string]bool{DefaultThemeID: true},
		ActiveThemeID: DefaultThemeID,
	}
}

// Owns reports whether the theme is in the owned set.
func (inv Inventory) Owns(themeID string) bool {
	return inv.OwnedThemeIDs[themeID]
}
