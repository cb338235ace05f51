package catalog

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/hanabira/hanachat/internal/domain"
)

// Item IDs referenced across the engine and tests.
const (
	ThemeSpring   = "theme_spring"
	ThemeTwilight = "theme_twilight"
	ThemeNoir     = "theme_noir"

	BoosterCoinsX2     = "booster_coins_x2"
	BoosterCoinsX3     = "booster_coins_x3"
	BoosterAffectionX2 = "booster_affection_x2"

	DirectGiftFlower = "gift_flower"
	DirectPicnicSet  = "picnic_set"
)

const (
	tenMinutesMs  = 10 * 60 * 1000
	fiveMinutesMs = 5 * 60 * 1000
)

// items is the fixed shop catalog. The default theme is not listed; it is
// the free sentinel every inventory owns.
var items = []domain.Item{
	{
		ID:          ThemeSpring,
		Name:        "Spring Blossom",
		Kind:        domain.ItemKindTheme,
		Price:       150,
		Description: "Soft pink chat theme with falling petals.",
	},
	{
		ID:          ThemeTwilight,
		Name:        "Twilight",
		Kind:        domain.ItemKindTheme,
		Price:       200,
		Description: "Dusky gradient theme for evening talks.",
	},
	{
		ID:          ThemeNoir,
		Name:        "Noir",
		Kind:        domain.ItemKindTheme,
		Price:       250,
		Description: "High-contrast monochrome theme.",
	},
	{
		ID:          BoosterCoinsX2,
		Name:        "Coin Booster x2",
		Kind:        domain.ItemKindBooster,
		Price:       300,
		Description: "Doubles coin rewards for 10 minutes.",
		Multiplier:  2,
		AppliesTo:   domain.BoosterTargetCoins,
		DurationMs:  tenMinutesMs,
	},
	{
		ID:          BoosterCoinsX3,
		Name:        "Coin Booster x3",
		Kind:        domain.ItemKindBooster,
		Price:       500,
		Description: "Triples coin rewards for 5 minutes.",
		Multiplier:  3,
		AppliesTo:   domain.BoosterTargetCoins,
		DurationMs:  fiveMinutesMs,
	},
	{
		ID:          BoosterAffectionX2,
		Name:        "Affection Booster x2",
		Kind:        domain.ItemKindBooster,
		Price:       400,
		Description: "Doubles affection gains for 10 minutes.",
		Multiplier:  2,
		AppliesTo:   domain.BoosterTargetAffection,
		DurationMs:  tenMinutesMs,
	},
	{
		ID:             DirectGiftFlower,
		Name:           "Bouquet",
		Kind:           domain.ItemKindDirect,
		Price:          120,
		Description:    "A small bouquet. Warms the mood right away.",
		AffectionBonus: 5,
	},
	{
		ID:             DirectPicnicSet,
		Name:           "Picnic Set",
		Kind:           domain.ItemKindDirect,
		Price:          200,
		Description:    "An afternoon out together.",
		AffectionBonus: 8,
		CoinBonus:      20,
	},
}

// Items returns the full catalog.
func Items() []domain.Item {
	out := make([]domain.Item, len(items))
	copy(out, items)
	return out
}

// ByID looks up a catalog item.
func ByID(id string) (domain.Item, error) {
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return domain.Item{}, fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
}

// ThemeIDs returns every purchasable theme id, default sentinel excluded.
func ThemeIDs() []string {
	var ids []string
	for _, item := range items {
		if item.Kind == domain.ItemKindTheme {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// Validate checks the static definitions against their struct tags.
// Run once at startup; a bad definition is a programming error.
func Validate() error {
	v := validator.New()
	seen := map[string]bool{}
	for _, item := range items {
		if seen[item.ID] {
			return fmt.Errorf("%w: duplicate item id %s", domain.ErrInvalidInput, item.ID)
		}
		seen[item.ID] = true
		if err := v.Struct(item); err != nil {
			return fmt.Errorf("item %s: %w", item.ID, err)
		}
		if item.Kind == domain.ItemKindBooster && (item.Multiplier < 2 || item.DurationMs <= 0) {
			return fmt.Errorf("%w: booster %s needs multiplier and duration", domain.ErrInvalidInput, item.ID)
		}
	}
	return nil
}
