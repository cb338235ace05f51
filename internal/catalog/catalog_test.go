package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanabira/hanachat/internal/domain"
)

func TestValidate(t *testing.T) {
	require.NoError(t, Validate())
}

func TestByID(t *testing.T) {
	item, err := ByID(BoosterCoinsX2)
	require.NoError(t, err)
	assert.Equal(t, domain.ItemKindBooster, item.Kind)
	assert.Equal(t, 2, item.Multiplier)
	assert.Equal(t, domain.BoosterTargetCoins, item.AppliesTo)

	_, err = ByID("nonexistent")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestThemeIDs(t *testing.T) {
	ids := ThemeIDs()
	assert.ElementsMatch(t, []string{ThemeSpring, ThemeTwilight, ThemeNoir}, ids)
	assert.NotContains(t, ids, domain.DefaultThemeID)
}

func TestDirectItemsCarryEffects(t *testing.T) {
	for _, item := range Items() {
		if item.Kind != domain.ItemKindDirect {
			continue
		}
		assert.True(t, item.AffectionBonus != 0 || item.CoinBonus != 0,
			"direct item %s has no effect", item.ID)
	}
}
