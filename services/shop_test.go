package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chemquest-app/chemquest_api/shared"
)

func TestShopCatalog(t *testing.T) {
	require.NotEmpty(t, shopCatalog)

	validTypes := map[string]bool{
		shared.ItemTypeCosmetic: true,
		shared.ItemTypePowerUp:  true,
		shared.ItemTypeBadge:    true,
	}

	seen := map[string]bool{}
	for _, item := range shopCatalog {
		assert.False(t, seen[item.ID], "duplicate item id %s", item.ID)
		seen[item.ID] = true

		assert.NotEmpty(t, item.Name)
		assert.Greater(t, item.Price, 0)
		assert.True(t, validTypes[item.Type], "unknown item type %s", item.Type)
	}
}

func TestItemByID(t *testing.T) {
	item, ok := itemByID("hint_pack")
	require.True(t, ok)
	assert.Equal(t, "hint_pack", item.ID)
	assert.Equal(t, shared.ItemTypePowerUp, item.Type)

	_, ok = itemByID("philosophers_stone")
	assert.False(t, ok)
}

func TestInsufficientFundsShortfall(t *testing.T) {
	item, ok := itemByID("lab_coat_gold")
	require.True(t, ok)

	coins := 100
	data := shortfallData(item.Price, coins)

	assert.Equal(t, item.Price, data.Required)
	assert.Equal(t, coins, data.Current)
	assert.Equal(t, item.Price-coins, data.Shortfall)
}
