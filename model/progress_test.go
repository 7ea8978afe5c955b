package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnedItemsRoundTrip(t *testing.T) {
	p := &PlayerProgress{}

	assert.Empty(t, p.OwnedItemIDs())
	assert.False(t, p.OwnsItem("hint_pack"))

	require.NoError(t, p.AddOwnedItem("hint_pack"))
	require.NoError(t, p.AddOwnedItem("lab_coat_gold"))

	assert.True(t, p.OwnsItem("hint_pack"))
	assert.True(t, p.OwnsItem("lab_coat_gold"))
	assert.Equal(t, []string{"hint_pack", "lab_coat_gold"}, p.OwnedItemIDs())
}

func TestAddOwnedItemIgnoresDuplicates(t *testing.T) {
	p := &PlayerProgress{}

	require.NoError(t, p.AddOwnedItem("hint_pack"))
	require.NoError(t, p.AddOwnedItem("hint_pack"))

	assert.Equal(t, []string{"hint_pack"}, p.OwnedItemIDs())
}

func TestOwnedItemsFromStoredColumn(t *testing.T) {
	p := &PlayerProgress{OwnedItems: json.RawMessage(`["double_xp"]`)}

	assert.True(t, p.OwnsItem("double_xp"))
	assert.False(t, p.OwnsItem("time_freeze"))
}
