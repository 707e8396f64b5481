package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/lineage/internal/domain/entities"
)

func TestFamilyHandler_SeedStatsReset(t *testing.T) {
	handler := NewFamilyHandler(newEmptyFamily(t))

	assert.Zero(t, handler.HandleStats().Members)

	require.NoError(t, handler.HandleSeed(t.Context()))
	stats := handler.HandleStats()
	assert.Equal(t, 12, stats.Members)
	assert.Equal(t, 18, stats.Relationships)
	assert.Equal(t, []int{0, 1, 2, 3}, stats.Generations)

	require.NoError(t, handler.HandleReset(t.Context()))
	assert.Zero(t, handler.HandleStats().Members)
}

func TestFamilyHandler_HandleHistory(t *testing.T) {
	family, _ := newSeededFamily(t)
	handler := NewFamilyHandler(family)
	members := NewMemberHandler(family)

	_, err := members.HandleUpdate(t.Context(), "7", map[string]string{"status": "Single"})
	require.NoError(t, err)
	_, err = members.HandleUpdate(t.Context(), "8", map[string]string{"status": "Single"})
	require.NoError(t, err)

	all, err := handler.HandleHistory(t.Context(), "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	olivia, err := handler.HandleHistory(t.Context(), "Olivia Johnson", 10)
	require.NoError(t, err)
	require.Len(t, olivia, 1)
	assert.Equal(t, entities.ActionMemberUpdated, olivia[0].Action)

	_, err = handler.HandleHistory(t.Context(), "Nobody", 10)
	assert.ErrorIs(t, err, entities.ErrMemberNotFound)
}
