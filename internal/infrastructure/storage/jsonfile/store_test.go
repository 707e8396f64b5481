package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/lineage/internal/domain/entities"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "documents"))
	require.NoError(t, err)
	return store
}

func TestNewStore(t *testing.T) {
	t.Run("creates directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "a", "b")
		store, err := NewStore(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, store.Dir())
		assert.DirExists(t, dir)
	})

	t.Run("empty dir", func(t *testing.T) {
		_, err := NewStore("")
		assert.Error(t, err)
	})
}

func TestStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	doc, err := store.LoadDocument(ctx, "familyTreeData")
	require.NoError(t, err)
	assert.Nil(t, doc)

	sample := entities.SampleFamily()
	require.NoError(t, store.SaveDocument(ctx, "familyTreeData", &sample))
	assert.FileExists(t, filepath.Join(store.Dir(), "familyTreeData.json"))

	loaded, err := store.LoadDocument(ctx, "familyTreeData")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, sample.Members, loaded.Members)
	assert.Equal(t, sample.Connections, loaded.Connections)

	// Overwrite leaves no temp files behind.
	empty := entities.Document{Members: []entities.Member{}, Connections: []entities.Relationship{}}
	require.NoError(t, store.SaveDocument(ctx, "familyTreeData", &empty))
	files, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Len(t, files, 1)

	loaded, err = store.LoadDocument(ctx, "familyTreeData")
	require.NoError(t, err)
	assert.Empty(t, loaded.Members)
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	doc := entities.Document{Members: []entities.Member{{ID: 1, Name: "A"}}}
	require.NoError(t, store.SaveDocument(ctx, "tree_a", &doc))
	require.NoError(t, store.DeleteDocument(ctx, "tree_a"))

	loaded, err := store.LoadDocument(ctx, "tree_a")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	assert.NoError(t, store.DeleteDocument(ctx, "tree_a"))
}

func TestStore_InvalidKey(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	tests := []string{"", ".", "..", "../escape", `a\b`}
	for _, key := range tests {
		t.Run(key, func(t *testing.T) {
			_, err := store.LoadDocument(ctx, key)
			assert.Error(t, err)
			assert.Error(t, store.SaveDocument(ctx, key, &entities.Document{}))
			assert.Error(t, store.DeleteDocument(ctx, key))
		})
	}
}

func TestStore_CorruptFile(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "bad.json"), []byte("{not json"), 0600))
	_, err := store.LoadDocument(ctx, "bad")
	assert.Error(t, err)
}
