package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTrees_Missing(t *testing.T) {
	trees, err := LoadTrees(t.TempDir())
	require.NoError(t, err)
	assert.NotNil(t, trees.Trees)
	assert.Empty(t, trees.Trees)
}

func TestTreesConfig_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()

	trees := &TreesConfig{}
	trees.Add("johnson", TreeEntry{Key: GenerateDocumentKey("johnson"), Description: "Paternal line"})
	trees.Add("white", TreeEntry{Key: GenerateDocumentKey("white")})
	require.NoError(t, trees.Save(dir))

	loaded, err := LoadTrees(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"johnson", "white"}, loaded.Names())

	entry, err := loaded.Get("johnson")
	require.NoError(t, err)
	assert.Equal(t, "tree_johnson", entry.Key)
	assert.Equal(t, "Paternal line", entry.Description)

	loaded.Remove("white")
	assert.False(t, loaded.Exists("white"))
	assert.True(t, loaded.Exists("johnson"))
}

func TestTreesConfig_Get_NotFound(t *testing.T) {
	empty := &TreesConfig{}
	_, err := empty.Get("x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no trees configured")

	trees := &TreesConfig{}
	trees.Add("a", TreeEntry{Key: "tree_a"})
	_, err = trees.Get("b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "available: a")
}

func TestTreesConfig_ResolveKey(t *testing.T) {
	trees := &TreesConfig{}
	trees.Add("white", TreeEntry{Key: "tree_white"})

	key, err := trees.ResolveKey("", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultDocumentKey, key)

	key, err = trees.ResolveKey("", "custom")
	require.NoError(t, err)
	assert.Equal(t, "custom", key)

	key, err = trees.ResolveKey("white", "custom")
	require.NoError(t, err)
	assert.Equal(t, "tree_white", key)

	_, err = trees.ResolveKey("black", "custom")
	assert.Error(t, err)
}
