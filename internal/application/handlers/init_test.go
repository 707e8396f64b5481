package handlers

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/lineage/internal/infrastructure/config"
)

func TestInitHandler_Handle_Success(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("LINEAGE_STORAGE", "")

	handler := NewInitHandler()

	result, err := handler.Handle(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Contains(t, result.ConfigPath, "config.yaml")
	assert.Equal(t, config.BackendSQLite, result.Backend)
	assert.Equal(t, filepath.Join(tmpDir, ".lineage", "lineage.db"), result.StoragePath)

	// Verify config was created
	assert.True(t, config.Exists(tmpDir))
}

func TestInitHandler_Handle_AlreadyInitialized(t *testing.T) {
	tmpDir := t.TempDir()

	// Initialize first
	err := config.WriteDefault(tmpDir)
	require.NoError(t, err)

	handler := NewInitHandler()

	_, err = handler.Handle(tmpDir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already initialized")
}
