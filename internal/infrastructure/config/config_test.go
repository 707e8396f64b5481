package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeTreeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple lowercase",
			input:    "johnson",
			expected: "johnson",
		},
		{
			name:     "uppercase converted",
			input:    "Johnson",
			expected: "johnson",
		},
		{
			name:     "spaces to underscores",
			input:    "white family",
			expected: "white_family",
		},
		{
			name:     "hyphens to underscores",
			input:    "white-family",
			expected: "white_family",
		},
		{
			name:     "special characters removed",
			input:    "o'brien!",
			expected: "obrien",
		},
		{
			name:     "consecutive underscores collapsed",
			input:    "white--family",
			expected: "white_family",
		},
		{
			name:     "leading trailing underscores trimmed",
			input:    "-white-",
			expected: "white",
		},
		{
			name:     "empty string returns default",
			input:    "",
			expected: "default",
		},
		{
			name:     "only special chars returns default",
			input:    "!!!",
			expected: "default",
		},
		{
			name:     "complex mixed input",
			input:    "Johnson-White (1925)",
			expected: "johnson_white_1925",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeTreeName(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGenerateDocumentKey(t *testing.T) {
	assert.Equal(t, "tree_johnson", GenerateDocumentKey("Johnson"))
	assert.Equal(t, "tree_default", GenerateDocumentKey(""))
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, DefaultDocumentKey, cfg.Storage.Key)
	assert.Equal(t, 768.0, cfg.Render.NarrowWidth)
	assert.Equal(t, 1280.0, cfg.Render.ViewportWidth)
	assert.True(t, cfg.Render.ShowNotes)
	assert.Equal(t, "warn", cfg.Log.Level)
	require.NoError(t, cfg.Validate())
}

func TestConfigDir(t *testing.T) {
	result := ConfigDir("/home/user/project")
	assert.Equal(t, "/home/user/project/.lineage", result)
}

func TestConfigFilePath(t *testing.T) {
	result := ConfigFilePath("/home/user/project")
	assert.Equal(t, "/home/user/project/.lineage/config.yaml", result)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lineage init")
}

func TestWriteDefaultAndLoad(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, WriteDefault(dir))
	assert.True(t, Exists(dir))
	assert.Error(t, WriteDefault(dir), "second write must not overwrite")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDefault(dir))

	t.Setenv("LINEAGE_STORAGE", "JSON")
	t.Setenv("LINEAGE_LOG_LEVEL", "debug")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, BackendJSON, cfg.Storage.Backend)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidBackend(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(ConfigDir(dir), 0755))
	require.NoError(t, os.WriteFile(ConfigFilePath(dir), []byte("storage:\n  backend: postgres\n"), 0644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid storage backend")
}

func TestWrite_PartialOverride(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Storage.Backend = BackendJSON
	cfg.Storage.Path = ""
	cfg.Render.CardWidth = 200

	require.NoError(t, Write(dir, cfg))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, BackendJSON, loaded.Storage.Backend)
	assert.Equal(t, 200.0, loaded.Render.CardWidth)
}

func TestStoragePath(t *testing.T) {
	tests := []struct {
		name     string
		storage  StorageConfig
		expected string
	}{
		{name: "relative sqlite", storage: StorageConfig{Backend: BackendSQLite, Path: "family.db"}, expected: "/base/.lineage/family.db"},
		{name: "empty sqlite", storage: StorageConfig{Backend: BackendSQLite}, expected: "/base/.lineage/lineage.db"},
		{name: "empty json", storage: StorageConfig{Backend: BackendJSON}, expected: "/base/.lineage/documents"},
		{name: "absolute", storage: StorageConfig{Backend: BackendSQLite, Path: "/data/tree.db"}, expected: "/data/tree.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Storage: tt.storage}
			assert.Equal(t, tt.expected, cfg.StoragePath("/base"))
		})
	}
}

func TestHistoryPath(t *testing.T) {
	cfg := Default()
	assert.Equal(t, filepath.Join("/base", ".lineage", "history"), cfg.HistoryPath("/base"))

	cfg.Shell.HistoryFile = ""
	assert.Empty(t, cfg.HistoryPath("/base"))
}
