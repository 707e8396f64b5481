// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for lineage configuration.
	DefaultConfigDir = ".lineage"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultTreesFile is the default trees file name.
	DefaultTreesFile = "trees.yaml"
	// DefaultDocumentKey is the storage key of the default family tree.
	DefaultDocumentKey = "familyTreeData"

	// BackendSQLite stores documents in a SQLite database file.
	BackendSQLite = "sqlite"
	// BackendJSON stores each document as a JSON file in a directory.
	BackendJSON = "json"
)

var (
	// reNonAlphanumeric matches characters that aren't alphanumeric or underscore.
	reNonAlphanumeric = regexp.MustCompile(`[^a-z0-9_]`)
	// reMultipleUnderscores matches consecutive underscores.
	reMultipleUnderscores = regexp.MustCompile(`_+`)
)

// Config holds static configuration (read-only after init).
type Config struct {
	Storage StorageConfig `yaml:"storage,omitempty"`
	Render  RenderConfig  `yaml:"render,omitempty"`
	Log     LogConfig     `yaml:"log,omitempty"`
	Shell   ShellConfig   `yaml:"shell,omitempty"`
}

// StorageConfig selects where the family document lives.
type StorageConfig struct {
	// Backend is "sqlite" or "json".
	Backend string `yaml:"backend,omitempty"`
	// Path is the database file (sqlite) or document directory (json).
	// Relative paths are resolved against the config directory.
	Path string `yaml:"path,omitempty"`
	// Key is the document key used when no tree is selected.
	Key string `yaml:"key,omitempty"`
}

// RenderConfig holds the geometry used to draw trees.
type RenderConfig struct {
	ViewportWidth float64 `yaml:"viewport_width,omitempty"`
	NarrowWidth   float64 `yaml:"narrow_width,omitempty"`
	CardWidth     float64 `yaml:"card_width,omitempty"`
	CardHeight    float64 `yaml:"card_height,omitempty"`
	ColumnGap     float64 `yaml:"column_gap,omitempty"`
	RowGap        float64 `yaml:"row_gap,omitempty"`
	Margin        float64 `yaml:"margin,omitempty"`
	FontPath      string  `yaml:"font_path,omitempty"`
	ShowNotes     bool    `yaml:"show_notes,omitempty"`
}

// LogConfig configures diagnostics.
type LogConfig struct {
	Mode  string `yaml:"mode,omitempty"`
	Level string `yaml:"level,omitempty"`
}

// ShellConfig configures the interactive shell.
type ShellConfig struct {
	HistoryFile string `yaml:"history_file,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendSQLite,
			Path:    "lineage.db",
			Key:     DefaultDocumentKey,
		},
		Render: RenderConfig{
			ViewportWidth: 1280,
			NarrowWidth:   768,
			CardWidth:     180,
			CardHeight:    90,
			ColumnGap:     60,
			RowGap:        120,
			Margin:        60,
			ShowNotes:     true,
		},
		Log: LogConfig{
			Mode:  "development",
			Level: "warn",
		},
		Shell: ShellConfig{
			HistoryFile: "history",
		},
	}
}

// Load loads configuration from the .lineage directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'lineage init' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if backend := os.Getenv("LINEAGE_STORAGE"); backend != "" {
		c.Storage.Backend = strings.ToLower(backend)
	}
	if level := os.Getenv("LINEAGE_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendJSON:
	default:
		return fmt.Errorf("invalid storage backend %q (valid: sqlite, json)", c.Storage.Backend)
	}
	if c.Render.CardWidth < 0 || c.Render.CardHeight < 0 {
		return fmt.Errorf("card size must not be negative")
	}
	return nil
}

// StoragePath returns the absolute storage path for the configured backend.
func (c *Config) StoragePath(basePath string) string {
	path := c.Storage.Path
	if path == "" {
		path = "lineage.db"
		if c.Storage.Backend == BackendJSON {
			path = "documents"
		}
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(basePath, DefaultConfigDir, path)
}

// HistoryPath returns the shell history file path, or "" when disabled.
func (c *Config) HistoryPath(basePath string) string {
	if c.Shell.HistoryFile == "" {
		return ""
	}
	if filepath.IsAbs(c.Shell.HistoryFile) {
		return c.Shell.HistoryFile
	}
	return filepath.Join(basePath, DefaultConfigDir, c.Shell.HistoryFile)
}

// ConfigDir returns the path to the .lineage config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// TreesFilePath returns the path to the trees file.
func TreesFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultTreesFile)
}

// Exists checks if a lineage config exists in the given path.
func Exists(basePath string) bool {
	configFile := filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
	_, err := os.Stat(configFile)
	return err == nil
}

// SanitizeTreeName converts a tree name to a valid document key suffix.
func SanitizeTreeName(name string) string {
	// Convert to lowercase
	name = strings.ToLower(name)

	// Replace spaces and hyphens with underscores
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")

	// Remove any characters that aren't alphanumeric or underscore
	name = reNonAlphanumeric.ReplaceAllString(name, "")

	// Remove consecutive underscores
	name = reMultipleUnderscores.ReplaceAllString(name, "_")

	// Trim leading/trailing underscores
	name = strings.Trim(name, "_")

	if name == "" {
		return "default"
	}

	return name
}

// GenerateDocumentKey creates the storage key for a named tree.
func GenerateDocumentKey(treeName string) string {
	return "tree_" + SanitizeTreeName(treeName)
}
