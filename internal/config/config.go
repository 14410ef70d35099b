// Package config handles TOML configuration loading with environment
// variable substitution.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure. It is read once at startup
// and treated as immutable for the rest of the run.
type Config struct {
	Radarr  RadarrConfig  `toml:"radarr"`
	Edition EditionConfig `toml:"edition"`
	Sync    SyncConfig    `toml:"sync"`
	Journal JournalConfig `toml:"journal"`
	Log     LogConfig     `toml:"log"`
}

type RadarrConfig struct {
	URL            string `toml:"url"`
	APIKey         string `toml:"api_key"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type EditionConfig struct {
	RatingSource               string `toml:"rating_source"`
	IncludeRatings             bool   `toml:"include_ratings"`
	OverwriteExisting          bool   `toml:"overwrite_existing"`
	ForceUpdateOnRenameFailure bool   `toml:"force_update_on_rename_failure"`

	// QualityMap extends or overrides the built-in quality translation
	// table.
	QualityMap map[string]string `toml:"quality_map"`
}

type SyncConfig struct {
	DelayMs  int    `toml:"delay_ms"`
	LockPath string `toml:"lock_path"`
}

type JournalConfig struct {
	// Path of the SQLite run journal. Empty disables the journal.
	Path string `toml:"path"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// defaults returns a Config pre-populated with default values. Decoding
// on top of it leaves absent keys at their defaults, which also covers
// boolean fields.
func defaults() Config {
	return Config{
		Radarr: RadarrConfig{
			URL:            "http://localhost:7878",
			TimeoutSeconds: 10,
		},
		Edition: EditionConfig{
			RatingSource:      "tmdb",
			IncludeRatings:    true,
			OverwriteExisting: true,
		},
		Sync: SyncConfig{
			DelayMs:  500,
			LockPath: filepath.Join(os.TempDir(), "editionarr.lock"),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content := substituteEnvVars(string(data))

	cfg := defaults()
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1] // Strip ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match // Leave unchanged if not found
	})
}
