// Package config handles registry configuration: defaults, a plain-text
// key/value config file, and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Config holds the registry's runtime configuration.
type Config struct {
	DataDir  string // root directory for the product database and blob store
	StoreDir string // blob store directory; defaults to {DataDir}/store
	LogLevel string // "debug", "info", "warn", or "error"
}

// DefaultConfig returns the default configuration, rooting the data
// directory at ~/.poip.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dataDir := filepath.Join(home, ".poip")
	return Config{
		DataDir:  dataDir,
		StoreDir: filepath.Join(dataDir, "store"),
		LogLevel: "info",
	}
}

// ConfigPath returns the config file path within a data directory.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, "config")
}

// LoadConfig reads a config file of "key = value" lines. Blank lines and
// lines starting with '#' are ignored. Unknown keys are an error. Missing
// keys keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, ErrConfigNotFound
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, i+1, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "datadir":
			cfg.DataDir = value
		case "storedir":
			cfg.StoreDir = value
		case "loglevel":
			cfg.LogLevel = value
		default:
			return cfg, fmt.Errorf("%w: line %d: unknown key %q", ErrInvalidConfigLine, i+1, key)
		}
	}

	if cfg.StoreDir == "" {
		cfg.StoreDir = filepath.Join(cfg.DataDir, "store")
	}
	return cfg, nil
}

// SaveConfig writes the configuration to path, creating the parent
// directory if needed.
func SaveConfig(path string, cfg Config) error {
	entries := map[string]string{
		"datadir":  cfg.DataDir,
		"storedir": cfg.StoreDir,
		"loglevel": cfg.LogLevel,
	}
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s = %s\n", k, entries[k])
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	return os.WriteFile(path, []byte(b.String()), 0600)
}
