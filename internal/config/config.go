// Package config handles global obsidian-tools configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// EnvConfigPath names the environment variable that overrides the config
// file location.
const EnvConfigPath = "OBSIDIAN_TOOLS_CONFIG"

// Config is the on-disk configuration, a TOML file shared by every vault.
type Config struct {
	// DefaultVault names the vault used when -v is not given. It must be
	// a key of Vaults.
	DefaultVault string `toml:"default_vault"`

	// Vaults maps vault names to their root directories.
	Vaults map[string]string `toml:"vaults"`

	// UI holds terminal presentation preferences.
	UI UIConfig `toml:"ui"`

	Dedup  DedupConfig  `toml:"dedup"`
	Limits LimitsConfig `toml:"limits"`
}

// UIConfig holds terminal presentation preferences.
type UIConfig struct {
	// Accent is an ANSI color code ("0" to "255") or a hex color
	// ("#RRGGBB"). Empty keeps the built-in accent.
	Accent string `toml:"accent"`
}

// DedupConfig tunes duplicate detection.
type DedupConfig struct {
	// Workers caps concurrent hashing; zero means one per CPU.
	Workers int `toml:"workers"`
}

// LimitsConfig tunes dataview LIMIT insertion.
type LimitsConfig struct {
	// DefaultLimit is the LIMIT value added to unbounded queries.
	DefaultLimit int `toml:"default_limit"`
}

// GetVaultPath resolves a vault name to its root directory. An empty name
// means the configured default vault.
func (c *Config) GetVaultPath(name string) (string, error) {
	if name == "" {
		name = c.DefaultVault
	}
	if name == "" {
		return "", fmt.Errorf("no default vault configured")
	}
	path, ok := c.Vaults[name]
	if !ok {
		return "", fmt.Errorf("vault %q is not defined in the config", name)
	}
	return path, nil
}

// LoadEnv folds a .env file from the current directory into the
// environment when one exists. Real environment variables always win.
func LoadEnv() {
	_ = godotenv.Load()
}

// ResolveConfigPath picks the effective config path: an explicit --config
// value when given, DefaultPath otherwise.
func ResolveConfigPath(explicit string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	return DefaultPath()
}

// Load reads the config from the default location. A missing file is not
// an error; it loads as the zero config.
func Load() (*Config, error) {
	path := DefaultPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}
	return LoadFrom(path)
}

// LoadFrom reads and parses the config file at path.
func LoadFrom(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// DefaultPath returns the config file location. OBSIDIAN_TOOLS_CONFIG
// wins; an existing ~/.config/obsidian-tools/config.toml is preferred
// next, then the OS config directory.
func DefaultPath() string {
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	if home, err := os.UserHomeDir(); err == nil {
		xdg := filepath.Join(home, ".config", "obsidian-tools", "config.toml")
		if _, err := os.Stat(xdg); err == nil {
			return xdg
		}
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "obsidian-tools", "config.toml")
	}
	return "config.toml"
}

const defaultConfigText = `# obsidian-tools configuration

# Default vault name (must exist in [vaults] below)
# default_vault = "personal"

# Named vaults
# [vaults]
# personal = "/path/to/your/notes"
# work = "/path/to/work/notes"

# Optional UI accent color for terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"

# Duplicate detection
# [dedup]
# workers = 8

# Dataview LIMIT insertion
# [limits]
# default_limit = 1000
`

// CreateDefault writes a fully commented config file at the default
// location, leaving any existing file untouched. It returns the path.
func CreateDefault() (string, error) {
	path := DefaultPath()
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigText), 0644); err != nil {
		return "", fmt.Errorf("write config file: %w", err)
	}
	return path, nil
}
