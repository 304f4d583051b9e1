package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/caarlos0/env/v11"

	"github.com/Mavwarf/sideclip-icons/internal/paths"
)

// DefaultSizes are the icon sizes a browser extension manifest references.
var DefaultSizes = []int{16, 32, 48, 128}

// Run log backends accepted by Config.Log.
const (
	LogNone   = ""
	LogFile   = "file"
	LogSQLite = "sqlite"
)

// Config holds generator settings. Every field can be overridden by the
// environment variable named in its env tag.
type Config struct {
	OutDir      string `json:"out_dir,omitempty" env:"SIDECLIP_OUT_DIR"`
	Sizes       []int  `json:"sizes,omitempty" env:"SIDECLIP_SIZES" envSeparator:","`
	Transparent bool   `json:"transparent,omitempty" env:"SIDECLIP_TRANSPARENT"`
	SVG         bool   `json:"svg,omitempty" env:"SIDECLIP_SVG"`
	Preview     bool   `json:"preview,omitempty" env:"SIDECLIP_PREVIEW"`
	Bundle      bool   `json:"bundle,omitempty" env:"SIDECLIP_BUNDLE"`
	Log         string `json:"log,omitempty" env:"SIDECLIP_LOG"` // "" | "file" | "sqlite"
}

// Default returns the configuration used when no file is found: the four
// standard PNG sizes written to ./icons.
func Default() Config {
	return Config{
		OutDir: paths.DefaultOutDir,
		Sizes:  append([]int(nil), DefaultSizes...),
	}
}

// UnmarshalJSON sets defaults then decodes the JSON structure.
// Go's json.Unmarshal merges into existing struct fields, so only
// values present in JSON override the defaults.
func (c *Config) UnmarshalJSON(data []byte) error {
	*c = Default()
	type Alias Config
	return json.Unmarshal(data, (*Alias)(c))
}

// Validate rejects settings the generator cannot honor.
func (c Config) Validate() error {
	if c.OutDir == "" {
		return fmt.Errorf("out_dir must not be empty")
	}
	if len(c.Sizes) == 0 {
		return fmt.Errorf("sizes must not be empty")
	}
	seen := make(map[int]bool, len(c.Sizes))
	for _, s := range c.Sizes {
		if s <= 0 {
			return fmt.Errorf("invalid icon size %d", s)
		}
		if seen[s] {
			return fmt.Errorf("duplicate icon size %d", s)
		}
		seen[s] = true
	}
	switch c.Log {
	case LogNone, LogFile, LogSQLite:
	default:
		return fmt.Errorf("unknown log backend %q (want %q or %q)", c.Log, LogFile, LogSQLite)
	}
	return nil
}

// Load resolves the configuration. It reads the first file found of:
//  1. explicitPath (if non-empty; must exist)
//  2. sideclip-icons.json next to the running binary
//  3. ~/.config/sideclip-icons/sideclip-icons.json
//
// falling back to Default when none exists, then applies environment
// overrides and validates the result.
func Load(explicitPath string) (Config, error) {
	cfg, err := loadFile(explicitPath)
	if err != nil {
		return Config{}, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from SIDECLIP_* environment variables.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

func loadFile(explicitPath string) (Config, error) {
	if explicitPath != "" {
		return readConfig(explicitPath)
	}

	// Next to binary
	exe, err := os.Executable()
	if err == nil {
		p := filepath.Join(filepath.Dir(exe), paths.ConfigFileName)
		if _, err := os.Stat(p); err == nil {
			return readConfig(p)
		}
	}

	// User config directory
	home, err := os.UserHomeDir()
	if err == nil {
		var p string
		if runtime.GOOS == "windows" {
			p = filepath.Join(home, "AppData", "Roaming", paths.AppDirName, paths.ConfigFileName)
		} else {
			p = filepath.Join(home, ".config", paths.AppDirName, paths.ConfigFileName)
		}
		if _, err := os.Stat(p); err == nil {
			return readConfig(p)
		}
	}

	return Default(), nil
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
