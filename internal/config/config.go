// Package config loads lq settings from ~/.lifequest/config.yaml with
// LQ_* environment variables layered on top.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata" // rollover zone must resolve on hosts without zoneinfo

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	// Dir is the per-user directory holding config, database and session.
	Dir = ".lifequest"

	DefaultRolloverTimezone = "Europe/Moscow"
	DefaultCutoffHour       = 12
	DefaultLogLevel         = "warn"
)

const defaultConfigYAML = `# lifequest configuration
#
# Every key can be overridden with an environment variable (shown on the right).

# SQLite database file. Empty means ~/.lifequest/lifequest.db.   LQ_DB_PATH
db_path: ""

# Fallback user when nobody ran "lq login".                     LQ_USER
user: ""

# Time zone deciding where your day ends. Empty means local.    LQ_TIMEZONE
timezone: ""

# Where yearly reports are written on rollover. Empty: skip.    LQ_REPORT_DIR
report_dir: ""

# debug, info, warn or error.                                   LQ_LOG_LEVEL
log_level: warn

# The year closes on Dec 31 at cutoff_hour in this time zone.
rollover:
  timezone: Europe/Moscow   # LQ_ROLLOVER_TZ
  cutoff_hour: 12           # LQ_ROLLOVER_CUTOFF_HOUR
`

type RolloverConfig struct {
	Timezone   string `yaml:"timezone"`
	CutoffHour int    `yaml:"cutoff_hour"`
}

type Config struct {
	DBPath    string         `yaml:"db_path"`
	User      string         `yaml:"user"`
	Timezone  string         `yaml:"timezone"`
	ReportDir string         `yaml:"report_dir"`
	LogLevel  string         `yaml:"log_level"`
	Rollover  RolloverConfig `yaml:"rollover"`
}

// envOverrides holds raw env values. Unset variables leave nil pointers so
// only variables that are present override the file.
type envOverrides struct {
	DBPath           *string `env:"LQ_DB_PATH"`
	User             *string `env:"LQ_USER"`
	Timezone         *string `env:"LQ_TIMEZONE"`
	ReportDir        *string `env:"LQ_REPORT_DIR"`
	LogLevel         *string `env:"LQ_LOG_LEVEL"`
	RolloverTimezone *string `env:"LQ_ROLLOVER_TZ"`
	CutoffHour       *int    `env:"LQ_ROLLOVER_CUTOFF_HOUR"`
}

func Default() Config {
	return Config{
		LogLevel: DefaultLogLevel,
		Rollover: RolloverConfig{
			Timezone:   DefaultRolloverTimezone,
			CutoffHour: DefaultCutoffHour,
		},
	}
}

// HomeDir returns ~/.lifequest.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, Dir), nil
}

// DefaultPath returns ~/.lifequest/config.yaml.
func DefaultPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the file at path (the default path when empty), applies the
// environment and validates the result. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	var raw envOverrides
	if err := env.Parse(&raw); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&cfg.DBPath, raw.DBPath)
	set(&cfg.User, raw.User)
	set(&cfg.Timezone, raw.Timezone)
	set(&cfg.ReportDir, raw.ReportDir)
	set(&cfg.LogLevel, raw.LogLevel)
	set(&cfg.Rollover.Timezone, raw.RolloverTimezone)
	if raw.CutoffHour != nil {
		cfg.Rollover.CutoffHour = *raw.CutoffHour
	}
	return nil
}

func (c Config) Validate() error {
	if c.Rollover.CutoffHour < 0 || c.Rollover.CutoffHour > 23 {
		return fmt.Errorf("rollover.cutoff_hour must be 0..23, got %d", c.Rollover.CutoffHour)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.RolloverLocation(); err != nil {
		return err
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// Location is the time zone that decides where a day ends.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c Config) RolloverLocation() (*time.Location, error) {
	name := c.Rollover.Timezone
	if name == "" {
		name = DefaultRolloverTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("rollover.timezone %q: %w", name, err)
	}
	return loc, nil
}

// Write seeds a commented default config at path. It refuses to overwrite
// an existing file unless force is set.
func Write(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Marshal renders cfg as YAML, for `lq init --print`.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
