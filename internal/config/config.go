package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. LSASTRO_NIGHT_START.
const EnvPrefix = "LSASTRO"

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// NightConfig is the default observing window in UT hours. An end at or
// before the start falls on the following day.
type NightConfig struct {
	Start float64 `mapstructure:"start"`
	End   float64 `mapstructure:"end"`
	Step  float64 `mapstructure:"step"`
}

// Config holds all runtime configuration.
// Values are populated from config.toml, LSASTRO_* env vars, and CLI flags.
type Config struct {
	Site         string      `mapstructure:"site"`
	SitesFile    string      `mapstructure:"sites_file"`
	ElementsFile string      `mapstructure:"elements_file"`
	LogLevel     string      `mapstructure:"log_level"`
	Mode         string      `mapstructure:"mode"`
	Twilight     float64     `mapstructure:"twilight"`
	Night        NightConfig `mapstructure:"night"`
}

// Dir returns the per-user configuration directory.
func Dir() string {
	if base, err := os.UserConfigDir(); err == nil {
		return filepath.Join(base, "ls-astrotool")
	}
	return ".ls-astrotool"
}

// BindEnv maps LSASTRO_* variables onto config keys, nested keys joined
// with underscores.
func BindEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("site", "Greenwich")
	viper.SetDefault("sites_file", filepath.Join(Dir(), "sites.toml"))
	viper.SetDefault("elements_file", "")
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("mode", "auto")
	viper.SetDefault("twilight", -18.0)
	viper.SetDefault("night.start", 18.0)
	viper.SetDefault("night.end", 7.0)
	viper.SetDefault("night.step", 0.1)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.Night.Step <= 0:
		return fmt.Errorf("%w: night.step %v must be positive", ErrInvalidConfig, c.Night.Step)
	case c.Night.Start < 0 || c.Night.Start >= 24:
		return fmt.Errorf("%w: night.start %v outside [0,24)", ErrInvalidConfig, c.Night.Start)
	case c.Night.End < 0 || c.Night.End > 48:
		return fmt.Errorf("%w: night.end %v outside [0,48]", ErrInvalidConfig, c.Night.End)
	case c.Twilight > 0 || c.Twilight < -90:
		return fmt.Errorf("%w: twilight %v outside [-90,0]", ErrInvalidConfig, c.Twilight)
	case strings.TrimSpace(c.Site) == "":
		return fmt.Errorf("%w: site is empty", ErrInvalidConfig)
	}
	return nil
}
