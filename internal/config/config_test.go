package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Site", cfg.Site, "Greenwich"},
		{"ElementsFile", cfg.ElementsFile, ""},
		{"LogLevel", cfg.LogLevel, "warn"},
		{"Mode", cfg.Mode, "auto"},
		{"Twilight", cfg.Twilight, -18.0},
		{"Night.Start", cfg.Night.Start, 18.0},
		{"Night.End", cfg.Night.End, 7.0},
		{"Night.Step", cfg.Night.Step, 0.1},
		{"SitesFile", filepath.Base(cfg.SitesFile), "sites.toml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "site",
			envKey: "LSASTRO_SITE",
			envVal: "Paranal",
			field:  func(c Config) any { return c.Site },
			want:   "Paranal",
		},
		{
			name:   "log_level",
			envKey: "LSASTRO_LOG_LEVEL",
			envVal: "debug",
			field:  func(c Config) any { return c.LogLevel },
			want:   "debug",
		},
		{
			name:   "twilight",
			envKey: "LSASTRO_TWILIGHT",
			envVal: "-12",
			field:  func(c Config) any { return c.Twilight },
			want:   -12.0,
		},
		{
			name:   "night.start",
			envKey: "LSASTRO_NIGHT_START",
			envVal: "20.5",
			field:  func(c Config) any { return c.Night.Start },
			want:   20.5,
		},
		{
			name:   "night.step",
			envKey: "LSASTRO_NIGHT_STEP",
			envVal: "0.25",
			field:  func(c Config) any { return c.Night.Step },
			want:   0.25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			BindEnv()
			t.Setenv(tt.envKey, tt.envVal)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			got := tt.field(cfg)
			if got != tt.want {
				t.Errorf("%s: got %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	resetViper()

	path := filepath.Join(t.TempDir(), "config.toml")
	doc := `site = "Mauna Kea"
mode = "catalog"

[night]
start = 19.0
end = 5.5
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Site != "Mauna Kea" || cfg.Mode != "catalog" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Night.Start != 19 || cfg.Night.End != 5.5 || cfg.Night.Step != 0.1 {
		t.Errorf("Night = %+v, want file values over defaults", cfg.Night)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]struct {
		key string
		val any
	}{
		"zero step":         {"night.step", 0.0},
		"start past day":    {"night.start", 24.0},
		"positive twilight": {"twilight", 3.0},
		"empty site":        {"site", "  "},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			resetViper()
			viper.Set(tc.key, tc.val)
			if _, err := Load(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Load() err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
