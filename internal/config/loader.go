package config

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds the settings shared by every command.
type Config struct {
	Equality string `koanf:"equality"`
	Capture  string `koanf:"capture"`
	Backend  string `koanf:"backend"`
	// MaxSteps bounds evaluation. Zero means unbounded.
	MaxSteps int    `koanf:"max_steps"`
	Color    string `koanf:"color"`
	LogLevel string `koanf:"log_level"`

	// FileUsed is the configuration file that was read, if any.
	FileUsed string `koanf:"-"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() map[string]any {
	return map[string]any{
		"equality":  EqualitySyntactic,
		"capture":   CaptureRename,
		"backend":   BackendStack,
		"max_steps": 0,
		"color":     ColorAuto,
		"log_level": "warn",
	}
}

// Load reads configuration from defaults, the config file, environment
// variables and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file: explicit path, else funpi.yaml in the working directory
	if cfgFile == "" {
		if _, err := os.Stat(ConfigFileName); err == nil {
			cfgFile = ConfigFileName
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// 3. Environment: FUNPI_MAX_STEPS -> max_steps
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.FileUsed = cfgFile

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects unknown option values.
func (c *Config) Validate() error {
	checks := []struct {
		key     string
		value   string
		allowed []string
	}{
		{"equality", c.Equality, []string{EqualitySyntactic, EqualityAlpha, EqualityDefinitional}},
		{"capture", c.Capture, []string{CaptureRename, CaptureSkip}},
		{"backend", c.Backend, []string{BackendStack, BackendTree}},
		{"color", c.Color, []string{ColorAuto, ColorAlways, ColorNever}},
		{"log_level", strings.ToLower(c.LogLevel), []string{"debug", "info", "warn", "error"}},
	}
	for _, check := range checks {
		if !slices.Contains(check.allowed, check.value) {
			return fmt.Errorf("invalid %s %q: want one of %s", check.key, check.value, strings.Join(check.allowed, ", "))
		}
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("invalid max_steps %d: must not be negative", c.MaxSteps)
	}
	return nil
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return level
}
