package config

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"time"

	"github.com/spf13/viper"

	"github.com/papapumpkin/graphstat/internal/report"
)

// ErrInvalid is returned when a configuration value is out of range.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all runtime configuration for a graphstat invocation.
// Values are populated from .graphstat.yaml, GRAPHSTAT_* env vars, and CLI flags.
type Config struct {
	Samples       int           `mapstructure:"samples"`
	Seed          int64         `mapstructure:"seed"`
	Top           int           `mapstructure:"top"`
	Workers       int           `mapstructure:"workers"`
	Format        string        `mapstructure:"format"`
	LogLevel      string        `mapstructure:"log_level"`
	LogFormat     string        `mapstructure:"log_format"`
	MetricsFile   string        `mapstructure:"metrics_file"`
	TelemetryFile string        `mapstructure:"telemetry_file"`
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// SetDefaults registers built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("samples", 1000)
	v.SetDefault("seed", 42)
	v.SetDefault("top", 5)
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("format", "text")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("metrics_file", "")
	v.SetDefault("telemetry_file", "")
	v.SetDefault("watch_debounce", 250*time.Millisecond)
}

// Load reads configuration from the global viper instance, applying
// built-in defaults for any values not set by config file, environment,
// or flags.
func Load() (Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads configuration from v and validates it.
func LoadFrom(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first out-of-range value.
func (c Config) Validate() error {
	switch {
	case c.Samples < 0:
		return fmt.Errorf("%w: samples must be >= 0, got %d", ErrInvalid, c.Samples)
	case c.Seed < 0:
		return fmt.Errorf("%w: seed must be >= 0, got %d", ErrInvalid, c.Seed)
	case c.Top < 1:
		return fmt.Errorf("%w: top must be >= 1, got %d", ErrInvalid, c.Top)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be >= 1, got %d", ErrInvalid, c.Workers)
	case !slices.Contains(report.Formats(), c.Format):
		return fmt.Errorf("%w: format %q (want one of %v)", ErrInvalid, c.Format, report.Formats())
	case !slices.Contains(logLevels, c.LogLevel):
		return fmt.Errorf("%w: log_level %q (want one of %v)", ErrInvalid, c.LogLevel, logLevels)
	case !slices.Contains(logFormats, c.LogFormat):
		return fmt.Errorf("%w: log_format %q (want one of %v)", ErrInvalid, c.LogFormat, logFormats)
	case c.WatchDebounce < 0:
		return fmt.Errorf("%w: watch_debounce must be >= 0, got %s", ErrInvalid, c.WatchDebounce)
	}
	return nil
}
