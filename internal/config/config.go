// Package config resolves command-line settings from flags, ALLOT_*
// environment variables and an optional YAML file, in that order of
// precedence (viper).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/allot/internal/logging"
	"github.com/katalvlaran/allot/lp"
)

// EnvPrefix prefixes every environment variable: --time-limit is ALLOT_TIME_LIMIT.
const EnvPrefix = "ALLOT"

// Input formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Keys shared by flags, environment and file.
const (
	KeyInput      = "input"
	KeyFormat     = "format"
	KeyWorkers    = "workers"
	KeyTimeLimit  = "time-limit"
	KeyRelaxation = "relaxation"
	KeyRegionFlow = "region-flow"
	KeyLogLevel   = "log-level"
	KeyLogFormat  = "log-format"
	KeyAssignment = "assignment"
	KeyMetricsOut = "metrics-out"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid setting")

// Config holds the resolved settings of one run.
type Config struct {
	// Input is the instance file; empty or "-" reads stdin.
	Input string `mapstructure:"input"`

	// Format is FormatText (the line grammar) or FormatYAML.
	Format string `mapstructure:"format"`

	Workers    int           `mapstructure:"workers"`
	TimeLimit  time.Duration `mapstructure:"time-limit"`
	Relaxation string        `mapstructure:"relaxation"`
	RegionFlow bool          `mapstructure:"region-flow"`

	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`

	// Assignment prints the chosen pairs to stderr.
	Assignment bool `mapstructure:"assignment"`

	// MetricsOut, when set, receives the Prometheus text exposition after the solve.
	MetricsOut string `mapstructure:"metrics-out"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Input:      "",
		Format:     FormatText,
		Workers:    1,
		TimeLimit:  0,
		Relaxation: lp.EngineNative,
		RegionFlow: true,
		LogLevel:   "error",
		LogFormat:  logging.FormatConsole,
	}
}

// BindFlags declares every setting on fs and binds it into v.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	d := Default()
	fs.StringP(KeyInput, "i", d.Input, "instance file (default stdin)")
	fs.String(KeyFormat, d.Format, "input format: text|yaml")
	fs.IntP(KeyWorkers, "w", d.Workers, "branch-and-bound workers")
	fs.Duration(KeyTimeLimit, d.TimeLimit, "search budget, 0 for none (best incumbent is printed on expiry)")
	fs.String(KeyRelaxation, d.Relaxation, "relaxation engine: native|gonum")
	fs.Bool(KeyRegionFlow, d.RegionFlow, "run the per-region max-flow precheck")
	fs.String(KeyLogLevel, d.LogLevel, "log level: error|info|debug|trace")
	fs.String(KeyLogFormat, d.LogFormat, "log format: json|console")
	fs.Bool(KeyAssignment, d.Assignment, "print the assignment to stderr")
	fs.String(KeyMetricsOut, d.MetricsOut, "write Prometheus text metrics to this file")

	if err := v.BindPFlags(fs); err != nil {
		return fmt.Errorf("config: bind flags: %w", err)
	}

	return nil
}

// Load resolves v (flags bound by BindFlags, environment, optional file at
// path) into a validated Config.
func Load(v *viper.Viper, path string) (Config, error) {
	d := Default()
	v.SetDefault(KeyInput, d.Input)
	v.SetDefault(KeyFormat, d.Format)
	v.SetDefault(KeyWorkers, d.Workers)
	v.SetDefault(KeyTimeLimit, d.TimeLimit)
	v.SetDefault(KeyRelaxation, d.Relaxation)
	v.SetDefault(KeyRegionFlow, d.RegionFlow)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFormat, d.LogFormat)
	v.SetDefault(KeyAssignment, d.Assignment)
	v.SetDefault(KeyMetricsOut, d.MetricsOut)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks for invalid configuration values.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatYAML:
	default:
		return fmt.Errorf("%w: format must be text or yaml, got %q", ErrInvalid, c.Format)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be >= 1, got %d", ErrInvalid, c.Workers)
	}
	if c.TimeLimit < 0 {
		return fmt.Errorf("%w: time-limit must be >= 0, got %s", ErrInvalid, c.TimeLimit)
	}
	switch c.Relaxation {
	case lp.EngineNative, lp.EngineGonum:
	default:
		return fmt.Errorf("%w: relaxation must be native or gonum, got %q", ErrInvalid, c.Relaxation)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	switch c.LogFormat {
	case logging.FormatJSON, logging.FormatConsole:
	default:
		return fmt.Errorf("%w: log-format must be json or console, got %q", ErrInvalid, c.LogFormat)
	}

	return nil
}
