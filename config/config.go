// Package config loads solver settings from YAML.
//
// Example file:
//
//	algorithm: branch-and-bound   # or held-karp
//	max_execution_time: 30s       # 0s returns at once; "none" disables the deadline
//	workers: 4
//	log_level: info               # debug | info | warn | error
//	metrics: false
//
// Missing keys keep their DefaultConfig values.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/salesman/tsp"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// noLimit is the max_execution_time value that disables the deadline.
const noLimit = "none"

// Config is the on-disk solver configuration.
type Config struct {
	Algorithm        string `yaml:"algorithm" validate:"algorithm"`
	MaxExecutionTime string `yaml:"max_execution_time" validate:"budget"`
	Workers          int    `yaml:"workers" validate:"gte=0"`
	LogLevel         string `yaml:"log_level" validate:"loglevel"`
	Metrics          bool   `yaml:"metrics"`
}

var validate = newValidator()

// newValidator registers the field checks used by Config tags. Field names in
// reported errors are the YAML keys.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		return name
	})
	_ = v.RegisterValidation("algorithm", func(fl validator.FieldLevel) bool {
		_, err := tsp.ParseAlgorithm(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("budget", func(fl validator.FieldLevel) bool {
		_, err := parseBudget(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		_, err := ParseLevel(fl.Field().String())
		return err == nil
	})

	return v
}

// DefaultConfig mirrors tsp.DefaultOptions.
func DefaultConfig() Config {
	return Config{
		Algorithm:        tsp.BranchAndBound.String(),
		MaxExecutionTime: tsp.DefaultMaxExecutionTime.String(),
		Workers:          1,
		LogLevel:         "info",
	}
}

// Load reads path over DefaultConfig and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read the config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML over DefaultConfig and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse the config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks every field without building options.
func (c Config) Validate() error {
	err := validate.Struct(&c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: %s: failed %q check on %v", ErrInvalidConfig, fe.Field(), fe.Tag(), fe.Value())
	}

	return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
}

// Budget converts MaxExecutionTime to a duration; "none" maps to tsp.NoTimeLimit.
func (c Config) Budget() (time.Duration, error) {
	d, err := parseBudget(c.MaxExecutionTime)
	if err != nil {
		return 0, fmt.Errorf("%w: max_execution_time: %v", ErrInvalidConfig, err)
	}

	return d, nil
}

func parseBudget(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, noLimit) {
		return tsp.NoTimeLimit, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("must be >= 0, got %v", d)
	}

	return d, nil
}

// SolverOptions builds tsp.Options from the configuration. started is the
// single start timestamp of the run; logger may be nil.
func (c Config) SolverOptions(started time.Time, logger *slog.Logger) (tsp.Options, error) {
	if err := c.Validate(); err != nil {
		return tsp.Options{}, err
	}
	algo, _ := tsp.ParseAlgorithm(c.Algorithm)
	budget, _ := c.Budget()

	opts := tsp.DefaultOptions()
	opts.Algo = algo
	opts.MaxExecutionTime = budget
	opts.StartedAt = started
	opts.Workers = c.Workers
	opts.Logger = logger

	return opts, nil
}

// ParseLevel maps a level name to slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, s)
	}

	return lvl, nil
}
