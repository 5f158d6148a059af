package kmeans

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultMaxIterations bounds a run when Config.MaxIterations is zero.
const DefaultMaxIterations = 300

// Config is the set of named options accepted by an Engine.
// The zero value selects RandomPoint seeding, no reporting and the default bounds.
type Config struct {
	Initialization Method `yaml:"initialization" validate:"min=0,max=2"`
	Verbose        bool   `yaml:"verbose"`
	// ProgressEvery requests a state snapshot every N iterations. Zero disables snapshots.
	ProgressEvery int `yaml:"progress_every" validate:"min=0"`
	// MaxIterations bounds the assign/update loop. Zero selects DefaultMaxIterations.
	MaxIterations int `yaml:"max_iterations" validate:"min=0"`
	// Workers is the number of goroutines used for the assignment step. Zero selects GOMAXPROCS.
	Workers int `yaml:"workers" validate:"min=0"`
	// Seed fixes the random source. Nil seeds from the runtime.
	Seed *uint64 `yaml:"seed,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports out of range values as ErrInvalidConfiguration.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return nil
}

// Options converts c into engine options.
func (c Config) Options() []Option {
	return []Option{WithConfig(c)}
}

// LoadConfig decodes a YAML document into a Config and validates it.
// An empty document yields the zero Config.
func LoadConfig(r io.Reader) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		if errors.Is(err, ErrInvalidConfiguration) {
			return Config{}, err
		}
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Property keys understood by ParseProperties.
const (
	PropInitializationMethod = "initializationMethod"
	PropVerbose              = "verbose"
	PropProgressEvery        = "progressEvery"
	PropMaxIterations        = "maxIterations"
	PropWorkers              = "workers"
	PropSeed                 = "seed"
)

// ParseProperties builds a Config from string key/value pairs.
// Unknown keys and malformed values are rejected with ErrInvalidConfiguration.
func ParseProperties(props map[string]string) (Config, error) {
	var c Config
	for key, value := range props {
		var err error
		switch key {
		case PropInitializationMethod:
			c.Initialization, err = ParseMethod(value)
		case PropVerbose:
			c.Verbose, err = strconv.ParseBool(value)
		case PropProgressEvery:
			c.ProgressEvery, err = parsePositive(value)
		case PropMaxIterations:
			c.MaxIterations, err = parsePositive(value)
		case PropWorkers:
			c.Workers, err = parsePositive(value)
		case PropSeed:
			var seed uint64
			seed, err = strconv.ParseUint(value, 10, 64)
			c.Seed = &seed
		default:
			return Config{}, fmt.Errorf("%w: unknown key %q", ErrInvalidConfiguration, key)
		}
		if err != nil {
			if errors.Is(err, ErrInvalidConfiguration) {
				return Config{}, err
			}
			return Config{}, fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfiguration, key, value, err)
		}
	}
	return c, nil
}

func parsePositive(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("must be a positive integer")
	}
	return n, nil
}
