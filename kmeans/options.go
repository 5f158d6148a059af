package kmeans

import "fmt"

// Option configures an Engine.
type Option func(*Engine) error

// WithConfig replaces every configurable value with c.
// The observer is kept.
func WithConfig(c Config) Option {
	return func(e *Engine) error {
		e.cfg = c
		return nil
	}
}

// WithInitialization selects the center seeding strategy.
func WithInitialization(m Method) Option {
	return func(e *Engine) error {
		if !m.valid() {
			return fmt.Errorf("%w: unknown initialization method %d", ErrInvalidConfiguration, int(m))
		}
		e.cfg.Initialization = m
		return nil
	}
}

// WithVerbose makes the engine send an Event to the observer after every iteration.
func WithVerbose(verbose bool) Option {
	return func(e *Engine) error {
		e.cfg.Verbose = verbose
		return nil
	}
}

// WithProgressEvery sends a full state snapshot to the observer every n iterations.
func WithProgressEvery(n int) Option {
	return func(e *Engine) error {
		if n < 1 {
			return fmt.Errorf("%w: progress interval must be positive, got %d", ErrInvalidConfiguration, n)
		}
		e.cfg.ProgressEvery = n
		return nil
	}
}

// WithMaxIterations bounds the assign/update loop.
func WithMaxIterations(n int) Option {
	return func(e *Engine) error {
		if n < 1 {
			return fmt.Errorf("%w: max iterations must be positive, got %d", ErrInvalidConfiguration, n)
		}
		e.cfg.MaxIterations = n
		return nil
	}
}

// WithWorkers sets the number of goroutines used to assign points.
// The result does not depend on it.
func WithWorkers(n int) Option {
	return func(e *Engine) error {
		if n < 1 {
			return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfiguration, n)
		}
		e.cfg.Workers = n
		return nil
	}
}

// WithSeed makes every random draw reproducible.
func WithSeed(seed uint64) Option {
	return func(e *Engine) error {
		e.cfg.Seed = &seed
		return nil
	}
}

// WithObserver registers the per-iteration hook.
func WithObserver(o Observer) Option {
	return func(e *Engine) error {
		e.observer = o
		return nil
	}
}
