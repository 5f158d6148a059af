package kcolor

import (
	"fmt"

	"github.com/yyyoichi/kcolor/kmeans"
)

type Option func(*Quantizer) error

// ColorSpace selects the coordinates pixels are clustered in.
type ColorSpace int

const (
	// RGB clusters the raw 8-bit channels.
	RGB ColorSpace = iota
	// YUV clusters luma and chroma, which separates colors closer to how they are perceived.
	YUV
)

// WithConfig replaces the clustering configuration.
// Options given after it still apply on top.
func WithConfig(cfg kmeans.Config) Option {
	return func(q *Quantizer) error {
		q.cfg = cfg
		return nil
	}
}

// WithInitialization selects how the first k colors are chosen.
func WithInitialization(m kmeans.Method) Option {
	return func(q *Quantizer) error {
		if _, err := m.MarshalText(); err != nil {
			return err
		}
		q.cfg.Initialization = m
		return nil
	}
}

// WithMaxIterations bounds the number of assign/update passes.
// If the bound is hit the best-known palette is used.
func WithMaxIterations(n int) Option {
	return func(q *Quantizer) error {
		if n < 1 {
			return fmt.Errorf("%w: max iterations must be positive, got %d", kmeans.ErrInvalidConfiguration, n)
		}
		q.cfg.MaxIterations = n
		return nil
	}
}

// WithProgressEvery makes the observer receive a renderable snapshot every n iterations.
func WithProgressEvery(n int) Option {
	return func(q *Quantizer) error {
		if n < 1 {
			return fmt.Errorf("%w: progress interval must be positive, got %d", kmeans.ErrInvalidConfiguration, n)
		}
		q.cfg.ProgressEvery = n
		return nil
	}
}

// WithVerbose makes the observer receive every iteration.
func WithVerbose(verbose bool) Option {
	return func(q *Quantizer) error {
		q.cfg.Verbose = verbose
		return nil
	}
}

// WithSeed makes the result reproducible.
func WithSeed(seed uint64) Option {
	return func(q *Quantizer) error {
		q.cfg.Seed = &seed
		return nil
	}
}

// WithWorkers sets how many goroutines assign pixels to colors.
func WithWorkers(n int) Option {
	return func(q *Quantizer) error {
		if n < 1 {
			return fmt.Errorf("%w: workers must be positive, got %d", kmeans.ErrInvalidConfiguration, n)
		}
		q.cfg.Workers = n
		return nil
	}
}

// WithColorSpace selects RGB (default) or YUV clustering.
func WithColorSpace(space ColorSpace) Option {
	return func(q *Quantizer) error {
		if space != RGB && space != YUV {
			return fmt.Errorf("%w: unknown color space %d", kmeans.ErrInvalidConfiguration, int(space))
		}
		q.space = space
		return nil
	}
}

// WithObserver registers a callback for iteration events.
// It is called for every iteration when verbose, on snapshot iterations,
// and whenever a color ends up with no pixels.
func WithObserver(fn func(Progress)) Option {
	return func(q *Quantizer) error {
		q.observer = fn
		return nil
	}
}
