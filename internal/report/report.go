package report

import (
	"image"

	"github.com/yyyoichi/kcolor"
	"github.com/yyyoichi/kcolor/kmeans"
	"go.uber.org/zap"
)

// NewLogger returns a human readable development logger when verbose,
// and a production logger otherwise.
func NewLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// Writer persists an intermediate image rendered after the given iteration.
type Writer func(iteration int, img image.Image) error

// Observer logs every event it receives and hands snapshots to write.
// write may be nil.
func Observer(log *zap.Logger, write Writer) func(kcolor.Progress) {
	return func(p kcolor.Progress) {
		if p.Degenerate() {
			log.Warn("clusters received no pixels; keeping their colors",
				zap.Int("iteration", p.Iteration),
				zap.Ints("clusters", p.Empty),
			)
		}
		log.Info("iteration",
			zap.Int("iteration", p.Iteration),
			zap.Int("reassigned", p.Reassigned),
			zap.Int64("delta", p.Delta),
		)
		if write == nil {
			return
		}
		if img := p.Render(); img != nil {
			if err := write(p.Iteration, img); err != nil {
				log.Error("failed to write intermediate image",
					zap.Int("iteration", p.Iteration),
					zap.Error(err),
				)
			}
		}
	}
}

// Summary logs how a run ended.
func Summary(log *zap.Logger, res *kmeans.Result) {
	fields := []zap.Field{
		zap.Stringer("status", res.Status),
		zap.Int("iterations", res.Iterations),
		zap.Int("colors", len(res.Clusters)),
		zap.Int64("inertia", res.Inertia()),
	}
	if res.Converged() {
		log.Info("quantization finished", fields...)
		return
	}
	log.Warn("quantization stopped before converging", fields...)
}
