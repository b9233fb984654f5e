package pruner

import (
	"io"
	"runtime"

	"github.com/nspcc-dev/chunkprune/pkg/util"
	"go.uber.org/zap"
)

// DefaultRoots are region directories of the overworld, the nether and
// the end relative to the world directory.
var DefaultRoots = []string{"region", "DIM-1/region", "DIM1/region"}

// MetricRegister is a pruner statistics sink.
type MetricRegister interface {
	// IncRegions counts region of root handled with result.
	IncRegions(root, result string)
	// AddReclaimedBytes counts size of the removed region files of root.
	AddReclaimedBytes(root string, n int64)
}

// Pruner removes region files with insufficiently inhabited chunks.
type Pruner struct {
	*cfg
}

// Option is an option for Pruner constructor.
type Option func(*cfg)

type cfg struct {
	log *zap.Logger

	threshold int64

	dryRun bool

	roots []string

	workers int

	poolInit func(int) (util.WorkerPool, error)

	metrics MetricRegister

	progress io.Writer
}

type noopMetrics struct{}

func (noopMetrics) IncRegions(string, string)      {}
func (noopMetrics) AddReclaimedBytes(string, int64) {}

func defaultCfg() *cfg {
	return &cfg{
		log:      zap.L(),
		roots:    DefaultRoots,
		workers:  runtime.NumCPU(),
		poolInit: util.NewWorkerPool,
		metrics:  noopMetrics{},
	}
}

// New creates, initializes and returns Pruner instance.
func New(opts ...Option) *Pruner {
	c := defaultCfg()

	for i := range opts {
		opts[i](c)
	}

	c.log = c.log.With(zap.String("component", "Region Pruner"))

	return &Pruner{
		cfg: c,
	}
}

// WithLogger returns option to set Logger of Pruner.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		c.log = l
	}
}

// WithThreshold returns option to set inhabited time threshold in ticks.
// Region files with inspected chunk inhabited for less time are removed.
func WithThreshold(t int64) Option {
	return func(c *cfg) {
		c.threshold = t
	}
}

// WithDryRun returns option to only report region files instead of
// removing them.
func WithDryRun(v bool) Option {
	return func(c *cfg) {
		c.dryRun = v
	}
}

// WithRoots returns option to set region directories relative to the world
// directory. Empty list is ignored.
func WithRoots(roots []string) Option {
	return func(c *cfg) {
		if len(roots) > 0 {
			c.roots = roots
		}
	}
}

// WithWorkers returns option to set number of concurrently processed
// region files. Non-positive values are ignored.
func WithWorkers(n int) Option {
	return func(c *cfg) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithPoolInitializer returns option to set function constructing
// worker pool of the given size for each scan.
func WithPoolInitializer(f func(int) (util.WorkerPool, error)) Option {
	return func(c *cfg) {
		c.poolInit = f
	}
}

// WithMetrics returns option to set statistics sink.
func WithMetrics(m MetricRegister) Option {
	return func(c *cfg) {
		c.metrics = m
	}
}

// WithProgress returns option to draw per-root progress bar to w.
// Nil disables progress reporting.
func WithProgress(w io.Writer) Option {
	return func(c *cfg) {
		c.progress = w
	}
}
