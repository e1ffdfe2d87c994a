package polycut

import (
	"log/slog"

	"github.com/hyperfold/polycut/persist"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	checks           bool
	snapshotPath     string
	persistOptions   []func(*persist.Options)
}

// Option configures ShapeBuilder constructor/load behavior.
type Option func(*options)

// WithChecks enables expensive internal validation of every polytope the
// underlying space creates. Intended for tests and debugging; cutting slows
// down considerably.
func WithChecks() Option {
	return func(o *options) {
		o.checks = true
	}
}

// WithSnapshotPath configures the default path used by SaveFile.
//
// Example:
//
//	sb, _ := polycut.NewShapeBuilder[string](3,
//	    polycut.WithSnapshotPath("./data/shape.snap"))
//	// ... carve and slice ...
//	_ = sb.SaveFile("")
func WithSnapshotPath(path string) Option {
	return func(o *options) {
		o.snapshotPath = path
	}
}

// WithPersistOptions configures how snapshots are encoded, e.g. to switch
// the codec or compression algorithm. See persist.Options.
func WithPersistOptions(optFns ...func(*persist.Options)) Option {
	return func(o *options) {
		o.persistOptions = optFns
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &polycut.BasicMetricsCollector{}
//	sb, _ := polycut.NewShapeBuilder[string](3, polycut.WithMetricsCollector(metrics))
//	// ... use sb ...
//	stats := metrics.GetStats()
//	fmt.Printf("Cuts: %d, Avg latency: %dns\n", stats.CutCount, stats.CutAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := polycut.NewJSONLogger(slog.LevelInfo)
//	sb, _ := polycut.NewShapeBuilder[string](3, polycut.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
