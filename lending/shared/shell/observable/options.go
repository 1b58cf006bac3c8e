package observable

import (
	"github.com/iguene/Bibliovirtuelle/lending/shared/shell"
)

type instruments struct {
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
	contextualLogger shell.ContextualLogger
	logger           shell.Logger
}

// Option configures a CommandWrapper or QueryWrapper.
type Option func(*instruments)

// WithMetrics sets the metrics collector.
func WithMetrics(collector shell.MetricsCollector) Option {
	return func(i *instruments) {
		i.metricsCollector = collector
	}
}

// WithTracing sets the tracing collector.
func WithTracing(collector shell.TracingCollector) Option {
	return func(i *instruments) {
		i.tracingCollector = collector
	}
}

// WithContextualLogging sets the contextual logger. It takes precedence over WithLogging.
func WithContextualLogging(logger shell.ContextualLogger) Option {
	return func(i *instruments) {
		i.contextualLogger = logger
	}
}

// WithLogging sets the basic logger.
func WithLogging(logger shell.Logger) Option {
	return func(i *instruments) {
		i.logger = logger
	}
}

func buildInstruments(opts []Option) instruments {
	i := instruments{}
	for _, opt := range opts {
		opt(&i)
	}

	return i
}
