package session

import (
	"context"

	"github.com/heliosip/countryrules/rulestore"
	"github.com/heliosip/countryrules/rulestore/sqlengine"
)

// Option defines a functional option for configuring a Session.
type Option func(*options) error

type options struct {
	logger           rulestore.Logger
	contextualLogger rulestore.ContextualLogger
	metricsCollector rulestore.MetricsCollector
	tracingCollector rulestore.TracingCollector
}

// WithLogger sets the logger for the session and its rule store.
func WithLogger(logger rulestore.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the session and its rule store.
func WithContextualLogger(logger rulestore.ContextualLogger) Option {
	return func(o *options) error {
		o.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector of the rule store.
func WithMetrics(collector rulestore.MetricsCollector) Option {
	return func(o *options) error {
		o.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector of the rule store.
func WithTracing(collector rulestore.TracingCollector) Option {
	return func(o *options) error {
		o.tracingCollector = collector
		return nil
	}
}

func (o options) storeOptions() []sqlengine.Option {
	storeOptions := make([]sqlengine.Option, 0, 4)

	if o.logger != nil {
		storeOptions = append(storeOptions, sqlengine.WithLogger(o.logger))
	}

	if o.contextualLogger != nil {
		storeOptions = append(storeOptions, sqlengine.WithContextualLogger(o.contextualLogger))
	}

	if o.metricsCollector != nil {
		storeOptions = append(storeOptions, sqlengine.WithMetrics(o.metricsCollector))
	}

	if o.tracingCollector != nil {
		storeOptions = append(storeOptions, sqlengine.WithTracing(o.tracingCollector))
	}

	return storeOptions
}

func (o options) logInfo(ctx context.Context, msg string, args ...any) {
	if o.contextualLogger != nil {
		o.contextualLogger.InfoContext(ctx, msg, args...)
	} else if o.logger != nil {
		o.logger.Info(msg, args...)
	}
}

func (o options) logError(ctx context.Context, msg string, args ...any) {
	if o.contextualLogger != nil {
		o.contextualLogger.ErrorContext(ctx, msg, args...)
	} else if o.logger != nil {
		o.logger.Error(msg, args...)
	}
}
