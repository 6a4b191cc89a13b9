package stream

import (
	"go.uber.org/zap"

	"github.com/histflow/histflow/internal/constants"
	"github.com/histflow/histflow/pkg/telemetry"
)

type options struct {
	name   string
	logger *zap.Logger
	tracer telemetry.Tracer
}

// Option configures a producer.
type Option func(*options)

func defaultOptions() options {
	return options{
		name:   constants.DefaultProducerName,
		logger: zap.NewNop(),
	}
}

// WithName sets the producer name used in logs and trace attributes.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTracer sets the tracer. Defaults to the global telemetry tracer.
func WithTracer(tracer telemetry.Tracer) Option {
	return func(o *options) {
		o.tracer = tracer
	}
}
