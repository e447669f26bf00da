package metrics

import (
	"context"
	"time"

	"go.opencensus.io/stats/view"
	"go.uber.org/zap"
)

// Option tunes the initialization of metrics
type Option func(*registry)

// WithBasePath prefixes the path of all registered metrics
func WithBasePath(location string) Option {
	return func(r *registry) {
		r.basePath = location
	}
}

// WithContexter sets the function providing a context to measurements. Defaults to context.Background
func WithContexter(c func() context.Context) Option {
	return func(r *registry) {
		if c != nil {
			r.contexter = c
		}
	}
}

// WithExporter sets the exporter of view data. Defaults to a zap log exporter
func WithExporter(exporter view.Exporter) Option {
	return func(r *registry) {
		if exporter != nil {
			r.exporter = flusher(exporter)
		}
	}
}

// WithLogger sets the logger of the default exporter
func WithLogger(l *zap.Logger) Option {
	return func(r *registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithReportingPeriod sets the period of background exports.
// Periods under one second are ignored: the opencensus default (10s) applies.
func WithReportingPeriod(d time.Duration) Option {
	return func(r *registry) {
		r.period = d
	}
}
