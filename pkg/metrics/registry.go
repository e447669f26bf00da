package metrics

import (
	"context"
	"fmt"
	"path"
	"reflect"
	"sync"
	"time"

	"github.com/oneconcern/gpmodel/pkg/metrics/exporters/zaplog"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.uber.org/zap"
)

var (
	current  *registry
	initOnce sync.Once
)

// registry holds the metrics modules registered for a process, and the views built on their measures
type registry struct {
	basePath  string
	contexter func() context.Context
	exporter  FlushExporter
	logger    *zap.Logger
	period    time.Duration

	mx       sync.Mutex
	modules  map[string]interface{}
	measures []stats.Measure
	views    []*view.View
}

// DefaultExporter returns a metrics exporter writing view data to the logger
func DefaultExporter(l *zap.Logger) view.Exporter {
	return flusher(zaplog.NewExporter(l))
}

func newRegistry(opts ...Option) *registry {
	r := &registry{
		contexter: context.Background,
		logger:    zap.NewNop(),
		modules:   make(map[string]interface{}),
	}
	for _, apply := range opts {
		apply(r)
	}
	if r.exporter == nil {
		r.exporter = flusher(DefaultExporter(r.logger))
	}

	view.RegisterExporter(r.exporter)
	if r.period >= time.Second {
		view.SetReportingPeriod(r.period)
	}
	return r
}

// EnsureMetrics registers the metrics struct m under location, once.
// Later registrations at the same location return the first one.
func (r *registry) EnsureMetrics(location string, m interface{}) interface{} {
	r.mx.Lock()
	defer r.mx.Unlock()

	location = path.Join(r.basePath, location)
	if existing, ok := r.modules[location]; ok {
		if reflect.TypeOf(existing) != reflect.TypeOf(m) {
			panic(fmt.Sprintf("metrics: %s is already registered with type %T, got %T", location, existing, m))
		}
		return existing
	}

	scanStruct(location, r.newMeasure, m)
	r.modules[location] = m
	return m
}

// newMeasure creates a measure with a default view according to its unit,
// plus the extra views declared by its tags.
func (r *registry) newMeasure(name string, tags metricTags, typ reflect.Type) stats.Measure {
	description := tags.description
	if description == "" {
		description = defaultDescription(name, tags.unit)
	}
	unit, agg := aggregationFor(tags.unit)

	var measure stats.Measure
	if typ == float64MeasureType {
		measure = stats.Float64(name, description, unit)
	} else {
		measure = stats.Int64(name, description, unit)
	}
	r.measures = append(r.measures, measure)

	r.register(&view.View{
		Name:        name,
		Description: decorate(description, agg),
		Measure:     measure,
		Aggregation: agg,
		TagKeys:     tags.keys,
	})

	for _, extra := range tags.extraViews {
		agg := extraAggregation(extra)
		if agg == nil {
			r.logger.Debug("metrics: unknown view aggregation", zap.String("metric", name), zap.String("aggregation", extra))
			continue
		}
		r.register(&view.View{
			Name:        decorate(name, agg),
			Description: decorate(description, agg),
			Measure:     measure,
			Aggregation: agg,
			TagKeys:     tags.keys,
		})
	}
	return measure
}

func (r *registry) register(v *view.View) {
	r.views = append(r.views, v)
	if err := view.Register(v); err != nil {
		r.logger.Debug("metrics: view not registered", zap.String("view", v.Name), zap.Error(err))
	}
}

// Flush exports the data collected so far by all registered views
func (r *registry) Flush() {
	r.mx.Lock()
	views := make([]*view.View, len(r.views))
	copy(views, r.views)
	r.mx.Unlock()

	for _, v := range views {
		rows, err := view.RetrieveData(v.Name)
		if err != nil {
			continue
		}
		now := time.Now()
		r.exporter.Flush(&view.Data{View: v, Start: now, End: now, Rows: rows})
	}
}
