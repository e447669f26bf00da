package metrics

import (
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/tag"
)

// Init sets up metrics collection for the process: exporter, base path and logger.
//
// Only the first call to Init applies. Registering metrics before any call to Init
// settles the defaults, i.e. a log exporter with no logger.
func Init(opts ...Option) {
	initOnce.Do(func() {
		current = newRegistry(opts...)
	})
}

// Flush exports all collected metrics
func Flush() {
	global().Flush()
}

func global() *registry {
	Init()
	return current
}

// EnsureMetrics registers a metrics struct at some location, lazily.
//
// Only the first registration at a given location applies: later calls return it.
// It panics if a later call passes a different type.
func EnsureMetrics(location string, m interface{}) interface{} {
	return global().EnsureMetrics(location, m)
}

// Inc increments a counter
func Inc(counter *stats.Int64Measure, tags ...map[string]string) {
	record(tags, counter.M(1))
}

// Int64 records a measurement
func Int64(measure *stats.Int64Measure, value int64, tags ...map[string]string) {
	record(tags, measure.M(value))
}

// Float64 records a measurement
func Float64(measure *stats.Float64Measure, value float64, tags ...map[string]string) {
	record(tags, measure.M(value))
}

// Since records the milliseconds elapsed since start
func Since(start time.Time, measure *stats.Float64Measure, tags ...map[string]string) {
	Duration(start, time.Now(), measure, tags...)
}

// Duration records the milliseconds elapsed from start to end
func Duration(start, end time.Time, measure *stats.Float64Measure, tags ...map[string]string) {
	record(tags, measure.M(float64(end.Sub(start))/float64(time.Millisecond)))
}

func record(tags []map[string]string, m stats.Measurement) {
	var mutators []tag.Mutator
	for _, set := range tags {
		for k, v := range set {
			mutators = append(mutators, tag.Upsert(tag.MustNewKey(k), v))
		}
	}
	_ = stats.RecordWithTags(global().contexter(), mutators, m)
}

// Enable gives a type a switch to turn its metrics on and off.
//
// Sample usage:
//
//	type Model struct {
//	  metrics.Enable
//	  m *M
//	}
//
//	type M struct {
//	  Usage metrics.UsageMetrics `group:"usage" description:"calls to the model"`
//	  Edits *stats.Int64Measure `metric:"edits" description:"number of edits" extraviews:"sum"`
//	}
//
//	func New() *Model {
//	  m := &Model{}
//	  m.m = m.EnsureMetrics("model", &M{}).(*M)
//	  m.EnableMetrics(true)
//	  return m
//	}
type Enable struct {
	metricsEnabled bool
}

// MetricsEnabled tells whether metrics are enabled
func (e Enable) MetricsEnabled() bool {
	return e.metricsEnabled
}

// EnableMetrics toggles metrics collection
func (e *Enable) EnableMetrics(enabled bool) {
	e.metricsEnabled = enabled
}

// EnsureMetrics registers m under name. See the package level EnsureMetrics.
func (e *Enable) EnsureMetrics(name string, m interface{}) interface{} {
	return EnsureMetrics(name, m)
}
