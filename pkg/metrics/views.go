package metrics

import (
	"sync"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
)

const (
	unitCount        = "count"
	unitEntries      = "entries"
	unitMilliseconds = "milliseconds"
)

// aggregationFor yields the measure unit and the default view aggregation for a declared unit:
//   - counters get a count view
//   - timings get a distribution of durations, in milliseconds
//   - entries get a distribution of the number of items in a batch
func aggregationFor(unit string) (string, *view.Aggregation) {
	switch unit {
	case unitMilliseconds:
		return stats.UnitMilliseconds, view.Distribution(0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100, 500, 1000)
	case unitEntries:
		// depth of a containment chain
		return stats.UnitDimensionless, view.Distribution(1, 2, 3, 5, 8, 13, 21, 34)
	default:
		return stats.UnitDimensionless, view.Count()
	}
}

func extraAggregation(name string) *view.Aggregation {
	switch name {
	case unitCount:
		return view.Count()
	case "sum":
		return view.Sum()
	case "lastvalue":
		return view.LastValue()
	default:
		return nil
	}
}

func defaultDescription(name, unit string) string {
	if unit == "" || unit == unitCount {
		return name + " counter"
	}
	return name + " in " + unit
}

// decorate a view name or description with its aggregation
func decorate(s string, agg *view.Aggregation) string {
	switch agg.Type {
	case view.AggTypeCount:
		return s + " [count]"
	case view.AggTypeSum:
		return s + " [cumulated]"
	case view.AggTypeDistribution:
		return s + " [distribution]"
	case view.AggTypeLastValue:
		return s + " [last]"
	default:
		return s
	}
}

// FlushExporter is a view exporter which may be flushed on demand,
// concurrently with the background exports run by opencensus.
type FlushExporter interface {
	view.Exporter
	Flush(*view.Data)
}

func flusher(e view.Exporter) FlushExporter {
	if f, ok := e.(FlushExporter); ok {
		return f
	}
	return &lockedExporter{Exporter: e}
}

// lockedExporter serializes flushes against background exports.
// Background exports may run in parallel.
type lockedExporter struct {
	view.Exporter
	mx sync.RWMutex
}

func (l *lockedExporter) ExportView(data *view.Data) {
	l.mx.RLock()
	defer l.mx.RUnlock()
	l.Exporter.ExportView(data)
}

func (l *lockedExporter) Flush(data *view.Data) {
	l.mx.Lock()
	defer l.mx.Unlock()
	l.Exporter.ExportView(data)
}
