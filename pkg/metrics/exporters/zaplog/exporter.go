// Package zaplog exports opencensus views as structured log entries.
package zaplog

import (
	"go.opencensus.io/stats/view"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ view.Exporter = &Exporter{}

// Option for the log exporter
type Option func(*Exporter)

// WithLevel sets the level at which view data is logged. The default is debug.
func WithLevel(level zapcore.Level) Option {
	return func(e *Exporter) {
		e.level = level
	}
}

// NewExporter builds an opencensus exporter writing to a zap logger
func NewExporter(l *zap.Logger, opts ...Option) *Exporter {
	if l == nil {
		l = zap.NewNop()
	}
	e := &Exporter{
		l:     l,
		level: zapcore.DebugLevel,
	}
	for _, apply := range opts {
		apply(e)
	}
	return e
}

// Exporter logs every exported view row
type Exporter struct {
	l     *zap.Logger
	level zapcore.Level
}

// ExportView logs the view data, one entry per row
func (e *Exporter) ExportView(viewData *view.Data) {
	if viewData == nil || viewData.View == nil {
		return
	}
	ce := e.l.Check(e.level, "metrics")
	if ce == nil {
		return
	}
	fields := []zap.Field{
		zap.String("view", viewData.View.Name),
		zap.Time("start", viewData.Start),
		zap.Time("end", viewData.End),
		zap.Int("rows", len(viewData.Rows)),
	}
	for i, row := range viewData.Rows {
		tags := make(map[string]string, len(row.Tags))
		for _, t := range row.Tags {
			tags[t.Key.Name()] = t.Value
		}
		fields = append(fields, zap.Any("row", map[string]interface{}{
			"index": i,
			"tags":  tags,
			"data":  rowValue(row.Data),
		}))
	}
	ce.Write(fields...)
}

func rowValue(data view.AggregationData) interface{} {
	switch d := data.(type) {
	case *view.CountData:
		return d.Value
	case *view.SumData:
		return d.Value
	case *view.LastValueData:
		return d.Value
	case *view.DistributionData:
		return map[string]interface{}{
			"count":   d.Count,
			"mean":    d.Mean,
			"min":     d.Min,
			"max":     d.Max,
			"buckets": d.CountPerBucket,
		}
	default:
		return nil
	}
}
