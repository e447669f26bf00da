// Package metrics declares opencensus measures and views from tagged structs.
//
// Metric sets are plain structs of *stats.Int64Measure or *stats.Float64Measure
// fields, registered once with EnsureMetrics. Views are exported through the
// exporter given to Init, a zap log exporter by default.
package metrics
