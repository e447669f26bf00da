package cmd

import (
	"time"

	"github.com/oneconcern/gpmodel/pkg/metrics"
	"github.com/oneconcern/gpmodel/pkg/revision"
	"go.uber.org/zap"
)

type metricsFlags struct {
	enabled bool
	m       *M
}

// M describes metrics for the cmd package
type M struct {
	Usage metrics.UsageMetrics `group:"telemetry" description:"usage stats for gpmodel CLI"`
}

// initMetrics starts metrics collection, exported to the logs
func initMetrics(logger *zap.Logger) {
	if !gpmodelFlags.root.metrics.enabled {
		return
	}
	metrics.Init(metrics.WithLogger(logger), metrics.WithBasePath("gpmodel"))
	gpmodelFlags.root.metrics.m = metrics.EnsureMetrics("cli", &M{}).(*M)
	revision.EnableMetrics(true)
}

// cliUsage records a usage metric in the CLI context in a single go.
// This is intended to be used in some defer statement.
//
// Metrics are flushed as soon as the command is done.
func cliUsage(t0 time.Time, command string, err error) {
	if gpmodelFlags.root.metrics.m != nil {
		gpmodelFlags.root.metrics.m.Usage.UsedAll(t0, command)(err)
		metrics.Flush()
	}
}
