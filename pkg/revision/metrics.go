package revision

import (
	"github.com/oneconcern/gpmodel/pkg/metrics"
)

// M describes the metrics collected by this package
type M struct {
	Transactions metrics.TransactionMetrics `group:"transactions" description:"revision swaps"`
}

type instrument struct {
	metrics.Enable
	m *M
}

var instrumentation instrument

// EnableMetrics toggles metrics collection for transactions.
//
// Metrics are registered on first use, under the "revision" location.
func EnableMetrics(enabled bool) {
	if enabled && instrumentation.m == nil {
		instrumentation.m = instrumentation.EnsureMetrics("revision", &M{}).(*M)
	}
	instrumentation.EnableMetrics(enabled)
}

func (i *instrument) committed(entries, failures int) {
	if !i.MetricsEnabled() {
		return
	}
	i.m.Transactions.Committed(entries)
	i.m.Transactions.Failed(failures)
}

func (i *instrument) discarded() {
	if !i.MetricsEnabled() {
		return
	}
	i.m.Transactions.Discarded()
}
