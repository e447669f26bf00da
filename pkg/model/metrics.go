package model

import (
	"time"

	"github.com/oneconcern/gpmodel/pkg/metrics"
)

// M describes the metrics collected by this package
type M struct {
	Notifications metrics.NotificationMetrics `group:"notifications" description:"change notifications"`
	Usage         metrics.UsageMetrics        `group:"usage" description:"model entry points"`
}

// EnableMetrics toggles metrics collection on notifications.
//
// Metrics are registered on first use, under the "model" location.
func (m *Model) EnableMetrics(enabled bool) {
	m.Enable.EnableMetrics(enabled)
	if enabled && m.m == nil {
		m.m = m.EnsureMetrics("model", &M{}).(*M)
	}
}

func (m *Model) emitted(consolidated bool) {
	if !m.MetricsEnabled() {
		return
	}
	m.m.Notifications.Emit(consolidated)
}

func (m *Model) unchanged() {
	if !m.MetricsEnabled() {
		return
	}
	m.m.Notifications.Suppress()
}

func (m *Model) failed() {
	if !m.MetricsEnabled() {
		return
	}
	m.m.Notifications.Failed()
}

func (m *Model) used(start time.Time, method string, err error) {
	if !m.MetricsEnabled() {
		return
	}
	m.m.Usage.UsedAll(start, method)(err)
}
