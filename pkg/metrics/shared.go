package metrics

import (
	"time"

	"go.opencensus.io/stats"
)

// TransactionMetrics is a common set of metrics reporting about revision swaps
type TransactionMetrics struct {
	Commits  *stats.Int64Measure `metric:"commits" description:"number of committed transactions" tags:"kind"`
	Entries  *stats.Int64Measure `metric:"entries" unit:"entries" description:"number of owners swapped by a commit" extraviews:"sum" tags:"kind"`
	Discards *stats.Int64Measure `metric:"discards" description:"number of abandoned transactions" tags:"kind"`
	Failures *stats.Int64Measure `metric:"releaseFailures" description:"number of failed releases of displaced revisions" tags:"kind"`
}

func (m *TransactionMetrics) tags() map[string]string {
	return map[string]string{"kind": "transaction"}
}

// Committed records a commit of some entries
func (m *TransactionMetrics) Committed(entries int) {
	Inc(m.Commits, m.tags())
	Int64(m.Entries, int64(entries), m.tags())
}

// Discarded records an abandoned transaction
func (m *TransactionMetrics) Discarded() {
	Inc(m.Discards, m.tags())
}

// Failed records release failures after a commit
func (m *TransactionMetrics) Failed(failures int) {
	if failures == 0 {
		return
	}
	Int64(m.Failures, int64(failures), m.tags())
}

// NotificationMetrics is a common set of metrics reporting about change notifications
type NotificationMetrics struct {
	Emitted      *stats.Int64Measure `metric:"emitted" description:"number of emitted change events" tags:"kind"`
	Suppressed   *stats.Int64Measure `metric:"suppressed" description:"number of suppression scopes which ended with no change to notify" tags:"kind"`
	Consolidated *stats.Int64Measure `metric:"consolidated" description:"number of consolidated events emitted when a suppression scope ends" tags:"kind"`
	Failures     *stats.Int64Measure `metric:"failures" description:"number of failed subscriber calls" tags:"kind"`
}

func (m *NotificationMetrics) tags() map[string]string {
	return map[string]string{"kind": "notification"}
}

// Emit records an emitted event
func (m *NotificationMetrics) Emit(consolidated bool) {
	if consolidated {
		Inc(m.Consolidated, m.tags())
		return
	}
	Inc(m.Emitted, m.tags())
}

// Suppress records a suppression scope which ended with no change to notify
func (m *NotificationMetrics) Suppress() {
	Inc(m.Suppressed, m.tags())
}

// Failed records a failed subscriber
func (m *NotificationMetrics) Failed() {
	Inc(m.Failures, m.tags())
}

// UsageMetrics reports calls to some entry points, by method
type UsageMetrics struct {
	Count    *stats.Int64Measure   `metric:"usageCount" description:"number of calls" tags:"kind,method"`
	Failures *stats.Int64Measure   `metric:"usageFailures" description:"number of failed calls" tags:"kind,method"`
	Timing   *stats.Float64Measure `metric:"timing" unit:"milliseconds" description:"duration of a call" tags:"kind,method"`
}

func (u *UsageMetrics) tags(method string) map[string]string {
	return map[string]string{"kind": "usage", "method": method}
}

// Inc counts a call to method, with no timing
func (u *UsageMetrics) Inc(method string) {
	Inc(u.Count, u.tags(method))
}

// Used counts a call to method and records its duration since start.
//
//	func (m *Model) Guard() *NotificationGuard {
//	  defer m.m.Usage.Used(time.Now(), "guard")
//	  ...
//	}
func (u *UsageMetrics) Used(start time.Time, method string) {
	tags := u.tags(method)
	Since(start, u.Timing, tags)
	Inc(u.Count, tags)
}

// UsedAll is like Used, and also counts failures. The returned function is fed the outcome of the call.
//
//	func run() (err error) {
//	  defer func(start time.Time) { usage.UsedAll(start, "run")(err) }(time.Now())
//	  ...
//	}
func (u *UsageMetrics) UsedAll(start time.Time, method string) func(error) {
	return func(err error) {
		u.Used(start, method)
		if err != nil {
			u.Failed(method)
		}
	}
}

// Failed counts a failed call to method
func (u *UsageMetrics) Failed(method string) {
	Inc(u.Failures, u.tags(method))
}
