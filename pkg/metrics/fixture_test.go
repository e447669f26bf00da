package metrics

import (
	"sync"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
)

type exampleMetrics struct {
	Telemetry struct {
		UsageCounts   []UsageMetrics        `group:"usage" description:""`    // ignored
		FailureCounts []*stats.Int64Measure `group:"failures" description:""` // ignored
		TestCount     *stats.Int64Measure   `metric:"testCount" description:"number of tests"`
	} `group:"telemetry" description:""`
	Revisions struct {
		Transactions TransactionMetrics `group:"transactions" description:""`
	} `group:"revisions" description:""`
	Model struct {
		Notifications NotificationMetrics
		Usage         UsageMetrics
	} `group:"model" description:""`
}

func (e *exampleMetrics) IncTest() {
	Inc(e.Telemetry.TestCount, map[string]string{"kind": "test"})
}

type countingExporter struct {
	mx    sync.Mutex
	views map[string]int
}

func testExporter() *countingExporter {
	return &countingExporter{views: make(map[string]int)}
}

func (e *countingExporter) ExportView(data *view.Data) {
	if data != nil && data.View != nil {
		e.mx.Lock()
		e.views[data.View.Name]++
		e.mx.Unlock()
	}
}

func (e *countingExporter) count(name string) int {
	e.mx.Lock()
	defer e.mx.Unlock()
	return e.views[name]
}
