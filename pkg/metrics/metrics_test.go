package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opencensus.io/stats"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func fixtureRequires(t testing.TB, m *exampleMetrics) {
	require.NotNil(t, m.Telemetry.TestCount)
	require.NotNil(t, m.Revisions.Transactions.Commits)
	require.NotNil(t, m.Model.Notifications.Emitted)
	require.NotNil(t, m.Model.Usage.Count)
}

func exerciseAPI(t testing.TB, m *exampleMetrics) {
	Inc(m.Telemetry.TestCount)
	Inc(m.Revisions.Transactions.Commits)
	Int64(m.Revisions.Transactions.Entries, 3)
	Float64(m.Model.Usage.Timing, 1.5)
	Duration(time.Now(), time.Now(), m.Model.Usage.Timing)
}

func TestMetrics(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))

	testMetrics := &exampleMetrics{}
	Init(
		WithExporter(testExporter()),
	)
	_ = EnsureMetrics("example", testMetrics)

	fixtureRequires(t, testMetrics)

	exerciseAPI(t, testMetrics)
}

func TestRegister(t *testing.T) {
	testMetrics := &exampleMetrics{}
	Init(
		WithExporter(testExporter()),
	)

	// lazy registration
	x := EnsureMetrics("registerExample", testMetrics)
	fixtureRequires(t, testMetrics)
	exerciseAPI(t, testMetrics)

	// retry registration
	y := EnsureMetrics("registerExample", testMetrics)
	require.Equal(t, x, y)

	type other struct {
		Count *UsageMetrics
	}
	assert.Panics(t, func() {
		_ = EnsureMetrics("registerExample", &other{})
	})
}

func TestModules(t *testing.T) {
	exporter := testExporter()
	s := newRegistry(
		WithBasePath("root"),
		WithExporter(exporter),
	)
	testMetrics := &exampleMetrics{}
	_ = s.EnsureMetrics("moduleTesting", testMetrics)

	require.Len(t, s.modules, 1)
	assert.Len(t, s.measures, 12)
	assert.Len(t, s.views, 13)

	fixtureRequires(t, testMetrics)
	saved := current
	current = s
	defer func() { current = saved }()

	// helper object level API
	t0 := time.Now()

	testMetrics.IncTest()

	tx := &testMetrics.Revisions.Transactions
	tx.Committed(3)
	tx.Discarded()
	tx.Failed(0)
	tx.Failed(2)

	n := &testMetrics.Model.Notifications
	n.Emit(false)
	n.Emit(true)
	n.Suppress()
	n.Failed()

	u := &testMetrics.Model.Usage
	u.Inc("set")
	u.Used(t0, "set")
	u.UsedAll(t0, "set")(nil)
	u.UsedAll(t0, "set")(fmt.Errorf("failure"))
	u.Failed("set")

	s.Flush()
	assert.Equal(t, 1, exporter.count("root/moduleTesting/revisions/transactions/commits"))
	assert.Equal(t, 1, exporter.count("root/moduleTesting/telemetry/testCount"))
}

func TestDefaultExporter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := newRegistry(
		WithBasePath("logged"),
		WithLogger(zap.New(core)),
		WithReportingPeriod(time.Hour),
	)
	testMetrics := &exampleMetrics{}
	_ = s.EnsureMetrics("module", testMetrics)

	require.NotNil(t, s.exporter)
	s.Flush()
	assert.GreaterOrEqual(t, logs.FilterMessage("metrics").Len(), len(s.views))
}

func TestScanStruct(t *testing.T) {
	s := newRegistry(WithExporter(testExporter()))
	m := &exampleMetrics{}

	scanStruct("scanned", s.newMeasure, m)

	assert.Nil(t, m.Telemetry.UsageCounts)
	assert.Nil(t, m.Telemetry.FailureCounts)
	assert.NotNil(t, m.Telemetry.TestCount)
	assert.NotNil(t, m.Revisions.Transactions.Entries)
	assert.NotNil(t, m.Model.Notifications.Consolidated)
	require.NotNil(t, m.Model.Usage.Timing)
	assert.IsType(t, &stats.Float64Measure{}, m.Model.Usage.Timing)

	assert.Equal(t, "scanned/telemetry/testCount", m.Telemetry.TestCount.Name())
	assert.Equal(t, "scanned/revisions/transactions/entries", m.Revisions.Transactions.Entries.Name())
	assert.Equal(t, "scanned/model/usageCount", m.Model.Usage.Count.Name())
	assert.Len(t, s.measures, 12)
	assert.Len(t, s.views, 13, "entries get an extra sum view")
}

func TestScanStructNested(t *testing.T) {
	type nested struct {
		Usage  *UsageMetrics `group:"usage"`
		Ignore *int          `metric:"notAMeasure"`
		hidden *TransactionMetrics
	}
	s := newRegistry(WithExporter(testExporter()))
	m := &nested{}

	scanStruct("nested", s.newMeasure, m)

	require.NotNil(t, m.Usage, "nil pointers to metric groups are allocated")
	assert.Equal(t, "nested/usage/usageFailures", m.Usage.Failures.Name())
	assert.Nil(t, m.Ignore)
	assert.Nil(t, m.hidden)
}

func TestScanStructRequiresPointer(t *testing.T) {
	s := newRegistry(WithExporter(testExporter()))
	assert.Panics(t, func() {
		scanStruct("parent", s.newMeasure, exampleMetrics{})
	})
	var nilMetrics *exampleMetrics
	assert.Panics(t, func() {
		scanStruct("parent", s.newMeasure, nilMetrics)
	})
}
