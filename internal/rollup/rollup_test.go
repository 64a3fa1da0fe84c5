package rollup

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perfrollup/internal/attrib"
	"perfrollup/internal/capture"
)

func TestSafePercent(t *testing.T) {
	assert.Equal(t, 0.0, safePercent(0, 0))
	assert.Equal(t, 0.0, safePercent(5, 0))
	assert.Equal(t, 25.0, safePercent(5, 20))
	assert.Equal(t, 100.0, safePercent(20, 20))
}

func TestEstimateMs(t *testing.T) {
	assert.Nil(t, estimateMs(500, 0))
	assert.Nil(t, estimateMs(500, -997))

	got := estimateMs(500, 1000)
	require.NotNil(t, got)
	assert.Equal(t, 500.0, *got)
}

func fileResult(path string, rootSamples, rootPeriod uint64, meta capture.Meta, callees ...attrib.CalleeCounter) FileResult {
	return FileResult{
		Path:   path,
		Counts: capture.Counts{SampleRecords: int(rootSamples) * 2, EventRecords: int(rootSamples) * 3},
		Meta:   meta,
		Counters: &attrib.Counters{
			Root:    attrib.Metric{Samples: rootSamples, Period: rootPeriod},
			Callees: callees,
		},
	}
}

func TestBuilderRollsUpSuites(t *testing.T) {
	root := "perf"
	meta := capture.Meta{EventName: "cycles", SampleFreqHz: 1000, Policy: "freq"}
	callee := func(samples, period uint64) attrib.CalleeCounter {
		return attrib.CalleeCounter{
			Symbol: "parse_program",
			Metric: attrib.Metric{Samples: samples, Period: period},
		}
	}

	b := NewBuilder(root, "run_extract", []string{"parse_program"})
	require.NoError(t, b.Add(fileResult(filepath.Join(root, "suiteA", "bench1.perf.data"), 10, 1000, meta, callee(4, 400))))
	require.NoError(t, b.Add(fileResult(filepath.Join(root, "suiteA", "bench2.perf.data"), 7, 700, meta, callee(2, 200))))
	require.NoError(t, b.Add(fileResult(filepath.Join(root, "suiteA", "bench3.perf.data"), 3, 300, meta, callee(1, 100))))
	require.NoError(t, b.Add(fileResult(filepath.Join(root, "suiteB", "bench1.perf.data"), 5, 500, meta, callee(5, 500))))

	report := b.Finish()

	require.Len(t, report.Benchmarks, 4)
	require.Contains(t, report.Benchmarks, "suiteA/bench1")
	require.Contains(t, report.Benchmarks, "suiteB/bench1")

	require.Len(t, report.Suites, 2)
	suiteA := report.Suites["suiteA"]
	require.NotNil(t, suiteA)
	assert.Equal(t, 3, suiteA.BenchmarkCount)
	assert.Equal(t, uint64(20), suiteA.Root.SampleRecordCount)
	assert.Equal(t, uint64(2000), suiteA.Root.PeriodSum)

	// Suite percentages are recomputed from the sums.
	require.Len(t, suiteA.Callees, 1)
	assert.Equal(t, "parse_program", suiteA.Callees[0].Symbol)
	assert.Equal(t, uint64(7), suiteA.Callees[0].SampleRecordCount)
	assert.InDelta(t, 35.0, suiteA.Callees[0].PercentOfRootSamples, 1e-9)
	assert.InDelta(t, 35.0, suiteA.Callees[0].PercentOfRootPeriod, 1e-9)

	// Estimates use the frequency basis: 20 samples at 1000 Hz = 20 ms.
	require.NotNil(t, suiteA.Root.EstimatedMs)
	assert.InDelta(t, 20.0, *suiteA.Root.EstimatedMs, 1e-9)

	assert.Equal(t, "cycles", report.Meta.EventName)
	assert.Equal(t, "freq", report.Meta.SamplingPolicy)
	assert.Equal(t, 4, report.Meta.TotalFiles)
	assert.Equal(t, 50, report.Meta.TotalSampleRecords)
	assert.Equal(t, 75, report.Meta.TotalParsedEventRecords)
}

func TestBuilderFirstFileFixesBasis(t *testing.T) {
	root := "perf"
	first := capture.Meta{EventName: "cycles", SampleFreqHz: 1000, Policy: "freq"}
	second := capture.Meta{EventName: "cpu-clock", SampleFreqHz: 4000, Policy: "freq"}

	b := NewBuilder(root, "run_extract", nil)
	require.NoError(t, b.Add(fileResult(filepath.Join(root, "s", "a.perf.data"), 10, 10, first)))
	require.NoError(t, b.Add(fileResult(filepath.Join(root, "s", "b.perf.data"), 10, 10, second)))

	report := b.Finish()
	assert.Equal(t, "cycles", report.Meta.EventName)
	assert.Equal(t, 1000.0, report.Meta.SampleFreqHz)

	// The second file's estimate uses the first file's frequency.
	entry := report.Benchmarks["s/b"]
	require.NotNil(t, entry)
	require.NotNil(t, entry.Root.EstimatedMs)
	assert.InDelta(t, 10.0, *entry.Root.EstimatedMs, 1e-9)
}

func TestBuilderNoFrequencyBasisMeansNoEstimates(t *testing.T) {
	root := "perf"
	meta := capture.Meta{EventName: "cycles", Policy: "period"}

	b := NewBuilder(root, "run_extract", nil)
	require.NoError(t, b.Add(fileResult(filepath.Join(root, "s", "a.perf.data"), 10, 10, meta)))

	report := b.Finish()
	assert.Nil(t, report.Benchmarks["s/a"].Root.EstimatedMs)
	assert.Nil(t, report.Suites["s"].Root.EstimatedMs)
}

func TestBuilderBenchmarkKeyCollisionLastWriteWins(t *testing.T) {
	root := "perf"
	meta := capture.Meta{SampleFreqHz: 1000}
	path := filepath.Join(root, "s", "a.perf.data")

	b := NewBuilder(root, "run_extract", nil)
	require.NoError(t, b.Add(fileResult(path, 1, 1, meta)))
	require.NoError(t, b.Add(fileResult(path, 9, 9, meta)))

	report := b.Finish()
	require.Len(t, report.Benchmarks, 1)
	assert.Equal(t, uint64(9), report.Benchmarks["s/a"].Root.SampleRecordCount)
	// The suite still saw both files.
	assert.Equal(t, 2, report.Suites["s"].BenchmarkCount)
}

func TestBuilderPropagatesIdentityError(t *testing.T) {
	b := NewBuilder("perf", "run_extract", nil)
	err := b.Add(fileResult(filepath.Join("elsewhere", "s", "a.perf.data"), 1, 1, capture.Meta{}))
	var idErr *IdentityError
	require.ErrorAs(t, err, &idErr)
}
