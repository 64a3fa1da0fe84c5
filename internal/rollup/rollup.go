// Package rollup folds per-file attribution results into per-benchmark
// entries and per-suite sums, normalized with percentages of the root and
// estimated wall time.
package rollup

import (
	"perfrollup/internal/attrib"
	"perfrollup/internal/capture"
)

// FileResult is everything the per-file analysis produced for one capture.
type FileResult struct {
	Path     string
	Counts   capture.Counts
	Meta     capture.Meta
	Counters *attrib.Counters
}

// Builder accumulates file results into a report. Files must be added in
// sorted path order; the first file fixes the frequency/event basis used
// for every wall-time estimate in the run.
type Builder struct {
	perfDir       string
	rootSymbol    string
	calleeSymbols []string

	basis     capture.Meta
	haveBasis bool

	totalFiles   int
	totalSamples int
	totalEvents  int

	suites     map[string]*suiteAccum
	benchmarks map[string]*BenchmarkEntry
}

type suiteAccum struct {
	benchmarkCount int
	root           attrib.Metric
	callees        []attrib.Metric
}

// NewBuilder starts a report. calleeSymbols is the deduplicated tracked
// callee list, in configuration order.
func NewBuilder(perfDir, rootSymbol string, calleeSymbols []string) *Builder {
	return &Builder{
		perfDir:       perfDir,
		rootSymbol:    rootSymbol,
		calleeSymbols: calleeSymbols,
		suites:        make(map[string]*suiteAccum),
		benchmarks:    make(map[string]*BenchmarkEntry),
	}
}

// Basis reports the sampling configuration every estimate is based on,
// once the first file has been added.
func (b *Builder) Basis() (capture.Meta, bool) {
	return b.basis, b.haveBasis
}

// Add folds one file's result into the report. Benchmark keys collide
// last-write-wins; suite sums accumulate by addition.
func (b *Builder) Add(fr FileResult) error {
	id, err := DeriveIdentity(b.perfDir, fr.Path)
	if err != nil {
		return err
	}

	if !b.haveBasis {
		b.basis = fr.Meta
		b.haveBasis = true
	}
	freq := b.basis.SampleFreqHz

	b.totalFiles++
	b.totalSamples += fr.Counts.SampleRecords
	b.totalEvents += fr.Counts.EventRecords

	root := fr.Counters.Root
	entry := &BenchmarkEntry{
		Suite:                  id.Suite,
		Benchmark:              id.Benchmark,
		File:                   fr.Path,
		SampleRecordCount:      fr.Counts.SampleRecords,
		ParsedEventRecordCount: fr.Counts.EventRecords,
		Root:                   newMetric(root, freq),
		Callees:                make([]CalleeMetric, len(fr.Counters.Callees)),
	}
	for i, cc := range fr.Counters.Callees {
		entry.Callees[i] = newCalleeMetric(cc.Symbol, cc.Metric, root, freq)
	}
	b.benchmarks[id.Key] = entry

	suite, ok := b.suites[id.Suite]
	if !ok {
		suite = &suiteAccum{callees: make([]attrib.Metric, len(b.calleeSymbols))}
		b.suites[id.Suite] = suite
	}
	suite.benchmarkCount++
	suite.root.Samples += root.Samples
	suite.root.Period += root.Period
	for i, cc := range fr.Counters.Callees {
		suite.callees[i].Samples += cc.Samples
		suite.callees[i].Period += cc.Period
	}
	return nil
}

// Finish derives the suite-level estimates and percentages from the
// accumulated sums and shapes the final report. Recomputing from sums,
// rather than summing per-file percentages, keeps rounding error out of
// the suite rows.
func (b *Builder) Finish() *Report {
	freq := b.basis.SampleFreqHz

	suites := make(map[string]*SuiteEntry, len(b.suites))
	for name, acc := range b.suites {
		entry := &SuiteEntry{
			BenchmarkCount: acc.benchmarkCount,
			Root:           newMetric(acc.root, freq),
			Callees:        make([]CalleeMetric, len(acc.callees)),
		}
		for i, m := range acc.callees {
			entry.Callees[i] = newCalleeMetric(b.calleeSymbols[i], m, acc.root, freq)
		}
		suites[name] = entry
	}

	return &Report{
		Meta: ReportMeta{
			PerfDir:                 b.perfDir,
			EventName:               b.basis.EventName,
			SampleFreqHz:            b.basis.SampleFreqHz,
			SamplingPolicy:          b.basis.Policy,
			RootSymbol:              b.rootSymbol,
			CalleeSymbols:           b.calleeSymbols,
			TotalFiles:              b.totalFiles,
			TotalSampleRecords:      b.totalSamples,
			TotalParsedEventRecords: b.totalEvents,
		},
		Suites:     suites,
		Benchmarks: b.benchmarks,
	}
}

func newMetric(m attrib.Metric, freqHz float64) Metric {
	return Metric{
		SampleRecordCount: m.Samples,
		PeriodSum:         m.Period,
		EstimatedMs:       estimateMs(m.Samples, freqHz),
	}
}

func newCalleeMetric(symbol string, m, root attrib.Metric, freqHz float64) CalleeMetric {
	return CalleeMetric{
		Symbol:               symbol,
		Metric:               newMetric(m, freqHz),
		PercentOfRootSamples: safePercent(m.Samples, root.Samples),
		PercentOfRootPeriod:  safePercent(m.Period, root.Period),
	}
}

// safePercent clamps to exactly 0 on an empty denominator instead of
// producing NaN or Inf.
func safePercent(num, den uint64) float64 {
	if den == 0 {
		return 0.0
	}
	return float64(num) * 100.0 / float64(den)
}

// estimateMs converts a sample count into estimated wall milliseconds on
// the frequency basis. Unknown or non-positive frequency means no
// estimate, never a division by zero.
func estimateMs(samples uint64, freqHz float64) *float64 {
	if freqHz <= 0 {
		return nil
	}
	ms := float64(samples) * 1000.0 / freqHz
	return &ms
}
