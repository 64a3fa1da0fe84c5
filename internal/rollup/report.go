package rollup

// Metric is one attributed quantity: a sample count, its period-weighted
// sum, and a wall-time estimate when a frequency basis is known.
type Metric struct {
	SampleRecordCount uint64   `json:"sample_record_count"`
	PeriodSum         uint64   `json:"period_sum"`
	EstimatedMs       *float64 `json:"estimated_ms,omitempty"`
}

// CalleeMetric is a tracked callee's metric plus its share of the root.
type CalleeMetric struct {
	Symbol string `json:"symbol"`
	Metric
	PercentOfRootSamples float64 `json:"percent_of_root_samples"`
	PercentOfRootPeriod  float64 `json:"percent_of_root_period"`
}

// BenchmarkEntry is the per-file attribution result.
type BenchmarkEntry struct {
	Suite                  string         `json:"suite"`
	Benchmark              string         `json:"benchmark"`
	File                   string         `json:"file"`
	SampleRecordCount      int            `json:"sample_record_count"`
	ParsedEventRecordCount int            `json:"parsed_event_record_count"`
	Root                   Metric         `json:"root"`
	Callees                []CalleeMetric `json:"callees"`
}

// SuiteEntry is the field-wise sum of every benchmark in one suite, with
// estimates and percentages recomputed from the summed counts.
type SuiteEntry struct {
	BenchmarkCount int            `json:"benchmark_count"`
	Root           Metric         `json:"root"`
	Callees        []CalleeMetric `json:"callees"`
}

// ReportMeta describes the run: where the captures came from, the
// sampling basis every wall-time estimate uses, and what was tracked.
type ReportMeta struct {
	PerfDir                 string   `json:"perf_dir"`
	EventName               string   `json:"event_name"`
	SampleFreqHz            float64  `json:"sample_freq_hz"`
	SamplingPolicy          string   `json:"sampling_policy"`
	RootSymbol              string   `json:"root_symbol"`
	CalleeSymbols           []string `json:"callee_symbols"`
	TotalFiles              int      `json:"total_files"`
	TotalSampleRecords      int      `json:"total_sample_records"`
	TotalParsedEventRecords int      `json:"total_parsed_event_records"`
}

// Report is the final meta/suites/benchmarks document.
type Report struct {
	Meta       ReportMeta                 `json:"meta"`
	Suites     map[string]*SuiteEntry     `json:"suites"`
	Benchmarks map[string]*BenchmarkEntry `json:"benchmarks"`
}
