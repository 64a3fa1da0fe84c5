package analyzer

import (
	"go.uber.org/zap"

	"perfrollup/internal/attrib"
	"perfrollup/internal/rollup"
)

// Options configures one whole-directory run.
type Options struct {
	PerfDir       string
	RootSymbol    string
	CalleeSymbols []string
	Log           *zap.SugaredLogger
}

// Run analyzes every capture under PerfDir, strictly sequentially in
// sorted path order, and rolls the results up into a report. The first
// ReadError, ToolError or IdentityError aborts the run.
func Run(opts Options) (*rollup.Report, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	files, err := FindCaptureFiles(opts.PerfDir)
	if err != nil {
		return nil, err
	}
	log.Infow("discovered capture files", "dir", opts.PerfDir, "count", len(files))

	// Deduplicate the tracked callees once so every file reports the
	// same counter set in the same order.
	tracked := attrib.NewCounters(opts.CalleeSymbols).Symbols()
	builder := rollup.NewBuilder(opts.PerfDir, opts.RootSymbol, tracked)

	for _, path := range files {
		counts, meta, err := CountRecords(path)
		if err != nil {
			return nil, err
		}
		if basis, ok := builder.Basis(); ok && meta.SampleFreqHz != basis.SampleFreqHz {
			log.Warnw("sampling frequency differs from first-file basis; estimates keep the basis",
				"file", path, "freq_hz", meta.SampleFreqHz, "basis_hz", basis.SampleFreqHz)
		}

		counters, err := AnalyzeFocus(path, opts.RootSymbol, tracked)
		if err != nil {
			return nil, err
		}

		if err := builder.Add(rollup.FileResult{
			Path:     path,
			Counts:   counts,
			Meta:     meta,
			Counters: counters,
		}); err != nil {
			return nil, err
		}
		log.Infow("analyzed capture",
			"file", path,
			"sample_records", counts.SampleRecords,
			"root_samples", counters.Root.Samples)
	}

	return builder.Finish(), nil
}
