// Command perfrollup analyzes a directory tree of perf.data captures and
// emits a JSON report attributing sampled time to a root function and
// tracked callees, rolled up per benchmark and per suite.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"perfrollup/internal/analyzer"
	"perfrollup/internal/config"
	"perfrollup/internal/rollup"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		outPath       string
		rootSymbol    string
		targetsPath   string
		calleeSymbols []string
	)

	cmd := &cobra.Command{
		Use:          "perfrollup <perf-dir>",
		Short:        "Analyze perf.data captures and emit a JSON summary",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			log := logger.Sugar()

			if targetsPath != "" {
				targets, err := config.LoadTargets(targetsPath)
				if err != nil {
					return err
				}
				if rootSymbol == "" {
					rootSymbol = targets.RootSymbol
				}
				if len(calleeSymbols) == 0 {
					calleeSymbols = targets.CalleeSymbols
				}
			}
			if rootSymbol == "" {
				if len(calleeSymbols) > 0 {
					return errors.New("--callee-symbol requires a root symbol")
				}
				return errors.New("a root symbol is required (--root-symbol or --targets)")
			}

			report, err := analyzer.Run(analyzer.Options{
				PerfDir:       args[0],
				RootSymbol:    rootSymbol,
				CalleeSymbols: calleeSymbols,
				Log:           log,
			})
			if err != nil {
				return err
			}

			if err := writeReport(outPath, report); err != nil {
				return err
			}
			log.Infow("wrote perf analysis summary",
				"files", report.Meta.TotalFiles, "out", outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "perf-summary.json", "output JSON path")
	cmd.Flags().StringVar(&rootSymbol, "root-symbol", "", "root function substring (e.g. run_extract_command)")
	cmd.Flags().StringArrayVar(&calleeSymbols, "callee-symbol", nil, "callee function substring to track within the root; repeatable")
	cmd.Flags().StringVar(&targetsPath, "targets", "", "YAML file with root_symbol and callee_symbols")
	return cmd
}

func writeReport(path string, report *rollup.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
