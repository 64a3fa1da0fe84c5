package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"perfrollup/internal/analyzer"
)

func main() {
	// Create MCP server
	s := server.NewMCPServer(
		"perfrollup",
		"1.0.0",
		server.WithLogging(),
	)

	// Tool 1: Count Records
	countRecordsTool := mcp.NewTool("count_records",
		mcp.WithDescription("Count sample records vs total event records in one perf.data capture file and report its sampling configuration."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Absolute path to the perf.data capture file"),
		),
	)

	s.AddTool(countRecordsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filePath, err := request.RequireString("file_path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		counts, meta, err := analyzer.CountRecords(filePath)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to read capture: %v", err)), nil
		}

		result := fmt.Sprintf(`Capture read successfully!

File: %s
Sample records: %d
Parsed event records: %d
Event: %s
Sampling policy: %s
Sample frequency: %.0f Hz
`,
			filePath,
			counts.SampleRecords,
			counts.EventRecords,
			meta.EventName,
			meta.Policy,
			meta.SampleFreqHz,
		)

		return mcp.NewToolResultText(result), nil
	})

	// Tool 2: Analyze Focus
	analyzeFocusTool := mcp.NewTool("analyze_focus",
		mcp.WithDescription("Attribute sampled time in one capture to a root function and tracked callees beneath it. Requires the perf tool on PATH for stack symbolication."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Absolute path to the perf.data capture file"),
		),
		mcp.WithString("root_symbol",
			mcp.Required(),
			mcp.Description("Root function substring identifying samples of interest"),
		),
		mcp.WithString("callee_symbols",
			mcp.Description("Comma-separated callee function substrings to track within the root"),
		),
	)

	s.AddTool(analyzeFocusTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filePath, err := request.RequireString("file_path")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		rootSymbol, err := request.RequireString("root_symbol")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		callees := splitSymbols(request.GetString("callee_symbols", ""))

		counters, err := analyzer.AnalyzeFocus(filePath, rootSymbol, callees)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to analyze capture: %v", err)), nil
		}

		var sb strings.Builder
		sb.WriteString("🔥 FUNCTION FOCUS ATTRIBUTION\n")
		sb.WriteString("═══════════════════════════════════════════════════\n\n")
		sb.WriteString(fmt.Sprintf("File: %s\n", filePath))
		sb.WriteString(fmt.Sprintf("Root: %s\n", rootSymbol))
		sb.WriteString(fmt.Sprintf("    Samples: %d\n", counters.Root.Samples))
		sb.WriteString(fmt.Sprintf("    Period sum: %d\n\n", counters.Root.Period))

		if len(counters.Callees) == 0 {
			sb.WriteString("No callee symbols tracked.\n")
		} else {
			sb.WriteString("Callees beneath the root:\n\n")
			for i, cc := range counters.Callees {
				pctSamples := 0.0
				pctPeriod := 0.0
				if counters.Root.Samples > 0 {
					pctSamples = float64(cc.Samples) / float64(counters.Root.Samples) * 100.0
				}
				if counters.Root.Period > 0 {
					pctPeriod = float64(cc.Period) / float64(counters.Root.Period) * 100.0
				}
				sb.WriteString(fmt.Sprintf("#%d: %s\n", i+1, cc.Symbol))
				sb.WriteString(fmt.Sprintf("    Samples: %d (%.2f%% of root)\n", cc.Samples, pctSamples))
				sb.WriteString(fmt.Sprintf("    Period sum: %d (%.2f%% of root)\n\n", cc.Period, pctPeriod))
			}
		}

		return mcp.NewToolResultText(sb.String()), nil
	})

	// Tool 3: Summarize Captures
	summarizeTool := mcp.NewTool("summarize_captures",
		mcp.WithDescription("Analyze every perf.data capture under a directory and roll the attribution up per benchmark and per suite. The directory layout supplies the identities: <suite>/<benchmark>.perf.data."),
		mcp.WithString("perf_dir",
			mcp.Required(),
			mcp.Description("Directory tree containing *.perf.data files"),
		),
		mcp.WithString("root_symbol",
			mcp.Required(),
			mcp.Description("Root function substring identifying samples of interest"),
		),
		mcp.WithString("callee_symbols",
			mcp.Description("Comma-separated callee function substrings to track within the root"),
		),
	)

	s.AddTool(summarizeTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		perfDir, err := request.RequireString("perf_dir")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		rootSymbol, err := request.RequireString("root_symbol")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		callees := splitSymbols(request.GetString("callee_symbols", ""))

		report, err := analyzer.Run(analyzer.Options{
			PerfDir:       perfDir,
			RootSymbol:    rootSymbol,
			CalleeSymbols: callees,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to summarize captures: %v", err)), nil
		}

		var sb strings.Builder
		sb.WriteString("📊 PERF CAPTURE ROLLUP\n")
		sb.WriteString("═══════════════════════════════════════════════════\n\n")
		sb.WriteString(fmt.Sprintf("Directory: %s\n", report.Meta.PerfDir))
		sb.WriteString(fmt.Sprintf("Files: %d\n", report.Meta.TotalFiles))
		sb.WriteString(fmt.Sprintf("Event: %s (%s, %.0f Hz)\n", report.Meta.EventName, report.Meta.SamplingPolicy, report.Meta.SampleFreqHz))
		sb.WriteString(fmt.Sprintf("Root: %s\n", report.Meta.RootSymbol))
		sb.WriteString(fmt.Sprintf("Total sample records: %d\n", report.Meta.TotalSampleRecords))
		sb.WriteString(fmt.Sprintf("Total parsed event records: %d\n\n", report.Meta.TotalParsedEventRecords))

		for name, suite := range report.Suites {
			sb.WriteString(fmt.Sprintf("Suite %s (%d benchmarks)\n", name, suite.BenchmarkCount))
			sb.WriteString(fmt.Sprintf("    Root samples: %d, period sum: %d\n", suite.Root.SampleRecordCount, suite.Root.PeriodSum))
			for _, cc := range suite.Callees {
				sb.WriteString(fmt.Sprintf("    %s: %d samples (%.2f%% of root samples)\n",
					cc.Symbol, cc.SampleRecordCount, cc.PercentOfRootSamples))
			}
			sb.WriteString("\n")
		}

		return mcp.NewToolResultText(sb.String()), nil
	})

	// Start the server
	if err := server.ServeStdio(s); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func splitSymbols(s string) []string {
	var symbols []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			symbols = append(symbols, part)
		}
	}
	return symbols
}
