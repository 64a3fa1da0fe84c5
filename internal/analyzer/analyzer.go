// Package analyzer runs the per-file analysis: record counting over the
// capture itself and focus attribution over the symbolicated stack stream
// of an external `perf script` process.
package analyzer

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"

	"perfrollup/internal/attrib"
	"perfrollup/internal/capture"
	"perfrollup/internal/perfscript"
)

// ReadError means a capture file could not be opened or decoded.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read capture %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// ToolError means the external symbolication process failed or its output
// could not be read.
type ToolError struct {
	Path string
	Err  error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("perf script failed for %s: %v", e.Path, e.Err)
}

func (e *ToolError) Unwrap() error { return e.Err }

// openCapture is swappable in tests.
var openCapture capture.OpenFunc = capture.Open

// perfCommand is the symbolication binary name.
var perfCommand = "perf"

// CountRecords iterates every event record of a capture, counting sample
// records against total records and extracting the sampling metadata.
func CountRecords(path string) (capture.Counts, capture.Meta, error) {
	src, err := openCapture(path)
	if err != nil {
		return capture.Counts{}, capture.Meta{}, &ReadError{Path: path, Err: err}
	}
	defer src.Close()

	counts, meta, err := capture.Count(src)
	if err != nil {
		return capture.Counts{}, capture.Meta{}, &ReadError{Path: path, Err: err}
	}
	return counts, meta, nil
}

// AnalyzeFocus spawns `perf script` for the capture and attributes every
// emitted sample against the root and callee symbols. The process is
// fully drained and awaited before returning; a non-zero exit is fatal.
func AnalyzeFocus(path, rootSymbol string, calleeSymbols []string) (*attrib.Counters, error) {
	cmd := exec.Command(perfCommand, "script", "-i", path, "--demangle")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &ToolError{Path: path, Err: err}
	}
	if err := cmd.Start(); err != nil {
		return nil, &ToolError{Path: path, Err: err}
	}

	counters, streamErr := AnalyzeFocusStream(stdout, rootSymbol, calleeSymbols)
	waitErr := cmd.Wait()
	if streamErr != nil {
		return nil, &ToolError{Path: path, Err: streamErr}
	}
	if waitErr != nil {
		if stderr.Len() > 0 {
			waitErr = fmt.Errorf("%w: %s", waitErr, bytes.TrimSpace(stderr.Bytes()))
		}
		return nil, &ToolError{Path: path, Err: waitErr}
	}
	return counters, nil
}

// AnalyzeFocusStream attributes a symbolicated stack stream. This is the
// whole engine behind AnalyzeFocus, minus the process plumbing.
func AnalyzeFocusStream(r io.Reader, rootSymbol string, calleeSymbols []string) (*attrib.Counters, error) {
	counters := attrib.NewCounters(calleeSymbols)
	tracked := counters.Symbols()
	err := perfscript.Consume(r, func(symbols []string, period uint64) {
		counters.Apply(attrib.Attribute(symbols, period, rootSymbol, tracked))
	})
	if err != nil {
		return nil, err
	}
	return counters, nil
}
