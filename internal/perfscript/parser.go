// Package perfscript parses the textual per-sample stack dump emitted by
// `perf script`: a header line per sample followed by one stack-frame line
// per call frame, samples separated by blank lines.
package perfscript

import (
	"strconv"
	"strings"
)

// ParsePeriodHeader extracts the period weight from a sample header line,
// e.g. "poach 12345 1234567.890123: 500 cycles:" -> 500. The period is the
// first token after the timestamp colon. Malformed headers default to 1 so
// that a slightly damaged stream still makes forward progress.
func ParsePeriodHeader(line string) uint64 {
	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		return 1
	}
	fields := strings.Fields(line[colon+1:])
	if len(fields) == 0 {
		return 1
	}
	period, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return 1
	}
	return period
}

// ParseFrameSymbol extracts the bare symbol name from a stack-frame line,
// e.g. "\t    ffffabcd foo_bar+0x123 (/lib/x)" -> "foo_bar". The first
// token is the instruction address and is discarded; the second token is
// the symbol with an optional +0xOFFSET tail. Lines with fewer than two
// tokens carry no symbol.
func ParseFrameSymbol(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", false
	}
	symbol := fields[1]
	if i := strings.Index(symbol, "+0x"); i >= 0 {
		symbol = symbol[:i]
	}
	return symbol, true
}
