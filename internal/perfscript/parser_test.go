package perfscript

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePeriodHeader(t *testing.T) {
	tests := []struct {
		name string
		line string
		want uint64
	}{
		{"typical header", "poach 12345 1234567.890123: 500 cycles:", 500},
		{"bare timestamp header", "1234567.890123: 500 cycles:", 500},
		{"whitespace after colon", "1234567.890123:    250 cycles:", 250},
		{"no colon", "poach 12345 1234567", 1},
		{"nothing after colon", "1234567.890123:", 1},
		{"non-numeric period", "1234567.890123: cycles:", 1},
		{"negative period", "1234567.890123: -5 cycles:", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePeriodHeader(tt.line))
		})
	}
}

func TestParseFrameSymbol(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
		ok   bool
	}{
		{"frame with offset", "\t    ffffabcd foo_bar+0x123 (/lib/x)", "foo_bar", true},
		{"frame without offset", "\t    ffffabcd run_extract_command (/bin/poach)", "run_extract_command", true},
		{"offset only kept prefix", "\t    ffffabcd +0x5 (/lib/x)", "", true},
		{"empty line", "", "", false},
		{"whitespace only", "   \t  ", "", false},
		{"address only", "\t    deadbeef", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFrameSymbol(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
