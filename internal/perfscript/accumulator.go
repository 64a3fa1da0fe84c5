package perfscript

import (
	"bufio"
	"io"
	"strings"
)

// SampleFunc receives one finalized sample block: the symbol names in
// emission order (leaf first, outermost caller last) and the period
// weight. The symbols slice is only valid for the duration of the call.
type SampleFunc func(symbols []string, period uint64)

type accumulatorState int

const (
	awaitingHeader accumulatorState = iota
	inSample
)

// Accumulator groups a line stream into sample blocks. The first non-blank
// line of a block is always the sample header; subsequent non-blank lines
// are stack frames; a blank line finalizes the block.
type Accumulator struct {
	state   accumulatorState
	symbols []string
	period  uint64
	emit    SampleFunc
}

func NewAccumulator(emit SampleFunc) *Accumulator {
	return &Accumulator{state: awaitingHeader, period: 1, emit: emit}
}

// Line feeds one line of perf script output into the state machine.
func (a *Accumulator) Line(line string) {
	if strings.TrimSpace(line) == "" {
		if a.state == inSample {
			a.finalize()
		}
		return
	}

	if a.state == awaitingHeader {
		a.period = ParsePeriodHeader(line)
		a.state = inSample
		return
	}

	if symbol, ok := ParseFrameSymbol(line); ok {
		a.symbols = append(a.symbols, symbol)
	}
}

// Flush finalizes an in-progress block at end of stream, so a trailing
// sample without a terminating blank line is not dropped.
func (a *Accumulator) Flush() {
	if a.state == inSample {
		a.finalize()
	}
}

func (a *Accumulator) finalize() {
	a.emit(a.symbols, a.period)
	a.symbols = a.symbols[:0]
	a.period = 1
	a.state = awaitingHeader
}

// Consume drives an accumulator over an entire stream, flushing at EOF.
func Consume(r io.Reader, emit SampleFunc) error {
	acc := NewAccumulator(emit)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		acc.Line(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	acc.Flush()
	return nil
}
