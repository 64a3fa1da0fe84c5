// Package attrib attributes sampled execution time to a root function and
// tracked callee functions nested beneath it within each sample.
package attrib

import "strings"

// Metric is a sample count plus its period-weighted sum.
type Metric struct {
	Samples uint64
	Period  uint64
}

func (m *Metric) add(period uint64) {
	m.Samples++
	m.Period += period
}

// CalleeCounter pairs one tracked callee symbol with its accumulated
// metric.
type CalleeCounter struct {
	Symbol string
	Metric
}

// Counters holds per-file attribution totals: the root metric and one
// counter per tracked callee symbol, in configuration order. Duplicate
// callee symbols collapse into their first occurrence.
type Counters struct {
	Root    Metric
	Callees []CalleeCounter

	index map[string]int
}

func NewCounters(callees []string) *Counters {
	c := &Counters{index: make(map[string]int, len(callees))}
	for _, symbol := range callees {
		if _, ok := c.index[symbol]; ok {
			continue
		}
		c.index[symbol] = len(c.Callees)
		c.Callees = append(c.Callees, CalleeCounter{Symbol: symbol})
	}
	return c
}

// Symbols returns the tracked callee symbols in counter order.
func (c *Counters) Symbols() []string {
	symbols := make([]string, len(c.Callees))
	for i, cc := range c.Callees {
		symbols[i] = cc.Symbol
	}
	return symbols
}

// Apply folds one sample's delta into the counters.
func (c *Counters) Apply(d Delta) {
	if !d.RootMatched {
		return
	}
	c.Root.add(d.Period)
	for _, symbol := range d.CalleeHits {
		if i, ok := c.index[symbol]; ok {
			c.Callees[i].add(d.Period)
		}
	}
}

// Delta is the attribution outcome of a single sample. A sample with no
// root match produces a zero delta and leaves every counter untouched.
type Delta struct {
	RootMatched bool
	Period      uint64
	CalleeHits  []string
}

// Attribute decides a single sample. symbols is the stack in leaf-first
// order; a symbol matches by substring containment, never exact equality
// (recursion and namespaced duplicates make multiple matches per stack
// normal). A callee counts iff some matching frame sits strictly below a
// root occurrence on the call path, i.e. at a smaller leaf-first index,
// and at most once per sample however many frames match.
func Attribute(symbols []string, period uint64, root string, callees []string) Delta {
	maxRoot := -1
	for i, symbol := range symbols {
		if strings.Contains(symbol, root) {
			maxRoot = i
		}
	}
	if maxRoot < 0 {
		return Delta{}
	}

	d := Delta{RootMatched: true, Period: period}
	for _, callee := range callees {
		for _, symbol := range symbols[:maxRoot] {
			if strings.Contains(symbol, callee) {
				d.CalleeHits = append(d.CalleeHits, callee)
				break
			}
		}
	}
	return d
}
