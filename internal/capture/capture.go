// Package capture reads event records out of perf.data capture files.
// Only two things are consumed from a capture: the classification of each
// record (sample or not) and the sampling configuration of the first
// observed event.
package capture

// Class is the coarse classification of one event record.
type Class int

const (
	ClassOther Class = iota
	ClassSample
)

// Meta is the sampling configuration of a capture.
type Meta struct {
	// EventName labels the sampled event, e.g. "cycles".
	EventName string
	// SampleFreqHz is the requested sampling frequency. Zero when the
	// capture sampled by period rather than frequency, or when unknown.
	SampleFreqHz float64
	// Policy is "freq" or "period".
	Policy string
}

// Counts tallies the records of one capture.
type Counts struct {
	SampleRecords int
	EventRecords  int
}

// Source iterates the event records of a single capture file.
type Source interface {
	// Next advances to the next record, returning false at end of
	// stream or on error.
	Next() bool
	// Class classifies the current record.
	Class() Class
	// Meta reports the sampling configuration, once observed.
	Meta() (Meta, bool)
	// Err reports the first decode error encountered, if any.
	Err() error
	Close() error
}

// OpenFunc opens a capture file as a record source. Swappable in tests.
type OpenFunc func(path string) (Source, error)

// Count fully consumes a source, counting sample records against total
// event records and extracting the sampling metadata.
func Count(src Source) (Counts, Meta, error) {
	var counts Counts
	for src.Next() {
		counts.EventRecords++
		if src.Class() == ClassSample {
			counts.SampleRecords++
		}
	}
	if err := src.Err(); err != nil {
		return Counts{}, Meta{}, err
	}
	meta, _ := src.Meta()
	return counts, meta, nil
}
