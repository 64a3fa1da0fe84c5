package capture

import (
	"fmt"

	"github.com/aclements/go-perf/perffile"
)

// Open opens a perf.data file as a record source. Binary decoding is
// delegated entirely to the perffile library.
func Open(path string) (Source, error) {
	f, err := perffile.Open(path)
	if err != nil {
		return nil, err
	}
	return &perfSource{f: f, rs: f.Records(perffile.RecordsFileOrder)}, nil
}

type perfSource struct {
	f  *perffile.File
	rs *perffile.Records

	meta     Meta
	haveMeta bool
	isSample bool
}

func (s *perfSource) Next() bool {
	if !s.rs.Next() {
		return false
	}
	_, s.isSample = s.rs.Record.(*perffile.RecordSample)
	if s.isSample && !s.haveMeta {
		if common := s.rs.Record.Common(); common.EventAttr != nil {
			s.meta = attrMeta(common.EventAttr)
			s.haveMeta = true
		}
	}
	return true
}

func (s *perfSource) Class() Class {
	if s.isSample {
		return ClassSample
	}
	return ClassOther
}

func (s *perfSource) Meta() (Meta, bool) {
	return s.meta, s.haveMeta
}

func (s *perfSource) Err() error {
	return s.rs.Err()
}

func (s *perfSource) Close() error {
	return s.f.Close()
}

func attrMeta(attr *perffile.EventAttr) Meta {
	meta := Meta{EventName: eventName(attr), Policy: "period"}
	if attr.Flags&perffile.EventFlagFreq != 0 {
		meta.Policy = "freq"
		meta.SampleFreqHz = float64(attr.SampleFreq)
	}
	return meta
}

func eventName(attr *perffile.EventAttr) string {
	g := attr.Event.Generic()
	switch g.Type {
	case perffile.EventTypeHardware:
		switch g.ID {
		case 0:
			return "cycles"
		case 1:
			return "instructions"
		}
	case perffile.EventTypeSoftware:
		switch g.ID {
		case 0:
			return "cpu-clock"
		case 1:
			return "task-clock"
		}
	}
	return fmt.Sprintf("%v/%#x", g.Type, g.ID)
}
