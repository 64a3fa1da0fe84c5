package rollup

import (
	"fmt"
	"path/filepath"
	"strings"
)

// CaptureSuffix is the recognized capture-file name suffix.
const CaptureSuffix = ".perf.data"

// Identity is the two-level grouping of one capture file derived from its
// path below the scan root: suite = first path segment, benchmark = the
// remaining segments with the capture suffix trimmed off the file name.
type Identity struct {
	Suite     string
	Benchmark string
	Key       string
}

// IdentityError reports a capture path whose suite/benchmark identity
// cannot be derived.
type IdentityError struct {
	Path   string
	Reason string
}

func (e *IdentityError) Error() string {
	return fmt.Sprintf("cannot derive suite/benchmark for %s: %s", e.Path, e.Reason)
}

// DeriveIdentity computes the identity of path relative to scanRoot.
// A file outside the scan root, or sitting directly in it with no suite
// directory above it, has no identity.
func DeriveIdentity(scanRoot, path string) (Identity, error) {
	rel, err := filepath.Rel(scanRoot, path)
	if err != nil {
		return Identity{}, &IdentityError{Path: path, Reason: "not under scan root"}
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return Identity{}, &IdentityError{Path: path, Reason: "not under scan root"}
	}

	segments := strings.Split(rel, "/")
	if len(segments) < 2 {
		return Identity{}, &IdentityError{Path: path, Reason: "no suite directory between scan root and file"}
	}

	name := strings.TrimSuffix(segments[len(segments)-1], CaptureSuffix)
	parts := append([]string{}, segments[1:len(segments)-1]...)
	parts = append(parts, name)

	id := Identity{
		Suite:     segments[0],
		Benchmark: strings.Join(parts, "/"),
	}
	id.Key = id.Suite + "/" + id.Benchmark
	return id, nil
}
