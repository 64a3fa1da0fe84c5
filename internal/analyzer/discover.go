package analyzer

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"perfrollup/internal/rollup"
)

// FindCaptureFiles walks dir recursively and returns every *.perf.data
// file, sorted by path so runs are deterministic.
func FindCaptureFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), rollup.CaptureSuffix) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
