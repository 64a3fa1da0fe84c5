package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTargets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
root_symbol: run_extract_command
callee_symbols:
  - extract_variants_with_sort
  - compute_costs_from_rootsorts
  - for_each
`), 0o644))

	targets, err := LoadTargets(path)
	require.NoError(t, err)
	assert.Equal(t, "run_extract_command", targets.RootSymbol)
	assert.Equal(t, []string{
		"extract_variants_with_sort",
		"compute_costs_from_rootsorts",
		"for_each",
	}, targets.CalleeSymbols)
}

func TestLoadTargetsMissingFile(t *testing.T) {
	_, err := LoadTargets(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadTargetsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root_symbol: [unclosed"), 0o644))

	_, err := LoadTargets(path)
	assert.Error(t, err)
}
