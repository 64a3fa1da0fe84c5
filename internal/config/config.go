// Package config loads the optional YAML targets file naming the root and
// callee symbols to track, so a benchmark driver can pin them in one place
// instead of repeating flags.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Targets is the symbol configuration of a run.
type Targets struct {
	RootSymbol    string   `yaml:"root_symbol"`
	CalleeSymbols []string `yaml:"callee_symbols"`
}

// LoadTargets reads and parses a targets file.
func LoadTargets(path string) (*Targets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read targets file: %w", err)
	}
	var t Targets
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse targets file %s: %w", path, err)
	}
	return &t, nil
}
