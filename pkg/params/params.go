package params

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"
)

// Params holds the task-specific conversion directives. The field names
// match the json config files shipped alongside each experiment.
type Params struct {
	// Headers is the ordered list of columns the reduced output keeps.
	Headers []string `json:"headers" yaml:"headers" toml:"headers"`
	// RemNulls enables dropping rows that are all-null across the filter
	// columns.
	RemNulls bool `json:"rem_nulls" yaml:"rem_nulls" toml:"rem_nulls"`
	// NullCols lists the columns the null filter inspects in the
	// merge-capable entry point; empty disables the filter.
	NullCols []string `json:"null_cols" yaml:"null_cols" toml:"null_cols"`
	// ReplaceDict maps a companion-file suffix (".edat", ".edat2") to a
	// column rename mapping.
	ReplaceDict map[string]map[string]string `json:"replace_dict" yaml:"replace_dict" toml:"replace_dict"`
	// MergeCols maps a destination column to the ordered source columns
	// whose values are concatenated into it.
	MergeCols map[string][]string `json:"merge_cols" yaml:"merge_cols" toml:"merge_cols"`
}

// Load reads a param file, picking the decoder by extension: .json,
// .yaml/.yml, or .toml.
func Load(path string) (*Params, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("param file: %w", err)
	}
	var p Params
	switch ext := filepath.Ext(path); ext {
	case ".json":
		err = json.Unmarshal(b, &p)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &p)
	case ".toml":
		err = toml.Unmarshal(b, &p)
	default:
		return nil, fmt.Errorf("param file %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("param file %s: %w", path, err)
	}
	return &p, nil
}

// Renames returns the rename mapping for a companion data file, selected
// by its suffix. Nil when no mapping is configured for that suffix.
func (p *Params) Renames(companionFile string) map[string]string {
	if p.ReplaceDict == nil {
		return nil
	}
	return p.ReplaceDict[filepath.Ext(companionFile)]
}
