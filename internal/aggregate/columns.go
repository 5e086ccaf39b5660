// Package aggregate combines a player's per-season statistics rows into one
// record per target season, summing counting statistics across club spells
// and recomputing rate statistics from their components.
package aggregate

import (
	_ "embed"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/pitchside/transfer-cli/internal/model"
)

//go:embed columns.yaml
var defaultColumnsYAML []byte

// ColumnClass is how a column behaves under multi-club aggregation.
type ColumnClass int

const (
	// ClassUnknown marks columns absent from the classification; they take
	// the first row's value, like identity columns, but are flagged so a
	// schema drift upstream is visible in logs.
	ClassUnknown ColumnClass = iota
	ClassIdentity
	ClassCounting
	ClassRate
)

// RateRule describes how a rate column is recomputed from summed counting
// columns. Scale defaults to 1 (per-90 figures); percentages use 100.
type RateRule struct {
	Column      string  `yaml:"column"`
	Numerator   string  `yaml:"numerator"`
	Denominator string  `yaml:"denominator"`
	Scale       float64 `yaml:"scale"`
}

// Schema is the explicit column classification for one table kind.
type Schema struct {
	Identity      []string   `yaml:"identity"`
	DropOnCombine []string   `yaml:"drop_on_combine"`
	Counting      []string   `yaml:"counting"`
	Rates         []RateRule `yaml:"rates"`
}

// Classification is the versioned column classification for all table kinds.
type Classification struct {
	Version int                         `yaml:"version"`
	Tables  map[model.TableKind]*Schema `yaml:"tables"`
}

// Class returns the classification of a column key.
func (s *Schema) Class(col string) ColumnClass {
	for _, c := range s.Counting {
		if c == col {
			return ClassCounting
		}
	}
	for _, r := range s.Rates {
		if r.Column == col {
			return ClassRate
		}
	}
	for _, c := range s.Identity {
		if c == col {
			return ClassIdentity
		}
	}
	return ClassUnknown
}

// dropped reports whether a column is meaningless for a combined row.
func (s *Schema) dropped(col string) bool {
	for _, c := range s.DropOnCombine {
		if c == col {
			return true
		}
	}
	return false
}

// Columns returns the schema's canonical column order: identity, counting,
// then rate columns. Used for stable output column ordering.
func (s *Schema) Columns() []string {
	cols := make([]string, 0, len(s.Identity)+len(s.Counting)+len(s.Rates))
	cols = append(cols, s.Identity...)
	cols = append(cols, s.Counting...)
	for _, r := range s.Rates {
		cols = append(cols, r.Column)
	}
	return cols
}

// Schema returns the classification for a table kind, or nil when the kind
// is not configured.
func (c *Classification) Schema(kind model.TableKind) *Schema {
	return c.Tables[kind]
}

// Parse reads a column classification from YAML.
func Parse(data []byte) (*Classification, error) {
	var c Classification
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, eris.Wrap(err, "aggregate: parse column classification")
	}
	if c.Version == 0 {
		return nil, eris.New("aggregate: column classification missing version")
	}
	if len(c.Tables) == 0 {
		return nil, eris.New("aggregate: column classification has no tables")
	}
	return &c, nil
}

// LoadFile reads a column classification override from a YAML file.
func LoadFile(path string) (*Classification, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "aggregate: read column classification %s", path)
	}
	return Parse(data)
}

// Default returns the embedded column classification.
func Default() *Classification {
	c, err := Parse(defaultColumnsYAML)
	if err != nil {
		// The embedded file ships with the binary; failing to parse it is a
		// build defect, not a runtime condition.
		panic(err)
	}
	return c
}
