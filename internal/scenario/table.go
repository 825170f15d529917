package scenario

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FrequencyTable resolves a reference frequency for a scenario key and a
// starting-hand type. Reference coverage is intentionally partial: a miss is
// an ordinary result, never an error. Implementations must be read-only for
// the duration of a batch.
type FrequencyTable interface {
	Lookup(scenarioKey, handType string) (float64, bool)
}

// StaticTable is an in-memory FrequencyTable keyed by scenario then hand
// type (e.g. "AKs", "T9o", "77").
type StaticTable map[string]map[string]float64

// Lookup implements FrequencyTable.
func (t StaticTable) Lookup(scenarioKey, handType string) (float64, bool) {
	hands, ok := t[scenarioKey]
	if !ok {
		return 0, false
	}
	freq, ok := hands[handType]
	return freq, ok
}

// LoadTOML reads a scenario frequency table from a TOML file of the shape:
//
//	[BB_vs_UTG_call]
//	AKs = 0.35
//	77 = 1.0
func LoadTOML(path string) (StaticTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario table: %w", err)
	}
	var table StaticTable
	if err := toml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("decoding scenario table %s: %w", path, err)
	}
	return table, nil
}
