// =============================================================================
// Ledger Export - Reference Lookup Tables
// =============================================================================
//
// Lookup tables map the opaque reference identifiers carried by raw records
// (category, equipment, client, project) to the display names that appear in
// export artifacts. They are loaded once from a YAML file and injected into
// the normalizer.
//
// An absent key is not an error: the normalizer degrades to the literal
// reference text, so a missing name never blocks an export.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Lookups holds the reference id -> display name tables.
// It implements the normalize.Resolver interface.
type Lookups struct {
	// Categories maps expense category references to names, e.g.
	// "cat-01" -> "FUEL".
	Categories map[string]string `yaml:"categories"`

	// Equipment maps equipment references to names, e.g. "eq-07" -> "CAT 320".
	Equipment map[string]string `yaml:"equipment"`

	// Clients maps client references to names.
	Clients map[string]string `yaml:"clients"`

	// Projects maps project references to names.
	Projects map[string]string `yaml:"projects"`
}

// LoadLookups reads the lookup tables from a YAML file.
func LoadLookups(path string) (*Lookups, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lookups file: %w", err)
	}

	var lookups Lookups
	if err := yaml.Unmarshal(data, &lookups); err != nil {
		return nil, fmt.Errorf("failed to parse lookups file: %w", err)
	}

	return &lookups, nil
}

// EmptyLookups returns lookup tables with no entries. Every resolution
// degrades to the literal reference.
func EmptyLookups() *Lookups {
	return &Lookups{}
}

// CategoryName resolves an expense category reference.
func (l *Lookups) CategoryName(ref string) (string, bool) {
	name, ok := l.Categories[ref]
	return name, ok
}

// EquipmentName resolves an equipment reference.
func (l *Lookups) EquipmentName(ref string) (string, bool) {
	name, ok := l.Equipment[ref]
	return name, ok
}

// ClientName resolves a client reference.
func (l *Lookups) ClientName(ref string) (string, bool) {
	name, ok := l.Clients[ref]
	return name, ok
}

// ProjectName resolves a project reference.
func (l *Lookups) ProjectName(ref string) (string, bool) {
	name, ok := l.Projects[ref]
	return name, ok
}
