// Package dex provides the species/learnset lookup and party factory
// this server needs to hand a peer a Generation-II Pokémon without
// relying on any external Pokédex service.
package dex

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/species.yaml
var defaultData embed.FS

// MoveLearn is one entry of a species' level-up learnset.
type MoveLearn struct {
	MoveID         byte `yaml:"move_id"`
	LevelLearnedAt int  `yaml:"level_learned_at"`
	VersionGroup   int  `yaml:"version_group"`
}

// BaseStats holds a species' un-leveled base stat values.
type BaseStats struct {
	HP      int `yaml:"hp"`
	Attack  int `yaml:"attack"`
	Defense int `yaml:"defense"`
	Speed   int `yaml:"speed"`
	Special int `yaml:"special"`
}

// Species is one entry of the species/learnset table.
type Species struct {
	ID        byte        `yaml:"id"`
	Name      string      `yaml:"name"`
	BaseStats BaseStats   `yaml:"base_stats"`
	Moves     []MoveLearn `yaml:"moves"`
}

// Table indexes species by Pokédex number.
type Table struct {
	species map[byte]Species
}

// Load parses a species/learnset table from YAML.
func Load(data []byte) (*Table, error) {
	var entries []Species
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("dex: parse species table: %w", err)
	}
	t := &Table{species: make(map[byte]Species, len(entries))}
	for _, s := range entries {
		t.species[s.ID] = s
	}
	return t, nil
}

// LoadDefault parses the table embedded at build time.
func LoadDefault() (*Table, error) {
	data, err := defaultData.ReadFile("data/species.yaml")
	if err != nil {
		return nil, fmt.Errorf("dex: read embedded species table: %w", err)
	}
	return Load(data)
}

// Get looks up a species by Pokédex number.
func (t *Table) Get(id byte) (Species, bool) {
	s, ok := t.species[id]
	return s, ok
}

// Len reports how many species the table holds.
func (t *Table) Len() int {
	return len(t.species)
}
