// Package scenario defines scripted burst sequences: named sets of timed
// explosions that drive a debris population without user input. Scenarios
// come from the built-in library or from YAML files.
package scenario

import (
	"fmt"
	"os"
	"sort"

	"github.com/san-kum/debrislab/internal/debris"
	"gopkg.in/yaml.v3"
)

// Burst is one scripted explosion.
type Burst struct {
	At    float64 `yaml:"at"` // sim time, seconds
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Force float64 `yaml:"force"`
	Count int     `yaml:"count"`
	Kind  string  `yaml:"kind"`
}

// MaterialKind resolves the burst's material name.
func (b Burst) MaterialKind() (debris.Kind, error) {
	return debris.ParseKind(b.Kind)
}

// Scenario is a named burst script plus its preferred run length.
type Scenario struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	Duration    float64 `yaml:"duration"`
	Bursts      []Burst `yaml:"bursts"`
}

// Validate checks the script and normalizes burst order by trigger time.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario: missing name")
	}
	if s.Duration <= 0 {
		return fmt.Errorf("scenario %q: duration must be positive", s.Name)
	}
	for i, b := range s.Bursts {
		if b.At < 0 {
			return fmt.Errorf("scenario %q: burst %d fires at negative time", s.Name, i)
		}
		if b.Count < 0 {
			return fmt.Errorf("scenario %q: burst %d has negative count", s.Name, i)
		}
		if b.Force < 0 {
			return fmt.Errorf("scenario %q: burst %d has negative force", s.Name, i)
		}
		if _, err := b.MaterialKind(); err != nil {
			return fmt.Errorf("scenario %q: burst %d: %w", s.Name, i, err)
		}
	}
	sort.SliceStable(s.Bursts, func(i, j int) bool {
		return s.Bursts[i].At < s.Bursts[j].At
	})
	return nil
}

// Player feeds a scenario's bursts into a population as sim time passes
// their trigger points. Bursts must already be time-ordered (Validate).
type Player struct {
	s    *Scenario
	next int
}

func NewPlayer(s *Scenario) *Player {
	return &Player{s: s}
}

// Advance fires every burst due at or before now and reports how many.
func (pl *Player) Advance(pop *debris.Population, now float64) int {
	fired := 0
	for pl.next < len(pl.s.Bursts) {
		b := pl.s.Bursts[pl.next]
		if b.At > now {
			break
		}
		pl.next++
		kind, err := b.MaterialKind()
		if err != nil {
			continue
		}
		pop.SpawnExplosion(debris.Vec2{X: b.X, Y: b.Y}, b.Force, b.Count, kind)
		fired++
	}
	return fired
}

// Done reports whether every burst has fired.
func (pl *Player) Done() bool {
	return pl.next >= len(pl.s.Bursts)
}

// Reset rewinds the player for another run.
func (pl *Player) Reset() {
	pl.next = 0
}

type fileDoc struct {
	Scenarios []*Scenario `yaml:"scenarios"`
}

// LoadFile reads scenarios from a YAML file. Both a top-level `scenarios:`
// list and a single bare scenario document are accepted; every entry is
// validated.
func LoadFile(path string) ([]*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err == nil && len(doc.Scenarios) > 0 {
		for _, s := range doc.Scenarios {
			if err := s.Validate(); err != nil {
				return nil, err
			}
		}
		return doc.Scenarios, nil
	}

	var single Scenario
	if err := yaml.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file: %w", err)
	}
	if err := single.Validate(); err != nil {
		return nil, err
	}
	return []*Scenario{&single}, nil
}
