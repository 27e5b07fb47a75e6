package scenario

import (
	"fmt"
	"sort"
)

// Clone deep-copies a scenario so callers can tweak bursts (sweeps do)
// without touching the library entry.
func (s *Scenario) Clone() *Scenario {
	c := *s
	c.Bursts = append([]Burst(nil), s.Bursts...)
	return &c
}

var builtins = map[string]*Scenario{
	"single": {
		Name:        "single",
		Description: "one semi-rigid burst at the center",
		Duration:    6,
		Bursts: []Burst{
			{At: 0, X: 600, Y: 400, Force: 300, Count: 20, Kind: "semi_rigid"},
		},
	},
	"bigone": {
		Name:        "bigone",
		Description: "one oversized rigid blast",
		Duration:    10,
		Bursts: []Burst{
			{At: 0, X: 600, Y: 350, Force: 900, Count: 50, Kind: "rigid"},
		},
	},
	"volley": {
		Name:        "volley",
		Description: "three staggered semi-rigid bursts left to right",
		Duration:    8,
		Bursts: []Burst{
			{At: 0, X: 300, Y: 300, Force: 400, Count: 20, Kind: "semi_rigid"},
			{At: 0.8, X: 600, Y: 300, Force: 400, Count: 20, Kind: "semi_rigid"},
			{At: 1.6, X: 900, Y: 300, Force: 400, Count: 20, Kind: "semi_rigid"},
		},
	},
	"materials": {
		Name:        "materials",
		Description: "side-by-side burst of each material kind",
		Duration:    8,
		Bursts: []Burst{
			{At: 0, X: 300, Y: 350, Force: 350, Count: 15, Kind: "rigid"},
			{At: 0.2, X: 600, Y: 350, Force: 350, Count: 15, Kind: "semi_rigid"},
			{At: 0.4, X: 900, Y: 350, Force: 350, Count: 15, Kind: "soft"},
		},
	},
	"shower": showerScenario(),
	"crossfire": {
		Name:        "crossfire",
		Description: "alternating corner blasts of rigid and soft debris",
		Duration:    10,
		Bursts: []Burst{
			{At: 0, X: 150, Y: 250, Force: 500, Count: 10, Kind: "rigid"},
			{At: 0.5, X: 1050, Y: 250, Force: 500, Count: 10, Kind: "soft"},
			{At: 1.0, X: 150, Y: 250, Force: 500, Count: 10, Kind: "rigid"},
			{At: 1.5, X: 1050, Y: 250, Force: 500, Count: 10, Kind: "soft"},
			{At: 2.0, X: 150, Y: 250, Force: 500, Count: 10, Kind: "rigid"},
			{At: 2.5, X: 1050, Y: 250, Force: 500, Count: 10, Kind: "soft"},
			{At: 3.0, X: 150, Y: 250, Force: 500, Count: 10, Kind: "rigid"},
			{At: 3.5, X: 1050, Y: 250, Force: 500, Count: 10, Kind: "soft"},
		},
	},
}

func showerScenario() *Scenario {
	s := &Scenario{
		Name:        "shower",
		Description: "soft debris raining across the full width",
		Duration:    12,
	}
	for i := 0; i < 15; i++ {
		s.Bursts = append(s.Bursts, Burst{
			At:    float64(i) * 0.6,
			X:     200 + float64(i%5)*200,
			Y:     100,
			Force: 250,
			Count: 12,
			Kind:  "soft",
		})
	}
	return s
}

// Get returns a copy of a built-in scenario.
func Get(name string) (*Scenario, error) {
	s, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario: %s (available: %v)", name, Names())
	}
	return s.Clone(), nil
}

// Names lists the built-in scenarios, sorted.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
