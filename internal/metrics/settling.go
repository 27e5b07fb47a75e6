package metrics

import (
	"github.com/san-kum/debrislab/internal/debris"
)

// SettlingTime reports the last simulation time at which any particle
// still moved faster than the threshold.
type SettlingTime struct {
	name       string
	threshold  float64
	lastMoving float64
}

func NewSettlingTime(threshold float64) *SettlingTime {
	return &SettlingTime{
		name:      "settling_time",
		threshold: threshold,
	}
}

func (s *SettlingTime) Name() string { return s.name }

func (s *SettlingTime) Observe(pop *debris.Population, t float64) {
	for _, p := range pop.Particles() {
		if p.Speed() > s.threshold {
			s.lastMoving = t
			return
		}
	}
}

func (s *SettlingTime) Value() float64 {
	return s.lastMoving
}

func (s *SettlingTime) Reset() {
	s.lastMoving = 0
}

// DeformedFraction reports the fraction of all spawned particles that
// picked up permanent deformation at any point, including particles
// culled later in the run.
type DeformedFraction struct {
	name     string
	deformed map[uint64]struct{}
	spawned  int
}

func NewDeformedFraction() *DeformedFraction {
	return &DeformedFraction{
		name:     "deformed_fraction",
		deformed: make(map[uint64]struct{}),
	}
}

func (d *DeformedFraction) Name() string { return d.name }

func (d *DeformedFraction) Observe(pop *debris.Population, t float64) {
	for _, p := range pop.Particles() {
		if p.Deformation > 0 {
			d.deformed[p.ID] = struct{}{}
		}
	}
	d.spawned = pop.Spawned()
}

func (d *DeformedFraction) Value() float64 {
	if d.spawned == 0 {
		return 0
	}
	return float64(len(d.deformed)) / float64(d.spawned)
}

func (d *DeformedFraction) Reset() {
	d.deformed = make(map[uint64]struct{})
	d.spawned = 0
}
