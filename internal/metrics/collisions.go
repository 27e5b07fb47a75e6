package metrics

import (
	"github.com/san-kum/debrislab/internal/debris"
)

// CollisionRate counts boundary impacts per second of simulated time.
// Particles stamp their latest impact with the current step time, so
// observing after every step sees each impact exactly once.
type CollisionRate struct {
	name   string
	events int
	firstT float64
	lastT  float64
	seen   bool
}

func NewCollisionRate() *CollisionRate {
	return &CollisionRate{
		name: "collision_rate",
	}
}

func (c *CollisionRate) Name() string { return c.name }

func (c *CollisionRate) Observe(pop *debris.Population, t float64) {
	if !c.seen {
		c.firstT = t
		c.seen = true
	}
	c.lastT = t
	for _, p := range pop.Particles() {
		if p.LastCollisionAt == t {
			c.events++
		}
	}
}

func (c *CollisionRate) Value() float64 {
	if !c.seen || c.lastT <= c.firstT {
		return 0
	}
	return float64(c.events) / (c.lastT - c.firstT)
}

func (c *CollisionRate) Reset() {
	c.events = 0
	c.firstT = 0
	c.lastT = 0
	c.seen = false
}

type PeakCount struct {
	name string
	peak int
}

func NewPeakCount() *PeakCount {
	return &PeakCount{
		name: "peak_count",
	}
}

func (p *PeakCount) Name() string { return p.name }

func (p *PeakCount) Observe(pop *debris.Population, t float64) {
	if n := pop.Len(); n > p.peak {
		p.peak = n
	}
}

func (p *PeakCount) Value() float64 {
	return float64(p.peak)
}

func (p *PeakCount) Reset() {
	p.peak = 0
}
