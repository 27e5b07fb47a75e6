package metrics

import (
	"github.com/san-kum/debrislab/internal/debris"
)

type KineticEnergy struct {
	name    string
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{
		name: "kinetic_energy",
	}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(pop *debris.Population, t float64) {
	sum := 0.0
	for _, p := range pop.Particles() {
		v := p.Speed()
		sum += 0.5 * p.Mass() * v * v
	}
	k.total += sum
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.samples = 0
}

type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{
		name: "max_speed",
	}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(pop *debris.Population, t float64) {
	for _, p := range pop.Particles() {
		if v := p.Speed(); v > m.max {
			m.max = v
		}
	}
}

func (m *MaxSpeed) Value() float64 {
	return m.max
}

func (m *MaxSpeed) Reset() {
	m.max = 0
}
