// Package metrics provides scalar observers that summarize a debris
// population over the course of a run.
package metrics

import "github.com/san-kum/debrislab/internal/debris"

type Metric interface {
	Name() string
	Observe(pop *debris.Population, t float64)
	Value() float64
	Reset()
}
