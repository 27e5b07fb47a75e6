package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/debrislab/internal/debris"
	"github.com/san-kum/debrislab/internal/metrics"
	"github.com/san-kum/debrislab/internal/scenario"
)

// Registry resolves scenario and metric set names for the CLI layer.
type Registry struct {
	metricSets map[string]func() []metrics.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metricSets: make(map[string]func() []metrics.Metric),
	}

	r.metricSets["default"] = DefaultMetrics
	r.metricSets["energy"] = func() []metrics.Metric {
		return []metrics.Metric{
			metrics.NewKineticEnergy(),
			metrics.NewMaxSpeed(),
		}
	}
	r.metricSets["impact"] = func() []metrics.Metric {
		return []metrics.Metric{
			metrics.NewCollisionRate(),
			metrics.NewDeformedFraction(),
			metrics.NewSettlingTime(debris.DefaultEnvironment().SettleSpeed),
		}
	}

	return r
}

func (r *Registry) GetScenario(name string) (*scenario.Scenario, error) {
	return scenario.Get(name)
}

func (r *Registry) GetMetrics(name string) ([]metrics.Metric, error) {
	fn, ok := r.metricSets[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric set: %s (available: %v)", name, r.ListMetricSets())
	}
	return fn(), nil
}

func (r *Registry) ListMetricSets() []string {
	names := make([]string, 0, len(r.metricSets))
	for name := range r.metricSets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics is the standard observation set for a run.
func DefaultMetrics() []metrics.Metric {
	return []metrics.Metric{
		metrics.NewKineticEnergy(),
		metrics.NewMaxSpeed(),
		metrics.NewSettlingTime(debris.DefaultEnvironment().SettleSpeed),
		metrics.NewDeformedFraction(),
		metrics.NewCollisionRate(),
		metrics.NewPeakCount(),
	}
}
