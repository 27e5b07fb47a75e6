package experiment

import (
	"context"
	"math"
)

// Sweep evaluates an experiment builder over the cross product of
// parameter ranges and tracks the best-scoring combination.
type Sweep struct {
	paramNames []string
	ranges     [][]float64

	// Evaluations holds every grid point scored by the last Search.
	Evaluations []Evaluation
}

type Evaluation struct {
	Params map[string]float64
	Value  float64
}

func NewSweep(params []string, ranges [][]float64) *Sweep {
	return &Sweep{paramNames: params, ranges: ranges}
}

func (s *Sweep) Search(
	ctx context.Context,
	build func(params map[string]float64) (*Experiment, error),
	metricName string,
	minimize bool,
) (map[string]float64, float64, error) {

	best := math.Inf(1)
	if !minimize {
		best = math.Inf(-1)
	}
	var bestParams map[string]float64

	s.Evaluations = s.Evaluations[:0]
	s.searchRecursive(ctx, 0, make(map[string]float64), build, metricName, minimize, &best, &bestParams)

	return bestParams, best, ctx.Err()
}

func (s *Sweep) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	build func(map[string]float64) (*Experiment, error),
	metricName string,
	minimize bool,
	best *float64,
	bestParams *map[string]float64,
) {
	if depth == len(s.paramNames) {
		if ctx.Err() != nil {
			return
		}

		exp, err := build(current)
		if err != nil {
			return
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return
		}

		val := result.Metrics[metricName]

		params := make(map[string]float64, len(current))
		for k, v := range current {
			params[k] = v
		}
		s.Evaluations = append(s.Evaluations, Evaluation{Params: params, Value: val})

		better := val < *best
		if !minimize {
			better = val > *best
		}
		if better {
			*best = val
			*bestParams = params
		}
		return
	}

	paramName := s.paramNames[depth]
	for _, val := range s.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		s.searchRecursive(ctx, depth+1, newParams, build, metricName, minimize, best, bestParams)
	}
}
