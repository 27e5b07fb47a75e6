package experiment

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/san-kum/debrislab/internal/debris"
	"github.com/san-kum/debrislab/internal/metrics"
	"github.com/san-kum/debrislab/internal/scenario"
)

type Config struct {
	Scenario     string  // name, for run records; resolution happens in the caller
	Dt           float64 // step size, seconds
	Duration     float64 // total run length; 0 means the scenario's own duration
	Seed         int64
	SampleStride int  // record every Nth step; 0 records every step
	Validate     bool // abort with StepError on non-finite particle state
	Environment  *debris.Environment
}

// Sample is one row of the aggregate time series a run records.
type Sample struct {
	Time            float64 `json:"time"`
	Count           int     `json:"count"`
	KineticEnergy   float64 `json:"kinetic_energy"`
	MaxSpeed        float64 `json:"max_speed"`
	MeanSpeed       float64 `json:"mean_speed"`
	MeanDeformation float64 `json:"mean_deformation"`
	Spawned         int     `json:"spawned"`
	Culled          int     `json:"culled"`
}

type Result struct {
	Samples    []Sample
	Metrics    map[string]float64
	StepsTaken int
	Spawned    int
	Culled     int
}

// Experiment drives one population through one scenario and collects
// samples and metrics along the way.
type Experiment struct {
	cfg Config
	scn *scenario.Scenario
	ms  []metrics.Metric
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(scn *scenario.Scenario, ms []metrics.Metric) error {
	if scn == nil {
		return fmt.Errorf("experiment: nil scenario")
	}
	if err := scn.Validate(); err != nil {
		return err
	}
	e.scn = scn
	e.ms = ms
	return nil
}

// Run executes the full scenario from a fresh population. It is safe to
// call repeatedly; each call replays from scratch with the configured
// seed.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.scn == nil {
		return nil, ErrNotSetup
	}
	duration := e.cfg.Duration
	if duration == 0 {
		duration = e.scn.Duration
	}
	if err := validateConfig(e.cfg, duration); err != nil {
		return nil, err
	}

	env := debris.DefaultEnvironment()
	if e.cfg.Environment != nil {
		env = *e.cfg.Environment
	}
	pop := debris.NewPopulation(env, rand.New(rand.NewSource(e.cfg.Seed)))
	player := scenario.NewPlayer(e.scn)

	stride := e.cfg.SampleStride
	if stride <= 0 {
		stride = 1
	}

	steps := int(duration / e.cfg.Dt)
	result := &Result{
		Samples: make([]Sample, 0, steps/stride+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range e.ms {
		m.Reset()
	}

	result.Samples = append(result.Samples, sampleNow(pop))

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		player.Advance(pop, pop.Now())
		pop.Step(e.cfg.Dt)

		for _, m := range e.ms {
			m.Observe(pop, pop.Now())
		}

		if e.cfg.Validate {
			for _, p := range pop.Particles() {
				if !p.Valid() {
					return result, &StepError{Step: i, Time: pop.Now(), Err: ErrInvalidState}
				}
			}
		}

		result.StepsTaken++
		if (i+1)%stride == 0 {
			result.Samples = append(result.Samples, sampleNow(pop))
		}
	}

	for _, m := range e.ms {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Spawned = pop.Spawned()
	result.Culled = pop.Culled()

	return result, nil
}

// RunWithCallback steps through the scenario invoking callback after
// every step with the live population. Returning false from the
// callback stops the run early. No samples or metrics are collected.
func (e *Experiment) RunWithCallback(ctx context.Context, callback func(pop *debris.Population, t float64) bool) error {
	if e.scn == nil {
		return ErrNotSetup
	}
	duration := e.cfg.Duration
	if duration == 0 {
		duration = e.scn.Duration
	}
	if err := validateConfig(e.cfg, duration); err != nil {
		return err
	}

	env := debris.DefaultEnvironment()
	if e.cfg.Environment != nil {
		env = *e.cfg.Environment
	}
	pop := debris.NewPopulation(env, rand.New(rand.NewSource(e.cfg.Seed)))
	player := scenario.NewPlayer(e.scn)

	steps := int(duration / e.cfg.Dt)
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		player.Advance(pop, pop.Now())
		pop.Step(e.cfg.Dt)

		if !callback(pop, pop.Now()) {
			return nil
		}
	}

	return nil
}

func validateConfig(cfg Config, duration float64) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", duration)
	}
	return nil
}

func sampleNow(pop *debris.Population) Sample {
	s := Sample{
		Time:    pop.Now(),
		Count:   pop.Len(),
		Spawned: pop.Spawned(),
		Culled:  pop.Culled(),
	}
	var def, speedSum float64
	for _, p := range pop.Particles() {
		v := p.Speed()
		speedSum += v
		s.KineticEnergy += 0.5 * p.Mass() * v * v
		if v > s.MaxSpeed {
			s.MaxSpeed = v
		}
		def += p.Deformation
	}
	if s.Count > 0 {
		s.MeanSpeed = speedSum / float64(s.Count)
		s.MeanDeformation = def / float64(s.Count)
	}
	return s
}
