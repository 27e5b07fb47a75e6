package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/debrislab/internal/debris"
)

const (
	DefaultDt       = 0.01
	DefaultScenario = "single"
	DefaultMetrics  = "default"
	DefaultDataDir  = "data"
	DefaultForce    = 300.0
	DefaultCount    = 20
	DefaultKind     = "semi_rigid"
)

type Config struct {
	Scenario     string            `yaml:"scenario"`
	MetricSet    string            `yaml:"metrics"`
	Dt           float64           `yaml:"dt"`
	Duration     float64           `yaml:"duration"` // 0 defers to the scenario
	Seed         int64             `yaml:"seed"`
	SampleStride int               `yaml:"sample_stride"`
	Validate     bool              `yaml:"validate"`
	DataDir      string            `yaml:"data_dir"`
	Spawn        SpawnConfig       `yaml:"spawn"`
	Environment  EnvironmentConfig `yaml:"environment"`
}

// SpawnConfig holds the interactive burst settings: what a click drops
// into the arena before the user adjusts anything.
type SpawnConfig struct {
	Force float64 `yaml:"force"`
	Count int     `yaml:"count"`
	Kind  string  `yaml:"kind"`
}

type EnvironmentConfig struct {
	Gravity        float64 `yaml:"gravity"`
	AirDrag        float64 `yaml:"air_drag"`
	Friction       float64 `yaml:"friction"`
	AngularDamping float64 `yaml:"angular_damping"`
	GroundHeight   float64 `yaml:"ground_height"`
	TrailLength    int     `yaml:"trail_length"`
	MarkerDuration float64 `yaml:"marker_duration"`
}

func DefaultConfig() *Config {
	env := debris.DefaultEnvironment()
	return &Config{
		Scenario:  DefaultScenario,
		MetricSet: DefaultMetrics,
		Dt:        DefaultDt,
		DataDir:   DefaultDataDir,
		Spawn: SpawnConfig{
			Force: DefaultForce,
			Count: DefaultCount,
			Kind:  DefaultKind,
		},
		Environment: EnvironmentConfig{
			Gravity:        env.Gravity.Y,
			AirDrag:        env.AirDrag,
			Friction:       env.Friction,
			AngularDamping: env.AngularDamping,
			GroundHeight:   env.GroundHeight,
			TrailLength:    env.TrailLength,
			MarkerDuration: env.MarkerDuration,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the merged settings before they reach a runner. Physics
// overrides (gravity, drag, friction) are taken as given; only values that
// would break the step loop are rejected.
func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %g", c.Dt)
	}
	if c.Duration < 0 {
		return fmt.Errorf("config: duration must not be negative, got %g", c.Duration)
	}
	if c.SampleStride < 0 {
		return fmt.Errorf("config: sample stride must not be negative, got %d", c.SampleStride)
	}
	if c.Environment.TrailLength < 0 {
		return fmt.Errorf("config: trail length must not be negative, got %d", c.Environment.TrailLength)
	}
	if _, err := c.SpawnKind(); err != nil {
		return fmt.Errorf("config: spawn kind %q: %w", c.Spawn.Kind, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ToEnvironment projects the override block onto the standard arena.
func (c *Config) ToEnvironment() debris.Environment {
	env := debris.DefaultEnvironment()
	env.Gravity.Y = c.Environment.Gravity
	env.AirDrag = c.Environment.AirDrag
	env.Friction = c.Environment.Friction
	env.AngularDamping = c.Environment.AngularDamping
	env.GroundHeight = c.Environment.GroundHeight
	env.TrailLength = c.Environment.TrailLength
	env.MarkerDuration = c.Environment.MarkerDuration
	return env
}

// SpawnKind resolves the configured material name.
func (c *Config) SpawnKind() (debris.Kind, error) {
	return debris.ParseKind(c.Spawn.Kind)
}
