package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scenario != "single" {
		t.Errorf("expected scenario single, got %s", cfg.Scenario)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Spawn.Force != 300 {
		t.Errorf("expected spawn force 300, got %f", cfg.Spawn.Force)
	}
	if cfg.Spawn.Count != 20 {
		t.Errorf("expected spawn count 20, got %d", cfg.Spawn.Count)
	}
	if cfg.Environment.Gravity != 500 {
		t.Errorf("expected gravity 500, got %f", cfg.Environment.Gravity)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	doc := `scenario: shower
dt: 0.005
seed: 99
environment:
  gravity: 250
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Scenario != "shower" {
		t.Errorf("expected scenario shower, got %s", cfg.Scenario)
	}
	if cfg.Dt != 0.005 {
		t.Errorf("expected dt 0.005, got %f", cfg.Dt)
	}
	if cfg.Seed != 99 {
		t.Errorf("expected seed 99, got %d", cfg.Seed)
	}
	if cfg.Environment.Gravity != 250 {
		t.Errorf("expected gravity override 250, got %f", cfg.Environment.Gravity)
	}

	// Untouched keys keep their defaults.
	if cfg.Environment.AirDrag != 0.99 {
		t.Errorf("expected default air drag, got %f", cfg.Environment.AirDrag)
	}
	if cfg.Spawn.Count != 20 {
		t.Errorf("expected default spawn count, got %d", cfg.Spawn.Count)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	for scn, byName := range Presets {
		for name, p := range byName {
			if err := p.Validate(); err != nil {
				t.Errorf("preset %s/%s invalid: %v", scn, name, err)
			}
		}
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative duration", func(c *Config) { c.Duration = -1 }},
		{"negative stride", func(c *Config) { c.SampleStride = -1 }},
		{"negative trail", func(c *Config) { c.Environment.TrailLength = -1 }},
		{"unknown material", func(c *Config) { c.Spawn.Kind = "granite" }},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("dt: -0.01\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for negative dt")
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")

	cfg := DefaultConfig()
	cfg.Scenario = "crossfire"
	cfg.Seed = 1234
	cfg.Environment.Friction = 0.5

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Scenario != "crossfire" || loaded.Seed != 1234 {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
	if loaded.Environment.Friction != 0.5 {
		t.Errorf("expected friction 0.5, got %f", loaded.Environment.Friction)
	}
}

func TestToEnvironment(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Environment.Gravity = 80
	cfg.Environment.TrailLength = 4

	env := cfg.ToEnvironment()
	if env.Gravity.Y != 80 {
		t.Errorf("expected gravity 80, got %f", env.Gravity.Y)
	}
	if env.Gravity.X != 0 {
		t.Errorf("gravity must stay vertical, got x=%f", env.Gravity.X)
	}
	if env.TrailLength != 4 {
		t.Errorf("expected trail length 4, got %d", env.TrailLength)
	}
	if env.Width != 1200 || env.Height != 800 {
		t.Errorf("arena size should be untouched, got %fx%f", env.Width, env.Height)
	}
}

func TestSpawnKind(t *testing.T) {
	cfg := DefaultConfig()
	kind, err := cfg.SpawnKind()
	if err != nil {
		t.Fatalf("SpawnKind: %v", err)
	}
	if kind.String() != "semi_rigid" {
		t.Errorf("expected semi_rigid, got %s", kind)
	}

	cfg.Spawn.Kind = "granite"
	if _, err := cfg.SpawnKind(); err == nil {
		t.Error("expected error for unknown material")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("single", "moon")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Environment.Gravity != 80 {
		t.Errorf("expected moon gravity 80, got %f", cfg.Environment.Gravity)
	}
	if cfg.Environment.AirDrag != 0.99 {
		t.Errorf("presets should keep unrelated defaults, got drag %f", cfg.Environment.AirDrag)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("single", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "default"); cfg != nil {
		t.Error("expected nil for nonexistent scenario")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("single")
	if len(presets) != 3 {
		t.Errorf("expected 3 presets for single, got %d", len(presets))
	}

	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent scenario")
	}
}
