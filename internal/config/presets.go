package config

func preset(scenario string, mutate func(*Config)) *Config {
	c := DefaultConfig()
	c.Scenario = scenario
	if mutate != nil {
		mutate(c)
	}
	return c
}

var Presets = map[string]map[string]*Config{
	"single": {
		"default": preset("single", nil),
		"slowmo": preset("single", func(c *Config) {
			c.Dt = 0.002
			c.SampleStride = 5
		}),
		"moon": preset("single", func(c *Config) {
			c.Environment.Gravity = 80
		}),
	},
	"bigone": {
		"default": preset("bigone", nil),
		"vacuum": preset("bigone", func(c *Config) {
			c.Environment.AirDrag = 1.0
		}),
		"heavy": preset("bigone", func(c *Config) {
			c.Environment.Gravity = 900
		}),
	},
	"shower": {
		"default": preset("shower", nil),
		"storm": preset("shower", func(c *Config) {
			c.Duration = 20
			c.SampleStride = 4
		}),
	},
	"materials": {
		"default": preset("materials", nil),
		"slick": preset("materials", func(c *Config) {
			c.Environment.Friction = 1.0
		}),
	},
}

func GetPreset(scenario, preset string) *Config {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := scenarioPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(scenario string) []string {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	return names
}
