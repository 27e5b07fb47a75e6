package gui

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/debrislab/internal/debris"
)

// Settings is the sandbox state worth keeping between launches. Theme is
// carried for the terminal frontend; the window sandbox stores it
// untouched.
type Settings struct {
	Force    float64 `yaml:"force"`
	Count    int     `yaml:"count"`
	Material string  `yaml:"material"`
	Audio    bool    `yaml:"audio"`
	Theme    string  `yaml:"theme"`
}

func DefaultSettings() Settings {
	return Settings{
		Force:    300,
		Count:    20,
		Material: debris.SemiRigid.String(),
		Audio:    true,
		Theme:    "ember",
	}
}

// SettingsStore persists Settings through gdata's per-OS app data
// directory. A nil manager degrades to in-memory defaults so the sandbox
// still runs on systems where the data dir cannot be created.
type SettingsStore struct {
	m *gdata.Manager
}

const (
	settingsObject   = "sandbox"
	settingsProperty = "controls"
)

func OpenSettings() *SettingsStore {
	m, err := gdata.Open(gdata.Config{AppName: "debrislab"})
	if err != nil {
		fmt.Printf("SETTINGS ERROR: %v\n", err)
		return &SettingsStore{}
	}
	return &SettingsStore{m: m}
}

// Load returns the saved settings, or defaults when nothing was saved yet
// or the saved blob no longer parses. Loaded values are clamped into the
// sandbox control ranges.
func (s *SettingsStore) Load() Settings {
	st := DefaultSettings()
	if s.m == nil || !s.m.ObjectPropExists(settingsObject, settingsProperty) {
		return st
	}

	data, err := s.m.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		fmt.Printf("SETTINGS ERROR: %v\n", err)
		return st
	}
	if err := yaml.Unmarshal(data, &st); err != nil {
		return DefaultSettings()
	}
	return clampSettings(st)
}

func (s *SettingsStore) Save(st Settings) error {
	if s.m == nil {
		return nil
	}
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := s.m.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func clampSettings(st Settings) Settings {
	if st.Force < forceMin {
		st.Force = forceMin
	}
	if st.Force > forceMax {
		st.Force = forceMax
	}
	if st.Count < countMin {
		st.Count = countMin
	}
	if st.Count > countMax {
		st.Count = countMax
	}
	if _, err := debris.ParseKind(st.Material); err != nil {
		st.Material = debris.SemiRigid.String()
	}
	return st
}
