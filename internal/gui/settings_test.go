package gui

import (
	"testing"
)

// redirectDataDir points every per-OS data dir lookup at a throwaway
// directory so tests never touch real saved settings.
func redirectDataDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
}

func TestDefaultSettings(t *testing.T) {
	st := DefaultSettings()
	if st.Force != 300 {
		t.Errorf("Force = %v, want 300", st.Force)
	}
	if st.Count != 20 {
		t.Errorf("Count = %v, want 20", st.Count)
	}
	if st.Material != "semi_rigid" {
		t.Errorf("Material = %q, want semi_rigid", st.Material)
	}
	if !st.Audio {
		t.Error("Audio should default on")
	}
	if st.Theme != "ember" {
		t.Errorf("Theme = %q, want ember", st.Theme)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	redirectDataDir(t)

	store := OpenSettings()
	if store.m == nil {
		t.Fatal("OpenSettings degraded unexpectedly")
	}

	want := Settings{Force: 650, Count: 35, Material: "rigid", Audio: false, Theme: "minimal"}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := OpenSettings().Load()
	if got != want {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
}

func TestLoadBeforeAnySaveReturnsDefaults(t *testing.T) {
	redirectDataDir(t)

	got := OpenSettings().Load()
	if got != DefaultSettings() {
		t.Errorf("Load = %+v, want defaults", got)
	}
}

func TestLoadClampsRanges(t *testing.T) {
	redirectDataDir(t)

	store := OpenSettings()
	if err := store.Save(Settings{Force: 9999, Count: 1, Material: "jelly", Audio: true, Theme: "ember"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := store.Load()
	if got.Force != forceMax {
		t.Errorf("Force = %v, want clamped to %v", got.Force, forceMax)
	}
	if got.Count != countMin {
		t.Errorf("Count = %v, want clamped to %v", got.Count, countMin)
	}
	if got.Material != "semi_rigid" {
		t.Errorf("Material = %q, want fallback semi_rigid", got.Material)
	}
}

func TestDegradedStore(t *testing.T) {
	store := &SettingsStore{}
	if got := store.Load(); got != DefaultSettings() {
		t.Errorf("degraded Load = %+v, want defaults", got)
	}
	if err := store.Save(DefaultSettings()); err != nil {
		t.Errorf("degraded Save: %v", err)
	}
}
