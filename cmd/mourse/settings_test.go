package main

import (
	"os"
	"path/filepath"
	"testing"

	corerunner "github.com/sakura6264/mourse/internal/core/runner"
)

func TestSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	st := settings{
		Clicker: corerunner.ClickerConfig{
			IntervalMs:         250,
			Button:             corerunner.ButtonRight,
			RandomDelayEnabled: true,
			RandomDelayMinMs:   10,
			RandomDelayMaxMs:   40,
		},
		Mover: corerunner.MoverConfig{
			IntervalMs:         80,
			MaxDistance:        33,
			RandomDelayEnabled: true,
			RandomDelayMinMs:   5,
			RandomDelayMaxMs:   15,
		},
	}

	if err := saveSettingsTo(path, st); err != nil {
		t.Fatalf("saveSettingsTo() error = %v", err)
	}

	loaded, err := loadSettingsFrom(path)
	if err != nil {
		t.Fatalf("loadSettingsFrom() error = %v", err)
	}
	if loaded != st {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", loaded, st)
	}
}

func TestLoadSettingsMissingFileYieldsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "settings.json")

	st, err := loadSettingsFrom(path)
	if err != nil {
		t.Fatalf("missing file must not be an error, got %v", err)
	}
	if st != defaultSettings() {
		t.Fatalf("expected defaults for missing file, got %+v", st)
	}
}

func TestLoadSettingsCorruptFileYieldsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	st, err := loadSettingsFrom(path)
	if err == nil {
		t.Fatalf("expected an informational parse error")
	}
	if st != defaultSettings() {
		t.Fatalf("expected defaults for corrupt file, got %+v", st)
	}
}

func TestLoadSettingsNormalizesInvalidFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	raw := `{
  "clicker": {"click_interval_ms": 0, "mouse_button": "fourth"},
  "mover": {"move_interval_ms": 0, "max_distance": -5}
}`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	st, err := loadSettingsFrom(path)
	if err != nil {
		t.Fatalf("loadSettingsFrom() error = %v", err)
	}
	if err := st.Clicker.Validate(); err != nil {
		t.Fatalf("normalized clicker config still invalid: %v", err)
	}
	if err := st.Mover.Validate(); err != nil {
		t.Fatalf("normalized mover config still invalid: %v", err)
	}
}
