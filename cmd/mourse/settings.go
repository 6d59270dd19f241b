package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	corerunner "github.com/sakura6264/mourse/internal/core/runner"
)

// settings is the persisted configuration snapshot: one record per runner,
// rewritten in full on every configuration change and at exit.
type settings struct {
	Clicker corerunner.ClickerConfig `json:"clicker"`
	Mover   corerunner.MoverConfig   `json:"mover"`
}

func defaultSettings() settings {
	return settings{
		Clicker: corerunner.DefaultClickerConfig(),
		Mover:   corerunner.DefaultMoverConfig(),
	}
}

// normalize repairs field values a hand-edited file may carry so a load
// never produces a config the runners would reject.
func (s *settings) normalize() {
	if s.Clicker.IntervalMs == 0 {
		s.Clicker.IntervalMs = corerunner.DefaultClickerConfig().IntervalMs
	}
	if !s.Clicker.Button.Valid() {
		s.Clicker.Button = corerunner.ButtonLeft
	}
	if s.Mover.IntervalMs == 0 {
		s.Mover.IntervalMs = corerunner.DefaultMoverConfig().IntervalMs
	}
	if s.Mover.MaxDistance < 0 {
		s.Mover.MaxDistance = 0
	}
}

func settingsPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil || configDir == "" {
		return filepath.Join(".", ".mourse-settings.json"), nil
	}
	return filepath.Join(configDir, "mourse", "settings.json"), nil
}

// loadSettings returns defaults when the file is absent or unreadable; the
// error is informational only and never fatal.
func loadSettings() (settings, error) {
	path, err := settingsPath()
	if err != nil {
		return defaultSettings(), err
	}
	return loadSettingsFrom(path)
}

func loadSettingsFrom(path string) (settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultSettings(), nil
		}
		return defaultSettings(), err
	}

	var st settings
	if err := json.Unmarshal(data, &st); err != nil {
		return defaultSettings(), fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	st.normalize()
	return st, nil
}

func saveSettings(st settings) error {
	path, err := settingsPath()
	if err != nil {
		return err
	}
	return saveSettingsTo(path, st)
}

func saveSettingsTo(path string, st settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create settings dir: %w", err)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to persist settings: %w", err)
	}

	return nil
}

// openSettingsFile opens the settings file in the platform file handler,
// writing the current snapshot first when no file exists yet.
func openSettingsFile(current settings) error {
	path, err := settingsPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := saveSettingsTo(path, current); err != nil {
			return err
		}
	}

	var opener string
	switch runtime.GOOS {
	case "windows":
		opener = "notepad"
	case "darwin":
		opener = "open"
	default:
		opener = "xdg-open"
	}
	return exec.Command(opener, path).Start()
}
