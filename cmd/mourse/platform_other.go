//go:build !linux && !windows

package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/sakura6264/mourse/internal/adapters/robotinput"
)

func parseHotkeyCode(value string) (uint16, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	return 0, fmt.Errorf("global hotkeys are not supported on this platform (got %q)", value)
}

func formatCodeName(code uint16) string {
	return strconv.Itoa(int(code))
}

func defaultHotkeys() (clickKey, moveKey string) {
	return "", ""
}

func parseBackendChoice(value string) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(value))
	if backend == "" {
		backend = "auto"
	}
	switch backend {
	case "auto", "robot":
		return "robot", nil
	default:
		return "", fmt.Errorf("invalid --backend %q (this platform supports auto|robot)", value)
	}
}

func permissionDeniedHint() string {
	return "Input injection failed. On macOS grant Accessibility permission to this program in System Settings > Privacy & Security."
}

func listInputDevices(string) error {
	fmt.Println("robot: portable injection backend (no per-device enumeration)")
	return nil
}

func newInputBackend(_ string, _ []uint16, logger *slog.Logger) (*inputBackend, error) {
	logger.Info("Backend", "name", "robot")
	logger.Warn("Global hotkeys are unavailable on this platform; use the UI buttons")
	return &inputBackend{
		injector: robotinput.NewInjector(),
		close:    func() {},
	}, nil
}
