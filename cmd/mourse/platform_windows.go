//go:build windows

package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakura6264/mourse/internal/adapters/robotinput"
	"github.com/sakura6264/mourse/internal/adapters/wininput"
)

func parseHotkeyCode(value string) (uint16, error) {
	return wininput.ParseCode(value)
}

func formatCodeName(code uint16) string {
	return wininput.FormatCodeName(code)
}

func defaultHotkeys() (clickKey, moveKey string) {
	return "KEY_F6", "KEY_F7"
}

func parseBackendChoice(value string) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(value))
	if backend == "" {
		backend = "auto"
	}
	switch backend {
	case "auto", "windows", "robot":
		return backend, nil
	default:
		return "", fmt.Errorf("invalid --backend %q (windows supports auto|windows|robot)", value)
	}
}

func permissionDeniedHint() string {
	return "Input injection failed. If the target window runs elevated, run this program as administrator too."
}

func listInputDevices(string) error {
	fmt.Println("windows: SendInput / GetAsyncKeyState (global, no per-device enumeration)")
	return nil
}

func newInputBackend(choice string, _ []uint16, logger *slog.Logger) (*inputBackend, error) {
	switch choice {
	case "robot":
		logger.Info("Backend", "name", "robot")
		return &inputBackend{
			injector: robotinput.NewInjector(),
			keys:     wininput.NewKeyState(),
			close:    func() {},
		}, nil
	default:
		logger.Info("Backend", "name", "windows")
		return &inputBackend{
			injector: wininput.NewInjector(),
			keys:     wininput.NewKeyState(),
			close:    func() {},
		}, nil
	}
}
