//go:build linux

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sakura6264/mourse/internal/adapters/linuxinput"
	"github.com/sakura6264/mourse/internal/adapters/robotinput"
	"github.com/sakura6264/mourse/internal/adapters/x11input"
)

func parseHotkeyCode(value string) (uint16, error) {
	return linuxinput.ParseCode(value)
}

func formatCodeName(code uint16) string {
	return linuxinput.FormatCodeName(code)
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
	case "auto", "wayland", "x11", "uinput", "robot":
		return backend, nil
	default:
		return "", fmt.Errorf("invalid --backend %q (linux supports auto|wayland|x11|robot)", value)
	}
}

func permissionDeniedHint() string {
	return "Permission denied opening input backend. On Wayland use root/udev for /dev/input + /dev/uinput. On X11 ensure an active X11 session and DISPLAY is set."
}

func listInputDevices(string) error {
	devices, err := linuxinput.ListInputDevices()
	if err != nil {
		return err
	}
	for _, dev := range devices {
		virtualTag := "physical"
		if dev.IsVirtual {
			virtualTag = "virtual"
		}
		pointerTag := "non-pointer"
		if dev.IsPointer {
			pointerTag = "pointer"
		}
		fmt.Printf("%s: %s [%s, %s]\n", dev.Path, dev.Name, virtualTag, pointerTag)
	}
	return nil
}

func newInputBackend(choice string, hotkeyCodes []uint16, logger *slog.Logger) (*inputBackend, error) {
	switch resolveLinuxBackend(choice) {
	case "x11":
		backend, err := x11input.NewBackend()
		if err != nil {
			return nil, err
		}
		logger.Info("Backend", "name", "x11")
		return &inputBackend{
			injector: backend,
			keys:     backend,
			close:    func() { _ = backend.Close() },
		}, nil

	case "robot":
		logger.Info("Backend", "name", "robot")
		logger.Warn("Global hotkeys are unavailable on the robot backend; use the UI buttons")
		return &inputBackend{
			injector: robotinput.NewInjector(),
			close:    func() {},
		}, nil

	default:
		injector, err := linuxinput.NewInjector()
		if err != nil {
			return nil, err
		}

		backend := &inputBackend{injector: injector}
		watched := watchedCodes(hotkeyCodes)
		if len(watched) > 0 {
			watcher, err := linuxinput.NewKeyboardWatcher(watched)
			if err != nil {
				logger.Warn("Global hotkeys disabled; failed to open keyboard devices", "err", err)
			} else {
				backend.keys = watcher
				backend.close = func() {
					watcher.Close()
					_ = injector.Close()
				}
			}
		}
		if backend.close == nil {
			backend.close = func() { _ = injector.Close() }
		}

		logger.Info("Backend", "name", "wayland")
		return backend, nil
	}
}

func watchedCodes(codes []uint16) []uint16 {
	out := make([]uint16, 0, len(codes))
	for _, code := range codes {
		if code != 0 {
			out = append(out, code)
		}
	}
	return out
}

func resolveLinuxBackend(configured string) string {
	choice := strings.ToLower(strings.TrimSpace(configured))
	if choice == "" {
		choice = "auto"
	}
	if choice == "uinput" {
		choice = "wayland"
	}
	if choice != "auto" {
		return choice
	}

	sessionType := strings.ToLower(strings.TrimSpace(os.Getenv("XDG_SESSION_TYPE")))
	switch sessionType {
	case "wayland":
		return "wayland"
	case "x11":
		return "x11"
	}

	if strings.TrimSpace(os.Getenv("WAYLAND_DISPLAY")) != "" {
		return "wayland"
	}
	if strings.TrimSpace(os.Getenv("DISPLAY")) != "" {
		return "x11"
	}
	return "wayland"
}
