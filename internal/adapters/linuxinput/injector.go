//go:build linux

// Package linuxinput injects mouse input through a uinput virtual device and
// polls keyboard state from evdev source devices. It is the default backend
// on Wayland sessions, where X11 injection is unavailable.
package linuxinput

import (
	"fmt"

	evdev "github.com/holoplot/go-evdev"

	"github.com/sakura6264/mourse/internal/core/runner"
)

// Injector owns one uinput device capable of the three mouse buttons and
// relative X/Y motion.
type Injector struct {
	dev *evdev.InputDevice
}

func NewInjector() (*Injector, error) {
	id := evdev.InputID{
		BusType: uint16(evdev.BUS_VIRTUAL),
		Vendor:  0x1,
		Product: 0x1,
		Version: 1,
	}
	capabilities := map[evdev.EvType][]evdev.EvCode{
		evdev.EV_KEY: {evdev.BTN_LEFT, evdev.BTN_RIGHT, evdev.BTN_MIDDLE},
		evdev.EV_REL: {evdev.REL_X, evdev.REL_Y},
	}

	dev, err := evdev.CreateDevice("mourse", id, capabilities)
	if err != nil {
		return nil, fmt.Errorf("failed to create uinput device: %w", err)
	}
	return &Injector{dev: dev}, nil
}

func (i *Injector) PressAndRelease(button runner.Button) error {
	code, err := buttonCode(button)
	if err != nil {
		return err
	}
	if err := i.writeKey(code, 1); err != nil {
		return err
	}
	return i.writeKey(code, 0)
}

func (i *Injector) MoveRelative(dx, dy int) error {
	events := []evdev.InputEvent{
		{Type: evdev.EV_REL, Code: evdev.REL_X, Value: int32(dx)},
		{Type: evdev.EV_REL, Code: evdev.REL_Y, Value: int32(dy)},
		{Type: evdev.EV_SYN, Code: evdev.SYN_REPORT, Value: 0},
	}
	return i.write(events)
}

func (i *Injector) Close() error {
	if i.dev == nil {
		return nil
	}
	return i.dev.Close()
}

func (i *Injector) writeKey(code evdev.EvCode, value int32) error {
	events := []evdev.InputEvent{
		{Type: evdev.EV_KEY, Code: code, Value: value},
		{Type: evdev.EV_SYN, Code: evdev.SYN_REPORT, Value: 0},
	}
	return i.write(events)
}

func (i *Injector) write(events []evdev.InputEvent) error {
	for idx := range events {
		if err := i.dev.WriteOne(&events[idx]); err != nil {
			return err
		}
	}
	return nil
}

func buttonCode(button runner.Button) (evdev.EvCode, error) {
	switch button {
	case runner.ButtonLeft:
		return evdev.BTN_LEFT, nil
	case runner.ButtonMiddle:
		return evdev.BTN_MIDDLE, nil
	case runner.ButtonRight:
		return evdev.BTN_RIGHT, nil
	default:
		return 0, fmt.Errorf("unknown mouse button %q", string(button))
	}
}
