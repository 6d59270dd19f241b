package runner

import (
	"fmt"
	"strings"
	"time"
)

// Button identifies the mouse button a Clicker presses.
type Button string

const (
	ButtonLeft   Button = "left"
	ButtonMiddle Button = "middle"
	ButtonRight  Button = "right"
)

func ParseButton(value string) (Button, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "left":
		return ButtonLeft, nil
	case "middle":
		return ButtonMiddle, nil
	case "right":
		return ButtonRight, nil
	default:
		return "", fmt.Errorf("unknown mouse button %q (expected left|middle|right)", value)
	}
}

func (b Button) Valid() bool {
	switch b {
	case ButtonLeft, ButtonMiddle, ButtonRight:
		return true
	}
	return false
}

// Injector performs the actual platform input injection. A single failed
// call is reported back so the caller can log it; it must not block
// indefinitely.
type Injector interface {
	PressAndRelease(button Button) error
	MoveRelative(dx, dy int) error
}

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ClickerConfig is the persisted configuration of a Clicker. The random
// extra delay is drawn uniformly from [RandomDelayMinMs, RandomDelayMaxMs]
// inclusive and added on top of the base interval.
type ClickerConfig struct {
	IntervalMs         uint64 `json:"click_interval_ms"`
	Button             Button `json:"mouse_button"`
	RandomDelayEnabled bool   `json:"random_delay_enabled"`
	RandomDelayMinMs   uint64 `json:"random_delay_min_ms"`
	RandomDelayMaxMs   uint64 `json:"random_delay_max_ms"`
}

func DefaultClickerConfig() ClickerConfig {
	return ClickerConfig{
		IntervalMs:       1000,
		Button:           ButtonLeft,
		RandomDelayMaxMs: 500,
	}
}

func (c ClickerConfig) Validate() error {
	if c.IntervalMs == 0 {
		return fmt.Errorf("click interval must be > 0 ms")
	}
	if !c.Button.Valid() {
		return fmt.Errorf("unknown mouse button %q", string(c.Button))
	}
	return nil
}

func (c ClickerConfig) cadence() cadence {
	return cadence{
		interval:      time.Duration(c.IntervalMs) * time.Millisecond,
		randomEnabled: c.RandomDelayEnabled,
		extraMin:      time.Duration(c.RandomDelayMinMs) * time.Millisecond,
		extraMax:      time.Duration(c.RandomDelayMaxMs) * time.Millisecond,
	}
}

// MoverConfig is the persisted configuration of a Mover.
type MoverConfig struct {
	IntervalMs         uint64 `json:"move_interval_ms"`
	MaxDistance        int    `json:"max_distance"`
	RandomDelayEnabled bool   `json:"random_delay_enabled"`
	RandomDelayMinMs   uint64 `json:"random_delay_min_ms"`
	RandomDelayMaxMs   uint64 `json:"random_delay_max_ms"`
}

func DefaultMoverConfig() MoverConfig {
	return MoverConfig{
		IntervalMs:       100,
		MaxDistance:      100,
		RandomDelayMaxMs: 200,
	}
}

func (c MoverConfig) Validate() error {
	if c.IntervalMs == 0 {
		return fmt.Errorf("move interval must be > 0 ms")
	}
	if c.MaxDistance < 0 {
		return fmt.Errorf("max distance must be >= 0, got %d", c.MaxDistance)
	}
	return nil
}

func (c MoverConfig) cadence() cadence {
	return cadence{
		interval:      time.Duration(c.IntervalMs) * time.Millisecond,
		randomEnabled: c.RandomDelayEnabled,
		extraMin:      time.Duration(c.RandomDelayMinMs) * time.Millisecond,
		extraMax:      time.Duration(c.RandomDelayMaxMs) * time.Millisecond,
	}
}
