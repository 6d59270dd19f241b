package runner

import (
	"fmt"
	"math/rand"
	"sync/atomic"
)

// Clicker repeatedly presses and releases one mouse button on a background
// goroutine. Control calls are safe from a single UI goroutine; the loop
// shares only the running flag and the click counter with it.
type Clicker struct {
	task
	injector Injector
	cfg      atomic.Pointer[ClickerConfig]
}

func NewClicker(cfg ClickerConfig, injector Injector, logger Logger) (*Clicker, error) {
	if injector == nil {
		return nil, fmt.Errorf("injector is nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Clicker{
		task:     task{name: "clicker", logger: logger},
		injector: injector,
	}
	c.cfg.Store(&cfg)
	return c, nil
}

// Start spawns the click loop with a snapshot of the current configuration.
// No-op when already running; later SetConfig calls do not reach the loop
// until it is stopped and started again.
func (c *Clicker) Start() {
	cfg := *c.cfg.Load()
	button := cfg.Button
	c.start(func(*rand.Rand) error {
		return c.injector.PressAndRelease(button)
	}, cfg.cadence())
}

func (c *Clicker) Stop() {
	c.stop()
}

// StopWait stops the loop and blocks until it has exited.
func (c *Clicker) StopWait() {
	c.stopWait()
}

func (c *Clicker) IsRunning() bool {
	return c.isRunning()
}

func (c *Clicker) Clicks() uint64 {
	return c.actionCount()
}

func (c *Clicker) ResetClicks() {
	c.resetCount()
}

func (c *Clicker) Config() ClickerConfig {
	return *c.cfg.Load()
}

// SetConfig replaces the configuration. Only future Start calls see it.
func (c *Clicker) SetConfig(cfg ClickerConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg.Store(&cfg)
	return nil
}
