package runner

import (
	"fmt"
	"math/rand"
	"sync/atomic"
)

// Mover repeatedly displaces the pointer by a random relative vector whose
// components are drawn uniformly from [-MaxDistance, +MaxDistance].
type Mover struct {
	task
	injector Injector
	cfg      atomic.Pointer[MoverConfig]
}

func NewMover(cfg MoverConfig, injector Injector, logger Logger) (*Mover, error) {
	if injector == nil {
		return nil, fmt.Errorf("injector is nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Mover{
		task:     task{name: "mover", logger: logger},
		injector: injector,
	}
	m.cfg.Store(&cfg)
	return m, nil
}

// Start spawns the move loop with a snapshot of the current configuration.
// No-op when already running. A MaxDistance of zero still moves by (0, 0)
// each iteration, which counts as an action.
func (m *Mover) Start() {
	cfg := *m.cfg.Load()
	maxDistance := cfg.MaxDistance
	m.start(func(rng *rand.Rand) error {
		dx, dy := randomOffset(rng, maxDistance), randomOffset(rng, maxDistance)
		return m.injector.MoveRelative(dx, dy)
	}, cfg.cadence())
}

func (m *Mover) Stop() {
	m.stop()
}

// StopWait stops the loop and blocks until it has exited.
func (m *Mover) StopWait() {
	m.stopWait()
}

func (m *Mover) IsRunning() bool {
	return m.isRunning()
}

func (m *Mover) Moves() uint64 {
	return m.actionCount()
}

func (m *Mover) ResetMoves() {
	m.resetCount()
}

func (m *Mover) Config() MoverConfig {
	return *m.cfg.Load()
}

// SetConfig replaces the configuration. Only future Start calls see it.
func (m *Mover) SetConfig(cfg MoverConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.cfg.Store(&cfg)
	return nil
}

// randomOffset draws uniformly from [-max, +max] inclusive.
func randomOffset(rng *rand.Rand, max int) int {
	if max <= 0 {
		return 0
	}
	return rng.Intn(2*max+1) - max
}
