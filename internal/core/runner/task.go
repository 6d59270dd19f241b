package runner

import (
	"math/rand"
	"sync/atomic"
	"time"
)

// task is the shared on/off background loop behind Clicker and Mover. The
// running flag has a single writer per transition (control side stores,
// loop side reads) and the counter a single writer (loop side adds, control
// side reads or resets), so no locks are needed.
type task struct {
	name   string
	logger Logger

	running atomic.Bool
	count   atomic.Uint64
	done    atomic.Pointer[chan struct{}]
}

// start transitions not-running to running exactly once and spawns the loop
// goroutine. Concurrent calls race on the CAS; the losers are no-ops. The
// action and cadence are fixed for the lifetime of the spawned loop.
func (t *task) start(action func(rng *rand.Rand) error, cad cadence) bool {
	if !t.running.CompareAndSwap(false, true) {
		return false
	}
	done := make(chan struct{})
	t.done.Store(&done)
	go t.loop(action, cad, done)
	return true
}

// stop flips the flag and returns immediately. The loop observes it after at
// most one more action plus one cadence sleep.
func (t *task) stop() {
	t.running.Store(false)
}

// stopWait is stop plus a wait for the loop goroutine to exit. The original
// control surface is fire-and-forget; this exists for deterministic process
// shutdown and tests.
func (t *task) stopWait() {
	t.stop()
	if done := t.done.Load(); done != nil {
		<-*done
	}
}

func (t *task) isRunning() bool {
	return t.running.Load()
}

func (t *task) actionCount() uint64 {
	return t.count.Load()
}

// resetCount zeroes the counter. While running, an in-flight increment may
// land before or after the reset; either order is acceptable.
func (t *task) resetCount() {
	t.count.Store(0)
}

func (t *task) loop(action func(rng *rand.Rand) error, cad cadence, done chan struct{}) {
	defer close(done)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for t.running.Load() {
		if err := action(rng); err != nil {
			t.logger.Warn("Injection failed", "task", t.name, "err", err)
		}
		t.count.Add(1)
		time.Sleep(cad.next(rng))
	}
}

// cadence is the base interval plus an optional uniform random extra delay.
type cadence struct {
	interval      time.Duration
	randomEnabled bool
	extraMin      time.Duration
	extraMax      time.Duration
}

// next draws the sleep before the following action. A max below min can
// occur transiently while the range is being edited in the UI; it is treated
// as a zero-width range at min.
func (c cadence) next(rng *rand.Rand) time.Duration {
	if !c.randomEnabled {
		return c.interval
	}
	min, max := c.extraMin, c.extraMax
	if max < min {
		max = min
	}
	extra := min
	if max > min {
		extra += time.Duration(rng.Int63n(int64(max-min) + 1))
	}
	return c.interval + extra
}
