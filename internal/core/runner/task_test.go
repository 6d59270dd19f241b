package runner

import (
	"math/rand"
	"testing"
	"time"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestCadenceWithoutRandomDelay(t *testing.T) {
	cad := cadence{interval: 50 * time.Millisecond}
	rng := newTestRand()

	for i := 0; i < 100; i++ {
		if got := cad.next(rng); got != 50*time.Millisecond {
			t.Fatalf("next() = %v, want 50ms", got)
		}
	}
}

func TestCadenceDegenerateRangeIsConstant(t *testing.T) {
	cad := cadence{
		interval:      30 * time.Millisecond,
		randomEnabled: true,
		extraMin:      10 * time.Millisecond,
		extraMax:      10 * time.Millisecond,
	}
	rng := newTestRand()

	for i := 0; i < 1000; i++ {
		if got := cad.next(rng); got != 40*time.Millisecond {
			t.Fatalf("next() = %v, want interval + 10ms", got)
		}
	}
}

func TestCadenceDrawStaysInRange(t *testing.T) {
	cad := cadence{
		interval:      20 * time.Millisecond,
		randomEnabled: true,
		extraMin:      0,
		extraMax:      100 * time.Millisecond,
	}
	rng := newTestRand()

	low := 20 * time.Millisecond
	high := 120 * time.Millisecond
	seenAboveBase := false
	for i := 0; i < 1000; i++ {
		got := cad.next(rng)
		if got < low || got > high {
			t.Fatalf("next() = %v, want within [%v, %v]", got, low, high)
		}
		if got > low {
			seenAboveBase = true
		}
	}
	if !seenAboveBase {
		t.Fatalf("expected at least one draw above the base interval")
	}
}

func TestCadenceInvertedRangeClampsToMin(t *testing.T) {
	// max < min happens transiently while the range is edited in the UI.
	cad := cadence{
		interval:      10 * time.Millisecond,
		randomEnabled: true,
		extraMin:      80 * time.Millisecond,
		extraMax:      20 * time.Millisecond,
	}
	rng := newTestRand()

	for i := 0; i < 1000; i++ {
		if got := cad.next(rng); got != 90*time.Millisecond {
			t.Fatalf("next() = %v, want interval + min for inverted range", got)
		}
	}
}

func TestTaskStartIsExclusive(t *testing.T) {
	task := &task{name: "test", logger: noopLogger{}}
	cad := cadence{interval: 5 * time.Millisecond}

	if !task.start(func(*rand.Rand) error { return nil }, cad) {
		t.Fatalf("first start should win the flag transition")
	}
	if task.start(func(*rand.Rand) error { return nil }, cad) {
		t.Fatalf("second start should be a no-op while running")
	}
	task.stopWait()

	if !task.start(func(*rand.Rand) error { return nil }, cad) {
		t.Fatalf("start should succeed again after stop")
	}
	task.stopWait()
}

func TestStopWaitBlocksUntilLoopExit(t *testing.T) {
	task := &task{name: "test", logger: noopLogger{}}

	inFlight := make(chan struct{}, 1)
	task.start(func(*rand.Rand) error {
		select {
		case inFlight <- struct{}{}:
		default:
		}
		return nil
	}, cadence{interval: 10 * time.Millisecond})

	<-inFlight
	task.stopWait()

	count := task.actionCount()
	time.Sleep(30 * time.Millisecond)
	if got := task.actionCount(); got != count {
		t.Fatalf("loop still running after stopWait: count moved from %d to %d", count, got)
	}
}
