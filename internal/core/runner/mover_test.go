package runner

import (
	"testing"
	"time"
)

func testMoverConfig(intervalMs uint64, maxDistance int) MoverConfig {
	cfg := DefaultMoverConfig()
	cfg.IntervalMs = intervalMs
	cfg.MaxDistance = maxDistance
	return cfg
}

func newTestMover(t *testing.T, cfg MoverConfig) (*Mover, *recordingInjector) {
	t.Helper()
	injector := &recordingInjector{}
	mover, err := NewMover(cfg, injector, noopLogger{})
	if err != nil {
		t.Fatalf("NewMover() error = %v", err)
	}
	return mover, injector
}

func TestNewMoverRejectsInvalidConfig(t *testing.T) {
	injector := &recordingInjector{}

	if _, err := NewMover(testMoverConfig(0, 10), injector, noopLogger{}); err == nil {
		t.Fatalf("expected error for zero interval")
	}
	if _, err := NewMover(testMoverConfig(100, -1), injector, noopLogger{}); err == nil {
		t.Fatalf("expected error for negative max distance")
	}
}

func TestMoverOffsetsStayWithinBound(t *testing.T) {
	mover, injector := newTestMover(t, testMoverConfig(2, 7))

	mover.Start()
	time.Sleep(60 * time.Millisecond)
	mover.StopWait()

	moves := injector.moveSnapshot()
	if len(moves) == 0 {
		t.Fatalf("expected moves to be injected")
	}
	for _, m := range moves {
		if m.dx < -7 || m.dx > 7 || m.dy < -7 || m.dy > 7 {
			t.Fatalf("offset (%d, %d) outside [-7, 7]", m.dx, m.dy)
		}
	}
}

func TestMoverZeroDistanceStillCounts(t *testing.T) {
	mover, injector := newTestMover(t, testMoverConfig(5, 0))

	mover.Start()
	time.Sleep(40 * time.Millisecond)
	mover.StopWait()

	if mover.Moves() == 0 {
		t.Fatalf("expected zero-distance moves to count as actions")
	}
	for _, m := range injector.moveSnapshot() {
		if m.dx != 0 || m.dy != 0 {
			t.Fatalf("expected (0, 0) displacement, got (%d, %d)", m.dx, m.dy)
		}
	}
}

func TestMoverResetMoves(t *testing.T) {
	mover, _ := newTestMover(t, testMoverConfig(5, 3))

	mover.Start()
	time.Sleep(40 * time.Millisecond)
	mover.StopWait()

	if mover.Moves() == 0 {
		t.Fatalf("expected moves after run")
	}
	mover.ResetMoves()
	if mover.Moves() != 0 {
		t.Fatalf("expected zero after reset, got %d", mover.Moves())
	}
}

func TestRandomOffsetInclusiveRange(t *testing.T) {
	rng := newTestRand()

	seenMin, seenMax := false, false
	for i := 0; i < 10_000; i++ {
		got := randomOffset(rng, 3)
		if got < -3 || got > 3 {
			t.Fatalf("randomOffset out of range: %d", got)
		}
		if got == -3 {
			seenMin = true
		}
		if got == 3 {
			seenMax = true
		}
	}
	if !seenMin || !seenMax {
		t.Fatalf("expected both range endpoints to occur (min=%v max=%v)", seenMin, seenMax)
	}

	if got := randomOffset(rng, 0); got != 0 {
		t.Fatalf("randomOffset(0) = %d, want 0", got)
	}
}
