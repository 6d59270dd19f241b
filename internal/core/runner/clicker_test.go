package runner

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

type press struct {
	button Button
}

type move struct {
	dx, dy int
}

type recordingInjector struct {
	mu      sync.Mutex
	presses []press
	moves   []move
	fail    bool
}

func (r *recordingInjector) PressAndRelease(button Button) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return fmt.Errorf("press rejected")
	}
	r.presses = append(r.presses, press{button: button})
	return nil
}

func (r *recordingInjector) MoveRelative(dx, dy int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return fmt.Errorf("move rejected")
	}
	r.moves = append(r.moves, move{dx: dx, dy: dy})
	return nil
}

func (r *recordingInjector) pressSnapshot() []press {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]press, len(r.presses))
	copy(out, r.presses)
	return out
}

func (r *recordingInjector) moveSnapshot() []move {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]move, len(r.moves))
	copy(out, r.moves)
	return out
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

func testClickerConfig(intervalMs uint64) ClickerConfig {
	cfg := DefaultClickerConfig()
	cfg.IntervalMs = intervalMs
	return cfg
}

func newTestClicker(t *testing.T, cfg ClickerConfig) (*Clicker, *recordingInjector) {
	t.Helper()
	injector := &recordingInjector{}
	clicker, err := NewClicker(cfg, injector, noopLogger{})
	if err != nil {
		t.Fatalf("NewClicker() error = %v", err)
	}
	return clicker, injector
}

func TestNewClickerRejectsInvalidConfig(t *testing.T) {
	injector := &recordingInjector{}

	if _, err := NewClicker(testClickerConfig(0), injector, noopLogger{}); err == nil {
		t.Fatalf("expected error for zero interval")
	}

	cfg := testClickerConfig(100)
	cfg.Button = Button("fourth")
	if _, err := NewClicker(cfg, injector, noopLogger{}); err == nil {
		t.Fatalf("expected error for unknown button")
	}

	if _, err := NewClicker(testClickerConfig(100), nil, noopLogger{}); err == nil {
		t.Fatalf("expected error for nil injector")
	}
}

func TestClickerCountsAfterStart(t *testing.T) {
	clicker, injector := newTestClicker(t, testClickerConfig(10))

	if clicker.IsRunning() {
		t.Fatalf("expected not running before Start")
	}

	clicker.Start()
	if !clicker.IsRunning() {
		t.Fatalf("expected running after Start")
	}

	time.Sleep(60 * time.Millisecond)
	clicker.StopWait()

	if clicker.IsRunning() {
		t.Fatalf("expected not running after StopWait")
	}
	if clicker.Clicks() == 0 {
		t.Fatalf("expected clicks > 0 after one interval")
	}
	for _, p := range injector.pressSnapshot() {
		if p.button != ButtonLeft {
			t.Fatalf("unexpected button %q", p.button)
		}
	}
}

func TestStopThenStartResumesCounting(t *testing.T) {
	clicker, _ := newTestClicker(t, testClickerConfig(5))

	clicker.Start()
	time.Sleep(40 * time.Millisecond)
	clicker.StopWait()

	first := clicker.Clicks()
	if first == 0 {
		t.Fatalf("expected clicks after first run")
	}

	clicker.Start()
	time.Sleep(40 * time.Millisecond)
	clicker.StopWait()

	if clicker.Clicks() <= first {
		t.Fatalf("expected count to resume past %d, got %d", first, clicker.Clicks())
	}
}

func TestResetClicks(t *testing.T) {
	clicker, _ := newTestClicker(t, testClickerConfig(5))

	clicker.Start()
	time.Sleep(30 * time.Millisecond)
	clicker.StopWait()

	if clicker.Clicks() == 0 {
		t.Fatalf("expected clicks before reset")
	}

	clicker.ResetClicks()
	if clicker.Clicks() != 0 {
		t.Fatalf("expected zero after reset, got %d", clicker.Clicks())
	}
}

func TestDoubleStartSpawnsOneLoop(t *testing.T) {
	clicker, _ := newTestClicker(t, testClickerConfig(20))

	clicker.Start()
	clicker.Start()
	time.Sleep(210 * time.Millisecond)
	clicker.StopWait()

	// One loop at 20 ms produces roughly 10 clicks over 210 ms; two
	// overlapping loops would produce roughly 20.
	clicks := clicker.Clicks()
	if clicks == 0 {
		t.Fatalf("expected clicks after Start")
	}
	if clicks > 15 {
		t.Fatalf("click rate suggests more than one loop: %d clicks in 210ms at 20ms interval", clicks)
	}
}

func TestClickerRateMatchesInterval(t *testing.T) {
	clicker, _ := newTestClicker(t, testClickerConfig(50))

	clicker.Start()
	time.Sleep(260 * time.Millisecond)
	clicker.StopWait()

	clicks := clicker.Clicks()
	if clicks < 3 || clicks > 8 {
		t.Fatalf("expected roughly 5 clicks at 50ms over 260ms, got %d", clicks)
	}
}

func TestSetConfigDoesNotAffectRunningLoop(t *testing.T) {
	clicker, _ := newTestClicker(t, testClickerConfig(5))

	clicker.Start()
	time.Sleep(30 * time.Millisecond)

	slow := testClickerConfig(10_000)
	if err := clicker.SetConfig(slow); err != nil {
		t.Fatalf("SetConfig() error = %v", err)
	}

	before := clicker.Clicks()
	time.Sleep(50 * time.Millisecond)
	after := clicker.Clicks()
	clicker.StopWait()

	if after <= before {
		t.Fatalf("expected running loop to keep its snapshot cadence, count stuck at %d", before)
	}
	if got := clicker.Config().IntervalMs; got != 10_000 {
		t.Fatalf("Config().IntervalMs = %d, want 10000", got)
	}
}

func TestInjectionFailureKeepsLoopAlive(t *testing.T) {
	injector := &recordingInjector{fail: true}
	clicker, err := NewClicker(testClickerConfig(5), injector, noopLogger{})
	if err != nil {
		t.Fatalf("NewClicker() error = %v", err)
	}

	clicker.Start()
	time.Sleep(40 * time.Millisecond)
	clicker.StopWait()

	if clicker.Clicks() == 0 {
		t.Fatalf("expected failed injections to still count as attempted actions")
	}
}

func TestSetConfigRejectsInvalid(t *testing.T) {
	clicker, _ := newTestClicker(t, testClickerConfig(100))

	if err := clicker.SetConfig(testClickerConfig(0)); err == nil {
		t.Fatalf("expected error for zero interval")
	}
	if got := clicker.Config().IntervalMs; got != 100 {
		t.Fatalf("rejected config must not be stored, IntervalMs = %d", got)
	}
}
