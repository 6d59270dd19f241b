package runner

import (
	"sync"
	"testing"
	"time"
)

type fakeKeyState struct {
	mu   sync.Mutex
	down map[uint16]bool
}

func (f *fakeKeyState) KeyDown(code uint16) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.down[code]
}

func (f *fakeKeyState) set(code uint16, down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down == nil {
		f.down = make(map[uint16]bool)
	}
	f.down[code] = down
}

func TestHotkeyPollerTogglesOnPress(t *testing.T) {
	state := &fakeKeyState{}
	poller := NewHotkeyPoller(state, 50*time.Millisecond)

	toggles := 0
	poller.Bind(64, func() { toggles++ })

	poller.Poll()
	if toggles != 0 {
		t.Fatalf("expected no toggle while key is up")
	}

	state.set(64, true)
	poller.Poll()
	if toggles != 1 {
		t.Fatalf("expected one toggle on press, got %d", toggles)
	}
}

func TestHotkeyPollerDebouncesHeldKey(t *testing.T) {
	state := &fakeKeyState{}
	poller := NewHotkeyPoller(state, 60*time.Millisecond)

	toggles := 0
	poller.Bind(64, func() { toggles++ })

	state.set(64, true)
	poller.Poll()
	poller.Poll()
	poller.Poll()
	if toggles != 1 {
		t.Fatalf("held key must not re-toggle within the interval, got %d toggles", toggles)
	}

	time.Sleep(80 * time.Millisecond)
	poller.Poll()
	if toggles != 2 {
		t.Fatalf("expected re-toggle after the interval, got %d", toggles)
	}
}

func TestHotkeyPollerSharesDebounceAcrossBindings(t *testing.T) {
	state := &fakeKeyState{}
	poller := NewHotkeyPoller(state, 60*time.Millisecond)

	var clicks, moves int
	poller.Bind(64, func() { clicks++ })
	poller.Bind(65, func() { moves++ })

	state.set(64, true)
	state.set(65, true)
	poller.Poll()

	if clicks+moves != 1 {
		t.Fatalf("simultaneous hotkeys share one debounce window, got %d toggles", clicks+moves)
	}
}

func TestHotkeyPollerIgnoresNilStateAndZeroCode(t *testing.T) {
	poller := NewHotkeyPoller(nil, 60*time.Millisecond)
	poller.Bind(64, func() { t.Fatalf("binding fired without key state") })
	poller.Poll()

	state := &fakeKeyState{}
	poller = NewHotkeyPoller(state, 60*time.Millisecond)
	poller.Bind(0, func() { t.Fatalf("zero code must stay unbound") })
	state.set(0, true)
	poller.Poll()
}
