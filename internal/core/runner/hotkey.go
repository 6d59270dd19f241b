package runner

import "time"

// KeyState reports whether a key is currently held down. Codes use the
// Linux input-event namespace (KEY_F6 = 64 and so on) on every platform;
// each adapter translates to its native representation.
type KeyState interface {
	KeyDown(code uint16) bool
}

type hotkeyBinding struct {
	code     uint16
	onToggle func()
}

// HotkeyPoller turns held-key state into debounced toggle callbacks. It is
// polled once per UI frame from a single goroutine; a shared timestamp
// enforces the minimum re-trigger interval across all bindings, so holding
// a key re-toggles no faster than that interval.
type HotkeyPoller struct {
	state     KeyState
	retrigger time.Duration
	last      time.Time
	bindings  []hotkeyBinding
}

func NewHotkeyPoller(state KeyState, retrigger time.Duration) *HotkeyPoller {
	return &HotkeyPoller{state: state, retrigger: retrigger}
}

// Bind registers a toggle callback for a key code. A zero code is ignored,
// which is how platforms without global key polling disable a hotkey.
func (p *HotkeyPoller) Bind(code uint16, onToggle func()) {
	if code == 0 || onToggle == nil {
		return
	}
	p.bindings = append(p.bindings, hotkeyBinding{code: code, onToggle: onToggle})
}

func (p *HotkeyPoller) Poll() {
	if p.state == nil {
		return
	}
	now := time.Now()
	for _, binding := range p.bindings {
		if !p.state.KeyDown(binding.code) {
			continue
		}
		if now.Sub(p.last) < p.retrigger {
			continue
		}
		p.last = now
		binding.onToggle()
	}
}
