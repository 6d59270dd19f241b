//go:build linux

// Package x11input injects mouse input through the XTest extension and polls
// keyboard state with QueryKeymap. It serves X11 sessions, where uinput
// access is usually not required.
package x11input

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/sakura6264/mourse/internal/adapters/linuxinput"
	"github.com/sakura6264/mourse/internal/core/runner"
)

// Backend shares one X connection between the injector and the key-state
// poller.
type Backend struct {
	xu      *xgbutil.XUtil
	conn    *xgb.Conn
	rootWin xproto.Window

	injectMu sync.Mutex

	keycodeMu    sync.Mutex
	keycodeCache map[uint16][]xproto.Keycode

	closeOnce sync.Once
}

func NewBackend() (*Backend, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}
	conn := xu.Conn()
	if conn == nil {
		return nil, fmt.Errorf("failed to open X11 connection")
	}
	if err := xtest.Init(conn); err != nil {
		conn.Close()
		return nil, err
	}
	keybind.Initialize(xu)

	return &Backend{
		xu:           xu,
		conn:         conn,
		rootWin:      xu.RootWin(),
		keycodeCache: make(map[uint16][]xproto.Keycode),
	}, nil
}

func (b *Backend) PressAndRelease(button runner.Button) error {
	index, err := buttonIndex(button)
	if err != nil {
		return err
	}

	b.injectMu.Lock()
	defer b.injectMu.Unlock()

	if err := b.fakeButton(xproto.ButtonPress, index); err != nil {
		return err
	}
	if err := b.fakeButton(xproto.ButtonRelease, index); err != nil {
		return err
	}
	b.conn.Sync()
	return nil
}

func (b *Backend) MoveRelative(dx, dy int) error {
	b.injectMu.Lock()
	defer b.injectMu.Unlock()

	query, err := xproto.QueryPointer(b.conn, b.rootWin).Reply()
	if err != nil {
		return err
	}
	nextX := clampToInt16(int(query.RootX) + dx)
	nextY := clampToInt16(int(query.RootY) + dy)
	if err := xproto.WarpPointerChecked(
		b.conn,
		xproto.WindowNone,
		b.rootWin,
		0,
		0,
		0,
		0,
		nextX,
		nextY,
	).Check(); err != nil {
		return err
	}
	b.conn.Sync()
	return nil
}

// KeyDown reports whether any X keycode bound to the given Linux key code is
// currently held, via a QueryKeymap round trip.
func (b *Backend) KeyDown(code uint16) bool {
	keycodes := b.resolveKeycodes(code)
	if len(keycodes) == 0 {
		return false
	}

	reply, err := xproto.QueryKeymap(b.conn).Reply()
	if err != nil {
		return false
	}
	for _, kc := range keycodes {
		if reply.Keys[kc>>3]&(1<<(kc&7)) != 0 {
			return true
		}
	}
	return false
}

func (b *Backend) Close() error {
	b.closeOnce.Do(func() {
		b.conn.Close()
	})
	return nil
}

func (b *Backend) fakeButton(eventType byte, index xproto.Button) error {
	return xtest.FakeInputChecked(
		b.conn,
		eventType,
		byte(index),
		xproto.TimeCurrentTime,
		b.rootWin,
		0,
		0,
		0,
	).Check()
}

func (b *Backend) resolveKeycodes(code uint16) []xproto.Keycode {
	b.keycodeMu.Lock()
	defer b.keycodeMu.Unlock()

	if cached, ok := b.keycodeCache[code]; ok {
		return cached
	}
	keycodes := keybind.StrToKeycodes(b.xu, keysymName(code))
	b.keycodeCache[code] = keycodes
	return keycodes
}

// keysymName turns a Linux key code into the X keysym string keybind
// understands: KEY_F6 becomes F6.
func keysymName(code uint16) string {
	name := linuxinput.FormatCodeName(code)
	if len(name) > 4 && name[:4] == "KEY_" {
		return name[4:]
	}
	return name
}

func buttonIndex(button runner.Button) (xproto.Button, error) {
	switch button {
	case runner.ButtonLeft:
		return xproto.ButtonIndex1, nil
	case runner.ButtonMiddle:
		return xproto.ButtonIndex2, nil
	case runner.ButtonRight:
		return xproto.ButtonIndex3, nil
	default:
		return 0, fmt.Errorf("unknown mouse button %q", string(button))
	}
}

func clampToInt16(value int) int16 {
	if value < -32768 {
		return -32768
	}
	if value > 32767 {
		return 32767
	}
	return int16(value)
}
