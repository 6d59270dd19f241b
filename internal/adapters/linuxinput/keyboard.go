//go:build linux

package linuxinput

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	evdev "github.com/holoplot/go-evdev"
)

// KeyboardWatcher tracks the held/released state of a fixed set of key codes
// by reading every non-virtual input device that exposes them. It backs the
// global hotkey polling on the uinput backend.
type KeyboardWatcher struct {
	devices []*evdev.InputDevice
	pressed map[uint16]*atomic.Bool

	stopCh    chan struct{}
	stopOnce  sync.Once
	readersWG sync.WaitGroup
}

func NewKeyboardWatcher(codes []uint16) (*KeyboardWatcher, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("no key codes to watch")
	}

	devices, err := openKeyDevices()
	if err != nil {
		return nil, err
	}

	pressed := make(map[uint16]*atomic.Bool, len(codes))
	for _, code := range codes {
		pressed[code] = &atomic.Bool{}
	}

	w := &KeyboardWatcher{
		devices: devices,
		pressed: pressed,
		stopCh:  make(chan struct{}),
	}
	for _, dev := range devices {
		w.readersWG.Add(1)
		go w.readLoop(dev)
	}
	return w, nil
}

func (w *KeyboardWatcher) KeyDown(code uint16) bool {
	flag, ok := w.pressed[code]
	return ok && flag.Load()
}

func (w *KeyboardWatcher) Close() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		for _, dev := range w.devices {
			_ = dev.Close()
		}
		w.readersWG.Wait()
	})
}

func (w *KeyboardWatcher) readLoop(dev *evdev.InputDevice) {
	defer w.readersWG.Done()

	for {
		events, err := dev.ReadSlice(64)
		if err != nil {
			if w.stopped() || isDeviceClosedError(err) {
				return
			}
			if isWouldBlockError(err) {
				if !w.sleepWithStop(10 * time.Millisecond) {
					return
				}
				continue
			}
			if !w.sleepWithStop(100 * time.Millisecond) {
				return
			}
			continue
		}

		for _, event := range events {
			if event.Type != evdev.EV_KEY {
				continue
			}
			flag, ok := w.pressed[uint16(event.Code)]
			if !ok {
				continue
			}
			// Value 2 is key repeat, which still means held down.
			flag.Store(event.Value != 0)
		}
	}
}

func (w *KeyboardWatcher) stopped() bool {
	select {
	case <-w.stopCh:
		return true
	default:
		return false
	}
}

func (w *KeyboardWatcher) sleepWithStop(duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-w.stopCh:
		return false
	case <-timer.C:
		return true
	}
}

func openKeyDevices() ([]*evdev.InputDevice, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, err
	}
	sort.Slice(paths, func(i, j int) bool {
		return paths[i].Path < paths[j].Path
	})

	devices := make([]*evdev.InputDevice, 0, len(paths))
	for _, path := range paths {
		dev, err := openInputDevice(path.Path)
		if err != nil {
			continue
		}

		name := path.Name
		if actualName, nameErr := dev.Name(); nameErr == nil && actualName != "" {
			name = actualName
		}
		if deviceIsVirtual(dev, name) || len(dev.CapableEvents(evdev.EV_KEY)) == 0 {
			_ = dev.Close()
			continue
		}
		if err := dev.NonBlock(); err != nil {
			_ = dev.Close()
			continue
		}
		devices = append(devices, dev)
	}

	if len(devices) == 0 {
		return nil, fmt.Errorf("no readable input devices with key events found")
	}
	return devices, nil
}

func isDeviceClosedError(err error) bool {
	return errors.Is(err, syscall.EBADF) || errors.Is(err, syscall.ENODEV)
}

func isWouldBlockError(err error) bool {
	return errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK)
}
