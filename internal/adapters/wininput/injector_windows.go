//go:build windows

package wininput

import (
	"fmt"
	"syscall"
	"unsafe"

	"github.com/sakura6264/mourse/internal/core/runner"
)

const (
	inputMouse            = 0
	mouseeventfMove       = 0x0001
	mouseeventfLeftDown   = 0x0002
	mouseeventfLeftUp     = 0x0004
	mouseeventfRightDown  = 0x0008
	mouseeventfRightUp    = 0x0010
	mouseeventfMiddleDown = 0x0020
	mouseeventfMiddleUp   = 0x0040
)

var (
	user32 = syscall.NewLazyDLL("user32.dll")

	procSendInput        = user32.NewProc("SendInput")
	procGetAsyncKeyState = user32.NewProc("GetAsyncKeyState")
)

type mouseInput struct {
	Dx          int32
	Dy          int32
	MouseData   uint32
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

type input struct {
	Type uint32
	Mi   mouseInput
}

type Injector struct{}

func NewInjector() *Injector {
	return &Injector{}
}

func (i *Injector) PressAndRelease(button runner.Button) error {
	down, up, err := buttonFlags(button)
	if err != nil {
		return err
	}
	inputs := []input{
		{Type: inputMouse, Mi: mouseInput{DwFlags: down}},
		{Type: inputMouse, Mi: mouseInput{DwFlags: up}},
	}
	return sendInputs(inputs)
}

func (i *Injector) MoveRelative(dx, dy int) error {
	inputs := []input{
		{Type: inputMouse, Mi: mouseInput{Dx: int32(dx), Dy: int32(dy), DwFlags: mouseeventfMove}},
	}
	return sendInputs(inputs)
}

func (i *Injector) Close() error {
	return nil
}

func sendInputs(inputs []input) error {
	sent, _, callErr := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if sent != uintptr(len(inputs)) {
		if callErr != nil && callErr != syscall.Errno(0) {
			return callErr
		}
		return fmt.Errorf("SendInput sent %d of %d inputs", sent, len(inputs))
	}
	return nil
}

func buttonFlags(button runner.Button) (down, up uint32, err error) {
	switch button {
	case runner.ButtonLeft:
		return mouseeventfLeftDown, mouseeventfLeftUp, nil
	case runner.ButtonMiddle:
		return mouseeventfMiddleDown, mouseeventfMiddleUp, nil
	case runner.ButtonRight:
		return mouseeventfRightDown, mouseeventfRightUp, nil
	default:
		return 0, 0, fmt.Errorf("unknown mouse button %q", string(button))
	}
}

// KeyState polls GetAsyncKeyState for the codes the table can map to
// virtual-key codes.
type KeyState struct{}

func NewKeyState() *KeyState {
	return &KeyState{}
}

func (k *KeyState) KeyDown(code uint16) bool {
	vk, ok := CodeToVK(code)
	if !ok {
		return false
	}
	state, _, _ := procGetAsyncKeyState.Call(uintptr(vk))
	return uint16(state)&0x8000 != 0
}
