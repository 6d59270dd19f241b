// Package robotinput injects mouse input through robotgo. It works on every
// desktop platform robotgo supports and is the fallback backend where no
// native adapter exists.
package robotinput

import (
	"fmt"

	"github.com/go-vgo/robotgo"

	"github.com/sakura6264/mourse/internal/core/runner"

	_ "github.com/go-vgo/robotgo/base"  // Blank import for robotgo C sources
	_ "github.com/go-vgo/robotgo/mouse" // Blank import for robotgo C sources
)

type Injector struct{}

func NewInjector() *Injector {
	return &Injector{}
}

func (i *Injector) PressAndRelease(button runner.Button) error {
	name, err := buttonName(button)
	if err != nil {
		return err
	}
	robotgo.Click(name)
	return nil
}

func (i *Injector) MoveRelative(dx, dy int) error {
	robotgo.MoveRelative(dx, dy)
	return nil
}

func (i *Injector) Close() error {
	return nil
}

// buttonName maps to robotgo's naming, which calls the middle button "center".
func buttonName(button runner.Button) (string, error) {
	switch button {
	case runner.ButtonLeft:
		return "left", nil
	case runner.ButtonMiddle:
		return "center", nil
	case runner.ButtonRight:
		return "right", nil
	default:
		return "", fmt.Errorf("unknown mouse button %q", string(button))
	}
}
