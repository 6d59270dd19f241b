package main

import (
	"github.com/sakura6264/mourse/internal/core/runner"
)

// inputBackend bundles what the platform glue hands to the runners: an
// injector, an optional global key-state source, and a teardown hook.
type inputBackend struct {
	injector runner.Injector
	keys     runner.KeyState
	close    func()
}
