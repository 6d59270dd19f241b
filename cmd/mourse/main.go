package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/sakura6264/mourse/internal/core/runner"
)

const hotkeyRetrigger = 200 * time.Millisecond

type config struct {
	clickHotkey    uint16
	moveHotkey     uint16
	clickHotkeyRaw string
	moveHotkeyRaw  string
	backend        string

	// CLI-mode overrides; zero values mean "use saved settings".
	clickIntervalMs uint64
	clickButton     string
	moveIntervalMs  uint64
	maxDistance     int

	cli          bool
	startClicker bool
	startMover   bool
	listDevices  bool
	logLevel     slog.Level
}

type lineSinkWriter struct {
	sink  func(line string)
	mu    sync.Mutex
	lines bytes.Buffer
}

func (w *lineSinkWriter) Write(p []byte) (int, error) {
	if w.sink == nil {
		return len(p), nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	total := len(p)
	for len(p) > 0 {
		idx := bytes.IndexByte(p, '\n')
		if idx == -1 {
			_, _ = w.lines.Write(p)
			break
		}
		_, _ = w.lines.Write(p[:idx])
		line := strings.TrimSpace(w.lines.String())
		w.lines.Reset()
		if line != "" {
			w.sink(line)
		}
		p = p[idx+1:]
	}
	return total, nil
}

func newSlogLogger(level slog.Level, sink func(line string)) *slog.Logger {
	out := io.Writer(os.Stderr)
	if sink != nil {
		out = io.MultiWriter(os.Stderr, &lineSinkWriter{sink: sink})
	}

	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	}))
}

func debugLogsEnabled() bool {
	return strings.TrimSpace(os.Getenv("DEBUG")) == "1"
}

func parseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warning", "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid --log-level %q (expected debug|info|warning|error)", value)
	}
}

func parseConfig(args []string) (config, error) {
	cfg := config{}
	flags := flag.NewFlagSet("mourse", flag.ContinueOnError)
	flags.SetOutput(os.Stderr)

	defaultClickKey, defaultMoveKey := defaultHotkeys()

	var clickHotkeyRaw string
	var moveHotkeyRaw string
	var backendRaw string
	var buttonRaw string
	var logLevelRaw string
	var uiMode bool
	var cliMode bool

	flags.StringVar(&clickHotkeyRaw, "hotkey-click", defaultClickKey, "Global hotkey toggling the auto clicker, e.g. KEY_F6. Empty disables.")
	flags.StringVar(&moveHotkeyRaw, "hotkey-move", defaultMoveKey, "Global hotkey toggling the mouse mover, e.g. KEY_F7. Empty disables.")
	flags.StringVar(&backendRaw, "backend", "auto", "Input backend. Linux: auto|wayland|x11|robot. Windows: auto|windows|robot. Other: auto|robot.")
	flags.Uint64Var(&cfg.clickIntervalMs, "click-interval-ms", 0, "Override the saved click interval in ms (CLI mode).")
	flags.StringVar(&buttonRaw, "click-button", "", "Override the saved mouse button: left|middle|right (CLI mode).")
	flags.Uint64Var(&cfg.moveIntervalMs, "move-interval-ms", 0, "Override the saved move interval in ms (CLI mode).")
	flags.IntVar(&cfg.maxDistance, "max-distance", -1, "Override the saved max move distance in pixels (CLI mode).")
	flags.BoolVar(&cfg.startClicker, "click", false, "Start the auto clicker immediately in CLI mode.")
	flags.BoolVar(&cfg.startMover, "move", false, "Start the mouse mover immediately in CLI mode.")
	flags.BoolVar(&cfg.listDevices, "list-devices", false, "Print available input devices and exit.")
	flags.BoolVar(&uiMode, "ui", true, "Start desktop GUI (Fyne) by default. Use --ui=false or --cli for terminal mode.")
	flags.BoolVar(&cliMode, "cli", false, "Force terminal mode (disables GUI).")
	flags.StringVar(&logLevelRaw, "log-level", "info", "Log verbosity (default: info). Allowed: debug, info, warning, error.")

	if err := flags.Parse(args); err != nil {
		return cfg, err
	}
	if flags.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected arguments: %s", strings.Join(flags.Args(), " "))
	}
	if cfg.maxDistance < -1 {
		return cfg, fmt.Errorf("--max-distance must be >= 0")
	}
	if buttonRaw != "" {
		if _, err := runner.ParseButton(buttonRaw); err != nil {
			return cfg, err
		}
	}
	cfg.clickButton = buttonRaw
	cfg.cli = cliMode || !uiMode

	clickHotkey, err := parseHotkeyFlag(clickHotkeyRaw)
	if err != nil {
		return cfg, err
	}
	moveHotkey, err := parseHotkeyFlag(moveHotkeyRaw)
	if err != nil {
		return cfg, err
	}
	if clickHotkey != 0 && clickHotkey == moveHotkey {
		return cfg, fmt.Errorf("--hotkey-move must be different from --hotkey-click")
	}

	parsedLevel, err := parseLogLevel(logLevelRaw)
	if err != nil {
		return cfg, err
	}
	backendChoice, err := parseBackendChoice(backendRaw)
	if err != nil {
		return cfg, err
	}

	cfg.clickHotkey = clickHotkey
	cfg.moveHotkey = moveHotkey
	cfg.clickHotkeyRaw = clickHotkeyRaw
	cfg.moveHotkeyRaw = moveHotkeyRaw
	cfg.backend = backendChoice
	cfg.logLevel = parsedLevel
	return cfg, nil
}

// parseHotkeyFlag treats the empty string as a disabled hotkey.
func parseHotkeyFlag(value string) (uint16, error) {
	if strings.TrimSpace(value) == "" {
		return 0, nil
	}
	return parseHotkeyCode(value)
}

func isPermissionError(err error) bool {
	return errors.Is(err, os.ErrPermission) || errors.Is(err, syscall.EPERM) || errors.Is(err, syscall.EACCES)
}

func applyOverrides(st *settings, cfg config) {
	if cfg.clickIntervalMs > 0 {
		st.Clicker.IntervalMs = cfg.clickIntervalMs
	}
	if cfg.clickButton != "" {
		if button, err := runner.ParseButton(cfg.clickButton); err == nil {
			st.Clicker.Button = button
		}
	}
	if cfg.moveIntervalMs > 0 {
		st.Mover.IntervalMs = cfg.moveIntervalMs
	}
	if cfg.maxDistance >= 0 {
		st.Mover.MaxDistance = cfg.maxDistance
	}
}

func runCLI(cfg config, stderr io.Writer) int {
	logger := newSlogLogger(cfg.logLevel, nil)

	st, err := loadSettings()
	if err != nil {
		logger.Warn("Failed to load settings; using defaults", "err", err)
	}
	applyOverrides(&st, cfg)

	backend, err := newInputBackend(cfg.backend, []uint16{cfg.clickHotkey, cfg.moveHotkey}, logger)
	if err != nil {
		if isPermissionError(err) {
			fmt.Fprintln(stderr, permissionDeniedHint())
			return 1
		}
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer backend.close()

	clicker, err := runner.NewClicker(st.Clicker, backend.injector, logger)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	mover, err := runner.NewMover(st.Mover, backend.injector, logger)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if !cfg.startClicker && !cfg.startMover {
		cfg.startClicker = true
	}
	if cfg.startClicker {
		clicker.Start()
		logger.Info("Auto clicker started",
			"interval_ms", st.Clicker.IntervalMs,
			"button", string(st.Clicker.Button),
		)
	}
	if cfg.startMover {
		mover.Start()
		logger.Info("Mouse mover started",
			"interval_ms", st.Mover.IntervalMs,
			"max_distance", st.Mover.MaxDistance,
		)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if backend.keys != nil {
		poller := runner.NewHotkeyPoller(backend.keys, hotkeyRetrigger)
		poller.Bind(cfg.clickHotkey, func() { toggle(clicker.IsRunning, clicker.Start, clicker.Stop) })
		poller.Bind(cfg.moveHotkey, func() { toggle(mover.IsRunning, mover.Start, mover.Stop) })
		go pollHotkeys(ctx, poller)

		if cfg.clickHotkey != 0 {
			logger.Info("Hotkey", "action", "toggle clicker", "key", formatCodeName(cfg.clickHotkey))
		}
		if cfg.moveHotkey != 0 {
			logger.Info("Hotkey", "action", "toggle mover", "key", formatCodeName(cfg.moveHotkey))
		}
	} else if cfg.clickHotkey != 0 || cfg.moveHotkey != 0 {
		logger.Warn("Global hotkeys are unavailable on this backend")
	}
	logger.Info("Press Ctrl+C to stop")

	<-ctx.Done()

	clicker.StopWait()
	mover.StopWait()
	logger.Info("Totals", "clicks", clicker.Clicks(), "moves", mover.Moves())
	return 0
}

func toggle(isRunning func() bool, start, stop func()) {
	if isRunning() {
		stop()
		return
	}
	start()
}

func pollHotkeys(ctx context.Context, poller *runner.HotkeyPoller) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			poller.Poll()
		}
	}
}

func run(args []string, stderr io.Writer) int {
	cfg, err := parseConfig(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	if cfg.listDevices {
		if err := listInputDevices(cfg.backend); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}

	if cfg.cli {
		return runCLI(cfg, stderr)
	}

	if err := runUI(cfg); err != nil {
		if isPermissionError(err) {
			fmt.Fprintln(stderr, permissionDeniedHint())
			return 1
		}
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}
