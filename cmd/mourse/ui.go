package main

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/sakura6264/mourse/internal/core/runner"
)

type mourseTheme struct {
	base fyne.Theme
}

func newMourseTheme() fyne.Theme {
	return &mourseTheme{base: theme.DarkTheme()}
}

func (t *mourseTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return color.NRGBA{R: 0x0f, G: 0x12, B: 0x18, A: 0xff}
	case theme.ColorNameHeaderBackground:
		return color.NRGBA{R: 0x14, G: 0x18, B: 0x20, A: 0xff}
	case theme.ColorNameButton:
		return color.NRGBA{R: 0x1e, G: 0x25, B: 0x31, A: 0xff}
	case theme.ColorNameDisabledButton:
		return color.NRGBA{R: 0x17, G: 0x1c, B: 0x24, A: 0xff}
	case theme.ColorNameInputBackground:
		return color.NRGBA{R: 0x15, G: 0x1a, B: 0x22, A: 0xff}
	case theme.ColorNameInputBorder, theme.ColorNameSeparator:
		return color.NRGBA{R: 0x2c, G: 0x35, B: 0x44, A: 0xff}
	case theme.ColorNamePrimary, theme.ColorNameHyperlink:
		return color.NRGBA{R: 0x7a, G: 0xa8, B: 0xff, A: 0xff}
	case theme.ColorNameFocus:
		return color.NRGBA{R: 0x8c, G: 0xb4, B: 0xff, A: 0x66}
	case theme.ColorNameHover:
		return color.NRGBA{R: 0x8c, G: 0xb4, B: 0xff, A: 0x22}
	case theme.ColorNamePressed:
		return color.NRGBA{R: 0x8c, G: 0xb4, B: 0xff, A: 0x40}
	case theme.ColorNameSelection:
		return color.NRGBA{R: 0x7a, G: 0xa8, B: 0xff, A: 0x44}
	case theme.ColorNameForeground:
		return color.NRGBA{R: 0xf1, G: 0xf4, B: 0xf9, A: 0xff}
	case theme.ColorNamePlaceHolder:
		return color.NRGBA{R: 0xa8, G: 0xb2, B: 0xc3, A: 0xff}
	case theme.ColorNameError:
		return color.NRGBA{R: 0xff, G: 0x84, B: 0x84, A: 0xff}
	case theme.ColorNameSuccess:
		return color.NRGBA{R: 0x80, G: 0xd6, B: 0xa9, A: 0xff}
	}
	return t.base.Color(name, variant)
}

func (t *mourseTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *mourseTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

func (t *mourseTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 8
	case theme.SizeNameInnerPadding:
		return 8
	case theme.SizeNameInputRadius:
		return 8
	}
	return t.base.Size(name)
}

func buttonLabel(b runner.Button) string {
	switch b {
	case runner.ButtonMiddle:
		return "Middle"
	case runner.ButtonRight:
		return "Right"
	default:
		return "Left"
	}
}

func hotkeyHint(code uint16) string {
	if code == 0 {
		return ""
	}
	name := formatCodeName(code)
	return " (" + strings.TrimPrefix(name, "KEY_") + ")"
}

func runUI(baseCfg config) error {
	fApp := app.New()
	fApp.Settings().SetTheme(newMourseTheme())

	window := fApp.NewWindow("Mourse")
	window.Resize(fyne.NewSize(820, 560))
	window.SetFixedSize(true)
	window.CenterOnScreen()

	st, loadErr := loadSettings()
	settingsLoadWarning := ""
	if loadErr != nil {
		settingsLoadWarning = fmt.Sprintf("Failed to load saved settings: %v", loadErr)
	}
	applyOverrides(&st, baseCfg)

	errorText := canvas.NewText("", nil)
	errorText.Color = theme.Color(theme.ColorNameError)
	if settingsLoadWarning != "" {
		errorText.Text = settingsLoadWarning
	}
	setError := func(msg string) {
		errorText.Text = msg
		errorText.Refresh()
	}

	logGrid := widget.NewTextGrid()
	logGrid.SetText("")
	logScroll := container.NewVScroll(logGrid)
	logScroll.SetMinSize(fyne.NewSize(0, 150))

	const maxUILogLines = 50
	var logMu sync.Mutex
	logLines := make([]string, 0, maxUILogLines)
	debugLogs := debugLogsEnabled()
	appendLogLine := func(line string) {
		if !debugLogs {
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			return
		}

		logMu.Lock()
		logLines = append(logLines, line)
		if len(logLines) > maxUILogLines {
			logLines = logLines[len(logLines)-maxUILogLines:]
		}
		logText := strings.Join(logLines, "\n")
		logMu.Unlock()

		fyne.Do(func() {
			logGrid.SetText(logText)
			logScroll.ScrollToBottom()
		})
	}
	if settingsLoadWarning != "" {
		appendLogLine("WARNING " + settingsLoadWarning)
	}

	logger := newSlogLogger(baseCfg.logLevel, appendLogLine)

	var stateMu sync.Mutex
	var clicker *runner.Clicker
	var mover *runner.Mover
	var backend *inputBackend
	current := st

	getRunners := func() (*runner.Clicker, *runner.Mover) {
		stateMu.Lock()
		defer stateMu.Unlock()
		return clicker, mover
	}
	getSettings := func() settings {
		stateMu.Lock()
		defer stateMu.Unlock()
		return current
	}
	setSettings := func(s settings) {
		stateMu.Lock()
		current = s
		stateMu.Unlock()
	}

	newValueLabel := func() *widget.Label {
		l := widget.NewLabel("")
		l.Alignment = fyne.TextAlignTrailing
		l.TextStyle = fyne.TextStyle{Bold: true}
		return l
	}
	newSliderControl := func(label string, value *widget.Label, slider *widget.Slider) fyne.CanvasObject {
		title := widget.NewLabel(label)
		head := container.NewBorder(nil, nil, title, value, nil)
		return container.NewVBox(head, slider)
	}

	// Clicker controls.

	clickIntervalSlider := widget.NewSlider(10, 2000)
	clickIntervalSlider.Step = 10
	clickIntervalSlider.SetValue(float64(st.Clicker.IntervalMs))
	clickIntervalValue := newValueLabel()

	buttonSelect := widget.NewSelect([]string{"Left", "Middle", "Right"}, nil)
	buttonSelect.SetSelected(buttonLabel(st.Clicker.Button))

	clickRandomCheck := widget.NewCheck("Random extra delay", nil)
	clickRandomCheck.SetChecked(st.Clicker.RandomDelayEnabled)
	clickMinSlider := widget.NewSlider(0, 2000)
	clickMinSlider.Step = 10
	clickMinSlider.SetValue(float64(st.Clicker.RandomDelayMinMs))
	clickMaxSlider := widget.NewSlider(0, 2000)
	clickMaxSlider.Step = 10
	clickMaxSlider.SetValue(float64(st.Clicker.RandomDelayMaxMs))
	clickMinValue := newValueLabel()
	clickMaxValue := newValueLabel()

	clickCountText := widget.NewLabel("Clicks: 0")
	clickCountText.TextStyle = fyne.TextStyle{Bold: true}
	clickToggleBtn := widget.NewButton("Start"+hotkeyHint(baseCfg.clickHotkey), nil)
	clickToggleBtn.Importance = widget.HighImportance
	clickResetBtn := widget.NewButton("Reset", nil)

	// Mover controls.

	moveIntervalSlider := widget.NewSlider(10, 1000)
	moveIntervalSlider.Step = 10
	moveIntervalSlider.SetValue(float64(st.Mover.IntervalMs))
	moveIntervalValue := newValueLabel()

	distanceSlider := widget.NewSlider(0, 500)
	distanceSlider.Step = 5
	distanceSlider.SetValue(float64(st.Mover.MaxDistance))
	distanceValue := newValueLabel()

	moveRandomCheck := widget.NewCheck("Random extra delay", nil)
	moveRandomCheck.SetChecked(st.Mover.RandomDelayEnabled)
	moveMinSlider := widget.NewSlider(0, 1000)
	moveMinSlider.Step = 10
	moveMinSlider.SetValue(float64(st.Mover.RandomDelayMinMs))
	moveMaxSlider := widget.NewSlider(0, 1000)
	moveMaxSlider.Step = 10
	moveMaxSlider.SetValue(float64(st.Mover.RandomDelayMaxMs))
	moveMinValue := newValueLabel()
	moveMaxValue := newValueLabel()

	moveCountText := widget.NewLabel("Moves: 0")
	moveCountText.TextStyle = fyne.TextStyle{Bold: true}
	moveToggleBtn := widget.NewButton("Start"+hotkeyHint(baseCfg.moveHotkey), nil)
	moveToggleBtn.Importance = widget.HighImportance
	moveResetBtn := widget.NewButton("Reset", nil)

	updateControlText := func() {
		clickIntervalValue.SetText(fmt.Sprintf("%.0f ms", clickIntervalSlider.Value))
		clickMinValue.SetText(fmt.Sprintf("%.0f ms", clickMinSlider.Value))
		clickMaxValue.SetText(fmt.Sprintf("%.0f ms", clickMaxSlider.Value))
		moveIntervalValue.SetText(fmt.Sprintf("%.0f ms", moveIntervalSlider.Value))
		distanceValue.SetText(fmt.Sprintf("%.0f px", distanceSlider.Value))
		moveMinValue.SetText(fmt.Sprintf("%.0f ms", moveMinSlider.Value))
		moveMaxValue.SetText(fmt.Sprintf("%.0f ms", moveMaxSlider.Value))
	}
	updateControlText()

	setRandomControlsEnabled := func() {
		if clickRandomCheck.Checked {
			clickMinSlider.Enable()
			clickMaxSlider.Enable()
		} else {
			clickMinSlider.Disable()
			clickMaxSlider.Disable()
		}
		if moveRandomCheck.Checked {
			moveMinSlider.Enable()
			moveMaxSlider.Enable()
		} else {
			moveMinSlider.Disable()
			moveMaxSlider.Disable()
		}
	}
	setRandomControlsEnabled()

	buildSettingsFromUI := func() settings {
		s := getSettings()
		s.Clicker.IntervalMs = uint64(math.Round(clickIntervalSlider.Value))
		if button, err := runner.ParseButton(buttonSelect.Selected); err == nil {
			s.Clicker.Button = button
		}
		s.Clicker.RandomDelayEnabled = clickRandomCheck.Checked
		s.Clicker.RandomDelayMinMs = uint64(math.Round(clickMinSlider.Value))
		s.Clicker.RandomDelayMaxMs = uint64(math.Round(clickMaxSlider.Value))
		s.Mover.IntervalMs = uint64(math.Round(moveIntervalSlider.Value))
		s.Mover.MaxDistance = int(math.Round(distanceSlider.Value))
		s.Mover.RandomDelayEnabled = moveRandomCheck.Checked
		s.Mover.RandomDelayMinMs = uint64(math.Round(moveMinSlider.Value))
		s.Mover.RandomDelayMaxMs = uint64(math.Round(moveMaxSlider.Value))
		return s
	}

	// applySettings pushes the UI state into the runners and onto disk.
	// Running loops keep their start-time snapshot; the new values take
	// effect on the next start.
	applySettings := func() {
		s := buildSettingsFromUI()
		setSettings(s)

		c, m := getRunners()
		if c != nil {
			if err := c.SetConfig(s.Clicker); err != nil {
				setError(err.Error())
				appendLogLine("ERROR " + err.Error())
				return
			}
		}
		if m != nil {
			if err := m.SetConfig(s.Mover); err != nil {
				setError(err.Error())
				appendLogLine("ERROR " + err.Error())
				return
			}
		}

		if err := saveSettings(s); err != nil {
			setError(fmt.Sprintf("Failed to save settings: %v", err))
			return
		}
		setError("")
	}

	clickIntervalSlider.OnChanged = func(float64) { updateControlText(); applySettings() }
	buttonSelect.OnChanged = func(string) { applySettings() }
	clickRandomCheck.OnChanged = func(bool) { setRandomControlsEnabled(); applySettings() }
	clickMinSlider.OnChanged = func(v float64) {
		if v > clickMaxSlider.Value {
			clickMaxSlider.SetValue(v)
		}
		updateControlText()
		applySettings()
	}
	clickMaxSlider.OnChanged = func(v float64) {
		if v < clickMinSlider.Value {
			clickMinSlider.SetValue(v)
		}
		updateControlText()
		applySettings()
	}
	moveIntervalSlider.OnChanged = func(float64) { updateControlText(); applySettings() }
	distanceSlider.OnChanged = func(float64) { updateControlText(); applySettings() }
	moveRandomCheck.OnChanged = func(bool) { setRandomControlsEnabled(); applySettings() }
	moveMinSlider.OnChanged = func(v float64) {
		if v > moveMaxSlider.Value {
			moveMaxSlider.SetValue(v)
		}
		updateControlText()
		applySettings()
	}
	moveMaxSlider.OnChanged = func(v float64) {
		if v < moveMinSlider.Value {
			moveMinSlider.SetValue(v)
		}
		updateControlText()
		applySettings()
	}

	setRunStateUI := func() {
		c, m := getRunners()
		if c != nil {
			if c.IsRunning() {
				clickToggleBtn.SetText("Stop" + hotkeyHint(baseCfg.clickHotkey))
			} else {
				clickToggleBtn.SetText("Start" + hotkeyHint(baseCfg.clickHotkey))
			}
			clickCountText.SetText(fmt.Sprintf("Clicks: %d", c.Clicks()))
		}
		if m != nil {
			if m.IsRunning() {
				moveToggleBtn.SetText("Stop" + hotkeyHint(baseCfg.moveHotkey))
			} else {
				moveToggleBtn.SetText("Start" + hotkeyHint(baseCfg.moveHotkey))
			}
			moveCountText.SetText(fmt.Sprintf("Moves: %d", m.Moves()))
		}
	}

	clickToggleBtn.OnTapped = func() {
		c, _ := getRunners()
		if c == nil {
			return
		}
		toggle(c.IsRunning, c.Start, c.Stop)
		setRunStateUI()
	}
	clickResetBtn.OnTapped = func() {
		c, _ := getRunners()
		if c == nil {
			return
		}
		c.ResetClicks()
		setRunStateUI()
	}
	moveToggleBtn.OnTapped = func() {
		_, m := getRunners()
		if m == nil {
			return
		}
		toggle(m.IsRunning, m.Start, m.Stop)
		setRunStateUI()
	}
	moveResetBtn.OnTapped = func() {
		_, m := getRunners()
		if m == nil {
			return
		}
		m.ResetMoves()
		setRunStateUI()
	}

	openConfigBtn := widget.NewButton("Open Config File", func() {
		if err := openSettingsFile(getSettings()); err != nil {
			setError(fmt.Sprintf("Failed to open settings file: %v", err))
			appendLogLine("ERROR " + err.Error())
		}
	})

	initProgress := widget.NewProgressBarInfinite()

	var runtimeStop chan struct{}
	stopRuntime := func() {
		stateMu.Lock()
		c, m, b := clicker, mover, backend
		stop := runtimeStop
		clicker, mover, backend = nil, nil, nil
		runtimeStop = nil
		stateMu.Unlock()

		if stop != nil {
			close(stop)
		}
		if c != nil {
			c.StopWait()
		}
		if m != nil {
			m.StopWait()
		}
		if b != nil {
			b.close()
		}
	}

	runRuntimeLoops := func(stop <-chan struct{}, poller *runner.HotkeyPoller) {
		pollTicker := time.NewTicker(50 * time.Millisecond)
		stateTicker := time.NewTicker(150 * time.Millisecond)
		defer pollTicker.Stop()
		defer stateTicker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-pollTicker.C:
				if poller != nil {
					poller.Poll()
				}
			case <-stateTicker.C:
				fyne.Do(setRunStateUI)
			}
		}
	}

	startRuntime := func() error {
		b, err := newInputBackend(baseCfg.backend, []uint16{baseCfg.clickHotkey, baseCfg.moveHotkey}, logger)
		if err != nil {
			return err
		}

		s := getSettings()
		c, err := runner.NewClicker(s.Clicker, b.injector, logger)
		if err != nil {
			b.close()
			return err
		}
		m, err := runner.NewMover(s.Mover, b.injector, logger)
		if err != nil {
			b.close()
			return err
		}

		var poller *runner.HotkeyPoller
		if b.keys != nil {
			poller = runner.NewHotkeyPoller(b.keys, hotkeyRetrigger)
			poller.Bind(baseCfg.clickHotkey, func() { toggle(c.IsRunning, c.Start, c.Stop) })
			poller.Bind(baseCfg.moveHotkey, func() { toggle(m.IsRunning, m.Start, m.Stop) })
		} else if baseCfg.clickHotkey != 0 || baseCfg.moveHotkey != 0 {
			logger.Warn("Global hotkeys are unavailable on this backend")
		}

		stop := make(chan struct{})
		stateMu.Lock()
		clicker, mover, backend = c, m, b
		runtimeStop = stop
		stateMu.Unlock()

		go runRuntimeLoops(stop, poller)
		return nil
	}

	go func() {
		err := startRuntime()
		fyne.Do(func() {
			initProgress.Hide()
			if err != nil {
				if isPermissionError(err) {
					setError(permissionDeniedHint())
				} else {
					setError(err.Error())
				}
				appendLogLine("ERROR " + errorText.Text)
				return
			}
			setRunStateUI()
			appendLogLine("INFO Initialization complete")
		})
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var closeOnce sync.Once
	cleanup := func() {
		closeOnce.Do(func() {
			_ = saveSettings(getSettings())
			stopRuntime()
		})
	}

	requestQuit := func() {
		fyne.Do(func() {
			cleanup()
			if currentApp := fyne.CurrentApp(); currentApp != nil {
				currentApp.Quit()
				return
			}
			window.SetCloseIntercept(nil)
			window.Close()
		})
	}

	go func() {
		<-sigCh
		requestQuit()
	}()

	// Some GUI backends can leave Ctrl+C as raw ETX byte instead of SIGINT.
	go func() {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				return
			}
			if n == 1 && buf[0] == 3 {
				requestQuit()
				return
			}
		}
	}()

	window.SetCloseIntercept(func() {
		cleanup()
		if currentApp := fyne.CurrentApp(); currentApp != nil {
			currentApp.Quit()
			return
		}
		window.SetCloseIntercept(nil)
		window.Close()
	})

	titleText := canvas.NewText("MOURSE", color.NRGBA{R: 0x8c, G: 0xb4, B: 0xff, A: 0xff})
	titleText.TextStyle = fyne.TextStyle{Bold: true}
	titleText.TextSize = 30

	accentLine := canvas.NewRectangle(color.NRGBA{R: 0x7a, G: 0xa8, B: 0xff, A: 0xff})
	accentLine.SetMinSize(fyne.NewSize(220, 3))

	clickerControls := container.NewVBox(
		newSliderControl("Interval", clickIntervalValue, clickIntervalSlider),
		container.NewBorder(nil, nil, widget.NewLabel("Button"), nil, buttonSelect),
		clickRandomCheck,
		newSliderControl("Min extra", clickMinValue, clickMinSlider),
		newSliderControl("Max extra", clickMaxValue, clickMaxSlider),
		container.NewBorder(nil, nil, clickCountText, clickResetBtn, nil),
		clickToggleBtn,
	)
	moverControls := container.NewVBox(
		newSliderControl("Interval", moveIntervalValue, moveIntervalSlider),
		newSliderControl("Max distance", distanceValue, distanceSlider),
		moveRandomCheck,
		newSliderControl("Min extra", moveMinValue, moveMinSlider),
		newSliderControl("Max extra", moveMaxValue, moveMaxSlider),
		container.NewBorder(nil, nil, moveCountText, moveResetBtn, nil),
		moveToggleBtn,
	)

	clickerCard := widget.NewCard("Auto Clicker", "", clickerControls)
	moverCard := widget.NewCard("Mouse Mover", "", moverControls)
	controlsRow := container.NewGridWithColumns(2, clickerCard, moverCard)

	mainContent := container.NewVBox(
		titleText,
		accentLine,
		controlsRow,
		errorText,
		initProgress,
		openConfigBtn,
	)
	mainPanel := container.NewPadded(mainContent)

	var rootContent fyne.CanvasObject = mainPanel
	if debugLogs {
		logsCard := widget.NewCard("Logs", "", logScroll)
		split := container.NewVSplit(mainPanel, logsCard)
		split.SetOffset(0.72)
		rootContent = split
	}

	appendLogLine("INFO Initializing input backend...")

	window.SetContent(rootContent)
	window.ShowAndRun()
	cleanup()
	return nil
}
