// =================================================================================
//
//			fox-audio - https://www.foxhollow.cc/projects/fox-audio/
//
//		 Fox Meter is a tiny always-on-top level meter that shows the
//	  loudness of the default microphone as a stack of colored bars
//
//		 Copyright (c) 2024 Steve Cross <flip@foxhollow.cc>
//
//			Licensed under the Apache License, Version 2.0 (the "License");
//			you may not use this file except in compliance with the License.
//			You may obtain a copy of the License at
//
//			     http://www.apache.org/licenses/LICENSE-2.0
//
//			Unless required by applicable law or agreed to in writing, software
//			distributed under the License is distributed on an "AS IS" BASIS,
//			WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//			See the License for the specific language governing permissions and
//			limitations under the License.
//
// =================================================================================
package display

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"fox-meter/display/custom"
	"fox-meter/display/theme"
	"fox-meter/meter"
	"fox-meter/reaper"
	"fox-meter/util"

	"code.rocketnine.space/tslocum/cview"
	"github.com/gdamore/tcell/v2"
)

//
// constants
//

const (
	layoutStatusItemHeaderWidth = 10
	layoutStatusColumnWidth     = 36
	layoutStatusRowCount        = 3

	redrawInterval = 50 * time.Millisecond
)

//
// types
//

type TuiOptions struct {
	ShowStatus bool
	ShowLog    bool

	// initial position of the meter, in cells
	PositionX int
	PositionY int
}

type Tui struct {
	app     *cview.Application
	options TuiOptions

	shutdownChannel chan struct{}
	shutdownOnce    sync.Once

	errorCount atomic.Int64

	// owned by the cview event loop
	display *meter.BarDisplay
	drag    dragTracker
	poster  *levelPoster

	gridApp  *cview.Grid
	barStack *custom.BarStack
	tvLogs   *cview.TextView

	tvStatus *custom.StatusText
	tvSource *custom.StatusText
	tvUptime *custom.StatusText
	tvLevel  *custom.StatusText
	tvChunks *custom.StatusText
	tvErrors *custom.StatusText
}

//
// constructor
//

func NewTui(options TuiOptions) *Tui {
	tui := &Tui{
		options:         options,
		shutdownChannel: make(chan struct{}),
		display:         meter.NewBarDisplay(),
	}

	return tui
}

//
// lifecycle managment
//

func (tui *Tui) Initialize() error {
	tui.app = cview.NewApplication()
	tui.app.EnableMouse(true)

	rows := make([]int, 0, 2)

	//
	// main application grid
	tui.gridApp = cview.NewGrid()
	tui.gridApp.SetPadding(0, 0, 0, 0)
	tui.gridApp.SetColumns(-1)
	tui.gridApp.SetBackgroundColor(cview.Styles.PrimitiveBackgroundColor)

	if tui.options.ShowStatus {
		rows = append(rows, layoutStatusRowCount)
		tui.gridApp.AddItem(tui.newStatusGrid(), 0, 0, 1, 1, 0, 0, false)
	}

	//
	// log output view, the meter floats above it
	tui.tvLogs = cview.NewTextView()
	tui.tvLogs.SetPadding(0, 0, 1, 1)
	tui.tvLogs.SetDynamicColors(true)
	tui.tvLogs.SetVisible(tui.options.ShowLog)

	rows = append(rows, -1)
	tui.gridApp.SetRows(rows...)
	tui.gridApp.AddItem(tui.tvLogs, len(rows)-1, 0, 1, 1, 0, 0, true)

	tui.barStack = custom.NewBarStack(tui.display, theme.RuneBar, theme.BarColors)
	tui.barStack.SetOrigin(tui.options.PositionX, tui.options.PositionY)

	tui.poster = newLevelPoster(tui.queueUpdateDraw, tui.applyLevel)

	tui.app.SetInputCapture(tui.eventHandler)
	tui.app.SetMouseCapture(tui.mouseHandler)
	tui.app.SetAfterDrawFunc(tui.barStack.Draw)
	tui.app.SetRoot(tui.gridApp, true)

	return nil
}

func (tui *Tui) newStatusGrid() *cview.Grid {
	grid := cview.NewGrid()
	grid.SetPadding(0, 0, 1, 1)
	grid.SetColumns(layoutStatusColumnWidth, layoutStatusColumnWidth, -1)
	grid.SetRows(1, 1, 1)
	grid.SetBackgroundColor(cview.Styles.PrimitiveBackgroundColor)

	tui.tvStatus = custom.NewStatusText(layoutStatusItemHeaderWidth, "Status", string(theme.RuneClock)+" "+StatusStarting.String())
	tui.tvStatus.SetColor(theme.Yellow)
	tui.tvSource = custom.NewStatusText(layoutStatusItemHeaderWidth, "Source", "")
	tui.tvUptime = custom.NewStatusText(layoutStatusItemHeaderWidth, "Uptime", util.FormatDuration(0))
	tui.tvLevel = custom.NewStatusText(layoutStatusItemHeaderWidth, "Level", "")
	tui.tvChunks = custom.NewStatusText(layoutStatusItemHeaderWidth, "Chunks", "0")
	tui.tvErrors = custom.NewStatusText(layoutStatusItemHeaderWidth, "Errors", "0")

	grid.AddItem(tui.tvStatus.GetGrid(), 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(tui.tvSource.GetGrid(), 1, 0, 1, 1, 0, 0, false)
	grid.AddItem(tui.tvUptime.GetGrid(), 2, 0, 1, 1, 0, 0, false)
	grid.AddItem(tui.tvLevel.GetGrid(), 0, 1, 1, 1, 0, 0, false)
	grid.AddItem(tui.tvChunks.GetGrid(), 1, 1, 1, 1, 0, 0, false)
	grid.AddItem(tui.tvErrors.GetGrid(), 2, 1, 1, 1, 0, 0, false)

	return grid
}

func (tui *Tui) Start() {
	reaper.Register("tui")

	go func() {
		defer tui.app.HandlePanic()

		if err := tui.app.Run(); err != nil {
			slog.Error("TUI stopped: " + err.Error())
		}

		tui.shutdownOnce.Do(func() { close(tui.shutdownChannel) })
		reaper.Done("tui")

		// the terminal is gone, so the rest of the process goes with it
		go reaper.Reap()
	}()

	go tui.redrawLoop()
}

func (tui *Tui) Shutdown() {
	slog.Debug("Shutting down TUI")
	tui.app.Stop()

	slog.Debug("Waiting for TUI to shut down")
	tui.WaitForShutdown()
}

func (tui *Tui) IsShutdown() bool {
	select {
	case <-tui.shutdownChannel:
		return true
	default:
		return false
	}
}

func (tui *Tui) WaitForShutdown() {
	<-tui.shutdownChannel
}

//
// private functions
//

func (tui *Tui) eventHandler(event *tcell.EventKey) *tcell.EventKey {
	// Anything handled here will be executed on the main thread
	switch event.Key() {
	case tcell.KeyEsc, tcell.KeyCtrlC:
		go reaper.Reap()
		return nil
	case tcell.KeyRune:
		if event.Rune() == 'q' {
			go reaper.Reap()
			return nil
		}
	}

	return event
}

// mouseHandler lets the meter be dragged around with the left button.
func (tui *Tui) mouseHandler(event *tcell.EventMouse, action cview.MouseAction) (*tcell.EventMouse, cview.MouseAction) {
	x, y := event.Position()

	switch action {
	case cview.MouseLeftDown:
		if tui.barStack.Contains(x, y) {
			tui.drag.press(x, y)
			return nil, action
		}
	case cview.MouseMove:
		if dx, dy, ok := tui.drag.move(x, y); ok {
			tui.barStack.Move(dx, dy)
			return nil, action
		}
	case cview.MouseLeftUp:
		if tui.drag.active {
			tui.drag.release()
			return nil, action
		}
	}

	return event, action
}

// redrawLoop keeps the log pane and status fields fresh. Levels are drawn as
// they arrive.
func (tui *Tui) redrawLoop() {
	defer tui.app.HandlePanic()

	slog.Debug("TUI loop started")

	ticker := time.NewTicker(redrawInterval)
	defer ticker.Stop()

	for {
		select {
		case <-tui.shutdownChannel:
			return
		case <-ticker.C:
			tui.queueUpdateDraw(func() {})
		}
	}
}

func (tui *Tui) queueUpdateDraw(f func()) {
	if tui.IsShutdown() {
		return
	}

	tui.app.QueueUpdateDraw(f)
}

func (tui *Tui) applyLevel(level int) {
	tui.display.Update(level)

	if tui.tvLevel != nil {
		tui.tvLevel.SetCurrentValue(fmt.Sprintf("%d (%d/%d bars)", level, tui.display.LitCount(), meter.BarCount))
	}
}

//
// status update functions
//

func (tui *Tui) SetStatus(status Status) {
	if tui.tvStatus == nil {
		return
	}

	var icon rune
	var color tcell.Color

	switch status {
	case StatusCapturing:
		icon = theme.RuneRecord
		color = theme.Green
	case StatusStopped:
		icon = theme.RuneStop
		color = theme.Blue
	case StatusFailed:
		icon = theme.RuneFailed
		color = theme.Red
	default:
		icon = theme.RuneClock
		color = theme.Yellow
	}

	tui.tvStatus.SetCurrentValue(string(icon) + " " + status.String())
	tui.tvStatus.SetColor(color)
}

func (tui *Tui) SetSourceInfo(name string, format string) {
	if tui.tvSource == nil {
		return
	}

	tui.tvSource.SetCurrentValue(fmt.Sprintf("%s, %s", name, format))
}

func (tui *Tui) SetCaptureStats(chunks uint64, emptyReads uint64, uptime time.Duration) {
	if tui.tvChunks == nil {
		return
	}

	tui.tvChunks.SetCurrentValue(fmt.Sprintf("%d (%d empty reads)", chunks, emptyReads))
	tui.tvUptime.SetCurrentValue(util.FormatDuration(uptime))
}

func (tui *Tui) IncrementErrorCount() {
	errorCount := tui.errorCount.Add(1)

	if tui.tvErrors == nil {
		return
	}

	tui.tvErrors.SetCurrentValue(fmt.Sprintf("%d", errorCount))
	tui.tvErrors.SetColor(theme.Red)
}

func (tui *Tui) PostLevel(level int) {
	tui.poster.post(level)
}

//
// logging
//

func (tui *Tui) WriteLevelLog(level slog.Level, message string) {
	color := "-"

	if level >= slog.LevelError {
		color = "#" + theme.RedRGB + "::b"
	} else if level >= slog.LevelWarn {
		color = "#" + theme.YellowRGB
	} else if level < slog.LevelInfo {
		color = "#" + theme.GrayRGB
	}

	tui.tvLogs.Write([]byte(fmt.Sprintf("[%s][%s[] [%s[] %s[-:-:-]\n", color, time.Now().Format("2006-01-02 15:04:05"), level.String(), cview.Escape(message))))
}
