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
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"fox-meter/display"
	"fox-meter/meter"
	"fox-meter/model"
	"fox-meter/reaper"
	"fox-meter/shared"
	"fox-meter/util"

	"github.com/google/uuid"
)

func newUI(config *model.Config, session string) display.UI {
	if config.OutputType == model.OutputJSON {
		return display.NewJsonUI(os.Stdout, session)
	}

	return display.NewTui(display.TuiOptions{
		ShowStatus: config.ShowStatus,
		ShowLog:    config.ShowLog,
		PositionX:  config.PositionX,
		PositionY:  config.PositionY,
	})
}

// configureLogger points slog at the log file or at the UI. The returned
// function puts a plain stderr logger back once the UI is gone.
func configureLogger(config *model.Config, ui display.UI, level slog.Level, session string) (func(), error) {
	var handler slog.Handler
	var logFile *os.File

	if config.LogFile != "" {
		logPath, err := util.ResolveHomeDirPath(config.LogFile)
		if err != nil {
			return nil, err
		}

		logFile, err = os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}

		handler = slog.NewTextHandler(logFile, &slog.HandlerOptions{
			Level: level,
		})
	} else {
		handler = shared.NewUiLogHandler(ui, level, func(message string) {
			ui.IncrementErrorCount()
		})
	}

	slog.SetDefault(slog.New(handler).With("session", session))

	// the TUI owns the terminal, anything printed must go through slog
	if config.OutputType == model.OutputTUI {
		shared.HijackLogging()
	}

	restore := func() {
		shared.RestoreLogging()

		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))

		if logFile != nil {
			logFile.Close()
		}
	}

	return restore, nil
}

func runEngine(config *model.Config) error {
	level, err := util.ParseLogLevel(config.LogLevel)
	if err != nil {
		return err
	}

	// fail before any audio device is touched
	if config.OutputType == model.OutputTUI {
		if err := display.CheckSupport(os.Stdout); err != nil {
			return err
		}
	}

	source, err := newSource(config)
	if err != nil {
		return err
	}

	session := uuid.NewString()

	ui := newUI(config, session)
	if err := ui.Initialize(); err != nil {
		return fmt.Errorf("%w: %w", display.ErrDisplayUnsupported, err)
	}

	ui.Start()
	reaper.Callback("ui", ui.Shutdown)

	restoreLogging, err := configureLogger(config, ui, level, session)
	if err != nil {
		reaper.Reap()
		reaper.Wait()
		return err
	}
	defer restoreLogging()

	shared.CatchSigint(func() {
		slog.Info("Caught signal, calling reaper")
		reaper.Reap()
	})

	ctx, cancel := context.WithCancel(context.Background())
	reaper.Callback("cancel capture", cancel)

	format := captureFormat(config)

	pipeline := meter.NewPipeline(source, format, ui)
	pipeline.SetChunkSize(config.ChunkSize)
	pipeline.SetIdleBackoff(time.Duration(config.IdleBackoffMs) * time.Millisecond)

	ui.SetSourceInfo(source.Name(), format.String())

	if err := pipeline.Start(); err != nil {
		ui.SetStatus(display.StatusFailed)
		reaper.Reap()
		reaper.Wait()
		return err
	}

	reaper.Callback("stop capture", func() {
		if err := pipeline.Stop(); err != nil {
			slog.Warn("Closing capture: " + err.Error())
		}
	})

	statsShutdownChan := initStatistics(ui, pipeline)
	reaper.Callback("stats", func() { close(statsShutdownChan) })

	reaper.Callback("shutdown status", func() {
		ui.SetStatus(display.StatusShuttingDown)
	})

	slog.Info(fmt.Sprintf("Capturing from %s source, session %s", source.Name(), session))
	ui.SetStatus(display.StatusCapturing)

	var runErr error

	reaper.Register("capture")
	go func() {
		defer reaper.Done("capture")

		runErr = pipeline.Run(ctx)
		if runErr != nil {
			slog.Error("Capture stopped: " + runErr.Error())
			ui.SetStatus(display.StatusFailed)
		} else {
			ui.SetStatus(display.StatusStopped)
		}

		go reaper.Reap()
	}()

	// this blocks until the capture loop and the UI have both finished
	reaper.Wait()

	return runErr
}
