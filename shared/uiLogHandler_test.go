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
package shared

import (
	"log/slog"
	"testing"
)

type capturedLine struct {
	level   slog.Level
	message string
}

type captureWriter struct {
	lines []capturedLine
}

func (w *captureWriter) WriteLevelLog(level slog.Level, message string) {
	w.lines = append(w.lines, capturedLine{level: level, message: message})
}

func TestUiLogHandler(t *testing.T) {
	writer := &captureWriter{}
	errors := make([]string, 0)

	handler := NewUiLogHandler(writer, slog.LevelInfo, func(message string) {
		errors = append(errors, message)
	})

	logger := slog.New(handler).With("session", "abc")

	logger.Debug("hidden")
	logger.Info("capturing", "rate", 42000)
	logger.WithGroup("jack").Warn("xrun", "count", 2)
	logger.Error("device lost")

	want := []capturedLine{
		{slog.LevelInfo, "capturing session=abc rate=42000"},
		{slog.LevelWarn, "xrun session=abc jack.count=2"},
		{slog.LevelError, "device lost session=abc"},
	}

	if len(writer.lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %+v", len(writer.lines), len(want), writer.lines)
	}

	for i := range want {
		if writer.lines[i] != want[i] {
			t.Errorf("line %d = %+v, want %+v", i, writer.lines[i], want[i])
		}
	}

	if len(errors) != 1 || errors[0] != "device lost" {
		t.Errorf("error callback got %v", errors)
	}
}

func TestUiLogHandlerDynamicLevel(t *testing.T) {
	writer := &captureWriter{}

	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)

	logger := slog.New(NewUiLogHandler(writer, level, nil))

	logger.Info("skipped")
	level.Set(slog.LevelDebug)
	logger.Debug("shown")
	logger.Error("no callback set")

	if len(writer.lines) != 2 || writer.lines[0].message != "shown" {
		t.Errorf("lines = %+v", writer.lines)
	}
}
