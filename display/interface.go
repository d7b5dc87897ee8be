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

// Package display renders the bar stack and the status of the capture
// session, either as an interactive terminal UI or as a JSON stream.
package display

import (
	"log/slog"
	"time"
)

// UI is a rendering surface. Every method may be called from any goroutine.
// The UI owns its BarDisplay and only touches it from its own goroutine.
type UI interface {
	Initialize() error
	Start()
	Shutdown()
	IsShutdown() bool
	WaitForShutdown()
	SetStatus(status Status)
	SetSourceInfo(name string, format string)
	SetCaptureStats(chunks uint64, emptyReads uint64, uptime time.Duration)
	IncrementErrorCount()
	PostLevel(level int)
	WriteLevelLog(level slog.Level, message string)
}
