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
	"fmt"
	"log/slog"
	"time"

	"fox-meter/display"
	"fox-meter/meter"
	"fox-meter/util"
)

// processOnInterval runs callback every intervalMs until shutdownChan is
// closed.
func processOnInterval(name string, shutdownChan chan struct{}, intervalMs int, callback func()) {
	go func() {
		ticker := time.NewTicker(time.Duration(intervalMs) * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-shutdownChan:
				slog.Debug(fmt.Sprintf("stopping '%s' processor", name))
				return
			case <-ticker.C:
				callback()
			}
		}
	}()
}

// initStatistics reports the pipeline counters to the UI once a second.
// Closing the returned channel stops it.
func initStatistics(ui display.UI, pipeline *meter.Pipeline) chan struct{} {
	shutdownChan := make(chan struct{})
	startTime := time.Now()

	processOnInterval("capture stats", shutdownChan, 1000, func() {
		stats := pipeline.Stats()
		uptime := time.Since(startTime)

		ui.SetCaptureStats(stats.Chunks, stats.EmptyReads, uptime)

		util.TraceLog(fmt.Sprintf("chunks: %d, empty reads: %d, last level: %d, uptime %s",
			stats.Chunks, stats.EmptyReads, stats.LastLevel, util.FormatDuration(uptime)))
	})

	return shutdownChan
}
