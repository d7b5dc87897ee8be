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
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"fox-meter/meter"
	"fox-meter/reaper"
	"fox-meter/util"
)

const (
	jsonStatusInterval = 1 * time.Second
	jsonQueueSize      = 64
)

//
// types
//

// JsonUI writes one JSON object per line: a "bars" message for every drawn
// level, a "status" message every second and a "log" message per log record.
type JsonUI struct {
	output  io.Writer
	session string

	updates         chan func()
	shutdownChannel chan struct{}
	doneChannel     chan struct{}
	shutdownOnce    sync.Once
	started         atomic.Bool

	statusInterval time.Duration

	// owned by the loop goroutine
	display          *meter.BarDisplay
	poster           *levelPoster
	statusValue      Status
	statusSource     string
	statusFormat     string
	statusChunks     uint64
	statusEmptyReads uint64
	statusUptime     time.Duration
	statusErrorCount int
	statusLevel      int
}

//
// constructor
//

func NewJsonUI(output io.Writer, session string) *JsonUI {
	j := &JsonUI{
		output:  output,
		session: session,

		updates:         make(chan func(), jsonQueueSize),
		shutdownChannel: make(chan struct{}),
		doneChannel:     make(chan struct{}),

		statusInterval: jsonStatusInterval,

		display:     meter.NewBarDisplay(),
		statusValue: StatusStarting,
		statusLevel: -50,
	}

	j.poster = newLevelPoster(j.queue, j.applyLevel)

	return j
}

func (j *JsonUI) SetStatusInterval(interval time.Duration) {
	j.statusInterval = interval
}

func (j *JsonUI) Initialize() error {
	// nothing to do here
	return nil
}

func (j *JsonUI) Start() {
	reaper.Register("json ui")

	j.started.Store(true)
	go j.excecuteLoop()
}

func (j *JsonUI) excecuteLoop() {
	defer close(j.doneChannel)
	defer reaper.Done("json ui")

	slog.Debug("JSON loop started")

	ticker := time.NewTicker(j.statusInterval)
	defer ticker.Stop()

	for {
		select {
		case update := <-j.updates:
			update()

		case <-ticker.C:
			j.printJson(j.getStatus())

		case <-j.shutdownChannel:
			// flush what was queued before the shutdown
			for {
				select {
				case update := <-j.updates:
					update()
				default:
					j.printJson(j.getStatus())
					return
				}
			}
		}
	}
}

func (j *JsonUI) Shutdown() {
	j.shutdownOnce.Do(func() {
		close(j.shutdownChannel)
	})

	j.WaitForShutdown()
}

func (j *JsonUI) IsShutdown() bool {
	select {
	case <-j.shutdownChannel:
		return true
	default:
		return false
	}
}

func (j *JsonUI) WaitForShutdown() {
	<-j.shutdownChannel

	if j.started.Load() {
		<-j.doneChannel
	}
}

func (j *JsonUI) SetStatus(status Status) {
	j.queue(func() {
		j.statusValue = status
		j.printJson(j.getStatus())
	})
}

func (j *JsonUI) SetSourceInfo(name string, format string) {
	j.queue(func() {
		j.statusSource = name
		j.statusFormat = format
	})
}

func (j *JsonUI) SetCaptureStats(chunks uint64, emptyReads uint64, uptime time.Duration) {
	j.queue(func() {
		j.statusChunks = chunks
		j.statusEmptyReads = emptyReads
		j.statusUptime = uptime
	})
}

func (j *JsonUI) IncrementErrorCount() {
	j.queue(func() {
		j.statusErrorCount += 1
	})
}

func (j *JsonUI) PostLevel(level int) {
	j.poster.post(level)
}

func (j *JsonUI) WriteLevelLog(level slog.Level, message string) {
	date := time.Now().Format(time.RFC3339)

	j.queue(func() {
		j.printJson(JsonLog{
			MessageType: "log",

			Date:    date,
			Level:   level.String(),
			Message: message,
		})
	})
}

//
// private functions
//

// queue hands f to the loop goroutine. Updates sent after shutdown are
// dropped.
func (j *JsonUI) queue(f func()) {
	select {
	case <-j.shutdownChannel:
		return
	default:
	}

	select {
	case j.updates <- f:
	case <-j.shutdownChannel:
	}
}

func (j *JsonUI) applyLevel(level int) {
	j.display.Update(level)
	j.statusLevel = level

	j.printJson(j.getBars())
}

func (j *JsonUI) printJson(v any) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		// not through slog, the log handler may be this UI
		fmt.Fprintln(j.output, `{"message_type":"error","message":"marshalling failed"}`)
		return
	}

	fmt.Fprintln(j.output, string(jsonBytes))
}

func (j *JsonUI) getStatus() *JsonStatus {
	return &JsonStatus{
		MessageType: "status",

		Session: j.session,
		Status:  j.statusValue.String(),

		Source:     j.statusSource,
		Format:     j.statusFormat,
		Uptime:     util.FormatDuration(j.statusUptime),
		Chunks:     j.statusChunks,
		EmptyReads: j.statusEmptyReads,
		ErrorCount: j.statusErrorCount,
		Level:      j.statusLevel,
	}
}

func (j *JsonUI) getBars() *JsonBars {
	bars := j.display.Bars()

	jsonBars := &JsonBars{
		MessageType: "bars",

		Level: j.statusLevel,
		Lit:   j.display.LitCount(),
		Bars:  make([]JsonBar, len(bars)),
	}

	for i, bar := range bars {
		jsonBars.Bars[i].Index = i
		jsonBars.Bars[i].Class = bar.Class.String()
		jsonBars.Bars[i].Lit = bar.Lit
	}

	return jsonBars
}
