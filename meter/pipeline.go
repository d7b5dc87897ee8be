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
package meter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"fox-meter/audio"
)

// LevelSink receives every computed level. PostLevel must not block.
type LevelSink interface {
	PostLevel(level int)
}

type PipelineState int32

const (
	StateIdle PipelineState = iota
	StateCapturing
	StateStopped
)

var pipelineStateNames = map[PipelineState]string{
	StateIdle:      "idle",
	StateCapturing: "capturing",
	StateStopped:   "stopped",
}

func (state PipelineState) String() string {
	if name, ok := pipelineStateNames[state]; ok {
		return name
	}

	return "unknown"
}

type Stats struct {
	Chunks     uint64
	EmptyReads uint64
	LastLevel  int
}

// Pipeline reads chunks from one source, estimates their level and posts it
// to the sink until it is stopped or the source fails.
type Pipeline struct {
	source      audio.Source
	format      audio.Format
	sink        LevelSink
	chunkSize   int
	idleBackoff time.Duration

	state atomic.Int32

	handleLock sync.Mutex
	handle     audio.Handle

	stopChan  chan struct{}
	stopOnce  sync.Once
	closeOnce sync.Once
	closeErr  error

	chunks     atomic.Uint64
	emptyReads atomic.Uint64
	lastLevel  atomic.Int64
}

func NewPipeline(source audio.Source, format audio.Format, sink LevelSink) *Pipeline {
	pipeline := &Pipeline{
		source:    source,
		format:    format,
		sink:      sink,
		chunkSize: audio.DefaultChunkSize,
		stopChan:  make(chan struct{}),
	}
	pipeline.lastLevel.Store(-audio.CalibrationOffset)

	return pipeline
}

func (pipeline *Pipeline) SetChunkSize(size int) {
	pipeline.chunkSize = size
}

// SetIdleBackoff sets how long Run sleeps after an empty read. Zero keeps
// polling the source without pause.
func (pipeline *Pipeline) SetIdleBackoff(backoff time.Duration) {
	pipeline.idleBackoff = backoff
}

func (pipeline *Pipeline) State() PipelineState {
	return PipelineState(pipeline.state.Load())
}

func (pipeline *Pipeline) Stats() Stats {
	return Stats{
		Chunks:     pipeline.chunks.Load(),
		EmptyReads: pipeline.emptyReads.Load(),
		LastLevel:  int(pipeline.lastLevel.Load()),
	}
}

// Start opens the source. On failure the pipeline moves straight to stopped.
func (pipeline *Pipeline) Start() error {
	if !pipeline.state.CompareAndSwap(int32(StateIdle), int32(StateCapturing)) {
		return fmt.Errorf("pipeline is %s, cannot start", pipeline.State())
	}

	handle, err := pipeline.source.Open(pipeline.format)
	if err != nil {
		pipeline.state.Store(int32(StateStopped))
		return fmt.Errorf("opening %s source: %w", pipeline.source.Name(), err)
	}

	pipeline.handleLock.Lock()
	pipeline.handle = handle
	pipeline.handleLock.Unlock()

	// Stop raced with Open
	if pipeline.State() == StateStopped {
		pipeline.closeHandle()
	}

	return nil
}

// Run drives the capture loop until ctx is cancelled, Stop is called or the
// source ends. A clean end of stream returns nil.
func (pipeline *Pipeline) Run(ctx context.Context) error {
	defer pipeline.Stop()

	pipeline.handleLock.Lock()
	handle := pipeline.handle
	pipeline.handleLock.Unlock()

	if handle == nil {
		return errors.New("pipeline was not started")
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pipeline.stopChan:
			return nil
		default:
		}

		chunk, err := handle.ReadChunk(pipeline.chunkSize)
		if err != nil {
			if pipeline.State() == StateStopped {
				return nil
			}

			if errors.Is(err, io.EOF) {
				slog.Info(fmt.Sprintf("%s source reached end of stream", pipeline.source.Name()))
				return nil
			}

			if errors.Is(err, audio.ErrCaptureFault) {
				return err
			}

			return fmt.Errorf("%w: %w", audio.ErrCaptureFault, err)
		}

		if len(chunk) == 0 {
			pipeline.emptyReads.Add(1)

			if pipeline.idleBackoff > 0 {
				time.Sleep(pipeline.idleBackoff)
			}

			continue
		}

		level := audio.EstimateLevel(chunk)

		pipeline.chunks.Add(1)
		pipeline.lastLevel.Store(int64(level))

		pipeline.sink.PostLevel(level)
	}
}

// Stop moves the pipeline to stopped and closes the capture handle. It is
// safe to call from any goroutine any number of times.
func (pipeline *Pipeline) Stop() error {
	pipeline.stopOnce.Do(func() {
		pipeline.state.Store(int32(StateStopped))
		close(pipeline.stopChan)
	})

	return pipeline.closeHandle()
}

func (pipeline *Pipeline) closeHandle() error {
	pipeline.handleLock.Lock()
	handle := pipeline.handle
	pipeline.handleLock.Unlock()

	if handle == nil {
		return nil
	}

	pipeline.closeOnce.Do(func() {
		pipeline.closeErr = handle.Close()
	})

	return pipeline.closeErr
}
