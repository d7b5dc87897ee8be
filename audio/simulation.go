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
package audio

import (
	"io"
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

const (
	simulationToneHz       = 440.0
	simulationStepDuration = 150 * time.Millisecond
	simulationMaxAmplitude = 128
)

// SimulatedSource generates a tone whose amplitude jumps to a random value
// every 150ms. It stands in for a microphone during UI work and tests.
type SimulatedSource struct {
	seed         uint64
	realtime     bool
	freezeLevels bool
}

func NewSimulatedSource(seed uint64, realtime bool, freezeLevels bool) *SimulatedSource {
	return &SimulatedSource{
		seed:         seed,
		realtime:     realtime,
		freezeLevels: freezeLevels,
	}
}

func (s *SimulatedSource) Name() string {
	return "simulate"
}

func (s *SimulatedSource) Open(format Format) (Handle, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}

	h := &simulatedHandle{
		source: s,
		format: format,
		rng:    rand.New(rand.NewPCG(s.seed, s.seed^0x9e3779b97f4a7c15)),
		next:   time.Now(),
	}
	h.amplitude = h.rng.IntN(simulationMaxAmplitude)

	return h, nil
}

type simulatedHandle struct {
	source *SimulatedSource
	format Format
	rng    *rand.Rand

	frame          int
	amplitude      int
	framesThisStep int
	next           time.Time

	closeOnce sync.Once
	closed    bool
	mu        sync.Mutex
}

func (h *simulatedHandle) ReadChunk(size int) (Chunk, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, io.EOF
	}

	frames := h.format.FramesPerChunk(size)
	if frames == 0 {
		return Chunk{}, nil
	}

	if h.source.realtime {
		if wait := time.Until(h.next); wait > 0 {
			time.Sleep(wait)
		}
		h.next = h.next.Add(h.format.ChunkDuration(size))
	}

	stepFrames := int(simulationStepDuration.Seconds() * float64(h.format.SampleRate))
	samples := make([]int16, frames)

	for i := range frames {
		if h.framesThisStep >= stepFrames && !h.source.freezeLevels {
			h.amplitude = h.rng.IntN(simulationMaxAmplitude)
			h.framesThisStep = 0
		}

		phase := 2 * math.Pi * simulationToneHz * float64(h.frame) / float64(h.format.SampleRate)
		samples[i] = int16(float64(h.amplitude) * math.Sin(phase))

		h.frame++
		h.framesThisStep++
	}

	return ChunkFromPCM16BE(samples), nil
}

func (h *simulatedHandle) Close() error {
	h.closeOnce.Do(func() {
		h.mu.Lock()
		h.closed = true
		h.mu.Unlock()
	})

	return nil
}
