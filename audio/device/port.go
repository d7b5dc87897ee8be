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
package device

import (
	"sync/atomic"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/transforms"
	"github.com/xthexder/go-jack"
)

// capturePort couples a registered JACK input port with the queue that
// carries its samples, already converted to 16 bit PCM, out of the realtime
// process callback.
type capturePort struct {
	myName   string
	jackName string
	jackPort *jack.Port

	samples chan int16
	dropped atomic.Uint64

	scratch goaudio.Float32Buffer
}

func newCapturePort(myName string, jackName string, queueSize int, sampleRate int) *capturePort {
	return &capturePort{
		myName:   myName,
		jackName: jackName,
		samples:  make(chan int16, queueSize),
		scratch: goaudio.Float32Buffer{
			Format: &goaudio.Format{
				NumChannels: 1,
				SampleRate:  sampleRate,
			},
			SourceBitDepth: 16,
		},
	}
}

func (port *capturePort) setJackPort(jackPort *jack.Port) {
	port.jackPort = jackPort
}

// process runs on the JACK realtime thread. It must never block, so samples
// that do not fit in the queue are dropped.
func (port *capturePort) process(nframes uint32) {
	samplesIn := port.jackPort.GetBuffer(nframes)

	if cap(port.scratch.Data) < len(samplesIn) {
		port.scratch.Data = make([]float32, len(samplesIn))
	}
	port.scratch.Data = port.scratch.Data[:len(samplesIn)]

	for i, sample := range samplesIn {
		port.scratch.Data[i] = float32(sample)
	}

	for _, sample := range floatsToPCM16(&port.scratch) {
		select {
		case port.samples <- sample:
		default:
			port.dropped.Add(1)
		}
	}
}

// floatsToPCM16 converts samples in the -1..1 range to 16 bit PCM.
func floatsToPCM16(buf *goaudio.Float32Buffer) []int16 {
	scaled := &goaudio.Float32Buffer{
		Format:         buf.Format,
		Data:           append([]float32(nil), buf.Data...),
		SourceBitDepth: buf.SourceBitDepth,
	}

	if err := transforms.PCMScaleF32(scaled, 16); err != nil {
		return nil
	}

	ints := scaled.AsIntBuffer()
	out := make([]int16, len(ints.Data))

	for i, sample := range ints.Data {
		switch {
		case sample > 32767:
			out[i] = 32767
		case sample < -32768:
			out[i] = -32768
		default:
			out[i] = int16(sample)
		}
	}

	return out
}
