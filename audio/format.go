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
	"fmt"
	"strconv"
	"time"
)

const (
	// DefaultSampleRate is below the usual 44.1kHz. The calibration offset
	// was derived against this rate, so it stays the default.
	DefaultSampleRate = 42000
	DefaultBitDepth   = 16
	DefaultChannels   = 1

	// DefaultChunkSize is the number of byte samples handed to the level
	// estimator per read (3000 frames of 16 bit mono).
	DefaultChunkSize = 6000
)

// Format describes the PCM stream requested from a capture backend.
type Format struct {
	SampleRate int
	BitDepth   int
	Channels   int
	Signed     bool
	BigEndian  bool
}

func DefaultFormat() Format {
	return Format{
		SampleRate: DefaultSampleRate,
		BitDepth:   DefaultBitDepth,
		Channels:   DefaultChannels,
		Signed:     true,
		BigEndian:  true,
	}
}

// Validate reports whether the format is one the meter knows how to read.
// Only signed 16 bit mono streams are supported.
func (f Format) Validate() error {
	if f.SampleRate <= 0 {
		return fmt.Errorf("%w: invalid sample rate %d", ErrDeviceUnavailable, f.SampleRate)
	}

	if f.BitDepth != 16 || f.Channels != 1 || !f.Signed {
		return fmt.Errorf("%w: unsupported format %s", ErrDeviceUnavailable, f.String())
	}

	return nil
}

func (f Format) BytesPerFrame() int {
	return (f.BitDepth / 8) * f.Channels
}

// FramesPerChunk returns how many frames make up a chunk of size byte samples.
func (f Format) FramesPerChunk(size int) int {
	bytesPerFrame := f.BytesPerFrame()
	if bytesPerFrame == 0 {
		return 0
	}

	return size / bytesPerFrame
}

// ChunkDuration is the wall clock time covered by a chunk of size byte samples.
func (f Format) ChunkDuration(size int) time.Duration {
	if f.SampleRate <= 0 {
		return 0
	}

	frames := f.FramesPerChunk(size)
	return time.Duration(frames) * time.Second / time.Duration(f.SampleRate)
}

func (f Format) String() string {
	sampleRateStr := strconv.FormatFloat(float64(f.SampleRate)/1000.0, 'f', -1, 64)

	channels := "mono"
	if f.Channels == 2 {
		channels = "stereo"
	} else if f.Channels > 2 {
		channels = fmt.Sprintf("%dch", f.Channels)
	}

	return fmt.Sprintf("%dbit / %sKHz %s", f.BitDepth, sampleRateStr, channels)
}
