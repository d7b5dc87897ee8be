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
	"slices"
	"testing"
)

func TestChunkFromPCM16BE(t *testing.T) {
	tests := []struct {
		name     string
		samples  []int16
		expected Chunk
	}{
		{"empty", []int16{}, Chunk{}},
		{"small positive", []int16{70}, Chunk{0, 70}},
		{"small negative", []int16{-5}, Chunk{-1, -5}},
		{"high byte", []int16{0x1234}, Chunk{0x12, 0x34}},
		{"low byte wraps", []int16{200}, Chunk{0, -56}},
		{"extremes", []int16{32767, -32768}, Chunk{127, -1, -128, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunk := ChunkFromPCM16BE(tt.samples)
			if !slices.Equal(chunk, tt.expected) {
				t.Errorf("ChunkFromPCM16BE(%v) = %v, want %v", tt.samples, chunk, tt.expected)
			}
		})
	}
}

func TestByteViewOfConstantSignal(t *testing.T) {
	samples := make([]int16, DefaultChunkSize/2)
	for i := range samples {
		samples[i] = 70
	}

	// bytes alternate between 0 and 70, mean 35, rms 35
	level := EstimateLevel(ChunkFromPCM16BE(samples))
	if level != 35-CalibrationOffset {
		t.Errorf("level = %d, want %d", level, 35-CalibrationOffset)
	}
}

func TestScaleToPCM16(t *testing.T) {
	tests := []struct {
		name     string
		sample   int
		bitDepth int
		expected int16
	}{
		{"16 bit passthrough", -1234, 16, -1234},
		{"8 bit midpoint", 128, 8, 0},
		{"8 bit max", 255, 8, 32512},
		{"8 bit min", 0, 8, -32768},
		{"24 bit", 0x123456, 24, 0x1234},
		{"24 bit negative", -0x800000, 24, -32768},
		{"32 bit", 0x7fffffff, 32, 32767},
		{"12 bit", 100, 12, 1600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if value := ScaleToPCM16(tt.sample, tt.bitDepth); value != tt.expected {
				t.Errorf("ScaleToPCM16(%d, %d) = %d, want %d", tt.sample, tt.bitDepth, value, tt.expected)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	format := DefaultFormat()

	if err := format.Validate(); err != nil {
		t.Fatalf("default format rejected: %v", err)
	}

	if frames := format.FramesPerChunk(DefaultChunkSize); frames != 3000 {
		t.Errorf("FramesPerChunk = %d, want 3000", frames)
	}

	if format.String() != "16bit / 42KHz mono" {
		t.Errorf("String() = %q", format.String())
	}

	stereo := format
	stereo.Channels = 2
	if err := stereo.Validate(); err == nil {
		t.Error("stereo format should be rejected")
	}

	eightBit := format
	eightBit.BitDepth = 8
	if err := eightBit.Validate(); err == nil {
		t.Error("8 bit format should be rejected")
	}
}
