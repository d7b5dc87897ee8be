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
	"errors"
	"io"
	"slices"
	"testing"
)

func TestSimulatedSourceChunks(t *testing.T) {
	source := NewSimulatedSource(42, false, false)

	handle, err := source.Open(DefaultFormat())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer handle.Close()

	for i := 0; i < 20; i++ {
		chunk, err := handle.ReadChunk(DefaultChunkSize)
		if err != nil {
			t.Fatalf("ReadChunk() error = %v", err)
		}

		if len(chunk) != DefaultChunkSize {
			t.Fatalf("chunk length = %d, want %d", len(chunk), DefaultChunkSize)
		}

		if level := EstimateLevel(chunk); level < -CalibrationOffset || level > CalibrationOffset {
			t.Errorf("chunk %d level %d out of range", i, level)
		}
	}
}

func TestSimulatedSourceIsDeterministic(t *testing.T) {
	first, _ := NewSimulatedSource(7, false, false).Open(DefaultFormat())
	second, _ := NewSimulatedSource(7, false, false).Open(DefaultFormat())

	for i := 0; i < 5; i++ {
		a, _ := first.ReadChunk(DefaultChunkSize)
		b, _ := second.ReadChunk(DefaultChunkSize)

		if !slices.Equal(a, b) {
			t.Fatalf("chunk %d differs between sources with the same seed", i)
		}
	}
}

func TestSimulatedSourceFrozenLevels(t *testing.T) {
	handle, _ := NewSimulatedSource(3, false, true).Open(DefaultFormat())

	chunk, _ := handle.ReadChunk(DefaultChunkSize)
	firstLevel := EstimateLevel(chunk)

	for i := 0; i < 10; i++ {
		chunk, _ = handle.ReadChunk(DefaultChunkSize)
		level := EstimateLevel(chunk)

		if diff := level - firstLevel; diff > 1 || diff < -1 {
			t.Errorf("frozen level moved from %d to %d", firstLevel, level)
		}
	}
}

func TestSimulatedSourceClosed(t *testing.T) {
	handle, _ := NewSimulatedSource(1, false, false).Open(DefaultFormat())

	if err := handle.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// closing twice is harmless
	if err := handle.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}

	if _, err := handle.ReadChunk(DefaultChunkSize); !errors.Is(err, io.EOF) {
		t.Errorf("ReadChunk() after Close error = %v, want io.EOF", err)
	}
}

func TestSimulatedSourceRejectsFormat(t *testing.T) {
	format := DefaultFormat()
	format.Channels = 2

	if _, err := NewSimulatedSource(1, false, false).Open(format); !errors.Is(err, ErrDeviceUnavailable) {
		t.Errorf("Open() error = %v, want ErrDeviceUnavailable", err)
	}
}
