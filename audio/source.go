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

// Package audio holds the capture contract, the level estimator and the
// capture sources that need no native libraries.
package audio

import "errors"

var (
	// ErrDeviceUnavailable means the input could not be opened or does not
	// support the requested format.
	ErrDeviceUnavailable = errors.New("audio device unavailable")

	// ErrCaptureFault means the stream failed while it was being read.
	ErrCaptureFault = errors.New("audio capture fault")
)

// Source opens a capture stream. Each source reads from exactly one input.
type Source interface {
	Name() string
	Open(format Format) (Handle, error)
}

// Handle is an open capture stream.
//
// ReadChunk returns either a full chunk of size samples, a zero length chunk
// when not enough data is available yet, or an error. io.EOF marks the end
// of the stream. Partial chunks are never returned.
type Handle interface {
	ReadChunk(size int) (Chunk, error)
	Close() error
}
