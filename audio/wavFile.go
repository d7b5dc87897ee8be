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
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// FileSource replays a WAV file as if it were a live input. Multichannel
// files are downmixed to mono and every bit depth is rescaled to 16 bit.
type FileSource struct {
	path     string
	realtime bool
}

func NewFileSource(path string, realtime bool) *FileSource {
	return &FileSource{
		path:     path,
		realtime: realtime,
	}
}

func (s *FileSource) Name() string {
	return "file"
}

func (s *FileSource) Open(format Format) (Handle, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		f.Close()
		return nil, fmt.Errorf("%w: %s is not a valid wav file", ErrDeviceUnavailable, s.path)
	}

	// validation reads through the headers, so start over with a fresh
	// decoder parked at the PCM data
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}

	decoder = wav.NewDecoder(f)
	if err := decoder.FwdToPCM(); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}

	if int(decoder.SampleRate) != format.SampleRate {
		slog.Warn(fmt.Sprintf("%s is %d Hz, replaying at file rate instead of %d Hz", s.path, decoder.SampleRate, format.SampleRate))
	}

	h := &fileHandle{
		source:     s,
		file:       f,
		decoder:    decoder,
		channels:   max(int(decoder.NumChans), 1),
		bitDepth:   int(decoder.BitDepth),
		sampleRate: int(decoder.SampleRate),
		next:       time.Now(),
	}

	return h, nil
}

type fileHandle struct {
	source  *FileSource
	file    *os.File
	decoder *wav.Decoder

	channels   int
	bitDepth   int
	sampleRate int
	next       time.Time

	mu        sync.Mutex
	closed    bool
	closeOnce sync.Once
}

func (h *fileHandle) ReadChunk(size int) (Chunk, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, io.EOF
	}

	frames := size / 2
	if frames == 0 {
		return Chunk{}, nil
	}

	buf := &goaudio.IntBuffer{
		Data: make([]int, frames*h.channels),
	}

	filled := 0
	for filled < len(buf.Data) {
		part := &goaudio.IntBuffer{Data: buf.Data[filled:]}

		n, err := h.decoder.PCMBuffer(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCaptureFault, err)
		}

		if n == 0 {
			// the tail that does not fill a whole chunk is dropped
			return nil, io.EOF
		}

		filled += n
	}

	if h.source.realtime && h.sampleRate > 0 {
		if wait := time.Until(h.next); wait > 0 {
			time.Sleep(wait)
		}
		h.next = h.next.Add(time.Duration(frames) * time.Second / time.Duration(h.sampleRate))
	}

	samples := make([]int16, frames)
	for frame := range frames {
		sum := 0
		for channel := range h.channels {
			sum += int(ScaleToPCM16(buf.Data[frame*h.channels+channel], h.bitDepth))
		}
		samples[frame] = int16(sum / h.channels)
	}

	return ChunkFromPCM16BE(samples), nil
}

func (h *fileHandle) Close() error {
	var err error

	h.closeOnce.Do(func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		h.closed = true
		err = h.file.Close()
	})

	return err
}
