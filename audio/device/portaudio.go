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

// Package device holds the capture sources backed by native audio stacks.
package device

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"fox-meter/audio"

	"github.com/gordonklaus/portaudio"
)

const portAudioFramesPerBuffer = 1024

// PortAudioSource captures from the host's default input device.
type PortAudioSource struct{}

func NewPortAudioSource() *PortAudioSource {
	return &PortAudioSource{}
}

func (s *PortAudioSource) Name() string {
	return "portaudio"
}

func (s *PortAudioSource) Open(format audio.Format) (audio.Handle, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrDeviceUnavailable, err)
	}

	device, err := portaudio.DefaultInputDevice()
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("%w: %w", audio.ErrDeviceUnavailable, err)
	}

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   device,
			Channels: format.Channels,
			Latency:  device.DefaultLowInputLatency,
		},
		SampleRate:      float64(format.SampleRate),
		FramesPerBuffer: portAudioFramesPerBuffer,
	}

	buffer := make([]int16, portAudioFramesPerBuffer*format.Channels)

	if err := portaudio.IsFormatSupported(params, buffer); err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("%w: %s does not support %s: %w", audio.ErrDeviceUnavailable, device.Name, format, err)
	}

	stream, err := portaudio.OpenStream(params, buffer)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("%w: %w", audio.ErrDeviceUnavailable, err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("%w: %w", audio.ErrDeviceUnavailable, err)
	}

	slog.Info(fmt.Sprintf("Capturing from '%s' at %s", device.Name, format))

	return &portAudioHandle{
		format: format,
		stream: stream,
		buffer: buffer,
	}, nil
}

type portAudioHandle struct {
	format  audio.Format
	stream  *portaudio.Stream
	buffer  []int16
	pending []int16

	closeOnce sync.Once
	closeErr  error
}

// ReadChunk blocks on the stream until enough frames for one chunk have
// arrived. Frames beyond the chunk are kept for the next call.
func (h *portAudioHandle) ReadChunk(size int) (audio.Chunk, error) {
	frames := h.format.FramesPerChunk(size)
	if frames == 0 {
		return audio.Chunk{}, nil
	}

	for len(h.pending) < frames {
		if err := h.stream.Read(); err != nil {
			if errors.Is(err, portaudio.InputOverflowed) {
				slog.Warn("Input overflowed, samples were lost")
			} else {
				return nil, fmt.Errorf("%w: %w", audio.ErrCaptureFault, err)
			}
		}

		h.pending = append(h.pending, h.buffer...)
	}

	chunk := audio.ChunkFromPCM16BE(h.pending[:frames])
	h.pending = append(h.pending[:0], h.pending[frames:]...)

	return chunk, nil
}

func (h *portAudioHandle) Close() error {
	h.closeOnce.Do(func() {
		if err := h.stream.Stop(); err != nil {
			slog.Debug(fmt.Sprintf("Stopping stream: %s", err.Error()))
		}

		h.closeErr = h.stream.Close()
		portaudio.Terminate()
	})

	return h.closeErr
}
