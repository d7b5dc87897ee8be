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
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fox-meter/audio"

	"github.com/xthexder/go-jack"
)

const (
	DefaultJackClientName   = "fox-meter"
	DefaultJackCapturePort  = "system:capture_1"
	DefaultJackPollInterval = 50 * time.Millisecond
)

// JackSource captures one channel from a running JACK server. The server is
// never started on demand.
type JackSource struct {
	clientName   string
	capturePort  string
	pollInterval time.Duration
}

func NewJackSource(clientName string, capturePort string, pollInterval time.Duration) *JackSource {
	if clientName == "" {
		clientName = DefaultJackClientName
	}

	if capturePort == "" {
		capturePort = DefaultJackCapturePort
	}

	if pollInterval <= 0 {
		pollInterval = DefaultJackPollInterval
	}

	return &JackSource{
		clientName:   clientName,
		capturePort:  capturePort,
		pollInterval: pollInterval,
	}
}

func (s *JackSource) Name() string {
	return "jack"
}

func (s *JackSource) Open(format audio.Format) (audio.Handle, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}

	slog.Info("Connecting to JACK server")

	client, status := jack.ClientOpen(s.clientName, jack.NoStartServer)
	if status != 0 {
		return nil, fmt.Errorf("%w: JACK status: %s", audio.ErrDeviceUnavailable, jack.StrError(status))
	}

	serverRate := int(client.GetSampleRate())
	if serverRate != format.SampleRate {
		slog.Warn(fmt.Sprintf("JACK server runs at %d Hz, capturing at that rate instead of %d Hz", serverRate, format.SampleRate))
	}

	// one second of headroom between the process callback and the reader
	port := newCapturePort("in_1", s.capturePort, serverRate, serverRate)

	jackPort := client.PortRegister(port.myName, jack.DEFAULT_AUDIO_TYPE, jack.PortIsInput, 0)
	if jackPort == nil {
		client.Close()
		return nil, fmt.Errorf("%w: failed to register port %s", audio.ErrDeviceUnavailable, port.myName)
	}
	port.setJackPort(jackPort)
	slog.Debug("Registered port " + port.myName)

	h := &jackHandle{
		format:       format,
		client:       client,
		port:         port,
		pollInterval: s.pollInterval,
		shutdown:     make(chan struct{}),
	}

	if code := client.SetProcessCallback(h.process); code != 0 {
		client.Close()
		return nil, fmt.Errorf("%w: failed to set process callback: %s", audio.ErrDeviceUnavailable, jack.StrError(code))
	}

	client.OnShutdown(func() {
		slog.Warn("JACK connection shutting down")
		h.shutdownOnce.Do(func() { close(h.shutdown) })
	})

	if code := client.Activate(); code != 0 {
		client.Close()
		return nil, fmt.Errorf("%w: failed to activate client: %s", audio.ErrDeviceUnavailable, jack.StrError(code))
	}

	ourName := fmt.Sprintf("%s:%s", s.clientName, port.myName)
	client.Connect(port.jackName, ourName)
	slog.Debug(fmt.Sprintf("Connected port %s to port %s", port.jackName, ourName))

	return h, nil
}

type jackHandle struct {
	format       audio.Format
	client       *jack.Client
	port         *capturePort
	pollInterval time.Duration
	pending      []int16

	shutdown     chan struct{}
	shutdownOnce sync.Once
	closeOnce    sync.Once
}

func (h *jackHandle) process(nframes uint32) int {
	h.port.process(nframes)
	return 0
}

// ReadChunk collects queued samples until a chunk is complete. When the poll
// interval passes first, the samples stay pending and an empty chunk is
// returned.
func (h *jackHandle) ReadChunk(size int) (audio.Chunk, error) {
	frames := h.format.FramesPerChunk(size)
	if frames == 0 {
		return audio.Chunk{}, nil
	}

	timeout := time.NewTimer(h.pollInterval)
	defer timeout.Stop()

	for len(h.pending) < frames {
		select {
		case sample := <-h.port.samples:
			h.pending = append(h.pending, sample)
		case <-h.shutdown:
			return nil, fmt.Errorf("%w: JACK server shut down", audio.ErrCaptureFault)
		case <-timeout.C:
			return audio.Chunk{}, nil
		}
	}

	if dropped := h.port.dropped.Swap(0); dropped > 0 {
		slog.Warn(fmt.Sprintf("Dropped %d samples, reader fell behind", dropped))
	}

	chunk := audio.ChunkFromPCM16BE(h.pending[:frames])
	h.pending = append(h.pending[:0], h.pending[frames:]...)

	return chunk, nil
}

func (h *jackHandle) Close() error {
	h.closeOnce.Do(func() {
		// a server side shutdown already released the client
		select {
		case <-h.shutdown:
		default:
			h.shutdownOnce.Do(func() { close(h.shutdown) })
			h.client.Close()
		}
	})

	return nil
}
