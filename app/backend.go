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
package app

import (
	"fmt"
	"time"

	"fox-meter/audio"
	"fox-meter/audio/device"
	"fox-meter/model"
)

// newSource builds the one capture source the config asks for.
func newSource(config *model.Config) (audio.Source, error) {
	switch config.Backend {
	case model.BackendPortAudio:
		return device.NewPortAudioSource(), nil

	case model.BackendJack:
		return device.NewJackSource(
			config.Jack.ClientName,
			config.Jack.CapturePort,
			time.Duration(config.Jack.PollIntervalMs)*time.Millisecond,
		), nil

	case model.BackendFile:
		return audio.NewFileSource(config.InputFile, true), nil

	case model.BackendSimulate:
		seed := config.Simulation.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}

		return audio.NewSimulatedSource(seed, true, config.Simulation.FreezeLevels), nil
	}

	return nil, fmt.Errorf("unknown backend '%s'", config.Backend)
}

func captureFormat(config *model.Config) audio.Format {
	format := audio.DefaultFormat()
	format.SampleRate = config.SampleRate

	return format
}
