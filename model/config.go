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
package model

type OutputType string

const (
	OutputTUI  OutputType = "tui"
	OutputJSON OutputType = "json"
)

const (
	BackendPortAudio = "portaudio"
	BackendJack      = "jack"
	BackendFile      = "file"
	BackendSimulate  = "simulate"
)

type CommandLineArgs struct {
	ConfigFile string
	Backend    string
	InputFile  string
	OutputType string
	LogLevel   string
	LogFile    string
	Simulate   bool
}

type Config struct {
	Backend       string     `yaml:"backend,omitempty" validate:"oneof=portaudio jack file simulate"`
	InputFile     string     `yaml:"input_file,omitempty" validate:"required_if=Backend file"`
	SampleRate    int        `yaml:"sample_rate,omitempty" validate:"gte=8000,lte=192000"`
	ChunkSize     int        `yaml:"chunk_size,omitempty" validate:"gte=2,lte=1048576"`
	IdleBackoffMs int        `yaml:"idle_backoff_ms,omitempty" validate:"gte=0,lte=1000"`
	OutputType    OutputType `yaml:"output_type,omitempty" validate:"oneof=tui json"`
	LogLevel      string     `yaml:"log_level,omitempty" validate:"oneof=trace debug info warn error"`
	LogFile       string     `yaml:"log_file,omitempty"`
	ShowLog       bool       `yaml:"show_log,omitempty"`
	ShowStatus    bool       `yaml:"show_status,omitempty"`
	PositionX     int        `yaml:"position_x,omitempty" validate:"gte=0"`
	PositionY     int        `yaml:"position_y,omitempty" validate:"gte=0"`

	Jack       *JackOptions       `yaml:"jack" validate:"required"`
	Simulation *SimulationOptions `yaml:"simulation" validate:"required"`
}

type JackOptions struct {
	ClientName     string `yaml:"client_name,omitempty" validate:"required"`
	CapturePort    string `yaml:"capture_port,omitempty" validate:"required"`
	PollIntervalMs int    `yaml:"poll_interval_ms,omitempty" validate:"gte=1,lte=1000"`
}

type SimulationOptions struct {
	Seed         uint64 `yaml:"seed,omitempty"`
	FreezeLevels bool   `yaml:"freeze_levels,omitempty"`
}
