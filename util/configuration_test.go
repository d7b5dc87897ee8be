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
package util

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fox-meter/model"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fox-meter.yml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	config := DefaultConfig()

	if err := ValidateConfig(config); err != nil {
		t.Fatalf("ValidateConfig(DefaultConfig()) error = %v", err)
	}

	if config.SampleRate != 42000 || config.ChunkSize != 6000 || config.Backend != model.BackendPortAudio {
		t.Errorf("unexpected defaults: %+v", config)
	}
}

func TestReadConfigFromYaml(t *testing.T) {
	path := writeConfigFile(t, `
backend: simulate
chunk_size: 3000
output_type: json
jack:
  client_name: meter-two
simulation:
  seed: 99
  freeze_levels: true
`)

	config, err := ReadConfig(&model.CommandLineArgs{ConfigFile: path})
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if config.Backend != model.BackendSimulate {
		t.Errorf("Backend = %s, want simulate", config.Backend)
	}

	if config.ChunkSize != 3000 {
		t.Errorf("ChunkSize = %d, want 3000", config.ChunkSize)
	}

	if config.OutputType != model.OutputJSON {
		t.Errorf("OutputType = %s, want json", config.OutputType)
	}

	if config.Jack.ClientName != "meter-two" {
		t.Errorf("Jack.ClientName = %s, want meter-two", config.Jack.ClientName)
	}

	// untouched keys keep their defaults
	if config.Jack.CapturePort != "system:capture_1" || config.SampleRate != 42000 {
		t.Errorf("defaults were lost: port %s, rate %d", config.Jack.CapturePort, config.SampleRate)
	}

	if config.Simulation.Seed != 99 || !config.Simulation.FreezeLevels {
		t.Errorf("Simulation = %+v", config.Simulation)
	}
}

func TestReadConfigPrecedence(t *testing.T) {
	path := writeConfigFile(t, "chunk_size: 3000\nlog_level: debug\n")

	t.Setenv("FOX_METER_CHUNK_SIZE", "4000")
	t.Setenv("FOX_METER_LOG_LEVEL", "warn")

	config, err := ReadConfig(&model.CommandLineArgs{
		ConfigFile: path,
		LogLevel:   "error",
	})
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if config.ChunkSize != 4000 {
		t.Errorf("ChunkSize = %d, want the environment value 4000", config.ChunkSize)
	}

	if config.LogLevel != "error" {
		t.Errorf("LogLevel = %s, want the flag value error", config.LogLevel)
	}
}

func TestReadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		args model.CommandLineArgs
	}{
		{
			name: "missing explicit file",
			args: model.CommandLineArgs{ConfigFile: filepath.Join(t.TempDir(), "nope.yml")},
		},
		{
			name: "unknown backend",
			yaml: "backend: alsa\n",
		},
		{
			name: "file backend without input",
			yaml: "backend: file\n",
		},
		{
			name: "sample rate too low",
			yaml: "sample_rate: 100\n",
		},
		{
			name: "malformed yaml",
			yaml: "backend: [simulate\n",
		},
		{
			name: "unknown output flag",
			yaml: "backend: simulate\n",
			args: model.CommandLineArgs{OutputType: "gui"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := tt.args
			if args.ConfigFile == "" {
				args.ConfigFile = writeConfigFile(t, tt.yaml)
			}

			if _, err := ReadConfig(&args); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("ReadConfig() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	env := map[string]string{
		"FOX_METER_BACKEND":           "jack",
		"FOX_METER_OUTPUT":            "JSON",
		"FOX_METER_IDLE_BACKOFF_MS":   "5",
		"FOX_METER_JACK_CAPTURE_PORT": "system:capture_2",
		"FOX_METER_SIMULATION_SEED":   "12",
	}
	lookup := func(name string) (string, bool) {
		value, ok := env[name]
		return value, ok
	}

	config := DefaultConfig()
	if err := ApplyEnvOverrides(config, lookup); err != nil {
		t.Fatalf("ApplyEnvOverrides() error = %v", err)
	}

	if config.Backend != model.BackendJack || config.OutputType != model.OutputJSON {
		t.Errorf("Backend = %s, OutputType = %s", config.Backend, config.OutputType)
	}

	if config.IdleBackoffMs != 5 || config.Jack.CapturePort != "system:capture_2" || config.Simulation.Seed != 12 {
		t.Errorf("overrides not applied: %+v %+v %+v", config, config.Jack, config.Simulation)
	}

	env["FOX_METER_CHUNK_SIZE"] = "lots"
	if err := ApplyEnvOverrides(DefaultConfig(), lookup); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ApplyEnvOverrides() with bad number error = %v, want ErrInvalidConfig", err)
	}
}

func TestApplyCommandLineArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    model.CommandLineArgs
		backend string
	}{
		{"no flags", model.CommandLineArgs{}, model.BackendPortAudio},
		{"input implies file", model.CommandLineArgs{InputFile: "take.wav"}, model.BackendFile},
		{"explicit backend wins over input", model.CommandLineArgs{InputFile: "take.wav", Backend: "jack"}, model.BackendJack},
		{"simulate wins", model.CommandLineArgs{Backend: "jack", Simulate: true}, model.BackendSimulate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			ApplyCommandLineArgs(config, &tt.args)

			if config.Backend != tt.backend {
				t.Errorf("Backend = %s, want %s", config.Backend, tt.backend)
			}
		})
	}
}
