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
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"fox-meter/model"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DefaultConfigFile = "fox-meter.yml"
	EnvPrefix         = "FOX_METER_"
)

var ErrInvalidConfig = errors.New("invalid configuration")

var validate = validator.New(validator.WithRequiredStructEnabled())

func DefaultConfig() *model.Config {
	return &model.Config{
		Backend:       model.BackendPortAudio,
		SampleRate:    42000,
		ChunkSize:     6000,
		IdleBackoffMs: 0,
		OutputType:    model.OutputTUI,
		LogLevel:      "info",
		ShowLog:       false,
		ShowStatus:    true,
		PositionX:     8,
		PositionY:     2,
		Jack: &model.JackOptions{
			ClientName:     "fox-meter",
			CapturePort:    "system:capture_1",
			PollIntervalMs: 50,
		},
		Simulation: &model.SimulationOptions{
			Seed:         0,
			FreezeLevels: false,
		},
	}
}

// ReadConfig builds the runtime configuration. Later layers win: defaults,
// the yaml file, a .env file and FOX_METER_* variables, then the flags.
func ReadConfig(args *model.CommandLineArgs) (*model.Config, error) {
	config := DefaultConfig()

	configFile := args.ConfigFile
	explicitFile := configFile != ""
	if !explicitFile {
		configFile = DefaultConfigFile
	}

	if err := ReadYamlFile(config, configFile); err != nil {
		if explicitFile || !errors.Is(err, ErrNoYamlFile) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	// a yaml file may blank out the nested sections
	defaults := DefaultConfig()
	if config.Jack == nil {
		config.Jack = defaults.Jack
	}
	if config.Simulation == nil {
		config.Simulation = defaults.Simulation
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to read .env file: " + err.Error())
	}

	if err := ApplyEnvOverrides(config, os.LookupEnv); err != nil {
		return nil, err
	}

	ApplyCommandLineArgs(config, args)

	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

func ApplyEnvOverrides(config *model.Config, lookup func(string) (string, bool)) error {
	stringVars := map[string]*string{
		"BACKEND":           &config.Backend,
		"INPUT_FILE":        &config.InputFile,
		"LOG_LEVEL":         &config.LogLevel,
		"LOG_FILE":          &config.LogFile,
		"JACK_CLIENT_NAME":  &config.Jack.ClientName,
		"JACK_CAPTURE_PORT": &config.Jack.CapturePort,
	}

	for name, target := range stringVars {
		if value, ok := lookup(EnvPrefix + name); ok {
			*target = value
		}
	}

	intVars := map[string]*int{
		"SAMPLE_RATE":           &config.SampleRate,
		"CHUNK_SIZE":            &config.ChunkSize,
		"IDLE_BACKOFF_MS":       &config.IdleBackoffMs,
		"POSITION_X":            &config.PositionX,
		"POSITION_Y":            &config.PositionY,
		"JACK_POLL_INTERVAL_MS": &config.Jack.PollIntervalMs,
	}

	for name, target := range intVars {
		value, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}

		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s%s must be a number, got '%s'", ErrInvalidConfig, EnvPrefix, name, value)
		}

		*target = parsed
	}

	if value, ok := lookup(EnvPrefix + "OUTPUT"); ok {
		config.OutputType = model.OutputType(strings.ToLower(value))
	}

	if value, ok := lookup(EnvPrefix + "SIMULATION_SEED"); ok {
		seed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %sSIMULATION_SEED must be a number, got '%s'", ErrInvalidConfig, EnvPrefix, value)
		}

		config.Simulation.Seed = seed
	}

	return nil
}

func ApplyCommandLineArgs(config *model.Config, args *model.CommandLineArgs) {
	if args.Backend != "" {
		config.Backend = strings.ToLower(args.Backend)
	}

	if args.InputFile != "" {
		config.InputFile = args.InputFile

		// an input file on its own implies the file backend
		if args.Backend == "" {
			config.Backend = model.BackendFile
		}
	}

	if args.OutputType != "" {
		config.OutputType = model.OutputType(strings.ToLower(args.OutputType))
	}

	if args.LogLevel != "" {
		config.LogLevel = strings.ToLower(args.LogLevel)
	}

	if args.LogFile != "" {
		config.LogFile = args.LogFile
	}

	if args.Simulate {
		config.Backend = model.BackendSimulate
	}
}

func ValidateConfig(config *model.Config) error {
	err := validate.Struct(config)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, fmt.Sprintf("%s %s", e.Namespace(), formatValidationMessage(e)))
	}

	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(messages, "; "))
}

func formatValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "required_if":
		return fmt.Sprintf("is required when %s", e.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", e.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	default:
		return fmt.Sprintf("failed validation '%s'", e.Tag())
	}
}
