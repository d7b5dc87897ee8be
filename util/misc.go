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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

const LevelTrace = slog.Level(-10)

var ErrNoYamlFile = errors.New("no yaml file found")

func FileExists(path string) bool {
	// if an error occurred or its a directory, we throw up
	if stat, err := os.Stat(path); err != nil || stat.IsDir() {
		return false
	}

	return true
}

func DirectoryExists(testDir string) bool {
	if stat, err := os.Stat(testDir); err != nil || !stat.IsDir() {
		return false
	}

	return true
}

func ResolveHomeDirPath(testPath string) (string, error) {
	if strings.HasPrefix(testPath, "~/") {
		homeDir, err := os.UserHomeDir()

		if err != nil {
			return "", fmt.Errorf("could not find user home dir: %w", err)
		}

		return path.Join(homeDir, testPath[2:]), nil
	}

	return testPath, nil
}

// FindYamlFile resolves fileName to an existing file. Relative names are
// looked up next to the executable, then in the working directory and
// finally in ~/.config/fox-meter.
func FindYamlFile(fileName string) (string, error) {
	if fileName == "" {
		return "", ErrNoYamlFile
	}

	if path.IsAbs(fileName) {
		if !FileExists(fileName) {
			return "", fmt.Errorf("the specified yaml file does not exist: %s", fileName)
		}

		return fileName, nil
	}

	if strings.HasPrefix(fileName, "~/") {
		homePath, err := ResolveHomeDirPath(fileName)
		if err != nil {
			return "", err
		}

		if !FileExists(homePath) {
			return "", fmt.Errorf("the specified yaml file does not exist: %s", homePath)
		}

		return homePath, nil
	}

	candidates := make([]string, 0, 3)

	// check path where executable lives
	if binPath, err := os.Executable(); err == nil {
		candidates = append(candidates, path.Join(filepath.Dir(binPath), fileName))
	}

	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, path.Join(cwd, fileName))
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, path.Join(homeDir, ".config", "fox-meter", fileName))
	}

	for _, candidate := range candidates {
		if FileExists(candidate) {
			return candidate, nil
		}
	}

	return "", ErrNoYamlFile
}

func ReadYamlFile(cfg interface{}, fileName string) error {
	filePath, err := FindYamlFile(fileName)
	if err != nil {
		return err
	}

	slog.Info("Reading yaml from " + filePath)

	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("decoding %s: %w", filePath, err)
	}

	return nil
}

func TraceLog(message string, args ...any) {
	slog.Log(context.Background(), LevelTrace, message, args...)
}

func ParseLogLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}

	return slog.LevelInfo, fmt.Errorf("unknown log level '%s'", name)
}

func FormatDuration(duration time.Duration) string {
	hours := int(duration / time.Hour)
	duration -= time.Duration(hours) * time.Hour

	minutes := int(duration / time.Minute)
	duration -= time.Duration(minutes) * time.Minute

	seconds := int(duration / time.Second)
	duration -= time.Duration(seconds) * time.Second

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, duration.Milliseconds())
}
