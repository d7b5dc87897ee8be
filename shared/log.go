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
package shared

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

var (
	stockStderr *os.File
	stockStdout *os.File

	hijackLock    sync.Mutex
	hijackWriters []*os.File
	hijackDone    sync.WaitGroup
)

// HijackLogging routes anything written to stdout or stderr into slog, so
// stray prints from native audio libraries do not tear the TUI.
func HijackLogging() {
	hijackLock.Lock()
	defer hijackLock.Unlock()

	if hijackWriters != nil {
		return
	}

	stockStdout = os.Stdout
	stockStderr = os.Stderr

	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		fmt.Fprintln(stockStderr, err)
		return
	}

	stderrR, stderrW, err := os.Pipe()
	if err != nil {
		fmt.Fprintln(stockStderr, err)
		stdoutR.Close()
		stdoutW.Close()
		return
	}

	hijackDone.Add(2)
	go logProcessor(stdoutR, slog.LevelInfo)
	go logProcessor(stderrR, slog.LevelWarn)

	hijackWriters = []*os.File{stdoutW, stderrW}

	os.Stdout = stdoutW
	os.Stderr = stderrW
}

// RestoreLogging puts the original stdout and stderr back and waits for the
// captured output to be flushed into slog.
func RestoreLogging() {
	hijackLock.Lock()
	defer hijackLock.Unlock()

	if hijackWriters == nil {
		return
	}

	os.Stdout = stockStdout
	os.Stderr = stockStderr

	for _, writer := range hijackWriters {
		writer.Close()
	}

	hijackDone.Wait()
	hijackWriters = nil
}

// StockStderr is the stderr the process started with, even while it is
// hijacked.
func StockStderr() *os.File {
	hijackLock.Lock()
	defer hijackLock.Unlock()

	if hijackWriters != nil {
		return stockStderr
	}

	return os.Stderr
}

func logProcessor(pipe *os.File, level slog.Level) {
	defer hijackDone.Done()
	defer pipe.Close()

	scanner := bufio.NewScanner(pipe)

	for scanner.Scan() {
		slog.Log(context.Background(), level, scanner.Text())
	}
}
