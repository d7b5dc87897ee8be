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
package display

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
)

type fewColorScreen struct {
	tcell.Screen
}

func (fewColorScreen) Colors() int {
	return 2
}

func TestCheckSupportRejectsNonTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := CheckSupport(f); !errors.Is(err, ErrDisplayUnsupported) {
		t.Errorf("CheckSupport(file) error = %v, want ErrDisplayUnsupported", err)
	}
}

func TestCheckScreen(t *testing.T) {
	if err := checkScreen(tcell.NewSimulationScreen("UTF-8")); err != nil {
		t.Errorf("checkScreen(simulation) error = %v", err)
	}

	screen := fewColorScreen{Screen: tcell.NewSimulationScreen("UTF-8")}
	if err := checkScreen(screen); !errors.Is(err, ErrDisplayUnsupported) {
		t.Errorf("checkScreen(2 colors) error = %v, want ErrDisplayUnsupported", err)
	}
}
