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
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"
)

const minimumColors = 8

var ErrDisplayUnsupported = errors.New("display not supported")

// CheckSupport makes sure out is a terminal that can show the colored bars.
func CheckSupport(out *os.File) error {
	if !term.IsTerminal(int(out.Fd())) {
		return fmt.Errorf("%w: %s is not a terminal", ErrDisplayUnsupported, out.Name())
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDisplayUnsupported, err)
	}

	return checkScreen(screen)
}

func checkScreen(screen tcell.Screen) error {
	if err := screen.Init(); err != nil {
		return fmt.Errorf("%w: %w", ErrDisplayUnsupported, err)
	}
	defer screen.Fini()

	if colors := screen.Colors(); colors < minimumColors {
		return fmt.Errorf("%w: terminal shows %d colors, need at least %d", ErrDisplayUnsupported, colors, minimumColors)
	}

	return nil
}
