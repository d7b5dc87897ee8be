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

import "testing"

func TestDragTracker(t *testing.T) {
	var drag dragTracker

	if _, _, ok := drag.move(5, 5); ok {
		t.Fatal("move() without press reported a drag")
	}

	drag.press(10, 20)

	steps := []struct {
		x, y   int
		dx, dy int
	}{
		{12, 20, 2, 0},
		{12, 17, 0, -3},
		{7, 19, -5, 2},
	}

	for _, step := range steps {
		dx, dy, ok := drag.move(step.x, step.y)
		if !ok || dx != step.dx || dy != step.dy {
			t.Errorf("move(%d, %d) = (%d, %d, %v), want (%d, %d, true)", step.x, step.y, dx, dy, ok, step.dx, step.dy)
		}
	}

	drag.release()

	if _, _, ok := drag.move(0, 0); ok {
		t.Error("move() after release reported a drag")
	}
}
