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

// dragTracker turns pointer events into relative moves.
type dragTracker struct {
	active bool
	lastX  int
	lastY  int
}

func (d *dragTracker) press(x, y int) {
	d.active = true
	d.lastX = x
	d.lastY = y
}

// move returns how far the pointer travelled since the last event. ok is
// false when no drag is in progress.
func (d *dragTracker) move(x, y int) (dx int, dy int, ok bool) {
	if !d.active {
		return 0, 0, false
	}

	dx = x - d.lastX
	dy = y - d.lastY
	d.lastX = x
	d.lastY = y

	return dx, dy, true
}

func (d *dragTracker) release() {
	d.active = false
}
