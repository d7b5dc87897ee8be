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
package meter

import (
	"fmt"
	"testing"

	"fox-meter/audio"
)

func TestBarColors(t *testing.T) {
	want := [BarCount]ColorClass{
		ColorNormal, ColorNormal, ColorNormal, ColorNormal, ColorNormal, ColorNormal,
		ColorWarning, ColorWarning,
		ColorClip, ColorClip,
	}

	display := NewBarDisplay()

	for i, bar := range display.Bars() {
		if bar.Class != want[i] {
			t.Errorf("bar %d class = %s, want %s", i, bar.Class, want[i])
		}
	}

	// colors survive updates
	display.Update(100)
	display.Update(-100)

	for i, bar := range display.Bars() {
		if bar.Class != want[i] {
			t.Errorf("after update bar %d class = %s, want %s", i, bar.Class, want[i])
		}
	}
}

func TestUpdateThermometer(t *testing.T) {
	tests := []struct {
		level int
		lit   int
	}{
		{-50, 0},
		{-1, 0},
		{0, 0},
		{1, 1},
		{5, 5},
		{9, 9},
		{10, 10},
		{200, 10},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("level %d", tt.level), func(t *testing.T) {
			display := NewBarDisplay()
			display.Update(tt.level)

			if got := display.LitCount(); got != tt.lit {
				t.Errorf("LitCount() = %d, want %d", got, tt.lit)
			}

			for i, bar := range display.Bars() {
				if bar.Lit != (tt.level > i) {
					t.Errorf("bar %d lit = %v, want %v", i, bar.Lit, tt.level > i)
				}
			}
		})
	}
}

func TestUpdateHasNoMemory(t *testing.T) {
	display := NewBarDisplay()

	display.Update(10)
	display.Update(3)

	if got := display.LitCount(); got != 3 {
		t.Errorf("LitCount() = %d after dropping to 3, want 3", got)
	}

	display.Update(3)
	if got := display.LitCount(); got != 3 {
		t.Errorf("LitCount() = %d after repeating 3, want 3", got)
	}
}

func TestBarsReturnsCopy(t *testing.T) {
	display := NewBarDisplay()

	bars := display.Bars()
	bars[0].Lit = true
	bars[0].Class = ColorClip

	if display.Bar(0).Lit || display.Bar(0).Class != ColorNormal {
		t.Errorf("modifying the copy changed the display: %+v", display.Bar(0))
	}
}

func TestRender(t *testing.T) {
	display := NewBarDisplay()
	display.Update(9)

	lit := Render(display.Bar(8))
	if !lit.Filled || lit.Class != ColorClip || lit.Width != 24 || lit.Height != 8 {
		t.Errorf("Render(bar 8) = %+v", lit)
	}

	unlit := Render(display.Bar(9))
	if unlit.Filled {
		t.Errorf("Render(bar 9) = %+v, want transparent", unlit)
	}
}

func TestUpdateSweep(t *testing.T) {
	display := NewBarDisplay()

	for level := -60; level <= 60; level++ {
		display.Update(level)
		bars := display.Bars()

		for i, bar := range bars {
			if bar.Lit != (level > i) {
				t.Errorf("level %d: bar %d lit = %v", level, i, bar.Lit)
			}

			// thermometer: nothing lit above an unlit bar
			if i > 0 && bar.Lit && !bars[i-1].Lit {
				t.Errorf("level %d: bar %d lit above unlit bar %d", level, i, i-1)
			}
		}
	}
}

func TestConstantChunkLightsNothing(t *testing.T) {
	chunk := make(audio.Chunk, audio.DefaultChunkSize)
	for i := range chunk {
		chunk[i] = 70
	}

	level := audio.EstimateLevel(chunk)
	if level != -50 {
		t.Fatalf("EstimateLevel() = %d, want -50", level)
	}

	display := NewBarDisplay()
	display.Update(level)

	if got := display.LitCount(); got != 0 {
		t.Errorf("LitCount() = %d, want 0", got)
	}
}
