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

// Package meter turns loudness levels into the ten bar thermometer and drives
// the capture loop that feeds it.
package meter

const (
	BarCount = 10

	// logical size of one bar
	BarWidth  = 24
	BarHeight = 8
)

type ColorClass int

const (
	ColorNormal ColorClass = iota
	ColorWarning
	ColorClip
)

var colorClassNames = map[ColorClass]string{
	ColorNormal:  "normal",
	ColorWarning: "warning",
	ColorClip:    "clip",
}

func (c ColorClass) String() string {
	if name, ok := colorClassNames[c]; ok {
		return name
	}

	return "unknown"
}

// ClassForIndex returns the fixed color of the bar at index.
func ClassForIndex(index int) ColorClass {
	switch {
	case index >= 8:
		return ColorClip
	case index >= 6:
		return ColorWarning
	default:
		return ColorNormal
	}
}

type Bar struct {
	Class ColorClass
	Lit   bool
}

// Rect is the drawable form of a bar. Unlit bars are transparent.
type Rect struct {
	Width  int
	Height int
	Filled bool
	Class  ColorClass
}

// BarDisplay holds the ten bars. Index 0 is the bottom of the stack.
// It is owned by the UI goroutine and is not safe for concurrent use.
type BarDisplay struct {
	bars [BarCount]Bar
}

func NewBarDisplay() *BarDisplay {
	display := &BarDisplay{}

	for i := range display.bars {
		display.bars[i] = Bar{Class: ClassForIndex(i)}
	}

	return display
}

// Update lights every bar whose index is below level.
func (display *BarDisplay) Update(level int) {
	for i := range display.bars {
		display.bars[i].Lit = level > i
	}
}

// Bars returns a copy of the bar set.
func (display *BarDisplay) Bars() [BarCount]Bar {
	return display.bars
}

func (display *BarDisplay) Bar(index int) Bar {
	return display.bars[index]
}

func (display *BarDisplay) LitCount() int {
	count := 0

	for _, bar := range display.bars {
		if bar.Lit {
			count++
		}
	}

	return count
}

func Render(bar Bar) Rect {
	return Rect{
		Width:  BarWidth,
		Height: BarHeight,
		Filled: bar.Lit,
		Class:  bar.Class,
	}
}
