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
package custom

import (
	"fox-meter/meter"

	"code.rocketnine.space/tslocum/cview"
	"github.com/gdamore/tcell/v2"
)

// logical units covered by one terminal cell
const (
	unitsPerColumn = 2
	unitsPerRow    = 8
)

// BarStack draws a meter.BarDisplay as a vertical stack with bar 0 at the
// bottom. It floats at an origin that can be moved around the screen.
type BarStack struct {
	*cview.Box

	display *meter.BarDisplay

	// Rune to use when rendering a lit bar.
	filledRune rune

	colors map[meter.ColorClass]tcell.Color

	originX int
	originY int
}

func NewBarStack(display *meter.BarDisplay, filledRune rune, colors map[meter.ColorClass]tcell.Color) *BarStack {
	p := &BarStack{
		Box:        cview.NewBox(),
		display:    display,
		filledRune: filledRune,
		colors:     colors,
	}

	p.SetBorder(false)
	p.SetPadding(0, 0, 0, 0)
	p.SetBackgroundColor(cview.Styles.PrimitiveBackgroundColor)
	p.SetOrigin(0, 0)

	return p
}

func BarStackWidth() int {
	return meter.BarWidth / unitsPerColumn
}

func BarStackHeight() int {
	return meter.BarCount * rowsPerBar()
}

func rowsPerBar() int {
	return meter.BarHeight / unitsPerRow
}

func (p *BarStack) SetOrigin(x, y int) {
	p.originX = max(x, 0)
	p.originY = max(y, 0)

	p.SetRect(p.originX, p.originY, BarStackWidth(), BarStackHeight())
}

func (p *BarStack) GetOrigin() (int, int) {
	return p.originX, p.originY
}

// Move shifts the stack by the given number of cells. It never leaves the
// top left corner of the screen.
func (p *BarStack) Move(dx, dy int) {
	p.SetOrigin(p.originX+dx, p.originY+dy)
}

func (p *BarStack) Contains(x, y int) bool {
	return x >= p.originX && x < p.originX+BarStackWidth() &&
		y >= p.originY && y < p.originY+BarStackHeight()
}

// Draw draws this primitive onto the screen. Unlit bars leave the
// background showing.
func (p *BarStack) Draw(screen tcell.Screen) {
	if !p.GetVisible() {
		return
	}

	p.Box.Draw(screen)

	x, y, width, _ := p.GetInnerRect()
	bars := p.display.Bars()

	// top of the stack first
	for i := meter.BarCount - 1; i >= 0; i-- {
		rect := meter.Render(bars[i])
		if !rect.Filled {
			continue
		}

		style := tcell.StyleDefault.Foreground(p.colors[rect.Class]).Background(p.GetBackgroundColor())
		row := y + (meter.BarCount-1-i)*rowsPerBar()
		columns := min(rect.Width/unitsPerColumn, width)

		for h := 0; h < rect.Height/unitsPerRow; h++ {
			for w := 0; w < columns; w++ {
				screen.SetContent(x+w, row+h, p.filledRune, nil, style)
			}
		}
	}
}
