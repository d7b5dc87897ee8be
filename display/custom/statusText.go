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
	"fmt"

	"code.rocketnine.space/tslocum/cview"
	"github.com/gdamore/tcell/v2"
)

// StatusText is a "Header: value" row. The value may be changed from any
// goroutine.
type StatusText struct {
	grid       *cview.Grid
	headerView *cview.TextView
	valueView  *cview.TextView
}

func NewStatusText(headerWidth int, name string, initialValue string) *StatusText {
	field := &StatusText{
		grid:       cview.NewGrid(),
		headerView: cview.NewTextView(),
		valueView:  cview.NewTextView(),
	}

	field.grid.SetPadding(0, 0, 0, 0)
	field.grid.SetColumns(headerWidth, -1)
	field.grid.SetRows(1)

	field.headerView.SetTextAlign(cview.AlignRight)
	field.headerView.SetText(fmt.Sprintf("%s: ", name))
	field.grid.AddItem(field.headerView, 0, 0, 1, 1, 0, 0, false)

	field.valueView.SetText(initialValue)
	field.grid.AddItem(field.valueView, 0, 1, 1, 1, 0, 0, false)

	return field
}

func (field *StatusText) SetCurrentValue(value string) {
	field.valueView.SetText(value)
}

func (field *StatusText) GetCurrentValue() string {
	return field.valueView.GetText(true)
}

func (field *StatusText) SetColor(color tcell.Color) {
	field.valueView.SetTextColor(color)
}

func (field *StatusText) GetGrid() *cview.Grid {
	return field.grid
}
