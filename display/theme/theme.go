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
package theme

import (
	"fox-meter/meter"

	"github.com/gdamore/tcell/v2"
)

const (
	// bar colors, #00FF00 / #FFFF00 / #FF0000
	BarGreen  = tcell.ColorLime
	BarYellow = tcell.ColorYellow
	BarRed    = tcell.ColorRed

	Blue      = tcell.ColorBlue
	Green     = tcell.Color71
	GreenRGB  = "5FAF5F"
	Red       = tcell.Color124
	RedRGB    = "AF0000"
	Yellow    = tcell.Color142
	YellowRGB = "AFAF00"
	Gray      = tcell.ColorGray
	GrayRGB   = "808080"

	BorderColor = tcell.Color243
)

var BarColors = map[meter.ColorClass]tcell.Color{
	meter.ColorNormal:  BarGreen,
	meter.ColorWarning: BarYellow,
	meter.ColorClip:    BarRed,
}

const (
	RuneClock  = rune(9201) // ⏱
	RuneRecord = rune(9210) // ⏺
	RuneStop   = rune(9209) // ⏹
	RuneFailed = rune(9932) // ⛌

	RuneBar = rune(9607) // ▇
)
