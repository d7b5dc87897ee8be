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

type JsonStatus struct {
	MessageType string `json:"message_type"`

	Session string `json:"session"`
	Status  string `json:"status"`

	Source     string `json:"source"`
	Format     string `json:"format"`
	Uptime     string `json:"uptime"`
	Chunks     uint64 `json:"chunks"`
	EmptyReads uint64 `json:"empty_reads"`
	ErrorCount int    `json:"error_count"`
	Level      int    `json:"level"`
}

type JsonLog struct {
	MessageType string `json:"message_type"`

	Date    string `json:"date"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

type JsonBars struct {
	MessageType string `json:"message_type"`

	Level int       `json:"level"`
	Lit   int       `json:"lit"`
	Bars  []JsonBar `json:"bars"`
}

type JsonBar struct {
	Index int    `json:"index"`
	Class string `json:"class"`
	Lit   bool   `json:"lit"`
}
