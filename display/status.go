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

type Status int

const (
	StatusStarting Status = iota
	StatusCapturing
	StatusShuttingDown
	StatusStopped
	StatusFailed
)

var statusNames = map[Status]string{
	StatusStarting:     "Starting",
	StatusCapturing:    "Capturing",
	StatusShuttingDown: "Shutting Down",
	StatusStopped:      "Stopped",
	StatusFailed:       "Failed",
}

func (status Status) String() string {
	if name, ok := statusNames[status]; ok {
		return name
	}

	return "Unknown"
}
