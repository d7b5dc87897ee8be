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

import "sync/atomic"

// levelPoster hands levels from the capture goroutine to the UI goroutine.
// Only the newest level is kept and at most one update is queued at a time,
// so levels that arrive faster than the UI draws are coalesced.
type levelPoster struct {
	latest  atomic.Int64
	pending atomic.Bool

	queue func(func())
	apply func(level int)
}

func newLevelPoster(queue func(func()), apply func(level int)) *levelPoster {
	return &levelPoster{
		queue: queue,
		apply: apply,
	}
}

func (p *levelPoster) post(level int) {
	p.latest.Store(int64(level))

	if !p.pending.CompareAndSwap(false, true) {
		return
	}

	p.queue(p.flush)
}

// flush runs on the UI goroutine. pending is cleared before the level is
// read so a post racing with it is never lost.
func (p *levelPoster) flush() {
	p.pending.Store(false)
	p.apply(int(p.latest.Load()))
}
