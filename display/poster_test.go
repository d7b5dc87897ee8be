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

import (
	"slices"
	"sync"
	"testing"
)

func TestLevelPosterCoalesces(t *testing.T) {
	queued := make([]func(), 0)
	applied := make([]int, 0)

	poster := newLevelPoster(
		func(f func()) { queued = append(queued, f) },
		func(level int) { applied = append(applied, level) },
	)

	poster.post(1)
	poster.post(2)
	poster.post(3)

	if len(queued) != 1 {
		t.Fatalf("queued %d updates, want 1", len(queued))
	}

	queued[0]()

	if !slices.Equal(applied, []int{3}) {
		t.Errorf("applied = %v, want [3]", applied)
	}

	// once the pending update ran, the next post queues again
	poster.post(4)

	if len(queued) != 2 {
		t.Fatalf("queued %d updates, want 2", len(queued))
	}

	queued[1]()

	if !slices.Equal(applied, []int{3, 4}) {
		t.Errorf("applied = %v, want [3 4]", applied)
	}
}

func TestLevelPosterConcurrent(t *testing.T) {
	updates := make(chan func(), 1)
	var last int

	poster := newLevelPoster(
		func(f func()) { updates <- f },
		func(level int) { last = level },
	)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for level := 1; level <= 1000; level++ {
			poster.post(level)
		}
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	for {
		select {
		case f := <-updates:
			f()
		case <-done:
			// drain the final update
			select {
			case f := <-updates:
				f()
			default:
			}

			if last != 1000 {
				t.Errorf("last applied level = %d, want 1000", last)
			}
			return
		}
	}
}
