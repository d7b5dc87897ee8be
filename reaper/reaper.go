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

// Package reaper runs the shutdown callbacks of the process exactly once, in
// the reverse order they were added, and lets long lived workers hold the
// process open until they are done.
package reaper

import (
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
)

type callback struct {
	name         string
	callbackFunc func()
}

type Reaper struct {
	reaped atomic.Bool

	lock          sync.Mutex
	callbacks     []callback
	registrations []string
	waitgroup     sync.WaitGroup
}

var defaultReaper = New()

func New() *Reaper {
	return &Reaper{
		callbacks:     make([]callback, 0),
		registrations: make([]string, 0),
	}
}

func (r *Reaper) Reaped() bool {
	return r.reaped.Load()
}

// Reap runs every callback, newest first. Only the first call does anything,
// later calls (including ones made from inside a callback) return at once.
func (r *Reaper) Reap() {
	if !r.reaped.CompareAndSwap(false, true) {
		return
	}

	r.lock.Lock()
	callbacksReversed := slices.Clone(r.callbacks)
	r.lock.Unlock()

	slices.Reverse(callbacksReversed)

	for _, callback := range callbacksReversed {
		slog.Info("reaper: calling reap callback for '" + callback.name + "'")
		callback.callbackFunc()
	}
}

func (r *Reaper) Callback(name string, callbackFunc func()) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.callbacks = append(r.callbacks, callback{
		name:         name,
		callbackFunc: callbackFunc,
	})
}

func (r *Reaper) Register(name string) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if slices.Contains(r.registrations, name) {
		slog.Warn("reaper: already registered '" + name + "'")
		return
	}

	r.registrations = append(r.registrations, name)
	r.waitgroup.Add(1)
	slog.Debug("reaper: registered '" + name + "'")
}

func (r *Reaper) Done(name string) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if !slices.Contains(r.registrations, name) {
		slog.Warn("reaper: already done or doesn't exist: '" + name + "'")
		return
	}

	r.registrations = slices.DeleteFunc(r.registrations, func(test string) bool {
		return test == name
	})

	slog.Debug("reaper: done: '" + name + "'")
	r.waitgroup.Done()
}

// Wait blocks until every registered worker is done.
func (r *Reaper) Wait() {
	r.waitgroup.Wait()
}

func Reaped() bool {
	return defaultReaper.Reaped()
}

func Reap() {
	defaultReaper.Reap()
}

func Callback(name string, callbackFunc func()) {
	defaultReaper.Callback(name, callbackFunc)
}

func Register(name string) {
	defaultReaper.Register(name)
}

func Done(name string) {
	defaultReaper.Done(name)
}

func Wait() {
	defaultReaper.Wait()
}
