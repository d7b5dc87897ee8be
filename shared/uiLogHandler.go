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
package shared

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// LogWriter is the part of a UI that can show log lines.
type LogWriter interface {
	WriteLevelLog(level slog.Level, message string)
}

// UiLogHandler is a slog handler that writes records into the UI log view.
// Records at error level or above also fire the error callback.
type UiLogHandler struct {
	level         slog.Leveler
	ui            LogWriter
	errorCallback func(string)
	attrs         []slog.Attr
	group         string
}

func NewUiLogHandler(out LogWriter, level slog.Leveler, errorCallback func(string)) *UiLogHandler {
	h := &UiLogHandler{
		level:         level,
		ui:            out,
		errorCallback: errorCallback,
	}

	return h
}

func (h *UiLogHandler) Handle(ctx context.Context, r slog.Record) error {
	var message strings.Builder
	message.WriteString(r.Message)

	for _, attr := range h.attrs {
		writeAttr(&message, "", attr)
	}

	r.Attrs(func(attr slog.Attr) bool {
		writeAttr(&message, h.group, attr)
		return true
	})

	h.ui.WriteLevelLog(r.Level, message.String())

	if r.Level >= slog.LevelError && h.errorCallback != nil {
		h.errorCallback(r.Message)
	}

	return nil
}

func (h *UiLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *UiLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)

	for _, attr := range attrs {
		if h.group != "" {
			attr.Key = h.group + "." + attr.Key
		}
		clone.attrs = append(clone.attrs, attr)
	}

	return &clone
}

func (h *UiLogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	if h.group != "" {
		clone.group = h.group + "." + name
	} else {
		clone.group = name
	}

	return &clone
}

func writeAttr(message *strings.Builder, group string, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}

	key := attr.Key
	if group != "" {
		key = group + "." + key
	}

	fmt.Fprintf(message, " %s=%s", key, attr.Value.Resolve().String())
}
