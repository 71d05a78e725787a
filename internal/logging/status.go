package logging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// StatusRecordMsg carries a log record into the UI status line.
type StatusRecordMsg struct {
	Summary string
	Level   slog.Level
}

// Sender is the part of *tea.Program the handler needs.
type Sender interface {
	Send(msg tea.Msg)
}

// StatusHandler is a slog.Handler that forwards records at or above its level
// to a running bubbletea program. Records that arrive before SetProgram are
// dropped.
//
// Handlers derived through WithAttrs and WithGroup share the program
// pointer, so one SetProgram call reaches all of them.
type StatusHandler struct {
	level   slog.Level
	program *atomic.Pointer[Sender]
	attrs   []slog.Attr
	groups  []string
}

func NewStatusHandler(level slog.Level) *StatusHandler {
	return &StatusHandler{level: level, program: &atomic.Pointer[Sender]{}}
}

// SetProgram enables delivery. Safe to call from any goroutine.
func (h *StatusHandler) SetProgram(p Sender) {
	h.program.Store(&p)
}

func (h *StatusHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *StatusHandler) Handle(_ context.Context, r slog.Record) error {
	p := h.program.Load()
	if p == nil {
		return nil
	}
	var b strings.Builder
	b.WriteString(r.Message)
	write := func(a slog.Attr) bool {
		if a.Equal(slog.Attr{}) {
			return true
		}
		key := a.Key
		if len(h.groups) > 0 {
			key = strings.Join(h.groups, ".") + "." + key
		}
		fmt.Fprintf(&b, " %s=%v", key, a.Value.Any())
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(write)
	(*p).Send(StatusRecordMsg{Summary: b.String(), Level: r.Level})
	return nil
}

func (h *StatusHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &next
}

func (h *StatusHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.groups = append(append([]string(nil), h.groups...), name)
	return &next
}
