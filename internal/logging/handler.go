package logging

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// RunContext is the state of one massprops invocation that every log record
// carries: the aircraft being built and, once a report is saved, its run id.
// It is safe to update while other goroutines log.
type RunContext struct {
	mu       sync.RWMutex
	aircraft string
	runID    string
}

// SetAircraft records the aircraft name. Empty clears it.
func (c *RunContext) SetAircraft(name string) {
	c.mu.Lock()
	c.aircraft = name
	c.mu.Unlock()
}

// SetRunID records the storage reference of the saved report.
func (c *RunContext) SetRunID(id string) {
	c.mu.Lock()
	c.runID = id
	c.mu.Unlock()
}

func (c *RunContext) attrs() []slog.Attr {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var attrs []slog.Attr
	if c.aircraft != "" {
		attrs = append(attrs, slog.String("aircraft", c.aircraft))
	}
	if c.runID != "" {
		attrs = append(attrs, slog.String("run", c.runID))
	}
	return attrs
}

// runHandler stamps each record with the run context and hands it to every
// sink that accepts its level: the stderr text handler and, when OTel is
// enabled, the otelslog bridge.
type runHandler struct {
	sinks []slog.Handler
	run   *RunContext
}

func newRunHandler(run *RunContext, sinks ...slog.Handler) *runHandler {
	h := &runHandler{run: run}
	for _, s := range sinks {
		if s != nil {
			h.sinks = append(h.sinks, s)
		}
	}
	return h
}

func (h *runHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, s := range h.sinks {
		if s.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle delivers r to every enabled sink. A failing sink does not stop the
// others; their errors are joined.
func (h *runHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.run != nil {
		r.AddAttrs(h.run.attrs()...)
	}
	var errs []error
	for _, s := range h.sinks {
		if !s.Enabled(ctx, r.Level) {
			continue
		}
		if err := s.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *runHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(func(s slog.Handler) slog.Handler { return s.WithAttrs(attrs) })
}

func (h *runHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.derive(func(s slog.Handler) slog.Handler { return s.WithGroup(name) })
}

func (h *runHandler) derive(fn func(slog.Handler) slog.Handler) *runHandler {
	sinks := make([]slog.Handler, len(h.sinks))
	for i, s := range h.sinks {
		sinks[i] = fn(s)
	}
	return &runHandler{sinks: sinks, run: h.run}
}
