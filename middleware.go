package toolspec

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// Middleware wraps a Tool with cross-cutting behavior (logging, recovery).
// Implementations return a copy of the tool with its Handler wrapped.
type Middleware func(Tool) Tool

// WithLogging returns a middleware that logs start, end, duration, and errors.
func WithLogging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(t Tool) Tool {
		next := t.Handler
		name := t.Name
		t.Handler = func(ctx context.Context, args json.RawMessage) (any, error) {
			logger.Info("tool start", "tool", name)
			start := time.Now()
			out, err := next(ctx, args)
			dur := time.Since(start)
			if err != nil {
				logger.Error("tool error", "tool", name, "duration", dur, "error", err)
				return nil, err
			}
			logger.Info("tool end", "tool", name, "duration", dur)
			return out, nil
		}
		return t
	}
}

// WithRecovery returns a middleware that recovers panics and returns SystemError.
func WithRecovery() Middleware {
	return func(t Tool) Tool {
		next := t.Handler
		t.Handler = func(ctx context.Context, args json.RawMessage) (out any, err error) {
			defer func() {
				if p := recover(); p != nil {
					out = nil
					err = &SystemError{Err: &panicError{p: p}}
				}
			}()
			return next(ctx, args)
		}
		return t
	}
}

// WithTimeoutMiddleware returns a middleware that enforces a per-tool timeout.
// When both the registry default timeout and this middleware apply, the
// effective timeout is the minimum of the two (inner context cancels first).
func WithTimeoutMiddleware(d time.Duration) Middleware {
	return func(t Tool) Tool {
		if d <= 0 {
			return t
		}
		next := t.Handler
		t.Handler = func(ctx context.Context, args json.RawMessage) (any, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return next(ctx, args)
		}
		return t
	}
}

// Use stores the given middlewares and reapplies them from scratch to all
// registered tools (onion order: first middleware is outermost). Tools
// registered after Use will also get these middlewares applied. Calling Use
// multiple times replaces the chain and rewraps from raw tools, avoiding
// double-wrapping.
func (r *Registry) Use(middlewares ...Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middlewares = middlewares
	for name, raw := range r.rawTools {
		t := raw
		for i := len(middlewares) - 1; i >= 0; i-- {
			t = middlewares[i](t)
		}
		r.tools[name] = t
	}
}
