package toolspec

import (
	"context"
	"encoding/json"
	"time"
)

// Handler executes a tool call. Args is the raw JSON argument payload as
// produced by the model; the handler owns its decoding. The returned value is
// marshaled by the registry (strings pass through unchanged).
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

// Tool binds a callable descriptor to its handler. The embedded Callable is
// what the compiler advertises to the model; Handler is what the registry runs.
type Tool struct {
	Callable
	Handler Handler
	// Timeout overrides the registry's default execution timeout when > 0.
	Timeout time.Duration
}

// Call is a single execution request (as produced by the model).
type Call struct {
	ID       string
	ToolName string
	Args     json.RawMessage
}

// Result is the outcome of one tool execution. Content is the marshaled
// handler output; Err is set on failure (the content is then empty).
type Result struct {
	CallID   string
	ToolName string
	Content  string
	Err      error
}
