package toolspec

import (
	"context"
	"time"
)

// compileOptions hold optional compiler settings.
type compileOptions struct {
	reserved string
}

// CompileOption configures a compilation (e.g. WithReservedParam).
type CompileOption func(*compileOptions)

// WithReservedParam overrides the reserved context-injection parameter name
// omitted from compiled schemas. Default is ReservedContextParam.
func WithReservedParam(name string) CompileOption {
	return func(o *compileOptions) {
		o.reserved = name
	}
}

// RegistryOption configures a Registry.
type RegistryOption func(*registryOptions)

type registryOptions struct {
	timeout        time.Duration
	maxConcurrency int
	recoverPanics  bool
	compileOpts    []CompileOption
	onBefore       func(context.Context, Call)
	onAfter        func(context.Context, Call, Result, time.Duration)
}

// WithDefaultTimeout sets the default execution timeout for tools.
func WithDefaultTimeout(d time.Duration) RegistryOption {
	return func(o *registryOptions) {
		o.timeout = d
	}
}

// WithMaxConcurrency limits concurrent tool executions (semaphore).
// Pass 0 or negative to disable the semaphore (unlimited concurrency).
func WithMaxConcurrency(n int) RegistryOption {
	return func(o *registryOptions) {
		o.maxConcurrency = n
	}
}

// WithRecoverPanics enables panic recovery in Execute (returns SystemError).
func WithRecoverPanics(enable bool) RegistryOption {
	return func(o *registryOptions) {
		o.recoverPanics = enable
	}
}

// WithCompileOptions sets the compiler options the registry uses when building
// descriptors for its tools (e.g. a custom reserved parameter name).
func WithCompileOptions(opts ...CompileOption) RegistryOption {
	return func(o *registryOptions) {
		o.compileOpts = opts
	}
}

// WithOnBeforeExecute sets a hook called before each tool execution.
func WithOnBeforeExecute(fn func(context.Context, Call)) RegistryOption {
	return func(o *registryOptions) {
		o.onBefore = fn
	}
}

// WithOnAfterExecute sets a hook called after each tool execution
// (success or error) with the final result and duration.
func WithOnAfterExecute(fn func(context.Context, Call, Result, time.Duration)) RegistryOption {
	return func(o *registryOptions) {
		o.onAfter = fn
	}
}
