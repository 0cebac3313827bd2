package toolspec

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sync"
	"time"
)

// Registry holds tools and executes them with timeout, semaphore, and optional
// panic recovery. It also compiles capability descriptors for everything it
// holds; see Descriptors.
type Registry struct {
	tools       map[string]Tool // wrapped with middlewares, used by Execute
	rawTools    map[string]Tool // unwrapped, used by Use() to re-apply middlewares from scratch
	sem         chan struct{}
	opts        registryOptions
	done        chan struct{}
	running     sync.WaitGroup
	mu          sync.Mutex
	middlewares []Middleware
}

// NewRegistry creates a Registry with the given options.
func NewRegistry(opts ...RegistryOption) *Registry {
	o := registryOptions{
		timeout:        5 * time.Second,
		maxConcurrency: 10,
		recoverPanics:  true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	var sem chan struct{}
	if o.maxConcurrency > 0 {
		sem = make(chan struct{}, o.maxConcurrency)
	}
	return &Registry{
		tools:    make(map[string]Tool),
		rawTools: make(map[string]Tool),
		sem:      sem,
		opts:     o,
		done:     make(chan struct{}),
	}
}

// Register adds a tool. Stored middlewares (see Use) are applied to the tool
// before registration. If a tool with the same name already exists, it is
// replaced. Safe for concurrent use with Execute and other Register calls.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := t.Name
	r.rawTools[name] = t
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		t = r.middlewares[i](t)
	}
	r.tools[name] = t
}

// GetTool returns the tool with the given name (after middlewares are applied),
// or (Tool{}, false) if not found.
func (r *Registry) GetTool(name string) (Tool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tools[name]
	return t, ok
}

// GetAllTools returns all registered tools sorted by name for deterministic order.
func (r *Registry) GetAllTools() []Tool {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	slices.Sort(names)
	out := make([]Tool, 0, len(names))
	for _, name := range names {
		out = append(out, r.tools[name])
	}
	return out
}

// Descriptors batch-compiles a capability descriptor for every registered tool,
// sorted by name. A tool whose signature cannot be compiled yields a result
// carrying the error; the rest of the batch is unaffected.
func (r *Registry) Descriptors() []CompileResult {
	tools := r.GetAllTools()
	callables := make([]Callable, 0, len(tools))
	for _, t := range tools {
		callables = append(callables, t.Callable)
	}
	r.mu.Lock()
	opts := r.opts.compileOpts
	r.mu.Unlock()
	return CompileAll(callables, opts...)
}

// Execute runs one tool call and returns its result. The after-execution hook
// (WithOnAfterExecute) is always invoked via defer with the final Result.
func (r *Registry) Execute(ctx context.Context, call Call) (res Result) {
	res.CallID = call.ID
	res.ToolName = call.ToolName

	r.mu.Lock()
	select {
	case <-r.done:
		r.mu.Unlock()
		res.Err = ErrShutdown
		return res
	default:
	}
	tool, ok := r.tools[call.ToolName]
	if !ok {
		r.mu.Unlock()
		res.Err = ErrToolNotFound
		return res
	}
	r.running.Add(1)
	r.mu.Unlock()

	if err := r.acquireSemaphore(ctx); err != nil {
		r.running.Done()
		if errors.Is(err, context.DeadlineExceeded) {
			err = ErrTimeout
		}
		res.Err = err
		return res
	}
	defer r.releaseSemaphore()
	defer r.running.Done()

	timeout := r.opts.timeout
	if tool.Timeout > 0 {
		timeout = tool.Timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	// Ensure the after-execution hook always sees the final result. The recover
	// defer is registered after it so it runs first on panic and sets res.Err
	// before the hook runs.
	defer func() {
		if r.opts.onAfter != nil {
			r.opts.onAfter(ctx, call, res, time.Since(start))
		}
	}()
	if r.opts.recoverPanics {
		defer func() {
			if p := recover(); p != nil {
				res.Content = ""
				res.Err = &SystemError{Err: &panicError{p: p}}
			}
		}()
	}

	if r.opts.onBefore != nil {
		r.opts.onBefore(ctx, call)
	}

	out, err := tool.Handler(ctx, call.Args)
	if err != nil {
		res.Err = err
		return res
	}
	res.Content, res.Err = marshalContent(out)
	return res
}

// marshalContent renders a handler's return value: strings pass through, nil
// becomes empty, everything else is JSON-encoded.
func marshalContent(out any) (string, error) {
	switch v := out.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", &SystemError{Err: err}
		}
		return string(b), nil
	}
}

func (r *Registry) acquireSemaphore(ctx context.Context) error {
	if r.sem == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	select {
	case r.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Registry) releaseSemaphore() {
	if r.sem != nil {
		<-r.sem
	}
}

// ExecuteBatch runs all calls in parallel and collects every result in input
// order. Partial success: one failing call does not cancel the others.
func (r *Registry) ExecuteBatch(ctx context.Context, calls []Call) []Result {
	results := make([]Result, len(calls))
	var wg sync.WaitGroup
	for i, call := range calls {
		wg.Add(1)
		go func(i int, call Call) {
			defer wg.Done()
			results[i] = r.Execute(ctx, call)
		}(i, call)
	}
	wg.Wait()
	return results
}

// Shutdown closes the registry for new calls and waits for in-flight
// executions or ctx to cancel.
func (r *Registry) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	select {
	case <-r.done:
		r.mu.Unlock()
		return nil
	default:
		close(r.done)
	}
	r.mu.Unlock()
	done := make(chan struct{})
	go func() {
		r.running.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
