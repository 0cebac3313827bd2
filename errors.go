package toolspec

import (
	"errors"
	"fmt"
)

// Sentinel errors for toolspec. Use errors.Is to check.
var (
	ErrToolNotFound = errors.New("tool not found")
	ErrTimeout      = errors.New("tool execution timeout")
	ErrShutdown     = errors.New("registry is shutting down")
)

// ModelingError reports a contract violation in the source type declarations:
// a mapping annotation with a non-string key, or a record that directly or
// transitively contains itself. It is propagated to the compiler's caller,
// never silently downgraded.
type ModelingError struct {
	Reason string
}

func (e *ModelingError) Error() string {
	return "invalid type declaration: " + e.Reason
}

// ReflectionError reports that a callable's signature could not be obtained at
// all. It is fatal for that one callable only; CompileAll isolates it per
// callable and continues with the rest of the batch.
type ReflectionError struct {
	Callable string
	Reason   string
}

func (e *ReflectionError) Error() string {
	return fmt.Sprintf("cannot obtain signature for %q: %s", e.Callable, e.Reason)
}

// SystemError represents an internal failure during tool execution (handler
// error, panic). The model should not see the underlying message or stack.
type SystemError struct {
	Err error
}

func (e *SystemError) Error() string {
	return "internal system error during tool execution"
}

func (e *SystemError) Unwrap() error { return e.Err }

// IsModelingError returns true if err is or wraps a ModelingError.
func IsModelingError(err error) bool {
	var me *ModelingError
	return errors.As(err, &me)
}

// IsReflectionError returns true if err is or wraps a ReflectionError.
func IsReflectionError(err error) bool {
	var re *ReflectionError
	return errors.As(err, &re)
}

// IsSystemError returns true if err is or wraps a SystemError.
func IsSystemError(err error) bool {
	var se *SystemError
	return errors.As(err, &se)
}

// panicError wraps a recovered panic value for SystemError; used by Registry
// and the WithRecovery middleware.
type panicError struct{ p any }

func (e *panicError) Error() string {
	return "panic: " + fmt.Sprint(e.p)
}
