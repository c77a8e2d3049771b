package future

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/kahveci/future/duration"
)

var (
	// ErrCompleted is returned when a write operation is called on a promise
	// that has already been completed.
	ErrCompleted = errors.New("future: promise already completed")

	// ErrNoSuchElement is wrapped by failures produced when a filter
	// predicate rejects a value, or when the Failed projection is read
	// against a future that succeeded.
	ErrNoSuchElement = errors.New("future: no such element")

	// ErrNilFuture is wrapped by the failure stored when a combinator
	// callback returns a nil future where one is required.
	ErrNilFuture = errors.New("future: nil future")
)

// panic messages
const (
	nilCallbackPanicMsg = "future: the provided callback is nil"
	nilExecutorPanicMsg = "future: the provided executor is nil"
	nilFuturePanicMsg   = "future: the provided future is nil"
)

// PanicError marks an execution failure: a panic that escaped a computation
// or a combinator callback.
// It is stored as the failed outcome of the corresponding cell, so the
// failure is observable through the future, and it's also re-raised on the
// goroutine that was executing the computation, so the failure stays loud
// (see Executor for how executors intercept it).
//
// Recover and RecoverWith never intercept a PanicError; it propagates through
// combinator chains unchanged.
type PanicError struct {
	v     any
	stack []byte
}

func newPanicError(v any) *PanicError {
	return &PanicError{v: v, stack: debug.Stack()}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("future: panic in computation: %v", e.v)
}

// Value returns the value the original panic call was made with.
func (e *PanicError) Value() any { return e.v }

// Stack returns the stack of the executing goroutine, captured at the point
// the panic was recovered.
func (e *PanicError) Stack() []byte { return e.stack }

func (e *PanicError) Unwrap() error {
	if err, ok := e.v.(error); ok {
		return err
	}
	return nil
}

// TimeoutError is returned by Await and AwaitReady when the timeout elapses
// before the future resolves.
type TimeoutError struct {
	// After is the timeout that elapsed.
	After duration.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("future: await timed out after %s", e.After)
}
