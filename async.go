// Copyright 2024 The future Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package future

import (
	"fmt"
	"time"

	"github.com/kahveci/future/duration"
)

// returnSignal is the control-transfer marker Return panics with.
type returnSignal struct {
	v any
}

// Return completes the enclosing Async, AsyncOutcome, or Go computation
// early, as succeeded, with the value v.
//
// It performs a non-local transfer of control (through a panic carrying a
// control marker) that the computation runner intercepts: it's normal
// completion of the computation block, not an error, so the future succeeds
// with v instead of failing.
// Calling it outside a computation run by this package panics all the way.
func Return(v any) {
	panic(returnSignal{v: v})
}

// Async runs fn on ex and returns a future resolving to its result: the
// returned value if err is nil, and the returned error otherwise.
//
// A panic out of fn is an execution failure: the future fails with a
// PanicError holding the panic value, and the panic is re-raised on the
// executing goroutine after the future resolves, so it stays loud there
// (see Executor). A Return call, or a runtime.Goexit, inside fn completes
// the future as succeeded instead.
func Async[T any](ex Executor, fn func() (T, error)) *Future[T] {
	if ex == nil {
		panic(nilExecutorPanicMsg)
	}
	if fn == nil {
		panic(nilCallbackPanicMsg)
	}

	c := newCell[T](0)
	ex.Submit(func() {
		runComputation(c, func() Outcome[T] {
			return ValErr(fn())
		})
	})
	return &Future[T]{cell: c}
}

// AsyncOutcome is like Async, for computations that build their Outcome
// directly (for example to return both a value and an error).
func AsyncOutcome[T any](ex Executor, fn func() Outcome[T]) *Future[T] {
	if ex == nil {
		panic(nilExecutorPanicMsg)
	}
	if fn == nil {
		panic(nilCallbackPanicMsg)
	}

	c := newCell[T](0)
	ex.Submit(func() {
		runComputation(c, fn)
	})
	return &Future[T]{cell: c}
}

// Go runs fn on ex for its side effect and returns a future that succeeds
// with the empty outcome once fn returns.
// Panic, Return, and Goexit handling follow Async.
func Go(ex Executor, fn func()) *Future[struct{}] {
	if ex == nil {
		panic(nilExecutorPanicMsg)
	}
	if fn == nil {
		panic(nilCallbackPanicMsg)
	}

	c := newCell[struct{}](0)
	ex.Submit(func() {
		runComputation(c, func() Outcome[struct{}] {
			fn()
			return Empty[struct{}]()
		})
	})
	return &Future[struct{}]{cell: c}
}

// runComputation runs fn on the calling goroutine and resolves c with its
// outcome, classifying every way a computation can end:
//
//   - a normal return resolves with the returned outcome;
//   - a Return control transfer resolves as succeeded with the carried value;
//   - a runtime.Goexit resolves as succeeded with the empty outcome, and the
//     goroutine keeps exiting;
//   - any other panic resolves as failed with a PanicError, which is then
//     re-raised on this goroutine.
func runComputation[T any](c *cell[T], fn func() Outcome[T]) {
	var out Outcome[T]
	done := false
	defer func() {
		if done {
			c.tryResolve(getFinalOutcome(out))
			return
		}

		v := recover()
		if v == nil {
			// the goroutine is exiting through runtime.Goexit; resolving
			// here keeps the eventually contract, and the exit continues
			// after this deferred call returns.
			c.tryResolve(Empty[T]())
			return
		}

		if sig, ok := v.(returnSignal); ok {
			c.tryResolve(outcomeOfReturn[T](sig))
			return
		}

		perr := newPanicError(v)
		c.tryResolve(Err[T](perr))
		// stay loud on the executing goroutine; executors intercept this
		// through their panic handling.
		panic(perr)
	}()
	out = fn()
	done = true
}

// outcomeOfReturn converts the value carried by a Return call into the
// computation's outcome.
func outcomeOfReturn[T any](sig returnSignal) Outcome[T] {
	if sig.v == nil {
		return Empty[T]()
	}
	if val, ok := sig.v.(T); ok {
		return Val(val)
	}
	return Err[T](fmt.Errorf("future: Return called with a %T, computation produces a different type", sig.v))
}

// Successful returns a future that's already succeeded with the value val.
func Successful[T any](val T) *Future[T] {
	return &Future[T]{cell: newCellSync(Val(val))}
}

// Failed returns a future that's already failed with the error err.
// A nil err yields a future succeeded with the empty outcome, so a failed
// future is never observed with a nil error.
func Failed[T any](err error) *Future[T] {
	if err == nil {
		return &Future[T]{cell: newCellSync(Empty[T]())}
	}
	return &Future[T]{cell: newCellSync(Err[T](err))}
}

// Wrap returns a future that's already resolved to the provided outcome:
// failed if its error is non-nil, and succeeded otherwise.
// A nil outcome is the empty, succeeded one.
func Wrap[T any](out Outcome[T]) *Future[T] {
	return &Future[T]{cell: newCellSync(out)}
}

// Never returns a future that never resolves.
func Never[T any]() *Future[T] {
	return &Future[T]{cell: newCell[T](0)}
}

// Delay returns a future that resolves to the provided outcome after at
// least d has elapsed; the wait runs as a task on ex.
//
// An infinite positive d never resolves; a negative or zero d resolves
// without waiting. The delay starts when the task runs, which is subject to
// ex's scheduling.
func Delay[T any](ex Executor, out Outcome[T], d duration.Duration) *Future[T] {
	if ex == nil {
		panic(nilExecutorPanicMsg)
	}
	if d == duration.Inf() {
		return Never[T]()
	}

	c := newCell[T](0)
	ex.Submit(func() {
		if std, ok := d.Std(); ok && std > 0 {
			time.Sleep(std)
		}
		c.tryResolve(out)
	})
	return &Future[T]{cell: c}
}
