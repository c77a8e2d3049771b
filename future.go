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
	"errors"
	"fmt"
)

// Future is a read-only placeholder for a value that may not be available
// yet.
//
// A Future references a completion cell it shares with its Promise and with
// every future derived from it; it carries no state of its own beyond that
// reference, so Future values are cheap to copy and share.
//
// All registration calls and combinators return immediately; the registered
// reactions run later, on the provided Executor. Reactions registered on the
// same future carry no relative ordering guarantee and may run concurrently
// on different executor goroutines; AndThen is the single exception, which
// imposes a total order on the chain it defines.
type Future[T any] struct {
	cell *cell[T]
}

// Done returns a channel that's closed once the future resolves.
// It's closed by the resolving call, after the outcome is stored, so a
// receive from it orders before any read of the outcome.
func (f *Future[T]) Done() <-chan struct{} {
	return f.cell.syncChan
}

// IsCompleted reports whether the future has resolved, without blocking.
func (f *Future[T]) IsCompleted() bool {
	_, ok := f.cell.peek()
	return ok
}

// State returns the future's current state, without blocking.
func (f *Future[T]) State() State {
	return f.cell.state()
}

// Outcome returns the resolved outcome and true, if the future has resolved,
// without blocking. Otherwise it returns nil and false.
func (f *Future[T]) Outcome() (Outcome[T], bool) {
	return f.cell.peek()
}

// OnComplete registers fn to run on ex once the future resolves, with the
// resolved outcome.
// If the future is already resolved, fn is handed to ex immediately.
// Either way, fn runs exactly once.
func (f *Future[T]) OnComplete(ex Executor, fn func(Outcome[T])) {
	if fn == nil {
		panic(nilCallbackPanicMsg)
	}
	f.cell.register(ex, fn)
}

// OnSuccess registers fn to run on ex with the future's value, only if the
// future succeeds.
func (f *Future[T]) OnSuccess(ex Executor, fn func(val T)) {
	if fn == nil {
		panic(nilCallbackPanicMsg)
	}
	f.cell.register(ex, func(out Outcome[T]) {
		if out.Err() == nil {
			fn(out.Value())
		}
	})
}

// OnFailure registers fn to run on ex with the future's error, only if the
// future fails.
func (f *Future[T]) OnFailure(ex Executor, fn func(err error)) {
	if fn == nil {
		panic(nilCallbackPanicMsg)
	}
	f.cell.register(ex, func(out Outcome[T]) {
		if err := out.Err(); err != nil {
			fn(err)
		}
	})
}

// Foreach registers fn to run on ex with the future's value, for its side
// effect only, if the future succeeds. A failed future is a no-op.
func (f *Future[T]) Foreach(ex Executor, fn func(val T)) {
	f.OnSuccess(ex, fn)
}

// Map returns a future holding the result of applying fn to the value of f,
// once f succeeds; fn runs on ex.
//
// If f fails, the error propagates to the returned future unchanged, without
// invoking fn. If fn returns an error, or panics, the returned future fails
// with that error, or with a PanicError holding the panic value; the source
// future is never affected.
func Map[T, U any](f *Future[T], ex Executor, fn func(val T) (U, error)) *Future[U] {
	if f == nil {
		panic(nilFuturePanicMsg)
	}
	if fn == nil {
		panic(nilCallbackPanicMsg)
	}

	next := newCell[U](0)
	f.cell.register(ex, func(out Outcome[T]) {
		if err := out.Err(); err != nil {
			next.tryResolve(Err[U](err))
			return
		}
		next.resolveProtected(func() Outcome[U] {
			return ValErr(fn(out.Value()))
		})
	})
	return &Future[U]{cell: next}
}

// FlatMap returns a future that resolves to the eventual outcome of the
// future produced by applying fn to the value of f; fn runs on ex.
//
// If f fails, the error propagates to the returned future unchanged, without
// invoking fn. If fn panics, the returned future fails with a PanicError.
// If fn returns a nil future, the returned future fails with an
// ErrNilFuture condition.
func FlatMap[T, U any](f *Future[T], ex Executor, fn func(val T) *Future[U]) *Future[U] {
	if f == nil {
		panic(nilFuturePanicMsg)
	}
	if fn == nil {
		panic(nilCallbackPanicMsg)
	}

	next := newCell[U](0)
	f.cell.register(ex, func(out Outcome[T]) {
		if err := out.Err(); err != nil {
			next.tryResolve(Err[U](err))
			return
		}

		inner, perr := protect(func() *Future[U] { return fn(out.Value()) })
		if perr != nil {
			next.tryResolve(Err[U](perr))
			return
		}
		if inner == nil {
			next.tryResolve(Err[U](fmt.Errorf("%w: flatMap callback returned nil", ErrNilFuture)))
			return
		}

		// forwarding the inner outcome involves no user code, so it runs
		// synchronously on whatever goroutine resolves the inner future.
		inner.cell.register(Synchronous{}, func(innerOut Outcome[U]) {
			next.tryResolve(innerOut)
		})
	})
	return &Future[U]{cell: next}
}

// Transform returns a future holding the outcome produced by applying fn to
// the outcome of f, whether f succeeded or failed; fn runs on ex.
// If fn panics, the returned future fails with a PanicError.
func Transform[T, U any](f *Future[T], ex Executor, fn func(out Outcome[T]) Outcome[U]) *Future[U] {
	if f == nil {
		panic(nilFuturePanicMsg)
	}
	if fn == nil {
		panic(nilCallbackPanicMsg)
	}

	next := newCell[U](0)
	f.cell.register(ex, func(out Outcome[T]) {
		next.resolveProtected(func() Outcome[U] {
			return fn(out)
		})
	})
	return &Future[U]{cell: next}
}

// Filter returns a future that resolves to the value of f if f succeeds and
// the value satisfies p, and fails with an ErrNoSuchElement condition if p
// rejects it; p runs on ex.
// A failure of f propagates unchanged, without invoking p.
func (f *Future[T]) Filter(ex Executor, p func(val T) bool) *Future[T] {
	if p == nil {
		panic(nilCallbackPanicMsg)
	}

	next := newCell[T](0)
	f.cell.register(ex, func(out Outcome[T]) {
		if err := out.Err(); err != nil {
			next.tryResolve(Err[T](err))
			return
		}
		next.resolveProtected(func() Outcome[T] {
			if !p(out.Value()) {
				return Err[T](fmt.Errorf("%w: value rejected by filter predicate", ErrNoSuchElement))
			}
			return out
		})
	})
	return &Future[T]{cell: next}
}

// Recover returns a future that resolves to the value of f if f succeeds,
// and otherwise to the value produced by h from the error; h runs on ex.
//
// The handler is a predicate+handler pair in one: returning ok = false
// declares it not defined for this error, and the original failure
// propagates unchanged. A PanicError is never offered to h: execution
// failures represent conditions client code must not absorb, so they
// propagate unchanged.
func (f *Future[T]) Recover(ex Executor, h func(err error) (T, bool)) *Future[T] {
	if h == nil {
		panic(nilCallbackPanicMsg)
	}

	next := newCell[T](0)
	f.cell.register(ex, func(out Outcome[T]) {
		err := out.Err()
		if err == nil || isExecutionFailure(err) {
			next.tryResolve(out)
			return
		}
		next.resolveProtected(func() Outcome[T] {
			if v, ok := h(err); ok {
				return Val(v)
			}
			return out
		})
	})
	return &Future[T]{cell: next}
}

// RecoverWith is like Recover, except that h produces a future whose
// eventual outcome the returned future adopts.
// Returning ok = false, or a failure of f holding a PanicError, propagates
// the original failure unchanged. A nil future from h fails the returned
// future with an ErrNilFuture condition.
func (f *Future[T]) RecoverWith(ex Executor, h func(err error) (*Future[T], bool)) *Future[T] {
	if h == nil {
		panic(nilCallbackPanicMsg)
	}

	next := newCell[T](0)
	f.cell.register(ex, func(out Outcome[T]) {
		err := out.Err()
		if err == nil || isExecutionFailure(err) {
			next.tryResolve(out)
			return
		}

		var defined bool
		inner, perr := protect(func() *Future[T] {
			fut, ok := h(err)
			defined = ok
			return fut
		})
		switch {
		case perr != nil:
			next.tryResolve(Err[T](perr))
		case !defined:
			next.tryResolve(out)
		case inner == nil:
			next.tryResolve(Err[T](fmt.Errorf("%w: recoverWith callback returned nil", ErrNilFuture)))
		default:
			inner.cell.register(Synchronous{}, func(innerOut Outcome[T]) {
				next.tryResolve(innerOut)
			})
		}
	})
	return &Future[T]{cell: next}
}

// FallbackTo returns a future that resolves to the value of f if f succeeds,
// and to the value of other if f fails and other succeeds.
// If both fail, the returned future fails with f's original error.
func (f *Future[T]) FallbackTo(ex Executor, other *Future[T]) *Future[T] {
	if other == nil {
		panic(nilFuturePanicMsg)
	}

	next := newCell[T](0)
	f.cell.register(ex, func(out Outcome[T]) {
		if out.Err() == nil {
			next.tryResolve(out)
			return
		}
		other.cell.register(ex, func(otherOut Outcome[T]) {
			if otherOut.Err() == nil {
				next.tryResolve(otherOut)
				return
			}
			// both failed; keep this future's original error
			next.tryResolve(out)
		})
	})
	return &Future[T]{cell: next}
}

// AndThen runs fn on ex with the resolved outcome, for its side effect only,
// and returns a future resolving to the same outcome regardless of what the
// side effect did: a panic out of fn is swallowed, not propagated.
//
// AndThen imposes a total order on the chain it defines: in
// f.AndThen(ex, a).AndThen(ex, b), b doesn't run until a has completed
// running. Reactions outside the chain keep the usual no-ordering rule.
func (f *Future[T]) AndThen(ex Executor, fn func(out Outcome[T])) *Future[T] {
	if fn == nil {
		panic(nilCallbackPanicMsg)
	}

	next := newCell[T](0)
	f.cell.register(ex, func(out Outcome[T]) {
		runSwallowed(func() { fn(out) })
		// the next link resolves only after the side effect finished, which
		// is what serializes an AndThen chain.
		next.tryResolve(out)
	})
	return &Future[T]{cell: next}
}

// Failed is the error-only projection of f: a future that succeeds with the
// error of f once f fails, and fails with an ErrNoSuchElement condition if f
// succeeds.
// The projection involves no user code, so it needs no executor.
func (f *Future[T]) Failed() *Future[error] {
	next := newCell[error](0)
	f.cell.register(Synchronous{}, func(out Outcome[T]) {
		if err := out.Err(); err != nil {
			next.tryResolve(Val(err))
			return
		}
		next.tryResolve(Err[error](fmt.Errorf("%w: failed projection of a succeeded future", ErrNoSuchElement)))
	})
	return &Future[error]{cell: next}
}

// Pair holds the two values a Zip future resolves to.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Zip returns a future resolving to the pair of values of a and b, once both
// succeed. If either fails, the returned future fails with the error of the
// one that failed first to be observed (a's failure is checked first).
func Zip[A, B any](ex Executor, a *Future[A], b *Future[B]) *Future[Pair[A, B]] {
	if a == nil || b == nil {
		panic(nilFuturePanicMsg)
	}

	next := newCell[Pair[A, B]](0)
	a.cell.register(ex, func(aOut Outcome[A]) {
		if err := aOut.Err(); err != nil {
			next.tryResolve(Err[Pair[A, B]](err))
			return
		}
		b.cell.register(Synchronous{}, func(bOut Outcome[B]) {
			if err := bOut.Err(); err != nil {
				next.tryResolve(Err[Pair[A, B]](err))
				return
			}
			next.tryResolve(Val(Pair[A, B]{First: aOut.Value(), Second: bOut.Value()}))
		})
	})
	return &Future[Pair[A, B]]{cell: next}
}

// isExecutionFailure reports whether err carries a PanicError anywhere in
// its chain.
func isExecutionFailure(err error) bool {
	var pe *PanicError
	return errors.As(err, &pe)
}

// protect runs fn, returning its result, or the PanicError a panic out of fn
// was converted into.
func protect[T any](fn func() T) (v T, perr error) {
	done := false
	defer func() {
		if !done {
			perr = newPanicError(recover())
		}
	}()
	v = fn()
	done = true
	return
}

// runSwallowed runs fn and discards any panic out of it.
func runSwallowed(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}
