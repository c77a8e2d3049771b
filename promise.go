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

import "github.com/kahveci/future/internal/status"

// Promise is the write-once handle of a completion cell.
//
// Exactly one Promise exists per cell; any number of Future values may alias
// the same cell through the paired Future. A Promise is completed at most
// once, and is inert afterwards: later Complete calls report ErrCompleted,
// later TryComplete calls report false.
type Promise[T any] struct {
	cell *cell[T]
}

// NewPromise creates a Promise wrapping a fresh, pending completion cell.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{cell: newCell[T](status.FlagsExternal)}
}

// Future returns the read-only placeholder paired with this promise.
func (p *Promise[T]) Future() *Future[T] {
	return &Future[T]{cell: p.cell}
}

// TryComplete attempts to complete the promise with the provided outcome.
// It returns true iff this call performed the completion; a false return
// means the promise was already completed and out was discarded.
//
// TryComplete exists for racing use cases: with several producers racing to
// complete the same promise, exactly one wins, and overall behavior depends
// on executor scheduling order, which is non-deterministic but legitimate.
// A nil outcome completes with the empty, succeeded one.
func (p *Promise[T]) TryComplete(out Outcome[T]) bool {
	return p.cell.tryResolve(out)
}

// Complete completes the promise with the provided outcome.
// It returns ErrCompleted, and discards out, if the promise was already
// completed; completing twice is a state violation that's never silently
// ignored, so the error must be checked by callers that can race.
func (p *Promise[T]) Complete(out Outcome[T]) error {
	if !p.cell.tryResolve(out) {
		return ErrCompleted
	}
	return nil
}

// Success completes the promise with the value val.
// It returns ErrCompleted if the promise was already completed.
func (p *Promise[T]) Success(val T) error {
	return p.Complete(Val(val))
}

// TrySuccess attempts to complete the promise with the value val, reporting
// whether this call performed the completion.
func (p *Promise[T]) TrySuccess(val T) bool {
	return p.TryComplete(Val(val))
}

// Failure completes the promise with the error err.
// A nil err completes the promise as succeeded with the empty outcome, so
// a failed promise is never observed with a nil error.
// It returns ErrCompleted if the promise was already completed.
func (p *Promise[T]) Failure(err error) error {
	if err == nil {
		return p.Complete(Empty[T]())
	}
	return p.Complete(Err[T](err))
}

// TryFailure attempts to complete the promise with the error err, reporting
// whether this call performed the completion.
func (p *Promise[T]) TryFailure(err error) bool {
	if err == nil {
		return p.TryComplete(Empty[T]())
	}
	return p.TryComplete(Err[T](err))
}

// CompleteWith forwards the eventual outcome of src into this promise.
// The forwarding uses TryComplete, so it composes with other producers
// racing on the same promise; whoever resolves first wins.
func (p *Promise[T]) CompleteWith(src *Future[T]) {
	if src == nil {
		panic(nilFuturePanicMsg)
	}
	src.cell.register(Synchronous{}, func(out Outcome[T]) {
		p.cell.tryResolve(out)
	})
}

// IsCompleted reports whether the promise has been completed, without
// blocking.
func (p *Promise[T]) IsCompleted() bool {
	_, ok := p.cell.peek()
	return ok
}
