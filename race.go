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
	"sync/atomic"
)

// FirstSucceededOf returns a future that resolves with the value of the
// first source future to succeed, regardless of how many sources fail, or
// how quickly, before that: first success wins, not first completion.
//
// Each success reaction races a TryComplete-style resolve on one shared
// cell, so with several sources succeeding, exactly one value is adopted and
// the rest are silently ignored; which one depends on executor scheduling.
//
// When every source fails, the returned future fails with the first failure
// that was observed. (The alternative, never resolving, turns a total
// failure into a hang at every await site.)
// With no sources, the returned future fails with an ErrNoSuchElement
// condition immediately.
func FirstSucceededOf[T any](ex Executor, futures ...*Future[T]) *Future[T] {
	if ex == nil {
		panic(nilExecutorPanicMsg)
	}
	if len(futures) == 0 {
		return Failed[T](fmt.Errorf("%w: no futures to race", ErrNoSuchElement))
	}

	next := newCell[T](0)

	// pending counts sources that haven't resolved yet; firstErr keeps the
	// first observed failure for the all-failed case.
	var pending atomic.Int64
	var firstErr atomic.Pointer[error]
	pending.Store(int64(len(futures)))

	for _, f := range futures {
		if f == nil {
			panic(nilFuturePanicMsg)
		}
		f.cell.register(ex, func(out Outcome[T]) {
			if out.Err() == nil {
				next.tryResolve(out)
				return
			}

			err := out.Err()
			firstErr.CompareAndSwap(nil, &err)
			if pending.Add(-1) == 0 {
				// every source failed
				next.tryResolve(Err[T](*firstErr.Load()))
			}
		})
	}

	return &Future[T]{cell: next}
}

// FirstCompletedOf returns a future that adopts the outcome, success or
// failure, of the first source future to resolve; the rest are silently
// ignored.
// With no sources, the returned future never resolves.
func FirstCompletedOf[T any](ex Executor, futures ...*Future[T]) *Future[T] {
	if ex == nil {
		panic(nilExecutorPanicMsg)
	}

	next := newCell[T](0)
	for _, f := range futures {
		if f == nil {
			panic(nilFuturePanicMsg)
		}
		f.cell.register(ex, func(out Outcome[T]) {
			next.tryResolve(out)
		})
	}
	return &Future[T]{cell: next}
}

// All returns a future resolving to the values of all source futures, in
// input order, once every one of them succeeds.
// It fails fast: the first observed failure fails the returned future
// without waiting for the remaining sources.
// With no sources, the returned future succeeds with an empty slice.
func All[T any](ex Executor, futures ...*Future[T]) *Future[[]T] {
	if ex == nil {
		panic(nilExecutorPanicMsg)
	}

	next := newCell[[]T](0)
	if len(futures) == 0 {
		next.tryResolve(Val([]T{}))
		return &Future[[]T]{cell: next}
	}

	// each reaction writes only its own index, so the slice needs no lock;
	// the final pending.Add publishes the writes to whoever resolves.
	vals := make([]T, len(futures))
	var pending atomic.Int64
	pending.Store(int64(len(futures)))

	for i, f := range futures {
		i := i
		if f == nil {
			panic(nilFuturePanicMsg)
		}
		f.cell.register(ex, func(out Outcome[T]) {
			if err := out.Err(); err != nil {
				next.tryResolve(Err[[]T](err))
				return
			}
			vals[i] = out.Value()
			if pending.Add(-1) == 0 {
				next.tryResolve(Val(vals))
			}
		})
	}

	return &Future[[]T]{cell: next}
}
