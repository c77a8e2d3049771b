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
	"time"

	"github.com/kahveci/future/duration"
)

// AwaitReady blocks the calling goroutine until f resolves, or until the
// timeout d elapses, whichever comes first.
//
// It returns nil once f is resolved, whether f succeeded or failed; the
// stored error is never inspected nor surfaced. It returns a TimeoutError if
// d elapsed first. An infinite positive d waits forever; a negative or zero
// finite d, or an infinite negative d, only polls.
//
// A timeout stops the waiting only: it cannot retract work already submitted
// to an executor, and f may still resolve later.
//
// Blocking is explicitly discouraged inside reactions and computations; when
// it can't be avoided there, use the scoped variants AwaitOn/AwaitReadyOn.
func AwaitReady[T any](f *Future[T], d duration.Duration) error {
	if f == nil {
		panic(nilFuturePanicMsg)
	}

	std, finite := d.Std()
	switch {
	case !finite && duration.Zero().Less(d):
		// positive infinity: wait forever
		f.cell.wait()
		return nil
	case finite && std > 0:
		if waitTimed(f.cell, std) {
			return nil
		}
		return &TimeoutError{After: d}
	default:
		// zero, negative, or negative infinity: poll
		if _, ok := f.cell.peek(); ok {
			return nil
		}
		return &TimeoutError{After: d}
	}
}

func waitTimed[T any](c *cell[T], d time.Duration) (resolved bool) {
	// skip the timer when the cell is already resolved
	if _, ok := c.peek(); ok {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-c.syncChan:
		return true
	case <-timer.C:
		return false
	}
}

// Await blocks the calling goroutine until f resolves or until the timeout
// d elapses, then returns f's value.
//
// If f failed, Await returns the zero value and f's stored error. If d
// elapsed first, it returns the zero value and a TimeoutError. The same
// timeout semantics and discouragements as AwaitReady apply.
func Await[T any](f *Future[T], d duration.Duration) (T, error) {
	if err := AwaitReady(f, d); err != nil {
		var zero T
		return zero, err
	}
	out, _ := f.cell.peek()
	return out.Value(), out.Err()
}

// AwaitReadyOn is AwaitReady performed as a scoped-blocking region of ex:
// if ex implements Blocker, the wait runs inside BlockOn, so a bounded
// executor can temporarily grow capacity and preserve forward progress while
// one of its goroutines blocks.
//
// It must be used instead of AwaitReady whenever the calling goroutine is an
// executor worker; the resource-management contract of Blocker can't be
// satisfied by the core alone.
func AwaitReadyOn[T any](ex Executor, f *Future[T], d duration.Duration) error {
	if ex == nil {
		panic(nilExecutorPanicMsg)
	}

	var err error
	blockOn(ex, func() {
		err = AwaitReady(f, d)
	})
	return err
}

// AwaitOn is Await performed as a scoped-blocking region of ex; see
// AwaitReadyOn.
func AwaitOn[T any](ex Executor, f *Future[T], d duration.Duration) (T, error) {
	if ex == nil {
		panic(nilExecutorPanicMsg)
	}

	var val T
	var err error
	blockOn(ex, func() {
		val, err = Await(f, d)
	})
	return val, err
}
