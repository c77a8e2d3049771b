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
	"sync"

	"github.com/kahveci/future/internal/status"
)

// reaction is a closure registered to run once a cell resolves, paired with
// the executor it must run on.
type reaction[T any] struct {
	fn func(Outcome[T])
	ex Executor
}

// cell is the atomic single-assignment state holder shared by a Future and
// its Promise, and the only mutable entity in the package.
//
// The zero value is not usable; cells are created by newCell or newCellSync.
type cell[T any] struct {
	// closed when this cell is resolved.
	// it has one writer, the winning tryResolve call, which closes it, but
	// can have any number of readers (waiting and derived futures).
	syncChan chan struct{}

	// holds the outcome of the cell.
	// written once, before the syncChan channel is closed.
	// don't read it unless the syncChan is known to be closed, or the status
	// fate is known to be Resolved.
	res Outcome[T]

	// holds the fate and state of the cell.
	// refer to the docs of the CellStatus type for more info.
	status status.CellStatus

	// mu guards subs and drained.
	// it's held only for appends and for the swap-out in drain, never across
	// an executor submission, so a reaction that re-enters the cell can't
	// deadlock against it.
	mu      sync.Mutex
	subs    []reaction[T]
	drained bool
}

func newCell[T any](flags uint32) *cell[T] {
	return &cell[T]{
		syncChan: make(chan struct{}),
		status:   status.NewFromFlags(flags),
	}
}

// newCellSync creates a cell that is resolved synchronously, just after it's
// created, and before it's shared.
func newCellSync[T any](out Outcome[T]) *cell[T] {
	c := &cell[T]{
		syncChan: closedChan,
		res:      getFinalOutcome(out),
		drained:  true,
	}
	if c.res.Err() != nil {
		c.status.SetFailedResolvedSync()
	} else {
		c.status.SetSucceededResolvedSync()
	}
	return c
}

var closedChan = make(chan struct{})

func init() {
	close(closedChan)
}

// tryResolve attempts the Pending -> Resolved transition with the provided
// outcome. It returns true iff this call performed the transition; later and
// concurrent-loser calls return false and their outcome is discarded.
//
// The winning call stores the outcome, publishes it by closing syncChan, and
// drains the registry: every registered reaction is handed to its executor
// with the resolved outcome, and the registry is emptied. From an observer's
// point of view the transition and the hand-off are one step: once the cell
// reports resolved, no registered reaction can still be sitting in the
// registry un-submitted.
func (c *cell[T]) tryResolve(out Outcome[T]) bool {
	set, _ := c.status.SetResolving()
	if !set {
		return false
	}

	// only the winning call reaches this point

	c.res = getFinalOutcome(out)
	if c.res.Err() != nil {
		c.status.SetFailedResolved()
	} else {
		c.status.SetSucceededResolved()
	}
	close(c.syncChan)

	c.drain()
	return true
}

// drain empties the registry and submits every entry to its executor.
// No reference to a fired reaction is retained afterwards, so a long-lived
// resolved cell doesn't hold its reactions' closures alive.
func (c *cell[T]) drain() {
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	c.drained = true
	c.mu.Unlock()

	res := c.res
	for _, s := range subs {
		fn := s.fn
		s.ex.Submit(func() { fn(res) })
	}
}

// register attaches a reaction to the cell.
// If the cell is still pending, the reaction is appended to the registry and
// submitted to ex by the resolving call. If the cell is already resolved and
// drained, the reaction is handed to ex immediately instead of being stored.
// Either way the reaction eventually runs, exactly once, with the resolved
// outcome.
func (c *cell[T]) register(ex Executor, fn func(Outcome[T])) {
	if fn == nil {
		panic(nilCallbackPanicMsg)
	}
	if ex == nil {
		panic(nilExecutorPanicMsg)
	}

	c.mu.Lock()
	if !c.drained {
		c.subs = append(c.subs, reaction[T]{fn: fn, ex: ex})
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	res := c.res
	ex.Submit(func() { fn(res) })
}

// wait blocks the calling goroutine until the cell is resolved.
func (c *cell[T]) wait() {
	s := c.status.Load()

	// if the fate is Resolved, don't wait, as it's guaranteed to happen
	// after the outcome is saved, and after the syncChan is closed.
	if status.IsFateResolved(s) {
		return
	}

	// the chan will always be closed by the winning resolve call, after
	// setting the res and status fields as expected.
	<-c.syncChan
}

// peek returns the resolved outcome, if there is one, without blocking.
func (c *cell[T]) peek() (Outcome[T], bool) {
	if !status.IsFateResolved(c.status.Load()) {
		return nil, false
	}
	return c.res, true
}

// state returns the cell's state without blocking.
func (c *cell[T]) state() State {
	s := c.status.Load()
	switch {
	case status.IsStateSucceeded(s):
		return StateSucceeded
	case status.IsStateFailed(s):
		return StateFailed
	default:
		return StatePending
	}
}

// resolveProtected computes an outcome from fn and resolves the cell with
// it, converting a panic out of fn into an execution failure.
// It implements the exception-propagation law: a combinator function that
// panics during evaluation fails the derived cell with that panic, and never
// touches the source cell.
func (c *cell[T]) resolveProtected(fn func() Outcome[T]) {
	var out Outcome[T]
	done := false
	defer func() {
		if !done {
			out = Err[T](newPanicError(recover()))
		}
		c.tryResolve(out)
	}()
	out = fn()
	done = true
}
