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

import "fmt"

// State describes the state of a future, or of a resolved outcome.
type State int

const (
	// the order here matters
	StatePending State = iota
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "<unknown>"
	}
}

// Outcome is the tagged result of a resolved cell: a success value or a
// failure condition, mutually exclusive.
type Outcome[T any] interface {
	Value() T
	Err() error
	State() State
}

// Empty returns a succeeded Outcome holding the zero value of T.
func Empty[T any]() Outcome[T] {
	return emptyOutcome[T]{}
}

// Val returns a succeeded Outcome holding val.
func Val[T any](val T) Outcome[T] {
	return valOutcome[T]{val: val}
}

// Err returns a failed Outcome holding err.
// A nil err yields the empty, succeeded Outcome, so a failed Outcome is
// never observed with a nil error.
func Err[T any](err error) Outcome[T] {
	if err == nil {
		return emptyOutcome[T]{}
	}
	return errOutcome[T]{err: err}
}

// ValErr returns an Outcome holding both val and err.
// It is failed if err is non-nil, and succeeded otherwise.
func ValErr[T any](val T, err error) Outcome[T] {
	if err == nil {
		return valOutcome[T]{val: val}
	}
	return valErrOutcome[T]{val: val, err: err}
}

type emptyOutcome[T any] struct{}
type valOutcome[T any] struct{ val T }
type errOutcome[T any] struct{ err error }
type valErrOutcome[T any] struct {
	val T
	err error
}

func (o emptyOutcome[T]) Value() (v T)  { return v }
func (o valOutcome[T]) Value() (v T)    { return o.val }
func (o errOutcome[T]) Value() (v T)    { return v }
func (o valErrOutcome[T]) Value() (v T) { return o.val }

func (o emptyOutcome[T]) Err() error  { return nil }
func (o valOutcome[T]) Err() error    { return nil }
func (o errOutcome[T]) Err() error    { return o.err }
func (o valErrOutcome[T]) Err() error { return o.err }

func (o emptyOutcome[T]) State() State  { return StateSucceeded }
func (o valOutcome[T]) State() State    { return StateSucceeded }
func (o errOutcome[T]) State() State    { return StateFailed }
func (o valErrOutcome[T]) State() State { return StateFailed }

func (o emptyOutcome[T]) String() string {
	return "succeeded: <zero>"
}
func (o valOutcome[T]) String() string {
	return fmt.Sprintf("succeeded: %v", o.val)
}
func (o errOutcome[T]) String() string {
	return fmt.Sprintf("failed: %s", o.err.Error())
}
func (o valErrOutcome[T]) String() string {
	return fmt.Sprintf("failed: (%v, %s)", o.val, o.err.Error())
}

// getFinalOutcome returns the outcome to be used when a user-provided Outcome
// value crosses into the internal resolve machinery.
// A nil Outcome is implicitly the empty, succeeded one.
func getFinalOutcome[T any](out Outcome[T]) Outcome[T] {
	if out == nil {
		return emptyOutcome[T]{}
	}
	return out
}
