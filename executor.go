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

// Executor accepts units of work and runs them, eventually, on some
// goroutine. Its scheduling policy is opaque to this package.
//
// Every submitted task must eventually run; an Executor must never drop a
// task. A task may run synchronously on the submitting goroutine, if that
// doesn't endanger forward progress (see Synchronous).
//
// There is deliberately no package-level default: every operation that needs
// to run a computation or a reaction takes its Executor explicitly.
//
// A reaction that re-raises a PanicError (see Async) reaches the executor's
// goroutine; executors that manage shared workers should intercept it (the
// pool executor does, through WithPanicHandler), while GoExecutor lets it
// crash, matching plain 'go func' semantics.
type Executor interface {
	Submit(task func())
}

// GoExecutor runs every task on its own new goroutine.
type GoExecutor struct{}

func (GoExecutor) Submit(task func()) {
	go task()
}

// Synchronous runs every task inline, on the submitting goroutine, before
// Submit returns.
//
// It satisfies the eventually contract trivially, but it makes registration
// calls and completion calls carry the cost of the reactions they trigger.
// It must not be used with reactions that block on the future they're
// registered on, as that blocks completion itself.
type Synchronous struct{}

func (Synchronous) Submit(task func()) {
	task()
}

// Blocker is a scoped-blocking contract between the blocking bridge and an
// Executor that manages a bounded set of workers.
//
// BlockOn runs block on the calling goroutine and doesn't return until block
// does. While block runs, the executor is free to compensate for the blocked
// goroutine, typically by temporarily admitting an extra worker, so that
// tasks (including the one the blocked goroutine may be waiting for) keep
// making progress.
type Blocker interface {
	BlockOn(block func())
}

// blockOn routes block through ex's scoped-blocking support, when present.
func blockOn(ex Executor, block func()) {
	if b, ok := ex.(Blocker); ok {
		b.BlockOn(block)
		return
	}
	block()
}
