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

// Package future provides an asynchronous completion primitive: a read-only
// placeholder for a value not yet available(Future), a write-once handle
// that supplies that value(Promise), a library of composition operators, and
// a blocking escape hatch.
//
// A Future/Promise pair shares one completion cell, the only mutable entity
// in the package. A cell has two states, and it can be in only one of them,
// at any time:
// Pending: no outcome has been assigned yet.
// Resolved: an outcome, a success value or a failure condition, has been
// assigned, atomically and irreversibly.
//
// The Pending to Resolved transition happens exactly once, is linearizable,
// and is first-writer-wins: out of any number of racing completion attempts,
// exactly one succeeds, and the rest observe failure.
//
// Reactions(closures registered to run once a cell resolves) are always
// paired with an Executor, and run on it; registration itself never blocks.
// A reaction registered before resolution is stored and handed to its
// executor by the resolving call; one registered after resolution is handed
// to its executor immediately. Either way it runs exactly once, and no
// reference to it is retained after it's been handed off.
//
// Executors are always passed explicitly. The package never consults
// ambient or global state to find one, so every call site states where its
// callbacks run.
//
//
// Callback Notes:-
//
// * Reactions registered on the same future carry no relative ordering
// guarantee, and may run concurrently on different executor goroutines.
//
// * AndThen is the single exception: the chain f.AndThen(ex, a).AndThen(ex, b)
// runs a to completion before b starts.
//
// * An error returned by a combinator callback, or by a computation passed
// to Async, fails the derived future with that error, and never affects the
// source future.
//
// * A panic out of a computation is an execution failure: the future fails
// with a *PanicError and the panic is re-raised on the executing goroutine,
// so it's both observable through the future and loud on the executor.
// Recover and RecoverWith never intercept execution failures.
//
// * A Return call inside a computation is normal completion, not an error:
// the future succeeds with the carried value.
//
//
// Blocking:-
//
// * Await and AwaitReady block the calling goroutine until the future
// resolves or a timeout elapses; both are escape hatches, and everything
// else in the package is non-blocking.
//
// * Blocking from inside an executor's worker requires the scoped variants
// (AwaitOn, AwaitReadyOn), which let a bounded executor compensate for the
// blocked worker; see Blocker.
package future
