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

package status

import (
	"runtime"
	"sync/atomic"
)

var (
	cas  = atomic.CompareAndSwapUint32
	load = atomic.LoadUint32
	swap = atomic.SwapUint32
)

// CellStatus holds the value that defines and represents the status of a
// completion cell.
// It's read and written/updated atomically.
type CellStatus uint32

// the lock's related values and constants, using 2 bits(the [1st : 2nd] bits)
const (
	// lockAcquired is the value of the status when some update call is running.
	lockAcquired uint32 = 1 << iota
	_                   // reserved
)

// the fate's related values and constants, using 2 bits(the [3rd : 4th] bits)
const (
	// starting with a shift amount of 2, which is the number of bits used by
	// previous sections.

	// fate modes, using 2 bits
	fateUnresolved uint32 = iota << 2
	fateResolving  uint32 = iota << 2
	fateResolved   uint32 = iota << 2
	_              uint32 = iota << 2 // reserved

	// fateBitsSetMask and fateBitsClrMask are &-ed with the status to get
	// the fate value and clear the fate value, respectively.
	fateBitsSetMask = fateResolved | fateResolving
	fateBitsClrMask = ^fateBitsSetMask
)

// the state's related values and constants, using 2 bits(the [5th : 6th] bits)
const (
	// starting with a shift amount of 4, which is the number of bits used by
	// previous sections.

	// state modes, using 2 bits
	statePending   uint32 = iota << 4
	stateSucceeded uint32 = iota << 4
	stateFailed    uint32 = iota << 4
	_              uint32 = iota << 4 // reserved

	// stateBitsSetMask and stateBitsClrMask are &-ed with the status to get
	// the state value and clear the state value, respectively.
	stateBitsSetMask = stateSucceeded | stateFailed
	stateBitsClrMask = ^stateBitsSetMask
)

// the flags' related values and constants, using 2 bits(the [7th : 8th] bits)
const (
	// FlagsExternal marks a cell that is completed through a promise, rather
	// than by an internally owned computation or reaction.
	FlagsExternal uint32 = 1 << (iota + 6)
	_                    = 1 << (iota + 6) // reserved

	flagsBitsSetMask        = FlagsExternal
	flagsBitsClrMask uint32 = ^flagsBitsSetMask
)

func (s *CellStatus) readAndAcquireLock() (currentStatus uint32) {
	// read the current status value, and acquire the update lock, by checking
	// if any other, previous, update call is still processing, and wait for
	// it to finish.
	cs := swap((*uint32)(s), lockAcquired)
	for cs == lockAcquired {
		// don't actively wait for concurrent update calls, instead, tell the
		// go scheduler to run other goroutines(including the one which has
		// the lock) instead of the current(waiting) one.
		runtime.Gosched()
		cs = swap((*uint32)(s), lockAcquired)
	}
	// at this point, the value of the current status, cs, here is only
	// available to this method and its caller.
	return cs
}

func (s *CellStatus) saveAndReleaseLock(newStatus uint32) {
	// save the new status value, and release the update lock
	if !cas((*uint32)(s), lockAcquired, newStatus) {
		// panic if the status value has been changed unexpectedly
		panic("future: internal: unexpected status change")
	}
}

// Load returns the current status value, if it's not being updated right now,
// and if it's, it waits until it's updated then return the value.
func (s *CellStatus) Load() (currentStatus uint32) {
	cs := load((*uint32)(s))
	for cs == lockAcquired {
		cs = load((*uint32)(s))
	}
	return cs
}

// SetResolving sets the fate to Resolving, only if it's Unresolved.
// It's the gate that serializes concurrent resolve attempts on the same cell:
// exactly one caller gets set = true.
func (s *CellStatus) SetResolving() (set bool, status uint32) {
	// read the current status value, and acquire the update lock
	cs := s.readAndAcquireLock()
	// create a new status value from the current one
	ns := cs

	// set the fate to resolving, only if the fate is unresolved
	if ns&fateBitsSetMask == fateUnresolved {
		ns &= fateBitsClrMask // clear the fate section
		ns |= fateResolving   // set the fate to resolving
		set = true            // this is the first set to resolving
	}

	// save the new status value, and release the update lock
	s.saveAndReleaseLock(ns)
	return set, ns
}

func (s *CellStatus) SetSucceededResolved() (set bool, status uint32) {
	// read the current status value, and acquire the update lock
	cs := s.readAndAcquireLock()
	// create a new status value from the current one
	ns := cs

	// set the state to succeeded and the fate to resolved, only if the fate
	// is unresolved or resolving.
	if ns&fateBitsSetMask != fateResolved {
		ns &= stateBitsClrMask // clear the state section
		ns &= fateBitsClrMask  // clear the fate section
		ns |= stateSucceeded   // set the state to succeeded
		ns |= fateResolved     // set the fate to resolved
		set = true
	}

	// save the new status value, and release the update lock
	s.saveAndReleaseLock(ns)
	return set, ns
}

func (s *CellStatus) SetFailedResolved() (set bool, status uint32) {
	// read the current status value, and acquire the update lock
	cs := s.readAndAcquireLock()
	// create a new status value from the current one
	ns := cs

	// set the state to failed and the fate to resolved, only if the fate
	// is unresolved or resolving.
	if ns&fateBitsSetMask != fateResolved {
		ns &= stateBitsClrMask // clear the state section
		ns &= fateBitsClrMask  // clear the fate section
		ns |= stateFailed      // set the state to failed
		ns |= fateResolved     // set the fate to resolved
		set = true
	}

	// save the new status value, and release the update lock
	s.saveAndReleaseLock(ns)
	return set, ns
}

// SetSucceededResolvedSync should be used only on a cell that hasn't been
// shared yet.
// It updates the status value directly, as it's guaranteed that the cell is
// accessible from this goroutine only, because it hasn't been returned to the
// caller yet.
func (s *CellStatus) SetSucceededResolvedSync() (status uint32) {
	ns := uint32(0)
	ns |= stateSucceeded // set the state to succeeded
	ns |= fateResolved   // set the fate to resolved
	*s = CellStatus(ns)  // update the status value
	return ns
}

// SetFailedResolvedSync is the failed counterpart of SetSucceededResolvedSync.
func (s *CellStatus) SetFailedResolvedSync() (status uint32) {
	ns := uint32(0)
	ns |= stateFailed   // set the state to failed
	ns |= fateResolved  // set the fate to resolved
	*s = CellStatus(ns) // update the status value
	return ns
}

// NewFromFlags returns a new CellStatus holding only the flags section of the
// provided value.
func NewFromFlags(flags uint32) CellStatus {
	return CellStatus(flags & flagsBitsSetMask)
}

func IsFateUnresolved(status uint32) bool {
	return status&fateBitsSetMask == fateUnresolved
}

func IsFateResolving(status uint32) bool {
	return status&fateBitsSetMask == fateResolving
}

func IsFateResolved(status uint32) bool {
	return status&fateBitsSetMask == fateResolved
}

func IsStatePending(status uint32) bool {
	return status&stateBitsSetMask == statePending
}

func IsStateSucceeded(status uint32) bool {
	return status&stateBitsSetMask == stateSucceeded
}

func IsStateFailed(status uint32) bool {
	return status&stateBitsSetMask == stateFailed
}

func IsFlagsExternal(status uint32) bool {
	return status&FlagsExternal == FlagsExternal
}
