// Package status represents values for the completion cell's status.
//
// The value is split into 4 sections, flags, state, fate, and lock, as
// follows, starting from the right:
// - The lock section takes 2 bits.
// - The fate section takes 2 bits.
// - The state section takes 2 bits.
// - The flags section takes 2 bits.
//
// Description of the sections:
//
//   - The lock section.
//     = Although it's named 'lock', it doesn't use any Mutexes.
//     = The lock is implemented through atomic writing, reading, and updating
//     of the status value.
//     = The lock logic is just a way to tell newcomers(that want to update the
//     status) that: "the value is currently being updated by some previous
//     update call, so wait here until it finishes, then you can get your
//     chance to update the status too".
//     = The lock is acquired for only a small period of time by any call,
//     because the operations done while the lock is acquired are very basic
//     (and, or, assign, compare).
//     = The whole waiting behaviour is passed to the go scheduler(through a
//     call to runtime.Gosched) to decide which goroutine should run now.
//
//   - The fate section describes the fate of the cell.
//     = 3 mutually exclusive possible values, represented by 2 bits:
//
//   - Unresolved: no resolve attempt has won the cell yet, and its final
//     outcome is still unknown.
//
//   - Resolving: the cell's outcome is being written by the only winning
//     resolve call.
//     It's an internal fate that denotes that other calls must wait.
//     It's considered an equivalent to the unresolved fate.
//
//   - Resolved: the cell's outcome is known, stored, and final.
//     = The fate value transitions Unresolved -> Resolving -> Resolved, at
//     most once, and exactly one concurrent resolve attempt performs it.
//
//   - The state section describes the state of the cell's outcome.
//     = 3 mutually exclusive possible values, represented by 2 bits:
//
//   - Pending: the cell is not resolved yet.
//
//   - Succeeded: the cell resolved with a success value.
//
//   - Failed: the cell resolved with a failure condition.
//     = The state value is written once, together with the Resolved fate.
//     = A cell whose fate is Unresolved or Resolving, its state must be
//     Pending.
//
//   - The flags section describes the behaviour of the cell.
//     = External: whether the cell is completed through a promise handle,
//     rather than by an internally owned computation or reaction.
//     = The flags are written once, at creation, and never updated.
package status
