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
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kahveci/future/duration"
)

func TestAsync(t *testing.T) {
	ex := GoExecutor{}

	t.Run("success", func(t *testing.T) {
		f := Async(ex, func() (int, error) { return 42, nil })
		assert.Equal(t, 42, mustAwait(t, f))
	})

	t.Run("error", func(t *testing.T) {
		f := Async(ex, func() (int, error) { return 0, errTest })
		assert.Equal(t, errTest, awaitErr(t, f))
	})

	t.Run("nil arguments panic", func(t *testing.T) {
		assert.Panics(t, func() { Async[int](nil, func() (int, error) { return 0, nil }) })
		assert.Panics(t, func() { Async[int](ex, nil) })
	})
}

func TestAsync_Panic(t *testing.T) {
	rex := newRecoverExec()

	f := Async(rex, func() (int, error) { panic("computation_panic") })

	// the future fails with the panic value wrapped in a PanicError
	err := awaitErr(t, f)
	var perr *PanicError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "computation_panic", perr.Value())
	assert.NotEmpty(t, perr.Stack())

	// and the same PanicError is re-raised on the executing goroutine,
	// after the future resolved
	select {
	case raised := <-rex.panics:
		assert.Same(t, perr, raised)
	case <-time.After(2 * time.Second):
		t.Fatal("panic was not re-raised on the executing goroutine")
	}
}

func TestAsync_Return(t *testing.T) {
	ex := GoExecutor{}

	t.Run("completes early with the value", func(t *testing.T) {
		f := Async(ex, func() (int, error) {
			Return(7)
			t.Error("unreachable after Return")
			return 0, nil
		})
		assert.Equal(t, 7, mustAwait(t, f))
	})

	t.Run("nil value completes empty", func(t *testing.T) {
		f := Async(ex, func() (int, error) {
			Return(nil)
			return 0, nil
		})
		assert.Equal(t, 0, mustAwait(t, f))
	})

	t.Run("wrong type fails the future", func(t *testing.T) {
		f := Async(ex, func() (int, error) {
			Return("not an int")
			return 0, nil
		})
		require.Error(t, awaitErr(t, f))
	})
}

func TestAsync_Goexit(t *testing.T) {
	f := Async(GoExecutor{}, func() (int, error) {
		runtime.Goexit()
		return 0, errTest
	})

	require.NoError(t, AwaitReady(f, testTimeout))
	out, ok := f.Outcome()
	require.True(t, ok)
	assert.NoError(t, out.Err())
	assert.Equal(t, 0, out.Value())
}

func TestAsyncOutcome(t *testing.T) {
	ex := GoExecutor{}

	f := AsyncOutcome(ex, func() Outcome[int] {
		return ValErr(3, nil)
	})
	assert.Equal(t, 3, mustAwait(t, f))

	g := AsyncOutcome(ex, func() Outcome[int] { return nil })
	require.NoError(t, AwaitReady(g, testTimeout))
	out, ok := g.Outcome()
	require.True(t, ok)
	assert.NoError(t, out.Err())
}

func TestGo(t *testing.T) {
	ran := make(chan struct{})
	f := Go(GoExecutor{}, func() { close(ran) })

	mustAwait(t, f)
	select {
	case <-ran:
	default:
		t.Fatal("future resolved before the side effect ran")
	}
}

func TestResolvedConstructors(t *testing.T) {
	t.Run("Successful", func(t *testing.T) {
		f := Successful("v")
		assert.True(t, f.IsCompleted())
		assert.Equal(t, "v", mustAwait(t, f))
	})

	t.Run("Failed", func(t *testing.T) {
		f := Failed[int](errTest)
		assert.True(t, f.IsCompleted())
		assert.Equal(t, errTest, awaitErr(t, f))
	})

	t.Run("Failed with nil error succeeds empty", func(t *testing.T) {
		f := Failed[int](nil)
		assert.Equal(t, StateSucceeded, f.State())
	})

	t.Run("Wrap", func(t *testing.T) {
		f := Wrap(Err[int](errTest))
		assert.Equal(t, errTest, awaitErr(t, f))

		g := Wrap[int](nil)
		assert.Equal(t, StateSucceeded, g.State())
	})
}

func TestNever(t *testing.T) {
	f := Never[int]()
	err := AwaitReady(f, duration.Of(20, duration.Milliseconds))

	var terr *TimeoutError
	require.ErrorAs(t, err, &terr)
	assert.False(t, f.IsCompleted())
}

func TestDelay(t *testing.T) {
	ex := GoExecutor{}

	t.Run("resolves after the delay", func(t *testing.T) {
		start := time.Now()
		f := Delay(ex, Val(1), duration.Of(30, duration.Milliseconds))
		assert.Equal(t, 1, mustAwait(t, f))
		assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	})

	t.Run("zero delay resolves promptly", func(t *testing.T) {
		f := Delay(ex, Val(2), duration.Zero())
		assert.Equal(t, 2, mustAwait(t, f))
	})

	t.Run("infinite delay never resolves", func(t *testing.T) {
		f := Delay(ex, Val(3), duration.Inf())
		err := AwaitReady(f, duration.Of(20, duration.Milliseconds))
		require.ErrorAs(t, err, new(*TimeoutError))
	})
}
