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
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCellStatus_ZeroValue(t *testing.T) {
	s := CellStatus(0)
	cs := s.Load()
	require.True(t, IsFateUnresolved(cs))
	require.True(t, IsStatePending(cs))
	require.False(t, IsFlagsExternal(cs))
}

func TestCellStatus_SetResolving(t *testing.T) {
	s := CellStatus(0)

	set, cs := s.SetResolving()
	require.True(t, set)
	require.True(t, IsFateResolving(cs))
	require.True(t, IsStatePending(cs))

	// a second attempt must lose
	set, cs = s.SetResolving()
	require.False(t, set)
	require.True(t, IsFateResolving(cs))
}

func TestCellStatus_SetSucceededResolved(t *testing.T) {
	s := CellStatus(0)
	s.SetResolving()

	set, cs := s.SetSucceededResolved()
	require.True(t, set)
	require.True(t, IsFateResolved(cs))
	require.True(t, IsStateSucceeded(cs))

	// resolved is final
	set, cs = s.SetFailedResolved()
	require.False(t, set)
	require.True(t, IsStateSucceeded(cs))
	set, _ = s.SetResolving()
	require.False(t, set)
}

func TestCellStatus_SetFailedResolved(t *testing.T) {
	s := CellStatus(0)
	s.SetResolving()

	set, cs := s.SetFailedResolved()
	require.True(t, set)
	require.True(t, IsFateResolved(cs))
	require.True(t, IsStateFailed(cs))

	set, cs = s.SetSucceededResolved()
	require.False(t, set)
	require.True(t, IsStateFailed(cs))
}

func TestCellStatus_SetResolvedSync(t *testing.T) {
	s := CellStatus(0)
	cs := s.SetSucceededResolvedSync()
	require.True(t, IsFateResolved(cs))
	require.True(t, IsStateSucceeded(cs))

	s = CellStatus(0)
	cs = s.SetFailedResolvedSync()
	require.True(t, IsFateResolved(cs))
	require.True(t, IsStateFailed(cs))
}

func TestCellStatus_NewFromFlags(t *testing.T) {
	s := NewFromFlags(FlagsExternal)
	cs := s.Load()
	require.True(t, IsFlagsExternal(cs))
	require.True(t, IsFateUnresolved(cs))
	require.True(t, IsStatePending(cs))

	// flags survive the resolve transition
	s.SetResolving()
	_, cs = s.SetSucceededResolved()
	require.True(t, IsFlagsExternal(cs))
}

// the single-assignment property: out of any number of concurrent SetResolving
// calls on the same status value, exactly one must win.
func TestCellStatus_SetResolving_Concurrent(t *testing.T) {
	const callers = 64

	s := CellStatus(0)
	var wins atomic.Int32
	var start, done sync.WaitGroup
	start.Add(1)
	done.Add(callers)

	for i := 0; i < callers; i++ {
		go func() {
			defer done.Done()
			start.Wait()
			if set, _ := s.SetResolving(); set {
				wins.Add(1)
			}
		}()
	}

	start.Done()
	done.Wait()
	require.Equal(t, int32(1), wins.Load())
}

// the benchmarks call the SetSucceededResolved method, as all setters use the
// same technique, but only set different variables.

func BenchmarkCellStatus_Setters(b *testing.B) {
	s := CellStatus(0)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.SetSucceededResolved()
	}
}

func BenchmarkCellStatus_Setters_Parallel(b *testing.B) {
	s := CellStatus(0)
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			s.SetSucceededResolved()
		}
	})
}

func BenchmarkCellStatus_Load(b *testing.B) {
	s := CellStatus(0)
	s.SetResolving()
	s.SetSucceededResolved()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Load()
	}
}
