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

package duration

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Duration
	}{
		{"300ms", Of(300, Milliseconds)},
		{"1h30m", FromStd(90 * time.Minute)},
		{"500 ms", Of(500, Milliseconds)},
		{"10 seconds", Of(10, Seconds)},
		{"1.5 minutes", Of(90, Seconds)},
		{"2 days", Of(48, Hours)},
		{"  7 µs ", Of(7, Microseconds)},
		{"-15 ms", Of(-15, Milliseconds)},
		{"0s", Zero()},
		{"Inf", Inf()},
		{"+Inf", Inf()},
		{"PlusInf", Inf()},
		{"-Inf", MinusInf()},
		{"MinusInf", MinusInf()},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{"", "  ", "ms", "10", "ten seconds", "10 lightyears"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			require.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestDuration_Cmp(t *testing.T) {
	finite := Of(1, Seconds)
	bigger := Of(2, Seconds)

	assert.Equal(t, -1, finite.Cmp(bigger))
	assert.Equal(t, 1, bigger.Cmp(finite))
	assert.Equal(t, 0, finite.Cmp(Of(1000, Milliseconds)))

	// the infinite sentinels compare as expected against any finite value
	assert.Equal(t, -1, finite.Cmp(Inf()))
	assert.Equal(t, 1, finite.Cmp(MinusInf()))
	assert.Equal(t, 1, Inf().Cmp(finite))
	assert.Equal(t, -1, MinusInf().Cmp(finite))
	assert.Equal(t, -1, MinusInf().Cmp(Inf()))
	assert.Equal(t, 1, Inf().Cmp(MinusInf()))
	assert.Equal(t, 0, Inf().Cmp(Inf()))
	assert.Equal(t, 0, MinusInf().Cmp(MinusInf()))

	assert.True(t, finite.Less(Inf()))
	assert.False(t, Inf().Less(Inf()))
}

func TestDuration_MinMax(t *testing.T) {
	a := Of(1, Seconds)
	b := Of(2, Seconds)

	assert.Equal(t, a, a.Min(b))
	assert.Equal(t, b, a.Max(b))
	assert.Equal(t, a, a.Min(Inf()))
	assert.Equal(t, Inf(), a.Max(Inf()))
	assert.Equal(t, MinusInf(), a.Min(MinusInf()))
}

func TestDuration_Arithmetic(t *testing.T) {
	a := Of(1, Seconds)
	b := Of(500, Milliseconds)

	assert.Equal(t, Of(1500, Milliseconds), a.Add(b))
	assert.Equal(t, b, a.Sub(b))
	assert.Equal(t, Of(3, Seconds), a.Mul(3))
	assert.Equal(t, b, a.Div(2))
	assert.Equal(t, Of(-1, Seconds), a.Neg())

	// infinities absorb finite operands
	assert.Equal(t, Inf(), Inf().Add(a))
	assert.Equal(t, Inf(), a.Add(Inf()))
	assert.Equal(t, MinusInf(), a.Sub(Inf()))
	assert.Equal(t, MinusInf(), Inf().Neg())
	assert.Equal(t, MinusInf(), Inf().Mul(-2))
	assert.Equal(t, Inf(), Inf().Div(5))

	assert.Panics(t, func() { Inf().Add(MinusInf()) })
	assert.Panics(t, func() { Inf().Sub(Inf()) })
	assert.Panics(t, func() { Inf().Mul(0) })
	assert.Panics(t, func() { a.Div(0) })
}

func TestDuration_Conversion(t *testing.T) {
	d := Of(90, Seconds)

	assert.Equal(t, 1.5, d.To(Minutes))
	assert.Equal(t, 90000.0, d.To(Milliseconds))

	std, ok := d.Std()
	require.True(t, ok)
	assert.Equal(t, 90*time.Second, std)

	_, ok = Inf().Std()
	assert.False(t, ok)
	assert.True(t, math.IsInf(Inf().To(Seconds), 1))
	assert.True(t, math.IsInf(MinusInf().To(Seconds), -1))
}

func TestDuration_String(t *testing.T) {
	assert.Equal(t, "1.5s", Of(1500, Milliseconds).String())
	assert.Equal(t, "Inf", Inf().String())
	assert.Equal(t, "MinusInf", MinusInf().String())

	// finite values round-trip through Parse
	d := Of(90, Minutes)
	back, err := Parse(d.String())
	require.NoError(t, err)
	assert.Equal(t, d, back)
}
