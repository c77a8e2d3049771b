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

// Package duration provides an immutable time-span value that is either
// finite, with nanosecond resolution, or one of two infinite sentinels.
//
// It exists to serve as the timeout parameter of blocking reads on futures,
// where "wait forever" and "don't wait at all" are as legitimate as any
// finite bound, and where comparison and arithmetic must stay total in the
// presence of the infinite values.
package duration

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrParse is wrapped by all errors returned from Parse.
var ErrParse = errors.New("duration: cannot parse")

// Unit is a time unit a finite Duration can be constructed from, or
// converted to.
type Unit int64

const (
	Nanoseconds  Unit = 1
	Microseconds Unit = 1e3
	Milliseconds Unit = 1e6
	Seconds      Unit = 1e9
	Minutes      Unit = 60 * 1e9
	Hours        Unit = 3600 * 1e9
	Days         Unit = 24 * 3600 * 1e9
)

func (u Unit) String() string {
	switch u {
	case Nanoseconds:
		return "ns"
	case Microseconds:
		return "µs"
	case Milliseconds:
		return "ms"
	case Seconds:
		return "s"
	case Minutes:
		return "m"
	case Hours:
		return "h"
	case Days:
		return "d"
	default:
		return "<unknown>"
	}
}

// the three forms a Duration can take.
const (
	formFinite int8 = iota
	formInf
	formMinusInf
)

// Duration is an immutable span of time, finite or infinite.
//
// The zero value is the finite zero duration.
// Comparison and arithmetic are total: Inf compares greater than any finite
// value, MinusInf less than any finite value, and both absorb finite operands
// in arithmetic.
type Duration struct {
	d    time.Duration
	form int8
}

// Zero is the finite zero duration.
func Zero() Duration { return Duration{} }

// Inf is the positive infinite duration.
func Inf() Duration { return Duration{form: formInf} }

// MinusInf is the negative infinite duration.
func MinusInf() Duration { return Duration{form: formMinusInf} }

// Of returns a finite Duration of n units.
func Of(n int64, u Unit) Duration {
	return Duration{d: time.Duration(n) * time.Duration(u)}
}

// FromStd returns a finite Duration equal to the standard library duration d.
func FromStd(d time.Duration) Duration {
	return Duration{d: d}
}

// Parse parses a textual representation of a Duration.
//
// It accepts the standard library syntax ("300ms", "1h30m"), a magnitude and
// a unit word separated by optional spaces ("500 ms", "1.5 minutes",
// "10 seconds"), and the infinite sentinels "Inf", "+Inf", "PlusInf",
// "-Inf", and "MinusInf".
func Parse(s string) (Duration, error) {
	trimmed := strings.TrimSpace(s)

	switch trimmed {
	case "Inf", "+Inf", "PlusInf":
		return Inf(), nil
	case "-Inf", "MinusInf":
		return MinusInf(), nil
	case "":
		return Zero(), fmt.Errorf("%w %q: empty", ErrParse, s)
	}

	// the standard library syntax covers inputs like "300ms" and "1h30m".
	if d, err := time.ParseDuration(trimmed); err == nil {
		return FromStd(d), nil
	}

	// fall back to "<magnitude> <unit word>".
	i := strings.IndexFunc(trimmed, func(r rune) bool {
		return !(r == '+' || r == '-' || r == '.' || (r >= '0' && r <= '9'))
	})
	if i <= 0 {
		return Zero(), fmt.Errorf("%w %q: missing unit", ErrParse, s)
	}

	mag, err := strconv.ParseFloat(strings.TrimSpace(trimmed[:i]), 64)
	if err != nil {
		return Zero(), fmt.Errorf("%w %q: bad magnitude", ErrParse, s)
	}

	unit, ok := unitOf(strings.TrimSpace(trimmed[i:]))
	if !ok {
		return Zero(), fmt.Errorf("%w %q: unknown unit %q", ErrParse, s, trimmed[i:])
	}

	return Duration{d: time.Duration(mag * float64(unit))}, nil
}

func unitOf(word string) (Unit, bool) {
	switch strings.ToLower(word) {
	case "ns", "nano", "nanos", "nanosecond", "nanoseconds":
		return Nanoseconds, true
	case "us", "µs", "micro", "micros", "microsecond", "microseconds":
		return Microseconds, true
	case "ms", "milli", "millis", "millisecond", "milliseconds":
		return Milliseconds, true
	case "s", "sec", "secs", "second", "seconds":
		return Seconds, true
	case "m", "min", "mins", "minute", "minutes":
		return Minutes, true
	case "h", "hr", "hrs", "hour", "hours":
		return Hours, true
	case "d", "day", "days":
		return Days, true
	default:
		return 0, false
	}
}

// IsFinite reports whether d is a finite duration.
func (d Duration) IsFinite() bool { return d.form == formFinite }

// IsInf reports whether d is one of the two infinite sentinels.
func (d Duration) IsInf() bool { return d.form != formFinite }

// Std returns the standard library representation of d, and whether that
// representation exists (it doesn't for the infinite sentinels).
func (d Duration) Std() (time.Duration, bool) {
	return d.d, d.form == formFinite
}

// To converts d to a floating point count of the provided unit.
// The infinite sentinels convert to ±Inf of the float64 domain.
func (d Duration) To(u Unit) float64 {
	switch d.form {
	case formInf:
		return math.Inf(1)
	case formMinusInf:
		return math.Inf(-1)
	default:
		return float64(d.d) / float64(u)
	}
}

// Cmp compares d and o, returning -1, 0, or +1.
// Inf compares greater than any finite value and equal to itself; MinusInf
// compares less than any finite value and equal to itself.
func (d Duration) Cmp(o Duration) int {
	if d.form != o.form {
		// the form constants are not declared in comparison order, so map
		// them explicitly.
		if rank(d.form) < rank(o.form) {
			return -1
		}
		return 1
	}
	switch {
	case d.form != formFinite:
		return 0
	case d.d < o.d:
		return -1
	case d.d > o.d:
		return 1
	default:
		return 0
	}
}

func rank(form int8) int {
	switch form {
	case formMinusInf:
		return -1
	case formInf:
		return 1
	default:
		return 0
	}
}

// Less reports whether d is strictly less than o.
func (d Duration) Less(o Duration) bool { return d.Cmp(o) < 0 }

// Min returns the smaller of d and o.
func (d Duration) Min(o Duration) Duration {
	if d.Cmp(o) <= 0 {
		return d
	}
	return o
}

// Max returns the larger of d and o.
func (d Duration) Max(o Duration) Duration {
	if d.Cmp(o) >= 0 {
		return d
	}
	return o
}

// Add returns d + o. An infinite operand absorbs a finite one.
// Adding Inf to MinusInf is undefined and panics.
func (d Duration) Add(o Duration) Duration {
	switch {
	case d.form == formFinite && o.form == formFinite:
		return Duration{d: d.d + o.d}
	case d.form == formFinite:
		return o
	case o.form == formFinite:
		return d
	case d.form == o.form:
		return d
	default:
		panic("duration: Inf + MinusInf is undefined")
	}
}

// Sub returns d - o, with the same absorption rules as Add.
// Subtracting an infinity from itself is undefined and panics.
func (d Duration) Sub(o Duration) Duration {
	return d.Add(o.Neg())
}

// Neg returns -d, flipping the infinite sentinels into each other.
func (d Duration) Neg() Duration {
	switch d.form {
	case formInf:
		return MinusInf()
	case formMinusInf:
		return Inf()
	default:
		return Duration{d: -d.d}
	}
}

// Mul returns d scaled by k. Scaling an infinity by a negative k flips its
// sign; scaling by zero is undefined for infinities and panics.
func (d Duration) Mul(k int64) Duration {
	if d.form == formFinite {
		return Duration{d: d.d * time.Duration(k)}
	}
	switch {
	case k > 0:
		return d
	case k < 0:
		return d.Neg()
	default:
		panic("duration: 0 * Inf is undefined")
	}
}

// Div returns d divided by k. k must not be zero.
// Dividing an infinity keeps it infinite, with the sign of k applied.
func (d Duration) Div(k int64) Duration {
	if k == 0 {
		panic("duration: division by zero")
	}
	if d.form == formFinite {
		return Duration{d: d.d / time.Duration(k)}
	}
	if k < 0 {
		return d.Neg()
	}
	return d
}

func (d Duration) String() string {
	switch d.form {
	case formInf:
		return "Inf"
	case formMinusInf:
		return "MinusInf"
	default:
		return d.d.String()
	}
}
