// Copyright 2020 Aleksandr Demakin. All rights reserved.

package qformat

import (
	"fmt"
	"math"
	"strings"

	mu "github.com/avdva/qformat/internal/mathutil"
)

// Rounding selects how a scaled value is mapped to an integer code.
// The zero value is HalfUp.
type Rounding int

const (
	// HalfUp rounds to the nearest integer, ties toward +inf.
	HalfUp Rounding = iota
	// HalfDown rounds to the nearest integer, ties toward -inf.
	HalfDown
	// HalfEven rounds to the nearest integer, ties to the even one.
	HalfEven
	// HalfZero rounds to the nearest integer, ties toward zero.
	HalfZero
	// HalfAway rounds to the nearest integer, ties away from zero.
	HalfAway
	// Trunc rounds toward -inf, which is what dropping low bits of a two's complement code does.
	Trunc
	// Ceil rounds toward +inf.
	Ceil
	// ToZero rounds toward zero.
	ToZero
	// Away rounds away from zero.
	Away

	numRoundings = iota
)

var (
	roundingNames = [numRoundings]string{
		"HALF_UP", "HALF_DOWN", "HALF_EVEN", "HALF_ZERO", "HALF_AWAY",
		"TRUNC", "CEIL", "TO_ZERO", "AWAY",
	}

	roundingFuncs = [numRoundings]func(float64) float64{
		HalfUp:   roundHalfUp,
		HalfDown: roundHalfDown,
		HalfEven: roundHalfEven,
		HalfZero: roundHalfZero,
		HalfAway: roundHalfAway,
		Trunc:    math.Floor,
		Ceil:     math.Ceil,
		ToZero:   math.Trunc,
		Away:     roundAway,
	}
)

// Roundings returns all rounding methods.
func Roundings() []Rounding {
	result := make([]Rounding, numRoundings)
	for i := range result {
		result[i] = Rounding(i)
	}
	return result
}

// Valid reports whether r is a known rounding method.
func (r Rounding) Valid() bool {
	return r >= 0 && r < numRoundings
}

// String returns the method name, like "HALF_EVEN".
func (r Rounding) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Rounding(%d)", int(r))
	}
	return roundingNames[r]
}

// Round rounds a finite scaled value to an integral float64.
// Every float64 at or above 2^52 in magnitude is already integral, so the result is exact.
// Round panics if r is not a valid method.
func (r Rounding) Round(v float64) float64 {
	if !r.Valid() {
		panic(fmt.Sprintf("qformat: unknown rounding method %d", int(r)))
	}
	return roundingFuncs[r](v)
}

// ParseRounding parses a method name. It is case-insensitive and accepts '-' for '_'.
func ParseRounding(s string) (Rounding, error) {
	name := normalizeName(s)
	for i, n := range roundingNames {
		if n == name {
			return Rounding(i), nil
		}
	}
	return 0, fmt.Errorf("unknown rounding method %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Rounding) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("unknown rounding method %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rounding) UnmarshalText(data []byte) error {
	parsed, err := ParseRounding(string(data))
	if err == nil {
		*r = parsed
	}
	return err
}

func normalizeName(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
}

// nearest returns the floor and the ceiling of v, and the midpoint between them.
// For a non-integral v the floor is below 2^52 in magnitude, so floor+0.5 is exact.
func nearest(v float64) (f, c, h float64) {
	f = math.Floor(v)
	if f == v {
		return f, f, f
	}
	return f, f + 1, f + 0.5
}

func roundHalf(v float64, onTie func(f, c float64) float64) float64 {
	f, c, h := nearest(v)
	switch {
	case f == c:
		return f
	case v == h:
		return onTie(f, c)
	case v < h:
		return f
	default:
		return c
	}
}

func roundHalfUp(v float64) float64 {
	return roundHalf(v, func(_, c float64) float64 { return c })
}

func roundHalfDown(v float64) float64 {
	return roundHalf(v, func(f, _ float64) float64 { return f })
}

func roundHalfEven(v float64) float64 {
	return roundHalf(v, func(f, c float64) float64 {
		if mu.IsEven(f) {
			return f
		}
		return c
	})
}

func roundHalfZero(v float64) float64 {
	return roundHalf(v, func(f, c float64) float64 {
		if f >= 0 {
			return f
		}
		return c
	})
}

func roundHalfAway(v float64) float64 {
	return roundHalf(v, func(f, c float64) float64 {
		if f >= 0 {
			return c
		}
		return f
	})
}

func roundAway(v float64) float64 {
	if v >= 0 {
		return math.Ceil(v)
	}
	return math.Floor(v)
}
