// Copyright 2020 Aleksandr Demakin. All rights reserved.

package qformat

import (
	"fmt"
	"math/big"

	mu "github.com/avdva/qformat/internal/mathutil"
)

// Overflow selects what happens to a code outside the range of a format.
// The zero value is Wrap.
type Overflow int

const (
	// Wrap discards the high-order bits of the code, like a two's complement register.
	Wrap Overflow = iota
	// Sat clamps the code to the nearest end of the range.
	Sat
	// Error fails with an *OverflowError.
	Error

	numOverflows = iota
)

var overflowNames = [numOverflows]string{"WRAP", "SAT", "ERROR"}

// Overflows returns all overflow methods.
func Overflows() []Overflow {
	return []Overflow{Wrap, Sat, Error}
}

// Valid reports whether o is a known overflow method.
func (o Overflow) Valid() bool {
	return o >= 0 && o < numOverflows
}

// String returns the method name, like "SAT".
func (o Overflow) String() string {
	if !o.Valid() {
		return fmt.Sprintf("Overflow(%d)", int(o))
	}
	return overflowNames[o]
}

// ParseOverflow parses a method name. It is case-insensitive.
// "SATURATE" is accepted as an alias for "SAT".
func ParseOverflow(s string) (Overflow, error) {
	name := normalizeName(s)
	if name == "SATURATE" {
		return Sat, nil
	}
	for i, n := range overflowNames {
		if n == name {
			return Overflow(i), nil
		}
	}
	return 0, fmt.Errorf("unknown overflow method %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (o Overflow) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("unknown overflow method %d", int(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Overflow) UnmarshalText(data []byte) error {
	parsed, err := ParseOverflow(string(data))
	if err == nil {
		*o = parsed
	}
	return err
}

// bounds holds the code range of a format in both representations.
// The int64 fields are only set when fast is true.
type bounds struct {
	fast           bool
	min, max, span int64
	bmin, bmax     *big.Int
	bspan          *big.Int
}

func newBounds(f Format) bounds {
	b := bounds{
		bmin:  f.MinCode(),
		bmax:  f.MaxCode(),
		bspan: mu.Pow2Int(uint(f.TotalBits())),
		fast:  f.TotalBits() <= mu.FastBits,
	}
	if b.fast {
		b.min, b.max, b.span = b.bmin.Int64(), b.bmax.Int64(), b.bspan.Int64()
	}
	return b
}

// apply64 maps code onto the range. ok is false if the code is out of range under Error.
// code must be within [-mu.FastLimit, mu.FastLimit] and b.fast must be set.
func (o Overflow) apply64(code int64, b *bounds) (result int64, ok bool) {
	if code >= b.min && code <= b.max {
		return code, true
	}
	switch o {
	case Wrap:
		return b.min + mu.FloorMod64(code-b.min, b.span), true
	case Sat:
		if code < b.min {
			return b.min, true
		}
		return b.max, true
	default:
		return code, false
	}
}

// applyBig is apply64 for arbitrary codes. It may modify and return code.
func (o Overflow) applyBig(code *big.Int, b *bounds) (result *big.Int, ok bool) {
	if code.Cmp(b.bmin) >= 0 && code.Cmp(b.bmax) <= 0 {
		return code, true
	}
	switch o {
	case Wrap:
		code.Sub(code, b.bmin)
		mu.FloorModBig(code, code, b.bspan)
		return code.Add(code, b.bmin), true
	case Sat:
		if code.Cmp(b.bmin) < 0 {
			return code.Set(b.bmin), true
		}
		return code.Set(b.bmax), true
	default:
		return code, false
	}
}
