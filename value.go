// Copyright 2020 Aleksandr Demakin. All rights reserved.

package qformat

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	mu "github.com/avdva/qformat/internal/mathutil"
)

// Value is the content of a fixed-point register: an integer code and its format.
// The number it represents is Code * 2^-FracBits.
// The zero Value has no format and represents zero.
type Value struct {
	code   *big.Int
	format Format
}

// FromCode returns a value for a register code.
// It fails if the format is invalid, or if the code is out of its range.
func FromCode(code *big.Int, f Format) (Value, error) {
	if err := f.Validate(); err != nil {
		return Value{}, err
	}
	if code.Cmp(f.MinCode()) < 0 || code.Cmp(f.MaxCode()) > 0 {
		return Value{}, &OverflowError{Value: codeToFloat(code, f.FracBits), Code: new(big.Int).Set(code), Format: f}
	}
	return Value{code: new(big.Int).Set(code), format: f}, nil
}

// FromInt64Code is FromCode for an int64 code.
func FromInt64Code(code int64, f Format) (Value, error) {
	return FromCode(big.NewInt(code), f)
}

// Format returns the format of v.
func (v Value) Format() Format {
	return v.format
}

// Code returns a copy of the register code.
func (v Value) Code() *big.Int {
	if v.code == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v.code)
}

// Int64 returns the code as an int64, if it fits.
func (v Value) Int64() (code int64, ok bool) {
	if v.code == nil {
		return 0, true
	}
	return v.code.Int64(), v.code.IsInt64()
}

// Float64 returns the float64 nearest to v.
func (v Value) Float64() float64 {
	if v.code == nil {
		return 0
	}
	return codeToFloat(v.code, v.format.FracBits)
}

// Decimal returns v as an exact decimal.
// code * 2^-n equals code * 5^n * 10^-n, which always has a finite decimal form.
func (v Value) Decimal() decimal.Decimal {
	if v.code == nil || v.code.Sign() == 0 {
		return decimal.Zero
	}
	n := v.format.FracBits
	if n == 0 {
		return decimal.NewFromBigInt(v.code, 0)
	}
	m := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(n)), nil)
	m.Mul(m, v.code)
	return decimal.NewFromBigInt(m, int32(-n))
}

// String returns the exact decimal representation of v.
func (v Value) String() string {
	return v.Decimal().String()
}

// GoString returns debug string representation.
func (v Value) GoString() string {
	return fmt.Sprintf("%s {%s, %s}", v.String(), v.Code(), v.format)
}

// Bits returns the register as a two's complement bit string with a '.' at the binary point,
// like "0111.11" for 7.75 in sQ4.2.
func (v Value) Bits() string {
	if v.code == nil {
		return ""
	}
	return mu.TwosComplement(v.code, v.format.TotalBits(), v.format.FracBits)
}

// Cmp compares the numbers two values represent.
// Returns -1 if a < b, 0 if a == b, 1 if a > b
func (v Value) Cmp(other Value) int {
	a, b := v.Code(), other.Code()
	if d := v.format.FracBits - other.format.FracBits; d > 0 {
		b.Lsh(b, uint(d))
	} else if d < 0 {
		a.Lsh(a, uint(-d))
	}
	return a.Cmp(b)
}

// Eq returns true, if both values represent the same number.
func (v Value) Eq(other Value) bool {
	return v.Cmp(other) == 0
}

// MarshalJSON encodes v as a string with its exact decimal value.
func (v Value) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('"')
	b.WriteString(v.String())
	b.WriteByte('"')
	return b.Bytes(), nil
}
