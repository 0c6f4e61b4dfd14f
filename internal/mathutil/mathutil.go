// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package mathutil contains integer and bit helpers shared by the quantizer.
package mathutil

import (
	"math"
	"math/big"
	"strings"
)

// FastBits is the widest register, in bits, whose codes are handled with int64 arithmetic.
// Wrapping such a code needs (code - min) to fit an int64, so two bits are kept spare.
const FastBits = 62

// FastLimit is the largest code magnitude handled with int64 arithmetic.
const FastLimit = 1 << FastBits

var bigOne = big.NewInt(1)

// Pow2 returns 2^pow as a float64.
func Pow2(pow int) float64 {
	return math.Ldexp(1, pow)
}

// Pow2Int returns 2^pow as a new big.Int.
func Pow2Int(pow uint) *big.Int {
	return new(big.Int).Lsh(bigOne, pow)
}

// FloorMod64 returns a mod m normalized to [0, m). m must be positive.
func FloorMod64(a, m int64) int64 {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// FloorModBig sets z to a mod m normalized to [0, m) and returns z. m must be positive.
func FloorModBig(z, a, m *big.Int) *big.Int {
	// big.Int.Mod implements Euclidean modulus, which is non-negative for positive m.
	return z.Mod(a, m)
}

// IsEven reports whether an integral float64 is even.
func IsEven(f float64) bool {
	return math.Mod(f, 2) == 0
}

// IsIntegral reports whether f is a finite whole number.
func IsIntegral(f float64) bool {
	return !math.IsInf(f, 0) && f == math.Trunc(f)
}

// FitsFast reports whether an integral float64 can take the int64 code path.
func FitsFast(f float64) bool {
	return f >= -FastLimit && f <= FastLimit
}

// IntFromFloat converts an integral float64 to a big.Int exactly.
func IntFromFloat(f float64) *big.Int {
	i, _ := new(big.Float).SetFloat64(f).Int(nil)
	return i
}

// TwosComplement returns the low 'width' bits of code as a string of '0' and '1',
// most significant bit first. If point is in (0, width), a '.' is inserted
// before the last 'point' bits.
func TwosComplement(code *big.Int, width, point int) string {
	u := new(big.Int).Set(code)
	if u.Sign() < 0 {
		u.Add(u, Pow2Int(uint(width)))
	}
	var b strings.Builder
	b.Grow(width + 1)
	for i := width - 1; i >= 0; i-- {
		if u.Bit(i) == 1 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
		if i == point && point > 0 && point < width {
			b.WriteByte('.')
		}
	}
	return b.String()
}
