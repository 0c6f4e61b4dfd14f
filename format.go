// Copyright 2020 Aleksandr Demakin. All rights reserved.

package qformat

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	mu "github.com/avdva/qformat/internal/mathutil"
)

// MaxBits is the widest register a Format can describe.
const MaxBits = 4096

// Format describes a binary fixed-point register in Q notation.
// When Signed is set, IntBits includes the sign bit (ARM convention),
// so sQ4.2 holds codes from -32 to 31, that is values from -8 to 7.75.
// The zero Format is invalid.
type Format struct {
	IntBits  int
	FracBits int
	Signed   bool
}

// NewFormat returns a validated format.
func NewFormat(intBits, fracBits int, signed bool) (Format, error) {
	f := Format{IntBits: intBits, FracBits: fracBits, Signed: signed}
	if err := f.Validate(); err != nil {
		return Format{}, err
	}
	return f, nil
}

// MustFormat is like NewFormat, but panics on invalid input.
func MustFormat(intBits, fracBits int, signed bool) Format {
	f, err := NewFormat(intBits, fracBits, signed)
	if err != nil {
		panic(err)
	}
	return f
}

// Validate returns an error wrapping ErrInvalidFormat if f can't describe a register.
func (f Format) Validate() error {
	switch {
	case f.IntBits < 1:
		return formatError(f, "at least one integer bit is required")
	case f.FracBits < 0:
		return formatError(f, "negative fractional bit count")
	case f.IntBits > MaxBits || f.FracBits > MaxBits || f.TotalBits() > MaxBits:
		return formatError(f, fmt.Sprintf("more than %d bits", MaxBits))
	}
	return nil
}

// TotalBits returns the register width.
func (f Format) TotalBits() int {
	return f.IntBits + f.FracBits
}

// Scale returns 2^FracBits, the factor between a value and its code.
func (f Format) Scale() float64 {
	return mu.Pow2(f.FracBits)
}

// Resolution returns 2^-FracBits, the distance between adjacent values.
func (f Format) Resolution() float64 {
	return mu.Pow2(-f.FracBits)
}

// MinCode returns the smallest code of the register.
func (f Format) MinCode() *big.Int {
	if !f.Signed {
		return new(big.Int)
	}
	return new(big.Int).Neg(mu.Pow2Int(uint(f.TotalBits() - 1)))
}

// MaxCode returns the largest code of the register.
func (f Format) MaxCode() *big.Int {
	width := f.TotalBits()
	if f.Signed {
		width--
	}
	m := mu.Pow2Int(uint(width))
	return m.Sub(m, big.NewInt(1))
}

// Min returns the smallest representable value.
func (f Format) Min() float64 {
	return codeToFloat(f.MinCode(), f.FracBits)
}

// Max returns the largest representable value.
func (f Format) Max() float64 {
	return codeToFloat(f.MaxCode(), f.FracBits)
}

// Contains reports whether x is exactly representable in f.
func (f Format) Contains(x float64) bool {
	if f.Validate() != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return false
	}
	if scaled := math.Ldexp(x, f.FracBits); !math.IsInf(scaled, 0) && !mu.IsIntegral(scaled) {
		return false
	}
	_, err := Quantizer{Format: f, Rounding: Trunc, Overflow: Error}.Code(x)
	return err == nil
}

// String returns the format in Q notation, like "sQ4.2" or "uQ8.0".
func (f Format) String() string {
	var b strings.Builder
	if f.Signed {
		b.WriteByte('s')
	} else {
		b.WriteByte('u')
	}
	b.WriteByte('Q')
	b.WriteString(strconv.Itoa(f.IntBits))
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(f.FracBits))
	return b.String()
}

// ParseFormat parses Q notation: "sQ4.2", "uQ8.0", or "Q4.2" for a signed format.
// The result is validated.
func ParseFormat(s string) (Format, error) {
	src := s
	s = strings.TrimSpace(s)
	signed := true
	if len(s) > 0 {
		switch s[0] {
		case 's', 'S':
			s = s[1:]
		case 'u', 'U':
			signed = false
			s = s[1:]
		}
	}
	if len(s) == 0 || (s[0] != 'Q' && s[0] != 'q') {
		return Format{}, fmt.Errorf("parsing format %q: missing 'Q'", src)
	}
	intPart, fracPart, ok := strings.Cut(s[1:], ".")
	if !ok {
		return Format{}, fmt.Errorf("parsing format %q: missing '.'", src)
	}
	intBits, err := strconv.Atoi(intPart)
	if err != nil {
		return Format{}, fmt.Errorf("parsing format %q: %w", src, err)
	}
	fracBits, err := strconv.Atoi(fracPart)
	if err != nil {
		return Format{}, fmt.Errorf("parsing format %q: %w", src, err)
	}
	return NewFormat(intBits, fracBits, signed)
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(data []byte) error {
	parsed, err := ParseFormat(string(data))
	if err == nil {
		*f = parsed
	}
	return err
}

// codeToFloat returns the float64 nearest to code * 2^-frac.
func codeToFloat(code *big.Int, frac int) float64 {
	if code.IsInt64() {
		if c := code.Int64(); c >= -mu.FastLimit && c <= mu.FastLimit {
			return math.Ldexp(float64(c), -frac)
		}
	}
	bf := new(big.Float).SetInt(code)
	f, _ := bf.SetMantExp(bf, -frac).Float64()
	return f
}
