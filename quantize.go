// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package qformat quantizes real numbers to binary fixed-point (Q-format) registers.
//
// A value is scaled by 2^FracBits, rounded to an integer code with one of nine
// rounding methods, brought into the register range with one of three overflow
// methods, and scaled back. Quantization is a pure function of its arguments,
// so slices may be processed in parallel.
//
//	q := qformat.Quantizer{Format: qformat.MustFormat(4, 2, true), Overflow: qformat.Sat}
//	v, err := q.Quantize(8) // 7.75
package qformat

import (
	"fmt"
	"math"
	"math/big"

	mu "github.com/avdva/qformat/internal/mathutil"
)

// Quantizer binds a format to rounding and overflow methods.
// The zero values of Rounding and Overflow are HalfUp and Wrap.
type Quantizer struct {
	Format   Format
	Rounding Rounding
	Overflow Overflow
}

// New returns a validated quantizer.
func New(f Format, r Rounding, o Overflow) (Quantizer, error) {
	q := Quantizer{Format: f, Rounding: r, Overflow: o}
	if err := q.Validate(); err != nil {
		return Quantizer{}, err
	}
	return q, nil
}

// Validate checks the format and both methods.
func (q Quantizer) Validate() error {
	if err := q.Format.Validate(); err != nil {
		return err
	}
	if !q.Rounding.Valid() {
		return fmt.Errorf("%w: unknown rounding method %d", ErrInvalidInput, int(q.Rounding))
	}
	if !q.Overflow.Valid() {
		return fmt.Errorf("%w: unknown overflow method %d", ErrInvalidInput, int(q.Overflow))
	}
	return nil
}

// String returns a description like "sQ4.2/HALF_UP/WRAP".
func (q Quantizer) String() string {
	return q.Format.String() + "/" + q.Rounding.String() + "/" + q.Overflow.String()
}

// Quantize returns the representable value x is mapped to.
// Errors wrap ErrInvalidFormat, ErrNonFinite or, under the Error method, are *OverflowError.
func (q Quantizer) Quantize(x float64) (float64, error) {
	p, err := q.plan()
	if err != nil {
		return 0, err
	}
	return p.quantize(x)
}

// MustQuantize is like Quantize, but panics on error.
func (q Quantizer) MustQuantize(x float64) float64 {
	v, err := q.Quantize(x)
	if err != nil {
		panic(err)
	}
	return v
}

// Code is like Quantize, but returns the exact register contents.
func (q Quantizer) Code(x float64) (Value, error) {
	p, err := q.plan()
	if err != nil {
		return Value{}, err
	}
	return p.value(x)
}

// Quantize quantizes a single value, see Quantizer.Quantize.
func Quantize(x float64, f Format, r Rounding, o Overflow) (float64, error) {
	return Quantizer{Format: f, Rounding: r, Overflow: o}.Quantize(x)
}

// plan is a validated quantizer with precomputed code bounds.
// It is read-only and can be shared between goroutines.
type plan struct {
	q        Quantizer
	b        bounds
	min, max float64
}

func (q Quantizer) plan() (*plan, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return &plan{q: q, b: newBounds(q.Format), min: q.Format.Min(), max: q.Format.Max()}, nil
}

func (p *plan) quantize(x float64) (float64, error) {
	c, bc, err := p.code(x)
	if err != nil {
		return 0, err
	}
	if bc == nil {
		return math.Ldexp(float64(c), -p.q.Format.FracBits), nil
	}
	return codeToFloat(bc, p.q.Format.FracBits), nil
}

func (p *plan) value(x float64) (Value, error) {
	c, bc, err := p.code(x)
	if err != nil {
		return Value{}, err
	}
	if bc == nil {
		bc = big.NewInt(c)
	}
	return Value{code: bc, format: p.q.Format}, nil
}

// code runs the pipeline on x. The final code is returned in c if bc is nil, otherwise in bc.
func (p *plan) code(x float64) (c int64, bc *big.Int, err error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, nil, fmt.Errorf("quantizing %v: %w", x, ErrNonFinite)
	}
	frac := p.q.Format.FracBits
	if v := math.Ldexp(x, frac); !math.IsInf(v, 0) {
		r := p.q.Rounding.Round(v)
		if p.b.fast && mu.FitsFast(r) {
			c, ok := p.q.Overflow.apply64(int64(r), &p.b)
			if !ok {
				return 0, nil, p.overflowError(x, big.NewInt(c))
			}
			return c, nil, nil
		}
		bc = mu.IntFromFloat(r)
	} else {
		// |x|*2^frac exceeds the float64 range, so it is already a whole number.
		bf := new(big.Float).SetFloat64(x)
		bc, _ = bf.SetMantExp(bf, frac).Int(nil)
	}
	bc, ok := p.q.Overflow.applyBig(bc, &p.b)
	if !ok {
		return 0, nil, p.overflowError(x, bc)
	}
	return 0, bc, nil
}

func (p *plan) overflowError(x float64, code *big.Int) error {
	return &OverflowError{Value: x, Code: code, Format: p.q.Format}
}
