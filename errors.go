// Copyright 2020 Aleksandr Demakin. All rights reserved.

package qformat

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrInvalidFormat is returned for geometrically impossible formats.
	ErrInvalidFormat = errors.New("invalid fixed-point format")
	// ErrInvalidInput is returned for values no rounding method is defined for.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNonFinite is returned for infinities and not-a-numbers.
	ErrNonFinite = fmt.Errorf("%w: non-finite value", ErrInvalidInput)
	// ErrOverflow matches every *OverflowError with errors.Is.
	ErrOverflow = errors.New("fixed-point overflow")
)

// OverflowError is returned under the Error overflow method when the rounded
// code lies outside the range of the format.
type OverflowError struct {
	Value  float64
	Code   *big.Int
	Format Format
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("%v: %v (code %s) is out of %s range [%s, %s]",
		ErrOverflow, e.Value, e.Code, e.Format, e.Format.MinCode(), e.Format.MaxCode())
}

// Is makes errors.Is(err, ErrOverflow) true.
func (e *OverflowError) Is(target error) bool {
	return target == ErrOverflow
}

func formatError(f Format, reason string) error {
	return fmt.Errorf("%w %s: %s", ErrInvalidFormat, f, reason)
}
