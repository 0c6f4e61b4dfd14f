// Copyright 2020 Aleksandr Demakin. All rights reserved.

package qformat

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatGeometry(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		f                Format
		total            int
		minCode, maxCode string
		min, max, scale  float64
	}{
		{Format{4, 0, true}, 4, "-8", "7", -8, 7, 1},
		{Format{4, 0, false}, 4, "0", "15", 0, 15, 1},
		{Format{4, 2, true}, 6, "-32", "31", -8, 7.75, 4},
		{Format{3, 2, true}, 5, "-16", "15", -4, 3.75, 4},
		{Format{1, 15, true}, 16, "-32768", "32767", -1, 1 - 1.0/32768, 32768},
		{Format{1, 0, true}, 1, "-1", "0", -1, 0, 1},
		{Format{1, 0, false}, 1, "0", "1", 0, 1, 1},
		{Format{64, 0, false}, 64, "0", "18446744073709551615", 0, math.Ldexp(1, 64), 1},
		{Format{32, 32, true}, 64, "-9223372036854775808", "9223372036854775807", math.Ldexp(-1, 31), math.Ldexp(1, 31), math.Ldexp(1, 32)},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.NoError(test.f.Validate())
			a.Equal(test.total, test.f.TotalBits())
			a.Equal(test.minCode, test.f.MinCode().String())
			a.Equal(test.maxCode, test.f.MaxCode().String())
			a.Equal(test.min, test.f.Min())
			a.Equal(test.max, test.f.Max())
			a.Equal(test.scale, test.f.Scale())
			a.Equal(1/test.scale, test.f.Resolution())
		})
	}
}

func TestFormatValidate(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		f   Format
		err string
	}{
		{Format{0, 0, true}, "invalid fixed-point format sQ0.0: at least one integer bit is required"},
		{Format{0, 8, false}, "invalid fixed-point format uQ0.8: at least one integer bit is required"},
		{Format{-3, 8, false}, "invalid fixed-point format uQ-3.8: at least one integer bit is required"},
		{Format{4, -1, true}, "invalid fixed-point format sQ4.-1: negative fractional bit count"},
		{Format{4000, 97, true}, "invalid fixed-point format sQ4000.97: more than 4096 bits"},
		{Format{4000, 96, true}, ""},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			err := test.f.Validate()
			if len(test.err) == 0 {
				a.NoError(err)
				return
			}
			a.EqualError(err, test.err)
			a.ErrorIs(err, ErrInvalidFormat)
			_, err = NewFormat(test.f.IntBits, test.f.FracBits, test.f.Signed)
			a.ErrorIs(err, ErrInvalidFormat)
			a.Panics(func() {
				MustFormat(test.f.IntBits, test.f.FracBits, test.f.Signed)
			})
		})
	}
}

func TestParseFormat(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		s   string
		f   Format
		err string
	}{
		{"sQ4.2", Format{4, 2, true}, ""},
		{"uQ8.0", Format{8, 0, false}, ""},
		{"Q1.15", Format{1, 15, true}, ""},
		{" q16.16 ", Format{16, 16, true}, ""},
		{"UQ3.5", Format{3, 5, false}, ""},
		{"Q4", Format{}, `parsing format "Q4": missing '.'`},
		{"s4.2", Format{}, `parsing format "s4.2": missing 'Q'`},
		{"", Format{}, `parsing format "": missing 'Q'`},
		{"Qa.2", Format{}, `parsing format "Qa.2": strconv.Atoi: parsing "a": invalid syntax`},
		{"Q4.x", Format{}, `parsing format "Q4.x": strconv.Atoi: parsing "x": invalid syntax`},
		{"uQ0.8", Format{}, "invalid fixed-point format uQ0.8: at least one integer bit is required"},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			f, err := ParseFormat(test.s)
			if len(test.err) > 0 {
				a.EqualError(err, test.err)
				return
			}
			if a.NoError(err) {
				a.Equal(test.f, f)
				again, err := ParseFormat(f.String())
				a.NoError(err)
				a.Equal(f, again)
			}
		})
	}
}

func TestFormatContains(t *testing.T) {
	a := assert.New(t)
	f := MustFormat(4, 2, true)
	a.True(f.Contains(7.75))
	a.True(f.Contains(-8))
	a.True(f.Contains(0.25))
	a.False(f.Contains(0.1))
	a.False(f.Contains(8))
	a.False(f.Contains(-8.25))
	a.False(f.Contains(math.NaN()))
	a.False(f.Contains(math.Inf(1)))
	a.False(Format{}.Contains(0))
	a.True(MustFormat(8, 1100, true).Contains(-128))
	a.False(MustFormat(8, 1100, true).Contains(128))
}
