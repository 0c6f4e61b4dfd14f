// Copyright 2020 Aleksandr Demakin. All rights reserved.

package qformat

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestQuantizeSlice(t *testing.T) {
	a := assert.New(t)
	q := NewQuantizer(4, 2, WithRounding(HalfEven))
	xs := []float64{0.1, 0.125, 0.375, -0.375, 7.9, -8.2, 100}
	res, err := QuantizeSlice(q, xs)
	a.NoError(err)
	a.Len(res, len(xs))
	for i, x := range xs {
		a.Equal(q.MustQuantize(x), res[i], "element %d", i)
	}
	a.Equal([]float64{0, 0, 0.5, -0.5, -8, 7.75, 4}, res)
	a.Equal([]float64{0.1, 0.125, 0.375, -0.375, 7.9, -8.2, 100}, xs)

	empty, err := QuantizeSlice(q, []float64{})
	a.NoError(err)
	a.Empty(empty)
}

func TestQuantizeSliceFloat32(t *testing.T) {
	a := assert.New(t)
	q := NewQuantizer(3, 5, WithOverflow(Sat))
	res, err := QuantizeSlice(q, []float32{1.01, -1.01, 5, -5})
	a.NoError(err)
	a.Equal([]float32{1, -1, 3.96875, -4}, res)

	// 2^31-1 and 2^32-1 round to 2^31 and 2^32 as float32, which are out of range.
	xs := []float32{1e12, -1e12, 100}
	res, err = QuantizeSlice(NewQuantizer(32, 0, WithOverflow(Sat)), xs)
	a.NoError(err)
	a.Equal([]float32{2147483520, -2147483648, 100}, res)
	res, err = QuantizeSliceParallel(context.Background(), NewQuantizer(32, 0, Unsigned(), WithOverflow(Sat)), xs, 2)
	a.NoError(err)
	a.Equal([]float32{4294967040, 0, 100}, res)
	for _, v := range res {
		a.LessOrEqual(float64(v), MustFormat(32, 0, false).Max())
	}
}

func TestQuantizeSliceErrors(t *testing.T) {
	a := assert.New(t)
	q := NewQuantizer(4, 0, WithOverflow(Error))
	res, err := QuantizeSlice(q, []float64{1, 2, 8, 3, -9})
	a.Nil(res)
	a.EqualError(err, "element 2: fixed-point overflow: 8 (code 8) is out of sQ4.0 range [-8, 7]")
	var oe *OverflowError
	a.True(errors.As(err, &oe))

	res, err = QuantizeSlice(NewQuantizer(4, 0), []float64{1, math.NaN()})
	a.Nil(res)
	a.ErrorIs(err, ErrNonFinite)
	a.EqualError(err, "element 1: quantizing NaN: invalid input: non-finite value")

	_, err = QuantizeSlice(NewQuantizer(0, 0), []float64{1})
	a.ErrorIs(err, ErrInvalidFormat)
}

func TestQuantizeSliceParallel(t *testing.T) {
	a := assert.New(t)
	rnd := rand.New(rand.NewSource(5))
	xs := make([]float64, 3*minChunk+17)
	for i := range xs {
		xs[i] = rnd.NormFloat64() * 20
	}
	for _, r := range Roundings() {
		for _, o := range []Overflow{Wrap, Sat} {
			q := Quantizer{Format: MustFormat(5, 7, true), Rounding: r, Overflow: o}
			expected, err := QuantizeSlice(q, xs)
			require.NoError(t, err)
			for _, workers := range []int{0, 1, 2, 3, 16} {
				res, err := QuantizeSliceParallel(context.Background(), q, xs, workers)
				a.NoError(err)
				a.Equal(expected, res, "%s workers=%d", q, workers)
			}
		}
	}
}

func TestQuantizeSliceParallelErrors(t *testing.T) {
	a := assert.New(t)
	xs := make([]float64, 4*minChunk)
	xs[3*minChunk+5] = 100
	xs[minChunk+1] = -100
	xs[2*minChunk] = math.Inf(1)
	q := NewQuantizer(4, 0, WithOverflow(Error))

	_, seqErr := QuantizeSlice(q, xs)
	res, err := QuantizeSliceParallel(context.Background(), q, xs, 4)
	a.Nil(res)
	a.EqualError(err, seqErr.Error())
	a.Contains(err.Error(), "element 4097:")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err = QuantizeSliceParallel(ctx, NewQuantizer(4, 0), xs, 2)
	a.Nil(res)
	a.ErrorIs(err, context.Canceled)

	_, err = QuantizeSliceParallel(context.Background(), Quantizer{}, xs, 2)
	a.ErrorIs(err, ErrInvalidFormat)
}

func TestQuantizeSliceParallelLogging(t *testing.T) {
	a := assert.New(t)
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	_, err := QuantizeSliceParallel(context.Background(), NewQuantizer(8, 8), []float64{1, 2, 3}, 2)
	a.NoError(err)
	entries := logs.FilterMessage("parallel quantization done").All()
	if a.Len(entries, 1) {
		fields := entries[0].ContextMap()
		a.Equal("sQ8.8/HALF_UP/WRAP", fields["quantizer"])
		a.Equal(int64(3), fields["elements"])
		a.Equal(int64(1), fields["chunks"])
	}
}
