// Copyright 2020 Aleksandr Demakin. All rights reserved.

package qformat

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/exp/constraints"
	"golang.org/x/sync/errgroup"
)

// minChunk is the smallest number of elements a parallel worker gets.
const minChunk = 4096

// QuantizeSlice quantizes every element of xs into a new slice of the same length and order.
// The first failing element aborts the call: the error names its index and no slice is returned.
// float32 results are the float32 nearest to the quantized value, unless that one
// is out of the format range: then the nearest float32 inside the range is used.
func QuantizeSlice[T constraints.Float](q Quantizer, xs []T) ([]T, error) {
	p, err := q.plan()
	if err != nil {
		return nil, err
	}
	out := make([]T, len(xs))
	if err := fill(p, xs, out, 0); err != nil {
		return nil, err
	}
	return out, nil
}

// QuantizeSliceParallel is QuantizeSlice split between up to 'workers' goroutines.
// workers <= 0 means GOMAXPROCS. The result, including the reported error
// when several elements fail, is the same as for QuantizeSlice.
func QuantizeSliceParallel[T constraints.Float](ctx context.Context, q Quantizer, xs []T, workers int) ([]T, error) {
	p, err := q.plan()
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunk := max((len(xs)+workers-1)/workers, minChunk)
	chunks := (len(xs) + chunk - 1) / chunk
	out := make([]T, len(xs))
	errs := make([]error, chunks)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < chunks; i++ {
		lo, hi := i*chunk, min((i+1)*chunk, len(xs))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			errs[i] = fill(p, xs[lo:hi], out[lo:hi], lo)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			Logger().Debug("parallel quantization failed", zap.Stringer("quantizer", q), zap.Error(err))
			return nil, err
		}
	}
	Logger().Debug("parallel quantization done", zap.Stringer("quantizer", q),
		zap.Int("elements", len(xs)), zap.Int("chunks", chunks))
	return out, nil
}

func fill[T constraints.Float](p *plan, src, dst []T, offset int) error {
	for i, x := range src {
		v, err := p.quantize(float64(x))
		if err != nil {
			return fmt.Errorf("element %d: %w", offset+i, err)
		}
		dst[i] = narrow[T](v, p.min, p.max)
	}
	return nil
}

// narrow converts v to T. A float32 that rounds out of [lo, hi] is replaced
// with its neighbor toward v, which is inside the range.
func narrow[T constraints.Float](v, lo, hi float64) T {
	t := T(v)
	switch r := float64(t); {
	case r > hi:
		t = T(math.Nextafter32(float32(t), float32(math.Inf(-1))))
	case r < lo:
		t = T(math.Nextafter32(float32(t), float32(math.Inf(1))))
	}
	return t
}
