// Copyright 2020 Aleksandr Demakin. All rights reserved.

package qformat

// Option changes the defaults of QFormat.
type Option func(q *Quantizer)

// Unsigned makes the format unsigned.
func Unsigned() Option {
	return WithSigned(false)
}

// WithSigned sets the signedness of the format. Formats are signed by default.
func WithSigned(signed bool) Option {
	return func(q *Quantizer) {
		q.Format.Signed = signed
	}
}

// WithRounding sets the rounding method. The default is HalfUp.
func WithRounding(r Rounding) Option {
	return func(q *Quantizer) {
		q.Rounding = r
	}
}

// WithOverflow sets the overflow method. The default is Wrap.
func WithOverflow(o Overflow) Option {
	return func(q *Quantizer) {
		q.Overflow = o
	}
}

// QFormat quantizes x to a format with intBits integer bits (including the sign bit)
// and fracBits fractional bits. Without options the format is signed, rounding is HalfUp
// and overflow is Wrap.
func QFormat(x float64, intBits, fracBits int, opts ...Option) (float64, error) {
	return NewQuantizer(intBits, fracBits, opts...).Quantize(x)
}

// NewQuantizer builds a quantizer the way QFormat does. It is not validated.
func NewQuantizer(intBits, fracBits int, opts ...Option) Quantizer {
	q := Quantizer{Format: Format{IntBits: intBits, FracBits: fracBits, Signed: true}}
	for _, opt := range opts {
		opt(&q)
	}
	return q
}
