package curve

import (
	"encoding"
	"errors"
	"fmt"

	"github.com/cronokirby/saferith"
)

// Curve represents a prime order elliptic curve group.
type Curve interface {
	// NewPoint returns the identity element.
	NewPoint() Point
	// NewBasePoint returns the standard generator.
	NewBasePoint() Point
	// NewScalar returns the scalar 0.
	NewScalar() Scalar
	Name() string
	// ScalarBits is the bit length of the group order.
	ScalarBits() int
	// SafeScalarBytes is the number of random bytes needed to sample a scalar with negligible bias.
	SafeScalarBytes() int
	// FieldBytes is the size of an encoded affine coordinate.
	FieldBytes() int
	Order() *saferith.Modulus
}

// Scalar is an integer modulo the order of a Curve.
type Scalar interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	Curve() Curve
	Equal(Scalar) bool
	IsZero() bool
	Set(Scalar) Scalar
	// SetNat sets the scalar to x reduced modulo the group order.
	SetNat(*saferith.Nat) Scalar
	// Act returns s⋅P.
	Act(Point) Point
	// ActOnBase returns s⋅G.
	ActOnBase() Point
}

// Point is an element of a Curve.
type Point interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	Curve() Curve
	Set(Point) Point
	// Add returns p + q as a new point.
	Add(Point) Point
	Equal(Point) bool
	IsIdentity() bool
	// XBytes returns the big-endian affine x-coordinate, padded to FieldBytes.
	// The identity has no affine coordinates and returns an error.
	XBytes() ([]byte, error)
}

// ErrUnknownCurve is returned by FromName for names it does not support.
var ErrUnknownCurve = errors.New("curve: unknown curve")

// FromName returns the Curve matching name.
func FromName(name string) (Curve, error) {
	switch name {
	case Secp256k1{}.Name():
		return Secp256k1{}, nil
	case P256{}.Name():
		return P256{}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownCurve, name)
}
