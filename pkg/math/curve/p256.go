package curve

import (
	"bytes"
	"crypto/elliptic"
	"errors"
	"fmt"

	"filippo.io/nistec"
	"github.com/cronokirby/saferith"
)

var p256Order = saferith.ModulusFromBytes(elliptic.P256().Params().N.Bytes())

// P256 is the NIST P-256 curve, backed by filippo.io/nistec.
type P256 struct{}

func (P256) NewPoint() Point {
	return &P256Point{value: nistec.NewP256Point()}
}

func (P256) NewBasePoint() Point {
	return &P256Point{value: nistec.NewP256Point().SetGenerator()}
}

func (P256) NewScalar() Scalar {
	return &P256Scalar{value: new(saferith.Nat).SetUint64(0).Resize(256)}
}

func (P256) Name() string {
	return "P-256"
}

func (P256) ScalarBits() int {
	return 256
}

func (P256) SafeScalarBytes() int {
	return 32 + 16
}

func (P256) FieldBytes() int {
	return 32
}

func (P256) Order() *saferith.Modulus {
	return p256Order
}

type P256Scalar struct {
	value *saferith.Nat
}

func p256CastScalar(generic Scalar) *P256Scalar {
	out, ok := generic.(*P256Scalar)
	if !ok {
		panic(fmt.Sprintf("failed to convert to p256Scalar: %v", generic))
	}
	return out
}

func (*P256Scalar) Curve() Curve {
	return P256{}
}

// bytes returns the 32 byte big-endian encoding expected by nistec.
func (s *P256Scalar) bytes() []byte {
	out := make([]byte, 32)
	s.value.Big().FillBytes(out)
	return out
}

func (s *P256Scalar) MarshalBinary() ([]byte, error) {
	return s.bytes(), nil
}

func (s *P256Scalar) UnmarshalBinary(data []byte) error {
	if len(data) != 32 {
		return fmt.Errorf("invalid length for p256 scalar: %d", len(data))
	}
	x := new(saferith.Nat).SetBytes(data)
	if _, _, lt := x.CmpMod(p256Order); lt != 1 {
		return errors.New("invalid bytes for p256 scalar")
	}
	s.value = x.Resize(256)
	return nil
}

func (s *P256Scalar) Equal(that Scalar) bool {
	other := p256CastScalar(that)

	return bytes.Equal(s.bytes(), other.bytes())
}

func (s *P256Scalar) IsZero() bool {
	return s.value.EqZero() == 1
}

func (s *P256Scalar) Set(that Scalar) Scalar {
	other := p256CastScalar(that)

	s.value = new(saferith.Nat).SetNat(other.value)
	return s
}

func (s *P256Scalar) SetNat(x *saferith.Nat) Scalar {
	s.value = new(saferith.Nat).Mod(x, p256Order)
	return s
}

func (s *P256Scalar) Act(that Point) Point {
	other := p256CastPoint(that)
	out, err := nistec.NewP256Point().ScalarMult(other.value, s.bytes())
	if err != nil {
		panic(fmt.Sprintf("p256Scalar.Act: %v", err))
	}
	return &P256Point{value: out}
}

func (s *P256Scalar) ActOnBase() Point {
	out, err := nistec.NewP256Point().ScalarBaseMult(s.bytes())
	if err != nil {
		panic(fmt.Sprintf("p256Scalar.ActOnBase: %v", err))
	}
	return &P256Point{value: out}
}

type P256Point struct {
	value *nistec.P256Point
}

func p256CastPoint(generic Point) *P256Point {
	out, ok := generic.(*P256Point)
	if !ok {
		panic(fmt.Sprintf("failed to convert to p256Point: %v", generic))
	}
	return out
}

func (*P256Point) Curve() Curve {
	return P256{}
}

// MarshalBinary returns the 33 byte compressed encoding, or a single zero byte for the identity.
func (p *P256Point) MarshalBinary() ([]byte, error) {
	if p.IsIdentity() {
		return []byte{0}, nil
	}
	return p.value.BytesCompressed(), nil
}

// UnmarshalBinary accepts compressed (33 bytes) and uncompressed (65 bytes) SEC1 encodings.
func (p *P256Point) UnmarshalBinary(data []byte) error {
	value, err := nistec.NewP256Point().SetBytes(data)
	if err != nil {
		return fmt.Errorf("p256Point.UnmarshalBinary: %w", err)
	}
	p.value = value
	return nil
}

func (p *P256Point) Set(that Point) Point {
	other := p256CastPoint(that)

	p.value = nistec.NewP256Point().Set(other.value)
	return p
}

func (p *P256Point) Add(that Point) Point {
	other := p256CastPoint(that)

	return &P256Point{value: nistec.NewP256Point().Add(p.value, other.value)}
}

func (p *P256Point) Equal(that Point) bool {
	other := p256CastPoint(that)

	return bytes.Equal(p.value.Bytes(), other.value.Bytes())
}

func (p *P256Point) IsIdentity() bool {
	return len(p.value.Bytes()) == 1
}

func (p *P256Point) XBytes() ([]byte, error) {
	x, err := p.value.BytesX()
	if err != nil {
		return nil, fmt.Errorf("p256Point.XBytes: %w", err)
	}
	return x, nil
}
