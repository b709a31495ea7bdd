// Package ecdsa implements ECDSA signatures with SHA-256 over the groups of package curve.
package ecdsa

import (
	"errors"
	"fmt"
	"io"

	"github.com/taurusgroup/pubkey/internal/hash"
	"github.com/taurusgroup/pubkey/internal/params"
	"github.com/taurusgroup/pubkey/pkg/math/curve"
	"github.com/taurusgroup/pubkey/pkg/math/sample"
)

var (
	ErrInvalidKey          = errors.New("ecdsa: invalid key")
	ErrSignatureGeneration = errors.New("ecdsa: failed to produce a signature")
	ErrInvalidSignature    = errors.New("ecdsa: invalid signature encoding")
)

type PublicKey struct {
	point curve.Point
}

type PrivateKey struct {
	PublicKey
	d curve.Scalar
}

// GenerateKey samples a nonzero scalar d and returns the key pair (d, d⋅G).
func GenerateKey(rand io.Reader, group curve.Curve) (*PrivateKey, error) {
	for i := 0; i < params.MaxSampleIterations; i++ {
		d, err := sample.Scalar(rand, group)
		if err != nil {
			return nil, fmt.Errorf("ecdsa.GenerateKey: %w", err)
		}
		if d.IsZero() {
			continue
		}
		return &PrivateKey{
			PublicKey: PublicKey{point: d.ActOnBase()},
			d:         d,
		}, nil
	}
	return nil, fmt.Errorf("ecdsa.GenerateKey: %w", sample.ErrMaxIterations)
}

// NewPrivateKey returns the key pair for a nonzero scalar d.
func NewPrivateKey(d curve.Scalar) (*PrivateKey, error) {
	if d == nil || d.IsZero() {
		return nil, fmt.Errorf("%w: zero private scalar", ErrInvalidKey)
	}
	return &PrivateKey{
		PublicKey: PublicKey{point: d.ActOnBase()},
		d:         d.Curve().NewScalar().Set(d),
	}, nil
}

// ParsePublicKey decodes a compressed or uncompressed SEC1 point of group.
func ParsePublicKey(group curve.Curve, data []byte) (*PublicKey, error) {
	p := group.NewPoint()
	if err := p.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	if p.IsIdentity() {
		return nil, fmt.Errorf("%w: identity point", ErrInvalidKey)
	}
	return &PublicKey{point: p}, nil
}

func (sk *PrivateKey) Public() *PublicKey {
	return &sk.PublicKey
}

func (pk *PublicKey) Point() curve.Point {
	return pk.point
}

func (pk *PublicKey) Curve() curve.Curve {
	return pk.point.Curve()
}

// Bytes returns the compressed SEC1 encoding of the public point.
func (pk *PublicKey) Bytes() ([]byte, error) {
	return pk.point.MarshalBinary()
}

func (pk *PublicKey) Equal(other *PublicKey) bool {
	if pk.Curve().Name() != other.Curve().Name() {
		return false
	}
	return pk.point.Equal(other.point)
}

// Fingerprint returns a short identifier of the public key.
func (pk *PublicKey) Fingerprint() []byte {
	fp, err := hash.Fingerprint(pk.Domain(), pk.Curve().Name(), pk.point)
	if err != nil {
		panic(fmt.Sprintf("ecdsa: fingerprint: %v", err))
	}
	return fp
}

func (*PublicKey) Domain() string {
	return "ECDSA PublicKey"
}
