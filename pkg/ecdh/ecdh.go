// Package ecdh implements elliptic curve Diffie-Hellman over the groups of package curve,
// deriving a symmetric key from the shared point.
package ecdh

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"github.com/taurusgroup/pubkey/internal/hash"
	"github.com/taurusgroup/pubkey/internal/params"
	"github.com/taurusgroup/pubkey/pkg/math/curve"
	"github.com/taurusgroup/pubkey/pkg/math/sample"
)

var (
	ErrCurveMismatch = errors.New("ecdh: keys belong to different curves")
	ErrInvalidPoint  = errors.New("ecdh: invalid point")
)

type PublicKey struct {
	point curve.Point
}

type PrivateKey struct {
	PublicKey
	scalar curve.Scalar
}

// GenerateKey samples a nonzero scalar d and returns the key pair (d, d⋅G).
func GenerateKey(rand io.Reader, group curve.Curve) (*PrivateKey, error) {
	for i := 0; i < params.MaxSampleIterations; i++ {
		d, err := sample.Scalar(rand, group)
		if err != nil {
			return nil, fmt.Errorf("ecdh.GenerateKey: %w", err)
		}
		if d.IsZero() {
			continue
		}
		return &PrivateKey{
			PublicKey: PublicKey{point: d.ActOnBase()},
			scalar:    d,
		}, nil
	}
	return nil, fmt.Errorf("ecdh.GenerateKey: %w", sample.ErrMaxIterations)
}

// NewPrivateKey returns the key pair for a nonzero scalar d.
func NewPrivateKey(d curve.Scalar) (*PrivateKey, error) {
	if d == nil || d.IsZero() {
		return nil, fmt.Errorf("ecdh: zero private scalar")
	}
	return &PrivateKey{
		PublicKey: PublicKey{point: d.ActOnBase()},
		scalar:    d.Curve().NewScalar().Set(d),
	}, nil
}

// ParsePublicKey decodes a compressed or uncompressed SEC1 point of group.
//
// The identity is rejected with ErrInvalidPoint.
func ParsePublicKey(group curve.Curve, data []byte) (*PublicKey, error) {
	p := group.NewPoint()
	if err := p.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	if p.IsIdentity() {
		return nil, ErrInvalidPoint
	}
	return &PublicKey{point: p}, nil
}

// SharedKey returns SHA-256(x)[:params.KeyLength], where x is the affine x-coordinate of d_own⋅P_peer.
func SharedKey(own *PrivateKey, peer *PublicKey) ([]byte, error) {
	if own == nil || peer == nil || peer.point == nil {
		return nil, ErrInvalidPoint
	}
	if own.scalar.Curve().Name() != peer.point.Curve().Name() {
		return nil, ErrCurveMismatch
	}
	if peer.point.IsIdentity() {
		return nil, ErrInvalidPoint
	}
	shared := own.scalar.Act(peer.point)
	x, err := shared.XBytes()
	if err != nil {
		return nil, fmt.Errorf("%w: shared point: %v", ErrInvalidPoint, err)
	}
	digest := sha256.Sum256(x)
	return digest[:params.KeyLength], nil
}

// Public returns the public part of sk.
func (sk *PrivateKey) Public() *PublicKey {
	return &sk.PublicKey
}

// Point returns the public point.
func (pk *PublicKey) Point() curve.Point {
	return pk.point
}

// Curve returns the group of the key.
func (pk *PublicKey) Curve() curve.Curve {
	return pk.point.Curve()
}

// Bytes returns the compressed SEC1 encoding of the public point.
func (pk *PublicKey) Bytes() ([]byte, error) {
	return pk.point.MarshalBinary()
}

// Equal returns true if both keys hold the same point of the same curve.
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
		panic(fmt.Sprintf("ecdh: fingerprint: %v", err))
	}
	return fp
}

// Domain is the hash domain of ECDH public keys.
func (*PublicKey) Domain() string {
	return "ECDH PublicKey"
}
