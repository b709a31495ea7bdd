package ecdsa

import (
	"crypto/sha256"
	"fmt"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/pubkey/internal/params"
	"github.com/taurusgroup/pubkey/pkg/math/curve"
	"github.com/taurusgroup/pubkey/pkg/math/sample"
)

type Signature struct {
	// R = x(k⋅G) (mod n)
	R *big.Int
	// S = k⁻¹⋅(H(msg) + r⋅d) (mod n)
	S *big.Int
}

// hashToNat returns SHA-256(msg) as an integer reduced modulo the group order.
//
// Both supported groups have 256-bit orders, so no truncation of the digest is needed.
func hashToNat(group curve.Curve, msg []byte) *saferith.Nat {
	digest := sha256.Sum256(msg)
	z := new(saferith.Nat).SetBytes(digest[:])
	return z.Mod(z, group.Order())
}

func scalarToNat(s curve.Scalar) *saferith.Nat {
	data, err := s.MarshalBinary()
	if err != nil {
		panic(fmt.Sprintf("ecdsa: scalar encoding: %v", err))
	}
	return new(saferith.Nat).SetBytes(data)
}

// xModOrder returns the affine x-coordinate of p reduced modulo the group order.
func xModOrder(p curve.Point) (*saferith.Nat, error) {
	x, err := p.XBytes()
	if err != nil {
		return nil, err
	}
	r := new(saferith.Nat).SetBytes(x)
	return r.Mod(r, p.Curve().Order()), nil
}

// Sign returns an ECDSA signature of SHA-256(msg).
//
// A fresh nonce k is sampled for every attempt, and attempts giving r = 0 or s = 0 are discarded.
func Sign(rand io.Reader, sk *PrivateKey, msg []byte) (*Signature, error) {
	if sk == nil || sk.d == nil {
		return nil, ErrInvalidKey
	}
	group := sk.d.Curve()
	z := hashToNat(group, msg)
	for i := 0; i < params.MaxSampleIterations; i++ {
		k, err := sample.Scalar(rand, group)
		if err != nil {
			return nil, fmt.Errorf("ecdsa.Sign: sample nonce: %w", err)
		}
		if k.IsZero() {
			continue
		}
		sig, err := signWithNonce(sk, z, k)
		if err != nil {
			continue
		}
		return sig, nil
	}
	return nil, ErrSignatureGeneration
}

// signWithNonce computes (r, s) for the reduced digest z and a nonzero nonce k.
func signWithNonce(sk *PrivateKey, z *saferith.Nat, k curve.Scalar) (*Signature, error) {
	order := k.Curve().Order()
	r, err := xModOrder(k.ActOnBase())
	if err != nil {
		return nil, err
	}
	if r.EqZero() == 1 {
		return nil, ErrSignatureGeneration
	}
	kInv := new(saferith.Nat).ModInverse(scalarToNat(k), order)

	// s = k⁻¹⋅(z + r⋅d) (mod n)
	s := new(saferith.Nat).ModMul(r, scalarToNat(sk.d), order)
	s.ModAdd(s, z, order)
	s.ModMul(s, kInv, order)
	if s.EqZero() == 1 {
		return nil, ErrSignatureGeneration
	}
	return &Signature{R: r.Big(), S: s.Big()}, nil
}

// Verify returns true if sig is a valid signature of msg under pk.
//
// It checks 0 < r, s < n and x(u₁⋅G + u₂⋅Q) = r (mod n), with w = s⁻¹, u₁ = H(msg)⋅w and u₂ = r⋅w.
// Malformed input gives false.
func Verify(pk *PublicKey, msg []byte, sig *Signature) bool {
	if pk == nil || pk.point == nil || pk.point.IsIdentity() || sig == nil || sig.R == nil || sig.S == nil {
		return false
	}
	group := pk.Curve()
	order := group.Order()
	n := order.Big()
	if sig.R.Sign() <= 0 || sig.R.Cmp(n) >= 0 || sig.S.Sign() <= 0 || sig.S.Cmp(n) >= 0 {
		return false
	}
	bits := group.ScalarBits()
	r := new(saferith.Nat).SetBig(sig.R, bits)
	s := new(saferith.Nat).SetBig(sig.S, bits)
	z := hashToNat(group, msg)

	w := new(saferith.Nat).ModInverse(s, order)
	u1 := group.NewScalar().SetNat(new(saferith.Nat).ModMul(z, w, order))
	u2 := group.NewScalar().SetNat(new(saferith.Nat).ModMul(r, w, order))

	point := u1.ActOnBase().Add(u2.Act(pk.point))
	if point.IsIdentity() {
		return false
	}
	v, err := xModOrder(point)
	if err != nil {
		return false
	}
	return v.Big().Cmp(sig.R) == 0
}

// Verify is shorthand for Verify(pk, msg, sig).
func (sig *Signature) Verify(pk *PublicKey, msg []byte) bool {
	return Verify(pk, msg, sig)
}
