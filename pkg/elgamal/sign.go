package elgamal

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/taurusgroup/pubkey/internal/params"
	"github.com/taurusgroup/pubkey/pkg/math/arith"
	"github.com/taurusgroup/pubkey/pkg/math/sample"
)

var ErrSignatureGeneration = errors.New("elgamal: failed to produce a signature")

type Signature struct {
	// R = gᵏ (mod p)
	R *big.Int
	// S = k⁻¹⋅(H(msg) − x⋅R) (mod p-1)
	S *big.Int
}

// HashToInt returns SHA-256(msg) interpreted as a big-endian integer, reduced modulo modulus.
func HashToInt(msg []byte, modulus *big.Int) *big.Int {
	digest := sha256.Sum256(msg)
	h := new(big.Int).SetBytes(digest[:])
	return h.Mod(h, modulus)
}

// Sign returns an ElGamal signature of msg.
//
// A fresh k ∈ [2, p-2] with gcd(k, p-1) = 1 is sampled on each attempt, and attempts
// yielding s = 0 are discarded.
func Sign(rand io.Reader, sk *PrivateKey, msg []byte) (*Signature, error) {
	pMinus1 := new(big.Int).Sub(sk.p, one)
	m := HashToInt(msg, pMinus1)

	for i := 0; i < params.MaxSampleIterations; i++ {
		k, err := sample.Coprime(rand, two, pMinus1, pMinus1)
		if err != nil {
			return nil, fmt.Errorf("elgamal.Sign: sample nonce: %w", err)
		}
		sig, err := signWithNonce(sk, m, k)
		if err != nil {
			return nil, fmt.Errorf("elgamal.Sign: %w", err)
		}
		if sig.S.Sign() == 0 {
			continue
		}
		return sig, nil
	}
	return nil, ErrSignatureGeneration
}

// signWithNonce computes (r, s) for the reduced digest m and a nonce k invertible mod p-1.
func signWithNonce(sk *PrivateKey, m, k *big.Int) (*Signature, error) {
	pMinus1 := new(big.Int).Sub(sk.p, one)
	kInv, err := arith.ModInverse(k, pMinus1)
	if err != nil {
		return nil, err
	}
	r := arith.ModExp(sk.g, k, sk.p)

	// s = k⁻¹⋅(m − x⋅r) (mod p-1)
	s := new(big.Int).Mul(sk.x, r)
	s.Sub(m, s)
	s.Mul(s, kInv)
	s.Mod(s, pMinus1)
	return &Signature{R: r, S: s}, nil
}

// Verify returns true if sig is a valid signature of msg under pk.
//
// It checks 0 < r < p, 0 ≤ s < p-1 and yʳ⋅rˢ = gᴴ⁽ᵐˢᵍ⁾ (mod p).
func Verify(pk *PublicKey, msg []byte, sig *Signature) bool {
	if pk == nil || pk.p == nil || sig == nil || sig.R == nil || sig.S == nil {
		return false
	}
	pMinus1 := new(big.Int).Sub(pk.p, one)
	if sig.R.Sign() <= 0 || sig.R.Cmp(pk.p) >= 0 {
		return false
	}
	if sig.S.Sign() < 0 || sig.S.Cmp(pMinus1) >= 0 {
		return false
	}
	m := HashToInt(msg, pMinus1)

	lhs := arith.ModExp(pk.y, sig.R, pk.p)
	rs := arith.ModExp(sig.R, sig.S, pk.p)
	lhs.Mul(lhs, rs)
	lhs.Mod(lhs, pk.p)

	rhs := arith.ModExp(pk.g, m, pk.p)
	return lhs.Cmp(rhs) == 0
}

// Verify is a shorthand for Verify(pk, msg, sig).
func (sig *Signature) Verify(pk *PublicKey, msg []byte) bool {
	return Verify(pk, msg, sig)
}
