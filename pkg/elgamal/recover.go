package elgamal

import (
	"errors"
	"math/big"

	"github.com/taurusgroup/pubkey/pkg/math/arith"
)

var (
	ErrDistinctNonces = errors.New("elgamal: signatures do not share a nonce")
	ErrRecoveryFailed = errors.New("elgamal: no candidate secret matches the public key")
)

// maxCandidates bounds the number of solutions enumerated for a linear congruence.
const maxCandidates = 1 << 16

// RecoverKey recovers the private key from two signatures on different messages that reused the same nonce k.
//
// With a shared r = gᵏ:
//
//	s₁ − s₂ = k⁻¹⋅(m₁ − m₂) (mod p-1)
//	x⋅r     = m₁ − k⋅s₁     (mod p-1)
//
// p-1 is even, so both congruences may have several solutions; each candidate is
// checked against r = gᵏ and y = gˣ respectively.
func RecoverKey(pk *PublicKey, msg1 []byte, sig1 *Signature, msg2 []byte, sig2 *Signature) (*PrivateKey, error) {
	if !Verify(pk, msg1, sig1) || !Verify(pk, msg2, sig2) {
		return nil, ErrRecoveryFailed
	}
	if sig1.R.Cmp(sig2.R) != 0 {
		return nil, ErrDistinctNonces
	}
	pMinus1 := new(big.Int).Sub(pk.p, one)
	m1 := HashToInt(msg1, pMinus1)
	m2 := HashToInt(msg2, pMinus1)

	// k⋅(s₁ − s₂) = m₁ − m₂ (mod p-1)
	ds := new(big.Int).Sub(sig1.S, sig2.S)
	dm := new(big.Int).Sub(m1, m2)
	for _, k := range solveLinear(ds, dm, pMinus1) {
		if arith.ModExp(pk.g, k, pk.p).Cmp(sig1.R) != 0 {
			continue
		}
		// x⋅r = m₁ − k⋅s₁ (mod p-1)
		rhs := new(big.Int).Mul(k, sig1.S)
		rhs.Sub(m1, rhs)
		for _, x := range solveLinear(sig1.R, rhs, pMinus1) {
			if arith.ModExp(pk.g, x, pk.p).Cmp(pk.y) == 0 {
				return NewPrivateKey(pk.p, pk.g, pk.y, x)
			}
		}
	}
	return nil, ErrRecoveryFailed
}

// solveLinear returns the solutions z ∈ [0, n) of a⋅z = b (mod n), up to maxCandidates of them.
func solveLinear(a, b, n *big.Int) []*big.Int {
	a = new(big.Int).Mod(a, n)
	b = new(big.Int).Mod(b, n)
	d, _, _ := arith.ExtendedGCD(a, n)
	if d.Sign() == 0 {
		return nil
	}
	if new(big.Int).Mod(b, d).Sign() != 0 {
		return nil
	}
	nd := new(big.Int).Quo(n, d)
	ad := new(big.Int).Quo(a, d)
	bd := new(big.Int).Quo(b, d)

	var z0 *big.Int
	if nd.Cmp(one) == 0 {
		z0 = new(big.Int)
	} else {
		inv, err := arith.ModInverse(ad, nd)
		if err != nil {
			return nil
		}
		z0 = inv.Mul(inv, bd)
		z0.Mod(z0, nd)
	}

	count := maxCandidates
	if d.IsInt64() && d.Int64() < int64(count) {
		count = int(d.Int64())
	}
	out := make([]*big.Int, 0, count)
	z := z0
	for i := 0; i < count; i++ {
		out = append(out, new(big.Int).Set(z))
		z.Add(z, nd)
	}
	return out
}
