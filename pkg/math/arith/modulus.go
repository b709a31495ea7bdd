package arith

import (
	"math/big"

	"github.com/cronokirby/saferith"
)

// Modulus wraps a saferith.Modulus and enables faster modular exponentiation when
// the factorization is known.
// When n = p⋅q, xᵉ (mod n) can be computed with only two exponentiations
// with p and q respectively.
type Modulus struct {
	// represents modulus n
	*saferith.Modulus
	// n = p⋅q
	p, q *saferith.Modulus
	// pInv = p⁻¹ (mod q)
	pNat, pInv *saferith.Nat
}

// ModulusFromN creates a simple wrapper around a given modulus n.
func ModulusFromN(n *big.Int) *Modulus {
	return &Modulus{
		Modulus: saferith.ModulusFromBytes(n.Bytes()),
	}
}

// ModulusFromFactors creates the necessary cached values to accelerate
// exponentiation mod n.
//
// p and q must be distinct primes.
func ModulusFromFactors(p, q *big.Int) *Modulus {
	pNat := new(saferith.Nat).SetBig(p, p.BitLen())
	qNat := new(saferith.Nat).SetBig(q, q.BitLen())
	nNat := new(saferith.Nat).Mul(pNat, qNat, -1)
	nMod := saferith.ModulusFromNat(nNat)
	pMod := saferith.ModulusFromNat(pNat)
	qMod := saferith.ModulusFromNat(qNat)
	pInvQ := new(saferith.Nat).ModInverse(pNat, qMod)
	return &Modulus{
		Modulus: nMod,
		p:       pMod,
		q:       qMod,
		pNat:    pNat,
		pInv:    pInvQ,
	}
}

// Exp returns xᵉ (mod n), for x ∈ [0, n) and e >= 0.
func (n *Modulus) Exp(x, e *big.Int) *big.Int {
	bits := n.BitLen()
	xNat := new(saferith.Nat).SetBig(x, bits)
	eNat := new(saferith.Nat).SetBig(e, e.BitLen())
	if n.hasFactorization() {
		var xp, xq saferith.Nat
		xp.Exp(xNat, eNat, n.p) // x₁ = xᵉ (mod p)
		xq.Exp(xNat, eNat, n.q) // x₂ = xᵉ (mod q)
		// r = x₁ + p ⋅ [p⁻¹ (mod q)] ⋅ [x₂ - x₁] (mod n)
		r := xq.ModSub(&xq, &xp, n.Modulus)
		r.ModMul(r, n.pInv, n.Modulus)
		r.ModMul(r, n.pNat, n.Modulus)
		r.ModAdd(r, &xp, n.Modulus)
		return r.Big()
	}
	return new(saferith.Nat).Exp(xNat, eNat, n.Modulus).Big()
}

// N returns n as a big.Int.
func (n *Modulus) N() *big.Int {
	return n.Modulus.Big()
}

func (n Modulus) hasFactorization() bool {
	return n.p != nil && n.q != nil && n.pNat != nil && n.pInv != nil
}
