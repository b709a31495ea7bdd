package arith

import "math/big"

// FindGenerator scans g = 2, 3, ..., p-2 and returns the first g such that
//
//	g^((p-1)/2) != 1 (mod p) and g² != 1 (mod p).
//
// This is a heuristic: it only guarantees that g is a quadratic non-residue of order > 2.
// It is a proof of primitivity only when (p-1)/2 is itself prime.
func FindGenerator(p *big.Int) (*big.Int, error) {
	if p == nil || p.Cmp(big.NewInt(5)) < 0 {
		return nil, ErrGeneratorNotFound
	}
	pMinus1 := new(big.Int).Sub(p, one)
	q := new(big.Int).Rsh(pMinus1, 1)
	for g := big.NewInt(2); g.Cmp(pMinus1) < 0; g.Add(g, one) {
		if ModExp(g, q, p).Cmp(one) == 0 {
			continue
		}
		if ModExp(g, two, p).Cmp(one) == 0 {
			continue
		}
		return new(big.Int).Set(g), nil
	}
	return nil, ErrGeneratorNotFound
}
