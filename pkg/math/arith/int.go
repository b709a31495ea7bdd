package arith

import (
	"errors"
	"math/big"
)

var (
	ErrNoInverse         = errors.New("arith: no modular inverse, gcd(a, m) != 1")
	ErrInvalidModulus    = errors.New("arith: modulus must be positive")
	ErrGeneratorNotFound = errors.New("arith: no generator candidate found below p-1")
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// IsCoprime returns true if gcd(a,b) = 1.
func IsCoprime(a, b *big.Int) bool {
	var gcd big.Int
	if gcd.GCD(nil, nil, a, b).Cmp(one) == 0 {
		return true
	}
	return false
}

// ModExp returns baseᵉ (mod m), in the range [0, m).
//
// A negative base is reduced first. ModExp panics if m <= 0 or e < 0,
// which are programming errors rather than malformed input.
func ModExp(base, e, m *big.Int) *big.Int {
	if m == nil || m.Sign() <= 0 {
		panic("arith.ModExp: modulus must be positive")
	}
	if e.Sign() < 0 {
		panic("arith.ModExp: negative exponent")
	}
	b := base
	if b.Sign() < 0 || b.Cmp(m) >= 0 {
		b = new(big.Int).Mod(base, m)
	}
	return new(big.Int).Exp(b, e, m)
}

// ExtendedGCD returns g = gcd(a, b) together with the Bézout coefficients x, y
// such that a⋅x + b⋅y = g.
//
// g is always non-negative.
func ExtendedGCD(a, b *big.Int) (g, x, y *big.Int) {
	oldR, r := new(big.Int).Set(a), new(big.Int).Set(b)
	oldS, s := big.NewInt(1), big.NewInt(0)
	oldT, t := big.NewInt(0), big.NewInt(1)
	for r.Sign() != 0 {
		q := new(big.Int).Quo(oldR, r)
		oldR, r = r, new(big.Int).Sub(oldR, new(big.Int).Mul(q, r))
		oldS, s = s, new(big.Int).Sub(oldS, new(big.Int).Mul(q, s))
		oldT, t = t, new(big.Int).Sub(oldT, new(big.Int).Mul(q, t))
	}
	if oldR.Sign() < 0 {
		oldR.Neg(oldR)
		oldS.Neg(oldS)
		oldT.Neg(oldT)
	}
	return oldR, oldS, oldT
}

// ModInverse returns a⁻¹ (mod m), in the range [0, m).
//
// It returns ErrNoInverse when gcd(a, m) != 1. No substitute value is ever returned.
func ModInverse(a, m *big.Int) (*big.Int, error) {
	if m == nil || m.Sign() <= 0 {
		return nil, ErrInvalidModulus
	}
	aReduced := new(big.Int).Mod(a, m)
	g, x, _ := ExtendedGCD(aReduced, m)
	if g.Cmp(one) != 0 {
		return nil, ErrNoInverse
	}
	return x.Mod(x, m), nil
}
