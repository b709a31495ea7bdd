package arith

import (
	"math/big"
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModExp(t *testing.T) {
	// worked textbook example: y = 2^765 mod 2579
	y := ModExp(big.NewInt(2), big.NewInt(765), big.NewInt(2579))
	assert.Equal(t, int64(949), y.Int64())

	assert.Equal(t, int64(1), ModExp(big.NewInt(12345), big.NewInt(0), big.NewInt(7)).Int64())
	assert.Equal(t, int64(0), ModExp(big.NewInt(5), big.NewInt(3), big.NewInt(1)).Int64())
	// -3 ≡ 4 (mod 7), 4² = 16 ≡ 2
	assert.Equal(t, int64(2), ModExp(big.NewInt(-3), big.NewInt(2), big.NewInt(7)).Int64())

	assert.Panics(t, func() { ModExp(big.NewInt(2), big.NewInt(-1), big.NewInt(7)) })
	assert.Panics(t, func() { ModExp(big.NewInt(2), big.NewInt(1), big.NewInt(0)) })
}

func TestModExpMatchesBig(t *testing.T) {
	r := mrand.New(mrand.NewSource(0))
	m := new(big.Int).Lsh(one, 1024)
	m.Sub(m, big.NewInt(105))
	for i := 0; i < 20; i++ {
		b := new(big.Int).Rand(r, m)
		e := new(big.Int).Rand(r, m)
		assert.Equal(t, 0, new(big.Int).Exp(b, e, m).Cmp(ModExp(b, e, m)))
	}
}

func TestExtendedGCD(t *testing.T) {
	r := mrand.New(mrand.NewSource(1))
	bound := new(big.Int).Lsh(one, 200)
	for i := 0; i < 50; i++ {
		a := new(big.Int).Rand(r, bound)
		b := new(big.Int).Rand(r, bound)
		g, x, y := ExtendedGCD(a, b)
		expected := new(big.Int).GCD(nil, nil, a, b)
		require.Equal(t, 0, expected.Cmp(g))
		// a⋅x + b⋅y = g
		lhs := new(big.Int).Mul(a, x)
		lhs.Add(lhs, new(big.Int).Mul(b, y))
		require.Equal(t, 0, lhs.Cmp(g))
	}
}

func TestModInverse(t *testing.T) {
	r := mrand.New(mrand.NewSource(2))
	m := big.NewInt(2578)
	for a := int64(1); a < 2578; a++ {
		aBig := big.NewInt(a)
		inv, err := ModInverse(aBig, m)
		if IsCoprime(aBig, m) {
			require.NoError(t, err)
			prod := new(big.Int).Mul(aBig, inv)
			require.Equal(t, int64(1), prod.Mod(prod, m).Int64())
		} else {
			require.ErrorIs(t, err, ErrNoInverse)
			require.Nil(t, inv)
		}
	}

	bound := new(big.Int).Lsh(one, 512)
	for i := 0; i < 20; i++ {
		a := new(big.Int).Rand(r, bound)
		n := new(big.Int).Rand(r, bound)
		n.Add(n, two)
		inv, err := ModInverse(a, n)
		if !IsCoprime(a, n) {
			assert.ErrorIs(t, err, ErrNoInverse)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, 0, new(big.Int).ModInverse(a, n).Cmp(inv))
	}
}

func TestModInverseEdgeCases(t *testing.T) {
	_, err := ModInverse(big.NewInt(3), big.NewInt(0))
	assert.ErrorIs(t, err, ErrInvalidModulus)

	_, err = ModInverse(big.NewInt(0), big.NewInt(11))
	assert.ErrorIs(t, err, ErrNoInverse)

	// negative inputs are reduced first: -1 ≡ 10 (mod 11), 10⋅10 = 100 ≡ 1
	inv, err := ModInverse(big.NewInt(-1), big.NewInt(11))
	require.NoError(t, err)
	assert.Equal(t, int64(10), inv.Int64())
}
