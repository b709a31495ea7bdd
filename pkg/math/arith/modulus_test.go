package arith

import (
	"math/big"
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taurusgroup/pubkey/internal/test"
)

var (
	p, q         *big.Int
	mFast, mSlow *Modulus
)

func init() {
	p, q = test.RSAPrimeP, test.RSAPrimeQ
	mFast = ModulusFromFactors(p, q)
	mSlow = ModulusFromN(new(big.Int).Mul(p, q))
}

func TestModulus_Exp(t *testing.T) {
	r := mrand.New(mrand.NewSource(0))
	n := new(big.Int).Mul(p, q)
	assert.Equal(t, 0, n.Cmp(mFast.N()), "n moduli should be the same")
	assert.Equal(t, 0, n.Cmp(mSlow.N()), "n moduli should be the same")

	for i := 0; i < 5; i++ {
		x := new(big.Int).Rand(r, n)
		e := new(big.Int).Rand(r, n)

		yExpected := new(big.Int).Exp(x, e, n)
		assert.Equal(t, 0, yExpected.Cmp(mFast.Exp(x, e)), "exponentiation with acceleration should give the same result")
		assert.Equal(t, 0, yExpected.Cmp(mSlow.Exp(x, e)), "exponentiation without acceleration should give the same result")
	}
}

func BenchmarkExp(b *testing.B) {
	r := mrand.New(mrand.NewSource(0))
	n := mSlow.N()
	x := new(big.Int).Rand(r, n)
	e := new(big.Int).Rand(r, n)
	b.Run("fast", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			mFast.Exp(x, e)
		}
	})
	b.Run("slow", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			mSlow.Exp(x, e)
		}
	})
	b.Run("big", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			ModExp(x, e, n)
		}
	})
}
