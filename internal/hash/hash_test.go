package hash

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/pubkey/pkg/math/curve"
)

func TestHash_WriteAny(t *testing.T) {
	var err error

	testFunc := func(vs ...interface{}) error {
		h := New()
		for _, v := range vs {
			err = h.WriteAny(v)
			if err != nil {
				return err
			}
		}
		return nil
	}

	assert.NoError(t, testFunc(big.NewInt(35)))
	assert.NoError(t, testFunc(big.NewInt(-35)))
	assert.NoError(t, testFunc(curve.Secp256k1{}.NewBasePoint()))
	assert.NoError(t, testFunc([]byte{1, 4, 6}))
	assert.NoError(t, testFunc("ElGamal"))

	var i *big.Int

	assert.Error(t, testFunc(i))

	assert.NoError(t, testFunc(big.NewInt(35), []byte{1, 4, 6}))
}

func TestHash_Separation(t *testing.T) {
	sum := func(vs ...interface{}) []byte {
		h := New()
		require.NoError(t, h.WriteAny(vs...))
		return h.Sum()
	}

	assert.Equal(t, sum(big.NewInt(35)), sum(big.NewInt(35)))
	assert.NotEqual(t, sum(big.NewInt(35)), sum(big.NewInt(-35)))
	assert.NotEqual(t, sum([]byte("ab")), sum("ab"))
	assert.NotEqual(t, sum(big.NewInt(1), big.NewInt(23)), sum(big.NewInt(12), big.NewInt(3)))
	assert.Len(t, sum([]byte{}), DigestLengthBytes)
}

func TestHash_Clone(t *testing.T) {
	h := New()
	require.NoError(t, h.WriteAny([]byte{1}))
	c := h.Clone()
	require.NoError(t, c.WriteAny([]byte{2}))
	assert.NotEqual(t, h.Sum(), c.Sum())
}

func TestFingerprint(t *testing.T) {
	a, err := Fingerprint("ElGamal", big.NewInt(2579), big.NewInt(2))
	require.NoError(t, err)
	assert.Len(t, a, FingerprintLengthBytes)

	b, err := Fingerprint("RSA", big.NewInt(2579), big.NewInt(2))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	c, err := Fingerprint("ElGamal", big.NewInt(2579), big.NewInt(2))
	require.NoError(t, err)
	assert.Equal(t, a, c)
}
