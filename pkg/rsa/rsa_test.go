package rsa

import (
	"errors"
	"math/big"
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/pubkey/internal/params"
	"github.com/taurusgroup/pubkey/internal/test"
	"github.com/taurusgroup/pubkey/pkg/math/arith"
	"github.com/taurusgroup/pubkey/pkg/plaintext"
	"github.com/taurusgroup/pubkey/pkg/pool"
)

func fixedKey(t testing.TB) *PrivateKey {
	sk, err := NewPrivateKeyFromPrimes(test.RSAPrimeP, test.RSAPrimeQ, big.NewInt(params.RSAPublicExponent))
	require.NoError(t, err)
	return sk
}

func TestGenerateKey(t *testing.T) {
	pl := pool.NewPool(0)
	sk, err := GenerateKey(test.Reader(0), pl, params.BitsRSAPrime)
	require.NoError(t, err)

	p, q := sk.Primes()
	assert.NotEqual(t, 0, p.Cmp(q))
	assert.Equal(t, params.BitsRSAPrime, p.BitLen())
	assert.Equal(t, params.BitsRSAPrime, q.BitLen())
	assert.Equal(t, params.BitsRSA, sk.N().BitLen())
	assert.Equal(t, int64(params.RSAPublicExponent), sk.E().Int64())

	// e⋅d = 1 (mod φ)
	phi := new(big.Int).Mul(new(big.Int).Sub(p, one), new(big.Int).Sub(q, one))
	ed := new(big.Int).Mul(sk.E(), sk.D())
	assert.Equal(t, 0, ed.Mod(ed, phi).Cmp(one))
}

func TestGenerateKeyNilPool(t *testing.T) {
	sk, err := GenerateKey(test.Reader(1), nil, 128)
	require.NoError(t, err)
	assert.Equal(t, 256, sk.N().BitLen())
}

func TestGenerateKeyMinBits(t *testing.T) {
	_, err := GenerateKey(test.Reader(3), nil, MinPrimeBits-1)
	assert.ErrorIs(t, err, ErrKeyGeneration)
	_, err = GenerateKey(test.Reader(3), nil, 0)
	assert.ErrorIs(t, err, ErrKeyGeneration)

	sk, err := GenerateKey(test.Reader(3), nil, MinPrimeBits)
	require.NoError(t, err)
	assert.Equal(t, 1, sk.N().Cmp(sk.E()))
	c, err := Encrypt(sk.Public(), big.NewInt(42))
	require.NoError(t, err)
	m, err := Decrypt(sk, c)
	require.NoError(t, err)
	assert.Equal(t, int64(42), m.Int64())
}

func TestGenerateKeyReaderError(t *testing.T) {
	boom := errors.New("boom")
	_, err := GenerateKey(test.ErrReader{Err: boom}, nil, 128)
	assert.ErrorIs(t, err, boom)
}

func TestToyVector(t *testing.T) {
	sk, err := NewPrivateKeyFromPrimes(test.ToyRSAP, test.ToyRSAQ, test.ToyRSAE)
	require.NoError(t, err)
	assert.Equal(t, int64(3233), sk.N().Int64())
	assert.Equal(t, 0, test.ToyRSAD.Cmp(sk.D()))

	c, err := Encrypt(sk.Public(), big.NewInt(65))
	require.NoError(t, err)
	assert.Equal(t, int64(2790), c.Int64())

	m, err := Decrypt(sk, c)
	require.NoError(t, err)
	assert.Equal(t, int64(65), m.Int64())
}

func TestKeyGenerationNoInverse(t *testing.T) {
	// φ = 60⋅52 = 3120 is divisible by 3
	_, err := NewPrivateKeyFromPrimes(test.ToyRSAP, test.ToyRSAQ, big.NewInt(3))
	assert.ErrorIs(t, err, ErrKeyGeneration)
	assert.ErrorIs(t, err, arith.ErrNoInverse)
}

func TestNewKeyValidation(t *testing.T) {
	_, err := NewPublicKey(big.NewInt(3234), big.NewInt(17))
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = NewPublicKey(big.NewInt(3233), big.NewInt(16))
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = NewPublicKey(big.NewInt(3233), big.NewInt(3233))
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = NewPrivateKey(big.NewInt(3233), big.NewInt(17), big.NewInt(2754))
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = NewPrivateKeyFromPrimes(test.ToyRSAP, test.ToyRSAP, test.ToyRSAE)
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = NewPrivateKeyFromPrimes(big.NewInt(63), test.ToyRSAQ, test.ToyRSAE)
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestEncryptDecrypt(t *testing.T) {
	r := mrand.New(mrand.NewSource(2))
	sk := fixedKey(t)
	withoutPrimes, err := NewPrivateKey(sk.N(), sk.E(), sk.D())
	require.NoError(t, err)

	nMinus1 := new(big.Int).Sub(sk.N(), one)
	for _, m := range []*big.Int{big.NewInt(0), big.NewInt(1), new(big.Int).Rand(r, sk.N()), nMinus1} {
		c, err := Encrypt(sk.Public(), m)
		require.NoError(t, err)

		decrypted, err := Decrypt(sk, c)
		require.NoError(t, err)
		assert.Equal(t, 0, m.Cmp(decrypted))

		decrypted, err = Decrypt(withoutPrimes, c)
		require.NoError(t, err)
		assert.Equal(t, 0, m.Cmp(decrypted))
	}
}

func TestEncryptErrors(t *testing.T) {
	sk := fixedKey(t)
	_, err := Encrypt(sk.Public(), sk.N())
	assert.ErrorIs(t, err, ErrMessageTooLarge)
	assert.ErrorIs(t, err, plaintext.ErrMessageTooLarge)
	_, err = Encrypt(sk.Public(), big.NewInt(-1))
	assert.ErrorIs(t, err, ErrMessageTooLarge)

	_, err = Decrypt(sk, sk.N())
	assert.ErrorIs(t, err, ErrInvalidCiphertext)
	_, err = Decrypt(sk, nil)
	assert.ErrorIs(t, err, ErrInvalidCiphertext)
}

func TestEncryptBytes(t *testing.T) {
	sk := fixedKey(t)
	for _, data := range [][]byte{[]byte("Meet at midnight"), {0, 0, 7}, {}} {
		c, err := EncryptBytes(sk.Public(), data)
		require.NoError(t, err)
		out, err := DecryptBytes(sk, c, len(data))
		require.NoError(t, err)
		assert.Equal(t, data, out)
	}

	tooLong := make([]byte, len(sk.N().Bytes())+1)
	tooLong[0] = 1
	_, err := EncryptBytes(sk.Public(), tooLong)
	assert.ErrorIs(t, err, ErrMessageTooLarge)
}

func TestDeterministic(t *testing.T) {
	sk := fixedKey(t)
	c1, err := Encrypt(sk.Public(), big.NewInt(12345))
	require.NoError(t, err)
	c2, err := Encrypt(sk.Public(), big.NewInt(12345))
	require.NoError(t, err)
	assert.Equal(t, 0, c1.Cmp(c2))
}

func TestOAEP(t *testing.T) {
	r := test.Reader(3)
	sk := fixedKey(t)
	msg := []byte("Meet at midnight")

	ct1, err := EncryptOAEP(r, sk.Public(), msg, nil)
	require.NoError(t, err)
	ct2, err := EncryptOAEP(r, sk.Public(), msg, nil)
	require.NoError(t, err)
	assert.NotEqual(t, ct1, ct2)

	out, err := DecryptOAEP(sk, ct1, nil)
	require.NoError(t, err)
	assert.Equal(t, msg, out)

	_, err = DecryptOAEP(sk, ct1, []byte("other label"))
	assert.Error(t, err)

	ct1[len(ct1)-1] ^= 1
	_, err = DecryptOAEP(sk, ct1, nil)
	assert.Error(t, err)
}

func TestMarshal(t *testing.T) {
	sk := fixedKey(t)

	data, err := sk.MarshalBinary()
	require.NoError(t, err)
	var sk2 PrivateKey
	require.NoError(t, sk2.UnmarshalBinary(data))
	assert.True(t, sk.Public().Equal(sk2.Public()))
	assert.Equal(t, 0, sk.D().Cmp(sk2.D()))
	p, q := sk2.Primes()
	assert.NotNil(t, p)
	assert.NotNil(t, q)

	withoutPrimes, err := NewPrivateKey(sk.N(), sk.E(), sk.D())
	require.NoError(t, err)
	data, err = withoutPrimes.MarshalBinary()
	require.NoError(t, err)
	var sk3 PrivateKey
	require.NoError(t, sk3.UnmarshalBinary(data))
	p, _ = sk3.Primes()
	assert.Nil(t, p)

	data, err = sk.Public().MarshalBinary()
	require.NoError(t, err)
	var pk PublicKey
	require.NoError(t, pk.UnmarshalBinary(data))
	assert.True(t, sk.Public().Equal(&pk))
	assert.Equal(t, sk.Public().Fingerprint(), pk.Fingerprint())
}

func BenchmarkDecrypt(b *testing.B) {
	sk := fixedKey(b)
	withoutPrimes, _ := NewPrivateKey(sk.N(), sk.E(), sk.D())
	c, _ := Encrypt(sk.Public(), big.NewInt(42))

	b.Run("crt", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = Decrypt(sk, c)
		}
	})
	b.Run("plain", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = Decrypt(withoutPrimes, c)
		}
	})
}
