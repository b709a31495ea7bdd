package aead

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/pubkey/internal/params"
	"github.com/taurusgroup/pubkey/internal/test"
)

func key(size int) []byte {
	k := make([]byte, size)
	for i := range k {
		k[i] = byte(i)
	}
	return k
}

func TestSealOpen(t *testing.T) {
	r := test.Reader(0)
	k := key(params.KeyLength)
	msg := []byte("Meet at midnight")

	sealed, err := Seal(r, k, msg)
	require.NoError(t, err)
	assert.Len(t, sealed.Nonce, params.NonceLength)
	assert.Len(t, sealed.Tag, params.TagLength)
	assert.Len(t, sealed.Ciphertext, len(msg))

	out, err := Open(k, sealed)
	require.NoError(t, err)
	assert.Equal(t, msg, out)
}

func TestTamper(t *testing.T) {
	r := test.Reader(1)
	k := key(params.KeyLength)
	sealed, err := Seal(r, k, []byte("attack at dawn"))
	require.NoError(t, err)

	flip := func(b []byte) []byte {
		out := append([]byte{}, b...)
		out[0] ^= 1
		return out
	}
	for name, s := range map[string]*Sealed{
		"ciphertext": {Nonce: sealed.Nonce, Ciphertext: flip(sealed.Ciphertext), Tag: sealed.Tag},
		"tag":        {Nonce: sealed.Nonce, Ciphertext: sealed.Ciphertext, Tag: flip(sealed.Tag)},
		"nonce":      {Nonce: flip(sealed.Nonce), Ciphertext: sealed.Ciphertext, Tag: sealed.Tag},
	} {
		out, err := Open(k, s)
		assert.ErrorIs(t, err, ErrAuthentication, name)
		assert.Nil(t, out, name)
	}

	other := key(params.KeyLength)
	other[0] = 0xff
	_, err = Open(other, sealed)
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestMalformed(t *testing.T) {
	k := key(params.KeyLength)
	_, err := Open(k, nil)
	assert.ErrorIs(t, err, ErrInvalidSealed)
	_, err = Open(k, &Sealed{Nonce: make([]byte, 3), Tag: make([]byte, params.TagLength)})
	assert.ErrorIs(t, err, ErrInvalidSealed)

	_, err = Seal(test.Reader(0), make([]byte, 7), []byte("x"))
	assert.Error(t, err)
}

func TestChaCha20Poly1305(t *testing.T) {
	r := test.Reader(2)
	c, err := New(ChaCha20Poly1305, key(32))
	require.NoError(t, err)

	msg := []byte("hello")
	ad := []byte("header")
	sealed, err := c.Seal(r, msg, ad)
	require.NoError(t, err)
	assert.Len(t, sealed.Tag, params.TagLength)

	out, err := c.Open(sealed, ad)
	require.NoError(t, err)
	assert.Equal(t, msg, out)

	_, err = c.Open(sealed, []byte("other header"))
	assert.ErrorIs(t, err, ErrAuthentication)

	_, err = New(ChaCha20Poly1305, key(params.KeyLength))
	assert.Error(t, err)
}

func TestUnknownScheme(t *testing.T) {
	_, err := New(Scheme(7), key(16))
	assert.ErrorIs(t, err, ErrUnknownScheme)
	assert.Equal(t, "Scheme(7)", Scheme(7).String())
	assert.Equal(t, "AES-GCM", AESGCM.String())
}
