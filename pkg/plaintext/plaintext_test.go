package plaintext

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	for _, data := range [][]byte{
		{},
		[]byte("hello"),
		{0, 0, 1, 2},
		{0},
		[]byte("Hello, 世界"),
	} {
		m := Encode(data)
		out, err := m.Bytes()
		require.NoError(t, err)
		assert.Equal(t, data, out)
	}
}

func TestEncodeBigEndian(t *testing.T) {
	m := Encode([]byte{0x01, 0x00})
	assert.Equal(t, int64(256), m.Int.Int64())
	assert.Equal(t, 2, m.Length)
}

func TestEncodeFor(t *testing.T) {
	p := big.NewInt(2579)

	m, err := EncodeFor([]byte{0x0a}, p)
	require.NoError(t, err)
	assert.Equal(t, int64(10), m.Int.Int64())

	_, err = EncodeFor([]byte{0x0a, 0x13}, p) // 2579
	assert.ErrorIs(t, err, ErrMessageTooLarge)

	bad := &Message{Int: big.NewInt(-1), Length: 1}
	assert.ErrorIs(t, bad.Check(p), ErrMessageTooLarge)
}

func TestDecode(t *testing.T) {
	_, err := Decode(big.NewInt(256), 1)
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, err = Decode(big.NewInt(-3), 4)
	assert.ErrorIs(t, err, ErrInvalidLength)

	out, err := Decode(big.NewInt(0), 0)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestMaxLength(t *testing.T) {
	p := big.NewInt(2579) // 12 bits
	assert.Equal(t, 1, MaxLength(p))

	max := make([]byte, MaxLength(p))
	for i := range max {
		max[i] = 0xff
	}
	_, err := EncodeFor(max, p)
	assert.NoError(t, err)
}
