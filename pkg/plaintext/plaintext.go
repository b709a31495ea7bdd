// Package plaintext converts byte strings to and from the integers encrypted by
// the textbook schemes.
//
// The integer is the big-endian interpretation of the bytes. Leading zero bytes are
// not representable in the integer alone, so every Message also carries the
// original byte length.
package plaintext

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrMessageTooLarge is returned when the encoded integer is not below the modulus.
	ErrMessageTooLarge = errors.New("plaintext: message integer must be smaller than the modulus")
	// ErrInvalidLength is returned when an integer does not fit in the declared byte length.
	ErrInvalidLength = errors.New("plaintext: integer does not fit in the declared length")
)

// Message is an integer encoding of a byte string.
type Message struct {
	Int *big.Int
	// Length is the number of bytes of the original string.
	Length int
}

// Encode returns the big-endian integer encoding of data.
func Encode(data []byte) *Message {
	return &Message{
		Int:    new(big.Int).SetBytes(data),
		Length: len(data),
	}
}

// EncodeFor encodes data, and checks that the resulting integer lies in [0, modulus).
func EncodeFor(data []byte, modulus *big.Int) (*Message, error) {
	m := Encode(data)
	if err := m.Check(modulus); err != nil {
		return nil, err
	}
	return m, nil
}

// Check returns ErrMessageTooLarge unless 0 ≤ m < modulus.
func (m *Message) Check(modulus *big.Int) error {
	if m.Int.Sign() < 0 || m.Int.Cmp(modulus) >= 0 {
		return fmt.Errorf("plaintext: %d-byte message against %d-bit modulus: %w",
			m.Length, modulus.BitLen(), ErrMessageTooLarge)
	}
	return nil
}

// Bytes returns the original byte string, left padded with zeros to m.Length.
func (m *Message) Bytes() ([]byte, error) {
	return Decode(m.Int, m.Length)
}

// Decode returns the big-endian encoding of x in exactly length bytes.
func Decode(x *big.Int, length int) ([]byte, error) {
	if x.Sign() < 0 || length < 0 || (x.BitLen()+7)/8 > length {
		return nil, ErrInvalidLength
	}
	out := make([]byte, length)
	x.FillBytes(out)
	return out, nil
}

// MaxLength returns the largest byte length guaranteed to encode below modulus.
func MaxLength(modulus *big.Int) int {
	return (modulus.BitLen() - 1) / 8
}
