package rsa

import (
	stdrsa "crypto/rsa"
	"crypto/sha256"
	"fmt"
	"io"
	"math/big"

	"github.com/taurusgroup/pubkey/pkg/math/arith"
	"github.com/taurusgroup/pubkey/pkg/plaintext"
)

// Encrypt returns c = mᵉ (mod n), for m ∈ [0, n).
//
// This is unpadded textbook RSA: it is deterministic and malleable. Use EncryptOAEP for real data.
func Encrypt(pk *PublicKey, m *big.Int) (*big.Int, error) {
	if m == nil || m.Sign() < 0 || m.Cmp(pk.n) >= 0 {
		return nil, ErrMessageTooLarge
	}
	return arith.ModExp(m, pk.e, pk.n), nil
}

// Decrypt returns m = cᵈ (mod n), for c ∈ [0, n).
func Decrypt(sk *PrivateKey, c *big.Int) (*big.Int, error) {
	if c == nil || c.Sign() < 0 || c.Cmp(sk.n) >= 0 {
		return nil, ErrInvalidCiphertext
	}
	return sk.crt.Exp(c, sk.d), nil
}

// EncryptBytes encodes data as a big-endian integer and encrypts it.
//
// The caller keeps len(data) to decode leading zero bytes with DecryptBytes.
func EncryptBytes(pk *PublicKey, data []byte) (*big.Int, error) {
	msg, err := plaintext.EncodeFor(data, pk.n)
	if err != nil {
		return nil, fmt.Errorf("rsa.EncryptBytes: %w", ErrMessageTooLarge)
	}
	return Encrypt(pk, msg.Int)
}

// DecryptBytes decrypts c and returns the plaintext as exactly length bytes.
func DecryptBytes(sk *PrivateKey, c *big.Int, length int) ([]byte, error) {
	m, err := Decrypt(sk, c)
	if err != nil {
		return nil, err
	}
	out, err := plaintext.Decode(m, length)
	if err != nil {
		return nil, fmt.Errorf("rsa.DecryptBytes: %w", err)
	}
	return out, nil
}

// EncryptOAEP encrypts msg with RSA-OAEP using SHA-256, through crypto/rsa.
func EncryptOAEP(rand io.Reader, pk *PublicKey, msg, label []byte) ([]byte, error) {
	std, err := pk.toStd()
	if err != nil {
		return nil, err
	}
	ct, err := stdrsa.EncryptOAEP(sha256.New(), rand, std, msg, label)
	if err != nil {
		return nil, fmt.Errorf("rsa.EncryptOAEP: %w", err)
	}
	return ct, nil
}

// DecryptOAEP reverses EncryptOAEP.
func DecryptOAEP(sk *PrivateKey, ciphertext, label []byte) ([]byte, error) {
	std, err := sk.toStd()
	if err != nil {
		return nil, err
	}
	msg, err := stdrsa.DecryptOAEP(sha256.New(), nil, std, ciphertext, label)
	if err != nil {
		return nil, fmt.Errorf("rsa.DecryptOAEP: %w", err)
	}
	return msg, nil
}

func (pk *PublicKey) toStd() (*stdrsa.PublicKey, error) {
	if !pk.e.IsInt64() || pk.e.Int64() > 1<<31-1 {
		return nil, fmt.Errorf("%w: exponent too large for OAEP", ErrInvalidKey)
	}
	return &stdrsa.PublicKey{N: new(big.Int).Set(pk.n), E: int(pk.e.Int64())}, nil
}

func (sk *PrivateKey) toStd() (*stdrsa.PrivateKey, error) {
	pub, err := sk.PublicKey.toStd()
	if err != nil {
		return nil, err
	}
	std := &stdrsa.PrivateKey{
		PublicKey: *pub,
		D:         new(big.Int).Set(sk.d),
	}
	if sk.p != nil && sk.q != nil {
		std.Primes = []*big.Int{new(big.Int).Set(sk.p), new(big.Int).Set(sk.q)}
		std.Precompute()
	}
	return std, nil
}
