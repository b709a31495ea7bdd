// Package aead seals messages under a symmetric key derived by key agreement,
// returning the nonce, ciphertext and authentication tag as separate fields.
package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

var (
	// ErrAuthentication is returned by Open when the tag does not match. No plaintext is returned.
	ErrAuthentication = errors.New("aead: message authentication failed")
	ErrInvalidSealed  = errors.New("aead: malformed sealed message")
	ErrUnknownScheme  = errors.New("aead: unknown scheme")
)

// Scheme selects the underlying AEAD construction.
type Scheme int

const (
	// AESGCM is AES in Galois/Counter mode, with the key size determining AES-128/192/256.
	AESGCM Scheme = iota
	// ChaCha20Poly1305 requires a 32 byte key.
	ChaCha20Poly1305
)

func (s Scheme) String() string {
	switch s {
	case AESGCM:
		return "AES-GCM"
	case ChaCha20Poly1305:
		return "ChaCha20-Poly1305"
	}
	return fmt.Sprintf("Scheme(%d)", int(s))
}

// Sealed is an encrypted message with its detached tag.
type Sealed struct {
	Nonce      []byte
	Ciphertext []byte
	Tag        []byte
}

// Cipher is an AEAD bound to a key.
type Cipher struct {
	aead cipher.AEAD
}

// New returns a Cipher for the scheme and key.
func New(scheme Scheme, key []byte) (*Cipher, error) {
	var (
		a   cipher.AEAD
		err error
	)
	switch scheme {
	case AESGCM:
		var block cipher.Block
		if block, err = aes.NewCipher(key); err != nil {
			return nil, fmt.Errorf("aead: %w", err)
		}
		a, err = cipher.NewGCM(block)
	case ChaCha20Poly1305:
		a, err = chacha20poly1305.New(key)
	default:
		return nil, ErrUnknownScheme
	}
	if err != nil {
		return nil, fmt.Errorf("aead: %w", err)
	}
	return &Cipher{aead: a}, nil
}

// Seal encrypts plaintext under a fresh random nonce, binding additionalData.
func (c *Cipher) Seal(rand io.Reader, plaintext, additionalData []byte) (*Sealed, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand, nonce); err != nil {
		return nil, fmt.Errorf("aead: read nonce: %w", err)
	}
	out := c.aead.Seal(nil, nonce, plaintext, additionalData)
	split := len(out) - c.aead.Overhead()
	return &Sealed{
		Nonce:      nonce,
		Ciphertext: out[:split],
		Tag:        out[split:],
	}, nil
}

// Open authenticates and decrypts sealed.
func (c *Cipher) Open(sealed *Sealed, additionalData []byte) ([]byte, error) {
	if sealed == nil || len(sealed.Nonce) != c.aead.NonceSize() || len(sealed.Tag) != c.aead.Overhead() {
		return nil, ErrInvalidSealed
	}
	joined := make([]byte, 0, len(sealed.Ciphertext)+len(sealed.Tag))
	joined = append(joined, sealed.Ciphertext...)
	joined = append(joined, sealed.Tag...)
	plaintext, err := c.aead.Open(nil, sealed.Nonce, joined, additionalData)
	if err != nil {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}

// Seal encrypts plaintext with AES-GCM under key, which is params.KeyLength bytes for keys from ecdh.SharedKey.
func Seal(rand io.Reader, key, plaintext []byte) (*Sealed, error) {
	c, err := New(AESGCM, key)
	if err != nil {
		return nil, err
	}
	return c.Seal(rand, plaintext, nil)
}

// Open reverses Seal, returning ErrAuthentication if anything was tampered with.
func Open(key []byte, sealed *Sealed) ([]byte, error) {
	c, err := New(AESGCM, key)
	if err != nil {
		return nil, err
	}
	return c.Open(sealed, nil)
}
