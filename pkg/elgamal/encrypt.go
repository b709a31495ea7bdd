package elgamal

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/taurusgroup/pubkey/pkg/math/arith"
	"github.com/taurusgroup/pubkey/pkg/math/sample"
	"github.com/taurusgroup/pubkey/pkg/plaintext"
)

type Ciphertext struct {
	// C1 = gᵏ (mod p)
	C1 *big.Int
	// C2 = m⋅yᵏ (mod p)
	C2 *big.Int
}

// Encrypt returns the encryption of m under pk, with a fresh nonce k ∈ [2, p-2].
//
// m must lie in [0, p).
func Encrypt(rand io.Reader, pk *PublicKey, m *big.Int) (*Ciphertext, error) {
	if err := checkMessage(pk, m); err != nil {
		return nil, err
	}
	k, err := sample.Range(rand, two, new(big.Int).Sub(pk.p, one))
	if err != nil {
		return nil, fmt.Errorf("elgamal.Encrypt: sample nonce: %w", err)
	}
	return encrypt(pk, m, k), nil
}

// EncryptWithNonce is Encrypt with a caller supplied nonce k ∈ [2, p-2].
//
// Reusing k for two messages under the same key reveals m₁/m₂ (mod p).
func EncryptWithNonce(pk *PublicKey, m, k *big.Int) (*Ciphertext, error) {
	if err := checkMessage(pk, m); err != nil {
		return nil, err
	}
	if k == nil || k.Cmp(two) < 0 || k.Cmp(new(big.Int).Sub(pk.p, one)) >= 0 {
		return nil, ErrInvalidNonce
	}
	return encrypt(pk, m, k), nil
}

func checkMessage(pk *PublicKey, m *big.Int) error {
	if m == nil || m.Sign() < 0 || m.Cmp(pk.p) >= 0 {
		return ErrMessageTooLarge
	}
	return nil
}

func encrypt(pk *PublicKey, m, k *big.Int) *Ciphertext {
	c1 := arith.ModExp(pk.g, k, pk.p)
	s := arith.ModExp(pk.y, k, pk.p)
	c2 := s.Mul(s, m)
	c2.Mod(c2, pk.p)
	return &Ciphertext{C1: c1, C2: c2}
}

// Decrypt returns m = c₂⋅(c₁ˣ)⁻¹ (mod p).
func Decrypt(sk *PrivateKey, ct *Ciphertext) (*big.Int, error) {
	if !ct.Valid(&sk.PublicKey) {
		return nil, ErrInvalidCiphertext
	}
	s := arith.ModExp(ct.C1, sk.x, sk.p)
	sInv, err := arith.ModInverse(s, sk.p)
	if err != nil {
		return nil, fmt.Errorf("elgamal.Decrypt: shared secret: %w", err)
	}
	m := sInv.Mul(sInv, ct.C2)
	return m.Mod(m, sk.p), nil
}

// EncryptBytes encodes data as a big-endian integer and encrypts it.
//
// The caller keeps len(data) to decode leading zero bytes with DecryptBytes.
func EncryptBytes(rand io.Reader, pk *PublicKey, data []byte) (*Ciphertext, error) {
	msg, err := plaintext.EncodeFor(data, pk.p)
	if err != nil {
		return nil, fmt.Errorf("elgamal.EncryptBytes: %w", ErrMessageTooLarge)
	}
	return Encrypt(rand, pk, msg.Int)
}

// DecryptBytes decrypts ct and returns the plaintext as exactly length bytes.
func DecryptBytes(sk *PrivateKey, ct *Ciphertext, length int) ([]byte, error) {
	m, err := Decrypt(sk, ct)
	if err != nil {
		return nil, err
	}
	out, err := plaintext.Decode(m, length)
	if err != nil {
		return nil, fmt.Errorf("elgamal.DecryptBytes: %w", err)
	}
	return out, nil
}

// Valid returns true if c₁ ∈ [1, p) and c₂ ∈ [0, p).
func (ct *Ciphertext) Valid(pk *PublicKey) bool {
	if ct == nil || ct.C1 == nil || ct.C2 == nil {
		return false
	}
	if ct.C1.Sign() <= 0 || ct.C1.Cmp(pk.p) >= 0 {
		return false
	}
	if ct.C2.Sign() < 0 || ct.C2.Cmp(pk.p) >= 0 {
		return false
	}
	return true
}

// WriteTo implements io.WriterTo, writing the two components with a fixed width.
func (ct *Ciphertext) WriteTo(w io.Writer) (int64, error) {
	if ct.C1 == nil || ct.C2 == nil {
		return 0, errors.New("elgamal: nil ciphertext component")
	}
	size := (ct.C1.BitLen() + 7) / 8
	if l := (ct.C2.BitLen() + 7) / 8; l > size {
		size = l
	}
	return writeFixed(w, size, ct.C1, ct.C2)
}

// Domain implements hash.WriterToWithDomain.
func (Ciphertext) Domain() string {
	return "ElGamal Ciphertext"
}
