// Package elgamal implements textbook ElGamal encryption and ElGamal signatures
// over the multiplicative group of integers modulo a prime p.
package elgamal

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/taurusgroup/pubkey/internal/hash"
	"github.com/taurusgroup/pubkey/internal/params"
	"github.com/taurusgroup/pubkey/pkg/math/arith"
	"github.com/taurusgroup/pubkey/pkg/math/sample"
	"github.com/taurusgroup/pubkey/pkg/plaintext"
)

var (
	ErrInvalidKey        = errors.New("elgamal: invalid key")
	ErrMessageTooLarge   = fmt.Errorf("elgamal: %w", plaintext.ErrMessageTooLarge)
	ErrInvalidNonce      = errors.New("elgamal: nonce must lie in [2, p-2]")
	ErrInvalidCiphertext = errors.New("elgamal: invalid ciphertext")
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

type PublicKey struct {
	// p is the prime modulus, g a generator candidate of ℤₚˣ and y = gˣ (mod p).
	p, g, y *big.Int
}

type PrivateKey struct {
	PublicKey
	x *big.Int
}

// GenerateKey returns a fresh key for a random prime modulus of the given bit length.
//
// p = Prime(bits), g = FindGenerator(p), x ∈ [2, p-2] and y = gˣ (mod p).
func GenerateKey(rand io.Reader, bits int) (*PrivateKey, error) {
	p, err := sample.Prime(rand, bits)
	if err != nil {
		return nil, fmt.Errorf("elgamal.GenerateKey: %w", err)
	}
	g, err := arith.FindGenerator(p)
	if err != nil {
		return nil, fmt.Errorf("elgamal.GenerateKey: %w", err)
	}
	pMinus1 := new(big.Int).Sub(p, one)
	x, err := sample.Range(rand, two, pMinus1)
	if err != nil {
		return nil, fmt.Errorf("elgamal.GenerateKey: sample secret: %w", err)
	}
	y := arith.ModExp(g, x, p)
	return &PrivateKey{
		PublicKey: PublicKey{p: p, g: g, y: y},
		x:         x,
	}, nil
}

// NewPublicKey validates and copies raw public key fields.
//
// p must be an odd prime, g ∈ [2, p-2] and y ∈ [1, p).
func NewPublicKey(p, g, y *big.Int) (*PublicKey, error) {
	if p == nil || g == nil || y == nil {
		return nil, fmt.Errorf("%w: missing field", ErrInvalidKey)
	}
	if p.Cmp(big.NewInt(5)) < 0 || !p.ProbablyPrime(params.PrimalityIterations) {
		return nil, fmt.Errorf("%w: modulus is not an odd prime ≥ 5", ErrInvalidKey)
	}
	pMinus1 := new(big.Int).Sub(p, one)
	if g.Cmp(two) < 0 || g.Cmp(pMinus1) >= 0 {
		return nil, fmt.Errorf("%w: generator out of range", ErrInvalidKey)
	}
	if y.Sign() <= 0 || y.Cmp(p) >= 0 {
		return nil, fmt.Errorf("%w: public value out of range", ErrInvalidKey)
	}
	return &PublicKey{
		p: new(big.Int).Set(p),
		g: new(big.Int).Set(g),
		y: new(big.Int).Set(y),
	}, nil
}

// NewPrivateKey validates and copies raw private key fields.
//
// In addition to the checks of NewPublicKey, x must lie in [2, p-2] and satisfy y = gˣ (mod p).
func NewPrivateKey(p, g, y, x *big.Int) (*PrivateKey, error) {
	pk, err := NewPublicKey(p, g, y)
	if err != nil {
		return nil, err
	}
	if x == nil {
		return nil, fmt.Errorf("%w: missing secret", ErrInvalidKey)
	}
	pMinus1 := new(big.Int).Sub(pk.p, one)
	if x.Cmp(two) < 0 || x.Cmp(pMinus1) >= 0 {
		return nil, fmt.Errorf("%w: secret out of range", ErrInvalidKey)
	}
	if arith.ModExp(pk.g, x, pk.p).Cmp(pk.y) != 0 {
		return nil, fmt.Errorf("%w: y ≠ gˣ (mod p)", ErrInvalidKey)
	}
	return &PrivateKey{
		PublicKey: *pk,
		x:         new(big.Int).Set(x),
	}, nil
}

// Public returns the public part of sk.
func (sk *PrivateKey) Public() *PublicKey {
	return &sk.PublicKey
}

// P returns the prime modulus.
// WARNING: Do not modify the returned value.
func (pk *PublicKey) P() *big.Int {
	return pk.p
}

// G returns the generator.
// WARNING: Do not modify the returned value.
func (pk *PublicKey) G() *big.Int {
	return pk.g
}

// Y returns the public value gˣ (mod p).
// WARNING: Do not modify the returned value.
func (pk *PublicKey) Y() *big.Int {
	return pk.y
}

// X returns the secret exponent.
// WARNING: Do not modify the returned value.
func (sk *PrivateKey) X() *big.Int {
	return sk.x
}

// Equal returns true if pk and other describe the same key.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	return pk.p.Cmp(other.p) == 0 && pk.g.Cmp(other.g) == 0 && pk.y.Cmp(other.y) == 0
}

// Fingerprint returns a short identifier of the public key.
func (pk *PublicKey) Fingerprint() []byte {
	fp, err := hash.Fingerprint(pk.Domain(), pk)
	if err != nil {
		panic(fmt.Sprintf("elgamal: fingerprint: %v", err))
	}
	return fp
}

// byteLen is the size of the fixed-width encoding of an element mod p.
func (pk *PublicKey) byteLen() int {
	return (pk.p.BitLen() + 7) / 8
}

// WriteTo implements io.WriterTo, writing p followed by the fixed-width encodings of g and y.
func (pk *PublicKey) WriteTo(w io.Writer) (int64, error) {
	return writeFixed(w, pk.byteLen(), pk.p, pk.g, pk.y)
}

// Domain implements hash.WriterToWithDomain.
func (*PublicKey) Domain() string {
	return "ElGamal PublicKey"
}

func writeFixed(w io.Writer, size int, values ...*big.Int) (int64, error) {
	var total int64
	buf := make([]byte, size)
	for _, v := range values {
		v.FillBytes(buf)
		n, err := w.Write(buf)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
