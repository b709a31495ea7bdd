// Package rsa implements textbook RSA over math/big, with CRT accelerated decryption
// when the factorization of n is known.
package rsa

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
	"github.com/taurusgroup/pubkey/pkg/pool"
)

var (
	ErrInvalidKey        = errors.New("rsa: invalid key")
	ErrKeyGeneration     = errors.New("rsa: key generation failed")
	ErrMessageTooLarge   = fmt.Errorf("rsa: %w", plaintext.ErrMessageTooLarge)
	ErrInvalidCiphertext = errors.New("rsa: ciphertext must lie in [0, n)")
)

var one = big.NewInt(1)

type PublicKey struct {
	n, e *big.Int
	// nMod is n without its factorization
	nMod *arith.Modulus
}

type PrivateKey struct {
	PublicKey
	d *big.Int
	// p, q are nil for keys loaded without their primes
	p, q *big.Int
	// crt is n with its factorization, or nMod when p, q are unknown
	crt *arith.Modulus
}

// MinPrimeBits is the smallest prime size for which n = p·q always exceeds
// params.RSAPublicExponent (17 bits). Both primes have their top two bits set, so n ≥ 2^(2·bits-1).
const MinPrimeBits = 9

// GenerateKey returns a key whose modulus is the product of two distinct primes of bits bits each,
// with public exponent params.RSAPublicExponent.
//
// The primes are searched for in parallel on pl; a nil pool uses the current goroutine.
// If gcd(e, φ) ≠ 1 the error wraps both ErrKeyGeneration and arith.ErrNoInverse.
// bits must be at least MinPrimeBits.
func GenerateKey(rand io.Reader, pl *pool.Pool, bits int) (*PrivateKey, error) {
	if bits < MinPrimeBits {
		return nil, fmt.Errorf("%w: %d-bit primes cannot give a modulus above e = %d",
			ErrKeyGeneration, bits, params.RSAPublicExponent)
	}
	primes, err := sample.Primes(rand, pl, 2, bits)
	if err != nil {
		return nil, fmt.Errorf("rsa.GenerateKey: %w", err)
	}
	p, q := primes[0], primes[1]
	for i := 0; p.Cmp(q) == 0; i++ {
		if i == params.MaxSampleIterations {
			return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, sample.ErrMaxIterations)
		}
		if q, err = sample.Prime(rand, bits); err != nil {
			return nil, fmt.Errorf("rsa.GenerateKey: %w", err)
		}
	}
	return NewPrivateKeyFromPrimes(p, q, big.NewInt(params.RSAPublicExponent))
}

// NewPublicKey validates and copies raw public key fields.
//
// n must be odd and greater than 3, and e must be odd with 1 < e < n.
func NewPublicKey(n, e *big.Int) (*PublicKey, error) {
	if n == nil || e == nil {
		return nil, fmt.Errorf("%w: missing field", ErrInvalidKey)
	}
	if n.Cmp(big.NewInt(3)) <= 0 || n.Bit(0) == 0 {
		return nil, fmt.Errorf("%w: modulus must be odd and greater than 3", ErrInvalidKey)
	}
	if e.Cmp(one) <= 0 || e.Cmp(n) >= 0 || e.Bit(0) == 0 {
		return nil, fmt.Errorf("%w: exponent must be odd and in (1, n)", ErrInvalidKey)
	}
	nCopy := new(big.Int).Set(n)
	return &PublicKey{
		n:    nCopy,
		e:    new(big.Int).Set(e),
		nMod: arith.ModulusFromN(nCopy),
	}, nil
}

// NewPrivateKey validates raw key fields for a key whose primes are unknown.
//
// Decryption then uses a single exponentiation modulo n.
func NewPrivateKey(n, e, d *big.Int) (*PrivateKey, error) {
	pk, err := NewPublicKey(n, e)
	if err != nil {
		return nil, err
	}
	if d == nil || d.Sign() <= 0 || d.Cmp(pk.n) >= 0 {
		return nil, fmt.Errorf("%w: private exponent out of range", ErrInvalidKey)
	}
	sk := &PrivateKey{
		PublicKey: *pk,
		d:         new(big.Int).Set(d),
		crt:       pk.nMod,
	}
	if !sk.consistent() {
		return nil, fmt.Errorf("%w: e and d are not inverses", ErrInvalidKey)
	}
	return sk, nil
}

// NewPrivateKeyFromPrimes derives n = p⋅q and d = e⁻¹ (mod φ) from two distinct primes.
func NewPrivateKeyFromPrimes(p, q, e *big.Int) (*PrivateKey, error) {
	if p == nil || q == nil || e == nil {
		return nil, fmt.Errorf("%w: missing field", ErrInvalidKey)
	}
	if p.Cmp(q) == 0 {
		return nil, fmt.Errorf("%w: p = q", ErrInvalidKey)
	}
	if !p.ProbablyPrime(params.PrimalityIterations) || !q.ProbablyPrime(params.PrimalityIterations) {
		return nil, fmt.Errorf("%w: factors must be prime", ErrInvalidKey)
	}
	n := new(big.Int).Mul(p, q)
	pk, err := NewPublicKey(n, e)
	if err != nil {
		return nil, err
	}

	// φ = (p-1)(q-1)
	pMinus1 := new(big.Int).Sub(p, one)
	qMinus1 := new(big.Int).Sub(q, one)
	phi := pMinus1.Mul(pMinus1, qMinus1)
	d, err := arith.ModInverse(pk.e, phi)
	if err != nil {
		return nil, fmt.Errorf("%w: gcd(e, φ) ≠ 1: %w", ErrKeyGeneration, err)
	}

	pCopy, qCopy := new(big.Int).Set(p), new(big.Int).Set(q)
	return &PrivateKey{
		PublicKey: *pk,
		d:         d,
		p:         pCopy,
		q:         qCopy,
		crt:       arith.ModulusFromFactors(pCopy, qCopy),
	}, nil
}

// consistent checks that (2ᵉ)ᵈ = 2 (mod n).
func (sk *PrivateKey) consistent() bool {
	two := big.NewInt(2)
	c := arith.ModExp(two, sk.e, sk.n)
	return arith.ModExp(c, sk.d, sk.n).Cmp(two) == 0
}

// Public returns the public part of sk.
func (sk *PrivateKey) Public() *PublicKey {
	return &sk.PublicKey
}

// N returns the modulus.
// WARNING: Do not modify the returned value.
func (pk *PublicKey) N() *big.Int {
	return pk.n
}

// E returns the public exponent.
// WARNING: Do not modify the returned value.
func (pk *PublicKey) E() *big.Int {
	return pk.e
}

// D returns the private exponent.
// WARNING: Do not modify the returned value.
func (sk *PrivateKey) D() *big.Int {
	return sk.d
}

// Primes returns the factors of n, or nil when the key was loaded without them.
func (sk *PrivateKey) Primes() (p, q *big.Int) {
	return sk.p, sk.q
}

// Equal returns true if pk and other describe the same key.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	return pk.n.Cmp(other.n) == 0 && pk.e.Cmp(other.e) == 0
}

// Fingerprint returns a short identifier of the public key.
func (pk *PublicKey) Fingerprint() []byte {
	fp, err := hash.Fingerprint(pk.Domain(), pk)
	if err != nil {
		panic(fmt.Sprintf("rsa: fingerprint: %v", err))
	}
	return fp
}

// WriteTo implements io.WriterTo, writing n followed by e, both with the width of n.
func (pk *PublicKey) WriteTo(w io.Writer) (int64, error) {
	var total int64
	buf := make([]byte, (pk.n.BitLen()+7)/8)
	for _, v := range []*big.Int{pk.n, pk.e} {
		v.FillBytes(buf)
		n, err := w.Write(buf)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Domain implements hash.WriterToWithDomain.
func (*PublicKey) Domain() string {
	return "RSA PublicKey"
}
