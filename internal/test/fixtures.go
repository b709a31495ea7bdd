// Package test holds fixed parameters and deterministic randomness shared by the package tests.
package test

import (
	"io"
	"math/big"
	mrand "math/rand"
)

// Toy ElGamal group: p is a safe prime, g = 2 generates ℤₚˣ, and y = gˣ (mod p).
var (
	ToyP = big.NewInt(2579)
	ToyG = big.NewInt(2)
	ToyX = big.NewInt(765)
	ToyY = big.NewInt(949)
)

// Textbook RSA example: n = 61⋅53 = 3233, e⋅d = 1 (mod φ(n)).
var (
	ToyRSAP = big.NewInt(61)
	ToyRSAQ = big.NewInt(53)
	ToyRSAE = big.NewInt(17)
	ToyRSAD = big.NewInt(2753)
)

// RSAPrimeP and RSAPrimeQ are 1024-bit primes with gcd(65537, (p-1)(q-1)) = 1.
var RSAPrimeP, RSAPrimeQ *big.Int

func init() {
	RSAPrimeP, _ = new(big.Int).SetString("D08769E92F80F7FDFB85EC02AFFDAED0FDE2782070757F191DCDC4D108110AC1E31C07FC253B5F7B91C5D9F203AA0572D3F2062A3D2904C535C6ACCA7D5674E1C2640720E762C72B66931F483C2D910908CF02EA6723A0CBBB1016CA696C38FEAC59B31E40584C8141889A11F7A38F5B17811D11F42CD15B8470F11C6183802B", 16)
	RSAPrimeQ, _ = new(big.Int).SetString("C21239C3484FC3C8409F40A9A22FABFFE26CA10C27506E3E017C2EC8C4B98D7A6D30DED0686869884BE9BAD27F5241B7313F73D19E9E4B384FABF9554B5BB4D517CBAC0268420C63D545612C9ADABEEDF20F94244E7F8F2080B0C675AC98D97C580D43375F999B1AC127EC580B89B2D302EF33DD5FD8474A241B0398F6088CA7", 16)
}

// Reader returns a deterministic source of randomness for reproducible tests.
func Reader(seed int64) io.Reader {
	return mrand.New(mrand.NewSource(seed))
}

// ErrReader is an io.Reader that always fails with Err.
type ErrReader struct {
	Err error
}

func (r ErrReader) Read([]byte) (int, error) {
	return 0, r.Err
}
