package sample

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/pubkey/internal/params"
	"github.com/taurusgroup/pubkey/pkg/math/arith"
	"github.com/taurusgroup/pubkey/pkg/math/curve"
)

var (
	ErrMaxIterations = fmt.Errorf("sample: failed to generate after %d iterations", params.MaxSampleIterations)
	ErrEmptyRange    = errors.New("sample: empty range, high must be greater than low")
)

func readBits(rand io.Reader, buf []byte) error {
	if _, err := io.ReadFull(rand, buf); err != nil {
		return fmt.Errorf("sample: read randomness: %w", err)
	}
	return nil
}

// ModN samples a uniform element of [0, n) by rejection sampling.
func ModN(rand io.Reader, n *big.Int) (*big.Int, error) {
	if n.Sign() <= 0 {
		return nil, ErrEmptyRange
	}
	bits := n.BitLen()
	buf := make([]byte, (bits+7)/8)
	// mask off the bits above n's most significant bit, so that each try succeeds with probability >= 1/2
	mask := uint8(int(1<<uint(bits-8*(len(buf)-1))) - 1)
	out := new(big.Int)
	for i := 0; i < params.MaxSampleIterations; i++ {
		if err := readBits(rand, buf); err != nil {
			return nil, err
		}
		buf[0] &= mask
		out.SetBytes(buf)
		if out.Cmp(n) < 0 {
			return out, nil
		}
	}
	return nil, ErrMaxIterations
}

// Range returns a uniform integer in [low, high).
func Range(rand io.Reader, low, high *big.Int) (*big.Int, error) {
	if high.Cmp(low) <= 0 {
		return nil, ErrEmptyRange
	}
	width := new(big.Int).Sub(high, low)
	out, err := ModN(rand, width)
	if err != nil {
		return nil, err
	}
	return out.Add(out, low), nil
}

// Coprime returns a uniform integer k in [low, high) such that gcd(k, m) = 1.
//
// Candidates are resampled until the condition holds. The iteration cap is
// only reached when the range holds (almost) no unit mod m.
func Coprime(rand io.Reader, low, high, m *big.Int) (*big.Int, error) {
	for i := 0; i < params.MaxPrimeIterations; i++ {
		k, err := Range(rand, low, high)
		if err != nil {
			return nil, err
		}
		if arith.IsCoprime(k, m) {
			return k, nil
		}
	}
	return nil, ErrMaxIterations
}

// Scalar returns a new curve.Scalar by reading bytes from rand.
//
// SafeScalarBytes bytes are read, so the reduction modulo the group order has negligible bias.
func Scalar(rand io.Reader, group curve.Curve) (curve.Scalar, error) {
	buffer := make([]byte, group.SafeScalarBytes())
	if err := readBits(rand, buffer); err != nil {
		return nil, err
	}
	n := new(saferith.Nat).SetBytes(buffer)
	return group.NewScalar().SetNat(n), nil
}
