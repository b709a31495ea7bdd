package sample

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/taurusgroup/pubkey/internal/params"
	"github.com/taurusgroup/pubkey/pkg/pool"
)

var (
	// ErrPrimeGenerationTimeout is returned when no prime was found after params.MaxPrimeIterations candidates.
	ErrPrimeGenerationTimeout = fmt.Errorf("sample: failed to generate prime after %d iterations", params.MaxPrimeIterations)
	ErrPrimeTooSmall          = errors.New("sample: prime size must be at least 2-bit")
)

// trialPrimes contains the first 128 odd prime numbers
//
// Candidates are checked against these before running Miller-Rabin,
// which discards most composite numbers cheaply.
var trialPrimes = []uint64{
	3, 5, 7, 11, 13, 17, 19, 23,
	29, 31, 37, 41, 43, 47, 53, 59,
	61, 67, 71, 73, 79, 83, 89, 97,
	101, 103, 107, 109, 113, 127, 131, 137,
	139, 149, 151, 157, 163, 167, 173, 179,
	181, 191, 193, 197, 199, 211, 223, 227,
	229, 233, 239, 241, 251, 257, 263, 269,
	271, 277, 281, 283, 293, 307, 311, 313,
	317, 331, 337, 347, 349, 353, 359, 367,
	373, 379, 383, 389, 397, 401, 409, 419,
	421, 431, 433, 439, 443, 449, 457, 461,
	463, 467, 479, 487, 491, 499, 503, 509,
	521, 523, 541, 547, 557, 563, 569, 571,
	577, 587, 593, 599, 601, 607, 613, 617,
	619, 631, 641, 643, 647, 653, 659, 661,
	673, 677, 683, 691, 701, 709, 719, 727,
	733, 739, 743, 751, 757, 761, 769, 773,
}

// below this size a candidate may equal one of the trial primes, so we skip sieving.
const minSieveBits = 11

// potentialPrime generates an odd candidate prime with exactly bits bits.
//
// The candidate returned by this function will have undergone trial division,
// but not the heavier primality tests like Lucas, or Miller-Rabin.
func potentialPrime(rand io.Reader, bits int) (p *big.Int, err error) {
	// This function was adapted from `rand.Prime`, so you may want to look
	// at how that function is structured.
	//
	// The general strategy is to generate random numbers without an obviously
	// deficient bit pattern, and then check that this number, or one nearby,
	// isn't divisible by any of our trial primes.

	// The number of significant bits in the first byte of our number
	lastBits := uint(bits % 8)
	if lastBits == 0 {
		lastBits = 8
	}

	bytes := make([]byte, (bits+7)/8)
	p = new(big.Int)
	scratch := new(big.Int)
	// We store a different remainder for each prime, so that we can then adjust
	// these values with deltas, instead of adjusting our large prime, and
	// then recalculating the remainder.
	mods := make([]uint64, len(trialPrimes))

	for {
		if _, err = io.ReadFull(rand, bytes); err != nil {
			return nil, fmt.Errorf("sample: read randomness: %w", err)
		}

		// Clear bits in the first byte to make sure the candidate has a size <= bits.
		bytes[0] &= uint8(int(1<<lastBits) - 1)
		// Set the most significant two bits, so that the product of two
		// such primes has exactly twice as many bits.
		if lastBits >= 2 {
			bytes[0] |= 0b11 << (lastBits - 2)
		} else {
			// Here lastBits == 1, because lastBits cannot be zero.
			bytes[0] |= 1
			if len(bytes) > 1 {
				bytes[1] |= 0b1000_0000
			}
		}
		// odd
		bytes[len(bytes)-1] |= 1

		p.SetBytes(bytes)
		if bits < minSieveBits {
			return p, nil
		}

		for i := 0; i < len(trialPrimes); i++ {
			scratch.SetUint64(trialPrimes[i])
			mods[i] = scratch.Mod(p, scratch).Uint64()
		}
		// This is a heuristic cap used by OpenSSL.
		maxDelta := (uint64(1) << 32) - trialPrimes[len(trialPrimes)-1]
	NextDelta:
		// We add 2 each iteration, to remain odd.
		for delta := uint64(0); delta < maxDelta; delta += 2 {
			for i := 0; i < len(trialPrimes); i++ {
				if (mods[i]+delta)%trialPrimes[i] == 0 {
					continue NextDelta
				}
			}
			scratch.SetUint64(delta)
			p.Add(p, scratch)

			// There is a tiny possibility that, by adding delta, we caused
			// the number to be one bit too long. Thus we check BitLen
			// here.
			if p.BitLen() == bits {
				return p, nil
			}
			break
		}
	}
}

// Prime returns an odd probable prime p with p.BitLen() == bits, whose two most significant bits are set.
//
// Candidates are confirmed with params.PrimalityIterations rounds of Miller-Rabin
// followed by a Baillie-PSW test.
// It returns ErrPrimeGenerationTimeout after params.MaxPrimeIterations failed candidates.
func Prime(rand io.Reader, bits int) (*big.Int, error) {
	if bits < 2 {
		return nil, ErrPrimeTooSmall
	}
	for i := 0; i < params.MaxPrimeIterations; i++ {
		p, err := potentialPrime(rand, bits)
		if err != nil {
			return nil, err
		}
		if p.ProbablyPrime(params.PrimalityIterations) {
			return p, nil
		}
	}
	return nil, ErrPrimeGenerationTimeout
}

// Primes generates count primes of the given size in parallel on pl.
//
// A nil pool does the search on the current goroutine.
// The primes are not guaranteed to be distinct, which only matters for tiny sizes.
func Primes(rand io.Reader, pl *pool.Pool, count, bits int) ([]*big.Int, error) {
	reader := pool.NewLockedReader(rand)
	results, err := pl.Search(count, func() (interface{}, error) {
		p, err := Prime(reader, bits)
		if err != nil {
			return nil, err
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	primes := make([]*big.Int, count)
	for i, r := range results {
		primes[i] = r.(*big.Int)
	}
	return primes, nil
}
