package cryptography

import (
	"context"
	"fmt"
	"math/big"

	"github.com/arokys4/rsa-project/internal/domain/cryptoalg"
)

// PrimeGenerator samples odd candidates of a fixed bit length until one passes Miller-Rabin.
type PrimeGenerator struct {
	source cryptoalg.RandomSource
	tester *MillerRabinTester
}

// NewPrimeGenerator creates a generator sharing source with its tester.
func NewPrimeGenerator(source cryptoalg.RandomSource) *PrimeGenerator {
	return &PrimeGenerator{
		source: source,
		tester: NewMillerRabinTester(source),
	}
}

// GeneratePrime returns a probable prime of exactly bits bits.
// The search has no attempt limit; about ln(2^bits)/2 odd candidates are expected.
// ctx is checked between candidates.
func (g *PrimeGenerator) GeneratePrime(ctx context.Context, bits, rounds int) (*big.Int, error) {
	if bits < 2 {
		return nil, fmt.Errorf("%w: got %d", cryptoalg.ErrInvalidPrimeBits, bits)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("prime search interrupted: %w", err)
		}

		candidate := g.candidate(bits)
		ok, err := g.tester.IsProbablePrime(candidate, rounds)
		if err != nil {
			return nil, err
		}
		if ok {
			return candidate, nil
		}
	}
}

// candidate draws a bits-wide odd integer: top bit forced for length, low bit for oddness.
func (g *PrimeGenerator) candidate(bits int) *big.Int {
	c := g.source.Bits(bits)
	c.SetBit(c, bits-1, 1)
	c.SetBit(c, 0, 1)
	return c
}
