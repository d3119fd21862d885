package cryptography

import (
	"fmt"
	"math/big"

	"github.com/arokys4/rsa-project/internal/domain/cryptoalg"
)

var smallPrimes = []int64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47}

// MillerRabinTester decides probable primality. A composite passes all rounds with
// probability at most 4^-rounds.
type MillerRabinTester struct {
	source cryptoalg.RandomSource
}

// NewMillerRabinTester creates a tester drawing witnesses from source.
func NewMillerRabinTester(source cryptoalg.RandomSource) *MillerRabinTester {
	return &MillerRabinTester{source: source}
}

// IsProbablePrime reports whether n is prime with false-positive probability <= 4^-rounds.
// Values below 2 are never prime; rounds must be at least 1.
func (t *MillerRabinTester) IsProbablePrime(n *big.Int, rounds int) (bool, error) {
	if rounds < 1 {
		return false, fmt.Errorf("%w: got %d", cryptoalg.ErrInvalidRounds, rounds)
	}
	if n.Cmp(bigTwo) < 0 {
		return false, nil
	}

	rem := new(big.Int)
	for _, sp := range smallPrimes {
		p := big.NewInt(sp)
		if n.Cmp(p) == 0 {
			return true, nil
		}
		if rem.Rem(n, p).Sign() == 0 {
			return false, nil
		}
	}

	// n - 1 = d * 2^s with d odd
	nMinusOne := new(big.Int).Sub(n, bigOne)
	s := nMinusOne.TrailingZeroBits()
	d := new(big.Int).Rsh(nMinusOne, s)

	// n > 47 here, so [2, n-2] is never empty
	high := new(big.Int).Sub(n, bigTwo)

	for i := 0; i < rounds; i++ {
		a, err := t.source.Between(bigTwo, high)
		if err != nil {
			return false, fmt.Errorf("failed to draw witness: %w", err)
		}

		composite, err := witnessesComposite(a, d, n, nMinusOne, s)
		if err != nil {
			return false, err
		}
		if composite {
			return false, nil
		}
	}

	return true, nil
}

// witnessesComposite runs one Miller-Rabin round for witness a.
func witnessesComposite(a, d, n, nMinusOne *big.Int, s uint) (bool, error) {
	x, err := ModExp(a, d, n)
	if err != nil {
		return false, err
	}
	if x.Cmp(bigOne) == 0 || x.Cmp(nMinusOne) == 0 {
		return false, nil
	}

	for r := uint(1); r < s; r++ {
		x.Mul(x, x)
		x.Mod(x, n)
		if x.Cmp(nMinusOne) == 0 {
			return false, nil
		}
	}

	return true, nil
}
