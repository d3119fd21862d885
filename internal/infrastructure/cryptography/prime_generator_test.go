//go:build unit
// +build unit

package cryptography

import (
	"context"
	"testing"

	"github.com/arokys4/rsa-project/internal/domain/cryptoalg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePrime(t *testing.T) {
	generator := NewPrimeGenerator(NewSeededRandomSource(23))

	for _, bits := range []int{2, 3, 8, 16, 31, 64, 128, 256} {
		p, err := generator.GeneratePrime(context.Background(), bits, 20)
		require.NoError(t, err)

		assert.Equal(t, bits, p.BitLen(), "bit length for %d", bits)
		assert.Equal(t, uint(1), p.Bit(0), "prime %s is even", p)
		assert.True(t, p.ProbablyPrime(20), "%s is not prime", p)
	}
}

func TestGeneratePrime_TwoBitsIsThree(t *testing.T) {
	generator := NewPrimeGenerator(NewSeededRandomSource(29))

	p, err := generator.GeneratePrime(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.Int64())
}

func TestGeneratePrime_InvalidArguments(t *testing.T) {
	generator := NewPrimeGenerator(NewSeededRandomSource(31))

	_, err := generator.GeneratePrime(context.Background(), 1, 20)
	assert.ErrorIs(t, err, cryptoalg.ErrInvalidPrimeBits)

	_, err = generator.GeneratePrime(context.Background(), 0, 20)
	assert.ErrorIs(t, err, cryptoalg.ErrConfig)

	_, err = generator.GeneratePrime(context.Background(), 64, 0)
	assert.ErrorIs(t, err, cryptoalg.ErrInvalidRounds)
}

func TestGeneratePrime_Canceled(t *testing.T) {
	generator := NewPrimeGenerator(NewSeededRandomSource(37))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := generator.GeneratePrime(ctx, 512, 20)
	assert.ErrorIs(t, err, context.Canceled)
}
