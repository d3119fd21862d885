//go:build unit
// +build unit

package cryptography

import (
	"context"
	"math/big"
	"testing"

	"github.com/arokys4/rsa-project/internal/domain/cryptoalg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKeyGenerator(seed uint64) *KeyGenerator {
	return NewKeyGenerator(NewPrimeGenerator(NewSeededRandomSource(seed)))
}

func TestKeyGenerator_Invariants(t *testing.T) {
	generator := newTestKeyGenerator(41)

	for _, bits := range []int{32, 33, 64, 128, 256, 512} {
		material, err := generator.generate(context.Background(), bits, 20)
		require.NoError(t, err)

		assert.NotEqual(t, 0, material.p.Cmp(material.q), "p == q")
		assert.True(t, material.p.ProbablyPrime(20))
		assert.True(t, material.q.ProbablyPrime(20))
		assert.Equal(t, bits/2, material.p.BitLen())
		assert.Equal(t, bits-bits/2, material.q.BitLen())
		assert.Equal(t, 0, material.n.Cmp(new(big.Int).Mul(material.p, material.q)))

		// bit length of n is bits or bits-1
		assert.LessOrEqual(t, material.n.BitLen(), bits)
		assert.GreaterOrEqual(t, material.n.BitLen(), bits-1)

		assert.Equal(t, int64(1), GCD(material.e, material.phi).Int64())
		ed := new(big.Int).Mul(material.e, material.d)
		assert.Equal(t, int64(1), ed.Mod(ed, material.phi).Int64(), "e*d mod phi != 1")
		assert.Positive(t, material.d.Sign())
		assert.Negative(t, material.d.Cmp(material.phi))
	}
}

func TestKeyGenerator_PrefersF4(t *testing.T) {
	generator := newTestKeyGenerator(43)

	pair, err := generator.GenerateKeys(context.Background(), 512, 20)
	require.NoError(t, err)

	// 65537 divides phi with negligible probability at this size
	assert.Equal(t, int64(cryptoalg.DefaultPublicExponent), pair.Public.E.Int64())
	assert.Equal(t, 0, pair.Public.N.Cmp(pair.Private.N))
	assert.NotSame(t, pair.Public.N, pair.Private.N)
}

func TestKeyGenerator_RoundTripsEveryBlock(t *testing.T) {
	pair, err := newTestKeyGenerator(47).GenerateKeys(context.Background(), 64, 20)
	require.NoError(t, err)

	source := NewSeededRandomSource(53)
	upper := new(big.Int).Sub(pair.Public.N, bigOne)
	for i := 0; i < 50; i++ {
		m, err := source.Between(big.NewInt(0), upper)
		require.NoError(t, err)

		c, err := ModExp(m, pair.Public.E, pair.Public.N)
		require.NoError(t, err)
		back, err := ModExp(c, pair.Private.D, pair.Private.N)
		require.NoError(t, err)
		assert.Equal(t, 0, m.Cmp(back), "m=%s", m)
	}
}

func TestKeyGenerator_InvalidArguments(t *testing.T) {
	generator := newTestKeyGenerator(59)

	_, err := generator.GenerateKeys(context.Background(), 31, 20)
	assert.ErrorIs(t, err, cryptoalg.ErrKeyTooSmall)
	assert.ErrorIs(t, err, cryptoalg.ErrConfig)

	_, err = generator.GenerateKeys(context.Background(), 64, 0)
	assert.ErrorIs(t, err, cryptoalg.ErrInvalidRounds)
}

func TestKeyGenerator_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestKeyGenerator(61).GenerateKeys(ctx, 1024, 20)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDeriveKeyMaterial_Textbook(t *testing.T) {
	material, err := deriveKeyMaterial(big.NewInt(61), big.NewInt(53))
	require.NoError(t, err)

	assert.Equal(t, int64(3233), material.n.Int64())
	assert.Equal(t, int64(3120), material.phi.Int64())
	// 65537 is not below phi, so the smallest odd coprime exponent wins
	assert.Equal(t, int64(7), material.e.Int64())
	assert.Equal(t, int64(1783), material.d.Int64())
}

func TestChoosePublicExponent(t *testing.T) {
	tests := []struct {
		name     string
		phi      int64
		expected int64
	}{
		{"65537 coprime and below phi", 1 << 20, 65537},
		{"65537 divides phi", 65537 * 2, 3},
		{"65537 divides phi and 3 does not work", 65537 * 6, 5},
		{"phi below 65537", 60, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := choosePublicExponent(big.NewInt(tt.phi))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, e.Int64())
		})
	}
}

func TestChoosePublicExponent_None(t *testing.T) {
	_, err := choosePublicExponent(big.NewInt(2))
	assert.ErrorIs(t, err, cryptoalg.ErrNoValidExponent)
	assert.ErrorIs(t, err, cryptoalg.ErrMath)

	_, err = deriveKeyMaterial(big.NewInt(2), big.NewInt(3))
	assert.ErrorIs(t, err, cryptoalg.ErrNoValidExponent)
}
