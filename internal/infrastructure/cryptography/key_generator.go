package cryptography

import (
	"context"
	"fmt"
	"math/big"

	"github.com/arokys4/rsa-project/internal/domain/cryptoalg"
)

// KeyGenerator turns two independent primes into a key pair.
type KeyGenerator struct {
	primes *PrimeGenerator
}

// NewKeyGenerator creates a key generator on top of primes.
func NewKeyGenerator(primes *PrimeGenerator) *KeyGenerator {
	return &KeyGenerator{primes: primes}
}

// keyMaterial is everything derived during generation. phi never leaves the package.
type keyMaterial struct {
	p, q, n, phi, e, d *big.Int
}

func (m *keyMaterial) pair() *cryptoalg.KeyPair {
	return &cryptoalg.KeyPair{
		Public:  cryptoalg.PublicKey{N: m.n, E: m.e},
		Private: cryptoalg.PrivateKey{N: new(big.Int).Set(m.n), D: m.d},
	}
}

// GenerateKeys produces a key pair whose modulus is the product of a bits/2-bit prime
// and a (bits - bits/2)-bit prime.
func (g *KeyGenerator) GenerateKeys(ctx context.Context, bits, rounds int) (*cryptoalg.KeyPair, error) {
	material, err := g.generate(ctx, bits, rounds)
	if err != nil {
		return nil, err
	}
	return material.pair(), nil
}

func (g *KeyGenerator) generate(ctx context.Context, bits, rounds int) (*keyMaterial, error) {
	if bits < cryptoalg.MinKeyBits {
		return nil, fmt.Errorf("%w: got %d bits, need at least %d", cryptoalg.ErrKeyTooSmall, bits, cryptoalg.MinKeyBits)
	}
	if rounds < 1 {
		return nil, fmt.Errorf("%w: got %d", cryptoalg.ErrInvalidRounds, rounds)
	}

	half := bits / 2
	p, err := g.primes.GeneratePrime(ctx, half, rounds)
	if err != nil {
		return nil, fmt.Errorf("failed to generate prime p: %w", err)
	}

	var q *big.Int
	for q == nil || q.Cmp(p) == 0 {
		q, err = g.primes.GeneratePrime(ctx, bits-half, rounds)
		if err != nil {
			return nil, fmt.Errorf("failed to generate prime q: %w", err)
		}
	}

	return deriveKeyMaterial(p, q)
}

// deriveKeyMaterial computes n, phi and the exponents from two distinct primes.
func deriveKeyMaterial(p, q *big.Int) (*keyMaterial, error) {
	n := new(big.Int).Mul(p, q)
	phi := new(big.Int).Mul(
		new(big.Int).Sub(p, bigOne),
		new(big.Int).Sub(q, bigOne),
	)

	e, err := choosePublicExponent(phi)
	if err != nil {
		return nil, err
	}

	d, err := ModInverse(e, phi)
	if err != nil {
		return nil, fmt.Errorf("failed to derive private exponent: %w", err)
	}

	return &keyMaterial{p: p, q: q, n: n, phi: phi, e: e, d: d}, nil
}

// choosePublicExponent returns 65537 when it is coprime with and below phi,
// otherwise the smallest odd e >= 3 coprime with phi.
func choosePublicExponent(phi *big.Int) (*big.Int, error) {
	e := big.NewInt(cryptoalg.DefaultPublicExponent)
	if e.Cmp(phi) < 0 && GCD(e, phi).Cmp(bigOne) == 0 {
		return e, nil
	}

	for e.SetInt64(3); e.Cmp(phi) < 0; e.Add(e, bigTwo) {
		if GCD(e, phi).Cmp(bigOne) == 0 {
			return e, nil
		}
	}

	return nil, fmt.Errorf("%w: none below phi=%s", cryptoalg.ErrNoValidExponent, phi)
}
