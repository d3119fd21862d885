package cryptoalg

import (
	"fmt"
	"math/big"
)

// MinKeyBits is the smallest modulus size GenerateKeys accepts.
const MinKeyBits = 32

// DefaultMillerRabinRounds is used when a caller passes zero rounds.
const DefaultMillerRabinRounds = 25

// DefaultPublicExponent is tried first for e.
const DefaultPublicExponent = 65537

// PublicKey is the public half (n, e) of a key pair.
type PublicKey struct {
	N *big.Int
	E *big.Int
}

// PrivateKey is the private half (n, d) of a key pair.
type PrivateKey struct {
	N *big.Int
	D *big.Int
}

// KeyPair holds both halves generated from the same primes; both share N.
type KeyPair struct {
	Public  PublicKey
	Private PrivateKey
}

// Validate checks that the modulus is usable and the exponent is positive.
func (k *PublicKey) Validate() error {
	if k == nil || k.N == nil || k.E == nil {
		return ErrKeyNotSet
	}
	if k.N.Sign() <= 0 {
		return fmt.Errorf("%w: public modulus must be positive", ErrKeyNotSet)
	}
	if k.E.Sign() <= 0 {
		return fmt.Errorf("%w: public exponent must be positive", ErrKeyNotSet)
	}
	return nil
}

// Validate checks that the modulus is usable and the exponent is positive.
func (k *PrivateKey) Validate() error {
	if k == nil || k.N == nil || k.D == nil {
		return ErrKeyNotSet
	}
	if k.N.Sign() <= 0 {
		return fmt.Errorf("%w: private modulus must be positive", ErrKeyNotSet)
	}
	if k.D.Sign() <= 0 {
		return fmt.Errorf("%w: private exponent must be positive", ErrKeyNotSet)
	}
	return nil
}

// Clone returns a deep copy.
func (k *PublicKey) Clone() *PublicKey {
	return &PublicKey{N: new(big.Int).Set(k.N), E: new(big.Int).Set(k.E)}
}

// Clone returns a deep copy.
func (k *PrivateKey) Clone() *PrivateKey {
	return &PrivateKey{N: new(big.Int).Set(k.N), D: new(big.Int).Set(k.D)}
}

// Clone returns a deep copy of both halves.
func (p *KeyPair) Clone() *KeyPair {
	return &KeyPair{
		Public:  *p.Public.Clone(),
		Private: *p.Private.Clone(),
	}
}

// Bits returns the bit length of the shared modulus.
func (p *KeyPair) Bits() int {
	return p.Public.N.BitLen()
}
