package cryptoalg

import (
	"context"
	"math/big"
)

// RandomSource produces uniformly distributed integers for prime search and witness selection.
// Implementations are NOT cryptographically hardened against seed prediction.
type RandomSource interface {
	// Bits returns an integer drawn uniformly from [0, 2^k - 1]. k <= 0 yields 0.
	Bits(k int) *big.Int

	// Between returns an integer drawn uniformly from [low, high] inclusive.
	Between(low, high *big.Int) (*big.Int, error)
}

// RSAProcessor handles textbook RSA operations over arbitrary-precision integers.
// The processor holds at most one key pair at a time; every successful GenerateKeys
// call replaces it wholesale.
type RSAProcessor interface {
	// GenerateKeys generates a key pair with a modulus of the given bit size using
	// rounds Miller-Rabin rounds per candidate (0 selects the processor default).
	// Bit sizes below MinKeyBits fail with ErrKeyTooSmall.
	GenerateKeys(ctx context.Context, bits, rounds int) (*KeyPair, error)

	// PublicKey returns a copy of the currently held public key.
	PublicKey() (*PublicKey, error)

	// PrivateKey returns a copy of the currently held private key.
	PrivateKey() (*PrivateKey, error)

	// EncryptBlock computes m^e mod n. m must satisfy 0 <= m < n.
	EncryptBlock(m *big.Int, pub *PublicKey) (*big.Int, error)

	// DecryptBlock computes c^d mod n. c must satisfy 0 <= c < n.
	DecryptBlock(c *big.Int, priv *PrivateKey) (*big.Int, error)

	// EncryptString chunks message into big-endian blocks below n and encrypts each in order.
	EncryptString(message []byte, pub *PublicKey) ([]*big.Int, error)

	// DecryptString decrypts each block and reassembles the message bytes.
	DecryptString(blocks []*big.Int, priv *PrivateKey) ([]byte, error)

	// IsProbablePrime runs the Miller-Rabin test with the given number of rounds.
	IsProbablePrime(n *big.Int, rounds int) (bool, error)

	// SavePublicKeyToFile writes the public key as "e n".
	SavePublicKeyToFile(pub *PublicKey, filename string) error

	// SavePrivateKeyToFile writes the private key as "d n".
	SavePrivateKeyToFile(priv *PrivateKey, filename string) error

	// ReadPublicKey reads a public key written by SavePublicKeyToFile.
	ReadPublicKey(path string) (*PublicKey, error)

	// ReadPrivateKey reads a private key written by SavePrivateKeyToFile.
	ReadPrivateKey(path string) (*PrivateKey, error)
}
