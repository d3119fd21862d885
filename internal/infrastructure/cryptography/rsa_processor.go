package cryptography

import (
	"context"
	"fmt"
	"log"
	"math/big"
	"os"
	"path/filepath"
	"sync"

	"github.com/arokys4/rsa-project/internal/domain/cryptoalg"
	"github.com/arokys4/rsa-project/internal/pkg/logger"
)

// rsaProcessor struct that implements the RSAProcessor interface
type rsaProcessor struct {
	logger        logger.Logger
	tester        *MillerRabinTester
	keys          *KeyGenerator
	defaultRounds int

	mu   sync.RWMutex
	pair *cryptoalg.KeyPair
}

// NewRSAProcessor creates and returns a new instance of rsaProcessor.
// source is owned by the processor; concurrent processors need separate sources.
// defaultRounds is used whenever GenerateKeys is called with zero rounds.
func NewRSAProcessor(logger logger.Logger, source cryptoalg.RandomSource, defaultRounds int) (cryptoalg.RSAProcessor, error) {
	if source == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}
	if defaultRounds == 0 {
		defaultRounds = cryptoalg.DefaultMillerRabinRounds
	}
	if defaultRounds < 1 {
		return nil, fmt.Errorf("%w: default rounds %d", cryptoalg.ErrInvalidRounds, defaultRounds)
	}

	primes := NewPrimeGenerator(source)
	return &rsaProcessor{
		logger:        logger,
		tester:        primes.tester,
		keys:          NewKeyGenerator(primes),
		defaultRounds: defaultRounds,
	}, nil
}

// GenerateKeys generates a key pair and replaces the held one. On failure the
// previously held pair is left untouched.
func (r *rsaProcessor) GenerateKeys(ctx context.Context, bits, rounds int) (*cryptoalg.KeyPair, error) {
	if rounds == 0 {
		rounds = r.defaultRounds
	}

	pair, err := r.keys.GenerateKeys(ctx, bits, rounds)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA keys: %w", err)
	}

	r.mu.Lock()
	r.pair = pair
	r.mu.Unlock()

	r.logger.Info(fmt.Sprintf("Generated RSA key pair (%d-bit modulus, e=%s)", pair.Bits(), pair.Public.E))
	return pair.Clone(), nil
}

// PublicKey returns a copy of the held public key.
func (r *rsaProcessor) PublicKey() (*cryptoalg.PublicKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.pair == nil {
		return nil, fmt.Errorf("%w: generate keys first", cryptoalg.ErrKeyNotSet)
	}
	return r.pair.Public.Clone(), nil
}

// PrivateKey returns a copy of the held private key.
func (r *rsaProcessor) PrivateKey() (*cryptoalg.PrivateKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.pair == nil {
		return nil, fmt.Errorf("%w: generate keys first", cryptoalg.ErrKeyNotSet)
	}
	return r.pair.Private.Clone(), nil
}

// EncryptBlock computes m^e mod n for 0 <= m < n.
func (r *rsaProcessor) EncryptBlock(m *big.Int, pub *cryptoalg.PublicKey) (*big.Int, error) {
	if err := pub.Validate(); err != nil {
		return nil, err
	}
	if err := checkBlockRange(m, pub.N, "plaintext"); err != nil {
		return nil, err
	}
	return ModExp(m, pub.E, pub.N)
}

// DecryptBlock computes c^d mod n for 0 <= c < n.
func (r *rsaProcessor) DecryptBlock(c *big.Int, priv *cryptoalg.PrivateKey) (*big.Int, error) {
	if err := priv.Validate(); err != nil {
		return nil, err
	}
	if err := checkBlockRange(c, priv.N, "ciphertext"); err != nil {
		return nil, err
	}
	return ModExp(c, priv.D, priv.N)
}

func checkBlockRange(v, n *big.Int, kind string) error {
	if v == nil || v.Sign() < 0 || v.Cmp(n) >= 0 {
		return fmt.Errorf("%w: %s block must satisfy 0 <= block < n", cryptoalg.ErrBlockOutOfRange, kind)
	}
	return nil
}

// EncryptString encrypts message block by block with the public key.
func (r *rsaProcessor) EncryptString(message []byte, pub *cryptoalg.PublicKey) ([]*big.Int, error) {
	if err := pub.Validate(); err != nil {
		return nil, err
	}

	blocks, err := encodeBlocks(message, pub.N, func(m *big.Int) (*big.Int, error) {
		return r.EncryptBlock(m, pub)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt message: %w", err)
	}

	r.logger.Info(fmt.Sprintf("RSA encryption succeeded (%d bytes, %d blocks)", len(message), len(blocks)))
	return blocks, nil
}

// DecryptString decrypts blocks with the private key and reassembles the message.
func (r *rsaProcessor) DecryptString(blocks []*big.Int, priv *cryptoalg.PrivateKey) ([]byte, error) {
	if err := priv.Validate(); err != nil {
		return nil, err
	}

	message, err := decodeBlocks(blocks, priv.N, func(c *big.Int) (*big.Int, error) {
		return r.DecryptBlock(c, priv)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt message: %w", err)
	}

	r.logger.Info(fmt.Sprintf("RSA decryption succeeded (%d blocks, %d bytes)", len(blocks), len(message)))
	return message, nil
}

// IsProbablePrime runs Miller-Rabin on n.
func (r *rsaProcessor) IsProbablePrime(n *big.Int, rounds int) (bool, error) {
	return r.tester.IsProbablePrime(n, rounds)
}

// SavePublicKeyToFile saves the public key as "e n".
func (r *rsaProcessor) SavePublicKeyToFile(pub *cryptoalg.PublicKey, filename string) error {
	text, err := FormatPublicKey(pub)
	if err != nil {
		return fmt.Errorf("failed to encode public key: %w", err)
	}
	if err := writeKeyFile(filename, text); err != nil {
		return fmt.Errorf("failed to write public key file: %w", err)
	}

	r.logger.Info("Saved RSA public key ", filename)
	return nil
}

// SavePrivateKeyToFile saves the private key as "d n".
func (r *rsaProcessor) SavePrivateKeyToFile(priv *cryptoalg.PrivateKey, filename string) error {
	text, err := FormatPrivateKey(priv)
	if err != nil {
		return fmt.Errorf("failed to encode private key: %w", err)
	}
	if err := writeKeyFile(filename, text); err != nil {
		return fmt.Errorf("failed to write private key file: %w", err)
	}

	r.logger.Info("Saved RSA private key ", filename)
	return nil
}

// ReadPublicKey reads a public key file in "e n" form.
func (r *rsaProcessor) ReadPublicKey(path string) (*cryptoalg.PublicKey, error) {
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("unable to read public key file: %w", err)
	}

	pub, err := ParsePublicKey(string(content))
	if err != nil {
		return nil, fmt.Errorf("wrong public key file format (expected: e n): %w", err)
	}
	return pub, nil
}

// ReadPrivateKey reads a private key file in "d n" form.
func (r *rsaProcessor) ReadPrivateKey(path string) (*cryptoalg.PrivateKey, error) {
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("unable to read private key file: %w", err)
	}

	priv, err := ParsePrivateKey(string(content))
	if err != nil {
		return nil, fmt.Errorf("wrong private key file format (expected: d n): %w", err)
	}
	return priv, nil
}

func writeKeyFile(filename, text string) error {
	file, err := os.OpenFile(filepath.Clean(filename), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("warning: failed to close file: %v\n", err)
		}
	}()

	_, err = file.WriteString(text)
	return err
}
