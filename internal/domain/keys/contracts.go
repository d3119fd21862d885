package keys

import (
	"context"
)

// KeyGenerationService defines methods for generating and storing RSA key pairs.
type KeyGenerationService interface {
	// Generate creates a key pair and stores both halves under a fresh key-pair ID.
	// It returns the public and private KeyMeta, in that order. Zero rounds selects the engine default.
	Generate(ctx context.Context, bits, rounds int) ([]*KeyMeta, error)
}

// KeyCipherService defines methods for encrypting and decrypting with stored key pairs.
type KeyCipherService interface {
	// Encrypt encrypts message with the public key of the pair and returns the ciphertext text,
	// one decimal integer per line.
	Encrypt(ctx context.Context, keyPairID string, message []byte) (string, error)

	// Decrypt parses ciphertext text and decrypts it with the private key of the pair.
	Decrypt(ctx context.Context, keyPairID, ciphertext string) ([]byte, error)
}

// KeyMetadataService defines methods for managing stored key metadata and deleting keys.
type KeyMetadataService interface {
	// List retrieves key metadata considering a query filter when set.
	// Private key material is never included.
	List(ctx context.Context, query *KeyQuery) ([]*KeyMeta, error)

	// GetByID retrieves the metadata of a key by its unique ID.
	// Private key material is never included.
	GetByID(ctx context.Context, keyID string) (*KeyMeta, error)

	// DeleteByKeyPairID deletes both halves of a key pair.
	DeleteByKeyPairID(ctx context.Context, keyPairID string) error
}

// KeyRepository defines the interface for keystore persistence
type KeyRepository interface {
	Create(ctx context.Context, key *KeyMeta) error
	List(ctx context.Context, query *KeyQuery) ([]*KeyMeta, error)
	GetByID(ctx context.Context, keyID string) (*KeyMeta, error)
	GetByKeyPairID(ctx context.Context, keyPairID, keyType string) (*KeyMeta, error)
	DeleteByKeyPairID(ctx context.Context, keyPairID string) error
}
