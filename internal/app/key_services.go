package app

import (
	"context"
	"fmt"
	"time"

	"github.com/arokys4/rsa-project/internal/domain/cryptoalg"
	"github.com/arokys4/rsa-project/internal/domain/keys"
	"github.com/arokys4/rsa-project/internal/infrastructure/cryptography"
	"github.com/arokys4/rsa-project/internal/pkg/logger"

	"github.com/google/uuid"
)

// keyGenerationService implements the KeyGenerationService interface
type keyGenerationService struct {
	keyRepo      keys.KeyRepository
	rsaProcessor cryptoalg.RSAProcessor
	logger       logger.Logger
}

// NewKeyGenerationService creates a new keyGenerationService instance
func NewKeyGenerationService(keyRepo keys.KeyRepository, rsaProcessor cryptoalg.RSAProcessor, logger logger.Logger) (keys.KeyGenerationService, error) {
	if keyRepo == nil || rsaProcessor == nil {
		return nil, fmt.Errorf("key repository and RSA processor are required")
	}
	return &keyGenerationService{
		keyRepo:      keyRepo,
		rsaProcessor: rsaProcessor,
		logger:       logger,
	}, nil
}

// Generate creates an RSA key pair and stores the public and private halves under one key-pair ID
func (s *keyGenerationService) Generate(ctx context.Context, bits, rounds int) ([]*keys.KeyMeta, error) {
	pair, err := s.rsaProcessor.GenerateKeys(ctx, bits, rounds)
	if err != nil {
		return nil, err
	}

	pubText, err := cryptography.FormatPublicKey(&pair.Public)
	if err != nil {
		return nil, err
	}
	privText, err := cryptography.FormatPrivateKey(&pair.Private)
	if err != nil {
		return nil, err
	}

	keyPairID := uuid.New().String()
	now := time.Now()
	metas := []*keys.KeyMeta{
		newKeyMeta(keyPairID, keys.KeyTypePublic, bits, pubText, now),
		newKeyMeta(keyPairID, keys.KeyTypePrivate, bits, privText, now),
	}

	for _, meta := range metas {
		if err := s.keyRepo.Create(ctx, meta); err != nil {
			s.rollback(ctx, keyPairID)
			return nil, fmt.Errorf("failed to store %s key: %w", meta.Type, err)
		}
	}

	s.logger.Info("Stored RSA key pair with id ", keyPairID)
	return metas, nil
}

func (s *keyGenerationService) rollback(ctx context.Context, keyPairID string) {
	if err := s.keyRepo.DeleteByKeyPairID(ctx, keyPairID); err != nil {
		s.logger.Warn("Failed to remove partially stored key pair ", keyPairID, ": ", err)
	}
}

func newKeyMeta(keyPairID, keyType string, bits int, material string, created time.Time) *keys.KeyMeta {
	return &keys.KeyMeta{
		ID:              uuid.New().String(),
		KeyPairID:       keyPairID,
		Type:            keyType,
		KeySize:         bits,
		Material:        material,
		DateTimeCreated: created,
	}
}

// keyCipherService implements the KeyCipherService interface
type keyCipherService struct {
	keyRepo      keys.KeyRepository
	rsaProcessor cryptoalg.RSAProcessor
	logger       logger.Logger
}

// NewKeyCipherService creates a new keyCipherService instance
func NewKeyCipherService(keyRepo keys.KeyRepository, rsaProcessor cryptoalg.RSAProcessor, logger logger.Logger) (keys.KeyCipherService, error) {
	if keyRepo == nil || rsaProcessor == nil {
		return nil, fmt.Errorf("key repository and RSA processor are required")
	}
	return &keyCipherService{
		keyRepo:      keyRepo,
		rsaProcessor: rsaProcessor,
		logger:       logger,
	}, nil
}

// Encrypt encrypts message with the stored public key of keyPairID
func (s *keyCipherService) Encrypt(ctx context.Context, keyPairID string, message []byte) (string, error) {
	meta, err := s.keyRepo.GetByKeyPairID(ctx, keyPairID, keys.KeyTypePublic)
	if err != nil {
		return "", err
	}

	pub, err := cryptography.ParsePublicKey(meta.Material)
	if err != nil {
		return "", fmt.Errorf("stored public key %s is corrupt: %w", meta.ID, err)
	}

	blocks, err := s.rsaProcessor.EncryptString(message, pub)
	if err != nil {
		return "", err
	}

	return cryptography.FormatCiphertext(blocks), nil
}

// Decrypt decrypts ciphertext text with the stored private key of keyPairID
func (s *keyCipherService) Decrypt(ctx context.Context, keyPairID, ciphertext string) ([]byte, error) {
	blocks, err := cryptography.ParseCiphertext(ciphertext)
	if err != nil {
		return nil, err
	}

	meta, err := s.keyRepo.GetByKeyPairID(ctx, keyPairID, keys.KeyTypePrivate)
	if err != nil {
		return nil, err
	}

	priv, err := cryptography.ParsePrivateKey(meta.Material)
	if err != nil {
		return nil, fmt.Errorf("stored private key %s is corrupt: %w", meta.ID, err)
	}

	return s.rsaProcessor.DecryptString(blocks, priv)
}

// keyMetadataService implements the KeyMetadataService interface
type keyMetadataService struct {
	keyRepo keys.KeyRepository
	logger  logger.Logger
}

// NewKeyMetadataService creates a new keyMetadataService instance
func NewKeyMetadataService(keyRepo keys.KeyRepository, logger logger.Logger) (keys.KeyMetadataService, error) {
	if keyRepo == nil {
		return nil, fmt.Errorf("key repository is required")
	}
	return &keyMetadataService{
		keyRepo: keyRepo,
		logger:  logger,
	}, nil
}

// List retrieves key metadata, stripping private key material
func (s *keyMetadataService) List(ctx context.Context, query *keys.KeyQuery) ([]*keys.KeyMeta, error) {
	metas, err := s.keyRepo.List(ctx, query)
	if err != nil {
		return nil, err
	}
	for _, meta := range metas {
		redact(meta)
	}
	return metas, nil
}

// GetByID retrieves the metadata of a key, stripping private key material
func (s *keyMetadataService) GetByID(ctx context.Context, keyID string) (*keys.KeyMeta, error) {
	meta, err := s.keyRepo.GetByID(ctx, keyID)
	if err != nil {
		return nil, err
	}
	redact(meta)
	return meta, nil
}

// DeleteByKeyPairID deletes both halves of a key pair
func (s *keyMetadataService) DeleteByKeyPairID(ctx context.Context, keyPairID string) error {
	if err := s.keyRepo.DeleteByKeyPairID(ctx, keyPairID); err != nil {
		return err
	}
	s.logger.Info("Deleted RSA key pair ", keyPairID)
	return nil
}

func redact(meta *keys.KeyMeta) {
	if meta.Type == keys.KeyTypePrivate {
		meta.Material = ""
	}
}
