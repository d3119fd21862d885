//go:build unit
// +build unit

package app

import (
	"context"

	"github.com/arokys4/rsa-project/internal/domain/keys"
	"github.com/stretchr/testify/mock"
)

// MockKeyRepository is a mock implementation of KeyRepository
type MockKeyRepository struct {
	mock.Mock
}

func (m *MockKeyRepository) Create(ctx context.Context, key *keys.KeyMeta) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockKeyRepository) List(ctx context.Context, query *keys.KeyQuery) ([]*keys.KeyMeta, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*keys.KeyMeta), args.Error(1)
}

func (m *MockKeyRepository) GetByID(ctx context.Context, keyID string) (*keys.KeyMeta, error) {
	args := m.Called(ctx, keyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.KeyMeta), args.Error(1)
}

func (m *MockKeyRepository) GetByKeyPairID(ctx context.Context, keyPairID, keyType string) (*keys.KeyMeta, error) {
	args := m.Called(ctx, keyPairID, keyType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.KeyMeta), args.Error(1)
}

func (m *MockKeyRepository) DeleteByKeyPairID(ctx context.Context, keyPairID string) error {
	args := m.Called(ctx, keyPairID)
	return args.Error(0)
}
