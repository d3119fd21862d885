//go:build unit
// +build unit

package models

import (
	"testing"
	"time"

	"github.com/arokys4/rsa-project/internal/domain/keys"
	"github.com/stretchr/testify/assert"
)

func TestKeyModel_TableName(t *testing.T) {
	assert.Equal(t, "rsa_keys", KeyModel{}.TableName())
}

func TestKeyModel_ToDomain(t *testing.T) {
	model := &KeyModel{
		ID:              "test-id",
		KeyPairID:       "test-keypair-id",
		Type:            keys.KeyTypePrivate,
		KeySize:         2048,
		Material:        "2753 3233\n",
		DateTimeCreated: time.Now(),
	}

	meta := model.ToDomain()

	assert.Equal(t, model.ID, meta.ID)
	assert.Equal(t, model.KeyPairID, meta.KeyPairID)
	assert.Equal(t, model.Type, meta.Type)
	assert.Equal(t, model.KeySize, meta.KeySize)
	assert.Equal(t, model.Material, meta.Material)
	assert.Equal(t, model.DateTimeCreated, meta.DateTimeCreated)
}

func TestKeyModel_FromDomain(t *testing.T) {
	meta := &keys.KeyMeta{
		ID:              "test-id",
		KeyPairID:       "test-keypair-id",
		Type:            keys.KeyTypePublic,
		KeySize:         1024,
		Material:        "65537 3233\n",
		DateTimeCreated: time.Now(),
	}

	model := &KeyModel{}
	model.FromDomain(meta)

	assert.Equal(t, meta.ID, model.ID)
	assert.Equal(t, meta.KeyPairID, model.KeyPairID)
	assert.Equal(t, meta.Type, model.Type)
	assert.Equal(t, meta.KeySize, model.KeySize)
	assert.Equal(t, meta.Material, model.Material)
	assert.Equal(t, meta.DateTimeCreated, model.DateTimeCreated)
}
