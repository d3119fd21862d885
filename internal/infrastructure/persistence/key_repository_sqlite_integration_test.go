//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/arokys4/rsa-project/internal/domain/keys"
	"github.com/arokys4/rsa-project/internal/infrastructure/persistence/models"
	"github.com/arokys4/rsa-project/internal/pkg/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createKeyPair(t *testing.T, tc *TestContext, keySize int) (pub, priv *keys.KeyMeta) {
	t.Helper()

	keyPairID := uuid.NewString()
	pub = CreateTestKey(t, keyPairID, keys.KeyTypePublic, keySize)
	priv = CreateTestKey(t, keyPairID, keys.KeyTypePrivate, keySize)
	priv.Material = "2753 3233\n"

	require.NoError(t, tc.KeyRepo.Create(context.Background(), pub))
	require.NoError(t, tc.KeyRepo.Create(context.Background(), priv))
	return pub, priv
}

func TestKeySqliteRepository_Create(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	pub, _ := createKeyPair(t, tc, TestKeySize512)

	var stored models.KeyModel
	require.NoError(t, tc.DB.First(&stored, "id = ?", pub.ID).Error)
	assert.Equal(t, pub.KeyPairID, stored.KeyPairID)
	assert.Equal(t, keys.KeyTypePublic, stored.Type)
	assert.Equal(t, pub.Material, stored.Material)
}

func TestKeySqliteRepository_CreateInvalid(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	key := CreateTestKey(t, "not-a-uuid", keys.KeyTypePublic, TestKeySize512)
	err := tc.KeyRepo.Create(context.Background(), key)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation error")
}

func TestKeySqliteRepository_GetByID(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	_, priv := createKeyPair(t, tc, TestKeySize1024)

	fetched, err := tc.KeyRepo.GetByID(context.Background(), priv.ID)
	require.NoError(t, err)
	assert.Equal(t, priv.ID, fetched.ID)
	assert.Equal(t, priv.Material, fetched.Material)
	assert.Equal(t, TestKeySize1024, fetched.KeySize)

	_, err = tc.KeyRepo.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, keys.ErrKeyNotFound)
}

func TestKeySqliteRepository_GetByKeyPairID(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	pub, priv := createKeyPair(t, tc, TestKeySize512)

	fetched, err := tc.KeyRepo.GetByKeyPairID(context.Background(), pub.KeyPairID, keys.KeyTypePublic)
	require.NoError(t, err)
	assert.Equal(t, pub.ID, fetched.ID)

	fetched, err = tc.KeyRepo.GetByKeyPairID(context.Background(), pub.KeyPairID, keys.KeyTypePrivate)
	require.NoError(t, err)
	assert.Equal(t, priv.ID, fetched.ID)

	_, err = tc.KeyRepo.GetByKeyPairID(context.Background(), uuid.NewString(), keys.KeyTypePublic)
	assert.ErrorIs(t, err, keys.ErrKeyNotFound)
}

func TestKeySqliteRepository_List(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	createKeyPair(t, tc, TestKeySize512)
	time.Sleep(5 * time.Millisecond)
	createKeyPair(t, tc, TestKeySize1024)

	all, err := tc.KeyRepo.List(context.Background(), &keys.KeyQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	privates, err := tc.KeyRepo.List(context.Background(), &keys.KeyQuery{Type: keys.KeyTypePrivate})
	require.NoError(t, err)
	assert.Len(t, privates, 2)
	for _, k := range privates {
		assert.Equal(t, keys.KeyTypePrivate, k.Type)
	}

	bySize, err := tc.KeyRepo.List(context.Background(), &keys.KeyQuery{SortBy: "key_size", SortOrder: "desc", Limit: 1})
	require.NoError(t, err)
	require.Len(t, bySize, 1)
	assert.Equal(t, TestKeySize1024, bySize[0].KeySize)

	paged, err := tc.KeyRepo.List(context.Background(), &keys.KeyQuery{SortBy: "id", Limit: 2, Offset: 3})
	require.NoError(t, err)
	assert.Len(t, paged, 1)

	newest, err := tc.KeyRepo.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, newest, 4)
	assert.Equal(t, TestKeySize1024, newest[0].KeySize)

	_, err = tc.KeyRepo.List(context.Background(), &keys.KeyQuery{SortBy: "material"})
	assert.Error(t, err)
}

func TestKeySqliteRepository_DeleteByKeyPairID(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	pub, _ := createKeyPair(t, tc, TestKeySize512)
	other, _ := createKeyPair(t, tc, TestKeySize512)

	require.NoError(t, tc.KeyRepo.DeleteByKeyPairID(context.Background(), pub.KeyPairID))

	_, err := tc.KeyRepo.GetByKeyPairID(context.Background(), pub.KeyPairID, keys.KeyTypePublic)
	assert.ErrorIs(t, err, keys.ErrKeyNotFound)
	_, err = tc.KeyRepo.GetByKeyPairID(context.Background(), pub.KeyPairID, keys.KeyTypePrivate)
	assert.ErrorIs(t, err, keys.ErrKeyNotFound)

	remaining, err := tc.KeyRepo.List(context.Background(), &keys.KeyQuery{})
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
	assert.Equal(t, other.KeyPairID, remaining[0].KeyPairID)

	err = tc.KeyRepo.DeleteByKeyPairID(context.Background(), pub.KeyPairID)
	assert.ErrorIs(t, err, keys.ErrKeyNotFound)
}

func TestNewDBConnection_UnsupportedType(t *testing.T) {
	_, err := NewDBConnection(config.DatabaseSettings{Type: "mysql"})
	assert.Error(t, err)
}

func TestNewDBConnection_SqliteFile(t *testing.T) {
	settings := config.DatabaseSettings{
		Type: config.SqliteDbType,
		DSN:  t.TempDir() + "/keystore.db",
		Name: "keystore",
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable(&models.KeyModel{}))
	require.NoError(t, CloseDB(db))
}
