//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"github.com/arokys4/rsa-project/internal/domain/keys"
	"github.com/arokys4/rsa-project/internal/pkg/config"
	"github.com/arokys4/rsa-project/internal/pkg/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Test constants
const (
	TestKeySize512  = 512
	TestKeySize1024 = 1024
)

// TestContext holds the test database and repository
type TestContext struct {
	DB      *gorm.DB
	KeyRepo keys.KeyRepository
}

// SetupTestDB initializes a migrated test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	cleanupFunc := func() {}

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			Name: "test_keystore",
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	require.NoError(t, Migrate(db), "Failed to migrate schema")

	keyRepo, err := NewGormKeyRepository(db, testutil.SetupTestLogger(t))
	require.NoError(t, err, "Failed to create key repository")

	return &TestContext{
		DB:      db,
		KeyRepo: keyRepo,
	}
}

// CreateTestKey creates a key of the given pair and type
func CreateTestKey(t *testing.T, keyPairID, keyType string, keySize int) *keys.KeyMeta {
	t.Helper()

	return &keys.KeyMeta{
		ID:              uuid.NewString(),
		KeyPairID:       keyPairID,
		Type:            keyType,
		KeySize:         keySize,
		Material:        "65537 3233\n",
		DateTimeCreated: time.Now(),
	}
}
