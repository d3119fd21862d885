package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/arokys4/rsa-project/internal/domain/keys"
	"github.com/arokys4/rsa-project/internal/infrastructure/persistence/models"
	"github.com/arokys4/rsa-project/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormKeyRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormKeyRepository creates a GORM-based KeyRepository
func NewGormKeyRepository(db *gorm.DB, logger logger.Logger) (keys.KeyRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection cannot be nil")
	}
	return &gormKeyRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormKeyRepository) Create(ctx context.Context, key *keys.KeyMeta) error {
	if err := key.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.KeyModel{}
	model.FromDomain(key)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create key: %w", err)
	}

	r.logger.Info("Created ", key.Type, " key with id ", key.ID)
	return nil
}

func (r *gormKeyRepository) List(ctx context.Context, query *keys.KeyQuery) ([]*keys.KeyMeta, error) {
	if query == nil {
		query = keys.NewKeyQuery()
	}
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	dbQuery := r.db.WithContext(ctx).Model(&models.KeyModel{})

	if query.Type != "" {
		dbQuery = dbQuery.Where("type = ?", query.Type)
	}

	// SortBy and SortOrder are restricted to known columns by Validate
	if query.SortBy != "" {
		order := query.SortOrder
		if order == "" {
			order = "asc"
		}
		dbQuery = dbQuery.Order(fmt.Sprintf("%s %s", query.SortBy, order))
	}

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	var modelList []*models.KeyModel
	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch keys: %w", err)
	}

	domainList := make([]*keys.KeyMeta, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormKeyRepository) GetByID(ctx context.Context, keyID string) (*keys.KeyMeta, error) {
	var model models.KeyModel
	if err := r.db.WithContext(ctx).Where("id = ?", keyID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %s", keys.ErrKeyNotFound, keyID)
		}
		return nil, fmt.Errorf("failed to fetch key: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormKeyRepository) GetByKeyPairID(ctx context.Context, keyPairID, keyType string) (*keys.KeyMeta, error) {
	var model models.KeyModel
	err := r.db.WithContext(ctx).
		Where("key_pair_id = ? AND type = ?", keyPairID, keyType).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s key of pair %s", keys.ErrKeyNotFound, keyType, keyPairID)
		}
		return nil, fmt.Errorf("failed to fetch key: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormKeyRepository) DeleteByKeyPairID(ctx context.Context, keyPairID string) error {
	result := r.db.WithContext(ctx).Where("key_pair_id = ?", keyPairID).Delete(&models.KeyModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete key pair: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: key pair %s", keys.ErrKeyNotFound, keyPairID)
	}

	r.logger.Info("Deleted key pair with id ", keyPairID)
	return nil
}
