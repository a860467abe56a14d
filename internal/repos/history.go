package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/catalog-backend/internal/platform/logger"
	"github.com/yungbote/catalog-backend/internal/types"
)

type HistoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entries []*types.ProductHistory) error
	GetByProductID(ctx context.Context, tx *gorm.DB, productID int64) ([]*types.ProductHistory, error)
	GetDeletedByProductIDs(ctx context.Context, tx *gorm.DB, productIDs []int64) ([]*types.ProductHistory, error)
	List(ctx context.Context, tx *gorm.DB, page, limit int) ([]*types.ProductHistory, int64, error)
}

type historyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHistoryRepo(db *gorm.DB, baseLog *logger.Logger) HistoryRepo {
	repoLog := baseLog.With("repo", "HistoryRepo")
	return &historyRepo{db: db, log: repoLog}
}

func (r *historyRepo) Create(ctx context.Context, tx *gorm.DB, entries []*types.ProductHistory) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(entries) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).Create(&entries).Error; err != nil {
		return err
	}
	return nil
}

func (r *historyRepo) GetByProductID(ctx context.Context, tx *gorm.DB, productID int64) ([]*types.ProductHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ProductHistory
	if err := transaction.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *historyRepo) GetDeletedByProductIDs(ctx context.Context, tx *gorm.DB, productIDs []int64) ([]*types.ProductHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ProductHistory
	if len(productIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("product_id IN ? AND action = ?", productIDs, types.HistoryActionDeleted).
		Order("created_at DESC").
		Order("id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *historyRepo) List(ctx context.Context, tx *gorm.DB, page, limit int) ([]*types.ProductHistory, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var total int64
	if err := transaction.WithContext(ctx).
		Model(&types.ProductHistory{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []*types.ProductHistory
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}
