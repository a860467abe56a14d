package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/catalog-backend/internal/platform/logger"
	"github.com/yungbote/catalog-backend/internal/types"
)

type DrawingRepo interface {
	Create(ctx context.Context, tx *gorm.DB, drawing *types.Drawing) error
	GetByProductID(ctx context.Context, tx *gorm.DB, productID int64) ([]*types.Drawing, error)
	GetByProductIDs(ctx context.Context, tx *gorm.DB, productIDs []int64) ([]*types.Drawing, error)
	DeleteByProductIDs(ctx context.Context, tx *gorm.DB, productIDs []int64) error
	CountAll(ctx context.Context, tx *gorm.DB) (int64, error)
}

type drawingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDrawingRepo(db *gorm.DB, baseLog *logger.Logger) DrawingRepo {
	repoLog := baseLog.With("repo", "DrawingRepo")
	return &drawingRepo{db: db, log: repoLog}
}

func (r *drawingRepo) Create(ctx context.Context, tx *gorm.DB, drawing *types.Drawing) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(drawing).Error; err != nil {
		return err
	}
	return nil
}

func (r *drawingRepo) GetByProductID(ctx context.Context, tx *gorm.DB, productID int64) ([]*types.Drawing, error) {
	return r.GetByProductIDs(ctx, tx, []int64{productID})
}

func (r *drawingRepo) GetByProductIDs(ctx context.Context, tx *gorm.DB, productIDs []int64) ([]*types.Drawing, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Drawing
	if len(productIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *drawingRepo) DeleteByProductIDs(ctx context.Context, tx *gorm.DB, productIDs []int64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(productIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Delete(&types.Drawing{}).Error; err != nil {
		return err
	}
	return nil
}

func (r *drawingRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Drawing{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
