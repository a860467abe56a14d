package repos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/catalog-backend/internal/platform/logger"
	"github.com/yungbote/catalog-backend/internal/types"
)

// ListFilter narrows the paged product listing. Search is an OR substring
// across brand/description/size/breakers and takes precedence over the
// individual field filters when both are present.
type ListFilter struct {
	Search      string
	Brand       string
	Description string
	Size        string
	Breakers    string
	Page        int
	Limit       int
}

// FieldCount is one row of a group-by rollup.
type FieldCount struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

type ProductRepo interface {
	Create(ctx context.Context, tx *gorm.DB, product *types.Product) error
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Product, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []int64) ([]*types.Product, error)
	List(ctx context.Context, tx *gorm.DB, filter ListFilter) ([]*types.Product, int64, error)
	FindByNormalizedFields(ctx context.Context, tx *gorm.DB, fields map[string]string) ([]*types.Product, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id int64, updates map[string]interface{}) error
	UpdateFieldsByIDs(ctx context.Context, tx *gorm.DB, ids []int64, updates map[string]interface{}) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, id int64) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []int64) (int64, error)
	CountAll(ctx context.Context, tx *gorm.DB) (int64, error)
	CountCreatedSince(ctx context.Context, tx *gorm.DB, days int) (int64, error)
	GroupByField(ctx context.Context, tx *gorm.DB, column string) ([]FieldCount, error)
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	repoLog := baseLog.With("repo", "ProductRepo")
	return &productRepo{db: db, log: repoLog}
}

var normalizedColumns = map[string]bool{
	"brand":        true,
	"breakers":     true,
	"description":  true,
	"size":         true,
	"ip_enclosure": true,
	"pole":         true,
}

var groupableColumns = map[string]bool{
	"brand":       true,
	"description": true,
	"breakers":    true,
}

func (r *productRepo) Create(ctx context.Context, tx *gorm.DB, product *types.Product) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Omit("Drawings").Create(product).Error; err != nil {
		return err
	}
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Product
	if err := transaction.WithContext(ctx).
		Preload("Drawings").
		Where("id = ?", id).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *productRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []int64) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Product
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Drawings").
		Where("id IN ?", ids).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *productRepo) List(ctx context.Context, tx *gorm.DB, filter ListFilter) ([]*types.Product, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).Model(&types.Product{})
	query = applyListFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []*types.Product
	if err := query.
		Preload("Drawings").
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// likeEscaper neutralizes LIKE metacharacters so user input matches
// literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}

func applyListFilter(query *gorm.DB, filter ListFilter) *gorm.DB {
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		return query.Where(
			`LOWER(brand) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(size) LIKE ? ESCAPE '\' OR LOWER(breakers) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern, pattern,
		)
	}
	if filter.Brand != "" {
		query = query.Where(`LOWER(brand) LIKE ? ESCAPE '\'`, likePattern(filter.Brand))
	}
	if filter.Description != "" {
		query = query.Where(`LOWER(description) LIKE ? ESCAPE '\'`, likePattern(filter.Description))
	}
	if filter.Size != "" {
		query = query.Where(`LOWER(size) LIKE ? ESCAPE '\'`, likePattern(filter.Size))
	}
	if filter.Breakers != "" {
		query = query.Where(`LOWER(breakers) LIKE ? ESCAPE '\'`, likePattern(filter.Breakers))
	}
	return query
}

func (r *productRepo) FindByNormalizedFields(ctx context.Context, tx *gorm.DB, fields map[string]string) ([]*types.Product, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).Model(&types.Product{})
	for column, value := range fields {
		if !normalizedColumns[column] {
			return nil, fmt.Errorf("column %q cannot be matched", column)
		}
		query = query.Where(fmt.Sprintf("LOWER(TRIM(%s)) = ?", column), value)
	}

	var results []*types.Product
	if err := query.
		Preload("Drawings").
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *productRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id int64, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(updates) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.Product{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return err
	}
	return nil
}

func (r *productRepo) UpdateFieldsByIDs(ctx context.Context, tx *gorm.DB, ids []int64, updates map[string]interface{}) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 || len(updates) == 0 {
		return 0, nil
	}

	result := transaction.WithContext(ctx).
		Model(&types.Product{}).
		Where("id IN ?", ids).
		Updates(updates)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *productRepo) Delete(ctx context.Context, tx *gorm.DB, id int64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Product{}).Error; err != nil {
		return err
	}
	return nil
}

func (r *productRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []int64) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return 0, nil
	}

	result := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&types.Product{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *productRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Product{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *productRepo) CountCreatedSince(ctx context.Context, tx *gorm.DB, days int) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Product{}).
		Where("created_at >= ?", time.Now().AddDate(0, 0, -days)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *productRepo) GroupByField(ctx context.Context, tx *gorm.DB, column string) ([]FieldCount, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if !groupableColumns[column] {
		return nil, fmt.Errorf("column %q cannot be grouped", column)
	}

	var results []FieldCount
	if err := transaction.WithContext(ctx).
		Model(&types.Product{}).
		Select(fmt.Sprintf("%s AS value, COUNT(*) AS count", column)).
		Group(column).
		Order("count DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
