package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/catalog-backend/internal/platform/apierr"
	"github.com/yungbote/catalog-backend/internal/platform/logger"
	"github.com/yungbote/catalog-backend/internal/repos"
	"github.com/yungbote/catalog-backend/internal/types"
)

// FieldChange is one field's before/after pair inside an update.
type FieldChange struct {
	Old *string `json:"old"`
	New *string `json:"new"`
}

// HistoryProductRef is the product summary joined onto a feed entry. For
// products that no longer exist it is reconstructed from the entry's
// changes snapshot and flagged deleted.
type HistoryProductRef struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Brand       string `json:"brand"`
	Deleted     bool   `json:"deleted"`
}

type HistoryEntry struct {
	*types.ProductHistory
	Product *HistoryProductRef `json:"product"`
}

type HistoryFeed struct {
	Entries    []*HistoryEntry `json:"history"`
	Pagination Pagination      `json:"pagination"`
}

type HistoryService interface {
	RecordCreated(ctx context.Context, tx *gorm.DB, product *types.Product, userID *string) error
	RecordUpdated(ctx context.Context, tx *gorm.DB, productID int64, changes map[string]FieldChange, userID *string) error
	RecordDeleted(ctx context.Context, tx *gorm.DB, product *types.Product, userID *string) error
	GetProductHistory(ctx context.Context, productID int64) ([]*HistoryEntry, error)
	ListHistory(ctx context.Context, page, limit int) (*HistoryFeed, error)
}

type historyService struct {
	db          *gorm.DB
	log         *logger.Logger
	historyRepo repos.HistoryRepo
	productRepo repos.ProductRepo
}

func NewHistoryService(db *gorm.DB, log *logger.Logger, historyRepo repos.HistoryRepo, productRepo repos.ProductRepo) HistoryService {
	serviceLog := log.With("service", "HistoryService")
	return &historyService{
		db:          db,
		log:         serviceLog,
		historyRepo: historyRepo,
		productRepo: productRepo,
	}
}

func (hs *historyService) RecordCreated(ctx context.Context, tx *gorm.DB, product *types.Product, userID *string) error {
	snapshot, err := productSnapshot(product)
	if err != nil {
		return err
	}
	entry := &types.ProductHistory{
		ProductID: product.ID,
		Action:    types.HistoryActionCreated,
		UserID:    userID,
		Changes:   snapshot,
	}
	return hs.historyRepo.Create(ctx, tx, []*types.ProductHistory{entry})
}

func (hs *historyService) RecordUpdated(ctx context.Context, tx *gorm.DB, productID int64, changes map[string]FieldChange, userID *string) error {
	if len(changes) == 0 {
		return nil
	}
	raw, err := json.Marshal(changes)
	if err != nil {
		return fmt.Errorf("marshal changes: %w", err)
	}
	// One row per changed field, each carrying the full changes map.
	entries := make([]*types.ProductHistory, 0, len(changes))
	for field, change := range changes {
		f := field
		entries = append(entries, &types.ProductHistory{
			ProductID: productID,
			Action:    types.HistoryActionUpdated,
			Field:     &f,
			OldValue:  change.Old,
			NewValue:  change.New,
			UserID:    userID,
			Changes:   datatypes.JSON(raw),
		})
	}
	return hs.historyRepo.Create(ctx, tx, entries)
}

func (hs *historyService) RecordDeleted(ctx context.Context, tx *gorm.DB, product *types.Product, userID *string) error {
	snapshot, err := productSnapshot(product)
	if err != nil {
		return err
	}
	entry := &types.ProductHistory{
		ProductID: product.ID,
		Action:    types.HistoryActionDeleted,
		UserID:    userID,
		Changes:   snapshot,
	}
	return hs.historyRepo.Create(ctx, tx, []*types.ProductHistory{entry})
}

func (hs *historyService) GetProductHistory(ctx context.Context, productID int64) ([]*HistoryEntry, error) {
	rows, err := hs.historyRepo.GetByProductID(ctx, nil, productID)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, apierr.CodeInternal, fmt.Errorf("load product history: %w", err))
	}
	return hs.joinProducts(ctx, rows)
}

func (hs *historyService) ListHistory(ctx context.Context, page, limit int) (*HistoryFeed, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	rows, total, err := hs.historyRepo.List(ctx, nil, page, limit)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, apierr.CodeInternal, fmt.Errorf("load history feed: %w", err))
	}
	entries, err := hs.joinProducts(ctx, rows)
	if err != nil {
		return nil, err
	}
	return &HistoryFeed{
		Entries:    entries,
		Pagination: NewPagination(page, limit, total),
	}, nil
}

func (hs *historyService) joinProducts(ctx context.Context, rows []*types.ProductHistory) ([]*HistoryEntry, error) {
	idSet := make(map[int64]bool, len(rows))
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		if !idSet[row.ProductID] {
			idSet[row.ProductID] = true
			ids = append(ids, row.ProductID)
		}
	}
	products, err := hs.productRepo.GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, apierr.CodeInternal, fmt.Errorf("join history products: %w", err))
	}
	byID := make(map[int64]*types.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	// Entries for products that no longer exist render from the snapshot
	// captured at deletion time, not from their own changes payload (which
	// for updated rows is a field diff, not a product).
	missing := make([]int64, 0)
	for _, id := range ids {
		if byID[id] == nil {
			missing = append(missing, id)
		}
	}
	snapshots := make(map[int64]*HistoryProductRef, len(missing))
	if len(missing) > 0 {
		deletedRows, err := hs.historyRepo.GetDeletedByProductIDs(ctx, nil, missing)
		if err != nil {
			return nil, apierr.New(http.StatusInternalServerError, apierr.CodeInternal, fmt.Errorf("load deletion snapshots: %w", err))
		}
		// Rows are newest first; the latest deletion wins.
		for _, dr := range deletedRows {
			if _, ok := snapshots[dr.ProductID]; !ok {
				snapshots[dr.ProductID] = refFromSnapshot(dr)
			}
		}
	}

	entries := make([]*HistoryEntry, 0, len(rows))
	for _, row := range rows {
		entry := &HistoryEntry{ProductHistory: row}
		if p, ok := byID[row.ProductID]; ok {
			entry.Product = &HistoryProductRef{ID: p.ID, Description: p.Description, Brand: p.Brand}
		} else if ref, ok := snapshots[row.ProductID]; ok {
			entry.Product = ref
		} else {
			entry.Product = refFromSnapshot(row)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func refFromSnapshot(row *types.ProductHistory) *HistoryProductRef {
	ref := &HistoryProductRef{ID: row.ProductID, Deleted: true}
	if len(row.Changes) == 0 {
		return ref
	}
	var snapshot map[string]interface{}
	if err := json.Unmarshal(row.Changes, &snapshot); err != nil {
		return ref
	}
	if v, ok := snapshot["description"].(string); ok {
		ref.Description = v
	}
	if v, ok := snapshot["brand"].(string); ok {
		ref.Brand = v
	}
	return ref
}

func productSnapshot(product *types.Product) (datatypes.JSON, error) {
	raw, err := json.Marshal(product)
	if err != nil {
		return nil, fmt.Errorf("marshal product snapshot: %w", err)
	}
	return datatypes.JSON(raw), nil
}
