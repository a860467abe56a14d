package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/catalog-backend/internal/normalization"
	"github.com/yungbote/catalog-backend/internal/platform/apierr"
	"github.com/yungbote/catalog-backend/internal/platform/logger"
	"github.com/yungbote/catalog-backend/internal/repos"
	"github.com/yungbote/catalog-backend/internal/storage"
	"github.com/yungbote/catalog-backend/internal/types"
	"github.com/yungbote/catalog-backend/internal/upload"
)

type CreateProductInput struct {
	Description string
	Size        string
	Breakers    string
	Brand       string
	IPEnclosure *string
	Pole        *string
	Price       *string
	Files       []*multipart.FileHeader
	UserID      *string
}

type UpdateProductInput struct {
	Description *string
	Size        *string
	Breakers    *string
	Brand       *string
	IPEnclosure *string
	Pole        *string
	Price       *string
	Files       []*multipart.FileHeader
	UserID      *string
}

type BulkUpdateInput struct {
	Brand       *string
	Description *string
	Price       *string
}

type ProductPage struct {
	Products   []*ProductView `json:"products"`
	Pagination Pagination     `json:"pagination"`
}

// DuplicateProductsError carries the conflicting products so the response
// can show which rows collided.
type DuplicateProductsError struct {
	Products []*ProductView
}

func (e *DuplicateProductsError) Error() string {
	return "a product with the same specification already exists"
}

type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*ProductView, error)
	Get(ctx context.Context, id int64) (*ProductView, error)
	List(ctx context.Context, filter repos.ListFilter) (*ProductPage, error)
	Update(ctx context.Context, id int64, input UpdateProductInput) (*ProductView, error)
	Delete(ctx context.Context, id int64, userID *string) error
	BulkDelete(ctx context.Context, ids []int64, userID *string) (int64, error)
	BulkUpdate(ctx context.Context, ids []int64, input BulkUpdateInput, userID *string) (int64, error)
	CheckDuplicate(ctx context.Context, brand, breakers, description, size string) ([]*ProductView, error)
}

type productService struct {
	db             *gorm.DB
	log            *logger.Logger
	productRepo    repos.ProductRepo
	drawingRepo    repos.DrawingRepo
	historyService HistoryService
	store          storage.FileStore
	limits         upload.Limits
}

func NewProductService(
	db *gorm.DB,
	log *logger.Logger,
	productRepo repos.ProductRepo,
	drawingRepo repos.DrawingRepo,
	historyService HistoryService,
	store storage.FileStore,
	limits upload.Limits,
) ProductService {
	serviceLog := log.With("service", "ProductService")
	return &productService{
		db:             db,
		log:            serviceLog,
		productRepo:    productRepo,
		drawingRepo:    drawingRepo,
		historyService: historyService,
		store:          store,
		limits:         limits,
	}
}

func (ps *productService) Create(ctx context.Context, input CreateProductInput) (*ProductView, error) {
	if input.Description == "" || input.Size == "" || input.Breakers == "" || input.Brand == "" {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeValidation,
			fmt.Errorf("description, size, breakers and brand are required"))
	}
	if err := upload.ValidateFiles(input.Files, ps.limits); err != nil {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeValidation, err)
	}

	conflicts, err := ps.CheckDuplicate(ctx, input.Brand, input.Breakers, input.Description, input.Size)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, apierr.New(http.StatusConflict, apierr.CodeDuplicate, &DuplicateProductsError{Products: conflicts})
	}

	product := &types.Product{
		Description: input.Description,
		Size:        input.Size,
		Breakers:    input.Breakers,
		Brand:       input.Brand,
		IPEnclosure: input.IPEnclosure,
		Pole:        input.Pole,
		Price:       input.Price,
	}
	if err := ps.productRepo.Create(ctx, nil, product); err != nil {
		return nil, apierr.New(http.StatusInternalServerError, apierr.CodeInternal, fmt.Errorf("create product: %w", err))
	}

	if err := ps.storeFiles(ctx, product.ID, input.Files); err != nil {
		return nil, err
	}

	if hErr := ps.historyService.RecordCreated(ctx, nil, product, input.UserID); hErr != nil {
		ps.log.Warn("Failed to record created history", "product_id", product.ID, "error", hErr)
	}

	return ps.Get(ctx, product.ID)
}

// storeFiles uploads and records every file concurrently. A drawing row is
// only written after its object is stored; any store failure fails the call.
func (ps *productService) storeFiles(ctx context.Context, productID int64, files []*multipart.FileHeader) error {
	if len(files) == 0 {
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, fh := range files {
		fh := fh
		g.Go(func() error {
			src, err := fh.Open()
			if err != nil {
				return apierr.New(http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("open upload %q: %w", fh.Filename, err))
			}
			defer src.Close()

			name := upload.SanitizeFilename(fh.Filename)
			key, err := ps.store.Put(gctx, productID, name, src)
			if err != nil {
				return apierr.New(http.StatusInternalServerError, apierr.CodeStorage, fmt.Errorf("store %q: %w", name, err))
			}
			drawing := &types.Drawing{
				ProductID: productID,
				FilePath:  key,
				FileType:  upload.Ext(name),
			}
			if err := ps.drawingRepo.Create(gctx, nil, drawing); err != nil {
				return apierr.New(http.StatusInternalServerError, apierr.CodeInternal, fmt.Errorf("record drawing %q: %w", name, err))
			}
			return nil
		})
	}
	return g.Wait()
}

func (ps *productService) Get(ctx context.Context, id int64) (*ProductView, error) {
	product, err := ps.productRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, apierr.CodeInternal, fmt.Errorf("load product: %w", err))
	}
	if product == nil {
		return nil, apierr.New(http.StatusNotFound, apierr.CodeNotFound, fmt.Errorf("product %d not found", id))
	}
	return buildProductView(ctx, ps.store, product)
}

func (ps *productService) List(ctx context.Context, filter repos.ListFilter) (*ProductPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	filter.Search = normalization.ParseInputString(filter.Search)
	filter.Brand = normalization.ParseInputString(filter.Brand)
	filter.Description = normalization.ParseInputString(filter.Description)
	filter.Size = normalization.ParseInputString(filter.Size)
	filter.Breakers = normalization.ParseInputString(filter.Breakers)

	products, total, err := ps.productRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, apierr.CodeInternal, fmt.Errorf("list products: %w", err))
	}
	views, err := buildProductViews(ctx, ps.store, products)
	if err != nil {
		return nil, err
	}
	return &ProductPage{
		Products:   views,
		Pagination: NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

func (ps *productService) Update(ctx context.Context, id int64, input UpdateProductInput) (*ProductView, error) {
	existing, err := ps.productRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, apierr.CodeInternal, fmt.Errorf("load product: %w", err))
	}
	if existing == nil {
		return nil, apierr.New(http.StatusNotFound, apierr.CodeNotFound, fmt.Errorf("product %d not found", id))
	}
	if err := upload.ValidateFiles(input.Files, ps.limits); err != nil {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeValidation, err)
	}

	updates := map[string]interface{}{}
	changes := map[string]FieldChange{}
	applyString := func(column string, current string, next *string) {
		if next == nil || *next == current {
			return
		}
		updates[column] = *next
		old := current
		changes[column] = FieldChange{Old: &old, New: next}
	}
	applyPtr := func(column string, current *string, next *string) {
		if next == nil {
			return
		}
		// A submitted empty value clears the field.
		if *next == "" {
			if current == nil {
				return
			}
			updates[column] = nil
			changes[column] = FieldChange{Old: current, New: nil}
			return
		}
		if current != nil && *current == *next {
			return
		}
		updates[column] = *next
		changes[column] = FieldChange{Old: current, New: next}
	}
	applyString("description", existing.Description, input.Description)
	applyString("size", existing.Size, input.Size)
	applyString("breakers", existing.Breakers, input.Breakers)
	applyString("brand", existing.Brand, input.Brand)
	applyPtr("ip_enclosure", existing.IPEnclosure, input.IPEnclosure)
	applyPtr("pole", existing.Pole, input.Pole)
	applyPtr("price", existing.Price, input.Price)

	if err := ps.productRepo.UpdateFields(ctx, nil, id, updates); err != nil {
		return nil, apierr.New(http.StatusInternalServerError, apierr.CodeInternal, fmt.Errorf("update product: %w", err))
	}

	if err := ps.storeFiles(ctx, id, input.Files); err != nil {
		return nil, err
	}

	if hErr := ps.historyService.RecordUpdated(ctx, nil, id, changes, input.UserID); hErr != nil {
		ps.log.Warn("Failed to record updated history", "product_id", id, "error", hErr)
	}

	return ps.Get(ctx, id)
}

func (ps *productService) Delete(ctx context.Context, id int64, userID *string) error {
	existing, err := ps.productRepo.GetByID(ctx, nil, id)
	if err != nil {
		return apierr.New(http.StatusInternalServerError, apierr.CodeInternal, fmt.Errorf("load product: %w", err))
	}
	if existing == nil {
		return apierr.New(http.StatusNotFound, apierr.CodeNotFound, fmt.Errorf("product %d not found", id))
	}
	return ps.deleteOne(ctx, existing, userID)
}

func (ps *productService) deleteOne(ctx context.Context, product *types.Product, userID *string) error {
	if hErr := ps.historyService.RecordDeleted(ctx, nil, product, userID); hErr != nil {
		ps.log.Warn("Failed to record deleted history", "product_id", product.ID, "error", hErr)
	}

	// Storage cleanup is best-effort: a missing or unreachable object must
	// not keep the row alive.
	for _, drawing := range product.Drawings {
		if sErr := ps.store.Delete(ctx, drawing.FilePath); sErr != nil {
			ps.log.Warn("Failed to delete stored drawing", "product_id", product.ID, "key", drawing.FilePath, "error", sErr)
		}
	}
	if sErr := ps.store.DeletePrefix(ctx, product.ID); sErr != nil {
		ps.log.Warn("Failed to clean storage residue", "product_id", product.ID, "error", sErr)
	}

	if err := ps.drawingRepo.DeleteByProductIDs(ctx, nil, []int64{product.ID}); err != nil {
		return apierr.New(http.StatusInternalServerError, apierr.CodeInternal, fmt.Errorf("delete drawings: %w", err))
	}
	if err := ps.productRepo.Delete(ctx, nil, product.ID); err != nil {
		return apierr.New(http.StatusInternalServerError, apierr.CodeInternal, fmt.Errorf("delete product: %w", err))
	}
	return nil
}

func (ps *productService) BulkDelete(ctx context.Context, ids []int64, userID *string) (int64, error) {
	if len(ids) == 0 {
		return 0, apierr.New(http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("ids are required"))
	}
	products, err := ps.productRepo.GetByIDs(ctx, nil, ids)
	if err != nil {
		return 0, apierr.New(http.StatusInternalServerError, apierr.CodeInternal, fmt.Errorf("load products: %w", err))
	}
	var deleted int64
	for _, product := range products {
		if err := ps.deleteOne(ctx, product, userID); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

func (ps *productService) BulkUpdate(ctx context.Context, ids []int64, input BulkUpdateInput, userID *string) (int64, error) {
	if len(ids) == 0 {
		return 0, apierr.New(http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("ids are required"))
	}
	if input.Brand == nil && input.Description == nil && input.Price == nil {
		return 0, apierr.New(http.StatusBadRequest, apierr.CodeValidation,
			fmt.Errorf("at least one of brand, description or price is required"))
	}

	products, err := ps.productRepo.GetByIDs(ctx, nil, ids)
	if err != nil {
		return 0, apierr.New(http.StatusInternalServerError, apierr.CodeInternal, fmt.Errorf("load products: %w", err))
	}

	updates := map[string]interface{}{}
	if input.Brand != nil {
		updates["brand"] = *input.Brand
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}

	found := make([]int64, 0, len(products))
	for _, p := range products {
		found = append(found, p.ID)
	}
	updated, err := ps.productRepo.UpdateFieldsByIDs(ctx, nil, found, updates)
	if err != nil {
		return 0, apierr.New(http.StatusInternalServerError, apierr.CodeInternal, fmt.Errorf("bulk update products: %w", err))
	}

	for _, product := range products {
		changes := map[string]FieldChange{}
		if input.Brand != nil && *input.Brand != product.Brand {
			old := product.Brand
			changes["brand"] = FieldChange{Old: &old, New: input.Brand}
		}
		if input.Description != nil && *input.Description != product.Description {
			old := product.Description
			changes["description"] = FieldChange{Old: &old, New: input.Description}
		}
		if input.Price != nil && (product.Price == nil || *input.Price != *product.Price) {
			changes["price"] = FieldChange{Old: product.Price, New: input.Price}
		}
		if hErr := ps.historyService.RecordUpdated(ctx, nil, product.ID, changes, userID); hErr != nil {
			ps.log.Warn("Failed to record bulk update history", "product_id", product.ID, "error", hErr)
		}
	}
	return updated, nil
}

func (ps *productService) CheckDuplicate(ctx context.Context, brand, breakers, description, size string) ([]*ProductView, error) {
	fields := map[string]string{
		"brand":       normalization.ParseInputString(brand),
		"breakers":    normalization.ParseInputString(breakers),
		"description": normalization.ParseInputString(description),
		"size":        normalization.ParseInputString(size),
	}
	candidates, err := ps.productRepo.FindByNormalizedFields(ctx, nil, fields)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, apierr.CodeInternal, fmt.Errorf("check duplicates: %w", err))
	}
	return buildProductViews(ctx, ps.store, candidates)
}
