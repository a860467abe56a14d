package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/yungbote/catalog-backend/internal/platform/apierr"
	"github.com/yungbote/catalog-backend/internal/storage"
	"github.com/yungbote/catalog-backend/internal/types"
)

// DrawingView is a drawing with its storage key resolved to a download URL.
type DrawingView struct {
	ID        int64  `json:"id"`
	FilePath  string `json:"filePath"`
	FileType  string `json:"fileType"`
	URL       string `json:"url"`
	CreatedAt string `json:"createdAt"`
}

// ProductView shadows the raw drawing rows with resolved views.
type ProductView struct {
	*types.Product
	Drawings []DrawingView `json:"drawings"`
}

func buildProductView(ctx context.Context, store storage.FileStore, product *types.Product) (*ProductView, error) {
	views := make([]DrawingView, 0, len(product.Drawings))
	for _, d := range product.Drawings {
		url, err := store.ResolveURL(ctx, d.FilePath)
		if err != nil {
			return nil, apierr.New(http.StatusInternalServerError, apierr.CodeStorage, fmt.Errorf("resolve drawing url: %w", err))
		}
		views = append(views, DrawingView{
			ID:        d.ID,
			FilePath:  d.FilePath,
			FileType:  d.FileType,
			URL:       url,
			CreatedAt: d.CreatedAt.Format(time.RFC3339),
		})
	}
	return &ProductView{Product: product, Drawings: views}, nil
}

func buildProductViews(ctx context.Context, store storage.FileStore, products []*types.Product) ([]*ProductView, error) {
	views := make([]*ProductView, 0, len(products))
	for _, p := range products {
		view, err := buildProductView(ctx, store, p)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
