package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/yungbote/catalog-backend/internal/platform/logger"
	"github.com/yungbote/catalog-backend/internal/utils"
)

// FileStore abstracts where drawing files live. Put returns an opaque
// storage key; every other operation takes that key back.
type FileStore interface {
	Put(ctx context.Context, productID int64, filename string, file io.Reader) (string, error)
	ResolveURL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
	DeletePrefix(ctx context.Context, productID int64) error
}

const (
	ProviderLocal  = "local"
	ProviderGCS    = "gcs"
	ProviderHybrid = "hybrid"
)

// NewFromEnv picks the provider once at startup from STORAGE_PROVIDER.
func NewFromEnv(log *logger.Logger) (FileStore, error) {
	provider := utils.GetEnv("STORAGE_PROVIDER", ProviderLocal, log)
	switch provider {
	case ProviderLocal:
		return NewLocalStore(log, utils.GetEnv("UPLOAD_DIR", "uploads", log))
	case ProviderGCS:
		return NewGCSStore(context.Background(), log)
	case ProviderHybrid:
		local, err := NewLocalStore(log, utils.GetEnv("UPLOAD_DIR", "uploads", log))
		if err != nil {
			return nil, err
		}
		gcs, err := NewGCSStore(context.Background(), log)
		if err != nil {
			return nil, err
		}
		return NewHybridStore(log, local, gcs), nil
	default:
		return nil, fmt.Errorf("unknown STORAGE_PROVIDER %q", provider)
	}
}
