package storage

import (
	"bytes"
	"context"
	"io"
	"path"
	"strings"

	"github.com/yungbote/catalog-backend/internal/platform/logger"
)

// hybridStore routes by extension: dwg files stay on local disk, the
// browser-viewable formats go to the bucket. Unknown extensions try the
// bucket first and fall back to disk.
type hybridStore struct {
	log   *logger.Logger
	local FileStore
	gcs   FileStore
}

func NewHybridStore(log *logger.Logger, local, gcs FileStore) FileStore {
	storeLog := log.With("store", "HybridStore")
	return &hybridStore{log: storeLog, local: local, gcs: gcs}
}

func (s *hybridStore) Put(ctx context.Context, productID int64, filename string, file io.Reader) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	switch ext {
	case "dwg":
		return s.local.Put(ctx, productID, filename, file)
	case "pdf", "jpg", "jpeg", "png":
		return s.gcs.Put(ctx, productID, filename, file)
	}
	// Unknown extension: buffer so the fallback can replay the content.
	buf, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	key, err := s.gcs.Put(ctx, productID, filename, bytes.NewReader(buf))
	if err == nil {
		return key, nil
	}
	s.log.Warn("Bucket upload failed, falling back to local disk", "filename", filename, "error", err)
	return s.local.Put(ctx, productID, filename, bytes.NewReader(buf))
}

func (s *hybridStore) ResolveURL(ctx context.Context, key string) (string, error) {
	if IsGCSKey(key) {
		return s.gcs.ResolveURL(ctx, key)
	}
	return s.local.ResolveURL(ctx, key)
}

func (s *hybridStore) Delete(ctx context.Context, key string) error {
	if IsGCSKey(key) {
		return s.gcs.Delete(ctx, key)
	}
	return s.local.Delete(ctx, key)
}

func (s *hybridStore) DeletePrefix(ctx context.Context, productID int64) error {
	if err := s.gcs.DeletePrefix(ctx, productID); err != nil {
		return err
	}
	return s.local.DeletePrefix(ctx, productID)
}
