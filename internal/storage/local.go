package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"github.com/yungbote/catalog-backend/internal/platform/logger"
)

// localStore writes files under root/<productID>/<timestamp>_<name>. Keys
// are the path relative to root, always forward-slashed.
type localStore struct {
	log  *logger.Logger
	root string
}

func NewLocalStore(log *logger.Logger, root string) (FileStore, error) {
	storeLog := log.With("store", "LocalStore")
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %q: %w", root, err)
	}
	return &localStore{log: storeLog, root: root}, nil
}

func (s *localStore) Put(ctx context.Context, productID int64, filename string, file io.Reader) (string, error) {
	dir := filepath.Join(s.root, strconv.FormatInt(productID, 10))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create product dir: %w", err)
	}
	stored := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), filename)
	dst, err := os.Create(filepath.Join(dir, stored))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	key := path.Join(strconv.FormatInt(productID, 10), stored)
	s.log.Debug("Stored file locally", "key", key)
	return key, nil
}

func (s *localStore) ResolveURL(ctx context.Context, key string) (string, error) {
	return "/uploads/" + key, nil
}

func (s *localStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

func (s *localStore) DeletePrefix(ctx context.Context, productID int64) error {
	dir := filepath.Join(s.root, strconv.FormatInt(productID, 10))
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove dir %q: %w", dir, err)
	}
	return nil
}
