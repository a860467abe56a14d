package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	gcstorage "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/yungbote/catalog-backend/internal/platform/logger"
)

const gcsKeyPrefix = "products/"

// gcsStore keeps drawing files in a single bucket under
// products/<productID>/<timestamp>_<name>.
type gcsStore struct {
	log           *logger.Logger
	client        *gcstorage.Client
	bucket        string
	publicBaseURL string
}

func NewGCSStore(ctx context.Context, log *logger.Logger) (FileStore, error) {
	storeLog := log.With("store", "GCSStore")

	bucketName := os.Getenv("DRAWING_GCS_BUCKET_NAME")
	if bucketName == "" {
		return nil, fmt.Errorf("missing env var DRAWING_GCS_BUCKET_NAME")
	}
	publicBaseURL := strings.TrimRight(strings.TrimSpace(os.Getenv("OBJECT_STORAGE_PUBLIC_BASE_URL")), "/")

	var opts []option.ClientOption
	if credsFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credsFile))
	}
	opts = append(opts, option.WithScopes(gcstorage.ScopeReadWrite))
	client, err := gcstorage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	storeLog.Info("Object storage initialized", "bucket", bucketName, "public_base_url", publicBaseURL)
	return &gcsStore{
		log:           storeLog,
		client:        client,
		bucket:        bucketName,
		publicBaseURL: publicBaseURL,
	}, nil
}

func (s *gcsStore) Put(ctx context.Context, productID int64, filename string, file io.Reader) (string, error) {
	key := fmt.Sprintf("%s%d/%d_%s", gcsKeyPrefix, productID, time.Now().UnixMilli(), filename)
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, file); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object %q: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize object %q: %w", key, err)
	}
	s.log.Debug("Stored file in bucket", "key", key)
	return key, nil
}

func (s *gcsStore) ResolveURL(ctx context.Context, key string) (string, error) {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key, nil
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, key), nil
}

func (s *gcsStore) Delete(ctx context.Context, key string) error {
	err := s.client.Bucket(s.bucket).Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, gcstorage.ErrObjectNotExist) {
		return fmt.Errorf("delete object %q: %w", key, err)
	}
	return nil
}

func (s *gcsStore) DeletePrefix(ctx context.Context, productID int64) error {
	prefix := gcsKeyPrefix + strconv.FormatInt(productID, 10) + "/"
	it := s.client.Bucket(s.bucket).Objects(ctx, &gcstorage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("list prefix %q: %w", prefix, err)
		}
		if err := s.Delete(ctx, attrs.Name); err != nil {
			return err
		}
	}
}

// IsGCSKey reports whether a stored key belongs to the bucket layout, as
// opposed to the local layout. The hybrid store dispatches on this.
func IsGCSKey(key string) bool {
	return strings.HasPrefix(key, gcsKeyPrefix)
}
