package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/catalog-backend/internal/db"
	"github.com/yungbote/catalog-backend/internal/platform/logger"
	"github.com/yungbote/catalog-backend/internal/repos"
	"github.com/yungbote/catalog-backend/internal/upload"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// A single connection keeps the in-memory database alive and
	// serializes concurrent writers.
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("raw db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrateAll(gdb); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return gdb
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

// fakeStore is an in-memory FileStore for service tests.
type fakeStore struct {
	mu      sync.Mutex
	seq     int
	objects map[string][]byte
	deleted []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (s *fakeStore) Put(ctx context.Context, productID int64, filename string, file io.Reader) (string, error) {
	content, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	key := fmt.Sprintf("%d/%d_%s", productID, s.seq, filename)
	s.objects[key] = content
	return key, nil
}

func (s *fakeStore) ResolveURL(ctx context.Context, key string) (string, error) {
	return "/uploads/" + key, nil
}

func (s *fakeStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeStore) DeletePrefix(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := strconv.FormatInt(productID, 10) + "/"
	for key := range s.objects {
		if strings.HasPrefix(key, prefix) {
			delete(s.objects, key)
		}
	}
	return nil
}

type testEnv struct {
	db        *gorm.DB
	store     *fakeStore
	products  ProductService
	match     MatchService
	history   HistoryService
	analytics AnalyticsService
	export    ExportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb := newTestDB(t)
	log := newTestLogger(t)
	store := newFakeStore()

	productRepo := repos.NewProductRepo(gdb, log)
	drawingRepo := repos.NewDrawingRepo(gdb, log)
	historyRepo := repos.NewHistoryRepo(gdb, log)

	historyService := NewHistoryService(gdb, log, historyRepo, productRepo)
	productService := NewProductService(gdb, log, productRepo, drawingRepo, historyService, store, upload.DefaultLimits())
	return &testEnv{
		db:        gdb,
		store:     store,
		products:  productService,
		match:     NewMatchService(gdb, log, productRepo, store),
		history:   historyService,
		analytics: NewAnalyticsService(gdb, log, productRepo, drawingRepo),
		export:    NewExportService(gdb, log, productRepo),
	}
}

func strptr(s string) *string { return &s }

func makeFileHeaders(t *testing.T, files map[string][]byte) []*multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, content := range files {
		fw, err := writer.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}
	reader := multipart.NewReader(&body, writer.Boundary())
	form, err := reader.ReadForm(64 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	return form.File["files"]
}

func mustCreate(t *testing.T, env *testEnv, input CreateProductInput) *ProductView {
	t.Helper()
	view, err := env.products.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	return view
}
