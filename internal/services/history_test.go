package services

import (
	"context"
	"testing"

	"github.com/yungbote/catalog-backend/internal/types"
)

func TestHistoryFeedJoinsLiveProducts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	view := mustCreate(t, env, baseInput())
	if _, err := env.products.Update(ctx, view.ID, UpdateProductInput{Price: strptr("55.00")}); err != nil {
		t.Fatalf("update: %v", err)
	}

	feed, err := env.history.ListHistory(ctx, 1, 50)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(feed.Entries) != 2 {
		t.Fatalf("expected created + updated rows, got %d", len(feed.Entries))
	}
	// Newest first.
	if feed.Entries[0].Action != types.HistoryActionUpdated {
		t.Fatalf("first entry = %q, want updated", feed.Entries[0].Action)
	}
	for _, entry := range feed.Entries {
		if entry.Product == nil {
			t.Fatal("entry missing product ref")
		}
		if entry.Product.Deleted {
			t.Fatal("live product flagged deleted")
		}
		if entry.Product.Description != "Distribution Board" || entry.Product.Brand != "ABB" {
			t.Fatalf("product ref = %+v", entry.Product)
		}
	}
}

func TestHistoryFeedRendersDeletedProductsFromSnapshot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	view := mustCreate(t, env, baseInput())
	if err := env.products.Delete(ctx, view.ID, nil); err != nil {
		t.Fatalf("delete: %v", err)
	}

	feed, err := env.history.ListHistory(ctx, 1, 50)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(feed.Entries) != 2 {
		t.Fatalf("expected created + deleted rows, got %d", len(feed.Entries))
	}
	deletedEntry := feed.Entries[0]
	if deletedEntry.Action != types.HistoryActionDeleted {
		t.Fatalf("first entry = %q, want deleted", deletedEntry.Action)
	}
	if deletedEntry.Product == nil || !deletedEntry.Product.Deleted {
		t.Fatalf("deleted product ref = %+v", deletedEntry.Product)
	}
	if deletedEntry.Product.Description != "Distribution Board" || deletedEntry.Product.Brand != "ABB" {
		t.Fatalf("snapshot fields missing: %+v", deletedEntry.Product)
	}
}

func TestHistoryFeedUsesDeletionSnapshotForEarlierEntries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	view := mustCreate(t, env, baseInput())
	if _, err := env.products.Update(ctx, view.ID, UpdateProductInput{Brand: strptr("Schneider")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := env.products.Delete(ctx, view.ID, nil); err != nil {
		t.Fatalf("delete: %v", err)
	}

	feed, err := env.history.ListHistory(ctx, 1, 50)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(feed.Entries) != 3 {
		t.Fatalf("expected created + updated + deleted rows, got %d", len(feed.Entries))
	}
	// Every entry, including the updated one whose changes payload is a
	// field diff, renders from the deletion snapshot.
	for _, entry := range feed.Entries {
		if entry.Product == nil || !entry.Product.Deleted {
			t.Fatalf("%s entry ref = %+v", entry.Action, entry.Product)
		}
		if entry.Product.Description != "Distribution Board" || entry.Product.Brand != "Schneider" {
			t.Fatalf("%s entry ref = %+v", entry.Action, entry.Product)
		}
	}
}

func TestHistoryFeedPagination(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		input := baseInput()
		input.Size = input.Size + string(rune('a'+i))
		mustCreate(t, env, input)
	}

	feed, err := env.history.ListHistory(ctx, 1, 2)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(feed.Entries) != 2 {
		t.Fatalf("page size = %d, want 2", len(feed.Entries))
	}
	if feed.Pagination.Total != 3 || feed.Pagination.TotalPages != 2 {
		t.Fatalf("pagination = %+v", feed.Pagination)
	}

	second, err := env.history.ListHistory(ctx, 2, 2)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(second.Entries) != 1 {
		t.Fatalf("second page size = %d, want 1", len(second.Entries))
	}
}

func TestHistoryAttributesActor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	input := baseInput()
	input.UserID = strptr("admin")
	view := mustCreate(t, env, input)

	entries, err := env.history.GetProductHistory(ctx, view.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 1 || entries[0].UserID == nil || *entries[0].UserID != "admin" {
		t.Fatalf("actor not recorded: %+v", entries)
	}
}
