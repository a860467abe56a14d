package services

import (
	"context"
	"testing"
)

func TestAnalyticsEmptyCatalog(t *testing.T) {
	env := newTestEnv(t)
	data, err := env.analytics.Get(context.Background())
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if data.TotalProducts != 0 || data.TotalDrawings != 0 {
		t.Fatalf("expected zero totals, got %+v", data)
	}
	if data.AverageDrawingsPerProduct != 0 {
		t.Fatalf("average should be 0 for an empty catalog, got %v", data.AverageDrawingsPerProduct)
	}
	if len(data.TopBrands) != 0 {
		t.Fatalf("top brands should be empty, got %v", data.TopBrands)
	}
}

func TestAnalyticsRollups(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := baseInput()
	first.Brand = "ABB"
	first.Files = makeFileHeaders(t, map[string][]byte{
		"a.pdf": []byte("a"),
		"b.png": []byte("b"),
	})
	mustCreate(t, env, first)

	second := baseInput()
	second.Brand = "ABB"
	second.Size = "600x800"
	mustCreate(t, env, second)

	third := baseInput()
	third.Brand = "Schneider"
	third.Size = "800x1000"
	mustCreate(t, env, third)

	data, err := env.analytics.Get(ctx)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}

	if data.TotalProducts != 3 {
		t.Fatalf("totalProducts = %d, want 3", data.TotalProducts)
	}
	if data.TotalDrawings != 2 {
		t.Fatalf("totalDrawings = %d, want 2", data.TotalDrawings)
	}
	if data.RecentProducts != 3 {
		t.Fatalf("recentProducts = %d, want 3", data.RecentProducts)
	}
	// 2 drawings over 3 products, rounded to 2 decimals.
	if data.AverageDrawingsPerProduct != 0.67 {
		t.Fatalf("averageDrawingsPerProduct = %v, want 0.67", data.AverageDrawingsPerProduct)
	}

	if len(data.ProductsByBrand) != 2 {
		t.Fatalf("productsByBrand = %+v", data.ProductsByBrand)
	}
	if data.ProductsByBrand[0].Value != "ABB" || data.ProductsByBrand[0].Count != 2 {
		t.Fatalf("expected ABB first with count 2, got %+v", data.ProductsByBrand[0])
	}
	if len(data.TopBrands) != 2 || data.TopBrands[0].Value != "ABB" {
		t.Fatalf("topBrands = %+v", data.TopBrands)
	}
	if len(data.ProductsByBreakers) != 1 || data.ProductsByBreakers[0].Count != 3 {
		t.Fatalf("productsByBreakers = %+v", data.ProductsByBreakers)
	}
}

func TestAnalyticsTopBrandsCappedAtFive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	brands := []string{"A", "B", "C", "D", "E", "F", "G"}
	for i, brand := range brands {
		input := baseInput()
		input.Brand = brand
		input.Size = input.Size + string(rune('a'+i))
		mustCreate(t, env, input)
	}

	data, err := env.analytics.Get(ctx)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if len(data.ProductsByBrand) != 7 {
		t.Fatalf("productsByBrand = %d entries, want 7", len(data.ProductsByBrand))
	}
	if len(data.TopBrands) != 5 {
		t.Fatalf("topBrands = %d entries, want 5", len(data.TopBrands))
	}
}
