package services

import (
	"bytes"
	"context"
	"strconv"
	"testing"

	"github.com/xuri/excelize/v2"
)

func seedExportProducts(t *testing.T, env *testEnv) (*ProductView, *ProductView, *ProductView) {
	t.Helper()
	first := baseInput()
	first.Brand = "ABB"
	a := mustCreate(t, env, first)

	second := baseInput()
	second.Brand = "Schneider"
	second.Size = "600x800"
	second.Price = nil
	b := mustCreate(t, env, second)

	third := baseInput()
	third.Brand = "ABB"
	third.Size = "800x1000"
	c := mustCreate(t, env, third)
	return a, b, c
}

func TestExportExcelProducesWorkbook(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, b, _ := seedExportProducts(t, env)

	data, filename, err := env.export.ExportExcel(ctx, ExportFilter{})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if filename == "" {
		t.Fatal("expected a filename")
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Products")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want header + 3 products", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][1] != "Description" || rows[0][9] != "Created At" {
		t.Fatalf("header = %v", rows[0])
	}

	// The product without a price renders N/A.
	foundNA := false
	for _, row := range rows[1:] {
		if row[0] == strconv.FormatInt(b.ID, 10) && row[7] == "N/A" {
			foundNA = true
		}
	}
	if !foundNA {
		t.Fatal("expected N/A price for the product without one")
	}
}

func TestExportExcelFiltersByIDs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a, _, c := seedExportProducts(t, env)

	data, _, err := env.export.ExportExcel(ctx, ExportFilter{
		Brand: "schneider",
		IDs:   []int64{a.ID, c.ID},
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Products")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	// The id list wins over the brand filter.
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2 selected products", len(rows))
	}
}

func TestExportExcelFiltersByBrand(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedExportProducts(t, env)

	data, _, err := env.export.ExportExcel(ctx, ExportFilter{Brand: " ABB "})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Products")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2 ABB products", len(rows))
	}
	for _, row := range rows[1:] {
		if row[4] != "ABB" {
			t.Fatalf("unexpected brand %q in filtered export", row[4])
		}
	}
}

func TestExportPDFProducesDocument(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seedExportProducts(t, env)

	data, filename, err := env.export.ExportPDF(ctx, ExportFilter{})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if filename == "" {
		t.Fatal("expected a filename")
	}
	if len(data) == 0 || !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF (%d bytes)", len(data))
	}
}
