package services

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/yungbote/catalog-backend/internal/normalization"
	"github.com/yungbote/catalog-backend/internal/platform/apierr"
	"github.com/yungbote/catalog-backend/internal/platform/logger"
	"github.com/yungbote/catalog-backend/internal/repos"
	"github.com/yungbote/catalog-backend/internal/types"
)

const (
	exportSheetName     = "Products"
	pdfProductsPerPage  = 5
	exportTimeFormat    = "2006-01-02 15:04"
	exportPlaceholderNA = "N/A"
)

// ExportFilter selects the exported rows. An explicit id list wins over
// the brand/description filters.
type ExportFilter struct {
	Brand       string
	Description string
	IDs         []int64
}

type ExportService interface {
	ExportExcel(ctx context.Context, filter ExportFilter) ([]byte, string, error)
	ExportPDF(ctx context.Context, filter ExportFilter) ([]byte, string, error)
}

type exportService struct {
	db          *gorm.DB
	log         *logger.Logger
	productRepo repos.ProductRepo
}

func NewExportService(db *gorm.DB, log *logger.Logger, productRepo repos.ProductRepo) ExportService {
	serviceLog := log.With("service", "ExportService")
	return &exportService{
		db:          db,
		log:         serviceLog,
		productRepo: productRepo,
	}
}

func (es *exportService) selectProducts(ctx context.Context, filter ExportFilter) ([]*types.Product, error) {
	if len(filter.IDs) > 0 {
		products, err := es.productRepo.GetByIDs(ctx, nil, filter.IDs)
		if err != nil {
			return nil, apierr.New(http.StatusInternalServerError, apierr.CodeInternal, fmt.Errorf("load export products: %w", err))
		}
		return products, nil
	}
	fields := map[string]string{}
	if brand := normalization.ParseInputString(filter.Brand); brand != "" {
		fields["brand"] = brand
	}
	if description := normalization.ParseInputString(filter.Description); description != "" {
		fields["description"] = description
	}
	products, err := es.productRepo.FindByNormalizedFields(ctx, nil, fields)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, apierr.CodeInternal, fmt.Errorf("load export products: %w", err))
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return products, nil
}

func (es *exportService) ExportExcel(ctx context.Context, filter ExportFilter) ([]byte, string, error) {
	products, err := es.selectProducts(ctx, filter)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheetName)
	if err != nil {
		return nil, "", es.wrapExcel("create sheet", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, "", es.wrapExcel("drop default sheet", err)
	}

	headers := []string{"ID", "Description", "Size", "Breakers", "Brand", "IP Enclosure", "Pole", "Price", "Drawings Count", "Created At"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheetName, cell, header); err != nil {
			return nil, "", es.wrapExcel("write header", err)
		}
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
	})
	if err != nil {
		return nil, "", es.wrapExcel("create header style", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(exportSheetName, "A1", lastHeader, headerStyle); err != nil {
		return nil, "", es.wrapExcel("style header", err)
	}

	for rowIdx, product := range products {
		values := []interface{}{
			product.ID,
			product.Description,
			product.Size,
			product.Breakers,
			product.Brand,
			orNA(product.IPEnclosure),
			orNA(product.Pole),
			orNA(product.Price),
			len(product.Drawings),
			product.CreatedAt.Format(exportTimeFormat),
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(exportSheetName, cell, value); err != nil {
				return nil, "", es.wrapExcel("write row", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", es.wrapExcel("serialize workbook", err)
	}
	filename := fmt.Sprintf("products_%s.xlsx", time.Now().Format("20060102_150405"))
	es.log.Info("Excel export generated", "products", len(products))
	return buf.Bytes(), filename, nil
}

func (es *exportService) ExportPDF(ctx context.Context, filter ExportFilter) ([]byte, string, error) {
	products, err := es.selectProducts(ctx, filter)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Product Catalog")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 8, "Generated: "+time.Now().Format(exportTimeFormat))
	pdf.Ln(12)

	for i, product := range products {
		if i > 0 && i%pdfProductsPerPage == 0 {
			pdf.AddPage()
		}
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, fmt.Sprintf("#%d  %s", product.ID, product.Description))
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 10)
		lines := []string{
			"Brand: " + product.Brand,
			"Size: " + product.Size,
			"Breakers: " + product.Breakers,
			"IP Enclosure: " + orNA(product.IPEnclosure),
			"Pole: " + orNA(product.Pole),
			"Price: " + orNA(product.Price),
			"Drawings: " + strconv.Itoa(len(product.Drawings)),
			"Created: " + product.CreatedAt.Format(exportTimeFormat),
		}
		for _, line := range lines {
			pdf.Cell(0, 6, line)
			pdf.Ln(5)
		}
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", apierr.New(http.StatusInternalServerError, apierr.CodeInternal, fmt.Errorf("serialize pdf: %w", err))
	}
	filename := fmt.Sprintf("products_%s.pdf", time.Now().Format("20060102_150405"))
	es.log.Info("PDF export generated", "products", len(products))
	return buf.Bytes(), filename, nil
}

func (es *exportService) wrapExcel(op string, err error) error {
	return apierr.New(http.StatusInternalServerError, apierr.CodeInternal, fmt.Errorf("%s: %w", op, err))
}

func orNA(value *string) string {
	if value == nil || *value == "" {
		return exportPlaceholderNA
	}
	return *value
}
