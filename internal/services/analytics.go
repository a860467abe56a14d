package services

import (
	"context"
	"fmt"
	"math"
	"net/http"

	"gorm.io/gorm"

	"github.com/yungbote/catalog-backend/internal/platform/apierr"
	"github.com/yungbote/catalog-backend/internal/platform/logger"
	"github.com/yungbote/catalog-backend/internal/repos"
)

const (
	recentWindowDays = 7
	topBrandCount    = 5
)

type AnalyticsData struct {
	TotalProducts             int64              `json:"totalProducts"`
	TotalDrawings             int64              `json:"totalDrawings"`
	ProductsByBrand           []repos.FieldCount `json:"productsByBrand"`
	ProductsByDescription     []repos.FieldCount `json:"productsByDescription"`
	ProductsByBreakers        []repos.FieldCount `json:"productsByBreakers"`
	RecentProducts            int64              `json:"recentProducts"`
	AverageDrawingsPerProduct float64            `json:"averageDrawingsPerProduct"`
	TopBrands                 []repos.FieldCount `json:"topBrands"`
}

type AnalyticsService interface {
	Get(ctx context.Context) (*AnalyticsData, error)
}

type analyticsService struct {
	db          *gorm.DB
	log         *logger.Logger
	productRepo repos.ProductRepo
	drawingRepo repos.DrawingRepo
}

func NewAnalyticsService(db *gorm.DB, log *logger.Logger, productRepo repos.ProductRepo, drawingRepo repos.DrawingRepo) AnalyticsService {
	serviceLog := log.With("service", "AnalyticsService")
	return &analyticsService{
		db:          db,
		log:         serviceLog,
		productRepo: productRepo,
		drawingRepo: drawingRepo,
	}
}

func (as *analyticsService) Get(ctx context.Context) (*AnalyticsData, error) {
	totalProducts, err := as.productRepo.CountAll(ctx, nil)
	if err != nil {
		return nil, as.wrap("count products", err)
	}
	totalDrawings, err := as.drawingRepo.CountAll(ctx, nil)
	if err != nil {
		return nil, as.wrap("count drawings", err)
	}
	byBrand, err := as.productRepo.GroupByField(ctx, nil, "brand")
	if err != nil {
		return nil, as.wrap("group by brand", err)
	}
	byDescription, err := as.productRepo.GroupByField(ctx, nil, "description")
	if err != nil {
		return nil, as.wrap("group by description", err)
	}
	byBreakers, err := as.productRepo.GroupByField(ctx, nil, "breakers")
	if err != nil {
		return nil, as.wrap("group by breakers", err)
	}
	recent, err := as.productRepo.CountCreatedSince(ctx, nil, recentWindowDays)
	if err != nil {
		return nil, as.wrap("count recent products", err)
	}

	average := 0.0
	if totalProducts > 0 {
		average = math.Round(float64(totalDrawings)/float64(totalProducts)*100) / 100
	}

	topBrands := byBrand
	if len(topBrands) > topBrandCount {
		topBrands = topBrands[:topBrandCount]
	}

	return &AnalyticsData{
		TotalProducts:             totalProducts,
		TotalDrawings:             totalDrawings,
		ProductsByBrand:           byBrand,
		ProductsByDescription:     byDescription,
		ProductsByBreakers:        byBreakers,
		RecentProducts:            recent,
		AverageDrawingsPerProduct: average,
		TopBrands:                 topBrands,
	}, nil
}

func (as *analyticsService) wrap(op string, err error) error {
	return apierr.New(http.StatusInternalServerError, apierr.CodeInternal, fmt.Errorf("%s: %w", op, err))
}
