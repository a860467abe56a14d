package services

import (
	"context"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"github.com/yungbote/catalog-backend/internal/normalization"
	"github.com/yungbote/catalog-backend/internal/platform/apierr"
	"github.com/yungbote/catalog-backend/internal/platform/logger"
	"github.com/yungbote/catalog-backend/internal/repos"
	"github.com/yungbote/catalog-backend/internal/storage"
	"github.com/yungbote/catalog-backend/internal/types"
)

type MatchCriteria struct {
	Description string  `json:"description"`
	Size        string  `json:"size"`
	Breakers    string  `json:"breakers"`
	Brand       string  `json:"brand"`
	IPEnclosure *string `json:"ipEnclosure"`
	Pole        *string `json:"pole"`
}

type MatchResult struct {
	Matched bool         `json:"matched"`
	Product *ProductView `json:"product,omitempty"`
}

type MatchService interface {
	Match(ctx context.Context, criteria MatchCriteria) (*MatchResult, error)
}

type matchService struct {
	db          *gorm.DB
	log         *logger.Logger
	productRepo repos.ProductRepo
	store       storage.FileStore
}

func NewMatchService(db *gorm.DB, log *logger.Logger, productRepo repos.ProductRepo, store storage.FileStore) MatchService {
	serviceLog := log.With("service", "MatchService")
	return &matchService{
		db:          db,
		log:         serviceLog,
		productRepo: productRepo,
		store:       store,
	}
}

func (ms *matchService) Match(ctx context.Context, criteria MatchCriteria) (*MatchResult, error) {
	description := normalization.ParseInputString(criteria.Description)
	size := normalization.ParseInputString(criteria.Size)
	breakers := normalization.ParseInputString(criteria.Breakers)
	brand := normalization.ParseInputString(criteria.Brand)
	if description == "" || size == "" || breakers == "" || brand == "" {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeValidation,
			fmt.Errorf("description, size, breakers and brand are required"))
	}

	fields := map[string]string{
		"description": description,
		"size":        size,
		"breakers":    breakers,
		"brand":       brand,
	}
	// Optional criteria only narrow the match when they are provided.
	ipEnclosure := normalization.ParseInputStringPtr(criteria.IPEnclosure)
	if ipEnclosure != nil && *ipEnclosure != "" {
		fields["ip_enclosure"] = *ipEnclosure
	}
	pole := normalization.ParseInputStringPtr(criteria.Pole)
	if pole != nil && *pole != "" {
		fields["pole"] = *pole
	}

	candidates, err := ms.productRepo.FindByNormalizedFields(ctx, nil, fields)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, apierr.CodeInternal, fmt.Errorf("match query: %w", err))
	}

	for _, candidate := range candidates {
		if !matchesExactly(candidate, fields) {
			continue
		}
		view, err := buildProductView(ctx, ms.store, candidate)
		if err != nil {
			return nil, err
		}
		ms.log.Debug("Match found", "product_id", candidate.ID)
		return &MatchResult{Matched: true, Product: view}, nil
	}
	return &MatchResult{Matched: false}, nil
}

// matchesExactly re-checks candidates in Go so a loose database collation
// can never widen the match.
func matchesExactly(product *types.Product, fields map[string]string) bool {
	for column, want := range fields {
		var have string
		switch column {
		case "description":
			have = product.Description
		case "size":
			have = product.Size
		case "breakers":
			have = product.Breakers
		case "brand":
			have = product.Brand
		case "ip_enclosure":
			if product.IPEnclosure == nil {
				return false
			}
			have = *product.IPEnclosure
		case "pole":
			if product.Pole == nil {
				return false
			}
			have = *product.Pole
		default:
			return false
		}
		if normalization.ParseInputString(have) != want {
			return false
		}
	}
	return true
}
