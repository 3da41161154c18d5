package catalog

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/atelierlabs/storefront/pkg/errors"
	"github.com/atelierlabs/storefront/pkg/logger"
	"github.com/atelierlabs/storefront/pkg/shopapi"
)

type catalogAPI interface {
	ListProducts(ctx context.Context) ([]shopapi.Product, error)
	GetProduct(ctx context.Context, slug string) (*shopapi.Product, error)
	ListCategories(ctx context.Context) ([]shopapi.Category, error)
	ListBanners(ctx context.Context) ([]shopapi.Banner, error)
	ListReviews(ctx context.Context, productSlug string) ([]shopapi.Review, error)
	CreateReview(ctx context.Context, input shopapi.ReviewInput) (*shopapi.Review, error)
}

// Filter narrows a product listing. Zero values mean no filtering on that
// axis.
type Filter struct {
	CategorySlug    string
	SubcategorySlug string
	Search          string
}

// Service reads the remote catalog.
type Service struct {
	api catalogAPI
	log *logger.Logger
}

// NewService builds a catalog service over the given API client.
func NewService(api catalogAPI, log *logger.Logger) (*Service, error) {
	if api == nil {
		return nil, fmt.Errorf("api client required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{api: api, log: log}, nil
}

// ListProducts fetches the catalog and applies the filter client-side. The
// search term matches case-insensitively against product name and
// description.
func (s *Service) ListProducts(ctx context.Context, filter Filter) ([]shopapi.Product, error) {
	products, err := s.api.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]shopapi.Product, 0, len(products))
	for _, p := range products {
		if filter.CategorySlug != "" {
			if p.Category == nil || p.Category.Slug != filter.CategorySlug {
				continue
			}
		}
		if filter.SubcategorySlug != "" {
			if p.Subcategory == nil || p.Subcategory.Slug != filter.SubcategorySlug {
				continue
			}
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func matchesSearch(p shopapi.Product, term string) bool {
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

// GetProduct fetches one product by slug.
func (s *Service) GetProduct(ctx context.Context, slug string) (*shopapi.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product slug is required")
	}
	return s.api.GetProduct(ctx, slug)
}

// ListCategories fetches the category tree.
func (s *Service) ListCategories(ctx context.Context) ([]shopapi.Category, error) {
	return s.api.ListCategories(ctx)
}

// ListBanners fetches the active homepage banners.
func (s *Service) ListBanners(ctx context.Context) ([]shopapi.Banner, error) {
	return s.api.ListBanners(ctx)
}

// Reviews fetches the reviews for one product.
func (s *Service) Reviews(ctx context.Context, productSlug string) ([]shopapi.Review, error) {
	productSlug = strings.TrimSpace(productSlug)
	if productSlug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product slug is required")
	}
	return s.api.ListReviews(ctx, productSlug)
}

// AddReview submits a review. The server enforces that the caller actually
// purchased the product and has not reviewed it already.
func (s *Service) AddReview(ctx context.Context, input shopapi.ReviewInput) (*shopapi.Review, error) {
	input.ProductSlug = strings.TrimSpace(input.ProductSlug)
	if input.ProductSlug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product slug is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	return s.api.CreateReview(ctx, input)
}

// AverageRating is the mean rating across the given reviews, zero when there
// are none.
func AverageRating(reviews []shopapi.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}

// CanAddToCart reports whether the product is purchasable right now. Stock
// and availability are checked here, before the cart is touched.
func CanAddToCart(p *shopapi.Product) bool {
	return p != nil && p.Stock > 0 && p.IsAvailable
}
