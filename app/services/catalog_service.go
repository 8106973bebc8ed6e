package services

import (
	"errors"

	"github.com/shashiranjanraj/inkstore/app/models"
	"github.com/shashiranjanraj/inkstore/app/repositories"
	"gorm.io/gorm"
)

// CatalogFilter narrows the public product listing. Zero values mean
// "no restriction"; all present filters apply together.
type CatalogFilter struct {
	Category    string
	ProductType string
	Search      string
}

// CatalogService serves the public storefront reads. Only published
// products are ever visible through it.
type CatalogService struct {
	products *repositories.ProductRepository
}

func NewCatalogService() *CatalogService {
	return &CatalogService{products: repositories.NewProductRepository()}
}

// List returns published products matching the filter, newest first.
// The full result set is returned; the catalogue is not paginated.
func (s *CatalogService) List(filter CatalogFilter) ([]models.Product, error) {
	return s.products.Published(filter.Category, filter.ProductType, filter.Search)
}

// Featured returns the newest published products for the storefront strip.
// The repository caches the strip briefly in Redis and invalidates it on
// every product write, so a freshly unpublished product drops out at once
// rather than after the TTL.
func (s *CatalogService) Featured(limit int) ([]models.Product, error) {
	return s.products.Featured(limit)
}

// Get returns a published product or ErrNotFound. Drafts look exactly like
// missing products to the public surface.
func (s *CatalogService) Get(id uint) (models.Product, error) {
	product, err := s.products.FindPublishedByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, err
	}
	return product, nil
}
