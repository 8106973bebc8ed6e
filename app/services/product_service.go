package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/inkstore/app/models"
	"github.com/shashiranjanraj/inkstore/app/repositories"
	"github.com/shashiranjanraj/inkstore/pkg/auth"
	"github.com/shashiranjanraj/inkstore/pkg/logger"
	"github.com/shashiranjanraj/inkstore/pkg/validate"
)

// ProductInput is the write payload for the back-office product endpoints.
// Exactly one delivery field must be set, and it must match the product
// type: books carry fileUrl, courses carry courseUrl.
type ProductInput struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"min=0"`
	Category    string  `json:"category" validate:"required,max=100"`
	ProductType string  `json:"productType" validate:"required,in=book,course"`
	ImageURL    string  `json:"imageUrl" validate:"required"`
	FileURL     string  `json:"fileUrl"`
	CourseURL   string  `json:"courseUrl"`
	IsPublished bool    `json:"isPublished"`
}

// ProductService is the back-office side of the catalog. Reads for the
// storefront live in CatalogService; everything here requires an admin
// principal.
type ProductService struct {
	products *repositories.ProductRepository
}

func NewProductService() *ProductService {
	return &ProductService{products: repositories.NewProductRepository()}
}

// validate runs the struct-tag rules and the cross-field delivery
// invariant. The HTTP boundary also binds with the same tags, but the
// service re-checks so a caller cannot sidestep them.
func (in ProductInput) validate() error {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return &ValidationError{Fields: errs}
	}
	return in.validateDelivery()
}

func (in ProductInput) validateDelivery() error {
	file := strings.TrimSpace(in.FileURL)
	course := strings.TrimSpace(in.CourseURL)

	switch in.ProductType {
	case models.TypeBook:
		if file == "" {
			return Invalid("fileUrl", "books require a fileUrl")
		}
		if course != "" {
			return Invalid("courseUrl", "books must not carry a courseUrl")
		}
	case models.TypeCourse:
		if course == "" {
			return Invalid("courseUrl", "courses require a courseUrl")
		}
		if file != "" {
			return Invalid("fileUrl", "courses must not carry a fileUrl")
		}
	default:
		return Invalid("productType", "productType must be book or course")
	}
	return nil
}

func (s *ProductService) Create(p auth.Principal, in ProductInput) (models.Product, error) {
	if !p.IsAdmin() {
		return models.Product{}, ErrForbidden
	}
	if err := in.validate(); err != nil {
		return models.Product{}, err
	}

	product := models.Product{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Price:       in.Price,
		Category:    strings.TrimSpace(in.Category),
		ProductType: in.ProductType,
		ImageURL:    in.ImageURL,
		FileURL:     in.FileURL,
		CourseURL:   in.CourseURL,
		IsPublished: in.IsPublished,
	}
	if err := s.products.Create(&product); err != nil {
		return models.Product{}, err
	}

	logger.Info("product created", "product_id", product.ID, "type", product.ProductType)
	return product, nil
}

// Update replaces the editable fields wholesale. The payload is the full
// write shape, so the delivery invariant is re-checked on every update.
func (s *ProductService) Update(p auth.Principal, id uint, in ProductInput) (models.Product, error) {
	if !p.IsAdmin() {
		return models.Product{}, ErrForbidden
	}
	if err := in.validate(); err != nil {
		return models.Product{}, err
	}

	product, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, err
	}

	product.Title = strings.TrimSpace(in.Title)
	product.Description = in.Description
	product.Price = in.Price
	product.Category = strings.TrimSpace(in.Category)
	product.ProductType = in.ProductType
	product.ImageURL = in.ImageURL
	product.FileURL = in.FileURL
	product.CourseURL = in.CourseURL
	product.IsPublished = in.IsPublished

	if err := s.products.Update(&product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// Delete soft-deletes the product. Existing order items keep their
// snapshot, and libraries silently drop the entry.
func (s *ProductService) Delete(p auth.Principal, id uint) error {
	if !p.IsAdmin() {
		return ErrForbidden
	}

	product, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.products.Delete(&product); err != nil {
		return err
	}
	logger.Info("product deleted", "product_id", id)
	return nil
}

// Find loads a product regardless of publication state.
func (s *ProductService) Find(p auth.Principal, id uint) (models.Product, error) {
	if !p.IsAdmin() {
		return models.Product{}, ErrForbidden
	}
	product, err := s.products.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, err
	}
	return product, nil
}

// All lists every product, drafts included.
func (s *ProductService) All(p auth.Principal) ([]models.Product, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.products.All()
}
