package repositories

import (
	"fmt"
	"strings"
	"time"

	"github.com/shashiranjanraj/inkstore/app/models"
	"github.com/shashiranjanraj/inkstore/pkg/cache"
	"github.com/shashiranjanraj/inkstore/pkg/orm"
)

// The featured strip is the only cached catalog read. It is keyed by limit
// so differently sized strips never collide; product mutations forget the
// default strip, anything else just ages out with the TTL.
const defaultFeaturedLimit = 8

func featuredKey(limit int) string {
	return fmt.Sprintf("inkstore:catalog:featured:%d", limit)
}

// ProductRepository handles database operations for Product.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// Published returns published products matching the optional filters,
// newest first. Empty filter values are ignored; q matches title or
// description case-insensitively.
func (r *ProductRepository) Published(category, productType, q string) ([]models.Product, error) {
	query := orm.DB().Model(&models.Product{}).Where("is_published = ?", true)

	if category != "" {
		query = query.Where("category = ?", category)
	}
	if productType != "" {
		query = query.Where("product_type = ?", productType)
	}
	if q != "" {
		needle := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", needle, needle)
	}

	var products []models.Product
	err := query.OrderBy("created_at DESC").Get(&products)
	return products, err
}

// Featured returns the newest published products through a short-lived
// Redis cache.
func (r *ProductRepository) Featured(limit int) ([]models.Product, error) {
	if limit < 1 {
		limit = defaultFeaturedLimit
	}
	var products []models.Product
	err := orm.DB().
		Model(&models.Product{}).
		Where("is_published = ?", true).
		OrderBy("created_at DESC").
		Limit(limit).
		Cache(featuredKey(limit), time.Minute, &products)
	return products, err
}

// FindByID looks up any product by primary key, published or not.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var product models.Product
	err := orm.DB().Model(&models.Product{}).Where("id = ?", id).First(&product)
	return product, err
}

// FindPublishedByID looks up a published product by primary key.
func (r *ProductRepository) FindPublishedByID(id uint) (models.Product, error) {
	var product models.Product
	err := orm.DB().
		Model(&models.Product{}).
		Where("id = ? AND is_published = ?", id, true).
		First(&product)
	return product, err
}

// FindByIDs fetches the products whose IDs appear in ids, newest first.
// IDs without a matching row are simply absent from the result.
func (r *ProductRepository) FindByIDs(ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []models.Product
	err := orm.DB().
		Model(&models.Product{}).
		Where("id IN ?", ids).
		OrderBy("created_at DESC").
		Get(&products)
	return products, err
}

// All returns every product including drafts, newest first.
func (r *ProductRepository) All() ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().Model(&models.Product{}).OrderBy("created_at DESC").Get(&products)
	return products, err
}

// Recent returns the most recently created products including drafts.
func (r *ProductRepository) Recent(limit int) ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().
		Model(&models.Product{}).
		OrderBy("created_at DESC").
		Limit(limit).
		Get(&products)
	return products, err
}

// Create persists a new product and invalidates the featured cache.
func (r *ProductRepository) Create(product *models.Product) error {
	if err := orm.DB().Create(product); err != nil {
		return err
	}
	cache.Forget(featuredKey(defaultFeaturedLimit))
	return nil
}

// Update persists changes and invalidates the featured cache.
func (r *ProductRepository) Update(product *models.Product) error {
	if err := orm.DB().Save(product); err != nil {
		return err
	}
	cache.Forget(featuredKey(defaultFeaturedLimit))
	return nil
}

// Delete removes a product and invalidates the featured cache.
// Past orders keep their denormalized snapshots.
func (r *ProductRepository) Delete(product *models.Product) error {
	if err := orm.DB().Delete(product); err != nil {
		return err
	}
	cache.Forget(featuredKey(defaultFeaturedLimit))
	return nil
}

// Count returns the total number of products including drafts.
func (r *ProductRepository) Count() (int64, error) {
	return orm.DB().Model(&models.Product{}).Count()
}
