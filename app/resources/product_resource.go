package resources

import (
	"github.com/shashiranjanraj/inkstore/app/models"
	"github.com/shashiranjanraj/inkstore/pkg/resource"
)

// ProductResource is the storefront shape of a product. Delivery URLs are
// never exposed here; owners obtain them through the library link endpoint.
type ProductResource struct {
	resource.Base
}

func (r *ProductResource) ToArray(v interface{}) resource.Map {
	p := v.(models.Product)
	return resource.Map{
		"id":          p.ID,
		"title":       p.Title,
		"description": p.Description,
		"price":       p.Price,
		"category":    p.Category,
		"productType": p.ProductType,
		"imageUrl":    p.ImageURL,
		"createdAt":   p.CreatedAt,
	}
}

// AdminProductResource is the back-office shape; it additionally carries
// the delivery URLs and the publication flag.
type AdminProductResource struct {
	resource.Base
}

func (r *AdminProductResource) ToArray(v interface{}) resource.Map {
	p := v.(models.Product)
	return resource.Map{
		"id":          p.ID,
		"title":       p.Title,
		"description": p.Description,
		"price":       p.Price,
		"category":    p.Category,
		"productType": p.ProductType,
		"imageUrl":    p.ImageURL,
		"fileUrl":     p.FileURL,
		"courseUrl":   p.CourseURL,
		"isPublished": p.IsPublished,
		"createdAt":   p.CreatedAt,
		"updatedAt":   p.UpdatedAt,
	}
}
