package controllers

import (
	"github.com/shashiranjanraj/inkstore/app/resources"
	"github.com/shashiranjanraj/inkstore/app/services"
	"github.com/shashiranjanraj/inkstore/pkg/ctx"
	"github.com/shashiranjanraj/inkstore/pkg/resource"
)

// CatalogController serves the public storefront reads. Only published
// products are ever visible through these endpoints.
type CatalogController struct {
	catalog *services.CatalogService
}

func NewCatalogController() *CatalogController {
	return &CatalogController{catalog: services.NewCatalogService()}
}

// Index handles GET /api/products?category=&type=&q=
func (ctl *CatalogController) Index(c *ctx.Context) {
	products, err := ctl.catalog.List(services.CatalogFilter{
		Category:    c.Query("category"),
		ProductType: c.Query("type"),
		Search:      c.Query("q"),
	})
	if err != nil {
		fail(c, err)
		return
	}
	resource.CollectionOf(&resources.ProductResource{}, products).Respond(c.W)
}

// Featured handles GET /api/products/featured
func (ctl *CatalogController) Featured(c *ctx.Context) {
	products, err := ctl.catalog.Featured(0)
	if err != nil {
		fail(c, err)
		return
	}
	resource.CollectionOf(&resources.ProductResource{}, products).Respond(c.W)
}

// Show handles GET /api/products/{id}
func (ctl *CatalogController) Show(c *ctx.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	product, err := ctl.catalog.Get(id)
	if err != nil {
		fail(c, err)
		return
	}
	resource.New(&resources.ProductResource{}, product).Respond(c.W)
}
