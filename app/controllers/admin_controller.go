package controllers

import (
	"strconv"

	"github.com/shashiranjanraj/inkstore/app/resources"
	"github.com/shashiranjanraj/inkstore/app/services"
	"github.com/shashiranjanraj/inkstore/pkg/ctx"
	"github.com/shashiranjanraj/inkstore/pkg/resource"
)

// AdminController is the back-office surface: dashboard aggregation, user
// and order listings, and product management. Routes are mounted behind
// the admin role check, and the services re-verify the principal.
type AdminController struct {
	admin    *services.AdminService
	products *services.ProductService
}

func NewAdminController() *AdminController {
	return &AdminController{
		admin:    services.NewAdminService(),
		products: services.NewProductService(),
	}
}

// Dashboard handles GET /api/admin/dashboard
func (ctl *AdminController) Dashboard(c *ctx.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	stats, err := ctl.admin.Dashboard(p)
	if err != nil {
		fail(c, err)
		return
	}
	recent, err := ctl.admin.RecentProducts(p, 5)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]any{
		"stats":          stats,
		"recentProducts": recent,
	})
}

// Users handles GET /api/admin/users?page=&limit=
func (ctl *AdminController) Users(c *ctx.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))
	users, err := ctl.admin.ListUsers(p, page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	resource.CollectionOf(&resources.UserResource{}, users).Respond(c.W)
}

// Orders handles GET /api/admin/orders
func (ctl *AdminController) Orders(c *ctx.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	orders, err := ctl.admin.ListOrders(p)
	if err != nil {
		fail(c, err)
		return
	}
	resource.CollectionOf(&resources.OrderResource{WithUser: true}, orders).Respond(c.W)
}

// ProductIndex handles GET /api/admin/products
func (ctl *AdminController) ProductIndex(c *ctx.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	products, err := ctl.products.All(p)
	if err != nil {
		fail(c, err)
		return
	}
	resource.CollectionOf(&resources.AdminProductResource{}, products).Respond(c.W)
}

// ProductShow handles GET /api/admin/products/{id}
func (ctl *AdminController) ProductShow(c *ctx.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	product, err := ctl.products.Find(p, id)
	if err != nil {
		fail(c, err)
		return
	}
	resource.New(&resources.AdminProductResource{}, product).Respond(c.W)
}

// ProductCreate handles POST /api/admin/products
func (ctl *AdminController) ProductCreate(c *ctx.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var in services.ProductInput
	if !c.BindJSON(&in) {
		return
	}
	product, err := ctl.products.Create(p, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created((&resources.AdminProductResource{}).ToArray(product))
}

// ProductUpdate handles PUT /api/admin/products/{id}
func (ctl *AdminController) ProductUpdate(c *ctx.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in services.ProductInput
	if !c.BindJSON(&in) {
		return
	}
	product, err := ctl.products.Update(p, id, in)
	if err != nil {
		fail(c, err)
		return
	}
	resource.New(&resources.AdminProductResource{}, product).Respond(c.W)
}

// ProductDelete handles DELETE /api/admin/products/{id}
func (ctl *AdminController) ProductDelete(c *ctx.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := ctl.products.Delete(p, id); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]any{"deleted": id})
}
