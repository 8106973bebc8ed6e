// Package routes declares the HTTP surface of the store. Handlers are
// context-wrapped controllers; authorization layers as route middleware
// here and is re-checked inside the services.
package routes

import (
	"net/http"

	"github.com/shashiranjanraj/inkstore/app/controllers"
	"github.com/shashiranjanraj/inkstore/app/events"
	appgraphql "github.com/shashiranjanraj/inkstore/app/graphql"
	"github.com/shashiranjanraj/inkstore/pkg/ctx"
	"github.com/shashiranjanraj/inkstore/pkg/middleware"
	"github.com/shashiranjanraj/inkstore/pkg/rbac"
	"github.com/shashiranjanraj/inkstore/pkg/router"
	"github.com/shashiranjanraj/inkstore/pkg/ws"
)

func RegisterAPI(r *router.Router) {
	catalog := controllers.NewCatalogController()
	auth := controllers.NewAuthController()
	checkout := controllers.NewCheckoutController()
	library := controllers.NewLibraryController()
	admin := controllers.NewAdminController()

	api := r.Group("/api")

	// Public storefront.
	api.Get("/products", "catalog.index", ctx.Wrap(catalog.Index))
	api.Get("/products/featured", "catalog.featured", ctx.Wrap(catalog.Featured))
	api.Get("/products/{id}", "catalog.show", ctx.Wrap(catalog.Show))
	api.Post("/graphql", "catalog.graphql", appgraphql.Handler)

	api.Post("/register", "auth.register", ctx.Wrap(auth.Register))
	api.Post("/login", "auth.login", ctx.Wrap(auth.Login))

	// Token-bearing download links authorize themselves.
	api.Get("/downloads/{token}", "downloads.fetch", ctx.Wrap(library.Download))

	// Authenticated customer surface.
	protected := api.Group("", middleware.Auth)
	protected.Get("/me", "auth.me", ctx.Wrap(auth.Me))
	protected.Post("/checkout", "checkout.create", ctx.Wrap(checkout.Create))
	protected.Get("/library", "library.index", ctx.Wrap(library.Index))
	protected.Post("/library/products/{id}/link", "library.link", ctx.Wrap(library.Link))

	// Back office.
	adminGroup := api.Group("/admin", middleware.Auth, rbac.HasRole("admin"))
	adminGroup.Get("/dashboard", "admin.dashboard", ctx.Wrap(admin.Dashboard))
	adminGroup.Get("/users", "admin.users", ctx.Wrap(admin.Users))
	adminGroup.Get("/orders", "admin.orders", ctx.Wrap(admin.Orders))
	adminGroup.Get("/products", "admin.products.index", ctx.Wrap(admin.ProductIndex))
	adminGroup.Post("/products", "admin.products.store", ctx.Wrap(admin.ProductCreate))
	adminGroup.Get("/products/{id}", "admin.products.show", ctx.Wrap(admin.ProductShow))
	adminGroup.Put("/products/{id}", "admin.products.update", ctx.Wrap(admin.ProductUpdate))
	adminGroup.Delete("/products/{id}", "admin.products.destroy", ctx.Wrap(admin.ProductDelete))
	adminGroup.Get("/live", "admin.live", func(w http.ResponseWriter, r *http.Request) {
		ws.Upgrade(w, r, events.LiveOrders)
	})
}
