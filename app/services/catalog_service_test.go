package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/inkstore/app/models"
)

func TestCatalogHidesUnpublished(t *testing.T) {
	db := setupDB(t)
	createProduct(t, db, func(p *models.Product) { p.Title = "Visible" })
	createProduct(t, db, func(p *models.Product) {
		p.Title = "Draft"
		p.IsPublished = false
	})

	svc := NewCatalogService()

	products, err := svc.List(CatalogFilter{})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Visible", products[0].Title)

	featured, err := svc.Featured(0)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "Visible", featured[0].Title)
}

func TestFeaturedRespectsLimit(t *testing.T) {
	db := setupDB(t)
	for i := 0; i < 3; i++ {
		createProduct(t, db, nil)
	}

	svc := NewCatalogService()

	strip, err := svc.Featured(2)
	require.NoError(t, err)
	assert.Len(t, strip, 2)

	full, err := svc.Featured(0)
	require.NoError(t, err)
	assert.Len(t, full, 3)
}

func TestCatalogFiltersIntersect(t *testing.T) {
	db := setupDB(t)
	createProduct(t, db, func(p *models.Product) {
		p.Title = "Go Basics"
		p.Category = "programming"
	})
	createProduct(t, db, func(p *models.Product) {
		p.Title = "Go for Architects"
		p.Category = "architecture"
	})
	createProduct(t, db, func(p *models.Product) {
		p.Title = "Watercolor Go Board"
		p.Category = "programming"
		p.ProductType = models.TypeCourse
		p.FileURL = ""
		p.CourseURL = "https://example.com/c"
	})

	svc := NewCatalogService()

	products, err := svc.List(CatalogFilter{Category: "programming", ProductType: models.TypeBook})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Go Basics", products[0].Title)
}

func TestCatalogSearchIsCaseInsensitiveSubstring(t *testing.T) {
	db := setupDB(t)
	createProduct(t, db, func(p *models.Product) { p.Title = "Advanced GoLang Patterns" })
	createProduct(t, db, func(p *models.Product) {
		p.Title = "Cooking 101"
		p.Description = "Nothing about golang here... wait."
	})
	createProduct(t, db, func(p *models.Product) { p.Title = "Rust Basics" })

	products, err := NewCatalogService().List(CatalogFilter{Search: "GOLANG"})
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestCatalogBookTypeFilterScenario(t *testing.T) {
	db := setupDB(t)
	createProduct(t, db, func(p *models.Product) {
		p.Title = "Go Basics"
		p.Price = 20
	})

	svc := NewCatalogService()

	asBook, err := svc.List(CatalogFilter{ProductType: models.TypeBook})
	require.NoError(t, err)
	require.Len(t, asBook, 1)
	assert.Equal(t, "Go Basics", asBook[0].Title)

	asCourse, err := svc.List(CatalogFilter{ProductType: models.TypeCourse})
	require.NoError(t, err)
	assert.Empty(t, asCourse)
}

func TestCatalogGetUnpublishedIsNotFound(t *testing.T) {
	db := setupDB(t)
	draft := createProduct(t, db, func(p *models.Product) { p.IsPublished = false })

	_, err := NewCatalogService().Get(draft.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	published := createProduct(t, db, nil)
	got, err := NewCatalogService().Get(published.ID)
	require.NoError(t, err)
	assert.Equal(t, published.ID, got.ID)
}
