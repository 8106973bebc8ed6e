package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/inkstore/app/models"
)

func TestLibraryEmptyForNewUser(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, models.RoleUser)

	lib, err := NewLibraryService().Library(asUser(user))
	require.NoError(t, err)
	assert.NotNil(t, lib.Books)
	assert.NotNil(t, lib.Courses)
	assert.Empty(t, lib.Books)
	assert.Empty(t, lib.Courses)
}

func TestLibraryPartitionsBooksAndCourses(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, models.RoleUser)
	book := createProduct(t, db, nil)
	course := createProduct(t, db, func(p *models.Product) {
		p.Title = "API Design"
		p.ProductType = models.TypeCourse
		p.FileURL = ""
		p.CourseURL = "https://example.com/api-design"
	})

	checkout := NewCheckoutService()
	_, err := checkout.Purchase(asUser(user), book.ID)
	require.NoError(t, err)
	_, err = checkout.Purchase(asUser(user), course.ID)
	require.NoError(t, err)

	lib, err := NewLibraryService().Library(asUser(user))
	require.NoError(t, err)
	require.Len(t, lib.Books, 1)
	require.Len(t, lib.Courses, 1)
	assert.Equal(t, book.ID, lib.Books[0].ID)
	assert.Equal(t, course.ID, lib.Courses[0].ID)
}

func TestLibraryOmitsDeletedProducts(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, models.RoleUser)
	keep := createProduct(t, db, nil)
	gone := createProduct(t, db, func(p *models.Product) { p.Title = "Short lived" })

	checkout := NewCheckoutService()
	_, err := checkout.Purchase(asUser(user), keep.ID)
	require.NoError(t, err)
	_, err = checkout.Purchase(asUser(user), gone.ID)
	require.NoError(t, err)

	require.NoError(t, db.Delete(&models.Product{}, gone.ID).Error)

	lib, err := NewLibraryService().Library(asUser(user))
	require.NoError(t, err)
	require.Len(t, lib.Books, 1)
	assert.Equal(t, keep.ID, lib.Books[0].ID)
}

func TestOrderSnapshotSurvivesCatalogEdits(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, models.RoleUser)
	product := createProduct(t, db, func(p *models.Product) {
		p.Title = "Original Title"
		p.Price = 30
	})

	order, err := NewCheckoutService().Purchase(asUser(user), product.ID)
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).
		Updates(map[string]any{"title": "Renamed", "price": 99}).Error)

	var reloaded models.Order
	require.NoError(t, db.Preload("Items").First(&reloaded, order.ID).Error)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, "Original Title", reloaded.Items[0].Title)
	assert.EqualValues(t, 30, reloaded.Items[0].Price)
	assert.EqualValues(t, 30, reloaded.TotalAmount)
}

func TestOwnsReflectsEntitlements(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, models.RoleUser)
	product := createProduct(t, db, nil)

	lib := NewLibraryService()

	owns, err := lib.Owns(asUser(user), product.ID)
	require.NoError(t, err)
	assert.False(t, owns)

	_, err = NewCheckoutService().Purchase(asUser(user), product.ID)
	require.NoError(t, err)

	owns, err = lib.Owns(asUser(user), product.ID)
	require.NoError(t, err)
	assert.True(t, owns)
}
