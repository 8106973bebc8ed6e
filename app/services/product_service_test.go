package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/inkstore/app/models"
)

func validBookInput() ProductInput {
	return ProductInput{
		Title:       "Go Basics",
		Description: "An introduction.",
		Price:       20,
		Category:    "programming",
		ProductType: models.TypeBook,
		ImageURL:    "img/go-basics.png",
		FileURL:     "books/go-basics.pdf",
		IsPublished: true,
	}
}

func TestProductCreateRequiresAdmin(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, models.RoleUser)

	_, err := NewProductService().Create(asUser(user), validBookInput())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestProductDeliveryInvariant(t *testing.T) {
	db := setupDB(t)
	admin := createUser(t, db, models.RoleAdmin)
	svc := NewProductService()

	cases := []struct {
		name   string
		mutate func(*ProductInput)
		field  string
	}{
		{"book without fileUrl", func(in *ProductInput) { in.FileURL = "" }, "fileUrl"},
		{"book with courseUrl", func(in *ProductInput) { in.CourseURL = "https://x/c" }, "courseUrl"},
		{"course without courseUrl", func(in *ProductInput) {
			in.ProductType = models.TypeCourse
			in.FileURL = ""
		}, "courseUrl"},
		{"course with fileUrl", func(in *ProductInput) {
			in.ProductType = models.TypeCourse
			in.CourseURL = "https://x/c"
		}, "fileUrl"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validBookInput()
			tc.mutate(&in)

			_, err := svc.Create(asUser(admin), in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}
}

func TestProductInputFieldRules(t *testing.T) {
	db := setupDB(t)
	admin := createUser(t, db, models.RoleAdmin)
	svc := NewProductService()

	cases := []struct {
		name   string
		mutate func(*ProductInput)
		field  string
	}{
		{"missing imageUrl", func(in *ProductInput) { in.ImageURL = "" }, "imageUrl"},
		{"missing title", func(in *ProductInput) { in.Title = "" }, "title"},
		{"unknown product type", func(in *ProductInput) { in.ProductType = "bundle" }, "productType"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validBookInput()
			tc.mutate(&in)

			_, err := svc.Create(asUser(admin), in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)

			all, err := svc.All(asUser(admin))
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}

	// Update is held to the same rules.
	product, err := svc.Create(asUser(admin), validBookInput())
	require.NoError(t, err)

	in := validBookInput()
	in.ImageURL = ""
	_, err = svc.Update(asUser(admin), product.ID, in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "imageUrl")
}

func TestProductCreateAndUpdate(t *testing.T) {
	db := setupDB(t)
	admin := createUser(t, db, models.RoleAdmin)
	svc := NewProductService()

	product, err := svc.Create(asUser(admin), validBookInput())
	require.NoError(t, err)
	assert.NotZero(t, product.ID)
	assert.True(t, product.IsBook())

	in := validBookInput()
	in.Title = "Go Basics, Second Edition"
	in.Price = 25
	updated, err := svc.Update(asUser(admin), product.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Go Basics, Second Edition", updated.Title)
	assert.EqualValues(t, 25, updated.Price)

	_, err = svc.Update(asUser(admin), 9999, in)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductDeleteHidesFromCatalog(t *testing.T) {
	db := setupDB(t)
	admin := createUser(t, db, models.RoleAdmin)
	svc := NewProductService()

	product, err := svc.Create(asUser(admin), validBookInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(asUser(admin), product.ID))
	assert.ErrorIs(t, svc.Delete(asUser(admin), product.ID), ErrNotFound)

	listed, err := NewCatalogService().List(CatalogFilter{})
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestProductAllIncludesDraftsForAdmin(t *testing.T) {
	db := setupDB(t)
	admin := createUser(t, db, models.RoleAdmin)
	createProduct(t, db, func(p *models.Product) { p.IsPublished = false })

	all, err := NewProductService().All(asUser(admin))
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
