package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/inkstore/app/models"
	"github.com/shashiranjanraj/inkstore/app/routes"
	"github.com/shashiranjanraj/inkstore/pkg/auth"
	"github.com/shashiranjanraj/inkstore/pkg/database"
	"github.com/shashiranjanraj/inkstore/pkg/router"
	"github.com/shashiranjanraj/inkstore/pkg/testkit"
)

var apiSeq atomic.Int64

func setupAPI(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:api%d?mode=memory&cache=shared", apiSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Entitlement{},
	))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		database.DB = prev
	})

	r := router.New()
	routes.RegisterAPI(r)
	return r.Handler(), db
}

func TestScenarios(t *testing.T) {
	handler, _ := setupAPI(t)
	testkit.RunDir(t, handler, "testdata")
}

type apiClient struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func (c *apiClient) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	return rec
}

func (c *apiClient) decode(rec *httptest.ResponseRecorder) map[string]any {
	c.t.Helper()
	var out map[string]any
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestStorefrontFlow(t *testing.T) {
	handler, db := setupAPI(t)
	client := &apiClient{t: t, handler: handler}

	book := models.Product{
		Title:       "Go Basics",
		Description: "An introduction.",
		Price:       20,
		Category:    "programming",
		ProductType: models.TypeBook,
		FileURL:     "books/go-basics.pdf",
		IsPublished: true,
	}
	require.NoError(t, db.Create(&book).Error)

	// Register and log in.
	rec := client.do(http.MethodPost, "/api/register", map[string]any{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = client.do(http.MethodPost, "/api/login", map[string]any{
		"email":    "ada@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := client.decode(rec)["data"].(map[string]any)
	client.token = data["accessToken"].(string)
	require.NotEmpty(t, client.token)

	// The catalog is public.
	anon := &apiClient{t: t, handler: handler}
	rec = anon.do(http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := anon.decode(rec)["data"].([]any)
	require.Len(t, listed, 1)
	first := listed[0].(map[string]any)
	assert.Equal(t, "Go Basics", first["title"])
	assert.NotContains(t, first, "fileUrl")

	// Checkout once succeeds, twice conflicts.
	rec = client.do(http.MethodPost, "/api/checkout", map[string]any{"productId": book.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = client.do(http.MethodPost, "/api/checkout", map[string]any{"productId": book.ID})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The book shows up in the library.
	rec = client.do(http.MethodGet, "/api/library", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	lib := client.decode(rec)["data"].(map[string]any)
	assert.Len(t, lib["books"].([]any), 1)
	assert.Empty(t, lib["courses"])

	// Plain users cannot reach the back office.
	rec = client.do(http.MethodGet, "/api/admin/dashboard", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = client.do(http.MethodPost, "/api/admin/products", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGraphQLCatalogHidesDrafts(t *testing.T) {
	handler, db := setupAPI(t)
	client := &apiClient{t: t, handler: handler}

	published := models.Product{
		Title:       "Go Basics",
		Description: "An introduction.",
		Price:       20,
		Category:    "programming",
		ProductType: models.TypeBook,
		ImageURL:    "img/go-basics.png",
		FileURL:     "books/go-basics.pdf",
		IsPublished: true,
	}
	require.NoError(t, db.Create(&published).Error)

	draft := models.Product{
		Title:       "Unfinished Draft",
		Description: "Not ready.",
		Price:       10,
		Category:    "programming",
		ProductType: models.TypeBook,
		ImageURL:    "img/draft.png",
		FileURL:     "books/draft.pdf",
		IsPublished: false,
	}
	require.NoError(t, db.Create(&draft).Error)

	rec := client.do(http.MethodPost, "/api/graphql", map[string]any{
		"query": "{ products { id title } }",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := client.decode(rec)["data"].(map[string]any)
	listed := data["products"].([]any)
	require.Len(t, listed, 1)
	assert.Equal(t, "Go Basics", listed[0].(map[string]any)["title"])

	// Fetching the draft by id errors instead of resolving it.
	rec = client.do(http.MethodPost, "/api/graphql", map[string]any{
		"query": fmt.Sprintf("{ product(id: %d) { title } }", draft.ID),
	})
	require.Equal(t, http.StatusOK, rec.Code)

	out := client.decode(rec)
	assert.NotEmpty(t, out["errors"])
	if data, ok := out["data"].(map[string]any); ok {
		assert.Nil(t, data["product"])
	}
}

func TestAdminProductLifecycle(t *testing.T) {
	handler, db := setupAPI(t)

	admin := models.User{Name: "Admin", Email: "admin@example.com", Password: "x", Role: models.RoleAdmin}
	require.NoError(t, db.Create(&admin).Error)

	client := &apiClient{t: t, handler: handler}
	client.token = tokenFor(t, admin)

	rec := client.do(http.MethodPost, "/api/admin/products", map[string]any{
		"title":       "New Course",
		"description": "Fresh.",
		"price":       49.0,
		"category":    "programming",
		"productType": "course",
		"imageUrl":    "img/new-course.png",
		"courseUrl":   "https://learn.example.com/new",
		"isPublished": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := client.decode(rec)["data"].(map[string]any)
	id := uint(created["id"].(float64))

	// Mismatched delivery payload is rejected.
	rec = client.do(http.MethodPost, "/api/admin/products", map[string]any{
		"title":       "Broken",
		"description": "x",
		"price":       1.0,
		"category":    "c",
		"productType": "course",
		"imageUrl":    "img/broken.png",
		"fileUrl":     "books/broken.pdf",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = client.do(http.MethodGet, fmt.Sprintf("/api/admin/products/%d", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	shown := client.decode(rec)["data"].(map[string]any)
	assert.Equal(t, "https://learn.example.com/new", shown["courseUrl"])

	rec = client.do(http.MethodDelete, fmt.Sprintf("/api/admin/products/%d", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = client.do(http.MethodGet, fmt.Sprintf("/api/admin/products/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := auth.GenerateToken(user.ID, user.Role)
	require.NoError(t, err)
	return token
}
