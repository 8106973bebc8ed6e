package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/inkstore/app/models"
	"github.com/shashiranjanraj/inkstore/config"
	"github.com/shashiranjanraj/inkstore/pkg/crypt"
	"github.com/shashiranjanraj/inkstore/pkg/storage"
)

func setupStorage(t *testing.T) {
	t.Helper()
	t.Setenv("STORAGE_LOCAL_ROOT", t.TempDir())
	storage.Connect()
}

func TestAccessLinkForOwnedBook(t *testing.T) {
	db := setupDB(t)
	setupStorage(t)

	user := createUser(t, db, models.RoleUser)
	book := createProduct(t, db, func(p *models.Product) { p.FileURL = "books/owned.pdf" })
	require.NoError(t, storage.Put("books/owned.pdf", []byte("pdf bytes")))

	_, err := NewCheckoutService().Purchase(asUser(user), book.ID)
	require.NoError(t, err)

	svc := NewDownloadService()
	link, err := svc.AccessLink(asUser(user), book.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, link.Token)
	assert.Contains(t, link.URL, "/api/downloads/")
	assert.WithinDuration(t, time.Now().Add(config.DownloadLinkTTL()), link.ExpiresAt, time.Minute)

	path, err := svc.Resolve(link.Token)
	require.NoError(t, err)
	assert.Equal(t, "books/owned.pdf", path)
}

func TestAccessLinkForOwnedCourseEchoesURL(t *testing.T) {
	db := setupDB(t)
	setupStorage(t)

	user := createUser(t, db, models.RoleUser)
	course := createProduct(t, db, func(p *models.Product) {
		p.ProductType = models.TypeCourse
		p.FileURL = ""
		p.CourseURL = "https://learn.example.com/go"
	})

	_, err := NewCheckoutService().Purchase(asUser(user), course.ID)
	require.NoError(t, err)

	link, err := NewDownloadService().AccessLink(asUser(user), course.ID)
	require.NoError(t, err)
	assert.Empty(t, link.Token)
	assert.Equal(t, "https://learn.example.com/go", link.URL)
}

func TestAccessLinkRequiresOwnership(t *testing.T) {
	db := setupDB(t)
	setupStorage(t)

	user := createUser(t, db, models.RoleUser)
	book := createProduct(t, db, nil)
	draft := createProduct(t, db, func(p *models.Product) { p.IsPublished = false })

	svc := NewDownloadService()

	// Unowned products, drafts and unknown ids are indistinguishable, so
	// the endpoint cannot be used to probe what exists in the catalog.
	for _, id := range []uint{book.ID, draft.ID, 9999} {
		_, err := svc.AccessLink(asUser(user), id)
		assert.ErrorIs(t, err, ErrNotFound)
	}
}

func TestResolveRejectsExpiredAndGarbageTokens(t *testing.T) {
	setupDB(t)
	setupStorage(t)
	svc := NewDownloadService()

	_, err := svc.Resolve("not-a-token")
	assert.ErrorIs(t, err, ErrLinkExpired)

	expired, err := crypt.EncryptJSON(downloadClaims{
		UserID:    1,
		ProductID: 1,
		Path:      "books/old.pdf",
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)

	_, err = svc.Resolve(expired)
	assert.ErrorIs(t, err, ErrLinkExpired)
}
