package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/inkstore/app/models"
	"github.com/shashiranjanraj/inkstore/pkg/auth"
	"github.com/shashiranjanraj/inkstore/pkg/database"
)

var dbSeq atomic.Int64

// setupDB gives each test its own in-memory database with the full schema.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", dbSeq.Add(1))
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
	return db
}

func createUser(t *testing.T, db *gorm.DB, role string) models.User {
	t.Helper()
	user := models.User{
		Name:     "Test User",
		Email:    fmt.Sprintf("user%d@example.com", dbSeq.Add(1)),
		Password: "irrelevant",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createProduct(t *testing.T, db *gorm.DB, mutate func(*models.Product)) models.Product {
	t.Helper()
	product := models.Product{
		Title:       "Go in Anger",
		Description: "A field guide.",
		Price:       25,
		Category:    "programming",
		ProductType: models.TypeBook,
		FileURL:     "books/go-in-anger.pdf",
		IsPublished: true,
	}
	if mutate != nil {
		mutate(&product)
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func asUser(u models.User) auth.Principal {
	return auth.Principal{UserID: u.ID, Role: u.Role}
}
