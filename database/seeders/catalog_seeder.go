package seeders

import (
	"github.com/shashiranjanraj/inkstore/app/models"
	"github.com/shashiranjanraj/inkstore/pkg/auth"
	"gorm.io/gorm"
)

func init() {
	Register("admin", SeedAdmin)
	Register("catalog", SeedCatalog)
}

// SeedAdmin creates the initial back-office account if none exists.
func SeedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := auth.HashPassword("changeme123")
	if err != nil {
		return err
	}
	return db.Create(&models.User{
		Name:     "Store Admin",
		Email:    "admin@inkstore.local",
		Password: hashed,
		Role:     models.RoleAdmin,
	}).Error
}

// SeedCatalog inserts a small demo catalog, once.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []models.Product{
		{
			Title:       "The Pragmatic Gopher",
			Description: "Field notes on building production Go services.",
			Price:       29.00,
			Category:    "programming",
			ProductType: models.TypeBook,
			FileURL:     "books/pragmatic-gopher.pdf",
			IsPublished: true,
		},
		{
			Title:       "Distributed Systems from Scratch",
			Description: "Consensus, replication and failure, one chapter at a time.",
			Price:       39.00,
			Category:    "systems",
			ProductType: models.TypeBook,
			FileURL:     "books/distributed-systems.pdf",
			IsPublished: true,
		},
		{
			Title:       "API Design Masterclass",
			Description: "A video course on designing HTTP APIs people enjoy using.",
			Price:       79.00,
			Category:    "programming",
			ProductType: models.TypeCourse,
			CourseURL:   "https://learn.inkstore.local/courses/api-design",
			IsPublished: true,
		},
		{
			Title:       "Unreleased Draft",
			Description: "Not visible in the storefront until published.",
			Price:       10.00,
			Category:    "programming",
			ProductType: models.TypeBook,
			FileURL:     "books/draft.pdf",
			IsPublished: false,
		},
	}
	return db.Create(&products).Error
}
