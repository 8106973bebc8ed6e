package models

import "gorm.io/gorm"

// Product types. A product is either a downloadable book or a link to an
// external course, never both.
const (
	TypeBook   = "book"
	TypeCourse = "course"
)

// Product is a purchasable catalogue entry.
//
// Exactly one of FileURL/CourseURL is populated, matching ProductType.
// For books FileURL is either an absolute URL or a storage-disk key served
// through the download endpoint.
type Product struct {
	gorm.Model
	Title       string  `gorm:"size:255;not null;index" json:"title"`
	Description string  `gorm:"type:text;not null"      json:"description"`
	Price       float64 `gorm:"not null;default:0"      json:"price"`
	Category    string  `gorm:"size:100;index"          json:"category"`
	ProductType string  `gorm:"size:20;not null;index"  json:"productType"`
	ImageURL    string  `gorm:"size:512;not null"       json:"imageUrl"`
	FileURL     string  `gorm:"size:512"                json:"fileUrl,omitempty"`
	CourseURL   string  `gorm:"size:512"                json:"courseUrl,omitempty"`
	IsPublished bool    `gorm:"not null;default:false;index" json:"isPublished"`
}

// IsBook reports whether the product is a downloadable book.
func (p Product) IsBook() bool { return p.ProductType == TypeBook }
