package models

import "gorm.io/gorm"

// Order lifecycle states.
const (
	OrderPending   = "pending"
	OrderCompleted = "completed"
	OrderFailed    = "failed"
)

// Order is a purchase record. Items are denormalized snapshots frozen at
// purchase time; a later product edit never changes a past order.
type Order struct {
	gorm.Model
	Reference   string      `gorm:"size:36;uniqueIndex;not null" json:"reference"`
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	User        User        `gorm:"foreignKey:UserID" json:"-"`
	Items       []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	TotalAmount float64     `gorm:"not null" json:"totalAmount"`
	Status      string      `gorm:"size:20;not null;default:pending;index" json:"status"`
}

// OrderItem is one purchased line. Title, price and type are copied from the
// product at checkout so the order stays truthful after catalogue edits.
type OrderItem struct {
	gorm.Model
	OrderID     uint    `gorm:"not null;index" json:"-"`
	ProductID   uint    `gorm:"not null;index" json:"productId"`
	Title       string  `gorm:"size:255;not null" json:"title"`
	Price       float64 `gorm:"not null" json:"price"`
	ProductType string  `gorm:"size:20;not null" json:"productType"`
}

// Entitlement records that a user owns a product. The composite unique index
// is the store-level guarantee that at most one completed purchase exists per
// (user, product), so two racing checkouts cannot both insert it.
type Entitlement struct {
	gorm.Model
	UserID    uint `gorm:"not null;uniqueIndex:idx_entitlement_user_product" json:"user_id"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_entitlement_user_product" json:"product_id"`
	OrderID   uint `gorm:"not null" json:"order_id"`
}
