package repositories

import (
	"time"

	"github.com/shashiranjanraj/inkstore/app/models"
	"github.com/shashiranjanraj/inkstore/pkg/orm"
)

// OrderRepository handles database operations for Order and Entitlement.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// CreateCompleted inserts the order (with its item snapshots) and the
// matching entitlement in a single transaction. The entitlement's composite
// unique index makes the insert fail for a second completed purchase of the
// same (user, product), which the caller translates into AlreadyOwned.
func (r *OrderRepository) CreateCompleted(order *models.Order, ent *models.Entitlement) error {
	return orm.DB().Transaction(func(tx *orm.Query) error {
		if err := tx.Create(order); err != nil {
			return err
		}
		ent.OrderID = order.ID
		return tx.Create(ent)
	})
}

// HasEntitlement reports whether the user already owns the product.
func (r *OrderRepository) HasEntitlement(userID, productID uint) (bool, error) {
	n, err := orm.DB().
		Model(&models.Entitlement{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count()
	return n > 0, err
}

// CompletedForUser returns the user's completed orders with their items,
// newest first.
func (r *OrderRepository) CompletedForUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := orm.DB().
		Model(&models.Order{}).
		Where("user_id = ? AND status = ?", userID, models.OrderCompleted).
		Preload("Items").
		OrderBy("created_at DESC").
		Get(&orders)
	return orders, err
}

// AllWithUsers returns every order with items and owning user resolved,
// newest first (admin listing).
func (r *OrderRepository) AllWithUsers() ([]models.Order, error) {
	var orders []models.Order
	err := orm.DB().
		Model(&models.Order{}).
		Preload("Items").
		Preload("User").
		OrderBy("created_at DESC").
		Get(&orders)
	return orders, err
}

// Count returns the total number of orders in any status.
func (r *OrderRepository) Count() (int64, error) {
	return orm.DB().Model(&models.Order{}).Count()
}

// CompletedRevenue sums totalAmount over completed orders; 0 when none exist.
func (r *OrderRepository) CompletedRevenue() (float64, error) {
	return orm.DB().
		Model(&models.Order{}).
		Where("status = ?", models.OrderCompleted).
		Sum("total_amount")
}

// FailStalePending marks pending orders older than cutoff as failed and
// returns how many rows changed. Run by the scheduler; a pending order that
// old means the checkout never finished.
func (r *OrderRepository) FailStalePending(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	return orm.DB().
		Model(&models.Order{}).
		Where("status = ? AND created_at < ?", models.OrderPending, cutoff).
		Updates(map[string]interface{}{"status": models.OrderFailed})
}
