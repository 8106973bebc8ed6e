package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/inkstore/app/models"
)

func TestDashboardRevenueCountsCompletedOnly(t *testing.T) {
	db := setupDB(t)
	admin := createUser(t, db, models.RoleAdmin)
	buyer := createUser(t, db, models.RoleUser)

	checkout := NewCheckoutService()
	for _, price := range []float64{10, 20, 30} {
		p := createProduct(t, db, func(pr *models.Product) { pr.Price = price })
		_, err := checkout.Purchase(asUser(buyer), p.ID)
		require.NoError(t, err)
	}

	// A pending order must not contribute to revenue.
	require.NoError(t, db.Create(&models.Order{
		Reference:   "pending-ref",
		UserID:      buyer.ID,
		TotalAmount: 999,
		Status:      models.OrderPending,
	}).Error)

	stats, err := NewAdminService().Dashboard(asUser(admin))
	require.NoError(t, err)
	assert.EqualValues(t, 60, stats.TotalRevenue)
	assert.EqualValues(t, 3, stats.ProductCount)
	assert.EqualValues(t, 2, stats.UserCount)
	assert.EqualValues(t, 4, stats.OrderCount)
	assert.EqualValues(t, 15, stats.AvgOrderValue)
}

func TestDashboardEmptyStoreHasZeroRevenue(t *testing.T) {
	db := setupDB(t)
	admin := createUser(t, db, models.RoleAdmin)

	stats, err := NewAdminService().Dashboard(asUser(admin))
	require.NoError(t, err)
	assert.Zero(t, stats.TotalRevenue)
	assert.Zero(t, stats.OrderCount)
	assert.Zero(t, stats.AvgOrderValue)
}

func TestAdminEndpointsRejectNonAdmins(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, models.RoleUser)

	svc := NewAdminService()

	_, err := svc.Dashboard(asUser(user))
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.ListUsers(asUser(user), 1, 10)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.ListOrders(asUser(user))
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.RecentProducts(asUser(user), 5)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListOrdersResolvesBuyers(t *testing.T) {
	db := setupDB(t)
	admin := createUser(t, db, models.RoleAdmin)
	buyer := createUser(t, db, models.RoleUser)
	product := createProduct(t, db, nil)

	_, err := NewCheckoutService().Purchase(asUser(buyer), product.ID)
	require.NoError(t, err)

	orders, err := NewAdminService().ListOrders(asUser(admin))
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, buyer.Email, orders[0].User.Email)
	require.Len(t, orders[0].Items, 1)
}

func TestRecentProductsIncludesDrafts(t *testing.T) {
	db := setupDB(t)
	admin := createUser(t, db, models.RoleAdmin)
	createProduct(t, db, func(p *models.Product) { p.IsPublished = false })
	createProduct(t, db, nil)

	recent, err := NewAdminService().RecentProducts(asUser(admin), 5)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}
