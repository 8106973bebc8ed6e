package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/inkstore/app/models"
)

func TestPurchaseCreatesCompletedOrderWithSnapshot(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, models.RoleUser)
	product := createProduct(t, db, nil)

	svc := NewCheckoutService()
	order, err := svc.Purchase(asUser(user), product.ID)
	require.NoError(t, err)

	assert.Equal(t, models.OrderCompleted, order.Status)
	assert.NotEmpty(t, order.Reference)
	assert.Equal(t, product.Price, order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, product.ID, order.Items[0].ProductID)
	assert.Equal(t, product.Title, order.Items[0].Title)
	assert.Equal(t, product.Price, order.Items[0].Price)
	assert.Equal(t, product.ProductType, order.Items[0].ProductType)

	var ents int64
	require.NoError(t, db.Model(&models.Entitlement{}).
		Where("user_id = ? AND product_id = ?", user.ID, product.ID).
		Count(&ents).Error)
	assert.EqualValues(t, 1, ents)
}

func TestPurchaseUnknownProduct(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, models.RoleUser)

	_, err := NewCheckoutService().Purchase(asUser(user), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPurchaseTwiceIsRejected(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, models.RoleUser)
	product := createProduct(t, db, nil)

	svc := NewCheckoutService()
	_, err := svc.Purchase(asUser(user), product.ID)
	require.NoError(t, err)

	_, err = svc.Purchase(asUser(user), product.ID)
	assert.ErrorIs(t, err, ErrAlreadyOwned)

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).
		Where("user_id = ?", user.ID).Count(&orders).Error)
	assert.EqualValues(t, 1, orders)
}

func TestConcurrentPurchaseSingleWinner(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, models.RoleUser)
	product := createProduct(t, db, nil)

	svc := NewCheckoutService()
	const attempts = 8

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Purchase(asUser(user), product.ID)
		}(i)
	}
	wg.Wait()

	var wins, rejections int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		default:
			assert.ErrorIs(t, err, ErrAlreadyOwned)
			rejections++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, rejections)

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).
		Where("user_id = ?", user.ID).Count(&orders).Error)
	assert.EqualValues(t, 1, orders)
}

func TestDifferentUsersMayBuySameProduct(t *testing.T) {
	db := setupDB(t)
	a := createUser(t, db, models.RoleUser)
	b := createUser(t, db, models.RoleUser)
	product := createProduct(t, db, nil)

	svc := NewCheckoutService()
	_, err := svc.Purchase(asUser(a), product.ID)
	require.NoError(t, err)
	_, err = svc.Purchase(asUser(b), product.ID)
	require.NoError(t, err)
}
