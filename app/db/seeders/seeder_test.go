package seeders

import (
	"testing"
	"time"

	"github.com/Rakhulsr/go-kindergarten/app/db/testdb"
	"github.com/Rakhulsr/go-kindergarten/app/models"
	"github.com/Rakhulsr/go-kindergarten/app/utils/calc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBSeed(t *testing.T) {
	db := testdb.Open(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	opts := Options{ProductsPerCategory: 2, Orders: 20, Days: 30, Seed: 42, Now: now}
	require.NoError(t, DBSeed(db, opts))

	var categories, products, orders int64
	require.NoError(t, db.Model(&models.Category{}).Count(&categories).Error)
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.Equal(t, int64(5), categories)
	assert.Equal(t, int64(10), products)
	assert.Equal(t, int64(20), orders)

	var seeded []models.Order
	require.NoError(t, db.Preload("OrderItems.Product").Find(&seeded).Error)
	for _, order := range seeded {
		assert.True(t, models.IsValidOrderStatus(order.Status))
		assert.False(t, order.CreatedAt.After(now), "order %s in the future", order.ID)
		assert.False(t, order.CreatedAt.Before(now.AddDate(0, 0, -30)), "order %s too old", order.ID)

		require.NotEmpty(t, order.OrderItems)
		for _, item := range order.OrderItems {
			require.NotNil(t, item.Product)
			assert.Equal(t, calc.FinalPrice(item.Product.Price, item.Product.Discount), item.PriceAtOrder)
		}
	}

	assert.ErrorIs(t, DBSeed(db, opts), ErrAlreadySeeded)
}
