package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/Rakhulsr/go-kindergarten/app/db/testdb"
	"github.com/Rakhulsr/go-kindergarten/app/helpers"
	"github.com/Rakhulsr/go-kindergarten/app/models"
	"github.com/Rakhulsr/go-kindergarten/app/models/other"
	"github.com/Rakhulsr/go-kindergarten/app/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingNotifier struct {
	orders []*models.Order
	err    error
}

func (n *recordingNotifier) NotifyNewOrder(ctx context.Context, order *models.Order) error {
	n.orders = append(n.orders, order)
	return n.err
}

func newOrderService(t *testing.T, notifier OrderNotifier) (*OrderService, *gorm.DB) {
	t.Helper()
	db := testdb.Open(t)
	svc := NewOrderService(
		repositories.NewOrderRepository(db),
		repositories.NewOrderItemRepository(db),
		repositories.NewProductRepository(db),
		notifier,
	)
	return svc, db
}

func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }

func TestCreatePublicOrder_SnapshotsFinalPrice(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, db := newOrderService(t, notifier)
	ctx := context.Background()

	category := testdb.Category(t, db, "seragam", true)
	product := testdb.Product(t, db, category, "Seragam Olahraga", models.ProductTypePhysical, 100000, int64Ptr(20000))

	order, err := svc.CreatePublicOrder(ctx, CreateOrderInput{
		CustomerName:  "  Ibu Rina ",
		CustomerPhone: "081298765432",
		Items:         []CreateOrderItemInput{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Ibu Rina", order.CustomerName)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, int64(80000), order.OrderItems[0].PriceAtOrder)
	assert.Equal(t, int64(160000), order.TotalAmount())
	require.Len(t, notifier.orders, 1)
	assert.Equal(t, order.ID, notifier.orders[0].ID)

	// A later price change does not touch the stored snapshot.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).Update("price", 250000).Error)

	stored, err := svc.Get(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, stored.OrderItems, 1)
	assert.Equal(t, int64(80000), stored.OrderItems[0].PriceAtOrder)
	assert.Equal(t, "Seragam Olahraga", stored.OrderItems[0].Product.Name)
}

func TestCreatePublicOrder_RejectsUnavailableProducts(t *testing.T) {
	svc, db := newOrderService(t, nil)
	ctx := context.Background()

	category := testdb.Category(t, db, "buku", true)
	inactive := testdb.Product(t, db, category, "Buku Lama", models.ProductTypePhysical, 50000, nil)
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)

	tests := []struct {
		name      string
		productID string
	}{
		{"inactive product", inactive.ID},
		{"unknown product", "does-not-exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePublicOrder(ctx, CreateOrderInput{
				CustomerName:  "Pak Joko",
				CustomerPhone: "0811111111",
				Items:         []CreateOrderItemInput{{ProductID: tt.productID, Quantity: 1}},
			})
			assert.Equal(t, http.StatusBadRequest, helpers.StatusOf(err))
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreatePublicOrder_NotifierFailureIsIgnored(t *testing.T) {
	svc, db := newOrderService(t, &recordingNotifier{err: errors.New("smtp down")})

	category := testdb.Category(t, db, "buku", true)
	product := testdb.Product(t, db, category, "Buku Gambar", models.ProductTypePhysical, 25000, nil)

	order, err := svc.CreatePublicOrder(context.Background(), CreateOrderInput{
		CustomerName:  "Pak Joko",
		CustomerPhone: "0811111111",
		Items: []CreateOrderItemInput{
			{ProductID: product.ID, Quantity: 1},
			{ProductID: product.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)
	assert.Len(t, order.OrderItems, 2)
	assert.Equal(t, int64(100000), order.TotalAmount())
}

func TestOrderService_UpdateListDelete(t *testing.T) {
	svc, db := newOrderService(t, nil)
	ctx := context.Background()

	category := testdb.Category(t, db, "buku", true)
	product := testdb.Product(t, db, category, "Buku Gambar", models.ProductTypePhysical, 25000, nil)
	older := testdb.Order(t, db, models.OrderStatusPending, time.Now().Add(-2*time.Hour), testdb.Item{Product: product, Quantity: 1, Price: 25000})
	newer := testdb.Order(t, db, models.OrderStatusSuccess, time.Now().Add(-time.Hour), testdb.Item{Product: product, Quantity: 2, Price: 25000})

	t.Run("list newest first", func(t *testing.T) {
		orders, total, err := svc.List(ctx, other.OrderFilter{PageQuery: other.PageQuery{Page: 1, Limit: 10}})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, orders, 2)
		assert.Equal(t, newer.ID, orders[0].ID)
	})

	t.Run("list by status", func(t *testing.T) {
		orders, total, err := svc.List(ctx, other.OrderFilter{PageQuery: other.PageQuery{Page: 1, Limit: 10}, Status: models.OrderStatusPending})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, older.ID, orders[0].ID)

		_, _, err = svc.List(ctx, other.OrderFilter{PageQuery: other.PageQuery{Page: 1, Limit: 10}, Status: "LOST"})
		assert.Equal(t, http.StatusBadRequest, helpers.StatusOf(err))
	})

	t.Run("update requires a change", func(t *testing.T) {
		_, err := svc.Update(ctx, older.ID, UpdateOrderInput{})
		assert.Equal(t, http.StatusBadRequest, helpers.StatusOf(err))
	})

	t.Run("update rejects unknown status", func(t *testing.T) {
		_, err := svc.Update(ctx, older.ID, UpdateOrderInput{Status: strPtr("LOST")})
		assert.Equal(t, http.StatusBadRequest, helpers.StatusOf(err))
	})

	t.Run("update missing order", func(t *testing.T) {
		_, err := svc.Update(ctx, "missing", UpdateOrderInput{Status: strPtr(models.OrderStatusContacted)})
		assert.Equal(t, http.StatusNotFound, helpers.StatusOf(err))
	})

	t.Run("update status and notes", func(t *testing.T) {
		updated, err := svc.Update(ctx, older.ID, UpdateOrderInput{
			Status: strPtr(models.OrderStatusContacted),
			Notes:  strPtr("Sudah ditelepon"),
		})
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusContacted, updated.Status)
		require.NotNil(t, updated.Notes)
		assert.Equal(t, "Sudah ditelepon", *updated.Notes)
	})

	t.Run("delete removes items", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, newer.ID))

		var items int64
		require.NoError(t, db.Model(&models.OrderItem{}).Where("order_id = ?", newer.ID).Count(&items).Error)
		assert.Zero(t, items)

		assert.Equal(t, http.StatusNotFound, helpers.StatusOf(svc.Delete(ctx, newer.ID)))
	})
}
