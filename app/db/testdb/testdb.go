// Package testdb opens throwaway in-memory databases for package tests and
// inserts the fixtures they share.
package testdb

import (
	"fmt"
	"testing"
	"time"

	"github.com/Rakhulsr/go-kindergarten/app/helpers"
	"github.com/Rakhulsr/go-kindergarten/app/models"
	"github.com/Rakhulsr/go-kindergarten/app/models/migrations"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a migrated sqlite database private to the test. A single
// connection keeps the shared-cache database alive and serialises writers.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migrations.AutoMigrate(db))
	return db
}

func Category(t testing.TB, db *gorm.DB, name string, active bool) *models.Category {
	t.Helper()

	category := &models.Category{Name: name, Slug: uuid.NewString()[:8] + "-" + name, IsActive: active}
	require.NoError(t, db.Create(category).Error)
	return category
}

func Product(t testing.TB, db *gorm.DB, category *models.Category, name, productType string, price int64, discount *int64) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:       name,
		Slug:       uuid.NewString()[:8] + "-" + name,
		Price:      price,
		Discount:   discount,
		Type:       productType,
		IsActive:   true,
		CategoryID: category.ID,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

// Item is one line of an order fixture.
type Item struct {
	Product  *models.Product
	Quantity int
	Price    int64
}

func Order(t testing.TB, db *gorm.DB, status string, createdAt time.Time, items ...Item) *models.Order {
	t.Helper()

	order := &models.Order{
		CustomerName:  "Ibu Sari",
		CustomerPhone: "081234567890",
		Status:        status,
		CreatedAt:     createdAt.UTC(),
		UpdatedAt:     createdAt.UTC(),
	}
	for _, it := range items {
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			ProductID:    it.Product.ID,
			Quantity:     it.Quantity,
			PriceAtOrder: it.Price,
			CreatedAt:    createdAt.UTC(),
		})
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

// Password is the plain-text password of every User fixture.
const Password = "rahasia123"

func User(t testing.TB, db *gorm.DB, email, role string) *models.User {
	t.Helper()

	hash, err := helpers.HashPassword(Password)
	require.NoError(t, err)

	user := &models.User{Name: "Admin " + role, Email: email, Password: hash, Role: role}
	require.NoError(t, db.Create(user).Error)
	return user
}
