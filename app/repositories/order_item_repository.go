package repositories

import (
	"context"

	"github.com/Rakhulsr/go-kindergarten/app/models"
	"gorm.io/gorm"
)

type OrderItemRepository interface {
	BulkCreate(ctx context.Context, db *gorm.DB, items []models.OrderItem) error
	CountByProductID(ctx context.Context, productID string) (int64, error)
}

type OrderItemRepositoryImpl struct {
	DB *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &OrderItemRepositoryImpl{DB: db}
}

// BulkCreate runs on db so callers can pass an open transaction.
func (r *OrderItemRepositoryImpl) BulkCreate(ctx context.Context, db *gorm.DB, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&items).Error
}

func (r *OrderItemRepositoryImpl) CountByProductID(ctx context.Context, productID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.OrderItem{}).Where("product_id = ?", productID).Count(&count).Error
	return count, err
}
