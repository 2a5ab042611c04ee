package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rakhulsr/go-kindergarten/app/models"
	"github.com/Rakhulsr/go-kindergarten/app/models/other"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, filter other.OrderFilter) ([]models.Order, int64, error)
	UpdateStatusAndNotes(ctx context.Context, orderID string, status *string, notes *string) error
	Delete(ctx context.Context, id string) error
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

// Create inserts only the order row; items go through OrderItemRepository on
// the same tx.
func (r *gormOrderRepository) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return tx.WithContext(ctx).Omit("OrderItems").Create(order).Error
}

func (r *gormOrderRepository) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *gormOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order

	err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Preload("OrderItems.Product").
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) List(ctx context.Context, filter other.OrderFilter) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	scope := func(db *gorm.DB) *gorm.DB {
		if filter.Status != "" {
			db = db.Where("status = ?", filter.Status)
		}
		if filter.Search != "" {
			keyword := containsPattern(filter.Search)
			db = db.Where("LOWER(customer_name) LIKE ? ESCAPE '!' OR customer_phone LIKE ? ESCAPE '!'", keyword, keyword)
		}
		return db
	}

	if err := r.db.WithContext(ctx).Model(&models.Order{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	err := r.db.WithContext(ctx).
		Scopes(scope).
		Preload("OrderItems").
		Preload("OrderItems.Product").
		Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}

// UpdateStatusAndNotes touches only the fields that are non-nil.
func (r *gormOrderRepository) UpdateStatusAndNotes(ctx context.Context, orderID string, status *string, notes *string) error {
	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if status != nil {
		updates["status"] = *status
	}
	if notes != nil {
		updates["notes"] = *notes
	}
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Updates(updates).Error
}

func (r *gormOrderRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, "id = ?", id).Error
	})
}
