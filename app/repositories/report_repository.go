package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Rakhulsr/go-kindergarten/app/models"
	"github.com/Rakhulsr/go-kindergarten/app/models/other"
	"gorm.io/gorm"
)

type ReportRepository interface {
	LoadSnapshot(ctx context.Context, start, end time.Time) (*other.ReportSnapshot, error)
	LoadItems(ctx context.Context, start, end time.Time) ([]other.ReportItemRow, error)
	LoadStats(ctx context.Context) (*other.DashboardStats, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func itemsInWindow(db *gorm.DB, start, end time.Time) ([]other.ReportItemRow, error) {
	var rows []other.ReportItemRow
	err := db.Table("order_items").
		Select(`order_items.quantity AS quantity,
			order_items.price_at_order AS price_at_order,
			products.name AS product_name,
			products.type AS product_type,
			orders.status AS order_status,
			orders.created_at AS order_created_at`).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.created_at >= ? AND orders.created_at < ?", start.UTC(), end.UTC()).
		Order("orders.created_at ASC").
		Scan(&rows).Error
	return rows, err
}

// LoadSnapshot reads the items, status counts and summary counters inside one
// transaction so the numbers agree with each other.
func (r *reportRepository) LoadSnapshot(ctx context.Context, start, end time.Time) (*other.ReportSnapshot, error) {
	snapshot := &other.ReportSnapshot{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items, err := itemsInWindow(tx, start, end)
		if err != nil {
			return fmt.Errorf("load report items: %w", err)
		}
		snapshot.Items = items

		err = tx.Model(&models.Order{}).
			Select("status, COUNT(*) AS count").
			Where("created_at >= ? AND created_at < ?", start.UTC(), end.UTC()).
			Group("status").
			Scan(&snapshot.StatusCounts).Error
		if err != nil {
			return fmt.Errorf("load status counts: %w", err)
		}

		summary := &snapshot.Summary
		if err := tx.Model(&models.Product{}).Where("is_active = ?", true).Count(&summary.ActiveProducts).Error; err != nil {
			return fmt.Errorf("count products: %w", err)
		}
		if err := tx.Model(&models.Category{}).Where("is_active = ?", true).Count(&summary.ActiveCategories).Error; err != nil {
			return fmt.Errorf("count categories: %w", err)
		}
		if err := tx.Model(&models.User{}).Count(&summary.Users).Error; err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		if err := tx.Model(&models.Order{}).
			Where("created_at >= ? AND created_at < ?", start.UTC(), end.UTC()).
			Count(&summary.OrdersInWindow).Error; err != nil {
			return fmt.Errorf("count orders: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (r *reportRepository) LoadItems(ctx context.Context, start, end time.Time) ([]other.ReportItemRow, error) {
	rows, err := itemsInWindow(r.db.WithContext(ctx), start, end)
	if err != nil {
		return nil, fmt.Errorf("load transaction items: %w", err)
	}
	return rows, nil
}

// LoadStats returns all-time totals with no date window.
func (r *reportRepository) LoadStats(ctx context.Context) (*other.DashboardStats, error) {
	stats := &other.DashboardStats{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
			return err
		}
		return tx.Model(&models.OrderItem{}).
			Select("COALESCE(SUM(quantity * price_at_order), 0)").
			Row().Scan(&stats.TotalRevenue)
	})
	if err != nil {
		return nil, fmt.Errorf("load dashboard stats: %w", err)
	}
	return stats, nil
}
