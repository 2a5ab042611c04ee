package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Rakhulsr/go-kindergarten/app/helpers"
	"github.com/Rakhulsr/go-kindergarten/app/models"
	"github.com/Rakhulsr/go-kindergarten/app/models/other"
	"github.com/Rakhulsr/go-kindergarten/app/repositories"
	"github.com/Rakhulsr/go-kindergarten/app/utils/calc"
	"gorm.io/gorm"
)

type CreateOrderItemInput struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0,lte=1000"`
}

type CreateOrderInput struct {
	CustomerName  string                 `json:"customerName" validate:"required,max=255"`
	CustomerPhone string                 `json:"customerPhone" validate:"required,min=6,max=30"`
	Notes         *string                `json:"notes" validate:"omitempty,max=2000"`
	Items         []CreateOrderItemInput `json:"items" validate:"required,min=1,dive"`
}

type UpdateOrderInput struct {
	Status *string `json:"status" validate:"omitempty,oneof=PENDING CONTACTED SUCCESS CANCELED"`
	Notes  *string `json:"notes" validate:"omitempty,max=2000"`
}

type OrderService struct {
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
	productRepo   repositories.ProductRepositoryImpl
	notifier      OrderNotifier
}

// NewOrderService accepts a nil notifier.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	orderItemRepo repositories.OrderItemRepository,
	productRepo repositories.ProductRepositoryImpl,
	notifier OrderNotifier,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		productRepo:   productRepo,
		notifier:      notifier,
	}
}

// CreatePublicOrder snapshots each product's current final price into the
// order items and writes the order and its items in one transaction.
func (s *OrderService) CreatePublicOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	ids := make([]string, 0, len(input.Items))
	seen := make(map[string]bool, len(input.Items))
	for _, item := range input.Items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	products, err := s.productRepo.GetActiveByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load order products: %w", err)
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	order := &models.Order{
		CustomerName:  strings.TrimSpace(input.CustomerName),
		CustomerPhone: strings.TrimSpace(input.CustomerPhone),
		Status:        models.OrderStatusPending,
		Notes:         input.Notes,
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	for _, in := range input.Items {
		product, ok := byID[in.ProductID]
		if !ok {
			return nil, helpers.NewValidationError(fmt.Sprintf("Produk %s tidak ditemukan atau tidak aktif.", in.ProductID))
		}
		items = append(items, models.OrderItem{
			ProductID:    product.ID,
			Quantity:     in.Quantity,
			PriceAtOrder: calc.FinalPrice(product.Price, product.Discount),
		})
	}

	err = s.orderRepo.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := s.orderItemRepo.BulkCreate(ctx, tx, items); err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := range items {
		product := byID[items[i].ProductID]
		items[i].Product = &product
	}
	order.OrderItems = items

	if s.notifier != nil {
		if err := s.notifier.NotifyNewOrder(ctx, order); err != nil {
			log.Printf("OrderService.CreatePublicOrder: notification for order %s failed: %v", order.ID, err)
		}
	}

	return order, nil
}

func (s *OrderService) List(ctx context.Context, filter other.OrderFilter) ([]models.Order, int64, error) {
	if filter.Status != "" && !models.IsValidOrderStatus(filter.Status) {
		return nil, 0, helpers.NewValidationError("Status pesanan tidak valid.")
	}
	return s.orderRepo.List(ctx, filter)
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, helpers.NewNotFoundError("Pesanan tidak ditemukan.")
	}
	return order, nil
}

func (s *OrderService) Update(ctx context.Context, id string, input UpdateOrderInput) (*models.Order, error) {
	if input.Status == nil && input.Notes == nil {
		return nil, helpers.NewValidationError("Tidak ada perubahan yang dikirim.")
	}
	if input.Status != nil && !models.IsValidOrderStatus(*input.Status) {
		return nil, helpers.NewValidationError("Status pesanan tidak valid.")
	}

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatusAndNotes(ctx, id, input.Status, input.Notes); err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", id, err)
	}
	return s.Get(ctx, id)
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.orderRepo.Delete(ctx, id)
}
