package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "PENDING"
	OrderStatusContacted = "CONTACTED"
	OrderStatusSuccess   = "SUCCESS"
	OrderStatusCanceled  = "CANCELED"
)

// OrderStatuses lists every status in display order.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusContacted,
	OrderStatusSuccess,
	OrderStatusCanceled,
}

var OrderStatusLabels = map[string]string{
	OrderStatusPending:   "Menunggu",
	OrderStatusContacted: "Dihubungi",
	OrderStatusSuccess:   "Berhasil",
	OrderStatusCanceled:  "Dibatalkan",
}

func IsValidOrderStatus(status string) bool {
	_, ok := OrderStatusLabels[status]
	return ok
}

type Order struct {
	ID            string      `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	CustomerName  string      `gorm:"size:255;not null" json:"customerName"`
	CustomerPhone string      `gorm:"size:30;not null" json:"customerPhone"`
	Status        string      `gorm:"size:20;not null;index;default:'PENDING'" json:"status"`
	Notes         *string     `gorm:"type:text" json:"notes"`
	OrderItems    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt     time.Time   `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	return
}

// TotalAmount sums quantity * price-at-order over the loaded items.
func (o *Order) TotalAmount() int64 {
	var total int64
	for _, item := range o.OrderItems {
		total += item.Revenue()
	}
	return total
}
