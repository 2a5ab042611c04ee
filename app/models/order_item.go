package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderItem struct {
	ID           string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OrderID      string    `gorm:"size:36;not null;index" json:"orderId"`
	ProductID    string    `gorm:"size:36;not null;index" json:"productId"`
	Product      *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	PriceAtOrder int64     `gorm:"not null" json:"priceAtOrder"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}

func (oi *OrderItem) Revenue() int64 {
	return int64(oi.Quantity) * oi.PriceAtOrder
}
