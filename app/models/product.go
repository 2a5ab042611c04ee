package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProductTypeDigital  = "DIGITAL"
	ProductTypePhysical = "PHYSICAL"
)

type Product struct {
	ID          string         `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Slug        string         `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	Price       int64          `gorm:"not null" json:"price"`
	Discount    *int64         `json:"discount"`
	Type        string         `gorm:"size:20;not null;index" json:"type"`
	IsActive    bool           `gorm:"not null;index" json:"isActive"`
	CategoryID  string         `gorm:"size:36;not null;index" json:"categoryId"`
	Category    *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Detail      *ProductDetail `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"detail,omitempty"`
	Images      []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

type ProductDetail struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	ProductID string    `gorm:"size:36;not null;uniqueIndex" json:"productId"`
	Stock     *int      `json:"stock"`
	Weight    *int      `json:"weight"`
	FileURL   *string   `gorm:"type:text" json:"fileUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (d *ProductDetail) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return
}

type ProductImage struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	ProductID string    `gorm:"size:36;not null;index" json:"productId"`
	URL       string    `gorm:"type:text;not null" json:"url"`
	PublicID  string    `gorm:"size:255" json:"publicId"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (pi *ProductImage) BeforeCreate(tx *gorm.DB) (err error) {
	if pi.ID == "" {
		pi.ID = uuid.New().String()
	}
	return
}
