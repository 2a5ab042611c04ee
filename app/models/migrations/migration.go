package migrations

import (
	"github.com/Rakhulsr/go-kindergarten/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductDetail{},
		&models.ProductImage{},
		&models.Order{},
		&models.OrderItem{},
	)
}
