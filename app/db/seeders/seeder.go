package seeders

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/Rakhulsr/go-kindergarten/app/db/fakers"
	"github.com/Rakhulsr/go-kindergarten/app/models"
	"gorm.io/gorm"
)

var ErrAlreadySeeded = errors.New("database already contains categories, refusing to seed")

type Options struct {
	ProductsPerCategory int
	Orders              int
	Days                int
	Seed                int64
	Now                 time.Time
}

func DefaultOptions() Options {
	return Options{
		ProductsPerCategory: 4,
		Orders:              120,
		Days:                90,
		Seed:                time.Now().UnixNano(),
		Now:                 time.Now(),
	}
}

// DBSeed fills the catalog and a history of orders spread over the last
// opts.Days days. Everything is written in one transaction.
func DBSeed(db *gorm.DB, opts Options) error {
	rng := rand.New(rand.NewSource(opts.Seed))

	return db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Category{}).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadySeeded
		}

		categories := fakers.CategoryFakers()
		var products []*models.Product

		for _, category := range categories {
			if err := tx.Create(category).Error; err != nil {
				return fmt.Errorf("seed category %s: %w", category.Name, err)
			}
			for i := 0; i < opts.ProductsPerCategory; i++ {
				product := fakers.ProductFaker(rng, category)
				if err := tx.Create(product).Error; err != nil {
					return fmt.Errorf("seed product %s: %w", product.Name, err)
				}
				products = append(products, product)
			}
		}

		if len(products) == 0 {
			return nil
		}

		span := time.Duration(opts.Days) * 24 * time.Hour
		for i := 0; i < opts.Orders; i++ {
			createdAt := opts.Now.Add(-time.Duration(rng.Int63n(int64(span)))).UTC()
			order := fakers.OrderFaker(rng, products, createdAt)
			if err := tx.Create(order).Error; err != nil {
				return fmt.Errorf("seed order: %w", err)
			}
		}

		log.Printf("Seeded %d categories, %d products, %d orders", len(categories), len(products), opts.Orders)
		return nil
	})
}
