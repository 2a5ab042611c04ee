package fakers

import (
	"math/rand"

	"github.com/Rakhulsr/go-kindergarten/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

var categoryNames = []string{
	"Kelas Reguler",
	"Kelas Bilingual",
	"Ekstrakurikuler",
	"Paket Belajar Digital",
	"Perlengkapan Sekolah",
}

func CategoryFakers() []*models.Category {
	categories := make([]*models.Category, 0, len(categoryNames))
	for _, name := range categoryNames {
		categories = append(categories, &models.Category{
			ID:       uuid.New().String(),
			Name:     name,
			Slug:     slug.Make(name),
			IsActive: true,
		})
	}
	return categories
}

func ProductFaker(rng *rand.Rand, category *models.Category) *models.Product {
	name := faker.Word() + " " + faker.Word()
	productID := uuid.New().String()

	productType := models.ProductTypePhysical
	if rng.Intn(2) == 0 {
		productType = models.ProductTypeDigital
	}

	price := fakePrice(rng)
	var discount *int64
	if rng.Intn(3) == 0 {
		d := price / 10
		discount = &d
	}

	detail := &models.ProductDetail{ProductID: productID}
	if productType == models.ProductTypePhysical {
		stock := rng.Intn(50) + 1
		weight := (rng.Intn(20) + 1) * 100
		detail.Stock = &stock
		detail.Weight = &weight
	} else {
		url := "https://example.com/materi/" + slug.Make(name) + ".pdf"
		detail.FileURL = &url
	}

	return &models.Product{
		ID:          productID,
		Name:        name,
		Slug:        slug.Make(name + "-" + productID[:6]),
		Description: faker.Paragraph(),
		Price:       price,
		Discount:    discount,
		Type:        productType,
		IsActive:    rng.Intn(10) > 0,
		CategoryID:  category.ID,
		Detail:      detail,
		Images: []models.ProductImage{{
			ProductID: productID,
			URL:       "/static/images/programs/placeholder.jpg",
			Position:  0,
		}},
	}
}

// fakePrice returns a round rupiah amount between 50.000 and 5.000.000.
func fakePrice(rng *rand.Rand) int64 {
	return int64(rng.Intn(100)+1) * 50000
}
