package fakers

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Rakhulsr/go-kindergarten/app/models"
	"github.com/Rakhulsr/go-kindergarten/app/utils/calc"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
)

// OrderFaker builds an order with one to three items from products, created
// at createdAt. Prices are snapshotted the same way public orders are.
func OrderFaker(rng *rand.Rand, products []*models.Product, createdAt time.Time) *models.Order {
	orderID := uuid.New().String()
	notes := faker.Sentence()

	order := &models.Order{
		ID:            orderID,
		CustomerName:  faker.Name(),
		CustomerPhone: fmt.Sprintf("08%010d", rng.Int63n(10_000_000_000)),
		Status:        models.OrderStatuses[rng.Intn(len(models.OrderStatuses))],
		Notes:         &notes,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}

	n := rng.Intn(3) + 1
	for i := 0; i < n; i++ {
		p := products[rng.Intn(len(products))]
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			OrderID:      orderID,
			ProductID:    p.ID,
			Quantity:     rng.Intn(3) + 1,
			PriceAtOrder: calc.FinalPrice(p.Price, p.Discount),
			CreatedAt:    createdAt,
		})
	}
	return order
}
