package calc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func ptr(v int64) *int64 { return &v }

func TestFinalPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    int64
		discount *int64
		want     int64
	}{
		{"no discount", 100000, nil, 100000},
		{"absolute discount", 100000, ptr(20000), 80000},
		{"discount equals price", 50000, ptr(50000), 0},
		{"discount above price floors at zero", 50000, ptr(75000), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FinalPrice(tt.price, tt.discount))
		})
	}
}

func TestDiscountPercent(t *testing.T) {
	assert.True(t, decimal.NewFromInt(20).Equal(DiscountPercent(100000, ptr(20000))))
	assert.True(t, decimal.RequireFromString("33.3").Equal(DiscountPercent(30000, ptr(10000))))
	assert.True(t, decimal.Zero.Equal(DiscountPercent(0, ptr(10))))
	assert.True(t, decimal.Zero.Equal(DiscountPercent(100000, nil)))
}

func TestValidDiscount(t *testing.T) {
	assert.True(t, ValidDiscount(100, nil))
	assert.True(t, ValidDiscount(100, ptr(100)))
	assert.False(t, ValidDiscount(100, ptr(101)))
	assert.False(t, ValidDiscount(100, ptr(-1)))
}

func TestCalculateDiscount(t *testing.T) {
	got := CalculateDiscount(decimal.NewFromInt(250000), decimal.NewFromInt(10))
	assert.True(t, decimal.NewFromInt(25000).Equal(got))
}
