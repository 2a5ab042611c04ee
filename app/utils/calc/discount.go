package calc

import "github.com/shopspring/decimal"

func CalculateDiscount(baseTotal, discountPercent decimal.Decimal) decimal.Decimal {
	return baseTotal.Mul(discountPercent).Div(decimal.NewFromInt(100))
}

// FinalPrice subtracts an absolute discount and floors the result at zero.
func FinalPrice(price int64, discount *int64) int64 {
	if discount == nil {
		return price
	}
	final := price - *discount
	if final < 0 {
		return 0
	}
	return final
}

// DiscountPercent expresses an absolute discount as a percentage of price,
// rounded to one decimal place.
func DiscountPercent(price int64, discount *int64) decimal.Decimal {
	if discount == nil || *discount <= 0 || price <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(*discount).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(price)).
		Round(1)
}

// ValidDiscount reports whether 0 <= discount <= price.
func ValidDiscount(price int64, discount *int64) bool {
	if discount == nil {
		return true
	}
	return *discount >= 0 && *discount <= price
}
