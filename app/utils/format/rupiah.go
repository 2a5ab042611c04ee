package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var rupiah = accounting.Accounting{Symbol: "Rp ", Precision: 0, Thousand: ".", Decimal: ","}

// FormatRupiah renders amounts as "Rp 1.250.000". Unsupported inputs render as
// "Rp 0".
func FormatRupiah(amount interface{}) string {
	var decAmount decimal.Decimal
	switch v := amount.(type) {
	case decimal.Decimal:
		decAmount = v
	case float64:
		decAmount = decimal.NewFromFloat(v)
	case int:
		decAmount = decimal.NewFromInt(int64(v))
	case int64:
		decAmount = decimal.NewFromInt(v)
	case string:
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			return "Rp 0"
		}
		decAmount = parsed
	default:
		return "Rp 0"
	}

	return rupiah.FormatMoneyDecimal(decAmount)
}
