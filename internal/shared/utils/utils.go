package utils

import (
	"github.com/shopspring/decimal"
)

// NullDecimalToFloat - NULL (vd: AVG trên tập rỗng) trả về nil, không bao giờ 0
func NullDecimalToFloat(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f := d.Decimal.InexactFloat64()
	return &f
}
