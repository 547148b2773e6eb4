package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ToDecimal coerces arbitrary input to a decimal amount.
// Malformed input never errors; it degrades to zero so that a bad cell or
// form field cannot abort a recomputation.
func ToDecimal(val any) decimal.Decimal {
	switch v := val.(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case float32:
		return decimal.NewFromFloat32(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case int32:
		return decimal.NewFromInt32(v)
	case uint:
		return decimal.NewFromInt(int64(v))
	case uint64:
		return decimal.NewFromInt(int64(v))
	case string:
		return parseDecimal(v)
	case []byte:
		return parseDecimal(string(v))
	case nil:
		return decimal.Zero
	default:
		return decimal.Zero
	}
}

// NonNegative clamps negative amounts to zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func parseDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
