package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToDecimal(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"Float", 905.5, "905.5"},
		{"Int", 10, "10"},
		{"Int64", int64(-3), "-3"},
		{"String", "9050.00", "9050"},
		{"StringWithSpaces", "  200.5  ", "200.5"},
		{"StringWithThousandsSeparator", "1,405.50", "1405.5"},
		{"EmptyString", "", "0"},
		{"NonNumericString", "abc", "0"},
		{"Nil", nil, "0"},
		{"Bytes", []byte("42"), "42"},
		{"UnsupportedType", struct{}{}, "0"},
		{"Decimal", decimal.RequireFromString("7.25"), "7.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDecimal(tt.input)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"ToDecimal(%v) = %s, want %s", tt.input, got, tt.want)
		})
	}
}

func TestNonNegative(t *testing.T) {
	assert.True(t, NonNegative(decimal.NewFromInt(-5)).IsZero())
	assert.True(t, NonNegative(decimal.Zero).IsZero())
	assert.True(t, NonNegative(decimal.NewFromInt(5)).Equal(decimal.NewFromInt(5)))
}
