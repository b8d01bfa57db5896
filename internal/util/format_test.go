package util

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		thousand string
		decimal  string
		expected string
	}{
		{
			name:     "positive value with default separators",
			value:    "12345.67",
			thousand: ".",
			decimal:  ",",
			expected: "12.345,67",
		},
		{
			name:     "negative value with default separators",
			value:    "-12345.67",
			thousand: ".",
			decimal:  ",",
			expected: "-12.345,67",
		},
		{
			name:     "zero value",
			value:    "0",
			thousand: ".",
			decimal:  ",",
			expected: "0,00",
		},
		{
			name:     "value less than one",
			value:    "0.99",
			thousand: ".",
			decimal:  ",",
			expected: "0,99",
		},
		{
			name:     "value with custom separators",
			value:    "12345.67",
			thousand: ",",
			decimal:  ".",
			expected: "12,345.67",
		},
		{
			name:     "large value",
			value:    "12345678.90",
			thousand: ".",
			decimal:  ",",
			expected: "12.345.678,90",
		},
		{
			name:     "value with no thousands separator",
			value:    "12.34",
			thousand: "",
			decimal:  ",",
			expected: "12,34",
		},
		{
			name:     "value rounded to cents",
			value:    "1.005",
			thousand: ",",
			decimal:  ".",
			expected: "1.01",
		},
		{
			name:     "whole number",
			value:    "1500",
			thousand: ",",
			decimal:  ".",
			expected: "1,500.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatMoney(decimal.RequireFromString(tt.value), tt.thousand, tt.decimal)
			if result != tt.expected {
				t.Errorf("FormatMoney() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		currency string
		expected string
	}{
		{name: "with currency", value: "1234.5", currency: "LKR", expected: "LKR 1,234.50"},
		{name: "without currency", value: "-3", currency: "", expected: "-3.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatCurrency(decimal.RequireFromString(tt.value), tt.currency)
			if result != tt.expected {
				t.Errorf("FormatCurrency() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestFormatPercentage(t *testing.T) {
	if got := FormatPercentage(83.3333); got != "83.33%" {
		t.Errorf("FormatPercentage() = %v, want 83.33%%", got)
	}
}
