package util

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	centsExponent = 2
	centsValue    = 100
	thousandValue = 1000
)

// FormatMoney renders value rounded to cents using the given separators.
func FormatMoney(value decimal.Decimal, thousand, decimalSep string) string {
	var result string

	cents := value.Round(centsExponent).Shift(centsExponent).IntPart()
	isNegative := cents < 0
	if isNegative {
		cents *= -1
	}

	result = fmt.Sprintf("%s%02d", decimalSep, cents%centsValue)
	cents /= centsValue

	// for each 3 digits put the thousand separator
	for cents >= thousandValue {
		result = fmt.Sprintf("%s%03d%s", thousand, cents%thousandValue, result)
		cents /= thousandValue
	}

	if isNegative {
		return fmt.Sprintf("-%d%s", cents, result)
	}

	return fmt.Sprintf("%d%s", cents, result)
}

// FormatCurrency prefixes the formatted amount with a currency code.
func FormatCurrency(value decimal.Decimal, currency string) string {
	amount := FormatMoney(value, ",", ".")
	if currency == "" {
		return amount
	}
	return currency + " " + amount
}

func FormatPercentage(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}
