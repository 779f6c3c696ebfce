package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// currencyMarkers are stripped from a cell before numeric parsing.
// Covers the symbols seen in LATAM and US statements.
var currencyMarkers = []string{"US$", "MX$", "R$", "S/", "$", "€", "£", "¥", "₱"}

// ParseAmount parses a cell as a monetary amount. It tolerates currency
// symbols, thousands separators, percent suffixes, and accounting-style
// parentheses for negatives. Returns false for anything non-numeric.
func ParseAmount(cell string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(cell)
	if s == "" || s == "-" {
		return decimal.Zero, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	for _, m := range currencyMarkers {
		s = strings.ReplaceAll(s, m, "")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

// IsNumeric reports whether the cell parses as an amount.
func IsNumeric(cell string) bool {
	_, ok := ParseAmount(cell)
	return ok
}
