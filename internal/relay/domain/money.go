package domain

import (
	"fmt"
	"strings"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"CAD": "$",
	"AUD": "$",
}

// FormatAmount renders a minor-unit amount as a display string with a
// currency symbol, e.g. FormatAmount(2000, "usd") == "$20.00". Currencies
// without a known symbol fall back to the uppercased code plus a space:
// FormatAmount(500, "sek") == "SEK 5.00".
func FormatAmount(minorUnits int64, currency string) string {
	code := strings.ToUpper(currency)
	symbol, ok := currencySymbols[code]
	if !ok {
		symbol = code + " "
	}
	return fmt.Sprintf("%s%.2f", symbol, float64(minorUnits)/100)
}
