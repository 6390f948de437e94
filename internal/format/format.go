// Package format renders prices and dates for templates.
package format

import (
	"fmt"
	"strings"
	"time"
)

// Currency formats amount in minor units. Whole amounts drop the decimals.
// Example: FmtCurrency(49900, "USD", "en") => "$499"; FmtCurrency(49950, "SEK", "sv") => "499,50 kr"
func FmtCurrency(minor int64, currency, lang string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	neg := minor < 0
	if neg {
		minor = -minor
	}
	major, cents := minor/100, minor%100
	sep, dec := ",", "."
	if isSwedish(lang) {
		sep, dec = " ", ","
	}
	amount := thousandSep(major, sep)
	if cents != 0 {
		amount += dec + fmt.Sprintf("%02d", cents)
	}
	var out string
	switch currency {
	case "USD":
		out = "$" + amount
	case "EUR":
		if isSwedish(lang) {
			out = amount + " €"
		} else {
			out = "€" + amount
		}
	case "SEK":
		out = amount + " kr"
	default:
		out = currency + " " + amount
	}
	if neg {
		return "-" + out
	}
	return out
}

// Decimal renders minor units as a plain decimal string ("499.00") for machine-readable output.
func Decimal(minor int64) string {
	sign := ""
	if minor < 0 {
		sign, minor = "-", -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}

func thousandSep(n int64, sep string) string {
	s := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			b.WriteString(sep)
		}
		b.WriteRune(c)
	}
	return b.String()
}

// FmtDate formats time in a locale-friendly short form.
func FmtDate(t time.Time, lang string) string {
	if isSwedish(lang) {
		return t.Format("2006-01-02")
	}
	return t.Format("Jan 2, 2006")
}

func isSwedish(lang string) bool {
	return strings.HasPrefix(strings.ToLower(lang), "sv")
}
