package util

import (
	"fmt"
	"strings"
)

// FormatHM renders seconds as "3 hours 20 minutes", dropping zero components.
// Returns "" when less than a minute was worked.
func FormatHM(seconds float64) string {
	total := int64(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60

	parts := make([]string, 0, 2)
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d hours", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d minutes", minutes))
	}
	return strings.Join(parts, " ")
}

// FormatHours renders seconds as decimal hours with two places.
func FormatHours(seconds float64) string {
	return fmt.Sprintf("%.2f", seconds/3600)
}

// FormatAmount formats an amount without decimals, with comma thousand separators and a
// trailing currency label, e.g. "1,360 Eur".
func FormatAmount(amount float64, currency string) string {
	str := fmt.Sprintf("%.0f", amount)

	negative := strings.HasPrefix(str, "-")
	str = strings.TrimPrefix(str, "-")

	var b strings.Builder
	for i, r := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String()
	if negative {
		out = "-" + out
	}
	if currency == "" {
		return out
	}
	return out + " " + currency
}
