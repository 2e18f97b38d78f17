package render

import (
	"math"
	"strconv"
	"strings"
)

// FormatMoney renders an amount as the currency symbol followed by the
// value with thousands separators and exactly two decimals. Every
// surface that shows money (preview, PDF, DOCX) goes through this one
// formatter so the string is identical everywhere.
func FormatMoney(symbol string, amount float64) string {
	neg := math.Signbit(amount) && amount != 0
	fixed := strconv.FormatFloat(math.Abs(amount), 'f', 2, 64)

	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(symbol)
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
