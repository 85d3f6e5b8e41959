package assistant

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// currencyRunes are stripped from amount tokens before numeric parsing.
var currencyRunes = "$€£₽¥₴₸"

// isAmountToken reports whether tok contains a digit, i.e. could plausibly
// be an amount.
func isAmountToken(tok string) bool {
	for _, r := range tok {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// parseAmount converts a human-entered amount token into a positive decimal.
// It tolerates currency symbols, comma-as-decimal ("12,50") and thousands
// separators ("1,234.56"). Zero, negative and non-numeric tokens fail.
func parseAmount(tok string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(tok)
	s = strings.Trim(s, currencyRunes)
	// "Rp" / "rp" prefixes show up in Indonesian inputs.
	s = strings.TrimPrefix(strings.TrimPrefix(s, "Rp"), "rp")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	switch {
	case hasComma && hasDot:
		// The rightmost separator is the decimal point, the other groups
		// thousands.
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		parts := strings.Split(s, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			// Decimal comma: "12,5" or "12,50".
			s = parts[0] + "." + parts[1]
		} else {
			// Thousands grouping: "1,234" or "1,234,567".
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}
