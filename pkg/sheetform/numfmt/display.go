package numfmt

import (
	"strconv"
	"strings"

	"github.com/ukaji3/sheetform-go/pkg/sheetform/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PercentFormat is the mask forced on cells restored from a percent display value.
const PercentFormat = "0%"

// Currency symbols in lookup priority order; "$" is the fallback.
const (
	Dollar = "$"
	Euro   = "€"
	Yen    = "¥"
)

var currencyMasks = map[string]string{
	Dollar: `"$"#,##0.00`,
	Euro:   `"€"#,##0.00`,
	Yen:    `"¥"#,##0.00`,
}

var grouping = message.NewPrinter(language.English)

// IsPercent reports whether the code is a percent mask.
func IsPercent(code string) bool {
	return strings.Contains(code, "%")
}

// CurrencySymbol returns the currency symbol for a currency mask, or "" when the code is
// not a currency mask.
func CurrencySymbol(code string) string {
	switch {
	case strings.Contains(code, Euro):
		return Euro
	case strings.Contains(code, Yen):
		return Yen
	case strings.Contains(code, Dollar):
		return Dollar
	default:
		return ""
	}
}

// CurrencyMask returns the mask written for a currency symbol.
func CurrencyMask(symbol string) (string, bool) {
	mask, ok := currencyMasks[symbol]
	return mask, ok
}

// DisplayValue derives the percent/currency overlay for a numeric value. Non-numeric values
// and other masks have no overlay.
func DisplayValue(value any, code string) *string {
	var s string
	switch x := value.(type) {
	case int64:
		if IsPercent(code) {
			s = strconv.FormatInt(x*100, 10) + "%"
		} else if sym := CurrencySymbol(code); sym != "" {
			s = sym + grouping.Sprintf("%.2f", float64(x))
		} else {
			return nil
		}
	case float64:
		if IsPercent(code) {
			s = models.FormatFloat(x*100) + "%"
		} else if sym := CurrencySymbol(code); sym != "" {
			s = sym + grouping.Sprintf("%.2f", x)
		} else {
			return nil
		}
	default:
		return nil
	}
	return &s
}

// ParsePercent inverts a percent overlay such as "25.0%" into 0.25.
func ParsePercent(display string) (float64, bool) {
	if !strings.HasSuffix(display, "%") {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(display, "%")), 64)
	if err != nil {
		return 0, false
	}
	return v / 100, true
}

// SplitCurrency splits a currency overlay such as "$1,234.50" into its symbol and the
// amount text without grouping separators.
func SplitCurrency(display string) (symbol, amount string, ok bool) {
	for _, sym := range []string{Dollar, Euro, Yen} {
		if strings.HasPrefix(display, sym) {
			return sym, strings.ReplaceAll(strings.TrimPrefix(display, sym), ",", ""), true
		}
	}
	return "", "", false
}

// ParseCurrency inverts a currency overlay into its symbol and amount.
func ParseCurrency(display string) (symbol string, amount float64, ok bool) {
	symbol, text, ok := SplitCurrency(display)
	if !ok {
		return "", 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return "", 0, false
	}
	return symbol, v, true
}
