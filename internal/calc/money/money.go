package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Round rounds half away from zero at the given number of decimal places.
func Round(x float64, places int32) float64 {
	return decimal.NewFromFloat(x).Round(places).InexactFloat64()
}

func Round2(x float64) float64 { return Round(x, 2) }

// Rupiah formats an amount as "Rp25,000,000.00"; negatives get a leading minus.
func Rupiah(x float64) string {
	s := Grouped(x, 2)
	if strings.HasPrefix(s, "-") {
		return "-Rp" + s[1:]
	}
	return "Rp" + s
}

// Grouped formats x with thousands separators and the given decimals.
func Grouped(x float64, decimals int) string {
	return printer.Sprintf(fmt.Sprintf("%%.%df", decimals), Round(x, int32(decimals)))
}

func Percent(x float64) string {
	return printer.Sprintf("%.1f%%", x)
}

func Units(x float64) string {
	return Grouped(x, 2)
}
