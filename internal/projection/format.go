package projection

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const dateLayout = "Jan 2, 2006"

var printer = message.NewPrinter(language.AmericanEnglish)

// Currency formats d as US dollars, e.g. "$1,250.00" or "-$200.00".
func Currency(d decimal.Decimal) string {
	sign := ""
	if d.Round(2).IsNegative() {
		sign = "-"
	}

	return sign + "$" + printer.Sprintf("%.2f", d.Abs().Round(2).InexactFloat64())
}

// SignedCurrency always carries a sign, "+$1,000.00" for income and
// "-$200.00" for expenses.
func SignedCurrency(d decimal.Decimal, positive bool) string {
	if positive {
		return "+" + Currency(d.Abs())
	}

	return "-" + Currency(d.Abs())
}
