// Package format holds the pure presentation helpers applied to repository
// results before they reach a template.
package format

import (
	"html/template"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const CurrencySymbol = "$"

const (
	longDateLayout  = "January 2, 2006"
	shortDateLayout = "Jan 02, 2006"
)

var printer = message.NewPrinter(language.English)

// Currency renders an amount with two decimals and thousands grouping: $1,234.50.
func Currency(amount decimal.Decimal) string {
	rounded := amount.Round(2).InexactFloat64()
	return CurrencySymbol + printer.Sprintf("%v", number.Decimal(rounded, number.Scale(2)))
}

// LongDate is used on receipts.
func LongDate(t time.Time) string {
	return t.Format(longDateLayout)
}

// ShortDate is used in the order history table.
func ShortDate(t time.Time) string {
	return t.Format(shortDateLayout)
}

// Status upper-cases the first letter only.
func Status(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Paragraphs escapes s and keeps its line breaks as <br /> tags.
func Paragraphs(s string) template.HTML {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = template.HTMLEscapeString(line)
	}
	return template.HTML(strings.Join(lines, "<br />\n"))
}

// VariantLabel builds "Large / Red"; missing parts render empty.
func VariantLabel(size, colour *string) string {
	return deref(size) + " / " + deref(colour)
}

// LineSubtotal is computed from the price stored on the line, never the
// variant's current price.
func LineSubtotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
