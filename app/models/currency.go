package models

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	copPrinter = message.NewPrinter(language.MustParse("es-CO"))
	cop        = currency.MustParseISO("COP")
)

// FormatCOP renders an amount as Colombian pesos in the es-CO locale.
func FormatCOP(v float64) string {
	return copPrinter.Sprintf("%v", currency.Symbol(cop.Amount(v)))
}
