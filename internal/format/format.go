package format

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency formats a major-unit amount in the given ISO currency for lang.
// Unknown currency codes fall back to "<CODE> <amount>".
// Example: Currency(9.5, "en", "EUR") => "€ 9.50"
func Currency(amount float64, lang, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		if code == "" {
			return fmt.Sprintf("%.2f", amount)
		}
		return fmt.Sprintf("%s %.2f", code, amount)
	}
	p := message.NewPrinter(tag)
	return p.Sprint(currency.Symbol(unit.Amount(amount)))
}

// Formatter binds a currency code so templates only pass amount and language.
type Formatter struct {
	Code string
}

// Format renders amount for lang using the bound currency.
func (f Formatter) Format(amount float64, lang string) string {
	return Currency(amount, lang, f.Code)
}
