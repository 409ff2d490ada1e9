// Package format renders values the way Brazilian customers read them.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brazil = message.NewPrinter(language.BrazilianPortuguese)

// Currency formats an amount as Brazilian reais, e.g. "R$ 1.234,56".
func Currency(amount decimal.Decimal) string {
	value, _ := amount.Round(2).Float64()
	return brazil.Sprintf("R$ %.2f", value)
}

// CEP formats a postal code as XXXXX-XXX. Missing leading zeros are restored.
func CEP(cep string) string {
	digits := Digits(cep)
	if len(digits) < 8 {
		digits = strings.Repeat("0", 8-len(digits)) + digits
	}
	return digits[:5] + "-" + digits[5:]
}

// Digits drops every character that is not an ASCII digit.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Date formats t as dd/MM/yyyy HH:mm:ss in the given location.
func Date(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("02/01/2006 15:04:05")
}
