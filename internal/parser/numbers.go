package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	amountTokenRe = regexp.MustCompile(`^\d[\d.,]*$`)
	intTokenRe    = regexp.MustCompile(`^\d{1,3}$`)
)

// ParseAmount parses a receipt money token. The observed corpus writes
// thousands with "." or ","; a separator followed by exactly three digits is
// a thousands separator, a final one- or two-digit group is a decimal part.
func ParseAmount(tok string) (decimal.Decimal, bool) {
	tok = strings.Trim(tok, ".,")
	if !amountTokenRe.MatchString(tok) {
		return decimal.Zero, false
	}
	groups := strings.FieldsFunc(tok, func(r rune) bool { return r == '.' || r == ',' })
	if len(groups) == 0 {
		return decimal.Zero, false
	}

	var b strings.Builder
	for i, g := range groups {
		if i == 0 {
			b.WriteString(g)
			continue
		}
		last := i == len(groups)-1
		if last && len(g) < 3 {
			b.WriteByte('.')
			b.WriteString(g)
			continue
		}
		if len(g) != 3 {
			// malformed grouping; treat the run as plain digits
			b.WriteString(g)
			continue
		}
		b.WriteString(g)
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseQuantity parses a small positive integer quantity token.
func ParseQuantity(tok string) (int, bool) {
	if !intTokenRe.MatchString(tok) {
		return 0, false
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// QuantityPlausible reports whether a quantity is in the range a single
// receipt line realistically carries.
func QuantityPlausible(q int) bool { return q >= 1 && q <= 99 }

// PricePlausible reports whether an amount is a believable line total.
func PricePlausible(d decimal.Decimal) bool {
	return d.IsPositive() && d.LessThan(decimal.NewFromInt(100_000_000))
}

func decimalFromInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }
