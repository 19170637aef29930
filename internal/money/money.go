// Package money renders decimal amounts as display strings.
// Grouping follows the Indian numbering convention used by the store
// frontend: the last three integer digits form one group, every group
// before that has two digits (12,34,567.50).
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Format renders amount with two decimal places behind the given
// currency symbol, e.g. Format("Rs.", 1234567.5) == "Rs. 12,34,567.50".
func Format(symbol string, amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	if neg {
		fixed = fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	grouped := groupIndian(intPart)

	var b strings.Builder
	b.WriteString(symbol)
	b.WriteByte(' ')
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(grouped)
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// groupIndian inserts commas into a digit string: last group of three,
// then groups of two.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	groups = append(groups, tail)
	return strings.Join(groups, ",")
}
