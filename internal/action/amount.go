package action

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ErrUnparseableAction indicates a line matched an action keyword but its
// amount could not be parsed as a non-negative decimal.
var ErrUnparseableAction = errors.New("unparseable action amount")

// ParseAmount strips any currency prefix (and trailing punctuation) from a
// monetary token and parses the remainder as an exact decimal. A minus sign
// survives the trim so a negative amount is rejected rather than silently
// parsed as its absolute value. Amounts are never handled as binary floats;
// cent-level drift across chained additions is not acceptable.
func ParseAmount(token string) (decimal.Decimal, error) {
	trimmed := strings.TrimFunc(token, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.' && r != '-'
	})
	trimmed = strings.ReplaceAll(trimmed, ",", "")
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnparseableAction, token)
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnparseableAction, token)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: negative amount %q", ErrUnparseableAction, token)
	}
	return amount, nil
}
