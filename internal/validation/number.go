package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/invoiceqc/internal/invoice"
)

// ErrNumberFormat is the sentinel behind every NumberFormatError.
var ErrNumberFormat = errors.New("number format error")

// NumberFormatError reports a string that is not a European-formatted number.
type NumberFormatError struct {
	Input string
}

func (e *NumberFormatError) Error() string {
	return fmt.Sprintf("number_format_error: cannot parse %q", e.Input)
}

func (e *NumberFormatError) Unwrap() error {
	return ErrNumberFormat
}

// ParseEuropeanNumber parses a string using "." as thousands separator and
// "," as decimal separator: "1.234,56" -> 1234.56, "-588,74" -> -588.74.
func ParseEuropeanNumber(s string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Decimal{}, &NumberFormatError{Input: s}
	}

	return d, nil
}

// NormalizeNumber returns nil for an absent value, numeric values unchanged,
// and parses strings with ParseEuropeanNumber.
func NormalizeNumber(v invoice.Value) (*decimal.Decimal, error) {
	if v.Absent() {
		return nil, nil
	}

	if d, ok := v.Numeric(); ok {
		return &d, nil
	}

	d, err := ParseEuropeanNumber(v.String())
	if err != nil {
		return nil, err
	}

	return &d, nil
}

// round2 mirrors the two-decimal comparison used by every arithmetic check.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
