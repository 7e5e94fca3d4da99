package validation

import "fmt"

// Code classifies a validation failure. Codes are data, never crashes.
type Code string

const (
	CodeMissingField       Code = "missing_field"
	CodeInvalidDateFormat  Code = "invalid_invoice_date_format"
	CodeInvalidDateRange   Code = "invalid_invoice_date_range"
	CodeNegativeAmount     Code = "negative_amount"
	CodeInvalidCurrency    Code = "invalid_currency"
	CodeLineTotalMismatch  Code = "line_total_mismatch"
	CodeNetTotalMismatch   Code = "net_total_mismatch"
	CodeGrossTotalMismatch Code = "gross_total_mismatch"
	CodeDuplicateInvoice   Code = "duplicate_invoice"
	CodeNumberFormat       Code = "number_format_error"
)

// Codes lists the full taxonomy in a stable order.
var Codes = []Code{
	CodeMissingField,
	CodeInvalidDateFormat,
	CodeInvalidDateRange,
	CodeNegativeAmount,
	CodeInvalidCurrency,
	CodeLineTotalMismatch,
	CodeNetTotalMismatch,
	CodeGrossTotalMismatch,
	CodeDuplicateInvoice,
	CodeNumberFormat,
}

// Violation is a single failed check. Field is a path such as "net_total" or
// "line_items[2].quantity"; it is empty for invoice-wide checks.
type Violation struct {
	Code    Code   `json:"code" yaml:"code"`
	Field   string `json:"field,omitempty" yaml:"field,omitempty"`
	Message string `json:"message" yaml:"message"`
}

func (v Violation) String() string {
	if v.Field == "" {
		return v.Message
	}

	return fmt.Sprintf("%s (%s)", v.Message, v.Field)
}

// UniqueCodes returns the codes of vs in first-seen order with repeats collapsed.
func UniqueCodes(vs []Violation) []Code {
	codes := make([]Code, 0, len(vs))
	seen := make(map[Code]bool, len(vs))

	for _, v := range vs {
		if seen[v.Code] {
			continue
		}

		seen[v.Code] = true
		codes = append(codes, v.Code)
	}

	return codes
}

func itemField(idx int, field string) string {
	return fmt.Sprintf("line_items[%d].%s", idx, field)
}
