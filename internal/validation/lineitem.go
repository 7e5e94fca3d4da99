package validation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/invoiceqc/internal/invoice"
)

// LineItemResult holds the normalized numbers of one raw line item. A nil
// number was either absent or failed to parse.
type LineItemResult struct {
	Quantity     *decimal.Decimal
	PricePerUnit *decimal.Decimal
	LineTotal    *decimal.Decimal
	Violations   []Violation
}

func (r LineItemResult) Valid() bool {
	return len(r.Violations) == 0
}

func (v *Validator) checkLineItems(rec *record) {
	rec.items = make([]LineItemResult, len(rec.raw.LineItems))

	for i, raw := range rec.raw.LineItems {
		res := ValidateLineItem(i, raw)
		rec.items[i] = res
		rec.violations = append(rec.violations, res.Violations...)
	}
}

// ValidateLineItem normalizes a single item and checks
// round(quantity*price_per_unit, 2) == round(line_total, 2).
// idx only labels the violation fields; problems never leak to siblings.
func ValidateLineItem(idx int, raw invoice.RawLineItem) LineItemResult {
	var (
		res     LineItemResult
		missing []string
	)

	fields := []struct {
		name string
		val  invoice.Value
		dst  **decimal.Decimal
	}{
		{invoice.FieldQuantity, raw.Quantity, &res.Quantity},
		{invoice.FieldPricePerUnit, raw.PricePerUnit, &res.PricePerUnit},
		{invoice.FieldLineTotal, raw.LineTotal, &res.LineTotal},
	}

	for _, f := range fields {
		if f.val.Blank() {
			missing = append(missing, f.name)
			continue
		}

		d, err := NormalizeNumber(f.val)
		if err != nil {
			res.Violations = append(res.Violations, Violation{
				Code:    CodeNumberFormat,
				Field:   itemField(idx, f.name),
				Message: err.Error(),
			})

			continue
		}

		*f.dst = d
	}

	for _, name := range missing {
		res.Violations = append(res.Violations, Violation{
			Code:    CodeMissingField,
			Field:   itemField(idx, name),
			Message: fmt.Sprintf("missing_field: %s", name),
		})
	}

	if res.Quantity == nil || res.PricePerUnit == nil || res.LineTotal == nil {
		return res
	}

	expected := round2(res.Quantity.Mul(*res.PricePerUnit))
	if !round2(*res.LineTotal).Equal(expected) {
		res.Violations = append(res.Violations, Violation{
			Code:  CodeLineTotalMismatch,
			Field: itemField(idx, invoice.FieldLineTotal),
			Message: fmt.Sprintf("line_total_mismatch: expected %s, got %s",
				expected.StringFixed(2), res.LineTotal.String()),
		})
	}

	return res
}
