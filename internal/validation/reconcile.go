package validation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/invoiceqc/internal/invoice"
)

// reconcile cross-checks totals. A check whose inputs are missing is skipped,
// not failed: tax_percentage is informational and never reconciled.
func (v *Validator) reconcile(rec *record) {
	if rec.netTotal != nil {
		sum, n := decimal.Zero, 0

		for _, item := range rec.items {
			if item.LineTotal == nil {
				continue
			}

			sum = sum.Add(*item.LineTotal)
			n++
		}

		if n > 0 {
			calculated := round2(sum)
			if !round2(*rec.netTotal).Equal(calculated) {
				rec.add(CodeNetTotalMismatch, invoice.FieldNetTotal,
					fmt.Sprintf("net_total_mismatch: expected %s, got %s", calculated.StringFixed(2), rec.netTotal.String()))
			}
		}
	}

	if rec.netTotal == nil || rec.taxAmount == nil || rec.grossTotal == nil {
		return
	}

	expected := round2(rec.netTotal.Add(*rec.taxAmount))
	if !round2(*rec.grossTotal).Equal(expected) {
		rec.add(CodeGrossTotalMismatch, invoice.FieldGrossTotal,
			fmt.Sprintf("gross_total_mismatch: expected %s, got %s", expected.StringFixed(2), rec.grossTotal.String()))
	}
}
