package validation

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/invoiceqc/internal/invoice"
)

// AllowedCurrencies is the fixed currency allow-list.
var AllowedCurrencies = []string{"EUR", "USD", "GBP", "INR", "JPY", "AUD", "CAD", "CHF", "CNY"}

var dateSeparators = []string{".", "-", "/"}

func (v *Validator) checkFields(rec *record) {
	raw := rec.raw

	required := []struct {
		name string
		val  invoice.Value
	}{
		{invoice.FieldInvoiceNumber, raw.InvoiceNumber},
		{invoice.FieldSellerName, raw.SellerName},
		{invoice.FieldBuyerName, raw.BuyerName},
		{invoice.FieldInvoiceDate, raw.InvoiceDate},
		{invoice.FieldNetTotal, raw.NetTotal},
		{invoice.FieldGrossTotal, raw.GrossTotal},
	}

	for _, f := range required {
		if f.val.Blank() {
			rec.add(CodeMissingField, f.name, fmt.Sprintf("missing_field: %s", f.name))
		}
	}

	if len(raw.LineItems) == 0 {
		rec.add(CodeMissingField, invoice.FieldLineItems, "missing_field: there should be at least one line item")
	}

	if !raw.InvoiceDate.Blank() {
		v.checkDate(rec)
	}

	numeric := []struct {
		name     string
		val      invoice.Value
		dst      **decimal.Decimal
		unsigned bool
	}{
		{invoice.FieldNetTotal, raw.NetTotal, &rec.netTotal, true},
		{invoice.FieldTaxAmount, raw.TaxAmount, &rec.taxAmount, true},
		{invoice.FieldGrossTotal, raw.GrossTotal, &rec.grossTotal, true},
		{invoice.FieldTaxPercentage, raw.TaxPercentage, &rec.taxPercentage, false},
	}

	for _, f := range numeric {
		if f.val.Blank() {
			continue
		}

		d, err := NormalizeNumber(f.val)
		if err != nil {
			rec.add(CodeNumberFormat, f.name, err.Error())
			continue
		}

		*f.dst = d

		if f.unsigned && d.IsNegative() {
			rec.add(CodeNegativeAmount, f.name, fmt.Sprintf("negative_amount: %s is negative", f.name))
		}
	}

	if raw.Currency.Absent() || !slices.Contains(AllowedCurrencies, raw.Currency.String()) {
		rec.add(CodeInvalidCurrency, invoice.FieldCurrency,
			fmt.Sprintf("invalid_currency: %q is not supported", raw.Currency.String()))
	}
}

func (v *Validator) checkDate(rec *record) {
	date, ok := ParseInvoiceDate(rec.raw.InvoiceDate.String())
	if !ok {
		rec.add(CodeInvalidDateFormat, invoice.FieldInvoiceDate, "invalid_invoice_date_format")
		return
	}

	maxYear := v.clock.Now().Year() + 1
	if date.Year() < MinInvoiceYear || date.Year() > maxYear {
		rec.add(CodeInvalidDateRange, invoice.FieldInvoiceDate,
			fmt.Sprintf("invalid_invoice_date_range: year %d outside [%d, %d]", date.Year(), MinInvoiceYear, maxYear))

		return
	}

	rec.invoiceDate = &date
}

// ParseInvoiceDate accepts exactly three components joined by exactly one of
// ".", "-" or "/". A four-character first component means year-month-day,
// anything else day-month-year.
func ParseInvoiceDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)

	sep := ""

	for _, candidate := range dateSeparators {
		if !strings.Contains(s, candidate) {
			continue
		}

		if sep != "" {
			return time.Time{}, false
		}

		sep = candidate
	}

	if sep == "" {
		return time.Time{}, false
	}

	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return time.Time{}, false
	}

	layout := strings.Join([]string{"2", "1", "2006"}, sep)
	if len(parts[0]) == 4 {
		layout = strings.Join([]string{"2006", "1", "2"}, sep)
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}
