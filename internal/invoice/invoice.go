package invoice

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is applied when a raw invoice carries no currency key at all.
const DefaultCurrency = "EUR"

// Field names as produced by the extractor.
const (
	FieldInvoiceID         = "invoice_id"
	FieldInvoiceNumber     = "invoice_number"
	FieldReferenceNumber   = "reference_number"
	FieldInvoiceDate       = "invoice_date"
	FieldSellerName        = "seller_name"
	FieldBuyerName         = "buyer_name"
	FieldCustomerNumber    = "customer_number"
	FieldEndCustomerNumber = "end_customer_number"
	FieldNetTotal          = "net_total"
	FieldTaxPercentage     = "tax_percentage"
	FieldTaxAmount         = "tax_amount"
	FieldGrossTotal        = "gross_total"
	FieldCurrency          = "currency"
	FieldLineItems         = "line_items"

	FieldDescription  = "description"
	FieldItemNumber   = "item_number"
	FieldQuantity     = "quantity"
	FieldPricePerUnit = "price_per_unit"
	FieldLineTotal    = "line_total"
)

// Value is a single extracted field. It is either absent, a string, or an
// already-numeric value. An empty string is present, not absent.
type Value struct {
	text   *string
	number *decimal.Decimal
}

// Text returns a present string value.
func Text(s string) Value {
	return Value{text: &s}
}

// Number returns a present numeric value.
func Number(d decimal.Decimal) Value {
	return Value{number: &d}
}

// Absent reports whether the extractor supplied nothing for this field.
func (v Value) Absent() bool {
	return v.text == nil && v.number == nil
}

// Blank reports whether the value is absent or a whitespace-only string.
func (v Value) Blank() bool {
	if v.number != nil {
		return false
	}

	return v.text == nil || strings.TrimSpace(*v.text) == ""
}

// String returns the textual form of the value, or "" when absent.
func (v Value) String() string {
	switch {
	case v.text != nil:
		return *v.text
	case v.number != nil:
		return v.number.String()
	}

	return ""
}

// Numeric returns the numeric payload when the value was supplied as a number.
func (v Value) Numeric() (decimal.Decimal, bool) {
	if v.number == nil {
		return decimal.Decimal{}, false
	}

	return *v.number, true
}

// Ptr returns the string form as a pointer, nil when absent.
func (v Value) Ptr() *string {
	if v.Absent() {
		return nil
	}

	s := v.String()

	return &s
}

// RawLineItem is a line item as extracted, before normalization.
type RawLineItem struct {
	Description  Value
	ItemNumber   Value
	Quantity     Value
	PricePerUnit Value
	LineTotal    Value
}

// RawInvoice is an invoice as extracted, before normalization.
type RawInvoice struct {
	ID                int
	InvoiceNumber     Value
	ReferenceNumber   Value
	InvoiceDate       Value
	SellerName        Value
	BuyerName         Value
	CustomerNumber    Value
	EndCustomerNumber Value
	NetTotal          Value
	TaxPercentage     Value
	TaxAmount         Value
	GrossTotal        Value
	Currency          Value
	// LineItems is nil when the extractor found no line item list at all.
	LineItems []RawLineItem
}

// NaturalKey identifies an invoice for duplicate detection.
type NaturalKey struct {
	SellerName    string
	InvoiceNumber string
	InvoiceDate   string
}

// NaturalKey returns the duplicate-detection key, or false when any
// component is absent.
func (r RawInvoice) NaturalKey() (NaturalKey, bool) {
	if r.SellerName.Absent() || r.InvoiceNumber.Absent() || r.InvoiceDate.Absent() {
		return NaturalKey{}, false
	}

	return NaturalKey{
		SellerName:    r.SellerName.String(),
		InvoiceNumber: r.InvoiceNumber.String(),
		InvoiceDate:   r.InvoiceDate.String(),
	}, true
}

// ValidatedLineItem is a line item whose numeric fields were normalized.
type ValidatedLineItem struct {
	Description  *string
	ItemNumber   *string
	Quantity     decimal.Decimal
	PricePerUnit decimal.Decimal
	LineTotal    decimal.Decimal
}

// ValidatedInvoice is only ever built from a raw invoice with no violations.
type ValidatedInvoice struct {
	ID                int
	InvoiceNumber     string
	ReferenceNumber   *string
	InvoiceDate       time.Time
	SellerName        string
	BuyerName         string
	CustomerNumber    *string
	EndCustomerNumber *string
	NetTotal          decimal.Decimal
	TaxPercentage     *decimal.Decimal
	TaxAmount         *decimal.Decimal
	GrossTotal        decimal.Decimal
	Currency          string
	LineItems         []ValidatedLineItem
}
