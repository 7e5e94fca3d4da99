package validation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/invoiceqc/internal/invoice"
)

// MinInvoiceYear is the earliest accepted invoice year.
const MinInvoiceYear = 2000

// record is the in-progress state shared by the pipeline stages. Each stage
// reads what earlier stages normalized and appends its own violations.
type record struct {
	raw invoice.RawInvoice

	items []LineItemResult

	netTotal      *decimal.Decimal
	taxAmount     *decimal.Decimal
	grossTotal    *decimal.Decimal
	taxPercentage *decimal.Decimal
	invoiceDate   *time.Time

	violations []Violation
}

func (r *record) add(code Code, field, message string) {
	r.violations = append(r.violations, Violation{Code: code, Field: field, Message: message})
}

type stage struct {
	name string
	run  func(v *Validator, rec *record)
}

// pipeline is the fixed stage order. Reconciliation depends on the values
// normalized by both earlier stages.
var pipeline = []stage{
	{name: "line_items", run: (*Validator).checkLineItems},
	{name: "fields", run: (*Validator).checkFields},
	{name: "reconcile", run: (*Validator).reconcile},
}

// Stages returns the pipeline stage names in execution order.
func Stages() []string {
	names := make([]string, len(pipeline))
	for i, s := range pipeline {
		names[i] = s.name
	}

	return names
}

// Result is the outcome of validating a single raw invoice.
// Invoice is set only when Violations is empty.
type Result struct {
	Invoice    *invoice.ValidatedInvoice
	Violations []Violation
}

func (r Result) Valid() bool {
	return len(r.Violations) == 0
}

// Codes returns the violation codes with repeats collapsed.
func (r Result) Codes() []Code {
	return UniqueCodes(r.Violations)
}

type Validator struct {
	clock Clock
}

type Option func(*Validator)

// WithClock sets the source of the reference date for the date range check.
func WithClock(c Clock) Option {
	return func(v *Validator) {
		v.clock = c
	}
}

func New(opts ...Option) *Validator {
	v := &Validator{clock: SystemClock{}}
	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Validate runs every check on raw and never stops at the first failure.
// It holds no state between calls and is safe for concurrent use.
func (v *Validator) Validate(raw invoice.RawInvoice) Result {
	rec := &record{raw: raw}

	for _, s := range pipeline {
		s.run(v, rec)
	}

	if len(rec.violations) > 0 {
		return Result{Violations: rec.violations}
	}

	return Result{Invoice: rec.build()}
}

// build assumes every check passed, so all required values are present.
func (r *record) build() *invoice.ValidatedInvoice {
	items := make([]invoice.ValidatedLineItem, len(r.items))
	for i, it := range r.items {
		items[i] = invoice.ValidatedLineItem{
			Description:  r.raw.LineItems[i].Description.Ptr(),
			ItemNumber:   r.raw.LineItems[i].ItemNumber.Ptr(),
			Quantity:     *it.Quantity,
			PricePerUnit: *it.PricePerUnit,
			LineTotal:    *it.LineTotal,
		}
	}

	return &invoice.ValidatedInvoice{
		ID:                r.raw.ID,
		InvoiceNumber:     r.raw.InvoiceNumber.String(),
		ReferenceNumber:   r.raw.ReferenceNumber.Ptr(),
		InvoiceDate:       *r.invoiceDate,
		SellerName:        r.raw.SellerName.String(),
		BuyerName:         r.raw.BuyerName.String(),
		CustomerNumber:    r.raw.CustomerNumber.Ptr(),
		EndCustomerNumber: r.raw.EndCustomerNumber.Ptr(),
		NetTotal:          *r.netTotal,
		TaxPercentage:     r.taxPercentage,
		TaxAmount:         r.taxAmount,
		GrossTotal:        *r.grossTotal,
		Currency:          r.raw.Currency.String(),
		LineItems:         items,
	}
}
