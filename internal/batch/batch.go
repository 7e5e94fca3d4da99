package batch

import (
	"slices"

	"github.com/MrJamesThe3rd/invoiceqc/internal/validation"
)

// Outcome is the verdict for one input invoice. Errors holds each code once,
// in the order it was first raised.
type Outcome struct {
	InvoiceID int                    `json:"invoice_id" yaml:"invoice_id"`
	IsValid   bool                   `json:"is_valid" yaml:"is_valid"`
	Errors    []validation.Code      `json:"errors" yaml:"errors"`
	Details   []validation.Violation `json:"details,omitempty" yaml:"details,omitempty"`
}

func (o *Outcome) hasError(code validation.Code) bool {
	return slices.Contains(o.Errors, code)
}

// flag marks the outcome invalid and records code at most once.
func (o *Outcome) flag(code validation.Code, message string) {
	o.IsValid = false

	if o.hasError(code) {
		return
	}

	o.Errors = append(o.Errors, code)
	o.Details = append(o.Details, validation.Violation{Code: code, Message: message})
}

// Summary aggregates a batch. ErrorCounts[c] is the number of outcomes
// holding code c.
type Summary struct {
	Total        int                     `json:"total" yaml:"total"`
	ValidCount   int                     `json:"valid_count" yaml:"valid_count"`
	InvalidCount int                     `json:"invalid_count" yaml:"invalid_count"`
	ErrorCounts  map[validation.Code]int `json:"error_counts" yaml:"error_counts"`
}

// Result is the full output of a batch run. Outcomes follow input order.
type Result struct {
	Outcomes []Outcome `json:"invoices" yaml:"invoices"`
	Summary  Summary   `json:"summary" yaml:"summary"`
}

// Summarize folds outcomes into counts. It is independent of outcome order.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{
		Total:       len(outcomes),
		ErrorCounts: make(map[validation.Code]int),
	}

	for _, o := range outcomes {
		if o.IsValid {
			s.ValidCount++
		}

		for _, code := range o.Errors {
			s.ErrorCounts[code]++
		}
	}

	s.InvalidCount = s.Total - s.ValidCount

	return s
}
