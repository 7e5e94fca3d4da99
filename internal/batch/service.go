package batch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/invoiceqc/internal/invoice"
	"github.com/MrJamesThe3rd/invoiceqc/internal/validation"
)

type Service struct {
	validator *validation.Validator
	workers   int
}

// NewService returns a batch service running at most workers validations at
// once. workers <= 0 means one per CPU.
func NewService(validator *validation.Validator, workers int) *Service {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	return &Service{validator: validator, workers: workers}
}

// Validate produces exactly one outcome per input, in input order. Malformed
// records become invalid outcomes; the only error is ctx cancellation.
func (s *Service) Validate(ctx context.Context, raws []invoice.RawInvoice) (*Result, error) {
	outcomes := make([]Outcome, len(raws))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i := range raws {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			outcomes[i] = s.evaluate(raws[i])

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("validate invoices: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("validate invoices: %w", err)
	}

	// Every outcome exists from here on.
	if n := markDuplicates(raws, outcomes); n > 0 {
		slog.Debug("duplicate invoices flagged", "count", n)
	}

	summary := Summarize(outcomes)
	slog.Debug("batch validated",
		"total", summary.Total,
		"valid", summary.ValidCount,
		"invalid", summary.InvalidCount,
	)

	return &Result{Outcomes: outcomes, Summary: summary}, nil
}

func (s *Service) evaluate(raw invoice.RawInvoice) Outcome {
	res := s.validator.Validate(raw)

	out := Outcome{
		InvoiceID: raw.ID,
		IsValid:   res.Valid(),
		Errors:    res.Codes(),
		Details:   res.Violations,
	}

	if !out.IsValid {
		slog.Debug("invoice rejected", "invoice_id", raw.ID, "errors", out.Errors)
	}

	return out
}
