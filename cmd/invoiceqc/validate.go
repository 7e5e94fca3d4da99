package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/invoiceqc/internal/batch"
	"github.com/MrJamesThe3rd/invoiceqc/internal/config"
	"github.com/MrJamesThe3rd/invoiceqc/internal/invoice"
	"github.com/MrJamesThe3rd/invoiceqc/internal/report"
	"github.com/MrJamesThe3rd/invoiceqc/internal/validation"
)

// errInvalidInvoices signals a completed run in which at least one invoice
// failed validation.
var errInvalidInvoices = errors.New("batch contains invalid invoices")

type validateOptions struct {
	input         string
	report        string
	referenceDate string
	workers       int
}

func newValidateCmd() *cobra.Command {
	var opts validateOptions

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a JSON file of extracted invoices",
		Example: `  invoiceqc validate --input extracted.json --report report.json
  invoiceqc validate -i extracted.json -r report.xlsx --reference-date 2025-01-31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "path to the extracted invoices JSON file")
	cmd.Flags().StringVarP(&opts.report, "report", "r", "", "path of the report to write (.json, .yaml or .xlsx)")
	cmd.Flags().StringVar(&opts.referenceDate, "reference-date", "", "date (YYYY-MM-DD) used as today for the date range check")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "number of invoices validated concurrently (0 uses the configured value)")

	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("report")

	return cmd
}

func runValidate(cmd *cobra.Command, opts validateOptions) error {
	format, err := report.FormatFromPath(opts.report)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if opts.referenceDate != "" {
		cfg.Validation.ReferenceDate = opts.referenceDate
	}

	if opts.workers > 0 {
		cfg.Validation.Workers = opts.workers
	}

	clock, err := cfg.Clock()
	if err != nil {
		return err
	}

	raws, err := invoice.LoadFile(opts.input)
	if err != nil {
		return fmt.Errorf("load %s: %w", opts.input, err)
	}

	slog.Debug("invoices loaded", "path", opts.input, "count", len(raws))

	svc := batch.NewService(validation.New(validation.WithClock(clock)), cfg.Validation.Workers)

	result, err := svc.Validate(cmd.Context(), raws)
	if err != nil {
		return err
	}

	rep := report.New(result)
	if err := rep.WriteFile(opts.report); err != nil {
		return err
	}

	slog.Debug("report written", "run_id", rep.RunID, "path", opts.report, "format", format)

	out := cmd.OutOrStdout()
	report.PrintSummary(out, result.Summary)
	fmt.Fprintf(out, "\nReport written to %s\n", opts.report)

	if result.Summary.InvalidCount > 0 {
		return errInvalidInvoices
	}

	return nil
}
