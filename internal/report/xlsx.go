package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	sheetInvoices = "Invoices"
	sheetSummary  = "Summary"
)

func (r *Report) writeXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetInvoices); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetInvoices, "A1", &[]any{"Invoice ID", "Valid", "Errors", "Details"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, o := range r.Outcomes {
		details := make([]string, len(o.Details))
		for j, d := range o.Details {
			details[j] = d.String()
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("locate row %d: %w", i, err)
		}

		row := []any{o.InvoiceID, o.IsValid, JoinCodes(o.Errors), strings.Join(details, "; ")}
		if err := f.SetSheetRow(sheetInvoices, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	rows := [][]any{
		{"Run ID", r.RunID.String()},
		{"Generated at", r.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Total invoices", r.Summary.Total},
		{"Valid invoices", r.Summary.ValidCount},
		{"Invalid invoices", r.Summary.InvalidCount},
		{},
		{"Error", "Count"},
	}

	for _, ec := range TopErrors(r.Summary) {
		rows = append(rows, []any{string(ec.Code), ec.Count})
	}

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}

		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("locate summary row %d: %w", i, err)
		}

		if err := f.SetSheetRow(sheetSummary, cell, &row); err != nil {
			return fmt.Errorf("write summary row %d: %w", i, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx report: %w", err)
	}

	return nil
}
