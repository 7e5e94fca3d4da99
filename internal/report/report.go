package report

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/MrJamesThe3rd/invoiceqc/internal/batch"
	"github.com/MrJamesThe3rd/invoiceqc/internal/validation"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
)

// FormatFromPath picks the report format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".xlsx":
		return FormatXLSX, nil
	}

	return "", fmt.Errorf("unsupported report format: %q", filepath.Ext(path))
}

// Report wraps a batch result with run metadata.
type Report struct {
	RunID        uuid.UUID `json:"run_id" yaml:"run_id"`
	GeneratedAt  time.Time `json:"generated_at" yaml:"generated_at"`
	batch.Result `yaml:",inline"`
}

func New(result *batch.Result) *Report {
	return &Report{
		RunID:       uuid.New(),
		GeneratedAt: time.Now().UTC(),
		Result:      *result,
	}
}

// Write encodes the report to w in the given format.
func (r *Report) Write(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)

		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode json report: %w", err)
		}

		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode yaml report: %w", err)
		}

		return enc.Close()
	case FormatXLSX:
		return r.writeXLSX(w)
	}

	return fmt.Errorf("unsupported report format: %q", format)
}

// WriteFile writes the report to path, choosing the format by extension.
func (r *Report) WriteFile(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	if err := r.Write(f, format); err != nil {
		return err
	}

	return f.Close()
}

// ErrorCount is one row of the top error types table.
type ErrorCount struct {
	Code  validation.Code
	Count int
}

// TopErrors orders the summary's error counts by count descending, ties by code.
func TopErrors(s batch.Summary) []ErrorCount {
	counts := make([]ErrorCount, 0, len(s.ErrorCounts))
	for code, n := range s.ErrorCounts {
		counts = append(counts, ErrorCount{Code: code, Count: n})
	}

	slices.SortFunc(counts, func(a, b ErrorCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}

		return cmp.Compare(a.Code, b.Code)
	})

	return counts
}

// PrintSummary renders the console summary block.
func PrintSummary(w io.Writer, s batch.Summary) {
	fmt.Fprintln(w, "\n==== INVOICE SUMMARY ====")
	fmt.Fprintf(w, "Total invoices: %d\n", s.Total)
	fmt.Fprintf(w, "Valid invoices: %d\n", s.ValidCount)
	fmt.Fprintf(w, "Invalid invoices: %d\n", s.InvalidCount)

	top := TopErrors(s)
	if len(top) == 0 {
		return
	}

	fmt.Fprintln(w, "\nTop error types:")

	for _, ec := range top {
		fmt.Fprintf(w, "  %s: %d\n", ec.Code, ec.Count)
	}
}

// JoinCodes renders codes as a comma separated list.
func JoinCodes(codes []validation.Code) string {
	names := make([]string, len(codes))
	for i, c := range codes {
		names[i] = string(c)
	}

	return strings.Join(names, ", ")
}
