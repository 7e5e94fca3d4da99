package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoiceqc/internal/invoice"
)

const validInput = `[
  {
    "invoice_id": 7,
    "invoice_number": "AUF-7",
    "invoice_date": "2024-05-02",
    "seller_name": "Schmidt GmbH",
    "buyer_name": "ACME AG",
    "net_total": "100,00",
    "tax_amount": "19,00",
    "gross_total": "119,00",
    "currency": "EUR",
    "line_items": [
      {"quantity": "4", "price_per_unit": "25,00", "line_total": "100,00"}
    ]
  }
]`

const invalidInput = `[
  {
    "invoice_id": 8,
    "invoice_number": "AUF-8",
    "invoice_date": "2024-05-02",
    "seller_name": "Schmidt GmbH",
    "buyer_name": "ACME AG",
    "net_total": "100,00",
    "tax_amount": "19,00",
    "gross_total": "120,00",
    "currency": "EUR",
    "line_items": [
      {"quantity": "4", "price_per_unit": "25,00", "line_total": "100,00"}
    ]
  }
]`

func writeInput(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "extracted.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(t.Context())

	return out.String(), err
}

func TestValidate_AllValid(t *testing.T) {
	input := writeInput(t, validInput)
	reportPath := filepath.Join(t.TempDir(), "report.json")

	out, err := execute(t, "validate", "--input", input, "--report", reportPath, "--reference-date", "2025-01-01")
	require.NoError(t, err)

	assert.Contains(t, out, "==== INVOICE SUMMARY ====")
	assert.Contains(t, out, "Total invoices: 1")
	assert.Contains(t, out, "Valid invoices: 1")
	assert.NotContains(t, out, "Top error types:")

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)

	var got struct {
		RunID    string `json:"run_id"`
		Invoices []struct {
			InvoiceID int  `json:"invoice_id"`
			IsValid   bool `json:"is_valid"`
		} `json:"invoices"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.NotEmpty(t, got.RunID)
	require.Len(t, got.Invoices, 1)
	assert.Equal(t, 7, got.Invoices[0].InvoiceID)
	assert.True(t, got.Invoices[0].IsValid)
}

func TestValidate_InvalidExitSignal(t *testing.T) {
	input := writeInput(t, invalidInput)
	reportPath := filepath.Join(t.TempDir(), "report.yaml")

	out, err := execute(t, "validate", "-i", input, "-r", reportPath, "--reference-date", "2025-01-01")
	require.ErrorIs(t, err, errInvalidInvoices)

	assert.Contains(t, out, "Invalid invoices: 1")
	assert.Contains(t, out, "gross_total_mismatch: 1")
	assert.FileExists(t, reportPath)
}

func TestValidate_ReferenceDateMovesRange(t *testing.T) {
	input := writeInput(t, validInput)
	reportPath := filepath.Join(t.TempDir(), "report.json")

	_, err := execute(t, "validate", "-i", input, "-r", reportPath, "--reference-date", "2020-06-30")
	require.ErrorIs(t, err, errInvalidInvoices)
}

func TestValidate_Errors(t *testing.T) {
	input := writeInput(t, validInput)
	dir := t.TempDir()

	type testCase struct {
		name string
		args []string
		want error
	}

	tests := []testCase{
		{
			name: "missing input flag",
			args: []string{"validate", "--report", filepath.Join(dir, "r.json")},
		},
		{
			name: "unsupported report format",
			args: []string{"validate", "-i", input, "-r", filepath.Join(dir, "r.csv")},
		},
		{
			name: "bad reference date",
			args: []string{"validate", "-i", input, "-r", filepath.Join(dir, "r.json"), "--reference-date", "31.01.2025"},
		},
		{
			name: "malformed input",
			args: []string{"validate", "-i", writeInput(t, `{"invoice_id": 1}`), "-r", filepath.Join(dir, "r.json")},
			want: invoice.ErrInputShape,
		},
		{
			name: "missing input file",
			args: []string{"validate", "-i", filepath.Join(dir, "nope.json"), "-r", filepath.Join(dir, "r.json")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.NotErrorIs(t, err, errInvalidInvoices)

			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)

	assert.Contains(t, out, "invoiceqc")
	assert.Contains(t, out, "Version:    dev")
}
