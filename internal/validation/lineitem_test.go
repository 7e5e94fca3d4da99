package validation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoiceqc/internal/invoice"
	"github.com/MrJamesThe3rd/invoiceqc/internal/validation"
)

func item(qty, price, total string) invoice.RawLineItem {
	return invoice.RawLineItem{
		Description:  invoice.Text("Copy paper A4"),
		Quantity:     invoice.Text(qty),
		PricePerUnit: invoice.Text(price),
		LineTotal:    invoice.Text(total),
	}
}

func TestValidateLineItem(t *testing.T) {
	type args struct {
		item invoice.RawLineItem
	}

	type testCase struct {
		name       string
		args       args
		wantCodes  []validation.Code
		wantFields []string
	}

	tests := []testCase{
		{
			name: "Matching total",
			args: args{item("2", "10,00", "20,00")},
		},
		{
			name: "Matching after rounding",
			args: args{item("3", "3,333", "10,00")},
		},
		{
			name:       "Mismatch",
			args:       args{item("2", "10,00", "25,00")},
			wantCodes:  []validation.Code{validation.CodeLineTotalMismatch},
			wantFields: []string{"line_items[0].line_total"},
		},
		{
			name: "Missing quantity",
			args: args{invoice.RawLineItem{
				PricePerUnit: invoice.Text("10,00"),
				LineTotal:    invoice.Text("20,00"),
			}},
			wantCodes:  []validation.Code{validation.CodeMissingField},
			wantFields: []string{"line_items[0].quantity"},
		},
		{
			name:       "Blank price",
			args:       args{item("2", "  ", "20,00")},
			wantCodes:  []validation.Code{validation.CodeMissingField},
			wantFields: []string{"line_items[0].price_per_unit"},
		},
		{
			name:       "Unparseable total skips arithmetic",
			args:       args{item("2", "10,00", "twenty")},
			wantCodes:  []validation.Code{validation.CodeNumberFormat},
			wantFields: []string{"line_items[0].line_total"},
		},
		{
			name: "Numeric values",
			args: args{invoice.RawLineItem{
				Quantity:     invoice.Number(decimal.NewFromInt(4)),
				PricePerUnit: invoice.Number(decimal.RequireFromString("2.5")),
				LineTotal:    invoice.Number(decimal.NewFromInt(10)),
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validation.ValidateLineItem(0, tt.args.item)

			var codes []validation.Code

			var fields []string

			for _, v := range got.Violations {
				codes = append(codes, v.Code)
				fields = append(fields, v.Field)
			}

			assert.Equal(t, tt.wantCodes, codes)
			assert.Equal(t, tt.wantFields, fields)
			assert.Equal(t, len(tt.wantCodes) == 0, got.Valid())
		})
	}
}

func TestValidateLineItem_ValidIffRoundedProductMatches(t *testing.T) {
	quantities := []string{"1", "2", "3", "7", "0,5", "12,75"}
	prices := []string{"0,01", "9,99", "10,00", "1.234,56", "0,333"}

	for _, q := range quantities {
		for _, p := range prices {
			qd, err := validation.ParseEuropeanNumber(q)
			require.NoError(t, err)

			pd, err := validation.ParseEuropeanNumber(p)
			require.NoError(t, err)

			exact := qd.Mul(pd).Round(2)
			off := exact.Add(decimal.RequireFromString("0.01"))

			res := validation.ValidateLineItem(0, invoice.RawLineItem{
				Quantity:     invoice.Text(q),
				PricePerUnit: invoice.Text(p),
				LineTotal:    invoice.Number(exact),
			})
			assert.True(t, res.Valid(), "%s x %s = %s", q, p, exact)

			res = validation.ValidateLineItem(0, invoice.RawLineItem{
				Quantity:     invoice.Text(q),
				PricePerUnit: invoice.Text(p),
				LineTotal:    invoice.Number(off),
			})
			assert.False(t, res.Valid(), "%s x %s != %s", q, p, off)
		}
	}
}

func TestValidateLineItem_MismatchMessageCarriesValues(t *testing.T) {
	got := validation.ValidateLineItem(3, item("2", "10,00", "25,00"))
	require.Len(t, got.Violations, 1)
	assert.Equal(t, "line_items[3].line_total", got.Violations[0].Field)
	assert.Contains(t, got.Violations[0].Message, "expected 20.00")
	assert.Contains(t, got.Violations[0].Message, "got 25")
}
