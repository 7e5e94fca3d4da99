package view

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/invoiceqc/internal/invoice"
	"github.com/MrJamesThe3rd/invoiceqc/internal/validation"
)

const validateTimeout = 2 * time.Minute

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	faintStyle = lipgloss.NewStyle().Faint(true)
)

// FormatValid renders a verdict for the results table.
func FormatValid(valid bool) string {
	if valid {
		return "yes"
	}

	return "no"
}

// FormatAmount shows a raw amount as it would be normalized, or the raw text
// when it does not parse.
func FormatAmount(v invoice.Value) string {
	if v.Blank() {
		return "-"
	}

	d, err := validation.NormalizeNumber(v)
	if err != nil || d == nil {
		return v.String()
	}

	return d.StringFixed(2)
}

// FormatText shows a raw text field, or a dash when absent.
func FormatText(v invoice.Value) string {
	if v.Absent() {
		return "-"
	}

	return v.String()
}

// Truncate shortens s to at most n runes.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	if n <= 1 {
		return string(r[:n])
	}

	return string(r[:n-1]) + "…"
}

// RunCtx returns a context with a standard timeout for batch validation.
func RunCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), validateTimeout)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func sumAmounts(values ...*decimal.Decimal) decimal.Decimal {
	total := decimal.Zero

	for _, v := range values {
		if v != nil {
			total = total.Add(*v)
		}
	}

	return total
}
