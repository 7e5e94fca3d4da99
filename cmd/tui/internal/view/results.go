package view

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/invoiceqc/internal/batch"
	"github.com/MrJamesThe3rd/invoiceqc/internal/invoice"
	"github.com/MrJamesThe3rd/invoiceqc/internal/report"
	"github.com/MrJamesThe3rd/invoiceqc/internal/validation"
)

type resultsState int

const (
	resultsStateBrowse resultsState = iota
	resultsStateExport
)

type ResultsModel struct {
	CommonModel

	state  resultsState
	path   string
	report *report.Report
	// invoices is aligned with report.Outcomes.
	invoices []invoice.RawInvoice

	invalidOnly bool
	// visible holds indexes into report.Outcomes for the current filter.
	visible []int

	table  table.Model
	form   *huh.Form
	status string
}

func NewResultsModel(msg ValidatedMsg) ResultsModel {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Valid", Width: 6},
		{Title: "Number", Width: 14},
		{Title: "Seller", Width: 24},
		{Title: "Date", Width: 12},
		{Title: "Gross", Width: 12},
		{Title: "Errors", Width: 40},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := ResultsModel{
		path:     msg.Path,
		report:   msg.Report,
		invoices: msg.Invoices,
		table:    t,
	}
	m.refreshTable()

	return m
}

func (m ResultsModel) Title() string { return "Validation Results" }

func (m ResultsModel) ShortHelp() string {
	if m.state == resultsStateExport {
		return "Enter: write report | Esc: cancel"
	}

	return "Esc: back | f: invalid only | x: export report"
}

func (m ResultsModel) Init() tea.Cmd {
	return nil
}

func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case exportResultMsg:
		m.state = resultsStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error writing report: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Report written to %s", msg.path)

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-12, 5))

		return m, nil
	}

	switch m.state {
	case resultsStateBrowse:
		return m.updateBrowse(msg)
	case resultsStateExport:
		return m.updateExport(msg)
	}

	return m, nil
}

func (m ResultsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "f":
			m.invalidOnly = !m.invalidOnly
			m.refreshTable()
			m.table.GotoTop()

			return m, nil
		case "x":
			return m.enterExportMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ResultsModel) enterExportMode() (tea.Model, tea.Cmd) {
	suggested := strings.TrimSuffix(m.path, filepath.Ext(m.path)) + "_report.json"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Report path").
				Description(".json, .yaml or .xlsx").
				Placeholder(suggested).
				Value(&suggested).
				Validate(func(s string) error {
					_, err := report.FormatFromPath(strings.TrimSpace(s))
					return err
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = resultsStateExport
	m.status = ""
	m.table.Blur()

	return m, m.form.Init()
}

func (m ResultsModel) updateExport(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = resultsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.exportCmd(strings.TrimSpace(m.form.GetString("path")))
}

// Selected returns the outcome under the cursor and its raw invoice.
func (m ResultsModel) Selected() (batch.Outcome, invoice.RawInvoice, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return batch.Outcome{}, invoice.RawInvoice{}, false
	}

	i := m.visible[idx]

	var raw invoice.RawInvoice
	if i < len(m.invoices) {
		raw = m.invoices[i]
	}

	return m.report.Outcomes[i], raw, true
}

// Rows returns the number of outcomes shown under the current filter.
func (m ResultsModel) Rows() int {
	return len(m.visible)
}

func (m ResultsModel) View() string {
	summary := m.report.Summary

	header := fmt.Sprintf(
		"%s | Total: %d | Valid: %s | Invalid: %s | [f] Show: %s",
		filepath.Base(m.path),
		summary.Total,
		okStyle.Render(fmt.Sprint(summary.ValidCount)),
		errStyle.Render(fmt.Sprint(summary.InvalidCount)),
		activeStyle(m.filterLabel()),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	panelBody := m.detailView()
	if m.state == resultsStateExport && m.form != nil {
		panelBody = fmt.Sprintf("Export Report\n\n%s", m.form.View())
	}

	panel := lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(48).
		Render(panelBody)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		lipgloss.JoinHorizontal(lipgloss.Top, tableView, panel),
	)

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m ResultsModel) filterLabel() string {
	if m.invalidOnly {
		return "Invalid only"
	}

	return "All"
}

func (m ResultsModel) detailView() string {
	outcome, raw, ok := m.Selected()
	if !ok {
		return "No invoice selected"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Invoice %d\n\n", outcome.InvoiceID)
	fmt.Fprintf(&b, "Number:   %s\n", FormatText(raw.InvoiceNumber))
	fmt.Fprintf(&b, "Seller:   %s\n", FormatText(raw.SellerName))
	fmt.Fprintf(&b, "Buyer:    %s\n", FormatText(raw.BuyerName))
	fmt.Fprintf(&b, "Date:     %s\n", FormatText(raw.InvoiceDate))
	fmt.Fprintf(&b, "Net:      %s\n", FormatAmount(raw.NetTotal))
	fmt.Fprintf(&b, "Tax:      %s\n", FormatAmount(raw.TaxAmount))
	fmt.Fprintf(&b, "Gross:    %s %s\n", FormatAmount(raw.GrossTotal), FormatText(raw.Currency))
	fmt.Fprintf(&b, "Items:    %d (sum %s)\n\n", len(raw.LineItems), lineItemsTotal(raw).StringFixed(2))

	if outcome.IsValid {
		b.WriteString(okStyle.Render("Valid"))
		return b.String()
	}

	b.WriteString(errStyle.Render("Invalid") + "\n")

	for _, d := range outcome.Details {
		fmt.Fprintf(&b, "\n• %s", d.Message)
	}

	return b.String()
}

func lineItemsTotal(raw invoice.RawInvoice) decimal.Decimal {
	totals := make([]*decimal.Decimal, 0, len(raw.LineItems))

	for _, it := range raw.LineItems {
		d, err := validation.NormalizeNumber(it.LineTotal)
		if err != nil {
			continue
		}

		totals = append(totals, d)
	}

	return sumAmounts(totals...)
}

func (m *ResultsModel) refreshTable() {
	m.visible = make([]int, 0, len(m.report.Outcomes))
	rows := make([]table.Row, 0, len(m.report.Outcomes))

	for i, o := range m.report.Outcomes {
		if m.invalidOnly && o.IsValid {
			continue
		}

		var raw invoice.RawInvoice
		if i < len(m.invoices) {
			raw = m.invoices[i]
		}

		m.visible = append(m.visible, i)
		rows = append(rows, table.Row{
			fmt.Sprint(o.InvoiceID),
			FormatValid(o.IsValid),
			Truncate(FormatText(raw.InvoiceNumber), 14),
			Truncate(FormatText(raw.SellerName), 24),
			FormatText(raw.InvoiceDate),
			FormatAmount(raw.GrossTotal),
			Truncate(report.JoinCodes(o.Errors), 40),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type exportResultMsg struct {
	path string
	err  error
}

func (m ResultsModel) exportCmd(path string) tea.Cmd {
	rep := m.report

	return func() tea.Msg {
		return exportResultMsg{path: path, err: rep.WriteFile(path)}
	}
}
