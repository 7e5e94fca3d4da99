package view

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/invoiceqc/internal/batch"
	"github.com/MrJamesThe3rd/invoiceqc/internal/invoice"
	"github.com/MrJamesThe3rd/invoiceqc/internal/report"
)

type loadState int

const (
	loadStateFilePick loadState = iota
	loadStateValidating
	loadStateFailed
)

// ValidatedMsg carries a finished batch run to the results screen.
type ValidatedMsg struct {
	Path     string
	Report   *report.Report
	Invoices []invoice.RawInvoice
}

type LoadModel struct {
	CommonModel
	batchService *batch.Service

	state      loadState
	filePicker filepicker.Model

	status string
	err    error
}

func NewLoadModel(svc *batch.Service) LoadModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".json"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return LoadModel{
		batchService: svc,
		filePicker:   fp,
	}
}

func (m LoadModel) Title() string { return "Validate Invoice File" }

func (m LoadModel) ShortHelp() string {
	if m.state == loadStateFailed {
		return "Esc: pick another file"
	}

	return "Esc: back | Enter: select"
}

func (m LoadModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m LoadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

	case loadResultMsg:
		if msg.err != nil {
			m.state = loadStateFailed
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.state = loadStateFilePick
		m.status = ""
		validated := msg.validated

		return m, func() tea.Msg { return validated }
	}

	if m.state != loadStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = loadStateValidating
		m.status = fmt.Sprintf("Validating %s...", path)

		return m, m.validateCmd(path)
	}

	if didSelect, path := m.filePicker.DidSelectDisabledFile(msg); didSelect {
		m.status = fmt.Sprintf("%s is not a .json file", path)
	}

	return m, cmd
}

func (m LoadModel) handleEsc() (tea.Model, tea.Cmd) {
	if m.state == loadStateFailed {
		m.state = loadStateFilePick
		m.err = nil
		m.status = ""

		return m, m.filePicker.Init()
	}

	return m, Back
}

func (m LoadModel) View() string {
	switch m.state {
	case loadStateValidating:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case loadStateFailed:
		return lipgloss.NewStyle().Padding(2).Render(
			errStyle.Render(m.status) + "\n\n(Esc to go back)",
		)
	}

	content := fmt.Sprintf("Select invoice file to validate:\n\n%s", m.filePicker.View())
	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type loadResultMsg struct {
	validated ValidatedMsg
	err       error
}

func (m LoadModel) validateCmd(path string) tea.Cmd {
	return func() tea.Msg {
		raws, err := invoice.LoadFile(path)
		if err != nil {
			return loadResultMsg{err: err}
		}

		ctx, cancel := RunCtx()
		defer cancel()

		result, err := m.batchService.Validate(ctx, raws)
		if err != nil {
			return loadResultMsg{err: err}
		}

		return loadResultMsg{validated: ValidatedMsg{
			Path:     path,
			Report:   report.New(result),
			Invoices: raws,
		}}
	}
}
