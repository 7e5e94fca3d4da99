package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/invoiceqc/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/invoiceqc/internal/batch"
	"github.com/MrJamesThe3rd/invoiceqc/internal/config"
	"github.com/MrJamesThe3rd/invoiceqc/internal/validation"
)

type model struct {
	batchService *batch.Service
	appName      string

	currentView View
	hasResults  bool

	loadView    view.LoadModel
	resultsView view.ResultsModel
}

type View int

const (
	ViewMenu    View = 0
	ViewLoad    View = 1
	ViewResults View = 2
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	clock, err := cfg.Clock()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	batchSvc := batch.NewService(validation.New(validation.WithClock(clock)), cfg.Validation.Workers)

	return model{
		batchService: batchSvc,
		appName:      cfg.App.Name,
		currentView:  ViewMenu,
		loadView:     view.NewLoadModel(batchSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewLoad
				m.loadView = view.NewLoadModel(m.batchService)

				return m, m.loadView.Init()
			case "2":
				if !m.hasResults {
					return m, nil
				}

				m.currentView = ViewResults

				return m, m.resultsView.Init()
			}
		}
	case view.ValidatedMsg:
		m.currentView = ViewResults
		m.hasResults = true
		m.resultsView = view.NewResultsModel(msg)

		return m, m.resultsView.Init()
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewLoad:
		var newModel tea.Model
		newModel, cmd = m.loadView.Update(msg)
		m.loadView = newModel.(view.LoadModel)
	case ViewResults:
		var newModel tea.Model
		newModel, cmd = m.resultsView.Update(msg)
		m.resultsView = newModel.(view.ResultsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		review := "2. Review Last Results\n"
		if !m.hasResults {
			review = lipgloss.NewStyle().Faint(true).Render("2. Review Last Results (none yet)") + "\n"
		}

		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + "\n\n" +
				"1. Validate Invoice File\n" +
				review + "\n" +
				"q. Quit",
		)
	case ViewLoad:
		return m.loadView.View() + "\n" + helpLine(m.loadView)
	case ViewResults:
		return m.resultsView.View() + "\n" + helpLine(m.resultsView)
	}

	return "Unknown View"
}

func helpLine(v view.View) string {
	return lipgloss.NewStyle().Faint(true).PaddingLeft(2).Render(v.Title() + " · " + v.ShortHelp())
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
