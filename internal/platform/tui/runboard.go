package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ametelin/linkwar/internal/storage"
)

// maxBoardRuns is how many runs the leaderboard loads.
const maxBoardRuns = 100

// RunBoardKeyMap defines the key bindings for the run leaderboard.
type RunBoardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunBoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunBoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Refresh, k.Quit}}
}

// DefaultRunBoardKeyMap returns default key bindings.
func DefaultRunBoardKeyMap() RunBoardKeyMap {
	return RunBoardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunBoardModel is the Bubble Tea model for the run leaderboard.
type RunBoardModel struct {
	store    *storage.Store
	table    table.Model
	help     help.Model
	keys     RunBoardKeyMap
	width    int
	height   int
	quitting bool
	loadErr  error
}

// NewRunBoardModel creates a leaderboard over the given store.
func NewRunBoardModel(store *storage.Store, width, height int) RunBoardModel {
	m := RunBoardModel{
		store:  store,
		keys:   DefaultRunBoardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadRuns()
	return m
}

func (m *RunBoardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Seed", Width: 12},
		{Title: "Tier", Width: 10},
		{Title: "Outcome", Width: 9},
		{Title: "Waves", Width: 6},
		{Title: "Leaked", Width: 7},
		{Title: "Duration", Width: 9},
		{Title: "Date", Width: 18},
	}

	height := m.height - 6
	if height < 4 {
		height = 4
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	return t
}

// loadRuns (re)fills the table from storage.
func (m *RunBoardModel) loadRuns() {
	if m.store == nil {
		m.loadErr = fmt.Errorf("tui: no run storage available")
		return
	}

	runs, err := m.store.RecentRuns(maxBoardRuns)
	if err != nil {
		m.loadErr = err
		return
	}
	m.loadErr = nil

	rows := make([]table.Row, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", r.Seed),
			r.Tier,
			r.Outcome,
			fmt.Sprintf("%d", r.WavesCleared),
			fmt.Sprintf("%d", r.Arrivals),
			fmt.Sprintf("%.0fs", r.DurationSecs),
			r.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	m.table.SetRows(rows)
}

// Init implements tea.Model.
func (m RunBoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m RunBoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.loadRuns()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(msg.Height - 6)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the leaderboard.
func (m RunBoardModel) View() string {
	if m.quitting {
		return ""
	}

	var view string
	view = titleStyle.Render("linkwar  ·  recent runs") + "\n\n"
	if m.loadErr != nil {
		view += lostStyle.Render(fmt.Sprintf("cannot load runs: %v", m.loadErr)) + "\n"
	} else {
		view += m.table.View() + "\n"
	}
	view += m.help.View(m.keys)
	return view
}

// RunBoard starts the leaderboard program in the local terminal.
func RunBoard(store *storage.Store, width, height int) error {
	p := tea.NewProgram(NewRunBoardModel(store, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
