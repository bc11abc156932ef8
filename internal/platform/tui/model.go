package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ametelin/linkwar/internal/content"
	"github.com/ametelin/linkwar/internal/director"
	"github.com/ametelin/linkwar/internal/storage"
)

// maxFeedLines bounds the event feed shown under the lanes.
const maxFeedLines = 6

// Options configure one viewing session.
type Options struct {
	Seed                    uint32
	Tier                    *content.DifficultyTier
	MissionDifficultyScalar float64
	LaneCount               int
	TickRate                int

	// Initial terminal size, replaced by the first WindowSizeMsg.
	Width  int
	Height int
}

// Model is the Bubble Tea model driving a live simulation run.
type Model struct {
	catalog  *content.Catalog
	director *director.Director
	store    *storage.Store
	opts     Options

	keys KeyMap
	help help.Model

	width    int
	height   int
	speed    float64
	paused   bool
	quitting bool
	saved    bool

	feed []string
}

// NewModel creates a viewer over a fresh run.
func NewModel(cat *content.Catalog, store *storage.Store, opts Options) Model {
	if opts.Seed == 0 {
		opts.Seed = uint32(time.Now().UnixNano())
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 30
	}

	return Model{
		catalog:  cat,
		director: newRunDirector(cat, opts),
		store:    store,
		opts:     opts,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		width:    opts.Width,
		height:   opts.Height,
		speed:    1,
	}
}

func newRunDirector(cat *content.Catalog, opts Options) *director.Director {
	return director.New(cat, director.Config{
		RunSeed:                 opts.Seed,
		Tier:                    opts.Tier,
		MissionDifficultyScalar: opts.MissionDifficultyScalar,
		LaneCount:               opts.LaneCount,
	})
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
	case key.Matches(msg, m.keys.Faster):
		if m.speed < 8 {
			m.speed *= 2
		}
	case key.Matches(msg, m.keys.Slower):
		if m.speed > 0.25 {
			m.speed /= 2
		}
	case key.Matches(msg, m.keys.Restart):
		// New seed, fresh run.
		m.opts.Seed = uint32(time.Now().UnixNano())
		m.director = newRunDirector(m.catalog, m.opts)
		m.feed = nil
		m.saved = false
		m.paused = false
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.paused || m.director.Outcome() != director.OutcomeInProgress {
		m.saveResultOnce()
		return m, tickCmd(m.opts.TickRate)
	}

	dt := m.speed / float64(m.opts.TickRate)
	report := m.director.Tick(dt)
	for _, e := range report.LinkDestroyed {
		m.pushFeed(fmt.Sprintf("link %s destroyed at (%.0f, %.0f)", e.LinkID, e.At.X, e.At.Y))
	}
	for _, e := range report.TowerCaptured {
		m.pushFeed(fmt.Sprintf("tower %s captured by %s", e.TowerID, e.NewOwner))
	}

	m.saveResultOnce()
	return m, tickCmd(m.opts.TickRate)
}

// saveResultOnce persists the run record the first time the run finishes.
// Best effort: the viewer keeps working without storage.
func (m *Model) saveResultOnce() {
	if m.saved || m.store == nil || m.director.Outcome() == director.OutcomeInProgress {
		return
	}
	m.saved = true

	result := m.director.Result()
	tierID := ""
	if m.opts.Tier != nil {
		tierID = m.opts.Tier.ID
	}
	//nolint:errcheck // Best-effort save, the viewer continues regardless
	m.store.SaveRun(storage.RunRecord{
		Seed:             m.opts.Seed,
		Tier:             tierID,
		Outcome:          string(result.Outcome),
		WavesCleared:     result.WavesCleared,
		PacketsSpawned:   result.Stats.PacketsSpawned,
		PacketsDestroyed: result.Stats.PacketsDestroyed,
		Arrivals:         result.Stats.Arrivals,
		Gold:             result.Stats.GoldEarned,
		DurationSecs:     result.DurationSec,
	})
}

func (m *Model) pushFeed(line string) {
	m.feed = append(m.feed, line)
	if len(m.feed) > maxFeedLines {
		m.feed = m.feed[len(m.feed)-maxFeedLines:]
	}
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderDashboard()
}

// Run starts the Bubble Tea program for a local terminal session.
func Run(cat *content.Catalog, store *storage.Store, opts Options) error {
	p := tea.NewProgram(
		NewModel(cat, store, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
