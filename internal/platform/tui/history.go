package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/levelgen/internal/storage"
	"github.com/vovakirdan/levelgen/internal/worlds"
)

// History layout constants
const (
	maxHistory  = 200 // Max generations to load
	historyMinW = 60
)

// HistoryModel is the Bubble Tea model for browsing the generation log.
// World 0 shows every world.
type HistoryModel struct {
	store    *storage.Store
	world    int
	entries  []storage.Generation
	err      error
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	width    int
	height   int
	selected *storage.Generation
	quitting bool
}

// NewHistoryModel creates a history browser.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	m := HistoryModel{
		store:  store,
		keys:   DefaultHistoryKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized to the window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "World", Width: 5},
		{Title: "Level", Width: 5},
		{Title: "Var", Width: 3},
		{Title: "Seed", Width: 20},
		{Title: "Mode", Width: 7},
		{Title: "Diff", Width: 5},
		{Title: "Plat", Width: 4},
		{Title: "Source", Width: 6},
		{Title: "Date", Width: 12},
	}
	if m.width < historyMinW {
		// Drop the least useful columns on narrow terminals.
		columns = columns[:6]
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches the generations for the current world filter.
func (m *HistoryModel) load() {
	m.entries, m.err = nil, nil
	if m.store != nil {
		if m.world == 0 {
			m.entries, m.err = m.store.RecentGenerations(maxHistory)
		} else {
			m.entries, m.err = m.store.GenerationsForWorld(m.world, maxHistory)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded generations.
func (m *HistoryModel) updateTableRows() {
	ncols := len(m.table.Columns())
	rows := make([]table.Row, len(m.entries))
	for i, g := range m.entries {
		row := table.Row{
			fmt.Sprintf("%d", g.World),
			fmt.Sprintf("%d", g.Level),
			fmt.Sprintf("%d", g.Variant),
			fmt.Sprintf("%d", g.Seed),
			g.Mode,
			fmt.Sprintf("%.2f", g.Difficulty),
			fmt.Sprintf("%d", g.Platforms),
			g.Source,
			g.CreatedAt.Format("Jan 02 15:04"),
		}
		rows[i] = row[:ncols]
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Open):
			if i := m.table.Cursor(); i >= 0 && i < len(m.entries) {
				g := m.entries[i]
				m.selected = &g
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.NextWorld):
			m.world = (m.world + 1) % (worlds.Count + 1)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevWorld):
			m.world--
			if m.world < 0 {
				m.world = worlds.Count
			}
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting || m.selected != nil {
		return ""
	}

	var b strings.Builder

	title := "GENERATION HISTORY - all worlds"
	if m.world > 0 {
		title = fmt.Sprintf("GENERATION HISTORY - world %d: %s", m.world, worlds.For(m.world).Name)
	}
	b.WriteString(titleStyle.MarginBottom(1).Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
	case len(m.entries) == 0:
		empty := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(empty.Render("No generations recorded yet.\nRun 'levelgen generate' to add some!"))
	default:
		b.WriteString(borderStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Selected returns the generation the user opened, or nil.
func (m HistoryModel) Selected() *storage.Generation {
	return m.selected
}

// World returns the current world filter.
func (m HistoryModel) World() int {
	return m.world
}

// Entries returns the loaded generations.
func (m HistoryModel) Entries() []storage.Generation {
	return m.entries
}

// RunHistory runs the history browser and returns the generation the user
// opened, if any.
func RunHistory(store *storage.Store, width, height int) (*storage.Generation, error) {
	p := tea.NewProgram(
		NewHistoryModel(store, width, height),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := final.(HistoryModel)
	if !ok {
		return nil, nil
	}
	return m.Selected(), nil
}
