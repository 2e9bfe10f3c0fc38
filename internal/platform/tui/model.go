package tui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/levelgen/internal/config"
	"github.com/vovakirdan/levelgen/internal/core"
	"github.com/vovakirdan/levelgen/internal/generator"
	"github.com/vovakirdan/levelgen/internal/level"
	"github.com/vovakirdan/levelgen/internal/preview"
	"github.com/vovakirdan/levelgen/internal/storage"
	"github.com/vovakirdan/levelgen/internal/worlds"
)

// Camera limits and steps. Scales are world units per column.
const (
	minScale = 2.0
	maxScale = 128.0
	zoomStep = 1.5
	panCols  = 8
	panRows  = 3
	chromeH  = 2 // status line and help line
)

// ViewerOptions configures a viewer session.
type ViewerOptions struct {
	View               core.ViewConfig
	World              int
	Level              int
	Variant            int
	DifficultyOverride *float64
	Store              *storage.Store     // Optional generation log
	Source             string             // Recorded with every generation
	Watcher            *config.Watcher    // Optional config hot reload
	Logger             *log.Logger        // Defaults to a discard logger
	GeneratorOptions   []generator.Option // Reapplied when the config reloads
}

// ViewerModel is the Bubble Tea model for browsing generated levels.
type ViewerModel struct {
	gen     *generator.Generator
	opts    ViewerOptions
	seed    *int64 // Fixed seed; nil derives one per level slot
	content *level.Content
	screen  *core.Screen
	camera  preview.Camera
	fit     bool
	tick    int
	paused  bool
	keys    ViewerKeyMap
	help    help.Model
	status  string
	failed  bool
	quit    bool
}

// NewViewerModel creates a viewer and generates the first level.
func NewViewerModel(gen *generator.Generator, opts ViewerOptions) ViewerModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Source == "" {
		opts.Source = storage.SourceViewer
	}
	if opts.World <= 0 {
		opts.World = 1
	}
	if opts.Level <= 0 {
		opts.Level = 1
	}
	if opts.View.ScreenW <= 0 || opts.View.ScreenH <= 0 {
		def := core.DefaultViewConfig()
		opts.View.ScreenW, opts.View.ScreenH = def.ScreenW, def.ScreenH
	}
	if opts.View.Scale <= 0 {
		opts.View.Scale = core.DefaultViewConfig().Scale
	}

	m := ViewerModel{
		gen:    gen,
		opts:   opts,
		screen: core.NewScreen(opts.View.ScreenW, core.Max(opts.View.ScreenH-chromeH, 1)),
		keys:   DefaultViewerKeyMap(),
		help:   help.New(),
	}
	if opts.View.Seed != 0 {
		seed := opts.View.Seed
		m.seed = &seed
	}
	m.help.Width = opts.View.ScreenW
	m.regenerate()
	return m
}

// Content returns the level currently shown.
func (m ViewerModel) Content() *level.Content {
	return m.content
}

// Status returns the last status message.
func (m ViewerModel) Status() string {
	return m.status
}

// Init starts the motion ticker and the config watch loop.
func (m ViewerModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.opts.View.TickRate), watchCmd(m.opts.Watcher))
}

// Update handles messages and updates the model state.
func (m ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.opts.View.ScreenW = msg.Width
		m.opts.View.ScreenH = msg.Height
		m.screen.Resize(msg.Width, core.Max(msg.Height-chromeH, 1))
		m.help.Width = msg.Width
		if m.fit {
			m.camera = preview.Fit(m.content.Bounds, m.screen.Width(), m.screen.Height())
		}
		return m, nil

	case TickMsg:
		if !m.paused {
			m.tick++
			m.content.Step(m.tick)
		}
		return m, tickCmd(m.opts.View.TickRate)

	case ConfigChangedMsg:
		m.reload(msg.Path)
		return m, watchCmd(m.opts.Watcher)

	case ConfigErrorMsg:
		m.setError(fmt.Sprintf("watch: %v", msg.Err))
		return m, watchCmd(m.opts.Watcher)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m ViewerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quit = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Left):
		m.pan(-panCols, 0)
	case key.Matches(msg, m.keys.Right):
		m.pan(panCols, 0)
	case key.Matches(msg, m.keys.Up):
		m.pan(0, -panRows)
	case key.Matches(msg, m.keys.Down):
		m.pan(0, panRows)

	case key.Matches(msg, m.keys.ZoomIn):
		m.zoom(1 / zoomStep)
	case key.Matches(msg, m.keys.ZoomOut):
		m.zoom(zoomStep)
	case key.Matches(msg, m.keys.Fit):
		m.fit = !m.fit
		m.resetCamera()

	case key.Matches(msg, m.keys.NextLevel):
		m.opts.World, m.opts.Level = nextSlot(m.opts.World, m.opts.Level, 1)
		m.opts.Variant = 0
		m.regenerate()
	case key.Matches(msg, m.keys.PrevLevel):
		m.opts.World, m.opts.Level = nextSlot(m.opts.World, m.opts.Level, -1)
		m.opts.Variant = 0
		m.regenerate()
	case key.Matches(msg, m.keys.Variant):
		m.opts.Variant++
		m.regenerate()
	case key.Matches(msg, m.keys.Reseed):
		seed := time.Now().UnixNano() & math.MaxInt64
		m.seed = &seed
		m.regenerate()

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// nextSlot steps through levels, rolling over into the next or previous
// world. It stays inside the authored worlds.
func nextSlot(world, lvl, delta int) (int, int) {
	lvl += delta
	switch {
	case lvl > generator.LevelsPerWorld:
		if world < worlds.Count {
			return world + 1, 1
		}
		return world, generator.LevelsPerWorld
	case lvl < 1:
		if world > 1 {
			return world - 1, generator.LevelsPerWorld
		}
		return world, 1
	}
	return world, lvl
}

// regenerate builds the level for the current slot and records it.
func (m *ViewerModel) regenerate() {
	seed := generator.DeriveSeed(m.opts.World, m.opts.Level, m.opts.Variant)
	if m.seed != nil {
		seed = *m.seed
	}

	m.content = m.gen.Generate(generator.Request{
		World:              m.opts.World,
		Level:              m.opts.Level,
		Variant:            m.opts.Variant,
		Seed:               &seed,
		DifficultyOverride: m.opts.DifficultyOverride,
	})
	m.tick = 0
	m.failed = false
	m.status = ""
	m.resetCamera()

	if m.opts.Store != nil {
		if _, err := m.opts.Store.Record(m.content, m.opts.Source); err != nil {
			m.opts.Logger.Warn("could not record generation", "error", err)
		}
	}
}

// reload rebuilds the generator from a changed config file. A bad file
// keeps the previous generator.
func (m *ViewerModel) reload(path string) {
	cfg, err := config.LoadFile(path)
	if err == nil {
		var gen *generator.Generator
		gen, err = generator.New(cfg, m.opts.GeneratorOptions...)
		if err == nil {
			m.gen = gen
		}
	}
	if err != nil {
		m.opts.Logger.Warn("config reload failed", "path", path, "error", err)
		m.setError(fmt.Sprintf("reload failed: %v", err))
		return
	}

	m.opts.Logger.Info("config reloaded", "path", path)
	m.regenerate()
	m.status = "reloaded " + path
}

func (m *ViewerModel) setError(s string) {
	m.status = s
	m.failed = true
}

func (m *ViewerModel) resetCamera() {
	if m.fit {
		m.camera = preview.Fit(m.content.Bounds, m.screen.Width(), m.screen.Height())
		return
	}
	m.camera = preview.Follow(m.content.Spawn, m.screen.Width(), m.screen.Height(), m.opts.View.Scale)
}

func (m *ViewerModel) pan(cols, rows int) {
	m.fit = false
	m.camera = m.camera.Pan(cols, rows)
}

func (m *ViewerModel) zoom(factor float64) {
	m.fit = false
	w, h := float64(m.screen.Width()), float64(m.screen.Height())

	// Keep the screen center fixed while zooming.
	cx := m.camera.X + w*m.camera.Scale/2
	cy := m.camera.Y + h*m.camera.Scale
	m.camera.Scale = core.ClampF(m.camera.Scale*factor, minScale, maxScale)
	m.opts.View.Scale = m.camera.Scale
	m.camera.X = cx - w*m.camera.Scale/2
	m.camera.Y = cy - h*m.camera.Scale
}

// View renders the current state to a string for display.
func (m ViewerModel) View() string {
	if m.quit {
		return ""
	}

	preview.Render(m.screen, m.content, m.camera)

	var b strings.Builder
	b.WriteString(m.statusLine())
	b.WriteByte('\n')
	b.WriteString(RenderScreen(m.screen))
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ViewerModel) statusLine() string {
	c := m.content
	title := titleStyle.Render(fmt.Sprintf("World %d-%d", c.World, c.Level))
	info := fmt.Sprintf("  %s  %s  seed %d  variant %d  difficulty %.2f  tick %d",
		c.Rule.Name, c.Mode, c.Seed, c.Variant, c.Difficulty, m.tick)
	if m.paused {
		info += "  [paused]"
	}
	line := title + statusStyle.Render(info)
	if m.status != "" {
		if m.failed {
			line += "  " + errorStyle.Render(m.status)
		} else {
			line += "  " + statusStyle.Render(m.status)
		}
	}
	return line
}

// RunViewer starts the Bubble Tea program with a viewer model.
func RunViewer(gen *generator.Generator, opts ViewerOptions) error {
	p := tea.NewProgram(
		NewViewerModel(gen, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
