package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-threes/internal/core"
	"github.com/vovakirdan/tui-threes/internal/games/threes"
	"github.com/vovakirdan/tui-threes/internal/logging"
	"github.com/vovakirdan/tui-threes/internal/registry"
	"github.com/vovakirdan/tui-threes/internal/storage"
)

// ScoreBoard is the leaderboard of one game variant.
type ScoreBoard interface {
	List(limit int) ([]storage.ScoreEntry, error)
	Submit(sub storage.Submission) (storage.ScoreEntry, error)
}

// Options tune a game model.
type Options struct {
	Logger   *log.Logger
	TopN     int             // Leaderboard rows shown after a game; defaults to 10
	Observer threes.Observer // Receives every accepted move, e.g. a spectate hub
	// ScreenshotDir defaults to ~/.threes/screenshots.
	ScreenshotDir string
}

type phase int

const (
	phasePlaying phase = iota
	phaseNaming        // Game over, asking for a leaderboard name
	phaseResults       // Game over, leaderboard shown
)

type (
	resizer interface{ Resize(w, h int) }
	watched interface{ SetObserver(threes.Observer) }
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 2)
	panelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	highlightStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the Bubble Tea model for one Threes game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	board      ScoreBoard
	config     core.RuntimeConfig
	opts       Options
	logger     *log.Logger
	keys       *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState

	phase     phase
	nameInput textinput.Model
	submitErr error
	submitted *storage.ScoreEntry
	top       []storage.ScoreEntry
	status    string

	quitting   bool
	backToMenu bool
	standalone bool // Back quits; there is no menu to return to
}

// NewModel creates a new Bubble Tea model for the given game. board may be
// nil, in which case finished games are not recorded.
func NewModel(game registry.Game, board ScoreBoard, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.TopN <= 0 {
		opts.TopN = 10
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.With("game", game.ID())
	if w, ok := game.(watched); ok && opts.Observer != nil {
		w.SetObserver(opts.Observer)
	}

	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = 32
	ti.Width = 20
	ti.Prompt = "Name: "

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		board:      board,
		config:     cfg,
		opts:       opts,
		logger:     logger,
		keys:       NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		nameInput:  ti,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Debug("session started", "seed", m.config.Seed)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	if m.phase == phaseNaming {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// BackToMenu reports whether the player asked to leave the game.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Quitting reports whether the player asked to quit.
func (m Model) Quitting() bool {
	return m.quitting
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.phase == phaseNaming {
		return m.handleNameKey(msg)
	}

	if key.Matches(msg, m.keys.Keys().Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionBack:
		m.backToMenu = true
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}
		return m, nil
	}
	if m.phase == phasePlaying && action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

func (m Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.logger.Debug("leaderboard entry skipped")
		m.nameInput.Blur()
		m.showResults()
		return m, nil
	case "enter":
		m.submitScore()
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// submitScore records the finished game. A failed submission keeps the
// name prompt open so the player can fix the name or skip.
func (m *Model) submitScore() {
	entry, err := m.board.Submit(storage.Submission{
		Name:    m.nameInput.Value(),
		Score:   m.gameState.Score,
		MaxTile: m.gameState.Highest,
		Moves:   m.gameState.Moves,
	})
	if err != nil {
		m.submitErr = err
		m.logger.Warn("score submission failed", "err", err)
		return
	}
	m.logger.Info("score recorded", "name", entry.Name, "score", entry.Score, "max_tile", entry.MaxTile)
	m.submitted = &entry
	m.submitErr = nil
	m.nameInput.Blur()
	m.showResults()
}

func (m *Model) showResults() {
	m.phase = phaseResults
	if m.board == nil {
		return
	}
	top, err := m.board.List(m.opts.TopN)
	if err != nil {
		m.logger.Warn("leaderboard unavailable", "err", err)
		m.status = "leaderboard unavailable"
		return
	}
	m.top = top
}

// handleResize resizes the screen. The session keeps running; the game
// only re-checks whether its board still fits.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver && m.gameState.Moves == 0 {
		m.game.Reset(m.config)
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.restart()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.gameState.GameOver && m.phase == phasePlaying {
		m.logger.Info("game over", "score", m.gameState.Score, "moves", m.gameState.Moves, "highest", m.gameState.Highest)
		if m.board != nil && m.gameState.Score > 0 {
			m.phase = phaseNaming
			m.nameInput.SetValue(m.config.Player)
			m.nameInput.CursorEnd()
			m.nameInput.Focus()
		} else {
			m.showResults()
		}
	}

	return m, tickCmd(m.config.TickRate)
}

func (m *Model) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.inputFrame.Clear()
	m.phase = phasePlaying
	m.submitted = nil
	m.submitErr = nil
	m.top = nil
	m.status = ""
	m.logger.Debug("session restarted", "seed", m.config.Seed)
}

// saveScreenshot saves the current screen as plain text.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.logger.Warn("screenshot skipped", "err", err)
			return
		}
		dir = filepath.Join(home, ".threes", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "err", err)
		return
	}
	m.status = "saved " + path
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	switch m.phase {
	case phaseNaming:
		return lipgloss.JoinVertical(lipgloss.Center, RenderScreenTrimmed(m.screen), m.namePanel())
	case phaseResults:
		return lipgloss.JoinVertical(lipgloss.Center, RenderScreenTrimmed(m.screen), m.resultsPanel())
	}

	view := RenderScreen(m.screen)
	if m.status != "" {
		view = RenderScreenTrimmed(m.screen) + "\n" + dimStyle.Render(m.status)
	}
	return view
}

func (m Model) namePanel() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render(fmt.Sprintf("Score %d", m.gameState.Score)))
	b.WriteString("\n\n")
	b.WriteString(m.nameInput.View())
	if m.submitErr != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.submitErr.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("enter save • esc skip"))
	return panelStyle.Render(b.String())
}

func (m Model) resultsPanel() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Top " + m.game.Title()))
	b.WriteString("\n\n")

	switch {
	case m.status != "":
		b.WriteString(errorStyle.Render(m.status))
	case len(m.top) == 0:
		b.WriteString(dimStyle.Render("no scores yet"))
	default:
		b.WriteString(m.topTable())
	}

	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("r play again • esc menu • q quit"))
	return panelStyle.Render(b.String())
}

func (m Model) topTable() string {
	lines := make([]string, 0, len(m.top))
	for i, e := range m.top {
		line := fmt.Sprintf("%2d. %-16s %8d %6d", i+1, e.Name, e.Score, e.MaxTile)
		if m.submitted != nil && e.ID == m.submitted.ID {
			line = highlightStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, board ScoreBoard, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, board, cfg, opts)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
