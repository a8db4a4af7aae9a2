package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/runner"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// jumpHoldWindow is how long after the last jump key event the jump is
// still considered held. Terminals send no key-up; while the key is
// down the terminal repeats the key event, so "held" means "a jump key
// event arrived recently".
const jumpHoldWindow = 150 * time.Millisecond

// runStatser is implemented by games that report rich run statistics.
type runStatser interface {
	Stats() runner.RunStats
}

// Model is the Bubble Tea model for playing the runner.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	keyMapper  *KeyMapper
	gameState  core.GameState

	lastJumpKey time.Time
	quitting    bool
	runSaved    bool // Whether the finished run has been persisted

	// board is the scoreboard overlay, opened from the game-over screen.
	board *ScoreboardModel
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the model and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.board != nil {
		return m.updateBoard(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// updateBoard routes messages to the scoreboard overlay. The tick loop
// keeps running so play resumes seamlessly when the board closes.
func (m Model) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, tickCmd(m.config.TickRate)
	}
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
		m.screen.Resize(wsm.Width, wsm.Height)
	}

	next, cmd := m.board.Update(msg)
	if board, ok := next.(ScoreboardModel); ok {
		m.board = &board
	}

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.board.IsGoingBack() {
		m.board = nil
		return m, nil
	}
	return m, cmd
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionJump:
		// A jump key event inside the hold window is key repeat, not a
		// new tap. It extends the hold instead of spending a jump.
		now := time.Now()
		if now.Sub(m.lastJumpKey) >= jumpHoldWindow {
			m.inputFrame.Set(core.ActionJump)
		}
		m.lastJumpKey = now
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}
	case core.ActionScores:
		if m.gameState.GameOver && m.store != nil {
			board := NewScoreboardModel(m.store, m.game.ID(), m.config.ScreenW, m.config.ScreenH)
			m.board = &board
		}
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runSaved = false
		m.inputFrame.ClearAll()
		return m, tickCmd(m.config.TickRate)
	}

	// Synthesize the held flag from key-repeat recency.
	if time.Since(m.lastJumpKey) < jumpHoldWindow {
		m.inputFrame.SetHeld(core.ActionJump)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	// Pressed and held are both rebuilt from key events before the next
	// step.
	m.inputFrame.ClearAll()
	return m, tickCmd(m.config.TickRate)
}

// saveRun persists the finished run. Best effort: a storage failure
// never interrupts play.
func (m *Model) saveRun() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	if g, ok := m.game.(runStatser); ok {
		stats := g.Stats()
		//nolint:errcheck // Best-effort save, game continues regardless
		m.store.SaveRun(m.game.ID(), stats.Score, stats.Distance, stats.Pickups, stats.Cause)
		return
	}
	//nolint:errcheck // Best-effort save
	m.store.SaveRun(m.game.ID(), m.gameState.Score, 0, 0, "")
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.board != nil {
		return m.board.View()
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
