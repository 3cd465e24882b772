package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// AppOptions configures a full session: menu, games and history.
type AppOptions struct {
	Game    config.GameConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store // Optional
	Player  string
	Logger  *log.Logger

	// StartInGame skips the menu and deals a board right away.
	StartInGame bool
}

// RuntimeFor fills the runtime settings for a terminal, falling back to
// the defaults for unknown sizes and a non-positive tick rate.
func RuntimeFor(width, height, tickRate int, seed int64) core.RuntimeConfig {
	rt := core.DefaultConfig()
	if width > 0 && height > 0 {
		rt.ScreenW = width
		rt.ScreenH = height
	}
	if tickRate > 0 {
		rt.TickRate = tickRate
	}
	rt.Seed = seed
	return rt
}

type view int

const (
	viewMenu view = iota
	viewGame
	viewHistory
)

// SessionModel manages the full flow: menu -> game -> menu, menu -> history.
// It is the top-level model for both local and SSH sessions.
type SessionModel struct {
	opts     AppOptions
	view     view
	menu     MenuModel
	game     *GameModel
	history  HistoryModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts AppOptions) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Player == "" {
		opts.Player = LocalPlayer
	}

	m := SessionModel{
		opts: opts,
		menu: NewMenuModel(opts.Game.Board.Size, opts.Runtime.ScreenW, opts.Runtime.ScreenH),
	}
	if opts.StartInGame {
		m.startGame(opts.Game)
	}
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.view == viewGame {
		return m.game.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewHistory:
		return m.updateHistory(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch m.menu.Choice() {
	case MenuChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuChoicePlay:
		cfg := m.opts.Game
		cfg.Board.Size = m.menu.BoardSize()
		if cfg.Board.StartTiles >= cfg.Board.Size*cfg.Board.Size {
			cfg.Board.StartTiles = 1
		}
		if err := cfg.Validate(); err != nil {
			m.opts.Logger.Warn("invalid board, using defaults", "err", err)
			cfg = config.DefaultGameConfig()
		}
		m.startGame(cfg)
		return m, m.game.Init()

	case MenuChoiceHistory:
		m.history = NewHistoryModel(m.opts.Store, m.opts.Logger, m.menu.BoardSize(), m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
		m.view = viewHistory
		return m, m.history.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.backToMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateHistory handles updates when showing finished games.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.history.Update(msg)
	if historyModel, ok := newModel.(HistoryModel); ok {
		m.history = historyModel
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.history.IsGoingBack() {
		m.backToMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// startGame switches to a fresh board.
func (m *SessionModel) startGame(cfg config.GameConfig) {
	game := NewGameModel(GameOptions{
		Game:    cfg,
		Runtime: m.opts.Runtime,
		Store:   m.opts.Store,
		Player:  m.opts.Player,
		Logger:  m.opts.Logger,
	})
	m.game = &game
	m.view = viewGame
}

// backToMenu resets the menu, keeping the last board size.
func (m *SessionModel) backToMenu() {
	size := m.menu.BoardSize()
	if m.game != nil {
		size = m.game.Session().Grid().Size()
	}
	m.game = nil
	m.menu = NewMenuModel(size, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
	m.view = viewMenu
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		return m.game.View()
	case viewHistory:
		return m.history.View()
	default:
		return m.menu.View()
	}
}

// InGame reports whether a board is on screen.
func (m SessionModel) InGame() bool {
	return m.view == viewGame
}

// Game returns the active game model, or nil outside a game.
func (m SessionModel) Game() *GameModel {
	return m.game
}

// Run starts the Bubble Tea program for a local session.
func Run(opts AppOptions) error {
	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
