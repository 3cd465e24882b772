package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// LocalPlayer is recorded as the player of games played outside SSH.
const LocalPlayer = "local"

// GameOptions configures a GameModel.
type GameOptions struct {
	Game    config.GameConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store // Optional; results are not saved when nil
	Player  string
	Logger  *log.Logger

	// ScreenshotDir defaults to ~/.t2048/screenshots.
	ScreenshotDir string
}

// GameModel is the Bubble Tea model for one board. It owns an engine session
// and plays each accepted turn as an animation.
type GameModel struct {
	session   *engine.Session
	events    *eventLog
	screen    *core.Screen
	store     *storage.Store
	cfg       config.GameConfig
	runtime   core.RuntimeConfig
	keyMapper *KeyMapper
	input     *core.InputFrame
	help      help.Model
	anim      TurnAnimation
	player    string
	logger    *log.Logger
	status    string
	shotDir   string

	resultSaved bool // Whether the result has been saved for the current game over
	quitting    bool
	backToMenu  bool
}

// NewGameModel creates a game model and deals the opening tiles.
func NewGameModel(opts GameOptions) GameModel {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	player := opts.Player
	if player == "" {
		player = LocalPlayer
	}

	events := &eventLog{}
	session := engine.NewSession(
		opts.Game.EngineConfig(cfg.Seed),
		engine.WithObserver(events),
		engine.WithLogger(logger),
	)
	if err := session.Start(); err != nil {
		logger.Error("could not start game", "err", err)
	}
	events.drain()
	input := core.NewInputFrame()

	return GameModel{
		session:   session,
		events:    events,
		screen:    core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		store:     opts.Store,
		cfg:       opts.Game,
		runtime:   cfg,
		keyMapper: NewKeyMapper(),
		input:     &input,
		help:      help.New(),
		player:    player,
		logger:    logger,
		shotDir:   opts.ScreenshotDir,
	}
}

// Init starts the animation tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.anim.Advance()
		return m, tickCmd(m.runtime.TickRate)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Keys().Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	m.input.Clear()
	if m.keyMapper.MapKeyToFrame(msg, m.input) {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case m.input.Has(core.ActionBack):
		m.backToMenu = true
		return m, nil
	case m.input.Has(core.ActionRestart):
		if m.session.State() == engine.StateGameOver {
			m.restart()
		}
		return m, nil
	}

	// Moves are accepted again once the previous turn has finished playing
	if m.anim.Active() {
		return m, nil
	}

	if dir, ok := ActionDirection(m.input.FirstDirection()); ok {
		m.play(dir)
	}
	return m, nil
}

// play runs one engine turn and starts its animation.
func (m *GameModel) play(dir engine.Direction) {
	before := m.session.Grid().Values()
	turn, err := m.session.Move(dir)
	events := m.events.drain()

	switch {
	case err == nil:
		m.status = ""
	case errors.Is(err, engine.ErrGameOver):
		m.saveResult()
		return
	case errors.Is(err, engine.ErrIllegalMove):
		m.status = fmt.Sprintf("Nothing moves %s", dir)
		return
	case engine.IsRearm(err):
		return
	default:
		m.logger.Error("turn failed", "session", m.session.ID(), "err", err)
		m.status = "Turn failed"
		m.saveResult()
		return
	}

	m.anim = newTurnAnimation(before, events, m.cfg.Animation)
	if turn.GameOver {
		m.saveResult()
	}
}

// restart begins a new game on the same model.
func (m *GameModel) restart() {
	if err := m.session.Restart(); err != nil {
		m.logger.Error("could not restart game", "err", err)
		return
	}
	m.events.drain()
	m.anim = TurnAnimation{}
	m.status = ""
	m.resultSaved = false
}

// saveResult records the finished game (once).
func (m *GameModel) saveResult() {
	if m.resultSaved {
		return
	}
	m.resultSaved = true

	snap := m.session.Snapshot()
	if m.store == nil || snap.Moves == 0 {
		return
	}

	existing, err := m.store.ResultBySession(snap.SessionID)
	if err != nil {
		m.logger.Warn("could not look up result", "session", snap.SessionID, "err", err)
		return
	}
	if existing != nil {
		m.logger.Debug("result already saved", "session", snap.SessionID, "id", existing.ID)
		return
	}

	_, err = m.store.SaveResult(storage.GameResult{
		SessionID: snap.SessionID,
		Player:    m.player,
		BoardSize: snap.Size,
		Moves:     snap.Moves,
		MaxTile:   snap.MaxValue,
		TileSum:   snap.Sum,
		Duration:  int(m.session.Duration().Seconds()),
	})
	if err != nil {
		m.logger.Warn("could not save result", "session", snap.SessionID, "err", err)
		return
	}
	m.logger.Info("result saved", "player", m.player, "max", snap.MaxValue, "moves", snap.Moves)
}

// saveScreenshot saves the current board to a text file.
func (m *GameModel) saveScreenshot() {
	m.render()

	dir := m.shotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.status = "Screenshot failed"
			return
		}
		dir = filepath.Join(home, ".t2048", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "dir", dir, "err", err)
		m.status = "Screenshot failed"
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	size := m.session.Grid().Size()
	path := filepath.Join(dir, fmt.Sprintf("2048_%dx%d_%s.txt", size, size, timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "path", path, "err", err)
		m.status = "Screenshot failed"
		return
	}
	m.status = "Saved " + filepath.Base(path)
}

// render draws the current frame into the screen buffer.
func (m GameModel) render() {
	RenderBoard(m.screen, BoardView{
		Snapshot:  m.session.Snapshot(),
		Animation: m.anim,
		Player:    m.player,
		Status:    m.status,
	})
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.render()
	return RenderWithHelp(m.screen, m.help, m.keyMapper.Keys())
}

// Session returns the engine session behind the board.
func (m GameModel) Session() *engine.Session {
	return m.session
}

// Animating reports whether a turn is still being played back.
func (m GameModel) Animating() bool {
	return m.anim.Active()
}

// Status returns the message shown below the board.
func (m GameModel) Status() string {
	return m.status
}

// ResultSaved reports whether the finished game has been recorded.
func (m GameModel) ResultSaved() bool {
	return m.resultSaved
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
