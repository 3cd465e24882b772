package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// lockingBoard has one legal move (left) after which the only empty cell is
// filled and the board is locked.
var lockingBoard = [][]int{
	{4, 4, 16, 32},
	{2, 8, 2, 8},
	{8, 2, 8, 2},
	{2, 8, 2, 8},
}

func newTestGame(t *testing.T, animate bool, store *storage.Store) GameModel {
	t.Helper()

	cfg := config.DefaultGameConfig()
	cfg.Animation.Enabled = animate
	cfg.Animation.SlideTicks = 2
	cfg.Animation.PopTicks = 2

	return NewGameModel(GameOptions{
		Game:          cfg,
		Runtime:       core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42},
		Store:         store,
		Player:        "tester",
		ScreenshotDir: t.TempDir(),
	})
}

// loadBoard replaces the dealt board with fixed values.
func loadBoard(t *testing.T, m GameModel, values [][]int) {
	t.Helper()
	require.NoError(t, m.session.StartFrom(engine.GridFromValues(values)))
	m.events.drain()
}

func send(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	require.True(t, ok)
	return gm, cmd
}

func TestGameModelStartsDealt(t *testing.T) {
	m := newTestGame(t, false, nil)

	assert.Equal(t, engine.StateIdle, m.Session().State())
	assert.Equal(t, 2, m.Session().Grid().TileCount())
	assert.NotNil(t, m.Init())
}

func TestGameModelMoveAnimatesAndIgnoresInput(t *testing.T) {
	m := newTestGame(t, true, nil)
	loadBoard(t, m, [][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 1, m.Session().Moves())
	assert.Equal(t, 4, m.Session().Grid().Cell(0, 0).Tile().Value())
	require.True(t, m.Animating())
	assert.Equal(t, PhaseSlide, m.anim.Phase())

	// Input during playback is dropped, not queued
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.Session().Moves())

	for range 4 {
		m, _ = send(t, m, TickMsg{})
	}
	require.False(t, m.Animating())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, m.Session().Moves())
}

func TestGameModelIllegalMove(t *testing.T) {
	m := newTestGame(t, true, nil)
	loadBoard(t, m, [][]int{
		{2, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	m, _ = send(t, m, runeKey('a'))
	assert.Equal(t, 0, m.Session().Moves())
	assert.False(t, m.Animating())
	assert.Equal(t, "Nothing moves left", m.Status())
	assert.Equal(t, engine.StateIdle, m.Session().State())

	m, _ = send(t, m, runeKey('d'))
	assert.Equal(t, 1, m.Session().Moves())
	assert.Empty(t, m.Status())
}

func TestGameModelGameOverSavesOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	defer store.Close()

	m := newTestGame(t, false, store)
	loadBoard(t, m, lockingBoard)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	require.Equal(t, engine.StateGameOver, m.Session().State())
	assert.True(t, m.ResultSaved())

	// Further moves hit game over again without a second save
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})

	results, err := store.RecentResults(10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "tester", results[0].Player)
	assert.Equal(t, 1, results[0].Moves)
	assert.Equal(t, 32, results[0].MaxTile)
	assert.Equal(t, 4, results[0].BoardSize)
	assert.Equal(t, m.Session().ID(), results[0].SessionID)

	assert.Contains(t, m.View(), "GAME OVER")

	oldID := m.Session().ID()
	m, _ = send(t, m, runeKey('r'))
	assert.Equal(t, engine.StateIdle, m.Session().State())
	assert.Equal(t, 0, m.Session().Moves())
	assert.NotEqual(t, oldID, m.Session().ID())
	assert.False(t, m.ResultSaved())
}

func TestGameModelKeepsStoredResultForSession(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	defer store.Close()

	m := newTestGame(t, false, store)
	loadBoard(t, m, lockingBoard)

	_, err = store.SaveResult(storage.GameResult{
		SessionID: m.Session().ID(),
		Player:    "earlier",
		BoardSize: 4,
		Moves:     1,
		MaxTile:   32,
	})
	require.NoError(t, err)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	require.Equal(t, engine.StateGameOver, m.Session().State())
	assert.True(t, m.ResultSaved())

	results, err := store.RecentResults(10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "earlier", results[0].Player)
}

func TestGameModelIgnoresNonMoveKeys(t *testing.T) {
	m := newTestGame(t, false, nil)
	before := m.Session().Grid().Values()

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, runeKey('x'))
	assert.Equal(t, 0, m.Session().Moves())
	assert.Equal(t, before, m.Session().Grid().Values())
	assert.False(t, m.BackToMenu())
}

func TestGameModelRestartOnlyAfterGameOver(t *testing.T) {
	m := newTestGame(t, false, nil)
	id := m.Session().ID()

	m, _ = send(t, m, runeKey('r'))
	assert.Equal(t, id, m.Session().ID())
}

func TestGameModelLockedBoardWithoutStoreNoPanic(t *testing.T) {
	m := newTestGame(t, false, nil)
	loadBoard(t, m, lockingBoard)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, engine.StateGameOver, m.Session().State())
	assert.True(t, m.ResultSaved())
}

func TestGameModelBackAndQuit(t *testing.T) {
	m := newTestGame(t, false, nil)

	back, _ := send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, back.BackToMenu())
	assert.False(t, back.IsQuitting())

	quit, cmd := send(t, m, runeKey('q'))
	assert.True(t, quit.IsQuitting())
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, quit.View())
}

func TestGameModelScreenshot(t *testing.T) {
	m := newTestGame(t, false, nil)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.True(t, strings.HasPrefix(m.Status(), "Saved 2048_4x4_"), m.Status())

	entries, err := os.ReadDir(m.shotDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(m.shotDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "2048")
	assert.Contains(t, string(data), "┌")
}

func TestGameModelResize(t *testing.T) {
	m := newTestGame(t, false, nil)
	before := m.Session().Grid().Values()

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, 100, m.screen.Width())
	assert.Equal(t, 39, m.screen.Height())
	assert.Equal(t, before, m.Session().Grid().Values(), "resize keeps the board")
}
