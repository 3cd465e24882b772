package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// Board sizes offered by the menu.
const (
	MinBoardSize = 2
	MaxBoardSize = 8
)

// MenuChoice is what the user picked in the start menu.
type MenuChoice int

const (
	MenuChoiceNone MenuChoice = iota
	MenuChoicePlay
	MenuChoiceHistory
	MenuChoiceQuit
)

// menu rows
const (
	rowPlay = iota
	rowSize
	rowHistory
	rowQuit
	menuRows
)

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	menuHintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the start menu.
type MenuModel struct {
	cursor    int
	boardSize int
	width     int
	height    int
	keyMapper *KeyMapper
	choice    MenuChoice
}

// NewMenuModel creates a new menu model with the board size preselected.
func NewMenuModel(boardSize, width, height int) MenuModel {
	if boardSize < MinBoardSize || boardSize > MaxBoardSize {
		boardSize = 4
	}
	return MenuModel{
		boardSize: boardSize,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.choice = MenuChoiceQuit
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < menuRows-1 {
			m.cursor++
		}

	case MenuActionLeft:
		if m.cursor == rowSize {
			m.boardSize = core.Clamp(m.boardSize-1, MinBoardSize, MaxBoardSize)
		}

	case MenuActionRight:
		if m.cursor == rowSize {
			m.boardSize = core.Clamp(m.boardSize+1, MinBoardSize, MaxBoardSize)
		}

	case MenuActionHistory:
		m.choice = MenuChoiceHistory

	case MenuActionSelect:
		switch m.cursor {
		case rowPlay, rowSize:
			m.choice = MenuChoicePlay
		case rowHistory:
			m.choice = MenuChoiceHistory
		case rowQuit:
			m.choice = MenuChoiceQuit
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice == MenuChoiceQuit {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("  2 0 4 8  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Join the tiles, get to 2048!", m.width))
	b.WriteString("\n\n")

	items := [menuRows]string{
		rowPlay:    "New Game",
		rowSize:    fmt.Sprintf("Board: < %dx%d >", m.boardSize, m.boardSize),
		rowHistory: "History",
		rowQuit:    "Quit",
	}
	for i, item := range items {
		line := "  " + item
		if i == m.cursor {
			line = menuSelectedStyle.Render("> " + item)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Size  |  Enter: Select  |  Tab: History  |  Q: Quit"
	b.WriteString(centerText(menuHintStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Choice returns what the user picked, or MenuChoiceNone.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// BoardSize returns the selected board size.
func (m MenuModel) BoardSize() int {
	return m.boardSize
}

// centerText centers text within given width.
// Width is measured in cells so styled strings center correctly.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
