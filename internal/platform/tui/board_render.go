package tui

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3
)

// BoardLayout places a board of the given size on the screen.
type BoardLayout struct {
	X, Y int
	Size int
}

// LayoutBoard centers the board horizontally below the HUD.
// Returns false if the screen cannot fit the board.
func LayoutBoard(screenW, screenH, size int) (BoardLayout, bool) {
	w := size*cellWidth + 1
	h := size*cellHeight + 1
	if screenW < w || screenH < hudHeight+1+h+2 {
		return BoardLayout{Size: size}, false
	}
	return BoardLayout{
		X:    (screenW - w) / 2,
		Y:    hudHeight + 1,
		Size: size,
	}, true
}

// Width returns the board width in characters.
func (l BoardLayout) Width() int { return l.Size*cellWidth + 1 }

// Height returns the board height in characters.
func (l BoardLayout) Height() int { return l.Size*cellHeight + 1 }

// Rect returns the screen area covered by the board.
func (l BoardLayout) Rect() core.Rect {
	return core.NewRect(l.X, l.Y, l.Width(), l.Height())
}

// cellText returns where a value is drawn for a cell at a fractional
// position. Rows snap to the nearest cell since each cell has one text line.
func (l BoardLayout) cellText(row, col float64, text string) (x, y int) {
	x = l.X + int(math.Round(col*cellWidth)) + 1
	y = l.Y + int(math.Round(row))*cellHeight + 1
	pad := (cellWidth - 1 - len(text)) / 2
	if pad < 0 {
		pad = 0
	}
	return x + pad, y
}

// BoardView is everything needed to draw one frame.
type BoardView struct {
	Snapshot  engine.Snapshot
	Animation TurnAnimation
	Player    string
	Status    string
}

// RenderBoard draws the game state to the screen.
func RenderBoard(dst *core.Screen, v BoardView) {
	dst.Clear()

	layout, ok := LayoutBoard(dst.Width(), dst.Height(), v.Snapshot.Size)
	if !ok {
		renderTooSmall(dst)
		return
	}

	renderHUD(dst, layout, v)
	renderGridLines(dst, layout)

	if v.Animation.Phase() == PhaseSlide {
		renderSlide(dst, layout, v.Animation)
	} else {
		renderTiles(dst, layout, v.Snapshot.Values, v.Animation)
	}

	if v.Snapshot.State == engine.StateGameOver && !v.Animation.Active() {
		maxStr := fmt.Sprintf("Max tile: %d", v.Snapshot.MaxValue)
		movesStr := fmt.Sprintf("Moves: %d", v.Snapshot.Moves)
		drawOverlay(dst, layout.Rect(), "GAME OVER", maxStr, movesStr, "R: restart  B: menu")
	}
}

// renderTooSmall shows a "window too small" message.
func renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title and the running totals.
func renderHUD(dst *core.Screen, l BoardLayout, v BoardView) {
	title := "2048"
	dst.DrawTextColor(l.X+(l.Width()-len(title))/2, 0, title, core.ColorBrightYellow)

	movesStr := fmt.Sprintf("Moves: %d", v.Snapshot.Moves)
	dst.DrawText(l.X, 1, movesStr)

	maxStr := fmt.Sprintf("Max: %d", v.Snapshot.MaxValue)
	maxX := l.X + l.Width() - len(maxStr)
	if maxX < l.X {
		maxX = l.X
	}
	dst.DrawText(maxX, 1, maxStr)

	line := fmt.Sprintf("Sum: %d", v.Snapshot.Sum)
	if v.Player != "" {
		line = v.Player + "  " + line
	}
	dst.DrawTextColor(l.X+(l.Width()-len(line))/2, 2, line, core.ColorGray)

	if v.Status != "" {
		dst.DrawTextColor(l.X+(l.Width()-len(v.Status))/2, l.Y+l.Height(), v.Status, core.ColorGray)
	}
}

// renderGridLines draws the cell borders.
func renderGridLines(dst *core.Screen, l BoardLayout) {
	n := l.Size
	for y := range n + 1 {
		for x := range n + 1 {
			px := l.X + x*cellWidth
			py := l.Y + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == n:
				corner = '┐'
			case y == n && x == 0:
				corner = '└'
			case y == n && x == n:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == n:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == n:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColor(px, py, corner, core.ColorGray)

			if x < n {
				for i := 1; i < cellWidth; i++ {
					dst.SetColor(px+i, py, '─', core.ColorGray)
				}
			}
			if y < n {
				for i := 1; i < cellHeight; i++ {
					dst.SetColor(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}
}

// renderTiles draws settled tiles, highlighting the ones popping this turn.
func renderTiles(dst *core.Screen, l BoardLayout, values [][]int, a TurnAnimation) {
	for r, row := range values {
		for c, val := range row {
			if val == 0 {
				continue
			}
			p := engine.Position{Row: r, Column: c}
			text := strconv.Itoa(val)
			color := core.TileColor(val)

			if a.Popping(p) {
				color = core.ColorBrightWhite
				if a.Spawned(p) && a.Progress() < 0.5 {
					text = "·"
				}
			}

			x, y := l.cellText(float64(r), float64(c), text)
			dst.DrawTextColor(x, y, text, color)
		}
	}
}

// renderSlide draws stationary tiles, then sliding tiles between cells.
func renderSlide(dst *core.Screen, l BoardLayout, a TurnAnimation) {
	renderTiles(dst, l, a.static, TurnAnimation{})

	t := a.Progress()
	for _, s := range a.sprites {
		row, col := s.interpolate(t)
		text := strconv.Itoa(s.Value)
		x, y := l.cellText(row, col, text)
		dst.DrawTextColor(x, y, text, core.TileColor(s.Value))
	}
}

// drawOverlay draws a boxed message centered over the area. A box wider
// than the area is kept on screen.
func drawOverlay(dst *core.Screen, area core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}

	box := area.CenteredRect(maxLen+4, len(lines)+2)
	bounds := dst.Bounds()
	if !bounds.Contains(box.X, box.Y) || !bounds.Contains(box.Right()-1, box.Bottom()-1) {
		box.X = core.Clamp(box.X, 0, max(bounds.W-box.W, 0))
		box.Y = core.Clamp(box.Y, 0, max(bounds.H-box.H, 0))
	}
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	for i, line := range lines {
		x := box.X + (box.W-len(line))/2
		dst.DrawTextColor(x, box.Y+1+i, line, core.ColorBrightWhite)
	}
}
