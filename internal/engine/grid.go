package engine

import (
	"fmt"
	"math/rand"
)

// DefaultSize is the classic board dimension.
const DefaultSize = 4

// Grid owns the fixed N×N matrix of cells.
type Grid struct {
	size  int
	cells []*Cell // row-major
}

// NewGrid allocates an empty size×size grid.
func NewGrid(size int) *Grid {
	if size < 2 {
		panic(fmt.Sprintf("engine: grid size %d is too small", size))
	}

	g := &Grid{
		size:  size,
		cells: make([]*Cell, 0, size*size),
	}
	for r := range size {
		for c := range size {
			g.cells = append(g.cells, newCell(r, c))
		}
	}
	return g
}

// GridFromValues builds a grid from a square matrix of tile values, where 0
// means empty. Tile ids are assigned in row-major order starting at 1.
func GridFromValues(values [][]int) *Grid {
	g := NewGrid(len(values))
	var id uint64
	for r, row := range values {
		if len(row) != g.size {
			panic(fmt.Sprintf("engine: row %d has %d values, want %d", r, len(row), g.size))
		}
		for c, v := range row {
			if v == 0 {
				continue
			}
			id++
			g.Cell(r, c).LinkTile(NewTile(id, v))
		}
	}
	return g
}

// Size returns the grid dimension.
func (g *Grid) Size() int {
	return g.size
}

// Cell returns the cell at (row, col).
func (g *Grid) Cell(row, col int) *Cell {
	return g.cells[row*g.size+col]
}

// Cells returns every cell in row-major order.
func (g *Grid) Cells() []*Cell {
	return g.cells
}

// Rows groups cells by row, column 0 first. This is the view for a left move.
func (g *Grid) Rows() [][]*Cell {
	return g.group(func(line, i int) *Cell { return g.Cell(line, i) })
}

// ReversedRows groups cells by row, last column first (right move).
func (g *Grid) ReversedRows() [][]*Cell {
	return g.group(func(line, i int) *Cell { return g.Cell(line, g.size-1-i) })
}

// Columns groups cells by column, row 0 first (up move).
func (g *Grid) Columns() [][]*Cell {
	return g.group(func(line, i int) *Cell { return g.Cell(i, line) })
}

// ReversedColumns groups cells by column, last row first (down move).
func (g *Grid) ReversedColumns() [][]*Cell {
	return g.group(func(line, i int) *Cell { return g.Cell(g.size-1-i, line) })
}

// Lines returns the grouped view for a direction. Every line starts at the
// edge the direction pushes tiles toward.
func (g *Grid) Lines(dir Direction) [][]*Cell {
	switch dir {
	case DirUp:
		return g.Columns()
	case DirDown:
		return g.ReversedColumns()
	case DirLeft:
		return g.Rows()
	case DirRight:
		return g.ReversedRows()
	default:
		return nil
	}
}

func (g *Grid) group(at func(line, i int) *Cell) [][]*Cell {
	lines := make([][]*Cell, g.size)
	for l := range g.size {
		lines[l] = make([]*Cell, g.size)
		for i := range g.size {
			lines[l][i] = at(l, i)
		}
	}
	return lines
}

// EmptyCells returns all cells without a settled tile.
func (g *Grid) EmptyCells() []*Cell {
	var empty []*Cell
	for _, c := range g.cells {
		if c.IsEmpty() {
			empty = append(empty, c)
		}
	}
	return empty
}

// RandomEmptyCell picks an empty cell uniformly at random.
func (g *Grid) RandomEmptyCell(rng *rand.Rand) (*Cell, error) {
	empty := g.EmptyCells()
	if len(empty) == 0 {
		return nil, ErrNoEmptyCell
	}
	return empty[rng.Intn(len(empty))], nil
}

// Locate returns the cell holding t as its settled tile, or nil.
func (g *Grid) Locate(t *Tile) *Cell {
	for _, c := range g.cells {
		if c.tile == t {
			return c
		}
	}
	return nil
}

// TileCount returns the number of settled tiles.
func (g *Grid) TileCount() int {
	n := 0
	for _, c := range g.cells {
		if !c.IsEmpty() {
			n++
		}
	}
	return n
}

// Sum returns the total value of all settled tiles.
func (g *Grid) Sum() int {
	sum := 0
	for _, c := range g.cells {
		if c.tile != nil {
			sum += c.tile.value
		}
	}
	return sum
}

// MaxValue returns the highest tile value, or 0 on an empty grid.
func (g *Grid) MaxValue() int {
	maxVal := 0
	for _, c := range g.cells {
		if c.tile != nil && c.tile.value > maxVal {
			maxVal = c.tile.value
		}
	}
	return maxVal
}

// Values returns the tile values as a matrix, 0 for empty cells.
func (g *Grid) Values() [][]int {
	values := make([][]int, g.size)
	for r := range g.size {
		values[r] = make([]int, g.size)
		for c := range g.size {
			if t := g.Cell(r, c).tile; t != nil {
				values[r][c] = t.value
			}
		}
	}
	return values
}

// Clone returns a deep copy of the grid with copies of every tile.
// Pending merges are not copied.
func (g *Grid) Clone() *Grid {
	clone := NewGrid(g.size)
	for i, c := range g.cells {
		if c.tile != nil {
			t := *c.tile
			clone.cells[i].tile = &t
		}
	}
	return clone
}
