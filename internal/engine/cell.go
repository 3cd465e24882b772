package engine

import "fmt"

// Position is a row/column coordinate on the grid.
type Position struct {
	Row    int
	Column int
}

// String returns "(row,col)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Column)
}

// Cell is a single grid position. It holds at most one settled tile and,
// only while a move is being resolved, at most one tile pending a merge.
type Cell struct {
	pos       Position
	tile      *Tile
	mergeTile *Tile
}

func newCell(row, col int) *Cell {
	return &Cell{pos: Position{Row: row, Column: col}}
}

// Row returns the row index.
func (c *Cell) Row() int { return c.pos.Row }

// Column returns the column index.
func (c *Cell) Column() int { return c.pos.Column }

// Position returns the cell coordinate.
func (c *Cell) Position() Position { return c.pos }

// Tile returns the settled tile, or nil.
func (c *Cell) Tile() *Tile { return c.tile }

// MergeTile returns the tile waiting to merge into this cell, or nil.
func (c *Cell) MergeTile() *Tile { return c.mergeTile }

// IsEmpty reports whether the cell has no settled tile.
func (c *Cell) IsEmpty() bool {
	return c.tile == nil
}

// LinkTile places t in this cell.
func (c *Cell) LinkTile(t *Tile) {
	c.tile = t
}

// UnlinkTile clears the settled tile. The tile itself is left untouched so
// the caller can link it elsewhere.
func (c *Cell) UnlinkTile() {
	c.tile = nil
}

// LinkTileForMerge registers t as the tile that will merge into this cell.
// The cell must hold a settled tile and no pending merge.
func (c *Cell) LinkTileForMerge(t *Tile) {
	if c.tile == nil || c.mergeTile != nil {
		panic(fmt.Sprintf("engine: cell %s cannot take a merge tile", c.pos))
	}
	c.mergeTile = t
}

// CanAccept reports whether t may slide into or merge with this cell.
// An empty cell accepts anything; an occupied cell accepts a tile of equal
// value as long as it is not already waiting on another merge.
func (c *Cell) CanAccept(t *Tile) bool {
	if c.IsEmpty() {
		return true
	}
	return c.mergeTile == nil && c.tile.value == t.value
}

// HasTileForMerge reports whether a merge is pending on this cell.
func (c *Cell) HasTileForMerge() bool {
	return c.mergeTile != nil
}

// MergeTiles applies the pending merge: the settled tile doubles and the
// merge tile is dropped. It returns the consumed tile.
func (c *Cell) MergeTiles() *Tile {
	if c.mergeTile == nil {
		panic(fmt.Sprintf("engine: cell %s has no pending merge", c.pos))
	}
	consumed := c.mergeTile
	c.tile.Double()
	c.mergeTile = nil
	return consumed
}
