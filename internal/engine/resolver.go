package engine

// Move records a tile leaving its cell during a resolution pass. The
// animation layer waits for every move before merges are committed.
type Move struct {
	Tile  *Tile
	From  Position
	To    Position
	Merge bool // Tile will merge into the tile already at To
}

// Merge records a committed merge.
type Merge struct {
	At       Position
	Survivor *Tile // Tile whose value doubled
	Consumed *Tile // Tile dropped from the grid
}

// Resolution is the outcome of resolving one direction.
type Resolution struct {
	Direction Direction
	Moves     []Move
	Merges    []Merge
}

// Changed reports whether any tile changed cell or value.
func (r Resolution) Changed() bool {
	return len(r.Moves) > 0
}

// Resolve slides and merges every line for dir in two phases: all lines are
// planned first, then pending merges are committed.
func Resolve(g *Grid, dir Direction) Resolution {
	res := Resolution{Direction: dir}
	res.Moves = planMoves(g, dir)
	res.Merges = commitMerges(g)
	return res
}

// planMoves resets per-turn tile flags and relinks tiles for every line of dir.
// Merges are left pending on their target cells.
func planMoves(g *Grid, dir Direction) []Move {
	for _, c := range g.cells {
		if c.tile != nil {
			c.tile.resetTurn()
		}
	}

	var moves []Move
	for _, line := range g.Lines(dir) {
		moves = planLine(line, moves)
	}
	return moves
}

// planLine compacts one line toward index 0. Each tile slides across empty
// cells and merges with at most one equal tile; a cell that already has a
// pending merge accepts nothing more.
func planLine(line []*Cell, moves []Move) []Move {
	for i := 1; i < len(line); i++ {
		src := line[i]
		if src.IsEmpty() {
			continue
		}
		tile := src.tile

		var target *Cell
		for j := i - 1; j >= 0 && line[j].CanAccept(tile); j-- {
			target = line[j]
			if !target.IsEmpty() {
				break
			}
		}

		if target == nil {
			continue
		}

		move := Move{Tile: tile, From: src.pos, To: target.pos}
		if target.IsEmpty() {
			target.LinkTile(tile)
		} else {
			target.LinkTileForMerge(tile)
			move.Merge = true
		}
		src.UnlinkTile()
		moves = append(moves, move)
	}
	return moves
}

// commitMerges applies every pending merge on the grid.
func commitMerges(g *Grid) []Merge {
	var merges []Merge
	for _, c := range g.cells {
		if !c.HasTileForMerge() {
			continue
		}
		consumed := c.MergeTiles()
		merges = append(merges, Merge{At: c.pos, Survivor: c.tile, Consumed: consumed})
	}
	return merges
}

// CanMoveInLine reports whether any tile in the line would move. Checking the
// immediate neighbour is enough: if it cannot accept, nothing further can.
func CanMoveInLine(line []*Cell) bool {
	for i := 1; i < len(line); i++ {
		if line[i].IsEmpty() {
			continue
		}
		if line[i-1].CanAccept(line[i].tile) {
			return true
		}
	}
	return false
}

// CanMove reports whether dir is a legal move.
func (g *Grid) CanMove(dir Direction) bool {
	for _, line := range g.Lines(dir) {
		if CanMoveInLine(line) {
			return true
		}
	}
	return false
}

// CanMoveAny reports whether at least one direction is legal.
func (g *Grid) CanMoveAny() bool {
	for _, dir := range Directions {
		if g.CanMove(dir) {
			return true
		}
	}
	return false
}
