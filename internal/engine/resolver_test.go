package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lineGrid places row on the first row of an otherwise empty square grid.
func lineGrid(row []int) *Grid {
	values := make([][]int, len(row))
	values[0] = append([]int(nil), row...)
	for i := 1; i < len(row); i++ {
		values[i] = make([]int, len(row))
	}
	return GridFromValues(values)
}

// slideRowReference is the array-compaction formulation of a left slide,
// used as an oracle for the cell-based resolver.
func slideRowReference(row []int) []int {
	result := make([]int, len(row))
	writePos := 0
	merged := false

	for _, v := range row {
		if v == 0 {
			continue
		}
		if writePos > 0 && !merged && result[writePos-1] == v {
			result[writePos-1] *= 2
			merged = true
			continue
		}
		result[writePos] = v
		writePos++
		merged = false
	}
	return result
}

func TestResolveLineScenarios(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected []int
	}{
		{"merge then slide", []int{2, 2, 4, 0}, []int{4, 4, 0, 0}},
		{"gaps on both sides", []int{0, 2, 0, 2}, []int{4, 0, 0, 0}},
		{"slide through empties then merge", []int{2, 0, 0, 2}, []int{4, 0, 0, 0}},
		{"adjacent pairs merge independently", []int{2, 2, 2, 2}, []int{4, 4, 0, 0}},
		{"merge with trailing tile", []int{2, 2, 2, 0}, []int{4, 2, 0, 0}},
		{"merged cell does not absorb a third tile", []int{4, 2, 2, 4}, []int{4, 4, 4, 0}},
		{"two different pairs", []int{2, 2, 4, 4}, []int{4, 8, 0, 0}},
		{"no merge possible", []int{2, 4, 8, 16}, []int{2, 4, 8, 16}},
		{"slide with gap", []int{0, 0, 2, 2}, []int{4, 0, 0, 0}},
		{"no change needed", []int{4, 2, 0, 0}, []int{4, 2, 0, 0}},
		{"empty row", []int{0, 0, 0, 0}, []int{0, 0, 0, 0}},
		{"single tile", []int{0, 4, 0, 0}, []int{4, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := lineGrid(tt.input)
			Resolve(g, DirLeft)
			assert.Equal(t, tt.expected, g.Values()[0])
		})
	}
}

func TestResolveAllDirections(t *testing.T) {
	board := [][]int{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	}

	tests := []struct {
		dir      Direction
		board    [][]int
		expected [][]int
	}{
		{
			dir:   DirLeft,
			board: board,
			expected: [][]int{
				{4, 0, 0, 0},
				{8, 0, 0, 0},
				{4, 4, 0, 0},
				{2, 0, 0, 0},
			},
		},
		{
			dir:   DirRight,
			board: board,
			expected: [][]int{
				{0, 0, 0, 4},
				{0, 0, 0, 8},
				{0, 0, 4, 4},
				{0, 0, 0, 2},
			},
		},
		{
			dir: DirUp,
			board: [][]int{
				{2, 4, 2, 0},
				{2, 0, 2, 0},
				{0, 4, 2, 0},
				{0, 0, 2, 2},
			},
			expected: [][]int{
				{4, 8, 4, 2},
				{0, 0, 4, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
		},
		{
			dir: DirDown,
			board: [][]int{
				{2, 4, 2, 2},
				{2, 0, 2, 0},
				{0, 4, 2, 0},
				{0, 0, 2, 0},
			},
			expected: [][]int{
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 4, 0},
				{4, 8, 4, 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			g := GridFromValues(tt.board)
			res := Resolve(g, tt.dir)
			assert.True(t, res.Changed())
			assert.Equal(t, tt.expected, g.Values())

			for _, c := range g.Cells() {
				assert.False(t, c.HasTileForMerge(), "pending merge left at %s", c.Position())
			}
		})
	}
}

// allLines enumerates every line of the given length over the given values.
func allLines(length int, values []int) [][]int {
	lines := [][]int{{}}
	for range length {
		var next [][]int
		for _, prefix := range lines {
			for _, v := range values {
				line := append(append([]int(nil), prefix...), v)
				next = append(next, line)
			}
		}
		lines = next
	}
	return lines
}

func TestResolveMatchesReferenceOnEveryLine(t *testing.T) {
	for _, line := range allLines(4, []int{0, 2, 4, 8, 16}) {
		g := lineGrid(line)
		canMove := CanMoveInLine(g.Rows()[0])

		planned := planMoves(g, DirLeft)
		pending := 0
		for _, c := range g.Rows()[0] {
			if c.HasTileForMerge() {
				pending++
			}
		}
		commitMerges(g)

		got := g.Values()[0]
		want := slideRowReference(line)
		require.Equal(t, want, got, "line %v", line)
		require.Equal(t, fmt.Sprint(line) != fmt.Sprint(got), canMove, "legality disagrees for %v", line)
		require.Equal(t, canMove, len(planned) > 0, "moves disagree for %v", line)
		require.LessOrEqual(t, pending, len(line)/2, "too many merges for %v", line)
	}
}

func TestResolveMoveRecords(t *testing.T) {
	g := lineGrid([]int{2, 0, 2, 4})
	first := g.Cell(0, 0).Tile()
	second := g.Cell(0, 2).Tile()
	third := g.Cell(0, 3).Tile()

	res := Resolve(g, DirLeft)

	require.Len(t, res.Moves, 2)
	assert.Equal(t, Move{Tile: second, From: Position{0, 2}, To: Position{0, 0}, Merge: true}, res.Moves[0])
	assert.Equal(t, Move{Tile: third, From: Position{0, 3}, To: Position{0, 1}}, res.Moves[1])

	require.Len(t, res.Merges, 1)
	assert.Same(t, first, res.Merges[0].Survivor)
	assert.Same(t, second, res.Merges[0].Consumed)
	assert.Nil(t, g.Locate(second))
	assert.True(t, first.MergedThisTurn())
	assert.False(t, third.MergedThisTurn())
}

func TestResolveClearsMergeFlagsEachTurn(t *testing.T) {
	g := lineGrid([]int{2, 2, 0, 0})
	Resolve(g, DirLeft)
	survivor := g.Cell(0, 0).Tile()
	require.True(t, survivor.MergedThisTurn())

	Resolve(g, DirRight)
	assert.False(t, survivor.MergedThisTurn())
}

func TestIllegalDirectionLeavesGridUnchanged(t *testing.T) {
	board := [][]int{
		{2, 4, 8, 16},
		{4, 0, 0, 0},
		{8, 0, 0, 0},
		{16, 0, 0, 0},
	}
	g := GridFromValues(board)

	require.False(t, g.CanMove(DirLeft))
	require.False(t, g.CanMove(DirUp))
	require.True(t, g.CanMove(DirRight))
	require.True(t, g.CanMove(DirDown))

	for _, dir := range []Direction{DirLeft, DirUp} {
		res := Resolve(g, dir)
		assert.False(t, res.Changed())
		assert.Equal(t, board, g.Values())
	}
}

func TestCanMoveAnyOnLockedBoard(t *testing.T) {
	g := GridFromValues([][]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	})

	for _, dir := range Directions {
		assert.False(t, g.CanMove(dir), dir.String())
	}
	assert.False(t, g.CanMoveAny())
}
