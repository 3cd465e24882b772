package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellCanAccept(t *testing.T) {
	two := NewTile(1, 2)

	tests := []struct {
		name  string
		setup func(c *Cell)
		want  bool
	}{
		{
			name:  "empty cell",
			setup: func(c *Cell) {},
			want:  true,
		},
		{
			name:  "equal value",
			setup: func(c *Cell) { c.LinkTile(NewTile(2, 2)) },
			want:  true,
		},
		{
			name:  "different value",
			setup: func(c *Cell) { c.LinkTile(NewTile(2, 4)) },
			want:  false,
		},
		{
			name: "equal value with pending merge",
			setup: func(c *Cell) {
				c.LinkTile(NewTile(2, 2))
				c.LinkTileForMerge(NewTile(3, 2))
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCell(0, 0)
			tt.setup(c)
			assert.Equal(t, tt.want, c.CanAccept(two))
		})
	}
}

func TestCellLinkUnlink(t *testing.T) {
	c := newCell(1, 2)
	tile := NewTile(7, 8)

	require.True(t, c.IsEmpty())
	c.LinkTile(tile)
	assert.False(t, c.IsEmpty())
	assert.Same(t, tile, c.Tile())

	c.UnlinkTile()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 8, tile.Value(), "unlinking must not touch the tile")
	assert.Equal(t, Position{Row: 1, Column: 2}, c.Position())
}

func TestCellMergeTiles(t *testing.T) {
	c := newCell(0, 0)
	survivor := NewTile(1, 4)
	incoming := NewTile(2, 4)

	c.LinkTile(survivor)
	c.LinkTileForMerge(incoming)
	require.True(t, c.HasTileForMerge())

	consumed := c.MergeTiles()

	assert.Same(t, incoming, consumed)
	assert.Same(t, survivor, c.Tile())
	assert.Equal(t, 8, survivor.Value())
	assert.True(t, survivor.MergedThisTurn())
	assert.False(t, c.HasTileForMerge())
	assert.Nil(t, c.MergeTile())
}

func TestCellMergePreconditions(t *testing.T) {
	t.Run("merge into empty cell", func(t *testing.T) {
		c := newCell(0, 0)
		assert.Panics(t, func() { c.LinkTileForMerge(NewTile(1, 2)) })
	})

	t.Run("second merge tile", func(t *testing.T) {
		c := newCell(0, 0)
		c.LinkTile(NewTile(1, 2))
		c.LinkTileForMerge(NewTile(2, 2))
		assert.Panics(t, func() { c.LinkTileForMerge(NewTile(3, 2)) })
	})

	t.Run("commit without pending merge", func(t *testing.T) {
		c := newCell(0, 0)
		c.LinkTile(NewTile(1, 2))
		assert.Panics(t, func() { c.MergeTiles() })
	})
}
