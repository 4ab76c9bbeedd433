package graphics

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirtyMarkSingleTile(t *testing.T) {
	var m dirtyMask

	// Cell (1, 1) lies wholly within display tile (0, 0).
	m.mark(image.Rect(6, 12, 12, 24))
	assert.Equal(t, []Tile{{Row: 0, Col: 0}}, m.tiles())
}

func TestDirtyMarkSpanningTiles(t *testing.T) {
	var m dirtyMask

	// Tile columns meet at x = 3+49; a rectangle across the seam
	// marks both neighbours.
	m.mark(image.Rect(50, 6, 56, 18))
	assert.Equal(t, []Tile{{Row: 0, Col: 0}, {Row: 0, Col: 1}}, m.tiles())
}

func TestDirtyMarkBorderOnly(t *testing.T) {
	var m dirtyMask

	// The border margin belongs to no tile.
	m.mark(image.Rect(0, 0, 3, 216))
	m.mark(image.Rect(0, 0, 300, 6))
	assert.Empty(t, m.tiles())
}

func TestDirtyAccumulates(t *testing.T) {
	var m dirtyMask

	m.mark(image.Rect(6, 12, 12, 24))
	m.mark(image.Rect(6, 12, 12, 24))
	m.mark(image.Rect(250, 180, 256, 192))

	tiles := m.tiles()
	assert.Len(t, tiles, 2)
	assert.Contains(t, tiles, Tile{Row: 0, Col: 0})
	assert.Contains(t, tiles, Tile{Row: 3, Col: 5})

	m.clear()
	assert.Empty(t, m.tiles())
}

func TestDirtyMarkAll(t *testing.T) {
	var m dirtyMask

	m.markAll()
	assert.Len(t, m.tiles(), tileRows*tileCols)
}

func TestTileBounds(t *testing.T) {
	d := NewDecoder()

	assert.Equal(t, image.Rect(3, 6, 52, 57), d.TileBounds(Tile{Row: 0, Col: 0}))
	assert.Equal(t, image.Rect(248, 159, 297, 210), d.TileBounds(Tile{Row: 3, Col: 5}))

	// Tiles cover the visible area exactly.
	assert.Equal(t, d.VisibleBounds().Max, d.TileBounds(Tile{Row: 3, Col: 5}).Max)
}
