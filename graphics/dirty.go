package graphics

import "image"

// Tile addresses one cell of the 6x4 dirty grid covering the visible
// area. Row runs 0-3 top to bottom, Col runs 0-5 left to right.
type Tile struct {
	Row, Col int
}

// visible is the displayed region in full-surface pixel coordinates.
var visible = image.Rect(borderWidth, borderHeight, borderWidth+displayWidth, borderHeight+displayHeight)

// dirtyMask tracks which display tiles have changed since the last
// acknowledgement. Marks only ever accumulate; the renderer clears the
// whole mask once it has repainted.
type dirtyMask [tileRows][tileCols]bool

// mark flags every tile intersecting r, given in full-surface pixel
// coordinates. Pixels in the border margin belong to no tile.
func (m *dirtyMask) mark(r image.Rectangle) {
	r = r.Intersect(visible)
	if r.Empty() {
		return
	}

	c0 := (r.Min.X - borderWidth) / tileWidth
	c1 := (r.Max.X - 1 - borderWidth) / tileWidth
	r0 := (r.Min.Y - borderHeight) / tileHeight
	r1 := (r.Max.Y - 1 - borderHeight) / tileHeight

	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			m[row][col] = true
		}
	}
}

func (m *dirtyMask) markAll() {
	for row := range m {
		for col := range m[row] {
			m[row][col] = true
		}
	}
}

func (m *dirtyMask) clear() {
	*m = dirtyMask{}
}

// tiles returns the dirty tiles in row-major order without clearing
// them.
func (m *dirtyMask) tiles() []Tile {
	var t []Tile
	for row := range m {
		for col := range m[row] {
			if m[row][col] {
				t = append(t, Tile{Row: row, Col: col})
			}
		}
	}
	return t
}
