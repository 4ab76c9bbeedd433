package graphics

import (
	"image"
	"image/color"
)

// Decoder applies CDG packets to the screen state. It is not safe for
// concurrent use; the expectation is a single goroutine decoding and
// then reading the surface between bursts, as a renderer does.
type Decoder struct {
	surface surface
	palette palette
	dirty   dirtyMask

	preset int
	border int

	// Fine scroll offsets in pixels, below one font cell. They do not
	// move pixel data; a renderer applies them when positioning the
	// visible window.
	hOffset, vOffset int
}

func NewDecoder() *Decoder {
	return &Decoder{
		palette: newPalette(),
		preset:  -1,
		border:  -1,
	}
}

// Reset restores power-on state: a black color table, a zeroed
// surface, no preset or border color and no dirty tiles.
func (d *Decoder) Reset() {
	*d = *NewDecoder()
}

// Decode applies one packet. Packets from other subcode channels and
// unrecognized instructions are ignored; CDG streams in the wild carry
// both and neither is an error.
func (d *Decoder) Decode(p Packet) {
	if !p.IsGraphics() {
		return
	}

	data := p.data()

	switch p.instruction() {
	case instMemoryPreset:
		// data[1] holds a repeat count for redundant deliveries. The
		// fill is idempotent so every delivery is applied as-is.
		d.preset = int(data[0] & 0x0f)
		d.surface.fill(data[0] & 0x0f)
		d.dirty.markAll()
	case instBorderPreset:
		d.border = int(data[0] & 0x0f)
		d.dirty.markAll()
	case instTileBlock:
		d.tileBlock(data, false)
	case instTileBlockXOR:
		d.tileBlock(data, true)
	case instScrollPreset:
		d.scroll(data, false)
	case instScrollCopy:
		d.scroll(data, true)
	case instLoadColorTableLo:
		d.palette.load(data, 0)
		d.dirty.markAll()
	case instLoadColorTableHi:
		d.palette.load(data, 8)
		d.dirty.markAll()
	}
}

func (d *Decoder) tileBlock(data []byte, xor bool) {
	color0 := data[0] & 0x0f
	color1 := data[1] & 0x0f
	row := int(data[2] & 0x3f)
	col := int(data[3] & 0x3f)

	if r, ok := d.surface.drawFont(row, col, color0, color1, data[4:16], xor); ok {
		d.dirty.mark(r)
	}
}

func (d *Decoder) scroll(data []byte, wrap bool) {
	fill := data[0] & 0x0f
	h := data[1] & 0x3f
	v := data[2] & 0x3f

	var dx, dy int
	switch h >> 4 & 0x03 {
	case 1:
		dx = fontWidth
	case 2:
		dx = -fontWidth
	}
	switch v >> 4 & 0x03 {
	case 1:
		dy = fontHeight
	case 2:
		dy = -fontHeight
	}

	d.hOffset = int(h & 0x07)
	d.vOffset = int(v & 0x0f)

	d.surface.scroll(dx, dy, wrap, fill)
	d.dirty.markAll()
}

// Bounds returns the full surface extent including the border margin.
func (d *Decoder) Bounds() image.Rectangle {
	return image.Rect(0, 0, fullWidth, fullHeight)
}

// VisibleBounds returns the displayed region in full-surface
// coordinates.
func (d *Decoder) VisibleBounds() image.Rectangle {
	return visible
}

// TileBounds returns the pixel extent of one display tile in
// full-surface coordinates.
func (d *Decoder) TileBounds(t Tile) image.Rectangle {
	x0 := borderWidth + t.Col*tileWidth
	y0 := borderHeight + t.Row*tileHeight
	return image.Rect(x0, y0, x0+tileWidth, y0+tileHeight)
}

// ColorIndexAt returns the color-table index of the pixel at (x, y) in
// full-surface coordinates. Out-of-range coordinates return zero.
func (d *Decoder) ColorIndexAt(x, y int) byte {
	if x < 0 || x >= fullWidth || y < 0 || y >= fullHeight {
		return 0
	}
	return d.surface.index(x, y)
}

// Palette returns a copy of the current color table.
func (d *Decoder) Palette() color.Palette {
	return d.palette.colors()
}

// PresetColorIndex returns the index set by the last Memory Preset, or
// false if none has been seen.
func (d *Decoder) PresetColorIndex() (int, bool) {
	return d.preset, d.preset >= 0
}

// BorderColorIndex returns the index set by the last Border Preset, or
// false if none has been seen.
func (d *Decoder) BorderColorIndex() (int, bool) {
	return d.border, d.border >= 0
}

// BorderColor resolves the border index against the color table. A
// renderer paints the area outside the visible region with it.
func (d *Decoder) BorderColor() (color.RGBA, bool) {
	if d.border < 0 {
		return color.RGBA{}, false
	}
	return d.palette[d.border], true
}

// Offsets returns the fine scroll offsets in pixels.
func (d *Decoder) Offsets() (h, v int) {
	return d.hOffset, d.vOffset
}

// DirtyTiles returns the tiles touched since the last ClearDirty, in
// row-major order. The dirty state is left intact.
func (d *Decoder) DirtyTiles() []Tile {
	return d.dirty.tiles()
}

// ClearDirty acknowledges the current dirty set. Call it only after
// the corresponding pixels have been consumed.
func (d *Decoder) ClearDirty() {
	d.dirty.clear()
}

// MarkAllDirty forces a full repaint. External events such as a window
// resize change tile placement without changing pixel content, so the
// renderer has to be told to repaint everything.
func (d *Decoder) MarkAllDirty() {
	d.dirty.markAll()
}
