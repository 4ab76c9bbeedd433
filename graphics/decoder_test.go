package graphics

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func packet(inst byte, data ...byte) Packet {
	var p Packet
	p[0] = cdgCommand
	p[1] = inst
	copy(p[4:20], data)
	return p
}

func memoryPreset(index byte) Packet {
	return packet(instMemoryPreset, index, 0)
}

func tileBlock(inst, color0, color1 byte, row, col int, rows [fontHeight]byte) Packet {
	data := append([]byte{color0, color1, byte(row), byte(col)}, rows[:]...)
	return packet(inst, data...)
}

func TestMemoryPreset(t *testing.T) {
	d := NewDecoder()
	d.Decode(memoryPreset(3))

	for _, xy := range [][2]int{{0, 0}, {150, 100}, {299, 215}} {
		assert.Equal(t, byte(3), d.ColorIndexAt(xy[0], xy[1]))
	}

	index, ok := d.PresetColorIndex()
	require.True(t, ok)
	assert.Equal(t, 3, index)

	assert.Len(t, d.DirtyTiles(), tileRows*tileCols)
}

func TestMemoryPresetRepeat(t *testing.T) {
	d := NewDecoder()

	// Discs send the preset repeatedly for redundancy with an
	// incrementing repeat nibble; every delivery applies.
	for repeat := byte(0); repeat < 3; repeat++ {
		d.Decode(packet(instMemoryPreset, 7, repeat))
		assert.Equal(t, byte(7), d.ColorIndexAt(0, 0))
	}
}

func TestBorderPreset(t *testing.T) {
	d := NewDecoder()

	_, ok := d.BorderColorIndex()
	assert.False(t, ok)

	d.Decode(packet(instBorderPreset, 5))

	index, ok := d.BorderColorIndex()
	require.True(t, ok)
	assert.Equal(t, 5, index)
	assert.Len(t, d.DirtyTiles(), tileRows*tileCols)
}

func TestTileBlock(t *testing.T) {
	d := NewDecoder()
	d.Decode(memoryPreset(0))
	d.ClearDirty()

	var rows [fontHeight]byte
	for i := range rows {
		rows[i] = 0x2a // 101010
	}
	d.Decode(tileBlock(instTileBlock, 1, 2, 1, 2, rows))

	// Cell (1, 2) starts at pixel (12, 12); bit 5 is the leftmost
	// pixel.
	for y := 12; y < 24; y++ {
		for x := 12; x < 18; x++ {
			want := byte(1)
			if (x-12)%2 == 0 {
				want = 2
			}
			assert.Equal(t, want, d.ColorIndexAt(x, y), "pixel (%d, %d)", x, y)
		}
	}

	assert.Equal(t, []Tile{{Row: 0, Col: 0}}, d.DirtyTiles())
}

func TestTileBlockXORIdempotence(t *testing.T) {
	d := NewDecoder()
	d.Decode(memoryPreset(9))

	var rows [fontHeight]byte
	for i := range rows {
		rows[i] = byte(i) & 0x3f
	}
	d.Decode(tileBlock(instTileBlock, 4, 11, 3, 7, rows))

	before := snapshot(d)

	xor := tileBlock(instTileBlockXOR, 5, 12, 3, 7, rows)
	d.Decode(xor)
	assert.NotEqual(t, before, snapshot(d))
	d.Decode(xor)
	assert.Equal(t, before, snapshot(d))
}

func TestTileBlockOutOfRange(t *testing.T) {
	d := NewDecoder()
	d.Decode(memoryPreset(0))
	d.ClearDirty()

	var rows [fontHeight]byte
	for i := range rows {
		rows[i] = 0x3f
	}
	d.Decode(tileBlock(instTileBlock, 0, 1, fontRows, 0, rows))
	d.Decode(tileBlock(instTileBlock, 0, 1, 0, fontCols, rows))

	assert.Equal(t, snapshot(NewDecoder()), snapshot(d))
	assert.Empty(t, d.DirtyTiles())
}

func TestColorTableLoad(t *testing.T) {
	d := NewDecoder()

	// Eight colors ramping through the primaries; each channel is
	// four bits replicated to eight.
	d.Decode(packet(instLoadColorTableLo,
		0x00, 0x00, // black
		0x3c, 0x00, // red
		0x03, 0x30, // green
		0x00, 0x0f, // blue
		0x3f, 0x30, // yellow
		0x03, 0x3f, // cyan
		0x3c, 0x0f, // magenta
		0x3f, 0x3f, // white
	))

	want := []color.RGBA{
		{0x00, 0x00, 0x00, 0xff},
		{0xff, 0x00, 0x00, 0xff},
		{0x00, 0xff, 0x00, 0xff},
		{0x00, 0x00, 0xff, 0xff},
		{0xff, 0xff, 0x00, 0xff},
		{0x00, 0xff, 0xff, 0xff},
		{0xff, 0x00, 0xff, 0xff},
		{0xff, 0xff, 0xff, 0xff},
	}

	p := d.Palette()
	for i, c := range want {
		assert.Equal(t, c, p[i], "entry %d", i)
	}

	// The high half is untouched.
	assert.Equal(t, color.RGBA{A: 0xff}, p[8])
	assert.Len(t, d.DirtyTiles(), tileRows*tileCols)
}

func TestColorTableLoadHigh(t *testing.T) {
	d := NewDecoder()
	d.Decode(packet(instLoadColorTableHi,
		0x15, 0x26, // r=5 g=6 b=6
		0x00, 0x00,
		0x00, 0x00,
		0x00, 0x00,
		0x00, 0x00,
		0x00, 0x00,
		0x00, 0x00,
		0x3f, 0x3f,
	))

	p := d.Palette()
	assert.Equal(t, color.RGBA{0x55, 0x66, 0x66, 0xff}, p[8])
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, p[15])
	assert.Equal(t, color.RGBA{A: 0xff}, p[0])
}

func TestScrollPresetFill(t *testing.T) {
	d := NewDecoder()
	d.Decode(memoryPreset(1))
	d.ClearDirty()

	// Scroll right one cell with fine offset 2, filling vacated
	// columns with color 7.
	d.Decode(packet(instScrollPreset, 7, 0x12, 0x00))

	assert.Equal(t, byte(7), d.ColorIndexAt(0, 0))
	assert.Equal(t, byte(7), d.ColorIndexAt(5, 100))
	assert.Equal(t, byte(1), d.ColorIndexAt(6, 100))

	h, v := d.Offsets()
	assert.Equal(t, 2, h)
	assert.Equal(t, 0, v)
	assert.Len(t, d.DirtyTiles(), tileRows*tileCols)
}

func TestScrollPresetVertical(t *testing.T) {
	d := NewDecoder()
	d.Decode(memoryPreset(1))

	// Scroll up one cell; the bottom rows are vacated.
	d.Decode(packet(instScrollPreset, 4, 0x00, 0x20))

	assert.Equal(t, byte(1), d.ColorIndexAt(0, 0))
	assert.Equal(t, byte(1), d.ColorIndexAt(0, fullHeight-fontHeight-1))
	assert.Equal(t, byte(4), d.ColorIndexAt(0, fullHeight-fontHeight))
	assert.Equal(t, byte(4), d.ColorIndexAt(0, fullHeight-1))
}

func TestScrollCopyFullPeriod(t *testing.T) {
	d := NewDecoder()
	d.Decode(memoryPreset(0))

	var rows [fontHeight]byte
	for i := range rows {
		rows[i] = byte(0x15+i) & 0x3f
	}
	for cell := 0; cell < 6; cell++ {
		d.Decode(tileBlock(instTileBlock, byte(cell), byte(cell+7), cell*3, cell*8, rows))
	}

	before := snapshot(d)

	// One full width of horizontal copy scrolls wraps back to the
	// original image.
	for i := 0; i < fullWidth/fontWidth; i++ {
		d.Decode(packet(instScrollCopy, 0, 0x10, 0x00))
	}
	assert.Equal(t, before, snapshot(d))

	// Likewise a full height of vertical copy scrolls.
	for i := 0; i < fullHeight/fontHeight; i++ {
		d.Decode(packet(instScrollCopy, 0, 0x00, 0x20))
	}
	assert.Equal(t, before, snapshot(d))
}

func TestForeignPacketIgnored(t *testing.T) {
	d := NewDecoder()

	p := memoryPreset(3)
	p[0] = 0x0a
	d.Decode(p)

	assert.Equal(t, byte(0), d.ColorIndexAt(0, 0))
	assert.Empty(t, d.DirtyTiles())

	// The top two bits of the command byte are not part of the
	// command value.
	p[0] = 0xc0 | cdgCommand
	d.Decode(p)
	assert.Equal(t, byte(3), d.ColorIndexAt(0, 0))
}

func TestUnknownInstructionIgnored(t *testing.T) {
	d := NewDecoder()
	d.Decode(packet(63, 1, 2, 3))

	assert.Equal(t, snapshot(NewDecoder()), snapshot(d))
	assert.Empty(t, d.DirtyTiles())
}

func TestReset(t *testing.T) {
	d := NewDecoder()
	d.Decode(memoryPreset(5))
	d.Decode(packet(instBorderPreset, 2))

	d.Reset()

	assert.Equal(t, byte(0), d.ColorIndexAt(0, 0))
	_, ok := d.PresetColorIndex()
	assert.False(t, ok)
	_, ok = d.BorderColorIndex()
	assert.False(t, ok)
	assert.Empty(t, d.DirtyTiles())
}

func snapshot(d *Decoder) [fullWidth * fullHeight]byte {
	return d.surface.pix
}
