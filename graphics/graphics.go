/*
Package graphics implements a CD+Graphics (CDG) decoder.

CDG interleaves a low-rate graphics channel with CD audio: 24-byte
subcode packets arrive at exactly 300 packets per second of audio and
drive a 300 by 216 pixel screen of 4-bit color indices into a 16-entry
color table. Only the central 294 by 204 pixels are ever shown; the
surrounding border exists so that scroll commands have somewhere to
shift pixels in from.

The decoder keeps the color-index buffer as the canonical pixel state.
Tile Block XOR operates on indices, and two table entries may hold the
same RGB value, so indices cannot be recovered from rendered color.

To cut down redraw work the visible area is divided into a 6 by 4 grid
of 49 by 51 pixel tiles. Every mutation marks the tiles it touched and
a renderer repaints only those, acknowledging them with ClearDirty.
*/
package graphics

const (
	fullWidth  = 300
	fullHeight = 216

	displayWidth  = 294
	displayHeight = 204

	borderWidth  = (fullWidth - displayWidth) / 2
	borderHeight = (fullHeight - displayHeight) / 2

	tileCols   = 6
	tileRows   = 4
	tileWidth  = displayWidth / tileCols
	tileHeight = displayHeight / tileRows

	fontWidth  = 6
	fontHeight = 12
	fontCols   = fullWidth / fontWidth
	fontRows   = fullHeight / fontHeight

	numColors = 16
)

// Subcode instructions within the CDG command.
const (
	instMemoryPreset     = 1
	instBorderPreset     = 2
	instTileBlock        = 6
	instScrollPreset     = 20
	instScrollCopy       = 24
	instLoadColorTableLo = 30
	instLoadColorTableHi = 31
	instTileBlockXOR     = 38
)
