/*
Package frame turns decoder state into images.

The decoder owns color indices; this package resolves them against the
color table into image.Paletted frames, scales them with the zoom
modes a karaoke display offers, and encodes snapshots and animations
as GIF. It sits on the renderer side of the boundary: it only reads
the decoder and acknowledges dirty tiles once they have been captured.
*/
package frame

import (
	"image"

	"github.com/bodgit/cdg/graphics"
)

// Image returns the visible 294x204 area as a paletted image with the
// current color table, origin at (0, 0).
func Image(d *graphics.Decoder) *image.Paletted {
	return capture(d, d.VisibleBounds())
}

// Tile returns the pixels of one display tile as a 49x51 paletted
// image, origin at (0, 0). Renderers repainting only dirty tiles use
// this as the per-tile copy accessor.
func Tile(d *graphics.Decoder, t graphics.Tile) *image.Paletted {
	return capture(d, d.TileBounds(t))
}

func capture(d *graphics.Decoder, r image.Rectangle) *image.Paletted {
	m := image.NewPaletted(image.Rect(0, 0, r.Dx(), r.Dy()), d.Palette())
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			m.SetColorIndex(x, y, d.ColorIndexAt(r.Min.X+x, r.Min.Y+y))
		}
	}
	return m
}
