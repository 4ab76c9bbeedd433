package graphics

import "image"

// surface is the 300x216 grid of 4-bit color indices, including the
// border margin outside the visible area. Scroll commands shift the
// full extent, so the border is real pixel state and not just padding.
type surface struct {
	pix [fullWidth * fullHeight]byte
}

func (s *surface) index(x, y int) byte {
	return s.pix[y*fullWidth+x]
}

func (s *surface) fill(index byte) {
	for i := range s.pix {
		s.pix[i] = index
	}
}

// drawFont writes one 6x12 font cell at the given cell coordinates,
// selecting between the two color indices with one bit per pixel from
// each of the twelve row bitmaps. With xor set the selected index is
// XORed into the existing pixel instead of replacing it.
//
// The returned rectangle covers the written pixels; ok is false when
// the cell coordinates fall outside the surface, in which case the
// packet is dropped without touching any state. Corrupt streams do
// produce such coordinates and they must not crash the decoder.
func (s *surface) drawFont(row, col int, color0, color1 byte, rows []byte, xor bool) (image.Rectangle, bool) {
	if row < 0 || row >= fontRows || col < 0 || col >= fontCols {
		return image.Rectangle{}, false
	}

	x0 := col * fontWidth
	y0 := row * fontHeight

	for y := 0; y < fontHeight; y++ {
		bits := rows[y] & 0x3f
		base := (y0 + y) * fullWidth
		for x := 0; x < fontWidth; x++ {
			index := color0
			if bits>>(fontWidth-1-x)&0x01 != 0 {
				index = color1
			}
			if xor {
				s.pix[base+x0+x] ^= index
			} else {
				s.pix[base+x0+x] = index
			}
		}
	}

	return image.Rect(x0, y0, x0+fontWidth, y0+fontHeight), true
}

// scroll shifts the whole surface by (dx, dy) pixels. With wrap set,
// pixels shifted off one edge reappear at the opposite edge; otherwise
// the vacated rows and columns are filled with the given color index.
func (s *surface) scroll(dx, dy int, wrap bool, fill byte) {
	if dx == 0 && dy == 0 {
		return
	}

	var old [fullWidth * fullHeight]byte
	copy(old[:], s.pix[:])

	for y := 0; y < fullHeight; y++ {
		sy := y - dy
		for x := 0; x < fullWidth; x++ {
			sx := x - dx
			switch {
			case wrap:
				s.pix[y*fullWidth+x] = old[mod(sy, fullHeight)*fullWidth+mod(sx, fullWidth)]
			case sx >= 0 && sx < fullWidth && sy >= 0 && sy < fullHeight:
				s.pix[y*fullWidth+x] = old[sy*fullWidth+sx]
			default:
				s.pix[y*fullWidth+x] = fill
			}
		}
	}
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
