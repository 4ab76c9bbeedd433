package graphics

import "image/color"

// palette is the 16-entry color table. Entries are rewritten eight at
// a time by the two load instructions and are never partially visible.
type palette [numColors]color.RGBA

func newPalette() palette {
	var p palette
	for i := range p {
		p[i] = color.RGBA{A: 0xff}
	}
	return p
}

// load rewrites the eight entries starting at offset. Each color is
// packed into two payload bytes as four bits per channel:
//
//	byte 0: --rrrrgg
//	byte 1: --ggbbbb
//
// The four significant bits are replicated into the low nibble to
// expand each channel to eight bits.
func (p *palette) load(data []byte, offset int) {
	for i := 0; i < 8; i++ {
		hi := data[2*i] & 0x3f
		lo := data[2*i+1] & 0x3f

		r := hi >> 2
		g := hi&0x03<<2 | lo>>4
		b := lo & 0x0f

		p[offset+i] = color.RGBA{r<<4 | r, g<<4 | g, b<<4 | b, 0xff}
	}
}

func (p *palette) colors() color.Palette {
	cp := make(color.Palette, numColors)
	for i, c := range p {
		cp[i] = c
	}
	return cp
}
