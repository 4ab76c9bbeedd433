package frame

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/bodgit/cdg/graphics"
)

// Zoom selects how a frame is scaled to the output size.
type Zoom int

const (
	// ZoomNone performs no scaling; the frame is centered within the
	// output.
	ZoomNone Zoom = iota
	// ZoomQuick scales with nearest-neighbour sampling, fast but
	// pixelly.
	ZoomQuick
	// ZoomInt constrains the scale to an integer multiple or divisor,
	// which reduces sampling artifacts.
	ZoomInt
	// ZoomSoft scales with a Catmull-Rom kernel for a smoothed image.
	ZoomSoft
)

var zoomNames = map[Zoom]string{
	ZoomNone:  "none",
	ZoomQuick: "quick",
	ZoomInt:   "int",
	ZoomSoft:  "soft",
}

func (z Zoom) String() string {
	return zoomNames[z]
}

// ParseZoom maps a mode name to its Zoom value.
func ParseZoom(s string) (Zoom, error) {
	for z, name := range zoomNames {
		if name == s {
			return z, nil
		}
	}
	return ZoomNone, fmt.Errorf("frame: unknown zoom mode %q", s)
}

// scale computes the uniform letterbox scale for fitting src within
// width by height, constrained according to the zoom mode.
func (z Zoom) scale(src image.Rectangle, width, height int) float64 {
	s := math.Min(
		float64(width)/float64(src.Dx()),
		float64(height)/float64(src.Dy()),
	)
	switch z {
	case ZoomNone:
		s = 1
	case ZoomInt:
		if s < 1 {
			s = 1 / math.Ceil(1/s)
		} else {
			s = math.Floor(s)
		}
	}
	return s
}

// Render paints the current frame letterboxed into a width by height
// image. The area outside the frame is filled with the border color
// when one has been set.
func Render(d *graphics.Decoder, width, height int, zoom Zoom) image.Image {
	m := Image(d)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if c, ok := d.BorderColor(); ok {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	}

	s := zoom.scale(m.Bounds(), width, height)
	sw := int(s * float64(m.Bounds().Dx()))
	sh := int(s * float64(m.Bounds().Dy()))

	r := image.Rect(0, 0, sw, sh).Add(image.Pt((width-sw)/2, (height-sh)/2))

	kernel := xdraw.Interpolator(xdraw.NearestNeighbor)
	if zoom == ZoomSoft {
		kernel = xdraw.CatmullRom
	}
	kernel.Scale(dst, r, m, m.Bounds(), xdraw.Src, nil)

	return dst
}
