package frame

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"time"

	"github.com/ericpauley/go-quantize/quantize"

	"github.com/bodgit/cdg/graphics"
)

const (
	thumbnailWidth  = 147
	thumbnailHeight = 102
)

// EncodeGIF writes the image m to w as a GIF. Smoothed scaling can
// produce more colors than GIF allows, in which case the image is
// first quantized back down to a 256-color palette.
func EncodeGIF(w io.Writer, m image.Image) error {
	pm, _ := m.(*image.Paletted)
	if pm == nil || len(pm.Palette) > 256 {
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(m.Bounds().Sub(m.Bounds().Min), q.Quantize(make(color.Palette, 0, 256), m))
		draw.Draw(pm, pm.Bounds(), m, m.Bounds().Min, draw.Src)
	}

	return gif.Encode(w, pm, nil)
}

// Thumbnail renders a quarter-size smoothed snapshot of the current
// frame and returns it encoded as a GIF, suitable for storing as a
// library blob.
func Thumbnail(d *graphics.Decoder) ([]byte, error) {
	b := new(bytes.Buffer)
	if err := EncodeGIF(b, Render(d, thumbnailWidth, thumbnailHeight, ZoomSoft)); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Animator accumulates decoder frames into an animated GIF. A new
// frame is captured only when the decoder reports dirty tiles;
// otherwise the previous frame's delay is extended, which keeps long
// static passages cheap.
type Animator struct {
	g     gif.GIF
	delay int
}

// NewAnimator returns an Animator capturing at the given interval.
// GIF stores delays in hundredths of a second, so the interval is
// rounded down to that resolution.
func NewAnimator(interval time.Duration) *Animator {
	return &Animator{
		delay: int(interval / (10 * time.Millisecond)),
	}
}

// Capture records the current frame, acknowledging the decoder's dirty
// tiles.
func (a *Animator) Capture(d *graphics.Decoder) {
	if len(a.g.Image) > 0 && len(d.DirtyTiles()) == 0 {
		a.g.Delay[len(a.g.Delay)-1] += a.delay
		return
	}

	a.g.Image = append(a.g.Image, Image(d))
	a.g.Delay = append(a.g.Delay, a.delay)
	d.ClearDirty()
}

// Encode writes the accumulated animation to w.
func (a *Animator) Encode(w io.Writer) error {
	return gif.EncodeAll(w, &a.g)
}
