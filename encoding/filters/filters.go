// Package filters renders the learned weights of pretrained layers as
// images: each hidden unit's incoming weights become one grayscale tile,
// tiled into a grid with a caption, and successive layers become frames of
// an animated GIF.
package filters

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"math"

	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
	"gorgonia.org/tensor"
)

var regular *truetype.Font

const (
	dpi        = 72.0
	fontsize   = 12.0
	captionPad = 18
	tileGap    = 1
)

func init() {
	var err error
	if regular, err = truetype.Parse(gomono.TTF); err != nil {
		panic(err)
	}
}

var grays = grayPalette()

func grayPalette() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.Gray{uint8(i)}
	}
	return p
}

// Encoder accumulates one GIF frame per encoded layer.
type Encoder struct {
	out  *gif.GIF
	face font.Face
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder {
	return &Encoder{
		out: &gif.GIF{LoopCount: -1},
		face: truetype.NewFace(regular, &truetype.Options{
			Size:    fontsize,
			DPI:     dpi,
			Hinting: font.HintingFull,
		}),
	}
}

// Encode renders weight matrix w of the given layer as a frame. The bias
// row and column are skipped; each remaining column (one hidden unit's
// receptive field) is normalized to the full gray range and reshaped into
// a near-square tile.
func (enc *Encoder) Encode(layer int, w *tensor.Dense) error {
	shp := w.Shape()
	if len(shp) != 2 || shp[0] < 2 || shp[1] < 2 {
		return errors.Errorf("filters: cannot render weights of shape %v", shp)
	}
	visible, hidden := shp[0]-1, shp[1]-1
	data := w.Data().([]float32)
	cols := shp[1]

	side := int(math.Ceil(math.Sqrt(float64(visible))))
	grid := int(math.Ceil(math.Sqrt(float64(hidden))))

	imgW := grid*(side+tileGap) + tileGap
	imgH := grid*(side+tileGap) + tileGap + captionPad
	if imgW < 160 {
		imgW = 160
	}
	frame := image.NewPaletted(image.Rect(0, 0, imgW, imgH), grays)

	for j := 0; j < hidden; j++ {
		lo, hi := float32(math.Inf(1)), float32(math.Inf(-1))
		for i := 0; i < visible; i++ {
			v := data[i*cols+j]
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		scale := float32(0)
		if hi > lo {
			scale = 255 / (hi - lo)
		}

		x0 := tileGap + (j%grid)*(side+tileGap)
		y0 := captionPad + tileGap + (j/grid)*(side+tileGap)
		for i := 0; i < visible; i++ {
			shade := uint8((data[i*cols+j] - lo) * scale)
			frame.SetColorIndex(x0+i%side, y0+i/side, shade)
		}
	}

	d := font.Drawer{
		Dst:  frame,
		Src:  image.White,
		Face: enc.face,
		Dot:  fixed.P(4, 13),
	}
	d.DrawString(fmt.Sprintf("layer %d: %d → %d", layer, visible, hidden))

	enc.out.Image = append(enc.out.Image, frame)
	enc.out.Delay = append(enc.out.Delay, 100)
	return nil
}

// Flush writes the accumulated frames as an animated GIF.
func (enc *Encoder) Flush(w io.Writer) error {
	if len(enc.out.Image) == 0 {
		return errors.New("filters: nothing encoded")
	}
	return gif.EncodeAll(w, enc.out)
}
