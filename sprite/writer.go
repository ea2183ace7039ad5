package sprite

import (
	"image"
	"image/color"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

type encoder struct {
	w io.Writer
}

func pack(p []uint8) byte {
	var b byte
	for j, idx := range p {
		k := pixelsPerByte - 1 - j
		b |= (idx&0x01)<<k | (idx>>1&0x01)<<(k+4)
	}
	return b
}

func (e *encoder) encode(s Sprite) error {
	var tmp [TileSize]byte
	for y := range s {
		for i := 0; i < bytesPerRow; i++ {
			tmp[y*bytesPerRow+i] = pack(s[y][i*pixelsPerByte : (i+1)*pixelsPerByte])
		}
	}
	_, err := e.w.Write(tmp[:])
	return err
}

// FromImage converts an 8 by 12 image to a Sprite, mapping every pixel to the
// closest Palette entry. Images with more than four colors are reduced first.
func FromImage(m image.Image) (Sprite, error) {
	var s Sprite

	b := m.Bounds()
	if b.Dx() != Width || b.Dy() != Height {
		return s, errors.New("sprite: image is wrong size")
	}

	pm, _ := m.(*image.Paletted)
	if pm == nil || len(pm.Palette) > len(Palette) {
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(b, q.Quantize(make(color.Palette, 0, len(Palette)), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			s[y][x] = uint8(Palette.Index(pm.At(b.Min.X+x, b.Min.Y+y)))
		}
	}

	return s, nil
}

// Encode writes the Image m to w in Dunjunz tile format.
func Encode(w io.Writer, m image.Image) error {
	s, err := FromImage(m)
	if err != nil {
		return err
	}

	e := encoder{w: w}

	return e.encode(s)
}
