package render

import (
	"image"
	"image/png"
	"io"

	"github.com/bodgit/dunjunz/sprite"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// EncodeTile reads a PNG from r and writes it to w as a 24 byte tile. The
// image is either 8 by 12 or the 32 by 24 display size written by
// WriteSprites, which is scaled back down first.
func EncodeTile(w io.Writer, r io.Reader) error {
	m, err := png.Decode(r)
	if err != nil {
		return err
	}

	b := m.Bounds()
	switch {
	case b.Dx() == sprite.Width && b.Dy() == sprite.Height:
	case b.Dx() == sprite.DisplayWidth && b.Dy() == sprite.DisplayHeight:
		dst := image.NewRGBA(image.Rect(0, 0, sprite.Width, sprite.Height))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), m, b, draw.Src, nil)
		m = dst
	default:
		return errors.Errorf("render: %dx%d image is not a sprite", b.Dx(), b.Dy())
	}

	return sprite.Encode(w, m)
}
