/*
Package sprite implements a Dunjunz sprite tile decoder and encoder.

A sprite is 8 by 12 pixels with a 2-bit palette index per pixel. The tile is
stored as 24 bytes, two bytes per pixel row. Each byte holds four pixels as
two bit planes: bits 0-3 are the low bit of each pixel and bits 4-7 the high
bit, with bit 3/7 being the leftmost pixel.
*/
package sprite

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

const (
	// Width is the width of a sprite in pixels
	Width = 8
	// Height is the height of a sprite in pixels
	Height = 12
	// TileSize is the size in bytes of an encoded sprite
	TileSize = Height * bytesPerRow

	bytesPerRow   = 2
	pixelsPerByte = Width / bytesPerRow

	// DisplayWidth and DisplayHeight are the conventional upscaled size
	DisplayWidth  = 32
	DisplayHeight = 24
)

// Palette is the fixed four color palette used by every sprite.
var Palette = color.Palette{
	color.RGBA{0x00, 0x00, 0x00, 0xff},
	color.RGBA{0xff, 0x00, 0x00, 0xff},
	color.RGBA{0x00, 0xff, 0x00, 0xff},
	color.RGBA{0xff, 0xff, 0xff, 0xff},
}

// Sprite holds palette indices indexed [row][column].
type Sprite [Height][Width]uint8

// Image returns the sprite as an 8 by 12 paletted image.
func (s Sprite) Image() *image.Paletted {
	m := image.NewPaletted(image.Rect(0, 0, Width, Height), Palette)
	for y := range s {
		for x, idx := range s[y] {
			m.SetColorIndex(x, y, idx)
		}
	}
	return m
}

// Scale returns the sprite upscaled with nearest neighbour sampling.
func (s Sprite) Scale(width, height int) *image.Paletted {
	src := s.Image()
	dst := image.NewPaletted(image.Rect(0, 0, width, height), Palette)
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
