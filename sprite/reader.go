package sprite

import (
	"github.com/pkg/errors"
)

// ErrMalformedSprite is returned when a tile is not exactly TileSize bytes.
var ErrMalformedSprite = errors.New("sprite: malformed sprite")

// Low plane in the bottom nibble, high plane in the top
func pixels(b byte) [pixelsPerByte]uint8 {
	var p [pixelsPerByte]uint8
	for k := 0; k < pixelsPerByte; k++ {
		p[pixelsPerByte-1-k] = (b>>k)&0x01 | ((b>>(k+4))&0x01)<<1
	}
	return p
}

// Decode unpacks a 24 byte tile into a Sprite.
func Decode(tile []byte) (Sprite, error) {
	var s Sprite

	if len(tile) != TileSize {
		return s, errors.Wrapf(ErrMalformedSprite, "tile is %d bytes, expected %d", len(tile), TileSize)
	}

	for y := 0; y < Height; y++ {
		for i := 0; i < bytesPerRow; i++ {
			p := pixels(tile[y*bytesPerRow+i])
			copy(s[y][i*pixelsPerByte:], p[:])
		}
	}

	return s, nil
}
