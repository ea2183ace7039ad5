/*
Package dunjunz is a library for extracting the levels and sprites from the
BBC Micro game Dunjunz.

The game data is read from named blocks, normally the files found on a UEF
tape image: a single "Dunjunz" block holding the sprite sheet and one
scrambled "LevelN" block per level.
*/
package dunjunz

import (
	"fmt"
	"io"
	"log"

	"github.com/bodgit/dunjunz/level"
	"github.com/bodgit/dunjunz/scramble"
	"github.com/bodgit/dunjunz/sheet"
	"github.com/bodgit/dunjunz/uef"
	"github.com/pkg/errors"
)

const (
	// SpriteSheetName is the name of the block holding the sprite sheet
	SpriteSheetName = "Dunjunz"
	// NumLevels is the number of levels in the game
	NumLevels = 25
)

// ErrBlockNotFound is returned when a named block is not available.
var ErrBlockNotFound = errors.New("dunjunz: block not found")

// LevelName returns the block name for level n.
func LevelName(n int) string {
	return fmt.Sprintf("Level%d", n)
}

// BlockSource supplies raw named blocks.
type BlockSource interface {
	Block(name string) ([]byte, error)
}

// Blocks is a BlockSource backed by a map.
type Blocks map[string][]byte

// NewBlocks indexes the files from a tape image by name. When a name appears
// more than once the first file wins.
func NewBlocks(files []uef.File) Blocks {
	b := make(Blocks)
	for _, f := range files {
		if _, ok := b[f.Name]; !ok {
			b[f.Name] = f.Data
		}
	}
	return b
}

// Block returns the named block.
func (b Blocks) Block(name string) ([]byte, error) {
	data, ok := b[name]
	if !ok {
		return nil, errors.Wrapf(ErrBlockNotFound, "%q", name)
	}
	return data, nil
}

type Dunjunz struct {
	src    BlockSource
	logger *log.Logger
}

// New returns a Dunjunz reading blocks from src. A nil logger discards
// output.
func New(src BlockSource, logger *log.Logger) *Dunjunz {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Dunjunz{
		src:    src,
		logger: logger,
	}
}

// Sprites decodes the sprite sheet.
func (d *Dunjunz) Sprites() (*sheet.Collection, error) {
	b, err := d.src.Block(SpriteSheetName)
	if err != nil {
		return nil, err
	}

	c, err := sheet.Decode(b)
	if err != nil {
		return nil, err
	}
	d.logger.Printf("Decoded %d sprites from %d byte sheet\n", c.Len(), len(b))

	return c, nil
}

// Level decodes level n, from 1 to NumLevels.
func (d *Dunjunz) Level(n int) (*level.Level, error) {
	if n < 1 || n > NumLevels {
		return nil, errors.Errorf("dunjunz: level %d out of range 1-%d", n, NumLevels)
	}

	b, err := d.src.Block(LevelName(n))
	if err != nil {
		return nil, err
	}

	l, err := level.Decode(scramble.Unscramble(b))
	if err != nil {
		return nil, errors.Wrapf(err, "level %d", n)
	}
	d.logger.Printf("Decoded level %d: %d items, %d doors, %d keys\n", n, len(l.Lookup()), len(l.Doors()), len(l.Keys()))

	return l, nil
}
