package dunjunz

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/bodgit/dunjunz/level"
	"github.com/bodgit/dunjunz/scramble"
	"github.com/bodgit/dunjunz/sheet"
	"github.com/bodgit/dunjunz/uef"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = log.New(io.Discard, "", 0)

// levelBlock returns a scrambled level block with a single exit item at
// (n, n).
func levelBlock(n int) []byte {
	b := make([]byte, 0x300)
	for i := 0; i < 0xe0; i++ {
		b[i] = 0xff
	}
	b[0x05], b[0x25], b[0x45] = byte(n), byte(n), 0x51
	return scramble.Scramble(b)
}

func testBlocks() Blocks {
	b := Blocks{
		SpriteSheetName: make([]byte, sheet.MinSize()),
	}
	for n := 1; n <= NumLevels; n++ {
		b[LevelName(n)] = levelBlock(n)
	}
	return b
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "Level1", LevelName(1))
	assert.Equal(t, "Level25", LevelName(25))
}

func TestNewBlocks(t *testing.T) {
	b := NewBlocks([]uef.File{
		{Name: "Dunjunz", Data: []byte{1}},
		{Name: "Level1", Data: []byte{2}},
		{Name: "Dunjunz", Data: []byte{3}},
	})

	data, err := b.Block("Dunjunz")
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, data)

	_, err = b.Block("Level2")
	assert.ErrorIs(t, err, ErrBlockNotFound)
}

func TestLevel(t *testing.T) {
	d := New(testBlocks(), discard)

	l, err := d.Level(7)
	require.NoError(t, err)
	assert.Equal(t, map[level.Coord]byte{{X: 7, Y: 7}: 0x51}, l.Lookup())
	assert.Empty(t, l.Doors())
	assert.Empty(t, l.Keys())
}

func TestLevelErrors(t *testing.T) {
	blocks := testBlocks()
	delete(blocks, LevelName(3))
	blocks[LevelName(4)] = make([]byte, 0x100)

	d := New(blocks, discard)

	for _, n := range []int{0, 26, -1} {
		_, err := d.Level(n)
		assert.Error(t, err, "level %d", n)
	}

	_, err := d.Level(3)
	assert.ErrorIs(t, err, ErrBlockNotFound)

	_, err = d.Level(4)
	assert.ErrorIs(t, err, level.ErrMalformedLevel)
}

func TestNilLogger(t *testing.T) {
	d := New(testBlocks(), nil)

	_, err := d.Sprites()
	assert.NoError(t, err)

	_, err = d.Level(1)
	assert.NoError(t, err)
}

func TestSprites(t *testing.T) {
	d := New(testBlocks(), discard)

	c, err := d.Sprites()
	require.NoError(t, err)
	assert.Equal(t, len(sheet.Names()), c.Len())

	d = New(Blocks{SpriteSheetName: make([]byte, 10)}, discard)
	_, err = d.Sprites()
	assert.ErrorIs(t, err, sheet.ErrMalformedSpriteSheet)

	d = New(Blocks{}, discard)
	_, err = d.Sprites()
	assert.ErrorIs(t, err, ErrBlockNotFound)
}

func TestLevels(t *testing.T) {
	d := New(testBlocks(), discard)

	levels, err := d.Levels(context.Background())
	require.NoError(t, err)
	require.Len(t, levels, NumLevels)

	for n := 1; n <= NumLevels; n++ {
		code, ok := levels[n].TileCode(level.Coord{X: uint8(n), Y: uint8(n)})
		assert.True(t, ok, "level %d", n)
		assert.Equal(t, byte(0x51), code)
	}
}

func TestLevelsError(t *testing.T) {
	blocks := testBlocks()
	delete(blocks, LevelName(19))

	d := New(blocks, discard)
	_, err := d.Levels(context.Background())
	assert.ErrorIs(t, err, ErrBlockNotFound)
}

func TestLevelsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := New(testBlocks(), discard)
	_, err := d.Levels(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
