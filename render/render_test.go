package render

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bodgit/dunjunz/level"
	"github.com/bodgit/dunjunz/sheet"
	"github.com/bodgit/dunjunz/sprite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const (
	solidOffset       = 0xe0
	collectableOffset = 0x1b0
)

func newBlock() []byte {
	b := make([]byte, 0x300)
	for i := 0; i < solidOffset; i++ {
		b[i] = 0xff
	}
	return b
}

// setBit sets the grid bit for row, column in the grid at offset.
func setBit(b []byte, offset, row, column int) {
	src := (row/8)*0x20 + row%8 + (column/8)*8
	b[offset+src] |= 0x80 >> (column % 8)
}

func testLevel(t *testing.T) *level.Level {
	t.Helper()

	b := newBlock()

	// Vertical door 2 at (10, 6) on a solid cell
	b[0x62], b[0x77], b[0x8c] = 10, 6, 0x1d
	setBit(b, solidOffset, 6, 10)

	// Horizontal door 3 at (14, 6) on a solid cell
	b[0x63], b[0x78], b[0x8d] = 14, 6, 0x00
	setBit(b, solidOffset, 6, 14)

	// Door 4 at (15, 6) on an open cell is not drawn
	b[0x64], b[0x79], b[0x8e] = 15, 6, 0x00

	// Plain wall
	setBit(b, solidOffset, 0, 0)

	// Key 4 at (2, 3)
	b[0xa4], b[0xb9] = 2, 3

	// Trapdoor at (5, 7)
	b[0xd0], b[0xd8] = 5, 7

	// Exit at (3, 4), treasure at (4, 4) masked by the collectable grid
	b[0x05], b[0x25], b[0x45] = 3, 4, 0x51
	b[0x06], b[0x26], b[0x46] = 4, 4, 0x28
	setBit(b, collectableOffset, 4, 4)

	// Teleporters
	b[0x01], b[0x21], b[0x41] = 20, 30, 0x2b
	b[0x02], b[0x22], b[0x42] = 21, 30, 0x2b

	// Player start cell also holding a key
	b[0xa5], b[0xba] = 11, 11

	l, err := level.Decode(b)
	require.NoError(t, err)
	return l
}

func TestCell(t *testing.T) {
	l := testLevel(t)

	tests := []struct {
		row, column int
		name, extra string
	}{
		{11, 11, "ranger_up1", "Ranger"},
		{11, 12, "barbarian_down1", "Barbarian"},
		{12, 11, "wizard_right1", "Wizard"},
		{12, 12, "fighter_left1", "Fighter"},
		{6, 10, "v_door", "2"},
		{6, 14, "h_door", "3"},
		{6, 15, Blank, ""},
		{0, 0, "03", ""},
		{3, 2, "key", "4"},
		{7, 5, "trapdoor", "trapdoor"},
		{4, 3, "exit", ""},
		{4, 4, Blank, ""},
		{30, 20, "teleport", "0"},
		{30, 21, "teleport", "1"},
		{47, 31, Blank, ""},
	}

	for _, tt := range tests {
		name, extra, err := Cell(l, 3, tt.row, tt.column)
		if assert.NoError(t, err) {
			assert.Equal(t, tt.name, name, "row %d column %d", tt.row, tt.column)
			assert.Equal(t, tt.extra, extra, "row %d column %d", tt.row, tt.column)
		}
	}
}

func TestCellUnknownCode(t *testing.T) {
	b := newBlock()
	b[0x01], b[0x21], b[0x41] = 0, 40, 0x52

	l, err := level.Decode(b)
	require.NoError(t, err)

	_, _, err = Cell(l, 1, 40, 0)
	assert.ErrorIs(t, err, level.ErrUnknownTileCode)

	err = WriteHTML(new(bytes.Buffer), 1, l)
	assert.ErrorIs(t, err, level.ErrUnknownTileCode)
}

func TestWallName(t *testing.T) {
	assert.Equal(t, "01", WallName(1))
	assert.Equal(t, "25", WallName(25))
}

func TestWriteHTML(t *testing.T) {
	b := new(bytes.Buffer)
	require.NoError(t, WriteHTML(b, 3, testLevel(t)))

	s := b.String()
	assert.Contains(t, s, "<title>Dunjunz Level 3</title>")
	assert.Contains(t, s, `<img src="v_door.png" alt="2" />`)
	assert.Contains(t, s, `<img src="03.png" />`)
	assert.Equal(t, 48, strings.Count(s, "<tr>"))
	assert.Equal(t, 48*32, strings.Count(s, "<td>"))
}

func TestWriteYAML(t *testing.T) {
	b := new(bytes.Buffer)
	require.NoError(t, WriteYAML(b, 3, testLevel(t)))

	var y yamlLevel
	require.NoError(t, yaml.Unmarshal(b.Bytes(), &y))

	assert.Equal(t, 3, y.Number)
	assert.Len(t, y.Items, 4)
	assert.Len(t, y.Doors, 3)
	assert.Len(t, y.Keys, 2)
	assert.Len(t, y.Trapdoors, 8)
	assert.Equal(t, []yamlCoord{{20, 30}, {21, 30}}, y.Teleporters)

	require.Len(t, y.Solid, 48)
	assert.Len(t, y.Solid[0], 32)
	assert.Equal(t, byte('#'), y.Solid[0][0])
	assert.Equal(t, byte('*'), y.Collectable[4][3])
	assert.Equal(t, byte('.'), y.Collectable[4][4])

	// Items sorted by row then column
	assert.Equal(t, yamlItem{yamlCoord{3, 4}, 0x51, "exit"}, y.Items[0])
}

func TestWriteMap(t *testing.T) {
	c, err := sheet.Decode(make([]byte, sheet.MinSize()))
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "level3")
	require.NoError(t, WriteMap(dir, 3, testLevel(t), c))

	for _, name := range []string{"index.html", "03.png", "blank.png", "key.png", "v_door.png", "exit.png"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestEncodeTile(t *testing.T) {
	tile := make([]byte, sprite.TileSize)
	for i := 0; i < sprite.TileSize; i += 2 {
		tile[i], tile[i+1] = 0x03, 0xf3
	}

	s, err := sprite.Decode(tile)
	require.NoError(t, err)

	dir := t.TempDir()

	for name, m := range map[string]image.Image{
		"small.png":   s.Image(),
		"display.png": s.Scale(sprite.DisplayWidth, sprite.DisplayHeight),
	} {
		file := filepath.Join(dir, name)
		require.NoError(t, WritePNG(file, m))

		f, err := os.Open(file)
		require.NoError(t, err)

		b := new(bytes.Buffer)
		err = EncodeTile(b, f)
		f.Close()
		require.NoError(t, err, name)
		assert.Equal(t, tile, b.Bytes(), name)
	}
}

func TestEncodeTileWrongSize(t *testing.T) {
	file := filepath.Join(t.TempDir(), "big.png")
	require.NoError(t, WritePNG(file, image.NewRGBA(image.Rect(0, 0, 16, 16))))

	f, err := os.Open(file)
	require.NoError(t, err)
	defer f.Close()

	assert.Error(t, EncodeTile(new(bytes.Buffer), f))
}
