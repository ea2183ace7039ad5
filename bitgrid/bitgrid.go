/*
Package bitgrid decodes the packed boolean grids stored in each Dunjunz level
block.

A grid covers the whole 32 by 48 cell map with one bit per cell. Bytes are
laid out in six vertical strips of eight rows; within a strip consecutive
bytes are consecutive rows and each row is made from four bytes spaced eight
bytes apart, most significant bit leftmost.
*/
package bitgrid

import (
	"bytes"

	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

const (
	// Rows is the number of map rows in a grid
	Rows = 48
	// Columns is the number of map columns in a grid
	Columns = 32

	stripRows   = 8
	stripStride = 0x20
	groupWidth  = 8
	groups      = Columns / groupWidth

	// Span is the number of source bytes a grid occupies
	Span = (Rows/stripRows-1)*stripStride + stripRows - 1 + (groups-1)*groupWidth + 1
)

// ErrShortBuffer is returned when the source cannot hold a complete grid.
var ErrShortBuffer = errors.New("bitgrid: buffer too short")

// Grid is a decoded grid indexed [row][column].
type Grid [Rows][Columns]bool

// At reports the cell at the given row and column. Out of range cells are
// reported as false.
func (g *Grid) At(row, column int) bool {
	if row < 0 || row >= Rows || column < 0 || column >= Columns {
		return false
	}
	return g[row][column]
}

// Count returns the number of set cells.
func (g *Grid) Count() int {
	n := 0
	for _, row := range g {
		for _, v := range row {
			if v {
				n++
			}
		}
	}
	return n
}

func sourceRow(row int) int {
	return (row/stripRows)*stripStride + row%stripRows
}

// Decode reads the grid starting at offset within buf.
func Decode(buf []byte, offset int) (Grid, error) {
	var g Grid

	if offset < 0 || offset+Span > len(buf) {
		return g, errors.Wrapf(ErrShortBuffer, "need %d bytes at offset %#x, have %d", Span, offset, len(buf))
	}

	var tmp [groups]byte
	for row := 0; row < Rows; row++ {
		r := offset + sourceRow(row)
		for i := range tmp {
			tmp[i] = buf[r+i*groupWidth]
		}

		br := bitio.NewReader(bytes.NewReader(tmp[:]))
		for column := 0; column < Columns; column++ {
			v, err := br.ReadBool()
			if err != nil {
				return g, err
			}
			g[row][column] = v
		}
	}

	return g, nil
}
