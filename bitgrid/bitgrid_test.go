package bitgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpan(t *testing.T) {
	assert.Equal(t, 0xc0, Span)
}

func TestSourceRow(t *testing.T) {
	tests := []struct {
		row    int
		offset int
	}{
		{0, 0x00},
		{7, 0x07},
		{8, 0x20},
		{15, 0x27},
		{16, 0x40},
		{47, 0xa7},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.offset, sourceRow(tt.row), "row %d", tt.row)
	}
}

func TestDecodeEmpty(t *testing.T) {
	g, err := Decode(make([]byte, Span), 0)
	require.NoError(t, err)
	assert.Len(t, g, Rows)
	for _, row := range g {
		assert.Len(t, row, Columns)
	}
	assert.Equal(t, 0, g.Count())
}

func TestDecodeFull(t *testing.T) {
	buf := make([]byte, Span)
	for i := range buf {
		buf[i] = 0xff
	}
	g, err := Decode(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, Rows*Columns, g.Count())
}

func TestDecodeBitOrder(t *testing.T) {
	const offset = 0x10
	buf := make([]byte, offset+Span)

	// Row 9 sits in the second strip, second row; third column group.
	buf[offset+0x21+16] = 0x81
	// Row 0, first column group, second bit from the top.
	buf[offset] = 0x40

	g, err := Decode(buf, offset)
	require.NoError(t, err)

	assert.True(t, g.At(9, 16))
	assert.True(t, g.At(9, 23))
	assert.False(t, g.At(9, 17))
	assert.True(t, g.At(0, 1))
	assert.False(t, g.At(0, 0))
	assert.Equal(t, 3, g.Count())
}

func TestDecodeShort(t *testing.T) {
	_, err := Decode(make([]byte, Span-1), 0)
	assert.ErrorIs(t, err, ErrShortBuffer)

	_, err = Decode(make([]byte, Span), 1)
	assert.ErrorIs(t, err, ErrShortBuffer)

	_, err = Decode(make([]byte, Span), -1)
	assert.ErrorIs(t, err, ErrShortBuffer)
}

func TestAtOutOfRange(t *testing.T) {
	var g Grid
	g[0][0] = true
	assert.True(t, g.At(0, 0))
	assert.False(t, g.At(-1, 0))
	assert.False(t, g.At(Rows, 0))
	assert.False(t, g.At(0, Columns))
}
