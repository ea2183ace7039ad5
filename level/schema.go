package level

import (
	"github.com/bodgit/dunjunz/bitgrid"
	"github.com/pkg/errors"
)

// unused marks an empty slot in the lookup, door and key tables
const unused = 0xff

type kind int

const (
	// kindTable is one byte per slot
	kindTable kind = iota
	// kindSparse is a table where a slot holding unused is empty
	kindSparse
	kindGrid
)

// field describes one table in a level block. Slot n of the table lives at
// offset+n so tables that number their slots from one leave the byte at
// offset itself unused.
type field struct {
	name   string
	offset int
	first  int
	count  int
	kind   kind
}

// end returns the offset one past the last byte the field uses.
func (f field) end() int {
	if f.kind == kindGrid {
		return f.offset + bitgrid.Span
	}
	return f.offset + f.first + f.count
}

const (
	lookupSlots   = 31
	doorSlots     = 20
	keySlots      = 20
	trapdoorSlots = 8
)

var (
	lookupX         = field{"lookup x", 0x00, 1, lookupSlots, kindTable}
	lookupY         = field{"lookup y", 0x20, 1, lookupSlots, kindTable}
	lookupCode      = field{"lookup code", 0x40, 1, lookupSlots, kindSparse}
	doorX           = field{"door x", 0x60, 1, doorSlots, kindSparse}
	doorY           = field{"door y", 0x75, 1, doorSlots, kindSparse}
	doorOrientation = field{"door orientation", 0x8a, 1, doorSlots, kindSparse}
	keyX            = field{"key x", 0xa0, 1, keySlots, kindSparse}
	keyY            = field{"key y", 0xb5, 1, keySlots, kindSparse}
	trapdoorX       = field{"trapdoor x", 0xd0, 0, trapdoorSlots, kindTable}
	trapdoorY       = field{"trapdoor y", 0xd8, 0, trapdoorSlots, kindTable}
	solidGrid       = field{"solid grid", 0xe0, 0, 1, kindGrid}
	collectableGrid = field{"collectable grid", 0x1b0, 0, 1, kindGrid}
)

var schema = []field{
	lookupX,
	lookupY,
	lookupCode,
	doorX,
	doorY,
	doorOrientation,
	keyX,
	keyY,
	trapdoorX,
	trapdoorY,
	solidGrid,
	collectableGrid,
}

// MinSize is the smallest level block that covers every table.
var MinSize = func() int {
	n := 0
	for _, f := range schema {
		if e := f.end(); e > n {
			n = e
		}
	}
	return n
}()

// column is a view of one table's slots.
type column struct {
	f field
	b []byte
}

// at returns the byte for slot n.
func (c column) at(n int) byte {
	return c.b[n-c.f.first]
}

// used reports whether slot n holds a value. Only sparse tables have empty
// slots.
func (c column) used(n int) bool {
	return c.f.kind != kindSparse || c.at(n) != unused
}

// slots returns the slot numbers of the table in order.
func (c column) slots() []int {
	s := make([]int, c.f.count)
	for i := range s {
		s[i] = c.f.first + i
	}
	return s
}

// reader reads fields from a block at least MinSize bytes long.
type reader struct {
	b []byte
}

func (r *reader) column(f field) column {
	return column{f: f, b: r.b[f.offset+f.first : f.end()]}
}

func (r *reader) grid(f field) (bitgrid.Grid, error) {
	g, err := bitgrid.Decode(r.b, f.offset)
	return g, errors.Wrap(err, f.name)
}
