/*
Package level decodes a single unscrambled Dunjunz level block.

The block starts with a set of small parallel tables, each one byte per slot:

	0x00  lookup x, y, code   (slots 1-31, stride 0x20)
	0x60  door x, y, facing   (slots 1-20, stride 0x15)
	0xa0  key x, y            (slots 1-20, stride 0x15)
	0xd0  trapdoor x, y       (slots 0-7, stride 0x08)

followed by the solid grid at 0xe0 and the collectable grid at 0x1b0. The
wall tile for the level is the 24 bytes starting 48 bytes before the end of
the block.

Table entries are keyed by (column, row) while the grids are indexed by
[row][column].
*/
package level

import (
	"sort"

	"github.com/bodgit/dunjunz/bitgrid"
	"github.com/bodgit/dunjunz/sprite"
	"github.com/pkg/errors"
)

// ErrMalformedLevel is returned when a level block is too short for the
// fixed layout.
var ErrMalformedLevel = errors.New("level: malformed level")

const (
	verticalDoor = 0x1d

	wallFromEnd = 48
)

// Coord is a map position as (column, row).
type Coord struct {
	X uint8
	Y uint8
}

// Door is a numbered door and the raw orientation byte.
type Door struct {
	ID          int
	Orientation byte
}

// Vertical reports whether the door is drawn vertically.
func (d Door) Vertical() bool {
	return d.Orientation == verticalDoor
}

// Level is a decoded level. It is never modified after Decode returns.
type Level struct {
	lookup      map[Coord]byte
	doors       map[Coord]Door
	keys        map[Coord]int
	trapdoors   [trapdoorSlots]Coord
	teleporters []Coord
	solid       bitgrid.Grid
	collectable bitgrid.Grid
	wall        sprite.Sprite
}

func (l *Level) readLookup(r *reader) {
	xs, ys, codes := r.column(lookupX), r.column(lookupY), r.column(lookupCode)

	l.lookup = make(map[Coord]byte)
	var order []Coord
	for _, i := range codes.slots() {
		if !xs.used(i) || !ys.used(i) || !codes.used(i) {
			continue
		}
		c, t := Coord{xs.at(i), ys.at(i)}, codes.at(i)
		l.lookup[c] = t
		if Item(t) == Teleport {
			order = append(order, c)
		}
	}

	// Keep each teleporter once, in slot order, if nothing later replaced it
	seen := make(map[Coord]bool)
	for _, c := range order {
		if seen[c] || Item(l.lookup[c]) != Teleport {
			continue
		}
		seen[c] = true
		l.teleporters = append(l.teleporters, c)
	}
}

func (l *Level) readDoors(r *reader) {
	xs, ys, facing := r.column(doorX), r.column(doorY), r.column(doorOrientation)

	l.doors = make(map[Coord]Door)
	for _, i := range xs.slots() {
		if xs.used(i) && ys.used(i) && facing.used(i) {
			l.doors[Coord{xs.at(i), ys.at(i)}] = Door{ID: i, Orientation: facing.at(i)}
		}
	}
}

func (l *Level) readKeys(r *reader) {
	xs, ys := r.column(keyX), r.column(keyY)

	l.keys = make(map[Coord]int)
	for _, i := range xs.slots() {
		if xs.used(i) && ys.used(i) {
			l.keys[Coord{xs.at(i), ys.at(i)}] = i
		}
	}
}

// Trapdoors are never filtered; an unused slot still yields (0xff, 0xff)
func (l *Level) readTrapdoors(r *reader) {
	xs, ys := r.column(trapdoorX), r.column(trapdoorY)

	for _, i := range xs.slots() {
		l.trapdoors[i] = Coord{xs.at(i), ys.at(i)}
	}
}

func (l *Level) readGrids(r *reader) (err error) {
	if l.solid, err = r.grid(solidGrid); err != nil {
		return
	}
	l.collectable, err = r.grid(collectableGrid)
	return
}

func (l *Level) readWall(b []byte) (err error) {
	l.wall, err = sprite.Decode(b[len(b)-wallFromEnd : len(b)-wallFromEnd+sprite.TileSize])
	return
}

// Decode reads an unscrambled level block.
func Decode(b []byte) (*Level, error) {
	if len(b) < MinSize {
		return nil, errors.Wrapf(ErrMalformedLevel, "block is %d bytes, need at least %d", len(b), MinSize)
	}

	l := new(Level)
	r := &reader{b: b}

	l.readLookup(r)
	l.readDoors(r)
	l.readKeys(r)
	l.readTrapdoors(r)

	if err := l.readGrids(r); err != nil {
		return nil, err
	}

	if err := l.readWall(b); err != nil {
		return nil, errors.Wrap(err, "wall")
	}

	return l, nil
}

// TileCode returns the raw lookup code at c.
func (l *Level) TileCode(c Coord) (byte, bool) {
	t, ok := l.lookup[c]
	return t, ok
}

// Item classifies the lookup entry at c. The error is only set when an entry
// exists with an unknown code.
func (l *Level) Item(c Coord) (Item, bool, error) {
	t, ok := l.lookup[c]
	if !ok {
		return 0, false, nil
	}
	i, err := Classify(t)
	if err != nil {
		return 0, true, err
	}
	return i, true, nil
}

// Lookup returns a copy of the lookup table.
func (l *Level) Lookup() map[Coord]byte {
	m := make(map[Coord]byte, len(l.lookup))
	for k, v := range l.lookup {
		m[k] = v
	}
	return m
}

// Door returns the door at c.
func (l *Level) Door(c Coord) (Door, bool) {
	d, ok := l.doors[c]
	return d, ok
}

// Doors returns a copy of the door table.
func (l *Level) Doors() map[Coord]Door {
	m := make(map[Coord]Door, len(l.doors))
	for k, v := range l.doors {
		m[k] = v
	}
	return m
}

// Key returns the key number at c.
func (l *Level) Key(c Coord) (int, bool) {
	n, ok := l.keys[c]
	return n, ok
}

// Keys returns a copy of the key table.
func (l *Level) Keys() map[Coord]int {
	m := make(map[Coord]int, len(l.keys))
	for k, v := range l.keys {
		m[k] = v
	}
	return m
}

// Trapdoors returns all eight trapdoor slots, including unused ones.
func (l *Level) Trapdoors() [trapdoorSlots]Coord {
	return l.trapdoors
}

// IsTrapdoor reports whether any trapdoor slot holds c.
func (l *Level) IsTrapdoor(c Coord) bool {
	for _, t := range l.trapdoors {
		if t == c {
			return true
		}
	}
	return false
}

// Teleporters returns the teleporter positions in slot order.
func (l *Level) Teleporters() []Coord {
	return append([]Coord(nil), l.teleporters...)
}

// TeleporterIndex returns the position of c within Teleporters.
func (l *Level) TeleporterIndex(c Coord) (int, bool) {
	for i, t := range l.teleporters {
		if t == c {
			return i, true
		}
	}
	return 0, false
}

// IsSolid reports whether the cell is impassable.
func (l *Level) IsSolid(row, column int) bool {
	return l.solid.At(row, column)
}

// IsCollectable reports whether the cell may hold a lookup item. The grid
// stores this inverted: a clear bit means occupied.
func (l *Level) IsCollectable(row, column int) bool {
	if row < 0 || row >= bitgrid.Rows || column < 0 || column >= bitgrid.Columns {
		return false
	}
	return !l.collectable.At(row, column)
}

// SolidGrid returns a copy of the solid grid.
func (l *Level) SolidGrid() bitgrid.Grid {
	return l.solid
}

// CollectableGrid returns a copy of the raw collectable grid.
func (l *Level) CollectableGrid() bitgrid.Grid {
	return l.collectable
}

// WallSprite returns the wall tile for the level.
func (l *Level) WallSprite() sprite.Sprite {
	return l.wall
}

// SortCoords orders coordinates by row then column.
func SortCoords(c []Coord) {
	sort.Slice(c, func(i, j int) bool {
		if c[i].Y != c[j].Y {
			return c[i].Y < c[j].Y
		}
		return c[i].X < c[j].X
	})
}
