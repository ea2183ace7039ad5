package render

import (
	"io"
	"strings"

	"github.com/bodgit/dunjunz/bitgrid"
	"github.com/bodgit/dunjunz/level"
	"gopkg.in/yaml.v3"
)

type yamlCoord struct {
	X uint8 `yaml:"x"`
	Y uint8 `yaml:"y"`
}

type yamlItem struct {
	yamlCoord `yaml:",inline"`
	Code      uint8  `yaml:"code"`
	Item      string `yaml:"item"`
}

type yamlDoor struct {
	yamlCoord   `yaml:",inline"`
	ID          int   `yaml:"id"`
	Orientation uint8 `yaml:"orientation"`
	Vertical    bool  `yaml:"vertical"`
}

type yamlKey struct {
	yamlCoord `yaml:",inline"`
	ID        int `yaml:"id"`
}

type yamlLevel struct {
	Number      int         `yaml:"number"`
	Items       []yamlItem  `yaml:"items"`
	Doors       []yamlDoor  `yaml:"doors"`
	Keys        []yamlKey   `yaml:"keys"`
	Trapdoors   []yamlCoord `yaml:"trapdoors"`
	Teleporters []yamlCoord `yaml:"teleporters"`
	Solid       []string    `yaml:"solid"`
	Collectable []string    `yaml:"collectable"`
}

func gridRows(g bitgrid.Grid, set, clear byte) []string {
	rows := make([]string, len(g))
	for i, row := range g {
		var sb strings.Builder
		for _, v := range row {
			if v {
				sb.WriteByte(set)
			} else {
				sb.WriteByte(clear)
			}
		}
		rows[i] = sb.String()
	}
	return rows
}

func coords(l []level.Coord) []yamlCoord {
	out := make([]yamlCoord, len(l))
	for i, c := range l {
		out[i] = yamlCoord{c.X, c.Y}
	}
	return out
}

func keysOf[V any](m map[level.Coord]V) []level.Coord {
	c := make([]level.Coord, 0, len(m))
	for k := range m {
		c = append(c, k)
	}
	level.SortCoords(c)
	return c
}

func toYAML(n int, l *level.Level) yamlLevel {
	y := yamlLevel{
		Number: n,
	}

	lookup := l.Lookup()
	for _, c := range keysOf(lookup) {
		y.Items = append(y.Items, yamlItem{yamlCoord{c.X, c.Y}, lookup[c], level.Item(lookup[c]).String()})
	}

	doors := l.Doors()
	for _, c := range keysOf(doors) {
		d := doors[c]
		y.Doors = append(y.Doors, yamlDoor{yamlCoord{c.X, c.Y}, d.ID, d.Orientation, d.Vertical()})
	}

	keys := l.Keys()
	for _, c := range keysOf(keys) {
		y.Keys = append(y.Keys, yamlKey{yamlCoord{c.X, c.Y}, keys[c]})
	}

	trapdoors := l.Trapdoors()
	y.Trapdoors = coords(trapdoors[:])
	y.Teleporters = coords(l.Teleporters())

	y.Solid = gridRows(l.SolidGrid(), '#', '.')
	// Collectable is stored inverted
	y.Collectable = gridRows(l.CollectableGrid(), '.', '*')

	return y
}

// WriteYAML writes a readable dump of level n.
func WriteYAML(w io.Writer, n int, l *level.Level) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toYAML(n, l)); err != nil {
		return err
	}
	return enc.Close()
}
