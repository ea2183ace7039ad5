package render

import (
	"bufio"
	"html/template"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/dunjunz/bitgrid"
	"github.com/bodgit/dunjunz/level"
	"github.com/bodgit/dunjunz/sheet"
	"github.com/bodgit/dunjunz/sprite"
	"github.com/pkg/errors"
)

var mapTemplate = template.Must(template.New("map").Parse(`<html>
<head><title>Dunjunz Level {{.Number}}</title></head>
<body>
<h1>Dunjunz Level {{.Number}}</h1>
<table cellpadding="0" cellspacing="0">
{{range .Rows}}<tr>
{{range .}}<td><img src="{{.Name}}.png"{{if .Extra}} alt="{{.Extra}}"{{end}} /></td>
{{end}}</tr>
{{end}}</table>
</body>
</html>
`))

type cell struct {
	Name  string
	Extra string
}

// layout returns the name and extra text of every cell, indexed [row][column].
func layout(l *level.Level, n int) ([][]cell, error) {
	rows := make([][]cell, bitgrid.Rows)
	for row := range rows {
		rows[row] = make([]cell, bitgrid.Columns)
		for column := range rows[row] {
			name, extra, err := Cell(l, n, row, column)
			if err != nil {
				return nil, errors.Wrapf(err, "cell (%d, %d)", column, row)
			}
			rows[row][column] = cell{name, extra}
		}
	}
	return rows, nil
}

// WriteHTML writes level n as an HTML table of sprite images.
func WriteHTML(w io.Writer, n int, l *level.Level) error {
	rows, err := layout(l, n)
	if err != nil {
		return err
	}

	return mapTemplate.Execute(w, struct {
		Number int
		Rows   [][]cell
	}{n, rows})
}

// WritePNG writes m to the named file.
func WritePNG(name string, m image.Image) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriter(f)
	if err = png.Encode(bw, m); err != nil {
		return err
	}

	return bw.Flush()
}

// WriteSprites writes every sprite in c to dir as an upscaled PNG named after
// the sprite.
func WriteSprites(dir string, c *sheet.Collection) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for _, name := range c.Names() {
		s, _ := c.Get(name)
		if err := WritePNG(filepath.Join(dir, name+".png"), s.Scale(sprite.DisplayWidth, sprite.DisplayHeight)); err != nil {
			return err
		}
	}

	return nil
}

// WriteMap writes index.html for level n to dir along with every sprite it
// can refer to, the level's wall sprite and a blank cell.
func WriteMap(dir string, n int, l *level.Level, c *sheet.Collection) (err error) {
	if err := WriteSprites(dir, c); err != nil {
		return err
	}

	var blank sprite.Sprite
	for name, s := range map[string]sprite.Sprite{
		WallName(n): l.WallSprite(),
		Blank:       blank,
	} {
		if err := WritePNG(filepath.Join(dir, name+".png"), s.Scale(sprite.DisplayWidth, sprite.DisplayHeight)); err != nil {
			return err
		}
	}

	f, err := os.Create(filepath.Join(dir, "index.html"))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return WriteHTML(f, n, l)
}
