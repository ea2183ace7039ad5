package dunjunz

import (
	"bytes"
	"crypto/sha1"
	"database/sql"
	"fmt"
	"image"
	"image/png"

	"github.com/bodgit/dunjunz/bitgrid"
	"github.com/bodgit/dunjunz/level"
	"github.com/bodgit/dunjunz/render"
	"github.com/bodgit/dunjunz/sheet"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// AssetDB is an SQLite catalogue of decoded sprites and level layouts.
type AssetDB struct {
	db *sql.DB
}

func NewAssetDB(file string) (*AssetDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	for _, table := range []string{
		"CREATE TABLE IF NOT EXISTS sprite (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, sha1 TEXT NOT NULL, png BLOB NOT NULL)",
		"CREATE TABLE IF NOT EXISTS level (id INTEGER PRIMARY KEY NOT NULL, number INTEGER NOT NULL UNIQUE, wall BLOB NOT NULL)",
		"CREATE TABLE IF NOT EXISTS cell (level_id INTEGER NOT NULL, y INTEGER NOT NULL, x INTEGER NOT NULL, name TEXT NOT NULL, extra TEXT NOT NULL, PRIMARY KEY(level_id, y, x), FOREIGN KEY(level_id) REFERENCES level(id))",
	} {
		if _, err = db.Exec(table); err != nil {
			db.Close()
			return nil, err
		}
	}

	return &AssetDB{
		db: db,
	}, nil
}

func (db *AssetDB) Close() error {
	return db.db.Close()
}

func encodePNG(m image.Image) ([]byte, string, error) {
	b := new(bytes.Buffer)
	if err := png.Encode(b, m); err != nil {
		return nil, "", err
	}
	return b.Bytes(), fmt.Sprintf("%X", sha1.Sum(b.Bytes())), nil
}

// ImportSprites stores every sprite in c as an 8 by 12 PNG, replacing any
// previous sprite of the same name.
func (db *AssetDB) ImportSprites(c *sheet.Collection) error {
	for _, name := range c.Names() {
		s, _ := c.Get(name)
		b, sha, err := encodePNG(s.Image())
		if err != nil {
			return err
		}

		if _, err := db.db.Exec("INSERT OR REPLACE INTO sprite (name, sha1, png) VALUES (?, ?, ?)", name, sha, b); err != nil {
			return err
		}
	}
	return nil
}

func (db *AssetDB) addLevel(tx *sql.Tx, n int, wall []byte) (int64, error) {
	var id int64
	switch err := tx.QueryRow("SELECT id FROM level WHERE number = ?", n).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := tx.Exec("INSERT INTO level (number, wall) VALUES (?, ?)", n, wall)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		if _, err := tx.Exec("UPDATE level SET wall = ? WHERE id = ?", wall, id); err != nil {
			return 0, err
		}
		return id, nil
	default:
		return 0, err
	}
}

// ImportLevel stores the wall sprite and the rendered name of every cell of
// level n.
func (db *AssetDB) ImportLevel(n int, l *level.Level) (err error) {
	wall, _, err := encodePNG(l.WallSprite().Image())
	if err != nil {
		return err
	}

	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	id, err := db.addLevel(tx, n, wall)
	if err != nil {
		return err
	}

	if _, err = tx.Exec("DELETE FROM cell WHERE level_id = ?", id); err != nil {
		return err
	}

	for row := 0; row < bitgrid.Rows; row++ {
		for column := 0; column < bitgrid.Columns; column++ {
			name, extra, err := render.Cell(l, n, row, column)
			if err != nil {
				return errors.Wrapf(err, "level %d cell (%d, %d)", n, column, row)
			}
			if _, err := tx.Exec("INSERT INTO cell (level_id, y, x, name, extra) VALUES (?, ?, ?, ?, ?)", id, row, column, name, extra); err != nil {
				return err
			}
		}
	}

	return nil
}

// FindSprite returns the PNG for the named sprite, or nil if there isn't one.
func (db *AssetDB) FindSprite(name string) ([]byte, error) {
	var b []byte
	switch err := db.db.QueryRow("SELECT png FROM sprite WHERE name = ?", name).Scan(&b); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return b, nil
	default:
		return nil, err
	}
}

// FindCell returns the stored name and extra text for a cell of level n.
func (db *AssetDB) FindCell(n, row, column int) (string, string, error) {
	var name, extra string
	switch err := db.db.QueryRow("SELECT c.name, c.extra FROM cell AS c JOIN level AS l ON c.level_id = l.id WHERE l.number = ? AND c.y = ? AND c.x = ?", n, row, column).Scan(&name, &extra); err {
	case sql.ErrNoRows:
		return "", "", nil
	case nil:
		return name, extra, nil
	default:
		return "", "", err
	}
}
