/*
Package render lays out a decoded Dunjunz level for display.

Every map cell is given the name of the sprite to draw there plus optional
extra text, and the whole map can be written as an HTML table of images
alongside the sprite PNGs it refers to.
*/
package render

import (
	"fmt"
	"strconv"

	"github.com/bodgit/dunjunz/level"
)

const (
	// Blank is the name used for an empty cell
	Blank = "blank"

	keyName      = "key"
	trapdoorName = "trapdoor"
	vDoorName    = "v_door"
	hDoorName    = "h_door"
)

type start struct {
	row, column int
}

var starts = map[start][2]string{
	{11, 11}: {"ranger_up1", "Ranger"},
	{12, 11}: {"wizard_right1", "Wizard"},
	{11, 12}: {"barbarian_down1", "Barbarian"},
	{12, 12}: {"fighter_left1", "Fighter"},
}

// WallName returns the name used for the wall sprite of level n.
func WallName(n int) string {
	return fmt.Sprintf("%02d", n)
}

// Cell returns the sprite name and extra text for the cell at row, column of
// level n. The error is only set when the cell holds an unknown item code.
func Cell(l *level.Level, n, row, column int) (string, string, error) {
	if s, ok := starts[start{row, column}]; ok {
		return s[0], s[1], nil
	}

	c := level.Coord{X: uint8(column), Y: uint8(row)}

	if k, ok := l.Key(c); ok {
		return keyName, strconv.Itoa(k), nil
	}

	if l.IsTrapdoor(c) {
		return trapdoorName, trapdoorName, nil
	}

	if l.IsSolid(row, column) {
		if d, ok := l.Door(c); ok {
			if d.Vertical() {
				return vDoorName, strconv.Itoa(d.ID), nil
			}
			return hDoorName, strconv.Itoa(d.ID), nil
		}
		return WallName(n), "", nil
	}

	if l.IsCollectable(row, column) {
		item, ok, err := l.Item(c)
		if err != nil {
			return "", "", err
		}
		if ok {
			if item == level.Teleport {
				i, _ := l.TeleporterIndex(c)
				return item.String(), strconv.Itoa(i), nil
			}
			return item.String(), "", nil
		}
	}

	return Blank, "", nil
}
