package level

import (
	"fmt"

	"github.com/pkg/errors"
)

// Item is the category of a tile-type code from the lookup table.
type Item uint8

// Known tile-type codes. The String of each matches its sprite name.
const (
	Treasure = Item(0x28)
	Food     = Item(0x29)
	Crucifix = Item(0x2a)
	Teleport = Item(0x2b)
	Exit     = Item(0x51)
	Drainer  = Item(0x53)
	Boots    = Item(0x5f)
	Armour   = Item(0x60)
	Potion   = Item(0x61)
	Weapons  = Item(0x62)
	Dagger   = Item(0x63)
)

// ErrUnknownTileCode is returned when a lookup code has no known category.
var ErrUnknownTileCode = errors.New("level: unknown tile code")

var itemNames = map[Item]string{
	Treasure: "treasure",
	Food:     "food",
	Crucifix: "crucifix",
	Teleport: "teleport",
	Exit:     "exit",
	Drainer:  "drainer",
	Boots:    "boots",
	Armour:   "armour",
	Potion:   "potion",
	Weapons:  "weapons",
	Dagger:   "dagger",
}

// Classify maps a raw tile-type code to its Item.
func Classify(code byte) (Item, error) {
	i := Item(code)
	if _, ok := itemNames[i]; !ok {
		return 0, errors.Wrapf(ErrUnknownTileCode, "%#02x", code)
	}
	return i, nil
}

func (i Item) String() string {
	if name, ok := itemNames[i]; ok {
		return name
	}
	return fmt.Sprintf("$%02x", uint8(i))
}
