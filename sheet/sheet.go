/*
Package sheet decodes the named sprites held in the shared Dunjunz sprite
sheet block.

Sprites are grouped in runs starting at fixed base offsets. Each slot in a run
is 48 bytes but only the first 24 hold the sprite tile; the rest of the slot
is skipped.
*/
package sheet

import (
	"sort"

	"github.com/bodgit/dunjunz/sprite"
	"github.com/pkg/errors"
)

const slotStride = 48

// ErrMalformedSpriteSheet is returned when the sheet block is too short for
// the catalogue.
var ErrMalformedSpriteSheet = errors.New("sheet: malformed sprite sheet")

type run struct {
	base  int
	names []string
}

var catalogue = [...]run{
	{0x0140, []string{"boots", "armour", "potion", "dagger", "weapons", "crucifix"}},
	{0x0e40, []string{"sword_up", "sword_right", "sword_down", "sword_left"}},
	{0x1100, []string{"ranger_left1", "skull0", "skull1", "skull2", "skull3", "skull4"}},
	{0x1910, []string{"drainer"}},
	{0x19e0, []string{"exit"}},
	{0x1a40, []string{
		"wizard_up0", "wizard_up1", "wizard_right0", "wizard_right1",
		"wizard_down0", "wizard_down1", "wizard_left0", "wizard_left1",
		"barbarian_up0", "barbarian_up1", "barbarian_right0", "barbarian_right1",
		"barbarian_down0", "barbarian_down1", "barbarian_left0", "barbarian_left1",
		"fighter_up0", "fighter_up1", "fighter_right0", "fighter_right1",
		"fighter_down0", "fighter_down1", "fighter_left0", "fighter_left1",
		"fireball_up", "fireball_right", "fireball_down", "fireball_left",
		"axe_up", "axe_right", "axe_down", "axe_left",
		"key", "treasure", "food",
	}},
	{0x2208, []string{"v_door"}},
	{0x2240, []string{"exp0", "exp1", "exp2", "exp3", "trapdoor"}},
	{0x2340, []string{"arrow_up", "arrow_right", "arrow_down", "arrow_left", "h_door"}},
	{0x2440, []string{
		"block", "ranger_up0", "ranger_up1", "ranger_right0", "ranger_right1",
		"ranger_down0", "ranger_down1", "ranger_left0",
		"enemy_up0", "enemy_up1", "enemy_right0", "enemy_right1",
		"enemy_down0", "enemy_down1", "enemy_left0", "enemy_left1",
	}},
}

func offset(base, slot int) int {
	return base + slot*slotStride
}

// Names returns every sprite name in catalogue order.
func Names() []string {
	var names []string
	for _, r := range catalogue {
		names = append(names, r.names...)
	}
	return names
}

// Offset returns the start of the tile for the named sprite.
func Offset(name string) (int, bool) {
	for _, r := range catalogue {
		for s, n := range r.names {
			if n == name {
				return offset(r.base, s), true
			}
		}
	}
	return 0, false
}

// MinSize returns the smallest sheet block that covers every catalogue entry.
func MinSize() int {
	n := 0
	for _, r := range catalogue {
		if e := offset(r.base, len(r.names)-1) + sprite.TileSize; e > n {
			n = e
		}
	}
	return n
}

// Collection is a set of decoded sprites keyed by name.
type Collection struct {
	sprites map[string]sprite.Sprite
}

// Get returns the named sprite.
func (c *Collection) Get(name string) (sprite.Sprite, bool) {
	s, ok := c.sprites[name]
	return s, ok
}

// Len returns the number of sprites.
func (c *Collection) Len() int {
	return len(c.sprites)
}

// Names returns the sprite names in sorted order.
func (c *Collection) Names() []string {
	names := make([]string, 0, len(c.sprites))
	for n := range c.sprites {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Decode reads every catalogue sprite from the sheet block b.
func Decode(b []byte) (*Collection, error) {
	if need := MinSize(); len(b) < need {
		return nil, errors.Wrapf(ErrMalformedSpriteSheet, "block is %d bytes, need at least %d", len(b), need)
	}

	c := &Collection{
		sprites: make(map[string]sprite.Sprite),
	}

	for _, r := range catalogue {
		for s, name := range r.names {
			o := offset(r.base, s)
			sp, err := sprite.Decode(b[o : o+sprite.TileSize])
			if err != nil {
				return nil, errors.Wrapf(err, "sprite %q", name)
			}
			c.sprites[name] = sp
		}
	}

	return c, nil
}
