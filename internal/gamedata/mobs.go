package gamedata

import (
	"github.com/samdwyer/wyrd/internal/entity"
)

// MobDef defines a monster type loaded from JSON. Stats may be given as a
// plain number or a [min, max] pair; ranged stats are rolled per spawn.
type MobDef struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Char       string            `json:"char"`     // single character for rendering
	Trait      string            `json:"trait"`    // flavor grouping (animal, undead, ...)
	Color      string            `json:"color"`    // hex color, e.g. "#9CA3AF"
	MinFloor   int               `json:"minFloor"` // first floor this mob may appear on
	MaxHP      entity.StatRange  `json:"maxHp"`
	Atk        entity.StatRange  `json:"atk"`
	Def        entity.StatRange  `json:"def"`
	Hit        entity.StatRange  `json:"hit"`
	Eva        entity.StatRange  `json:"eva"`
	Speed      entity.StatRange  `json:"speed"`
	CritChance entity.StatRange  `json:"critChance"`
	CritMult   float64           `json:"critMult"`
	XPReward   int               `json:"xpReward"`
	Loot       *entity.LootTable `json:"loot"`
}

// CharRune returns the render character as a rune.
func (m *MobDef) CharRune() rune {
	if len(m.Char) == 0 {
		return '?'
	}
	return rune(m.Char[0])
}

// LoadMobs loads monster definitions from the embedded mobs.json file.
func LoadMobs() ([]MobDef, error) {
	return Load[[]MobDef]("mobs.json")
}

// MustLoadMobs loads monster definitions, panicking on error.
func MustLoadMobs() []MobDef {
	mobs, err := LoadMobs()
	if err != nil {
		panic(err)
	}
	return mobs
}
