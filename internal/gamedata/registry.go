package gamedata

import (
	"errors"
	"strings"

	"github.com/samdwyer/wyrd/internal/entity"
	"github.com/samdwyer/wyrd/internal/rng"
	"github.com/samdwyer/wyrd/internal/world"
)

var _ world.MobSource = (*MobRegistry)(nil)

const (
	bossPrefix = "boss_"

	// Chance of a pick being upgraded to a boss on every fifth floor.
	bossChance = 0.05
)

// MobRegistry holds loaded mob definitions and spawns entities from them.
// It satisfies world.MobSource.
type MobRegistry struct {
	all  []MobDef
	byID map[string]*MobDef
}

// NewMobRegistry creates a registry from loaded mob definitions.
func NewMobRegistry(mobs []MobDef) *MobRegistry {
	r := &MobRegistry{
		all:  mobs,
		byID: make(map[string]*MobDef, len(mobs)),
	}
	for i := range mobs {
		r.byID[mobs[i].ID] = &mobs[i]
	}
	return r
}

// LoadMobRegistry loads and creates a registry from the embedded mobs.json.
func LoadMobRegistry() (*MobRegistry, error) {
	mobs, err := LoadMobs()
	if err != nil {
		return nil, err
	}
	if len(mobs) == 0 {
		return nil, errors.New("no mobs loaded from mobs.json")
	}
	return NewMobRegistry(mobs), nil
}

// MustLoadMobRegistry loads a registry, panicking on error.
func MustLoadMobRegistry() *MobRegistry {
	registry, err := LoadMobRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// PickForFloor selects a mob id for the given floor. Mobs below their
// minFloor are excluded; when the filter leaves nothing, every mob is a
// candidate. On every fifth floor the same roll that picked the mob may
// upgrade it to a boss variant, returned as "boss_<id>".
func (r *MobRegistry) PickForFloor(src *rng.Source, floorNumber int) string {
	if len(r.all) == 0 {
		return ""
	}

	var candidates []*MobDef
	for i := range r.all {
		if floorNumber >= max(1, r.all[i].MinFloor) {
			candidates = append(candidates, &r.all[i])
		}
	}
	if len(candidates) == 0 {
		for i := range r.all {
			candidates = append(candidates, &r.all[i])
		}
	}

	roll := src.Float64()
	idx := int(roll * float64(len(candidates)))
	if idx >= len(candidates) {
		idx = len(candidates) - 1
	}
	picked := candidates[idx]

	if floorNumber%5 == 0 && roll < bossChance {
		return bossPrefix + picked.ID
	}
	return picked.ID
}

// Create spawns an entity from a mob id at the given room-local position.
// A "boss_" prefix spawns the boss variant: doubled HP and XP reward,
// half again the attack. Returns nil for an unknown id.
func (r *MobRegistry) Create(src *rng.Source, id string, x, y int) *entity.Entity {
	isBoss := strings.HasPrefix(id, bossPrefix)
	def := r.byID[strings.TrimPrefix(id, bossPrefix)]
	if def == nil {
		return nil
	}

	e := &entity.Entity{
		ID:    id,
		Name:  def.Name,
		Kind:  entity.KindMonster,
		Glyph: def.CharRune(),
		Color: def.Color,
		X:     x,
		Y:     y,
		Stats: entity.Stats{
			MaxHP:      rollStat(src, def.MaxHP),
			Atk:        rollStat(src, def.Atk),
			Def:        rollStat(src, def.Def),
			Hit:        rollStat(src, def.Hit),
			Eva:        rollStat(src, def.Eva),
			Speed:      rollStat(src, def.Speed),
			CritChance: rollStat(src, def.CritChance),
			CritMult:   def.CritMult,
		},
		Alive:    true,
		XPReward: def.XPReward,
		Loot:     def.Loot,
	}

	if isBoss {
		e.MaxHP *= 2
		e.Atk = e.Atk * 3 / 2
		e.XPReward *= 2
		e.Boss = true
		e.Name = "dread " + def.Name
	}
	e.HP = e.MaxHP
	return e
}

// GetByID returns the definition with the given id, or nil if not found.
func (r *MobRegistry) GetByID(id string) *MobDef {
	return r.byID[id]
}

// All returns all mob definitions.
func (r *MobRegistry) All() []MobDef {
	return r.all
}

// Count returns the number of mob types in the registry.
func (r *MobRegistry) Count() int {
	return len(r.all)
}

// rollStat resolves a stat range with the floor's rng. Degenerate ranges
// pass through without consuming a draw.
func rollStat(src *rng.Source, r entity.StatRange) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return src.IntRange(r.Min, r.Max)
}
