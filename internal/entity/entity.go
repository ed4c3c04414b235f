// Package entity provides the stat-bearing actors of the game: the player
// and the monsters that roam and fight.
package entity

import (
	"encoding/json"
	"fmt"
	"math/rand"
)

// Kind discriminates the entity variants. Behavior that differs between
// player and monster is dispatched on Kind rather than through subtypes.
type Kind int

const (
	KindPlayer Kind = iota
	KindMonster
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindMonster:
		return "monster"
	default:
		return "unknown"
	}
}

// StatRange is a [min, max] stat specification. Mob data may give a stat as
// a plain number or as a two-element range; both unmarshal into this type.
type StatRange struct {
	Min, Max int
}

// Fixed returns a degenerate range that always rolls n.
func Fixed(n int) StatRange {
	return StatRange{Min: n, Max: n}
}

// Roll resolves the range to a uniform integer in [Min, Max] inclusive.
// A degenerate range passes its value through unchanged.
func (r StatRange) Roll(rnd *rand.Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return rnd.Intn(r.Max-r.Min+1) + r.Min
}

// UnmarshalJSON accepts either a scalar (12) or a pair ([10, 14]).
func (r *StatRange) UnmarshalJSON(data []byte) error {
	var scalar int
	if err := json.Unmarshal(data, &scalar); err == nil {
		r.Min, r.Max = scalar, scalar
		return nil
	}

	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("stat must be a number or [min,max] pair: %w", err)
	}
	r.Min, r.Max = pair[0], pair[1]
	return nil
}

// Stats holds the combat-relevant attributes shared by every entity.
type Stats struct {
	MaxHP      int
	HP         int
	Atk        int
	Def        int
	Speed      int
	Hit        int     // accuracy weight
	Eva        int     // evasion weight
	CritChance int     // percent
	CritMult   float64 // damage multiplier on crit, floored to int after applying
}

// LootTable describes what a monster may drop when defeated.
type LootTable struct {
	Chance int      `json:"chance"` // percent
	Items  []string `json:"items"`
}

// Roll picks a dropped item id, or false when nothing drops.
func (l *LootTable) Roll(rnd *rand.Rand) (string, bool) {
	if l == nil || len(l.Items) == 0 {
		return "", false
	}
	if rnd.Intn(100) >= l.Chance {
		return "", false
	}
	return l.Items[rnd.Intn(len(l.Items))], true
}

// Entity is a player or monster occupying a tile in a room. Positions are
// room-local tile coordinates.
type Entity struct {
	ID    string
	Name  string
	Kind  Kind
	Glyph rune
	Color string
	X, Y  int

	Stats
	Alive     bool
	TurnMeter float64 // combat-only, gates acting; reset to 0 after an action
	Defending bool

	// Player-only progression.
	XP    int
	Level int

	// Monster-only reward data.
	XPReward int
	Loot     *LootTable
	Boss     bool
}

// NewPlayer creates the player entity at the given position with base stats.
func NewPlayer(x, y int) *Entity {
	return &Entity{
		ID:    "player",
		Name:  "you",
		Kind:  KindPlayer,
		Glyph: '@',
		Color: "#38BDF8",
		X:     x,
		Y:     y,
		Stats: Stats{
			MaxHP:      20,
			HP:         20,
			Atk:        5,
			Def:        0,
			Speed:      10,
			Hit:        75,
			Eva:        5,
			CritChance: 5,
			CritMult:   2,
		},
		Alive: true,
		Level: 1,
	}
}

/// Arena is the slice of a room an entity needs for movement: tile
// walkability and occupancy. world.Room implements it.
type Arena interface {
	Walkable(x, y int) bool
	EntityAt(x, y int) *Entity
}

// Move shifts the entity by one step, blocked by walls and occupied tiles.
func (e *Entity) Move(dx, dy int, arena Arena) bool {
	nx, ny := e.X+dx, e.Y+dy
	if arena == nil || !arena.Walkable(nx, ny) {
		return false
	}
	if occ := arena.EntityAt(nx, ny); occ != nil && occ != e {
		return false
	}
	e.X = nx
	e.Y = ny
	return true
}

// TakeDamage applies def-mitigated damage and returns the amount dealt.
// HP never drops below 0 and the alive flag tracks hp > 0.
func (e *Entity) TakeDamage(amount int) int {
	dmg := amount - e.Def
	if dmg < 0 {
		dmg = 0
	}
	e.HP -= dmg
	if e.HP <= 0 {
		e.HP = 0
		e.Alive = false
	}
	return dmg
}

// XPToNextLevel returns the threshold for leaving the current level.
func (e *Entity) XPToNextLevel() int {
	return 25 * e.Level
}

// GainXP adds experience and returns the new level if the gain caused a
// level-up, 0 otherwise. Only meaningful for the player.
func (e *Entity) GainXP(rnd *rand.Rand, amount int) int {
	if e.Kind != KindPlayer {
		return 0
	}
	e.XP += amount
	if e.XP < e.XPToNextLevel() {
		return 0
	}
	e.levelUp(rnd)
	return e.Level
}

// levelUp rolls the stat gains and restores HP to the new maximum.
func (e *Entity) levelUp(rnd *rand.Rand) {
	e.Level++
	e.MaxHP += StatRange{5, 15}.Roll(rnd)
	e.HP = e.MaxHP
	e.Atk += StatRange{1, 3}.Roll(rnd)
	e.Def += StatRange{1, 2}.Roll(rnd)
	e.Speed += StatRange{1, 2}.Roll(rnd)
}

// Act drives a monster for one overworld step: attack the player when
// adjacent, otherwise close the Manhattan distance one tile per axis.
// Returns the attack result, or nil when the monster only moved.
func (e *Entity) Act(player *Entity, arena Arena, rnd *rand.Rand) *AttackResult {
	if !e.Alive || player == nil {
		return nil
	}
	dx, dy := player.X-e.X, player.Y-e.Y
	if abs(dx)+abs(dy) == 1 {
		res := ResolveAttack(rnd, e, player)
		return &res
	}
	if dx != 0 {
		e.Move(sign(dx), 0, arena)
	}
	if dy != 0 {
		e.Move(0, sign(dy), arena)
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
