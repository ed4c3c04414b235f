package world

import (
	"github.com/samdwyer/wyrd/internal/entity"
	"github.com/samdwyer/wyrd/internal/rng"
)

// Room is one generated room of a floor. Tiles are row-major ([y][x]) and
// immutable after generation except for door carving. Entities is the
// mutable set of monsters currently present.
type Room struct {
	ID       string
	Tag      string // archetype name
	Seed     string // derived from floor seed + index + tag
	W, H     int
	Tiles    [][]Tile
	Doors    []*Door
	Entities []*entity.Entity
}

// InBounds reports whether (x, y) lies inside the room grid.
func (r *Room) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < r.W && y < r.H
}

// At returns the tile at (x, y), or TileWall outside the grid.
func (r *Room) At(x, y int) Tile {
	if !r.InBounds(x, y) {
		return TileWall
	}
	return r.Tiles[y][x]
}

// Walkable reports whether (x, y) is a walkable tile.
func (r *Room) Walkable(x, y int) bool {
	return r.At(x, y).IsWalkable()
}

// EntityAt returns the live entity occupying (x, y), or nil.
func (r *Room) EntityAt(x, y int) *entity.Entity {
	for _, e := range r.Entities {
		if e.Alive && e.X == x && e.Y == y {
			return e
		}
	}
	return nil
}

// Center returns the center coordinates of the room.
func (r *Room) Center() (int, int) {
	return r.W / 2, r.H / 2
}

// FloorPct returns the walkable fraction of the room's tiles.
func (r *Room) FloorPct() float64 {
	return FloorPct(r.Tiles)
}

// DoorByID returns the door with the given id, or nil.
func (r *Room) DoorByID(id string) *Door {
	for _, d := range r.Doors {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// DoorAdjacentTo returns a door orthogonally adjacent to (x, y), or nil.
func (r *Room) DoorAdjacentTo(x, y int) *Door {
	for _, d := range r.Doors {
		dx, dy := d.X-x, d.Y-y
		if dx*dx+dy*dy == 1 {
			return d
		}
	}
	return nil
}

// RemoveEntity deletes e from the room's entity set.
func (r *Room) RemoveEntity(e *entity.Entity) {
	for i, other := range r.Entities {
		if other == e {
			r.Entities = append(r.Entities[:i], r.Entities[i+1:]...)
			return
		}
	}
}

// LiveEntities returns the entities that are still alive.
func (r *Room) LiveEntities() []*entity.Entity {
	alive := make([]*entity.Entity, 0, len(r.Entities))
	for _, e := range r.Entities {
		if e.Alive {
			alive = append(alive, e)
		}
	}
	return alive
}

// RandomFloorTile returns a uniformly chosen walkable tile, falling back to
// the room center when the room has no walkable tiles.
func (r *Room) RandomFloorTile(src *rng.Source) (int, int) {
	var candidates [][2]int
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			if r.Tiles[y][x].IsWalkable() {
				candidates = append(candidates, [2]int{x, y})
			}
		}
	}
	if len(candidates) == 0 {
		return r.Center()
	}
	c := candidates[src.IntRange(0, len(candidates)-1)]
	return c[0], c[1]
}

// Compile-time check that a Room can host entity movement.
var _ entity.Arena = (*Room)(nil)
