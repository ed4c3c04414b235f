// Package world provides seeded floor generation: room templates, door
// placement, and the connectivity graph between rooms.
package world

// Tile represents a single room tile.
type Tile uint8

const (
	// TileWall represents an impassable wall tile.
	TileWall Tile = iota
	// TileFloor represents a passable floor tile.
	TileFloor
	// TileEntry marks the player spawn tile in the start room.
	TileEntry
	// TileExit marks the stairs tile leading to the next floor.
	TileExit
)

// IsWalkable returns true if the tile can be walked on.
func (t Tile) IsWalkable() bool {
	return t == TileFloor || t == TileEntry || t == TileExit
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	switch t {
	case TileWall:
		return '#'
	case TileFloor:
		return '.'
	case TileEntry:
		return '<'
	case TileExit:
		return '>'
	default:
		return '?'
	}
}

// FloorPct returns the fraction of tiles that are walkable.
func FloorPct(tiles [][]Tile) float64 {
	total, count := 0, 0
	for _, row := range tiles {
		for _, t := range row {
			total++
			if t.IsWalkable() {
				count++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total)
}
