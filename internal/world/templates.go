package world

import "github.com/samdwyer/wyrd/internal/rng"

// Template is a pure room-shape function. It returns a full tile grid for
// the requested size; the generator applies the outer wall border afterward.
// Start and stairs templates may return a larger grid to honor their minimum
// size, so callers take the real dimensions from the returned grid.
type Template func(src *rng.Source, w, h int) [][]Tile

// templates maps archetype tags to their shape functions. Tags without a
// shape of their own (fountain, cavern, ...) resolve to the empty room.
var templates = map[string]Template{
	"empty_room":   EmptyRoom,
	"corridor_h":   CorridorH,
	"corridor_v":   CorridorV,
	"treasure":     Treasure,
	"start":        Start,
	"stairs":       Stairs,
	"monster_room": MonsterRoom,
}

// EssentialTags are guaranteed exactly once per floor.
var EssentialTags = []string{"start", "stairs", "fountain"}

// ComplementaryTags fill the remaining room slots by uniform choice.
var ComplementaryTags = []string{
	"empty_room", "corridor_h", "corridor_v", "treasure", "monster_room",
	"treasure_room", "choke_point", "circular_room", "cavern",
}

// TemplateFor returns the template registered for tag, falling back to the
// empty room for unknown tags.
func TemplateFor(tag string) Template {
	if tmpl, ok := templates[tag]; ok {
		return tmpl
	}
	return EmptyRoom
}

// RegisterTemplate adds or replaces a room archetype.
func RegisterTemplate(tag string, tmpl Template) {
	if tmpl != nil {
		templates[tag] = tmpl
	}
}

func filledGrid(w, h int, t Tile) [][]Tile {
	tiles := make([][]Tile, h)
	for y := range tiles {
		tiles[y] = make([]Tile, w)
		for x := range tiles[y] {
			tiles[y][x] = t
		}
	}
	return tiles
}

// EmptyRoom is all floor. It is also the fallback whenever another template
// leaves too little floor coverage.
func EmptyRoom(src *rng.Source, w, h int) [][]Tile {
	return filledGrid(w, h, TileFloor)
}

// CorridorH carves a horizontal floor band with a 40% chance of
// perpendicular branch stubs.
func CorridorH(src *rng.Source, w, h int) [][]Tile {
	tiles := filledGrid(w, h, TileWall)
	inner := h - 4 // leave space for the border the generator applies
	if inner < 3 {
		return EmptyRoom(src, w, h)
	}

	band := max(1, inner/3)
	mid := inner/2 + 2
	bandStart := max(2, mid-band/2)
	bandEnd := min(h-3, bandStart+band-1)

	for y := bandStart; y <= bandEnd; y++ {
		for x := 2; x < w-2; x++ {
			tiles[y][x] = TileFloor
		}
	}

	if src.Chance(0.4) {
		rx := src.IntRange(3, w-4)
		branchLen := src.IntRange(2, min(4, bandEnd-bandStart+1))
		for off := 1; off <= branchLen; off++ {
			if ny := bandStart - off; ny >= 2 {
				tiles[ny][rx] = TileFloor
			}
			if ny := bandEnd + off; ny < h-2 {
				tiles[ny][rx] = TileFloor
			}
		}
	}
	return tiles
}

// CorridorV carves a vertical floor band with a 40% chance of perpendicular
// branch stubs.
func CorridorV(src *rng.Source, w, h int) [][]Tile {
	tiles := filledGrid(w, h, TileWall)
	inner := w - 4
	if inner < 3 {
		return EmptyRoom(src, w, h)
	}

	band := max(1, inner/3)
	mid := inner/2 + 2
	bandStart := max(2, mid-band/2)
	bandEnd := min(w-3, bandStart+band-1)

	for x := bandStart; x <= bandEnd; x++ {
		for y := 2; y < h-2; y++ {
			tiles[y][x] = TileFloor
		}
	}

	if src.Chance(0.4) {
		ry := src.IntRange(3, h-4)
		branchLen := src.IntRange(2, min(4, bandEnd-bandStart+1))
		for off := 1; off <= branchLen; off++ {
			if nx := bandStart - off; nx >= 2 {
				tiles[ry][nx] = TileFloor
			}
			if nx := bandEnd + off; nx < w-2 {
				tiles[ry][nx] = TileFloor
			}
		}
	}
	return tiles
}

// Treasure is an open room; the loot itself is placed by the mob/loot layer.
func Treasure(src *rng.Source, w, h int) [][]Tile {
	return EmptyRoom(src, w, h)
}

// Start forces a minimum size and marks the center tile as the entry.
func Start(src *rng.Source, w, h int) [][]Tile {
	w, h = max(w, 10), max(h, 8)
	tiles := EmptyRoom(src, w, h)
	tiles[h/2][w/2] = TileEntry
	return tiles
}

// Stairs forces a minimum size and marks the center tile as the exit.
func Stairs(src *rng.Source, w, h int) [][]Tile {
	w, h = max(w, 10), max(h, 8)
	tiles := EmptyRoom(src, w, h)
	tiles[h/2][w/2] = TileExit
	return tiles
}

// MonsterRoom is an open room scattered with single-tile pillars, roughly
// one per 40 tiles.
func MonsterRoom(src *rng.Source, w, h int) [][]Tile {
	tiles := EmptyRoom(src, w, h)
	count := max(1, w*h/40)
	for i := 0; i < count; i++ {
		rx := src.IntRange(2, w-3)
		ry := src.IntRange(2, h-3)
		if tiles[ry][rx] != TileFloor {
			continue
		}
		tiles[ry][rx] = TileWall
	}
	return tiles
}
