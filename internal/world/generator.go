package world

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/wyrd/internal/entity"
	"github.com/samdwyer/wyrd/internal/rng"
	"github.com/samdwyer/wyrd/internal/telemetry"
)

const (
	// Default room count bounds per floor.
	DefaultMinRooms = 12
	DefaultMaxRooms = 48

	// Room dimension bounds in tiles.
	roomMinSize = 16
	roomMaxSize = 32

	// WallThickness is the border applied to every room after its template.
	WallThickness = 2

	// MinDoorSpacing is the minimum Manhattan distance between doors of the
	// same room.
	MinDoorSpacing = 3

	// MinFloorPct is the coverage invariant; templates below it are replaced
	// by the empty-room fallback.
	MinFloorPct = 0.20

	extraConnectionChance = 0.25
)

// Options configures floor generation. The zero value uses the defaults and
// a seed derived from the floor number.
type Options struct {
	Seed     string
	MinRooms int
	MaxRooms int
}

// MobSource supplies monsters for generated rooms. The generator does not
// own mob definitions; it only asks for a pick and a spawn.
type MobSource interface {
	PickForFloor(src *rng.Source, floorNumber int) string
	Create(src *rng.Source, id string, x, y int) *entity.Entity
}

// Generator builds floors. Mobs is optional; without it rooms generate
// empty.
type Generator struct {
	Mobs MobSource
}

// idGen hands out deterministic per-floor ids so that two generations from
// the same seed produce identical rooms, doors, and connections.
type idGen struct {
	next int
}

func (g *idGen) id(prefix string) string {
	g.next++
	return fmt.Sprintf("%s_%03d", prefix, g.next)
}

// GenerateFloor builds one floor: tag selection, room instantiation, door
// placement, and a spanning-tree connection pass followed by optional extra
// edges. The result is fully reachable from the entry room.
func (g *Generator) GenerateFloor(ctx context.Context, floorNumber int, opts Options) *Floor {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "floor.generate")
	defer span.End()

	startTime := time.Now()

	floorSeed := opts.Seed
	if floorSeed == "" {
		floorSeed = fmt.Sprintf("floor_%d", floorNumber)
	}
	floorRng := rng.New(floorSeed)

	minRooms, maxRooms := opts.MinRooms, opts.MaxRooms
	if minRooms <= 0 {
		minRooms = DefaultMinRooms
	}
	if maxRooms < minRooms {
		maxRooms = max(DefaultMaxRooms, minRooms)
	}
	roomCount := floorRng.IntRange(minRooms, maxRooms)

	tags := g.pickTags(floorRng, roomCount)

	ids := &idGen{}
	rooms := make([]*Room, 0, roomCount)
	for i := 0; i < roomCount; i++ {
		rooms = append(rooms, g.buildRoom(ids, floorSeed, floorNumber, i, tags[i]))
	}

	connections := g.connectRooms(ids, floorRng, rooms)

	floor := NewFloor(floorSeed, floorNumber, rooms, connections)

	span.SetAttributes(
		attribute.Int("floor.number", floorNumber),
		attribute.Int("floor.room_count", len(rooms)),
		attribute.Int("floor.connection_count", len(connections)),
		attribute.Int64("floor.generation_ms", time.Since(startTime).Milliseconds()),
	)
	return floor
}

// pickTags guarantees one of each essential tag and fills the remainder by
// uniform choice, then shuffles the order with the floor rng.
func (g *Generator) pickTags(floorRng *rng.Source, roomCount int) []string {
	tags := make([]string, 0, roomCount)
	tags = append(tags, EssentialTags...)
	for i := 0; i < roomCount-len(EssentialTags); i++ {
		tags = append(tags, ComplementaryTags[floorRng.IntRange(0, len(ComplementaryTags)-1)])
	}
	rng.Shuffle(floorRng, tags)

	// Very small floors could truncate the essentials; pad instead.
	for len(tags) < roomCount {
		tags = append(tags, "empty_room")
	}
	return tags
}

// buildRoom derives the room seed, runs the template, applies the wall
// border, and substitutes the empty-room fallback when coverage is short.
func (g *Generator) buildRoom(ids *idGen, floorSeed string, floorNumber, index int, tag string) *Room {
	roomSeed := fmt.Sprintf("%s:room:%d:%s", floorSeed, index, tag)
	src := rng.New(roomSeed)

	w := src.IntRange(max(roomMinSize, 6), roomMaxSize)
	h := src.IntRange(max(roomMinSize, 6), roomMaxSize)

	tiles := TemplateFor(tag)(src, w, h)
	h, w = len(tiles), len(tiles[0]) // start/stairs may have grown the grid
	applyWallBorder(tiles, WallThickness)

	if FloorPct(tiles) < MinFloorPct {
		tiles = EmptyRoom(src, w, h)
		applyWallBorder(tiles, WallThickness)
	}

	room := &Room{
		ID:    ids.id("room"),
		Tag:   tag,
		Seed:  roomSeed,
		W:     w,
		H:     h,
		Tiles: tiles,
	}
	g.populateRoom(room, floorNumber, src)
	return room
}

// populateRoom spawns at most one monster per room from the external mob
// source. Quietly does nothing without one.
func (g *Generator) populateRoom(room *Room, floorNumber int, src *rng.Source) {
	if g.Mobs == nil || room.Tag == "start" {
		return
	}
	if !src.Chance(0.6) {
		return
	}
	id := g.Mobs.PickForFloor(src, floorNumber)
	if id == "" {
		return
	}
	x, y := room.RandomFloorTile(src)
	if mob := g.Mobs.Create(src, id, x, y); mob != nil {
		room.Entities = append(room.Entities, mob)
	}
}

func applyWallBorder(tiles [][]Tile, thickness int) {
	h, w := len(tiles), len(tiles[0])
	for t := 0; t < thickness; t++ {
		for x := 0; x < w; x++ {
			tiles[t][x] = TileWall
			tiles[h-1-t][x] = TileWall
		}
		for y := 0; y < h; y++ {
			tiles[y][t] = TileWall
			tiles[y][w-1-t] = TileWall
		}
	}
}

// connectRooms links every room into a spanning tree over a shuffled order,
// then attempts extra random pairings for shortcuts and loops.
func (g *Generator) connectRooms(ids *idGen, floorRng *rng.Source, rooms []*Room) []*Connection {
	var connections []*Connection
	taken := make(map[string]map[[3]int]bool, len(rooms))
	takenFor := func(roomID string) map[[3]int]bool {
		if taken[roomID] == nil {
			taken[roomID] = make(map[[3]int]bool)
		}
		return taken[roomID]
	}

	order := make([]*Room, len(rooms))
	copy(order, rooms)
	rng.Shuffle(floorRng, order)

	// Spanning tree: each room connects to a randomly chosen earlier room,
	// which guarantees reachability.
	for i := 1; i < len(order); i++ {
		roomA := order[floorRng.IntRange(0, i-1)]
		roomB := order[i]

		slotA := pickFreeDoorSlot(rng.New(roomA.Seed+":doors"), roomA, takenFor(roomA.ID))
		slotB := pickFreeDoorSlot(rng.New(roomB.Seed+":doors"), roomB, takenFor(roomB.ID))
		if slotA == nil || slotB == nil {
			continue // room saturated with doors; this pairing is skipped
		}
		connections = append(connections, carvePairedDoors(ids, roomA, *slotA, roomB, *slotB, takenFor))
	}

	extraAttempts := int(math.Round(float64(len(rooms)) * 1.2))
	for t := 0; t < extraAttempts; t++ {
		if floorRng.Float64() > extraConnectionChance {
			continue
		}
		roomA := rooms[floorRng.IntRange(0, len(rooms)-1)]
		roomB := rooms[floorRng.IntRange(0, len(rooms)-1)]
		if roomA.ID == roomB.ID {
			continue
		}
		slotA := pickFreeDoorSlot(floorRng, roomA, takenFor(roomA.ID))
		slotB := pickFreeDoorSlot(floorRng, roomB, takenFor(roomB.ID))
		if slotA == nil || slotB == nil {
			continue
		}
		connections = append(connections, carvePairedDoors(ids, roomA, *slotA, roomB, *slotB, takenFor))
	}

	return connections
}

// doorSlotsForRoom lists every candidate border position, spaced one tile
// inside each edge.
func doorSlotsForRoom(w, h int) []doorSlot {
	t := WallThickness
	slots := make([]doorSlot, 0, 2*(w+h))
	northY, southY := t-1, h-t
	for x := t; x < w-t; x++ {
		slots = append(slots, doorSlot{Side: SideNorth, X: x, Y: northY})
		slots = append(slots, doorSlot{Side: SideSouth, X: x, Y: southY})
	}
	westX, eastX := t-1, w-t
	for y := t; y < h-t; y++ {
		slots = append(slots, doorSlot{Side: SideWest, X: westX, Y: y})
		slots = append(slots, doorSlot{Side: SideEast, X: eastX, Y: y})
	}
	return slots
}

// pickFreeDoorSlot selects a door position in three degrade tiers: unused,
// spacing-respecting, and opening onto a walkable tile; then any unused
// spacing-respecting slot; then any unused slot. Returns nil when the room
// is fully saturated.
func pickFreeDoorSlot(src *rng.Source, room *Room, taken map[[3]int]bool) *doorSlot {
	all := doorSlotsForRoom(room.W, room.H)

	tooClose := func(slot doorSlot) bool {
		for _, d := range room.Doors {
			if abs(d.X-slot.X)+abs(d.Y-slot.Y) < MinDoorSpacing {
				return true
			}
		}
		for key := range taken {
			if abs(key[1]-slot.X)+abs(key[2]-slot.Y) < MinDoorSpacing {
				return true
			}
		}
		return false
	}

	var preferred []doorSlot
	for _, slot := range all {
		if taken[slot.key()] || tooClose(slot) {
			continue
		}
		dx, dy := slot.Side.InwardOffset()
		if room.Walkable(slot.X+dx, slot.Y+dy) {
			preferred = append(preferred, slot)
		}
	}
	if len(preferred) > 0 {
		s := preferred[src.IntRange(0, len(preferred)-1)]
		return &s
	}

	var spaced []doorSlot
	for _, slot := range all {
		if !taken[slot.key()] && !tooClose(slot) {
			spaced = append(spaced, slot)
		}
	}
	if len(spaced) > 0 {
		s := spaced[src.IntRange(0, len(spaced)-1)]
		return &s
	}

	var free []doorSlot
	for _, slot := range all {
		if !taken[slot.key()] {
			free = append(free, slot)
		}
	}
	if len(free) > 0 {
		s := free[src.IntRange(0, len(free)-1)]
		return &s
	}
	return nil
}

// carvePairedDoors registers a door on each room, carves the door tile and
// its inward neighbor to floor on both sides, and records the connection.
func carvePairedDoors(ids *idGen, roomA *Room, slotA doorSlot, roomB *Room, slotB doorSlot, takenFor func(string) map[[3]int]bool) *Connection {
	doorA := &Door{ID: ids.id("door"), X: slotA.X, Y: slotA.Y, Side: slotA.Side, RoomID: roomA.ID, TargetRoomID: roomB.ID}
	doorB := &Door{ID: ids.id("door"), X: slotB.X, Y: slotB.Y, Side: slotB.Side, RoomID: roomB.ID, TargetRoomID: roomA.ID}
	doorA.TargetDoorID = doorB.ID
	doorB.TargetDoorID = doorA.ID

	carveDoor(roomA, slotA)
	carveDoor(roomB, slotB)

	roomA.Doors = append(roomA.Doors, doorA)
	roomB.Doors = append(roomB.Doors, doorB)
	takenFor(roomA.ID)[slotA.key()] = true
	takenFor(roomB.ID)[slotB.key()] = true

	return &Connection{
		ID:      ids.id("conn"),
		RoomAID: roomA.ID,
		DoorAID: doorA.ID,
		RoomBID: roomB.ID,
		DoorBID: doorB.ID,
	}
}

func carveDoor(room *Room, slot doorSlot) {
	room.Tiles[slot.Y][slot.X] = TileFloor
	dx, dy := slot.Side.InwardOffset()
	ix, iy := slot.X+dx, slot.Y+dy
	if room.InBounds(ix, iy) {
		room.Tiles[iy][ix] = TileFloor
	}
}

func roomWithTag(rooms []*Room, tag string, fallback *Room) *Room {
	for _, r := range rooms {
		if r.Tag == tag {
			return r
		}
	}
	return fallback
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
