package world

import (
	"context"
	"testing"
)

func generate(t *testing.T, seed string) *Floor {
	t.Helper()
	gen := &Generator{}
	return gen.GenerateFloor(context.Background(), 1, Options{Seed: seed})
}

func TestGenerateFloorDeterminism(t *testing.T) {
	f1 := generate(t, "determinism-seed")
	f2 := generate(t, "determinism-seed")

	if len(f1.Rooms) != len(f2.Rooms) {
		t.Fatalf("room count mismatch: %d != %d", len(f1.Rooms), len(f2.Rooms))
	}
	if len(f1.Connections) != len(f2.Connections) {
		t.Fatalf("connection count mismatch: %d != %d", len(f1.Connections), len(f2.Connections))
	}

	for i := range f1.Rooms {
		r1, r2 := f1.Rooms[i], f2.Rooms[i]
		if r1.ID != r2.ID || r1.Tag != r2.Tag || r1.W != r2.W || r1.H != r2.H {
			t.Fatalf("room %d mismatch: %s/%s %dx%d != %s/%s %dx%d",
				i, r1.ID, r1.Tag, r1.W, r1.H, r2.ID, r2.Tag, r2.W, r2.H)
		}
		for y := 0; y < r1.H; y++ {
			for x := 0; x < r1.W; x++ {
				if r1.Tiles[y][x] != r2.Tiles[y][x] {
					t.Fatalf("room %d tile mismatch at (%d,%d): %v != %v",
						i, x, y, r1.Tiles[y][x], r2.Tiles[y][x])
				}
			}
		}
		if len(r1.Doors) != len(r2.Doors) {
			t.Fatalf("room %d door count mismatch: %d != %d", i, len(r1.Doors), len(r2.Doors))
		}
		for j := range r1.Doors {
			d1, d2 := r1.Doors[j], r2.Doors[j]
			if *d1 != *d2 {
				t.Fatalf("room %d door %d mismatch: %+v != %+v", i, j, *d1, *d2)
			}
		}
	}

	for i := range f1.Connections {
		if *f1.Connections[i] != *f2.Connections[i] {
			t.Fatalf("connection %d mismatch: %+v != %+v",
				i, *f1.Connections[i], *f2.Connections[i])
		}
	}
}

func TestGenerateFloorDifferentSeedsDiffer(t *testing.T) {
	f1 := generate(t, "seed-one")
	f2 := generate(t, "seed-two")

	if len(f1.Rooms) == len(f2.Rooms) {
		identical := true
		for i := range f1.Rooms {
			if f1.Rooms[i].W != f2.Rooms[i].W || f1.Rooms[i].H != f2.Rooms[i].H {
				identical = false
				break
			}
		}
		if identical {
			t.Error("floors with different seeds should not have identical room dimensions")
		}
	}
}

func TestGenerateFloorConnectivity(t *testing.T) {
	for _, seed := range []string{"conn-a", "conn-b", "conn-c"} {
		floor := generate(t, seed)
		reachable := floor.Reachable()
		for _, room := range floor.Rooms {
			if !reachable[room.ID] {
				t.Errorf("seed %q: room %s (%s) unreachable from entry", seed, room.ID, room.Tag)
			}
		}
	}
}

func TestGenerateFloorCoverageInvariant(t *testing.T) {
	floor := generate(t, "coverage")
	for _, room := range floor.Rooms {
		if pct := room.FloorPct(); pct < MinFloorPct {
			t.Errorf("room %s (%s) floor pct = %.3f, want >= %.2f", room.ID, room.Tag, pct, MinFloorPct)
		}
	}
}

func TestGenerateFloorOuterBorderIsWall(t *testing.T) {
	floor := generate(t, "border")
	for _, room := range floor.Rooms {
		// Door slots sit one tile inside each edge, so the outermost ring is
		// never carved.
		for x := 0; x < room.W; x++ {
			if room.Tiles[0][x] != TileWall || room.Tiles[room.H-1][x] != TileWall {
				t.Fatalf("room %s outer ring broken at column %d", room.ID, x)
			}
		}
		for y := 0; y < room.H; y++ {
			if room.Tiles[y][0] != TileWall || room.Tiles[y][room.W-1] != TileWall {
				t.Fatalf("room %s outer ring broken at row %d", room.ID, y)
			}
		}
	}
}

func TestGenerateFloorDoorSymmetry(t *testing.T) {
	floor := generate(t, "symmetry")
	for _, conn := range floor.Connections {
		roomA := floor.RoomByID(conn.RoomAID)
		roomB := floor.RoomByID(conn.RoomBID)
		if roomA == nil || roomB == nil {
			t.Fatalf("connection %s references missing room", conn.ID)
		}
		if roomA.ID == roomB.ID {
			t.Errorf("connection %s links room %s to itself", conn.ID, roomA.ID)
		}

		doorA := roomA.DoorByID(conn.DoorAID)
		doorB := roomB.DoorByID(conn.DoorBID)
		if doorA == nil || doorB == nil {
			t.Fatalf("connection %s references missing door", conn.ID)
		}
		if doorA.TargetDoorID != doorB.ID || doorB.TargetDoorID != doorA.ID {
			t.Errorf("connection %s door pairing asymmetric: %s<->%s vs %s<->%s",
				conn.ID, doorA.ID, doorA.TargetDoorID, doorB.ID, doorB.TargetDoorID)
		}
		if doorA.TargetRoomID != roomB.ID || doorB.TargetRoomID != roomA.ID {
			t.Errorf("connection %s door room targets wrong", conn.ID)
		}
	}
}

func TestGenerateFloorDoorSpacing(t *testing.T) {
	floor := generate(t, "spacing")
	for _, room := range floor.Rooms {
		for i, a := range room.Doors {
			for _, b := range room.Doors[i+1:] {
				// Spacing can degrade on saturated rooms, but doors must
				// never stack on the same slot.
				if a.X == b.X && a.Y == b.Y {
					t.Errorf("room %s has two doors on slot (%d,%d)", room.ID, a.X, a.Y)
				}
			}
		}
	}
}

func TestGenerateFloorDoorsOpenInward(t *testing.T) {
	floor := generate(t, "inward")
	for _, room := range floor.Rooms {
		for _, d := range room.Doors {
			if !room.Walkable(d.X, d.Y) {
				t.Errorf("room %s door %s tile (%d,%d) not walkable", room.ID, d.ID, d.X, d.Y)
			}
			dx, dy := d.Side.InwardOffset()
			if !room.Walkable(d.X+dx, d.Y+dy) {
				t.Errorf("room %s door %s inward tile (%d,%d) not walkable", room.ID, d.ID, d.X+dx, d.Y+dy)
			}
		}
	}
}

func TestGenerateFloorEntryAndExit(t *testing.T) {
	floor := generate(t, "entry-exit")

	entry := floor.EntryRoom()
	if entry == nil {
		t.Fatal("no entry room")
	}
	if entry.Tag != "start" {
		t.Errorf("entry room tag = %q, want start", entry.Tag)
	}

	exit := floor.RoomByID(floor.ExitRoomID)
	if exit == nil {
		t.Fatal("no exit room")
	}
	if exit.Tag != "stairs" {
		t.Errorf("exit room tag = %q, want stairs", exit.Tag)
	}

	if floor.RoomByID("nope") != nil {
		t.Error("RoomByID of unknown id should be nil")
	}
}

func TestGenerateFloorRoomCountBounds(t *testing.T) {
	gen := &Generator{}
	floor := gen.GenerateFloor(context.Background(), 3, Options{Seed: "bounds", MinRooms: 4, MaxRooms: 6})
	if n := len(floor.Rooms); n < 4 || n > 6 {
		t.Errorf("room count = %d, want within [4,6]", n)
	}
	if floor.Number != 3 {
		t.Errorf("floor number = %d, want 3", floor.Number)
	}
}

func TestGenerateFloorDefaultSeed(t *testing.T) {
	gen := &Generator{}
	floor := gen.GenerateFloor(context.Background(), 7, Options{})
	if floor.Seed != "floor_7" {
		t.Errorf("default seed = %q, want floor_7", floor.Seed)
	}
}

func TestConnectionOther(t *testing.T) {
	c := &Connection{RoomAID: "ra", DoorAID: "da", RoomBID: "rb", DoorBID: "db"}

	room, door, ok := c.Other("ra")
	if !ok || room != "rb" || door != "db" {
		t.Errorf("Other(ra) = %s/%s/%v, want rb/db/true", room, door, ok)
	}
	room, door, ok = c.Other("rb")
	if !ok || room != "ra" || door != "da" {
		t.Errorf("Other(rb) = %s/%s/%v, want ra/da/true", room, door, ok)
	}
	if _, _, ok := c.Other("rx"); ok {
		t.Error("Other of unrelated room should report false")
	}
}

func TestSpawnForDoor(t *testing.T) {
	floor := generate(t, "spawn")
	for _, room := range floor.Rooms {
		for _, door := range room.Doors {
			x, y := SpawnForDoor(room, door)
			if !room.InBounds(x, y) {
				t.Fatalf("spawn (%d,%d) out of bounds for room %s", x, y, room.ID)
			}
			if !room.Walkable(x, y) {
				t.Errorf("spawn (%d,%d) for door %s not walkable", x, y, door.ID)
			}
			dx, dy := door.Side.InwardOffset()
			if x != door.X+dx || y != door.Y+dy {
				t.Errorf("spawn for door %s = (%d,%d), want tile beyond door (%d,%d)",
					door.ID, x, y, door.X+dx, door.Y+dy)
			}
		}
	}
}
