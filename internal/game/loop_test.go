package game

import (
	"context"
	"testing"
	"time"

	"github.com/samdwyer/wyrd/internal/entity"
	"github.com/samdwyer/wyrd/internal/world"
)

func floorRoom(id string, w, h int) *world.Room {
	tiles := make([][]world.Tile, h)
	for y := range tiles {
		row := make([]world.Tile, w)
		for x := range row {
			row[x] = world.TileFloor
		}
		tiles[y] = row
	}
	return &world.Room{ID: id, Tag: "empty_room", W: w, H: h, Tiles: tiles}
}

// testGame builds a headless game around a single hand-made room.
func testGame(room *world.Room) *Game {
	g := newGame(Config{}, nil, nil)
	g.floor = world.NewFloor("test", 1, []*world.Room{room}, nil)
	g.floorNumber = 1
	g.room = room
	g.player = entity.NewPlayer(2, 2)
	return g
}

func TestTryMoveWalks(t *testing.T) {
	g := testGame(floorRoom("r1", 10, 10))

	if !g.tryMove(context.Background(), 1, 0) {
		t.Fatal("move onto open floor rejected")
	}
	if g.player.X != 3 || g.player.Y != 2 {
		t.Errorf("player at (%d, %d), want (3, 2)", g.player.X, g.player.Y)
	}
}

func TestTryMoveBlockedByWall(t *testing.T) {
	room := floorRoom("r1", 10, 10)
	room.Tiles[2][3] = world.TileWall
	g := testGame(room)

	if g.tryMove(context.Background(), 1, 0) {
		t.Fatal("move into a wall succeeded")
	}
	if g.player.X != 2 || g.player.Y != 2 {
		t.Errorf("player at (%d, %d), want unchanged (2, 2)", g.player.X, g.player.Y)
	}
}

func TestBumpIntoMonsterStartsCombat(t *testing.T) {
	room := floorRoom("r1", 10, 10)
	mob := &entity.Entity{
		ID:    "rat",
		Name:  "rat",
		Kind:  entity.KindMonster,
		X:     3,
		Y:     2,
		Stats: entity.Stats{MaxHP: 8, HP: 8, Atk: 2},
		Alive: true,
	}
	room.Entities = append(room.Entities, mob)
	g := testGame(room)

	if g.tryMove(context.Background(), 1, 0) {
		t.Fatal("bump into a monster should not count as a move")
	}
	if g.player.X != 2 || g.player.Y != 2 {
		t.Error("bump moved the player")
	}
	if !g.sched.IsActive() {
		t.Fatal("bump should start combat")
	}
	if g.sched.Session().Enemy != mob {
		t.Error("combat started against the wrong enemy")
	}
	if g.state != StateCombat {
		t.Errorf("state = %v, want %v", g.state, StateCombat)
	}
}

func TestExitTileDescends(t *testing.T) {
	room := floorRoom("r1", 10, 10)
	room.Tiles[2][3] = world.TileExit
	g := testGame(room)
	g.cfg.MinRooms = 4
	g.cfg.MaxRooms = 6

	if !g.tryMove(context.Background(), 1, 0) {
		t.Fatal("stepping onto the exit should succeed as a move")
	}
	if g.floorNumber != 2 {
		t.Fatalf("floorNumber = %d, want 2", g.floorNumber)
	}
	if g.floor.Number != 2 || g.floor.Seed != "floor_2" {
		t.Errorf("new floor = %d seed %q, want 2 / floor_2", g.floor.Number, g.floor.Seed)
	}
	if g.room != g.floor.EntryRoom() {
		t.Error("player should arrive in the new floor's entry room")
	}
	if !g.room.InBounds(g.player.X, g.player.Y) || !g.room.Walkable(g.player.X, g.player.Y) {
		t.Errorf("player spawned on unwalkable tile (%d, %d)", g.player.X, g.player.Y)
	}
	if g.hud.Floor != 2 {
		t.Errorf("HUD floor = %d, want 2", g.hud.Floor)
	}
}

func TestInteractTraversesDoor(t *testing.T) {
	roomA := floorRoom("room_001", 10, 10)
	roomB := floorRoom("room_002", 12, 12)

	doorA := &world.Door{ID: "door_001", X: 5, Y: 1, Side: world.SideNorth, RoomID: roomA.ID,
		TargetRoomID: roomB.ID, TargetDoorID: "door_002"}
	doorB := &world.Door{ID: "door_002", X: 6, Y: 10, Side: world.SideSouth, RoomID: roomB.ID,
		TargetRoomID: roomA.ID, TargetDoorID: "door_001"}
	roomA.Doors = []*world.Door{doorA}
	roomB.Doors = []*world.Door{doorB}

	conn := &world.Connection{ID: "conn_001",
		RoomAID: roomA.ID, DoorAID: doorA.ID,
		RoomBID: roomB.ID, DoorBID: doorB.ID}

	g := newGame(Config{}, nil, nil)
	g.floor = world.NewFloor("test", 1, []*world.Room{roomA, roomB}, []*world.Connection{conn})
	g.floorNumber = 1
	g.room = roomA
	g.player = entity.NewPlayer(5, 2) // one tile inward of doorA

	g.interact()

	if g.room != roomB {
		t.Fatalf("player in room %s, want %s", g.room.ID, roomB.ID)
	}
	// SpawnForDoor places the player just inside the paired door.
	if g.player.X != doorB.X || g.player.Y != doorB.Y-1 {
		t.Errorf("player at (%d, %d), want (%d, %d)", g.player.X, g.player.Y, doorB.X, doorB.Y-1)
	}
}

func TestInteractWithoutAdjacentDoor(t *testing.T) {
	g := testGame(floorRoom("r1", 10, 10))
	g.interact() // must not panic or move anything
	if g.room.ID != "r1" {
		t.Error("interact without a door changed rooms")
	}
}

func TestTickMoveCooldown(t *testing.T) {
	g := testGame(floorRoom("r1", 10, 10))
	now := time.Now()
	g.lastMove = now.Add(-playerMoveCooldown * 2)

	g.input.Right = true
	g.tick(context.Background(), now, frameInterval)
	if g.player.X != 3 {
		t.Fatalf("first move did not apply, player.X = %d", g.player.X)
	}

	// Within the cooldown window a second request is ignored.
	g.input.Right = true
	g.tick(context.Background(), now.Add(30*time.Millisecond), frameInterval)
	if g.player.X != 3 {
		t.Errorf("move applied during cooldown, player.X = %d", g.player.X)
	}

	g.input.Right = true
	g.tick(context.Background(), now.Add(150*time.Millisecond), frameInterval)
	if g.player.X != 4 {
		t.Errorf("move after cooldown did not apply, player.X = %d", g.player.X)
	}
}

func TestTickConflictingDirectionsCancel(t *testing.T) {
	g := testGame(floorRoom("r1", 10, 10))
	now := time.Now()
	g.lastMove = now.Add(-playerMoveCooldown * 2)

	g.input.Left = true
	g.input.Right = true
	g.tick(context.Background(), now, frameInterval)

	if g.player.X != 2 || g.player.Y != 2 {
		t.Errorf("conflicting directions moved the player to (%d, %d)", g.player.X, g.player.Y)
	}
}

func TestTickMonsterActsOnCooldown(t *testing.T) {
	room := floorRoom("r1", 10, 10)
	mob := &entity.Entity{
		ID:    "rat",
		Name:  "rat",
		Kind:  entity.KindMonster,
		X:     7,
		Y:     2,
		Stats: entity.Stats{MaxHP: 8, HP: 8, Atk: 2, Speed: 10},
		Alive: true,
	}
	room.Entities = append(room.Entities, mob)
	g := testGame(room)

	now := time.Now()
	g.tick(context.Background(), now, frameInterval)
	if mob.X != 6 {
		t.Fatalf("mob should close distance on its first turn, X = %d", mob.X)
	}

	// Next frame is inside the mob's cooldown.
	g.tick(context.Background(), now.Add(frameInterval), frameInterval)
	if mob.X != 6 {
		t.Errorf("mob acted during cooldown, X = %d", mob.X)
	}

	g.tick(context.Background(), now.Add(mobActCooldown+time.Millisecond), frameInterval)
	if mob.X != 5 {
		t.Errorf("mob should act again after cooldown, X = %d", mob.X)
	}
}

func TestGameOverFreezesLoop(t *testing.T) {
	g := testGame(floorRoom("r1", 10, 10))
	g.gameOver()

	if g.state != StateGameOver {
		t.Fatalf("state = %v, want %v", g.state, StateGameOver)
	}

	now := time.Now()
	g.lastMove = now.Add(-playerMoveCooldown * 2)
	g.input.Right = true
	g.tick(context.Background(), now, frameInterval)

	if g.player.X != 2 {
		t.Error("player moved after game over")
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateExplore, "explore"},
		{StateCombat, "combat"},
		{StateGameOver, "game_over"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.expected)
		}
	}
}
