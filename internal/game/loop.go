package game

import (
	"context"
	"fmt"
	"time"

	"github.com/samdwyer/wyrd/internal/entity"
	"github.com/samdwyer/wyrd/internal/world"
)

// tick advances the game by one frame. In combat the scheduler owns time;
// otherwise the explore loop moves the player and runs overworld mobs on
// their own cooldowns.
func (g *Game) tick(ctx context.Context, now time.Time, dt time.Duration) {
	if g.state == StateGameOver {
		return
	}

	if g.sched.IsActive() {
		g.state = StateCombat
		g.sched.Tick(dt)
		if !g.sched.IsActive() && g.state != StateGameOver {
			g.state = StateExplore
			g.input.clear()
		}
		return
	}
	g.state = StateExplore

	if now.Sub(g.lastMove) >= playerMoveCooldown {
		if dx, dy, ok := g.input.direction(); ok {
			if g.tryMove(ctx, dx, dy) {
				g.lastMove = now
			}
		}
		if g.input.Interact {
			g.interact()
		}
		g.input.clear()
	}

	// Combat may have started on a bump this frame; mobs freeze while it
	// runs.
	if g.sched.IsActive() {
		g.state = StateCombat
		return
	}

	for _, mob := range g.room.LiveEntities() {
		if now.Sub(g.lastMobAct[mob]) < mobActCooldown {
			continue
		}
		g.lastMobAct[mob] = now
		if res := mob.Act(g.player, g.room, g.rnd); res != nil {
			g.reportOverworldAttack(res)
		}
	}
}

// tryMove attempts one player step. Bumping a live monster starts combat
// instead of moving; stepping onto the exit staircase descends.
func (g *Game) tryMove(ctx context.Context, dx, dy int) bool {
	nx, ny := g.player.X+dx, g.player.Y+dy
	if !g.room.Walkable(nx, ny) {
		return false
	}
	if mob := g.room.EntityAt(nx, ny); mob != nil && mob.Alive {
		g.state = StateCombat
		g.sched.Start(ctx, g.player, mob, g.room)
		return false
	}

	g.player.X, g.player.Y = nx, ny
	if g.room.At(nx, ny) == world.TileExit {
		g.hud.Log("You descend the stairs.")
		g.descend(ctx)
	}
	return true
}

// interact resolves an adjacent door into a room transition.
func (g *Game) interact() {
	door := g.room.DoorAdjacentTo(g.player.X, g.player.Y)
	if door == nil {
		return
	}

	conn := g.floor.ConnectionForDoor(g.room.ID, door.ID)
	if conn == nil {
		g.hud.Log("The door will not budge.")
		g.log.Warnw("door has no connection", "room", g.room.ID, "door", door.ID)
		return
	}

	nextRoomID, nextDoorID, ok := conn.Other(g.room.ID)
	if !ok {
		g.log.Warnw("connection does not reference current room", "room", g.room.ID, "connection", conn.ID)
		return
	}
	next := g.floor.RoomByID(nextRoomID)
	if next == nil {
		g.log.Warnw("connection leads to unknown room", "room", nextRoomID)
		return
	}
	nextDoor := next.DoorByID(nextDoorID)
	if nextDoor == nil {
		g.log.Warnw("paired door missing", "room", nextRoomID, "door", nextDoorID)
		return
	}

	g.room = next
	g.player.X, g.player.Y = world.SpawnForDoor(next, nextDoor)
	g.hud.Log(fmt.Sprintf("You enter the %s.", next.Tag))
}

// reportOverworldAttack surfaces a mob's out-of-combat attack on the HUD.
func (g *Game) reportOverworldAttack(res *entity.AttackResult) {
	if res.Missed {
		g.hud.Log(fmt.Sprintf("%s lunges at you and misses!", res.Attacker))
	} else {
		g.hud.Log(fmt.Sprintf("%s hits you for %d damage!", res.Attacker, res.Damage))
	}
	g.hud.UpdateHP(g.player.HP, g.player.MaxHP)
	if !g.player.Alive {
		g.gameOver()
	}
}
