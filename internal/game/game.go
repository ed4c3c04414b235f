package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/wyrd/internal/combat"
	"github.com/samdwyer/wyrd/internal/entity"
	"github.com/samdwyer/wyrd/internal/gamedata"
	"github.com/samdwyer/wyrd/internal/rng"
	"github.com/samdwyer/wyrd/internal/telemetry"
	"github.com/samdwyer/wyrd/internal/ui"
	"github.com/samdwyer/wyrd/internal/world"
)

const (
	frameInterval      = 33 * time.Millisecond
	playerMoveCooldown = 100 * time.Millisecond
	mobActCooldown     = 200 * time.Millisecond
)

// Game holds the entire game state.
type Game struct {
	cfg      Config
	log      *zap.SugaredLogger
	screen   *ui.Screen
	renderer *ui.Renderer
	hud      *ui.HUD
	gen      *world.Generator
	sched    *combat.Scheduler
	rnd      *rand.Rand

	floor       *world.Floor
	floorNumber int
	room        *world.Room
	player      *entity.Entity

	state      State
	input      Input
	running    bool
	lastMove   time.Time
	lastMobAct map[*entity.Entity]time.Time
}

// New creates a game attached to the terminal.
func New(cfg Config, log *zap.SugaredLogger) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	registry, err := gamedata.LoadMobRegistry()
	if err != nil {
		screen.Close()
		return nil, err
	}

	g := newGame(cfg, log, registry)
	g.screen = screen
	g.renderer = ui.NewRenderer(screen)
	return g, nil
}

// newGame wires everything except the terminal, so tests can drive the
// loop headless.
func newGame(cfg Config, log *zap.SugaredLogger, mobs world.MobSource) *Game {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	hud := ui.NewHUD()
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	g := &Game{
		cfg:        cfg,
		log:        log,
		hud:        hud,
		rnd:        rnd,
		gen:        &world.Generator{Mobs: mobs},
		state:      StateExplore,
		running:    true,
		lastMobAct: make(map[*entity.Entity]time.Time),
	}
	g.sched = combat.NewScheduler(combat.DefaultConfig(), rnd, log, hud, hud)
	g.sched.SetGameOverHandler(g.gameOver)
	return g
}

// Run executes the main game loop until the player quits or dies.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, initSpan := tracer.Start(ctx, "game.init")
	g.descend(ctx)
	initSpan.SetAttributes(
		attribute.String("floor.seed", g.floor.Seed),
		attribute.Int("floor.rooms", len(g.floor.Rooms)),
	)
	initSpan.End()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	last := time.Now()
	for g.running {
		select {
		case <-ctx.Done():
			g.running = false

		case ev, ok := <-events:
			if !ok {
				g.running = false
				break
			}
			g.handleEvent(ctx, ev)

		case now := <-ticker.C:
			g.tick(ctx, now, now.Sub(last))
			last = now
			g.render()
		}
	}

	g.screen.Close()
	return nil
}

func (g *Game) render() {
	g.renderer.Render(ui.View{
		Room:     g.room,
		Player:   g.player,
		Session:  g.sched.Session(),
		HUD:      g.hud,
		GameOver: g.state == StateGameOver,
	})
}

// handleEvent processes a single terminal event.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
	case *tcell.EventKey:
		g.handleKey(ctx, ev)
	}
}

// handleKey routes keyboard input by mode: combat keys go to the
// scheduler while it awaits an action, movement keys feed the explore
// loop otherwise.
func (g *Game) handleKey(ctx context.Context, ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		g.running = false
		return
	}

	if g.state == StateGameOver {
		if ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q') {
			g.running = false
		}
		return
	}

	if g.sched.IsActive() {
		g.handleCombatKey(ev)
		return
	}

	if ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q') {
		g.running = false
		return
	}
	g.input.applyKey(ev)
}

func (g *Game) handleCombatKey(ev *tcell.EventKey) {
	if ev.Key() != tcell.KeyRune {
		return
	}
	switch ev.Rune() {
	case 'a', 'A':
		g.sched.PlayerAttack()
	case 'd', 'D':
		g.sched.PlayerDefend()
	case 'f', 'F':
		g.sched.PlayerFlee()
	case '1':
		g.sched.PlayerUseItem()
	case '2':
		g.sched.PlayerUseSkill()
	}
}

// descend generates the next floor and places the player in its entry
// room. The configured seed only applies to the first floor; later floors
// derive their seed from the floor number.
func (g *Game) descend(ctx context.Context) {
	g.floorNumber++
	opts := world.Options{MinRooms: g.cfg.MinRooms, MaxRooms: g.cfg.MaxRooms}
	if g.floorNumber == 1 {
		opts.Seed = g.cfg.Seed
	}

	g.floor = g.gen.GenerateFloor(ctx, g.floorNumber, opts)
	g.room = g.floor.EntryRoom()
	g.lastMobAct = make(map[*entity.Entity]time.Time)

	x, y := g.room.RandomFloorTile(rng.New(g.floor.Seed + ":spawn"))
	if g.player == nil {
		g.player = entity.NewPlayer(x, y)
	} else {
		g.player.X, g.player.Y = x, y
	}

	g.hud.UpdateFloor(g.floorNumber)
	g.hud.UpdateStats(g.player)
	g.hud.Log(fmt.Sprintf("Welcome to floor %d.", g.floorNumber))
	g.log.Infow("descended", "floor", g.floorNumber, "seed", g.floor.Seed, "rooms", len(g.floor.Rooms))
}

func (g *Game) gameOver() {
	g.state = StateGameOver
	g.log.Infow("game over", "floor", g.floorNumber, "level", g.player.Level)
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
