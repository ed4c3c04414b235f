package combat

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/wyrd/internal/entity"
	"github.com/samdwyer/wyrd/internal/rng"
	"github.com/samdwyer/wyrd/internal/telemetry"
	"github.com/samdwyer/wyrd/internal/world"
)

// EndReason is the terminal transition that closed a combat session.
type EndReason int

const (
	EndEnemyDied EndReason = iota
	EndPlayerDied
	EndPlayerFled
	EndEnemyFled
)

// String returns a human-readable reason name.
func (r EndReason) String() string {
	switch r {
	case EndEnemyDied:
		return "enemy_died"
	case EndPlayerDied:
		return "player_died"
	case EndPlayerFled:
		return "player_fled"
	case EndEnemyFled:
		return "enemy_fled"
	default:
		return "unknown"
	}
}

// Config holds the ATB pacing constants.
type Config struct {
	TurnThreshold  float64 // meter value at which a combatant may act
	SpeedScale     float64 // meter units gained per speed point per second
	MeterCap       float64 // hard clamp on accrued meter
	PauseWhileMenu bool    // freeze accrual while the player menu is open
}

// DefaultConfig returns the standard pacing: threshold 100, scale 20,
// cap 1000, accrual paused while the menu is open.
func DefaultConfig() Config {
	return Config{
		TurnThreshold:  100,
		SpeedScale:     20,
		MeterCap:       1000,
		PauseWhileMenu: true,
	}
}

// Session is one active combat encounter. At most one exists per scheduler.
type Session struct {
	ID             uuid.UUID
	Player         *entity.Entity
	Enemy          *entity.Entity
	Room           *world.Room
	AwaitingPlayer bool

	ctx     context.Context
	started time.Time
	turns   int
}

// Scheduler drives combat. It is tick-driven: the host loop calls Tick with
// the elapsed time since the previous frame, which decouples combat logic
// from any particular render cadence.
type Scheduler struct {
	cfg Config
	rnd *rand.Rand
	log *zap.SugaredLogger
	ui  UI
	fx  Effects

	onGameOver func()
	session    *Session
}

// NewScheduler creates an idle scheduler. Nil collaborators are replaced
// with no-op implementations.
func NewScheduler(cfg Config, rnd *rand.Rand, log *zap.SugaredLogger, ui UI, fx Effects) *Scheduler {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if ui == nil {
		ui = NopUI{}
	}
	if fx == nil {
		fx = NopEffects{}
	}
	return &Scheduler{cfg: cfg, rnd: rnd, log: log, ui: ui, fx: fx}
}

// SetGameOverHandler installs the callback fired when the player dies.
func (s *Scheduler) SetGameOverHandler(fn func()) {
	s.onGameOver = fn
}

// IsActive reports whether a combat session is running.
func (s *Scheduler) IsActive() bool {
	return s.session != nil
}

// AwaitingPlayer reports whether the player action menu is open.
func (s *Scheduler) AwaitingPlayer() bool {
	return s.session != nil && s.session.AwaitingPlayer
}

// Session returns the active session for read-only inspection, or nil.
func (s *Scheduler) Session() *Session {
	return s.session
}

// Start opens a combat session. A missing argument or an already active
// session is a warning, not an error: the call aborts without mutating any
// state.
func (s *Scheduler) Start(ctx context.Context, player, enemy *entity.Entity, room *world.Room) {
	if player == nil || enemy == nil || room == nil {
		s.log.Warnw("combat start rejected: missing argument",
			"player", player != nil, "enemy", enemy != nil, "room", room != nil)
		return
	}
	if s.session != nil {
		s.log.Warnw("combat start rejected: session already active", "session", s.session.ID)
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	// Speed defaults for combatants that never set one.
	if player.Speed == 0 {
		player.Speed = 10
	}
	if enemy.Speed == 0 {
		if enemy.Boss {
			enemy.Speed = 14
		} else {
			enemy.Speed = 8
		}
	}

	s.session = &Session{
		ID:      uuid.New(),
		Player:  player,
		Enemy:   enemy,
		Room:    room,
		ctx:     ctx,
		started: time.Now(),
	}

	_, span := telemetry.Tracer("combat").Start(ctx, "combat.start")
	span.SetAttributes(
		attribute.String("combat.session", s.session.ID.String()),
		attribute.String("combat.enemy", enemy.Name),
		attribute.Bool("combat.boss", enemy.Boss),
	)
	span.End()

	s.ui.Log(fmt.Sprintf("Combat started: %s vs %s!", player.Name, enemy.Name))
}

// Tick advances the session by dt: meter accrual, clamping, and readiness
// resolution. Ready combatants are ordered by descending meter; a ready
// player opens the action menu and halts further resolution this tick.
func (s *Scheduler) Tick(dt time.Duration) {
	sess := s.session
	if sess == nil {
		return
	}

	if !sess.AwaitingPlayer || !s.cfg.PauseWhileMenu {
		step := dt.Seconds() * s.cfg.SpeedScale
		sess.Player.TurnMeter += float64(sess.Player.Speed) * step
		sess.Enemy.TurnMeter += float64(sess.Enemy.Speed) * step
	}
	sess.Player.TurnMeter = rng.Clamp(sess.Player.TurnMeter, 0, s.cfg.MeterCap)
	sess.Enemy.TurnMeter = rng.Clamp(sess.Enemy.TurnMeter, 0, s.cfg.MeterCap)

	// Insertion order (player first) breaks meter ties.
	type readyEntry struct {
		isPlayer bool
		meter    float64
	}
	var ready []readyEntry
	if sess.Player.TurnMeter >= s.cfg.TurnThreshold {
		ready = append(ready, readyEntry{isPlayer: true, meter: sess.Player.TurnMeter})
	}
	if sess.Enemy.TurnMeter >= s.cfg.TurnThreshold {
		ready = append(ready, readyEntry{isPlayer: false, meter: sess.Enemy.TurnMeter})
	}
	if len(ready) == 2 && ready[1].meter > ready[0].meter {
		ready[0], ready[1] = ready[1], ready[0]
	}

	for _, r := range ready {
		if s.session == nil {
			break
		}
		if r.isPlayer {
			if !sess.AwaitingPlayer {
				sess.AwaitingPlayer = true
				s.ui.OpenMenu()
			}
			break
		}
		s.enemyAct()
	}
}

// fleeChance is the shared escape probability for both sides, in percent.
func fleeChance(speed int) float64 {
	return rng.Clamp(30+float64(speed), 5, 95)
}

// enemyAct runs the monster AI for one turn: a flee attempt when badly
// hurt, a small chance to defend, otherwise an attack.
func (s *Scheduler) enemyAct() {
	sess := s.session
	enemy, player := sess.Enemy, sess.Player
	enemy.Defending = false
	sess.turns++

	lowHP := float64(enemy.HP)/float64(enemy.MaxHP) < 0.25
	if lowHP && s.rnd.Float64() < 0.35 {
		if s.rnd.Float64()*100 < fleeChance(enemy.Speed) {
			s.ui.Log(fmt.Sprintf("%s flees!", enemy.Name))
			s.End(EndEnemyFled)
			return
		}
	}

	if s.rnd.Float64() < 0.15 {
		enemy.Defending = true
		s.ui.Log(fmt.Sprintf("%s is defending!", enemy.Name))
	} else {
		s.performAttack(enemy, player)
		if !player.Alive {
			s.End(EndPlayerDied)
			return
		}
	}

	enemy.TurnMeter = 0
}

// performAttack resolves one attack and reports it to the UI and effects
// collaborators.
func (s *Scheduler) performAttack(attacker, defender *entity.Entity) {
	res := entity.ResolveAttack(s.rnd, attacker, defender)

	switch {
	case res.Missed:
		s.ui.Log(fmt.Sprintf("%s misses %s!", res.Attacker, res.Defender))
	case res.Crit:
		s.ui.Log(fmt.Sprintf("Critical! %s hits %s for %d damage!", res.Attacker, res.Defender, res.Damage))
	default:
		s.ui.Log(fmt.Sprintf("%s hits %s for %d damage!", res.Attacker, res.Defender, res.Damage))
	}

	if !res.Missed {
		s.fx.FlashEntity(defender)
		s.fx.ShakeEntity(defender, min(10, max(2, res.Damage)))
	}
	if res.Killed {
		s.ui.Log(fmt.Sprintf("%s is defeated!", res.Defender))
	}
	if res.LeveledTo > 0 {
		s.ui.Log(fmt.Sprintf("You reached level %d!", res.LeveledTo))
	}

	player := s.session.Player
	s.ui.UpdateHP(player.HP, player.MaxHP)
	s.ui.UpdateXP(player.XP)
	s.ui.UpdateStats(player)
}

// PlayerAttack resolves the player's attack action.
func (s *Scheduler) PlayerAttack() {
	sess := s.session
	if sess == nil || !sess.AwaitingPlayer {
		return
	}
	sess.Player.Defending = false
	s.performAttack(sess.Player, sess.Enemy)
	if !sess.Enemy.Alive {
		s.closeMenu()
		s.End(EndEnemyDied)
		return
	}
	sess.Player.TurnMeter = 0
	s.closeMenu()
}

// PlayerDefend flags the player as defending and ends the turn. Defending
// carries no extra damage modifier yet; mitigation comes from def alone.
func (s *Scheduler) PlayerDefend() {
	sess := s.session
	if sess == nil || !sess.AwaitingPlayer {
		return
	}
	sess.Player.Defending = true
	sess.Player.TurnMeter = 0
	s.closeMenu()
	s.ui.Log("You brace behind your guard.")
}

// PlayerUseItem is a placeholder action with no mechanical effect.
func (s *Scheduler) PlayerUseItem() {
	sess := s.session
	if sess == nil || !sess.AwaitingPlayer {
		return
	}
	s.ui.Log("You rummage through your pack. Nothing useful yet.")
	sess.Player.TurnMeter = 0
	s.closeMenu()
}

// PlayerUseSkill is a placeholder action with no mechanical effect.
func (s *Scheduler) PlayerUseSkill() {
	sess := s.session
	if sess == nil || !sess.AwaitingPlayer {
		return
	}
	s.ui.Log("You have no skills to call on yet.")
	sess.Player.TurnMeter = 0
	s.closeMenu()
}

// PlayerFlee attempts to escape. Failure hands the enemy an immediate,
// unavoidable counter-attack before control returns.
func (s *Scheduler) PlayerFlee() {
	sess := s.session
	if sess == nil || !sess.AwaitingPlayer {
		return
	}
	if s.rnd.Float64()*100 < fleeChance(sess.Player.Speed) {
		s.ui.Log("You flee the fight!")
		s.closeMenu()
		s.End(EndPlayerFled)
		return
	}

	s.ui.Log("You fail to escape! The enemy strikes!")
	s.closeMenu()
	s.performAttack(sess.Enemy, sess.Player)
	if !sess.Player.Alive {
		s.End(EndPlayerDied)
		return
	}
	sess.Player.TurnMeter = 0
}

func (s *Scheduler) closeMenu() {
	if s.session != nil {
		s.session.AwaitingPlayer = false
	}
	s.ui.CloseMenu()
}

// End closes the session: a dead or fled enemy leaves the room, a dead
// player triggers the game-over handler, and the scheduler returns to idle.
// No-op when no session is active.
func (s *Scheduler) End(reason EndReason) {
	sess := s.session
	if sess == nil {
		return
	}

	_, span := telemetry.Tracer("combat").Start(sess.ctx, "combat.end")
	span.SetAttributes(
		attribute.String("combat.session", sess.ID.String()),
		attribute.String("combat.outcome", reason.String()),
		attribute.Int("combat.turns", sess.turns),
		attribute.Int64("combat.duration_ms", time.Since(sess.started).Milliseconds()),
	)
	span.End()

	switch reason {
	case EndEnemyDied, EndEnemyFled:
		sess.Room.RemoveEntity(sess.Enemy)
	case EndPlayerDied:
		s.ui.Log("You have fallen. The dungeon claims another.")
		if s.onGameOver != nil {
			s.onGameOver()
		}
	}

	s.ui.UpdateHP(sess.Player.HP, sess.Player.MaxHP)
	s.ui.UpdateXP(sess.Player.XP)
	s.ui.UpdateStats(sess.Player)

	s.session = nil
	s.closeMenu()
	s.log.Infow("combat ended", "reason", reason.String(), "turns", sess.turns)
}
