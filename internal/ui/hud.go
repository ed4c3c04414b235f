package ui

import (
	"github.com/samdwyer/wyrd/internal/entity"
)

// maxMessages is how many log lines the HUD retains for display.
const maxMessages = 8

// HUD is the pure display state fed by the game and the combat scheduler.
// It carries no tcell dependency so headless code can drive it in tests;
// the Renderer reads it each frame. It satisfies both combat.UI and
// combat.Effects.
type HUD struct {
	Messages []string
	HP       int
	MaxHP    int
	XP       int
	Level    int
	Floor    int
	MenuOpen bool

	// FlashTicks and ShakeTicks decay one per rendered frame; the renderer
	// tints the flagged entity while they are positive.
	FlashTarget *entity.Entity
	FlashTicks  int
	ShakeTicks  int
}

// NewHUD returns an empty HUD.
func NewHUD() *HUD {
	return &HUD{}
}

// Log appends a message, discarding the oldest beyond the retention cap.
func (h *HUD) Log(msg string) {
	h.Messages = append(h.Messages, msg)
	if len(h.Messages) > maxMessages {
		h.Messages = h.Messages[len(h.Messages)-maxMessages:]
	}
}

// UpdateHP records the player's current and maximum hit points.
func (h *HUD) UpdateHP(hp, maxHP int) {
	h.HP, h.MaxHP = hp, maxHP
}

// UpdateXP records the player's experience total.
func (h *HUD) UpdateXP(xp int) {
	h.XP = xp
}

// UpdateStats refreshes the stat readout from the player entity.
func (h *HUD) UpdateStats(player *entity.Entity) {
	if player == nil {
		return
	}
	h.HP, h.MaxHP = player.HP, player.MaxHP
	h.XP = player.XP
	h.Level = player.Level
}

// UpdateFloor records the current floor number.
func (h *HUD) UpdateFloor(n int) {
	h.Floor = n
}

// OpenMenu shows the combat action menu.
func (h *HUD) OpenMenu() {
	h.MenuOpen = true
}

// CloseMenu hides the combat action menu.
func (h *HUD) CloseMenu() {
	h.MenuOpen = false
}

// FlashEntity tints the entity for a few frames.
func (h *HUD) FlashEntity(e *entity.Entity) {
	h.FlashTarget = e
	h.FlashTicks = 4
}

// ShakeEntity jitters the entity, harder for bigger hits.
func (h *HUD) ShakeEntity(e *entity.Entity, intensity int) {
	h.FlashTarget = e
	h.ShakeTicks = min(8, 2+intensity/2)
}

// decay steps the transient effect counters; the renderer calls it once
// per frame.
func (h *HUD) decay() {
	if h.FlashTicks > 0 {
		h.FlashTicks--
	}
	if h.ShakeTicks > 0 {
		h.ShakeTicks--
	}
	if h.FlashTicks == 0 && h.ShakeTicks == 0 {
		h.FlashTarget = nil
	}
}
