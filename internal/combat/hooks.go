// Package combat provides the real-time ATB combat scheduler: turn-meter
// accrual, action selection, attack resolution, and flee/AI logic.
package combat

import "github.com/samdwyer/wyrd/internal/entity"

// UI receives player-facing combat output. Every method must be safe to
// call at any time; the scheduler degrades silently with NopUI.
type UI interface {
	Log(msg string)
	UpdateHP(hp, maxHP int)
	UpdateXP(xp int)
	UpdateStats(player *entity.Entity)
	OpenMenu()
	CloseMenu()
}

// NopUI is the default UI that discards everything.
type NopUI struct{}

func (NopUI) Log(string)                 {}
func (NopUI) UpdateHP(int, int)          {}
func (NopUI) UpdateXP(int)               {}
func (NopUI) UpdateStats(*entity.Entity) {}
func (NopUI) OpenMenu()                  {}
func (NopUI) CloseMenu()                 {}

// Effects receives hit feedback for purely visual treatment. Optional; the
// scheduler tolerates NopEffects.
type Effects interface {
	FlashEntity(e *entity.Entity)
	ShakeEntity(e *entity.Entity, intensity int)
}

// NopEffects discards all effect requests.
type NopEffects struct{}

func (NopEffects) FlashEntity(*entity.Entity)      {}
func (NopEffects) ShakeEntity(*entity.Entity, int) {}
