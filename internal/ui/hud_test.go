package ui

import (
	"fmt"
	"testing"

	"github.com/samdwyer/wyrd/internal/entity"
)

func TestHUDMessageRetention(t *testing.T) {
	h := NewHUD()
	for i := 0; i < 20; i++ {
		h.Log(fmt.Sprintf("msg %d", i))
	}

	if len(h.Messages) != maxMessages {
		t.Fatalf("retained %d messages, want %d", len(h.Messages), maxMessages)
	}
	if h.Messages[0] != "msg 12" {
		t.Errorf("oldest retained = %q, want %q", h.Messages[0], "msg 12")
	}
	if h.Messages[len(h.Messages)-1] != "msg 19" {
		t.Errorf("newest retained = %q, want %q", h.Messages[len(h.Messages)-1], "msg 19")
	}
}

func TestHUDMenuFlags(t *testing.T) {
	h := NewHUD()
	h.OpenMenu()
	if !h.MenuOpen {
		t.Error("OpenMenu did not set MenuOpen")
	}
	h.CloseMenu()
	if h.MenuOpen {
		t.Error("CloseMenu did not clear MenuOpen")
	}
}

func TestHUDUpdateStats(t *testing.T) {
	h := NewHUD()
	p := entity.NewPlayer(0, 0)
	p.HP = 12
	p.XP = 30
	p.Level = 2
	h.UpdateStats(p)

	if h.HP != 12 || h.MaxHP != p.MaxHP {
		t.Errorf("HP = %d/%d, want 12/%d", h.HP, h.MaxHP, p.MaxHP)
	}
	if h.XP != 30 || h.Level != 2 {
		t.Errorf("XP/Level = %d/%d, want 30/2", h.XP, h.Level)
	}

	h.UpdateStats(nil) // must not panic or clear anything
	if h.HP != 12 {
		t.Error("UpdateStats(nil) clobbered state")
	}
}

func TestHUDEffectDecay(t *testing.T) {
	h := NewHUD()
	e := &entity.Entity{Name: "rat"}
	h.FlashEntity(e)
	h.ShakeEntity(e, 6)

	for i := 0; i < 10; i++ {
		h.decay()
	}
	if h.FlashTicks != 0 || h.ShakeTicks != 0 {
		t.Errorf("ticks after decay = %d/%d, want 0/0", h.FlashTicks, h.ShakeTicks)
	}
	if h.FlashTarget != nil {
		t.Error("flash target should clear once effects expire")
	}
}
