package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/wyrd/internal/combat"
	"github.com/samdwyer/wyrd/internal/entity"
	"github.com/samdwyer/wyrd/internal/gamedata"
	"github.com/samdwyer/wyrd/internal/world"
)

var (
	_ combat.UI      = (*HUD)(nil)
	_ combat.Effects = (*HUD)(nil)
)

// View is everything the renderer needs for one frame.
type View struct {
	Room     *world.Room
	Player   *entity.Entity
	Session  *combat.Session // nil outside combat
	HUD      *HUD
	GameOver bool
}

// Renderer draws the current room, its occupants, and the HUD.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws one frame.
func (r *Renderer) Render(v View) {
	r.screen.Clear()

	if v.Room != nil {
		r.drawRoom(v.Room, v.HUD)
	}
	if v.Player != nil {
		r.drawPlayer(v.Player)
	}

	panelX := 2
	if v.Room != nil {
		panelX = v.Room.W + 3
	}
	r.drawPanel(panelX, v)
	r.drawMessages(v)

	if v.GameOver {
		r.drawCentered("You have fallen. Press q to quit.", tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
	}

	if v.HUD != nil {
		v.HUD.decay()
	}
	r.screen.Show()
}

func (r *Renderer) drawRoom(room *world.Room, hud *HUD) {
	for y := 0; y < room.H; y++ {
		for x := 0; x < room.W; x++ {
			tile := room.At(x, y)
			r.screen.SetContent(x+1, y+1, tile.Rune(), tileStyle(tile))
		}
	}
	for _, d := range room.Doors {
		r.screen.SetContent(d.X+1, d.Y+1, '+', tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown))
	}
	for _, e := range room.LiveEntities() {
		style := tcell.StyleDefault.Foreground(entityColor(e))
		if hud != nil && hud.FlashTarget == e && hud.FlashTicks > 0 {
			style = style.Reverse(true)
		}
		r.screen.SetContent(e.X+1, e.Y+1, e.Glyph, style)
	}
}

func (r *Renderer) drawPlayer(p *entity.Entity) {
	style := tcell.StyleDefault.Foreground(entityColor(p)).Bold(true)
	r.screen.SetContent(p.X+1, p.Y+1, p.Glyph, style)
}

func (r *Renderer) drawPanel(x int, v View) {
	label := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)

	hud := v.HUD
	if hud == nil {
		return
	}

	r.drawText(x, 1, fmt.Sprintf("Floor %d", hud.Floor), label)
	r.drawText(x, 3, fmt.Sprintf("HP %d/%d", hud.HP, hud.MaxHP), label)
	r.drawBar(x, 4, 20, hud.HP, hud.MaxHP, tcell.ColorRed)
	r.drawText(x, 6, fmt.Sprintf("Lv %d  XP %d", hud.Level, hud.XP), label)

	if sess := v.Session; sess != nil {
		r.drawText(x, 8, "-- combat --", dim)
		r.drawText(x, 9, sess.Player.Name, label)
		r.drawBar(x, 10, 20, int(sess.Player.TurnMeter), 100, tcell.ColorBlue)
		r.drawText(x, 11, sess.Enemy.Name, label)
		r.drawBar(x, 12, 20, sess.Enemy.HP, sess.Enemy.MaxHP, tcell.ColorRed)
		r.drawBar(x, 13, 20, int(sess.Enemy.TurnMeter), 100, tcell.ColorBlue)
	}

	if hud.MenuOpen {
		r.drawText(x, 15, "[a]ttack [d]efend", label)
		r.drawText(x, 16, "[1]item  [2]skill", label)
		r.drawText(x, 17, "[f]lee", label)
	}
}

func (r *Renderer) drawMessages(v View) {
	if v.HUD == nil {
		return
	}
	_, h := r.screen.Size()
	start := h - len(v.HUD.Messages) - 1
	if start < 0 {
		start = 0
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorLightGray)
	for i, msg := range v.HUD.Messages {
		r.drawText(1, start+i, msg, style)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range text {
		r.screen.SetContent(x+i, y, ch, style)
	}
}

// drawBar renders a filled proportion bar of the given width.
func (r *Renderer) drawBar(x, y, width, value, maxValue int, color tcell.Color) {
	filled := 0
	if maxValue > 0 {
		filled = value * width / maxValue
	}
	if filled > width {
		filled = width
	}
	for i := 0; i < width; i++ {
		ch := '░'
		if i < filled {
			ch = '█'
		}
		r.screen.SetContent(x+i, y, ch, tcell.StyleDefault.Foreground(color))
	}
}

func (r *Renderer) drawCentered(text string, style tcell.Style) {
	w, h := r.screen.Size()
	x := (w - len(text)) / 2
	if x < 0 {
		x = 0
	}
	r.drawText(x, h/2, text, style)
}

func tileStyle(tile world.Tile) tcell.Style {
	switch tile {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.TileFloor:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case world.TileEntry:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	case world.TileExit:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	default:
		return tcell.StyleDefault
	}
}

// entityColor resolves the entity's hex color, falling back to white.
func entityColor(e *entity.Entity) tcell.Color {
	c, err := gamedata.ParseHexColor(e.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return c
}
