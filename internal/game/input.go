package game

import "github.com/gdamore/tcell/v2"

// Input carries one-shot movement and interact requests. Terminals deliver
// key presses without release events, so each press requests a single
// action; the loop clears a flag once it is consumed.
type Input struct {
	Up, Down, Left, Right bool
	Interact              bool
}

// direction resolves the pending flags to a single move. Conflicting
// directions cancel out.
func (in *Input) direction() (dx, dy int, ok bool) {
	switch {
	case in.Up && !in.Down && !in.Left && !in.Right:
		return 0, -1, true
	case in.Down && !in.Up && !in.Left && !in.Right:
		return 0, 1, true
	case in.Left && !in.Right && !in.Up && !in.Down:
		return -1, 0, true
	case in.Right && !in.Left && !in.Up && !in.Down:
		return 1, 0, true
	}
	return 0, 0, false
}

// clear drops all pending requests.
func (in *Input) clear() {
	*in = Input{}
}

// applyKey records an exploration key press. Unknown keys are ignored.
func (in *Input) applyKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyUp:
		in.Up = true
	case tcell.KeyDown:
		in.Down = true
	case tcell.KeyLeft:
		in.Left = true
	case tcell.KeyRight:
		in.Right = true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			in.Up = true
		case 's', 'S':
			in.Down = true
		case 'a', 'A':
			in.Left = true
		case 'd', 'D':
			in.Right = true
		case 'e', ' ':
			in.Interact = true
		}
	}
}
