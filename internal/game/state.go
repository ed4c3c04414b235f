// Package game provides the main game loop and state management.
package game

// State represents the current game mode.
type State int

const (
	// StateExplore is the default mode: the player roams rooms in real time.
	StateExplore State = iota
	// StateCombat is active while the turn scheduler runs an encounter.
	StateCombat
	// StateGameOver is terminal; only quitting remains.
	StateGameOver
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExplore:
		return "explore"
	case StateCombat:
		return "combat"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}
