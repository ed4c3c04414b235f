package world

// Side identifies which edge of a room a door sits on.
type Side uint8

const (
	SideNorth Side = iota
	SideSouth
	SideWest
	SideEast
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SideNorth:
		return "N"
	case SideSouth:
		return "S"
	case SideWest:
		return "W"
	case SideEast:
		return "E"
	default:
		return "?"
	}
}

// InwardOffset returns the step from the door tile into the room interior.
func (s Side) InwardOffset() (dx, dy int) {
	switch s {
	case SideNorth:
		return 0, 1
	case SideSouth:
		return 0, -1
	case SideWest:
		return 1, 0
	case SideEast:
		return -1, 0
	default:
		return 0, 0
	}
}

// Door is a carved opening in a room border. Every door has exactly one
// partner door in a different room; the pair forms a Connection.
type Door struct {
	ID           string
	X, Y         int // position within the owning room
	Side         Side
	RoomID       string // owning room
	TargetRoomID string
	TargetDoorID string
}

// Connection is a bidirectional link between two doors in two rooms.
type Connection struct {
	ID      string
	RoomAID string
	DoorAID string
	RoomBID string
	DoorBID string
}

// Other returns the far room and door ids as seen from roomID, and false
// when the connection does not touch roomID at all.
func (c *Connection) Other(roomID string) (otherRoom, otherDoor string, ok bool) {
	switch roomID {
	case c.RoomAID:
		return c.RoomBID, c.DoorBID, true
	case c.RoomBID:
		return c.RoomAID, c.DoorAID, true
	default:
		return "", "", false
	}
}

// doorSlot is a candidate border position before pairing.
type doorSlot struct {
	Side Side
	X, Y int
}

func (s doorSlot) key() [3]int {
	return [3]int{int(s.Side), s.X, s.Y}
}
