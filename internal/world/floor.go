package world

// Floor is one full generated level: rooms plus the connection graph that
// links them. The graph is always connected from the entry room.
type Floor struct {
	Seed        string
	Number      int
	Rooms       []*Room
	Connections []*Connection
	EntryRoomID string
	ExitRoomID  string

	byID map[string]*Room
}

// NewFloor assembles a floor and indexes its rooms. Entry and exit fall
// back to the first and last room when no better candidate is named.
func NewFloor(seed string, number int, rooms []*Room, connections []*Connection) *Floor {
	f := &Floor{
		Seed:        seed,
		Number:      number,
		Rooms:       rooms,
		Connections: connections,
		byID:        make(map[string]*Room, len(rooms)),
	}
	for _, r := range rooms {
		f.byID[r.ID] = r
	}
	if len(rooms) > 0 {
		f.EntryRoomID = roomWithTag(rooms, "start", rooms[0]).ID
		f.ExitRoomID = roomWithTag(rooms, "stairs", rooms[len(rooms)-1]).ID
	}
	return f
}

// RoomByID returns the room with the given id, or nil.
func (f *Floor) RoomByID(id string) *Room {
	return f.byID[id]
}

// EntryRoom returns the room the player spawns in.
func (f *Floor) EntryRoom() *Room {
	return f.byID[f.EntryRoomID]
}

// ConnectionForDoor returns the connection that contains the given door of
// the given room, or nil when the door is unpaired.
func (f *Floor) ConnectionForDoor(roomID, doorID string) *Connection {
	for _, c := range f.Connections {
		if (c.RoomAID == roomID && c.DoorAID == doorID) ||
			(c.RoomBID == roomID && c.DoorBID == doorID) {
			return c
		}
	}
	return nil
}

// Reachable walks the connection graph from the entry room and returns the
// set of reachable room ids.
func (f *Floor) Reachable() map[string]bool {
	adj := make(map[string][]string)
	for _, c := range f.Connections {
		adj[c.RoomAID] = append(adj[c.RoomAID], c.RoomBID)
		adj[c.RoomBID] = append(adj[c.RoomBID], c.RoomAID)
	}

	seen := map[string]bool{f.EntryRoomID: true}
	queue := []string{f.EntryRoomID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj[cur] {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return seen
}
