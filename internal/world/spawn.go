package world

// SpawnForDoor computes where an entity arriving through a door should
// stand: the tile just beyond the door, then two tiles beyond, then the
// room center, then a radius search around the center for the nearest
// walkable tile. The final fallback clamps into the room interior.
func SpawnForDoor(room *Room, door *Door) (int, int) {
	dx, dy := door.Side.InwardOffset()

	candidates := [][2]int{
		{door.X + dx, door.Y + dy},
		{door.X + 2*dx, door.Y + 2*dy},
		{room.W / 2, room.H / 2},
	}
	for _, c := range candidates {
		if room.Walkable(c[0], c[1]) {
			return c[0], c[1]
		}
	}

	cx, cy := room.Center()
	radius := max(3, min(room.W, room.H)/4)
	for r := 1; r <= radius; r++ {
		for y := max(0, cy-r); y <= min(room.H-1, cy+r); y++ {
			for x := max(0, cx-r); x <= min(room.W-1, cx+r); x++ {
				if room.Walkable(x, y) {
					return x, y
				}
			}
		}
	}

	return clampInt(candidates[0][0], 1, room.W-2), clampInt(candidates[0][1], 1, room.H-2)
}

func clampInt(v, a, b int) int {
	if v < a {
		return a
	}
	if v > b {
		return b
	}
	return v
}
