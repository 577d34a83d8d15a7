package game

// Vec2i is a discrete board cell.
type Vec2i struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Manhattan is the movement metric: steps along the grid axes.
func Manhattan(a, b Vec2i) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// Chebyshev is the adjacency metric: 1 for any of the 8 neighbors.
func Chebyshev(a, b Vec2i) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if dx > dy {
		return dx
	}
	return dy
}
