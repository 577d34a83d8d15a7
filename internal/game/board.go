package game

// Board is the occupancy grid. A cell holds "" or an entity id, and the
// entity at that id must report the same position; every mutation in this
// package maintains that agreement.
type Board struct {
	width  int
	height int
	cells  [][]string
}

func newBoard(width, height int) *Board {
	cells := make([][]string, height)
	for y := range cells {
		cells[y] = make([]string, width)
	}
	return &Board{width: width, height: height, cells: cells}
}

func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// At returns the entity id occupying (x,y), or "" for an empty or
// out-of-bounds cell.
func (b *Board) At(x, y int) string {
	if !b.InBounds(x, y) {
		return ""
	}
	return b.cells[y][x]
}

func (b *Board) set(x, y int, id string) {
	b.cells[y][x] = id
}

func (b *Board) clear(x, y int) {
	b.cells[y][x] = ""
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }
