package game

// MoveOption is one reachable cell with its movement cost.
type MoveOption struct {
	Pos  Vec2i `json:"pos"`
	Cost int   `json:"cost"`
}

// MovementCost returns the Manhattan distance from the unit to (x,y), or -1
// for an unknown unit. The cost model is 1 action per grid step, not per
// move command.
func (s *State) MovementCost(unitID string, x, y int) int {
	u := s.units[unitID]
	if u == nil {
		return -1
	}
	return Manhattan(u.Pos, Vec2i{X: x, Y: y})
}

// MoveUnit validates and performs a move. It fails, leaving everything
// unchanged, if the unit is unknown, the target is off-board or occupied,
// or the Manhattan distance exceeds the unit's remaining action budget.
func (s *State) MoveUnit(unitID string, x, y int) bool {
	if s.Status == StatusEnded {
		return false
	}
	u := s.units[unitID]
	if u == nil {
		return false
	}
	if !s.IsPositionEmpty(x, y) {
		return false
	}
	cost := Manhattan(u.Pos, Vec2i{X: x, Y: y})
	if cost == 0 || cost > u.ActionsLeft() {
		return false
	}

	from := u.Pos
	s.board.clear(from.X, from.Y)
	s.board.set(x, y, u.ID)
	u.Pos = Vec2i{X: x, Y: y}
	u.ActionsUsed += cost

	s.emit(EventUnitMoved, UnitMoved{UnitID: u.ID, From: from, To: u.Pos, Cost: cost})
	return true
}

// ValidMovePositions enumerates every empty in-bounds cell the unit can
// still reach this turn, tagged with its cost. The order is deterministic
// (row-major over the reachable diamond) but carries no meaning.
func (s *State) ValidMovePositions(unitID string) []MoveOption {
	u := s.units[unitID]
	if u == nil {
		return nil
	}
	budget := u.ActionsLeft()
	if budget <= 0 {
		return nil
	}

	out := []MoveOption{}
	for y := u.Pos.Y - budget; y <= u.Pos.Y+budget; y++ {
		for x := u.Pos.X - budget; x <= u.Pos.X+budget; x++ {
			d := Manhattan(u.Pos, Vec2i{X: x, Y: y})
			if d == 0 || d > budget {
				continue
			}
			if !s.IsPositionEmpty(x, y) {
				continue
			}
			out = append(out, MoveOption{Pos: Vec2i{X: x, Y: y}, Cost: d})
		}
	}
	return out
}
