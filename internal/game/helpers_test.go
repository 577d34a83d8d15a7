package game

import (
	"testing"

	"gridtactics.dev/internal/events"
	"gridtactics.dev/internal/tuning"
)

func newTestState(t *testing.T) (*State, *events.Bus) {
	t.Helper()
	return newTestStateWithRules(t, tuning.Default())
}

func newTestStateWithRules(t *testing.T, rules tuning.Rules) (*State, *events.Bus) {
	t.Helper()
	bus := events.NewBus()
	s, err := New(rules, bus)
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	return s, bus
}

// placeUnit creates a unit through the normal path near its owner's base and
// then teleports it to (x,y), keeping board and position in agreement. Tests
// use it to set up mid-game situations without replaying whole turns.
func placeUnit(t *testing.T, s *State, unitType string, playerID, x, y int) *Unit {
	t.Helper()
	s.players[playerID].Energy += 1000

	base := s.BaseOf(playerID)
	var u *Unit
	for dy := -3; dy <= 3 && u == nil; dy++ {
		for dx := -3; dx <= 3 && u == nil; dx++ {
			cx, cy := base.Pos.X+dx, base.Pos.Y+dy
			if abs(dx)+abs(dy) > s.rules.BasePlacementRadius {
				continue
			}
			if s.IsPositionEmpty(cx, cy) {
				u = s.CreateUnit(unitType, playerID, cx, cy)
			}
		}
	}
	if u == nil {
		t.Fatalf("no free cell near base of player %d", playerID)
	}
	if u.Pos.X != x || u.Pos.Y != y {
		if !s.IsPositionEmpty(x, y) {
			t.Fatalf("target cell (%d,%d) occupied", x, y)
		}
		s.board.clear(u.Pos.X, u.Pos.Y)
		s.board.set(x, y, u.ID)
		u.Pos = Vec2i{X: x, Y: y}
	}
	return u
}

// countEvents returns a counter handler wired for the given event name.
func countEvents(bus *events.Bus, name string) *int {
	n := new(int)
	bus.On(name, func(any) { *n++ })
	return n
}

// assertBoardConsistent checks the central invariant in both directions:
// every occupied cell names an entity at that position, and every live
// entity occupies exactly its own cell.
func assertBoardConsistent(t *testing.T, s *State) {
	t.Helper()
	for y := 0; y < s.board.Height(); y++ {
		for x := 0; x < s.board.Width(); x++ {
			id := s.board.At(x, y)
			if id == "" {
				continue
			}
			if u := s.units[id]; u != nil {
				if u.Pos.X != x || u.Pos.Y != y {
					t.Fatalf("cell (%d,%d) holds %s but unit is at (%d,%d)", x, y, id, u.Pos.X, u.Pos.Y)
				}
				continue
			}
			if b := s.bases[id]; b != nil {
				if b.IsDestroyed {
					t.Fatalf("cell (%d,%d) holds destroyed base %s", x, y, id)
				}
				if b.Pos.X != x || b.Pos.Y != y {
					t.Fatalf("cell (%d,%d) holds %s but base is at (%d,%d)", x, y, id, b.Pos.X, b.Pos.Y)
				}
				continue
			}
			t.Fatalf("cell (%d,%d) holds unknown id %s", x, y, id)
		}
	}
	for id, u := range s.units {
		if s.board.At(u.Pos.X, u.Pos.Y) != id {
			t.Fatalf("unit %s at (%d,%d) but cell holds %q", id, u.Pos.X, u.Pos.Y, s.board.At(u.Pos.X, u.Pos.Y))
		}
	}
	for id, b := range s.bases {
		if b.IsDestroyed {
			continue
		}
		if s.board.At(b.Pos.X, b.Pos.Y) != id {
			t.Fatalf("base %s at (%d,%d) but cell holds %q", id, b.Pos.X, b.Pos.Y, s.board.At(b.Pos.X, b.Pos.Y))
		}
	}
}
