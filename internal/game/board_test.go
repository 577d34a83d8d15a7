package game

import "testing"

func TestIsValidPosition_BoardBounds(t *testing.T) {
	s, _ := newTestState(t)
	for x := -2; x < 28; x++ {
		for y := -2; y < 28; y++ {
			want := x >= 0 && x < 25 && y >= 0 && y < 25
			if got := s.IsValidPosition(x, y); got != want {
				t.Fatalf("IsValidPosition(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestNewState_InitialLayout(t *testing.T) {
	s, _ := newTestState(t)

	if s.Status != StatusReady || s.CurrentPlayer != 1 || s.CurrentPhase != PhaseResource || s.TurnNumber != 1 {
		t.Fatalf("bad initial aggregate: %+v", s)
	}
	for id := 1; id <= 2; id++ {
		p := s.Player(id)
		if p.Energy != 100 || p.ActionsRemaining != 3 || p.UnitCount() != 0 {
			t.Fatalf("player %d not at starting values: %+v", id, p)
		}
		b := s.BaseOf(id)
		if b == nil || b.Health != 200 || b.IsDestroyed {
			t.Fatalf("player %d base wrong: %+v", id, b)
		}
		if s.EntityAt(b.Pos.X, b.Pos.Y) != b.ID {
			t.Fatalf("base %s not on board", b.ID)
		}
	}
	if len(s.Resources().Nodes()) != 9 {
		t.Fatalf("want 9 nodes, got %d", len(s.Resources().Nodes()))
	}
	assertBoardConsistent(t, s)
}

func TestEntityQueries(t *testing.T) {
	s, _ := newTestState(t)
	u := placeUnit(t, s, UnitScout, 1, 10, 10)

	if got := s.UnitAt(10, 10); got != u {
		t.Fatalf("UnitAt missed the unit")
	}
	if s.BaseAt(10, 10) != nil {
		t.Fatalf("BaseAt found a base on a unit cell")
	}
	if s.EntityAt(10, 10) != u.ID {
		t.Fatalf("EntityAt = %q, want %q", s.EntityAt(10, 10), u.ID)
	}
	if s.IsPositionEmpty(10, 10) {
		t.Fatalf("occupied cell reported empty")
	}
	if !s.IsPositionEmpty(11, 11) {
		t.Fatalf("empty cell reported occupied")
	}
	// Off-board queries are quiet failures, not panics.
	if s.UnitAt(-1, 99) != nil || s.EntityAt(-1, 99) != "" || s.IsPositionEmpty(-1, 99) {
		t.Fatalf("off-board queries misbehave")
	}
}

func TestIsWithinBaseRadius(t *testing.T) {
	s, _ := newTestState(t)
	base := s.BaseOf(1)

	cases := []struct {
		dx, dy int
		want   bool
	}{
		{0, 0, true},
		{3, 0, true},
		{1, 2, true},
		{2, 2, false}, // Manhattan 4
		{4, 0, false},
	}
	for _, c := range cases {
		got := s.IsWithinBaseRadius(1, base.Pos.X+c.dx, base.Pos.Y+c.dy)
		if got != c.want {
			t.Fatalf("radius check at offset (%d,%d) = %v, want %v", c.dx, c.dy, got, c.want)
		}
	}

	// A destroyed base grants no placement radius.
	base.IsDestroyed = true
	if s.IsWithinBaseRadius(1, base.Pos.X+1, base.Pos.Y) {
		t.Fatalf("destroyed base still grants radius")
	}
}
