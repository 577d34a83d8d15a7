package game

import (
	"testing"

	"gridtactics.dev/internal/events"
	"gridtactics.dev/internal/snapshot"
	"gridtactics.dev/internal/tuning"
)

func midgameState(t *testing.T) *State {
	t.Helper()
	s, _ := newTestState(t)
	tm := NewTurnManager(s)
	tm.StartTurn()

	w := placeUnit(t, s, UnitWorker, 1, 7, 6)
	placeUnit(t, s, UnitScout, 2, 11, 10)
	placeUnit(t, s, UnitHeavy, 2, 12, 10)
	if res := s.Resources().Gather(w.ID); !res.Success {
		t.Fatalf("gather: %+v", res)
	}
	s.BaseOf(2).Health = 150
	s.TurnNumber = 3
	s.CurrentPhase = PhaseAction
	return s
}

func TestSnapshot_RoundTrip(t *testing.T) {
	s := midgameState(t)
	save := s.BuildSave()

	raw, err := snapshot.Encode(save)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := snapshot.Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	restored, err := Restore(tuning.Default(), events.NewBus(), decoded)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	if restored.GameID != s.GameID || restored.Status != s.Status ||
		restored.CurrentPlayer != s.CurrentPlayer || restored.CurrentPhase != s.CurrentPhase ||
		restored.TurnNumber != s.TurnNumber || restored.Winner != s.Winner {
		t.Fatalf("aggregate fields differ after round trip")
	}

	if restored.UnitCount() != s.UnitCount() {
		t.Fatalf("unit count %d != %d", restored.UnitCount(), s.UnitCount())
	}
	for id, u := range s.units {
		r := restored.Unit(id)
		if r == nil || r.Pos != u.Pos || r.Health != u.Health || r.ActionsUsed != u.ActionsUsed || r.Type != u.Type {
			t.Fatalf("unit %s differs after round trip: %+v vs %+v", id, r, u)
		}
	}
	for id := 1; id <= 2; id++ {
		if restored.BaseOf(id).Pos != s.BaseOf(id).Pos || restored.BaseOf(id).Health != s.BaseOf(id).Health {
			t.Fatalf("base of player %d differs", id)
		}
		rp, sp := restored.Player(id), s.Player(id)
		if rp.Energy != sp.Energy || rp.ResourcesGathered != sp.ResourcesGathered ||
			rp.ActionsRemaining != sp.ActionsRemaining || rp.UnitCount() != sp.UnitCount() {
			t.Fatalf("player %d differs after round trip", id)
		}
	}
	for i, n := range s.Resources().Nodes() {
		if restored.Resources().Nodes()[i].Value != n.Value {
			t.Fatalf("node %s value differs", n.ID)
		}
	}

	// The restored board is recomputed, and it must be consistent.
	assertBoardConsistent(t, restored)
}

func TestSnapshot_CooldownsSurviveRestore(t *testing.T) {
	s := midgameState(t)
	var cooled string
	for id := range s.res.gatheredThisTurn {
		cooled = id
	}
	if cooled == "" {
		t.Fatalf("setup produced no cooldown")
	}

	restored, err := Restore(tuning.Default(), events.NewBus(), s.BuildSave())
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !restored.Resources().OnCooldown(cooled) {
		t.Fatalf("gather cooldown lost in round trip")
	}
}

func TestSnapshot_NewUnitsAfterRestoreGetFreshIDs(t *testing.T) {
	s := midgameState(t)
	restored, err := Restore(tuning.Default(), events.NewBus(), s.BuildSave())
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	restored.Player(1).Energy = 100
	base := restored.BaseOf(1)
	u := restored.CreateUnit(UnitWorker, 1, base.Pos.X, base.Pos.Y+1)
	if u == nil {
		t.Fatalf("create after restore rejected")
	}
	if restored.Unit(u.ID) != u || len(u.ID) == 0 {
		t.Fatalf("bad id after restore: %q", u.ID)
	}
	for id := range s.units {
		if id == u.ID {
			t.Fatalf("restored counter reissued id %s", id)
		}
	}
}

func TestRestore_RejectsConflictingOccupancy(t *testing.T) {
	s := midgameState(t)
	save := s.BuildSave()
	// Corrupt the save: move one unit onto another's cell. The board is
	// recomputed on restore, so this must fail loudly instead of silently
	// trusting either entity.
	save.Units[1].Pos = save.Units[0].Pos

	if _, err := Restore(tuning.Default(), events.NewBus(), save); err == nil {
		t.Fatalf("conflicting occupancy accepted")
	}
}

func TestRestore_RejectsOffBoardAndUnknownTypes(t *testing.T) {
	s := midgameState(t)

	save := s.BuildSave()
	save.Units[0].Pos = [2]int{40, 2}
	if _, err := Restore(tuning.Default(), events.NewBus(), save); err == nil {
		t.Fatalf("off-board unit accepted")
	}

	save = s.BuildSave()
	save.Units[0].Type = "catapult"
	if _, err := Restore(tuning.Default(), events.NewBus(), save); err == nil {
		t.Fatalf("unknown unit type accepted")
	}

	save = s.BuildSave()
	save.Version = 99
	if _, err := Restore(tuning.Default(), events.NewBus(), save); err == nil {
		t.Fatalf("unknown save version accepted")
	}
}

func TestRestore_DestroyedBaseStaysOffBoard(t *testing.T) {
	s := midgameState(t)
	b := s.BaseOf(2)
	b.IsDestroyed = true
	b.Health = 0
	s.board.clear(b.Pos.X, b.Pos.Y)

	restored, err := Restore(tuning.Default(), events.NewBus(), s.BuildSave())
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	rb := restored.BaseOf(2)
	if !rb.IsDestroyed {
		t.Fatalf("destruction flag lost")
	}
	if restored.EntityAt(rb.Pos.X, rb.Pos.Y) != "" {
		t.Fatalf("destroyed base occupies a cell after restore")
	}
}
