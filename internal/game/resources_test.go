package game

import "testing"

func TestGather_HappyPath(t *testing.T) {
	s, bus := newTestState(t)
	rm := s.Resources()
	worker := placeUnit(t, s, UnitWorker, 1, 7, 6) // next to the node at (6,6)
	energyBefore := s.Player(1).Energy

	var gathered ResourcesGathered
	bus.On(EventResourcesGathered, func(p any) { gathered = p.(ResourcesGathered) })

	res := rm.Gather(worker.ID)
	if !res.Success || res.Amount != 5 {
		t.Fatalf("gather failed: %+v", res)
	}
	if s.Player(1).Energy != energyBefore+5 || s.Player(1).ResourcesGathered != 5 {
		t.Fatalf("player not credited: energy=%d gathered=%d", s.Player(1).Energy, s.Player(1).ResourcesGathered)
	}
	if rm.Nodes()[0].Value != 95 {
		t.Fatalf("node not depleted: %d", rm.Nodes()[0].Value)
	}
	if worker.ActionsUsed != 1 {
		t.Fatalf("gather must consume one action, used=%d", worker.ActionsUsed)
	}
	if !rm.OnCooldown(worker.ID) {
		t.Fatalf("worker not on cooldown")
	}
	if gathered.Amount != 5 || gathered.UnitID != worker.ID || gathered.PlayerID != 1 {
		t.Fatalf("resourcesGathered payload wrong: %+v", gathered)
	}

	// Cooldown: same turn, second gather is rejected.
	if res := rm.Gather(worker.ID); res.Success {
		t.Fatalf("cooldown not enforced")
	}
}

func TestGather_Rejections(t *testing.T) {
	s, _ := newTestState(t)
	rm := s.Resources()

	if res := rm.Gather("U9999"); res.Success || res.Reason == "" {
		t.Fatalf("unknown unit gather: %+v", res)
	}

	heavy := placeUnit(t, s, UnitHeavy, 1, 7, 6)
	if res := rm.Gather(heavy.ID); res.Success {
		t.Fatalf("unit without gather ability gathered")
	}

	lonely := placeUnit(t, s, UnitWorker, 1, 2, 2) // nowhere near a node
	if res := rm.Gather(lonely.ID); res.Success {
		t.Fatalf("gather with no node in range succeeded")
	}

	spent := placeUnit(t, s, UnitWorker, 1, 6, 7)
	spent.ActionsUsed = spent.MaxActions
	if res := rm.Gather(spent.ID); res.Success {
		t.Fatalf("gather with no actions left succeeded")
	}

	s.CurrentPhase = PhaseAction
	ready := placeUnit(t, s, UnitWorker, 1, 5, 6)
	if res := rm.Gather(ready.ID); res.Success {
		t.Fatalf("gather outside resource phase succeeded")
	}
}

func TestGather_LowNodeYieldsRemainder(t *testing.T) {
	s, _ := newTestState(t)
	rm := s.Resources()
	rm.Nodes()[0].Value = 3 // below the standard gather amount
	worker := placeUnit(t, s, UnitWorker, 1, 7, 6)

	res := rm.Gather(worker.ID)
	if !res.Success || res.Amount != 3 {
		t.Fatalf("partial gather wrong: %+v", res)
	}
	if rm.Nodes()[0].Value != 0 {
		t.Fatalf("node not emptied: %d", rm.Nodes()[0].Value)
	}
	if s.Player(1).ResourcesGathered != 3 {
		t.Fatalf("credited %d, want the 3 actually taken", s.Player(1).ResourcesGathered)
	}
}

func TestGather_DepletedNodesThenRegenerate(t *testing.T) {
	s, bus := newTestState(t)
	rm := s.Resources()
	worker := placeUnit(t, s, UnitWorker, 1, 7, 6)

	for _, n := range rm.Nodes() {
		n.Value = 0
	}
	if res := rm.Gather(worker.ID); res.Success {
		t.Fatalf("gather from fully depleted map succeeded")
	}

	regens := countEvents(bus, EventResourceNodeRegen)
	total := rm.Regenerate()
	if total != 5*len(rm.Nodes()) {
		t.Fatalf("regenerated %d, want %d", total, 5*len(rm.Nodes()))
	}
	if *regens != len(rm.Nodes()) {
		t.Fatalf("regen events = %d, want one per node", *regens)
	}
	for _, n := range rm.Nodes() {
		if n.Value != 5 {
			t.Fatalf("node %s = %d, want 5", n.ID, n.Value)
		}
	}
}

func TestRegenerate_CapsAtMaxAndSkipsFullNodes(t *testing.T) {
	s, bus := newTestState(t)
	rm := s.Resources()
	rm.Nodes()[0].Value = 98 // 2 short of the cap

	regens := countEvents(bus, EventResourceNodeRegen)
	total := rm.Regenerate()

	if rm.Nodes()[0].Value != 100 {
		t.Fatalf("node overflowed cap: %d", rm.Nodes()[0].Value)
	}
	if total != 2 {
		t.Fatalf("total regenerated = %d, want 2", total)
	}
	if *regens != 1 {
		t.Fatalf("full nodes must not emit regen events, got %d", *regens)
	}
}

func TestGather_FirstNodeInStoredOrderWins(t *testing.T) {
	s, _ := newTestState(t)
	rm := s.Resources()

	// Put a worker adjacent to both N1 (6,6) and a hand-moved N2.
	rm.Nodes()[1].Pos = Vec2i{X: 8, Y: 6}
	worker := placeUnit(t, s, UnitWorker, 1, 7, 6)

	if res := rm.Gather(worker.ID); !res.Success {
		t.Fatalf("gather failed: %+v", res)
	}
	if rm.Nodes()[0].Value != 95 || rm.Nodes()[1].Value != 100 {
		t.Fatalf("tie-break must take the first stored node: n1=%d n2=%d",
			rm.Nodes()[0].Value, rm.Nodes()[1].Value)
	}
}

func TestResourceAnalytics(t *testing.T) {
	s, _ := newTestState(t)
	rm := s.Resources()
	placeUnit(t, s, UnitWorker, 1, 7, 6)
	placeUnit(t, s, UnitWorker, 1, 11, 6) // adjacent to node (12,6)
	placeUnit(t, s, UnitHeavy, 1, 5, 6)   // no gather ability, ignored

	if got := rm.TotalAvailable(); got != 900 {
		t.Fatalf("TotalAvailable = %d, want 900", got)
	}
	if got := rm.GatheringPotential(1); got != 10 {
		t.Fatalf("GatheringPotential = %d, want 10", got)
	}
	if got := rm.GatheringPotential(2); got != 0 {
		t.Fatalf("player 2 potential = %d, want 0", got)
	}

	income, bonus := rm.PlayerIncome(1)
	if bonus != 4 || income != 14 {
		t.Fatalf("income=%d bonus=%d, want 14/4", income, bonus)
	}

	st := rm.Stats()
	if st.TotalCapacity != 900 || st.DepletedNodes != 0 || len(st.NodeValues) != 9 {
		t.Fatalf("stats wrong: %+v", st)
	}

	positions := rm.OptimalGatheringPositions()
	if len(positions) == 0 {
		t.Fatalf("no gathering positions on a fresh board")
	}
	for _, pos := range positions {
		if !s.IsPositionEmpty(pos.X, pos.Y) {
			t.Fatalf("position %v is not empty", pos)
		}
	}
}
