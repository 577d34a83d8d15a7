package game

// ResourceManager owns the fixed node set and the per-unit gathering
// cooldown. The cooldown is turn-based: a unit gathers at most once per its
// owner's turn, and the marks clear at that turn's end, so resource income
// is fully deterministic.
type ResourceManager struct {
	s     *State
	nodes []*ResourceNode

	gatheredThisTurn map[string]bool
}

// GatherResult reports a gather attempt. Reason is a human-readable string
// the UI shows verbatim on failure.
type GatherResult struct {
	Success bool   `json:"success"`
	Amount  int    `json:"amount"`
	Reason  string `json:"reason,omitempty"`
}

// ResourceStats is an analytics snapshot of the node set.
type ResourceStats struct {
	TotalAvailable int            `json:"totalAvailable"`
	TotalCapacity  int            `json:"totalCapacity"`
	DepletedNodes  int            `json:"depletedNodes"`
	NodeValues     map[string]int `json:"nodeValues"`
}

const gatherRange = 1 // Chebyshev: a unit harvests from any of the 8 neighbors

func (m *ResourceManager) Nodes() []*ResourceNode { return m.nodes }

// Gather lets unitID harvest from the first non-empty node (in stored node
// order) adjacent to it. That tie-break is arbitrary but must stay exactly
// as-is: reproducibility of a match record depends on it. Requires the
// resource phase, the gather ability, a remaining unit action, and no
// cooldown for this turn.
func (m *ResourceManager) Gather(unitID string) GatherResult {
	s := m.s
	if s.Status == StatusEnded {
		return GatherResult{Reason: "the game is over"}
	}
	if s.CurrentPhase != PhaseResource {
		return GatherResult{Reason: "gathering is only allowed in the resource phase"}
	}
	u := s.units[unitID]
	if u == nil {
		return GatherResult{Reason: "unknown unit"}
	}
	if !u.HasAbility(AbilityGather) {
		return GatherResult{Reason: "unit cannot gather"}
	}
	if !u.CanAct() {
		return GatherResult{Reason: "unit has no actions left"}
	}
	if m.gatheredThisTurn[unitID] {
		return GatherResult{Reason: "unit already gathered this turn"}
	}

	var node *ResourceNode
	for _, n := range m.nodes {
		if n.Value > 0 && Chebyshev(u.Pos, n.Pos) <= gatherRange {
			node = n
			break
		}
	}
	if node == nil {
		return GatherResult{Reason: "no resources in range"}
	}

	amount := node.deplete(s.rules.GatherAmount)
	s.players[u.PlayerID].addResources(amount)
	m.gatheredThisTurn[unitID] = true
	u.ActionsUsed++

	s.emit(EventResourcesGathered, ResourcesGathered{
		UnitID:   unitID,
		PlayerID: u.PlayerID,
		Amount:   amount,
	})
	return GatherResult{Success: true, Amount: amount}
}

// Regenerate tops every node up by its regeneration rate, capped at max.
// Emits one event per node that actually changed and returns the sum of all
// additions. Called once per turn when the resource phase opens.
func (m *ResourceManager) Regenerate() int {
	total := 0
	for _, n := range m.nodes {
		added := n.regenerate()
		if added == 0 {
			continue
		}
		total += added
		m.s.emit(EventResourceNodeRegen, ResourceNodeRegenerated{
			NodeID:            n.ID,
			RegeneratedAmount: added,
		})
	}
	return total
}

// OnCooldown reports whether unitID has already gathered this turn.
func (m *ResourceManager) OnCooldown(unitID string) bool {
	return m.gatheredThisTurn[unitID]
}

func (m *ResourceManager) clearCooldown(unitID string) {
	delete(m.gatheredThisTurn, unitID)
}

// clearCooldownsFor drops the gather marks of playerID's units. Runs at the
// end of that player's turn.
func (m *ResourceManager) clearCooldownsFor(playerID int) {
	for id := range m.gatheredThisTurn {
		if u := m.s.units[id]; u == nil || u.PlayerID == playerID {
			delete(m.gatheredThisTurn, id)
		}
	}
}

// TotalAvailable sums the value currently sitting in every node.
func (m *ResourceManager) TotalAvailable() int {
	total := 0
	for _, n := range m.nodes {
		total += n.Value
	}
	return total
}

// GatheringPotential is how much playerID could harvest this turn if every
// eligible unit gathered once.
func (m *ResourceManager) GatheringPotential(playerID int) int {
	total := 0
	for _, u := range m.unitsNearResources(playerID) {
		if u.CanAct() && !m.gatheredThisTurn[u.ID] {
			total += m.s.rules.GatherAmount
		}
	}
	return total
}

// OptimalGatheringPositions lists the empty cells adjacent to non-empty
// nodes, in node order: the cells a worker wants to stand on.
func (m *ResourceManager) OptimalGatheringPositions() []Vec2i {
	seen := map[Vec2i]bool{}
	out := []Vec2i{}
	for _, n := range m.nodes {
		if n.Value == 0 {
			continue
		}
		for dy := -gatherRange; dy <= gatherRange; dy++ {
			for dx := -gatherRange; dx <= gatherRange; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				pos := Vec2i{X: n.Pos.X + dx, Y: n.Pos.Y + dy}
				if seen[pos] || !m.s.IsPositionEmpty(pos.X, pos.Y) {
					continue
				}
				seen[pos] = true
				out = append(out, pos)
			}
		}
	}
	return out
}

// PlayerIncome is the energy the player receives when their resource phase
// opens: the flat base income plus a bonus per gather-capable unit standing
// next to a non-empty node.
func (m *ResourceManager) PlayerIncome(playerID int) (total, bonus int) {
	bonus = m.s.rules.WorkerAdjacencyBonus * len(m.unitsNearResources(playerID))
	return m.s.rules.BaseIncome + bonus, bonus
}

// Stats folds the node set into an analytics snapshot.
func (m *ResourceManager) Stats() ResourceStats {
	st := ResourceStats{NodeValues: map[string]int{}}
	for _, n := range m.nodes {
		st.TotalAvailable += n.Value
		st.TotalCapacity += n.MaxValue
		if n.Value == 0 {
			st.DepletedNodes++
		}
		st.NodeValues[n.ID] = n.Value
	}
	return st
}

func (m *ResourceManager) unitsNearResources(playerID int) []*Unit {
	out := []*Unit{}
	for _, n := range m.nodes {
		if n.Value == 0 {
			continue
		}
		for dy := -gatherRange; dy <= gatherRange; dy++ {
			for dx := -gatherRange; dx <= gatherRange; dx++ {
				u := m.s.UnitAt(n.Pos.X+dx, n.Pos.Y+dy)
				if u == nil || u.PlayerID != playerID || !u.HasAbility(AbilityGather) {
					continue
				}
				dup := false
				for _, seen := range out {
					if seen.ID == u.ID {
						dup = true
						break
					}
				}
				if !dup {
					out = append(out, u)
				}
			}
		}
	}
	return out
}
