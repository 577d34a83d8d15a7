package game

// CreateUnit validates and performs unit construction for playerID at (x,y).
// It returns nil, with no state change, if the type is unknown, the game
// is over, the cell is off-board, occupied, or outside the caller's own base
// radius, or the player cannot afford the cost. On success the cost is
// deducted, the unit is registered everywhere it must be (units map, owner
// set, board), and unitCreated is emitted.
func (s *State) CreateUnit(unitType string, playerID, x, y int) *Unit {
	if s.Status == StatusEnded {
		return nil
	}
	stats, ok := s.rules.Units[unitType]
	if !ok {
		return nil
	}
	p := s.players[playerID]
	if p == nil {
		return nil
	}
	if !s.IsPositionEmpty(x, y) {
		return nil
	}
	if !s.IsWithinBaseRadius(playerID, x, y) {
		return nil
	}
	if p.Energy < stats.Cost {
		return nil
	}

	abilities := make(map[string]bool, len(stats.Abilities))
	for _, a := range stats.Abilities {
		abilities[a] = true
	}
	u := &Unit{
		ID:         s.newUnitID(),
		Type:       unitType,
		PlayerID:   playerID,
		Pos:        Vec2i{X: x, Y: y},
		Health:     stats.MaxHealth,
		MaxHealth:  stats.MaxHealth,
		MaxActions: stats.Movement,
		Cost:       stats.Cost,
		Abilities:  abilities,
	}

	p.Energy -= stats.Cost
	s.units[u.ID] = u
	p.ownUnit(u.ID)
	s.board.set(x, y, u.ID)

	s.emit(EventUnitCreated, UnitCreated{
		UnitID:   u.ID,
		PlayerID: playerID,
		UnitType: unitType,
		Pos:      u.Pos,
	})
	return u
}

// RemoveUnit takes a unit off the board and out of every owning collection,
// emits unitRemoved, and always runs a victory check: removing the last
// unit can end the game by elimination.
func (s *State) RemoveUnit(unitID string) bool {
	u := s.units[unitID]
	if u == nil {
		return false
	}

	s.board.clear(u.Pos.X, u.Pos.Y)
	delete(s.units, unitID)
	if p := s.players[u.PlayerID]; p != nil {
		p.disownUnit(unitID)
	}
	s.res.clearCooldown(unitID)

	s.emit(EventUnitRemoved, UnitRemoved{UnitID: unitID, PlayerID: u.PlayerID})
	s.CheckVictoryCondition()
	return true
}
