package game

// CheckVictoryCondition runs after every unit removal, base destruction, and
// at the end of every turn. Evaluation order: base destruction, then
// resource total, then elimination. Once the game has ended the check is a
// no-op, so late or duplicate checks can never change the recorded winner.
func (s *State) CheckVictoryCondition() {
	if s.Status == StatusEnded {
		return
	}

	b1, b2 := s.BaseOf(1), s.BaseOf(2)
	s.emit(EventVictoryCheck, VictoryCheck{
		Player1BaseHealth: b1.Health,
		Player2BaseHealth: b2.Health,
		GameStatus:        string(s.Status),
		TurnNumber:        s.TurnNumber,
	})

	switch {
	case b1.IsDestroyed && b2.IsDestroyed:
		s.EndGame(0)
		return
	case b1.IsDestroyed:
		s.EndGame(2)
		return
	case b2.IsDestroyed:
		s.EndGame(1)
		return
	}

	for id := 1; id <= 2; id++ {
		if s.players[id].ResourcesGathered >= s.rules.ResourceVictoryAmount {
			s.EndGame(id)
			return
		}
	}

	// Elimination only arms after the opening turns so a slow build order
	// is not an instant loss.
	if s.TurnNumber > s.rules.EliminationAfterTurn {
		zero1 := s.players[1].UnitCount() == 0
		zero2 := s.players[2].UnitCount() == 0
		switch {
		case zero1 && zero2:
			s.EndGame(0)
		case zero1:
			s.EndGame(2)
		case zero2:
			s.EndGame(1)
		}
	}
}

// EndGame records the result, 0 meaning a draw. Idempotent: once the game
// has ended, further calls change nothing.
func (s *State) EndGame(winner int) bool {
	if s.Status == StatusEnded {
		return false
	}
	s.Status = StatusEnded
	s.Winner = winner
	for _, p := range s.players {
		p.IsActive = false
	}
	s.emit(EventGameEnded, GameEnded{Winner: winner})
	return true
}

// PlayerSurrender ends the game in the opponent's favor. No-op on an
// already-ended game.
func (s *State) PlayerSurrender(playerID int) bool {
	if s.Status == StatusEnded {
		return false
	}
	if s.players[playerID] == nil {
		return false
	}
	winner := opponentOf(playerID)
	s.emit(EventPlayerSurrendered, PlayerSurrendered{SurrenderedPlayer: playerID, Winner: winner})
	return s.EndGame(winner)
}

// DeclareDraw ends the game with no winner. No-op on an already-ended game.
func (s *State) DeclareDraw() bool {
	if s.Status == StatusEnded {
		return false
	}
	s.emit(EventDrawDeclared, DrawDeclared{TurnNumber: s.TurnNumber})
	return s.EndGame(0)
}
