package game

// TurnManager drives the phase state machine: resource → action → build,
// then end of turn. It also owns the advisory countdown timer. Time is fed
// in from outside via TickTimer (once per second), so the whole machine
// stays deterministic and testable without a wall clock.
type TurnManager struct {
	s *State

	timeRemaining int
	totalTime     int

	// Seconds until the action phase auto-advances to build after the
	// player has spent every action. 0 means unarmed.
	autoAdvanceIn int

	// clock counts TickTimer calls; lastForceEnd debounces a double-fired
	// "end turn" control within the same second.
	clock        int
	lastForceEnd int

	ending    bool // in-progress guard for the end-of-turn transition
	destroyed bool
}

func NewTurnManager(s *State) *TurnManager {
	// The timer starts full so a manager attached to a resumed game does
	// not expire on its first tick; StartTurn resets it anyway.
	return &TurnManager{
		s:             s,
		timeRemaining: s.rules.TurnSeconds,
		totalTime:     s.rules.TurnSeconds,
		lastForceEnd:  -1,
	}
}

func (m *TurnManager) TimeRemaining() int { return m.timeRemaining }
func (m *TurnManager) TotalTime() int     { return m.totalTime }

// StartTurn opens the active player's turn: resource phase, fresh timer,
// node regeneration, then the automatic income grant.
func (m *TurnManager) StartTurn() {
	if m.destroyed || m.s == nil || m.s.Status == StatusEnded {
		return
	}
	s := m.s
	if s.Status == StatusReady {
		s.Status = StatusPlaying
	}
	s.CurrentPhase = PhaseResource
	m.timeRemaining = m.totalTime
	m.autoAdvanceIn = 0

	s.emit(EventTurnStarted, TurnStarted{
		Player:     s.CurrentPlayer,
		TurnNumber: s.TurnNumber,
		Phase:      string(PhaseResource),
	})

	s.res.Regenerate()

	// Income is plain energy; it never counts toward the gathered total
	// that the resource victory condition reads.
	income, bonus := s.res.PlayerIncome(s.CurrentPlayer)
	s.players[s.CurrentPlayer].Energy += income
	s.emit(EventResourcePhaseComplete, ResourcePhaseComplete{
		Player:        s.CurrentPlayer,
		EnergyGained:  income,
		ResourceBonus: bonus,
	})
}

// NextPhase advances resource → action → build; advancing past build ends
// the turn.
func (m *TurnManager) NextPhase() bool {
	if m.destroyed || m.s == nil || m.s.Status == StatusEnded {
		return false
	}
	s := m.s
	switch s.CurrentPhase {
	case PhaseResource:
		s.CurrentPhase = PhaseAction
		s.emit(EventPhaseChanged, PhaseChanged{Phase: string(PhaseAction), Player: s.CurrentPlayer})
		s.emit(EventActionPhaseStarted, PhaseChanged{Phase: string(PhaseAction), Player: s.CurrentPlayer})
		return true
	case PhaseAction:
		s.CurrentPhase = PhaseBuild
		m.autoAdvanceIn = 0
		s.emit(EventPhaseChanged, PhaseChanged{Phase: string(PhaseBuild), Player: s.CurrentPlayer})
		s.emit(EventBuildPhaseStarted, PhaseChanged{Phase: string(PhaseBuild), Player: s.CurrentPlayer})
		return true
	default:
		return m.endTurn(false)
	}
}

// UsePlayerAction spends one of the active player's turn actions. When the
// last one goes while the action phase is open, the phase auto-advances to
// build after a short delay. That is an ergonomic shortcut, not a rule.
func (m *TurnManager) UsePlayerAction() bool {
	if m.destroyed || m.s == nil || m.s.Status == StatusEnded {
		return false
	}
	s := m.s
	p := s.players[s.CurrentPlayer]
	if p.ActionsRemaining <= 0 {
		return false
	}
	p.ActionsRemaining--
	s.emit(EventActionUsed, ActionUsed{Player: s.CurrentPlayer, ActionsRemaining: p.ActionsRemaining})
	if p.ActionsRemaining == 0 && s.CurrentPhase == PhaseAction {
		m.autoAdvanceIn = s.rules.AutoAdvanceDelaySeconds
	}
	return true
}

// TickTimer advances the turn timer by one second. The session loop calls
// it from a 1 Hz ticker; tests call it directly. Expiry force-ends the
// turn.
func (m *TurnManager) TickTimer() {
	if m.destroyed || m.s == nil || m.s.Status != StatusPlaying {
		return
	}
	m.clock++
	s := m.s

	if m.timeRemaining > 0 {
		m.timeRemaining--
	}
	s.emit(EventTurnTimerTick, TurnTimerTick{TimeRemaining: m.timeRemaining, TotalTime: m.totalTime})

	if m.autoAdvanceIn > 0 && s.CurrentPhase == PhaseAction {
		m.autoAdvanceIn--
		if m.autoAdvanceIn == 0 {
			m.NextPhase()
			return
		}
	}

	if m.timeRemaining == 0 {
		s.emit(EventTurnTimeExpired, TurnTimeExpired{Player: s.CurrentPlayer})
		m.forceEnd()
	}
}

// ForceEndTurn unconditionally performs the end-of-turn transition: timer
// expiry, surrender flows, and the UI's end-turn control all land here.
// Two calls within the same second are treated as one (a double-fired
// control), and a call re-entering from an event handler is rejected by the
// in-progress guard.
func (m *TurnManager) ForceEndTurn() bool {
	return m.forceEnd()
}

func (m *TurnManager) forceEnd() bool {
	if m.lastForceEnd == m.clock {
		return false
	}
	if !m.endTurn(true) {
		return false
	}
	m.lastForceEnd = m.clock
	return true
}

// endTurn switches the active player, resets the incoming player's budgets,
// and starts their turn. The in-progress flag is cleared on every exit path
// so a panic in an event handler cannot wedge the turn machine shut.
func (m *TurnManager) endTurn(forced bool) bool {
	if m.ending {
		return false
	}
	m.ending = true
	defer func() { m.ending = false }()

	if m.destroyed || m.s == nil || m.s.Status == StatusEnded {
		return false
	}
	s := m.s

	prev := s.CurrentPlayer
	next := opponentOf(prev)

	s.res.clearCooldownsFor(prev)

	s.players[prev].IsActive = false
	s.players[next].IsActive = true
	s.CurrentPlayer = next

	np := s.players[next]
	np.ActionsRemaining = s.rules.PlayerActionsPerTurn
	for id := range np.Units {
		if u := s.units[id]; u != nil {
			u.ActionsUsed = 0
		}
	}

	if next == 1 {
		s.TurnNumber++
	}

	payload := TurnEnded{PreviousPlayer: prev, NextPlayer: next, TurnNumber: s.TurnNumber}
	if forced {
		s.emit(EventTurnForcedEnd, payload)
	}
	s.emit(EventTurnEnded, payload)

	s.CheckVictoryCondition()
	if s.Status == StatusEnded {
		return true
	}

	m.StartTurn()
	return true
}

// Destroy stops the manager and releases the state reference. Idempotent.
func (m *TurnManager) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	m.s = nil
}
