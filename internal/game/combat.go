package game

// AttackTarget is one adjacent enemy cell, annotated with the damage the
// attacker would deal there.
type AttackTarget struct {
	Pos        Vec2i  `json:"pos"`
	TargetID   string `json:"targetId"`
	TargetType string `json:"targetType"`
	Damage     int    `json:"damage"`
}

const attackRange = 1 // Chebyshev: all 8 neighbors

// CanUnitAttack reports whether attackerID could attack the cell (x,y): the
// cell must hold an enemy unit or a live enemy base within attack range, and
// the attacker must still have an action available.
func (s *State) CanUnitAttack(attackerID string, x, y int) bool {
	if s.Status == StatusEnded {
		return false
	}
	a := s.units[attackerID]
	if a == nil || !a.CanAct() {
		return false
	}
	if Chebyshev(a.Pos, Vec2i{X: x, Y: y}) > attackRange {
		return false
	}
	if t := s.UnitAt(x, y); t != nil {
		return t.PlayerID != a.PlayerID
	}
	if b := s.BaseAt(x, y); b != nil && !b.IsDestroyed {
		return b.PlayerID != a.PlayerID
	}
	return false
}

// AttackUnit resolves an attack against the cell (x,y). Damage is fixed per
// attacker type, so the same matchup always resolves identically. The
// attacker spends one action. A unit reduced to 0 health is removed (which
// runs its own victory check); a base reduced to 0 is destroyed permanently
// and victory is checked explicitly.
func (s *State) AttackUnit(attackerID string, x, y int) bool {
	if !s.CanUnitAttack(attackerID, x, y) {
		return false
	}
	a := s.units[attackerID]
	damage := s.rules.DamageFor(a.Type)

	if t := s.UnitAt(x, y); t != nil {
		destroyed := t.applyDamage(damage)
		a.ActionsUsed++
		s.emit(EventUnitAttacked, UnitAttacked{
			AttackerID:   attackerID,
			TargetID:     t.ID,
			TargetType:   "unit",
			Damage:       damage,
			TargetHealth: t.Health,
			Destroyed:    destroyed,
		})
		if destroyed {
			s.RemoveUnit(t.ID)
		}
		return true
	}

	b := s.BaseAt(x, y)
	destroyed := b.applyDamage(damage)
	a.ActionsUsed++
	s.emit(EventUnitAttacked, UnitAttacked{
		AttackerID:   attackerID,
		TargetID:     b.ID,
		TargetType:   "base",
		Damage:       damage,
		TargetHealth: b.Health,
		Destroyed:    destroyed,
	})
	if destroyed {
		b.IsDestroyed = true
		s.board.clear(b.Pos.X, b.Pos.Y)
		s.emit(EventBaseDestroyed, BaseDestroyed{BaseID: b.ID, PlayerID: b.PlayerID})
		s.CheckVictoryCondition()
	}
	return true
}

// ValidAttackTargets lists every adjacent enemy cell the attacker could hit,
// or nothing if the attacker cannot act.
func (s *State) ValidAttackTargets(attackerID string) []AttackTarget {
	a := s.units[attackerID]
	if a == nil || !a.CanAct() {
		return nil
	}
	damage := s.rules.DamageFor(a.Type)

	out := []AttackTarget{}
	for dy := -attackRange; dy <= attackRange; dy++ {
		for dx := -attackRange; dx <= attackRange; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			x, y := a.Pos.X+dx, a.Pos.Y+dy
			if t := s.UnitAt(x, y); t != nil && t.PlayerID != a.PlayerID {
				out = append(out, AttackTarget{Pos: Vec2i{X: x, Y: y}, TargetID: t.ID, TargetType: "unit", Damage: damage})
				continue
			}
			if b := s.BaseAt(x, y); b != nil && !b.IsDestroyed && b.PlayerID != a.PlayerID {
				out = append(out, AttackTarget{Pos: Vec2i{X: x, Y: y}, TargetID: b.ID, TargetType: "base", Damage: damage})
			}
		}
	}
	return out
}
