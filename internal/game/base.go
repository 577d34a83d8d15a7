package game

// Base is a player's headquarters. Exactly one per player at game start;
// destruction is permanent and is a primary victory trigger.
type Base struct {
	ID       string
	PlayerID int
	Pos      Vec2i

	Health      int
	MaxHealth   int
	IsDestroyed bool
}

func (b *Base) applyDamage(amount int) bool {
	if b.IsDestroyed {
		return false
	}
	b.Health -= amount
	if b.Health <= 0 {
		b.Health = 0
		return true
	}
	return false
}
