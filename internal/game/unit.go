package game

// Unit archetype names. Stats come from the rules table; these are the keys.
const (
	UnitWorker   = "worker"
	UnitScout    = "scout"
	UnitInfantry = "infantry"
	UnitHeavy    = "heavy"
)

// Unit abilities.
const (
	AbilityGather = "gather"
	AbilityBuild  = "build"
	AbilityAttack = "attack"
	AbilityScout  = "scout"
)

type Unit struct {
	ID       string
	Type     string
	PlayerID int
	Pos      Vec2i

	Health    int
	MaxHealth int

	// MaxActions is derived from the type's movement stat; every discrete
	// action (one movement step, one attack, one gather) costs 1.
	ActionsUsed int
	MaxActions  int

	Cost      int
	Abilities map[string]bool
}

func (u *Unit) CanAct() bool {
	return u.ActionsUsed < u.MaxActions
}

func (u *Unit) ActionsLeft() int {
	return u.MaxActions - u.ActionsUsed
}

func (u *Unit) HasAbility(name string) bool {
	return u.Abilities[name]
}

// applyDamage floors health at 0 and reports whether the unit was destroyed
// by this hit.
func (u *Unit) applyDamage(amount int) bool {
	u.Health -= amount
	if u.Health <= 0 {
		u.Health = 0
		return true
	}
	return false
}
