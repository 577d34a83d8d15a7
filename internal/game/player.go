package game

// Player is created once at game start and lives for the whole match.
type Player struct {
	ID   int
	Name string

	Energy            int
	ResourcesGathered int // monotonically non-decreasing
	ActionsRemaining  int
	IsActive          bool

	// Owned unit ids only; the units map holds the single copy of each unit.
	Units map[string]struct{}
}

func newPlayer(id int, name string, energy, actions int) *Player {
	return &Player{
		ID:               id,
		Name:             name,
		Energy:           energy,
		ActionsRemaining: actions,
		Units:            map[string]struct{}{},
	}
}

func (p *Player) ownUnit(id string)    { p.Units[id] = struct{}{} }
func (p *Player) disownUnit(id string) { delete(p.Units, id) }
func (p *Player) UnitCount() int       { return len(p.Units) }
func (p *Player) OwnsUnit(id string) bool {
	_, ok := p.Units[id]
	return ok
}

// addResources credits gathered energy. Gathered totals only ever grow.
func (p *Player) addResources(amount int) {
	p.Energy += amount
	p.ResourcesGathered += amount
}

func opponentOf(playerID int) int {
	if playerID == 1 {
		return 2
	}
	return 1
}
