package game

import (
	"fmt"

	"github.com/google/uuid"

	"gridtactics.dev/internal/events"
	"gridtactics.dev/internal/tuning"
)

type Status string

const (
	StatusReady   Status = "ready"
	StatusPlaying Status = "playing"
	StatusPaused  Status = "paused"
	StatusEnded   Status = "ended"
)

type Phase string

const (
	PhaseResource Phase = "resource"
	PhaseAction   Phase = "action"
	PhaseBuild    Phase = "build"
)

// State is the authoritative game aggregate. It is single-threaded: all
// mutation must come from one goroutine (see internal/session for the
// serializing owner). Every mutating method validates all preconditions
// before touching anything, so a rejected call leaves the aggregate
// unchanged.
type State struct {
	GameID string

	Status        Status
	CurrentPlayer int
	CurrentPhase  Phase
	TurnNumber    int
	Winner        int // 0 until decided; stays 0 when the game ends in a draw

	rules tuning.Rules
	bus   *events.Bus

	players map[int]*Player
	units   map[string]*Unit
	bases   map[string]*Base
	board   *Board

	res *ResourceManager

	nextUnitNum uint64
}

// New builds a fresh two-player game: both players at starting energy, one
// live base each, the fixed resource-node set, empty board elsewhere.
func New(rules tuning.Rules, bus *events.Bus) (*State, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	s := &State{
		GameID:        uuid.NewString(),
		Status:        StatusReady,
		CurrentPlayer: 1,
		CurrentPhase:  PhaseResource,
		TurnNumber:    1,
		rules:         rules,
		bus:           bus,
		players:       map[int]*Player{},
		units:         map[string]*Unit{},
		bases:         map[string]*Base{},
		board:         newBoard(rules.BoardWidth, rules.BoardHeight),
	}

	for id := 1; id <= 2; id++ {
		p := newPlayer(id, fmt.Sprintf("Player %d", id), rules.StartingEnergy, rules.PlayerActionsPerTurn)
		p.IsActive = id == 1
		s.players[id] = p

		pos := Vec2i{X: rules.BasePositions[id-1].X, Y: rules.BasePositions[id-1].Y}
		b := &Base{
			ID:        fmt.Sprintf("B%d", id),
			PlayerID:  id,
			Pos:       pos,
			Health:    rules.BaseHealth,
			MaxHealth: rules.BaseHealth,
		}
		s.bases[b.ID] = b
		s.board.set(pos.X, pos.Y, b.ID)
	}

	nodes := make([]*ResourceNode, 0, len(rules.NodePositions))
	for i, p := range rules.NodePositions {
		nodes = append(nodes, &ResourceNode{
			ID:               fmt.Sprintf("N%d", i+1),
			Pos:              Vec2i{X: p.X, Y: p.Y},
			Value:            rules.NodeMaxValue,
			MaxValue:         rules.NodeMaxValue,
			RegenerationRate: rules.NodeRegeneration,
		})
	}
	s.res = &ResourceManager{s: s, nodes: nodes, gatheredThisTurn: map[string]bool{}}

	return s, nil
}

func (s *State) Rules() tuning.Rules         { return s.rules }
func (s *State) Board() *Board               { return s.board }
func (s *State) Resources() *ResourceManager { return s.res }
func (s *State) Player(id int) *Player       { return s.players[id] }
func (s *State) Unit(id string) *Unit        { return s.units[id] }
func (s *State) BaseByID(id string) *Base    { return s.bases[id] }
func (s *State) UnitCount() int              { return len(s.units) }

func (s *State) emit(event string, payload any) {
	if s.bus != nil {
		s.bus.Emit(event, payload)
	}
}

// IsValidPosition reports whether (x,y) is on the board.
func (s *State) IsValidPosition(x, y int) bool {
	return s.board.InBounds(x, y)
}

// IsPositionEmpty reports whether (x,y) is on the board and unoccupied.
func (s *State) IsPositionEmpty(x, y int) bool {
	return s.board.InBounds(x, y) && s.board.At(x, y) == ""
}

// UnitAt returns the unit occupying (x,y), or nil.
func (s *State) UnitAt(x, y int) *Unit {
	return s.units[s.board.At(x, y)]
}

// BaseAt returns the base occupying (x,y), or nil.
func (s *State) BaseAt(x, y int) *Base {
	return s.bases[s.board.At(x, y)]
}

// EntityAt returns the id occupying (x,y), or "" for an empty cell.
func (s *State) EntityAt(x, y int) string {
	return s.board.At(x, y)
}

// BaseOf returns playerID's base regardless of destruction state.
func (s *State) BaseOf(playerID int) *Base {
	return s.bases[fmt.Sprintf("B%d", playerID)]
}

// IsWithinBaseRadius reports whether (x,y) lies within the unit-placement
// radius (Manhattan) of playerID's live base.
func (s *State) IsWithinBaseRadius(playerID, x, y int) bool {
	b := s.BaseOf(playerID)
	if b == nil || b.IsDestroyed {
		return false
	}
	return Manhattan(b.Pos, Vec2i{X: x, Y: y}) <= s.rules.BasePlacementRadius
}

func (s *State) newUnitID() string {
	s.nextUnitNum++
	return fmt.Sprintf("U%04d", s.nextUnitNum)
}

// Pause suspends a running game (the turn timer stops ticking).
func (s *State) Pause() bool {
	if s.Status != StatusPlaying {
		return false
	}
	s.Status = StatusPaused
	return true
}

// Resume continues a paused game.
func (s *State) Resume() bool {
	if s.Status != StatusPaused {
		return false
	}
	s.Status = StatusPlaying
	return true
}
