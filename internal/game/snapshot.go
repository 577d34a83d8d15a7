package game

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"gridtactics.dev/internal/events"
	"gridtactics.dev/internal/snapshot"
	"gridtactics.dev/internal/tuning"
)

// BuildSave flattens the aggregate into the versioned save shape. Entity
// lists come out in a stable order so identical states produce identical
// files.
func (s *State) BuildSave() snapshot.SaveV1 {
	save := snapshot.SaveV1{
		Version:       snapshot.Version,
		GameID:        s.GameID,
		Status:        string(s.Status),
		CurrentPlayer: s.CurrentPlayer,
		CurrentPhase:  string(s.CurrentPhase),
		TurnNumber:    s.TurnNumber,
		Winner:        s.Winner,
	}

	for id := 1; id <= 2; id++ {
		p := s.players[id]
		save.Players = append(save.Players, snapshot.PlayerV1{
			ID:                p.ID,
			Name:              p.Name,
			Energy:            p.Energy,
			ResourcesGathered: p.ResourcesGathered,
			ActionsRemaining:  p.ActionsRemaining,
			IsActive:          p.IsActive,
		})
		b := s.BaseOf(id)
		save.Bases = append(save.Bases, snapshot.BaseV1{
			ID:          b.ID,
			PlayerID:    b.PlayerID,
			Pos:         [2]int{b.Pos.X, b.Pos.Y},
			Health:      b.Health,
			IsDestroyed: b.IsDestroyed,
		})
	}

	unitIDs := make([]string, 0, len(s.units))
	for id := range s.units {
		unitIDs = append(unitIDs, id)
	}
	sort.Strings(unitIDs)
	for _, id := range unitIDs {
		u := s.units[id]
		save.Units = append(save.Units, snapshot.UnitV1{
			ID:          u.ID,
			Type:        u.Type,
			PlayerID:    u.PlayerID,
			Pos:         [2]int{u.Pos.X, u.Pos.Y},
			Health:      u.Health,
			ActionsUsed: u.ActionsUsed,
		})
	}

	for _, n := range s.res.nodes {
		save.Nodes = append(save.Nodes, snapshot.NodeV1{
			ID:    n.ID,
			Pos:   [2]int{n.Pos.X, n.Pos.Y},
			Value: n.Value,
		})
	}

	cooldowns := make([]string, 0, len(s.res.gatheredThisTurn))
	for id := range s.res.gatheredThisTurn {
		cooldowns = append(cooldowns, id)
	}
	sort.Strings(cooldowns)
	save.GatherCooldowns = cooldowns

	return save
}

// Restore rebuilds a live aggregate from a save. The board is recomputed
// from entity positions, never copied from the file, so the board/entity
// invariant holds even for saves produced by a different version of the
// rules. Any conflict (two entities on one cell, off-board positions,
// unknown unit types) rejects the whole save.
func Restore(rules tuning.Rules, bus *events.Bus, save snapshot.SaveV1) (*State, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if save.Version != snapshot.Version {
		return nil, fmt.Errorf("unsupported save version %d", save.Version)
	}

	s := &State{
		GameID:        save.GameID,
		Status:        Status(save.Status),
		CurrentPlayer: save.CurrentPlayer,
		CurrentPhase:  Phase(save.CurrentPhase),
		TurnNumber:    save.TurnNumber,
		Winner:        save.Winner,
		rules:         rules,
		bus:           bus,
		players:       map[int]*Player{},
		units:         map[string]*Unit{},
		bases:         map[string]*Base{},
		board:         newBoard(rules.BoardWidth, rules.BoardHeight),
	}
	if s.GameID == "" {
		s.GameID = uuid.NewString()
	}

	for _, pv := range save.Players {
		p := newPlayer(pv.ID, pv.Name, pv.Energy, pv.ActionsRemaining)
		p.ResourcesGathered = pv.ResourcesGathered
		p.IsActive = pv.IsActive
		s.players[pv.ID] = p
	}
	for id := 1; id <= 2; id++ {
		if s.players[id] == nil {
			return nil, fmt.Errorf("save missing player %d", id)
		}
	}

	occupy := func(pos Vec2i, id string) error {
		if !s.board.InBounds(pos.X, pos.Y) {
			return fmt.Errorf("entity %s position (%d,%d) is off the board", id, pos.X, pos.Y)
		}
		if prev := s.board.At(pos.X, pos.Y); prev != "" {
			return fmt.Errorf("entities %s and %s both claim cell (%d,%d)", prev, id, pos.X, pos.Y)
		}
		s.board.set(pos.X, pos.Y, id)
		return nil
	}

	for _, bv := range save.Bases {
		b := &Base{
			ID:          bv.ID,
			PlayerID:    bv.PlayerID,
			Pos:         Vec2i{X: bv.Pos[0], Y: bv.Pos[1]},
			Health:      bv.Health,
			MaxHealth:   rules.BaseHealth,
			IsDestroyed: bv.IsDestroyed,
		}
		s.bases[b.ID] = b
		if !b.IsDestroyed {
			if err := occupy(b.Pos, b.ID); err != nil {
				return nil, err
			}
		}
	}
	for id := 1; id <= 2; id++ {
		if s.BaseOf(id) == nil {
			return nil, fmt.Errorf("save missing base for player %d", id)
		}
	}

	maxUnitNum := uint64(0)
	for _, uv := range save.Units {
		stats, ok := rules.Units[uv.Type]
		if !ok {
			return nil, fmt.Errorf("unit %s has unknown type %q", uv.ID, uv.Type)
		}
		p := s.players[uv.PlayerID]
		if p == nil {
			return nil, fmt.Errorf("unit %s owned by unknown player %d", uv.ID, uv.PlayerID)
		}
		abilities := make(map[string]bool, len(stats.Abilities))
		for _, a := range stats.Abilities {
			abilities[a] = true
		}
		u := &Unit{
			ID:          uv.ID,
			Type:        uv.Type,
			PlayerID:    uv.PlayerID,
			Pos:         Vec2i{X: uv.Pos[0], Y: uv.Pos[1]},
			Health:      uv.Health,
			MaxHealth:   stats.MaxHealth,
			ActionsUsed: uv.ActionsUsed,
			MaxActions:  stats.Movement,
			Cost:        stats.Cost,
			Abilities:   abilities,
		}
		if u.Health > u.MaxHealth {
			u.Health = u.MaxHealth
		}
		if _, dup := s.units[u.ID]; dup {
			return nil, fmt.Errorf("duplicate unit id %s", u.ID)
		}
		if err := occupy(u.Pos, u.ID); err != nil {
			return nil, err
		}
		s.units[u.ID] = u
		p.ownUnit(u.ID)

		if n, err := strconv.ParseUint(strings.TrimPrefix(u.ID, "U"), 10, 64); err == nil && n > maxUnitNum {
			maxUnitNum = n
		}
	}
	s.nextUnitNum = maxUnitNum

	nodes := make([]*ResourceNode, 0, len(save.Nodes))
	for _, nv := range save.Nodes {
		value := nv.Value
		if value > rules.NodeMaxValue {
			value = rules.NodeMaxValue
		}
		nodes = append(nodes, &ResourceNode{
			ID:               nv.ID,
			Pos:              Vec2i{X: nv.Pos[0], Y: nv.Pos[1]},
			Value:            value,
			MaxValue:         rules.NodeMaxValue,
			RegenerationRate: rules.NodeRegeneration,
		})
	}

	cooldowns := map[string]bool{}
	for _, id := range save.GatherCooldowns {
		if _, ok := s.units[id]; ok {
			cooldowns[id] = true
		}
	}
	s.res = &ResourceManager{s: s, nodes: nodes, gatheredThisTurn: cooldowns}

	return s, nil
}
