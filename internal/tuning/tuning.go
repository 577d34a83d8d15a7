package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules carries every tunable the engine reads. Default() is authoritative;
// rules.yaml overrides individual values for experiments but a missing file
// must never change gameplay.
type Rules struct {
	BoardWidth  int `yaml:"board_width"`
	BoardHeight int `yaml:"board_height"`

	StartingEnergy       int `yaml:"starting_energy"`
	PlayerActionsPerTurn int `yaml:"player_actions_per_turn"`

	BaseHealth          int        `yaml:"base_health"`
	BasePlacementRadius int        `yaml:"base_placement_radius"`
	BasePositions       [2]GridPos `yaml:"base_positions"`

	TurnSeconds             int `yaml:"turn_seconds"`
	AutoAdvanceDelaySeconds int `yaml:"auto_advance_delay_seconds"`

	BaseIncome           int `yaml:"base_income"`
	WorkerAdjacencyBonus int `yaml:"worker_adjacency_bonus"`

	GatherAmount     int       `yaml:"gather_amount"`
	NodeMaxValue     int       `yaml:"node_max_value"`
	NodeRegeneration int       `yaml:"node_regeneration"`
	NodePositions    []GridPos `yaml:"node_positions"`

	ResourceVictoryAmount int `yaml:"resource_victory_amount"`
	EliminationAfterTurn  int `yaml:"elimination_after_turn"`

	Units  map[string]UnitStats `yaml:"units"`
	Damage map[string]int       `yaml:"damage"`
}

type GridPos struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type UnitStats struct {
	Cost      int      `yaml:"cost"`
	MaxHealth int      `yaml:"max_health"`
	Attack    int      `yaml:"attack"`
	Movement  int      `yaml:"movement"`
	Abilities []string `yaml:"abilities"`
}

func Default() Rules {
	return Rules{
		BoardWidth:  25,
		BoardHeight: 25,

		StartingEnergy:       100,
		PlayerActionsPerTurn: 3,

		BaseHealth:          200,
		BasePlacementRadius: 3,
		BasePositions:       [2]GridPos{{X: 2, Y: 12}, {X: 22, Y: 12}},

		TurnSeconds:             120,
		AutoAdvanceDelaySeconds: 2,

		BaseIncome:           10,
		WorkerAdjacencyBonus: 2,

		GatherAmount:     5,
		NodeMaxValue:     100,
		NodeRegeneration: 5,
		NodePositions: []GridPos{
			{X: 6, Y: 6}, {X: 12, Y: 6}, {X: 18, Y: 6},
			{X: 6, Y: 12}, {X: 12, Y: 12}, {X: 18, Y: 12},
			{X: 6, Y: 18}, {X: 12, Y: 18}, {X: 18, Y: 18},
		},

		ResourceVictoryAmount: 500,
		EliminationAfterTurn:  5,

		Units: map[string]UnitStats{
			"worker":   {Cost: 10, MaxHealth: 10, Attack: 1, Movement: 2, Abilities: []string{"gather", "build"}},
			"scout":    {Cost: 15, MaxHealth: 8, Attack: 1, Movement: 4, Abilities: []string{"attack", "scout"}},
			"infantry": {Cost: 25, MaxHealth: 20, Attack: 2, Movement: 2, Abilities: []string{"attack"}},
			"heavy":    {Cost: 40, MaxHealth: 30, Attack: 3, Movement: 1, Abilities: []string{"attack"}},
		},
		Damage: map[string]int{
			"worker":   1,
			"scout":    1,
			"infantry": 2,
			"heavy":    3,
		},
	}
}

// Load reads a rules.yaml over the defaults. A missing path yields the
// defaults unchanged; a present but malformed file is an error.
func Load(path string) (Rules, error) {
	r := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return r, err
	}
	if err := yaml.Unmarshal(raw, &r); err != nil {
		return r, fmt.Errorf("rules.yaml: %w", err)
	}
	if err := r.Validate(); err != nil {
		return r, fmt.Errorf("rules.yaml: %w", err)
	}
	return r, nil
}

// Validate rejects rule sets the engine cannot run with.
func (r Rules) Validate() error {
	if r.BoardWidth <= 0 || r.BoardHeight <= 0 {
		return fmt.Errorf("board dimensions must be positive, got %dx%d", r.BoardWidth, r.BoardHeight)
	}
	if len(r.Units) == 0 {
		return fmt.Errorf("no unit types defined")
	}
	for name, u := range r.Units {
		if u.Cost < 0 || u.MaxHealth <= 0 || u.Movement <= 0 {
			return fmt.Errorf("unit %q has invalid stats", name)
		}
	}
	for i, p := range r.BasePositions {
		if p.X < 0 || p.X >= r.BoardWidth || p.Y < 0 || p.Y >= r.BoardHeight {
			return fmt.Errorf("base %d position out of bounds: (%d,%d)", i+1, p.X, p.Y)
		}
	}
	for _, p := range r.NodePositions {
		if p.X < 0 || p.X >= r.BoardWidth || p.Y < 0 || p.Y >= r.BoardHeight {
			return fmt.Errorf("resource node out of bounds: (%d,%d)", p.X, p.Y)
		}
	}
	return nil
}

// DamageFor returns the attack damage dealt by a unit type. Types missing
// from the table deal 1.
func (r Rules) DamageFor(unitType string) int {
	if d, ok := r.Damage[unitType]; ok {
		return d
	}
	return 1
}
