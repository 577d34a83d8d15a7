// Package snapshot defines the versioned save-file shape. The board grid is
// deliberately absent: occupancy is always recomputed from entity positions
// on restore, so a save produced under older rules can never smuggle in a
// board that disagrees with its entities.
package snapshot

const Version = 1

type SaveV1 struct {
	Version       int    `json:"version"`
	GameID        string `json:"game_id"`
	Status        string `json:"status"`
	CurrentPlayer int    `json:"current_player"`
	CurrentPhase  string `json:"current_phase"`
	TurnNumber    int    `json:"turn_number"`
	Winner        int    `json:"winner"`

	Players []PlayerV1 `json:"players"`
	Units   []UnitV1   `json:"units"`
	Bases   []BaseV1   `json:"bases"`
	Nodes   []NodeV1   `json:"nodes"`

	// Unit ids that already gathered in the current turn.
	GatherCooldowns []string `json:"gather_cooldowns,omitempty"`
}

type PlayerV1 struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	Energy            int    `json:"energy"`
	ResourcesGathered int    `json:"resources_gathered"`
	ActionsRemaining  int    `json:"actions_remaining"`
	IsActive          bool   `json:"is_active"`
}

type UnitV1 struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	PlayerID    int    `json:"player_id"`
	Pos         [2]int `json:"pos"`
	Health      int    `json:"health"`
	ActionsUsed int    `json:"actions_used"`
}

type BaseV1 struct {
	ID          string `json:"id"`
	PlayerID    int    `json:"player_id"`
	Pos         [2]int `json:"pos"`
	Health      int    `json:"health"`
	IsDestroyed bool   `json:"is_destroyed"`
}

type NodeV1 struct {
	ID    string `json:"id"`
	Pos   [2]int `json:"pos"`
	Value int    `json:"value"`
}
