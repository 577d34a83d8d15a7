package game

// Event names. These strings are the public catalog: the UI layer, the
// match recorder, and save tooling all key off them, so they never change
// spelling.
const (
	EventUnitCreated           = "unitCreated"
	EventUnitMoved             = "unitMoved"
	EventUnitRemoved           = "unitRemoved"
	EventUnitAttacked          = "unitAttacked"
	EventBaseDestroyed         = "baseDestroyed"
	EventResourcesGathered     = "resourcesGathered"
	EventResourceNodeRegen     = "resourceNodeRegenerated"
	EventResourcePhaseComplete = "resourcePhaseComplete"
	EventTurnStarted           = "turnStarted"
	EventPhaseChanged          = "phaseChanged"
	EventActionPhaseStarted    = "actionPhaseStarted"
	EventBuildPhaseStarted     = "buildPhaseStarted"
	EventActionUsed            = "actionUsed"
	EventTurnTimerTick         = "turnTimerTick"
	EventTurnTimeExpired       = "turnTimeExpired"
	EventTurnEnded             = "turnEnded"
	EventTurnForcedEnd         = "turnForcedEnd"
	EventGameEnded             = "gameEnded"
	EventPlayerSurrendered     = "playerSurrendered"
	EventDrawDeclared          = "drawDeclared"
	EventVictoryCheck          = "victoryCheck"
)

// EventNames lists the full catalog in a stable order, for consumers that
// subscribe to everything (the match recorder, debug taps).
var EventNames = []string{
	EventUnitCreated,
	EventUnitMoved,
	EventUnitRemoved,
	EventUnitAttacked,
	EventBaseDestroyed,
	EventResourcesGathered,
	EventResourceNodeRegen,
	EventResourcePhaseComplete,
	EventTurnStarted,
	EventPhaseChanged,
	EventActionPhaseStarted,
	EventBuildPhaseStarted,
	EventActionUsed,
	EventTurnTimerTick,
	EventTurnTimeExpired,
	EventTurnEnded,
	EventTurnForcedEnd,
	EventGameEnded,
	EventPlayerSurrendered,
	EventDrawDeclared,
	EventVictoryCheck,
}

type UnitCreated struct {
	UnitID   string `json:"unitId"`
	PlayerID int    `json:"playerId"`
	UnitType string `json:"unitType"`
	Pos      Vec2i  `json:"pos"`
}

type UnitMoved struct {
	UnitID string `json:"unitId"`
	From   Vec2i  `json:"from"`
	To     Vec2i  `json:"to"`
	Cost   int    `json:"cost"`
}

type UnitRemoved struct {
	UnitID   string `json:"unitId"`
	PlayerID int    `json:"playerId"`
}

type UnitAttacked struct {
	AttackerID   string `json:"attackerId"`
	TargetID     string `json:"targetId"`
	TargetType   string `json:"targetType"` // "unit" or "base"
	Damage       int    `json:"damage"`
	TargetHealth int    `json:"targetHealth"`
	Destroyed    bool   `json:"destroyed"`
}

type BaseDestroyed struct {
	BaseID   string `json:"baseId"`
	PlayerID int    `json:"playerId"`
}

type ResourcesGathered struct {
	UnitID   string `json:"unitId"`
	PlayerID int    `json:"playerId"`
	Amount   int    `json:"amount"`
}

type ResourceNodeRegenerated struct {
	NodeID            string `json:"nodeId"`
	RegeneratedAmount int    `json:"regeneratedAmount"`
}

type ResourcePhaseComplete struct {
	Player        int `json:"player"`
	EnergyGained  int `json:"energyGained"`
	ResourceBonus int `json:"resourceBonus"`
}

type TurnStarted struct {
	Player     int    `json:"player"`
	TurnNumber int    `json:"turnNumber"`
	Phase      string `json:"phase"`
}

type PhaseChanged struct {
	Phase  string `json:"phase"`
	Player int    `json:"player"`
}

type ActionUsed struct {
	Player           int `json:"player"`
	ActionsRemaining int `json:"actionsRemaining"`
}

type TurnTimerTick struct {
	TimeRemaining int `json:"timeRemaining"`
	TotalTime     int `json:"totalTime"`
}

type TurnTimeExpired struct {
	Player int `json:"player"`
}

type TurnEnded struct {
	PreviousPlayer int `json:"previousPlayer"`
	NextPlayer     int `json:"nextPlayer"`
	TurnNumber     int `json:"turnNumber"`
}

// GameEnded reports the winner, 0 meaning a draw.
type GameEnded struct {
	Winner int `json:"winner"`
}

type PlayerSurrendered struct {
	SurrenderedPlayer int `json:"surrenderedPlayer"`
	Winner            int `json:"winner"`
}

type DrawDeclared struct {
	TurnNumber int `json:"turnNumber"`
}

type VictoryCheck struct {
	Player1BaseHealth int    `json:"player1BaseHealth"`
	Player2BaseHealth int    `json:"player2BaseHealth"`
	GameStatus        string `json:"gameStatus"`
	TurnNumber        int    `json:"turnNumber"`
}
