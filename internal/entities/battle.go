package entities

// BattleType selects what kind of battle to start.
type BattleType string

// Battle types accepted by the resolution service.
const (
	BattleTypeArena      BattleType = "arena"
	BattleTypeTournament BattleType = "tournament"
	BattleTypeBoss       BattleType = "boss"
)

// IsValid reports whether the battle type is one the service accepts.
func (t BattleType) IsValid() bool {
	switch t {
	case BattleTypeArena, BattleTypeTournament, BattleTypeBoss:
		return true
	}
	return false
}

// Action is one of the four moves a gladiator can submit for a round.
// A closed set: invalid actions are rejected before they reach the wire.
type Action string

// Battle actions.
const (
	ActionAttack  Action = "attack"
	ActionDefend  Action = "defend"
	ActionSpecial Action = "special"
	ActionPlead   Action = "plead"
)

// IsValid reports whether the action is a member of the closed action set.
func (a Action) IsValid() bool {
	switch a {
	case ActionAttack, ActionDefend, ActionSpecial, ActionPlead:
		return true
	}
	return false
}

// Opponent describes the other side of a battle, as assigned by the
// resolution service when the battle starts.
type Opponent struct {
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Style    string `json:"style"`
	Dialogue string `json:"dialogue,omitempty"`
}
