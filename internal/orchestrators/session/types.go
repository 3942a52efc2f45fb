package session

import (
	"github.com/arenalabs/gladiator/internal/clients/arena"
	"github.com/arenalabs/gladiator/internal/entities"
)

// Status is the battle session lifecycle state.
type Status string

// Session states. Exactly one session may be Active or AwaitingResult at a
// time; the terminal states wait for the player to acknowledge them, after
// which the session is Resolved and discarded.
const (
	StatusActive         Status = "active"
	StatusAwaitingResult Status = "awaiting_result"
	StatusVictory        Status = "victory"
	StatusDefeat         Status = "defeat"
	StatusCaptured       Status = "captured"
	StatusPleading       Status = "pleading"
	StatusResolved       Status = "resolved"
)

// Terminal reports whether the status ends the battle and awaits
// acknowledgment.
func (s Status) Terminal() bool {
	switch s {
	case StatusVictory, StatusDefeat, StatusCaptured, StatusPleading:
		return true
	}
	return false
}

// View is a read-only snapshot of the current session for display.
type View struct {
	SessionID   string
	BattleType  entities.BattleType
	Opponent    entities.Opponent
	Status      Status
	Round       int
	GladiatorHP int
	OpponentHP  int
	// Fatal marks an execution: the session can only be acknowledged,
	// the character is dead.
	Fatal bool
	// Spared is meaningful only in StatusPleading.
	Spared bool
	// Capture is set only in StatusCaptured.
	Capture *arena.CaptureDetails
}

// StartBattleInput defines the input for starting a battle.
type StartBattleInput struct {
	BattleType entities.BattleType
}

// StartBattleOutput defines the output for starting a battle.
type StartBattleOutput struct {
	Session *View
}

// SubmitActionInput defines the input for submitting one round's action.
type SubmitActionInput struct {
	Action entities.Action
}

// SubmitActionOutput defines the output for one resolved round.
type SubmitActionOutput struct {
	Session *View
	// Result is the authoritative round outcome, for display (damage
	// numbers, crit flash). Ledger accounting never recomputes from it.
	Result *arena.SubmitActionOutput
	// Crit is the presentation-only classification for this round.
	Crit bool
}

// FetchLootInput defines the input for fetching the post-victory loot offer.
type FetchLootInput struct{}

// FetchLootOutput defines the output for the loot offer. Items is empty once
// the offer has been consumed or when the opponent dropped nothing.
type FetchLootOutput struct {
	Items []entities.Item
}

// ClaimLootInput defines the input for claiming one item from the offer.
type ClaimLootInput struct {
	ItemID string
}

// ClaimLootOutput defines the output for a loot claim. Claimed is false when
// the offer was already consumed; that is a valid outcome, not an error.
type ClaimLootOutput struct {
	Claimed bool
	Item    entities.Item
}

// DeclineLootInput defines the input for declining the loot offer.
type DeclineLootInput struct{}

// DeclineLootOutput defines the output for declining the loot offer.
type DeclineLootOutput struct{}

// AcknowledgeInput defines the input for acknowledging a terminal state.
type AcknowledgeInput struct{}

// AcknowledgeOutput defines the output for acknowledging a terminal state.
type AcknowledgeOutput struct {
	// Autosaved reports whether the post-battle autosave was written.
	Autosaved bool
}
