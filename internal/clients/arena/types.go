package arena

import (
	"github.com/arenalabs/gladiator/internal/entities"
)

// StartBattleInput asks the resolution service for a new battle.
type StartBattleInput struct {
	CharacterID string
	BattleType  entities.BattleType
}

// StartBattleOutput carries the service-assigned session and starting state.
type StartBattleOutput struct {
	SessionID   string
	Opponent    entities.Opponent
	GladiatorHP int
	OpponentHP  int
}

// SubmitActionInput submits one action for the current round.
type SubmitActionInput struct {
	SessionID string
	Action    entities.Action
}

// CaptureDetails describes a capture verdict: where the gladiator is shipped
// and which equipped items the captors took.
type CaptureDetails struct {
	OldCity          string
	NewCity          string
	LostEquipmentIDs []string
}

// PleadOutcome is the emperor's verdict on a plead action.
type PleadOutcome struct {
	Spared bool
}

// SubmitActionOutput is the authoritative outcome of one round. HP values
// overwrite the client's, never the other way around.
type SubmitActionOutput struct {
	Round       int
	DamageDealt int
	DamageTaken int
	GladiatorHP int
	OpponentHP  int

	// Terminal flags. At most one of Victory, Defeated, Captured is set;
	// Plead is non-nil only when the submitted action was plead.
	Victory  bool
	Defeated bool
	Executed bool
	Captured bool

	CaptureDetails *CaptureDetails
	Plead          *PleadOutcome

	GoldEarned       int
	ExperienceEarned int
	LeveledUp        bool
}

// Terminal reports whether this round ended the battle.
func (o *SubmitActionOutput) Terminal() bool {
	return o.Victory || o.Defeated || o.Captured || o.Plead != nil
}

// FetchLootInput requests the loot offer for a won battle.
type FetchLootInput struct {
	SessionID string
}

// FetchLootOutput lists what the defeated opponent dropped.
type FetchLootOutput struct {
	CanLoot bool
	Items   []entities.Item
}

// ClaimLootInput claims one item from the loot offer.
type ClaimLootInput struct {
	SessionID string
	ItemID    string
}

// ClaimLootOutput is the claimed item.
type ClaimLootOutput struct {
	Item entities.Item
}

// Wire representations of the service's JSON payloads.

type startBattleWire struct {
	BattleID      string `json:"battle_id"`
	OpponentName  string `json:"opponent_name"`
	OpponentLevel int    `json:"opponent_level"`
	OpponentStyle string `json:"opponent_style"`
	Dialogue      string `json:"dialogue"`
	GladiatorHP   int    `json:"gladiator_hp"`
	OpponentHP    int    `json:"opponent_hp"`
	Status        string `json:"status"`
}

type actionRequestWire struct {
	Action string `json:"action"`
}

type capturedDetailsWire struct {
	OldCity       string   `json:"old_city"`
	NewCity       string   `json:"new_city"`
	LostEquipment []string `json:"lost_equipment"`
}

type actionResultWire struct {
	Rounds           int                  `json:"rounds"`
	DamageDealt      int                  `json:"damage_dealt"`
	DamageTaken      int                  `json:"damage_taken"`
	GladiatorHP      int                  `json:"gladiator_hp"`
	OpponentHP       int                  `json:"opponent_hp"`
	Victory          *bool                `json:"victory"`
	Executed         bool                 `json:"executed"`
	Captured         bool                 `json:"captured"`
	CapturedDetails  *capturedDetailsWire `json:"captured_details"`
	Escaped          *bool                `json:"escaped"`
	Spared           *bool                `json:"spared"`
	GoldEarned       int                  `json:"gold_earned"`
	ExperienceEarned int                  `json:"experience_earned"`
	LeveledUp        bool                 `json:"leveled_up"`
}

type itemWire struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Rarity string `json:"rarity"`
	Damage int    `json:"damage"`
	Armor  int    `json:"armor"`
}

type lootListWire struct {
	CanLoot bool       `json:"can_loot"`
	Loot    []itemWire `json:"loot"`
}

type claimLootWire struct {
	Message string   `json:"message"`
	Item    itemWire `json:"item"`
}

type errorWire struct {
	Detail string `json:"detail"`
}

func (w itemWire) toItem() entities.Item {
	return entities.Item{
		ID:     w.ID,
		Name:   w.Name,
		Slot:   entities.Slot(w.Type),
		Rarity: entities.Rarity(w.Rarity),
		Damage: w.Damage,
		Armor:  w.Armor,
	}
}
