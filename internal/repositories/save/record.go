package save

import (
	"github.com/arenalabs/gladiator/internal/entities"
	"github.com/arenalabs/gladiator/internal/ledger"
)

// CurrentSchemaVersion is the version new records are written at.
//
// History:
//
//	v1: combat history stored under "combatStats" with an "executed"
//	    counter and no boss set
//	v2: history moved to "ledger", counter renamed "executions",
//	    "bossesDefeated" added
const CurrentSchemaVersion = 2

// Record is one versioned, timestamped snapshot of a profile. Records are
// immutable once written; a save replaces the whole record or nothing.
type Record struct {
	SchemaVersion int                   `json:"schemaVersion"`
	Timestamp     int64                 `json:"timestamp"`
	Character     entities.Character    `json:"character"`
	Equipment     entities.EquipmentSet `json:"equipment"`
	Inventory     entities.Inventory    `json:"inventory"`
	Ledger        ledger.Ledger         `json:"ledger"`
	Settings      entities.Settings     `json:"settings"`
}

// Profile rebuilds the in-memory aggregate from a loaded record.
func (r *Record) Profile() *entities.Profile {
	l := r.Ledger
	return &entities.Profile{
		Character: r.Character,
		Equipment: r.Equipment,
		Inventory: r.Inventory,
		Ledger:    &l,
		Settings:  r.Settings,
	}
}

// SlotInfo is the metadata the slot picker shows without loading the full
// record.
type SlotInfo struct {
	SlotID    string
	HasData   bool
	Name      string
	Level     int
	City      string
	Gold      int
	Timestamp int64
}
