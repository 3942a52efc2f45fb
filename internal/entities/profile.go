package entities

import (
	"github.com/arenalabs/gladiator/internal/ledger"
)

// Profile aggregates everything the save layer persists for one player:
// the character, what they wear and own, their combat history, and their
// preferences. The session orchestrator mutates it on terminal transitions.
type Profile struct {
	Character Character      `json:"character"`
	Equipment EquipmentSet   `json:"equipment"`
	Inventory Inventory      `json:"inventory"`
	Ledger    *ledger.Ledger `json:"ledger"`
	Settings  Settings       `json:"settings"`
}

// Clone returns a deep copy safe to hand to the save layer while the live
// profile keeps mutating under the session mutex.
func (p *Profile) Clone() *Profile {
	l := ledger.Ledger(p.Ledger.Snapshot())
	return &Profile{
		Character: p.Character,
		Equipment: p.Equipment,
		Inventory: append(Inventory(nil), p.Inventory...),
		Ledger:    &l,
		Settings:  p.Settings,
	}
}

// NewProfile creates a fresh profile for a newly registered character: empty
// equipment and inventory, an all-zero ledger, default settings.
func NewProfile(character Character) *Profile {
	if character.CurrentCity == "" {
		character.CurrentCity = HomeCity
	}
	return &Profile{
		Character: character,
		Inventory: Inventory{},
		Ledger:    ledger.New(),
		Settings:  DefaultSettings(),
	}
}
