package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arenalabs/gladiator/internal/entities"
	"github.com/arenalabs/gladiator/internal/ledger"
)

func TestNewProfile_StartsAtHome(t *testing.T) {
	p := entities.NewProfile(entities.Character{ID: "char-1", Name: "Maximus"})

	assert.Equal(t, entities.HomeCity, p.Character.CurrentCity)
	assert.Empty(t, p.Inventory)
	assert.NotNil(t, p.Ledger)
}

func TestProfile_CloneIsIsolated(t *testing.T) {
	p := entities.NewProfile(entities.Character{ID: "char-1", Name: "Maximus", Gold: 100})
	p.Inventory.Add(entities.Item{ID: "item-1", Name: "Gladius"})
	p.Ledger.Apply(ledger.Victory{OpponentName: "Crixus", GoldEarned: 50})

	clone := p.Clone()

	// Later mutations of the live profile must not show in the clone.
	p.Character.Gold = 999
	p.Inventory.Add(entities.Item{ID: "item-2", Name: "Scutum"})
	p.Ledger.Apply(ledger.Victory{OpponentName: "Gannicus"})

	assert.Equal(t, 100, clone.Character.Gold)
	assert.Len(t, clone.Inventory, 1)
	assert.Equal(t, 1, clone.Ledger.Snapshot().Wins)
	assert.Equal(t, []string{"Crixus"}, clone.Ledger.Snapshot().EnemiesDefeated)
}
