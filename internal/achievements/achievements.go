// Package achievements evaluates unlock predicates over a ledger snapshot.
// Evaluation is stateless: the caller supplies the already-unlocked set and
// receives only the newly satisfied achievements back.
package achievements

import (
	"github.com/arenalabs/gladiator/internal/ledger"
)

// BossChampion is the final boss whose defeat unlocks ChampionSlayer.
const BossChampion = "The Emperor's Champion"

// Category groups achievements for display.
type Category string

// Achievement categories.
const (
	CategoryCombat  Category = "combat"
	CategoryWealth  Category = "wealth"
	CategorySpecial Category = "special"
)

// Achievement pairs an identity with its unlock predicate. Predicates are
// independent of one another and depend only on the snapshot.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Category    Category
	Hidden      bool
	Predicate   func(s ledger.Snapshot) bool
}

// table is the fixed achievement list. Declaration order decides which
// achievement a notification shows when several unlock at once (the last
// satisfied one); it has no effect on which achievements unlock.
var table = []Achievement{
	{
		ID:          "first_blood",
		Title:       "First Blood",
		Description: "Deal your first damage in combat",
		Category:    CategoryCombat,
		Predicate:   func(s ledger.Snapshot) bool { return s.TotalDamageDealt >= 1 },
	},
	{
		ID:          "arena_veteran",
		Title:       "Arena Veteran",
		Description: "Defeat 10 opponents",
		Category:    CategoryCombat,
		Predicate:   func(s ledger.Snapshot) bool { return s.Wins >= 10 },
	},
	{
		ID:          "legend_killer",
		Title:       "Legend Killer",
		Description: "Defeat 50 opponents",
		Category:    CategoryCombat,
		Predicate:   func(s ledger.Snapshot) bool { return s.Wins >= 50 },
	},
	{
		ID:          "champion_of_rome",
		Title:       "Champion of Rome",
		Description: "Defeat 100 opponents",
		Category:    CategoryCombat,
		Predicate:   func(s ledger.Snapshot) bool { return s.Wins >= 100 },
	},
	{
		ID:          "untouchable",
		Title:       "Untouchable",
		Description: "Win a battle without taking damage",
		Category:    CategoryCombat,
		Predicate:   func(s ledger.Snapshot) bool { return s.BattlesNoDamage >= 1 },
	},
	{
		ID:          "combo_master",
		Title:       "Combo Master",
		Description: "Reach 10 combo in a single battle",
		Category:    CategoryCombat,
		Predicate:   func(s ledger.Snapshot) bool { return s.MaxCombo >= 10 },
	},
	{
		ID:          "critical_king",
		Title:       "Critical King",
		Description: "Land 10 critical hits",
		Category:    CategoryCombat,
		Predicate:   func(s ledger.Snapshot) bool { return s.TotalCrits >= 10 },
	},
	{
		ID:          "fortune_smiles",
		Title:       "Fortune Smiles",
		Description: "Acquire your first legendary item",
		Category:    CategorySpecial,
		Predicate:   func(s ledger.Snapshot) bool { return s.LegendaryItems >= 1 },
	},
	{
		ID:          "wealthy_warrior",
		Title:       "Wealthy Warrior",
		Description: "Earn 1,000 gold in the arena",
		Category:    CategoryWealth,
		Predicate:   func(s ledger.Snapshot) bool { return s.TotalGoldEarned >= 1000 },
	},
	{
		ID:          "richest_in_rome",
		Title:       "Richest in Rome",
		Description: "Earn 10,000 gold in the arena",
		Category:    CategoryWealth,
		Predicate:   func(s ledger.Snapshot) bool { return s.TotalGoldEarned >= 10000 },
	},
	{
		ID:          "executioner",
		Title:       "Executioner",
		Description: "Fall to the executioner's blade",
		Category:    CategorySpecial,
		Hidden:      true,
		Predicate:   func(s ledger.Snapshot) bool { return s.Executions >= 1 },
	},
	{
		ID:          "lucky_survivor",
		Title:       "Lucky Survivor",
		Description: "Successfully plead for mercy",
		Category:    CategorySpecial,
		Predicate:   func(s ledger.Snapshot) bool { return s.SuccessfulPleads >= 1 },
	},
	{
		ID:          "champion_slayer",
		Title:       "Champion Slayer",
		Description: "Defeat the Emperor's Champion",
		Category:    CategorySpecial,
		Predicate:   func(s ledger.Snapshot) bool { return s.HasDefeatedBoss(BossChampion) },
	},
}

// All returns the full achievement table in declaration order.
func All() []Achievement {
	out := make([]Achievement, len(table))
	copy(out, table)
	return out
}

// Evaluate returns the achievements whose predicates hold for the snapshot
// and that are not in the unlocked set. Calling it again with the returned
// IDs merged into unlocked yields nothing for the same snapshot.
func Evaluate(unlocked []string, snapshot ledger.Snapshot) []Achievement {
	seen := make(map[string]bool, len(unlocked))
	for _, id := range unlocked {
		seen[id] = true
	}

	var newly []Achievement
	for _, a := range table {
		if !seen[a.ID] && a.Predicate(snapshot) {
			newly = append(newly, a)
		}
	}
	return newly
}

// MostRecent picks the achievement to show in a notification when several
// unlock at once: the last one in table order. A display convenience only.
func MostRecent(newly []Achievement) (Achievement, bool) {
	if len(newly) == 0 {
		return Achievement{}, false
	}
	return newly[len(newly)-1], true
}
