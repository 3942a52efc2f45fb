// Package ledger accumulates a character's combat history. Every counter is
// monotonic: updates are additions, maxima, or set unions, never overwrites.
// Replaying the same sequence of terminal battle events into a fresh ledger
// always reproduces the same totals.
package ledger

import "sort"

// Ledger is the monotonic aggregate of terminal battle outcomes. The zero
// value is a valid empty ledger for a freshly created character.
type Ledger struct {
	Wins             int `json:"wins"`
	Losses           int `json:"losses"`
	TotalDamageDealt int `json:"totalDamageDealt"`
	TotalCrits       int `json:"totalCrits"`
	MaxCombo         int `json:"maxCombo"`
	BattlesNoDamage  int `json:"battlesNoDamage"`
	TotalGoldEarned  int `json:"totalGoldEarned"`
	LegendaryItems   int `json:"legendaryItems"`
	Executions       int `json:"executions"`
	SuccessfulPleads int `json:"successfulPleads"`

	// Grow-only sets, kept sorted so serialization is deterministic.
	EnemiesDefeated []string `json:"enemiesDefeated"`
	BossesDefeated  []string `json:"bossesDefeated"`
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Apply folds a terminal battle event into the ledger.
func (l *Ledger) Apply(e Event) {
	if e == nil {
		return
	}
	e.apply(l)
}

// Snapshot returns a deep copy safe to hand to readers (the achievement
// evaluator, the save layer) while battles continue.
func (l *Ledger) Snapshot() Snapshot {
	s := *l
	s.EnemiesDefeated = append([]string(nil), l.EnemiesDefeated...)
	s.BossesDefeated = append([]string(nil), l.BossesDefeated...)
	return Snapshot(s)
}

// Snapshot is a point-in-time copy of a ledger.
type Snapshot Ledger

// HasDefeatedBoss reports whether the named boss appears in the defeated set.
func (s Snapshot) HasDefeatedBoss(name string) bool {
	return containsSorted(s.BossesDefeated, name)
}

// HasDefeatedEnemy reports whether the named enemy appears in the defeated set.
func (s Snapshot) HasDefeatedEnemy(name string) bool {
	return containsSorted(s.EnemiesDefeated, name)
}

func addToSet(set []string, value string) []string {
	if value == "" || containsSorted(set, value) {
		return set
	}
	set = append(set, value)
	sort.Strings(set)
	return set
}

func containsSorted(set []string, value string) bool {
	i := sort.SearchStrings(set, value)
	return i < len(set) && set[i] == value
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
