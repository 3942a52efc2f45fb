package ledger

// Event is a terminal battle transition. The session orchestrator emits
// exactly one Victory, Defeat, Captured, or PleadResolved event per battle,
// plus at most one LegendaryLooted per claimed legendary item.
type Event interface {
	apply(l *Ledger)
}

// Victory records a won battle. DamageDealt, Crits, and MaxCombo are the
// session's accumulated totals, flushed once at battle end.
type Victory struct {
	OpponentName string
	Boss         bool
	GoldEarned   int
	DamageDealt  int
	Crits        int
	MaxCombo     int
	// Untouched is true when the gladiator ended with the HP it started with.
	Untouched bool
}

func (e Victory) apply(l *Ledger) {
	l.Wins++
	l.TotalGoldEarned += e.GoldEarned
	l.TotalDamageDealt += e.DamageDealt
	l.TotalCrits += e.Crits
	l.MaxCombo = maxInt(l.MaxCombo, e.MaxCombo)
	if e.Untouched {
		l.BattlesNoDamage++
	}
	l.EnemiesDefeated = addToSet(l.EnemiesDefeated, e.OpponentName)
	if e.Boss {
		l.BossesDefeated = addToSet(l.BossesDefeated, e.OpponentName)
	}
}

// Defeat records a lost battle. Executed marks the fatal variant.
type Defeat struct {
	DamageDealt int
	Crits       int
	MaxCombo    int
	Executed    bool
}

func (e Defeat) apply(l *Ledger) {
	l.Losses++
	l.TotalDamageDealt += e.DamageDealt
	l.TotalCrits += e.Crits
	l.MaxCombo = maxInt(l.MaxCombo, e.MaxCombo)
	if e.Executed {
		l.Executions++
	}
}

// Captured records a non-fatal loss outside the home city.
type Captured struct {
	DamageDealt int
	Crits       int
	MaxCombo    int
}

func (e Captured) apply(l *Ledger) {
	l.Losses++
	l.TotalDamageDealt += e.DamageDealt
	l.TotalCrits += e.Crits
	l.MaxCombo = maxInt(l.MaxCombo, e.MaxCombo)
}

// PleadResolved records the verdict on a plead action. A spared gladiator
// walks away without a loss; a denied plea is an execution. Either way the
// rounds fought before the plea still count, so the event carries the
// session's accumulated totals like its siblings.
type PleadResolved struct {
	Spared      bool
	DamageDealt int
	Crits       int
	MaxCombo    int
}

func (e PleadResolved) apply(l *Ledger) {
	l.TotalDamageDealt += e.DamageDealt
	l.TotalCrits += e.Crits
	l.MaxCombo = maxInt(l.MaxCombo, e.MaxCombo)
	if e.Spared {
		l.SuccessfulPleads++
		return
	}
	l.Losses++
	l.Executions++
}

// LegendaryLooted records claiming a legendary item from a loot offer.
type LegendaryLooted struct{}

func (e LegendaryLooted) apply(l *Ledger) {
	l.LegendaryItems++
}
