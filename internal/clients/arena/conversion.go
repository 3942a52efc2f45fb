package arena

import (
	"github.com/arenalabs/gladiator/internal/entities"
)

func toOpponent(name string, level int, style, dialogue string) entities.Opponent {
	return entities.Opponent{
		Name:     name,
		Level:    level,
		Style:    style,
		Dialogue: dialogue,
	}
}

// toActionOutput converts the service's round payload into the typed result
// the session machine consumes. HP values are clamped at zero here so the
// rest of the client never sees a negative HP.
func toActionOutput(wire *actionResultWire) *SubmitActionOutput {
	out := &SubmitActionOutput{
		Round:            wire.Rounds,
		DamageDealt:      wire.DamageDealt,
		DamageTaken:      wire.DamageTaken,
		GladiatorHP:      clampHP(wire.GladiatorHP),
		OpponentHP:       clampHP(wire.OpponentHP),
		Executed:         wire.Executed,
		Captured:         wire.Captured,
		GoldEarned:       wire.GoldEarned,
		ExperienceEarned: wire.ExperienceEarned,
		LeveledUp:        wire.LeveledUp,
	}

	if wire.Victory != nil {
		if *wire.Victory {
			out.Victory = true
		} else if !wire.Captured && wire.Escaped == nil {
			out.Defeated = true
		}
	}

	if wire.CapturedDetails != nil {
		out.CaptureDetails = &CaptureDetails{
			OldCity:          wire.CapturedDetails.OldCity,
			NewCity:          wire.CapturedDetails.NewCity,
			LostEquipmentIDs: append([]string(nil), wire.CapturedDetails.LostEquipment...),
		}
	}

	// The escaped/spared pair only appears on plead verdicts.
	if wire.Escaped != nil && wire.Spared != nil {
		out.Plead = &PleadOutcome{Spared: *wire.Escaped && *wire.Spared}
	}

	return out
}

func clampHP(hp int) int {
	if hp < 0 {
		return 0
	}
	return hp
}
