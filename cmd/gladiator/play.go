package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arenalabs/gladiator/internal/achievements"
	"github.com/arenalabs/gladiator/internal/entities"
	"github.com/arenalabs/gladiator/internal/orchestrators/session"
	"github.com/arenalabs/gladiator/internal/pkg/idgen"
	"github.com/arenalabs/gladiator/internal/repositories/save"
)

var (
	playSlot string
	playName string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Fight in the arena",
	Long:  `Load a profile from a save slot (or create a fresh gladiator) and fight battles interactively. Progress is autosaved after every acknowledged battle.`,
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&playSlot, "slot", save.AutosaveSlotID, "save slot to load the profile from")
	playCmd.Flags().StringVar(&playName, "name", "", "create a fresh gladiator with this name instead of loading")
}

func runPlay(cmd *cobra.Command, args []string) error {
	setupLogging()
	ctx := cmd.Context()

	repo, err := newRepository()
	if err != nil {
		return fmt.Errorf("failed to set up save repository: %w", err)
	}

	profile, err := loadOrCreateProfile(ctx, repo)
	if err != nil {
		return err
	}

	client, err := newArenaClient()
	if err != nil {
		return fmt.Errorf("failed to set up arena client: %w", err)
	}

	svc, err := session.New(&session.Config{
		Client:  client,
		Repo:    repo,
		Profile: profile,
	})
	if err != nil {
		return fmt.Errorf("failed to set up battle session: %w", err)
	}

	fmt.Printf("%s of %s — level %d, %d gold, fighting out of %s\n",
		profile.Character.Name, profile.Character.Homeland,
		profile.Character.Level, profile.Character.Gold, profile.Character.CurrentCity)

	game := &gameLoop{
		svc:      svc,
		repo:     repo,
		profile:  profile,
		input:    bufio.NewScanner(os.Stdin),
		unlocked: unlockedIDs(profile),
	}
	return game.run(ctx)
}

func loadOrCreateProfile(ctx context.Context, repo save.Repository) (*entities.Profile, error) {
	if playName != "" {
		character := entities.Character{
			ID:    idgen.NewUUID("char").Generate(),
			Name:  playName,
			Level: 1,
		}
		return entities.NewProfile(character), nil
	}

	out, err := repo.Load(ctx, save.LoadInput{SlotID: playSlot})
	if err != nil {
		return nil, fmt.Errorf("failed to load slot %s: %w", playSlot, err)
	}
	if out.Record == nil {
		return nil, fmt.Errorf("slot %s is empty; use --name to create a gladiator", playSlot)
	}
	return out.Record.Profile(), nil
}

// unlockedIDs seeds the announcement filter so only achievements earned this
// run are announced, not everything the loaded ledger already satisfies.
func unlockedIDs(profile *entities.Profile) []string {
	var ids []string
	for _, a := range achievements.Evaluate(nil, profile.Ledger.Snapshot()) {
		ids = append(ids, a.ID)
	}
	return ids
}

type gameLoop struct {
	svc      session.Service
	repo     save.Repository
	profile  *entities.Profile
	input    *bufio.Scanner
	unlocked []string

	// dead is set when a resolved battle ended in an execution.
	dead bool
}

func (g *gameLoop) run(ctx context.Context) error {
	for {
		battleType, ok := g.promptBattleType()
		if !ok {
			return nil
		}
		if battleType == "" {
			g.manualSave(ctx)
			continue
		}

		if err := g.fight(ctx, battleType); err != nil {
			return err
		}

		if g.dead {
			fmt.Println("\nYour story ends here. The crowd remembers.")
			return nil
		}
	}
}

func (g *gameLoop) fight(ctx context.Context, battleType entities.BattleType) error {
	start, err := g.svc.StartBattle(ctx, &session.StartBattleInput{BattleType: battleType})
	if err != nil {
		fmt.Printf("Could not start the battle: %v\n", err)
		return nil
	}

	opp := start.Session.Opponent
	fmt.Printf("\nYou face %s (level %d, %s)\n", opp.Name, opp.Level, opp.Style)
	if opp.Dialogue != "" {
		fmt.Printf("%q\n", opp.Dialogue)
	}

	for {
		view := g.svc.Current()
		if view == nil {
			return nil
		}
		if view.Status.Terminal() {
			return g.resolve(ctx, view)
		}

		fmt.Printf("\n[Round %d] You: %d HP — %s: %d HP\n", view.Round+1, view.GladiatorHP, opp.Name, view.OpponentHP)
		action, ok := g.promptAction()
		if !ok {
			fmt.Println("You cannot leave mid-battle. Fight on.")
			continue
		}

		out, err := g.svc.SubmitAction(ctx, &session.SubmitActionInput{Action: action})
		if err != nil {
			// Transport failures leave the battle active; anything is
			// safe to retry.
			fmt.Printf("The arena did not answer: %v\n", err)
			continue
		}

		g.printRound(out)
	}
}

func (g *gameLoop) printRound(out *session.SubmitActionOutput) {
	r := out.Result
	if r.DamageDealt > 0 {
		if out.Crit {
			fmt.Printf("CRITICAL HIT! You deal %d damage.\n", r.DamageDealt)
		} else {
			fmt.Printf("You deal %d damage.\n", r.DamageDealt)
		}
	}
	if r.DamageTaken > 0 {
		fmt.Printf("You take %d damage.\n", r.DamageTaken)
	}
}

func (g *gameLoop) resolve(ctx context.Context, view *session.View) error {
	g.dead = view.Fatal

	switch view.Status {
	case session.StatusVictory:
		fmt.Printf("\nVICTORY! %s falls.\n", view.Opponent.Name)
		g.offerLoot(ctx)
	case session.StatusDefeat:
		if view.Fatal {
			fmt.Println("\nDEFEAT. The emperor shows no mercy — executed.")
		} else {
			fmt.Println("\nDEFEAT. You are dragged from the sand, beaten but alive.")
		}
	case session.StatusCaptured:
		fmt.Println("\nCAPTURED! Your captors strip your equipment and ship you away.")
		if view.Capture != nil {
			fmt.Printf("You wake in %s.\n", view.Capture.NewCity)
		}
	case session.StatusPleading:
		if view.Spared {
			fmt.Println("\nThe crowd roars — the emperor's thumb turns up. Spared.")
		} else {
			fmt.Println("\nThe emperor's thumb turns down. Executed.")
		}
	}

	ack, err := g.svc.Acknowledge(ctx, &session.AcknowledgeInput{})
	if err != nil {
		fmt.Printf("Warning: autosave failed: %v\n", err)
	} else if ack.Autosaved {
		fmt.Println("(progress autosaved)")
	}

	g.announceAchievements()
	return nil
}

func (g *gameLoop) offerLoot(ctx context.Context) {
	loot, err := g.svc.FetchLoot(ctx, &session.FetchLootInput{})
	if err != nil {
		fmt.Printf("Could not fetch the spoils: %v\n", err)
		return
	}
	if len(loot.Items) == 0 {
		fmt.Println("The fallen carried nothing worth taking.")
		return
	}

	fmt.Println("\nSpoils of victory — choose one:")
	for i, item := range loot.Items {
		fmt.Printf("  %d. %s (%s %s)\n", i+1, item.Name, item.Rarity, item.Slot)
	}
	fmt.Print("Item number, or press enter to walk away: ")

	choice := g.readLine()
	if choice == "" {
		if _, err := g.svc.DeclineLoot(ctx, &session.DeclineLootInput{}); err != nil {
			fmt.Printf("Could not decline: %v\n", err)
		}
		return
	}

	var idx int
	if _, err := fmt.Sscanf(choice, "%d", &idx); err != nil || idx < 1 || idx > len(loot.Items) {
		fmt.Println("No such item; the spoils are left behind.")
		if _, err := g.svc.DeclineLoot(ctx, &session.DeclineLootInput{}); err != nil {
			fmt.Printf("Could not decline: %v\n", err)
		}
		return
	}

	claimed, err := g.svc.ClaimLoot(ctx, &session.ClaimLootInput{ItemID: loot.Items[idx-1].ID})
	if err != nil {
		fmt.Printf("Could not claim the item: %v\n", err)
		return
	}
	if claimed.Claimed {
		fmt.Printf("You claim %s.\n", claimed.Item.Name)
	}
}

func (g *gameLoop) announceAchievements() {
	newly := achievements.Evaluate(g.unlocked, g.profile.Ledger.Snapshot())
	for _, a := range newly {
		g.unlocked = append(g.unlocked, a.ID)
	}
	if latest, ok := achievements.MostRecent(newly); ok {
		fmt.Printf("\n*** Achievement unlocked: %s — %s ***\n", latest.Title, latest.Description)
	}
}

// promptBattleType returns an empty type with ok=true when the player chose
// to save instead of fight.
func (g *gameLoop) promptBattleType() (entities.BattleType, bool) {
	fmt.Print("\nFight? [a]rena / [t]ournament / [b]oss / [s]ave / [q]uit: ")
	switch g.readLine() {
	case "a", "arena":
		return entities.BattleTypeArena, true
	case "t", "tournament":
		return entities.BattleTypeTournament, true
	case "b", "boss":
		return entities.BattleTypeBoss, true
	case "s", "save":
		return "", true
	default:
		return "", false
	}
}

func (g *gameLoop) manualSave(ctx context.Context) {
	fmt.Printf("Slot (%s): ", strings.Join(save.NamedSlotIDs, ", "))
	slot := g.readLine()
	if slot == "" {
		return
	}
	if _, err := g.repo.Save(ctx, save.SaveInput{SlotID: slot, Profile: g.profile}); err != nil {
		fmt.Printf("Save failed: %v\n", err)
		return
	}
	fmt.Printf("Saved to %s.\n", slot)
}

func (g *gameLoop) promptAction() (entities.Action, bool) {
	fmt.Print("[a]ttack / [d]efend / [s]pecial / [p]lead: ")
	switch g.readLine() {
	case "a", "attack":
		return entities.ActionAttack, true
	case "d", "defend":
		return entities.ActionDefend, true
	case "s", "special":
		return entities.ActionSpecial, true
	case "p", "plead":
		return entities.ActionPlead, true
	default:
		return "", false
	}
}

func (g *gameLoop) readLine() string {
	if !g.input.Scan() {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(g.input.Text()))
}
