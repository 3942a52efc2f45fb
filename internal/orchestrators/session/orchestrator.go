// Package session implements the battle session state machine. It owns the
// lifecycle of a single battle: action submission, result application,
// terminal-state detection, loot gating, and the autosave trigger.
package session

//go:generate mockgen -destination=mock/mock_service.go -package=sessionmock github.com/arenalabs/gladiator/internal/orchestrators/session Service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/arenalabs/gladiator/internal/clients/arena"
	"github.com/arenalabs/gladiator/internal/entities"
	"github.com/arenalabs/gladiator/internal/errors"
	"github.com/arenalabs/gladiator/internal/ledger"
	"github.com/arenalabs/gladiator/internal/repositories/save"
)

const (
	errNoBattle        = "no battle in progress"
	errBattleInFlight  = "an action is already awaiting its result"
	errBattleDecided   = "the battle is already decided"
	errBattleActive    = "a battle is already in progress"
	errBattleNotWon    = "loot is only available after a victory"
	errBattleNotOver   = "the battle is not over yet"
	errInvalidAction   = "invalid action"
	errInvalidType     = "invalid battle type"
	errOfferNotFetched = "the loot offer has not been fetched"
)

// Service defines the battle session operations.
type Service interface {
	// StartBattle creates a new session.
	// Returns errors.FailedPrecondition while another session exists
	StartBattle(ctx context.Context, input *StartBattleInput) (*StartBattleOutput, error)

	// SubmitAction resolves one round. Exactly one action may be in
	// flight; a second call while awaiting a result fails.
	// Returns errors.FailedPrecondition on state violations
	// Returns transport errors untouched; the session reverts to Active
	SubmitAction(ctx context.Context, input *SubmitActionInput) (*SubmitActionOutput, error)

	// FetchLoot fetches the post-victory loot offer, at most once.
	FetchLoot(ctx context.Context, input *FetchLootInput) (*FetchLootOutput, error)

	// ClaimLoot claims one item from the offer. A consumed offer yields
	// an unclaimed output, never a duplicate item.
	ClaimLoot(ctx context.Context, input *ClaimLootInput) (*ClaimLootOutput, error)

	// DeclineLoot consumes the offer without claiming anything.
	DeclineLoot(ctx context.Context, input *DeclineLootInput) (*DeclineLootOutput, error)

	// Acknowledge resolves a terminal session, discards it, and triggers
	// the autosave.
	Acknowledge(ctx context.Context, input *AcknowledgeInput) (*AcknowledgeOutput, error)

	// Current returns a snapshot of the session, nil when none exists.
	Current() *View
}

// Config holds the dependencies for the session orchestrator.
type Config struct {
	Client  arena.Client
	Repo    save.Repository
	Profile *entities.Profile
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Repo == nil {
		vb.RequiredField("Repo")
	}
	if c.Profile == nil || c.Profile.Ledger == nil {
		vb.RequiredField("Profile")
	}
	return vb.Build()
}

// battleSession is the internal mutable session state. Everything in here is
// guarded by the orchestrator mutex.
type battleSession struct {
	id         string
	battleType entities.BattleType
	opponent   entities.Opponent
	status     Status

	round       int
	gladiatorHP int
	opponentHP  int
	startingHP  int

	// Session-scoped accumulators, flushed into the ledger exactly once
	// at the terminal transition.
	damageDealt int
	crits       int
	combo       int
	maxCombo    int

	fatal   bool
	spared  bool
	capture *arena.CaptureDetails

	// Loot gating: the offer is fetched at most once and consumed at
	// most once.
	lootFetched  bool
	lootConsumed bool
	lootOffer    map[string]entities.Item
}

type orchestrator struct {
	client  arena.Client
	repo    save.Repository
	profile *entities.Profile

	mu       sync.Mutex
	session  *battleSession
	starting bool
}

// New creates a session orchestrator with the provided dependencies.
func New(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid session config")
	}

	return &orchestrator{
		client:  cfg.Client,
		repo:    cfg.Repo,
		profile: cfg.Profile,
	}, nil
}

func (o *orchestrator) StartBattle(ctx context.Context, input *StartBattleInput) (*StartBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if !input.BattleType.IsValid() {
		return nil, errors.InvalidArgumentf("%s: %q", errInvalidType, input.BattleType)
	}

	o.mu.Lock()
	if o.session != nil || o.starting {
		o.mu.Unlock()
		return nil, errors.FailedPrecondition(errBattleActive)
	}
	o.starting = true
	characterID := o.profile.Character.ID
	o.mu.Unlock()

	out, err := o.client.StartBattle(ctx, &arena.StartBattleInput{
		CharacterID: characterID,
		BattleType:  input.BattleType,
	})

	o.mu.Lock()
	defer o.mu.Unlock()
	o.starting = false

	if err != nil {
		return nil, errors.Wrap(err, "failed to start battle")
	}

	o.session = &battleSession{
		id:          out.SessionID,
		battleType:  input.BattleType,
		opponent:    out.Opponent,
		status:      StatusActive,
		gladiatorHP: out.GladiatorHP,
		opponentHP:  out.OpponentHP,
		startingHP:  out.GladiatorHP,
	}

	slog.Info("battle started",
		"session_id", out.SessionID,
		"battle_type", input.BattleType,
		"opponent", out.Opponent.Name,
		"opponent_level", out.Opponent.Level,
	)

	return &StartBattleOutput{Session: o.view()}, nil
}

func (o *orchestrator) SubmitAction(ctx context.Context, input *SubmitActionInput) (*SubmitActionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if !input.Action.IsValid() {
		return nil, errors.InvalidArgumentf("%s: %q", errInvalidAction, input.Action)
	}

	// Reserve the in-flight slot. The mutex is not held across the
	// network call; the AwaitingResult status is the re-entrancy guard.
	o.mu.Lock()
	sess := o.session
	switch {
	case sess == nil:
		o.mu.Unlock()
		return nil, errors.FailedPrecondition(errNoBattle)
	case sess.status == StatusAwaitingResult:
		o.mu.Unlock()
		return nil, errors.FailedPrecondition(errBattleInFlight)
	case sess.status != StatusActive:
		o.mu.Unlock()
		return nil, errors.FailedPrecondition(errBattleDecided)
	}
	sess.status = StatusAwaitingResult
	sessionID := sess.id
	o.mu.Unlock()

	result, err := o.client.SubmitAction(ctx, &arena.SubmitActionInput{
		SessionID: sessionID,
		Action:    input.Action,
	})

	o.mu.Lock()
	defer o.mu.Unlock()

	if err != nil {
		// The action is considered not to have happened; the caller
		// may retry.
		sess.status = StatusActive
		return nil, errors.Wrap(err, "failed to resolve action")
	}

	crit := o.applyResult(sess, input.Action, result)

	return &SubmitActionOutput{
		Session: o.view(),
		Result:  result,
		Crit:    crit,
	}, nil
}

// applyResult commits one authoritative round outcome to the session and, on
// terminal transitions, to the profile and ledger. Runs under the mutex so
// transition and side effects are observed together or not at all.
func (o *orchestrator) applyResult(sess *battleSession, action entities.Action, result *arena.SubmitActionOutput) bool {
	// HP is overwritten from the service, never computed locally.
	sess.gladiatorHP = result.GladiatorHP
	sess.opponentHP = result.OpponentHP
	if result.Round > 0 {
		sess.round = result.Round
	} else {
		sess.round++
	}

	// Presentation-derived round accounting. The crit threshold never
	// feeds back into HP.
	crit := result.DamageDealt > sess.opponent.Level*3
	if result.DamageDealt > 0 {
		sess.damageDealt += result.DamageDealt
		sess.combo++
		if sess.combo > sess.maxCombo {
			sess.maxCombo = sess.combo
		}
		if crit {
			sess.crits++
		}
	} else {
		sess.combo = 0
	}

	switch {
	case result.Captured:
		o.applyCapture(sess, result)

	case result.Plead != nil && action == entities.ActionPlead:
		sess.status = StatusPleading
		sess.spared = result.Plead.Spared
		sess.fatal = !result.Plead.Spared
		o.profile.Ledger.Apply(ledger.PleadResolved{
			Spared:      result.Plead.Spared,
			DamageDealt: sess.damageDealt,
			Crits:       sess.crits,
			MaxCombo:    sess.maxCombo,
		})
		slog.Info("plead resolved", "session_id", sess.id, "spared", sess.spared)

	case result.Victory:
		o.applyVictory(sess, result)

	case result.Defeated:
		sess.status = StatusDefeat
		sess.fatal = result.Executed
		o.profile.Ledger.Apply(ledger.Defeat{
			DamageDealt: sess.damageDealt,
			Crits:       sess.crits,
			MaxCombo:    sess.maxCombo,
			Executed:    result.Executed,
		})
		slog.Info("battle lost", "session_id", sess.id, "executed", result.Executed)

	default:
		// Battle continues.
		sess.status = StatusActive
	}

	return crit
}

func (o *orchestrator) applyVictory(sess *battleSession, result *arena.SubmitActionOutput) {
	sess.status = StatusVictory

	o.profile.Ledger.Apply(ledger.Victory{
		OpponentName: sess.opponent.Name,
		Boss:         sess.battleType == entities.BattleTypeBoss,
		GoldEarned:   result.GoldEarned,
		DamageDealt:  sess.damageDealt,
		Crits:        sess.crits,
		MaxCombo:     sess.maxCombo,
		Untouched:    sess.gladiatorHP == sess.startingHP,
	})

	o.profile.Character.Gold += result.GoldEarned
	o.profile.Character.Experience += result.ExperienceEarned
	if result.LeveledUp {
		o.profile.Character.LevelUp()
	}

	slog.Info("battle won",
		"session_id", sess.id,
		"opponent", sess.opponent.Name,
		"gold_earned", result.GoldEarned,
		"leveled_up", result.LeveledUp,
	)
}

// applyCapture clears exactly the listed equipment and relocates the
// character in the same critical section as the state transition.
func (o *orchestrator) applyCapture(sess *battleSession, result *arena.SubmitActionOutput) {
	sess.status = StatusCaptured
	sess.capture = result.CaptureDetails

	var lost []string
	destination := entities.HomeCity
	if result.CaptureDetails != nil {
		lost = result.CaptureDetails.LostEquipmentIDs
		if result.CaptureDetails.NewCity != "" {
			destination = result.CaptureDetails.NewCity
		}
	}

	cleared := o.profile.Equipment.ClearItemIDs(lost)
	o.profile.Character.CurrentCity = destination

	o.profile.Ledger.Apply(ledger.Captured{
		DamageDealt: sess.damageDealt,
		Crits:       sess.crits,
		MaxCombo:    sess.maxCombo,
	})

	slog.Info("gladiator captured",
		"session_id", sess.id,
		"destination", destination,
		"slots_cleared", len(cleared),
	)
}

func (o *orchestrator) FetchLoot(ctx context.Context, input *FetchLootInput) (*FetchLootOutput, error) {
	o.mu.Lock()
	sess := o.session
	if sess == nil {
		o.mu.Unlock()
		return nil, errors.FailedPrecondition(errNoBattle)
	}
	if sess.status != StatusVictory {
		o.mu.Unlock()
		return nil, errors.FailedPrecondition(errBattleNotWon)
	}
	if sess.lootFetched || sess.lootConsumed {
		// Fetch-once: a repeated fetch is an empty offer, not an error.
		o.mu.Unlock()
		return &FetchLootOutput{}, nil
	}
	sess.lootFetched = true
	sessionID := sess.id
	o.mu.Unlock()

	out, err := o.client.FetchLoot(ctx, &arena.FetchLootInput{SessionID: sessionID})

	o.mu.Lock()
	defer o.mu.Unlock()

	if err != nil {
		sess.lootFetched = false
		return nil, errors.Wrap(err, "failed to fetch loot")
	}

	if !out.CanLoot || len(out.Items) == 0 {
		sess.lootConsumed = true
		return &FetchLootOutput{}, nil
	}

	sess.lootOffer = make(map[string]entities.Item, len(out.Items))
	for _, item := range out.Items {
		sess.lootOffer[item.ID] = item
	}

	return &FetchLootOutput{Items: out.Items}, nil
}

func (o *orchestrator) ClaimLoot(ctx context.Context, input *ClaimLootInput) (*ClaimLootOutput, error) {
	if input == nil || input.ItemID == "" {
		return nil, errors.InvalidArgument("item ID cannot be empty")
	}

	o.mu.Lock()
	sess := o.session
	if sess == nil {
		o.mu.Unlock()
		return nil, errors.FailedPrecondition(errNoBattle)
	}
	if sess.status != StatusVictory {
		o.mu.Unlock()
		return nil, errors.FailedPrecondition(errBattleNotWon)
	}
	if !sess.lootFetched {
		o.mu.Unlock()
		return nil, errors.FailedPrecondition(errOfferNotFetched)
	}
	if sess.lootConsumed {
		// Already claimed or declined: a valid no-op, never a duplicate.
		o.mu.Unlock()
		return &ClaimLootOutput{Claimed: false}, nil
	}
	if _, ok := sess.lootOffer[input.ItemID]; !ok {
		o.mu.Unlock()
		return nil, errors.InvalidArgumentf("item %q is not part of the loot offer", input.ItemID)
	}
	sess.lootConsumed = true
	sessionID := sess.id
	o.mu.Unlock()

	out, err := o.client.ClaimLoot(ctx, &arena.ClaimLootInput{
		SessionID: sessionID,
		ItemID:    input.ItemID,
	})

	o.mu.Lock()
	defer o.mu.Unlock()

	if err != nil {
		sess.lootConsumed = false
		return nil, errors.Wrap(err, "failed to claim loot")
	}

	o.profile.Inventory.Add(out.Item)
	if out.Item.Rarity == entities.RarityLegendary {
		o.profile.Ledger.Apply(ledger.LegendaryLooted{})
	}

	slog.Info("loot claimed", "session_id", sessionID, "item", out.Item.Name, "rarity", out.Item.Rarity)

	return &ClaimLootOutput{Claimed: true, Item: out.Item}, nil
}

func (o *orchestrator) DeclineLoot(_ context.Context, _ *DeclineLootInput) (*DeclineLootOutput, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	sess := o.session
	if sess == nil {
		return nil, errors.FailedPrecondition(errNoBattle)
	}
	if sess.status != StatusVictory {
		return nil, errors.FailedPrecondition(errBattleNotWon)
	}
	sess.lootConsumed = true
	return &DeclineLootOutput{}, nil
}

func (o *orchestrator) Acknowledge(ctx context.Context, _ *AcknowledgeInput) (*AcknowledgeOutput, error) {
	o.mu.Lock()
	sess := o.session
	if sess == nil {
		o.mu.Unlock()
		return nil, errors.FailedPrecondition(errNoBattle)
	}
	if !sess.status.Terminal() {
		o.mu.Unlock()
		return nil, errors.FailedPrecondition(errBattleNotOver)
	}

	sess.status = StatusResolved
	o.session = nil
	sessionID := sess.id
	// Snapshot the profile while still holding the lock: a battle started
	// right after acknowledgement must not mutate the record mid-write.
	snapshot := o.profile.Clone()
	o.mu.Unlock()

	slog.Info("battle resolved", "session_id", sessionID)

	// The session is gone either way; a failed autosave is surfaced, not
	// swallowed, so the player can retry an explicit save.
	if _, err := o.repo.Autosave(ctx, save.AutosaveInput{Profile: snapshot}); err != nil {
		return &AcknowledgeOutput{Autosaved: false}, errors.Wrap(err, "autosave failed")
	}

	return &AcknowledgeOutput{Autosaved: true}, nil
}

func (o *orchestrator) Current() *View {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.view()
}

// view builds a snapshot of the session. Callers must hold the mutex.
func (o *orchestrator) view() *View {
	sess := o.session
	if sess == nil {
		return nil
	}

	v := &View{
		SessionID:   sess.id,
		BattleType:  sess.battleType,
		Opponent:    sess.opponent,
		Status:      sess.status,
		Round:       sess.round,
		GladiatorHP: sess.gladiatorHP,
		OpponentHP:  sess.opponentHP,
		Fatal:       sess.fatal,
		Spared:      sess.spared,
	}
	if sess.capture != nil {
		c := *sess.capture
		c.LostEquipmentIDs = append([]string(nil), sess.capture.LostEquipmentIDs...)
		v.Capture = &c
	}
	return v
}
