package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/arenalabs/gladiator/internal/clients/arena"
	arenamock "github.com/arenalabs/gladiator/internal/clients/arena/mock"
	"github.com/arenalabs/gladiator/internal/entities"
	"github.com/arenalabs/gladiator/internal/errors"
	"github.com/arenalabs/gladiator/internal/orchestrators/session"
	"github.com/arenalabs/gladiator/internal/repositories/save"
	savemock "github.com/arenalabs/gladiator/internal/repositories/save/mock"
)

type OrchestratorTestSuite struct {
	suite.Suite

	ctrl       *gomock.Controller
	mockClient *arenamock.MockClient
	mockRepo   *savemock.MockRepository
	profile    *entities.Profile
	svc        session.Service
	ctx        context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockClient = arenamock.NewMockClient(s.ctrl)
	s.mockRepo = savemock.NewMockRepository(s.ctrl)
	s.ctx = context.Background()

	s.profile = entities.NewProfile(entities.Character{
		ID:    "char-1",
		Name:  "Maximus",
		Level: 5,
		Gold:  100,
	})
	s.profile.Equipment.Equip(entities.SlotHelmet, "item-helmet")
	s.profile.Equipment.Equip(entities.SlotWeapon, "item-gladius")

	var err error
	s.svc, err = session.New(&session.Config{
		Client:  s.mockClient,
		Repo:    s.mockRepo,
		Profile: s.profile,
	})
	s.Require().NoError(err)
}

// startBattle drives the orchestrator into an active session against a
// level-5 opponent with 100 HP on both sides.
func (s *OrchestratorTestSuite) startBattle() {
	s.mockClient.EXPECT().
		StartBattle(gomock.Any(), &arena.StartBattleInput{
			CharacterID: "char-1",
			BattleType:  entities.BattleTypeArena,
		}).
		Return(&arena.StartBattleOutput{
			SessionID:   "battle-1",
			Opponent:    entities.Opponent{Name: "Crixus", Level: 5},
			GladiatorHP: 100,
			OpponentHP:  100,
		}, nil)

	out, err := s.svc.StartBattle(s.ctx, &session.StartBattleInput{BattleType: entities.BattleTypeArena})
	s.Require().NoError(err)
	s.Require().NotNil(out.Session)
	s.Equal(session.StatusActive, out.Session.Status)
}

func (s *OrchestratorTestSuite) expectRound(result *arena.SubmitActionOutput) {
	s.mockClient.EXPECT().
		SubmitAction(gomock.Any(), gomock.Any()).
		Return(result, nil)
}

func (s *OrchestratorTestSuite) TestStartBattle() {
	s.startBattle()

	view := s.svc.Current()
	s.Require().NotNil(view)
	s.Equal("battle-1", view.SessionID)
	s.Equal("Crixus", view.Opponent.Name)
	s.Equal(100, view.GladiatorHP)
	s.Equal(0, view.Round)
}

func (s *OrchestratorTestSuite) TestStartBattle_RejectsSecondSession() {
	s.startBattle()

	_, err := s.svc.StartBattle(s.ctx, &session.StartBattleInput{BattleType: entities.BattleTypeBoss})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestStartBattle_InvalidType() {
	_, err := s.svc.StartBattle(s.ctx, &session.StartBattleInput{BattleType: "naval"})
	s.True(errors.IsInvalidArgument(err))
	s.Nil(s.svc.Current())
}

func (s *OrchestratorTestSuite) TestStartBattle_TransportFailureLeavesNoSession() {
	s.mockClient.EXPECT().
		StartBattle(gomock.Any(), gomock.Any()).
		Return(nil, errors.Unavailable("connection refused"))

	_, err := s.svc.StartBattle(s.ctx, &session.StartBattleInput{BattleType: entities.BattleTypeArena})
	s.True(errors.IsUnavailable(err))
	s.Nil(s.svc.Current())

	// A retry is a fresh start, not a stuck guard.
	s.startBattle()
}

func (s *OrchestratorTestSuite) TestSubmitAction_NoBattle() {
	_, err := s.svc.SubmitAction(s.ctx, &session.SubmitActionInput{Action: entities.ActionAttack})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestSubmitAction_TwoRoundVictory() {
	s.startBattle()

	s.expectRound(&arena.SubmitActionOutput{
		Round:       1,
		DamageDealt: 20,
		DamageTaken: 10,
		GladiatorHP: 90,
		OpponentHP:  80,
	})
	out, err := s.svc.SubmitAction(s.ctx, &session.SubmitActionInput{Action: entities.ActionAttack})
	s.Require().NoError(err)
	s.Equal(session.StatusActive, out.Session.Status)
	s.Equal(1, out.Session.Round)
	s.True(out.Crit, "20 damage beats the level-5 threshold of 15")

	s.expectRound(&arena.SubmitActionOutput{
		Round:       2,
		DamageDealt: 30,
		GladiatorHP: 90,
		OpponentHP:  0,
		Victory:     true,
		GoldEarned:  150,
	})
	out, err = s.svc.SubmitAction(s.ctx, &session.SubmitActionInput{Action: entities.ActionAttack})
	s.Require().NoError(err)
	s.Equal(session.StatusVictory, out.Session.Status)

	snap := s.profile.Ledger.Snapshot()
	s.Equal(1, snap.Wins)
	s.Equal(50, snap.TotalDamageDealt, "both rounds flushed at battle end")
	s.Equal(150, snap.TotalGoldEarned)
	s.Equal(2, snap.MaxCombo, "two damaging rounds in a row")
	s.Zero(snap.BattlesNoDamage, "damage was taken in round one")
	s.True(snap.HasDefeatedEnemy("Crixus"))

	s.Equal(250, s.profile.Character.Gold, "victory gold is credited to the character")
}

func (s *OrchestratorTestSuite) TestSubmitAction_UntouchedVictory() {
	s.startBattle()

	s.expectRound(&arena.SubmitActionOutput{
		Round:       1,
		DamageDealt: 100,
		GladiatorHP: 100,
		OpponentHP:  0,
		Victory:     true,
		LeveledUp:   true,
	})
	out, err := s.svc.SubmitAction(s.ctx, &session.SubmitActionInput{Action: entities.ActionSpecial})
	s.Require().NoError(err)
	s.Equal(session.StatusVictory, out.Session.Status)

	s.Equal(1, s.profile.Ledger.Snapshot().BattlesNoDamage)
	s.Equal(6, s.profile.Character.Level, "level-up signal is mirrored")
}

func (s *OrchestratorTestSuite) TestSubmitAction_CritThreshold() {
	s.startBattle()

	// Exactly level*3 is not a crit; the threshold is strict.
	s.expectRound(&arena.SubmitActionOutput{
		Round:       1,
		DamageDealt: 15,
		GladiatorHP: 100,
		OpponentHP:  85,
	})
	out, err := s.svc.SubmitAction(s.ctx, &session.SubmitActionInput{Action: entities.ActionAttack})
	s.Require().NoError(err)
	s.False(out.Crit)

	s.expectRound(&arena.SubmitActionOutput{
		Round:       2,
		DamageDealt: 16,
		GladiatorHP: 100,
		OpponentHP:  69,
	})
	out, err = s.svc.SubmitAction(s.ctx, &session.SubmitActionInput{Action: entities.ActionAttack})
	s.Require().NoError(err)
	s.True(out.Crit)
}

func (s *OrchestratorTestSuite) TestSubmitAction_ComboResetOnMiss() {
	s.startBattle()

	for _, dmg := range []int{10, 12, 0, 11} {
		result := &arena.SubmitActionOutput{DamageDealt: dmg, GladiatorHP: 100, OpponentHP: 50}
		s.expectRound(result)
		_, err := s.svc.SubmitAction(s.ctx, &session.SubmitActionInput{Action: entities.ActionAttack})
		s.Require().NoError(err)
	}

	s.expectRound(&arena.SubmitActionOutput{
		DamageDealt: 5,
		GladiatorHP: 100,
		OpponentHP:  0,
		Victory:     true,
	})
	_, err := s.svc.SubmitAction(s.ctx, &session.SubmitActionInput{Action: entities.ActionAttack})
	s.Require().NoError(err)

	s.Equal(2, s.profile.Ledger.Snapshot().MaxCombo, "the zero-damage round broke the streak")
}

func (s *OrchestratorTestSuite) TestSubmitAction_ReentrantCallFailsFast() {
	s.startBattle()

	var reentrantErr error
	s.mockClient.EXPECT().
		SubmitAction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *arena.SubmitActionInput) (*arena.SubmitActionOutput, error) {
			// A second submission while this one is in flight must be
			// rejected without touching the wire.
			_, reentrantErr = s.svc.SubmitAction(ctx, &session.SubmitActionInput{Action: entities.ActionDefend})
			return &arena.SubmitActionOutput{Round: 1, GladiatorHP: 95, OpponentHP: 100}, nil
		})

	_, err := s.svc.SubmitAction(s.ctx, &session.SubmitActionInput{Action: entities.ActionAttack})
	s.Require().NoError(err)

	s.Require().Error(reentrantErr)
	s.True(errors.IsFailedPrecondition(reentrantErr))
}

func (s *OrchestratorTestSuite) TestSubmitAction_TransportFailureRevertsToActive() {
	s.startBattle()

	s.mockClient.EXPECT().
		SubmitAction(gomock.Any(), gomock.Any()).
		Return(nil, errors.DeadlineExceeded("resolution service did not answer in time"))

	_, err := s.svc.SubmitAction(s.ctx, &session.SubmitActionInput{Action: entities.ActionAttack})
	s.Require().Error(err)
	s.True(errors.IsTransport(err))

	view := s.svc.Current()
	s.Equal(session.StatusActive, view.Status)
	s.Equal(0, view.Round, "the failed action never happened")

	// The same action can be resubmitted.
	s.expectRound(&arena.SubmitActionOutput{Round: 1, DamageDealt: 10, GladiatorHP: 95, OpponentHP: 90})
	out, err := s.svc.SubmitAction(s.ctx, &session.SubmitActionInput{Action: entities.ActionAttack})
	s.Require().NoError(err)
	s.Equal(1, out.Session.Round)
}

func (s *OrchestratorTestSuite) TestSubmitAction_AfterTerminalIsRejected() {
	s.winBattle()

	_, err := s.svc.SubmitAction(s.ctx, &session.SubmitActionInput{Action: entities.ActionAttack})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestSubmitAction_Capture() {
	s.startBattle()

	s.expectRound(&arena.SubmitActionOutput{
		Round:       1,
		GladiatorHP: 0,
		OpponentHP:  40,
		Captured:    true,
		CaptureDetails: &arena.CaptureDetails{
			OldCity:          entities.HomeCity,
			NewCity:          "Pompeii",
			LostEquipmentIDs: []string{"item-helmet"},
		},
	})
	out, err := s.svc.SubmitAction(s.ctx, &session.SubmitActionInput{Action: entities.ActionAttack})
	s.Require().NoError(err)
	s.Equal(session.StatusCaptured, out.Session.Status)

	// Only the listed item is stripped; the rest survives.
	_, ok := s.profile.Equipment.Get(entities.SlotHelmet)
	s.False(ok, "helmet was taken by the captors")
	weapon, ok := s.profile.Equipment.Get(entities.SlotWeapon)
	s.True(ok)
	s.Equal("item-gladius", weapon)

	s.Equal("Pompeii", s.profile.Character.CurrentCity)
	s.Equal(1, s.profile.Ledger.Snapshot().Losses)
	s.Zero(s.profile.Ledger.Snapshot().Executions, "capture is not fatal")
}

func (s *OrchestratorTestSuite) TestSubmitAction_DefeatExecuted() {
	s.startBattle()

	s.expectRound(&arena.SubmitActionOutput{
		Round:       1,
		GladiatorHP: 0,
		OpponentHP:  70,
		Defeated:    true,
		Executed:    true,
	})
	out, err := s.svc.SubmitAction(s.ctx, &session.SubmitActionInput{Action: entities.ActionAttack})
	s.Require().NoError(err)

	s.Equal(session.StatusDefeat, out.Session.Status)
	s.True(out.Session.Fatal)

	snap := s.profile.Ledger.Snapshot()
	s.Equal(1, snap.Losses)
	s.Equal(1, snap.Executions)
}

func (s *OrchestratorTestSuite) TestSubmitAction_PleadSpared() {
	s.startBattle()

	s.expectRound(&arena.SubmitActionOutput{
		Round:       1,
		GladiatorHP: 5,
		OpponentHP:  80,
		Plead:       &arena.PleadOutcome{Spared: true},
	})
	out, err := s.svc.SubmitAction(s.ctx, &session.SubmitActionInput{Action: entities.ActionPlead})
	s.Require().NoError(err)

	s.Equal(session.StatusPleading, out.Session.Status)
	s.True(out.Session.Spared)
	s.False(out.Session.Fatal)

	snap := s.profile.Ledger.Snapshot()
	s.Equal(1, snap.SuccessfulPleads)
	s.Zero(snap.Losses, "a spared gladiator takes no loss")
}

func (s *OrchestratorTestSuite) TestSubmitAction_PleadDenied() {
	s.startBattle()

	s.expectRound(&arena.SubmitActionOutput{
		Round:       1,
		GladiatorHP: 5,
		OpponentHP:  80,
		Plead:       &arena.PleadOutcome{Spared: false},
	})
	out, err := s.svc.SubmitAction(s.ctx, &session.SubmitActionInput{Action: entities.ActionPlead})
	s.Require().NoError(err)

	s.Equal(session.StatusPleading, out.Session.Status)
	s.True(out.Session.Fatal)

	snap := s.profile.Ledger.Snapshot()
	s.Equal(1, snap.Losses)
	s.Equal(1, snap.Executions)
}

func (s *OrchestratorTestSuite) TestSubmitAction_PleadFlushesRoundTotals() {
	s.startBattle()

	// Two damaging rounds before the gladiator throws down the sword.
	for round := 1; round <= 2; round++ {
		s.expectRound(&arena.SubmitActionOutput{
			Round:       round,
			DamageDealt: 20,
			DamageTaken: 45,
			GladiatorHP: 100 - 45*round,
			OpponentHP:  100 - 20*round,
		})
		_, err := s.svc.SubmitAction(s.ctx, &session.SubmitActionInput{Action: entities.ActionAttack})
		s.Require().NoError(err)
	}

	s.expectRound(&arena.SubmitActionOutput{
		Round:       3,
		GladiatorHP: 10,
		OpponentHP:  60,
		Plead:       &arena.PleadOutcome{Spared: true},
	})
	out, err := s.svc.SubmitAction(s.ctx, &session.SubmitActionInput{Action: entities.ActionPlead})
	s.Require().NoError(err)
	s.Equal(session.StatusPleading, out.Session.Status)

	// The plea ends the battle the same way any other terminal does: the
	// session totals are flushed into the ledger, not dropped.
	snap := s.profile.Ledger.Snapshot()
	s.Equal(40, snap.TotalDamageDealt, "damage from the fought rounds is kept")
	s.Equal(2, snap.MaxCombo)
	s.Equal(2, snap.TotalCrits, "20 damage beats the level-5 threshold both rounds")
	s.Equal(1, snap.SuccessfulPleads)
}

// winBattle drives the session to StatusVictory in one round.
func (s *OrchestratorTestSuite) winBattle() {
	s.startBattle()
	s.expectRound(&arena.SubmitActionOutput{
		Round:       1,
		DamageDealt: 100,
		GladiatorHP: 90,
		OpponentHP:  0,
		Victory:     true,
		GoldEarned:  50,
	})
	out, err := s.svc.SubmitAction(s.ctx, &session.SubmitActionInput{Action: entities.ActionAttack})
	s.Require().NoError(err)
	s.Require().Equal(session.StatusVictory, out.Session.Status)
}

func (s *OrchestratorTestSuite) expectLootOffer(items ...entities.Item) {
	s.mockClient.EXPECT().
		FetchLoot(gomock.Any(), &arena.FetchLootInput{SessionID: "battle-1"}).
		Return(&arena.FetchLootOutput{CanLoot: len(items) > 0, Items: items}, nil)
}

func (s *OrchestratorTestSuite) TestLoot_FetchOnce() {
	s.winBattle()

	sword := entities.Item{ID: "item-9", Name: "Gladius of the Sun", Rarity: entities.RarityRare}
	s.expectLootOffer(sword)

	first, err := s.svc.FetchLoot(s.ctx, &session.FetchLootInput{})
	s.Require().NoError(err)
	s.Equal([]entities.Item{sword}, first.Items)

	// No second wire call is expected; the offer comes back empty.
	second, err := s.svc.FetchLoot(s.ctx, &session.FetchLootInput{})
	s.Require().NoError(err)
	s.Empty(second.Items)
}

func (s *OrchestratorTestSuite) TestLoot_FetchRequiresVictory() {
	s.startBattle()

	_, err := s.svc.FetchLoot(s.ctx, &session.FetchLootInput{})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestLoot_ClaimOnce() {
	s.winBattle()

	relic := entities.Item{ID: "item-9", Name: "Mark of the Champion", Rarity: entities.RarityLegendary}
	s.expectLootOffer(relic)

	_, err := s.svc.FetchLoot(s.ctx, &session.FetchLootInput{})
	s.Require().NoError(err)

	s.mockClient.EXPECT().
		ClaimLoot(gomock.Any(), &arena.ClaimLootInput{SessionID: "battle-1", ItemID: "item-9"}).
		Return(&arena.ClaimLootOutput{Item: relic}, nil)

	claimed, err := s.svc.ClaimLoot(s.ctx, &session.ClaimLootInput{ItemID: "item-9"})
	s.Require().NoError(err)
	s.True(claimed.Claimed)
	s.True(s.profile.Inventory.Contains("item-9"))
	s.Equal(1, s.profile.Ledger.Snapshot().LegendaryItems)

	// Claiming again is a quiet no-op with no wire call and no duplicate.
	again, err := s.svc.ClaimLoot(s.ctx, &session.ClaimLootInput{ItemID: "item-9"})
	s.Require().NoError(err)
	s.False(again.Claimed)
	s.Len(s.profile.Inventory, 1)
}

func (s *OrchestratorTestSuite) TestLoot_ClaimBeforeFetch() {
	s.winBattle()

	_, err := s.svc.ClaimLoot(s.ctx, &session.ClaimLootInput{ItemID: "item-9"})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestLoot_ClaimUnknownItem() {
	s.winBattle()
	s.expectLootOffer(entities.Item{ID: "item-9", Name: "Gladius"})

	_, err := s.svc.FetchLoot(s.ctx, &session.FetchLootInput{})
	s.Require().NoError(err)

	_, err = s.svc.ClaimLoot(s.ctx, &session.ClaimLootInput{ItemID: "item-404"})
	s.True(errors.IsInvalidArgument(err))

	// The offer is still claimable after the bad pick.
	s.mockClient.EXPECT().
		ClaimLoot(gomock.Any(), gomock.Any()).
		Return(&arena.ClaimLootOutput{Item: entities.Item{ID: "item-9", Name: "Gladius"}}, nil)
	claimed, err := s.svc.ClaimLoot(s.ctx, &session.ClaimLootInput{ItemID: "item-9"})
	s.Require().NoError(err)
	s.True(claimed.Claimed)
}

func (s *OrchestratorTestSuite) TestLoot_Decline() {
	s.winBattle()
	s.expectLootOffer(entities.Item{ID: "item-9", Name: "Gladius"})

	_, err := s.svc.FetchLoot(s.ctx, &session.FetchLootInput{})
	s.Require().NoError(err)

	_, err = s.svc.DeclineLoot(s.ctx, &session.DeclineLootInput{})
	s.Require().NoError(err)

	// Declined means gone: no claim succeeds afterwards.
	claimed, err := s.svc.ClaimLoot(s.ctx, &session.ClaimLootInput{ItemID: "item-9"})
	s.Require().NoError(err)
	s.False(claimed.Claimed)
	s.Empty(s.profile.Inventory)
}

func (s *OrchestratorTestSuite) TestAcknowledge_RequiresTerminalState() {
	_, err := s.svc.Acknowledge(s.ctx, &session.AcknowledgeInput{})
	s.True(errors.IsFailedPrecondition(err), "no battle at all")

	s.startBattle()
	_, err = s.svc.Acknowledge(s.ctx, &session.AcknowledgeInput{})
	s.True(errors.IsFailedPrecondition(err), "battle still active")
}

func (s *OrchestratorTestSuite) TestAcknowledge_DiscardsSessionAndAutosaves() {
	s.winBattle()

	var saved *entities.Profile
	s.mockRepo.EXPECT().
		Autosave(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input save.AutosaveInput) (*save.AutosaveOutput, error) {
			saved = input.Profile
			return &save.AutosaveOutput{}, nil
		})

	out, err := s.svc.Acknowledge(s.ctx, &session.AcknowledgeInput{})
	s.Require().NoError(err)
	s.True(out.Autosaved)
	s.Nil(s.svc.Current())

	s.Require().NotNil(saved)
	s.Equal("Maximus", saved.Character.Name)
	s.Equal(1, saved.Ledger.Snapshot().Wins, "the autosave carries the just-won battle")

	// The next battle can start immediately.
	s.startBattle()
}

func (s *OrchestratorTestSuite) TestAcknowledge_AutosavesAStableCopy() {
	s.winBattle()

	var saved *entities.Profile
	s.mockRepo.EXPECT().
		Autosave(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input save.AutosaveInput) (*save.AutosaveOutput, error) {
			saved = input.Profile
			return &save.AutosaveOutput{}, nil
		})

	_, err := s.svc.Acknowledge(s.ctx, &session.AcknowledgeInput{})
	s.Require().NoError(err)

	// A battle fought after the acknowledgement must not bleed into the
	// record handed to the save layer.
	s.winBattle()

	s.Require().NotNil(saved)
	s.Equal(1, saved.Ledger.Snapshot().Wins, "the saved record reflects the moment of acknowledgement")
	s.Equal(2, s.profile.Ledger.Snapshot().Wins)
	s.Equal(150, saved.Character.Gold, "gold as of the first victory only")
}

func (s *OrchestratorTestSuite) TestAcknowledge_AutosaveFailureIsSurfaced() {
	s.winBattle()

	s.mockRepo.EXPECT().
		Autosave(gomock.Any(), gomock.Any()).
		Return(nil, errors.Internal("redis down"))

	out, err := s.svc.Acknowledge(s.ctx, &session.AcknowledgeInput{})
	s.Require().Error(err)
	s.False(out.Autosaved)

	// The session is resolved regardless; a manual save can still rescue
	// the progress.
	s.Nil(s.svc.Current())

	snap := s.profile.Ledger.Snapshot()
	s.Equal(1, snap.Wins, "ledger progress is not rolled back")
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
