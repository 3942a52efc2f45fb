package arena_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/arenalabs/gladiator/internal/clients/arena"
	"github.com/arenalabs/gladiator/internal/entities"
	"github.com/arenalabs/gladiator/internal/errors"
)

type ClientTestSuite struct {
	suite.Suite

	server  *httptest.Server
	handler http.HandlerFunc
	client  arena.Client
}

func (s *ClientTestSuite) SetupTest() {
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.handler(w, r)
	}))

	var err error
	s.client, err = arena.New(&arena.Config{BaseURL: s.server.URL})
	s.Require().NoError(err)
}

func (s *ClientTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientTestSuite) respond(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		s.Require().NoError(json.NewEncoder(w).Encode(body))
	}
}

func (s *ClientTestSuite) TestStartBattle() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPost, r.Method)
		s.Equal("/arena/start/char-1", r.URL.Path)
		s.Equal("arena", r.URL.Query().Get("battle_type"))

		s.respond(http.StatusOK, map[string]any{
			"battle_id":      "battle-42",
			"opponent_name":  "Crixus",
			"opponent_level": 5,
			"opponent_style": "aggressive",
			"dialogue":       "You die today.",
			"gladiator_hp":   100,
			"opponent_hp":    90,
			"status":         "active",
		})(w, r)
	}

	out, err := s.client.StartBattle(context.Background(), &arena.StartBattleInput{
		CharacterID: "char-1",
		BattleType:  entities.BattleTypeArena,
	})
	s.Require().NoError(err)

	s.Equal("battle-42", out.SessionID)
	s.Equal("Crixus", out.Opponent.Name)
	s.Equal(5, out.Opponent.Level)
	s.Equal(100, out.GladiatorHP)
	s.Equal(90, out.OpponentHP)
}

func (s *ClientTestSuite) TestStartBattle_ServiceRefusal() {
	s.handler = s.respond(http.StatusPreconditionFailed, map[string]any{
		"detail": "boss not unlocked",
	})

	_, err := s.client.StartBattle(context.Background(), &arena.StartBattleInput{
		CharacterID: "char-1",
		BattleType:  entities.BattleTypeBoss,
	})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
	s.Contains(err.Error(), "boss not unlocked")
}

func (s *ClientTestSuite) TestSubmitAction_OngoingRound() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/arena/battle/battle-42/action", r.URL.Path)

		var body map[string]string
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&body))
		s.Equal("attack", body["action"])

		s.respond(http.StatusOK, map[string]any{
			"rounds":       1,
			"damage_dealt": 18,
			"damage_taken": 7,
			"gladiator_hp": 93,
			"opponent_hp":  72,
		})(w, r)
	}

	out, err := s.client.SubmitAction(context.Background(), &arena.SubmitActionInput{
		SessionID: "battle-42",
		Action:    entities.ActionAttack,
	})
	s.Require().NoError(err)

	s.Equal(18, out.DamageDealt)
	s.Equal(93, out.GladiatorHP)
	s.False(out.Terminal())
}

func (s *ClientTestSuite) TestSubmitAction_Victory() {
	victory := true
	s.handler = s.respond(http.StatusOK, map[string]any{
		"rounds":            3,
		"damage_dealt":      25,
		"gladiator_hp":      80,
		"opponent_hp":       0,
		"victory":           victory,
		"gold_earned":       150,
		"experience_earned": 40,
		"leveled_up":        true,
	})

	out, err := s.client.SubmitAction(context.Background(), &arena.SubmitActionInput{
		SessionID: "battle-42",
		Action:    entities.ActionAttack,
	})
	s.Require().NoError(err)

	s.True(out.Victory)
	s.False(out.Defeated)
	s.True(out.Terminal())
	s.Equal(150, out.GoldEarned)
	s.True(out.LeveledUp)
}

func (s *ClientTestSuite) TestSubmitAction_CaptureDetails() {
	s.handler = s.respond(http.StatusOK, map[string]any{
		"victory":      false,
		"gladiator_hp": 0,
		"opponent_hp":  34,
		"captured":     true,
		"captured_details": map[string]any{
			"old_city":       "Roma",
			"new_city":       "Pompeii",
			"lost_equipment": []string{"item-1", "item-2"},
		},
	})

	out, err := s.client.SubmitAction(context.Background(), &arena.SubmitActionInput{
		SessionID: "battle-42",
		Action:    entities.ActionAttack,
	})
	s.Require().NoError(err)

	s.True(out.Captured)
	s.Require().NotNil(out.CaptureDetails)
	s.Equal("Pompeii", out.CaptureDetails.NewCity)
	s.Equal([]string{"item-1", "item-2"}, out.CaptureDetails.LostEquipmentIDs)
}

func (s *ClientTestSuite) TestSubmitAction_PleadVerdicts() {
	cases := []struct {
		name    string
		escaped bool
		spared  bool
		want    bool
	}{
		{"spared", true, true, true},
		{"denied", false, false, false},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.handler = s.respond(http.StatusOK, map[string]any{
				"victory":      false,
				"gladiator_hp": 12,
				"opponent_hp":  60,
				"escaped":      tc.escaped,
				"spared":       tc.spared,
			})

			out, err := s.client.SubmitAction(context.Background(), &arena.SubmitActionInput{
				SessionID: "battle-42",
				Action:    entities.ActionPlead,
			})
			s.Require().NoError(err)

			s.Require().NotNil(out.Plead)
			s.Equal(tc.want, out.Plead.Spared)
		})
	}
}

func (s *ClientTestSuite) TestSubmitAction_NegativeHPClamped() {
	s.handler = s.respond(http.StatusOK, map[string]any{
		"victory":      false,
		"gladiator_hp": -8,
		"opponent_hp":  40,
		"executed":     true,
	})

	out, err := s.client.SubmitAction(context.Background(), &arena.SubmitActionInput{
		SessionID: "battle-42",
		Action:    entities.ActionAttack,
	})
	s.Require().NoError(err)

	s.Equal(0, out.GladiatorHP)
	s.True(out.Defeated)
	s.True(out.Executed)
}

func (s *ClientTestSuite) TestFetchLoot() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodGet, r.Method)
		s.Equal("/arena/battle/battle-42/available-loot", r.URL.Path)

		s.respond(http.StatusOK, map[string]any{
			"can_loot": true,
			"loot": []map[string]any{
				{"id": "item-9", "name": "Gladius of the Sun", "type": "weapon", "rarity": "legendary", "damage": 24},
			},
		})(w, r)
	}

	out, err := s.client.FetchLoot(context.Background(), &arena.FetchLootInput{SessionID: "battle-42"})
	s.Require().NoError(err)

	s.True(out.CanLoot)
	s.Require().Len(out.Items, 1)
	s.Equal(entities.SlotWeapon, out.Items[0].Slot)
	s.Equal(entities.RarityLegendary, out.Items[0].Rarity)
}

func (s *ClientTestSuite) TestClaimLoot() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/arena/battle/battle-42/loot", r.URL.Path)
		s.Equal("item-9", r.URL.Query().Get("item_id"))

		s.respond(http.StatusOK, map[string]any{
			"message": "claimed",
			"item":    map[string]any{"id": "item-9", "name": "Gladius of the Sun", "type": "weapon", "rarity": "legendary"},
		})(w, r)
	}

	out, err := s.client.ClaimLoot(context.Background(), &arena.ClaimLootInput{
		SessionID: "battle-42",
		ItemID:    "item-9",
	})
	s.Require().NoError(err)
	s.Equal("item-9", out.Item.ID)
}

func (s *ClientTestSuite) TestTransportFailureIsUnavailable() {
	s.handler = s.respond(http.StatusOK, map[string]any{})
	s.server.Close()

	_, err := s.client.SubmitAction(context.Background(), &arena.SubmitActionInput{
		SessionID: "battle-42",
		Action:    entities.ActionAttack,
	})
	s.Require().Error(err)
	s.True(errors.IsUnavailable(err))
	s.True(errors.IsTransport(err))
}

func (s *ClientTestSuite) TestSlowServiceIsDeadlineExceeded() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server notices the client disconnect and
		// cancels the request context; otherwise teardown deadlocks.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}

	client, err := arena.New(&arena.Config{
		BaseURL: s.server.URL,
		Timeout: 50 * time.Millisecond,
	})
	s.Require().NoError(err)

	_, err = client.SubmitAction(context.Background(), &arena.SubmitActionInput{
		SessionID: "battle-42",
		Action:    entities.ActionAttack,
	})
	s.Require().Error(err)
	s.True(errors.IsDeadlineExceeded(err))
	s.True(errors.IsTransport(err))
}

func (s *ClientTestSuite) TestInputValidation() {
	s.handler = s.respond(http.StatusOK, map[string]any{})

	_, err := s.client.StartBattle(context.Background(), &arena.StartBattleInput{
		CharacterID: "char-1",
		BattleType:  "naval",
	})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.client.SubmitAction(context.Background(), &arena.SubmitActionInput{
		SessionID: "battle-42",
		Action:    "taunt",
	})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.client.ClaimLoot(context.Background(), &arena.ClaimLootInput{SessionID: "battle-42"})
	s.True(errors.IsInvalidArgument(err))
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}
