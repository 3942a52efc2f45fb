// Package arena is the transport client for the combat resolution service.
// The service is authoritative for every combat outcome; this client only
// moves typed requests and responses across HTTP and classifies failures.
package arena

//go:generate mockgen -destination=mock/mock_client.go -package=arenamock github.com/arenalabs/gladiator/internal/clients/arena Client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/arenalabs/gladiator/internal/errors"
)

const defaultTimeout = 10 * time.Second

// Client defines the operations the battle session needs from the combat
// resolution service. One request is in flight at a time; the session state
// machine enforces that, not the client.
type Client interface {
	// StartBattle requests a new battle for the character.
	// Returns errors.FailedPrecondition when the service rejects the
	// request (for example, boss not unlocked).
	StartBattle(ctx context.Context, input *StartBattleInput) (*StartBattleOutput, error)

	// SubmitAction resolves one round with the chosen action.
	// Returns errors.Unavailable or errors.DeadlineExceeded on transport
	// failure; the action is then considered not to have happened.
	SubmitAction(ctx context.Context, input *SubmitActionInput) (*SubmitActionOutput, error)

	// FetchLoot returns the loot offer for a won battle.
	FetchLoot(ctx context.Context, input *FetchLootInput) (*FetchLootOutput, error)

	// ClaimLoot claims a single item from the loot offer.
	ClaimLoot(ctx context.Context, input *ClaimLootInput) (*ClaimLootOutput, error)
}

// Config holds the dependencies for the HTTP client.
type Config struct {
	// BaseURL is the root of the resolution service, e.g. http://localhost:8000.
	BaseURL string
	// HTTPClient is optional; a client with the configured timeout is built
	// when nil.
	HTTPClient *http.Client
	// Timeout bounds each resolution call. Zero means the default.
	Timeout time.Duration
}

// Validate ensures required configuration is present.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if strings.TrimSpace(c.BaseURL) == "" {
		vb.RequiredField("BaseURL")
	} else if _, err := url.Parse(c.BaseURL); err != nil {
		vb.InvalidField("BaseURL", err.Error())
	}
	return vb.Build()
}

type client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// New creates a resolution-service client from the config.
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid arena client config")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		timeout:    timeout,
	}, nil
}

func (c *client) StartBattle(ctx context.Context, input *StartBattleInput) (*StartBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID cannot be empty")
	}
	if !input.BattleType.IsValid() {
		return nil, errors.InvalidArgumentf("invalid battle type %q", input.BattleType)
	}

	path := fmt.Sprintf("/arena/start/%s?battle_type=%s", url.PathEscape(input.CharacterID), url.QueryEscape(string(input.BattleType)))

	var wire startBattleWire
	if err := c.do(ctx, http.MethodPost, path, nil, &wire); err != nil {
		return nil, err
	}
	if wire.BattleID == "" {
		return nil, errors.Internal("resolution service returned no battle ID")
	}

	return &StartBattleOutput{
		SessionID: wire.BattleID,
		Opponent: toOpponent(
			wire.OpponentName,
			wire.OpponentLevel,
			wire.OpponentStyle,
			wire.Dialogue,
		),
		GladiatorHP: wire.GladiatorHP,
		OpponentHP:  wire.OpponentHP,
	}, nil
}

func (c *client) SubmitAction(ctx context.Context, input *SubmitActionInput) (*SubmitActionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID cannot be empty")
	}
	if !input.Action.IsValid() {
		return nil, errors.InvalidArgumentf("invalid action %q", input.Action)
	}

	path := fmt.Sprintf("/arena/battle/%s/action", url.PathEscape(input.SessionID))
	body := actionRequestWire{Action: string(input.Action)}

	var wire actionResultWire
	if err := c.do(ctx, http.MethodPost, path, body, &wire); err != nil {
		return nil, err
	}

	return toActionOutput(&wire), nil
}

func (c *client) FetchLoot(ctx context.Context, input *FetchLootInput) (*FetchLootOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID cannot be empty")
	}

	path := fmt.Sprintf("/arena/battle/%s/available-loot", url.PathEscape(input.SessionID))

	var wire lootListWire
	if err := c.do(ctx, http.MethodGet, path, nil, &wire); err != nil {
		return nil, err
	}

	out := &FetchLootOutput{CanLoot: wire.CanLoot}
	for _, w := range wire.Loot {
		out.Items = append(out.Items, w.toItem())
	}
	return out, nil
}

func (c *client) ClaimLoot(ctx context.Context, input *ClaimLootInput) (*ClaimLootOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID cannot be empty")
	}
	if input.ItemID == "" {
		return nil, errors.InvalidArgument("item ID cannot be empty")
	}

	path := fmt.Sprintf("/arena/battle/%s/loot?item_id=%s", url.PathEscape(input.SessionID), url.QueryEscape(input.ItemID))

	var wire claimLootWire
	if err := c.do(ctx, http.MethodPost, path, nil, &wire); err != nil {
		return nil, err
	}

	return &ClaimLootOutput{Item: wire.Item.toItem()}, nil
}

// do issues one request with a bounded deadline and decodes the response.
// Timeouts and connection failures come back as transport errors so the
// session layer can revert and retry.
func (c *client) do(ctx context.Context, method, path string, body, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to marshal request")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return errors.DeadlineExceeded("resolution service did not answer in time")
		}
		return errors.WrapWithCode(err, errors.CodeUnavailable, "resolution service unreachable")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var ew errorWire
		_ = json.NewDecoder(resp.Body).Decode(&ew)
		msg := ew.Detail
		if msg == "" {
			msg = fmt.Sprintf("resolution service returned status %d", resp.StatusCode)
		}
		return errors.New(errors.FromHTTPStatus(resp.StatusCode), msg)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	return nil
}
