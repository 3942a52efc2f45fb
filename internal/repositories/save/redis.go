package save

import (
	"context"
	"encoding/json"
	"sync"

	goredis "github.com/redis/go-redis/v9"

	"github.com/arenalabs/gladiator/internal/errors"
	"github.com/arenalabs/gladiator/internal/pkg/clock"
	redisclient "github.com/arenalabs/gladiator/internal/redis"
)

const (
	slotKeyPrefix    = "save:slot:"
	stagingKeyPrefix = "save:staging:"

	// Error messages
	errProfileNil   = "profile cannot be nil"
	errSlotIDEmpty  = "slot ID cannot be empty"
	errSlotUnknown  = "unknown save slot"
	errDataEmpty    = "import data cannot be empty"
	errSlotReserved = "the autosave slot cannot be deleted"
)

// Config holds the dependencies for the Redis-backed repository.
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock

	// One mutex per slot: two writes to the same slot never interleave.
	slotMu map[string]*sync.Mutex
}

// NewRedisRepository creates a Redis-backed save repository.
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid save repository config")
	}

	slotMu := make(map[string]*sync.Mutex, len(SlotIDs()))
	for _, id := range SlotIDs() {
		slotMu[id] = &sync.Mutex{}
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
		slotMu: slotMu,
	}, nil
}

func (r *redisRepository) validateSlot(slotID string) (*sync.Mutex, error) {
	if slotID == "" {
		return nil, errors.InvalidArgument(errSlotIDEmpty)
	}
	mu, ok := r.slotMu[slotID]
	if !ok {
		return nil, errors.InvalidArgumentf("%s: %q", errSlotUnknown, slotID)
	}
	return mu, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	mu, err := r.validateSlot(input.SlotID)
	if err != nil {
		return nil, err
	}
	if input.Profile == nil || input.Profile.Ledger == nil {
		return nil, errors.InvalidArgument(errProfileNil)
	}

	record := &Record{
		SchemaVersion: CurrentSchemaVersion,
		Timestamp:     r.clock.Now().Unix(),
		Character:     input.Profile.Character,
		Equipment:     input.Profile.Equipment,
		Inventory:     input.Profile.Inventory,
		Ledger:        *input.Profile.Ledger,
		Settings:      input.Profile.Settings,
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal save record")
	}

	mu.Lock()
	defer mu.Unlock()

	if err := r.writeSwap(ctx, input.SlotID, data); err != nil {
		return nil, err
	}

	return &SaveOutput{Record: record}, nil
}

func (r *redisRepository) Autosave(ctx context.Context, input AutosaveInput) (*AutosaveOutput, error) {
	out, err := r.Save(ctx, SaveInput{SlotID: AutosaveSlotID, Profile: input.Profile})
	if err != nil {
		return nil, err
	}
	return &AutosaveOutput{Record: out.Record}, nil
}

func (r *redisRepository) Load(ctx context.Context, input LoadInput) (*LoadOutput, error) {
	if _, err := r.validateSlot(input.SlotID); err != nil {
		return nil, err
	}

	data, err := r.client.Get(ctx, slotKeyPrefix+input.SlotID).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return &LoadOutput{Record: nil}, nil
		}
		return nil, errors.Wrap(err, "failed to read save slot")
	}

	record, err := decodeRecord(data)
	if err != nil {
		return nil, err
	}
	return &LoadOutput{Record: record}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	mu, err := r.validateSlot(input.SlotID)
	if err != nil {
		return nil, err
	}
	if input.SlotID == AutosaveSlotID {
		return nil, errors.PermissionDenied(errSlotReserved)
	}

	mu.Lock()
	defer mu.Unlock()

	if err := r.client.Del(ctx, slotKeyPrefix+input.SlotID).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to delete save slot")
	}
	return &DeleteOutput{}, nil
}

func (r *redisRepository) Export(ctx context.Context, input ExportInput) (*ExportOutput, error) {
	if _, err := r.validateSlot(input.SlotID); err != nil {
		return nil, err
	}

	data, err := r.client.Get(ctx, slotKeyPrefix+input.SlotID).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return &ExportOutput{Data: nil}, nil
		}
		return nil, errors.Wrap(err, "failed to read save slot")
	}
	return &ExportOutput{Data: data}, nil
}

func (r *redisRepository) Import(ctx context.Context, input ImportInput) (*ImportOutput, error) {
	mu, err := r.validateSlot(input.SlotID)
	if err != nil {
		return nil, err
	}
	if len(input.Data) == 0 {
		return nil, errors.InvalidArgument(errDataEmpty)
	}

	// Validate before any write so a rejected blob leaves the slot intact.
	if err := validateImport(input.Data); err != nil {
		return nil, err
	}

	record, err := decodeRecord(input.Data)
	if err != nil {
		return nil, err
	}

	mu.Lock()
	defer mu.Unlock()

	// The exact blob is stored so export returns byte-for-byte what was
	// imported; migration happens again on load.
	if err := r.writeSwap(ctx, input.SlotID, input.Data); err != nil {
		return nil, err
	}

	return &ImportOutput{Record: record}, nil
}

func (r *redisRepository) ListSlots(ctx context.Context, _ ListSlotsInput) (*ListSlotsOutput, error) {
	out := &ListSlotsOutput{}
	for _, slotID := range SlotIDs() {
		data, err := r.client.Get(ctx, slotKeyPrefix+slotID).Bytes()
		if err != nil {
			if err == goredis.Nil {
				out.Slots = append(out.Slots, SlotInfo{SlotID: slotID})
				continue
			}
			return nil, errors.Wrap(err, "failed to read save slot")
		}

		var summary struct {
			Timestamp int64 `json:"timestamp"`
			Character struct {
				Name        string `json:"name"`
				Level       int    `json:"level"`
				CurrentCity string `json:"currentCity"`
				Gold        int    `json:"gold"`
			} `json:"character"`
		}
		if err := json.Unmarshal(data, &summary); err != nil {
			// A corrupt slot still shows up, just without details.
			out.Slots = append(out.Slots, SlotInfo{SlotID: slotID, HasData: true})
			continue
		}

		out.Slots = append(out.Slots, SlotInfo{
			SlotID:    slotID,
			HasData:   true,
			Name:      summary.Character.Name,
			Level:     summary.Character.Level,
			City:      summary.Character.CurrentCity,
			Gold:      summary.Character.Gold,
			Timestamp: summary.Timestamp,
		})
	}
	return out, nil
}

// writeSwap writes the record to a staging key and renames it onto the slot
// key in one transaction. A crash mid-write leaves the previous record
// untouched; the slot never holds a partial document.
func (r *redisRepository) writeSwap(ctx context.Context, slotID string, data []byte) error {
	stagingKey := stagingKeyPrefix + slotID
	slotKey := slotKeyPrefix + slotID

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, stagingKey, data, 0)
	pipe.Rename(ctx, stagingKey, slotKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "failed to write save record")
	}
	return nil
}

// validateImport checks the blob's required top-level fields without
// decoding the full record.
func validateImport(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "import data is not valid JSON")
	}
	if _, ok := doc["schemaVersion"]; !ok {
		return errors.InvalidArgument("import data has no schemaVersion field")
	}
	rawCharacter, ok := doc["character"]
	if !ok {
		return errors.InvalidArgument("import data has no character field")
	}
	var character map[string]json.RawMessage
	if err := json.Unmarshal(rawCharacter, &character); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "character field is not an object")
	}
	return nil
}
