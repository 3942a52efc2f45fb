package save

import (
	"encoding/json"

	"github.com/arenalabs/gladiator/internal/errors"
)

// migration rewrites the raw document from one schema version to the next.
type migration func(doc map[string]json.RawMessage) error

// migrations[v] migrates a version-v document to v+1. Every version between
// the oldest supported and the current one must have an entry; a gap means
// the record cannot be loaded.
var migrations = map[int]migration{
	1: migrateV1ToV2,
}

// decodeRecord parses stored bytes, migrating older schema versions forward.
// A record newer than the current version, or older than the oldest
// migratable one, is refused outright rather than misread field by field.
func decodeRecord(data []byte) (*Record, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "save record is not valid JSON")
	}

	version, err := documentVersion(doc)
	if err != nil {
		return nil, err
	}

	if version > CurrentSchemaVersion {
		return nil, errors.DataLossf("save schema version %d is newer than supported version %d", version, CurrentSchemaVersion)
	}

	for version < CurrentSchemaVersion {
		step, ok := migrations[version]
		if !ok {
			return nil, errors.DataLossf("no migration from save schema version %d", version)
		}
		if err := step(doc); err != nil {
			return nil, errors.Wrapf(err, "migration from schema version %d failed", version)
		}
		version++
		raw, err := json.Marshal(version)
		if err != nil {
			return nil, errors.Wrap(err, "failed to stamp schema version")
		}
		doc["schemaVersion"] = raw
	}

	merged, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reassemble migrated record")
	}

	var record Record
	if err := json.Unmarshal(merged, &record); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal save record")
	}
	return &record, nil
}

func documentVersion(doc map[string]json.RawMessage) (int, error) {
	raw, ok := doc["schemaVersion"]
	if !ok {
		return 0, errors.InvalidArgument("save record has no schemaVersion field")
	}
	var version int
	if err := json.Unmarshal(raw, &version); err != nil {
		return 0, errors.WrapWithCode(err, errors.CodeInvalidArgument, "schemaVersion is not a number")
	}
	if version < 1 {
		return 0, errors.InvalidArgumentf("schemaVersion %d is not a valid version", version)
	}
	return version, nil
}

// migrateV1ToV2 moves combat history from the v1 "combatStats" key to
// "ledger", renames the "executed" counter to "executions", and adds the
// boss set that v1 never tracked.
func migrateV1ToV2(doc map[string]json.RawMessage) error {
	raw, ok := doc["combatStats"]
	if !ok {
		raw = doc["ledger"]
	}

	stats := make(map[string]json.RawMessage)
	if raw != nil {
		if err := json.Unmarshal(raw, &stats); err != nil {
			return errors.WrapWithCode(err, errors.CodeInvalidArgument, "combatStats is not an object")
		}
	}

	if executed, ok := stats["executed"]; ok {
		stats["executions"] = executed
		delete(stats, "executed")
	}
	if _, ok := stats["enemiesDefeated"]; !ok {
		stats["enemiesDefeated"] = json.RawMessage("[]")
	}
	if _, ok := stats["bossesDefeated"]; !ok {
		stats["bossesDefeated"] = json.RawMessage("[]")
	}

	merged, err := json.Marshal(stats)
	if err != nil {
		return errors.Wrap(err, "failed to rebuild ledger")
	}
	doc["ledger"] = merged
	delete(doc, "combatStats")
	return nil
}
