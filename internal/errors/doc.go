// Package errors provides structured error handling for the gladiator client.
//
// Errors carry a Code, a message, an optional cause, and optional metadata.
// The codes double as the game's error taxonomy:
//
//   - Unavailable / DeadlineExceeded: transport failures talking to the
//     combat resolution service; the battle session reverts and the action
//     may be retried
//   - FailedPrecondition: a caller violated the session state machine
//     (for example, submitting an action while one is already in flight)
//   - InvalidArgument: bad input, including malformed save imports
//   - DataLoss: a persisted save carries a schema version that cannot be
//     migrated to the current one
//   - PermissionDenied: an operation on a protected save slot
//   - Internal: storage and serialization failures
//
// Creating and checking errors:
//
//	err := errors.NotFoundf("slot %q is empty", slotID)
//	if errors.IsFailedPrecondition(err) { ... }
//
// Wrapping preserves the original code:
//
//	if err := repo.Load(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load save")
//	}
//
// Config validation uses the builder:
//
//	vb := errors.NewValidationBuilder()
//	if cfg.Client == nil {
//	    vb.RequiredField("Client")
//	}
//	return vb.Build()
package errors
