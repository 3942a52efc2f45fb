// Package save persists versioned profile snapshots into named slots.
package save

//go:generate mockgen -destination=mock/mock_repository.go -package=savemock github.com/arenalabs/gladiator/internal/repositories/save Repository

import (
	"context"

	"github.com/arenalabs/gladiator/internal/entities"
)

// AutosaveSlotID is the reserved slot the session layer writes to on
// terminal-transition acknowledgment. It cannot be deleted.
const AutosaveSlotID = "autosave"

// NamedSlotIDs are the player-selectable slots.
var NamedSlotIDs = []string{"slot_1", "slot_2", "slot_3"}

// SlotIDs lists every slot, reserved one first.
func SlotIDs() []string {
	return append([]string{AutosaveSlotID}, NamedSlotIDs...)
}

// Repository defines the interface for save-slot persistence.
type Repository interface {
	// Save writes a snapshot of the profile into the slot, atomically
	// replacing any previous record.
	// Returns errors.InvalidArgument for unknown slots or nil profiles
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Autosave is Save targeting the reserved autosave slot.
	Autosave(ctx context.Context, input AutosaveInput) (*AutosaveOutput, error)

	// Load reads the record in the slot. An empty slot yields a nil
	// record, not an error.
	// Returns errors.DataLoss when the stored schema version cannot be
	// migrated to the current one
	Load(ctx context.Context, input LoadInput) (*LoadOutput, error)

	// Delete clears a named slot.
	// Returns errors.PermissionDenied for the autosave slot
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// Export returns the exact stored serialization of the slot's record,
	// nil for an empty slot.
	Export(ctx context.Context, input ExportInput) (*ExportOutput, error)

	// Import validates a blob and writes it into the target slot.
	// Returns errors.InvalidArgument without touching the slot when the
	// blob is missing required fields
	Import(ctx context.Context, input ImportInput) (*ImportOutput, error)

	// ListSlots returns display metadata for every slot.
	ListSlots(ctx context.Context, input ListSlotsInput) (*ListSlotsOutput, error)
}

// SaveInput defines the input for saving to a slot.
type SaveInput struct {
	SlotID  string
	Profile *entities.Profile
}

// SaveOutput defines the output for saving to a slot.
type SaveOutput struct {
	Record *Record
}

// AutosaveInput defines the input for the autosave trigger.
type AutosaveInput struct {
	Profile *entities.Profile
}

// AutosaveOutput defines the output for the autosave trigger.
type AutosaveOutput struct {
	Record *Record
}

// LoadInput defines the input for loading a slot.
type LoadInput struct {
	SlotID string
}

// LoadOutput defines the output for loading a slot. Record is nil when the
// slot is empty.
type LoadOutput struct {
	Record *Record
}

// DeleteInput defines the input for clearing a slot.
type DeleteInput struct {
	SlotID string
}

// DeleteOutput defines the output for clearing a slot.
type DeleteOutput struct{}

// ExportInput defines the input for exporting a slot.
type ExportInput struct {
	SlotID string
}

// ExportOutput defines the output for exporting a slot. Data is nil when the
// slot is empty.
type ExportOutput struct {
	Data []byte
}

// ImportInput defines the input for importing a blob into a slot.
type ImportInput struct {
	SlotID string
	Data   []byte
}

// ImportOutput defines the output for importing a blob.
type ImportOutput struct {
	Record *Record
}

// ListSlotsInput defines the input for listing slot metadata.
type ListSlotsInput struct{}

// ListSlotsOutput defines the output for listing slot metadata.
type ListSlotsOutput struct {
	Slots []SlotInfo
}
