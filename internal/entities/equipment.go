package entities

// Slot names one of the six fixed equipment positions.
type Slot string

// Equipment slots.
const (
	SlotHelmet     Slot = "helmet"
	SlotChestplate Slot = "chestplate"
	SlotGauntlets  Slot = "gauntlets"
	SlotWeapon     Slot = "weapon"
	SlotShield     Slot = "shield"
	SlotGreaves    Slot = "greaves"
)

// AllSlots lists every slot in display order.
var AllSlots = []Slot{
	SlotHelmet,
	SlotChestplate,
	SlotGauntlets,
	SlotWeapon,
	SlotShield,
	SlotGreaves,
}

// EquipmentSet maps each of the six slots to at most one equipped item ID.
// An equipped item ID must also exist in the character's inventory; the
// session orchestrator maintains that invariant.
type EquipmentSet struct {
	Helmet     string `json:"helmet,omitempty"`
	Chestplate string `json:"chestplate,omitempty"`
	Gauntlets  string `json:"gauntlets,omitempty"`
	Weapon     string `json:"weapon,omitempty"`
	Shield     string `json:"shield,omitempty"`
	Greaves    string `json:"greaves,omitempty"`
}

func (e *EquipmentSet) slotRef(slot Slot) *string {
	switch slot {
	case SlotHelmet:
		return &e.Helmet
	case SlotChestplate:
		return &e.Chestplate
	case SlotGauntlets:
		return &e.Gauntlets
	case SlotWeapon:
		return &e.Weapon
	case SlotShield:
		return &e.Shield
	case SlotGreaves:
		return &e.Greaves
	default:
		return nil
	}
}

// Get returns the item ID equipped in the slot, if any.
func (e *EquipmentSet) Get(slot Slot) (string, bool) {
	ref := e.slotRef(slot)
	if ref == nil || *ref == "" {
		return "", false
	}
	return *ref, true
}

// Equip places an item ID into the slot, replacing any previous occupant.
// Returns false for an unknown slot.
func (e *EquipmentSet) Equip(slot Slot, itemID string) bool {
	ref := e.slotRef(slot)
	if ref == nil {
		return false
	}
	*ref = itemID
	return true
}

// Clear empties the slot.
func (e *EquipmentSet) Clear(slot Slot) {
	if ref := e.slotRef(slot); ref != nil {
		*ref = ""
	}
}

// ClearItemIDs empties exactly the slots holding the listed item IDs and
// returns the slots that were cleared. Slots holding other items are left
// untouched. Used by the capture transition.
func (e *EquipmentSet) ClearItemIDs(itemIDs []string) []Slot {
	lost := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		lost[id] = true
	}

	var cleared []Slot
	for _, slot := range AllSlots {
		ref := e.slotRef(slot)
		if *ref != "" && lost[*ref] {
			*ref = ""
			cleared = append(cleared, slot)
		}
	}
	return cleared
}

// UsedSlots counts occupied slots.
func (e *EquipmentSet) UsedSlots() int {
	n := 0
	for _, slot := range AllSlots {
		if _, ok := e.Get(slot); ok {
			n++
		}
	}
	return n
}
