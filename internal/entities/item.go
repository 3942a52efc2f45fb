package entities

// Rarity grades an item.
type Rarity string

// Item rarities.
const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

// Item is a piece of equipment or loot.
type Item struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Slot           Slot   `json:"slot"`
	Rarity         Rarity `json:"rarity"`
	Damage         int    `json:"damage,omitempty"`
	Armor          int    `json:"armor,omitempty"`
	StrengthBonus  int    `json:"strengthBonus,omitempty"`
	AgilityBonus   int    `json:"agilityBonus,omitempty"`
	EnduranceBonus int    `json:"enduranceBonus,omitempty"`
	CharismaBonus  int    `json:"charismaBonus,omitempty"`
}

// Inventory is the ordered collection of owned items. Insertion order is
// acquisition order; it matters for display only.
type Inventory []Item

// Add appends an item, preserving acquisition order.
func (inv *Inventory) Add(item Item) {
	*inv = append(*inv, item)
}

// Contains reports whether the inventory holds an item with the given ID.
func (inv Inventory) Contains(itemID string) bool {
	for _, item := range inv {
		if item.ID == itemID {
			return true
		}
	}
	return false
}

// Get returns the item with the given ID, if owned.
func (inv Inventory) Get(itemID string) (Item, bool) {
	for _, item := range inv {
		if item.ID == itemID {
			return item, true
		}
	}
	return Item{}, false
}
