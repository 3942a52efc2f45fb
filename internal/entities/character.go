// Package entities defines the core data model shared across the gladiator
// client: the character, equipment, inventory, and the profile aggregate that
// the save layer persists.
package entities

// HomeCity is where every gladiator starts and where captives are shipped
// back to. Losing a battle here is fatal rather than a capture.
const HomeCity = "Capua"

// Stats are the five combat attributes. Between sessions they are owned by
// the save layer; an active battle session only ever reads them.
type Stats struct {
	Strength     int `json:"strength"`
	Agility      int `json:"agility"`
	Endurance    int `json:"endurance"`
	Intelligence int `json:"intelligence"`
	Charisma     int `json:"charisma"`
}

// BodyAttributes are the creation-time sliders that combat stats derive from.
// They never change after creation and survive capture.
type BodyAttributes struct {
	Height  int `json:"height"`
	Weight  int `json:"weight"`
	Chest   int `json:"chest"`
	Muscles int `json:"muscles"`
	Arms    int `json:"arms"`
	Legs    int `json:"legs"`
}

// Character is the player's gladiator.
type Character struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Gender      string         `json:"gender"`
	Homeland    string         `json:"homeland"`
	Level       int            `json:"level"`
	Experience  int            `json:"experience"`
	SkillPoints int            `json:"skillPoints"`
	Gold        int            `json:"gold"`
	CurrentCity string         `json:"currentCity"`
	Stats       Stats          `json:"stats"`
	Attributes  BodyAttributes `json:"attributes"`
}

// LevelUp applies the level-up the resolution service signalled: the service
// owns the experience math, the client only mirrors the derived bumps.
func (c *Character) LevelUp() {
	c.Level++
	c.SkillPoints += 2
	c.Stats.Strength += 2
	c.Stats.Agility++
	c.Stats.Endurance += 2
}
