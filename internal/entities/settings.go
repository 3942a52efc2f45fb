package entities

// Settings are the player's audio preferences. They ride along in every
// save record so a loaded game sounds the way it was left.
type Settings struct {
	MasterVolume float64 `json:"masterVolume"`
	MusicVolume  float64 `json:"musicVolume"`
	SfxVolume    float64 `json:"sfxVolume"`
}

// DefaultSettings returns the volumes a fresh profile starts with.
func DefaultSettings() Settings {
	return Settings{
		MasterVolume: 0.5,
		MusicVolume:  0.7,
		SfxVolume:    0.8,
	}
}
