package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Preferences are small bits of state remembered between runs. PlayerName is
// only a prefill for the welcome screen; the screen itself never writes it.
type Preferences struct {
	PlayerName string `yaml:"player_name,omitempty"`
	WorldPath  string `yaml:"world,omitempty"`
}

// LoadPreferences returns zero preferences when the file does not exist yet.
func LoadPreferences() (Preferences, error) {
	var prefs Preferences

	path, err := GetPreferencesPath()
	if err != nil {
		return prefs, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return prefs, nil
	}
	if err != nil {
		return prefs, err
	}

	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return prefs, err
	}
	return prefs, nil
}

func SavePreferences(prefs Preferences) error {
	path, err := GetPreferencesPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(prefs)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
