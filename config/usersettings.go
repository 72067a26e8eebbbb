package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// UserSettings holds operator-configurable settings that persist across
// sessions.
type UserSettings struct {
	RotateRiverLabels             bool    `json:"rotate_river_labels"`
	AppearanceAnimation           bool    `json:"appearance_animation"`
	AppearanceAnimationDurationMs int     `json:"appearance_animation_duration_ms"`
	HeightContourAlpha            float64 `json:"height_contour_alpha"`
	GlobalSmoothStrength          float64 `json:"global_smooth_strength"`
}

// CurrentSettings is the loaded user settings, available at startup.
var CurrentSettings = DefaultSettings()

// DefaultSettings returns the default user settings.
func DefaultSettings() *UserSettings {
	return &UserSettings{
		RotateRiverLabels:             true,
		AppearanceAnimation:           true,
		AppearanceAnimationDurationMs: 180,
		HeightContourAlpha:            0.8,
		GlobalSmoothStrength:          1.0,
	}
}

// Clamp pulls out-of-range values back into their documented ranges.
func (s *UserSettings) Clamp() {
	if s.AppearanceAnimationDurationMs < 0 {
		s.AppearanceAnimationDurationMs = 0
	}
	if s.AppearanceAnimationDurationMs > 2000 {
		s.AppearanceAnimationDurationMs = 2000
	}
	if s.HeightContourAlpha < 0 {
		s.HeightContourAlpha = 0
	}
	if s.HeightContourAlpha > 1 {
		s.HeightContourAlpha = 1
	}
	if s.GlobalSmoothStrength < 0.1 {
		s.GlobalSmoothStrength = 0.1
	}
	if s.GlobalSmoothStrength > 1.0 {
		s.GlobalSmoothStrength = 1.0
	}
}

// LoadUserSettings reads settings from the given JSON path. If the file
// doesn't exist or is invalid, defaults are used and the file is created.
func LoadUserSettings(path string) {
	CurrentSettings = DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		// File missing — use defaults and save them
		fmt.Printf("No settings file found, using defaults\n")
		SaveUserSettings(path)
		return
	}

	var settings UserSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		fmt.Printf("WARNING: Failed to parse %s: %v (using defaults)\n", path, err)
		SaveUserSettings(path)
		return
	}
	settings.Clamp()
	CurrentSettings = &settings
}

// SaveUserSettings writes the current settings to the given path.
func SaveUserSettings(path string) {
	data, err := json.MarshalIndent(CurrentSettings, "", "  ")
	if err != nil {
		fmt.Printf("WARNING: Failed to marshal settings: %v\n", err)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		fmt.Printf("WARNING: Failed to write %s: %v\n", path, err)
	}
}
