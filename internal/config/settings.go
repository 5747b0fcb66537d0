package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// UserSettings represents persistent user preferences
type UserSettings struct {
	// Export settings
	DownloadPath        string `json:"downloadPath"`
	DefaultRatio        string `json:"defaultRatio"`      // ratio preset ID
	DefaultResolution   string `json:"defaultResolution"` // resolution preset ID
	AutoOpenDownloadDir bool   `json:"autoOpenDownloadDir"`

	// Base map access token used when the user does not supply one per export
	MapboxToken string `json:"mapboxToken,omitempty"`

	// UI preferences
	Theme string `json:"theme"` // "light", "dark", "system"

	// Anonymous per-install identifier for analytics
	InstallID string `json:"installId"`
}

// DefaultSettings returns default user settings
func DefaultSettings() *UserSettings {
	homeDir, _ := os.UserHomeDir()
	downloadPath := filepath.Join(homeDir, "Downloads", "mapstudio")

	return &UserSettings{
		DownloadPath:        downloadPath,
		DefaultRatio:        "FOUR_BY_THREE",
		DefaultResolution:   "ONE_X",
		AutoOpenDownloadDir: true,
		Theme:               "system",
		InstallID:           uuid.NewString(),
	}
}

// GetSettingsPath returns the OS-specific settings file path
func GetSettingsPath() string {
	homeDir, _ := os.UserHomeDir()

	baseDir := filepath.Join(homeDir, ".mapstudio", "desktop", "settings")

	// Ensure directory exists
	os.MkdirAll(baseDir, 0755)

	return filepath.Join(baseDir, "settings.json")
}

// LoadSettings loads user settings from disk
func LoadSettings() (*UserSettings, error) {
	settingsPath := GetSettingsPath()

	// If file doesn't exist, return defaults
	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		return DefaultSettings(), nil
	}

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings UserSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	// Merge with defaults for any missing fields
	defaults := DefaultSettings()
	if settings.DownloadPath == "" {
		settings.DownloadPath = defaults.DownloadPath
	}
	if settings.DefaultRatio == "" {
		settings.DefaultRatio = defaults.DefaultRatio
	}
	if settings.DefaultResolution == "" {
		settings.DefaultResolution = defaults.DefaultResolution
	}
	if settings.Theme == "" {
		settings.Theme = defaults.Theme
	}
	if settings.InstallID == "" {
		// Settings written by older builds lack an install ID; assign one
		// and persist it so analytics stay stable across runs.
		settings.InstallID = uuid.NewString()
		if err := SaveSettings(&settings); err != nil {
			return nil, err
		}
	}

	return &settings, nil
}

// SaveSettings saves user settings to disk
func SaveSettings(settings *UserSettings) error {
	settingsPath := GetSettingsPath()

	// Ensure directory exists
	dir := filepath.Dir(settingsPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(settingsPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}
