package main

import (
	"fmt"
	"log"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"mapstudio-desktop/internal/config"
	"mapstudio-desktop/internal/delivery"
	"mapstudio-desktop/internal/geometry"
)

// ===================
// Settings Management
// ===================

// GetSettings returns current user settings
func (a *App) GetSettings() (*config.UserSettings, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Return a copy to prevent external modifications
	settingsCopy := *a.settings
	return &settingsCopy, nil
}

// SaveSettings saves user settings to disk and updates app state
func (a *App) SaveSettings(settings *config.UserSettings) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Validate settings
	if settings.DownloadPath == "" {
		return fmt.Errorf("download path cannot be empty")
	}
	if a.presets.Ratio(geometry.RatioID(settings.DefaultRatio)).ID() != geometry.RatioID(settings.DefaultRatio) {
		return fmt.Errorf("unknown ratio preset: %s", settings.DefaultRatio)
	}
	if a.presets.Resolution(geometry.ResolutionID(settings.DefaultResolution)).ID() != geometry.ResolutionID(settings.DefaultResolution) {
		return fmt.Errorf("unknown resolution preset: %s", settings.DefaultResolution)
	}

	// The install ID is assigned once and never edited from the UI
	settings.InstallID = a.settings.InstallID

	// Save to disk
	if err := config.SaveSettings(settings); err != nil {
		return err
	}

	// Update app state, rebuilding the sink when the download path moved
	if settings.DownloadPath != a.settings.DownloadPath {
		sink, err := delivery.NewDirectorySink(settings.DownloadPath)
		if err != nil {
			return err
		}
		a.sink = sink
	}
	a.settings = settings

	log.Printf("Settings saved")
	return nil
}

// GetSettingsPath returns the OS-specific settings file path
func (a *App) GetSettingsPath() string {
	return config.GetSettingsPath()
}

// SelectDownloadFolder opens a folder picker dialog and persists the choice
func (a *App) SelectDownloadFolder() (string, error) {
	path, err := wailsRuntime.OpenDirectoryDialog(a.ctx, wailsRuntime.OpenDialogOptions{
		Title:            "Select Download Folder",
		DefaultDirectory: a.settings.DownloadPath,
	})
	if err != nil {
		return "", err
	}

	if path != "" {
		a.mu.Lock()
		defer a.mu.Unlock()

		sink, err := delivery.NewDirectorySink(path)
		if err != nil {
			return "", err
		}
		a.sink = sink
		a.settings.DownloadPath = path
		if err := config.SaveSettings(a.settings); err != nil {
			return "", err
		}
	}

	return path, nil
}
