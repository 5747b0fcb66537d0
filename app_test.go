package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mapstudio-desktop/internal/config"
	"mapstudio-desktop/internal/geometry"
	"mapstudio-desktop/internal/mapstate"
)

func testApp() *App {
	return &App{
		settings: config.DefaultSettings(),
		presets:  geometry.NewRegistry(),
		state:    &mapstate.State{},
	}
}

// TestExportDataRejectsUnknownDataType: the parse failure is reported as an
// error and recorded by the failure tracker without an analytics client
func TestExportDataRejectsUnknownDataType(t *testing.T) {
	app := testApp()

	result, err := app.ExportData(ExportRequest{DataType: "xlsx"})
	assert.Error(t, err)
	assert.Nil(t, result)
}

// TestGetExportPresets enumerates the fixed preset sets for the UI
func TestGetExportPresets(t *testing.T) {
	presets := testApp().GetExportPresets()
	assert.Len(t, presets.Ratios, 3)
	assert.Len(t, presets.Resolutions, 2)
}
