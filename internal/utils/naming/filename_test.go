package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "mapstudio_Trips.csv", ExportFilename("mapstudio", "Trips", ".csv"))
	assert.Equal(t, "mapstudio.png", ExportFilename("mapstudio", "", ".png"))
	assert.Equal(t, "mapstudio_a-b.csv", ExportFilename("mapstudio", "a/b", ".csv"))
}

func TestSanitizeLabel(t *testing.T) {
	assert.Equal(t, "trips 2024", SanitizeLabel("  trips 2024 "))
	assert.Equal(t, "a-b-c-d", SanitizeLabel(`a\b:c*d`))
	assert.Equal(t, "", SanitizeLabel("   "))
}
