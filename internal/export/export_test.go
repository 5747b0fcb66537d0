package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapstudio-desktop/internal/datauri"
	"mapstudio-desktop/internal/exporters"
	"mapstudio-desktop/internal/mapstate"
)

func testState() *mapstate.State {
	return &mapstate.State{
		Datasets: []*mapstate.Dataset{
			{
				ID:     "trips",
				Label:  "Trips",
				Fields: []mapstate.Field{{Name: "city", Type: "string"}},
				AllRows: [][]interface{}{
					{"Cairo"}, {"Oslo"},
				},
			},
			{
				ID:     "stations",
				Label:  "Stations",
				Fields: []mapstate.Field{{Name: "name", Type: "string"}},
				AllRows: [][]interface{}{
					{"Central"},
				},
			},
		},
		Info: mapstate.MapInfo{Title: "Commutes"},
	}
}

// TestImagePayloadNoPreview is a no-op, not an error, when capture has not
// run yet
func TestImagePayloadNoPreview(t *testing.T) {
	payload, err := ImagePayload(testState())
	assert.NoError(t, err)
	assert.Nil(t, payload)
}

// TestImagePayloadDecodesPreview recovers the captured bytes and names the
// file after the recovered MIME type
func TestImagePayloadDecodesPreview(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47}
	state := testState()
	state.UI.ExportImage.ImageDataURI = datauri.Encode("image/png", raw)

	payload, err := ImagePayload(state)
	require.NoError(t, err)
	require.NotNil(t, payload)
	assert.Equal(t, "mapstudio.png", payload.Filename)
	assert.Equal(t, "image/png", payload.MimeType)
	assert.Equal(t, raw, payload.Bytes)
}

// TestImagePayloadMalformedPreview fails loudly instead of emitting a
// corrupted payload
func TestImagePayloadMalformedPreview(t *testing.T) {
	state := testState()
	state.UI.ExportImage.ImageDataURI = "data:image/png;base64"

	payload, err := ImagePayload(state)
	assert.Error(t, err)
	assert.Nil(t, payload)
}

// TestConfigPayload switches between full state and config-only documents
func TestConfigPayload(t *testing.T) {
	full, err := ConfigPayload(testState(), true)
	require.NoError(t, err)
	assert.Equal(t, "mapstudio.json", full.Filename)
	assert.Equal(t, "application/json", full.MimeType)

	var fullDoc mapstate.SavedMap
	require.NoError(t, json.Unmarshal(full.Bytes, &fullDoc))
	assert.Len(t, fullDoc.Datasets, 2)

	configOnly, err := ConfigPayload(testState(), false)
	require.NoError(t, err)

	var configDoc mapstate.SavedMap
	require.NoError(t, json.Unmarshal(configOnly.Bytes, &configDoc))
	assert.Empty(t, configDoc.Datasets)
	require.NotNil(t, configDoc.Config)
}

// TestStandalonePayloadTokenPrecedence: the user token wins only when it is
// a non-empty string
func TestStandalonePayloadTokenPrecedence(t *testing.T) {
	state := testState()

	payload, err := StandalonePayload(state, StandaloneOptions{
		UserToken:     "pk.user",
		FallbackToken: "pk.fallback",
		Mode:          "READ_ONLY",
	})
	require.NoError(t, err)
	html := string(payload.Bytes)
	assert.Contains(t, html, "pk.user")
	assert.NotContains(t, html, "pk.fallback")
	assert.Contains(t, html, "READ_ONLY")

	payload, err = StandalonePayload(state, StandaloneOptions{
		UserToken:     "",
		FallbackToken: "pk.fallback",
	})
	require.NoError(t, err)
	assert.Contains(t, string(payload.Bytes), "pk.fallback")
}

// TestStandalonePayloadEmbedsState: the document carries the serialized map
// and the delivery metadata names it as HTML
func TestStandalonePayloadEmbedsState(t *testing.T) {
	payload, err := StandalonePayload(testState(), StandaloneOptions{})
	require.NoError(t, err)
	assert.Equal(t, "mapstudio.html", payload.Filename)
	assert.Equal(t, "text/html", payload.MimeType)
	assert.True(t, strings.Contains(string(payload.Bytes), "\"Trips\""))
	assert.Contains(t, string(payload.Bytes), "Commutes")
}

// TestDataPayloadsSelection exports one payload per selected dataset
func TestDataPayloadsSelection(t *testing.T) {
	payloads, err := DataPayloads(testState(), DataOptions{
		DataType: exporters.DataTypeCSV,
	})
	require.NoError(t, err)
	require.Len(t, payloads, 2)
	assert.Equal(t, "mapstudio_Trips.csv", payloads[0].Filename)
	assert.Equal(t, "mapstudio_Stations.csv", payloads[1].Filename)

	payloads, err = DataPayloads(testState(), DataOptions{
		SelectedDataset: "stations",
		DataType:        exporters.DataTypeCSV,
	})
	require.NoError(t, err)
	require.Len(t, payloads, 1)
	assert.Equal(t, "mapstudio_Stations.csv", payloads[0].Filename)
}

// TestDataPayloadsNothingToExport: an empty collection produces zero
// payloads and no error
func TestDataPayloadsNothingToExport(t *testing.T) {
	payloads, err := DataPayloads(&mapstate.State{}, DataOptions{
		DataType: exporters.DataTypeCSV,
	})
	assert.NoError(t, err)
	assert.Empty(t, payloads)
}

// TestDataPayloadsUnknownType: datasets with no wired serializer are skipped
// silently
func TestDataPayloadsUnknownType(t *testing.T) {
	payloads, err := DataPayloads(testState(), DataOptions{
		DataType: exporters.DataType("parquet"),
	})
	assert.NoError(t, err)
	assert.Empty(t, payloads)
}

// TestMapBundle returns the serialized map plus the thumbnail when a preview
// was captured
func TestMapBundle(t *testing.T) {
	state := testState()
	bundle, err := MapBundle(state)
	require.NoError(t, err)
	assert.Nil(t, bundle.Thumbnail)
	assert.Equal(t, "Commutes", bundle.Info.Title)

	var doc mapstate.SavedMap
	require.NoError(t, json.Unmarshal(bundle.SerializedMap, &doc))
	assert.Len(t, doc.Datasets, 2)

	raw := []byte{1, 2, 3}
	state.UI.ExportImage.ImageDataURI = datauri.Encode("image/jpeg", raw)
	bundle, err = MapBundle(state)
	require.NoError(t, err)
	require.NotNil(t, bundle.Thumbnail)
	assert.Equal(t, "image/jpeg", bundle.Thumbnail.MimeType)
	assert.Equal(t, raw, bundle.Thumbnail.Bytes)
}
