// Package export contains the top-level export orchestrators. Each one reads
// a slice of the application state and produces a named byte payload (or a
// bundle); handing payloads to a delivery sink is the caller's explicit side
// effect.
package export

import (
	"encoding/json"
	"fmt"

	"mapstudio-desktop/internal/datauri"
	"mapstudio-desktop/internal/exporters"
	"mapstudio-desktop/internal/mapstate"
	"mapstudio-desktop/internal/standalone"
	"mapstudio-desktop/internal/utils/naming"
)

// ImagePayload turns the previously captured map preview into a raster image
// payload. Returns nil with no error when no preview has been captured yet:
// that is a precondition the caller satisfies by triggering capture first,
// not an error.
func ImagePayload(state *mapstate.State) (*exporters.NamedPayload, error) {
	uri := state.UI.ExportImage.ImageDataURI
	if uri == "" {
		return nil, nil
	}

	payload, err := datauri.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid captured preview: %w", err)
	}

	return &exporters.NamedPayload{
		Filename: naming.ExportFilename(exporters.DefaultBaseName, "", extensionForMime(payload.MimeType)),
		MimeType: payload.MimeType,
		Bytes:    payload.Bytes,
	}, nil
}

// ConfigPayload serializes the application state as a saved-map document:
// the full state including dataset rows when hasFullData is set, otherwise
// only the map configuration.
func ConfigPayload(state *mapstate.State, hasFullData bool) (*exporters.NamedPayload, error) {
	var saved *mapstate.SavedMap
	if hasFullData {
		saved = mapstate.Save(state)
	} else {
		saved = mapstate.ConfigOnly(state)
	}

	data, err := mapstate.Marshal(saved)
	if err != nil {
		return nil, err
	}

	return &exporters.NamedPayload{
		Filename: naming.ExportFilename(exporters.DefaultBaseName, "", ".json"),
		MimeType: "application/json",
		Bytes:    data,
	}, nil
}

// StandaloneOptions configures the standalone document export. UserToken
// overrides FallbackToken only when it is a non-empty string.
type StandaloneOptions struct {
	UserToken     string
	FallbackToken string
	Mode          string
}

// StandalonePayload serializes the full state and renders it into a single
// self-contained interactive HTML document.
func StandalonePayload(state *mapstate.State, opts StandaloneOptions) (*exporters.NamedPayload, error) {
	token := opts.FallbackToken
	if opts.UserToken != "" {
		token = opts.UserToken
	}

	data, err := mapstate.Marshal(mapstate.Save(state))
	if err != nil {
		return nil, err
	}

	html, err := standalone.Render(standalone.Document{
		Title:       state.Info.Title,
		Mode:        opts.Mode,
		AccessToken: token,
		SavedMap:    data,
	})
	if err != nil {
		return nil, err
	}

	return &exporters.NamedPayload{
		Filename: naming.ExportFilename(exporters.DefaultBaseName, "", ".html"),
		MimeType: "text/html",
		Bytes:    html,
	}, nil
}

// DataOptions configures a tabular data export.
type DataOptions struct {
	SelectedDataset string
	DataType        exporters.DataType
	Filtered        bool
}

// DataPayloads exports each selected dataset as one payload. An empty result
// with a nil error means nothing was exported, which callers treat as a
// no-op.
func DataPayloads(state *mapstate.State, opts DataOptions) ([]*exporters.NamedPayload, error) {
	selected := exporters.SelectDatasets(state.Datasets, opts.SelectedDataset)

	payloads := make([]*exporters.NamedPayload, 0, len(selected))
	for _, ds := range selected {
		payload, err := exporters.ExportDataset(ds, opts.DataType, opts.Filtered)
		if err != nil {
			return nil, err
		}
		if payload == nil {
			continue
		}
		payloads = append(payloads, payload)
	}
	return payloads, nil
}

// Bundle is the non-delivering export variant for programmatic consumers.
type Bundle struct {
	SerializedMap json.RawMessage  `json:"serializedMap"`
	Info          mapstate.MapInfo `json:"mapInfo"`
	Thumbnail     *datauri.Payload `json:"-"`
}

// MapBundle returns the serialized map, its metadata and the captured
// preview (when present) without writing anything to a sink.
func MapBundle(state *mapstate.State) (*Bundle, error) {
	data, err := mapstate.Marshal(mapstate.Save(state))
	if err != nil {
		return nil, err
	}

	bundle := &Bundle{
		SerializedMap: data,
		Info:          state.Info,
	}

	if uri := state.UI.ExportImage.ImageDataURI; uri != "" {
		thumbnail, err := datauri.Parse(uri)
		if err != nil {
			return nil, fmt.Errorf("invalid captured preview: %w", err)
		}
		bundle.Thumbnail = thumbnail
	}

	return bundle, nil
}

// extensionForMime maps a raster MIME type to its file extension, defaulting
// to .png for anything unrecognized.
func extensionForMime(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
