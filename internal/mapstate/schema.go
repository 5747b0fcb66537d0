package mapstate

import (
	"encoding/json"
	"fmt"
)

// SavedConfig is the visual map configuration: style, camera, layers and
// filters, but no row data.
type SavedConfig struct {
	View    MapView   `json:"view"`
	Style   MapStyle  `json:"style"`
	Layers  []*Layer  `json:"layers"`
	Filters []*Filter `json:"filters"`
}

// SavedDataset is the persisted form of a dataset, including its rows.
type SavedDataset struct {
	ID      string          `json:"id"`
	Label   string          `json:"label"`
	Fields  []Field         `json:"fields"`
	AllRows [][]interface{} `json:"allRows"`
}

// SavedMap is the versioned saved-map document. Datasets is empty for
// config-only saves.
type SavedMap struct {
	Version  string          `json:"version"`
	Config   *SavedConfig    `json:"config"`
	Datasets []*SavedDataset `json:"datasets,omitempty"`
	Info     *MapInfo        `json:"info,omitempty"`
}

// Save serializes the full application state: configuration plus all dataset
// rows.
func Save(s *State) *SavedMap {
	saved := ConfigOnly(s)
	saved.Datasets = make([]*SavedDataset, 0, len(s.Datasets))
	for _, ds := range s.Datasets {
		saved.Datasets = append(saved.Datasets, &SavedDataset{
			ID:      ds.ID,
			Label:   ds.Label,
			Fields:  ds.Fields,
			AllRows: ds.AllRows,
		})
	}
	return saved
}

// ConfigOnly serializes only the map configuration: visual style and filters,
// no row data.
func ConfigOnly(s *State) *SavedMap {
	info := s.Info
	return &SavedMap{
		Version: SchemaVersion,
		Config: &SavedConfig{
			View:    s.View,
			Style:   s.Style,
			Layers:  s.Layers,
			Filters: s.Filters,
		},
		Info: &info,
	}
}

// Marshal renders a saved-map document as indented JSON.
func Marshal(m *SavedMap) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal saved map: %w", err)
	}
	return data, nil
}
