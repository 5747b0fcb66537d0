// Package mapstate holds the application-state snapshot the frontend pushes
// to the backend, plus the serializers that turn it into a saved-map
// document. The export pipeline reads this state but never mutates it.
package mapstate

// SchemaVersion is embedded in every saved-map document so future loaders
// can migrate old exports.
const SchemaVersion = "v1"

// Field describes a dataset column.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Dataset is one table in the dataset collection. FilteredRowIndices
// references the rows currently visible under active UI filters, in filter
// order.
type Dataset struct {
	ID                 string          `json:"id"`
	Label              string          `json:"label"`
	Fields             []Field         `json:"fields"`
	AllRows            [][]interface{} `json:"allRows"`
	FilteredRowIndices []int           `json:"filteredRowIndices"`
}

// RowsForExport returns the row set a serializer should see: the filtered
// rows resolved through FilteredRowIndices (preserving filter order) when
// filtered is true, otherwise AllRows unchanged. Out-of-range indices are
// skipped.
func (d *Dataset) RowsForExport(filtered bool) [][]interface{} {
	if !filtered {
		return d.AllRows
	}
	rows := make([][]interface{}, 0, len(d.FilteredRowIndices))
	for _, idx := range d.FilteredRowIndices {
		if idx < 0 || idx >= len(d.AllRows) {
			continue
		}
		rows = append(rows, d.AllRows[idx])
	}
	return rows
}

// Filter is an active UI filter on a dataset field.
type Filter struct {
	ID        string        `json:"id"`
	DatasetID string        `json:"datasetId"`
	FieldName string        `json:"fieldName"`
	Type      string        `json:"type"`
	Value     interface{}   `json:"value"`
	Enabled   bool          `json:"enabled"`
	Domain    []interface{} `json:"domain,omitempty"`
}

// Layer is a visual layer definition. Config is opaque to the backend.
type Layer struct {
	ID     string                 `json:"id"`
	Type   string                 `json:"type"`
	Label  string                 `json:"label"`
	Config map[string]interface{} `json:"config"`
}

// MapView is the camera position.
type MapView struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      float64 `json:"zoom"`
	Bearing   float64 `json:"bearing"`
	Pitch     float64 `json:"pitch"`
}

// MapStyle selects the base map.
type MapStyle struct {
	StyleType string `json:"styleType"`
	StyleURL  string `json:"styleUrl,omitempty"`
}

// MapInfo is user-facing map metadata.
type MapInfo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ExportImageState holds the most recent rasterized map preview as a data
// URI, produced by the frontend capture library. Empty until the user
// triggers a capture.
type ExportImageState struct {
	ImageDataURI string `json:"imageDataUri"`
	Ratio        string `json:"ratio"`
	Resolution   string `json:"resolution"`
}

// UIState is the slice of frontend UI state the export pipeline reads.
type UIState struct {
	ExportImage ExportImageState `json:"exportImage"`
}

// State is an immutable snapshot of the application at export time.
type State struct {
	Datasets []*Dataset `json:"datasets"`
	Filters  []*Filter  `json:"filters"`
	Layers   []*Layer   `json:"layers"`
	View     MapView    `json:"view"`
	Style    MapStyle   `json:"style"`
	Info     MapInfo    `json:"info"`
	UI       UIState    `json:"ui"`
}

// DatasetByID returns the dataset with the given ID, or nil.
func (s *State) DatasetByID(id string) *Dataset {
	for _, ds := range s.Datasets {
		if ds.ID == id {
			return ds
		}
	}
	return nil
}
