package exporters

import (
	"fmt"
	"log"

	"mapstudio-desktop/internal/mapstate"
	"mapstudio-desktop/internal/utils/naming"
)

// DefaultBaseName is the fixed base used for export filenames.
const DefaultBaseName = "mapstudio"

// SelectDatasets picks the datasets to export. If selectedID names an
// existing dataset the result contains exactly that one; otherwise it
// contains every dataset in collection order. An empty result means "nothing
// to export" and callers must treat it as a no-op.
func SelectDatasets(datasets []*mapstate.Dataset, selectedID string) []*mapstate.Dataset {
	if selectedID != "" {
		for _, ds := range datasets {
			if ds.ID == selectedID {
				return []*mapstate.Dataset{ds}
			}
		}
	}
	return datasets
}

// ExportDataset serializes one dataset into a named payload in the requested
// format. A dataType with no wired serializer produces no payload and no
// error: that is the extension seam for future formats, not a failure.
func ExportDataset(ds *mapstate.Dataset, dataType DataType, filtered bool) (*NamedPayload, error) {
	rows := ds.RowsForExport(filtered)

	switch dataType {
	case DataTypeCSV:
		data, err := rowsToCSV(rows, ds.Fields)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize dataset %q as CSV: %w", ds.Label, err)
		}
		return &NamedPayload{
			Filename: naming.ExportFilename(DefaultBaseName, ds.Label, dataType.Extension()),
			MimeType: dataType.MimeType(),
			Bytes:    data,
		}, nil
	default:
		log.Printf("[Export] no serializer wired for data type %q, skipping dataset %q", dataType, ds.Label)
		return nil, nil
	}
}
