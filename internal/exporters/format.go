// Package exporters selects datasets from the application state and turns
// each one into a named byte payload in the requested tabular format.
package exporters

import "fmt"

// DataType represents the tabular format options for dataset exports
type DataType string

const (
	DataTypeCSV DataType = "csv"
)

// ParseDataType converts a format string to a DataType
// Accepted values: "csv"
func ParseDataType(dataType string) (DataType, error) {
	switch dataType {
	case "csv":
		return DataTypeCSV, nil
	default:
		return "", fmt.Errorf("invalid data type: %s (must be 'csv')", dataType)
	}
}

// Extension returns the file extension for the data type, including the dot.
func (t DataType) Extension() string {
	switch t {
	case DataTypeCSV:
		return ".csv"
	default:
		return ""
	}
}

// MimeType returns the MIME type delivered alongside payloads of this type.
func (t DataType) MimeType() string {
	switch t {
	case DataTypeCSV:
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}

// NamedPayload is the terminal export artifact: a byte buffer paired with a
// filename and MIME type, ready for delivery.
type NamedPayload struct {
	Filename string
	MimeType string
	Bytes    []byte
}
