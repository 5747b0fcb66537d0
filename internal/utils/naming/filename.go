package naming

import (
	"fmt"
	"strings"
)

// SanitizeLabel formats a user-provided label for use in filenames.
// Path separators and other filesystem-hostile characters are replaced with
// '-' for Windows compatibility; surrounding whitespace is trimmed.
func SanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"\"", "-",
		"<", "-",
		">", "-",
		"|", "-",
	)
	return replacer.Replace(label)
}

// ExportFilename creates a standardized export filename
// Format: {base}_{label}{ext}, or {base}{ext} when the label is empty.
// Two datasets sharing a label produce the same filename; the delivery sink
// disambiguates on disk.
func ExportFilename(base, label, ext string) string {
	label = SanitizeLabel(label)
	if label == "" {
		return base + ext
	}
	return fmt.Sprintf("%s_%s%s", base, label, ext)
}
