// Package standalone renders a saved map into a single self-contained
// interactive HTML document.
package standalone

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
)

//go:embed template.html
var documentTemplate string

var tmpl = template.Must(template.New("standalone").Parse(documentTemplate))

// Document is the input to the standalone renderer. SavedMap is the
// serialized map JSON, embedded verbatim inside a script tag.
type Document struct {
	Title       string
	Mode        string
	AccessToken string
	SavedMap    []byte
}

// Render produces the standalone HTML document bytes.
func Render(doc Document) ([]byte, error) {
	if doc.Title == "" {
		doc.Title = "MapStudio"
	}

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, struct {
		Title       string
		Mode        string
		AccessToken string
		SavedMap    template.JS
	}{
		Title:       doc.Title,
		Mode:        doc.Mode,
		AccessToken: doc.AccessToken,
		SavedMap:    template.JS(doc.SavedMap),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render standalone document: %w", err)
	}
	return buf.Bytes(), nil
}
