// Package etree exports search results as KML documents for map import.
package etree

import (
	"context"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/leadscout"
)

var _ leadscout.Exporter = (*KMLExporter)(nil)

// KMLExporter writes a search result as a KML document with one placemark
// per lead. Placemarks carry the street address rather than coordinates;
// map tools geocode addresses on import.
type KMLExporter struct {
	// Path is the destination file. When empty, a name derived from the
	// search terms is used in the current directory.
	Path string
}

// Export writes the KML file and returns the file path.
func (e *KMLExporter) Export(_ context.Context, result *leadscout.Result) (string, error) {
	path := e.Path
	if path == "" {
		path = leadscout.ExportFilename(result.Search, "kml")
	}

	if err := Render(result).WriteToFile(path); err != nil {
		return "", leadscout.Errorf(leadscout.EINTERNAL, "failed to write KML file: %v", err)
	}

	return path, nil
}

// Render builds the KML document for a result.
func Render(result *leadscout.Result) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	kml := doc.CreateElement("kml")
	kml.CreateAttr("xmlns", "http://www.opengis.net/kml/2.2")

	document := kml.CreateElement("Document")
	document.CreateElement("name").SetText(fmt.Sprintf("Leads: %s in %s", result.Search.Keyword, result.Search.Location))

	for _, lead := range result.Leads {
		placemark := document.CreateElement("Placemark")
		placemark.CreateElement("name").SetText(lead.Name)
		if lead.Address != "" {
			placemark.CreateElement("address").SetText(lead.Address)
		}
		if desc := description(lead); desc != "" {
			placemark.CreateElement("description").SetText(desc)
		}
	}

	doc.Indent(2)
	return doc
}

// description assembles the contact block shown in the placemark bubble.
func description(lead *leadscout.Lead) string {
	var lines []string

	if lead.Category != "" {
		lines = append(lines, lead.Category)
	}
	if lead.Phone != "" {
		lines = append(lines, "Phone: "+lead.Phone)
	}
	if lead.Website != "" {
		lines = append(lines, "Website: "+lead.Website)
	}
	if lead.Email != "" {
		lines = append(lines, "Email: "+lead.Email)
	}
	if lead.Rating != nil {
		line := fmt.Sprintf("Rating: %.1f", *lead.Rating)
		if lead.ReviewCount != nil {
			line += fmt.Sprintf(" (%d reviews)", *lead.ReviewCount)
		}
		lines = append(lines, line)
	}
	if lead.Hours != "" {
		lines = append(lines, "Hours: "+lead.Hours)
	}

	return strings.Join(lines, "\n")
}
