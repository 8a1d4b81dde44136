// Package csv renders search results as comma-separated values. The CSV
// text is also the body used by the clipboard and gist exporters.
package csv

import (
	"context"
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/fwojciec/leadscout"
)

var _ leadscout.Exporter = (*Exporter)(nil)

// Columns lists the export columns in wire-key order.
var Columns = []string{"name", "address", "phone", "website", "email", "category", "rating", "reviewCount", "hours"}

// Exporter writes a search result to a CSV file.
type Exporter struct {
	// Path is the destination file. When empty, a name derived from the
	// search terms is used in the current directory.
	Path string
}

// Export writes the result as CSV and returns the file path.
func (e *Exporter) Export(_ context.Context, result *leadscout.Result) (string, error) {
	path := e.Path
	if path == "" {
		path = leadscout.ExportFilename(result.Search, "csv")
	}

	text, err := Render(result)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", leadscout.Errorf(leadscout.EINTERNAL, "failed to write CSV file: %v", err)
	}

	return path, nil
}

// Render returns the CSV text for a result: a header row in wire-key
// order followed by one row per lead.
func Render(result *leadscout.Result) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write(Columns); err != nil {
		return "", err
	}
	for _, lead := range result.Leads {
		if err := w.Write(record(lead)); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}

// record renders one lead as a CSV row. Null rating and review count
// become empty cells.
func record(lead *leadscout.Lead) []string {
	rating := ""
	if lead.Rating != nil {
		rating = strconv.FormatFloat(*lead.Rating, 'f', 1, 64)
	}
	reviewCount := ""
	if lead.ReviewCount != nil {
		reviewCount = strconv.Itoa(*lead.ReviewCount)
	}

	return []string{
		lead.Name,
		lead.Address,
		lead.Phone,
		lead.Website,
		lead.Email,
		lead.Category,
		rating,
		reviewCount,
		lead.Hours,
	}
}
