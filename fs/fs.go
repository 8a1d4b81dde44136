// Package fs writes search results to the local filesystem as JSON
// Lines, the same wire format leads arrive in.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/fwojciec/leadscout"
)

// Ensure Exporter implements leadscout.Exporter at compile time.
var _ leadscout.Exporter = (*Exporter)(nil)

// Exporter writes a search result as a JSON Lines file: one lead object
// per line. The file is written to a temporary path and renamed into
// place once complete, so readers never observe a partial export.
type Exporter struct {
	// Path is the destination file. When empty, a name derived from the
	// search terms is used in the current directory.
	Path string
}

// Export writes the result as JSON Lines and returns the file path.
func (e *Exporter) Export(_ context.Context, result *leadscout.Result) (string, error) {
	path := e.Path
	if path == "" {
		path = leadscout.ExportFilename(result.Search, "jsonl")
	}

	text, err := Render(result)
	if err != nil {
		return "", err
	}

	if err := writeAtomic(path, []byte(text)); err != nil {
		return "", leadscout.Errorf(leadscout.EINTERNAL, "failed to write JSONL file: %v", err)
	}

	return path, nil
}

// Render returns the JSON Lines text for a result: one lead per line,
// newline-terminated. The lines round-trip through the same decoding
// that produced the leads in the first place.
func Render(result *leadscout.Result) (string, error) {
	var b strings.Builder
	for _, lead := range result.Leads {
		line, err := json.Marshal(lead)
		if err != nil {
			return "", err
		}
		b.Write(line)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// writeAtomic writes data to a temporary file next to path and renames
// it into place. The rename is atomic on POSIX filesystems.
func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
