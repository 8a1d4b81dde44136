// Package clipboard copies search results to the system clipboard.
package clipboard

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/fwojciec/leadscout"
	"github.com/fwojciec/leadscout/csv"
)

var _ leadscout.Exporter = (*Exporter)(nil)

// Exporter copies the CSV rendering of a result to the system clipboard.
type Exporter struct {
	// WriteAll replaces the system clipboard write when set.
	WriteAll func(text string) error
}

// Export copies the result as CSV text and returns "clipboard" as the
// destination.
func (e *Exporter) Export(_ context.Context, result *leadscout.Result) (string, error) {
	text, err := csv.Render(result)
	if err != nil {
		return "", err
	}

	write := e.WriteAll
	if write == nil {
		write = clipboard.WriteAll
	}
	if err := write(text); err != nil {
		return "", leadscout.Errorf(leadscout.EUNAVAILABLE, "cannot access system clipboard: %v", err)
	}

	return "clipboard", nil
}
