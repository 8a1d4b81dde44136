package leadscout

import "context"

// Result bundles everything one search produced, in archive order.
type Result struct {
	Search  *Search
	Leads   []*Lead
	Sources []SourceRef
}

// Exporter writes a search result to some destination.
type Exporter interface {
	// Export writes the result and returns a human-readable destination:
	// a file path, a URL, or a sink name such as "clipboard".
	Export(ctx context.Context, result *Result) (string, error)
}
