package leadscout

import "context"

// SourceRef is a citation accompanying generated leads: a web page the
// generator consulted while producing results.
type SourceRef struct {
	URI   string `json:"uri"`
	Title string `json:"title,omitempty"`
}

// SourceSet tracks source references seen within one search session and
// filters out duplicates by URI. Deduplication is exact: a URI is reported
// at most once per set. Refs without a URI are discarded.
type SourceSet struct {
	seen map[string]struct{}
}

// NewSourceSet returns an empty SourceSet.
func NewSourceSet() *SourceSet {
	return &SourceSet{seen: make(map[string]struct{})}
}

// Add records the given refs and returns the ones not seen before, in input
// order.
func (s *SourceSet) Add(refs ...SourceRef) []SourceRef {
	var fresh []SourceRef
	for _, ref := range refs {
		if ref.URI == "" {
			continue
		}
		if _, ok := s.seen[ref.URI]; ok {
			continue
		}
		s.seen[ref.URI] = struct{}{}
		fresh = append(fresh, ref)
	}
	return fresh
}

// Len reports how many distinct URIs have been seen.
func (s *SourceSet) Len() int {
	return len(s.seen)
}

// SourceService represents a service for managing archived source
// references.
type SourceService interface {
	// CreateSources stores the deduplicated source refs of one search.
	CreateSources(ctx context.Context, searchID string, refs []SourceRef) error

	// FindSourcesBySearchID retrieves the source refs archived for a search.
	FindSourcesBySearchID(ctx context.Context, searchID string) ([]SourceRef, error)
}
