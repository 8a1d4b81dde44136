package leadscout

import (
	"context"
	"time"
)

// DefaultLeadLimit is the number of leads the generator is asked to cap a
// search at. The cap is an instruction to the generator only; the decoding
// pipeline never enforces it.
const DefaultLeadLimit = 30

// Query describes one lead search: what kind of business, and where.
type Query struct {
	Keyword  string `json:"keyword"`
	Location string `json:"location"`

	// Limit caps how many leads the generator is asked for.
	// Zero means DefaultLeadLimit.
	Limit int `json:"limit,omitempty"`
}

// Validate returns an error if the query contains invalid fields.
func (q Query) Validate() error {
	if q.Keyword == "" {
		return Errorf(EINVALID, "search keyword required")
	}
	if q.Location == "" {
		return Errorf(EINVALID, "search location required")
	}
	if q.Limit < 0 {
		return Errorf(EINVALID, "search limit must not be negative")
	}
	return nil
}

// LeadLimit returns the effective lead cap for the query.
func (q Query) LeadLimit() int {
	if q.Limit > 0 {
		return q.Limit
	}
	return DefaultLeadLimit
}

// Search represents one archived search run: the query that was asked plus
// the outcome of the stream.
type Search struct {
	ID          string    `json:"id"`
	Keyword     string    `json:"keyword"`
	Location    string    `json:"location"`
	Limit       int       `json:"limit"`
	LeadCount   int       `json:"leadCount"`
	ResultsHash string    `json:"resultsHash"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Query returns the query this search ran.
func (s *Search) Query() Query {
	return Query{Keyword: s.Keyword, Location: s.Location, Limit: s.Limit}
}

// Validate returns an error if the search contains invalid fields.
func (s *Search) Validate() error {
	if s.Keyword == "" {
		return Errorf(EINVALID, "search keyword required")
	}
	if s.Location == "" {
		return Errorf(EINVALID, "search location required")
	}
	return nil
}

// SearchService represents a service for managing archived searches.
type SearchService interface {
	// CreateSearch archives a completed search run.
	CreateSearch(ctx context.Context, search *Search) error

	// FindSearchByID retrieves a search by ID.
	// Returns ENOTFOUND if the search does not exist.
	FindSearchByID(ctx context.Context, id string) (*Search, error)

	// FindSearches retrieves searches matching the filter, newest first.
	FindSearches(ctx context.Context, filter SearchFilter) ([]*Search, error)

	// DeleteSearch permanently removes a search and its archived leads and
	// sources. Returns ENOTFOUND if the search does not exist.
	DeleteSearch(ctx context.Context, id string) error
}

// SearchFilter represents a filter for FindSearches.
type SearchFilter struct {
	ID      *string `json:"id"`
	Keyword *string `json:"keyword"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
