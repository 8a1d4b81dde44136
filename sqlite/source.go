package sqlite

import (
	"context"

	"github.com/fwojciec/leadscout"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ leadscout.SourceService = (*SourceService)(nil)

// SourceService implements leadscout.SourceService using SQLite.
type SourceService struct {
	db *DB
}

// NewSourceService creates a new SourceService.
func NewSourceService(db *DB) *SourceService {
	return &SourceService{db: db}
}

// CreateSources stores the source refs of one search in first-seen order.
// A URI already stored for the search is ignored, so re-archiving after a
// retry stays duplicate-free.
func (s *SourceService) CreateSources(ctx context.Context, searchID string, refs []leadscout.SourceRef) error {
	for i, ref := range refs {
		if ref.URI == "" {
			continue
		}

		_, err := s.db.ExecContext(ctx, `
			INSERT OR IGNORE INTO sources (id, search_id, position, uri, title)
			VALUES (?, ?, ?, ?, ?)
		`, uuid.New().String(), searchID, i, ref.URI, ref.Title)
		if err != nil {
			return err
		}
	}

	return nil
}

// FindSourcesBySearchID retrieves the source refs archived for a search in
// first-seen order.
func (s *SourceService) FindSourcesBySearchID(ctx context.Context, searchID string) ([]leadscout.SourceRef, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT uri, title
		FROM sources
		WHERE search_id = ?
		ORDER BY position ASC
	`, searchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []leadscout.SourceRef
	for rows.Next() {
		var ref leadscout.SourceRef
		if err := rows.Scan(&ref.URI, &ref.Title); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}

	return refs, rows.Err()
}
