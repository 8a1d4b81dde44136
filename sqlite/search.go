package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/leadscout"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ leadscout.SearchService = (*SearchService)(nil)

// SearchService implements leadscout.SearchService using SQLite.
type SearchService struct {
	db *DB
}

// NewSearchService creates a new SearchService.
func NewSearchService(db *DB) *SearchService {
	return &SearchService{db: db}
}

// CreateSearch archives a completed search run.
func (s *SearchService) CreateSearch(ctx context.Context, search *leadscout.Search) error {
	if err := search.Validate(); err != nil {
		return err
	}

	search.ID = uuid.New().String()
	search.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO searches (id, keyword, location, lead_limit, lead_count, results_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, search.ID, search.Keyword, search.Location, search.Limit, search.LeadCount,
		search.ResultsHash, search.CreatedAt.Format(time.RFC3339))

	return err
}

// FindSearchByID retrieves a search by ID.
func (s *SearchService) FindSearchByID(ctx context.Context, id string) (*leadscout.Search, error) {
	var search leadscout.Search
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, keyword, location, lead_limit, lead_count, results_hash, created_at
		FROM searches
		WHERE id = ?
	`, id).Scan(&search.ID, &search.Keyword, &search.Location, &search.Limit,
		&search.LeadCount, &search.ResultsHash, &createdAt)

	if err == sql.ErrNoRows {
		return nil, leadscout.Errorf(leadscout.ENOTFOUND, "search not found")
	}
	if err != nil {
		return nil, err
	}

	if search.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}

	return &search, nil
}

// FindSearches retrieves searches matching the filter, newest first.
func (s *SearchService) FindSearches(ctx context.Context, filter leadscout.SearchFilter) ([]*leadscout.Search, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, keyword, location, lead_limit, lead_count, results_hash, created_at FROM searches WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Keyword != nil {
		query.WriteString(" AND keyword = ?")
		args = append(args, *filter.Keyword)
	}

	query.WriteString(" ORDER BY created_at DESC, id")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var searches []*leadscout.Search
	for rows.Next() {
		var search leadscout.Search
		var createdAt string

		if err := rows.Scan(&search.ID, &search.Keyword, &search.Location, &search.Limit,
			&search.LeadCount, &search.ResultsHash, &createdAt); err != nil {
			return nil, err
		}

		if search.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		searches = append(searches, &search)
	}

	return searches, rows.Err()
}

// DeleteSearch permanently removes a search. Archived leads and sources go
// with it via ON DELETE CASCADE.
func (s *SearchService) DeleteSearch(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM searches WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return leadscout.Errorf(leadscout.ENOTFOUND, "search not found")
	}

	return nil
}
