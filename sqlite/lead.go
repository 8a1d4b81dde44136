package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/fwojciec/leadscout"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ leadscout.LeadService = (*LeadService)(nil)

// LeadService implements leadscout.LeadService using SQLite.
type LeadService struct {
	db *DB
}

// NewLeadService creates a new LeadService.
func NewLeadService(db *DB) *LeadService {
	return &LeadService{db: db}
}

// CreateLeads stores the leads of one search. Position follows slice order
// so archived leads replay in the order they streamed in.
func (s *LeadService) CreateLeads(ctx context.Context, searchID string, leads []*leadscout.Lead) error {
	for _, lead := range leads {
		if err := lead.Validate(); err != nil {
			return err
		}
	}

	for i, lead := range leads {
		lead.ID = uuid.New().String()
		lead.SearchID = searchID
		lead.Position = i

		_, err := s.db.ExecContext(ctx, `
			INSERT INTO leads (id, search_id, position, name, address, phone, website, email, category, rating, review_count, hours)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, lead.ID, lead.SearchID, lead.Position, lead.Name, lead.Address, lead.Phone,
			lead.Website, lead.Email, lead.Category, nullFloat(lead.Rating), nullInt(lead.ReviewCount), lead.Hours)
		if err != nil {
			return err
		}
	}

	return nil
}

// FindLeads retrieves leads matching the filter, ordered by position.
func (s *LeadService) FindLeads(ctx context.Context, filter leadscout.LeadFilter) ([]*leadscout.Lead, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, search_id, position, name, address, phone, website, email, category, rating, review_count, hours FROM leads WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SearchID != nil {
		query.WriteString(" AND search_id = ?")
		args = append(args, *filter.SearchID)
	}

	query.WriteString(" ORDER BY position ASC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*leadscout.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

// UpdateLead updates contact fields on an archived lead.
func (s *LeadService) UpdateLead(ctx context.Context, id string, upd leadscout.LeadUpdate) (*leadscout.Lead, error) {
	// First check if the lead exists
	lead, err := s.findLeadByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Apply updates
	if upd.Phone != nil {
		lead.Phone = *upd.Phone
	}
	if upd.Website != nil {
		lead.Website = *upd.Website
	}
	if upd.Email != nil {
		lead.Email = *upd.Email
	}

	// Validate before persisting
	if err := lead.Validate(); err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE leads
		SET phone = ?, website = ?, email = ?
		WHERE id = ?
	`, lead.Phone, lead.Website, lead.Email, id)

	if err != nil {
		return nil, err
	}

	return lead, nil
}

// findLeadByID retrieves a single lead by ID.
func (s *LeadService) findLeadByID(ctx context.Context, id string) (*leadscout.Lead, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, search_id, position, name, address, phone, website, email, category, rating, review_count, hours
		FROM leads
		WHERE id = ?
	`, id)

	lead, err := scanLead(row)
	if err == sql.ErrNoRows {
		return nil, leadscout.Errorf(leadscout.ENOTFOUND, "lead not found")
	}
	if err != nil {
		return nil, err
	}

	return lead, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanLead scans one leads row in SELECT column order.
func scanLead(row scanner) (*leadscout.Lead, error) {
	var lead leadscout.Lead
	var rating sql.NullFloat64
	var reviewCount sql.NullInt64

	if err := row.Scan(&lead.ID, &lead.SearchID, &lead.Position, &lead.Name, &lead.Address,
		&lead.Phone, &lead.Website, &lead.Email, &lead.Category, &rating, &reviewCount, &lead.Hours); err != nil {
		return nil, err
	}

	if rating.Valid {
		lead.Rating = &rating.Float64
	}
	if reviewCount.Valid {
		n := int(reviewCount.Int64)
		lead.ReviewCount = &n
	}

	return &lead, nil
}
