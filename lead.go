package leadscout

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Lead represents one business record produced by decoding a search stream.
// The JSON field set is the wire contract with the generator: keys are
// preserved exactly, optional numeric fields round-trip null/absent values,
// and storage bookkeeping never leaks into the wire shape.
type Lead struct {
	// Storage identity. Populated only for archived leads.
	ID       string `json:"-"`
	SearchID string `json:"-"`
	Position int    `json:"-"`

	Name    string `json:"name"`
	Address string `json:"address"`
	// Phone is required on the wire but may be empty.
	Phone       string   `json:"phone"`
	Website     string   `json:"website,omitempty"`
	Email       string   `json:"email,omitempty"`
	Category    string   `json:"category,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	ReviewCount *int     `json:"reviewCount,omitempty"`
	Hours       string   `json:"hours,omitempty"`
}

// Validate returns an error if the lead contains invalid fields.
func (l *Lead) Validate() error {
	if l.Name == "" {
		return Errorf(EINVALID, "lead name required")
	}
	if l.Address == "" {
		return Errorf(EINVALID, "lead address required")
	}
	if l.Rating != nil && (*l.Rating < 1.0 || *l.Rating > 5.0) {
		return Errorf(EINVALID, "lead rating must be between 1.0 and 5.0")
	}
	if l.ReviewCount != nil && *l.ReviewCount < 0 {
		return Errorf(EINVALID, "lead review count must not be negative")
	}
	return nil
}

// FingerprintLeads computes a stable hash over the wire serialization of the
// leads in order. Two searches that produced identical leads in the same
// order share a fingerprint.
func FingerprintLeads(leads []*Lead) string {
	h := xxhash.New()
	for _, lead := range leads {
		b, err := json.Marshal(lead)
		if err != nil {
			continue
		}
		_, _ = h.Write(b)
		_, _ = h.Write([]byte{'\n'})
	}
	return fmt.Sprintf("%x", h.Sum64())
}

// LeadService represents a service for managing archived leads.
type LeadService interface {
	// CreateLeads stores the leads of one search in arrival order.
	CreateLeads(ctx context.Context, searchID string, leads []*Lead) error

	// FindLeads retrieves leads matching the filter, ordered by position.
	FindLeads(ctx context.Context, filter LeadFilter) ([]*Lead, error)

	// UpdateLead updates contact fields on an archived lead.
	// Returns ENOTFOUND if the lead does not exist.
	UpdateLead(ctx context.Context, id string, upd LeadUpdate) (*Lead, error)
}

// LeadFilter represents a filter for FindLeads.
type LeadFilter struct {
	ID       *string `json:"id"`
	SearchID *string `json:"searchId"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// LeadUpdate represents contact fields that can be updated on an archived
// lead, typically after website enrichment.
type LeadUpdate struct {
	Phone   *string `json:"phone"`
	Website *string `json:"website"`
	Email   *string `json:"email"`
}
