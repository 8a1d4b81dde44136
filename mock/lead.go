package mock

import (
	"context"

	"github.com/fwojciec/leadscout"
)

var _ leadscout.LeadService = (*LeadService)(nil)

// LeadService is a mock implementation of leadscout.LeadService.
type LeadService struct {
	CreateLeadsFn func(ctx context.Context, searchID string, leads []*leadscout.Lead) error
	FindLeadsFn   func(ctx context.Context, filter leadscout.LeadFilter) ([]*leadscout.Lead, error)
	UpdateLeadFn  func(ctx context.Context, id string, upd leadscout.LeadUpdate) (*leadscout.Lead, error)
}

func (s *LeadService) CreateLeads(ctx context.Context, searchID string, leads []*leadscout.Lead) error {
	return s.CreateLeadsFn(ctx, searchID, leads)
}

func (s *LeadService) FindLeads(ctx context.Context, filter leadscout.LeadFilter) ([]*leadscout.Lead, error) {
	return s.FindLeadsFn(ctx, filter)
}

func (s *LeadService) UpdateLead(ctx context.Context, id string, upd leadscout.LeadUpdate) (*leadscout.Lead, error) {
	return s.UpdateLeadFn(ctx, id, upd)
}
