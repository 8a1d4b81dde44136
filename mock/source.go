package mock

import (
	"context"

	"github.com/fwojciec/leadscout"
)

var _ leadscout.SourceService = (*SourceService)(nil)

// SourceService is a mock implementation of leadscout.SourceService.
type SourceService struct {
	CreateSourcesFn         func(ctx context.Context, searchID string, refs []leadscout.SourceRef) error
	FindSourcesBySearchIDFn func(ctx context.Context, searchID string) ([]leadscout.SourceRef, error)
}

func (s *SourceService) CreateSources(ctx context.Context, searchID string, refs []leadscout.SourceRef) error {
	return s.CreateSourcesFn(ctx, searchID, refs)
}

func (s *SourceService) FindSourcesBySearchID(ctx context.Context, searchID string) ([]leadscout.SourceRef, error) {
	return s.FindSourcesBySearchIDFn(ctx, searchID)
}
