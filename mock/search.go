package mock

import (
	"context"

	"github.com/fwojciec/leadscout"
)

var _ leadscout.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of leadscout.SearchService.
type SearchService struct {
	CreateSearchFn   func(ctx context.Context, search *leadscout.Search) error
	FindSearchByIDFn func(ctx context.Context, id string) (*leadscout.Search, error)
	FindSearchesFn   func(ctx context.Context, filter leadscout.SearchFilter) ([]*leadscout.Search, error)
	DeleteSearchFn   func(ctx context.Context, id string) error
}

func (s *SearchService) CreateSearch(ctx context.Context, search *leadscout.Search) error {
	return s.CreateSearchFn(ctx, search)
}

func (s *SearchService) FindSearchByID(ctx context.Context, id string) (*leadscout.Search, error) {
	return s.FindSearchByIDFn(ctx, id)
}

func (s *SearchService) FindSearches(ctx context.Context, filter leadscout.SearchFilter) ([]*leadscout.Search, error) {
	return s.FindSearchesFn(ctx, filter)
}

func (s *SearchService) DeleteSearch(ctx context.Context, id string) error {
	return s.DeleteSearchFn(ctx, id)
}
