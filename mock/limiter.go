package mock

import (
	"context"

	"github.com/fwojciec/leadscout"
)

var _ leadscout.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of leadscout.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (m *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return m.WaitFn(ctx, domain)
}
