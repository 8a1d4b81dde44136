package enrich_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/leadscout"
	"github.com/fwojciec/leadscout/enrich"
	"github.com/fwojciec/leadscout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnricher_EnrichLeads(t *testing.T) {
	t.Parallel()

	t.Run("enriches a lead from its website", func(t *testing.T) {
		t.Parallel()

		var fetchedURL string
		e := &enrich.Enricher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					fetchedURL = url
					return "<html><body>contact page</body></html>", nil
				},
			},
			Contacts: &mock.ContactExtractor{
				ExtractContactsFn: func(_ string, _ string) (*leadscout.Enrichment, error) {
					return &leadscout.Enrichment{
						Emails: []string{"info@harbor-cafe.example"},
						Phones: []string{"503-555-0188"},
					}, nil
				},
			},
			Concurrency: 1,
		}

		leads := []*leadscout.Lead{
			{ID: "lead-1", Name: "Harbor Cafe", Website: "https://harbor-cafe.example"},
		}

		result, err := e.EnrichLeads(context.Background(), leads, nil)

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, 0, result.Skipped)
		assert.Equal(t, 0, result.Failed)

		require.Contains(t, result.Enrichments, "lead-1")
		enrichment := result.Enrichments["lead-1"]
		assert.Equal(t, []string{"info@harbor-cafe.example"}, enrichment.Emails)
		assert.Equal(t, []string{"503-555-0188"}, enrichment.Phones)
		assert.Equal(t, "https://harbor-cafe.example", fetchedURL)
	})

	t.Run("assumes https for websites without a scheme", func(t *testing.T) {
		t.Parallel()

		var fetchedURL string
		e := &enrich.Enricher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					fetchedURL = url
					return "<html></html>", nil
				},
			},
			Contacts: &mock.ContactExtractor{
				ExtractContactsFn: func(_ string, _ string) (*leadscout.Enrichment, error) {
					return &leadscout.Enrichment{}, nil
				},
			},
			Concurrency: 1,
		}

		leads := []*leadscout.Lead{
			{ID: "lead-1", Name: "Harbor Cafe", Website: "harbor-cafe.example/contact"},
		}

		_, err := e.EnrichLeads(context.Background(), leads, nil)

		require.NoError(t, err)
		assert.Equal(t, "https://harbor-cafe.example/contact", fetchedURL)
	})

	t.Run("skips leads without a website", func(t *testing.T) {
		t.Parallel()

		e := &enrich.Enricher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					t.Error("fetch should not be called for leads without a website")
					return "", nil
				},
			},
			Contacts:    &mock.ContactExtractor{},
			Concurrency: 1,
		}

		leads := []*leadscout.Lead{
			{ID: "lead-1", Name: "No Site Plumbing"},
		}

		result, err := e.EnrichLeads(context.Background(), leads, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Skipped)
		assert.Empty(t, result.Enrichments)
	})

	t.Run("counts failed leads without stopping the run", func(t *testing.T) {
		t.Parallel()

		e := &enrich.Enricher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					if url == "https://down.example" {
						return "", leadscout.Errorf(leadscout.EUNAVAILABLE, "connection refused")
					}
					return "<html></html>", nil
				},
			},
			Contacts: &mock.ContactExtractor{
				ExtractContactsFn: func(_ string, _ string) (*leadscout.Enrichment, error) {
					return &leadscout.Enrichment{Emails: []string{"up@up.example"}}, nil
				},
			},
			Concurrency: 1,
		}

		leads := []*leadscout.Lead{
			{ID: "lead-1", Name: "Down", Website: "https://down.example"},
			{ID: "lead-2", Name: "Up", Website: "https://up.example"},
		}

		result, err := e.EnrichLeads(context.Background(), leads, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Failed)
		require.Contains(t, result.Enrichments, "lead-2")
		assert.NotContains(t, result.Enrichments, "lead-1")
	})

	t.Run("merges text contacts missing from links", func(t *testing.T) {
		t.Parallel()

		e := &enrich.Enricher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html></html>", nil
				},
			},
			Contacts: &mock.ContactExtractor{
				ExtractContactsFn: func(_ string, _ string) (*leadscout.Enrichment, error) {
					return &leadscout.Enrichment{Emails: []string{"info@shop.example"}}, nil
				},
			},
			Text: &mock.TextExtractor{
				ExtractTextFn: func(_ string) (string, error) {
					return "Write to info@shop.example or orders@shop.example, or call (503) 555-0142 today.", nil
				},
			},
			Concurrency: 1,
		}

		leads := []*leadscout.Lead{
			{ID: "lead-1", Name: "Shop", Website: "https://shop.example"},
		}

		result, err := e.EnrichLeads(context.Background(), leads, nil)

		require.NoError(t, err)
		require.Contains(t, result.Enrichments, "lead-1")
		enrichment := result.Enrichments["lead-1"]
		assert.Equal(t, []string{"info@shop.example", "orders@shop.example"}, enrichment.Emails)
		assert.Equal(t, []string{"(503) 555-0142"}, enrichment.Phones)
	})

	t.Run("ignores short digit runs in text", func(t *testing.T) {
		t.Parallel()

		e := &enrich.Enricher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html></html>", nil
				},
			},
			Contacts: &mock.ContactExtractor{
				ExtractContactsFn: func(_ string, _ string) (*leadscout.Enrichment, error) {
					return &leadscout.Enrichment{}, nil
				},
			},
			Text: &mock.TextExtractor{
				ExtractTextFn: func(_ string) (string, error) {
					return "Established 1987 at 42 Main St. Open 9-5 Mon-Fri.", nil
				},
			},
			Concurrency: 1,
		}

		leads := []*leadscout.Lead{
			{ID: "lead-1", Name: "Shop", Website: "https://shop.example"},
		}

		result, err := e.EnrichLeads(context.Background(), leads, nil)

		require.NoError(t, err)
		require.Contains(t, result.Enrichments, "lead-1")
		assert.Empty(t, result.Enrichments["lead-1"].Phones)
	})

	t.Run("falls back to page text for the about snippet", func(t *testing.T) {
		t.Parallel()

		e := &enrich.Enricher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html></html>", nil
				},
			},
			Contacts: &mock.ContactExtractor{
				ExtractContactsFn: func(_ string, _ string) (*leadscout.Enrichment, error) {
					return &leadscout.Enrichment{}, nil
				},
			},
			Text: &mock.TextExtractor{
				ExtractTextFn: func(_ string) (string, error) {
					return "Family-run cafe on the harbor since 1987. Second sentence not included.", nil
				},
			},
			Concurrency: 1,
		}

		leads := []*leadscout.Lead{
			{ID: "lead-1", Name: "Harbor Cafe", Website: "https://harbor-cafe.example"},
		}

		result, err := e.EnrichLeads(context.Background(), leads, nil)

		require.NoError(t, err)
		require.Contains(t, result.Enrichments, "lead-1")
		assert.Equal(t, "Family-run cafe on the harbor since 1987.", result.Enrichments["lead-1"].About)
	})

	t.Run("keeps the meta description over the text snippet", func(t *testing.T) {
		t.Parallel()

		e := &enrich.Enricher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html></html>", nil
				},
			},
			Contacts: &mock.ContactExtractor{
				ExtractContactsFn: func(_ string, _ string) (*leadscout.Enrichment, error) {
					return &leadscout.Enrichment{About: "From the meta description."}, nil
				},
			},
			Text: &mock.TextExtractor{
				ExtractTextFn: func(_ string) (string, error) {
					return "Page text that should not win.", nil
				},
			},
			Concurrency: 1,
		}

		leads := []*leadscout.Lead{
			{ID: "lead-1", Name: "Harbor Cafe", Website: "https://harbor-cafe.example"},
		}

		result, err := e.EnrichLeads(context.Background(), leads, nil)

		require.NoError(t, err)
		assert.Equal(t, "From the meta description.", result.Enrichments["lead-1"].About)
	})

	t.Run("tries the fallback extractor when the primary errors", func(t *testing.T) {
		t.Parallel()

		e := &enrich.Enricher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html></html>", nil
				},
			},
			Contacts: &mock.ContactExtractor{
				ExtractContactsFn: func(_ string, _ string) (*leadscout.Enrichment, error) {
					return &leadscout.Enrichment{}, nil
				},
			},
			Text: &mock.TextExtractor{
				ExtractTextFn: func(_ string) (string, error) {
					return "", errors.New("no content found")
				},
			},
			TextFallback: &mock.TextExtractor{
				ExtractTextFn: func(_ string) (string, error) {
					return "Reach us at backup@shop.example any time.", nil
				},
			},
			Concurrency: 1,
		}

		leads := []*leadscout.Lead{
			{ID: "lead-1", Name: "Shop", Website: "https://shop.example"},
		}

		result, err := e.EnrichLeads(context.Background(), leads, nil)

		require.NoError(t, err)
		require.Contains(t, result.Enrichments, "lead-1")
		assert.Equal(t, []string{"backup@shop.example"}, result.Enrichments["lead-1"].Emails)
	})

	t.Run("tries the fallback extractor when the primary finds nothing", func(t *testing.T) {
		t.Parallel()

		e := &enrich.Enricher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html></html>", nil
				},
			},
			Contacts: &mock.ContactExtractor{
				ExtractContactsFn: func(_ string, _ string) (*leadscout.Enrichment, error) {
					return &leadscout.Enrichment{}, nil
				},
			},
			Text: &mock.TextExtractor{
				ExtractTextFn: func(_ string) (string, error) {
					return "", nil
				},
			},
			TextFallback: &mock.TextExtractor{
				ExtractTextFn: func(_ string) (string, error) {
					return "Reach us at backup@shop.example any time.", nil
				},
			},
			Concurrency: 1,
		}

		leads := []*leadscout.Lead{
			{ID: "lead-1", Name: "Shop", Website: "https://shop.example"},
		}

		result, err := e.EnrichLeads(context.Background(), leads, nil)

		require.NoError(t, err)
		require.Contains(t, result.Enrichments, "lead-1")
		assert.Equal(t, []string{"backup@shop.example"}, result.Enrichments["lead-1"].Emails)
	})

	t.Run("skips the fallback when the primary succeeds", func(t *testing.T) {
		t.Parallel()

		var fallbackCalled atomic.Bool
		e := &enrich.Enricher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html></html>", nil
				},
			},
			Contacts: &mock.ContactExtractor{
				ExtractContactsFn: func(_ string, _ string) (*leadscout.Enrichment, error) {
					return &leadscout.Enrichment{}, nil
				},
			},
			Text: &mock.TextExtractor{
				ExtractTextFn: func(_ string) (string, error) {
					return "Write to info@shop.example today.", nil
				},
			},
			TextFallback: &mock.TextExtractor{
				ExtractTextFn: func(_ string) (string, error) {
					fallbackCalled.Store(true)
					return "", nil
				},
			},
			Concurrency: 1,
		}

		leads := []*leadscout.Lead{
			{ID: "lead-1", Name: "Shop", Website: "https://shop.example"},
		}

		result, err := e.EnrichLeads(context.Background(), leads, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"info@shop.example"}, result.Enrichments["lead-1"].Emails)
		assert.False(t, fallbackCalled.Load())
	})

	t.Run("waits on the rate limiter per host", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var domains []string
		e := &enrich.Enricher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					return "<html></html>", nil
				},
			},
			Contacts: &mock.ContactExtractor{
				ExtractContactsFn: func(_ string, _ string) (*leadscout.Enrichment, error) {
					return &leadscout.Enrichment{}, nil
				},
			},
			RateLimiter: &mock.DomainLimiter{
				WaitFn: func(_ context.Context, domain string) error {
					mu.Lock()
					domains = append(domains, domain)
					mu.Unlock()
					return nil
				},
			},
			Concurrency: 1,
		}

		leads := []*leadscout.Lead{
			{ID: "lead-1", Name: "A", Website: "https://a.example/contact"},
			{ID: "lead-2", Name: "B", Website: "https://b.example"},
		}

		_, err := e.EnrichLeads(context.Background(), leads, nil)

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a.example", "b.example"}, domains)
	})

	t.Run("reports progress events", func(t *testing.T) {
		t.Parallel()

		e := &enrich.Enricher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					if url == "https://down.example" {
						return "", leadscout.Errorf(leadscout.EUNAVAILABLE, "connection refused")
					}
					return "<html></html>", nil
				},
			},
			Contacts: &mock.ContactExtractor{
				ExtractContactsFn: func(_ string, _ string) (*leadscout.Enrichment, error) {
					return &leadscout.Enrichment{}, nil
				},
			},
			Concurrency: 1,
		}

		leads := []*leadscout.Lead{
			{ID: "lead-1", Name: "Good", Website: "https://good.example"},
			{ID: "lead-2", Name: "Bad", Website: "https://down.example"},
			{ID: "lead-3", Name: "No Site"},
		}

		var mu sync.Mutex
		counts := make(map[enrich.ProgressType]int)
		var failedLead string
		progress := func(event enrich.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			counts[event.Type]++
			if event.Type == enrich.ProgressFailed {
				failedLead = event.Lead
				assert.Error(t, event.Error)
			}
		}

		_, err := e.EnrichLeads(context.Background(), leads, progress)

		require.NoError(t, err)
		assert.Equal(t, 1, counts[enrich.ProgressStarted])
		assert.Equal(t, 1, counts[enrich.ProgressCompleted])
		assert.Equal(t, 1, counts[enrich.ProgressFailed])
		assert.Equal(t, 1, counts[enrich.ProgressSkipped])
		assert.Equal(t, 1, counts[enrich.ProgressFinished])
		assert.Equal(t, "Bad", failedLead)
	})

	t.Run("runs leads concurrently up to the limit", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		active, maxActive := 0, 0
		block := make(chan struct{})

		e := &enrich.Enricher{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					mu.Lock()
					active++
					if active > maxActive {
						maxActive = active
					}
					mu.Unlock()

					<-block

					mu.Lock()
					active--
					mu.Unlock()
					return "<html></html>", nil
				},
			},
			Contacts: &mock.ContactExtractor{
				ExtractContactsFn: func(_ string, _ string) (*leadscout.Enrichment, error) {
					return &leadscout.Enrichment{}, nil
				},
			},
			Concurrency: 2,
		}

		leads := []*leadscout.Lead{
			{ID: "lead-1", Name: "A", Website: "https://a.example"},
			{ID: "lead-2", Name: "B", Website: "https://b.example"},
			{ID: "lead-3", Name: "C", Website: "https://c.example"},
			{ID: "lead-4", Name: "D", Website: "https://d.example"},
		}

		done := make(chan struct{})
		go func() {
			_, _ = e.EnrichLeads(context.Background(), leads, nil)
			close(done)
		}()

		close(block)
		<-done

		mu.Lock()
		defer mu.Unlock()
		assert.LessOrEqual(t, maxActive, 2)
	})
}

func TestEnricher_ApplyEnrichments(t *testing.T) {
	t.Parallel()

	t.Run("fills empty contact fields", func(t *testing.T) {
		t.Parallel()

		var updatedID string
		var applied leadscout.LeadUpdate
		e := &enrich.Enricher{
			Leads: &mock.LeadService{
				UpdateLeadFn: func(_ context.Context, id string, upd leadscout.LeadUpdate) (*leadscout.Lead, error) {
					updatedID = id
					applied = upd
					return &leadscout.Lead{ID: id}, nil
				},
			},
		}

		leads := []*leadscout.Lead{
			{ID: "lead-1", Name: "Harbor Cafe", Website: "https://harbor-cafe.example"},
		}
		enrichments := map[string]*leadscout.Enrichment{
			"lead-1": {
				Emails: []string{"info@harbor-cafe.example"},
				Phones: []string{"503-555-0188"},
			},
		}

		updated, err := e.ApplyEnrichments(context.Background(), leads, enrichments)

		require.NoError(t, err)
		assert.Equal(t, 1, updated)
		assert.Equal(t, "lead-1", updatedID)
		require.NotNil(t, applied.Email)
		assert.Equal(t, "info@harbor-cafe.example", *applied.Email)
		require.NotNil(t, applied.Phone)
		assert.Equal(t, "503-555-0188", *applied.Phone)
	})

	t.Run("never overwrites existing values", func(t *testing.T) {
		t.Parallel()

		var applied leadscout.LeadUpdate
		e := &enrich.Enricher{
			Leads: &mock.LeadService{
				UpdateLeadFn: func(_ context.Context, id string, upd leadscout.LeadUpdate) (*leadscout.Lead, error) {
					applied = upd
					return &leadscout.Lead{ID: id}, nil
				},
			},
		}

		leads := []*leadscout.Lead{
			{ID: "lead-1", Name: "Harbor Cafe", Phone: "503-555-0000"},
		}
		enrichments := map[string]*leadscout.Enrichment{
			"lead-1": {
				Emails: []string{"info@harbor-cafe.example"},
				Phones: []string{"503-555-0188"},
			},
		}

		updated, err := e.ApplyEnrichments(context.Background(), leads, enrichments)

		require.NoError(t, err)
		assert.Equal(t, 1, updated)
		assert.Nil(t, applied.Phone)
		require.NotNil(t, applied.Email)
	})

	t.Run("skips leads with nothing to fill", func(t *testing.T) {
		t.Parallel()

		e := &enrich.Enricher{
			Leads: &mock.LeadService{
				UpdateLeadFn: func(_ context.Context, _ string, _ leadscout.LeadUpdate) (*leadscout.Lead, error) {
					t.Error("update should not be called when every field is populated")
					return nil, nil
				},
			},
		}

		leads := []*leadscout.Lead{
			{ID: "lead-1", Name: "Full", Phone: "503-555-0000", Email: "full@full.example"},
			{ID: "lead-2", Name: "No Enrichment"},
		}
		enrichments := map[string]*leadscout.Enrichment{
			"lead-1": {
				Emails: []string{"other@full.example"},
				Phones: []string{"503-555-9999"},
			},
		}

		updated, err := e.ApplyEnrichments(context.Background(), leads, enrichments)

		require.NoError(t, err)
		assert.Equal(t, 0, updated)
	})

	t.Run("stops on update failure", func(t *testing.T) {
		t.Parallel()

		e := &enrich.Enricher{
			Leads: &mock.LeadService{
				UpdateLeadFn: func(_ context.Context, _ string, _ leadscout.LeadUpdate) (*leadscout.Lead, error) {
					return nil, leadscout.Errorf(leadscout.ENOTFOUND, "Lead not found.")
				},
			},
		}

		leads := []*leadscout.Lead{
			{ID: "lead-1", Name: "Gone", Website: "https://gone.example"},
		}
		enrichments := map[string]*leadscout.Enrichment{
			"lead-1": {Emails: []string{"gone@gone.example"}},
		}

		updated, err := e.ApplyEnrichments(context.Background(), leads, enrichments)

		require.Error(t, err)
		assert.Equal(t, 0, updated)
		assert.Equal(t, leadscout.ENOTFOUND, leadscout.ErrorCode(err))
	})
}
