// Package github exports search results as GitHub gists.
package github

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/leadscout"
	"github.com/fwojciec/leadscout/csv"
	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

// DefaultTimeout is the HTTP request timeout for gist uploads.
const DefaultTimeout = 30 * time.Second

var _ leadscout.Exporter = (*GistExporter)(nil)

// GistCreator is the slice of the GitHub API the exporter needs.
type GistCreator interface {
	Create(ctx context.Context, gist *gh.Gist) (*gh.Gist, *gh.Response, error)
}

// GistExporter uploads a search result as a GitHub gist holding the leads
// as CSV plus a markdown summary with the search terms and source links.
type GistExporter struct {
	Gists GistCreator

	// Public controls gist visibility. Gists are secret by default.
	Public bool
}

// NewGistExporter creates a GistExporter authenticated with a static
// token. Works for both PAT and OAuth access tokens.
func NewGistExporter(ctx context.Context, token string) *GistExporter {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout

	return &GistExporter{Gists: gh.NewClient(tc).Gists}
}

// Export uploads the result and returns the gist URL.
func (e *GistExporter) Export(ctx context.Context, result *leadscout.Result) (string, error) {
	body, err := csv.Render(result)
	if err != nil {
		return "", err
	}

	description := fmt.Sprintf("Leads for %q in %q", result.Search.Keyword, result.Search.Location)
	gist := &gh.Gist{
		Description: gh.Ptr(description),
		Public:      gh.Ptr(e.Public),
		Files: map[gh.GistFilename]gh.GistFile{
			"leads.csv":  {Content: gh.Ptr(body)},
			"summary.md": {Content: gh.Ptr(summary(result))},
		},
	}

	created, _, err := e.Gists.Create(ctx, gist)
	if err != nil {
		return "", leadscout.Errorf(leadscout.EUNAVAILABLE, "failed to upload gist: %v", err)
	}

	return created.GetHTMLURL(), nil
}

// summary renders a markdown overview of the search: terms, lead count
// and the sources the results were grounded on.
func summary(result *leadscout.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Leads: %s in %s\n\n", result.Search.Keyword, result.Search.Location)
	fmt.Fprintf(&b, "%d leads, found on %s.\n", len(result.Leads), result.Search.CreatedAt.Format("2006-01-02"))

	if len(result.Sources) > 0 {
		b.WriteString("\n## Sources\n\n")
		for _, source := range result.Sources {
			if source.Title != "" {
				fmt.Fprintf(&b, "- [%s](%s)\n", source.Title, source.URI)
			} else {
				fmt.Fprintf(&b, "- <%s>\n", source.URI)
			}
		}
	}

	return b.String()
}
