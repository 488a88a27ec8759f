// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST client.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/robertranjan/gh-top-projects/internal/domain"
)

const (
	// searchPageSize is the fixed page size used while walking search results.
	searchPageSize = 100
	// subRequestPageSize bounds the single request issued per repository
	// during enrichment. The counts are deliberately not paginated, so
	// repositories with more entries than one page under-report.
	subRequestPageSize = 100
	// defaultRequestTimeout bounds every individual API request.
	defaultRequestTimeout = 10 * time.Second
)

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	// SearchRepositories returns every repository matching the filter, in
	// descending star order. On an API error it returns everything
	// accumulated before the failure together with the error.
	SearchRepositories(ctx context.Context, filter domain.SearchFilter) ([]domain.RepositorySummary, error)
	// CountRepositories reports the total match count for the filter
	// without fetching the matches themselves.
	CountRepositories(ctx context.Context, filter domain.SearchFilter) (int, error)
	// ContributorCount counts the contributors returned by a single
	// unpaginated request to the contributors resource.
	ContributorCount(ctx context.Context, owner, name string) (int, error)
	// RecentCommitCount counts the commits authored since the given time,
	// as returned by a single unpaginated request to the commits resource.
	RecentCommitCount(ctx context.Context, owner, name string, since time.Time) (int, error)
	// RateLimit queries the dedicated rate limit status endpoint.
	RateLimit(ctx context.Context) (domain.RateLimitStatus, error)
	// LastRateLimit returns the quota most recently observed on a response
	// header, and false if no response has carried rate headers yet.
	LastRateLimit() (domain.RateLimitStatus, bool)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient     *github.Client
	monitor        *RateLimitMonitor
	logger         *log.Logger
	requestTimeout time.Duration
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// The token is the only credential the gateway will ever present; an empty
// token yields an unauthenticated client.
func NewGitHubGateway(token string, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(time.Minute, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	var transport http.RoundTripper = rateLimitWaiter
	if token != "" {
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}
	return &GitHubGateway{
		restClient:     github.NewClient(&http.Client{Transport: transport}),
		monitor:        NewRateLimitMonitor(logger),
		logger:         logger,
		requestTimeout: defaultRequestTimeout,
	}, nil
}

func (g *GitHubGateway) SearchRepositories(ctx context.Context, filter domain.SearchFilter) ([]domain.RepositorySummary, error) {
	query := filter.Query()
	g.logger.Printf("Searching repositories: %s", query)
	opts := &github.SearchOptions{
		Sort:        "stars",
		Order:       "desc",
		ListOptions: github.ListOptions{Page: 1, PerPage: searchPageSize},
	}
	var repos []domain.RepositorySummary
	for {
		result, resp, err := g.searchPage(ctx, query, opts)
		if err != nil {
			return repos, fmt.Errorf("failed to search repositories (page %d): %w", opts.Page, err)
		}
		for _, item := range result.Repositories {
			repos = append(repos, toSummary(item))
		}
		// A short page or a missing next link both signal the end.
		if resp.NextPage == 0 || len(result.Repositories) < searchPageSize {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Println("  Fetching next page of search results...")
	}
	g.logger.Printf("Completed search with %d repositories.", len(repos))
	return repos, nil
}

func (g *GitHubGateway) CountRepositories(ctx context.Context, filter domain.SearchFilter) (int, error) {
	opts := &github.SearchOptions{ListOptions: github.ListOptions{PerPage: 1}}
	result, _, err := g.searchPage(ctx, filter.Query(), opts)
	if err != nil {
		return 0, fmt.Errorf("failed to count repositories: %w", err)
	}
	return result.GetTotal(), nil
}

func (g *GitHubGateway) searchPage(ctx context.Context, query string, opts *github.SearchOptions) (*github.RepositoriesSearchResult, *github.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, g.requestTimeout)
	defer cancel()
	result, resp, err := g.restClient.Search.Repositories(ctx, query, opts)
	g.monitor.Observe(resp)
	return result, resp, err
}

func (g *GitHubGateway) ContributorCount(ctx context.Context, owner, name string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, g.requestTimeout)
	defer cancel()
	opts := &github.ListContributorsOptions{
		ListOptions: github.ListOptions{PerPage: subRequestPageSize},
	}
	contributors, resp, err := g.restClient.Repositories.ListContributors(ctx, owner, name, opts)
	g.monitor.Observe(resp)
	if err != nil {
		return 0, fmt.Errorf("failed to list contributors for %s/%s: %w", owner, name, err)
	}
	return len(contributors), nil
}

func (g *GitHubGateway) RecentCommitCount(ctx context.Context, owner, name string, since time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, g.requestTimeout)
	defer cancel()
	opts := &github.CommitsListOptions{
		Since:       since,
		ListOptions: github.ListOptions{PerPage: subRequestPageSize},
	}
	commits, resp, err := g.restClient.Repositories.ListCommits(ctx, owner, name, opts)
	g.monitor.Observe(resp)
	if err != nil {
		return 0, fmt.Errorf("failed to list commits for %s/%s: %w", owner, name, err)
	}
	return len(commits), nil
}

// RateLimit queries the dedicated /rate_limit endpoint, which does not
// itself count against the quota.
func (g *GitHubGateway) RateLimit(ctx context.Context) (domain.RateLimitStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, g.requestTimeout)
	defer cancel()
	limits, _, err := g.restClient.RateLimit.Get(ctx)
	if err != nil {
		return domain.RateLimitStatus{}, fmt.Errorf("failed to fetch rate limit status: %w", err)
	}
	core := limits.GetCore()
	if core == nil {
		return domain.RateLimitStatus{}, errors.New("rate limit response carried no core quota")
	}
	return domain.RateLimitStatus{
		Remaining: core.Remaining,
		Limit:     core.Limit,
		ResetAt:   core.Reset.Time,
	}, nil
}

// LastRateLimit exposes the monitor's most recent header observation.
func (g *GitHubGateway) LastRateLimit() (domain.RateLimitStatus, bool) {
	return g.monitor.Last()
}

func toSummary(r *github.Repository) domain.RepositorySummary {
	return domain.RepositorySummary{
		Name:        r.GetName(),
		Owner:       r.GetOwner().GetLogin(),
		FullName:    r.GetFullName(),
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
		URL:         r.GetHTMLURL(),
		Description: r.GetDescription(),
		Archived:    r.GetArchived(),
	}
}
