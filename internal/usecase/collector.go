// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"log"
	"time"

	"github.com/robertranjan/gh-top-projects/internal/domain"
	"github.com/robertranjan/gh-top-projects/internal/gateway"
)

// recentWindowDays is the trailing window for the recent-commit count.
const recentWindowDays = 90

// Progress reports one step of the sequential enrichment loop.
// Implementations decide how to present it; the collector never writes
// to the console itself.
type Progress func(done, total int, repo string)

// Collector is the use case for collecting repository data.
// It orchestrates the search and the per-repository enrichment.
type Collector struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
}

// NewCollector creates a new Collector instance.
func NewCollector(fetcher gateway.Fetcher, logger *log.Logger) *Collector {
	return &Collector{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Fetch returns every repository matching the filter. When the search
// fails partway through, the pages accumulated before the failure come
// back alongside the error so the caller can keep the partial result.
func (c *Collector) Fetch(ctx context.Context, filter domain.SearchFilter) ([]domain.RepositorySummary, error) {
	c.logger.Println("Usecase: Starting repository search...")
	repos, err := c.fetcher.SearchRepositories(ctx, filter)
	if err != nil {
		c.logger.Printf("Usecase: Search ended early with %d repositories: %v", len(repos), err)
		return repos, err
	}
	c.logger.Printf("Usecase: Search returned %d repositories.", len(repos))
	return repos, nil
}

// Enrich resolves the contributor and recent-commit counts for each
// repository, strictly one repository at a time. A failed sub-request is
// logged, recorded on its CountResult, and never aborts the loop.
func (c *Collector) Enrich(ctx context.Context, repos []domain.RepositorySummary, progress Progress) []domain.RepositoryDetail {
	c.logger.Printf("Usecase: Enriching %d repositories...", len(repos))
	since := time.Now().AddDate(0, 0, -recentWindowDays)

	details := make([]domain.RepositoryDetail, 0, len(repos))
	for i, repo := range repos {
		if progress != nil {
			progress(i+1, len(repos), repo.FullName)
		}
		contributors := c.lookup(repo, "contributor count", func() (int, error) {
			return c.fetcher.ContributorCount(ctx, repo.Owner, repo.Name)
		})
		commits := c.lookup(repo, "recent commit count", func() (int, error) {
			return c.fetcher.RecentCommitCount(ctx, repo.Owner, repo.Name, since)
		})
		details = append(details, domain.NewRepositoryDetail(repo, contributors, commits))
	}
	c.logger.Println("Usecase: Enrichment complete.")
	return details
}

func (c *Collector) lookup(repo domain.RepositorySummary, what string, fetch func() (int, error)) domain.CountResult {
	n, err := fetch()
	if err != nil {
		c.logger.Printf("Usecase: Could not determine %s for %s, defaulting to 0: %v", what, repo.FullName, err)
		return domain.CountResult{Err: err}
	}
	return domain.CountResult{Count: n}
}

// WithoutEnrichment adapts plain summaries for export when enrichment
// was skipped for the run.
func WithoutEnrichment(repos []domain.RepositorySummary) []domain.RepositoryDetail {
	details := make([]domain.RepositoryDetail, 0, len(repos))
	for _, repo := range repos {
		details = append(details, domain.RepositoryDetail{RepositorySummary: repo})
	}
	return details
}
