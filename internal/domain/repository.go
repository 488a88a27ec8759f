// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"fmt"
	"time"
)

// SearchFilter narrows which repositories a search returns.
// MinStars <= MaxStars is the caller's responsibility; values are
// passed through to the remote API unvalidated.
type SearchFilter struct {
	Language string
	MinStars int
	MaxStars int
	MinForks int
}

// Query renders the filter as a GitHub search qualifier string,
// e.g. "language:rust stars:1000..5000 forks:>=0".
func (f SearchFilter) Query() string {
	return fmt.Sprintf("language:%s stars:%d..%d forks:>=%d", f.Language, f.MinStars, f.MaxStars, f.MinForks)
}

// RepositorySummary is one search-result item, carried verbatim from
// the remote response and never mutated afterwards. Owner and Name
// locate the contributor and commit sub-resources during enrichment.
type RepositorySummary struct {
	Name        string
	Owner       string
	FullName    string
	Stars       int
	Forks       int
	URL         string
	Description string
	Archived    bool
}

// CountResult is the outcome of a single enrichment sub-request.
// Err is non-nil when the count could not be determined, which keeps
// "genuinely zero" distinguishable from "unknown".
type CountResult struct {
	Count int
	Err   error
}

// Known reports whether the count was actually determined.
func (r CountResult) Known() bool { return r.Err == nil }

// OrZero collapses an unknown count to 0, the value exported files carry.
func (r CountResult) OrZero() int {
	if r.Err != nil {
		return 0
	}
	return r.Count
}

// RepositoryDetail is a RepositorySummary extended with enrichment
// counts. Counts default to 0 when their lookup failed.
type RepositoryDetail struct {
	RepositorySummary
	ContributorCount  int
	RecentCommitCount int
}

// NewRepositoryDetail merges one summary with its enrichment results.
func NewRepositoryDetail(s RepositorySummary, contributors, commits CountResult) RepositoryDetail {
	return RepositoryDetail{
		RepositorySummary: s,
		ContributorCount:  contributors.OrZero(),
		RecentCommitCount: commits.OrZero(),
	}
}

// RateLimitStatus is the remote API quota as last reported.
// It is transient and never persisted.
type RateLimitStatus struct {
	Remaining int
	Limit     int
	ResetAt   time.Time
}

// StarStats summarizes the star counts of one fetched result set.
type StarStats struct {
	Count  int
	Min    int
	Max    int
	Mean   float64
	Median float64
}
