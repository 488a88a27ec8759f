package usecase

import (
	"github.com/montanaflynn/stats"

	"github.com/robertranjan/gh-top-projects/internal/domain"
)

// SummarizeStars computes descriptive statistics over the star counts of
// a result set. An empty set yields a zero-valued summary.
func SummarizeStars(repos []domain.RepositorySummary) domain.StarStats {
	if len(repos) == 0 {
		return domain.StarStats{}
	}
	counts := make(stats.Float64Data, 0, len(repos))
	for _, repo := range repos {
		counts = append(counts, float64(repo.Stars))
	}
	min, _ := stats.Min(counts)
	max, _ := stats.Max(counts)
	mean, _ := stats.Mean(counts)
	median, _ := stats.Median(counts)
	return domain.StarStats{
		Count:  len(repos),
		Min:    int(min),
		Max:    int(max),
		Mean:   mean,
		Median: median,
	}
}
