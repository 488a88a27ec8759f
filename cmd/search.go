package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/robertranjan/gh-top-projects/internal/domain"
	"github.com/robertranjan/gh-top-projects/internal/export"
	"github.com/robertranjan/gh-top-projects/internal/gateway"
	"github.com/robertranjan/gh-top-projects/internal/output"
	"github.com/robertranjan/gh-top-projects/internal/usecase"
)

// topTableSize caps the number of rows in the console summary table.
const topTableSize = 10

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Searches top repositories and exports them to CSV",
	Long: `Searches GitHub for repositories matching a language, star range, and fork
floor, optionally enriches each result with contributor and recent-commit
counts, and writes the result set to a CSV file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		logger := newLogger()

		language, _ := cmd.Flags().GetString("language")
		minStars, _ := cmd.Flags().GetInt("min-stars")
		maxStars, _ := cmd.Flags().GetInt("max-stars")
		minForks, _ := cmd.Flags().GetInt("min-forks")
		outputPath, _ := cmd.Flags().GetString("output")
		countOnly, _ := cmd.Flags().GetBool("count")
		enrich, _ := cmd.Flags().GetBool("enrich")

		filter := domain.SearchFilter{
			Language: language,
			MinStars: minStars,
			MaxStars: maxStars,
			MinForks: minForks,
		}
		if outputPath == "" {
			outputPath = defaultOutputPath(filter)
		}

		gw, err := gateway.NewGitHubGateway(viper.GetString("token"), logger)
		if err != nil {
			return fmt.Errorf("failed to create GitHub gateway: %w", err)
		}

		if countOnly {
			total, err := gw.CountRepositories(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to count repositories: %w", err)
			}
			ui.Info("%s repositories match %s", output.Green(strconv.Itoa(total)), output.Cyan(filter.Query()))
			reportRateLimit(ctx, gw)
			return nil
		}

		ui.Info("Searching: %s", output.Cyan(filter.Query()))
		collector := usecase.NewCollector(gw, logger)
		repos, err := collector.Fetch(ctx, filter)
		if err != nil {
			// A search failure on its own never fails the run; whatever
			// pages arrived still flow through enrichment and export.
			ui.Warning("Search ended early, continuing with %d repositories: %v", len(repos), err)
		}
		if len(repos) == 0 {
			ui.Info("No repositories found.")
			return nil
		}

		var details []domain.RepositoryDetail
		columns := export.SummaryColumns()
		if enrich {
			details = collector.Enrich(ctx, repos, func(done, total int, repo string) {
				ui.Progressf("Enriching [%d/%d] %s", done, total, repo)
			})
			ui.ProgressDone()
			columns = export.DetailColumns()
		} else {
			details = usecase.WithoutEnrichment(repos)
		}

		if err := export.NewCSV(columns).WriteFile(outputPath, details); err != nil {
			return fmt.Errorf("failed to write %s: %w", outputPath, err)
		}
		ui.Success("Saved %d repositories to %s.", len(details), outputPath)

		printStarSummary(repos)
		reportRateLimit(ctx, gw)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringP("language", "l", "", "Programming language to filter by (required)")
	searchCmd.Flags().Int("min-stars", 0, "Minimum number of stars (required)")
	searchCmd.Flags().Int("max-stars", 0, "Maximum number of stars (required)")
	searchCmd.Flags().Int("min-forks", 0, "Minimum number of forks")
	searchCmd.Flags().StringP("output", "o", "", "Output CSV file (default <language>_repos_<min>-<max>.csv)")
	searchCmd.Flags().Bool("count", false, "Report the total match count and exit without fetching")
	searchCmd.Flags().Bool("enrich", true, "Look up contributor and recent-commit counts per repository")
	searchCmd.MarkFlagRequired("language")
	searchCmd.MarkFlagRequired("min-stars")
	searchCmd.MarkFlagRequired("max-stars")
}

// defaultOutputPath derives the destination file name from the filter,
// e.g. rust_repos_1000-5000.csv.
func defaultOutputPath(filter domain.SearchFilter) string {
	return fmt.Sprintf("%s_repos_%d-%d.csv", filter.Language, filter.MinStars, filter.MaxStars)
}

// printStarSummary reports star statistics and the highest-starred results.
func printStarSummary(repos []domain.RepositorySummary) {
	stats := usecase.SummarizeStars(repos)
	ui.Info("Stars across %d repositories: min %d, max %d, mean %.1f, median %.1f",
		stats.Count, stats.Min, stats.Max, stats.Mean, stats.Median)

	top := repos
	if len(top) > topTableSize {
		top = top[:topTableSize]
	}
	table := ui.Table([]string{"Repository", "Stars", "Forks"})
	for _, repo := range top {
		table.Append([]string{repo.FullName, strconv.Itoa(repo.Stars), strconv.Itoa(repo.Forks)})
	}
	_ = table.Render()
}

// reportRateLimit prints the remaining API quota. It prefers the dedicated
// status endpoint and falls back to the last header observation when that
// endpoint is unreachable; an exhausted quota must not mask the report.
func reportRateLimit(ctx context.Context, gw gateway.Fetcher) {
	status, err := gw.RateLimit(ctx)
	if err != nil {
		last, ok := gw.LastRateLimit()
		if !ok {
			ui.Warning("Rate limit status unavailable: %v", err)
			return
		}
		status = last
	}
	ui.Info("Rate limit: %d/%d remaining, resets at %s",
		status.Remaining, status.Limit, status.ResetAt.Local().Format(time.Kitchen))
}
