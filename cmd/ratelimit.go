package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/robertranjan/gh-top-projects/internal/gateway"
)

var ratelimitCmd = &cobra.Command{
	Use:   "ratelimit",
	Short: "Shows the current GitHub API rate limit status",
	Long: `Queries the dedicated rate limit endpoint and reports the core quota:
remaining requests, the total limit, and when the window resets. The
query itself does not count against the quota.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		logger := newLogger()

		gw, err := gateway.NewGitHubGateway(viper.GetString("token"), logger)
		if err != nil {
			return fmt.Errorf("failed to create GitHub gateway: %w", err)
		}
		status, err := gw.RateLimit(ctx)
		if err != nil {
			return err
		}
		ui.Info("Core quota: %d/%d remaining", status.Remaining, status.Limit)
		ui.Info("Resets at %s", status.ResetAt.Local().Format(time.RFC1123))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ratelimitCmd)
}
