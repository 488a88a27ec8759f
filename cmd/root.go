// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/robertranjan/gh-top-projects/internal/output"
)

// Package-level shared dependencies, initialized in cobra.OnInitialize.
var (
	ui *output.UI

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "gh-top-projects",
	Short: "A CLI tool to find top GitHub repositories by language and stars.",
	Long: `gh-top-projects searches GitHub for the most popular repositories of a
given language within a star range, optionally enriches each result with
contributor and recent-commit counts, and exports everything to a CSV file.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initDeps)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/gh-top-projects/config.yaml)")
	rootCmd.PersistentFlags().String("token", "", "GitHub API token (defaults to $GITHUB_TOKEN)")
	_ = viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
}

func initConfig() {
	// If --config is explicitly set, use that file
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "gh-top-projects"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("GHTOP")
	viper.AutomaticEnv()

	// A token is optional but raises the search quota from 10 to 30
	// requests per minute. GITHUB_TOKEN is the conventional variable.
	_ = viper.BindEnv("token", "GHTOP_TOKEN", "GITHUB_TOKEN")
	viper.SetDefault("token", "")

	// Read config file if it exists (optional)
	_ = viper.ReadInConfig()
}

func initDeps() {
	ui = output.New()
	ui.Verbose = verbose
}

// newLogger returns the diagnostic logger injected into the gateway and
// usecase layers. Everything is discarded unless --verbose is set.
func newLogger() *log.Logger {
	logger := log.New(io.Discard, "", log.LstdFlags)
	if verbose {
		logger.SetOutput(os.Stderr)
	}
	return logger
}
