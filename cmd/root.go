// Package cmd contains the CLI commands for trendpost
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jasidev/trendpost/lib/config"
	"github.com/jasidev/trendpost/lib/logger"
)

var (
	dryRun bool
	cfg    *config.Config
	log    *logger.Logger
)

// rootCmd runs one full posting cycle when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "trendpost",
	Short: "Search trending topics, write a post with an LLM, publish it to LinkedIn",
	Long: `trendpost performs one posting cycle and exits:

  1. fetch trending topic candidates from Google News search feeds
  2. drop topics posted recently (exact or near-duplicate match)
  3. have the configured model write a post about the first eligible topic
  4. publish it through the LinkedIn API and append it to the history record

Run it from cron or a CI schedule. With --dry-run the post is printed
instead of published and nothing is recorded.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "d", false, "generate and print the post without publishing or recording it")
}

func initConfig() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err = logger.NewLogger(cfg.LogPath, cfg.LogMaxSize, cfg.LogMaxBackups, cfg.LogMaxAge,
		logger.GetLogLevelFromString(cfg.LogLevel))
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	return nil
}
