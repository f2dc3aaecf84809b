package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/jasidev/trendpost/lib/history"
	"github.com/jasidev/trendpost/lib/linkedin"
	"github.com/jasidev/trendpost/lib/llm"
	"github.com/jasidev/trendpost/lib/runner"
	"github.com/jasidev/trendpost/lib/sources/gnews"
)

func runPipeline(cmd *cobra.Command) error {
	ctx := cmd.Context()

	r := &runner.Runner{
		Sourcer:   gnews.NewClient(cfg.Queries, cfg.MaxPerQuery, log),
		Generator: llm.NewGenerator(cfg.OpenAIKey, cfg.OpenAIModel, cfg.Persona, cfg.MaxPostChars, log),
		Store:     history.Open(cfg, log),
		Window:    time.Duration(cfg.RecencyWindowDays) * 24 * time.Hour,
		DryRun:    dryRun,
		Out:       cmd.OutOrStdout(),
		Log:       log,
	}

	if !dryRun {
		// Credentials are only needed when we will actually publish.
		creds, err := linkedin.LoadCredentials(ctx, cfg.LinkedInToken, cfg.LinkedInTokenFile, cfg.PersonURN)
		if err != nil {
			return err
		}
		r.Publisher = linkedin.NewClient(creds, log)
	}

	return r.Run(ctx)
}
