package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jasidev/trendpost/lib/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously posted topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := history.Open(cfg, log)
		entries, err := store.Load(cmd.Context())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no topics posted yet")
			return nil
		}
		w := cmd.OutOrStdout()
		for _, entry := range entries {
			fmt.Fprintf(w, "%s  %s\n", entry.PostedAt.Format("2006-01-02"), entry.Topic)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
