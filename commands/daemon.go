package commands

import (
	"eliasstats/config"
	"eliasstats/jobs"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(daemonCmd)
}

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Scrapes on the configured cron schedule until interrupted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := openDatabase(); err != nil {
			return err
		}
		pub, _, closePub := publisher(ctx)
		defer closePub()

		s, err := newScraper(ctx, pub)
		if err != nil {
			return err
		}
		go jobs.StaleRunsJanitor(ctx, config.StaleAfter/2, config.StaleAfter)
		return s.Daemon(ctx, config.CronSpec)
	},
}
