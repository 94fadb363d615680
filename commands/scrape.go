package commands

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Runs one scrape: downloads every report, decodes it and replaces the stored data.",
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
		t1 := time.Now()
		runID, err := s.RunNew(ctx)
		if err != nil {
			return err
		}
		slog.Info("scrape finished", "run", runID, "seconds", time.Since(t1).Seconds())
		return nil
	},
}
