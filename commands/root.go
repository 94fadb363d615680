package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"eliasstats/archive"
	"eliasstats/config"
	"eliasstats/db"
	"eliasstats/elias"
	"eliasstats/notify"
	"eliasstats/scrape"
	"eliasstats/utils"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "eliasstats",
	Short:         "eliasstats scrapes the NBA Elias text reports into a database and serves them.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadConfig(cmd.Flags()); err != nil {
			return err
		}
		setupLogger()
		return nil
	},
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())
}

func ExecuteContext(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	if closeErr := db.Close(); closeErr != nil {
		slog.Error("failed to close database", "err", closeErr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogger() {
	level := slog.LevelInfo
	if config.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))
}

// openDatabase connects and brings the schema up to date.
func openDatabase() error {
	if err := db.SetupDatabase(); err != nil {
		return utils.ErrorWithTrace(err)
	}
	if err := db.RunMigrations(); err != nil {
		return utils.ErrorWithTrace(err)
	}
	if err := db.ValidateMigrations(); err != nil {
		return utils.ErrorWithTrace(err)
	}
	return nil
}

// publisher connects to redis when a url is configured. The returned close
// func is always safe to call.
func publisher(ctx context.Context) (notify.Publisher, *notify.StreamPublisher, func()) {
	if config.RedisURL == "" {
		return notify.Nop{}, nil, func() {}
	}
	p, err := notify.Connect(ctx, config.RedisURL, config.RedisStream)
	if err != nil {
		slog.Warn("run notifications disabled", "err", err)
		return notify.Nop{}, nil, func() {}
	}
	return p, p, func() { p.Close() }
}

// uploader returns nil when no drive folder is configured.
func uploader(ctx context.Context) archive.Uploader {
	if config.DriveFolder == "" {
		return nil
	}
	u, err := archive.NewDriveUploader(ctx, config.SecretFile, config.TokenFile, config.DriveFolder)
	if err != nil {
		slog.Warn("drive uploads disabled", "err", err)
		return nil
	}
	go u.ServiceJanitor(ctx, 30*time.Minute)
	return u
}

func newScraper(ctx context.Context, pub notify.Publisher) (*scrape.Scraper, error) {
	client, err := elias.NewClient(elias.ClientOptions{PageURL: config.StatsPageURL})
	if err != nil {
		return nil, utils.ErrorWithTrace(err)
	}
	return scrape.New(client, pub, uploader(ctx)), nil
}
