package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"eliasstats/utils"

	flag "github.com/spf13/pflag"
)

const (
	StatsPageURL = "https://www.nba.com/stats/tools/media-central-game-stats"
	CDNBase      = "https://cdn.nba.com/static/json/staticData/EliasGameStats/00"
)

var (
	ConfigFile  string
	ProdFlag    bool
	Verbose     bool
	DBDriver    string
	DatabaseURL string
	DownloadDir string
	RedisURL    string
	RedisStream string
	ListenAddr  string
	CronSpec    string
	SecretFile  string
	TokenFile   string
	DriveFolder string
	RateLimit   float64
	RunTimeout  time.Duration
	StaleAfter  time.Duration
)

// Report is one report file listed in the league-wide stats table.
type Report struct {
	Name string
	Slug string
	File string
}

func (r Report) URL() string {
	return CDNBase + "/" + r.File
}

var KnownReports = []Report{
	{Name: "Latest Boxscore Lines", Slug: "latest_boxscore_lines", File: "all_players_day.txt"},
	{Name: "Alphabetical Player Cumulatives", Slug: "alphabetical_player_cumulatives", File: "all_players_season.txt"},
	{Name: "Alphabetical Rookie Cumulatives", Slug: "alphabetical_rookie_cumulatives", File: "all_rookies.txt"},
	{Name: "Attendance", Slug: "attendance", File: "attend.txt"},
	{Name: "Latest Scores and Leaders", Slug: "latest_scores_and_leaders", File: "day_scores.txt"},
	{Name: "Single-Game Highs/Lows", Slug: "single_game_highs_lows", File: "high_low.txt"},
	{Name: "Top 10 League Leaders", Slug: "top_10_league_leaders", File: "leaders.txt"},
	{Name: "Top 20 League Leaders", Slug: "top_20_league_leaders", File: "leaders_deep.txt"},
	{Name: "Rookie League Leaders", Slug: "rookie_league_leaders", File: "leaders_rookies.txt"},
	{Name: "Ratios - Players", Slug: "ratios_players", File: "ratios_players.txt"},
	{Name: "Ratios - Teams", Slug: "ratios_teams", File: "ratios_teams.txt"},
	{Name: "Playoff Schedule/Results", Slug: "playoff_schedule_results", File: "results_pos.txt"},
	{Name: "Standings", Slug: "standings", File: "stand.txt"},
	{Name: "Head-to-Head Win Grid", Slug: "head_to_head_win_grid", File: "stand_tvt.txt"},
	{Name: "Offensive/Defensive", Slug: "offensive_defensive", File: "team_opp.txt"},
	{Name: "Miscellaneous", Slug: "miscellaneous", File: "team_opp_misc.txt"},
	{Name: "Opponent Points Breakdown", Slug: "opponent_points_breakdown", File: "team_opp_pts_breakdown.txt"},
}

// File is the shape of the optional eliasstats.json5 config file.
type File struct {
	DBDriver    string  `json:"db_driver"`
	DatabaseURL string  `json:"database_url"`
	DownloadDir string  `json:"download_dir"`
	RedisURL    string  `json:"redis_url"`
	RedisStream string  `json:"redis_stream"`
	ListenAddr  string  `json:"listen"`
	CronSpec    string  `json:"cron"`
	SecretFile  string  `json:"secret_file"`
	TokenFile   string  `json:"token_file"`
	DriveFolder string  `json:"drive_folder"`
	RateLimit   float64 `json:"rate_limit"`
	RunTimeout  string  `json:"run_timeout"`
	StaleAfter  string  `json:"stale_after"`
}

type flagValues struct {
	dbDriver    string
	databaseURL string
	downloadDir string
	redisURL    string
	listenAddr  string
	cronSpec    string
	driveFolder string
	rateLimit   float64
}

var flags flagValues

// RegisterFlags adds the configuration flags to fs. Values given on the
// command line override every other source.
func RegisterFlags(fs *flag.FlagSet) {
	fs.StringVarP(&ConfigFile, "config", "c", "eliasstats.json5", "path to a json5 config file")
	fs.BoolVarP(&ProdFlag, "prod", "p", false, "designates production")
	fs.BoolVarP(&Verbose, "verbose", "v", false, "enable debug logging")
	fs.StringVar(&flags.dbDriver, "db-driver", "", "database driver: postgres or sqlite3")
	fs.StringVar(&flags.databaseURL, "db-url", "", "database connection string or sqlite file")
	fs.StringVar(&flags.downloadDir, "download-dir", "", "directory for local report backups")
	fs.StringVar(&flags.redisURL, "redis-url", "", "redis url for run notifications, empty to disable")
	fs.StringVar(&flags.listenAddr, "listen", "", "address the api listens on")
	fs.StringVar(&flags.cronSpec, "cron", "", "cron spec for the scrape daemon")
	fs.StringVar(&flags.driveFolder, "drive-folder", "", "google drive folder id for report uploads, empty to disable")
	fs.Float64Var(&flags.rateLimit, "rate", 0, "report requests per second")
}

// LoadConfig resolves every setting from defaults, the config file, the
// environment and finally the flags in fs, in increasing priority.
func LoadConfig(fs *flag.FlagSet) error {
	if err := setDefaults(); err != nil {
		return utils.ErrorWithTrace(err)
	}

	file, err := ReadConfig[File](ConfigFile)
	if err != nil && !os.IsNotExist(err) {
		return utils.ErrorWithTrace(err)
	}
	if err := applyFile(file); err != nil {
		return utils.ErrorWithTrace(err)
	}
	if err := applyEnv(); err != nil {
		return utils.ErrorWithTrace(err)
	}
	if fs != nil {
		applyFlags(fs)
	}

	if DBDriver != "postgres" && DBDriver != "sqlite3" {
		return utils.ErrorWithTrace(fmt.Errorf("unsupported db driver %q", DBDriver))
	}
	// the stale janitor ticks every StaleAfter/2
	if StaleAfter < 2*time.Second {
		return utils.ErrorWithTrace(fmt.Errorf("stale_after must be at least 2s, got %s", StaleAfter))
	}
	if RunTimeout <= 0 {
		return utils.ErrorWithTrace(fmt.Errorf("run_timeout must be positive, got %s", RunTimeout))
	}
	slog.Debug("config loaded",
		"prod", ProdFlag,
		"db_driver", DBDriver,
		"download_dir", DownloadDir,
		"listen", ListenAddr,
		"cron", CronSpec,
	)
	return nil
}

func setDefaults() error {
	RedisURL = ""
	RedisStream = "eliasstats:runs"
	ListenAddr = ":8080"
	CronSpec = "@every 30m"
	DriveFolder = ""
	RateLimit = 0.5
	RunTimeout = 10 * time.Minute
	StaleAfter = 30 * time.Minute

	if ProdFlag {
		DBDriver = "postgres"
		DatabaseURL = postgresURLFromEnv()
		DownloadDir = "/data/downloads"
		SecretFile = "/secrets/secret.json"
		TokenFile = "/secrets/token.json"
		return nil
	}

	binPath, err := os.Executable()
	if err != nil {
		return err
	}
	dir := filepath.Dir(binPath)
	DBDriver = "sqlite3"
	DatabaseURL = filepath.Join(dir, "database.db")
	DownloadDir = filepath.Join(dir, "downloads")
	SecretFile = filepath.Join(dir, "secret.json")
	TokenFile = filepath.Join(dir, "token.json")
	return nil
}

func postgresURLFromEnv() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getenv("DB_USER", "postgres"),
		getenv("DB_PASSWORD", "postgres"),
		getenv("DB_HOST", "localhost"),
		getenv("DB_PORT", "5432"),
		getenv("DB_NAME", "nba_data"),
	)
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v string) error {
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

func applyFile(f File) error {
	setString(&DBDriver, f.DBDriver)
	setString(&DatabaseURL, f.DatabaseURL)
	setString(&DownloadDir, f.DownloadDir)
	setString(&RedisURL, f.RedisURL)
	setString(&RedisStream, f.RedisStream)
	setString(&ListenAddr, f.ListenAddr)
	setString(&CronSpec, f.CronSpec)
	setString(&SecretFile, f.SecretFile)
	setString(&TokenFile, f.TokenFile)
	setString(&DriveFolder, f.DriveFolder)
	if f.RateLimit > 0 {
		RateLimit = f.RateLimit
	}
	if err := setDuration(&RunTimeout, f.RunTimeout); err != nil {
		return err
	}
	return setDuration(&StaleAfter, f.StaleAfter)
}

func applyEnv() error {
	setString(&DBDriver, os.Getenv("DB_DRIVER"))
	setString(&DatabaseURL, os.Getenv("DATABASE_URL"))
	setString(&DownloadDir, os.Getenv("DOWNLOAD_DIR"))
	setString(&RedisURL, os.Getenv("REDIS_URL"))
	setString(&ListenAddr, os.Getenv("LISTEN_ADDR"))
	setString(&CronSpec, os.Getenv("SCRAPE_CRON"))
	setString(&DriveFolder, os.Getenv("DRIVE_FOLDER"))
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT: %w", err)
		}
		RateLimit = r
	}
	return nil
}

func applyFlags(fs *flag.FlagSet) {
	if fs.Changed("db-driver") {
		DBDriver = flags.dbDriver
	}
	if fs.Changed("db-url") {
		DatabaseURL = flags.databaseURL
	}
	if fs.Changed("download-dir") {
		DownloadDir = flags.downloadDir
	}
	if fs.Changed("redis-url") {
		RedisURL = flags.redisURL
	}
	if fs.Changed("listen") {
		ListenAddr = flags.listenAddr
	}
	if fs.Changed("cron") {
		CronSpec = flags.cronSpec
	}
	if fs.Changed("drive-folder") {
		DriveFolder = flags.driveFolder
	}
	if fs.Changed("rate") && flags.rateLimit > 0 {
		RateLimit = flags.rateLimit
	}
}
