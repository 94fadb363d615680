package db

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"eliasstats/config"
	"eliasstats/parse"
	"eliasstats/utils"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations
var migrations embed.FS

var ErrNotFound = errors.New("not found")

var conn *sqlx.DB

// SetupDatabase opens the database named by the loaded config.
func SetupDatabase() error {
	return Open(config.DBDriver, config.DatabaseURL)
}

// Open connects to dsn and makes it the package connection. A missing sqlite
// file is created first.
func Open(driver, dsn string) error {
	if driver == "sqlite3" && !strings.HasPrefix(dsn, ":memory:") && !strings.HasPrefix(dsn, "file:") {
		_, err := os.Stat(dsn)
		if os.IsNotExist(err) {
			slog.Info("database file not found, creating a new database", "path", dsn)
			file, err := os.Create(dsn)
			if err != nil {
				return utils.ErrorWithTrace(err)
			}
			file.Close()
		} else if err != nil {
			return utils.ErrorWithTrace(err)
		}
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return utils.ErrorWithTrace(err)
	}
	if driver == "sqlite3" {
		// sqlite allows one writer; a single connection keeps writes serialized
		db.SetMaxOpenConns(1)
	}
	conn = db
	return nil
}

func Close() error {
	if conn == nil {
		return nil
	}
	err := conn.Close()
	conn = nil
	return err
}

func isPostgres() bool {
	return conn.DriverName() == "postgres"
}

func RunMigrations() error {
	if conn == nil {
		return utils.ErrorWithTrace(errors.New("database is not open"))
	}
	driverName := conn.DriverName()
	source, err := iofs.New(migrations, "migrations/"+driverName)
	if err != nil {
		return utils.ErrorWithTrace(err)
	}

	var driver database.Driver
	switch driverName {
	case "postgres":
		driver, err = postgres.WithInstance(conn.DB, &postgres.Config{})
	case "sqlite3":
		driver, err = sqlite3.WithInstance(conn.DB, &sqlite3.Config{})
	default:
		err = fmt.Errorf("no migrations for driver %q", driverName)
	}
	if err != nil {
		return utils.ErrorWithTrace(err)
	}

	// m.Close would close the shared connection, so m is left for the GC
	m, err := migrate.NewWithInstance("iofs", source, driverName, driver)
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return utils.ErrorWithTrace(err)
	}
	return nil
}

// ValidateMigrations checks that the bookkeeping table and every data table
// can be queried.
func ValidateMigrations() error {
	tables := append([]string{"scrape_runs"}, DataTables()...)
	for _, table := range tables {
		var count int
		if err := conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			return utils.ErrorWithTrace(fmt.Errorf("table %s: %w", table, err))
		}
	}
	return nil
}

// DataTables lists every table that is cleared before a scrape.
func DataTables() []string {
	tables := []string{"raw_data", "generic_lines"}
	for _, c := range parse.Categories() {
		tables = append(tables, c.Slug())
	}
	return tables
}

// TableFor returns the table that stores records decoded from slug.
func TableFor(slug string) (string, bool) {
	c, ok := parse.ParseCategory(slug)
	if !ok {
		return "", false
	}
	return c.Slug(), true
}

func Ping(ctx context.Context) error {
	if conn == nil {
		return utils.ErrorWithTrace(errors.New("database is not open"))
	}
	return conn.PingContext(ctx)
}
