package db

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"eliasstats/parse"
	"eliasstats/utils"
)

// sqlite builds before 3.32 cap a statement at 999 bound parameters
const maxParams = 999

type RawData struct {
	Category     string    `db:"category" json:"category"`
	CategorySlug string    `db:"category_slug" json:"category_slug"`
	SourceURL    string    `db:"source_url" json:"source_url"`
	RawContent   string    `db:"raw_content" json:"raw_content"`
	ScrapedAt    time.Time `db:"scraped_at" json:"scraped_at"`
	ScrapeRunID  int64     `db:"scrape_run_id" json:"scrape_run_id"`
}

func InsertRawData(d RawData) error {
	if d.ScrapedAt.IsZero() {
		d.ScrapedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO raw_data (
			category, category_slug, source_url, raw_content, scraped_at, scrape_run_id
		) VALUES (
			:category, :category_slug, :source_url, :raw_content, :scraped_at, :scrape_run_id
		)
	`
	if _, err := conn.NamedExec(query, d); err != nil {
		return utils.ErrorWithTrace(err)
	}
	return nil
}

type genericRow struct {
	CategorySlug string `db:"category_slug"`
	RawLine      string `db:"raw_line"`
}

// InsertRecords stores decoded records in the category table named table.
// All records must share one concrete type.
func InsertRecords(table string, runID int64, records []parse.Record) (int, error) {
	if _, ok := TableFor(table); !ok {
		return 0, utils.ErrorWithTrace(fmt.Errorf("unknown data table %q", table))
	}
	rows := make([]any, len(records))
	for i, r := range records {
		rows[i] = r
	}
	return insertRows(table, runID, rows)
}

// InsertGenericLines stores the lines of a report that has no dedicated
// table.
func InsertGenericLines(runID int64, slug string, records []parse.Record) (int, error) {
	rows := make([]any, len(records))
	for i, r := range records {
		rows[i] = genericRow{CategorySlug: slug, RawLine: r.Raw()}
	}
	return insertRows("generic_lines", runID, rows)
}

// insertRows writes rows with multi-row INSERTs inside one transaction. The
// column list comes from the db tags of the first row.
func insertRows(table string, runID int64, rows []any) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	rowType := reflect.TypeOf(rows[0])
	columns := append(recordColumns(rows[0]), "scrape_run_id")

	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"
	prefix := fmt.Sprintf("INSERT INTO %s (%s) VALUES ", table, strings.Join(columns, ", "))

	tx, err := conn.Beginx()
	if err != nil {
		return 0, utils.ErrorWithTrace(err)
	}
	defer tx.Rollback()

	for _, chunk := range utils.Chunk(rows, maxParams/len(columns)) {
		values := make([]string, 0, len(chunk))
		args := make([]any, 0, len(chunk)*len(columns))
		for _, row := range chunk {
			if reflect.TypeOf(row) != rowType {
				return 0, utils.ErrorWithTrace(fmt.Errorf("mixed record types for %s: %s and %T", table, rowType, row))
			}
			values = append(values, placeholder)
			args = append(args, recordValues(row)...)
			args = append(args, runID)
		}
		query := tx.Rebind(prefix + strings.Join(values, ", "))
		if _, err := tx.Exec(query, args...); err != nil {
			return 0, utils.ErrorWithTrace(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, utils.ErrorWithTrace(err)
	}
	return len(rows), nil
}

// TruncateData empties every data table. Run bookkeeping is kept.
func TruncateData() error {
	tables := DataTables()
	if isPostgres() {
		if _, err := conn.Exec("TRUNCATE TABLE " + strings.Join(tables, ", ")); err != nil {
			return utils.ErrorWithTrace(err)
		}
		return nil
	}

	tx, err := conn.Beginx()
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	defer tx.Rollback()
	for _, table := range tables {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return utils.ErrorWithTrace(err)
		}
	}
	return tx.Commit()
}

func structValue(v any) reflect.Value {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	return rv
}

// recordColumns lists the db tags of v's fields in declaration order.
func recordColumns(v any) []string {
	rt := structValue(v).Type()
	columns := make([]string, 0, rt.NumField())
	for i := range rt.NumField() {
		if tag := rt.Field(i).Tag.Get("db"); tag != "" && tag != "-" {
			columns = append(columns, tag)
		}
	}
	return columns
}

func recordValues(v any) []any {
	rv := structValue(v)
	rt := rv.Type()
	values := make([]any, 0, rt.NumField())
	for i := range rt.NumField() {
		if tag := rt.Field(i).Tag.Get("db"); tag != "" && tag != "-" {
			values = append(values, rv.Field(i).Interface())
		}
	}
	return values
}
