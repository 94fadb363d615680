package commands

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"eliasstats/parse"
	"eliasstats/utils"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var parseLimit int

func init() {
	parseCmd.Flags().IntVar(&parseLimit, "limit", 25, "rows to print, 0 for all")
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse <slug> <file>",
	Short: "Decodes a downloaded report and prints the records as a table.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		slug, path := args[0], args[1]
		content, err := os.ReadFile(path)
		if err != nil {
			return utils.ErrorWithTrace(err)
		}
		records, known := parse.DecodeSlug(slug, string(content))
		if !known {
			fmt.Fprintf(os.Stderr, "unknown category %q, decoded as generic lines\n", slug)
		}
		if len(records) == 0 {
			fmt.Println("no records decoded")
			return nil
		}
		printRecords(records, parseLimit)
		return nil
	},
}

// printRecords renders one column per db-tagged field, skipping the raw line.
func printRecords(records []parse.Record, limit int) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	typ := reflect.TypeOf(records[0])
	header := table.Row{}
	fields := []int{}
	for i := range typ.NumField() {
		tag := typ.Field(i).Tag.Get("db")
		if tag == "" || tag == "-" || tag == "raw_line" {
			continue
		}
		header = append(header, tag)
		fields = append(fields, i)
	}
	t.AppendHeader(header)

	shown := records
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	for _, r := range shown {
		v := reflect.ValueOf(r)
		row := table.Row{}
		for _, i := range fields {
			row = append(row, cell(v.Field(i)))
		}
		t.AppendRow(row)
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d of %d", len(shown), len(records))})
	t.Render()
}

func cell(v reflect.Value) string {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	switch x := v.Interface().(type) {
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", x), "0"), ".")
	case interface{ Format(string) string }:
		return x.Format("2006-01-02")
	default:
		return fmt.Sprint(x)
	}
}
