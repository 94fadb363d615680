package parse

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// NoData is the placeholder the reports print where a value is unavailable.
	NoData     = "---"
	dateLayout = "01/02/2006"
)

// ToInt parses an integer that may carry thousands separators ("406,165").
// Returns nil when the token is not an integer.
func ToInt(text string) *int {
	s := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// ToFloat parses a decimal such as ".500" or "32.8". The NoData sentinel,
// NaN/Inf and anything unparsable yield nil.
func ToFloat(text string) *float64 {
	s := strings.TrimSpace(text)
	if s == NoData {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// ToDate parses a strict MM/DD/YYYY token.
func ToDate(text string) *time.Time {
	t, err := time.Parse(dateLayout, strings.TrimSpace(text))
	if err != nil {
		return nil
	}
	return &t
}

// NonBlankLines splits text into lines and drops the ones that are empty
// after trimming. Kept lines are returned untouched apart from a trailing \r.
func NonBlankLines(text string) []string {
	lines := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

var columnGap = regexp.MustCompile(`\s{4,}`)

// SplitColumns splits a side-by-side line on runs of four or more spaces.
func SplitColumns(line string) []string {
	segments := []string{}
	for _, s := range columnGap.Split(strings.TrimSpace(line), -1) {
		s = strings.TrimSpace(s)
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

var numericSegment = regexp.MustCompile(`^[\d.\s]+$`)

// columnBlocks is SplitColumns with purely numeric segments glued back onto
// the name segment on their left, so "Doncic, LA-L          42  437 32.8"
// stays one block even though the name is padded with a wide gap.
func columnBlocks(line string) []string {
	blocks := []string{}
	for _, s := range SplitColumns(line) {
		if numericSegment.MatchString(s) && len(blocks) > 0 && !numericSegment.MatchString(blocks[len(blocks)-1]) {
			blocks[len(blocks)-1] += "  " + s
			continue
		}
		blocks = append(blocks, s)
	}
	return blocks
}

// splitNameTeam splits "Pritchard, Bos." into ("Pritchard", "Bos") at the
// last comma. Without a comma the whole text is the name.
func splitNameTeam(text string) (string, *string) {
	i := strings.LastIndex(text, ",")
	if i < 0 {
		return strings.TrimSpace(text), nil
	}
	team := strings.TrimRight(strings.TrimSpace(text[i+1:]), ".")
	return strings.TrimSpace(text[:i]), &team
}

func ptr[T any](v T) *T {
	return &v
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
