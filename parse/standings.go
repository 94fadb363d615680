package parse

import (
	"regexp"
	"strings"
)

// StandingsSplitColumn is the character offset separating the eastern half
// of a standings line from the western half. It depends on the width the
// report is rendered at and will break if that layout changes.
const StandingsSplitColumn = 85

var (
	divisionPattern      = regexp.MustCompile(`[A-Z]+(?: [A-Z]+)* DIVISION`)
	standingsHeader      = regexp.MustCompile(`^W\s+L\s+PCT`)
	allDashes            = regexp.MustCompile(`^-+$`)
	recordSpaces         = regexp.MustCompile(`\s*-\s*`)
	eastDivisionKeywords = []string{"ATLANTIC", "CENTRAL", "SOUTHEAST"}
	//	Boston              35 19  .648    -  18- 9 17-10     0- 0  7-3   Won   1
	standingsRowPattern = regexp.MustCompile(
		`([A-Z][A-Za-z0-9.\s]+?)\s+` +
			`(\d+)\s+(\d+)\s+` + // W L
			`(\.\d+|1\.000)\s+` + // PCT
			`([\d.]+|-+)\s+` + // GB
			`(\d+\s*-\s*\d+)\s+` + // home
			`(\d+\s*-\s*\d+)\s+` + // road
			`(\d+\s*-\s*\d+)\s+` + // neutral
			`(\d+\s*-\s*\d+)\s+` + // last 10
			`(Won|Lost)\s+(\d+)`, // streak
	)
)

type standingsContext struct {
	east *string
	west *string
}

// DecodeStandings reads the side-by-side conference standings. Each line is
// cut at StandingsSplitColumn and both halves are matched on their own, so a
// line yields zero, one or two rows.
func DecodeStandings(text string) []StandingsRow {
	return foldLines("standings", text, standingsContext{}, standingsContext.step)
}

func (c standingsContext) step(line string) (standingsContext, []StandingsRow) {
	stripped := strings.TrimSpace(line)
	if strings.Contains(line, "EASTERN CONFERENCE") && strings.Contains(line, "WESTERN CONFERENCE") {
		return c, nil
	}
	if strings.Contains(line, "DIVISION") {
		return c.divisions(divisionPattern.FindAllString(line, -1)), nil
	}
	if standingsHeader.MatchString(stripped) || strings.HasPrefix(stripped, "Scheduled") {
		return c, nil
	}

	left, right := splitAtColumn(line, StandingsSplitColumn)
	out := []StandingsRow{}
	if row, ok := parseStandingsHalf(left, ConferenceEast, c.east); ok {
		out = append(out, row)
	}
	if row, ok := parseStandingsHalf(right, ConferenceWest, c.west); ok {
		out = append(out, row)
	}
	return c, out
}

func (c standingsContext) divisions(names []string) standingsContext {
	switch {
	case len(names) >= 2:
		c.east, c.west = ptr(names[0]), ptr(names[1])
	case len(names) == 1:
		if containsAny(names[0], eastDivisionKeywords...) {
			c.east = ptr(names[0])
		} else {
			c.west = ptr(names[0])
		}
	}
	return c
}

func splitAtColumn(line string, col int) (string, string) {
	runes := []rune(line)
	if len(runes) <= col {
		return line, ""
	}
	return string(runes[:col]), string(runes[col:])
}

func parseStandingsHalf(half, conference string, division *string) (StandingsRow, bool) {
	if strings.TrimSpace(half) == "" {
		return StandingsRow{}, false
	}
	m := standingsRowPattern.FindStringSubmatch(half)
	if m == nil {
		return StandingsRow{}, false
	}
	gb := m[5]
	if allDashes.MatchString(gb) {
		gb = "0"
	}
	return StandingsRow{
		Conference:    conference,
		Division:      division,
		Team:          strings.TrimSpace(m[1]),
		Wins:          ToInt(m[2]),
		Losses:        ToInt(m[3]),
		Pct:           ToFloat(m[4]),
		GamesBehind:   gb,
		HomeRecord:    compactRecord(m[6]),
		RoadRecord:    compactRecord(m[7]),
		NeutralRecord: compactRecord(m[8]),
		Last10:        compactRecord(m[9]),
		Streak:        m[10] + " " + m[11],
		RawLine:       strings.TrimSpace(half),
	}, true
}

// compactRecord turns "18- 9" into "18-9".
func compactRecord(s string) string {
	return recordSpaces.ReplaceAllString(strings.TrimSpace(s), "-")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
