package parse

import (
	"regexp"
	"strings"
)

const (
	MiscCategory  = "Team Miscellaneous"
	maxMiscValue  = 200
	minMiscTeamSz = 3
)

var (
	miscSkipPrefixes = []string{
		"INCLUDES", "TEAM", "COMPOSITE", "* -", "REBOUND PERC",
		"OFF.", "DEF.", "TOT.", "POINTS", "FIELD GOAL", "TURNOVERS",
		"REBOUND", "DECIDED", "BELOW", "OVERTIME",
	}
	//	Atlanta               117.3  118.6    .472  .476    14.3  15.9
	miscRowPattern = regexp.MustCompile(`^([A-Z][A-Za-z.\s]+?)\s{2,}([\d.\s*\-]+)`)
)

// DecodeMiscellaneous keeps each team row of the miscellaneous report with
// its numbers as one opaque value.
func DecodeMiscellaneous(text string) []MiscEntry {
	return eachLine("miscellaneous", text, parseMiscLine)
}

func parseMiscLine(line string) (MiscEntry, bool) {
	stripped := strings.TrimSpace(line)
	if hasAnyPrefix(stripped, miscSkipPrefixes...) {
		return MiscEntry{}, false
	}
	m := miscRowPattern.FindStringSubmatch(stripped)
	if m == nil {
		return MiscEntry{}, false
	}
	team := strings.TrimSpace(m[1])
	if len(team) < minMiscTeamSz {
		return MiscEntry{}, false
	}
	value := strings.TrimSpace(m[2])
	if len(value) > maxMiscValue {
		value = value[:maxMiscValue]
	}
	return MiscEntry{
		StatCategory: MiscCategory,
		Team:         team,
		Value:        value,
		RawLine:      stripped,
	}, true
}
