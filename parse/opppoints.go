package parse

import (
	"regexp"
	"strings"
)

var (
	//	New Orleans              3200   57.143   49.868     6417       56  114.589
	oppPointsPattern = regexp.MustCompile(
		`^([A-Z][A-Za-z.\s]+?)\s{2,}(\d+)\s+([\d.]+)\s+([\d.]+)\s+(\d+)\s+(\d+)\s+([\d.]+)`,
	)
	oppPointsSections = []string{"Points-in", "Fast Break", "Second Chance"}
)

type oppPointsContext struct {
	section *string
}

func DecodeOpponentPoints(text string) []OpponentPoints {
	return foldLines("opponent_points", text, oppPointsContext{}, oppPointsContext.step)
}

func (c oppPointsContext) step(line string) (oppPointsContext, []OpponentPoints) {
	stripped := strings.TrimSpace(line)
	if hasAnyPrefix(stripped, oppPointsSections...) {
		c.section = ptr(stripped)
		return c, nil
	}
	if hasAnyPrefix(stripped, "INCLUDES", "Team", "TOTALS") {
		return c, nil
	}
	m := oppPointsPattern.FindStringSubmatch(stripped)
	if m == nil {
		return c, nil
	}
	return c, []OpponentPoints{{
		Section:      c.section,
		Team:         strings.TrimSpace(m[1]),
		Points:       ToInt(m[2]),
		PerGame:      ToFloat(m[3]),
		PctOfTotal:   ToFloat(m[4]),
		TotalPoints:  ToInt(m[5]),
		Games:        ToInt(m[6]),
		TotalPerGame: ToFloat(m[7]),
		RawLine:      stripped,
	}}
}
