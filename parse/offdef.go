package parse

import (
	"strings"
)

const (
	offenseMinFields = 21
	defenseMinFields = 19
)

// offDefContext is the stat type of the section being read, empty before the
// first section marker.
type offDefContext struct {
	statType string
}

// DecodeOffensiveDefensive reads the teams' statistics section as OFFENSE
// rows and the opponents' statistics section as DEFENSE rows.
func DecodeOffensiveDefensive(text string) []TeamStatLine {
	return foldLines("offensive_defensive", text, offDefContext{}, offDefContext.step)
}

func (c offDefContext) step(line string) (offDefContext, []TeamStatLine) {
	stripped := strings.TrimSpace(line)
	upper := strings.ToUpper(stripped)
	switch {
	case containsAny(upper, "TEAMS' STATISTICS", "TEAMS’ STATISTICS"):
		c.statType = StatOffense
		return c, nil
	case containsAny(upper, "OPPONENTS' STATISTICS", "OPPONENTS’ STATISTICS"):
		c.statType = StatDefense
		return c, nil
	}
	if hasAnyPrefix(stripped, "TEAM", "INCLUDES") || containsAny(stripped, "FIELD GOALS", "REBOUNDS", "SCORING") {
		return c, nil
	}

	parts := strings.Fields(stripped)
	if len(parts) == 0 {
		return c, nil
	}
	var (
		row TeamStatLine
		ok  bool
	)
	switch c.statType {
	case StatOffense:
		row, ok = offenseRow(parts)
	case StatDefense:
		row, ok = defenseRow(parts)
	}
	if !ok {
		return c, nil
	}
	row.Team = strings.TrimRight(parts[0], ".")
	row.RawLine = stripped
	return c, []TeamStatLine{row}
}

//	Den.    55   2356 4761 .495   755 1910 .395   1153 1423 .810    526 1821 2347  1683  1020   5   448   747   333   6620  120.4
func offenseRow(p []string) (TeamStatLine, bool) {
	if len(p) < offenseMinFields {
		return TeamStatLine{}, false
	}
	games := ToInt(p[1])
	if games == nil || *games <= 0 || *games >= 100 {
		return TeamStatLine{}, false
	}
	return TeamStatLine{
		StatType:  StatOffense,
		Games:     games,
		FG:        ToInt(p[2]),
		FGA:       ToInt(p[3]),
		FGPct:     ToFloat(p[4]),
		FG3:       ToInt(p[5]),
		F3A:       ToInt(p[6]),
		FG3Pct:    ToFloat(p[7]),
		FT:        ToInt(p[8]),
		FTA:       ToInt(p[9]),
		FTPct:     ToFloat(p[10]),
		OffReb:    ToInt(p[11]),
		DefReb:    ToInt(p[12]),
		TotalReb:  ToInt(p[13]),
		Assists:   ToInt(p[14]),
		Steals:    ToInt(p[17]),
		Turnovers: ToInt(p[18]),
		Blocks:    ToInt(p[19]),
		Points:    ToInt(p[20]),
	}, true
}

// Opponent rows have no games column, so every field sits one to the left
// and the totals run to the end of the line.
func defenseRow(p []string) (TeamStatLine, bool) {
	if len(p) < defenseMinFields {
		return TeamStatLine{}, false
	}
	fg := ToInt(p[1])
	if fg == nil || *fg <= 100 {
		return TeamStatLine{}, false
	}
	return TeamStatLine{
		StatType: StatDefense,
		FG:       fg,
		FGA:      ToInt(p[2]),
		FGPct:    ToFloat(p[3]),
		FG3:      ToInt(p[4]),
		F3A:      ToInt(p[5]),
		FG3Pct:   ToFloat(p[6]),
		FT:       ToInt(p[7]),
		FTA:      ToInt(p[8]),
		FTPct:    ToFloat(p[9]),
		OffReb:   ToInt(p[10]),
		DefReb:   ToInt(p[11]),
		TotalReb: ToInt(p[12]),
		Assists:  ToInt(p[13]),
		Points:   ToInt(p[len(p)-3]),
	}, true
}
