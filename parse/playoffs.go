package parse

import (
	"regexp"
	"strings"
)

var (
	seasonBanner = regexp.MustCompile(`\d{4}-\d{4}`)
	//	Apr 20 MIA 100 at CLE 121
	playoffResultPattern = regexp.MustCompile(`^(\w+\s+\d+)\s+(\S+)\s+(\d+)\s+at\s+(\S+)\s+(\d+)`)
	playoffRounds        = map[string]bool{
		"FIRST ROUND":           true,
		"CONFERENCE SEMIFINALS": true,
		"CONFERENCE FINALS":     true,
		"NBA FINALS":            true,
	}
)

type playoffsContext struct {
	round  *string
	series *string
}

func DecodePlayoffResults(text string) []PlayoffGame {
	return foldLines("playoff_results", text, playoffsContext{}, playoffsContext.step)
}

func (c playoffsContext) step(line string) (playoffsContext, []PlayoffGame) {
	stripped := strings.TrimSpace(line)
	switch {
	case seasonBanner.MatchString(stripped), strings.Contains(stripped, "NBA POSTSEASON"):
		return c, nil
	case playoffRounds[stripped]:
		c.round = ptr(stripped)
		return c, nil
	case stripped == "EASTERN CONFERENCE", stripped == "WESTERN CONFERENCE":
		return c, nil
	case strings.HasPrefix(stripped, "("):
		// "(1) CLEVELAND WON SERIES 4-0" closes a series; nothing to record
		return c, nil
	case strings.Contains(stripped, " vs. "):
		c.series = ptr(stripped)
		return c, nil
	}

	m := playoffResultPattern.FindStringSubmatch(stripped)
	if m == nil {
		return c, nil
	}
	return c, []PlayoffGame{{
		RoundName:    c.round,
		SeriesStatus: c.series,
		GameDay:      m[1],
		AwayTeam:     m[2],
		HomeTeam:     m[4],
		AwayScore:    ToInt(m[3]),
		HomeScore:    ToInt(m[5]),
		RawLine:      stripped,
	}}
}
