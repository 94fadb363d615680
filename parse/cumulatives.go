package parse

import (
	"regexp"
	"strings"
)

const pctToken = `(\.\d+|1\.000|---)`

//	Total SAC ACT Achiuwa, Precious, Sac.  48 32  973  144  288 .500  16  54 .296 ...
var cumulativePattern = regexp.MustCompile(
	`^(Total|Team)\s+` + // scope
		`(\S+)\s+` + // team
		`(\S+)\s+` + // roster status: ACT, TR, NWT, TRC
		`(.+?)\s+` + // name, with team suffix
		`(\d+)\s+(\d+)\s+(\d+)\s+` + // G GS MIN
		`(\d+)\s+(\d+)\s+` + pctToken + `\s+` + // FG FGA PCT
		`(\d+)\s+(\d+)\s+` + pctToken + `\s+` + // FG3 FG3A PCT
		`(\d+)\s+(\d+)\s+` + pctToken + `\s+` + // FT FTA PCT
		`(\d+)\s+(\d+)\s+(\d+)\s+` + // OFF DEF TRB
		`(\d+)\s+` + // AST
		`(\d+)\s+(\d+)\s+` + // PF DQ
		`(\d+)\s+(\d+)\s+(\d+)\s+` + // STL TO BLK
		`(\d+)\s+` + // PTS
		`([\d.]+)\s+` + // PPG
		`(\d+)`, // HI
)

// DecodePlayerCumulatives decodes season-to-date player totals. Player and
// rookie cumulatives share the layout.
func DecodePlayerCumulatives(text string) []PlayerCumulative {
	return eachLine("player_cumulatives", text, parsePlayerCumulative)
}

func parsePlayerCumulative(line string) (PlayerCumulative, bool) {
	stripped := strings.TrimSpace(line)
	m := cumulativePattern.FindStringSubmatch(stripped)
	if m == nil {
		return PlayerCumulative{}, false
	}
	return PlayerCumulative{
		Scope:        m[1],
		Team:         m[2],
		RosterStatus: m[3],
		PlayerName:   cumulativeName(m[4]),
		Games:        ToInt(m[5]),
		GamesStarted: ToInt(m[6]),
		Minutes:      ToInt(m[7]),
		FG:           ToInt(m[8]),
		FGA:          ToInt(m[9]),
		FGPct:        ToFloat(m[10]),
		FG3:          ToInt(m[11]),
		F3A:          ToInt(m[12]),
		FG3Pct:       ToFloat(m[13]),
		FT:           ToInt(m[14]),
		FTA:          ToInt(m[15]),
		FTPct:        ToFloat(m[16]),
		OffReb:       ToInt(m[17]),
		DefReb:       ToInt(m[18]),
		TotalReb:     ToInt(m[19]),
		Assists:      ToInt(m[20]),
		PF:           ToInt(m[21]),
		DQ:           ToInt(m[22]),
		Steals:       ToInt(m[23]),
		Turnovers:    ToInt(m[24]),
		Blocks:       ToInt(m[25]),
		Points:       ToInt(m[26]),
		PPG:          ToFloat(m[27]),
		High:         ToInt(m[28]),
		RawLine:      stripped,
	}, true
}

// teamSuffix matches the team the reports append after the last comma:
// "Sac.", "OKC", "Phi."
var teamSuffix = regexp.MustCompile(`^(?:[A-Z][A-Za-z]{1,3}\.|[A-Z]{2,4}\.?)$`)

// "Achiuwa, Precious, Sac." -> "Achiuwa, Precious"
// "Nene, Hou." -> "Nene"
func cumulativeName(raw string) string {
	name := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(raw), ","))
	i := strings.LastIndex(name, ",")
	if i < 0 || !teamSuffix.MatchString(strings.TrimSpace(name[i+1:])) {
		return name
	}
	return strings.TrimSpace(name[:i])
}
