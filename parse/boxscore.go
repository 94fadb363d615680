package parse

import (
	"regexp"
	"strings"
)

//	DATE       TM  OPP NAME                     (POS)  G MIN  FG FGA ...
//	02/11/2026 ATL CHA Johnson, Jalen           (F  )  1  34   7  15 ...
var boxscorePattern = regexp.MustCompile(
	`(\d{2}/\d{2}/\d{4})\s+` + // date
		`(\S+)\s+` + // team
		`(\S+)\s+` + // opponent
		`(.+?)\s+` + // name
		`\((\S+\s*)\)\s+` + // position
		`(\d+)\s+(\d+)\s+` + // G MIN
		`(\d+)\s+(\d+)\s+` + // FG FGA
		`(\d+)\s+(\d+)\s+` + // FG3 F3A
		`(\d+)\s+(\d+)\s+` + // FT FTA
		`(\d+)\s+(\d+)\s+(\d+)\s+` + // OFF DEF TRB
		`(\d+)\s+` + // AST
		`(\d+)\s+(\d+)\s+` + // PF DQ
		`(\d+)\s+(\d+)\s+(\d+)\s+` + // STL TO BLK
		`(\d+)`, // PTS
)

// DecodeBoxscoreLines decodes one-row-per-player-per-game box score lines.
// Team box score lines share the layout.
func DecodeBoxscoreLines(text string) []BoxscoreLine {
	return eachLine("boxscore_lines", text, parseBoxscoreLine)
}

func parseBoxscoreLine(line string) (BoxscoreLine, bool) {
	m := boxscorePattern.FindStringSubmatch(line)
	if m == nil {
		return BoxscoreLine{}, false
	}
	return BoxscoreLine{
		GameDate:   ToDate(m[1]),
		Team:       strings.TrimSpace(m[2]),
		Opponent:   strings.TrimSpace(m[3]),
		PlayerName: strings.TrimSpace(strings.TrimRight(strings.TrimSpace(m[4]), ",")),
		Position:   strings.TrimSpace(m[5]),
		Games:      ToInt(m[6]),
		Minutes:    ToInt(m[7]),
		FG:         ToInt(m[8]),
		FGA:        ToInt(m[9]),
		FG3:        ToInt(m[10]),
		F3A:        ToInt(m[11]),
		FT:         ToInt(m[12]),
		FTA:        ToInt(m[13]),
		OffReb:     ToInt(m[14]),
		DefReb:     ToInt(m[15]),
		TotalReb:   ToInt(m[16]),
		Assists:    ToInt(m[17]),
		PF:         ToInt(m[18]),
		DQ:         ToInt(m[19]),
		Steals:     ToInt(m[20]),
		Turnovers:  ToInt(m[21]),
		Blocks:     ToInt(m[22]),
		Points:     ToInt(m[23]),
		RawLine:    strings.TrimSpace(line),
	}, true
}
