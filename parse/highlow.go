package parse

import (
	"regexp"
	"strings"
)

var (
	//	Minutes -- 52, Maxey, PHI vs. ATL, 11/30 (2 OT)
	//	Fewest Field Goals -- 23, Brooklyn at NY, 1/21
	highLowPattern     = regexp.MustCompile(`^(.+?)\s+--\s+(\d+),\s*(.+)`)
	playerRecordDetail = regexp.MustCompile(`^(.+?),\s*(\w{2,4})\s+(?:vs\.?|at)\s+(\w{2,4}),\s*(\d{1,2}/\d{1,2})`)
	teamRecordDetail   = regexp.MustCompile(`^(.+?)\s+(?:vs\.?|at)\s+(\w{2,4}),\s*(\d{1,2}/\d{1,2})`)
)

func DecodeHighsLows(text string) []HighLow {
	return eachLine("highs_lows", text, parseHighLow)
}

// ClassifyHighLow reports LOW for "Fewest"/"Lowest" categories and HIGH for
// everything else.
func ClassifyHighLow(category string) string {
	if strings.Contains(category, "Fewest") || strings.Contains(category, "Lowest") {
		return StatLow
	}
	return StatHigh
}

func parseHighLow(line string) (HighLow, bool) {
	stripped := strings.TrimSpace(line)
	if hasAnyPrefix(stripped, "INCLUDES", "SINGLE-GAME") {
		return HighLow{}, false
	}
	m := highLowPattern.FindStringSubmatch(stripped)
	if m == nil {
		return HighLow{}, false
	}
	category := strings.TrimSpace(m[1])
	rec := HighLow{
		Category: category,
		StatType: ClassifyHighLow(category),
		Value:    ToInt(m[2]),
		RawLine:  stripped,
	}
	rest := strings.TrimSpace(m[3])
	if pm := playerRecordDetail.FindStringSubmatch(rest); pm != nil {
		rec.PlayerName = optional(pm[1])
		rec.Team = optional(pm[2])
		rec.Opponent = optional(pm[3])
		rec.GameDay = optional(pm[4])
	} else if tm := teamRecordDetail.FindStringSubmatch(rest); tm != nil {
		rec.Team = optional(tm[1])
		rec.Opponent = optional(tm[2])
		rec.GameDay = optional(tm[3])
	}
	return rec, true
}
