package parse

import (
	"regexp"
	"strings"
)

//	Atlanta Hawks                   25    406,165 16,247    31    548,915 17,707
var attendancePattern = regexp.MustCompile(
	`^([A-Z][A-Za-z0-9\s.]+?)\s+` +
		`(\d+)\s+([\d,]+)\s+([\d,]+)\s+` + // home G, total, avg
		`(\d+)\s+([\d,]+)\s+([\d,]+)\s*$`, // road G, total, avg
)

func DecodeAttendance(text string) []Attendance {
	return eachLine("attendance", text, parseAttendance)
}

func parseAttendance(line string) (Attendance, bool) {
	stripped := strings.TrimSpace(line)
	if hasAnyPrefix(stripped, "TOTALS", "TEAM", "INCLUDES") ||
		strings.Contains(stripped, "HOME ATTENDANCE") || strings.Contains(stripped, "ROAD ATTENDANCE") {
		return Attendance{}, false
	}
	m := attendancePattern.FindStringSubmatch(stripped)
	if m == nil {
		return Attendance{}, false
	}
	a := Attendance{
		Team:      strings.TrimSpace(m[1]),
		HomeGames: ToInt(m[2]),
		HomeTotal: ToInt(m[3]),
		HomeAvg:   ToInt(m[4]),
		RoadGames: ToInt(m[5]),
		RoadTotal: ToInt(m[6]),
		RoadAvg:   ToInt(m[7]),
		RawLine:   stripped,
	}
	a.OverallGames = deref(a.HomeGames) + deref(a.RoadGames)
	a.OverallTotal = deref(a.HomeTotal) + deref(a.RoadTotal)
	if a.OverallGames != 0 {
		a.OverallAvg = ptr(a.OverallTotal / a.OverallGames)
	}
	return a, true
}

func deref(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
