package parse

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	gamesOfPattern = regexp.MustCompile(`(?i)GAMES OF\s+(\w+),\s+(\w+)\s+(\d+),\s+(\d{4})`)
	// Atlanta        107 27 22 26 32            Daniels 21       Johnson 13       Johnson 9
	scoreLinePattern = regexp.MustCompile(
		`^([A-Z][A-Za-z.\s]+?)\s+` +
			`(\d+)\s+` + // total
			`(\d+)\s+(\d+)\s+(\d+)\s+(\d+)` + // quarters
			`(.*)$`, // overtimes and leaders
	)
	leaderPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z.'\- ]*\s\d+$`)
	wideGap       = regexp.MustCompile(`\s{2,}`)
)

type scoreLine struct {
	team    string
	score   *int
	leaders []string
	raw     string
}

// scoresContext carries the current game date and the away line waiting for
// its home line.
type scoresContext struct {
	date    *time.Time
	pending *scoreLine
}

// DecodeScoresAndLeaders pairs consecutive score lines into games (away line
// first, then home). A trailing unpaired line is dropped.
func DecodeScoresAndLeaders(text string) []GameScore {
	return foldLines("scores_and_leaders", text, scoresContext{}, scoresContext.step)
}

func (c scoresContext) step(line string) (scoresContext, []GameScore) {
	stripped := strings.TrimSpace(line)
	if dm := gamesOfPattern.FindStringSubmatch(stripped); dm != nil {
		c.date = parseLongDate(dm[2], dm[3], dm[4])
		return c, nil
	}
	m := scoreLinePattern.FindStringSubmatch(stripped)
	if m == nil {
		return c, nil
	}
	current := &scoreLine{
		team:    strings.TrimSpace(m[1]),
		score:   ToInt(m[2]),
		leaders: scoreLeaders(m[7]),
		raw:     stripped,
	}
	if c.pending == nil {
		c.pending = current
		return c, nil
	}
	away, home := c.pending, current
	c.pending = nil
	return c, []GameScore{{
		GameDate:       c.date,
		AwayTeam:       away.team,
		HomeTeam:       home.team,
		AwayScore:      away.score,
		HomeScore:      home.score,
		LeaderPoints:   pairLeaders(away.leaders, home.leaders, 0),
		LeaderRebounds: pairLeaders(away.leaders, home.leaders, 1),
		LeaderAssists:  pairLeaders(away.leaders, home.leaders, 2),
		RawLine:        fmt.Sprintf("%s | %s", away.raw, home.raw),
	}}
}

// month names match case-insensitively: "FEBRUARY 11, 2026" works too
func parseLongDate(month, day, year string) *time.Time {
	t, err := time.Parse("January 2 2006", fmt.Sprintf("%s %s %s", month, day, year))
	if err != nil {
		return nil
	}
	return &t
}

// scoreLeaders returns the "Name N" segments that follow the quarter scores,
// in points, rebounds, assists order.
func scoreLeaders(rest string) []string {
	leaders := []string{}
	for _, seg := range wideGap.Split(strings.TrimSpace(rest), -1) {
		seg = strings.TrimSpace(seg)
		if leaderPattern.MatchString(seg) {
			leaders = append(leaders, strings.Join(strings.Fields(seg), " "))
		}
	}
	return leaders
}

func pairLeaders(away, home []string, i int) *string {
	a, h := "-", "-"
	if i < len(away) {
		a = away[i]
	}
	if i < len(home) {
		h = home[i]
	}
	if a == "-" && h == "-" {
		return nil
	}
	return ptr(a + " / " + h)
}
