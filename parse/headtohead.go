package parse

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxHeadToHeadGames bounds a plausible win or loss count between two teams
// in one season. The grid walk stops at the first pair above it, which is
// where the season totals printed after the grid begin. A schedule change
// giving more meetings per opponent would invalidate it.
const MaxHeadToHeadGames = 4

var gridToken = regexp.MustCompile(`\d+|--`)

// headToHeadContext is the ordered list of opponent abbreviations read from
// the grid header.
type headToHeadContext struct {
	columns []string
}

func DecodeHeadToHead(text string) []HeadToHeadCell {
	return foldLines("head_to_head", text, headToHeadContext{}, headToHeadContext.step)
}

func (c headToHeadContext) step(line string) (headToHeadContext, []HeadToHeadCell) {
	stripped := strings.TrimSpace(line)
	if strings.HasPrefix(stripped, "INCLUDES") || strings.Contains(stripped, "DIVISION") {
		return c, nil
	}
	parts := strings.Fields(stripped)
	if len(parts) >= 10 && allAbbreviations(parts) {
		c.columns = append(append([]string{}, c.columns...), parts...)
		return c, nil
	}
	if len(parts) <= 10 || len(c.columns) == 0 || !isAbbreviation(parts[0]) {
		return c, nil
	}

	team := parts[0]
	tokens := gridToken.FindAllString(strings.TrimSpace(stripped[len(team):]), -1)
	out := []HeadToHeadCell{}
	tok, opp := 0, 0
	for tok < len(tokens) && opp < len(c.columns) {
		if tokens[tok] == "--" {
			// the team's own column
			tok++
			opp++
			continue
		}
		if tok+1 >= len(tokens) {
			break
		}
		if tokens[tok+1] == "--" {
			tok++
			continue
		}
		w, l := ToInt(tokens[tok]), ToInt(tokens[tok+1])
		if w == nil || l == nil || *w > MaxHeadToHeadGames || *l > MaxHeadToHeadGames {
			break
		}
		out = append(out, HeadToHeadCell{
			Team:     team,
			Opponent: c.columns[opp],
			Wins:     *w,
			Losses:   *l,
			RawLine:  stripped,
		})
		tok += 2
		opp++
	}
	return c, out
}

func isAbbreviation(s string) bool {
	if s == "" || len(s) > 4 {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func allAbbreviations(parts []string) bool {
	for _, p := range parts {
		if !isAbbreviation(p) {
			return false
		}
	}
	return true
}
