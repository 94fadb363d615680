package parse

import (
	"regexp"
	"strings"
)

var (
	//	Pritchard, Bos.          283   63  4.49     Wallace, OKC.            108   48  2.25
	playerRatioPattern = regexp.MustCompile(`^(.+?)\s{2,}(\d+)\s+(\d+)\s+([\d.]+)`)
	//	Denver                  1539  701  2.20     Oklahoma City            544  682  0.80
	teamRatioPattern = regexp.MustCompile(`^([A-Z][A-Za-z.\s]+?)\s{2,}(\d+)\s+(\d+)\s+([\d.]+)`)
	hasDigit         = regexp.MustCompile(`\d`)
)

// ratiosContext holds the ratio titles of the current header row, one per
// column ("Assists Per Turnover", "Steals Per Turnover").
type ratiosContext struct {
	teams      bool
	categories []string
}

func DecodePlayerRatios(text string) []RatioEntry {
	return foldLines("ratios_players", text, ratiosContext{}, ratiosContext.step)
}

func DecodeTeamRatios(text string) []RatioEntry {
	return foldLines("ratios_teams", text, ratiosContext{teams: true}, ratiosContext.step)
}

func (c ratiosContext) step(line string) (ratiosContext, []RatioEntry) {
	stripped := strings.TrimSpace(line)
	if hasAnyPrefix(stripped, "INCLUDES", "Name", "TEAM") {
		return c, nil
	}
	if strings.Contains(stripped, " Per ") && !hasDigit.MatchString(stripped) {
		c.categories = SplitColumns(stripped)
		return c, nil
	}

	out := []RatioEntry{}
	for i, block := range columnBlocks(stripped) {
		if strings.HasPrefix(block, "Name") {
			continue
		}
		entry, ok := c.parseBlock(block)
		if !ok {
			continue
		}
		if len(c.categories) > 0 {
			category := c.categories[len(c.categories)-1]
			if i < len(c.categories) {
				category = c.categories[i]
			}
			entry.StatCategory = &category
		}
		out = append(out, entry)
	}
	return c, out
}

func (c ratiosContext) parseBlock(block string) (RatioEntry, bool) {
	pattern := playerRatioPattern
	if c.teams {
		pattern = teamRatioPattern
	}
	m := pattern.FindStringSubmatch(block)
	if m == nil {
		return RatioEntry{}, false
	}
	entry := RatioEntry{
		Numerator:   ToInt(m[2]),
		Denominator: ToInt(m[3]),
		Ratio:       ToFloat(m[4]),
		RawLine:     block,
	}
	if c.teams {
		entry.Team = optional(m[1])
	} else {
		name, team := splitNameTeam(strings.TrimSpace(m[1]))
		entry.PlayerName, entry.Team = &name, team
	}
	return entry, true
}
