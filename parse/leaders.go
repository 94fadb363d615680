package parse

import (
	"regexp"
	"strings"
)

var (
	leaderHeaderPattern = regexp.MustCompile(
		`SCORING AVERAGE|REBOUNDS PER GAME|ASSISTS PER GAME|` +
			`FIELD GOAL PCT\.|3-PT FIELD GOAL PCT\.|FREE THROW PCT\.|` +
			`STEALS PER GAME|BLOCKS PER GAME|MINUTES PER GAME`,
	)
	leaderBlockPattern = regexp.MustCompile(`^(.+?)\s{2,}([\d.\s]+)$`)
	leaderRankPrefix   = regexp.MustCompile(`^(\d+)\.?\s+(.+)$`)
)

// leadersContext holds the categories of the current header row, one per
// column, and how many entries each category has produced so far.
type leadersContext struct {
	categories []string
	seen       map[string]int
}

// DecodeLeagueLeaders decodes the multi-column leader tables shared by the
// top 10, top 20 and rookie leader reports.
func DecodeLeagueLeaders(text string) []LeaderEntry {
	return foldLines("league_leaders", text, leadersContext{seen: map[string]int{}}, leadersContext.step)
}

func (c leadersContext) step(line string) (leadersContext, []LeaderEntry) {
	stripped := strings.TrimSpace(line)
	if hasAnyPrefix(stripped, "INCLUDES", "ROOKIE LEADERS") {
		return c, nil
	}
	if headers := leaderHeaderPattern.FindAllString(stripped, -1); len(headers) > 0 {
		c.categories = headers
		return c, nil
	}
	if len(c.categories) == 0 {
		return c, nil
	}

	out := []LeaderEntry{}
	for i, block := range columnBlocks(stripped) {
		category := c.categories[len(c.categories)-1]
		if i < len(c.categories) {
			category = c.categories[i]
		}
		entry, ok := parseLeaderBlock(block)
		if !ok {
			continue
		}
		c.seen[category]++
		if entry.Rank == 0 {
			entry.Rank = c.seen[category]
		}
		entry.StatCategory = category
		out = append(out, entry)
	}
	return c, out
}

func parseLeaderBlock(block string) (LeaderEntry, bool) {
	m := leaderBlockPattern.FindStringSubmatch(block)
	if m == nil {
		return LeaderEntry{}, false
	}
	nums := strings.Fields(m[2])
	if len(nums) == 0 {
		return LeaderEntry{}, false
	}
	playerPart := strings.TrimSpace(m[1])
	rank := 0
	if rm := leaderRankPrefix.FindStringSubmatch(playerPart); rm != nil {
		if n := ToInt(rm[1]); n != nil {
			rank, playerPart = *n, rm[2]
		}
	}
	name, team := splitNameTeam(playerPart)
	return LeaderEntry{
		Rank:       rank,
		PlayerName: name,
		Team:       team,
		Value:      ToFloat(nums[len(nums)-1]),
		RawLine:    block,
	}, true
}
