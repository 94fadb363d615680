package parse

// Category is one of the report types published in the league-wide stats
// table. The zero value is the first known category; use ParseCategory to
// tell known slugs from unknown ones.
type Category int

const (
	LatestBoxscoreLines Category = iota
	AlphabeticalPlayerCumulatives
	AlphabeticalRookieCumulatives
	AttendanceReport
	LatestScoresAndLeaders
	SingleGameHighsLows
	Top10LeagueLeaders
	Top20LeagueLeaders
	RookieLeagueLeaders
	RatiosPlayers
	RatiosTeams
	PlayoffScheduleResults
	Standings
	HeadToHeadWinGrid
	OffensiveDefensive
	Miscellaneous
	OpponentPointsBreakdown
	TeamBoxscoreLines
	TeamCumulatives
	numCategories
)

var categoryInfo = [...]struct {
	slug string
	name string
}{
	LatestBoxscoreLines:           {"latest_boxscore_lines", "Latest Boxscore Lines"},
	AlphabeticalPlayerCumulatives: {"alphabetical_player_cumulatives", "Alphabetical Player Cumulatives"},
	AlphabeticalRookieCumulatives: {"alphabetical_rookie_cumulatives", "Alphabetical Rookie Cumulatives"},
	AttendanceReport:              {"attendance", "Attendance"},
	LatestScoresAndLeaders:        {"latest_scores_and_leaders", "Latest Scores and Leaders"},
	SingleGameHighsLows:           {"single_game_highs_lows", "Single-Game Highs/Lows"},
	Top10LeagueLeaders:            {"top_10_league_leaders", "Top 10 League Leaders"},
	Top20LeagueLeaders:            {"top_20_league_leaders", "Top 20 League Leaders"},
	RookieLeagueLeaders:           {"rookie_league_leaders", "Rookie League Leaders"},
	RatiosPlayers:                 {"ratios_players", "Ratios - Players"},
	RatiosTeams:                   {"ratios_teams", "Ratios - Teams"},
	PlayoffScheduleResults:        {"playoff_schedule_results", "Playoff Schedule/Results"},
	Standings:                     {"standings", "Standings"},
	HeadToHeadWinGrid:             {"head_to_head_win_grid", "Head-to-Head Win Grid"},
	OffensiveDefensive:            {"offensive_defensive", "Offensive/Defensive"},
	Miscellaneous:                 {"miscellaneous", "Miscellaneous"},
	OpponentPointsBreakdown:       {"opponent_points_breakdown", "Opponent Points Breakdown"},
	TeamBoxscoreLines:             {"team_boxscore_lines", "Team Boxscore Lines"},
	TeamCumulatives:               {"team_cumulatives", "Team Cumulatives"},
}

// fails to compile when a category is added without slug and name
var _ = [1]struct{}{}[len(categoryInfo)-int(numCategories)]

var categoriesBySlug = func() map[string]Category {
	m := make(map[string]Category, numCategories)
	for c := Category(0); c < numCategories; c++ {
		m[c.Slug()] = c
	}
	return m
}()

// Slug is the identifier used for dispatch and as the storage table name.
func (c Category) Slug() string {
	if !c.valid() {
		return ""
	}
	return categoryInfo[c].slug
}

func (c Category) DisplayName() string {
	if !c.valid() {
		return ""
	}
	return categoryInfo[c].name
}

func (c Category) String() string {
	return c.Slug()
}

func (c Category) valid() bool {
	return c >= 0 && c < numCategories
}

func ParseCategory(slug string) (Category, bool) {
	c, ok := categoriesBySlug[slug]
	return c, ok
}

func Categories() []Category {
	all := make([]Category, 0, numCategories)
	for c := Category(0); c < numCategories; c++ {
		all = append(all, c)
	}
	return all
}
