package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eliasstats/parse"
	"eliasstats/utils"
)

// LeaderTables are the tables a leaders query may read from.
var LeaderTables = map[string]string{
	"top10":  "top_10_league_leaders",
	"top20":  "top_20_league_leaders",
	"rookie": "rookie_league_leaders",
}

func columnsOf[R any]() string {
	var r R
	return strings.Join(recordColumns(r), ", ")
}

func selectRecords[R any](query string, args ...any) ([]R, error) {
	out := []R{}
	if err := conn.Select(&out, conn.Rebind(query), args...); err != nil {
		return nil, utils.ErrorWithTrace(err)
	}
	return out, nil
}

// contains builds a case-insensitive LIKE pattern. Hyphens stand for spaces
// so names can be passed in URL paths.
func contains(s string) string {
	s = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, "-", " ")))
	return "%" + s + "%"
}

func SelectStandings() ([]parse.StandingsRow, error) {
	return selectRecords[parse.StandingsRow](`
		SELECT ` + columnsOf[parse.StandingsRow]() + `
		FROM standings
		ORDER BY conference, pct DESC NULLS LAST
	`)
}

func SelectTeamStandings(team string) ([]parse.StandingsRow, error) {
	return selectRecords[parse.StandingsRow](`
		SELECT `+columnsOf[parse.StandingsRow]()+`
		FROM standings
		WHERE LOWER(team) LIKE ?
		ORDER BY pct DESC NULLS LAST
	`, contains(team))
}

// SelectScores returns completed games, latest first.
func SelectScores() ([]parse.GameScore, error) {
	return selectRecords[parse.GameScore](`
		SELECT ` + columnsOf[parse.GameScore]() + `
		FROM latest_scores_and_leaders
		WHERE away_score IS NOT NULL
		ORDER BY game_date DESC
	`)
}

// SelectLeaders reads one of LeaderTables. An empty category returns every
// category.
func SelectLeaders(scope, category string) ([]parse.LeaderEntry, error) {
	table, ok := LeaderTables[scope]
	if !ok {
		return nil, utils.ErrorWithTrace(fmt.Errorf("unknown leaders scope %q", scope))
	}
	if category == "" {
		return selectRecords[parse.LeaderEntry](`
			SELECT ` + columnsOf[parse.LeaderEntry]() + `
			FROM ` + table + `
			ORDER BY stat_category, rank
		`)
	}
	return selectRecords[parse.LeaderEntry](`
		SELECT `+columnsOf[parse.LeaderEntry]()+`
		FROM `+table+`
		WHERE LOWER(stat_category) LIKE ?
		ORDER BY stat_category, rank
	`, contains(category))
}

func SelectLeaderCategories(scope string) ([]string, error) {
	table, ok := LeaderTables[scope]
	if !ok {
		return nil, utils.ErrorWithTrace(fmt.Errorf("unknown leaders scope %q", scope))
	}
	return selectRecords[string](`SELECT DISTINCT stat_category FROM ` + table + ` ORDER BY stat_category`)
}

func SelectPlayerCumulatives(name string) ([]parse.PlayerCumulative, error) {
	return selectRecords[parse.PlayerCumulative](`
		SELECT `+columnsOf[parse.PlayerCumulative]()+`
		FROM alphabetical_player_cumulatives
		WHERE LOWER(player_name) LIKE ?
		ORDER BY games DESC NULLS LAST
	`, contains(name))
}

func SelectPlayerBoxscores(name string) ([]parse.BoxscoreLine, error) {
	return selectRecords[parse.BoxscoreLine](`
		SELECT `+columnsOf[parse.BoxscoreLine]()+`
		FROM latest_boxscore_lines
		WHERE LOWER(player_name) LIKE ?
		ORDER BY game_date DESC
	`, contains(name))
}

// SelectTeamBoxscores returns the latest lines of one team's players, best
// scorers first.
func SelectTeamBoxscores(team string, limit int) ([]parse.BoxscoreLine, error) {
	return selectRecords[parse.BoxscoreLine](`
		SELECT `+columnsOf[parse.BoxscoreLine]()+`
		FROM latest_boxscore_lines
		WHERE UPPER(team) = ?
		ORDER BY game_date DESC, points DESC NULLS LAST
		LIMIT ?
	`, strings.ToUpper(team), limit)
}

func SelectTeamStats(team, statType string) ([]parse.TeamStatLine, error) {
	return selectRecords[parse.TeamStatLine](`
		SELECT `+columnsOf[parse.TeamStatLine]()+`
		FROM offensive_defensive
		WHERE LOWER(team) LIKE ? AND stat_type = ?
		ORDER BY team
	`, contains(team), statType)
}

// SelectHeadToHead returns team's record against opponent.
func SelectHeadToHead(team, opponent string) (*parse.HeadToHeadCell, error) {
	cells, err := selectRecords[parse.HeadToHeadCell](`
		SELECT `+columnsOf[parse.HeadToHeadCell]()+`
		FROM head_to_head_win_grid
		WHERE UPPER(team) = ? AND UPPER(opponent) = ?
		LIMIT 1
	`, strings.ToUpper(team), strings.ToUpper(opponent))
	if err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return nil, ErrNotFound
	}
	return &cells[0], nil
}

// SelectLatestRawData returns the most recently stored text for slug.
func SelectLatestRawData(slug string) (*RawData, error) {
	d := RawData{}
	err := conn.Get(&d, conn.Rebind(`
		SELECT `+columnsOf[RawData]()+`
		FROM raw_data
		WHERE category_slug = ?
		ORDER BY scraped_at DESC, id DESC
		LIMIT 1
	`), slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, utils.ErrorWithTrace(err)
	}
	return &d, nil
}

func SelectGenericLines(slug string) ([]parse.GenericLine, error) {
	return selectRecords[parse.GenericLine](`
		SELECT raw_line
		FROM generic_lines
		WHERE category_slug = ?
		ORDER BY id
	`, slug)
}
