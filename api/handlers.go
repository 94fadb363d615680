package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"eliasstats/config"
	"eliasstats/db"
	"eliasstats/parse"
	"eliasstats/utils"

	"github.com/labstack/echo/v4"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 200
	teamBoxscores    = 50
)

func (s *Server) health(c echo.Context) error {
	if err := db.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable", "error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

type categoryView struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Table string `json:"table"`
	URL   string `json:"url,omitempty"`
}

func (s *Server) categories(c echo.Context) error {
	urls := map[string]string{}
	for _, r := range config.KnownReports {
		urls[r.Slug] = r.URL()
	}
	out := []categoryView{}
	for _, cat := range parse.Categories() {
		out = append(out, categoryView{Slug: cat.Slug(), Name: cat.DisplayName(), Table: cat.Slug(), URL: urls[cat.Slug()]})
	}
	return c.JSON(http.StatusOK, echo.Map{"total": len(out), "categories": out})
}

func (s *Server) runs(c echo.Context) error {
	limit := defaultRunsLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = min(n, maxRunsLimit)
	}
	runs, err := db.SelectRuns(limit)
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"total": len(runs), "runs": runs})
}

func (s *Server) run(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid run id")
	}
	run, err := db.SelectRun(id)
	if errors.Is(err, db.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "run not found")
	}
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	return c.JSON(http.StatusOK, run)
}

// queueRun records a run for the scheduler; the scrape itself happens later.
func (s *Server) queueRun(c echo.Context) error {
	id, err := db.QueueRun()
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	return c.JSON(http.StatusAccepted, echo.Map{"run_id": id, "status": db.RunQueued})
}

func (s *Server) standings(c echo.Context) error {
	rows, err := db.SelectStandings()
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"total": len(rows), "standings": rows})
}

type scoreView struct {
	parse.GameScore
	Winner      *string `json:"winner"`
	Margin      *int    `json:"margin"`
	TotalPoints *int    `json:"total_points"`
}

func newScoreView(g parse.GameScore) scoreView {
	v := scoreView{GameScore: g}
	if g.AwayScore == nil || g.HomeScore == nil {
		return v
	}
	away, home := *g.AwayScore, *g.HomeScore
	winner := g.HomeTeam
	if away > home {
		winner = g.AwayTeam
	}
	margin, total := away-home, away+home
	if margin < 0 {
		margin = -margin
	}
	v.Winner, v.Margin, v.TotalPoints = &winner, &margin, &total
	return v
}

func (s *Server) scores(c echo.Context) error {
	games, err := db.SelectScores()
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	out := make([]scoreView, 0, len(games))
	for _, g := range games {
		out = append(out, newScoreView(g))
	}
	return c.JSON(http.StatusOK, echo.Map{"total": len(out), "games": out})
}

func leaderScope(c echo.Context) (string, error) {
	scope := c.QueryParam("scope")
	if scope == "" {
		return "top20", nil
	}
	if _, ok := db.LeaderTables[scope]; !ok {
		return "", echo.NewHTTPError(http.StatusBadRequest, "scope must be one of top10, top20, rookie")
	}
	return scope, nil
}

func (s *Server) leaders(c echo.Context) error {
	scope, err := leaderScope(c)
	if err != nil {
		return err
	}
	entries, err := db.SelectLeaders(scope, "")
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	grouped := map[string][]parse.LeaderEntry{}
	for _, e := range entries {
		grouped[e.StatCategory] = append(grouped[e.StatCategory], e)
	}
	return c.JSON(http.StatusOK, echo.Map{"scope": scope, "categories": len(grouped), "leaders": grouped})
}

func (s *Server) leadersByCategory(c echo.Context) error {
	scope, err := leaderScope(c)
	if err != nil {
		return err
	}
	category := strings.ReplaceAll(c.Param("category"), "-", " ")
	entries, err := db.SelectLeaders(scope, category)
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"scope": scope, "category": category, "total": len(entries), "leaders": entries})
}

type playerAverages struct {
	Minutes    *float64 `json:"minutes"`
	Points     *float64 `json:"points"`
	Rebounds   *float64 `json:"rebounds"`
	Assists    *float64 `json:"assists"`
	Steals     *float64 `json:"steals"`
	Blocks     *float64 `json:"blocks"`
	Turnovers  *float64 `json:"turnovers"`
	PointsRebs *float64 `json:"points_rebounds_assists"`
}

type playerView struct {
	parse.PlayerCumulative
	PerGame playerAverages `json:"per_game"`
}

func newPlayerView(p parse.PlayerCumulative) playerView {
	v := playerView{PlayerCumulative: p}
	v.PerGame = playerAverages{
		Minutes:   perGame(p.Minutes, p.Games),
		Points:    perGame(p.Points, p.Games),
		Rebounds:  perGame(p.TotalReb, p.Games),
		Assists:   perGame(p.Assists, p.Games),
		Steals:    perGame(p.Steals, p.Games),
		Blocks:    perGame(p.Blocks, p.Games),
		Turnovers: perGame(p.Turnovers, p.Games),
	}
	if p.Points != nil && p.TotalReb != nil && p.Assists != nil {
		pra := *p.Points + *p.TotalReb + *p.Assists
		v.PerGame.PointsRebs = perGame(&pra, p.Games)
	}
	return v
}

func (s *Server) player(c echo.Context) error {
	name := c.Param("name")
	players, err := db.SelectPlayerCumulatives(name)
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	if len(players) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "player not found: "+strings.ReplaceAll(name, "-", " "))
	}
	out := make([]playerView, 0, len(players))
	for _, p := range players {
		out = append(out, newPlayerView(p))
	}
	return c.JSON(http.StatusOK, echo.Map{"total": len(out), "players": out})
}

type boxscoreView struct {
	parse.BoxscoreLine
	FGPct *float64 `json:"fg_pct"`
}

func (s *Server) playerBoxscores(c echo.Context) error {
	name := c.Param("name")
	lines, err := db.SelectPlayerBoxscores(name)
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	out := make([]boxscoreView, 0, len(lines))
	for _, l := range lines {
		out = append(out, boxscoreView{BoxscoreLine: l, FGPct: percentage(l.FG, l.FGA)})
	}
	return c.JSON(http.StatusOK, echo.Map{"player": strings.ReplaceAll(name, "-", " "), "total": len(out), "boxscores": out})
}

func (s *Server) teamStandings(c echo.Context) error {
	team := c.Param("team")
	rows, err := db.SelectTeamStandings(team)
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	if len(rows) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "team not found in standings: "+team)
	}
	return c.JSON(http.StatusOK, echo.Map{"total": len(rows), "standings": rows})
}

// teamStats serves both /offense and /defense; the route picks the side.
func (s *Server) teamStats(c echo.Context) error {
	team := c.Param("team")
	statType := parse.StatOffense
	if strings.HasSuffix(c.Path(), "/defense") {
		statType = parse.StatDefense
	}
	rows, err := db.SelectTeamStats(team, statType)
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	if len(rows) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "no "+strings.ToLower(statType)+" stats for team: "+team)
	}
	return c.JSON(http.StatusOK, echo.Map{"stat_type": statType, "total": len(rows), "teams": rows})
}

func loadTeam(team string) (teamData, error) {
	d := teamData{team: team}
	standings, err := db.SelectTeamStandings(team)
	if err != nil {
		return d, err
	}
	if len(standings) > 0 {
		d.standings = &standings[0]
	}
	offense, err := db.SelectTeamStats(team, parse.StatOffense)
	if err != nil {
		return d, err
	}
	if len(offense) > 0 {
		d.offense = &offense[0]
	}
	defense, err := db.SelectTeamStats(team, parse.StatDefense)
	if err != nil {
		return d, err
	}
	if len(defense) > 0 {
		d.defense = &defense[0]
	}
	return d, nil
}

// matchup compares two teams; teamA is treated as the home side.
func (s *Server) matchup(c echo.Context) error {
	teamA := strings.ToUpper(strings.TrimSpace(c.Param("teamA")))
	teamB := strings.ToUpper(strings.TrimSpace(c.Param("teamB")))
	if teamA == "" || teamB == "" || teamA == teamB {
		return echo.NewHTTPError(http.StatusBadRequest, "a matchup needs two different teams")
	}

	home, err := loadTeam(teamA)
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	away, err := loadTeam(teamB)
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	h2h, err := db.SelectHeadToHead(teamA, teamB)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		return utils.ErrorWithTrace(err)
	}
	return c.JSON(http.StatusOK, buildMatchup(home, away, h2h))
}

func (s *Server) raw(c echo.Context) error {
	d, err := db.SelectLatestRawData(c.Param("slug"))
	if errors.Is(err, db.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "no report stored for "+c.Param("slug"))
	}
	if err != nil {
		return utils.ErrorWithTrace(err)
	}
	c.Response().Header().Set("X-Source-URL", d.SourceURL)
	return c.String(http.StatusOK, d.RawContent)
}
