package parse

import "time"

// Record is one structured row decoded from a report. Every record keeps the
// source text it came from.
type Record interface {
	Raw() string
}

type BoxscoreLine struct {
	GameDate   *time.Time `db:"game_date" json:"game_date"`
	Team       string     `db:"team" json:"team"`
	Opponent   string     `db:"opponent" json:"opponent"`
	PlayerName string     `db:"player_name" json:"player_name"`
	Position   string     `db:"position" json:"position"`
	Games      *int       `db:"games" json:"games"`
	Minutes    *int       `db:"minutes" json:"minutes"`
	FG         *int       `db:"fg" json:"fg"`
	FGA        *int       `db:"fga" json:"fga"`
	FG3        *int       `db:"fg3" json:"fg3"`
	F3A        *int       `db:"f3a" json:"f3a"`
	FT         *int       `db:"ft" json:"ft"`
	FTA        *int       `db:"fta" json:"fta"`
	OffReb     *int       `db:"off_reb" json:"off_reb"`
	DefReb     *int       `db:"def_reb" json:"def_reb"`
	TotalReb   *int       `db:"total_reb" json:"total_reb"`
	Assists    *int       `db:"assists" json:"assists"`
	PF         *int       `db:"pf" json:"pf"`
	DQ         *int       `db:"dq" json:"dq"`
	Steals     *int       `db:"steals" json:"steals"`
	Turnovers  *int       `db:"turnovers" json:"turnovers"`
	Blocks     *int       `db:"blocks" json:"blocks"`
	Points     *int       `db:"points" json:"points"`
	RawLine    string     `db:"raw_line" json:"raw_line"`
}

func (r BoxscoreLine) Raw() string { return r.RawLine }

type PlayerCumulative struct {
	Scope        string   `db:"scope" json:"scope"`
	Team         string   `db:"team" json:"team"`
	RosterStatus string   `db:"roster_status" json:"roster_status"`
	PlayerName   string   `db:"player_name" json:"player_name"`
	Games        *int     `db:"games" json:"games"`
	GamesStarted *int     `db:"games_started" json:"games_started"`
	Minutes      *int     `db:"minutes" json:"minutes"`
	FG           *int     `db:"fg" json:"fg"`
	FGA          *int     `db:"fga" json:"fga"`
	FGPct        *float64 `db:"fg_pct" json:"fg_pct"`
	FG3          *int     `db:"fg3" json:"fg3"`
	F3A          *int     `db:"f3a" json:"f3a"`
	FG3Pct       *float64 `db:"fg3_pct" json:"fg3_pct"`
	FT           *int     `db:"ft" json:"ft"`
	FTA          *int     `db:"fta" json:"fta"`
	FTPct        *float64 `db:"ft_pct" json:"ft_pct"`
	OffReb       *int     `db:"off_reb" json:"off_reb"`
	DefReb       *int     `db:"def_reb" json:"def_reb"`
	TotalReb     *int     `db:"total_reb" json:"total_reb"`
	Assists      *int     `db:"assists" json:"assists"`
	PF           *int     `db:"pf" json:"pf"`
	DQ           *int     `db:"dq" json:"dq"`
	Steals       *int     `db:"steals" json:"steals"`
	Turnovers    *int     `db:"turnovers" json:"turnovers"`
	Blocks       *int     `db:"blocks" json:"blocks"`
	Points       *int     `db:"points" json:"points"`
	PPG          *float64 `db:"ppg" json:"ppg"`
	High         *int     `db:"high" json:"high"`
	RawLine      string   `db:"raw_line" json:"raw_line"`
}

func (r PlayerCumulative) Raw() string { return r.RawLine }

type Attendance struct {
	Team         string `db:"team" json:"team"`
	HomeGames    *int   `db:"home_games" json:"home_games"`
	HomeTotal    *int   `db:"home_total" json:"home_total"`
	HomeAvg      *int   `db:"home_avg" json:"home_avg"`
	RoadGames    *int   `db:"road_games" json:"road_games"`
	RoadTotal    *int   `db:"road_total" json:"road_total"`
	RoadAvg      *int   `db:"road_avg" json:"road_avg"`
	OverallGames int    `db:"overall_games" json:"overall_games"`
	OverallTotal int    `db:"overall_total" json:"overall_total"`
	OverallAvg   *int   `db:"overall_avg" json:"overall_avg"`
	RawLine      string `db:"raw_line" json:"raw_line"`
}

func (r Attendance) Raw() string { return r.RawLine }

type GameScore struct {
	GameDate       *time.Time `db:"game_date" json:"game_date"`
	AwayTeam       string     `db:"away_team" json:"away_team"`
	HomeTeam       string     `db:"home_team" json:"home_team"`
	AwayScore      *int       `db:"away_score" json:"away_score"`
	HomeScore      *int       `db:"home_score" json:"home_score"`
	LeaderPoints   *string    `db:"leader_points" json:"leader_points"`
	LeaderRebounds *string    `db:"leader_rebounds" json:"leader_rebounds"`
	LeaderAssists  *string    `db:"leader_assists" json:"leader_assists"`
	RawLine        string     `db:"raw_line" json:"raw_line"`
}

func (r GameScore) Raw() string { return r.RawLine }

const (
	StatHigh = "HIGH"
	StatLow  = "LOW"
)

type HighLow struct {
	Category   string  `db:"category" json:"category"`
	StatType   string  `db:"stat_type" json:"stat_type"`
	Value      *int    `db:"value" json:"value"`
	PlayerName *string `db:"player_name" json:"player_name"`
	Team       *string `db:"team" json:"team"`
	Opponent   *string `db:"opponent" json:"opponent"`
	GameDay    *string `db:"game_day" json:"game_day"`
	RawLine    string  `db:"raw_line" json:"raw_line"`
}

func (r HighLow) Raw() string { return r.RawLine }

type LeaderEntry struct {
	StatCategory string   `db:"stat_category" json:"stat_category"`
	Rank         int      `db:"rank" json:"rank"`
	PlayerName   string   `db:"player_name" json:"player_name"`
	Team         *string  `db:"team" json:"team"`
	Value        *float64 `db:"value" json:"value"`
	RawLine      string   `db:"raw_line" json:"raw_line"`
}

func (r LeaderEntry) Raw() string { return r.RawLine }

// RatioEntry is one player or team block of a ratios report. PlayerName is
// nil for team ratios.
type RatioEntry struct {
	StatCategory *string  `db:"stat_category" json:"stat_category"`
	PlayerName   *string  `db:"player_name" json:"player_name"`
	Team         *string  `db:"team" json:"team"`
	Numerator    *int     `db:"numerator" json:"numerator"`
	Denominator  *int     `db:"denominator" json:"denominator"`
	Ratio        *float64 `db:"ratio" json:"ratio"`
	RawLine      string   `db:"raw_line" json:"raw_line"`
}

func (r RatioEntry) Raw() string { return r.RawLine }

type PlayoffGame struct {
	RoundName    *string `db:"round_name" json:"round_name"`
	SeriesStatus *string `db:"series_status" json:"series_status"`
	GameDay      string  `db:"game_day" json:"game_day"`
	AwayTeam     string  `db:"away_team" json:"away_team"`
	HomeTeam     string  `db:"home_team" json:"home_team"`
	AwayScore    *int    `db:"away_score" json:"away_score"`
	HomeScore    *int    `db:"home_score" json:"home_score"`
	RawLine      string  `db:"raw_line" json:"raw_line"`
}

func (r PlayoffGame) Raw() string { return r.RawLine }

const (
	ConferenceEast = "EASTERN"
	ConferenceWest = "WESTERN"
)

type StandingsRow struct {
	Conference    string   `db:"conference" json:"conference"`
	Division      *string  `db:"division" json:"division"`
	Team          string   `db:"team" json:"team"`
	Wins          *int     `db:"wins" json:"wins"`
	Losses        *int     `db:"losses" json:"losses"`
	Pct           *float64 `db:"pct" json:"pct"`
	GamesBehind   string   `db:"games_behind" json:"games_behind"`
	HomeRecord    string   `db:"home_record" json:"home_record"`
	RoadRecord    string   `db:"road_record" json:"road_record"`
	NeutralRecord string   `db:"neutral_record" json:"neutral_record"`
	Last10        string   `db:"last_10" json:"last_10"`
	Streak        string   `db:"streak" json:"streak"`
	RawLine       string   `db:"raw_line" json:"raw_line"`
}

func (r StandingsRow) Raw() string { return r.RawLine }

type HeadToHeadCell struct {
	Team     string `db:"team" json:"team"`
	Opponent string `db:"opponent" json:"opponent"`
	Wins     int    `db:"wins" json:"wins"`
	Losses   int    `db:"losses" json:"losses"`
	RawLine  string `db:"raw_line" json:"raw_line"`
}

func (r HeadToHeadCell) Raw() string { return r.RawLine }

const (
	StatOffense = "OFFENSE"
	StatDefense = "DEFENSE"
)

type TeamStatLine struct {
	Team      string   `db:"team" json:"team"`
	StatType  string   `db:"stat_type" json:"stat_type"`
	Games     *int     `db:"games" json:"games"`
	FG        *int     `db:"fg" json:"fg"`
	FGA       *int     `db:"fga" json:"fga"`
	FGPct     *float64 `db:"fg_pct" json:"fg_pct"`
	FG3       *int     `db:"fg3" json:"fg3"`
	F3A       *int     `db:"f3a" json:"f3a"`
	FG3Pct    *float64 `db:"fg3_pct" json:"fg3_pct"`
	FT        *int     `db:"ft" json:"ft"`
	FTA       *int     `db:"fta" json:"fta"`
	FTPct     *float64 `db:"ft_pct" json:"ft_pct"`
	OffReb    *int     `db:"off_reb" json:"off_reb"`
	DefReb    *int     `db:"def_reb" json:"def_reb"`
	TotalReb  *int     `db:"total_reb" json:"total_reb"`
	Assists   *int     `db:"assists" json:"assists"`
	Steals    *int     `db:"steals" json:"steals"`
	Blocks    *int     `db:"blocks" json:"blocks"`
	Turnovers *int     `db:"turnovers" json:"turnovers"`
	Points    *int     `db:"points" json:"points"`
	RawLine   string   `db:"raw_line" json:"raw_line"`
}

func (r TeamStatLine) Raw() string { return r.RawLine }

type MiscEntry struct {
	StatCategory string  `db:"stat_category" json:"stat_category"`
	Team         string  `db:"team" json:"team"`
	Value        string  `db:"value" json:"value"`
	Description  *string `db:"description" json:"description"`
	RawLine      string  `db:"raw_line" json:"raw_line"`
}

func (r MiscEntry) Raw() string { return r.RawLine }

// OpponentPoints is one team row of a points-allowed breakdown section
// (points in the paint, fast break, second chance).
type OpponentPoints struct {
	Section      *string  `db:"section" json:"section"`
	Team         string   `db:"team" json:"team"`
	Points       *int     `db:"points" json:"points"`
	PerGame      *float64 `db:"per_game" json:"per_game"`
	PctOfTotal   *float64 `db:"pct_of_total" json:"pct_of_total"`
	TotalPoints  *int     `db:"total_points" json:"total_points"`
	Games        *int     `db:"games" json:"games"`
	TotalPerGame *float64 `db:"total_per_game" json:"total_per_game"`
	RawLine      string   `db:"raw_line" json:"raw_line"`
}

func (r OpponentPoints) Raw() string { return r.RawLine }

type GenericLine struct {
	RawLine string `db:"raw_line" json:"raw_line"`
}

func (r GenericLine) Raw() string { return r.RawLine }
