package parse

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const boxscoreSample = `INCLUDES GAMES OF 02/11/2026
DATE       TM  OPP NAME                     (POS)  G MIN  FG FGA 3FG 3FA  FT FTA OFF DEF TOT AST  PF  DQ STL  TO BLK PTS
02/11/2026 ATL CHA Johnson, Jalen (F ) 1 34 7 15 2 5 3 4 2 6 8 5 3 0 1 2 1 20
`

func TestDecodeBoxscoreLines(t *testing.T) {
	got := DecodeBoxscoreLines(boxscoreSample)
	require.Len(t, got, 1)

	rec := got[0]
	require.Equal(t, time.Date(2026, time.February, 11, 0, 0, 0, 0, time.UTC), *rec.GameDate)
	require.Equal(t, "ATL", rec.Team)
	require.Equal(t, "CHA", rec.Opponent)
	require.Equal(t, "Johnson, Jalen", rec.PlayerName)
	require.Equal(t, "F", rec.Position)
	require.Equal(t, ptr(34), rec.Minutes)
	require.Equal(t, ptr(8), rec.TotalReb)
	require.Equal(t, ptr(5), rec.Assists)
	require.Equal(t, ptr(20), rec.Points)
	require.Equal(t, "02/11/2026 ATL CHA Johnson, Jalen (F ) 1 34 7 15 2 5 3 4 2 6 8 5 3 0 1 2 1 20", rec.RawLine)
}

func TestDecodePlayerCumulatives(t *testing.T) {
	text := "Total SAC ACT Achiuwa, Precious, Sac.  48 32  973  144  288 .500  16  54 .296  60  80 .750  90 200 290  50  80  1  30  40  25  364  7.6  18\n" +
		"Total SAC ACT Nobody, Sac.  0 0  0  0  0 ---  0  0 ---  0  0 ---  0 0 0  0  0  0  0  0  0  0  0.0  0\n" +
		"garbage line\n"
	got := DecodePlayerCumulatives(text)
	require.Len(t, got, 2)

	require.Equal(t, "Achiuwa, Precious", got[0].PlayerName)
	require.Equal(t, "SAC", got[0].Team)
	require.Equal(t, "ACT", got[0].RosterStatus)
	require.Equal(t, ptr(0.5), got[0].FGPct)
	require.Equal(t, ptr(364), got[0].Points)
	require.Equal(t, ptr(7.6), got[0].PPG)
	require.Equal(t, ptr(18), got[0].High)

	require.Equal(t, "Nobody", got[1].PlayerName)
	require.Nil(t, got[1].FGPct)
}

const attendanceSample = `TEAM                           HOME ATTENDANCE           ROAD ATTENDANCE
Atlanta Hawks                   25    406,165 16,247    31    548,915 17,707
Philadelphia 76ers              0     0       0         0     0       0
TOTALS                         800 13,000,000 16,250   800 13,000,000 16,250
`

func TestDecodeAttendance(t *testing.T) {
	got := DecodeAttendance(attendanceSample)
	require.Len(t, got, 2)

	hawks := got[0]
	require.Equal(t, "Atlanta Hawks", hawks.Team)
	require.Equal(t, ptr(406165), hawks.HomeTotal)
	require.Equal(t, 56, hawks.OverallGames)
	require.Equal(t, 955080, hawks.OverallTotal)
	require.Equal(t, ptr(955080/56), hawks.OverallAvg)

	sixers := got[1]
	require.Equal(t, "Philadelphia 76ers", sixers.Team)
	require.Equal(t, 0, sixers.OverallGames)
	require.Nil(t, sixers.OverallAvg)
}

const scoresSample = `GAMES OF WEDNESDAY, FEBRUARY 11, 2026
Atlanta        107 27 22 26 32            Daniels 21       Johnson 13       Johnson 9
Charlotte      110 30 25 28 27            Ball 30          Miller 10        Ball 11
Boston         120 30 30 30 30            Tatum 35         Brown 12
New York       99  20 25 30 24            Brunson 28       Towns 15         Hart 8
Denver         101 25 25 25 26            Jokic 31         Jokic 14         Jokic 10
`

func TestDecodeScoresAndLeaders(t *testing.T) {
	got := DecodeScoresAndLeaders(scoresSample)
	require.Len(t, got, 2)

	date := time.Date(2026, time.February, 11, 0, 0, 0, 0, time.UTC)
	expect := []GameScore{
		{
			GameDate:       &date,
			AwayTeam:       "Atlanta",
			HomeTeam:       "Charlotte",
			AwayScore:      ptr(107),
			HomeScore:      ptr(110),
			LeaderPoints:   ptr("Daniels 21 / Ball 30"),
			LeaderRebounds: ptr("Johnson 13 / Miller 10"),
			LeaderAssists:  ptr("Johnson 9 / Ball 11"),
		},
		{
			GameDate:       &date,
			AwayTeam:       "Boston",
			HomeTeam:       "New York",
			AwayScore:      ptr(120),
			HomeScore:      ptr(99),
			LeaderPoints:   ptr("Tatum 35 / Brunson 28"),
			LeaderRebounds: ptr("Brown 12 / Towns 15"),
			LeaderAssists:  ptr("- / Hart 8"),
		},
	}
	for i := range got {
		require.Contains(t, got[i].RawLine, " | ")
		got[i].RawLine = ""
	}
	if diff := cmp.Diff(expect, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestClassifyHighLow(t *testing.T) {
	require.Equal(t, StatLow, ClassifyHighLow("Fewest Field Goals"))
	require.Equal(t, StatLow, ClassifyHighLow("Lowest Field Goal Pct."))
	require.Equal(t, StatHigh, ClassifyHighLow("Minutes"))
	require.Equal(t, StatHigh, ClassifyHighLow("Points"))
}

func TestDecodeHighsLows(t *testing.T) {
	text := `SINGLE-GAME HIGHS
Minutes -- 52, Maxey, PHI vs. ATL, 11/30 (2 OT)
Fewest Field Goals -- 23, Brooklyn at NY, 1/21
Points -- n/a
`
	expect := []HighLow{
		{
			Category:   "Minutes",
			StatType:   StatHigh,
			Value:      ptr(52),
			PlayerName: ptr("Maxey"),
			Team:       ptr("PHI"),
			Opponent:   ptr("ATL"),
			GameDay:    ptr("11/30"),
			RawLine:    "Minutes -- 52, Maxey, PHI vs. ATL, 11/30 (2 OT)",
		},
		{
			Category: "Fewest Field Goals",
			StatType: StatLow,
			Value:    ptr(23),
			Team:     ptr("Brooklyn"),
			Opponent: ptr("NY"),
			GameDay:  ptr("1/21"),
			RawLine:  "Fewest Field Goals -- 23, Brooklyn at NY, 1/21",
		},
	}
	if diff := cmp.Diff(expect, DecodeHighsLows(text)); diff != "" {
		t.Fatal(diff)
	}
}

const leadersSample = `SCORING AVERAGE                          REBOUNDS PER GAME
Doncic, LA-L          42  437 32.8      Jokic, Den.          50  634 12.7
Gilgeous-Alexander, OKC   40  1280 32.0      Sabonis, Sac.    48  620 12.9
`

func TestDecodeLeagueLeaders(t *testing.T) {
	got := DecodeLeagueLeaders("ROOKIE LEADERS\n" + leadersSample)
	require.Len(t, got, 4)

	type row struct {
		Category, Name, Team string
		Rank                 int
		Value                float64
	}
	rows := []row{}
	for _, e := range got {
		rows = append(rows, row{e.StatCategory, e.PlayerName, *e.Team, e.Rank, *e.Value})
	}
	require.Equal(t, []row{
		{"SCORING AVERAGE", "Doncic", "LA-L", 1, 32.8},
		{"REBOUNDS PER GAME", "Jokic", "Den", 1, 12.7},
		{"SCORING AVERAGE", "Gilgeous-Alexander", "OKC", 2, 32.0},
		{"REBOUNDS PER GAME", "Sabonis", "Sac", 2, 12.9},
	}, rows)
}

func TestDecodeLeagueLeadersWithoutHeader(t *testing.T) {
	require.Empty(t, DecodeLeagueLeaders("Doncic, LA-L          42  437 32.8\n"))
}

func TestDecodePlayerRatios(t *testing.T) {
	text := `Assists Per Turnover                        Steals Per Turnover
Name                     AST   TO RATIO     Name                     STL   TO RATIO
Pritchard, Bos.          283   63  4.49     Wallace, OKC.            108   48  2.25
`
	got := DecodePlayerRatios(text)
	require.Len(t, got, 2)

	require.Equal(t, ptr("Assists Per Turnover"), got[0].StatCategory)
	require.Equal(t, ptr("Pritchard"), got[0].PlayerName)
	require.Equal(t, ptr("Bos"), got[0].Team)
	require.Equal(t, ptr(283), got[0].Numerator)
	require.Equal(t, ptr(63), got[0].Denominator)
	require.Equal(t, ptr(4.49), got[0].Ratio)

	require.Equal(t, ptr("Steals Per Turnover"), got[1].StatCategory)
	require.Equal(t, ptr("Wallace"), got[1].PlayerName)
	require.Equal(t, ptr("OKC"), got[1].Team)
}

func TestDecodeTeamRatios(t *testing.T) {
	text := `Assists Per Turnover                        Steals Per Turnover
Denver                  1539  701  2.20     Oklahoma City            544  682  0.80
`
	got := DecodeTeamRatios(text)
	require.Len(t, got, 2)
	require.Nil(t, got[0].PlayerName)
	require.Equal(t, ptr("Denver"), got[0].Team)
	require.Equal(t, ptr("Oklahoma City"), got[1].Team)
	require.Equal(t, ptr(0.8), got[1].Ratio)
	require.Equal(t, ptr("Steals Per Turnover"), got[1].StatCategory)
}

func TestCumulativeName(t *testing.T) {
	for raw, want := range map[string]string{
		"Achiuwa, Precious, Sac.":        "Achiuwa, Precious",
		"Nene, Hou.":                     "Nene",
		"Gilgeous-Alexander, Shai, OKC,": "Gilgeous-Alexander, Shai",
		"Brown Jr., Jaylen, Bos.":        "Brown Jr., Jaylen",
		"Porter, Michael":                "Porter, Michael",
		"Jokic":                          "Jokic",
	} {
		require.Equal(t, want, cumulativeName(raw), raw)
	}
}

func TestDecodePlayoffResults(t *testing.T) {
	text := `2024-2025 NBA POSTSEASON
FIRST ROUND
EASTERN CONFERENCE
CLEVELAND vs. MIAMI
Apr 20 MIA 100 at CLE 121
Apr 23 MIA 112 at CLE 121
(1) CLEVELAND WON SERIES 4-0
WESTERN CONFERENCE
DENVER vs. LA CLIPPERS
Apr 19 LAC 112 at DEN 110
CONFERENCE SEMIFINALS
May 4 IND 121 at CLE 112
EASTERN CONFERENCE
CLEVELAND vs. INDIANA
May 6 IND 120 at CLE 119
`
	got := DecodePlayoffResults(text)
	require.Len(t, got, 5)
	for _, g := range got[:2] {
		require.Equal(t, ptr("FIRST ROUND"), g.RoundName)
		require.Equal(t, ptr("CLEVELAND vs. MIAMI"), g.SeriesStatus)
		require.Equal(t, "MIA", g.AwayTeam)
		require.Equal(t, "CLE", g.HomeTeam)
	}
	require.Equal(t, "Apr 20", got[0].GameDay)
	require.Equal(t, ptr(100), got[0].AwayScore)
	require.Equal(t, ptr(121), got[0].HomeScore)

	// a new series header replaces the series and keeps the round
	require.Equal(t, ptr("FIRST ROUND"), got[2].RoundName)
	require.Equal(t, ptr("DENVER vs. LA CLIPPERS"), got[2].SeriesStatus)

	// a new round keeps the series until the next series header
	require.Equal(t, ptr("CONFERENCE SEMIFINALS"), got[3].RoundName)
	require.Equal(t, ptr("DENVER vs. LA CLIPPERS"), got[3].SeriesStatus)
	require.Equal(t, "May 4", got[3].GameDay)

	require.Equal(t, ptr("CONFERENCE SEMIFINALS"), got[4].RoundName)
	require.Equal(t, ptr("CLEVELAND vs. INDIANA"), got[4].SeriesStatus)
	require.Equal(t, ptr(119), got[4].HomeScore)
}

const (
	eastRow = "Boston              35 19  .648    -  18- 9 17-10     0- 0  7-3   Won   1"
	westRow = "Oklahoma City       44  9  .830    -  24- 3 20- 6     0- 0  8-2   Won   3"
)

func standingsSample() string {
	return fmt.Sprintf("%-85s%s\n", "EASTERN CONFERENCE", "WESTERN CONFERENCE") +
		fmt.Sprintf("%-85s%s\n", "ATLANTIC DIVISION", "NORTHWEST DIVISION") +
		"                    W  L   PCT   GB   HOME  ROAD NEUTRAL LAST-10 STREAK\n" +
		fmt.Sprintf("%-85s%s\n", eastRow, westRow)
}

func TestDecodeStandingsSplitsHalves(t *testing.T) {
	got := DecodeStandings(standingsSample())
	require.Len(t, got, 2)

	east, west := got[0], got[1]
	require.Equal(t, ConferenceEast, east.Conference)
	require.Equal(t, ptr("ATLANTIC DIVISION"), east.Division)
	require.Equal(t, "Boston", east.Team)
	require.Equal(t, ptr(35), east.Wins)
	require.Equal(t, ptr(19), east.Losses)
	require.Equal(t, ptr(0.648), east.Pct)
	require.Equal(t, "0", east.GamesBehind)
	require.Equal(t, "18-9", east.HomeRecord)
	require.Equal(t, "17-10", east.RoadRecord)
	require.Equal(t, "0-0", east.NeutralRecord)
	require.Equal(t, "7-3", east.Last10)
	require.Equal(t, "Won 1", east.Streak)

	require.Equal(t, ConferenceWest, west.Conference)
	require.Equal(t, ptr("NORTHWEST DIVISION"), west.Division)
	require.Equal(t, "Oklahoma City", west.Team)
	require.Equal(t, ptr(44), west.Wins)
	require.Equal(t, "8-2", west.Last10)
	require.Equal(t, "Won 3", west.Streak)
}

func TestDecodeStandingsHalfWithoutMatch(t *testing.T) {
	got := DecodeStandings(eastRow + "\n")
	require.Len(t, got, 1)
	require.Equal(t, "Boston", got[0].Team)
	require.Nil(t, got[0].Division)

	got = DecodeStandings(fmt.Sprintf("%-85s%s\n", "not a standings row", westRow))
	require.Len(t, got, 1)
	require.Equal(t, ConferenceWest, got[0].Conference)
}

func TestDecodeStandingsSingleDivision(t *testing.T) {
	got := DecodeStandings("PACIFIC DIVISION\n" + fmt.Sprintf("%-85s%s\n", eastRow, westRow))
	require.Len(t, got, 2)
	require.Nil(t, got[0].Division)
	require.Equal(t, ptr("PACIFIC DIVISION"), got[1].Division)
}

const headToHeadSample = `ATLANTIC DIVISION
ATL BKN BOS CHA CHI CLE DAL DEN DET GSW
ATL -- 1 0 2 1 0 2 3 1 2 0 1 1 0 0 1 2 1 1 30 25 .545
BKN 0 1 -- 1 1 28 27 .509 5.0 6-4 Won 2
`

// The walk stops at the first pair above MaxHeadToHeadGames. That bound is a
// heuristic for where the season totals start and may misread unusual data.
func TestDecodeHeadToHead(t *testing.T) {
	got := DecodeHeadToHead(headToHeadSample)

	type cell struct {
		Team, Opponent string
		Wins, Losses   int
	}
	cells := []cell{}
	for _, c := range got {
		cells = append(cells, cell{c.Team, c.Opponent, c.Wins, c.Losses})
	}
	require.Equal(t, []cell{
		{"ATL", "BKN", 1, 0},
		{"ATL", "BOS", 2, 1},
		{"ATL", "CHA", 0, 2},
		{"ATL", "CHI", 3, 1},
		{"ATL", "CLE", 2, 0},
		{"ATL", "DAL", 1, 1},
		{"ATL", "DEN", 0, 0},
		{"ATL", "DET", 1, 2},
		{"ATL", "GSW", 1, 1},
		{"BKN", "ATL", 0, 1},
		{"BKN", "BOS", 1, 1},
	}, cells)
}

func TestDecodeHeadToHeadWithoutHeader(t *testing.T) {
	require.Empty(t, DecodeHeadToHead("ATL -- 1 0 2 1 0 2 3 1 2 0 1 1 0 0 1 2 1 1 30 25 .545\n"))
}

const offDefSample = `TEAMS' STATISTICS
                    FIELD GOALS       3 PT FIELD GOALS     FREE THROWS       REBOUNDS
TEAM     G   MADE  ATT. PCT. MADE  ATT. PCT.  MADE  ATT. PCT.   OFF. DEF. TOT.
Den.    55   2356 4761 .495   755 1910 .395   1153 1423 .810    526 1821 2347  1683  1020   5   448   747   333   6620  120.4
OPPONENTS’ STATISTICS
Den.  2300 4900 .469  700 1950 .359  1100 1400 .786  560 1800 2360  1500  1100  5  6400  116.4  4.0
Bos.  99 4900 .469  700 1950 .359  1100 1400 .786  560 1800 2360  1500  1100  5  6400  116.4  4.0
`

func TestDecodeOffensiveDefensive(t *testing.T) {
	got := DecodeOffensiveDefensive(offDefSample)
	require.Len(t, got, 2)

	off := got[0]
	require.Equal(t, "Den", off.Team)
	require.Equal(t, StatOffense, off.StatType)
	require.Equal(t, ptr(55), off.Games)
	require.Equal(t, ptr(2356), off.FG)
	require.Equal(t, ptr(0.81), off.FTPct)
	require.Equal(t, ptr(1683), off.Assists)
	require.Equal(t, ptr(448), off.Steals)
	require.Equal(t, ptr(747), off.Turnovers)
	require.Equal(t, ptr(333), off.Blocks)
	require.Equal(t, ptr(6620), off.Points)

	def := got[1]
	require.Equal(t, "Den", def.Team)
	require.Equal(t, StatDefense, def.StatType)
	require.Nil(t, def.Games)
	require.Equal(t, ptr(2300), def.FG)
	require.Equal(t, ptr(1500), def.Assists)
	require.Nil(t, def.Steals)
	require.Equal(t, ptr(6400), def.Points)
}

func TestDecodeOffensiveDefensiveNeedsSection(t *testing.T) {
	require.Empty(t, DecodeOffensiveDefensive("Den.    55   2356 4761 .495   755 1910 .395   1153 1423 .810    526 1821 2347  1683  1020   5   448   747   333   6620  120.4\n"))
}

func TestDecodeMiscellaneous(t *testing.T) {
	text := `TEAM                    OWN    OPP.    OWN   OPP.
Atlanta               117.3  118.6    .472  .476
OVERTIME GAMES          3
`
	got := DecodeMiscellaneous(text)
	require.Equal(t, []MiscEntry{{
		StatCategory: MiscCategory,
		Team:         "Atlanta",
		Value:        "117.3  118.6    .472  .476",
		RawLine:      "Atlanta               117.3  118.6    .472  .476",
	}}, got)
}

func TestDecodeOpponentPoints(t *testing.T) {
	text := `Points-in-the-Paint
Team                  InPaint  PerGame PctofTot   TotPts    Games   Tot/Gm
New Orleans              3200   57.143   49.868     6417       56  114.589
TOTALS                  90000   55.000   48.000   180000     1600  112.500
Fast Break Points
Denver                    900   16.071   14.500     6200       56  110.714
`
	got := DecodeOpponentPoints(text)
	require.Len(t, got, 2)

	require.Equal(t, ptr("Points-in-the-Paint"), got[0].Section)
	require.Equal(t, "New Orleans", got[0].Team)
	require.Equal(t, ptr(3200), got[0].Points)
	require.Equal(t, ptr(57.143), got[0].PerGame)
	require.Equal(t, ptr(6417), got[0].TotalPoints)
	require.Equal(t, ptr(56), got[0].Games)
	require.Equal(t, ptr(114.589), got[0].TotalPerGame)

	require.Equal(t, ptr("Fast Break Points"), got[1].Section)
	require.Equal(t, "Denver", got[1].Team)
}

func TestDecodeGeneric(t *testing.T) {
	got := DecodeGeneric("INCLUDES ALL GAMES\nabc\nTeam cumulative line\n")
	require.Equal(t, []GenericLine{{RawLine: "Team cumulative line"}}, got)
}
