package api

import (
	"testing"

	"eliasstats/parse"

	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestRecordPct(t *testing.T) {
	require.Equal(t, ptr(75.0), recordPct("18-6"))
	require.Nil(t, recordPct("0-0"))
	require.Nil(t, recordPct("18 - 6"))
	require.Nil(t, recordPct(""))
}

func TestPerGame(t *testing.T) {
	require.Equal(t, ptr(33.3), perGame(ptr(100), ptr(3)))
	require.Nil(t, perGame(ptr(100), ptr(0)))
	require.Nil(t, perGame(nil, ptr(3)))
	require.Equal(t, ptr(50.0), percentage(ptr(5), ptr(10)))
}

func TestNetRating(t *testing.T) {
	off := &parse.TeamStatLine{Games: ptr(50), Points: ptr(5800)}
	def := &parse.TeamStatLine{Games: ptr(50), Points: ptr(5550)}
	require.Equal(t, ptr(5.0), netRating(off, def))
	require.Nil(t, netRating(off, nil))
	require.Nil(t, netRating(off, &parse.TeamStatLine{Points: ptr(10)}))
}

func TestWinProbability(t *testing.T) {
	// every input missing is an even game
	require.Equal(t, 50.0, winProbability(nil, nil, nil, nil, nil))

	// net 5 vs -5: netScore 80 -> 32, h2h 100 -> 30, home 80 -> 12, road 25 -> 11.25
	got := winProbability(ptr(5.0), ptr(-5.0), ptr(100.0), ptr(80.0), ptr(25.0))
	require.Equal(t, 85.3, got)

	// clamped at both ends
	require.Equal(t, 90.0, winProbability(ptr(100.0), ptr(-100.0), ptr(100.0), ptr(100.0), ptr(0.0)))
	require.Equal(t, 10.0, winProbability(ptr(-100.0), ptr(100.0), ptr(0.0), ptr(0.0), ptr(100.0)))
}

func TestBuildMatchup(t *testing.T) {
	home := teamData{
		team: "BOS",
		standings: &parse.StandingsRow{
			Team: "Boston", Wins: ptr(40), Losses: ptr(12), Pct: ptr(0.769),
			HomeRecord: "22-4", RoadRecord: "18-8", Last10: "8-2", Streak: "Won 3",
		},
		offense: &parse.TeamStatLine{Games: ptr(52), Points: ptr(6100)},
		defense: &parse.TeamStatLine{Games: ptr(52), Points: ptr(5700)},
	}
	away := teamData{team: "NYK"}

	v := buildMatchup(home, away, &parse.HeadToHeadCell{Team: "BOS", Opponent: "NYK", Wins: 2, Losses: 1})
	require.Equal(t, "BOS vs NYK", v.Matchup)
	require.Equal(t, ptr("40W-12L"), v.Home.Record)
	require.Equal(t, ptr(76.9), v.Home.Pct)
	require.Equal(t, ptr(84.6), v.Home.VenuePct)
	require.Equal(t, ptr(7.69), v.Home.NetRating)
	require.True(t, v.Home.FoundInData)
	require.False(t, v.Away.FoundInData)
	require.Nil(t, v.Away.NetRating)
	require.Equal(t, ptr(66.7), v.HeadToHeadPct)
	require.Equal(t, "BOS", v.Favorite)
	require.InDelta(t, 100, v.HomeWinProbability+v.AwayWinProbability, 0.01)
}
