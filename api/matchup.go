package api

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"eliasstats/parse"
)

var winLossPattern = regexp.MustCompile(`^(\d+)-(\d+)$`)

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

func perGame(total, games *int) *float64 {
	if total == nil || games == nil || *games == 0 {
		return nil
	}
	v := round(float64(*total)/float64(*games), 1)
	return &v
}

func percentage(made, attempts *int) *float64 {
	if made == nil || attempts == nil || *attempts == 0 {
		return nil
	}
	v := round(float64(*made)/float64(*attempts)*100, 1)
	return &v
}

// recordPct turns a "W-L" record into a win percentage.
func recordPct(record string) *float64 {
	m := winLossPattern.FindStringSubmatch(record)
	if m == nil {
		return nil
	}
	w, _ := strconv.Atoi(m[1])
	l, _ := strconv.Atoi(m[2])
	if w+l == 0 {
		return nil
	}
	v := round(float64(w)/float64(w+l)*100, 1)
	return &v
}

// netRating is points scored minus points allowed per game.
func netRating(offense, defense *parse.TeamStatLine) *float64 {
	if offense == nil || defense == nil {
		return nil
	}
	scored := perGame(offense.Points, offense.Games)
	allowed := perGame(defense.Points, defense.Games)
	if scored == nil || allowed == nil {
		return nil
	}
	v := round(float64(*offense.Points)/float64(*offense.Games)-float64(*defense.Points)/float64(*defense.Games), 2)
	return &v
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// winProbability estimates the home team's chance to win, in percent. Net
// rating weighs 40%, head-to-head 30%, home and road form 15% each. Missing
// inputs count as even.
func winProbability(netHome, netAway, headToHeadPct, homePct, awayRoadPct *float64) float64 {
	netDiff := valueOr(netHome, 0) - valueOr(netAway, 0)
	netScore := clamp(50+netDiff*3, 10, 90)
	p := netScore*0.4 +
		valueOr(headToHeadPct, 50)*0.3 +
		valueOr(homePct, 50)*0.15 +
		(100-valueOr(awayRoadPct, 50))*0.15
	return clamp(round(p, 1), 10, 90)
}

type matchupSide struct {
	Team        string   `json:"team"`
	Record      *string  `json:"record"`
	Pct         *float64 `json:"pct"`
	PointsPG    *float64 `json:"points_per_game"`
	AllowedPG   *float64 `json:"allowed_per_game"`
	NetRating   *float64 `json:"net_rating"`
	VenuePct    *float64 `json:"venue_pct"`
	Last10      *string  `json:"last_10"`
	Streak      *string  `json:"streak"`
	FoundInData bool     `json:"found"`
}

type matchupView struct {
	Matchup            string                `json:"matchup"`
	Home               matchupSide           `json:"home"`
	Away               matchupSide           `json:"away"`
	HeadToHead         *parse.HeadToHeadCell `json:"head_to_head"`
	HeadToHeadPct      *float64              `json:"head_to_head_pct"`
	HomeWinProbability float64               `json:"home_win_probability"`
	AwayWinProbability float64               `json:"away_win_probability"`
	Favorite           string                `json:"favorite"`
}

type teamData struct {
	team      string
	standings *parse.StandingsRow
	offense   *parse.TeamStatLine
	defense   *parse.TeamStatLine
}

// side summarizes one team. home selects which venue record is reported.
func (d teamData) side(home bool) matchupSide {
	s := matchupSide{Team: d.team}
	if st := d.standings; st != nil {
		s.FoundInData = true
		if st.Wins != nil && st.Losses != nil {
			record := fmt.Sprintf("%dW-%dL", *st.Wins, *st.Losses)
			s.Record = &record
		}
		if st.Pct != nil {
			pct := round(*st.Pct*100, 1)
			s.Pct = &pct
		}
		if home {
			s.VenuePct = recordPct(st.HomeRecord)
		} else {
			s.VenuePct = recordPct(st.RoadRecord)
		}
		s.Last10, s.Streak = &st.Last10, &st.Streak
	}
	if d.offense != nil {
		s.FoundInData = true
		s.PointsPG = perGame(d.offense.Points, d.offense.Games)
	}
	if d.defense != nil {
		s.AllowedPG = perGame(d.defense.Points, d.defense.Games)
	}
	s.NetRating = netRating(d.offense, d.defense)
	return s
}

func buildMatchup(home, away teamData, h2h *parse.HeadToHeadCell) matchupView {
	v := matchupView{
		Matchup:    home.team + " vs " + away.team,
		Home:       home.side(true),
		Away:       away.side(false),
		HeadToHead: h2h,
	}
	if h2h != nil && h2h.Wins+h2h.Losses > 0 {
		pct := round(float64(h2h.Wins)/float64(h2h.Wins+h2h.Losses)*100, 1)
		v.HeadToHeadPct = &pct
	}
	v.HomeWinProbability = winProbability(v.Home.NetRating, v.Away.NetRating, v.HeadToHeadPct, v.Home.VenuePct, v.Away.VenuePct)
	v.AwayWinProbability = round(100-v.HomeWinProbability, 1)
	v.Favorite = home.team
	if v.HomeWinProbability < 50 {
		v.Favorite = away.team
	}
	return v
}
