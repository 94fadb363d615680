package parse

import (
	"log/slog"
)

// Decoder turns the full text of one report into structured records. A
// decoder never fails: lines it cannot make sense of are skipped.
type Decoder interface {
	Decode(text string) []Record
}

type DecoderFunc func(text string) []Record

func (f DecoderFunc) Decode(text string) []Record {
	return f(text)
}

// records adapts a typed decode function to the Decoder interface.
func records[R Record](decode func(string) []R) Decoder {
	return DecoderFunc(func(text string) []Record {
		typed := decode(text)
		out := make([]Record, len(typed))
		for i, r := range typed {
			out[i] = r
		}
		return out
	})
}

var decoders = map[Category]Decoder{
	LatestBoxscoreLines:           records(DecodeBoxscoreLines),
	AlphabeticalPlayerCumulatives: records(DecodePlayerCumulatives),
	AlphabeticalRookieCumulatives: records(DecodePlayerCumulatives),
	AttendanceReport:              records(DecodeAttendance),
	LatestScoresAndLeaders:        records(DecodeScoresAndLeaders),
	SingleGameHighsLows:           records(DecodeHighsLows),
	Top10LeagueLeaders:            records(DecodeLeagueLeaders),
	Top20LeagueLeaders:            records(DecodeLeagueLeaders),
	RookieLeagueLeaders:           records(DecodeLeagueLeaders),
	RatiosPlayers:                 records(DecodePlayerRatios),
	RatiosTeams:                   records(DecodeTeamRatios),
	PlayoffScheduleResults:        records(DecodePlayoffResults),
	Standings:                     records(DecodeStandings),
	HeadToHeadWinGrid:             records(DecodeHeadToHead),
	OffensiveDefensive:            records(DecodeOffensiveDefensive),
	Miscellaneous:                 records(DecodeMiscellaneous),
	OpponentPointsBreakdown:       records(DecodeOpponentPoints),
	TeamBoxscoreLines:             records(DecodeBoxscoreLines),
	TeamCumulatives:               records(DecodeGeneric),
}

// Generic is the fallback decoder for categories without a dedicated layout.
var Generic Decoder = records(DecodeGeneric)

func Lookup(c Category) (Decoder, bool) {
	d, ok := decoders[c]
	return d, ok
}

// DecodeSlug decodes text with the decoder registered for slug. Unknown slugs
// fall back to the generic decoder and report known == false.
func DecodeSlug(slug, text string) (recs []Record, known bool) {
	decoder := Generic
	if c, ok := ParseCategory(slug); ok {
		if d, ok := Lookup(c); ok {
			decoder, known = d, true
		}
	}
	if !known {
		slog.Debug("no decoder for category, using generic lines", "slug", slug)
	}
	return decoder.Decode(text), known
}

// foldLines runs step over every non-blank line, threading the decoder's
// sticky context through the loop and collecting the records each line yields.
func foldLines[C any, R Record](name, text string, init C, step func(C, string) (C, []R)) []R {
	lines := NonBlankLines(text)
	out := []R{}
	ctx := init
	for _, line := range lines {
		var recs []R
		ctx, recs = step(ctx, line)
		if len(recs) == 0 {
			slog.Debug("line produced no records", "decoder", name, "line", line)
			continue
		}
		out = append(out, recs...)
	}
	slog.Debug("decoded report", "decoder", name, "records", len(out), "lines", len(lines))
	return out
}

// eachLine is foldLines for decoders that carry no context between lines.
func eachLine[R Record](name, text string, parse func(string) (R, bool)) []R {
	return foldLines(name, text, struct{}{}, func(ctx struct{}, line string) (struct{}, []R) {
		r, ok := parse(line)
		if !ok {
			return ctx, nil
		}
		return ctx, []R{r}
	})
}
