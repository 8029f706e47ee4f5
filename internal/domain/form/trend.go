package form

import (
	"math"

	"github.com/riskibarqy/fpl-analyst/internal/domain/gameweek"
)

// Point is one gameweek of a player's trend series.
type Point struct {
	Gameweek        int     `json:"gameweek"`
	Points          int     `json:"points"`
	Minutes         int     `json:"minutes"`
	Goals           int     `json:"goals"`
	Assists         int     `json:"assists"`
	ExpectedGoals   float64 `json:"expected_goals"`
	ExpectedAssists float64 `json:"expected_assists"`
	Form            float64 `json:"form"`
}

// Trend builds the gameweek-by-gameweek series for one player, ascending by
// gameweek. Form at each point is the trailing form up to and including that
// gameweek.
func Trend(records []gameweek.PlayerRecord) []Point {
	ordered := make([]gameweek.PlayerRecord, len(records))
	copy(ordered, records)
	gameweek.SortByGameweek(ordered)

	out := make([]Point, 0, len(ordered))
	for i, r := range ordered {
		out = append(out, Point{
			Gameweek:        r.Gameweek,
			Points:          r.TotalPoints,
			Minutes:         r.Minutes,
			Goals:           r.Goals,
			Assists:         r.Assists,
			ExpectedGoals:   round2(r.ExpectedGoals),
			ExpectedAssists: round2(r.ExpectedAssists),
			Form:            Score(ordered[:i+1]),
		})
	}
	return out
}

// LimitRecent keeps the last n points; n <= 0 keeps everything.
func LimitRecent(points []Point, n int) []Point {
	if n <= 0 || len(points) <= n {
		return points
	}
	return points[len(points)-n:]
}

func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}
