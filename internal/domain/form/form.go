package form

import (
	"math"

	"github.com/riskibarqy/fpl-analyst/internal/domain/gameweek"
)

// Window is the number of most recent gameweeks considered for form.
const Window = 5

// Score returns points over the last Window records divided by the number of
// those records with minutes played, rounded to one decimal place. A window
// with no appearances scores 0.
func Score(records []gameweek.PlayerRecord) float64 {
	return ScoreWindow(records, Window)
}

// ScoreWindow is Score with an explicit window size.
func ScoreWindow(records []gameweek.PlayerRecord, window int) float64 {
	if len(records) == 0 || window <= 0 {
		return 0
	}

	recent := lastN(records, window)

	points := 0
	played := 0
	for _, r := range recent {
		points += r.TotalPoints
		if r.Played() {
			played++
		}
	}
	if played == 0 {
		return 0
	}

	return Round1(float64(points) / float64(played))
}

// lastN returns the n most recent records by gameweek without touching the
// caller's slice.
func lastN(records []gameweek.PlayerRecord, n int) []gameweek.PlayerRecord {
	ordered := make([]gameweek.PlayerRecord, len(records))
	copy(ordered, records)
	gameweek.SortByGameweek(ordered)

	if len(ordered) <= n {
		return ordered
	}
	return ordered[len(ordered)-n:]
}

func Round1(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*10) / 10
}
