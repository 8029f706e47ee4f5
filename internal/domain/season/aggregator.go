package season

import (
	"sort"

	"github.com/riskibarqy/fpl-analyst/internal/domain/form"
	"github.com/riskibarqy/fpl-analyst/internal/domain/gameweek"
)

// AggregateSnapshot folds every player in the snapshot. The result is ordered by
// player id so repeated runs over the same snapshot are identical.
func AggregateSnapshot(snapshot gameweek.Snapshot) []Aggregate {
	groups := snapshot.ByPlayer()
	ids := make([]int64, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]Aggregate, 0, len(ids))
	for _, id := range ids {
		out = append(out, Fold(groups[id]))
	}
	return out
}

// AggregateByTeam folds each player once per team they have records for, so a
// player who moved mid-season yields one aggregate per stint, each carrying
// that stint's team and totals. The result is ordered by team name, then
// player id.
func AggregateByTeam(snapshot gameweek.Snapshot) []Aggregate {
	byTeam := snapshot.ByTeam()
	names := make([]string, 0, len(byTeam))
	for name := range byTeam {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Aggregate, 0, snapshot.Len())
	for _, name := range names {
		groups := make(map[int64][]gameweek.PlayerRecord)
		for _, r := range byTeam[name] {
			groups[r.PlayerID] = append(groups[r.PlayerID], r)
		}
		ids := make([]int64, 0, len(groups))
		for id := range groups {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		for _, id := range ids {
			out = append(out, Fold(groups[id]))
		}
	}
	return out
}

// AggregateRecords validates records and folds them per player.
func AggregateRecords(records []gameweek.PlayerRecord) ([]Aggregate, error) {
	snapshot, err := gameweek.NewSnapshot(records)
	if err != nil {
		return nil, err
	}
	return AggregateSnapshot(snapshot), nil
}

// Fold builds the aggregate of one player's records. The records must all
// belong to the same player; order does not matter.
func Fold(records []gameweek.PlayerRecord) Aggregate {
	if len(records) == 0 {
		return Aggregate{}
	}

	rep := representative(records)
	agg := Aggregate{
		PlayerID:     rep.PlayerID,
		WebName:      rep.DisplayName(),
		FullName:     rep.FullName(),
		TeamName:     rep.Team(),
		Position:     rep.Position,
		Records:      len(records),
		LastGameweek: rep.Gameweek,
		Cost:         rep.Cost,
		Ownership:    rep.Ownership,
	}
	if agg.Position == "" {
		agg.Position = gameweek.PositionUnknown
	}
	if agg.FullName == "" {
		agg.FullName = agg.WebName
	}

	for _, r := range records {
		agg.Minutes += r.Minutes
		agg.TotalPoints += r.TotalPoints
		agg.Goals += r.Goals
		agg.Assists += r.Assists
		agg.CleanSheets += r.CleanSheets
		agg.GoalsConceded += r.GoalsConceded
		agg.ExpectedGoals += r.ExpectedGoals
		agg.ExpectedAssists += r.ExpectedAssists
		agg.ExpectedCleanSheets += r.ExpectedCleanSheets
		agg.ExpectedGoalsConceded += r.ExpectedGoalsConceded
		agg.Shots += r.Shots
		agg.ShotsOnTarget += r.ShotsOnTarget
		agg.KeyPasses += r.KeyPasses
		agg.Touches += r.Touches
		if r.Played() {
			agg.GamesPlayed++
		}
	}

	agg.PointsPerGame = agg.PerGame(float64(agg.TotalPoints))
	agg.GoalsPerGame = agg.PerGame(float64(agg.Goals))
	agg.AssistsPerGame = agg.PerGame(float64(agg.Assists))
	agg.ValueScore = valueScore(agg.TotalPoints, agg.Cost)
	agg.FormScore = form.Score(records)

	agg.Points90 = agg.Per90(float64(agg.TotalPoints))
	agg.Goals90 = agg.Per90(float64(agg.Goals))
	agg.Assists90 = agg.Per90(float64(agg.Assists))
	agg.ExpectedGoals90 = agg.Per90(agg.ExpectedGoals)
	agg.ExpectedAssists90 = agg.Per90(agg.ExpectedAssists)
	agg.Shots90 = agg.Per90(float64(agg.Shots))
	agg.KeyPasses90 = agg.Per90(float64(agg.KeyPasses))

	return agg
}

// valueScore is points per whole currency unit of cost.
func valueScore(points, cost int) float64 {
	if cost <= 0 {
		return 0
	}
	return float64(points) / (float64(cost) / 10)
}

// representative picks the most recent record. Records sharing the latest
// gameweek are ordered by content, never by input position.
func representative(records []gameweek.PlayerRecord) gameweek.PlayerRecord {
	best := records[0]
	for _, r := range records[1:] {
		if newer(r, best) {
			best = r
		}
	}
	return best
}

func newer(a, b gameweek.PlayerRecord) bool {
	return gameweek.CompareRecency(a, b) > 0
}
