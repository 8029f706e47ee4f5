package season

import (
	"errors"
	"reflect"
	"testing"

	"github.com/riskibarqy/fpl-analyst/internal/domain/gameweek"
)

func TestFold_EndToEndScenario(t *testing.T) {
	t.Parallel()

	records := []gameweek.PlayerRecord{
		{PlayerID: 1, WebName: "A", TeamName: "Arsenal", Gameweek: 1, TotalPoints: 2, Minutes: 90},
		{PlayerID: 1, WebName: "A", TeamName: "Arsenal", Gameweek: 2, TotalPoints: 5, Minutes: 0},
		{PlayerID: 1, WebName: "A", TeamName: "Arsenal", Gameweek: 3, TotalPoints: 9, Minutes: 90},
	}

	got := Fold(records)
	if got.TotalPoints != 16 {
		t.Fatalf("expected total points 16, got %d", got.TotalPoints)
	}
	if got.GamesPlayed != 2 {
		t.Fatalf("expected games played 2, got %d", got.GamesPlayed)
	}
	if got.PointsPerGame != 8.0 {
		t.Fatalf("expected points per game 8.0, got %v", got.PointsPerGame)
	}
	if got.Records != 3 {
		t.Fatalf("expected 3 records, got %d", got.Records)
	}
}

func TestFold_GamesPlayedCountsOnlyMinutes(t *testing.T) {
	t.Parallel()

	records := []gameweek.PlayerRecord{
		{PlayerID: 3, Gameweek: 1, Minutes: 0},
		{PlayerID: 3, Gameweek: 2, Minutes: 0},
		{PlayerID: 3, Gameweek: 3, Minutes: 12},
		{PlayerID: 3, Gameweek: 4, Minutes: 0},
	}

	got := Fold(records)
	if got.GamesPlayed != 1 {
		t.Fatalf("expected 1 game played, got %d", got.GamesPlayed)
	}
}

func TestFold_Per90Rates(t *testing.T) {
	t.Parallel()

	records := []gameweek.PlayerRecord{
		{PlayerID: 9, Gameweek: 1, Minutes: 90, Goals: 1, ExpectedGoals: 0.6, Shots: 3},
		{PlayerID: 9, Gameweek: 2, Minutes: 45, Goals: 1, ExpectedGoals: 0.3, Shots: 1},
	}

	got := Fold(records)
	wantGoals90 := float64(2*90) / float64(135)
	if got.Goals90 != wantGoals90 {
		t.Fatalf("goals per 90: got %v want %v", got.Goals90, wantGoals90)
	}
	if got.Shots90 != float64(4*90)/float64(135) {
		t.Fatalf("unexpected shots per 90: %v", got.Shots90)
	}
	if got.ExpectedGoals90 != got.ExpectedGoals*90/135 {
		t.Fatalf("unexpected xG per 90: %v", got.ExpectedGoals90)
	}
}

func TestFold_ZeroMinutesYieldsZeroRates(t *testing.T) {
	t.Parallel()

	got := Fold([]gameweek.PlayerRecord{
		{PlayerID: 4, Gameweek: 1, Minutes: 0, TotalPoints: 0},
		{PlayerID: 4, Gameweek: 2, Minutes: 0, TotalPoints: 0},
	})
	if got.Goals90 != 0 || got.Points90 != 0 || got.ExpectedGoals90 != 0 {
		t.Fatalf("expected zero per-90 rates, got %+v", got)
	}
	if got.PointsPerGame != 0 || got.FormScore != 0 {
		t.Fatalf("expected zero per-game and form, got ppg=%v form=%v", got.PointsPerGame, got.FormScore)
	}
}

func TestFold_RepresentativeIsMostRecentRecord(t *testing.T) {
	t.Parallel()

	records := []gameweek.PlayerRecord{
		{PlayerID: 5, TeamName: "Chelsea", Position: gameweek.PositionMidfielder, Gameweek: 4, Cost: 80, Ownership: 10},
		{PlayerID: 5, TeamName: "Brighton", Position: gameweek.PositionMidfielder, Gameweek: 2, Cost: 70, Ownership: 4},
	}

	got := Fold(records)
	if got.TeamName != "Chelsea" || got.Cost != 80 || got.Ownership != 10 || got.LastGameweek != 4 {
		t.Fatalf("unexpected representative fields: %+v", got)
	}
}

func TestFold_RepresentativeTieIsOrderIndependent(t *testing.T) {
	t.Parallel()

	a := gameweek.PlayerRecord{PlayerID: 6, TeamName: "Fulham", Gameweek: 3, Minutes: 90, Cost: 50}
	b := gameweek.PlayerRecord{PlayerID: 6, TeamName: "Everton", Gameweek: 3, Minutes: 90, Cost: 55}

	first := Fold([]gameweek.PlayerRecord{a, b})
	second := Fold([]gameweek.PlayerRecord{b, a})
	if first.TeamName != second.TeamName || first.Cost != second.Cost {
		t.Fatalf("representative depends on order: %q/%d vs %q/%d", first.TeamName, first.Cost, second.TeamName, second.Cost)
	}
}

func TestFold_ValueScore(t *testing.T) {
	t.Parallel()

	got := Fold([]gameweek.PlayerRecord{{PlayerID: 8, Gameweek: 1, Minutes: 90, TotalPoints: 50, Cost: 100}})
	if got.ValueScore != 5 {
		t.Fatalf("expected value score 5, got %v", got.ValueScore)
	}

	free := Fold([]gameweek.PlayerRecord{{PlayerID: 8, Gameweek: 1, Minutes: 90, TotalPoints: 50}})
	if free.ValueScore != 0 {
		t.Fatalf("expected value score 0 for zero cost, got %v", free.ValueScore)
	}
}

func TestAggregateRecords_Errors(t *testing.T) {
	t.Parallel()

	if _, err := AggregateRecords(nil); !errors.Is(err, gameweek.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	_, err := AggregateRecords([]gameweek.PlayerRecord{{Gameweek: 1, Minutes: 90}})
	if !errors.Is(err, gameweek.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
}

func TestAggregateSnapshot_Idempotent(t *testing.T) {
	t.Parallel()

	records := []gameweek.PlayerRecord{
		{PlayerID: 3, TeamName: "Spurs", Gameweek: 1, Minutes: 90, TotalPoints: 6},
		{PlayerID: 1, TeamName: "Leeds", Gameweek: 1, Minutes: 90, TotalPoints: 2},
		{PlayerID: 2, TeamName: "Wolves", Gameweek: 1, Minutes: 60, TotalPoints: 3},
		{PlayerID: 1, TeamName: "Leeds", Gameweek: 2, Minutes: 0, TotalPoints: 0},
	}
	snap, err := gameweek.NewSnapshot(records)
	if err != nil {
		t.Fatalf("new snapshot: %v", err)
	}

	first := AggregateSnapshot(snap)
	second := AggregateSnapshot(snap)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("aggregation is not deterministic")
	}
	for i := 1; i < len(first); i++ {
		if first[i-1].PlayerID >= first[i].PlayerID {
			t.Fatalf("aggregates not ordered by player id: %d then %d", first[i-1].PlayerID, first[i].PlayerID)
		}
	}
}

func TestExport_RoundingAndSentinels(t *testing.T) {
	t.Parallel()

	agg := Fold([]gameweek.PlayerRecord{
		{PlayerID: 10, Gameweek: 1, Minutes: 90, ExpectedGoals: 0.123, ExpectedAssists: 0.456, Cost: 65},
	})
	out := agg.Export()
	if out.ExpectedGoals != 0.12 || out.ExpectedAssists != 0.46 {
		t.Fatalf("expected two decimal rounding, got xG=%v xA=%v", out.ExpectedGoals, out.ExpectedAssists)
	}
	if out.TeamName != gameweek.UnknownLabel || out.WebName != gameweek.UnknownLabel {
		t.Fatalf("expected sentinels, got team=%q name=%q", out.TeamName, out.WebName)
	}
	if out.NowCost != 6.5 {
		t.Fatalf("expected now_cost 6.5, got %v", out.NowCost)
	}
	if out.PositionName != gameweek.UnknownLabel {
		t.Fatalf("expected unknown position name, got %q", out.PositionName)
	}
}

func TestAggregateByTeam_SplitsTransferStints(t *testing.T) {
	t.Parallel()

	records := []gameweek.PlayerRecord{
		{PlayerID: 1, TeamName: "Chelsea", Gameweek: 1, Minutes: 90, TotalPoints: 10},
		{PlayerID: 1, TeamName: "Chelsea", Gameweek: 2, Minutes: 90, TotalPoints: 10},
		{PlayerID: 1, TeamName: "Arsenal", Gameweek: 3, Minutes: 90, TotalPoints: 5},
		{PlayerID: 2, TeamName: "Arsenal", Gameweek: 1, Minutes: 90, TotalPoints: 3},
	}
	snap, err := gameweek.NewSnapshot(records)
	if err != nil {
		t.Fatalf("new snapshot: %v", err)
	}

	got := AggregateByTeam(snap)
	if len(got) != 3 {
		t.Fatalf("expected 3 stints, got %d", len(got))
	}
	want := []struct {
		team   string
		id     int64
		points int
	}{
		{"Arsenal", 1, 5},
		{"Arsenal", 2, 3},
		{"Chelsea", 1, 20},
	}
	for i, w := range want {
		if got[i].TeamName != w.team || got[i].PlayerID != w.id || got[i].TotalPoints != w.points {
			t.Fatalf("stint %d: expected %s/%d/%d, got %s/%d/%d", i, w.team, w.id, w.points, got[i].TeamName, got[i].PlayerID, got[i].TotalPoints)
		}
	}
}
