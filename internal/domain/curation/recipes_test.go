package curation

import (
	"errors"
	"testing"

	"github.com/riskibarqy/fpl-analyst/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-analyst/internal/domain/season"
)

func TestHiddenGems_UnderlyingScore(t *testing.T) {
	t.Parallel()

	agg := season.Aggregate{
		PlayerID:            7,
		WebName:             "Gem",
		TeamName:            "Brentford",
		Position:            gameweek.PositionMidfielder,
		TotalPoints:         45,
		Ownership:           2,
		GamesPlayed:         5,
		ExpectedGoals:       3,
		ExpectedAssists:     2,
		ExpectedCleanSheets: 1,
		KeyPasses:           10,
		Shots:               8,
		Minutes:             400,
	}

	got := HiddenGems().Select([]season.Aggregate{agg})
	if len(got) != 1 {
		t.Fatalf("expected 1 hidden gem, got %d", len(got))
	}
	if got[0].UnderlyingScore != 3.09 {
		t.Fatalf("expected underlying score 3.09, got %v", got[0].UnderlyingScore)
	}
	if got[0].PositionName != "Midfielder" {
		t.Fatalf("expected position name Midfielder, got %q", got[0].PositionName)
	}
}

func TestHiddenGems_Filter(t *testing.T) {
	t.Parallel()

	base := season.Aggregate{PlayerID: 1, TotalPoints: 45, Ownership: 2, GamesPlayed: 5}
	cases := []struct {
		name string
		edit func(*season.Aggregate)
		want int
	}{
		{name: "qualifies", edit: func(*season.Aggregate) {}, want: 1},
		{name: "points below range", edit: func(a *season.Aggregate) { a.TotalPoints = 29 }, want: 0},
		{name: "points above range", edit: func(a *season.Aggregate) { a.TotalPoints = 61 }, want: 0},
		{name: "points at bounds", edit: func(a *season.Aggregate) { a.TotalPoints = 60 }, want: 1},
		{name: "zero ownership", edit: func(a *season.Aggregate) { a.Ownership = 0 }, want: 0},
		{name: "ownership at five", edit: func(a *season.Aggregate) { a.Ownership = 5 }, want: 0},
		{name: "too few games", edit: func(a *season.Aggregate) { a.GamesPlayed = 2 }, want: 0},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			agg := base
			tc.edit(&agg)
			if got := len(HiddenGems().Select([]season.Aggregate{agg})); got != tc.want {
				t.Fatalf("expected %d entries, got %d", tc.want, got)
			}
		})
	}
}

func TestDifferentialPicks_NoLowOwnershipIsEmpty(t *testing.T) {
	t.Parallel()

	aggs := []season.Aggregate{
		{PlayerID: 1, TotalPoints: 90, Ownership: 25, GamesPlayed: 10},
		{PlayerID: 2, TotalPoints: 70, Ownership: 3, GamesPlayed: 10},
		{PlayerID: 3, TotalPoints: 50, Ownership: 12.5, GamesPlayed: 8},
	}

	got := DifferentialPicks().Select(aggs)
	if got == nil {
		t.Fatalf("expected empty non-nil list")
	}
	if len(got) != 0 {
		t.Fatalf("expected no differentials, got %d", len(got))
	}
}

func TestSelect_StableTiesAndCap(t *testing.T) {
	t.Parallel()

	aggs := make([]season.Aggregate, 0, 14)
	for i := 1; i <= 14; i++ {
		aggs = append(aggs, season.Aggregate{PlayerID: int64(i), Goals: 1 + i%2})
	}

	got := GoalLeaders().Select(aggs)
	if len(got) != 10 {
		t.Fatalf("expected cap of 10, got %d", len(got))
	}
	// players with 2 goals are the odd ids, in input order, then the even ids.
	want := []int64{1, 3, 5, 7, 9, 11, 13, 2, 4, 6}
	for i, entry := range got {
		if entry.PlayerID != want[i] {
			t.Fatalf("position %d: expected player %d, got %d", i, want[i], entry.PlayerID)
		}
	}
}

func TestSelect_Ascending(t *testing.T) {
	t.Parallel()

	recipe := Recipe[int64]{
		Score:   func(a season.Aggregate) float64 { return float64(a.TotalPoints) },
		Order:   Ascending,
		Project: func(a season.Aggregate, _ float64) int64 { return a.PlayerID },
	}
	got := recipe.Select([]season.Aggregate{
		{PlayerID: 1, TotalPoints: 30},
		{PlayerID: 2, TotalPoints: 10},
		{PlayerID: 3, TotalPoints: 20},
	})
	want := []int64{2, 3, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestValuePlayers(t *testing.T) {
	t.Parallel()

	aggs := []season.Aggregate{
		{PlayerID: 1, TotalPoints: 19, ValueScore: 9},
		{PlayerID: 2, TotalPoints: 40, ValueScore: 8},
		{PlayerID: 3, TotalPoints: 60, ValueScore: 10},
		{PlayerID: 4, TotalPoints: 60, ValueScore: 0},
	}

	got := ValuePlayers().Select(aggs)
	if len(got) != 2 {
		t.Fatalf("expected 2 value players, got %d", len(got))
	}
	if got[0].PlayerID != 3 || got[1].PlayerID != 2 {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestFinishingRecipes(t *testing.T) {
	t.Parallel()

	aggs := []season.Aggregate{
		{PlayerID: 1, Goals: 8, ExpectedGoals: 4.5},
		{PlayerID: 2, Goals: 1, ExpectedGoals: 6.25},
		{PlayerID: 3, Goals: 5, ExpectedGoals: 5},
	}

	over := Overperformers().Select(aggs)
	if over[0].PlayerID != 1 || over[0].Delta != 3.5 {
		t.Fatalf("unexpected overperformer: %+v", over[0])
	}

	under := Underperformers().Select(aggs)
	if under[0].PlayerID != 2 || under[0].Delta != 5.25 {
		t.Fatalf("unexpected underperformer: %+v", under[0])
	}

	sustainable := SustainableScorers().Select(aggs)
	if len(sustainable) != 1 || sustainable[0].PlayerID != 3 {
		t.Fatalf("expected only player 3 to be sustainable, got %+v", sustainable)
	}
}

func TestDefensiveLeaders_PositionFilter(t *testing.T) {
	t.Parallel()

	aggs := []season.Aggregate{
		{PlayerID: 1, Position: gameweek.PositionForward, CleanSheets: 9, GamesPlayed: 10},
		{PlayerID: 2, Position: gameweek.PositionDefender, CleanSheets: 4, GamesPlayed: 10},
		{PlayerID: 3, Position: gameweek.PositionGoalkeeper, CleanSheets: 6, GamesPlayed: 10},
		{PlayerID: 4, Position: gameweek.PositionGoalkeeper, CleanSheets: 2, GamesPlayed: 2},
	}

	got := DefensiveLeaders().Select(aggs)
	if len(got) != 2 || got[0].PlayerID != 3 || got[1].PlayerID != 2 {
		t.Fatalf("unexpected defensive leaders: %+v", got)
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()
	names := reg.Names()
	if len(names) != 10 {
		t.Fatalf("expected 10 recipes, got %d", len(names))
	}
	if names[0] != RecipeGoalLeaders {
		t.Fatalf("expected registration order to start with %s, got %s", RecipeGoalLeaders, names[0])
	}
	if _, ok := reg.Get(RecipeHiddenGems); !ok {
		t.Fatalf("expected hidden gems to be registered")
	}
	if err := reg.Register(SeasonStars().Runner()); !errors.Is(err, ErrDuplicateRecipe) {
		t.Fatalf("expected duplicate recipe error, got %v", err)
	}
}

func TestRunSafely_RecoversPanic(t *testing.T) {
	t.Parallel()

	broken := Recipe[int]{
		Name:    "broken",
		Score:   func(season.Aggregate) float64 { panic("boom") },
		Project: func(season.Aggregate, float64) int { return 0 },
	}

	list, err := RunSafely(broken.Runner(), []season.Aggregate{{PlayerID: 1}})
	if err == nil {
		t.Fatalf("expected error from panicking recipe")
	}
	if list.Name != "broken" || list.Count != 0 {
		t.Fatalf("expected empty list named broken, got %+v", list)
	}

	ok, err := RunSafely(SeasonStars().Runner(), []season.Aggregate{{PlayerID: 1, TotalPoints: 3}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok.Count != 1 {
		t.Fatalf("expected 1 entry, got %d", ok.Count)
	}
}
