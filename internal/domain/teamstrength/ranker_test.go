package teamstrength

import (
	"reflect"
	"sort"
	"testing"
	"unicode/utf8"

	"github.com/riskibarqy/fpl-analyst/internal/domain/gameweek"
)

func TestDenseRanks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		keys []int
		want []int
	}{
		{name: "empty", keys: nil, want: []int{}},
		{name: "distinct", keys: []int{10, 30, 20}, want: []int{3, 1, 2}},
		{name: "ties share rank without gaps", keys: []int{30, 30, 20, 10, 10, 5}, want: []int{1, 1, 2, 3, 3, 4}},
		{name: "all equal", keys: []int{4, 4, 4}, want: []int{1, 1, 1}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := DenseRanks(tc.keys)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("DenseRanks(%v)=%v want %v", tc.keys, got, tc.want)
			}
		})
	}
}

func TestDenseRanks_NoGapsProperty(t *testing.T) {
	t.Parallel()

	keys := []float64{1.5, 9, 9, 3, 1.5, 7, 7, 7, 0}
	ranks := DenseRanks(keys)

	distinct := make(map[float64]struct{})
	for _, k := range keys {
		distinct[k] = struct{}{}
	}
	seen := make(map[int]struct{})
	for _, r := range ranks {
		seen[r] = struct{}{}
	}
	got := make([]int, 0, len(seen))
	for r := range seen {
		got = append(got, r)
	}
	sort.Ints(got)
	for i, r := range got {
		if r != i+1 {
			t.Fatalf("rank set has a gap: %v", got)
		}
	}
	if len(got) != len(distinct) {
		t.Fatalf("expected %d distinct ranks, got %d", len(distinct), len(got))
	}
}

func TestDenseRanksAscending(t *testing.T) {
	t.Parallel()

	got := DenseRanksAscending([]int{5, 2, 2, 9})
	want := []int{2, 1, 1, 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func teamSnapshot(t *testing.T) gameweek.Snapshot {
	t.Helper()

	snap, err := gameweek.NewSnapshot([]gameweek.PlayerRecord{
		{PlayerID: 1, TeamName: "Arsenal", Gameweek: 1, Goals: 2, TotalPoints: 12, GoalsConceded: 1, Cost: 100, Ownership: 30},
		{PlayerID: 2, TeamName: "Arsenal", Gameweek: 1, Goals: 1, TotalPoints: 8, GoalsConceded: 1, Cost: 50, Ownership: 10},
		{PlayerID: 3, TeamName: "Chelsea", Gameweek: 1, Goals: 3, TotalPoints: 20, GoalsConceded: 3},
		{PlayerID: 4, TeamName: "Everton", Gameweek: 1, Goals: 1, TotalPoints: 5, GoalsConceded: 0},
		{PlayerID: 5, TeamName: "", Gameweek: 1, Goals: 0, TotalPoints: 1},
	})
	if err != nil {
		t.Fatalf("new snapshot: %v", err)
	}
	return snap
}

func TestRanker_Rank(t *testing.T) {
	t.Parallel()

	teams := NewRanker(DefenseByPoints).Rank(teamSnapshot(t))
	if len(teams) != 4 {
		t.Fatalf("expected 4 teams, got %d", len(teams))
	}

	byName := make(map[string]Team, len(teams))
	for _, team := range teams {
		if _, dup := byName[team.Name]; dup {
			t.Fatalf("team %q appears twice", team.Name)
		}
		byName[team.Name] = team
	}

	arsenal := byName["Arsenal"]
	chelsea := byName["Chelsea"]
	if arsenal.AttackRank != 1 || chelsea.AttackRank != 1 {
		t.Fatalf("expected Arsenal and Chelsea tied on attack, got %d and %d", arsenal.AttackRank, chelsea.AttackRank)
	}
	if byName["Everton"].AttackRank != 2 {
		t.Fatalf("expected dense attack rank 2 for Everton, got %d", byName["Everton"].AttackRank)
	}
	if arsenal.OverallRank != 1 || chelsea.OverallRank != 1 {
		t.Fatalf("expected tie on overall rank, got %d and %d", arsenal.OverallRank, chelsea.OverallRank)
	}
	if arsenal.DefenseRank != arsenal.OverallRank || byName["Everton"].DefenseRank != byName["Everton"].OverallRank {
		t.Fatalf("defense rank should follow points")
	}
	if _, ok := byName[gameweek.UnknownLabel]; !ok {
		t.Fatalf("expected team without name grouped under %q", gameweek.UnknownLabel)
	}
	if arsenal.AvgCost != 75 || arsenal.AvgOwnership != 20 || arsenal.Players != 2 {
		t.Fatalf("unexpected arsenal aggregate: %+v", arsenal)
	}

	if teams[0].OverallRank != 1 || teams[0].Name != "Arsenal" || teams[1].Name != "Chelsea" {
		t.Fatalf("unexpected order: %s, %s", teams[0].Name, teams[1].Name)
	}
}

func TestRanker_DefenseByGoalsConceded(t *testing.T) {
	t.Parallel()

	teams := NewRanker(DefenseByGoalsConceded).Rank(teamSnapshot(t))
	defense := Ordered(teams, ByDefense)
	if defense[0].Name != "Everton" && defense[0].Name != gameweek.UnknownLabel {
		t.Fatalf("expected a clean-sheet team first, got %s", defense[0].Name)
	}
	for _, team := range teams {
		if team.Name == "Chelsea" && team.DefenseRank != 3 {
			t.Fatalf("expected Chelsea defense rank 3, got %d", team.DefenseRank)
		}
	}
}

func TestTop(t *testing.T) {
	t.Parallel()

	teams := NewRanker(DefenseByPoints).Rank(teamSnapshot(t))
	top := Top(teams, ByAttack, 2)
	if len(top) != 2 || top[0].Name != "Arsenal" || top[1].Name != "Chelsea" {
		t.Fatalf("unexpected top attack: %+v", top)
	}
	if all := Top(teams, ByAttack, 10); len(all) != len(teams) {
		t.Fatalf("expected all teams when k exceeds count")
	}
}

func TestParseDefenseMetric(t *testing.T) {
	t.Parallel()

	if m, ok := ParseDefenseMetric(""); !ok || m != DefenseByPoints {
		t.Fatalf("expected default points metric")
	}
	if m, ok := ParseDefenseMetric("GOALS_CONCEDED"); !ok || m != DefenseByGoalsConceded {
		t.Fatalf("expected goals_conceded metric")
	}
	if _, ok := ParseDefenseMetric("xg"); ok {
		t.Fatalf("expected unknown metric to be rejected")
	}
}

func TestTeamCode(t *testing.T) {
	t.Parallel()

	if got := (Team{Name: "Liverpool"}).Code(); got != "LIV" {
		t.Fatalf("expected LIV, got %s", got)
	}
	if got := (Team{Name: "Ox"}).Code(); got != "OX" {
		t.Fatalf("expected OX, got %s", got)
	}
	if got := (Team{Name: "Málaga"}).Code(); got != "MÁL" || !utf8.ValidString(got) {
		t.Fatalf("expected MÁL, got %q", got)
	}
}
