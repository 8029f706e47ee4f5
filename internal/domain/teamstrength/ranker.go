package teamstrength

import (
	"slices"
	"strings"

	"github.com/riskibarqy/fpl-analyst/internal/domain/gameweek"
)

// Ranker folds team records and assigns attack, defense and overall ranks.
type Ranker struct {
	defense DefenseMetric
}

func NewRanker(defense DefenseMetric) *Ranker {
	if defense == "" {
		defense = DefenseByPoints
	}
	return &Ranker{defense: defense}
}

// Rank returns one Team per distinct team name in the snapshot, ordered by
// overall rank and then name.
func (r *Ranker) Rank(snapshot gameweek.Snapshot) []Team {
	groups := snapshot.ByTeam()
	teams := make([]Team, 0, len(groups))
	for name, records := range groups {
		teams = append(teams, foldTeam(name, records))
	}
	slices.SortFunc(teams, func(a, b Team) int { return strings.Compare(a.Name, b.Name) })

	goals := make([]int, len(teams))
	points := make([]int, len(teams))
	conceded := make([]int, len(teams))
	for i, t := range teams {
		goals[i] = t.Goals
		points[i] = t.Points
		conceded[i] = t.GoalsConceded
	}

	attack := DenseRanks(goals)
	overall := DenseRanks(points)
	defense := overall
	if r.defense == DefenseByGoalsConceded {
		defense = DenseRanksAscending(conceded)
	}

	for i := range teams {
		teams[i].AttackRank = attack[i]
		teams[i].DefenseRank = defense[i]
		teams[i].OverallRank = overall[i]
	}

	SortBy(teams, ByOverall)
	return teams
}

func foldTeam(name string, records []gameweek.PlayerRecord) Team {
	team := Team{Name: name, Records: len(records)}
	players := make(map[int64]struct{})
	var cost, ownership float64
	for _, rec := range records {
		team.Goals += rec.Goals
		team.Assists += rec.Assists
		team.Points += rec.TotalPoints
		team.CleanSheets += rec.CleanSheets
		team.GoalsConceded += rec.GoalsConceded
		team.Minutes += rec.Minutes
		cost += float64(rec.Cost)
		ownership += rec.Ownership
		players[rec.PlayerID] = struct{}{}
	}
	team.Players = len(players)
	if team.Records > 0 {
		team.AvgCost = cost / float64(team.Records)
		team.AvgOwnership = ownership / float64(team.Records)
	}
	return team
}

// View selects which rank orders a ranking list.
type View string

const (
	ByAttack  View = "attack"
	ByDefense View = "defense"
	ByOverall View = "overall"
)

func (t Team) rankFor(view View) int {
	switch view {
	case ByAttack:
		return t.AttackRank
	case ByDefense:
		return t.DefenseRank
	default:
		return t.OverallRank
	}
}

// SortBy orders teams in place by the view's rank, then by name.
func SortBy(teams []Team, view View) {
	slices.SortStableFunc(teams, func(a, b Team) int {
		if ra, rb := a.rankFor(view), b.rankFor(view); ra != rb {
			return ra - rb
		}
		return strings.Compare(a.Name, b.Name)
	})
}

// Ordered returns a copy of teams sorted for the view.
func Ordered(teams []Team, view View) []Team {
	out := slices.Clone(teams)
	SortBy(out, view)
	return out
}

// Top returns the first k teams of the view.
func Top(teams []Team, view View, k int) []Team {
	out := Ordered(teams, view)
	if k >= 0 && len(out) > k {
		out = out[:k]
	}
	return out
}
