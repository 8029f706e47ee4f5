package teamstrength

import (
	"strings"

	"github.com/riskibarqy/fpl-analyst/internal/domain/season"
)

// DefenseMetric selects the sort key used for the defense rank.
type DefenseMetric string

const (
	// DefenseByPoints ranks defense on total points, matching the overall rank.
	DefenseByPoints DefenseMetric = "points"
	// DefenseByGoalsConceded ranks defense on fewest goals conceded.
	DefenseByGoalsConceded DefenseMetric = "goals_conceded"
)

func ParseDefenseMetric(raw string) (DefenseMetric, bool) {
	switch DefenseMetric(strings.ToLower(strings.TrimSpace(raw))) {
	case DefenseByPoints, "":
		return DefenseByPoints, true
	case DefenseByGoalsConceded:
		return DefenseByGoalsConceded, true
	default:
		return "", false
	}
}

// Team is the aggregate of every player record of one team plus its dense
// ranks relative to the other teams of the same run.
type Team struct {
	Name          string
	Records       int
	Players       int
	Goals         int
	Assists       int
	Points        int
	CleanSheets   int
	GoalsConceded int
	Minutes       int
	AvgCost       float64
	AvgOwnership  float64

	AttackRank  int
	DefenseRank int
	OverallRank int
}

// Code is the three letter short code derived from the team name.
func (t Team) Code() string {
	name := []rune(strings.ToUpper(strings.TrimSpace(t.Name)))
	if len(name) <= 3 {
		return string(name)
	}
	return string(name[:3])
}

// TeamExport is the serialized shape of a ranked team.
type TeamExport struct {
	Name          string  `json:"name"`
	Code          string  `json:"code"`
	AttackRank    int     `json:"attack_rank"`
	DefenseRank   int     `json:"defense_rank"`
	OverallRank   int     `json:"overall_rank"`
	PlayerRecords int     `json:"player_records"`
	Players       int     `json:"players"`
	TotalGoals    int     `json:"total_goals"`
	TotalAssists  int     `json:"total_assists"`
	TotalPoints   int     `json:"total_points"`
	CleanSheets   int     `json:"clean_sheets"`
	GoalsConceded int     `json:"goals_conceded"`
	AvgCost       float64 `json:"avg_cost"`
	AvgOwnership  float64 `json:"avg_ownership"`
}

func (t Team) Export() TeamExport {
	return TeamExport{
		Name:          t.Name,
		Code:          t.Code(),
		AttackRank:    t.AttackRank,
		DefenseRank:   t.DefenseRank,
		OverallRank:   t.OverallRank,
		PlayerRecords: t.Records,
		Players:       t.Players,
		TotalGoals:    t.Goals,
		TotalAssists:  t.Assists,
		TotalPoints:   t.Points,
		CleanSheets:   t.CleanSheets,
		GoalsConceded: t.GoalsConceded,
		AvgCost:       season.Round2(t.AvgCost / 10),
		AvgOwnership:  season.Round2(t.AvgOwnership),
	}
}
