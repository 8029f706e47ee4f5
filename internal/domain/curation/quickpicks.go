package curation

import (
	"slices"

	"github.com/riskibarqy/fpl-analyst/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-analyst/internal/domain/season"
	"github.com/riskibarqy/fpl-analyst/internal/domain/teamstrength"
)

const (
	AttackingTeams  = 5
	DefensiveTeams  = 4
	PlayersPerTeam  = 3
	DifficultyEasy  = "easy"
	DifficultyMid   = "moderate"
	DifficultyHard  = "hard"
	defenseStrength = 100.0
)

type AttackingPlayer struct {
	Name        string  `json:"name"`
	Position    string  `json:"position"`
	Price       float64 `json:"price"`
	GoalsPG     float64 `json:"goals_pg"`
	AssistsPG   float64 `json:"assists_pg"`
	PointsPG    float64 `json:"points_pg"`
	Ownership   float64 `json:"ownership"`
	Form        float64 `json:"form"`
	TotalPoints int     `json:"total_points"`
}

type AttackingTeam struct {
	Team           string            `json:"team"`
	TeamCode       string            `json:"teamCode"`
	AttackRank     int               `json:"attackRank"`
	AttackStrength float64           `json:"attackStrength"`
	Difficulty     string            `json:"difficulty"`
	Players        []AttackingPlayer `json:"players"`
}

type DefensivePlayer struct {
	Name        string  `json:"name"`
	Position    string  `json:"position"`
	Price       float64 `json:"price"`
	CSRate      float64 `json:"cs_rate"`
	PointsPG    float64 `json:"points_pg"`
	Ownership   float64 `json:"ownership"`
	CleanSheets int     `json:"clean_sheets"`
	TotalPoints int     `json:"total_points"`
}

type DefensiveTeam struct {
	Team            string            `json:"team"`
	TeamCode        string            `json:"teamCode"`
	DefenseRank     int               `json:"defenseRank"`
	DefenseStrength float64           `json:"defenseStrength"`
	Difficulty      string            `json:"difficulty"`
	Players         []DefensivePlayer `json:"players"`
}

// QuickPicks is the combined attacking and defensive selection.
type QuickPicks struct {
	Attacking []AttackingTeam `json:"attacking"`
	Defensive []DefensiveTeam `json:"defensive"`
}

func AttackDifficulty(goals int) string {
	switch {
	case goals > 10:
		return DifficultyEasy
	case goals > 8:
		return DifficultyMid
	default:
		return DifficultyHard
	}
}

func DefenseDifficulty(points int) string {
	switch {
	case points > 300:
		return DifficultyEasy
	case points > 250:
		return DifficultyMid
	default:
		return DifficultyHard
	}
}

// AttackingPicks takes the top teams by attack rank and, for each, its best
// midfielders and forwards by total points. Teams without eligible players
// are skipped and the published rank counts only included teams.
func AttackingPicks(teams []teamstrength.Team, aggs []season.Aggregate) []AttackingTeam {
	out := make([]AttackingTeam, 0, AttackingTeams)
	for _, team := range teamstrength.Top(teams, teamstrength.ByAttack, AttackingTeams) {
		players := topOfTeam(aggs, team.Name, gameweek.PositionMidfielder, gameweek.PositionForward)
		if len(players) == 0 {
			continue
		}
		picks := make([]AttackingPlayer, 0, len(players))
		for _, a := range players {
			picks = append(picks, AttackingPlayer{
				Name:        orUnknown(a.WebName),
				Position:    string(a.Position),
				Price:       a.Price(),
				GoalsPG:     season.Round2(a.PerGame(float64(a.Goals))),
				AssistsPG:   season.Round2(a.PerGame(float64(a.Assists))),
				PointsPG:    season.Round2(a.PerGame(float64(a.TotalPoints))),
				Ownership:   season.Round2(a.Ownership),
				Form:        a.FormScore,
				TotalPoints: a.TotalPoints,
			})
		}
		out = append(out, AttackingTeam{
			Team:           team.Name,
			TeamCode:       team.Code(),
			AttackRank:     len(out) + 1,
			AttackStrength: float64(team.Goals),
			Difficulty:     AttackDifficulty(team.Goals),
			Players:        picks,
		})
	}
	return out
}

// DefensivePicks mirrors AttackingPicks for goalkeepers and defenders over
// the top teams by defense rank.
func DefensivePicks(teams []teamstrength.Team, aggs []season.Aggregate) []DefensiveTeam {
	out := make([]DefensiveTeam, 0, DefensiveTeams)
	for _, team := range teamstrength.Top(teams, teamstrength.ByDefense, DefensiveTeams) {
		players := topOfTeam(aggs, team.Name, gameweek.PositionGoalkeeper, gameweek.PositionDefender)
		if len(players) == 0 {
			continue
		}
		picks := make([]DefensivePlayer, 0, len(players))
		for _, a := range players {
			picks = append(picks, DefensivePlayer{
				Name:        orUnknown(a.WebName),
				Position:    string(a.Position),
				Price:       a.Price(),
				CSRate:      season.Round2(a.PerGame(float64(a.CleanSheets))),
				PointsPG:    season.Round2(a.PerGame(float64(a.TotalPoints))),
				Ownership:   season.Round2(a.Ownership),
				CleanSheets: a.CleanSheets,
				TotalPoints: a.TotalPoints,
			})
		}
		out = append(out, DefensiveTeam{
			Team:            team.Name,
			TeamCode:        team.Code(),
			DefenseRank:     len(out) + 1,
			DefenseStrength: season.Round2(float64(team.Points) / defenseStrength),
			Difficulty:      DefenseDifficulty(team.Points),
			Players:         picks,
		})
	}
	return out
}

// BuildQuickPicks expects aggregates folded per team stint (see
// season.AggregateByTeam) so transferred players count only the points they
// scored for each team.
func BuildQuickPicks(teams []teamstrength.Team, aggs []season.Aggregate) QuickPicks {
	return QuickPicks{
		Attacking: AttackingPicks(teams, aggs),
		Defensive: DefensivePicks(teams, aggs),
	}
}

func topOfTeam(aggs []season.Aggregate, team string, positions ...gameweek.Position) []season.Aggregate {
	recipe := Recipe[season.Aggregate]{
		Filter: func(a season.Aggregate) bool {
			return orUnknown(a.TeamName) == team && slices.Contains(positions, a.Position)
		},
		Score:   func(a season.Aggregate) float64 { return float64(a.TotalPoints) },
		Limit:   PlayersPerTeam,
		Project: func(a season.Aggregate, _ float64) season.Aggregate { return a },
	}
	return recipe.Select(aggs)
}

func orUnknown(v string) string {
	if v == "" {
		return gameweek.UnknownLabel
	}
	return v
}
