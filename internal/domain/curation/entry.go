package curation

import (
	"github.com/riskibarqy/fpl-analyst/internal/domain/season"
)

// PlayerRef carries the identity fields shared by every curated entry.
type PlayerRef struct {
	PlayerID     int64  `json:"id"`
	WebName      string `json:"web_name"`
	TeamName     string `json:"team_name"`
	PositionName string `json:"position_name"`
}

func refOf(a season.Aggregate) PlayerRef {
	p := a.Export()
	return PlayerRef{
		PlayerID:     p.ID,
		WebName:      p.WebName,
		TeamName:     p.TeamName,
		PositionName: p.PositionName,
	}
}

type GoalLeader struct {
	PlayerRef
	Goals        int     `json:"goals"`
	GamesPlayed  int     `json:"games_played"`
	GoalsPerGame float64 `json:"goals_per_game"`
	TotalPoints  int     `json:"total_points"`
	NowCost      float64 `json:"now_cost"`
}

type ValuePlayer struct {
	PlayerRef
	PointsPerMillion  float64 `json:"points_per_million"`
	TotalPoints       int     `json:"total_points"`
	NowCost           float64 `json:"now_cost"`
	SelectedByPercent float64 `json:"selected_by_percent"`
}

type SeasonStar struct {
	PlayerRef
	TotalPoints   int     `json:"total_points"`
	PointsPerGame float64 `json:"points_per_game"`
	GamesPlayed   int     `json:"games_played"`
	FormScore     float64 `json:"form_score"`
	NowCost       float64 `json:"now_cost"`
}

type HiddenGem struct {
	PlayerRef
	TotalPoints         int     `json:"total_points"`
	SelectedByPercent   float64 `json:"selected_by_percent"`
	NowCost             float64 `json:"now_cost"`
	ExpectedGoals       float64 `json:"expected_goals"`
	ExpectedAssists     float64 `json:"expected_assists"`
	ExpectedCleanSheets float64 `json:"expected_clean_sheets"`
	UnderlyingScore     float64 `json:"underlying_score"`
}

type Differential struct {
	PlayerRef
	TotalPoints       int     `json:"total_points"`
	PointsPerGame     float64 `json:"points_per_game"`
	SelectedByPercent float64 `json:"selected_by_percent"`
	NowCost           float64 `json:"now_cost"`
}

type AssistProvider struct {
	PlayerRef
	Assists         int     `json:"assists"`
	ExpectedAssists float64 `json:"expected_assists"`
	AssistsPer90    float64 `json:"assists_per_90"`
	KeyPasses       int     `json:"key_passes"`
	TotalPoints     int     `json:"total_points"`
	NowCost         float64 `json:"now_cost"`
}

type DefensiveLeader struct {
	PlayerRef
	CleanSheets         int     `json:"clean_sheets"`
	GoalsConceded       int     `json:"goals_conceded"`
	ExpectedCleanSheets float64 `json:"expected_clean_sheets"`
	GamesPlayed         int     `json:"games_played"`
	TotalPoints         int     `json:"total_points"`
	NowCost             float64 `json:"now_cost"`
}

// FinishingDelta compares actual goals with expected goals.
type FinishingDelta struct {
	PlayerRef
	Goals         int     `json:"goals"`
	ExpectedGoals float64 `json:"expected_goals"`
	Delta         float64 `json:"delta"`
	TotalPoints   int     `json:"total_points"`
}

type SustainableScorer struct {
	PlayerRef
	Goals         int     `json:"goals"`
	ExpectedGoals float64 `json:"expected_goals"`
	GoalsPer90    float64 `json:"goals_per_90"`
	TotalPoints   int     `json:"total_points"`
	NowCost       float64 `json:"now_cost"`
}
