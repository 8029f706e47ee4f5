package season

import "github.com/riskibarqy/fpl-analyst/internal/domain/gameweek"

// Aggregate is the season-level fold of every gameweek record of one player.
// Identity and scalar fields come from the representative (most recent)
// record; counting stats are sums over all records.
type Aggregate struct {
	PlayerID     int64
	WebName      string
	FullName     string
	TeamName     string
	Position     gameweek.Position
	Records      int
	LastGameweek int
	Cost         int
	Ownership    float64

	Minutes       int
	TotalPoints   int
	Goals         int
	Assists       int
	CleanSheets   int
	GoalsConceded int

	ExpectedGoals         float64
	ExpectedAssists       float64
	ExpectedCleanSheets   float64
	ExpectedGoalsConceded float64

	Shots         int
	ShotsOnTarget int
	KeyPasses     int
	Touches       int

	GamesPlayed    int
	PointsPerGame  float64
	GoalsPerGame   float64
	AssistsPerGame float64
	ValueScore     float64
	FormScore      float64

	Points90          float64
	Goals90           float64
	Assists90         float64
	ExpectedGoals90   float64
	ExpectedAssists90 float64
	Shots90           float64
	KeyPasses90       float64
}

// Price is the cost in whole currency units.
func (a Aggregate) Price() float64 {
	return float64(a.Cost) / 10
}

// Per90 normalises a season total to a 90 minute interval using this
// player's minutes.
func (a Aggregate) Per90(total float64) float64 {
	return Per90(total, a.Minutes)
}

// PerGame divides a season total by games played, floored at one game.
func (a Aggregate) PerGame(total float64) float64 {
	return PerGame(total, a.GamesPlayed)
}

// MinutesPerAppearance is the average share of 90 minutes per game played.
func (a Aggregate) MinutesPerAppearance() float64 {
	return float64(a.Minutes) / float64(max(a.GamesPlayed, 1)*90)
}

// PlayerExport is the serialized shape of an Aggregate.
type PlayerExport struct {
	ID                  int64   `json:"id"`
	WebName             string  `json:"web_name"`
	FullName            string  `json:"full_name"`
	TeamName            string  `json:"team_name"`
	Position            string  `json:"position"`
	PositionName        string  `json:"position_name"`
	NowCost             float64 `json:"now_cost"`
	SelectedByPercent   float64 `json:"selected_by_percent"`
	TotalPoints         int     `json:"total_points"`
	PointsPerGame       float64 `json:"points_per_game"`
	GamesPlayed         int     `json:"games_played"`
	Minutes             int     `json:"minutes"`
	Goals               int     `json:"goals"`
	Assists             int     `json:"assists"`
	CleanSheets         int     `json:"clean_sheets"`
	GoalsConceded       int     `json:"goals_conceded"`
	ExpectedGoals       float64 `json:"expected_goals"`
	ExpectedAssists     float64 `json:"expected_assists"`
	ExpectedCleanSheets float64 `json:"expected_clean_sheets"`
	Shots               int     `json:"shots"`
	KeyPasses           int     `json:"key_passes"`
	Goals90             float64 `json:"goals_per_90"`
	Assists90           float64 `json:"assists_per_90"`
	ExpectedGoals90     float64 `json:"expected_goals_per_90"`
	ExpectedAssists90   float64 `json:"expected_assists_per_90"`
	ValueScore          float64 `json:"value_score"`
	FormScore           float64 `json:"form_score"`
}

func (a Aggregate) Export() PlayerExport {
	return PlayerExport{
		ID:                  a.PlayerID,
		WebName:             orUnknown(a.WebName),
		FullName:            orUnknown(a.FullName),
		TeamName:            orUnknown(a.TeamName),
		Position:            string(a.Position),
		PositionName:        a.Position.Name(),
		NowCost:             a.Price(),
		SelectedByPercent:   Round2(a.Ownership),
		TotalPoints:         a.TotalPoints,
		PointsPerGame:       Round2(a.PointsPerGame),
		GamesPlayed:         a.GamesPlayed,
		Minutes:             a.Minutes,
		Goals:               a.Goals,
		Assists:             a.Assists,
		CleanSheets:         a.CleanSheets,
		GoalsConceded:       a.GoalsConceded,
		ExpectedGoals:       Round2(a.ExpectedGoals),
		ExpectedAssists:     Round2(a.ExpectedAssists),
		ExpectedCleanSheets: Round2(a.ExpectedCleanSheets),
		Shots:               a.Shots,
		KeyPasses:           a.KeyPasses,
		Goals90:             Round2(a.Goals90),
		Assists90:           Round2(a.Assists90),
		ExpectedGoals90:     Round2(a.ExpectedGoals90),
		ExpectedAssists90:   Round2(a.ExpectedAssists90),
		ValueScore:          Round2(a.ValueScore),
		FormScore:           a.FormScore,
	}
}

func orUnknown(v string) string {
	if v == "" {
		return gameweek.UnknownLabel
	}
	return v
}
