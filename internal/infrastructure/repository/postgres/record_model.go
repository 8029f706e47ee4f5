package postgres

import "github.com/riskibarqy/fpl-analyst/internal/domain/gameweek"

const recordTable = "player_gameweek_records"

type recordTableModel struct {
	PlayerID              int64   `db:"player_id"`
	WebName               string  `db:"web_name"`
	FirstName             string  `db:"first_name"`
	SecondName            string  `db:"second_name"`
	TeamName              string  `db:"team_name"`
	Position              string  `db:"position"`
	Gameweek              int     `db:"gameweek"`
	Minutes               int     `db:"minutes"`
	TotalPoints           int     `db:"total_points"`
	Goals                 int     `db:"goals"`
	Assists               int     `db:"assists"`
	CleanSheets           int     `db:"clean_sheets"`
	GoalsConceded         int     `db:"goals_conceded"`
	ExpectedGoals         float64 `db:"expected_goals"`
	ExpectedAssists       float64 `db:"expected_assists"`
	ExpectedCleanSheets   float64 `db:"expected_clean_sheets"`
	ExpectedGoalsConceded float64 `db:"expected_goals_conceded"`
	Shots                 int     `db:"shots"`
	ShotsOnTarget         int     `db:"shots_on_target"`
	KeyPasses             int     `db:"key_passes"`
	Touches               int     `db:"touches"`
	NowCost               int     `db:"now_cost"`
	SelectedByPercent     float64 `db:"selected_by_percent"`
}

var recordColumns = []string{
	"player_id",
	"web_name",
	"first_name",
	"second_name",
	"team_name",
	"position",
	"gameweek",
	"minutes",
	"total_points",
	"goals",
	"assists",
	"clean_sheets",
	"goals_conceded",
	"expected_goals",
	"expected_assists",
	"expected_clean_sheets",
	"expected_goals_conceded",
	"shots",
	"shots_on_target",
	"key_passes",
	"touches",
	"now_cost",
	"selected_by_percent",
}

func recordModelFromDomain(r gameweek.PlayerRecord) recordTableModel {
	return recordTableModel{
		PlayerID:              r.PlayerID,
		WebName:               r.WebName,
		FirstName:             r.FirstName,
		SecondName:            r.SecondName,
		TeamName:              r.TeamName,
		Position:              string(r.Position),
		Gameweek:              r.Gameweek,
		Minutes:               r.Minutes,
		TotalPoints:           r.TotalPoints,
		Goals:                 r.Goals,
		Assists:               r.Assists,
		CleanSheets:           r.CleanSheets,
		GoalsConceded:         r.GoalsConceded,
		ExpectedGoals:         r.ExpectedGoals,
		ExpectedAssists:       r.ExpectedAssists,
		ExpectedCleanSheets:   r.ExpectedCleanSheets,
		ExpectedGoalsConceded: r.ExpectedGoalsConceded,
		Shots:                 r.Shots,
		ShotsOnTarget:         r.ShotsOnTarget,
		KeyPasses:             r.KeyPasses,
		Touches:               r.Touches,
		NowCost:               r.Cost,
		SelectedByPercent:     r.Ownership,
	}
}

func (m recordTableModel) toDomain() gameweek.PlayerRecord {
	return gameweek.PlayerRecord{
		PlayerID:              m.PlayerID,
		WebName:               m.WebName,
		FirstName:             m.FirstName,
		SecondName:            m.SecondName,
		TeamName:              m.TeamName,
		Position:              gameweek.ParsePosition(m.Position),
		Gameweek:              m.Gameweek,
		Minutes:               m.Minutes,
		TotalPoints:           m.TotalPoints,
		Goals:                 m.Goals,
		Assists:               m.Assists,
		CleanSheets:           m.CleanSheets,
		GoalsConceded:         m.GoalsConceded,
		ExpectedGoals:         m.ExpectedGoals,
		ExpectedAssists:       m.ExpectedAssists,
		ExpectedCleanSheets:   m.ExpectedCleanSheets,
		ExpectedGoalsConceded: m.ExpectedGoalsConceded,
		Shots:                 m.Shots,
		ShotsOnTarget:         m.ShotsOnTarget,
		KeyPasses:             m.KeyPasses,
		Touches:               m.Touches,
		Cost:                  m.NowCost,
		Ownership:             m.SelectedByPercent,
	}
}

// values returns the row in recordColumns order.
func (m recordTableModel) values() []any {
	return []any{
		m.PlayerID,
		m.WebName,
		m.FirstName,
		m.SecondName,
		m.TeamName,
		m.Position,
		m.Gameweek,
		m.Minutes,
		m.TotalPoints,
		m.Goals,
		m.Assists,
		m.CleanSheets,
		m.GoalsConceded,
		m.ExpectedGoals,
		m.ExpectedAssists,
		m.ExpectedCleanSheets,
		m.ExpectedGoalsConceded,
		m.Shots,
		m.ShotsOnTarget,
		m.KeyPasses,
		m.Touches,
		m.NowCost,
		m.SelectedByPercent,
	}
}
