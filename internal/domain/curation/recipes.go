package curation

import (
	"github.com/riskibarqy/fpl-analyst/internal/domain/gameweek"
	"github.com/riskibarqy/fpl-analyst/internal/domain/season"
)

// Recipe names double as artifact names.
const (
	RecipeGoalLeaders        = "goal_leaders"
	RecipeValuePlayers       = "value_players"
	RecipeSeasonStars        = "season_stars"
	RecipeHiddenGems         = "hidden_gems"
	RecipeDifferentialPicks  = "differential_picks"
	RecipeAssistProviders    = "assist_providers"
	RecipeDefensiveLeaders   = "defensive_leaders"
	RecipeOverperformers     = "overperformers"
	RecipeUnderperformers    = "underperformers"
	RecipeSustainableScorers = "sustainable_scorers"
)

const defaultLimit = 10

// Underlying score weights.
const (
	WeightExpectedGoals       = 0.30
	WeightExpectedAssists     = 0.25
	WeightExpectedCleanSheets = 0.20
	WeightKeyPasses           = 0.10
	WeightShots               = 0.05
	WeightMinutesShare        = 0.10
)

// UnderlyingScore is the hidden-gems composite over season totals.
func UnderlyingScore(a season.Aggregate) float64 {
	return WeightExpectedGoals*a.ExpectedGoals +
		WeightExpectedAssists*a.ExpectedAssists +
		WeightExpectedCleanSheets*a.ExpectedCleanSheets +
		WeightKeyPasses*float64(a.KeyPasses) +
		WeightShots*float64(a.Shots) +
		WeightMinutesShare*a.MinutesPerAppearance()
}

func GoalLeaders() Recipe[GoalLeader] {
	return Recipe[GoalLeader]{
		Name:   RecipeGoalLeaders,
		Filter: func(a season.Aggregate) bool { return a.Goals > 0 },
		Score:  func(a season.Aggregate) float64 { return float64(a.Goals) },
		Limit:  defaultLimit,
		Project: func(a season.Aggregate, _ float64) GoalLeader {
			return GoalLeader{
				PlayerRef:    refOf(a),
				Goals:        a.Goals,
				GamesPlayed:  a.GamesPlayed,
				GoalsPerGame: season.Round2(a.GoalsPerGame),
				TotalPoints:  a.TotalPoints,
				NowCost:      a.Price(),
			}
		},
	}
}

func ValuePlayers() Recipe[ValuePlayer] {
	return Recipe[ValuePlayer]{
		Name:   RecipeValuePlayers,
		Filter: func(a season.Aggregate) bool { return a.TotalPoints >= 20 && a.ValueScore > 0 },
		Score:  func(a season.Aggregate) float64 { return a.ValueScore },
		Limit:  defaultLimit,
		Project: func(a season.Aggregate, score float64) ValuePlayer {
			return ValuePlayer{
				PlayerRef:         refOf(a),
				PointsPerMillion:  season.Round2(score),
				TotalPoints:       a.TotalPoints,
				NowCost:           a.Price(),
				SelectedByPercent: season.Round2(a.Ownership),
			}
		},
	}
}

func SeasonStars() Recipe[SeasonStar] {
	return Recipe[SeasonStar]{
		Name:  RecipeSeasonStars,
		Score: func(a season.Aggregate) float64 { return float64(a.TotalPoints) },
		Limit: defaultLimit,
		Project: func(a season.Aggregate, _ float64) SeasonStar {
			return SeasonStar{
				PlayerRef:     refOf(a),
				TotalPoints:   a.TotalPoints,
				PointsPerGame: season.Round2(a.PointsPerGame),
				GamesPlayed:   a.GamesPlayed,
				FormScore:     a.FormScore,
				NowCost:       a.Price(),
			}
		},
	}
}

func HiddenGems() Recipe[HiddenGem] {
	return Recipe[HiddenGem]{
		Name: RecipeHiddenGems,
		Filter: func(a season.Aggregate) bool {
			return a.TotalPoints >= 30 && a.TotalPoints <= 60 &&
				a.Ownership > 0 && a.Ownership < 5 &&
				a.GamesPlayed >= 3
		},
		Score: UnderlyingScore,
		Limit: defaultLimit,
		Project: func(a season.Aggregate, score float64) HiddenGem {
			return HiddenGem{
				PlayerRef:           refOf(a),
				TotalPoints:         a.TotalPoints,
				SelectedByPercent:   season.Round2(a.Ownership),
				NowCost:             a.Price(),
				ExpectedGoals:       season.Round2(a.ExpectedGoals),
				ExpectedAssists:     season.Round2(a.ExpectedAssists),
				ExpectedCleanSheets: season.Round2(a.ExpectedCleanSheets),
				UnderlyingScore:     season.Round2(score),
			}
		},
	}
}

func DifferentialPicks() Recipe[Differential] {
	return Recipe[Differential]{
		Name: RecipeDifferentialPicks,
		Filter: func(a season.Aggregate) bool {
			return a.TotalPoints >= 40 &&
				a.Ownership > 0 && a.Ownership < 3 &&
				a.GamesPlayed >= 4
		},
		Score: func(a season.Aggregate) float64 { return float64(a.TotalPoints) },
		Limit: defaultLimit,
		Project: func(a season.Aggregate, _ float64) Differential {
			return Differential{
				PlayerRef:         refOf(a),
				TotalPoints:       a.TotalPoints,
				PointsPerGame:     season.Round2(a.PointsPerGame),
				SelectedByPercent: season.Round2(a.Ownership),
				NowCost:           a.Price(),
			}
		},
	}
}

func AssistProviders() Recipe[AssistProvider] {
	return Recipe[AssistProvider]{
		Name:   RecipeAssistProviders,
		Filter: func(a season.Aggregate) bool { return a.Assists > 0 },
		Score:  func(a season.Aggregate) float64 { return float64(a.Assists) },
		Limit:  defaultLimit,
		Project: func(a season.Aggregate, _ float64) AssistProvider {
			return AssistProvider{
				PlayerRef:       refOf(a),
				Assists:         a.Assists,
				ExpectedAssists: season.Round2(a.ExpectedAssists),
				AssistsPer90:    season.Round2(a.Assists90),
				KeyPasses:       a.KeyPasses,
				TotalPoints:     a.TotalPoints,
				NowCost:         a.Price(),
			}
		},
	}
}

func DefensiveLeaders() Recipe[DefensiveLeader] {
	return Recipe[DefensiveLeader]{
		Name: RecipeDefensiveLeaders,
		Filter: func(a season.Aggregate) bool {
			return (a.Position == gameweek.PositionGoalkeeper || a.Position == gameweek.PositionDefender) &&
				a.GamesPlayed >= 3
		},
		Score: func(a season.Aggregate) float64 { return float64(a.CleanSheets) },
		Limit: defaultLimit,
		Project: func(a season.Aggregate, _ float64) DefensiveLeader {
			return DefensiveLeader{
				PlayerRef:           refOf(a),
				CleanSheets:         a.CleanSheets,
				GoalsConceded:       a.GoalsConceded,
				ExpectedCleanSheets: season.Round2(a.ExpectedCleanSheets),
				GamesPlayed:         a.GamesPlayed,
				TotalPoints:         a.TotalPoints,
				NowCost:             a.Price(),
			}
		},
	}
}

func Overperformers() Recipe[FinishingDelta] {
	return Recipe[FinishingDelta]{
		Name:    RecipeOverperformers,
		Filter:  func(a season.Aggregate) bool { return a.Goals >= 1 },
		Score:   func(a season.Aggregate) float64 { return float64(a.Goals) - a.ExpectedGoals },
		Limit:   defaultLimit,
		Project: finishingDelta,
	}
}

func Underperformers() Recipe[FinishingDelta] {
	return Recipe[FinishingDelta]{
		Name:    RecipeUnderperformers,
		Filter:  func(a season.Aggregate) bool { return a.ExpectedGoals >= 1 },
		Score:   func(a season.Aggregate) float64 { return a.ExpectedGoals - float64(a.Goals) },
		Limit:   defaultLimit,
		Project: finishingDelta,
	}
}

func finishingDelta(a season.Aggregate, score float64) FinishingDelta {
	return FinishingDelta{
		PlayerRef:     refOf(a),
		Goals:         a.Goals,
		ExpectedGoals: season.Round2(a.ExpectedGoals),
		Delta:         season.Round2(score),
		TotalPoints:   a.TotalPoints,
	}
}

// SustainableScorers are scorers whose goals are backed by chance quality.
func SustainableScorers() Recipe[SustainableScorer] {
	return Recipe[SustainableScorer]{
		Name: RecipeSustainableScorers,
		Filter: func(a season.Aggregate) bool {
			return a.Goals >= 2 && float64(a.Goals) <= a.ExpectedGoals*1.2
		},
		Score: func(a season.Aggregate) float64 { return float64(a.Goals) },
		Limit: defaultLimit,
		Project: func(a season.Aggregate, _ float64) SustainableScorer {
			return SustainableScorer{
				PlayerRef:     refOf(a),
				Goals:         a.Goals,
				ExpectedGoals: season.Round2(a.ExpectedGoals),
				GoalsPer90:    season.Round2(a.Goals90),
				TotalPoints:   a.TotalPoints,
				NowCost:       a.Price(),
			}
		},
	}
}
