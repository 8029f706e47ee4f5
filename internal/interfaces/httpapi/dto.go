package httpapi

import (
	"github.com/riskibarqy/fpl-analyst/internal/domain/curation"
	"github.com/riskibarqy/fpl-analyst/internal/usecase"
)

type playerTrendsQuery struct {
	Players  []string `validate:"max=50,dive,min=1,max=100"`
	LimitGWs int      `validate:"gte=0,lte=60"`
}

type quickPicksDTO struct {
	AttackingPicks []curation.AttackingTeam `json:"attackingPicks"`
	DefensivePicks []curation.DefensiveTeam `json:"defensivePicks"`
}

type uploadDTO struct {
	Filename string               `json:"filename"`
	Size     int64                `json:"size"`
	Result   usecase.ImportResult `json:"result"`
}
